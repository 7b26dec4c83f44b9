package credit

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/virtpanel/credit-ledger/internal/domain/entity"
	errs "github.com/virtpanel/credit-ledger/internal/domain/error"
	coreport "github.com/virtpanel/credit-ledger/internal/domain/port/core"
	"github.com/virtpanel/credit-ledger/internal/domain/port/persistence"
	"github.com/virtpanel/credit-ledger/internal/domain/port/usecase"
)

// fixedClock implements core.TimeProvider with a settable instant.
type fixedClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fixedClock) Since(t time.Time) time.Duration { return c.Now().Sub(t) }

func (c *fixedClock) WithTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, timeout)
}

func (c *fixedClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func (c *fixedClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

// nopLogger discards everything.
type nopLogger struct{}

func (nopLogger) SetLevel(level coreport.LogLevel) {}
func (nopLogger) Debug(message string, fields map[string]any) {}
func (nopLogger) Info(message string, fields map[string]any) {}
func (nopLogger) Warn(message string, fields map[string]any) {}
func (nopLogger) Error(message string, fields map[string]any) {}
func (nopLogger) Flush() error                                { return nil }

// pendingState is the uncommitted view of a running transaction.
type pendingState struct {
	accounts     map[uint64]*entity.Account
	transactions []*entity.Transaction
}

// memoryStore backs the fake repositories. A transaction snapshots the
// committed state, mutates the snapshot, and writes it back on commit; the
// transaction mutex serializes writers the way the row lock does in the
// real store.
type memoryStore struct {
	mu           sync.RWMutex
	accounts     map[uint64]*entity.Account
	transactions []*entity.Transaction
	nextTxID     uint64

	txMu    sync.Mutex
	pending *pendingState

	failCreateAccount error
	failUpdateBalance error
	failCreateRecord  error

	// missNextGet makes the next non-transactional account read report a
	// miss even when the row exists, to exercise the creation race.
	missNextGet bool
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		accounts: make(map[uint64]*entity.Account),
		nextTxID: 1,
	}
}

func copyAccount(a *entity.Account) *entity.Account {
	c := *a
	if a.LastFreeCreditGrant != nil {
		t := *a.LastFreeCreditGrant
		c.LastFreeCreditGrant = &t
	}
	return &c
}

func copyTransaction(t *entity.Transaction) *entity.Transaction {
	c := *t
	return &c
}

func (s *memoryStore) seedAccount(a *entity.Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[a.UserID] = copyAccount(a)
}

func (s *memoryStore) committedBalance(userID uint64) decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if a, ok := s.accounts[userID]; ok {
		return a.Balance
	}
	return decimal.Zero
}

func (s *memoryStore) committedTransactionCount(userID uint64) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, t := range s.transactions {
		if t.UserID == userID {
			n++
		}
	}
	return n
}

// memoryUnitOfWork implements persistence.UnitOfWork on the memory store.
type memoryUnitOfWork struct {
	store *memoryStore
}

func (u *memoryUnitOfWork) Begin(ctx context.Context) (context.Context, error) {
	u.store.txMu.Lock()

	u.store.mu.RLock()
	snapshot := &pendingState{
		accounts:     make(map[uint64]*entity.Account, len(u.store.accounts)),
		transactions: make([]*entity.Transaction, 0, len(u.store.transactions)),
	}
	for id, a := range u.store.accounts {
		snapshot.accounts[id] = copyAccount(a)
	}
	for _, t := range u.store.transactions {
		snapshot.transactions = append(snapshot.transactions, copyTransaction(t))
	}
	u.store.mu.RUnlock()

	u.store.pending = snapshot
	return ctx, nil
}

func (u *memoryUnitOfWork) Commit(ctx context.Context) error {
	if u.store.pending == nil {
		return nil
	}
	u.store.mu.Lock()
	u.store.accounts = u.store.pending.accounts
	u.store.transactions = u.store.pending.transactions
	u.store.mu.Unlock()

	u.store.pending = nil
	u.store.txMu.Unlock()
	return nil
}

func (u *memoryUnitOfWork) Rollback(ctx context.Context) error {
	if u.store.pending == nil {
		return nil
	}
	u.store.pending = nil
	u.store.txMu.Unlock()
	return nil
}

func (u *memoryUnitOfWork) GetAccountRepository(ctx context.Context) persistence.AccountRepository {
	return &fakeAccountRepo{store: u.store, inTx: true}
}

func (u *memoryUnitOfWork) GetTransactionRepository(ctx context.Context) persistence.TransactionRepository {
	return &fakeTransactionRepo{store: u.store, inTx: true}
}

// fakeAccountRepo implements persistence.AccountRepository. When inTx it
// operates on the pending snapshot, otherwise on committed state.
type fakeAccountRepo struct {
	store *memoryStore
	inTx  bool
}

func (r *fakeAccountRepo) GetByUserID(ctx context.Context, userID uint64) (*entity.Account, error) {
	if r.inTx {
		if a, ok := r.store.pending.accounts[userID]; ok {
			return copyAccount(a), nil
		}
		return nil, errs.ErrAccountNotFound
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.store.missNextGet {
		r.store.missNextGet = false
		return nil, errs.ErrAccountNotFound
	}
	if a, ok := r.store.accounts[userID]; ok {
		return copyAccount(a), nil
	}
	return nil, errs.ErrAccountNotFound
}

func (r *fakeAccountRepo) GetByUserIDForUpdate(ctx context.Context, userID uint64) (*entity.Account, error) {
	return r.GetByUserID(ctx, userID)
}

func (r *fakeAccountRepo) Create(ctx context.Context, account *entity.Account) error {
	if err := r.store.failCreateAccount; err != nil {
		return err
	}
	if r.inTx {
		if _, ok := r.store.pending.accounts[account.UserID]; ok {
			return errs.ErrDuplicateAccount
		}
		r.store.pending.accounts[account.UserID] = copyAccount(account)
		return nil
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.accounts[account.UserID]; ok {
		return errs.ErrDuplicateAccount
	}
	r.store.accounts[account.UserID] = copyAccount(account)
	return nil
}

func (r *fakeAccountRepo) UpdateBalance(ctx context.Context, account *entity.Account) error {
	if err := r.store.failUpdateBalance; err != nil {
		return err
	}
	if r.inTx {
		if _, ok := r.store.pending.accounts[account.UserID]; !ok {
			return errs.ErrAccountNotFound
		}
		r.store.pending.accounts[account.UserID] = copyAccount(account)
		return nil
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.accounts[account.UserID]; !ok {
		return errs.ErrAccountNotFound
	}
	r.store.accounts[account.UserID] = copyAccount(account)
	return nil
}

// fakeTransactionRepo implements persistence.TransactionRepository.
type fakeTransactionRepo struct {
	store *memoryStore
	inTx  bool
}

func (r *fakeTransactionRepo) Create(ctx context.Context, transaction *entity.Transaction) error {
	if err := r.store.failCreateRecord; err != nil {
		return err
	}

	r.store.mu.Lock()
	transaction.ID = r.store.nextTxID
	r.store.nextTxID++
	r.store.mu.Unlock()

	if r.inTx {
		r.store.pending.transactions = append(r.store.pending.transactions, copyTransaction(transaction))
		return nil
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.transactions = append(r.store.transactions, copyTransaction(transaction))
	return nil
}

func (r *fakeTransactionRepo) ListByUserID(ctx context.Context, userID uint64, limit, offset int) ([]*entity.Transaction, error) {
	r.store.mu.RLock()
	source := r.store.transactions
	if r.inTx {
		source = r.store.pending.transactions
	}
	matched := make([]*entity.Transaction, 0)
	for _, t := range source {
		if t.UserID == userID {
			matched = append(matched, copyTransaction(t))
		}
	}
	r.store.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].TransactionDate.Equal(matched[j].TransactionDate) {
			return matched[i].TransactionDate.After(matched[j].TransactionDate)
		}
		return matched[i].ID > matched[j].ID
	})

	if offset >= len(matched) {
		return []*entity.Transaction{}, nil
	}
	matched = matched[offset:]
	if limit < len(matched) {
		matched = matched[:limit]
	}
	return matched, nil
}

func (r *fakeTransactionRepo) SumCompletedByUserID(ctx context.Context, userID uint64) (decimal.Decimal, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	source := r.store.transactions
	if r.inTx {
		source = r.store.pending.transactions
	}
	sum := decimal.Zero
	for _, t := range source {
		if t.UserID == userID && t.Status == entity.StatusCompleted {
			sum = sum.Add(t.Amount)
		}
	}
	return sum, nil
}

func newTestLedger(clock *fixedClock) (usecase.CreditLedger, *memoryStore) {
	store := newMemoryStore()
	ledger := NewService(
		&memoryUnitOfWork{store: store},
		&fakeAccountRepo{store: store},
		&fakeTransactionRepo{store: store},
		clock,
		nopLogger{},
		DefaultConfig(),
	)
	return ledger, store
}
