package credit

import (
	"context"

	"github.com/shopspring/decimal"

	errs "github.com/virtpanel/credit-ledger/internal/domain/error"
	coreport "github.com/virtpanel/credit-ledger/internal/domain/port/core"
	"github.com/virtpanel/credit-ledger/internal/domain/port/persistence"
	"github.com/virtpanel/credit-ledger/internal/domain/port/usecase"
)

// Config carries the ledger's tunables
type Config struct {
	// MonthlyGrantAmount is the system-wide free credit applied once per
	// UTC calendar month per account
	MonthlyGrantAmount decimal.Decimal
	// DefaultPageSize is used when a transaction listing passes limit <= 0
	DefaultPageSize int
	// MaxPageSize caps the limit of a transaction listing
	MaxPageSize int
}

// DefaultConfig returns the ledger defaults used by the panel
func DefaultConfig() Config {
	return Config{
		MonthlyGrantAmount: decimal.RequireFromString("5.00"),
		DefaultPageSize:    20,
		MaxPageSize:        100,
	}
}

// Service implements the credit ledger. It holds no mutable state; all
// state lives in the relational store behind the injected repositories.
type Service struct {
	uow          persistence.UnitOfWork
	accountRepo  persistence.AccountRepository
	txRepo       persistence.TransactionRepository
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
	config       Config
}

// NewService creates a credit ledger instance
func NewService(
	uow persistence.UnitOfWork,
	accountRepo persistence.AccountRepository,
	txRepo persistence.TransactionRepository,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	config Config,
) usecase.CreditLedger {
	return &Service{
		uow:          uow,
		accountRepo:  accountRepo,
		txRepo:       txRepo,
		timeProvider: timeProvider,
		logger:       logger,
		config:       config,
	}
}

// inTransaction runs fn inside a unit of work, committing on success and
// rolling back on any error or panic. Failure after a partial write is not
// an acceptable outcome, so every exit path that is not an explicit commit
// rolls back.
func (s *Service) inTransaction(ctx context.Context, fn func(txCtx context.Context) error) error {
	txCtx, err := s.uow.Begin(ctx)
	if err != nil {
		return err
	}

	committed := false
	defer func() {
		if !committed {
			if rbErr := s.uow.Rollback(txCtx); rbErr != nil {
				s.logger.Error("Rollback failed", map[string]any{
					"error": rbErr.Error(),
				})
			}
		}
	}()

	if err := fn(txCtx); err != nil {
		return err
	}

	if err := s.uow.Commit(txCtx); err != nil {
		return err
	}
	committed = true
	return nil
}

// persistenceFailure wraps unexpected store errors with operation context.
// Caller errors pass through untouched.
func persistenceFailure(op string, userID uint64, amount string, err error) error {
	if errs.IsInsufficientCreditError(err) || errs.IsInvalidAmountError(err) {
		return err
	}
	return errs.NewPersistenceError(op, userID, amount, err)
}
