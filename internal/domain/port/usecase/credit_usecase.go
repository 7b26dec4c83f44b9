package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/virtpanel/credit-ledger/internal/domain/entity"
)

// GrantResult reports whether a monthly free credit was applied
type GrantResult struct {
	Granted    bool
	Amount     decimal.Decimal
	NewBalance decimal.Decimal
}

// BalanceResult carries the post-operation balance
type BalanceResult struct {
	UserID     uint64
	NewBalance decimal.Decimal
}

// CreditLedger owns per-user balances and the append-only transaction
// history. Every mutation runs as a single database transaction: the balance
// change and its ledger entry commit or roll back together, and operations
// on the same account serialize on a row lock. The ledger never retries.
type CreditLedger interface {
	// EnsureAccount returns the account for userID, creating it empty if
	// absent. Idempotent under concurrent callers.
	EnsureAccount(ctx context.Context, userID uint64) (*entity.Account, error)

	// GrantMonthlyFreeCredit applies the configured free credit once per
	// UTC calendar month per account.
	GrantMonthlyFreeCredit(ctx context.Context, userID uint64) (*GrantResult, error)

	// AddCredit increases the balance by a positive amount and records a
	// completed ledger entry of the given type.
	AddCredit(ctx context.Context, userID uint64, amount decimal.Decimal, txType entity.TransactionType, description, gatewayRef string) (*BalanceResult, error)

	// DeductCredit decreases the balance by a positive amount, rejecting
	// deductions the balance does not cover.
	DeductCredit(ctx context.Context, userID uint64, amount decimal.Decimal, txType entity.TransactionType, description string) (*BalanceResult, error)

	// GetBalance returns the current balance, creating the account if absent.
	GetBalance(ctx context.Context, userID uint64) (*BalanceResult, error)

	// ListTransactions returns ledger entries newest-first.
	ListTransactions(ctx context.Context, userID uint64, limit, offset int) ([]*entity.Transaction, error)
}
