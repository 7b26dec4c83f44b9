package persistence

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/virtpanel/credit-ledger/internal/domain/entity"
)

// TransactionRepository defines essential methods to interact with the
// append-only credit transaction log
type TransactionRepository interface {
	// Create appends a new ledger entry. Called inside the same unit of
	// work as the balance mutation it records.
	Create(ctx context.Context, transaction *entity.Transaction) error

	// ListByUserID returns entries for a user ordered newest-first by
	// transaction date, paginated by limit and offset.
	ListByUserID(ctx context.Context, userID uint64, limit, offset int) ([]*entity.Transaction, error)

	// SumCompletedByUserID returns the sum of amounts over completed
	// entries for a user. Diagnostic check of the balance invariant.
	SumCompletedByUserID(ctx context.Context, userID uint64) (decimal.Decimal, error)
}
