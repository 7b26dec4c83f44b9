package persistence

import (
	"context"

	"github.com/virtpanel/credit-ledger/internal/domain/entity"
)

// AccountRepository defines essential methods to interact with account data
type AccountRepository interface {
	// GetByUserID retrieves an account by its owning user ID.
	//
	// Possible errors:
	// - ErrAccountNotFound: if no row exists for the user yet
	// - ErrPersistence: if the store fails
	GetByUserID(ctx context.Context, userID uint64) (*entity.Account, error)

	// GetByUserIDForUpdate retrieves an account and takes an exclusive row
	// lock on it. Must be called inside a unit-of-work transaction; the lock
	// is held until commit or rollback and serializes concurrent mutations
	// against the same account.
	GetByUserIDForUpdate(ctx context.Context, userID uint64) (*entity.Account, error)

	// Create inserts a new account row. A unique constraint on user_id
	// guarantees exactly one row per user under concurrent creation; the
	// duplicate-key case is reported as ErrDuplicateAccount so callers can
	// treat the race as success.
	Create(ctx context.Context, account *entity.Account) error

	// UpdateBalance persists the account's balance, grant timestamp, and
	// updated-at.
	UpdateBalance(ctx context.Context, account *entity.Account) error
}
