package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/virtpanel/credit-ledger/internal/domain/entity"
	errs "github.com/virtpanel/credit-ledger/internal/domain/error"
	coreport "github.com/virtpanel/credit-ledger/internal/domain/port/core"
	"github.com/virtpanel/credit-ledger/internal/infrastructure/adapter/model"
)

// AccountRepository implements AccountRepository interface using GORM
type AccountRepository struct {
	db              *gorm.DB
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewAccountRepository creates a new AccountRepository instance
func NewAccountRepository(db *gorm.DB, logger coreport.Logger) *AccountRepository {
	return &AccountRepository{
		db:              db,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

// modelToEntity converts an account model to an entity
func (r *AccountRepository) modelToEntity(m *model.Account) *entity.Account {
	return &entity.Account{
		UserID:              m.UserID,
		Balance:             m.Balance,
		LastFreeCreditGrant: m.LastFreeCreditGrant,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}
}

// handleDatabaseError standardizes database error handling
func (r *AccountRepository) handleDatabaseError(operation string, err error, userID uint64) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.ErrAccountNotFound
	}

	if r.errorClassifier.IsDuplicateKeyError(err) {
		r.logger.Warn("Duplicate account operation", map[string]any{
			"user_id": userID,
		})
		return errs.ErrDuplicateAccount
	}

	r.logger.Error(fmt.Sprintf("Database error when %s", operation), map[string]any{
		"user_id": userID,
		"error":   err.Error(),
	})
	return fmt.Errorf("%w: %s", errs.ErrPersistence, err.Error())
}

// GetByUserID retrieves an account by its owning user ID
func (r *AccountRepository) GetByUserID(ctx context.Context, userID uint64) (*entity.Account, error) {
	var accountModel model.Account
	result := r.db.WithContext(ctx).First(&accountModel, "user_id = ?", userID)
	if result.Error != nil {
		return nil, r.handleDatabaseError("getting account", result.Error, userID)
	}
	return r.modelToEntity(&accountModel), nil
}

// GetByUserIDForUpdate retrieves an account with an exclusive row lock.
// Must run inside a transaction; the lock serializes concurrent balance
// mutations on the same account while leaving other accounts untouched.
func (r *AccountRepository) GetByUserIDForUpdate(ctx context.Context, userID uint64) (*entity.Account, error) {
	var accountModel model.Account
	result := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&accountModel, "user_id = ?", userID)
	if result.Error != nil {
		return nil, r.handleDatabaseError("locking account", result.Error, userID)
	}
	return r.modelToEntity(&accountModel), nil
}

// Create inserts a new account row
func (r *AccountRepository) Create(ctx context.Context, account *entity.Account) error {
	accountModel := model.Account{
		UserID:              account.UserID,
		Balance:             account.Balance,
		LastFreeCreditGrant: account.LastFreeCreditGrant,
		CreatedAt:           account.CreatedAt,
		UpdatedAt:           account.UpdatedAt,
	}

	result := r.db.WithContext(ctx).Create(&accountModel)
	if result.Error != nil {
		return r.handleDatabaseError("creating account", result.Error, account.UserID)
	}

	r.logger.Debug("Account row created", map[string]any{
		"user_id": account.UserID,
	})
	return nil
}

// UpdateBalance persists the account's balance, grant timestamp, and
// updated-at
func (r *AccountRepository) UpdateBalance(ctx context.Context, account *entity.Account) error {
	result := r.db.WithContext(ctx).Model(&model.Account{}).
		Where("user_id = ?", account.UserID).
		Updates(map[string]interface{}{
			"balance":                account.Balance,
			"last_free_credit_grant": account.LastFreeCreditGrant,
			"updated_at":             account.UpdatedAt,
		})

	if result.Error != nil {
		return r.handleDatabaseError("updating account balance", result.Error, account.UserID)
	}
	if result.RowsAffected == 0 {
		r.logger.Warn("Account not found during balance update", map[string]any{
			"user_id": account.UserID,
		})
		return errs.ErrAccountNotFound
	}
	return nil
}
