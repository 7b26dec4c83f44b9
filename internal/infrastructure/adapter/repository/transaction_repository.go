package repository

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/virtpanel/credit-ledger/internal/domain/entity"
	errs "github.com/virtpanel/credit-ledger/internal/domain/error"
	coreport "github.com/virtpanel/credit-ledger/internal/domain/port/core"
	"github.com/virtpanel/credit-ledger/internal/infrastructure/adapter/model"
)

// TransactionRepository implements TransactionRepository interface using GORM
type TransactionRepository struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewTransactionRepository creates a new TransactionRepository instance
func NewTransactionRepository(db *gorm.DB, logger coreport.Logger) *TransactionRepository {
	return &TransactionRepository{
		db:     db,
		logger: logger,
	}
}

// entityToModel converts a transaction entity to a database model
func (r *TransactionRepository) entityToModel(transaction *entity.Transaction) model.Transaction {
	var gatewayID *string
	if transaction.PaymentGatewayID != "" {
		id := transaction.PaymentGatewayID
		gatewayID = &id
	}

	return model.Transaction{
		UserID:           transaction.UserID,
		Amount:           transaction.Amount,
		Type:             string(transaction.Type),
		Description:      transaction.Description,
		TransactionDate:  transaction.TransactionDate,
		PaymentGatewayID: gatewayID,
		Status:           string(transaction.Status),
	}
}

// modelToEntity converts a transaction model to an entity
func (r *TransactionRepository) modelToEntity(m *model.Transaction) *entity.Transaction {
	transaction := &entity.Transaction{
		ID:              m.ID,
		UserID:          m.UserID,
		Amount:          m.Amount,
		Type:            entity.TransactionType(m.Type),
		Description:     m.Description,
		TransactionDate: m.TransactionDate,
		Status:          entity.TransactionStatus(m.Status),
	}
	if m.PaymentGatewayID != nil {
		transaction.PaymentGatewayID = *m.PaymentGatewayID
	}
	return transaction
}

// Create appends a new ledger entry
func (r *TransactionRepository) Create(ctx context.Context, transaction *entity.Transaction) error {
	transactionModel := r.entityToModel(transaction)

	result := r.db.WithContext(ctx).Create(&transactionModel)
	if result.Error != nil {
		r.logger.Error("Failed to create credit transaction", map[string]any{
			"user_id": transaction.UserID,
			"type":    string(transaction.Type),
			"error":   result.Error.Error(),
		})
		return fmt.Errorf("%w: %s", errs.ErrPersistence, result.Error.Error())
	}

	transaction.ID = transactionModel.ID
	return nil
}

// ListByUserID returns entries for a user ordered newest-first, paginated
func (r *TransactionRepository) ListByUserID(ctx context.Context, userID uint64, limit, offset int) ([]*entity.Transaction, error) {
	var models []model.Transaction
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("transaction_date DESC").
		Limit(limit).
		Offset(offset).
		Find(&models)

	if result.Error != nil {
		r.logger.Error("Failed to list credit transactions", map[string]any{
			"user_id": userID,
			"error":   result.Error.Error(),
		})
		return nil, fmt.Errorf("%w: %s", errs.ErrPersistence, result.Error.Error())
	}

	transactions := make([]*entity.Transaction, 0, len(models))
	for i := range models {
		transactions = append(transactions, r.modelToEntity(&models[i]))
	}
	return transactions, nil
}

// SumCompletedByUserID returns the sum of amounts over completed entries
// for a user. The ledger maintains balance == this sum by construction;
// the query exists for diagnostics.
func (r *TransactionRepository) SumCompletedByUserID(ctx context.Context, userID uint64) (decimal.Decimal, error) {
	var sum decimal.NullDecimal
	result := r.db.WithContext(ctx).Model(&model.Transaction{}).
		Select("SUM(amount)").
		Where("user_id = ? AND status = ?", userID, string(entity.StatusCompleted)).
		Scan(&sum)

	if result.Error != nil {
		return decimal.Zero, fmt.Errorf("%w: %s", errs.ErrPersistence, result.Error.Error())
	}
	if !sum.Valid {
		return decimal.Zero, nil
	}
	return sum.Decimal, nil
}
