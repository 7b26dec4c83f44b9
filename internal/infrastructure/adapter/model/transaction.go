package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction represents the database model for credit transactions.
// Rows are append-only; deleting a user cascades through user_credits and
// removes the history with it.
type Transaction struct {
	ID               uint64          `gorm:"primaryKey;autoIncrement"`
	UserID           uint64          `gorm:"not null;index:idx_credit_transactions_user_date,priority:1"`
	Amount           decimal.Decimal `gorm:"type:numeric(20,4);not null"`
	Type             string          `gorm:"not null;size:50"`
	Description      string          `gorm:"type:text"`
	TransactionDate  time.Time       `gorm:"not null;index:idx_credit_transactions_user_date,priority:2,sort:desc"`
	PaymentGatewayID *string         `gorm:"size:255"`
	Status           string          `gorm:"not null;size:20;default:completed"`

	// Define relationships
	Account Account `gorm:"foreignKey:UserID;references:UserID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for Transaction
func (Transaction) TableName() string {
	return "credit_transactions"
}
