package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account represents the database model for per-user credit balances
type Account struct {
	UserID              uint64          `gorm:"primaryKey"`
	Balance             decimal.Decimal `gorm:"type:numeric(20,4);not null;default:0"`
	LastFreeCreditGrant *time.Time
	CreatedAt           time.Time `gorm:"not null"`
	UpdatedAt           time.Time `gorm:"not null"`
}

// TableName specifies the table name for Account
func (Account) TableName() string {
	return "user_credits"
}
