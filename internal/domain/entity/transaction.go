package entity

import (
	"time"

	"github.com/shopspring/decimal"

	errs "github.com/virtpanel/credit-ledger/internal/domain/error"
	coreport "github.com/virtpanel/credit-ledger/internal/domain/port/core"
)

// TransactionType categorizes a ledger entry. The column is an open-ended
// string; these are the values the panel's flows write today.
type TransactionType string

const (
	TypePurchase       TransactionType = "purchase"
	TypePayPalPurchase TransactionType = "paypal_purchase"
	TypeCryptoPurchase TransactionType = "crypto_purchase"
	TypeUsageDeduction TransactionType = "usage_deduction"
	TypeFreeGrant      TransactionType = "free_grant"
	TypeRefund         TransactionType = "refund"
)

// TransactionStatus defines possible status values for a ledger entry
type TransactionStatus string

const (
	StatusPending   TransactionStatus = "pending"
	StatusCompleted TransactionStatus = "completed"
	StatusFailed    TransactionStatus = "failed"
)

// Transaction is an immutable log entry of a balance change. Positive
// amounts are credits, negative amounts are debits; the account balance at
// any committed point equals the sum of its completed entries.
type Transaction struct {
	ID               uint64
	UserID           uint64
	Amount           decimal.Decimal
	Type             TransactionType
	Description      string
	TransactionDate  time.Time
	PaymentGatewayID string
	Status           TransactionStatus
}

// NewCreditTransaction builds a completed entry that increases the balance.
func NewCreditTransaction(
	userID uint64,
	amount decimal.Decimal,
	txType TransactionType,
	description string,
	gatewayID string,
	timeProvider coreport.TimeProvider,
) (*Transaction, error) {
	if userID == 0 {
		return nil, errs.ErrInvalidUserID
	}
	if err := ValidateAmount(amount); err != nil {
		return nil, err
	}

	return &Transaction{
		UserID:           userID,
		Amount:           amount,
		Type:             txType,
		Description:      description,
		TransactionDate:  timeProvider.Now(),
		PaymentGatewayID: gatewayID,
		Status:           StatusCompleted,
	}, nil
}

// NewDebitTransaction builds a completed entry that decreases the balance.
// The amount argument is the positive deduction; the recorded amount is its
// negation.
func NewDebitTransaction(
	userID uint64,
	amount decimal.Decimal,
	txType TransactionType,
	description string,
	timeProvider coreport.TimeProvider,
) (*Transaction, error) {
	if userID == 0 {
		return nil, errs.ErrInvalidUserID
	}
	if err := ValidateAmount(amount); err != nil {
		return nil, err
	}

	return &Transaction{
		UserID:          userID,
		Amount:          amount.Neg(),
		Type:            txType,
		Description:     description,
		TransactionDate: timeProvider.Now(),
		Status:          StatusCompleted,
	}, nil
}

// IsCredit returns true if this entry increased the balance
func (t *Transaction) IsCredit() bool {
	return t.Amount.Sign() > 0
}

// IsDebit returns true if this entry decreased the balance
func (t *Transaction) IsDebit() bool {
	return t.Amount.Sign() < 0
}
