package dto

import (
	"time"

	"github.com/virtpanel/credit-ledger/internal/domain/entity"
)

// BalanceData represents a user's balance in API responses
type BalanceData struct {
	UserID  uint64 `json:"userId"`
	Balance string `json:"balance"`
}

// GrantData represents the outcome of a monthly free credit grant
type GrantData struct {
	Granted    bool   `json:"granted"`
	Amount     string `json:"amount,omitempty"`
	NewBalance string `json:"newBalance"`
}

// RegistrationData represents the credit state of a newly registered user
type RegistrationData struct {
	UserID  uint64 `json:"userId"`
	Granted bool   `json:"granted"`
	Balance string `json:"balance"`
}

// TransactionData represents a ledger entry in API responses
type TransactionData struct {
	ID               uint64    `json:"id"`
	Amount           string    `json:"amount"`
	Type             string    `json:"type"`
	Description      string    `json:"description"`
	TransactionDate  time.Time `json:"transactionDate"`
	PaymentGatewayID string    `json:"paymentGatewayId,omitempty"`
	Status           string    `json:"status"`
}

// FromTransaction converts a ledger entry to its API representation
func FromTransaction(t *entity.Transaction) TransactionData {
	return TransactionData{
		ID:               t.ID,
		Amount:           entity.FormatAmount(t.Amount),
		Type:             string(t.Type),
		Description:      t.Description,
		TransactionDate:  t.TransactionDate,
		PaymentGatewayID: t.PaymentGatewayID,
		Status:           string(t.Status),
	}
}

// FromTransactions converts a slice of ledger entries
func FromTransactions(ts []*entity.Transaction) []TransactionData {
	out := make([]TransactionData, 0, len(ts))
	for _, t := range ts {
		out = append(out, FromTransaction(t))
	}
	return out
}
