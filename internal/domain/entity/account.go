package entity

import (
	"time"

	"github.com/shopspring/decimal"

	errs "github.com/virtpanel/credit-ledger/internal/domain/error"
	coreport "github.com/virtpanel/credit-ledger/internal/domain/port/core"
)

// Account holds a user's credit balance. One account exists per user and is
// created lazily on first access; balance is never negative at a committed
// state.
type Account struct {
	UserID              uint64
	Balance             decimal.Decimal
	LastFreeCreditGrant *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// NewAccount creates an empty account for the given user.
func NewAccount(userID uint64, timeProvider coreport.TimeProvider) (*Account, error) {
	if userID == 0 {
		return nil, errs.ErrInvalidUserID
	}

	now := timeProvider.Now()
	return &Account{
		UserID:    userID,
		Balance:   decimal.Zero,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// CanDeduct reports whether the balance covers the given amount.
func (a *Account) CanDeduct(amount decimal.Decimal) bool {
	return a.Balance.GreaterThanOrEqual(amount)
}

// Credit adds amount to the balance.
func (a *Account) Credit(amount decimal.Decimal, timeProvider coreport.TimeProvider) {
	a.Balance = a.Balance.Add(amount)
	a.UpdatedAt = timeProvider.Now()
}

// Debit subtracts amount from the balance, failing if it would go negative.
func (a *Account) Debit(amount decimal.Decimal, timeProvider coreport.TimeProvider) error {
	if !a.CanDeduct(amount) {
		return errs.NewInsufficientCreditError(a.UserID, FormatAmount(amount), FormatAmount(a.Balance))
	}
	a.Balance = a.Balance.Sub(amount)
	a.UpdatedAt = timeProvider.Now()
	return nil
}

// MarkGranted records the monthly free credit grant timestamp.
func (a *Account) MarkGranted(at time.Time) {
	t := at
	a.LastFreeCreditGrant = &t
	a.UpdatedAt = at
}

// EligibleForMonthlyGrant reports whether the account may receive the
// monthly free credit at the given instant: eligible when no grant has ever
// been made, or when the last grant's UTC (year, month) strictly precedes
// the current UTC (year, month).
func (a *Account) EligibleForMonthlyGrant(now time.Time) bool {
	if a.LastFreeCreditGrant == nil {
		return true
	}
	return MonthStrictlyBefore(*a.LastFreeCreditGrant, now)
}

// MonthStrictlyBefore reports whether the UTC calendar month of earlier
// precedes the UTC calendar month of later.
func MonthStrictlyBefore(earlier, later time.Time) bool {
	ey, em, _ := earlier.UTC().Date()
	ly, lm, _ := later.UTC().Date()
	if ly != ey {
		return ly > ey
	}
	return lm > em
}
