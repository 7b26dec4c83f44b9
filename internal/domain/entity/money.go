package entity

import (
	"fmt"

	"github.com/shopspring/decimal"

	errs "github.com/virtpanel/credit-ledger/internal/domain/error"
)

// MaxDecimalPlaces is the fractional precision of stored monetary values.
// The store keeps NUMERIC(20,4) columns; inputs with more precision are
// rejected rather than rounded so the recorded amount is always exactly
// what the caller asked for.
const MaxDecimalPlaces = 4

// ValidateAmount checks that amount is a positive monetary value with at
// most MaxDecimalPlaces fractional digits.
func ValidateAmount(amount decimal.Decimal) error {
	if amount.Sign() <= 0 {
		return fmt.Errorf("%w: amount must be positive, got %s", errs.ErrInvalidAmount, amount.String())
	}
	if !amount.Equal(amount.Truncate(MaxDecimalPlaces)) {
		return fmt.Errorf("%w: at most %d decimal places allowed, got %s",
			errs.ErrInvalidAmount, MaxDecimalPlaces, amount.String())
	}
	return nil
}

// ParseAmount parses a decimal string and validates it as a monetary amount.
func ParseAmount(s string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s", errs.ErrInvalidAmount, err.Error())
	}
	if err := ValidateAmount(amount); err != nil {
		return decimal.Zero, err
	}
	return amount, nil
}

// FormatAmount renders a monetary value with exactly MaxDecimalPlaces
// fractional digits, e.g. 5.5 becomes "5.5000".
func FormatAmount(amount decimal.Decimal) string {
	return amount.StringFixed(MaxDecimalPlaces)
}
