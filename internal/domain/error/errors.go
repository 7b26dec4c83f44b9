package error

import (
	"errors"
	"fmt"
)

// Error codes for standardized API responses
const (
	// 4xxx - Client errors
	CodeInsufficientCredit = 4001
	CodeInvalidAmount      = 4002
	CodeInvalidUserID      = 4003
	CodeInvalidRequest     = 4004

	// 5xxx - Server errors
	CodePersistence    = 5001
	CodeInternalServer = 5000
)

// Base error types
var (
	// ErrInvalidAmount is returned when a credit or debit amount is not a
	// positive decimal with at most four fractional digits
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrInsufficientCredit is returned when a deduction would drive the
	// balance negative
	ErrInsufficientCredit = errors.New("insufficient credit")

	// ErrInvalidUserID is returned when the user ID is not a positive integer
	ErrInvalidUserID = errors.New("user ID must be positive")

	// ErrInvalidRequest is returned when the request format is invalid
	ErrInvalidRequest = errors.New("invalid request")

	// ErrPersistence is returned when the underlying store fails; the
	// operation has been fully rolled back
	ErrPersistence = errors.New("persistence failure")

	// ErrInternalServer is returned for unexpected server-side errors
	ErrInternalServer = errors.New("internal server error")

	// ErrAccountNotFound signals a missing account row between the
	// repository and the ledger. Accounts are created lazily, so this never
	// escapes a ledger operation.
	ErrAccountNotFound = errors.New("account not found")

	// ErrDuplicateAccount signals a unique-constraint hit on account
	// creation. Concurrent ensure-or-create treats it as success.
	ErrDuplicateAccount = errors.New("account already exists")
)

// ErrorCode returns standardized error codes for known errors
func ErrorCode(err error) int {
	switch {
	case errors.Is(err, ErrInsufficientCredit):
		return CodeInsufficientCredit
	case errors.Is(err, ErrInvalidAmount):
		return CodeInvalidAmount
	case errors.Is(err, ErrInvalidUserID):
		return CodeInvalidUserID
	case errors.Is(err, ErrInvalidRequest):
		return CodeInvalidRequest
	case errors.Is(err, ErrPersistence):
		return CodePersistence
	default:
		return CodeInternalServer
	}
}

// InsufficientCreditError carries the balance context of a rejected deduction
type InsufficientCreditError struct {
	UserID    uint64
	Requested string
	Balance   string
}

// Error implements the error interface
func (e *InsufficientCreditError) Error() string {
	return fmt.Sprintf("insufficient credit for user %d: required %s, available %s",
		e.UserID, e.Requested, e.Balance)
}

// Is checks if the target error is an ErrInsufficientCredit
func (e *InsufficientCreditError) Is(target error) bool {
	return target == ErrInsufficientCredit
}

// LogFields returns a map of fields for structured logging
func (e *InsufficientCreditError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "insufficient_credit",
		"user_id":    e.UserID,
		"requested":  e.Requested,
		"balance":    e.Balance,
		"error_code": CodeInsufficientCredit,
	}
}

// NewInsufficientCreditError creates a new detailed insufficient credit error
func NewInsufficientCreditError(userID uint64, requested, balance string) error {
	return &InsufficientCreditError{
		UserID:    userID,
		Requested: requested,
		Balance:   balance,
	}
}

// PersistenceError wraps a store failure with the operation context needed
// for operator diagnosis
type PersistenceError struct {
	Operation string
	UserID    uint64
	Amount    string
	Err       error
}

// Error implements the error interface
func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure during %s for user %d: %v",
		e.Operation, e.UserID, e.Err)
}

// Unwrap returns the underlying error
func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// Is checks if the target error is an ErrPersistence
func (e *PersistenceError) Is(target error) bool {
	return target == ErrPersistence
}

// LogFields returns a map of fields for structured logging
func (e *PersistenceError) LogFields() map[string]any {
	fields := map[string]any{
		"error_type": "persistence_error",
		"operation":  e.Operation,
		"user_id":    e.UserID,
		"error_code": CodePersistence,
	}
	if e.Amount != "" {
		fields["amount"] = e.Amount
	}
	if e.Err != nil {
		fields["error"] = e.Err.Error()
	}
	return fields
}

// NewPersistenceError wraps a store failure with operation context
func NewPersistenceError(operation string, userID uint64, amount string, err error) error {
	return &PersistenceError{
		Operation: operation,
		UserID:    userID,
		Amount:    amount,
		Err:       err,
	}
}

// IsInsufficientCreditError checks if the error is related to insufficient credit
func IsInsufficientCreditError(err error) bool {
	return errors.Is(err, ErrInsufficientCredit)
}

// IsInvalidAmountError checks if the error is related to amount validation
func IsInvalidAmountError(err error) bool {
	return errors.Is(err, ErrInvalidAmount)
}

// IsPersistenceError checks if the error is a store failure
func IsPersistenceError(err error) bool {
	return errors.Is(err, ErrPersistence)
}
