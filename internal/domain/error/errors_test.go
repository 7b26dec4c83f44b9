package error

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorCode(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		expected int
	}{
		{"Insufficient credit", ErrInsufficientCredit, CodeInsufficientCredit},
		{"Invalid amount", ErrInvalidAmount, CodeInvalidAmount},
		{"Invalid user ID", ErrInvalidUserID, CodeInvalidUserID},
		{"Invalid request", ErrInvalidRequest, CodeInvalidRequest},
		{"Persistence", ErrPersistence, CodePersistence},
		{"Wrapped persistence", fmt.Errorf("store: %w", ErrPersistence), CodePersistence},
		{"Unknown error", errors.New("something else"), CodeInternalServer},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ErrorCode(tc.err))
		})
	}
}

func TestInsufficientCreditError(t *testing.T) {
	err := NewInsufficientCreditError(42, "10.0000", "5.5000")

	t.Run("Matches sentinel", func(t *testing.T) {
		assert.ErrorIs(t, err, ErrInsufficientCredit)
		assert.True(t, IsInsufficientCreditError(err))
	})

	t.Run("Carries balance context", func(t *testing.T) {
		var detailed *InsufficientCreditError
		require.ErrorAs(t, err, &detailed)
		assert.Equal(t, uint64(42), detailed.UserID)
		assert.Equal(t, "10.0000", detailed.Requested)
		assert.Equal(t, "5.5000", detailed.Balance)
	})

	t.Run("Message", func(t *testing.T) {
		assert.Equal(t, "insufficient credit for user 42: required 10.0000, available 5.5000", err.Error())
	})

	t.Run("Log fields", func(t *testing.T) {
		var detailed *InsufficientCreditError
		require.ErrorAs(t, err, &detailed)
		fields := detailed.LogFields()
		assert.Equal(t, uint64(42), fields["user_id"])
		assert.Equal(t, CodeInsufficientCredit, fields["error_code"])
	})
}

func TestPersistenceError(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewPersistenceError("deduct_credit", 42, "4.5000", cause)

	t.Run("Matches sentinel and unwraps cause", func(t *testing.T) {
		assert.ErrorIs(t, err, ErrPersistence)
		assert.ErrorIs(t, err, cause)
		assert.True(t, IsPersistenceError(err))
	})

	t.Run("Log fields include amount and cause", func(t *testing.T) {
		var detailed *PersistenceError
		require.ErrorAs(t, err, &detailed)
		fields := detailed.LogFields()
		assert.Equal(t, "deduct_credit", fields["operation"])
		assert.Equal(t, "4.5000", fields["amount"])
		assert.Equal(t, "connection reset", fields["error"])
	})

	t.Run("Empty amount omitted from log fields", func(t *testing.T) {
		bare := &PersistenceError{Operation: "get_balance", UserID: 1}
		_, ok := bare.LogFields()["amount"]
		assert.False(t, ok)
	})
}
