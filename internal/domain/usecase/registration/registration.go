package registration

import (
	"context"

	"github.com/shopspring/decimal"

	coreport "github.com/virtpanel/credit-ledger/internal/domain/port/core"
	"github.com/virtpanel/credit-ledger/internal/domain/port/usecase"
)

// Result reports the state of a newly registered credit account
type Result struct {
	UserID  uint64
	Granted bool
	Balance decimal.Decimal
}

// Service runs the credit side of user registration: ensure the account
// exists, then apply the first monthly free credit.
type Service struct {
	ledger usecase.CreditLedger
	logger coreport.Logger
}

// NewService creates a registration hook backed by the given ledger
func NewService(ledger usecase.CreditLedger, logger coreport.Logger) *Service {
	return &Service{
		ledger: ledger,
		logger: logger,
	}
}

// RegisterAccount creates the credit account for a new user and grants the
// initial free credit. A grant failure after a successful ensure is
// reported but does not undo the account creation.
func (s *Service) RegisterAccount(ctx context.Context, userID uint64) (*Result, error) {
	account, err := s.ledger.EnsureAccount(ctx, userID)
	if err != nil {
		return nil, err
	}

	grant, err := s.ledger.GrantMonthlyFreeCredit(ctx, userID)
	if err != nil {
		s.logger.Warn("Initial free credit grant failed during registration", map[string]any{
			"user_id": userID,
			"error":   err.Error(),
		})
		return &Result{UserID: userID, Granted: false, Balance: account.Balance}, err
	}

	return &Result{
		UserID:  userID,
		Granted: grant.Granted,
		Balance: grant.NewBalance,
	}, nil
}
