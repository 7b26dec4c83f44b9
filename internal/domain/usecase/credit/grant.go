package credit

import (
	"context"

	"github.com/virtpanel/credit-ledger/internal/domain/entity"
	"github.com/virtpanel/credit-ledger/internal/domain/port/usecase"
)

// GrantMonthlyFreeCredit applies the configured free credit if the account
// has not been granted one this UTC calendar month. Eligibility is checked
// again after the account row is locked, so two racing calls for the same
// user grant at most once: the loser of the lock sees the winner's grant
// timestamp and backs off without mutating anything.
func (s *Service) GrantMonthlyFreeCredit(ctx context.Context, userID uint64) (*usecase.GrantResult, error) {
	account, err := s.EnsureAccount(ctx, userID)
	if err != nil {
		return nil, err
	}

	// Cheap pre-check outside the transaction; the authoritative check runs
	// under the row lock below.
	if !account.EligibleForMonthlyGrant(s.timeProvider.Now()) {
		return &usecase.GrantResult{Granted: false, NewBalance: account.Balance}, nil
	}

	result := &usecase.GrantResult{}
	err = s.inTransaction(ctx, func(txCtx context.Context) error {
		accounts := s.uow.GetAccountRepository(txCtx)
		ledger := s.uow.GetTransactionRepository(txCtx)

		locked, err := accounts.GetByUserIDForUpdate(txCtx, userID)
		if err != nil {
			return err
		}

		now := s.timeProvider.Now()
		if !locked.EligibleForMonthlyGrant(now) {
			result.Granted = false
			result.NewBalance = locked.Balance
			return nil
		}

		locked.Credit(s.config.MonthlyGrantAmount, s.timeProvider)
		locked.MarkGranted(now)
		if err := accounts.UpdateBalance(txCtx, locked); err != nil {
			return err
		}

		record, err := entity.NewCreditTransaction(
			userID,
			s.config.MonthlyGrantAmount,
			entity.TypeFreeGrant,
			"Monthly free credit grant",
			"",
			s.timeProvider,
		)
		if err != nil {
			return err
		}
		if err := ledger.Create(txCtx, record); err != nil {
			return err
		}

		result.Granted = true
		result.Amount = s.config.MonthlyGrantAmount
		result.NewBalance = locked.Balance
		return nil
	})
	if err != nil {
		s.logger.Error("Monthly free credit grant failed", map[string]any{
			"user_id": userID,
			"amount":  entity.FormatAmount(s.config.MonthlyGrantAmount),
			"error":   err.Error(),
		})
		return nil, persistenceFailure("grant_monthly_free_credit", userID,
			entity.FormatAmount(s.config.MonthlyGrantAmount), err)
	}

	if result.Granted {
		s.logger.Info("Monthly free credit granted", map[string]any{
			"user_id":     userID,
			"amount":      entity.FormatAmount(result.Amount),
			"new_balance": entity.FormatAmount(result.NewBalance),
		})
	}
	return result, nil
}
