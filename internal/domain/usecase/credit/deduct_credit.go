package credit

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/virtpanel/credit-ledger/internal/domain/entity"
	errs "github.com/virtpanel/credit-ledger/internal/domain/error"
	"github.com/virtpanel/credit-ledger/internal/domain/port/usecase"
)

// DeductCredit decreases the account balance by amount and appends a
// completed ledger entry with the negated amount, atomically. The balance
// check runs after the row lock is taken, so two concurrent deductions that
// individually fit but jointly overdraw cannot both succeed: the second
// sees the first's decrement and is rejected.
func (s *Service) DeductCredit(
	ctx context.Context,
	userID uint64,
	amount decimal.Decimal,
	txType entity.TransactionType,
	description string,
) (*usecase.BalanceResult, error) {
	if userID == 0 {
		return nil, errs.ErrInvalidUserID
	}
	if err := entity.ValidateAmount(amount); err != nil {
		return nil, err
	}

	if _, err := s.EnsureAccount(ctx, userID); err != nil {
		return nil, err
	}

	result := &usecase.BalanceResult{UserID: userID}
	err := s.inTransaction(ctx, func(txCtx context.Context) error {
		accounts := s.uow.GetAccountRepository(txCtx)
		ledger := s.uow.GetTransactionRepository(txCtx)

		locked, err := accounts.GetByUserIDForUpdate(txCtx, userID)
		if err != nil {
			return err
		}

		if err := locked.Debit(amount, s.timeProvider); err != nil {
			return err
		}
		if err := accounts.UpdateBalance(txCtx, locked); err != nil {
			return err
		}

		record, err := entity.NewDebitTransaction(userID, amount, txType, description, s.timeProvider)
		if err != nil {
			return err
		}
		if err := ledger.Create(txCtx, record); err != nil {
			return err
		}

		result.NewBalance = locked.Balance
		return nil
	})
	if err != nil {
		if errs.IsInsufficientCreditError(err) {
			s.logger.Warn("Deduction rejected, insufficient credit", map[string]any{
				"user_id": userID,
				"amount":  entity.FormatAmount(amount),
				"type":    string(txType),
			})
			return nil, err
		}
		s.logger.Error("Deduct credit failed", map[string]any{
			"user_id": userID,
			"amount":  entity.FormatAmount(amount),
			"type":    string(txType),
			"error":   err.Error(),
		})
		return nil, persistenceFailure("deduct_credit", userID, entity.FormatAmount(amount), err)
	}

	s.logger.Info("Credit deducted", map[string]any{
		"user_id":     userID,
		"amount":      entity.FormatAmount(amount),
		"type":        string(txType),
		"new_balance": entity.FormatAmount(result.NewBalance),
	})
	return result, nil
}
