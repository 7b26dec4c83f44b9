package credit

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/virtpanel/credit-ledger/internal/domain/entity"
	errs "github.com/virtpanel/credit-ledger/internal/domain/error"
	"github.com/virtpanel/credit-ledger/internal/domain/port/usecase"
)

// AddCredit increases the account balance by amount and appends a completed
// ledger entry, atomically. GatewayRef carries the external payment
// reference for purchase-type entries and may be empty.
func (s *Service) AddCredit(
	ctx context.Context,
	userID uint64,
	amount decimal.Decimal,
	txType entity.TransactionType,
	description string,
	gatewayRef string,
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

		locked.Credit(amount, s.timeProvider)
		if err := accounts.UpdateBalance(txCtx, locked); err != nil {
			return err
		}

		record, err := entity.NewCreditTransaction(userID, amount, txType, description, gatewayRef, s.timeProvider)
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
		s.logger.Error("Add credit failed", map[string]any{
			"user_id": userID,
			"amount":  entity.FormatAmount(amount),
			"type":    string(txType),
			"error":   err.Error(),
		})
		return nil, persistenceFailure("add_credit", userID, entity.FormatAmount(amount), err)
	}

	s.logger.Info("Credit added", map[string]any{
		"user_id":     userID,
		"amount":      entity.FormatAmount(amount),
		"type":        string(txType),
		"gateway_ref": gatewayRef,
		"new_balance": entity.FormatAmount(result.NewBalance),
	})
	return result, nil
}
