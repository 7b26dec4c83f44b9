package credit

import (
	"context"

	"github.com/virtpanel/credit-ledger/internal/domain/entity"
	errs "github.com/virtpanel/credit-ledger/internal/domain/error"
	"github.com/virtpanel/credit-ledger/internal/domain/port/usecase"
)

// GetBalance returns the current balance, creating the account if absent.
func (s *Service) GetBalance(ctx context.Context, userID uint64) (*usecase.BalanceResult, error) {
	account, err := s.EnsureAccount(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &usecase.BalanceResult{
		UserID:     account.UserID,
		NewBalance: account.Balance,
	}, nil
}

// ListTransactions returns ledger entries for a user ordered newest-first,
// paginated. A non-positive limit falls back to the configured default and
// limits above the cap are clamped; a negative offset is treated as zero.
func (s *Service) ListTransactions(ctx context.Context, userID uint64, limit, offset int) ([]*entity.Transaction, error) {
	if userID == 0 {
		return nil, errs.ErrInvalidUserID
	}

	if limit <= 0 {
		limit = s.config.DefaultPageSize
	}
	if limit > s.config.MaxPageSize {
		limit = s.config.MaxPageSize
	}
	if offset < 0 {
		offset = 0
	}

	transactions, err := s.txRepo.ListByUserID(ctx, userID, limit, offset)
	if err != nil {
		s.logger.Error("Failed to list credit transactions", map[string]any{
			"user_id": userID,
			"limit":   limit,
			"offset":  offset,
			"error":   err.Error(),
		})
		return nil, persistenceFailure("list_transactions", userID, "", err)
	}
	return transactions, nil
}
