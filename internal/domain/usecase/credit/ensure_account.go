package credit

import (
	"context"
	"errors"

	"github.com/virtpanel/credit-ledger/internal/domain/entity"
	errs "github.com/virtpanel/credit-ledger/internal/domain/error"
)

// EnsureAccount returns the account for userID, creating it with a zero
// balance and no grant history if absent. Repeated and concurrent calls are
// safe: the unique constraint on user_id makes the create race lose cleanly,
// in which case the existing row is returned.
func (s *Service) EnsureAccount(ctx context.Context, userID uint64) (*entity.Account, error) {
	if userID == 0 {
		return nil, errs.ErrInvalidUserID
	}

	account, err := s.accountRepo.GetByUserID(ctx, userID)
	if err == nil {
		return account, nil
	}
	if !errors.Is(err, errs.ErrAccountNotFound) {
		return nil, persistenceFailure("ensure_account", userID, "", err)
	}

	account, err = entity.NewAccount(userID, s.timeProvider)
	if err != nil {
		return nil, err
	}

	if err := s.accountRepo.Create(ctx, account); err != nil {
		if errors.Is(err, errs.ErrDuplicateAccount) {
			// Lost the creation race; the other writer's row is the account.
			return s.accountRepo.GetByUserID(ctx, userID)
		}
		return nil, persistenceFailure("ensure_account", userID, "", err)
	}

	s.logger.Info("Credit account created", map[string]any{
		"user_id": userID,
	})
	return account, nil
}
