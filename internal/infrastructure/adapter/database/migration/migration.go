package migration

import (
	"gorm.io/gorm"

	coreport "github.com/virtpanel/credit-ledger/internal/domain/port/core"
	"github.com/virtpanel/credit-ledger/internal/infrastructure/adapter/model"
)

// Manager manages database migrations
type Manager struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewManager creates a new migration manager
func NewManager(db *gorm.DB, logger coreport.Logger) *Manager {
	return &Manager{
		db:     db,
		logger: logger,
	}
}

// MigrateAll creates or updates the ledger schema
func (m *Manager) MigrateAll() error {
	m.logger.Info("Starting database migrations", nil)

	if err := m.db.AutoMigrate(&model.Account{}, &model.Transaction{}); err != nil {
		m.logger.Error("Failed to migrate ledger schema", map[string]any{
			"error": err.Error(),
		})
		return err
	}

	// Database-level backstop for the non-negative balance invariant. The
	// ledger enforces it under the row lock; the constraint catches writes
	// that bypass the ledger.
	if err := m.ensureBalanceCheck(); err != nil {
		return err
	}

	m.logger.Info("Database migrations completed", nil)
	return nil
}

func (m *Manager) ensureBalanceCheck() error {
	const ddl = `
		ALTER TABLE user_credits
		DROP CONSTRAINT IF EXISTS user_credits_balance_non_negative;
		ALTER TABLE user_credits
		ADD CONSTRAINT user_credits_balance_non_negative CHECK (balance >= 0);
	`
	if err := m.db.Exec(ddl).Error; err != nil {
		m.logger.Error("Failed to install balance check constraint", map[string]any{
			"error": err.Error(),
		})
		return err
	}
	return nil
}
