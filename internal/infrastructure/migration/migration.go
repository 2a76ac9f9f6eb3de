package migration

import (
	"fmt"
	"path/filepath"
	"strings"

	"gorm.io/gorm"

	"github.com/atelier-edu/atelier/internal/shared/constants"
	"github.com/atelier-edu/atelier/internal/shared/logger"
)

// Manager handles database migrations with different strategies
type Manager struct {
	strategy Strategy
	logger   logger.Interface
}

// NewManager creates a new migration manager
func NewManager(environment string) *Manager {
	var strategy Strategy

	// Choose strategy based on environment
	switch strings.ToLower(environment) {
	case constants.EnvDevelopment:
		strategy = NewGormAutoMigrateStrategy()
	case constants.EnvTest, constants.EnvProduction:
		scriptsPath, _ := filepath.Abs("./internal/infrastructure/migration/scripts")
		strategy = NewGolangMigrateStrategy(scriptsPath)
	default:
		strategy = NewGormAutoMigrateStrategy()
	}

	return &Manager{
		strategy: strategy,
		logger:   logger.NewLogger().Named("migration.manager"),
	}
}

// NewManagerWithStrategy creates a new migration manager with a specific strategy
func NewManagerWithStrategy(strategy Strategy) *Manager {
	return &Manager{
		strategy: strategy,
		logger:   logger.NewLogger().Named("migration.manager"),
	}
}

// Migrate executes the configured migration strategy
func (m *Manager) Migrate(db *gorm.DB, models ...interface{}) error {
	m.logger.Infow("starting database migration",
		"strategy", m.strategy.GetName(),
		"models_count", len(models))

	if err := m.strategy.Migrate(db, models...); err != nil {
		m.logger.Errorw("migration failed",
			"strategy", m.strategy.GetName(),
			"error", err)
		return fmt.Errorf("migration failed with strategy %s: %w", m.strategy.GetName(), err)
	}

	m.logger.Infow("database migration completed successfully",
		"strategy", m.strategy.GetName())

	return nil
}

// GetStrategy returns the current migration strategy
func (m *Manager) GetStrategy() Strategy {
	return m.strategy
}
