package migration

import (
	"database/sql"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"gorm.io/gorm"

	"github.com/atelier-edu/atelier/internal/shared/logger"
)

// Strategy defines the interface for different migration strategies
type Strategy interface {
	// Migrate executes the migration strategy
	Migrate(db *gorm.DB, models ...interface{}) error
	// GetName returns the strategy name
	GetName() string
}

// GolangMigrateStrategy implements migration using golang-migrate
type GolangMigrateStrategy struct {
	scriptsPath string
	logger      logger.Interface
}

// NewGolangMigrateStrategy creates a new golang-migrate strategy
func NewGolangMigrateStrategy(scriptsPath string) *GolangMigrateStrategy {
	return &GolangMigrateStrategy{
		scriptsPath: scriptsPath,
		logger:      logger.NewLogger().Named("migration.golang-migrate"),
	}
}

// Migrate executes golang-migrate migration
func (s *GolangMigrateStrategy) Migrate(db *gorm.DB, models ...interface{}) error {
	s.logger.Infow("starting golang-migrate migration",
		"scripts_path", s.scriptsPath)

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	m, err := s.createMigrateInstance(sqlDB)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer m.Close()

	currentVersion, dirty, err := m.Version()
	if err != nil && err != migrate.ErrNilVersion {
		s.logger.Errorw("failed to get current migration version", "error", err)
		return fmt.Errorf("failed to get current migration version: %w", err)
	}

	if dirty {
		s.logger.Warnw("database is in dirty state, please fix manually")
		return fmt.Errorf("database is in dirty state at version %d", currentVersion)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		s.logger.Errorw("migration failed", "error", err)
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	finalVersion, _, err := m.Version()
	if err != nil && err != migrate.ErrNilVersion {
		s.logger.Errorw("failed to get final migration version", "error", err)
		return fmt.Errorf("failed to get final migration version: %w", err)
	}

	s.logger.Infow("migration completed successfully",
		"from_version", currentVersion,
		"to_version", finalVersion)

	return nil
}

// GetName returns the strategy name
func (s *GolangMigrateStrategy) GetName() string {
	return "golang_migrate"
}

// createMigrateInstance creates a new migrate instance
func (s *GolangMigrateStrategy) createMigrateInstance(sqlDB *sql.DB) (*migrate.Migrate, error) {
	driver, err := mysql.WithInstance(sqlDB, &mysql.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to create MySQL driver: %w", err)
	}

	sourceURL := fmt.Sprintf("file://%s", s.scriptsPath)
	m, err := migrate.NewWithDatabaseInstance(sourceURL, "mysql", driver)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}

	return m, nil
}

// MigrateDown executes down migrations for the given number of steps
func (s *GolangMigrateStrategy) MigrateDown(db *gorm.DB, steps int) error {
	s.logger.Infow("starting down migration", "steps", steps)

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	m, err := s.createMigrateInstance(sqlDB)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer m.Close()

	if err := m.Steps(-steps); err != nil && err != migrate.ErrNoChange {
		s.logger.Errorw("down migration failed", "error", err)
		return fmt.Errorf("failed to run down migrations: %w", err)
	}

	s.logger.Infow("down migration completed successfully")
	return nil
}

// GetVersion returns the current migration version
func (s *GolangMigrateStrategy) GetVersion(db *gorm.DB) (uint, bool, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return 0, false, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	m, err := s.createMigrateInstance(sqlDB)
	if err != nil {
		return 0, false, fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer m.Close()

	return m.Version()
}

// Force sets the database migration version and clears dirty flag
func (s *GolangMigrateStrategy) Force(db *gorm.DB, version int) error {
	s.logger.Infow("forcing migration version", "version", version)

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	m, err := s.createMigrateInstance(sqlDB)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer m.Close()

	if err := m.Force(version); err != nil {
		s.logger.Errorw("force migration failed", "error", err)
		return fmt.Errorf("failed to force version: %w", err)
	}

	s.logger.Infow("force migration completed successfully", "version", version)
	return nil
}
