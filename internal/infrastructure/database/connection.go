package database

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/atelier-edu/atelier/internal/shared/config"
	appLogger "github.com/atelier-edu/atelier/internal/shared/logger"
)

// slowQueryThreshold flags queries worth investigating. Access checks sit on
// the page render path, so the bar is deliberately low.
const slowQueryThreshold = 100 * time.Millisecond

// Pool fallbacks for configs that leave the tuning keys unset.
const (
	defaultMaxIdleConns    = 10
	defaultMaxOpenConns    = 50
	defaultConnMaxLifetime = 30 * time.Minute
)

var (
	db   *gorm.DB
	dbMu sync.RWMutex
)

// Init opens the MySQL connection and configures the pool.
func Init(cfg *config.DatabaseConfig) error {
	gormLogger := logger.New(
		&slogWriter{},
		logger.Config{
			SlowThreshold:             slowQueryThreshold,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	database, err := gorm.Open(mysql.New(mysql.Config{
		DSN:                       cfg.GetDSN(),
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		Logger:      gormLogger,
		PrepareStmt: true,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := database.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	maxIdle := cfg.MaxIdleConns
	if maxIdle <= 0 {
		maxIdle = defaultMaxIdleConns
	}
	maxOpen := cfg.MaxOpenConns
	if maxOpen <= 0 {
		maxOpen = defaultMaxOpenConns
	}
	maxLifetime := time.Duration(cfg.ConnMaxLifetime) * time.Minute
	if maxLifetime <= 0 {
		maxLifetime = defaultConnMaxLifetime
	}

	sqlDB.SetMaxIdleConns(maxIdle)
	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetConnMaxLifetime(maxLifetime)

	if err := sqlDB.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	dbMu.Lock()
	db = database
	dbMu.Unlock()

	appLogger.Info("database connection established",
		"database", cfg.Database,
		"max_open_conns", maxOpen)

	return nil
}

// Get returns the database connection
func Get() *gorm.DB {
	dbMu.RLock()
	defer dbMu.RUnlock()
	return db
}

// Close closes the database connection
func Close() error {
	dbMu.RLock()
	currentDB := db
	dbMu.RUnlock()

	if currentDB == nil {
		return nil
	}

	sqlDB, err := currentDB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database connection: %w", err)
	}

	appLogger.Info("database connection closed")
	return nil
}

// slogWriter routes GORM's printf-style output onto the structured logger,
// classifying by severity so slow claim-counting queries surface as warnings.
type slogWriter struct{}

func (w *slogWriter) Printf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)

	lower := strings.ToLower(msg)
	switch {
	case strings.Contains(lower, "error"):
		appLogger.Error("database error", "details", msg)
	case strings.Contains(lower, "slow sql"):
		appLogger.Warn("slow query", "details", msg)
	default:
		appLogger.Debug("database query", "details", msg)
	}
}
