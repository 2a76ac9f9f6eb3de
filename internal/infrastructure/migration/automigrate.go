package migration

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/atelier-edu/atelier/internal/infrastructure/persistence/models"
	"github.com/atelier-edu/atelier/internal/shared/logger"
)

// AutoMigrateModels returns every persistence model in dependency order.
func AutoMigrateModels() []interface{} {
	return []interface{}{
		&models.PrincipalModel{},
		&models.DelegationModel{},
		&models.GroupMemberModel{},
		&models.ProductModel{},
		&models.PurchaseModel{},
		&models.PlanModel{},
		&models.SubscriptionModel{},
		&models.ClaimModel{},
	}
}

// GormAutoMigrateStrategy migrates by diffing struct definitions. Suitable
// for development only; released environments run versioned SQL scripts.
type GormAutoMigrateStrategy struct {
	logger logger.Interface
}

func NewGormAutoMigrateStrategy() Strategy {
	return &GormAutoMigrateStrategy{
		logger: logger.NewLogger().Named("migration.auto"),
	}
}

func (s *GormAutoMigrateStrategy) Migrate(db *gorm.DB, migrateModels ...interface{}) error {
	if len(migrateModels) == 0 {
		migrateModels = AutoMigrateModels()
	}

	s.logger.Infow("running GORM AutoMigrate", "models_count", len(migrateModels))

	if err := db.AutoMigrate(migrateModels...); err != nil {
		return fmt.Errorf("auto migrate failed: %w", err)
	}

	return nil
}

func (s *GormAutoMigrateStrategy) GetName() string {
	return "gorm_auto_migrate"
}
