package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/atelier-edu/atelier/internal/domain/subscription"
	"github.com/atelier-edu/atelier/internal/infrastructure/persistence/mappers"
	"github.com/atelier-edu/atelier/internal/infrastructure/persistence/models"
	"github.com/atelier-edu/atelier/internal/shared/logger"
)

type PlanRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.PlanMapper
	logger logger.Interface
}

func NewPlanRepository(db *gorm.DB, logger logger.Interface) subscription.PlanRepository {
	return &PlanRepositoryImpl{
		db:     db,
		mapper: mappers.NewPlanMapper(),
		logger: logger,
	}
}

func (r *PlanRepositoryImpl) GetByID(ctx context.Context, planID uint) (*subscription.Plan, error) {
	var model models.PlanModel

	if err := r.db.WithContext(ctx).First(&model, planID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get plan by ID", "plan_id", planID, "error", err)
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}

	entity, err := r.mapper.ToEntity(&model)
	if err != nil {
		return nil, fmt.Errorf("failed to map plan: %w", err)
	}
	return entity, nil
}
