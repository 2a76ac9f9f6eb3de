package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/atelier-edu/atelier/internal/domain/subscription"
	vo "github.com/atelier-edu/atelier/internal/domain/subscription/valueobjects"
	"github.com/atelier-edu/atelier/internal/infrastructure/persistence/mappers"
	"github.com/atelier-edu/atelier/internal/infrastructure/persistence/models"
	"github.com/atelier-edu/atelier/internal/shared/logger"
)

type SubscriptionRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.SubscriptionMapper
	logger logger.Interface
}

func NewSubscriptionRepository(db *gorm.DB, logger logger.Interface) subscription.SubscriptionRepository {
	return &SubscriptionRepositoryImpl{
		db:     db,
		mapper: mappers.NewSubscriptionMapper(),
		logger: logger,
	}
}

// GetActiveByPrincipal resolves the principal's active subscription: status
// active and end date absent or in the future. Returns (nil, nil) when the
// principal has none.
func (r *SubscriptionRepositoryImpl) GetActiveByPrincipal(ctx context.Context, principalID uint) (*subscription.Subscription, error) {
	var model models.SubscriptionModel

	err := r.db.WithContext(ctx).
		Where("principal_id = ? AND status = ?", principalID, string(vo.StatusActive)).
		Where("end_date IS NULL OR end_date > ?", time.Now().UTC()).
		Order("created_at DESC").
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get active subscription", "principal_id", principalID, "error", err)
		return nil, fmt.Errorf("failed to get active subscription: %w", err)
	}

	entity, err := r.mapper.ToEntity(&model)
	if err != nil {
		return nil, fmt.Errorf("failed to map subscription: %w", err)
	}
	return entity, nil
}

func (r *SubscriptionRepositoryImpl) GetByID(ctx context.Context, subscriptionID uint) (*subscription.Subscription, error) {
	var model models.SubscriptionModel

	if err := r.db.WithContext(ctx).First(&model, subscriptionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get subscription by ID", "subscription_id", subscriptionID, "error", err)
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}

	entity, err := r.mapper.ToEntity(&model)
	if err != nil {
		return nil, fmt.Errorf("failed to map subscription: %w", err)
	}
	return entity, nil
}

// UpdateBenefitSnapshot persists a backfilled benefit snapshot with
// optimistic locking; a lost version race is ignored by the caller since
// the competing writer stored the same live-plan snapshot.
func (r *SubscriptionRepositoryImpl) UpdateBenefitSnapshot(ctx context.Context, sub *subscription.Subscription) error {
	model, err := r.mapper.ToModel(sub)
	if err != nil {
		return fmt.Errorf("failed to map subscription: %w", err)
	}

	result := r.db.WithContext(ctx).
		Model(&models.SubscriptionModel{}).
		Where("id = ? AND version = ?", model.ID, model.Version-1).
		Updates(map[string]interface{}{
			"benefit_snapshot": model.BenefitSnapshot,
			"version":          model.Version,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update benefit snapshot", "subscription_id", model.ID, "error", result.Error)
		return fmt.Errorf("failed to update benefit snapshot: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("benefit snapshot update conflicted for subscription %d", model.ID)
	}

	r.logger.Infow("benefit snapshot backfilled", "subscription_id", model.ID)
	return nil
}
