package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/atelier-edu/atelier/internal/domain/catalog"
	"github.com/atelier-edu/atelier/internal/domain/purchase"
	"github.com/atelier-edu/atelier/internal/infrastructure/persistence/mappers"
	"github.com/atelier-edu/atelier/internal/infrastructure/persistence/models"
	"github.com/atelier-edu/atelier/internal/shared/logger"
)

type PurchaseRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.PurchaseMapper
	logger logger.Interface
}

func NewPurchaseRepository(db *gorm.DB, logger logger.Interface) purchase.Repository {
	return &PurchaseRepositoryImpl{
		db:     db,
		mapper: mappers.NewPurchaseMapper(),
		logger: logger,
	}
}

func (r *PurchaseRepositoryImpl) FindCompleted(ctx context.Context, principalID uint, ref catalog.ContentRef) (*purchase.Purchase, error) {
	var model models.PurchaseModel

	err := r.db.WithContext(ctx).
		Where("principal_id = ? AND content_type = ? AND content_id = ? AND status = ?",
			principalID, string(ref.Type), ref.ID, string(purchase.StatusCompleted)).
		Order("created_at DESC").
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to find completed purchase",
			"principal_id", principalID,
			"content", ref.String(),
			"error", err,
		)
		return nil, fmt.Errorf("failed to find completed purchase: %w", err)
	}

	entity, err := r.mapper.ToEntity(&model)
	if err != nil {
		return nil, fmt.Errorf("failed to map purchase: %w", err)
	}
	return entity, nil
}
