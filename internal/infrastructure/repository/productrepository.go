package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/atelier-edu/atelier/internal/domain/catalog"
	"github.com/atelier-edu/atelier/internal/infrastructure/persistence/mappers"
	"github.com/atelier-edu/atelier/internal/infrastructure/persistence/models"
	"github.com/atelier-edu/atelier/internal/shared/logger"
)

type ProductRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.ProductMapper
	logger logger.Interface
}

func NewProductRepository(db *gorm.DB, logger logger.Interface) catalog.Repository {
	return &ProductRepositoryImpl{
		db:     db,
		mapper: mappers.NewProductMapper(),
		logger: logger,
	}
}

func (r *ProductRepositoryImpl) FindProduct(ctx context.Context, ref catalog.ContentRef) (*catalog.Product, error) {
	var model models.ProductModel

	err := r.db.WithContext(ctx).
		Where("content_type = ? AND id = ?", string(ref.Type), ref.ID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to find product", "content", ref.String(), "error", err)
		return nil, fmt.Errorf("failed to find product: %w", err)
	}

	entity, err := r.mapper.ToEntity(&model)
	if err != nil {
		r.logger.Errorw("failed to map product model to entity", "content", ref.String(), "error", err)
		return nil, fmt.Errorf("failed to map product: %w", err)
	}
	return entity, nil
}
