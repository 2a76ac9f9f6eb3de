package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/atelier-edu/atelier/internal/domain/principal"
	"github.com/atelier-edu/atelier/internal/infrastructure/persistence/mappers"
	"github.com/atelier-edu/atelier/internal/infrastructure/persistence/models"
	"github.com/atelier-edu/atelier/internal/shared/logger"
)

type PrincipalRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.PrincipalMapper
	logger logger.Interface
}

func NewPrincipalRepository(db *gorm.DB, logger logger.Interface) principal.Repository {
	return &PrincipalRepositoryImpl{
		db:     db,
		mapper: mappers.NewPrincipalMapper(),
		logger: logger,
	}
}

func (r *PrincipalRepositoryImpl) GetByID(ctx context.Context, principalID uint) (*principal.Principal, error) {
	var model models.PrincipalModel

	if err := r.db.WithContext(ctx).First(&model, principalID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get principal by ID", "principal_id", principalID, "error", err)
		return nil, fmt.Errorf("failed to get principal: %w", err)
	}

	entity, err := r.mapper.ToEntity(&model)
	if err != nil {
		return nil, fmt.Errorf("failed to map principal: %w", err)
	}
	return entity, nil
}
