package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/atelier-edu/atelier/internal/domain/principal"
	"github.com/atelier-edu/atelier/internal/infrastructure/persistence/models"
	"github.com/atelier-edu/atelier/internal/shared/logger"
)

type DelegationRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewDelegationRepository(db *gorm.DB, logger logger.Interface) principal.DelegationRepository {
	return &DelegationRepositoryImpl{
		db:     db,
		logger: logger,
	}
}

// FindDelegates unions explicit assignment edges with group membership
// edges and de-duplicates the result. Order is unspecified.
func (r *DelegationRepositoryImpl) FindDelegates(ctx context.Context, dependentID uint) ([]uint, error) {
	var assigned []uint
	err := r.db.WithContext(ctx).
		Model(&models.DelegationModel{}).
		Where("dependent_id = ?", dependentID).
		Pluck("delegate_id", &assigned).Error
	if err != nil {
		r.logger.Errorw("failed to query assignment delegates", "dependent_id", dependentID, "error", err)
		return nil, fmt.Errorf("failed to query assignment delegates: %w", err)
	}

	var leaders []uint
	err = r.db.WithContext(ctx).
		Model(&models.GroupMemberModel{}).
		Where("principal_id = ?", dependentID).
		Pluck("leader_id", &leaders).Error
	if err != nil {
		r.logger.Errorw("failed to query group delegates", "dependent_id", dependentID, "error", err)
		return nil, fmt.Errorf("failed to query group delegates: %w", err)
	}

	seen := make(map[uint]struct{}, len(assigned)+len(leaders))
	delegates := make([]uint, 0, len(assigned)+len(leaders))
	for _, id := range append(assigned, leaders...) {
		if id == dependentID {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		delegates = append(delegates, id)
	}
	return delegates, nil
}
