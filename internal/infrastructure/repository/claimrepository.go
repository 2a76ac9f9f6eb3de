package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/atelier-edu/atelier/internal/domain/catalog"
	"github.com/atelier-edu/atelier/internal/domain/claim"
	"github.com/atelier-edu/atelier/internal/infrastructure/persistence/mappers"
	"github.com/atelier-edu/atelier/internal/infrastructure/persistence/models"
	"github.com/atelier-edu/atelier/internal/shared/db"
	"github.com/atelier-edu/atelier/internal/shared/logger"
)

type ClaimRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.ClaimMapper
	logger logger.Interface
}

func NewClaimRepository(db *gorm.DB, logger logger.Interface) claim.Repository {
	return &ClaimRepositoryImpl{
		db:     db,
		mapper: mappers.NewClaimMapper(),
		logger: logger,
	}
}

// Create inserts the claim, joining an ambient transaction when one is in
// the context. The composite unique index is the race arbiter: duplicate
// inserts surface the engine's duplicate-key error untranslated so callers
// can detect it with errors.IsDuplicateError.
func (r *ClaimRepositoryImpl) Create(ctx context.Context, c *claim.Claim) error {
	model, err := r.mapper.ToModel(c)
	if err != nil {
		r.logger.Errorw("failed to map claim entity to model", "error", err)
		return fmt.Errorf("failed to map claim entity: %w", err)
	}

	conn := db.GetTxFromContext(ctx, r.db)
	if err := conn.Create(model).Error; err != nil {
		return err
	}

	if err := c.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set claim ID: %w", err)
	}

	r.logger.Infow("claim created",
		"id", model.ID,
		"sid", model.SID,
		"subscription_id", model.SubscriptionID,
		"content_type", model.ContentType,
		"content_id", model.ContentID,
	)
	return nil
}

func (r *ClaimRepositoryImpl) GetByID(ctx context.Context, id uint) (*claim.Claim, error) {
	var model models.ClaimModel

	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, claim.ErrClaimNotFound
		}
		r.logger.Errorw("failed to get claim by ID", "claim_id", id, "error", err)
		return nil, fmt.Errorf("failed to get claim: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *ClaimRepositoryImpl) GetBySID(ctx context.Context, sid string) (*claim.Claim, error) {
	var model models.ClaimModel

	if err := r.db.WithContext(ctx).Where("sid = ?", sid).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, claim.ErrClaimNotFound
		}
		r.logger.Errorw("failed to get claim by SID", "claim_sid", sid, "error", err)
		return nil, fmt.Errorf("failed to get claim: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *ClaimRepositoryImpl) GetBySubscriptionContent(ctx context.Context, subscriptionID uint, ref catalog.ContentRef) (*claim.Claim, error) {
	var model models.ClaimModel

	err := r.db.WithContext(ctx).
		Where("subscription_id = ? AND content_type = ? AND content_id = ?",
			subscriptionID, string(ref.Type), ref.ID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get claim by subscription content",
			"subscription_id", subscriptionID,
			"content", ref.String(),
			"error", err,
		)
		return nil, fmt.Errorf("failed to get claim: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *ClaimRepositoryImpl) GetActiveByContent(ctx context.Context, subscriptionID uint, ref catalog.ContentRef) (*claim.Claim, error) {
	var model models.ClaimModel

	err := r.db.WithContext(ctx).
		Where("subscription_id = ? AND content_type = ? AND content_id = ? AND status = ?",
			subscriptionID, string(ref.Type), ref.ID, string(claim.StatusActive)).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get active claim",
			"subscription_id", subscriptionID,
			"content", ref.String(),
			"error", err,
		)
		return nil, fmt.Errorf("failed to get active claim: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *ClaimRepositoryImpl) ListActiveByContentAny(ctx context.Context, subscriptionIDs []uint, ref catalog.ContentRef) ([]*claim.Claim, error) {
	if len(subscriptionIDs) == 0 {
		return nil, nil
	}

	var claimModels []*models.ClaimModel
	err := r.db.WithContext(ctx).
		Where("subscription_id IN ? AND content_type = ? AND content_id = ? AND status = ?",
			subscriptionIDs, string(ref.Type), ref.ID, string(claim.StatusActive)).
		Find(&claimModels).Error
	if err != nil {
		r.logger.Errorw("failed to list active claims",
			"subscription_ids", subscriptionIDs,
			"content", ref.String(),
			"error", err,
		)
		return nil, fmt.Errorf("failed to list active claims: %w", err)
	}

	return r.mapper.ToEntities(claimModels)
}

// CountActiveByPeriod counts active claims per content type for one
// subscription in one "YYYY-MM" period. Revoked claims never count.
func (r *ClaimRepositoryImpl) CountActiveByPeriod(ctx context.Context, subscriptionID uint, period string) (map[catalog.ContentType]uint, error) {
	type row struct {
		ContentType string
		Count       uint
	}
	var rows []row

	err := r.db.WithContext(ctx).
		Model(&models.ClaimModel{}).
		Select("content_type, COUNT(*) as count").
		Where("subscription_id = ? AND period = ? AND status = ?",
			subscriptionID, period, string(claim.StatusActive)).
		Group("content_type").
		Scan(&rows).Error
	if err != nil {
		r.logger.Errorw("failed to count claims by period",
			"subscription_id", subscriptionID,
			"period", period,
			"error", err,
		)
		return nil, fmt.Errorf("failed to count claims: %w", err)
	}

	counts := make(map[catalog.ContentType]uint, len(rows))
	for _, r := range rows {
		counts[catalog.ContentType(r.ContentType)] = r.Count
	}
	return counts, nil
}

func (r *ClaimRepositoryImpl) GetChildren(ctx context.Context, parentID uint) ([]*claim.Claim, error) {
	var claimModels []*models.ClaimModel

	err := r.db.WithContext(ctx).
		Where("parent_claim_id = ?", parentID).
		Find(&claimModels).Error
	if err != nil {
		r.logger.Errorw("failed to get child claims", "parent_claim_id", parentID, "error", err)
		return nil, fmt.Errorf("failed to get child claims: %w", err)
	}

	return r.mapper.ToEntities(claimModels)
}

func (r *ClaimRepositoryImpl) UpdateStatus(ctx context.Context, c *claim.Claim) error {
	conn := db.GetTxFromContext(ctx, r.db)

	result := conn.Model(&models.ClaimModel{}).
		Where("id = ? AND status <> ?", c.ID(), string(c.Status())).
		Updates(map[string]interface{}{
			"status":     string(c.Status()),
			"updated_at": c.UpdatedAt(),
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update claim status", "claim_id", c.ID(), "error", result.Error)
		return fmt.Errorf("failed to update claim status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		// Either the row is gone or a concurrent writer already moved it
		// to this status. Exactly one revoker may report success.
		if c.Status() == claim.StatusRevoked {
			return claim.ErrAlreadyRevoked
		}
		return claim.ErrClaimNotFound
	}
	return nil
}

func (r *ClaimRepositoryImpl) UpdateUsage(ctx context.Context, c *claim.Claim) error {
	model, err := r.mapper.ToModel(c)
	if err != nil {
		return fmt.Errorf("failed to map claim: %w", err)
	}

	result := r.db.WithContext(ctx).
		Model(&models.ClaimModel{}).
		Where("id = ?", c.ID()).
		Updates(map[string]interface{}{
			"usage":      model.Usage,
			"updated_at": model.UpdatedAt,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update claim usage", "claim_id", c.ID(), "error", result.Error)
		return fmt.Errorf("failed to update claim usage: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return claim.ErrClaimNotFound
	}
	return nil
}
