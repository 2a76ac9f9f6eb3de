package mappers

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"github.com/atelier-edu/atelier/internal/domain/catalog"
	"github.com/atelier-edu/atelier/internal/domain/claim"
	"github.com/atelier-edu/atelier/internal/infrastructure/persistence/models"
)

type ClaimMapper interface {
	ToEntity(model *models.ClaimModel) (*claim.Claim, error)
	ToModel(entity *claim.Claim) (*models.ClaimModel, error)
	ToEntities(models []*models.ClaimModel) ([]*claim.Claim, error)
}

type ClaimMapperImpl struct{}

func NewClaimMapper() ClaimMapper {
	return &ClaimMapperImpl{}
}

func (m *ClaimMapperImpl) ToEntity(model *models.ClaimModel) (*claim.Claim, error) {
	if model == nil {
		return nil, nil
	}

	ref, err := catalog.NewContentRef(catalog.ContentType(model.ContentType), model.ContentID)
	if err != nil {
		return nil, fmt.Errorf("invalid content reference on claim %d: %w", model.ID, err)
	}

	var usage claim.Usage
	if model.Usage != nil {
		if err := json.Unmarshal(model.Usage, &usage); err != nil {
			return nil, fmt.Errorf("failed to unmarshal claim usage: %w", err)
		}
	}

	entity, err := claim.ReconstructClaim(
		model.ID,
		model.SID,
		model.SubscriptionID,
		model.PrincipalID,
		ref,
		model.Period,
		claim.ClaimStatus(model.Status),
		model.ParentClaimID,
		usage,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct claim entity: %w", err)
	}
	return entity, nil
}

func (m *ClaimMapperImpl) ToModel(entity *claim.Claim) (*models.ClaimModel, error) {
	if entity == nil {
		return nil, nil
	}

	usage, err := json.Marshal(entity.Usage())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal claim usage: %w", err)
	}

	return &models.ClaimModel{
		ID:             entity.ID(),
		SID:            entity.SID(),
		SubscriptionID: entity.SubscriptionID(),
		PrincipalID:    entity.PrincipalID(),
		ContentType:    string(entity.Ref().Type),
		ContentID:      entity.Ref().ID,
		Period:         entity.Period(),
		Status:         string(entity.Status()),
		ParentClaimID:  entity.ParentClaimID(),
		Usage:          datatypes.JSON(usage),
		CreatedAt:      entity.CreatedAt(),
		UpdatedAt:      entity.UpdatedAt(),
	}, nil
}

func (m *ClaimMapperImpl) ToEntities(claimModels []*models.ClaimModel) ([]*claim.Claim, error) {
	entities := make([]*claim.Claim, 0, len(claimModels))
	for _, model := range claimModels {
		entity, err := m.ToEntity(model)
		if err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}
	return entities, nil
}
