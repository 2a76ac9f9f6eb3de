package mappers

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"github.com/atelier-edu/atelier/internal/domain/subscription"
	vo "github.com/atelier-edu/atelier/internal/domain/subscription/valueobjects"
	"github.com/atelier-edu/atelier/internal/infrastructure/persistence/models"
)

type SubscriptionMapper interface {
	ToEntity(model *models.SubscriptionModel) (*subscription.Subscription, error)
	ToModel(entity *subscription.Subscription) (*models.SubscriptionModel, error)
}

type SubscriptionMapperImpl struct{}

func NewSubscriptionMapper() SubscriptionMapper {
	return &SubscriptionMapperImpl{}
}

func (m *SubscriptionMapperImpl) ToEntity(model *models.SubscriptionModel) (*subscription.Subscription, error) {
	if model == nil {
		return nil, nil
	}

	status := vo.SubscriptionStatus(model.Status)
	if !vo.ValidStatuses[status] {
		return nil, fmt.Errorf("invalid subscription status: %s", model.Status)
	}

	snapshot, err := unmarshalBenefits(model.BenefitSnapshot)
	if err != nil {
		return nil, fmt.Errorf("subscription %d: %w", model.ID, err)
	}

	var metadata map[string]interface{}
	if model.Metadata != nil {
		if err := json.Unmarshal(model.Metadata, &metadata); err != nil {
			return nil, fmt.Errorf("failed to unmarshal metadata: %w", err)
		}
	}

	entity, err := subscription.ReconstructSubscription(
		model.ID,
		model.SID,
		model.PrincipalID,
		model.PlanID,
		status,
		model.EndDate,
		snapshot,
		metadata,
		model.Version,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct subscription entity: %w", err)
	}
	return entity, nil
}

func (m *SubscriptionMapperImpl) ToModel(entity *subscription.Subscription) (*models.SubscriptionModel, error) {
	if entity == nil {
		return nil, nil
	}

	snapshot, err := marshalBenefits(entity.BenefitSnapshot())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal benefit snapshot: %w", err)
	}

	var metadata datatypes.JSON
	if len(entity.Metadata()) > 0 {
		raw, err := json.Marshal(entity.Metadata())
		if err != nil {
			return nil, fmt.Errorf("failed to marshal metadata: %w", err)
		}
		metadata = datatypes.JSON(raw)
	}

	return &models.SubscriptionModel{
		ID:              entity.ID(),
		SID:             entity.SID(),
		PrincipalID:     entity.PrincipalID(),
		PlanID:          entity.PlanID(),
		Status:          string(entity.Status()),
		EndDate:         entity.EndDate(),
		BenefitSnapshot: snapshot,
		Metadata:        metadata,
		Version:         entity.Version(),
		CreatedAt:       entity.CreatedAt(),
		UpdatedAt:       entity.UpdatedAt(),
	}, nil
}
