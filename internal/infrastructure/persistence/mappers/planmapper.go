package mappers

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"github.com/atelier-edu/atelier/internal/domain/subscription"
	"github.com/atelier-edu/atelier/internal/infrastructure/persistence/models"
)

type PlanMapper interface {
	ToEntity(model *models.PlanModel) (*subscription.Plan, error)
	ToModel(entity *subscription.Plan) (*models.PlanModel, error)
}

type PlanMapperImpl struct{}

func NewPlanMapper() PlanMapper {
	return &PlanMapperImpl{}
}

func (m *PlanMapperImpl) ToEntity(model *models.PlanModel) (*subscription.Plan, error) {
	if model == nil {
		return nil, nil
	}

	benefits, err := unmarshalBenefits(model.Benefits)
	if err != nil {
		return nil, fmt.Errorf("plan %d: %w", model.ID, err)
	}

	entity, err := subscription.ReconstructPlan(
		model.ID,
		model.SID,
		model.Name,
		model.Slug,
		model.Status,
		benefits,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct plan entity: %w", err)
	}
	return entity, nil
}

func (m *PlanMapperImpl) ToModel(entity *subscription.Plan) (*models.PlanModel, error) {
	if entity == nil {
		return nil, nil
	}

	benefits, err := marshalBenefits(entity.Benefits())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal plan benefits: %w", err)
	}

	return &models.PlanModel{
		ID:        entity.ID(),
		SID:       entity.SID(),
		Name:      entity.Name(),
		Slug:      entity.Slug(),
		Status:    string(entity.Status()),
		Benefits:  benefits,
		CreatedAt: entity.CreatedAt(),
		UpdatedAt: entity.UpdatedAt(),
	}, nil
}

func unmarshalBenefits(raw datatypes.JSON) (subscription.BenefitMap, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var benefits subscription.BenefitMap
	if err := json.Unmarshal(raw, &benefits); err != nil {
		return nil, fmt.Errorf("failed to unmarshal benefit map: %w", err)
	}
	return benefits, nil
}

func marshalBenefits(benefits subscription.BenefitMap) (datatypes.JSON, error) {
	if benefits == nil {
		return nil, nil
	}
	raw, err := json.Marshal(benefits)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}
