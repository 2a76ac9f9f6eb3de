package mappers

import (
	"fmt"

	"github.com/atelier-edu/atelier/internal/domain/principal"
	"github.com/atelier-edu/atelier/internal/infrastructure/persistence/models"
)

type PrincipalMapper interface {
	ToEntity(model *models.PrincipalModel) (*principal.Principal, error)
}

type PrincipalMapperImpl struct{}

func NewPrincipalMapper() PrincipalMapper {
	return &PrincipalMapperImpl{}
}

func (m *PrincipalMapperImpl) ToEntity(model *models.PrincipalModel) (*principal.Principal, error) {
	if model == nil {
		return nil, nil
	}

	entity, err := principal.ReconstructPrincipal(
		model.ID,
		model.SID,
		principal.Role(model.Role),
		model.TeacherID,
		model.BirthDate,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct principal entity: %w", err)
	}
	return entity, nil
}
