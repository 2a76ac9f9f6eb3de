package mappers

import (
	"fmt"

	"github.com/atelier-edu/atelier/internal/domain/catalog"
	"github.com/atelier-edu/atelier/internal/domain/purchase"
	"github.com/atelier-edu/atelier/internal/infrastructure/persistence/models"
)

type PurchaseMapper interface {
	ToEntity(model *models.PurchaseModel) (*purchase.Purchase, error)
}

type PurchaseMapperImpl struct{}

func NewPurchaseMapper() PurchaseMapper {
	return &PurchaseMapperImpl{}
}

func (m *PurchaseMapperImpl) ToEntity(model *models.PurchaseModel) (*purchase.Purchase, error) {
	if model == nil {
		return nil, nil
	}

	ref, err := catalog.NewContentRef(catalog.ContentType(model.ContentType), model.ContentID)
	if err != nil {
		return nil, fmt.Errorf("invalid content reference on purchase %d: %w", model.ID, err)
	}

	entity, err := purchase.ReconstructPurchase(
		model.ID,
		model.PrincipalID,
		ref,
		purchase.Status(model.Status),
		model.ExpiresAt,
		model.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct purchase entity: %w", err)
	}
	return entity, nil
}
