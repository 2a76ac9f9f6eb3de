package mappers

import (
	"fmt"

	"github.com/atelier-edu/atelier/internal/domain/catalog"
	"github.com/atelier-edu/atelier/internal/infrastructure/persistence/models"
)

type ProductMapper interface {
	ToEntity(model *models.ProductModel) (*catalog.Product, error)
}

type ProductMapperImpl struct{}

func NewProductMapper() ProductMapper {
	return &ProductMapperImpl{}
}

func (m *ProductMapperImpl) ToEntity(model *models.ProductModel) (*catalog.Product, error) {
	if model == nil {
		return nil, nil
	}

	contentType, err := catalog.ParseContentType(model.ContentType)
	if err != nil {
		return nil, fmt.Errorf("invalid content type on product %d: %w", model.ID, err)
	}

	entity, err := catalog.ReconstructProduct(
		model.ID,
		model.SID,
		contentType,
		model.Title,
		model.OwnerID,
		model.Published,
		model.MinimumAge,
		model.PublishedAt,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct product entity: %w", err)
	}
	return entity, nil
}
