package catalog

import "context"

// Repository defines the catalog store collaborator. The core never mutates
// products; it only resolves them for access and claim decisions.
type Repository interface {
	// FindProduct resolves a content reference to its catalog record.
	// Returns (nil, nil) when the product does not exist.
	FindProduct(ctx context.Context, ref ContentRef) (*Product, error)
}
