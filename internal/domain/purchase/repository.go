package purchase

import (
	"context"

	"github.com/atelier-edu/atelier/internal/domain/catalog"
)

// Repository defines read access to purchase records.
type Repository interface {
	// FindCompleted returns the principal's completed purchase for the given
	// content, or (nil, nil) when none exists. Expiry is evaluated by the
	// caller so a just-expired record still surfaces for diagnostics.
	FindCompleted(ctx context.Context, principalID uint, ref catalog.ContentRef) (*Purchase, error)
}
