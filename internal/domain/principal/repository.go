package principal

import "context"

// Repository defines the principal directory collaborator.
type Repository interface {
	// GetByID resolves a principal. Returns (nil, nil) when absent.
	GetByID(ctx context.Context, principalID uint) (*Principal, error)
}

// DelegationRepository defines the relationship directory collaborator.
type DelegationRepository interface {
	// FindDelegates enumerates the delegate principal ids for a dependent,
	// unioning explicit assignment edges with group membership edges and
	// de-duplicating the result. Order is unspecified.
	FindDelegates(ctx context.Context, dependentID uint) ([]uint, error)
}
