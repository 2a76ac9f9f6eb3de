package usecases

import "context"

// Transactor runs a function inside a database transaction. Claim creation
// and cascading revocation use it so partial writes are never observed.
type Transactor interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// AllowanceCache caches computed allowance snapshots per subscription and
// period. Optional: use cases work without one.
type AllowanceCache interface {
	// GetSnapshot returns the cached snapshot, or (nil, nil) on a miss.
	GetSnapshot(ctx context.Context, subscriptionID uint, period string) (*AllowanceSnapshot, error)
	// SetSnapshot stores a snapshot.
	SetSnapshot(ctx context.Context, snapshot *AllowanceSnapshot) error
	// Invalidate drops the cached snapshot for a subscription and period.
	Invalidate(ctx context.Context, subscriptionID uint, period string) error
}
