package subscription

import "context"

// SubscriptionRepository defines the billing store collaborator. The core
// reads subscriptions and, as the single exception, writes a benefit
// snapshot back onto legacy rows that lack one.
type SubscriptionRepository interface {
	// GetActiveByPrincipal resolves the principal's active subscription:
	// status active and end instant absent or in the future. Returns
	// (nil, nil) when the principal has none.
	GetActiveByPrincipal(ctx context.Context, principalID uint) (*Subscription, error)

	// GetByID resolves a subscription. Returns (nil, nil) when absent.
	GetByID(ctx context.Context, subscriptionID uint) (*Subscription, error)

	// UpdateBenefitSnapshot persists a backfilled benefit snapshot.
	UpdateBenefitSnapshot(ctx context.Context, sub *Subscription) error
}

// PlanRepository defines read access to live plans.
type PlanRepository interface {
	// GetByID resolves a plan. Returns (nil, nil) when absent.
	GetByID(ctx context.Context, planID uint) (*Plan, error)
}
