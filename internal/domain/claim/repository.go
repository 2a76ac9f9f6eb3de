package claim

import (
	"context"

	"github.com/atelier-edu/atelier/internal/domain/catalog"
)

// Repository defines persistence for claims.
//
// Create must be backed by a uniqueness constraint on
// (subscription_id, content_type, content_id) so concurrent claims for the
// same content race safely: exactly one insert wins and the losers surface
// a duplicate-key error the caller converts to an idempotent success.
type Repository interface {
	Create(ctx context.Context, c *Claim) error

	// GetByID returns ErrClaimNotFound when the claim does not exist.
	GetByID(ctx context.Context, id uint) (*Claim, error)

	// GetBySID returns ErrClaimNotFound when the claim does not exist.
	GetBySID(ctx context.Context, sid string) (*Claim, error)

	// GetBySubscriptionContent returns the claim row for the
	// (subscription, content) pair regardless of status, or nil when none
	// exists. Used to distinguish "already claimed" from "never claimed".
	GetBySubscriptionContent(ctx context.Context, subscriptionID uint, ref catalog.ContentRef) (*Claim, error)

	// GetActiveByContent returns the active claim for the content under the
	// subscription, or nil when there is none.
	GetActiveByContent(ctx context.Context, subscriptionID uint, ref catalog.ContentRef) (*Claim, error)

	// ListActiveByContentAny returns active claims for the content across a
	// set of subscriptions. Delegated access resolution scans delegates'
	// subscriptions with this.
	ListActiveByContentAny(ctx context.Context, subscriptionIDs []uint, ref catalog.ContentRef) ([]*Claim, error)

	// CountActiveByPeriod returns the number of active claims the
	// subscription made in the given "YYYY-MM" period, grouped by content
	// type. Revoked claims never count.
	CountActiveByPeriod(ctx context.Context, subscriptionID uint, period string) (map[catalog.ContentType]uint, error)

	// GetChildren returns the direct children of a claim (claims whose
	// parent_claim_id points at it), any status.
	GetChildren(ctx context.Context, parentID uint) ([]*Claim, error)

	// UpdateStatus persists a status change. The write only lands when the
	// stored status still differs from the aggregate's: a concurrent revoke
	// that got there first surfaces as ErrAlreadyRevoked, a missing row as
	// ErrClaimNotFound.
	UpdateStatus(ctx context.Context, c *Claim) error

	// UpdateUsage persists the usage counters.
	UpdateUsage(ctx context.Context, c *Claim) error
}
