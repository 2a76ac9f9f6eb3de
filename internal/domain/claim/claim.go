package claim

import (
	"fmt"
	"time"

	"github.com/atelier-edu/atelier/internal/domain/catalog"
)

// ClaimStatus represents the lifecycle state of a claim.
type ClaimStatus string

const (
	// StatusActive means the claim grants access and counts against the
	// subscription's monthly allowance for its content type.
	StatusActive ClaimStatus = "active"
	// StatusRevoked is terminal. A revoked claim grants nothing but still
	// occupies its (subscription, content) slot.
	StatusRevoked ClaimStatus = "revoked"
)

// IsValid checks whether the status is a known lifecycle state.
func (s ClaimStatus) IsValid() bool {
	return s == StatusActive || s == StatusRevoked
}

// String returns the string representation.
func (s ClaimStatus) String() string {
	return string(s)
}

// Claim is the aggregate root recording that a subscription spent one
// allowance slot on a specific catalog item. At most one claim row exists
// per (subscription, content type, content id) triple; the persistence
// layer enforces this with a uniqueness constraint.
type Claim struct {
	id             uint
	sid            string
	subscriptionID uint
	principalID    uint
	ref            catalog.ContentRef
	period         string
	status         ClaimStatus
	parentClaimID  *uint
	usage          Usage
	createdAt      time.Time
	updatedAt      time.Time
}

// NewClaim creates an active claim for the given subscription and content,
// stamped with the calendar period ("YYYY-MM") it consumes allowance from.
func NewClaim(subscriptionID, principalID uint, sid string, ref catalog.ContentRef, period string) (*Claim, error) {
	if subscriptionID == 0 {
		return nil, fmt.Errorf("subscription ID is required")
	}
	if principalID == 0 {
		return nil, fmt.Errorf("principal ID is required")
	}
	if !ref.Type.IsValid() || ref.ID == 0 {
		return nil, fmt.Errorf("invalid content reference: %s", ref)
	}
	if period == "" {
		return nil, fmt.Errorf("period is required")
	}

	now := time.Now()
	return &Claim{
		sid:            sid,
		subscriptionID: subscriptionID,
		principalID:    principalID,
		ref:            ref,
		period:         period,
		status:         StatusActive,
		usage:          NewUsage(now),
		createdAt:      now,
		updatedAt:      now,
	}, nil
}

// NewChildClaim creates a claim derived from a parent claim. Cascading
// revocation follows these parent edges.
func NewChildClaim(subscriptionID, principalID uint, sid string, ref catalog.ContentRef, period string, parentID uint) (*Claim, error) {
	c, err := NewClaim(subscriptionID, principalID, sid, ref, period)
	if err != nil {
		return nil, err
	}
	if parentID == 0 {
		return nil, fmt.Errorf("parent claim ID is required")
	}
	c.parentClaimID = &parentID
	return c, nil
}

// ReconstructClaim reconstructs a claim from persistence
func ReconstructClaim(
	id uint,
	sid string,
	subscriptionID, principalID uint,
	ref catalog.ContentRef,
	period string,
	status ClaimStatus,
	parentClaimID *uint,
	usage Usage,
	createdAt, updatedAt time.Time,
) (*Claim, error) {
	if id == 0 {
		return nil, fmt.Errorf("claim ID cannot be zero")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid claim status: %s", status)
	}
	return &Claim{
		id:             id,
		sid:            sid,
		subscriptionID: subscriptionID,
		principalID:    principalID,
		ref:            ref,
		period:         period,
		status:         status,
		parentClaimID:  parentClaimID,
		usage:          usage,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}, nil
}

// ID returns the claim ID
func (c *Claim) ID() uint {
	return c.id
}

// SID returns the Stripe-style short ID
func (c *Claim) SID() string {
	return c.sid
}

// SubscriptionID returns the owning subscription's ID
func (c *Claim) SubscriptionID() uint {
	return c.subscriptionID
}

// PrincipalID returns the principal who made the claim
func (c *Claim) PrincipalID() uint {
	return c.principalID
}

// Ref returns the claimed content reference
func (c *Claim) Ref() catalog.ContentRef {
	return c.ref
}

// Period returns the "YYYY-MM" allowance period the claim was made in
func (c *Claim) Period() string {
	return c.period
}

// Status returns the claim status
func (c *Claim) Status() ClaimStatus {
	return c.status
}

// ParentClaimID returns the parent claim's ID if this claim was derived
func (c *Claim) ParentClaimID() *uint {
	return c.parentClaimID
}

// Usage returns the claim's usage counters
func (c *Claim) Usage() Usage {
	return c.usage
}

// CreatedAt returns the creation time
func (c *Claim) CreatedAt() time.Time {
	return c.createdAt
}

// UpdatedAt returns the last update time
func (c *Claim) UpdatedAt() time.Time {
	return c.updatedAt
}

// SetID sets the claim ID after persistence. Can only be called once.
func (c *Claim) SetID(id uint) error {
	if c.id != 0 {
		return fmt.Errorf("claim ID already set")
	}
	if id == 0 {
		return fmt.Errorf("claim ID cannot be zero")
	}
	c.id = id
	return nil
}

// IsActive reports whether the claim currently grants access.
func (c *Claim) IsActive() bool {
	return c.status == StatusActive
}

// Revoke moves the claim to its terminal revoked state. Revoking an
// already revoked claim is an error; revocation is not idempotent.
func (c *Claim) Revoke() error {
	if c.status == StatusRevoked {
		return ErrAlreadyRevoked
	}
	c.status = StatusRevoked
	c.updatedAt = time.Now()
	return nil
}

// RecordSessionStart increments the session counter and refreshes the
// last-accessed timestamp.
func (c *Claim) RecordSessionStart(at time.Time) {
	c.usage.SessionsStarted++
	c.usage.LastAccessedAt = &at
	c.updatedAt = time.Now()
}

// RecordDelegatedUse increments the delegated-use counter. Called on a
// delegate's claim when a dependent accesses content through it.
func (c *Claim) RecordDelegatedUse(at time.Time) {
	c.usage.DelegatedUses++
	c.usage.LastAccessedAt = &at
	c.updatedAt = time.Now()
}
