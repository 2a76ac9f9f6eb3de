// Package purchase provides domain models for payment-backed direct access to
// catalog content. Purchases are created by the external payment flow; this
// core only reads them.
package purchase

import (
	"fmt"
	"time"

	"github.com/atelier-edu/atelier/internal/domain/catalog"
)

// Status represents the status of a purchase
type Status string

const (
	// StatusPending indicates payment has not completed
	StatusPending Status = "pending"
	// StatusCompleted indicates the purchase grants access
	StatusCompleted Status = "completed"
	// StatusRefunded indicates the purchase was refunded
	StatusRefunded Status = "refunded"
)

// IsValid checks if the purchase status is valid
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusRefunded:
		return true
	default:
		return false
	}
}

// String returns the string representation of the status
func (s Status) String() string {
	return string(s)
}

// Purchase grants a principal direct access to a content item. An absent
// expiry means lifetime access. Purchases bypass allowance accounting.
type Purchase struct {
	id          uint
	principalID uint
	ref         catalog.ContentRef
	status      Status
	expiresAt   *time.Time
	createdAt   time.Time
}

// ReconstructPurchase reconstructs a purchase from persistence
func ReconstructPurchase(
	id uint,
	principalID uint,
	ref catalog.ContentRef,
	status Status,
	expiresAt *time.Time,
	createdAt time.Time,
) (*Purchase, error) {
	if id == 0 {
		return nil, fmt.Errorf("purchase ID cannot be zero")
	}
	if principalID == 0 {
		return nil, fmt.Errorf("principal ID is required")
	}
	if !ref.Type.IsValid() {
		return nil, fmt.Errorf("invalid content type: %s", ref.Type)
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid purchase status: %s", status)
	}

	return &Purchase{
		id:          id,
		principalID: principalID,
		ref:         ref,
		status:      status,
		expiresAt:   expiresAt,
		createdAt:   createdAt,
	}, nil
}

// ID returns the purchase ID
func (p *Purchase) ID() uint {
	return p.id
}

// PrincipalID returns the purchasing principal
func (p *Purchase) PrincipalID() uint {
	return p.principalID
}

// Ref returns the purchased content reference
func (p *Purchase) Ref() catalog.ContentRef {
	return p.ref
}

// Status returns the purchase status
func (p *Purchase) Status() Status {
	return p.status
}

// ExpiresAt returns the expiry instant, nil for lifetime access
func (p *Purchase) ExpiresAt() *time.Time {
	return p.expiresAt
}

// CreatedAt returns when the purchase was created
func (p *Purchase) CreatedAt() time.Time {
	return p.createdAt
}

// GrantsAccessAt checks whether the purchase grants access at the given
// instant: completed and not expired.
func (p *Purchase) GrantsAccessAt(t time.Time) bool {
	if p.status != StatusCompleted {
		return false
	}
	if p.expiresAt != nil && !t.Before(*p.expiresAt) {
		return false
	}
	return true
}
