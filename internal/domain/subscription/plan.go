package subscription

import (
	"fmt"
	"time"
)

type PlanStatus string

const (
	PlanStatusActive   PlanStatus = "active"
	PlanStatusInactive PlanStatus = "inactive"
)

// Plan defines a subscription tier and the monthly benefits it grants per
// content type. Live plan benefits apply only to subscriptions without a
// recorded snapshot; existing subscribers are insulated from plan edits.
type Plan struct {
	id        uint
	sid       string
	name      string
	slug      string
	status    PlanStatus
	benefits  BenefitMap
	createdAt time.Time
	updatedAt time.Time
}

// NewPlan creates a new active plan with the given benefits.
func NewPlan(name, slug, sid string, benefits BenefitMap) (*Plan, error) {
	if name == "" {
		return nil, fmt.Errorf("plan name is required")
	}
	if slug == "" {
		return nil, fmt.Errorf("plan slug is required")
	}
	if len(name) > 100 {
		return nil, fmt.Errorf("plan name too long (max 100 characters)")
	}

	now := time.Now()
	return &Plan{
		sid:       sid,
		name:      name,
		slug:      slug,
		status:    PlanStatusActive,
		benefits:  benefits.Clone(),
		createdAt: now,
		updatedAt: now,
	}, nil
}

// ReconstructPlan reconstructs a plan from persistence
func ReconstructPlan(
	id uint,
	sid, name, slug string,
	status string,
	benefits BenefitMap,
	createdAt, updatedAt time.Time,
) (*Plan, error) {
	if id == 0 {
		return nil, fmt.Errorf("plan ID cannot be zero")
	}

	planStatus := PlanStatus(status)
	if planStatus != PlanStatusActive && planStatus != PlanStatusInactive {
		return nil, fmt.Errorf("invalid plan status: %s", status)
	}

	return &Plan{
		id:        id,
		sid:       sid,
		name:      name,
		slug:      slug,
		status:    planStatus,
		benefits:  benefits,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}, nil
}

// ID returns the plan ID
func (p *Plan) ID() uint {
	return p.id
}

// SID returns the Stripe-style public identifier
func (p *Plan) SID() string {
	return p.sid
}

// Name returns the plan name
func (p *Plan) Name() string {
	return p.name
}

// Slug returns the plan slug
func (p *Plan) Slug() string {
	return p.slug
}

// Status returns the plan status
func (p *Plan) Status() PlanStatus {
	return p.status
}

// Benefits returns the live benefit map.
func (p *Plan) Benefits() BenefitMap {
	return p.benefits
}

// CreatedAt returns when the plan was created
func (p *Plan) CreatedAt() time.Time {
	return p.createdAt
}

// UpdatedAt returns when the plan was last updated
func (p *Plan) UpdatedAt() time.Time {
	return p.updatedAt
}

// SetID sets the plan ID (only for persistence layer use)
func (p *Plan) SetID(id uint) error {
	if p.id != 0 {
		return fmt.Errorf("plan ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("plan ID cannot be zero")
	}
	p.id = id
	return nil
}
