// Package subscription provides the subscription aggregate, plans, and the
// benefit snapshot mechanism that insulates existing subscribers from later
// plan edits.
package subscription

import (
	"fmt"
	"time"

	vo "github.com/atelier-edu/atelier/internal/domain/subscription/valueobjects"
)

// Subscription represents the subscription aggregate root. At most one
// subscription per principal is considered active at evaluation time.
type Subscription struct {
	id              uint
	sid             string
	principalID     uint
	planID          uint
	status          vo.SubscriptionStatus
	endDate         *time.Time
	benefitSnapshot BenefitMap
	metadata        map[string]interface{}
	version         int
	createdAt       time.Time
	updatedAt       time.Time
}

// NewSubscription creates a pending subscription for a principal on a plan,
// snapshotting the plan's current benefits.
func NewSubscription(principalID, planID uint, sid string, snapshot BenefitMap) (*Subscription, error) {
	if principalID == 0 {
		return nil, fmt.Errorf("principal ID is required")
	}
	if planID == 0 {
		return nil, fmt.Errorf("plan ID is required")
	}

	now := time.Now()
	return &Subscription{
		sid:             sid,
		principalID:     principalID,
		planID:          planID,
		status:          vo.StatusPending,
		benefitSnapshot: snapshot.Clone(),
		metadata:        make(map[string]interface{}),
		version:         1,
		createdAt:       now,
		updatedAt:       now,
	}, nil
}

// ReconstructSubscription reconstructs a subscription from persistence
func ReconstructSubscription(
	id uint,
	sid string,
	principalID, planID uint,
	status vo.SubscriptionStatus,
	endDate *time.Time,
	benefitSnapshot BenefitMap,
	metadata map[string]interface{},
	version int,
	createdAt, updatedAt time.Time,
) (*Subscription, error) {
	if id == 0 {
		return nil, fmt.Errorf("subscription ID cannot be zero")
	}
	if principalID == 0 {
		return nil, fmt.Errorf("principal ID is required")
	}
	if planID == 0 {
		return nil, fmt.Errorf("plan ID is required")
	}
	if !vo.ValidStatuses[status] {
		return nil, fmt.Errorf("invalid subscription status: %s", status)
	}

	if metadata == nil {
		metadata = make(map[string]interface{})
	}

	return &Subscription{
		id:              id,
		sid:             sid,
		principalID:     principalID,
		planID:          planID,
		status:          status,
		endDate:         endDate,
		benefitSnapshot: benefitSnapshot,
		metadata:        metadata,
		version:         version,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}, nil
}

// ID returns the subscription ID
func (s *Subscription) ID() uint {
	return s.id
}

// SID returns the Stripe-style public identifier
func (s *Subscription) SID() string {
	return s.sid
}

// PrincipalID returns the owning principal
func (s *Subscription) PrincipalID() uint {
	return s.principalID
}

// PlanID returns the plan ID
func (s *Subscription) PlanID() uint {
	return s.planID
}

// Status returns the subscription status
func (s *Subscription) Status() vo.SubscriptionStatus {
	return s.status
}

// EndDate returns the optional end instant, nil while open-ended
func (s *Subscription) EndDate() *time.Time {
	return s.endDate
}

// BenefitSnapshot returns the benefits frozen at subscription time; nil for
// legacy rows that predate snapshotting.
func (s *Subscription) BenefitSnapshot() BenefitMap {
	return s.benefitSnapshot
}

// Metadata returns the subscription metadata
func (s *Subscription) Metadata() map[string]interface{} {
	return s.metadata
}

// Version returns the aggregate version for optimistic locking
func (s *Subscription) Version() int {
	return s.version
}

// CreatedAt returns when the subscription was created
func (s *Subscription) CreatedAt() time.Time {
	return s.createdAt
}

// UpdatedAt returns when the subscription was last updated
func (s *Subscription) UpdatedAt() time.Time {
	return s.updatedAt
}

// SetID sets the subscription ID (only for persistence layer use)
func (s *Subscription) SetID(id uint) error {
	if s.id != 0 {
		return fmt.Errorf("subscription ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("subscription ID cannot be zero")
	}
	s.id = id
	return nil
}

// IsActiveAt reports whether the subscription can draw benefits at the given
// instant: status active and end instant absent or in the future.
func (s *Subscription) IsActiveAt(t time.Time) bool {
	if !s.status.CanUseService() {
		return false
	}
	if s.endDate != nil && !t.Before(*s.endDate) {
		return false
	}
	return true
}

// EffectiveBenefits resolves the benefit map to evaluate claims against:
// the snapshot when present, otherwise the live plan's benefits. livePlan may
// be nil when a snapshot exists.
func (s *Subscription) EffectiveBenefits(livePlan *Plan) BenefitMap {
	if s.benefitSnapshot != nil {
		return s.benefitSnapshot
	}
	if livePlan != nil {
		return livePlan.Benefits()
	}
	return nil
}

// RecordBenefitSnapshot backfills a snapshot onto a legacy subscription.
// The snapshot is written once; later plan edits must not reach the
// subscriber through this path.
func (s *Subscription) RecordBenefitSnapshot(benefits BenefitMap) error {
	if s.benefitSnapshot != nil {
		return ErrSnapshotAlreadySet
	}
	s.benefitSnapshot = benefits.Clone()
	s.updatedAt = time.Now()
	s.version++
	return nil
}

// Activate activates a subscription
func (s *Subscription) Activate() error {
	if s.status == vo.StatusActive {
		return nil
	}
	if !s.status.CanTransitionTo(vo.StatusActive) {
		return fmt.Errorf("%w: from %s to active", ErrInvalidStatusTransition, s.status)
	}

	s.status = vo.StatusActive
	s.updatedAt = time.Now()
	s.version++
	return nil
}

// Cancel cancels a subscription
func (s *Subscription) Cancel() error {
	if s.status == vo.StatusCancelled {
		return nil
	}
	if !s.status.CanTransitionTo(vo.StatusCancelled) {
		return fmt.Errorf("%w: from %s to cancelled", ErrInvalidStatusTransition, s.status)
	}

	now := time.Now()
	s.status = vo.StatusCancelled
	s.endDate = &now
	s.updatedAt = now
	s.version++
	return nil
}

// MarkAsExpired marks the subscription as expired
func (s *Subscription) MarkAsExpired() error {
	if s.status == vo.StatusExpired {
		return nil
	}
	if !s.status.CanTransitionTo(vo.StatusExpired) {
		return fmt.Errorf("%w: from %s to expired", ErrInvalidStatusTransition, s.status)
	}

	s.status = vo.StatusExpired
	s.updatedAt = time.Now()
	s.version++
	return nil
}
