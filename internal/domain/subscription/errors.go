package subscription

import "errors"

var (
	ErrSubscriptionNotFound    = errors.New("subscription not found")
	ErrSubscriptionInactive    = errors.New("subscription inactive")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
	ErrPlanNotFound            = errors.New("subscription plan not found")
	ErrPlanSlugExists          = errors.New("plan slug already exists")
	ErrInvalidBenefit          = errors.New("invalid benefit value")
	ErrSnapshotAlreadySet      = errors.New("benefit snapshot already recorded")
)
