package valueobjects

type SubscriptionStatus string

const (
	StatusPending   SubscriptionStatus = "pending"
	StatusActive    SubscriptionStatus = "active"
	StatusCancelled SubscriptionStatus = "cancelled"
	StatusExpired   SubscriptionStatus = "expired"
	StatusFailed    SubscriptionStatus = "failed"
)

func (s SubscriptionStatus) String() string {
	return string(s)
}

// CanUseService reports whether the status alone permits drawing benefits.
// The subscription's end instant is evaluated separately.
func (s SubscriptionStatus) CanUseService() bool {
	return s == StatusActive
}

func (s SubscriptionStatus) CanTransitionTo(target SubscriptionStatus) bool {
	transitions := map[SubscriptionStatus][]SubscriptionStatus{
		StatusPending:   {StatusActive, StatusFailed, StatusCancelled},
		StatusActive:    {StatusCancelled, StatusExpired},
		StatusCancelled: {},
		StatusExpired:   {StatusActive},
		StatusFailed:    {StatusActive, StatusCancelled},
	}

	allowed, exists := transitions[s]
	if !exists {
		return false
	}

	for _, allowedStatus := range allowed {
		if allowedStatus == target {
			return true
		}
	}
	return false
}

var ValidStatuses = map[SubscriptionStatus]bool{
	StatusPending:   true,
	StatusActive:    true,
	StatusCancelled: true,
	StatusExpired:   true,
	StatusFailed:    true,
}
