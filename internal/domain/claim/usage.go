package claim

import "time"

// Usage holds per-claim usage counters. They are advisory analytics,
// never inputs to access decisions.
type Usage struct {
	ClaimedAt       time.Time              `json:"claimed_at"`
	SessionsStarted uint                   `json:"sessions_started"`
	DelegatedUses   uint                   `json:"delegated_uses"`
	LastAccessedAt  *time.Time             `json:"last_accessed_at,omitempty"`
	Extra           map[string]interface{} `json:"extra,omitempty"`
}

// NewUsage creates a zeroed usage record stamped with the claim time.
func NewUsage(claimedAt time.Time) Usage {
	return Usage{ClaimedAt: claimedAt}
}
