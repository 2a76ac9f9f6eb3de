package access

import "time"

// AccessType identifies which entitlement layer granted access.
type AccessType string

const (
	AccessTypeOwnership AccessType = "ownership"
	AccessTypePurchase  AccessType = "purchase"
	AccessTypeClaim     AccessType = "claim"
	AccessTypeDelegated AccessType = "delegated_claim"
)

// Layer names recorded on denied results so callers can see what was tried.
const (
	LayerOwnership = "ownership"
	LayerPurchase  = "purchase"
	LayerClaim     = "claim"
	LayerDelegated = "delegated_claim"
)

// Denial reasons. These are stable strings surfaced to API clients.
const (
	ReasonContentNotFound = "content_not_found"
	ReasonNoAccess        = "no_access"
	ReasonNoTeacherClaims = "no_teacher_claims"
	ReasonUnpublished     = "unpublished"
	ReasonAgeRestricted   = "age_restricted"
)

// Capabilities are type-specific flags attached to a granted result.
// Delegated access is typically narrower than a subscriber's own claim.
type Capabilities struct {
	CanCustomize      bool `json:"can_customize"`
	CanCreateSessions bool `json:"can_create_sessions"`
	CanJoinSessions   bool `json:"can_join_sessions"`
}

// Result is the outcome of an access resolution.
type Result struct {
	HasAccess  bool
	AccessType AccessType
	Reason     string

	// ExpiresAt is set for purchase-backed access with an expiry instant.
	ExpiresAt *time.Time

	// AllowUnpublished is set when the owning creator accesses their own
	// content; publication checks are bypassed for them.
	AllowUnpublished bool

	// DelegateID is the delegate whose claim served a delegated grant.
	DelegateID uint

	Capabilities Capabilities

	// LayersAttempted lists the layers tried, in order, for diagnostics.
	LayersAttempted []string
}

func granted(accessType AccessType, attempted []string) *Result {
	return &Result{
		HasAccess:       true,
		AccessType:      accessType,
		LayersAttempted: attempted,
	}
}

func denied(reason string, attempted []string) *Result {
	return &Result{
		HasAccess:       false,
		Reason:          reason,
		LayersAttempted: attempted,
	}
}

// downgrade turns a granted result into a denial in place. The Content
// Validator uses it when a post-check fails after base access was proven.
func (r *Result) downgrade(reason string) {
	r.HasAccess = false
	r.AccessType = ""
	r.Reason = reason
	r.Capabilities = Capabilities{}
}
