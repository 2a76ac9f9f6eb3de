package claim

import "errors"

var (
	// ErrClaimNotFound indicates the claim does not exist
	ErrClaimNotFound = errors.New("claim not found")
	// ErrAlreadyRevoked indicates the claim was already revoked
	ErrAlreadyRevoked = errors.New("claim already revoked")
	// ErrDuplicateClaim indicates a claim row already exists for the
	// (subscription, content) pair
	ErrDuplicateClaim = errors.New("claim already exists for this content")
)
