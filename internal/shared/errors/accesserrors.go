package errors

import (
	"fmt"
	"net/http"
)

// Access and claim specific error types. Allowance and ownership denials
// travel as result failure codes, not errors; only revocation conflicts
// surface through the error channel.
const (
	ErrorTypeAlreadyRevoked ErrorType = "already_revoked"
)

// NewAlreadyRevokedError creates an error for revoking a claim that is already
// revoked. Revocation is deliberately not idempotent: it is an audit boundary.
func NewAlreadyRevokedError(claimSID string) *AppError {
	return &AppError{
		Type:    ErrorTypeAlreadyRevoked,
		Message: "Claim already revoked",
		Code:    http.StatusConflict,
		Details: fmt.Sprintf("claim %s has already been revoked", claimSID),
	}
}

// IsAlreadyRevokedError checks if the error is an already revoked error
func IsAlreadyRevokedError(err error) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Type == ErrorTypeAlreadyRevoked
}
