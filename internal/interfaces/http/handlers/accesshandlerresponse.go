package handlers

import (
	"time"

	"github.com/atelier-edu/atelier/internal/application/access"
)

type CapabilitiesResponse struct {
	CanCustomize      bool `json:"can_customize"`
	CanCreateSessions bool `json:"can_create_sessions"`
	CanJoinSessions   bool `json:"can_join_sessions"`
}

type AccessResponse struct {
	HasAccess       bool                 `json:"has_access"`
	AccessType      string               `json:"access_type,omitempty"`
	Reason          string               `json:"reason,omitempty"`
	ExpiresAt       *time.Time           `json:"expires_at,omitempty"`
	DelegateID      uint                 `json:"delegate_id,omitempty"`
	Capabilities    CapabilitiesResponse `json:"capabilities"`
	LayersAttempted []string             `json:"layers_attempted,omitempty"`
}

func toAccessResponse(result *access.Result) AccessResponse {
	return AccessResponse{
		HasAccess:  result.HasAccess,
		AccessType: string(result.AccessType),
		Reason:     result.Reason,
		ExpiresAt:  result.ExpiresAt,
		DelegateID: result.DelegateID,
		Capabilities: CapabilitiesResponse{
			CanCustomize:      result.Capabilities.CanCustomize,
			CanCreateSessions: result.Capabilities.CanCreateSessions,
			CanJoinSessions:   result.Capabilities.CanJoinSessions,
		},
		LayersAttempted: result.LayersAttempted,
	}
}
