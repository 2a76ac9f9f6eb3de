package handlers

import (
	"time"

	"github.com/atelier-edu/atelier/internal/application/claim/usecases"
	"github.com/atelier-edu/atelier/internal/domain/claim"
)

type ClaimResponse struct {
	SID         string    `json:"sid"`
	ContentType string    `json:"content_type"`
	ContentID   uint      `json:"content_id"`
	Period      string    `json:"period"`
	Status      string    `json:"status"`
	ClaimedAt   time.Time `json:"claimed_at"`
}

type ClaimProductResponse struct {
	Success           bool           `json:"success"`
	AlreadyClaimed    bool           `json:"already_claimed"`
	NeedsConfirmation bool           `json:"needs_confirmation"`
	FailureCode       string         `json:"failure_code,omitempty"`
	Remaining         *uint          `json:"remaining,omitempty"`
	Claim             *ClaimResponse `json:"claim,omitempty"`
}

type CanClaimResponse struct {
	CanClaim       bool   `json:"can_claim"`
	AlreadyClaimed bool   `json:"already_claimed"`
	Reason         string `json:"reason,omitempty"`
	Unlimited      bool   `json:"unlimited"`
	Remaining      *uint  `json:"remaining,omitempty"`
}

type RevokeClaimResponse struct {
	RevokedCount int `json:"revoked_count"`
}

func toClaimResponse(c *claim.Claim) *ClaimResponse {
	if c == nil {
		return nil
	}
	return &ClaimResponse{
		SID:         c.SID(),
		ContentType: c.Ref().Type.String(),
		ContentID:   c.Ref().ID,
		Period:      c.Period(),
		Status:      string(c.Status()),
		ClaimedAt:   c.Usage().ClaimedAt,
	}
}

func toClaimProductResponse(result *usecases.ClaimProductResult) ClaimProductResponse {
	return ClaimProductResponse{
		Success:           result.Success,
		AlreadyClaimed:    result.AlreadyClaimed,
		NeedsConfirmation: result.NeedsConfirmation,
		FailureCode:       result.FailureCode,
		Remaining:         result.Remaining,
		Claim:             toClaimResponse(result.Claim),
	}
}

func toCanClaimResponse(result *usecases.CanClaimResult) CanClaimResponse {
	return CanClaimResponse{
		CanClaim:       result.CanClaim,
		AlreadyClaimed: result.AlreadyClaimed,
		Reason:         result.Reason,
		Unlimited:      result.Unlimited,
		Remaining:      result.Remaining,
	}
}
