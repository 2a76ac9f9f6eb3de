package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/atelier-edu/atelier/internal/application/claim/usecases"
	"github.com/atelier-edu/atelier/internal/domain/catalog"
	"github.com/atelier-edu/atelier/internal/interfaces/http/middleware"
	"github.com/atelier-edu/atelier/internal/shared/errors"
	"github.com/atelier-edu/atelier/internal/shared/id"
	"github.com/atelier-edu/atelier/internal/shared/logger"
	"github.com/atelier-edu/atelier/internal/shared/utils"
)

type ClaimHandler struct {
	claimProductUC claimProductUseCase
	canClaimUC     canClaimProductUseCase
	revokeClaimUC  revokeClaimUseCase
	logger         logger.Interface
}

func NewClaimHandler(
	claimProductUC claimProductUseCase,
	canClaimUC canClaimProductUseCase,
	revokeClaimUC revokeClaimUseCase,
	log logger.Interface,
) *ClaimHandler {
	return &ClaimHandler{
		claimProductUC: claimProductUC,
		canClaimUC:     canClaimUC,
		revokeClaimUC:  revokeClaimUC,
		logger:         log,
	}
}

type ClaimProductRequest struct {
	ContentType      string `json:"content_type" binding:"required" validate:"required,oneof=file game workshop course tool lesson_plan"`
	ContentID        uint   `json:"content_id" binding:"required" validate:"required,min=1"`
	SkipConfirmation bool   `json:"skip_confirmation"`
}

// ClaimProduct reserves a catalog item against the principal's monthly
// allowance. Limited benefits require a confirmation round trip unless the
// request opts out.
func (h *ClaimHandler) ClaimProduct(c *gin.Context) {
	principalID, ok := middleware.GetPrincipalID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "authentication required")
		return
	}

	var req ClaimProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for claim product", "error", err)
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	ref, err := contentRefFromRequest(req.ContentType, req.ContentID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := usecases.ClaimProductCommand{
		PrincipalID:      principalID,
		Ref:              ref,
		SkipConfirmation: req.SkipConfirmation,
	}

	result, err := h.claimProductUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	status := http.StatusOK
	if result.Success && !result.AlreadyClaimed {
		status = http.StatusCreated
	}
	utils.SuccessResponse(c, status, "", toClaimProductResponse(result))
}

// CanClaim reports whether a claim for the content would succeed, without
// creating anything.
func (h *ClaimHandler) CanClaim(c *gin.Context) {
	principalID, ok := middleware.GetPrincipalID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "authentication required")
		return
	}

	ref, err := parseContentRef(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.canClaimUC.Execute(c.Request.Context(), usecases.CanClaimProductQuery{
		PrincipalID: principalID,
		Ref:         ref,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", toCanClaimResponse(result))
}

// RevokeClaim terminates a claim and every child claim derived from it.
// The path parameter accepts a clm_xxx SID or a numeric internal ID.
func (h *ClaimHandler) RevokeClaim(c *gin.Context) {
	raw := c.Param("id")

	var cmd usecases.RevokeClaimCommand
	if strings.HasPrefix(raw, id.PrefixClaim+"_") {
		sid, err := utils.ParseSIDParam(c, "id", id.PrefixClaim, "claim")
		if err != nil {
			utils.ErrorResponseWithError(c, err)
			return
		}
		cmd.ClaimSID = sid
	} else {
		claimID, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			utils.ErrorResponseWithError(c, errors.NewValidationError("invalid claim ID"))
			return
		}
		cmd.ClaimID = uint(claimID)
	}

	result, err := h.revokeClaimUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "claim revoked", RevokeClaimResponse{
		RevokedCount: result.RevokedCount,
	})
}

func contentRefFromRequest(rawType string, contentID uint) (catalog.ContentRef, error) {
	contentType, err := catalog.ParseContentType(rawType)
	if err != nil {
		return catalog.ContentRef{}, errors.NewValidationError("invalid content type")
	}
	return catalog.NewContentRef(contentType, contentID)
}
