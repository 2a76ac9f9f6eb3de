package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/atelier-edu/atelier/internal/domain/catalog"
	"github.com/atelier-edu/atelier/internal/interfaces/http/middleware"
	"github.com/atelier-edu/atelier/internal/shared/errors"
	"github.com/atelier-edu/atelier/internal/shared/logger"
	"github.com/atelier-edu/atelier/internal/shared/utils"
)

type AccessHandler struct {
	accessService accessChecker
	logger        logger.Interface
}

func NewAccessHandler(accessService accessChecker, log logger.Interface) *AccessHandler {
	return &AccessHandler{
		accessService: accessService,
		logger:        log,
	}
}

// CheckAccess resolves whether the authenticated principal may access a
// piece of content. Denials are part of the response body, not HTTP errors.
func (h *AccessHandler) CheckAccess(c *gin.Context) {
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

	result, err := h.accessService.CheckAccess(c.Request.Context(), principalID, ref)
	if err != nil {
		h.logger.Errorw("access check failed",
			"principal_id", principalID,
			"content", ref.String(),
			"error", err,
		)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", toAccessResponse(result))
}

func parseContentRef(c *gin.Context) (catalog.ContentRef, error) {
	contentType, err := catalog.ParseContentType(c.Param("content_type"))
	if err != nil {
		return catalog.ContentRef{}, errors.NewValidationError("invalid content type")
	}

	contentID, err := utils.ParseUintParam(c, "content_id")
	if err != nil {
		return catalog.ContentRef{}, err
	}

	return catalog.NewContentRef(contentType, contentID)
}
