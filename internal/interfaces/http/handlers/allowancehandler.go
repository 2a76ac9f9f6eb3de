package handlers

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"

	"github.com/atelier-edu/atelier/internal/application/claim/usecases"
	"github.com/atelier-edu/atelier/internal/interfaces/http/middleware"
	"github.com/atelier-edu/atelier/internal/shared/logger"
	"github.com/atelier-edu/atelier/internal/shared/utils"
)

type AllowanceHandler struct {
	allowancesUC getMonthlyAllowancesUseCase
	logger       logger.Interface
}

func NewAllowanceHandler(allowancesUC getMonthlyAllowancesUseCase, log logger.Interface) *AllowanceHandler {
	return &AllowanceHandler{
		allowancesUC: allowancesUC,
		logger:       log,
	}
}

type AllowanceEntryResponse struct {
	ContentType     string `json:"content_type"`
	Unlimited       bool   `json:"unlimited"`
	Limit           uint   `json:"limit"`
	Used            uint   `json:"used"`
	Remaining       uint   `json:"remaining"`
	NotIncluded     bool   `json:"not_included"`
	HasReachedLimit bool   `json:"has_reached_limit"`
}

type AllowancesResponse struct {
	SubscriptionSID string                   `json:"subscription_sid"`
	Period          string                   `json:"period"`
	Allowances      []AllowanceEntryResponse `json:"allowances"`
}

// GetMonthlyAllowances reports the per-content-type allowance picture for
// the principal's active subscription. The optional period query selects a
// past or future calendar month; it defaults to the current one.
func (h *AllowanceHandler) GetMonthlyAllowances(c *gin.Context) {
	principalID, ok := middleware.GetPrincipalID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "authentication required")
		return
	}

	query := usecases.GetMonthlyAllowancesQuery{
		PrincipalID: principalID,
		Period:      c.Query("period"),
	}

	snapshot, err := h.allowancesUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if snapshot == nil {
		// No active subscription: an empty allowance picture, not an error.
		utils.SuccessResponse(c, http.StatusOK, "", AllowancesResponse{
			Allowances: []AllowanceEntryResponse{},
		})
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", toAllowancesResponse(snapshot))
}

func toAllowancesResponse(snapshot *usecases.AllowanceSnapshot) AllowancesResponse {
	entries := make([]AllowanceEntryResponse, 0, len(snapshot.Allowances))
	for _, a := range snapshot.Allowances {
		entries = append(entries, AllowanceEntryResponse{
			ContentType:     a.ContentType.String(),
			Unlimited:       a.Unlimited,
			Limit:           a.Limit,
			Used:            a.Used,
			Remaining:       a.Remaining,
			NotIncluded:     a.NotIncluded,
			HasReachedLimit: a.HasReachedLimit,
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].ContentType < entries[j].ContentType
	})

	return AllowancesResponse{
		SubscriptionSID: snapshot.SubscriptionSID,
		Period:          snapshot.Period,
		Allowances:      entries,
	}
}
