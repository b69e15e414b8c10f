package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ministry-hub/attendance-api/internal/middleware"
	"github.com/ministry-hub/attendance-api/internal/service"
	appErrors "github.com/ministry-hub/attendance-api/pkg/errors"
	"github.com/ministry-hub/attendance-api/pkg/response"
)

// ContributionHandler serves financial rollups for the reports surface.
type ContributionHandler struct {
	analytics *service.AnalyticsService
}

// NewContributionHandler creates a new handler.
func NewContributionHandler(analytics *service.AnalyticsService) *ContributionHandler {
	return &ContributionHandler{analytics: analytics}
}

// Analytics godoc
// @Summary Contribution totals under the caller's scope
// @Tags Contributions
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /contributions/analytics [get]
func (h *ContributionHandler) Analytics(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	analytics, cacheHit, err := h.analytics.Contributions(c.Request.Context(), engagementFilterFromRequest(c, claims))
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, cacheHit)
	response.JSON(c, http.StatusOK, analytics, nil, middleware.ExtractMeta(c))
}
