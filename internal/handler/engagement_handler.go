package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ministry-hub/attendance-api/internal/middleware"
	"github.com/ministry-hub/attendance-api/internal/models"
	"github.com/ministry-hub/attendance-api/internal/service"
	appErrors "github.com/ministry-hub/attendance-api/pkg/errors"
	"github.com/ministry-hub/attendance-api/pkg/response"
)

// EngagementHandler serves the drill-down analytics surface: one endpoint
// per level plus the export dumps.
type EngagementHandler struct {
	analytics *service.AnalyticsService
	exports   *service.ExportService
}

// NewEngagementHandler creates a new handler.
func NewEngagementHandler(analytics *service.AnalyticsService, exports *service.ExportService) *EngagementHandler {
	return &EngagementHandler{analytics: analytics, exports: exports}
}

func engagementFilterFromRequest(c *gin.Context, claims *models.JWTClaims) models.EngagementFilter {
	sel := scopeFromRequest(c, claims)
	return models.EngagementFilter{
		RegionID:     sel.RegionID,
		UniversityID: sel.UniversityID,
		SmallGroupID: sel.SmallGroupID,
		EventID:      queryInt64(c, "eventId"),
		EventType:    queryEventType(c),
		DateFrom:     queryDate(c, "dateFrom"),
		DateTo:       queryDate(c, "dateTo"),
	}
}

func (h *EngagementHandler) serveDataset(c *gin.Context, level models.DrilldownLevel, parentID int64) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	filter := engagementFilterFromRequest(c, claims)
	dataset, cacheHit, err := h.analytics.Dataset(c.Request.Context(), level, parentID, filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, cacheHit)
	response.JSON(c, http.StatusOK, dataset, nil, middleware.ExtractMeta(c))
}

// Analytics godoc
// @Summary Engagement dataset for the deepest scope in the query
// @Description Level is derived from the most specific parent id supplied
// @Tags Engagement
// @Produce json
// @Security BearerAuth
// @Param regionId query int false "Expand one region"
// @Param universityId query int false "Expand one university"
// @Param smallGroupId query int false "Expand one small group"
// @Success 200 {object} response.Envelope
// @Router /engagement/analytics [get]
func (h *EngagementHandler) Analytics(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	sel := scopeFromRequest(c, claims)
	switch {
	case sel.SmallGroupID != 0:
		h.serveDataset(c, models.LevelMember, sel.SmallGroupID)
	case sel.UniversityID != 0:
		h.serveDataset(c, models.LevelUniversity, sel.UniversityID)
	case sel.RegionID != 0:
		h.serveDataset(c, models.LevelRegion, sel.RegionID)
	default:
		h.serveDataset(c, models.LevelNational, 0)
	}
}

// Regions godoc
// @Summary National overview, one row per region
// @Tags Engagement
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /engagement/regions [get]
func (h *EngagementHandler) Regions(c *gin.Context) {
	h.serveDataset(c, models.LevelNational, 0)
}

// Universities godoc
// @Summary Region expansion, one row per university
// @Tags Engagement
// @Produce json
// @Security BearerAuth
// @Param regionId query int true "Region id"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /engagement/universities [get]
func (h *EngagementHandler) Universities(c *gin.Context) {
	h.serveDataset(c, models.LevelRegion, queryInt64(c, "regionId"))
}

// SmallGroups godoc
// @Summary University expansion, one row per small group
// @Tags Engagement
// @Produce json
// @Security BearerAuth
// @Param universityId query int true "University id"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /engagement/small-groups [get]
func (h *EngagementHandler) SmallGroups(c *gin.Context) {
	h.serveDataset(c, models.LevelUniversity, queryInt64(c, "universityId"))
}

// Members godoc
// @Summary Small-group expansion, one row per member
// @Tags Engagement
// @Produce json
// @Security BearerAuth
// @Param smallGroupId query int true "Small group id"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /engagement/members [get]
func (h *EngagementHandler) Members(c *gin.Context) {
	h.serveDataset(c, models.LevelMember, queryInt64(c, "smallGroupId"))
}

// ExportDetails godoc
// @Summary Detail rows backing report exports
// @Tags Engagement
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /engagement/export-details [get]
func (h *EngagementHandler) ExportDetails(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	details, err := h.analytics.ExportDetails(c.Request.Context(), engagementFilterFromRequest(c, claims))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, details, nil)
}

// Export godoc
// @Summary Download the engagement report document
// @Description format=pdf (default) or csv; the PDF caps the detail table
// @Tags Engagement
// @Produce application/pdf
// @Security BearerAuth
// @Param format query string false "pdf or csv"
// @Success 200 {file} binary
// @Failure 500 {object} response.Envelope
// @Router /engagement/export [get]
func (h *EngagementHandler) Export(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	sel := scopeFromRequest(c, claims)
	req := service.ExportRequest{
		Filter: engagementFilterFromRequest(c, claims),
		Scope:  c.Query("scope"),
	}
	switch {
	case sel.SmallGroupID != 0:
		req.Level = models.LevelMember
		req.Path = []models.NavigationEntry{{Level: models.LevelMember, ID: sel.SmallGroupID}}
	case sel.UniversityID != 0:
		req.Level = models.LevelUniversity
		req.Path = []models.NavigationEntry{{Level: models.LevelUniversity, ID: sel.UniversityID}}
	case sel.RegionID != 0:
		req.Level = models.LevelRegion
		req.Path = []models.NavigationEntry{{Level: models.LevelRegion, ID: sel.RegionID}}
	default:
		req.Level = models.LevelNational
	}

	var (
		payload  []byte
		filename string
		err      error
		mime     string
	)
	if c.Query("format") == "csv" {
		payload, filename, err = h.exports.BuildCSV(c.Request.Context(), req)
		mime = "text/csv"
	} else {
		payload, filename, err = h.exports.BuildPDF(c.Request.Context(), req)
		mime = "application/pdf"
	}
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, mime, payload)
}
