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

// AttendanceHandler serves attendance browsing, batch marking, record
// edits, date availability and per-member statistics.
type AttendanceHandler struct {
	records   *service.RecordsService
	marking   *service.MarkingService
	dates     *service.DateService
	analytics *service.AnalyticsService
}

// NewAttendanceHandler creates a new handler.
func NewAttendanceHandler(records *service.RecordsService, marking *service.MarkingService, dates *service.DateService, analytics *service.AnalyticsService) *AttendanceHandler {
	return &AttendanceHandler{records: records, marking: marking, dates: dates, analytics: analytics}
}

func attendanceFilterFromRequest(c *gin.Context, claims *models.JWTClaims) models.AttendanceFilter {
	var status *models.AttendanceStatus
	if raw := c.Query("status"); raw != "" {
		s := models.AttendanceStatus(raw)
		status = &s
	}
	return models.AttendanceFilter{
		EventID:   queryInt64(c, "eventId"),
		EventType: queryEventType(c),
		Status:    status,
		DateFrom:  queryDate(c, "dateFrom"),
		DateTo:    queryDate(c, "dateTo"),
		Scope:     scopeFromRequest(c, claims),
		Page:      queryInt(c, "page", 1),
		PageSize:  queryInt(c, "pageSize", 20),
		SortBy:    c.Query("sortBy"),
		SortOrder: c.Query("sortOrder"),
	}
}

// List godoc
// @Summary Browse attendance records
// @Tags Attendance
// @Produce json
// @Security BearerAuth
// @Param eventId query int true "Event id"
// @Param status query string false "present, absent or excused"
// @Param dateFrom query string false "ISO date"
// @Param dateTo query string false "ISO date"
// @Param search query string false "Member or event name substring"
// @Param page query int false "Page"
// @Param pageSize query int false "Page size"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /attendance [get]
func (h *AttendanceHandler) List(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	filter := attendanceFilterFromRequest(c, claims)
	records, total, err := h.records.List(c.Request.Context(), filter, claims.Role, c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}
	pagination := &models.Pagination{Page: filter.Page, PageSize: filter.PageSize, TotalCount: total}
	response.JSON(c, http.StatusOK, records, pagination, middleware.ExtractMeta(c))
}

type submitRequest struct {
	EventID int64                        `json:"event_id" binding:"required"`
	Items   []models.AttendanceBatchItem `json:"items" binding:"required"`
}

// Submit godoc
// @Summary Record attendance for a roster
// @Description One record per member; duplicates for the same member, event and day are reported per record
// @Tags Attendance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body submitRequest true "Batch payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /attendance [post]
func (h *AttendanceHandler) Submit(c *gin.Context) {
	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid attendance payload"))
		return
	}
	results, err := h.marking.Submit(c.Request.Context(), req.EventID, req.Items)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.analytics.Invalidate(c.Request.Context())
	response.Created(c, results)
}

type updateStatusRequest struct {
	Status models.AttendanceStatus `json:"status" binding:"required"`
	Notes  *string                 `json:"notes,omitempty"`
}

// UpdateStatus godoc
// @Summary Update one attendance record's status
// @Tags Attendance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Record id"
// @Param payload body updateStatusRequest true "New status"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /attendance/{id} [put]
func (h *AttendanceHandler) UpdateStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid status payload"))
		return
	}
	stored, err := h.records.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status, req.Notes)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.analytics.Invalidate(c.Request.Context())
	response.JSON(c, http.StatusOK, stored, nil)
}

// Dates godoc
// @Summary Distinct attendance dates with quick-range availability
// @Tags Attendance
// @Produce json
// @Security BearerAuth
// @Param eventId query int false "Event id"
// @Success 200 {object} response.Envelope
// @Router /attendance/dates [get]
func (h *AttendanceHandler) Dates(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	filter := attendanceFilterFromRequest(c, claims)
	availability, err := h.dates.Available(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, availability, nil)
}

// StudentAnalytics godoc
// @Summary Per-member attendance statistics
// @Tags Attendance
// @Produce json
// @Security BearerAuth
// @Param search query string false "Name substring"
// @Success 200 {object} response.Envelope
// @Router /attendance/student-analytics [get]
func (h *AttendanceHandler) StudentAnalytics(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	sel := scopeFromRequest(c, claims)
	filter := models.MemberFilter{
		RegionID:      sel.RegionID,
		UniversityID:  sel.UniversityID,
		SmallGroupID:  sel.SmallGroupID,
		AlumniGroupID: sel.AlumniGroupID,
		Search:        c.Query("search"),
	}
	stats, cacheHit, err := h.analytics.MemberStatistics(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, cacheHit)
	response.JSON(c, http.StatusOK, stats, nil, middleware.ExtractMeta(c))
}
