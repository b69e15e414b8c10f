package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ministry-hub/attendance-api/internal/service"
	"github.com/ministry-hub/attendance-api/pkg/response"
)

// OrgHandler serves the hierarchy option lists for scope pickers.
type OrgHandler struct {
	service *service.OrgService
}

// NewOrgHandler creates a new handler.
func NewOrgHandler(svc *service.OrgService) *OrgHandler {
	return &OrgHandler{service: svc}
}

// Regions godoc
// @Summary List regions
// @Tags Hierarchy
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /regions [get]
func (h *OrgHandler) Regions(c *gin.Context) {
	regions, err := h.service.Regions(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, regions, nil)
}

// Universities godoc
// @Summary List universities of a region
// @Tags Hierarchy
// @Produce json
// @Security BearerAuth
// @Param regionId query int true "Region id"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /universities [get]
func (h *OrgHandler) Universities(c *gin.Context) {
	universities, err := h.service.Universities(c.Request.Context(), queryInt64(c, "regionId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, universities, nil)
}

// SmallGroups godoc
// @Summary List small groups of a university
// @Tags Hierarchy
// @Produce json
// @Security BearerAuth
// @Param universityId query int true "University id"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /small-groups [get]
func (h *OrgHandler) SmallGroups(c *gin.Context) {
	groups, err := h.service.SmallGroups(c.Request.Context(), queryInt64(c, "universityId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, groups, nil)
}

// AlumniSmallGroups godoc
// @Summary List alumni small groups of a region
// @Tags Hierarchy
// @Produce json
// @Security BearerAuth
// @Param regionId query int true "Region id"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /alumni-small-groups [get]
func (h *OrgHandler) AlumniSmallGroups(c *gin.Context) {
	groups, err := h.service.AlumniSmallGroups(c.Request.Context(), queryInt64(c, "regionId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, groups, nil)
}
