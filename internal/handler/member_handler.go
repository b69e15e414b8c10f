package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ministry-hub/attendance-api/internal/service"
	appErrors "github.com/ministry-hub/attendance-api/pkg/errors"
	"github.com/ministry-hub/attendance-api/pkg/response"
)

// MemberHandler serves the marking roster.
type MemberHandler struct {
	service *service.MarkingService
}

// NewMemberHandler creates a new handler.
func NewMemberHandler(svc *service.MarkingService) *MemberHandler {
	return &MemberHandler{service: svc}
}

// List godoc
// @Summary List members for marking
// @Description Roster keyed on the most specific level of the caller's scope
// @Tags Members
// @Produce json
// @Security BearerAuth
// @Param regionId query int false "Region id (super admin only)"
// @Param universityId query int false "University id (super admin only)"
// @Param smallGroupId query int false "Small group id (super admin only)"
// @Param alumniGroupId query int false "Alumni group id (super admin only)"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /members [get]
func (h *MemberHandler) List(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	members, err := h.service.Roster(c.Request.Context(), scopeFromRequest(c, claims))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, members, nil)
}
