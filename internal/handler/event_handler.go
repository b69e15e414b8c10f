package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ministry-hub/attendance-api/internal/service"
	appErrors "github.com/ministry-hub/attendance-api/pkg/errors"
	"github.com/ministry-hub/attendance-api/pkg/response"
)

// EventHandler serves the event list for the marking and reporting flows.
type EventHandler struct {
	service *service.EventService
}

// NewEventHandler creates a new handler.
func NewEventHandler(svc *service.EventService) *EventHandler {
	return &EventHandler{service: svc}
}

type eventResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	Scope    string `json:"hierarchicalScope"`
	IsActive bool   `json:"isActive"`
}

// List godoc
// @Summary List events visible under the caller's scope
// @Description Events filtered by type and hierarchy scope, each annotated with its hierarchical scope label
// @Tags Events
// @Produce json
// @Security BearerAuth
// @Param eventType query string false "permanent or training"
// @Param regionId query int false "Region id (super admin only)"
// @Param universityId query int false "University id (super admin only)"
// @Param smallGroupId query int false "Small group id (super admin only)"
// @Param alumniGroupId query int false "Alumni group id (super admin only)"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /events [get]
func (h *EventHandler) List(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	sel := scopeFromRequest(c, claims)
	events, err := h.service.Resolve(c.Request.Context(), sel, claims.Role, queryEventType(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	payload := make([]eventResponse, len(events))
	for i, e := range events {
		payload[i] = eventResponse{
			ID:       e.ID,
			Name:     e.Name,
			Type:     string(e.Type),
			Scope:    e.HierarchicalScope(),
			IsActive: e.IsActive,
		}
	}
	response.JSON(c, http.StatusOK, payload, nil)
}
