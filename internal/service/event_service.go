package service

import (
	"context"
	"database/sql"
	"errors"

	"go.uber.org/zap"

	"github.com/ministry-hub/attendance-api/internal/models"
	appErrors "github.com/ministry-hub/attendance-api/pkg/errors"
)

type eventRepository interface {
	List(ctx context.Context, filter models.EventFilter) ([]models.Event, error)
	FindByID(ctx context.Context, id int64) (*models.Event, error)
}

// EventService serves event listings filtered by type and hierarchy scope.
// Super admins filter by an explicit scope selection; scoped roles are
// resolved against the scope carried in their own claims, never against
// client-supplied scope parameters.
type EventService struct {
	repo   eventRepository
	logger *zap.Logger
}

// NewEventService constructs an EventService.
func NewEventService(repo eventRepository, logger *zap.Logger) *EventService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EventService{repo: repo, logger: logger}
}

// Resolve returns the active events visible under the selection for the
// given role. The repository filters by the non-zero scope ids, and the
// result is re-checked in memory: inactive events are dropped always, and
// for elevated roles any event whose own attachment ids do not match the
// selection is dropped too.
func (s *EventService) Resolve(ctx context.Context, sel models.ScopeSelection, role models.UserRole, eventType *models.EventType) ([]models.Event, error) {
	if err := ValidateScope(sel); err != nil {
		return nil, err
	}
	if eventType != nil && !eventType.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown event type")
	}
	filter := models.EventFilter{
		RegionID:      sel.RegionID,
		UniversityID:  sel.UniversityID,
		SmallGroupID:  sel.SmallGroupID,
		AlumniGroupID: sel.AlumniGroupID,
		Type:          eventType,
		ActiveOnly:    true,
	}
	events, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list events")
	}
	filtered := make([]models.Event, 0, len(events))
	for _, e := range events {
		if !e.IsActive {
			continue
		}
		if role.Elevated() && !e.MatchesScope(sel) {
			continue
		}
		filtered = append(filtered, e)
	}
	return filtered, nil
}

// ReconcileSelection clears a selected event id that is no longer present
// in a non-empty filtered list. An empty list leaves the selection alone
// so a transient empty fetch does not wipe it.
func ReconcileSelection(events []models.Event, selectedID int64) int64 {
	if selectedID == 0 || len(events) == 0 {
		return selectedID
	}
	for _, e := range events {
		if e.ID == selectedID {
			return selectedID
		}
	}
	return 0
}

// Get returns a single event by id.
func (s *EventService) Get(ctx context.Context, id int64) (*models.Event, error) {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "event not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load event")
	}
	if event == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "event not found")
	}
	return event, nil
}
