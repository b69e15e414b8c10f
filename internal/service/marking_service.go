package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/ministry-hub/attendance-api/internal/models"
	appErrors "github.com/ministry-hub/attendance-api/pkg/errors"
)

type memberRepository interface {
	List(ctx context.Context, filter models.MemberFilter) ([]models.Member, error)
}

type attendanceBatchRepository interface {
	BatchInsert(ctx context.Context, records []models.AttendanceRecord) ([]models.AttendanceBatchResult, error)
}

// RosterEntry is one member's row in an open marking session.
type RosterEntry struct {
	Member   models.Member           `json:"member"`
	Status   models.AttendanceStatus `json:"status"`
	Selected bool                    `json:"selected"`
	Notes    *string                 `json:"notes,omitempty"`
}

// MarkingSession drives marking attendance for one event: it loads the
// roster for the event's scope, seeds every member present and selected,
// and submits the whole roster as one batch.
type MarkingSession struct {
	members    memberRepository
	attendance attendanceBatchRepository
	logger     *zap.Logger

	event  *models.Event
	roster []RosterEntry
}

// NewMarkingSession constructs a session with an empty roster.
func NewMarkingSession(members memberRepository, attendance attendanceBatchRepository, logger *zap.Logger) *MarkingSession {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MarkingSession{members: members, attendance: attendance, logger: logger}
}

// Start loads the roster for an event under a scope selection. A nil event
// clears the roster without touching the repository. The roster is keyed
// on the single most specific scope level, and every member starts out
// present and selected.
func (s *MarkingSession) Start(ctx context.Context, event *models.Event, sel models.ScopeSelection) error {
	s.event = event
	s.roster = nil
	if event == nil {
		return nil
	}
	filter := models.MemberFilter{}
	switch {
	case sel.SmallGroupID != 0:
		filter.SmallGroupID = sel.SmallGroupID
	case sel.AlumniGroupID != 0:
		filter.AlumniGroupID = sel.AlumniGroupID
	case sel.UniversityID != 0:
		filter.UniversityID = sel.UniversityID
	case sel.RegionID != 0:
		filter.RegionID = sel.RegionID
	}
	members, err := s.members.List(ctx, filter)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load members")
	}
	s.roster = make([]RosterEntry, len(members))
	for i, m := range members {
		s.roster[i] = RosterEntry{Member: m, Status: models.AttendanceStatusPresent, Selected: true}
	}
	return nil
}

// SetStatus changes one roster member's status.
func (s *MarkingSession) SetStatus(memberID int64, status models.AttendanceStatus) error {
	if !status.Valid() {
		return appErrors.Clone(appErrors.ErrValidation, "unknown attendance status")
	}
	for i := range s.roster {
		if s.roster[i].Member.ID == memberID {
			s.roster[i].Status = status
			return nil
		}
	}
	return appErrors.Clone(appErrors.ErrNotFound, "member is not on the roster")
}

// ToggleSelect flips one roster member's bulk-selection flag.
func (s *MarkingSession) ToggleSelect(memberID int64) error {
	for i := range s.roster {
		if s.roster[i].Member.ID == memberID {
			s.roster[i].Selected = !s.roster[i].Selected
			return nil
		}
	}
	return appErrors.Clone(appErrors.ErrNotFound, "member is not on the roster")
}

// BulkApply sets the status on every currently selected roster member.
func (s *MarkingSession) BulkApply(status models.AttendanceStatus) error {
	if !status.Valid() {
		return appErrors.Clone(appErrors.ErrValidation, "unknown attendance status")
	}
	for i := range s.roster {
		if s.roster[i].Selected {
			s.roster[i].Status = status
		}
	}
	return nil
}

// Roster returns the current roster entries.
func (s *MarkingSession) Roster() []RosterEntry { return s.roster }

// Submit writes one attendance record per roster member, tagged with the
// session event's type and id. An empty roster is rejected before any
// repository call. Full success resets the session; a partial failure
// leaves the roster untouched and reports the flattened per-record errors.
func (s *MarkingSession) Submit(ctx context.Context) ([]models.AttendanceBatchResult, error) {
	if s.event == nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "no event selected")
	}
	if len(s.roster) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "no members to record attendance for")
	}
	records := make([]models.AttendanceRecord, len(s.roster))
	for i, entry := range s.roster {
		records[i] = models.AttendanceRecord{
			MemberID:  entry.Member.ID,
			EventType: s.event.Type,
			EventID:   s.event.ID,
			Status:    entry.Status,
			Notes:     entry.Notes,
		}
	}
	results, err := s.attendance.BatchInsert(ctx, records)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to record attendance")
	}
	var failures []string
	for _, res := range results {
		if !res.Success {
			failures = append(failures, res.Error)
		}
	}
	if len(failures) > 0 {
		s.logger.Warn("attendance batch partially failed",
			zap.Int64("event_id", s.event.ID),
			zap.Int("failed", len(failures)),
			zap.Int("total", len(results)))
		return results, appErrors.Clone(appErrors.ErrConflict, strings.Join(failures, "; "))
	}
	s.event = nil
	s.roster = nil
	return results, nil
}

// MarkingService is the stateless request-scoped counterpart used by the
// HTTP layer: it runs a whole session per submission.
type MarkingService struct {
	members    memberRepository
	events     eventRepository
	attendance attendanceBatchRepository
	logger     *zap.Logger
}

// NewMarkingService constructs a MarkingService.
func NewMarkingService(members memberRepository, events eventRepository, attendance attendanceBatchRepository, logger *zap.Logger) *MarkingService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MarkingService{members: members, events: events, attendance: attendance, logger: logger}
}

// Roster loads the marking roster for a scope selection.
func (s *MarkingService) Roster(ctx context.Context, sel models.ScopeSelection) ([]models.Member, error) {
	if err := ValidateScope(sel); err != nil {
		return nil, err
	}
	filter := models.MemberFilter{}
	switch {
	case sel.SmallGroupID != 0:
		filter.SmallGroupID = sel.SmallGroupID
	case sel.AlumniGroupID != 0:
		filter.AlumniGroupID = sel.AlumniGroupID
	case sel.UniversityID != 0:
		filter.UniversityID = sel.UniversityID
	case sel.RegionID != 0:
		filter.RegionID = sel.RegionID
	}
	if sel.IsZero() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "a scope selection is required")
	}
	members, err := s.members.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load members")
	}
	return members, nil
}

// Submit records a batch of attendance entries against one event. Items
// default to present when the status is empty.
func (s *MarkingService) Submit(ctx context.Context, eventID int64, items []models.AttendanceBatchItem) ([]models.AttendanceBatchResult, error) {
	if len(items) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "no members to record attendance for")
	}
	event, err := s.events.FindByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "event not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load event")
	}
	if event == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "event not found")
	}
	records := make([]models.AttendanceRecord, len(items))
	for i, item := range items {
		status := item.Status
		if status == "" {
			status = models.AttendanceStatusPresent
		}
		if !status.Valid() {
			return nil, appErrors.Clone(appErrors.ErrValidation, "unknown attendance status")
		}
		records[i] = models.AttendanceRecord{
			MemberID:  item.MemberID,
			EventType: event.Type,
			EventID:   event.ID,
			Status:    status,
			Notes:     item.Notes,
		}
	}
	results, err := s.attendance.BatchInsert(ctx, records)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to record attendance")
	}
	return results, nil
}
