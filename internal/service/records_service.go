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

type attendanceRepository interface {
	List(ctx context.Context, filter models.AttendanceFilter) ([]models.AttendanceDetail, int, error)
	UpdateStatus(ctx context.Context, id string, status models.AttendanceStatus, notes *string) (*models.AttendanceRecord, error)
}

// RecordsService serves the attendance browsing surface: filtered listing,
// in-memory free-text search, and single-record status edits.
type RecordsService struct {
	repo   attendanceRepository
	logger *zap.Logger
}

// NewRecordsService constructs a RecordsService.
func NewRecordsService(repo attendanceRepository, logger *zap.Logger) *RecordsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RecordsService{repo: repo, logger: logger}
}

// List returns attendance records under the filter. Scoped roles must name
// a concrete event. Super admins must additionally narrow to at least a
// region before any fetch happens, so a national operator never pulls the
// unscoped record set by accident.
func (s *RecordsService) List(ctx context.Context, filter models.AttendanceFilter, role models.UserRole, search string) ([]models.AttendanceDetail, int, error) {
	if filter.EventID == 0 {
		return nil, 0, appErrors.Clone(appErrors.ErrValidation, "an event is required")
	}
	if role.Elevated() && filter.Scope.RegionID == 0 {
		return nil, 0, appErrors.Clone(appErrors.ErrValidation, "a scope selection is required")
	}
	if err := ValidateScope(filter.Scope); err != nil {
		return nil, 0, err
	}
	if filter.Status != nil && !filter.Status.Valid() {
		return nil, 0, appErrors.Clone(appErrors.ErrValidation, "unknown attendance status")
	}
	// search runs inside the query so later pages stay reachable and the
	// total counts the matched set
	filter.Search = strings.TrimSpace(search)
	records, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load attendance records")
	}
	return records, total, nil
}

// UpdateStatus changes one record's status and returns the stored row.
// Callers are expected to refetch the list afterwards rather than patch
// their copy in place.
func (s *RecordsService) UpdateStatus(ctx context.Context, recordID string, status models.AttendanceStatus, notes *string) (*models.AttendanceRecord, error) {
	if recordID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "record id is required")
	}
	if !status.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown attendance status")
	}
	stored, err := s.repo.UpdateStatus(ctx, recordID, status, notes)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "attendance record not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update attendance record")
	}
	return stored, nil
}
