package service

import (
	"context"
	"database/sql"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ministry-hub/attendance-api/internal/models"
	appErrors "github.com/ministry-hub/attendance-api/pkg/errors"
)

type fakeAttendanceRepo struct {
	records    []models.AttendanceDetail
	listCalls  int
	lastFilter models.AttendanceFilter
	updated    *models.AttendanceRecord
	updateErr  error
}

func (f *fakeAttendanceRepo) List(_ context.Context, filter models.AttendanceFilter) ([]models.AttendanceDetail, int, error) {
	f.listCalls++
	f.lastFilter = filter
	if filter.Search == "" {
		return f.records, len(f.records), nil
	}
	term := strings.ToLower(filter.Search)
	matched := make([]models.AttendanceDetail, 0, len(f.records))
	for _, r := range f.records {
		name := strings.ToLower(r.FirstName + " " + r.SecondName)
		if strings.Contains(name, term) || strings.Contains(strings.ToLower(r.EventName), term) {
			matched = append(matched, r)
		}
	}
	return matched, len(matched), nil
}

func (f *fakeAttendanceRepo) UpdateStatus(_ context.Context, id string, status models.AttendanceStatus, notes *string) (*models.AttendanceRecord, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	f.updated = &models.AttendanceRecord{ID: id, Status: status, Notes: notes}
	return f.updated, nil
}

func detailRecords() []models.AttendanceDetail {
	return []models.AttendanceDetail{
		{AttendanceRecord: models.AttendanceRecord{ID: "a"}, FirstName: "John", SecondName: "Doe", EventName: "Sunday Service"},
		{AttendanceRecord: models.AttendanceRecord{ID: "b"}, FirstName: "Jane", SecondName: "Smith", EventName: "Sunday Service"},
		{AttendanceRecord: models.AttendanceRecord{ID: "c"}, FirstName: "Alice", SecondName: "Brown", EventName: "Campus Night"},
	}
}

func TestListRequiresEvent(t *testing.T) {
	repo := &fakeAttendanceRepo{}
	svc := NewRecordsService(repo, nil)

	_, _, err := svc.List(context.Background(), models.AttendanceFilter{}, models.RoleSmallGroup, "")

	assert.Error(t, err)
	assert.Zero(t, repo.listCalls)
}

func TestListSuperAdminRequiresScope(t *testing.T) {
	repo := &fakeAttendanceRepo{}
	svc := NewRecordsService(repo, nil)

	_, _, err := svc.List(context.Background(), models.AttendanceFilter{EventID: 7}, models.RoleSuperAdmin, "")
	assert.Error(t, err)
	assert.Zero(t, repo.listCalls)

	filter := models.AttendanceFilter{EventID: 7, Scope: models.ScopeSelection{RegionID: 1}}
	_, _, err = svc.List(context.Background(), filter, models.RoleSuperAdmin, "")
	assert.NoError(t, err)
	assert.Equal(t, 1, repo.listCalls)
}

func TestListScopedRoleNeedsNoScope(t *testing.T) {
	repo := &fakeAttendanceRepo{records: detailRecords()}
	svc := NewRecordsService(repo, nil)

	records, total, err := svc.List(context.Background(), models.AttendanceFilter{EventID: 7}, models.RoleSmallGroup, "")
	require.NoError(t, err)
	assert.Len(t, records, 3)
	assert.Equal(t, 3, total)
}

func TestListPushesSearchIntoQuery(t *testing.T) {
	repo := &fakeAttendanceRepo{records: detailRecords()}
	svc := NewRecordsService(repo, nil)
	filter := models.AttendanceFilter{EventID: 7}

	records, total, err := svc.List(context.Background(), filter, models.RoleSmallGroup, " john ")
	require.NoError(t, err)
	assert.Equal(t, "john", repo.lastFilter.Search)
	require.Len(t, records, 1)
	assert.Equal(t, "John", records[0].FirstName)
	// pagination metadata counts the matched set, not the raw page
	assert.Equal(t, 1, total)

	records, _, err = svc.List(context.Background(), filter, models.RoleSmallGroup, "campus")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Alice", records[0].FirstName)
}

func TestUpdateStatusValidation(t *testing.T) {
	svc := NewRecordsService(&fakeAttendanceRepo{}, nil)

	_, err := svc.UpdateStatus(context.Background(), "", models.AttendanceStatusAbsent, nil)
	assert.Error(t, err)

	_, err = svc.UpdateStatus(context.Background(), "a", models.AttendanceStatus("late"), nil)
	assert.Error(t, err)
}

func TestUpdateStatusNotFound(t *testing.T) {
	svc := NewRecordsService(&fakeAttendanceRepo{updateErr: sql.ErrNoRows}, nil)

	_, err := svc.UpdateStatus(context.Background(), "missing", models.AttendanceStatusExcused, nil)

	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestUpdateStatusStoresRow(t *testing.T) {
	repo := &fakeAttendanceRepo{}
	svc := NewRecordsService(repo, nil)

	stored, err := svc.UpdateStatus(context.Background(), "a", models.AttendanceStatusExcused, nil)

	require.NoError(t, err)
	assert.Equal(t, models.AttendanceStatusExcused, stored.Status)
	assert.Equal(t, "a", repo.updated.ID)
}
