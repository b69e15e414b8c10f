package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ministry-hub/attendance-api/internal/models"
	appErrors "github.com/ministry-hub/attendance-api/pkg/errors"
)

type fakeMemberRepo struct {
	members []models.Member
}

func (f *fakeMemberRepo) List(context.Context, models.MemberFilter) ([]models.Member, error) {
	return f.members, nil
}

type fakeBatchRepo struct {
	inserted [][]models.AttendanceRecord
	results  []models.AttendanceBatchResult
}

func (f *fakeBatchRepo) BatchInsert(_ context.Context, records []models.AttendanceRecord) ([]models.AttendanceBatchResult, error) {
	f.inserted = append(f.inserted, records)
	if f.results != nil {
		return f.results, nil
	}
	results := make([]models.AttendanceBatchResult, len(records))
	for i, rec := range records {
		results[i] = models.AttendanceBatchResult{MemberID: rec.MemberID, Success: true}
	}
	return results, nil
}

type fakeEventRepo struct {
	events []models.Event
}

func (f *fakeEventRepo) List(context.Context, models.EventFilter) ([]models.Event, error) {
	return f.events, nil
}

func (f *fakeEventRepo) FindByID(_ context.Context, id int64) (*models.Event, error) {
	for i := range f.events {
		if f.events[i].ID == id {
			return &f.events[i], nil
		}
	}
	return nil, sql.ErrNoRows
}

func threeMembers() []models.Member {
	return []models.Member{
		{ID: 1, FirstName: "John", SecondName: "Doe"},
		{ID: 2, FirstName: "Jane", SecondName: "Smith"},
		{ID: 3, FirstName: "Bob", SecondName: "Brown"},
	}
}

func trainingEvent() *models.Event {
	return &models.Event{ID: 7, Name: "Leadership Training", Type: models.EventTypeTraining, IsActive: true}
}

func TestSessionStartSeedsPresentAndSelected(t *testing.T) {
	session := NewMarkingSession(&fakeMemberRepo{members: threeMembers()}, &fakeBatchRepo{}, nil)

	require.NoError(t, session.Start(context.Background(), trainingEvent(), models.ScopeSelection{RegionID: 1, UniversityID: 10, SmallGroupID: 100}))

	roster := session.Roster()
	require.Len(t, roster, 3)
	for _, entry := range roster {
		assert.Equal(t, models.AttendanceStatusPresent, entry.Status)
		assert.True(t, entry.Selected)
	}
}

func TestSessionStartWithoutEventClearsRoster(t *testing.T) {
	session := NewMarkingSession(&fakeMemberRepo{members: threeMembers()}, &fakeBatchRepo{}, nil)
	require.NoError(t, session.Start(context.Background(), trainingEvent(), models.ScopeSelection{RegionID: 1}))
	require.NotEmpty(t, session.Roster())

	require.NoError(t, session.Start(context.Background(), nil, models.ScopeSelection{}))
	assert.Empty(t, session.Roster())
}

func TestSessionSubmitEmptyRosterRejectedLocally(t *testing.T) {
	batch := &fakeBatchRepo{}
	session := NewMarkingSession(&fakeMemberRepo{}, batch, nil)
	require.NoError(t, session.Start(context.Background(), trainingEvent(), models.ScopeSelection{RegionID: 1}))

	_, err := session.Submit(context.Background())

	assert.Error(t, err)
	assert.Empty(t, batch.inserted)
}

func TestSessionSubmitThreeMembers(t *testing.T) {
	batch := &fakeBatchRepo{}
	session := NewMarkingSession(&fakeMemberRepo{members: threeMembers()}, batch, nil)
	ctx := context.Background()
	require.NoError(t, session.Start(ctx, trainingEvent(), models.ScopeSelection{RegionID: 1}))

	require.NoError(t, session.SetStatus(2, models.AttendanceStatusAbsent))
	require.NoError(t, session.SetStatus(3, models.AttendanceStatusExcused))

	results, err := session.Submit(ctx)
	require.NoError(t, err)
	require.Len(t, results, 3)

	require.Len(t, batch.inserted, 1)
	records := batch.inserted[0]
	require.Len(t, records, 3)
	assert.Equal(t, models.AttendanceStatusPresent, records[0].Status)
	assert.Equal(t, models.AttendanceStatusAbsent, records[1].Status)
	assert.Equal(t, models.AttendanceStatusExcused, records[2].Status)
	for _, rec := range records {
		assert.Equal(t, int64(7), rec.EventID)
		assert.Equal(t, models.EventTypeTraining, rec.EventType)
	}

	// full success resets the session
	assert.Empty(t, session.Roster())
	_, err = session.Submit(ctx)
	assert.Error(t, err)
}

func TestSessionSubmitPartialFailureKeepsState(t *testing.T) {
	batch := &fakeBatchRepo{results: []models.AttendanceBatchResult{
		{MemberID: 1, Success: true},
		{MemberID: 2, Success: false, Error: "attendance already recorded for this member"},
		{MemberID: 3, Success: true},
	}}
	session := NewMarkingSession(&fakeMemberRepo{members: threeMembers()}, batch, nil)
	ctx := context.Background()
	require.NoError(t, session.Start(ctx, trainingEvent(), models.ScopeSelection{RegionID: 1}))

	results, err := session.Submit(ctx)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "already recorded")
	assert.Len(t, results, 3)
	assert.Len(t, session.Roster(), 3)
}

func TestSessionBulkApplyOnlySelected(t *testing.T) {
	session := NewMarkingSession(&fakeMemberRepo{members: threeMembers()}, &fakeBatchRepo{}, nil)
	ctx := context.Background()
	require.NoError(t, session.Start(ctx, trainingEvent(), models.ScopeSelection{RegionID: 1}))

	require.NoError(t, session.ToggleSelect(2))
	require.NoError(t, session.BulkApply(models.AttendanceStatusAbsent))

	roster := session.Roster()
	assert.Equal(t, models.AttendanceStatusAbsent, roster[0].Status)
	assert.Equal(t, models.AttendanceStatusPresent, roster[1].Status)
	assert.Equal(t, models.AttendanceStatusAbsent, roster[2].Status)
}

func TestMarkingServiceSubmitDefaultsPresent(t *testing.T) {
	batch := &fakeBatchRepo{}
	svc := NewMarkingService(&fakeMemberRepo{}, &fakeEventRepo{events: []models.Event{*trainingEvent()}}, batch, nil)

	results, err := svc.Submit(context.Background(), 7, []models.AttendanceBatchItem{
		{MemberID: 1},
		{MemberID: 2, Status: models.AttendanceStatusAbsent},
	})
	require.NoError(t, err)
	assert.Len(t, results, 2)

	records := batch.inserted[0]
	assert.Equal(t, models.AttendanceStatusPresent, records[0].Status)
	assert.Equal(t, models.AttendanceStatusAbsent, records[1].Status)
}

func TestMarkingServiceSubmitRejectsEmptyBatch(t *testing.T) {
	batch := &fakeBatchRepo{}
	svc := NewMarkingService(&fakeMemberRepo{}, &fakeEventRepo{}, batch, nil)

	_, err := svc.Submit(context.Background(), 7, nil)
	assert.Error(t, err)
	assert.Empty(t, batch.inserted)
}

func TestMarkingServiceSubmitUnknownEvent(t *testing.T) {
	svc := NewMarkingService(&fakeMemberRepo{}, &fakeEventRepo{}, &fakeBatchRepo{}, nil)
	_, err := svc.Submit(context.Background(), 99, []models.AttendanceBatchItem{{MemberID: 1}})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
