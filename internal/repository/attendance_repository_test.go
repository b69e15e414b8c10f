package repository

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ministry-hub/attendance-api/internal/models"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestAttendanceListFiltersAndCounts(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewAttendanceRepository(db)
	now := time.Now()

	rows := sqlmock.NewRows([]string{"id", "member_id", "event_type", "event_id", "status", "recorded_at", "notes", "created_at", "updated_at", "firstname", "secondname", "event_name"}).
		AddRow("rec-1", int64(1), "permanent", int64(7), "present", now, nil, now, now, "John", "Doe", "Sunday Service")
	mock.ExpectQuery(`SELECT a\.id, a\.member_id`).
		WithArgs(int64(7), int64(1)).
		WillReturnRows(rows)
	mock.ExpectQuery(`SELECT COUNT\(\*\)`).
		WithArgs(int64(7), int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	filter := models.AttendanceFilter{
		EventID: 7,
		Scope:   models.ScopeSelection{RegionID: 1},
	}
	records, total, err := repo.List(context.Background(), filter)

	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, records, 1)
	assert.Equal(t, "John", records[0].FirstName)
	assert.Equal(t, "Sunday Service", records[0].EventName)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceListSearchRunsInQuery(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewAttendanceRepository(db)
	now := time.Now()

	rows := sqlmock.NewRows([]string{"id", "member_id", "event_type", "event_id", "status", "recorded_at", "notes", "created_at", "updated_at", "firstname", "secondname", "event_name"}).
		AddRow("rec-1", int64(1), "permanent", int64(7), "present", now, nil, now, now, "John", "Doe", "Sunday Service")
	mock.ExpectQuery(`ILIKE`).
		WithArgs(int64(7), "%john%").
		WillReturnRows(rows)
	mock.ExpectQuery(`SELECT COUNT\(\*\)`).
		WithArgs(int64(7), "%john%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	filter := models.AttendanceFilter{EventID: 7, Search: "john"}
	records, total, err := repo.List(context.Background(), filter)

	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, records, 1)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceBatchInsertReportsDuplicates(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewAttendanceRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO attendance`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("rec-1"))
	// the second member already has a record for this event and day
	mock.ExpectQuery(`INSERT INTO attendance`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectCommit()

	records := []models.AttendanceRecord{
		{MemberID: 1, EventType: models.EventTypePermanent, EventID: 7, Status: models.AttendanceStatusPresent},
		{MemberID: 2, EventType: models.EventTypePermanent, EventID: 7, Status: models.AttendanceStatusAbsent},
	}
	results, err := repo.BatchInsert(context.Background(), records)

	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.True(t, results[0].Success)
	assert.False(t, results[1].Success)
	assert.Contains(t, results[1].Error, "already recorded")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceBatchInsertEmpty(t *testing.T) {
	db, _, cleanup := newRepoMock(t)
	defer cleanup()

	results, err := NewAttendanceRepository(db).BatchInsert(context.Background(), nil)

	require.NoError(t, err)
	assert.Nil(t, results)
}

func TestAttendanceUpdateStatus(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewAttendanceRepository(db)
	now := time.Now()

	rows := sqlmock.NewRows([]string{"id", "member_id", "event_type", "event_id", "status", "recorded_at", "notes", "created_at", "updated_at"}).
		AddRow("rec-1", int64(1), "permanent", int64(7), "excused", now, nil, now, now)
	mock.ExpectQuery(`UPDATE attendance`).
		WillReturnRows(rows)

	stored, err := repo.UpdateStatus(context.Background(), "rec-1", models.AttendanceStatusExcused, nil)

	require.NoError(t, err)
	assert.Equal(t, models.AttendanceStatusExcused, stored.Status)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceDistinctDates(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewAttendanceRepository(db)

	mock.ExpectQuery(`SELECT DISTINCT to_char`).
		WillReturnRows(sqlmock.NewRows([]string{"day"}).AddRow("2026-03-15").AddRow("2026-03-08"))
	mock.ExpectQuery(`SELECT a\.status, COUNT\(\*\)`).
		WillReturnRows(sqlmock.NewRows([]string{"status", "cnt"}).
			AddRow("present", 40).
			AddRow("absent", 10))

	dates, stats, err := repo.DistinctDates(context.Background(), models.AttendanceFilter{})

	require.NoError(t, err)
	assert.Equal(t, []string{"2026-03-15", "2026-03-08"}, dates)
	assert.Equal(t, 40, stats["present"])
	assert.Equal(t, 50, stats["total"])
	require.NoError(t, mock.ExpectationsWereMet())
}
