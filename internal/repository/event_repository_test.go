package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ministry-hub/attendance-api/internal/models"
)

var eventColumns = []string{
	"id", "name", "type", "is_active",
	"region_id", "university_id", "small_group_id", "alumni_group_id",
	"region_name", "university_name", "small_group_name", "alumni_group_name",
	"created_at",
}

func TestEventListActiveOnlyWithScope(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	now := time.Now()
	mock.ExpectQuery(`SELECT e\.id, e\.name, e\.type, e\.is_active`).
		WithArgs(int64(1), "permanent").
		WillReturnRows(sqlmock.NewRows(eventColumns).
			AddRow(int64(7), "Sunday Service", "permanent", true,
				int64(1), nil, nil, nil,
				"North", nil, nil, nil,
				now))

	eventType := models.EventTypePermanent
	events, err := NewEventRepository(db).List(context.Background(), models.EventFilter{
		ActiveOnly: true,
		RegionID:   1,
		Type:       &eventType,
	})

	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Sunday Service", events[0].Name)
	require.NotNil(t, events[0].RegionName)
	assert.Equal(t, "North", *events[0].RegionName)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEventFindByIDUnknownReturnsNoRows(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT e\.id, e\.name, e\.type, e\.is_active`).
		WithArgs(int64(99)).
		WillReturnError(sql.ErrNoRows)

	_, err := NewEventRepository(db).FindByID(context.Background(), 99)

	require.ErrorIs(t, err, sql.ErrNoRows)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEventFindByIDJoinsHierarchyNames(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	now := time.Now()
	mock.ExpectQuery(`SELECT e\.id, e\.name, e\.type, e\.is_active`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(eventColumns).
			AddRow(int64(7), "Leadership Training", "training", true,
				int64(1), int64(10), int64(100), nil,
				"North", "North Tech", "Alpha", nil,
				now))

	event, err := NewEventRepository(db).FindByID(context.Background(), 7)

	require.NoError(t, err)
	assert.Equal(t, models.EventTypeTraining, event.Type)
	require.NotNil(t, event.SmallGroupName)
	assert.Equal(t, "Alpha", *event.SmallGroupName)
	require.NoError(t, mock.ExpectationsWereMet())
}
