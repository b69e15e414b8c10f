package repository

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ministry-hub/attendance-api/internal/models"
)

var memberTestColumns = []string{
	"id", "firstname", "secondname", "email", "phone", "type", "status",
	"region_id", "university_id", "small_group_id", "alumni_group_id", "created_at",
}

func TestMemberListUsesMostSpecificScope(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	now := time.Now()
	// small group wins over the broader ids also present in the filter
	mock.ExpectQuery(`SELECT .+ FROM members WHERE status = 'active' AND small_group_id`).
		WithArgs(int64(100)).
		WillReturnRows(sqlmock.NewRows(memberTestColumns).
			AddRow(int64(1), "John", "Doe", nil, nil, "student", "active",
				int64(1), int64(10), int64(100), nil, now))

	members, err := NewMemberRepository(db).List(context.Background(), models.MemberFilter{
		RegionID:     1,
		UniversityID: 10,
		SmallGroupID: 100,
	})

	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, "John", members[0].FirstName)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMemberListSearchMatchesEitherName(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	now := time.Now()
	mock.ExpectQuery(`SELECT .+ FROM members WHERE status = 'active' AND \(firstname ILIKE`).
		WithArgs("%doe%").
		WillReturnRows(sqlmock.NewRows(memberTestColumns).
			AddRow(int64(1), "John", "Doe", nil, nil, "student", "active",
				nil, nil, nil, nil, now))

	members, err := NewMemberRepository(db).List(context.Background(), models.MemberFilter{Search: "doe"})

	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, "Doe", members[0].SecondName)
	require.NoError(t, mock.ExpectationsWereMet())
}
