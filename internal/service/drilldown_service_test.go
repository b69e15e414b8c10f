package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ministry-hub/attendance-api/internal/models"
)

type fakeAnalyticsRepo struct {
	national     []models.EngagementRow
	universities map[int64][]models.EngagementRow
	smallGroups  map[int64][]models.EngagementRow
	members      map[int64][]models.EngagementRow
	calls        []string
}

func (f *fakeAnalyticsRepo) National(context.Context, models.EngagementFilter) ([]models.EngagementRow, error) {
	f.calls = append(f.calls, "national")
	return f.national, nil
}

func (f *fakeAnalyticsRepo) RegionUniversities(_ context.Context, regionID int64, _ models.EngagementFilter) ([]models.EngagementRow, error) {
	f.calls = append(f.calls, "region")
	return f.universities[regionID], nil
}

func (f *fakeAnalyticsRepo) UniversitySmallGroups(_ context.Context, universityID int64, _ models.EngagementFilter) ([]models.EngagementRow, error) {
	f.calls = append(f.calls, "university")
	return f.smallGroups[universityID], nil
}

func (f *fakeAnalyticsRepo) SmallGroupMembers(_ context.Context, smallGroupID int64, _ models.EngagementFilter) ([]models.EngagementRow, error) {
	f.calls = append(f.calls, "members")
	return f.members[smallGroupID], nil
}

func (f *fakeAnalyticsRepo) MemberStatistics(context.Context, models.MemberFilter) ([]models.MemberStatistics, error) {
	return nil, nil
}

func (f *fakeAnalyticsRepo) Contributions(context.Context, models.EngagementFilter) (*models.ContributionAnalytics, error) {
	return &models.ContributionAnalytics{}, nil
}

func (f *fakeAnalyticsRepo) ExportDetails(context.Context, models.EngagementFilter) ([]models.ExportDetail, error) {
	return nil, nil
}

func newDrilldownFixture() (*DrilldownController, *fakeAnalyticsRepo) {
	repo := &fakeAnalyticsRepo{
		national: []models.EngagementRow{
			{RegionID: ptrInt64(1), Name: "North", TotalMembers: 120, AttendanceRate: 80, PreviousRate: 75, EventCount: 4},
			{RegionID: ptrInt64(2), Name: "South", TotalMembers: 90, AttendanceRate: 70, PreviousRate: 72, EventCount: 4},
		},
		universities: map[int64][]models.EngagementRow{
			1: {{UniversityID: ptrInt64(10), Name: "North Tech", TotalMembers: 60, AttendanceRate: 82}},
		},
		smallGroups: map[int64][]models.EngagementRow{
			10: {{SmallGroupID: ptrInt64(100), Name: "Alpha", TotalMembers: 12, AttendanceRate: 90}},
		},
		members: map[int64][]models.EngagementRow{
			100: {{MemberID: ptrInt64(1000), Name: "John Doe", AttendanceRate: 95}},
		},
	}
	cacheSvc := NewCacheService(nil, nil, 0, nil, false)
	analytics := NewAnalyticsService(repo, cacheSvc, nil, 0, nil)
	return NewDrilldownController(analytics, nil), repo
}

func TestLevelForDepthRoundTrip(t *testing.T) {
	levels := []models.DrilldownLevel{models.LevelNational, models.LevelRegion, models.LevelUniversity, models.LevelMember}
	for _, level := range levels {
		assert.Equal(t, level, models.LevelForDepth(level.Depth()))
	}
	assert.Equal(t, models.LevelMember, models.LevelForDepth(7))
}

func TestDrillIntoNationalRowPushesRegion(t *testing.T) {
	ctrl, _ := newDrilldownFixture()
	ctx := context.Background()
	require.NoError(t, ctrl.Load(ctx))
	require.Equal(t, models.LevelNational, ctrl.Level())

	northRow := ctrl.Dataset().Rows[0]
	require.NoError(t, ctrl.DrillInto(ctx, northRow))

	assert.Equal(t, models.LevelRegion, ctrl.Level())
	require.Len(t, ctrl.Stack(), 1)
	assert.Equal(t, "North", ctrl.Stack()[0].Name)
	assert.Equal(t, "North Tech", ctrl.Dataset().Rows[0].Name)
}

func TestDrilldownFullDescentAndBack(t *testing.T) {
	ctrl, _ := newDrilldownFixture()
	ctx := context.Background()
	require.NoError(t, ctrl.Load(ctx))

	require.NoError(t, ctrl.DrillInto(ctx, ctrl.Dataset().Rows[0]))
	require.NoError(t, ctrl.DrillInto(ctx, ctrl.Dataset().Rows[0]))
	require.NoError(t, ctrl.DrillInto(ctx, ctrl.Dataset().Rows[0]))

	assert.Equal(t, models.LevelMember, ctrl.Level())
	assert.Equal(t, "John Doe", ctrl.Dataset().Rows[0].Name)

	// member rows are leaves
	assert.Error(t, ctrl.DrillInto(ctx, ctrl.Dataset().Rows[0]))

	require.NoError(t, ctrl.Back(ctx))
	assert.Equal(t, models.LevelUniversity, ctrl.Level())
	assert.Equal(t, "Alpha", ctrl.Dataset().Rows[0].Name)
}

func TestNavigateToTruncatesStack(t *testing.T) {
	ctrl, repo := newDrilldownFixture()
	ctx := context.Background()
	require.NoError(t, ctrl.Load(ctx))
	require.NoError(t, ctrl.DrillInto(ctx, ctrl.Dataset().Rows[0]))
	require.NoError(t, ctrl.DrillInto(ctx, ctrl.Dataset().Rows[0]))
	require.Len(t, ctrl.Stack(), 2)

	calls := len(repo.calls)
	require.NoError(t, ctrl.NavigateTo(ctx, 0))

	assert.Equal(t, models.LevelRegion, ctrl.Level())
	assert.Len(t, ctrl.Stack(), 1)
	// every breadcrumb transition refetches; no cached dataset reuse
	assert.Equal(t, calls+1, len(repo.calls))

	require.NoError(t, ctrl.NavigateTo(ctx, -1))
	assert.Equal(t, models.LevelNational, ctrl.Level())
	assert.Empty(t, ctrl.Stack())
}

func TestNavigateToOutOfRange(t *testing.T) {
	ctrl, _ := newDrilldownFixture()
	assert.Error(t, ctrl.NavigateTo(context.Background(), 0))
}

func TestBackAtNationalIsNoOp(t *testing.T) {
	ctrl, repo := newDrilldownFixture()
	require.NoError(t, ctrl.Back(context.Background()))
	assert.Empty(t, repo.calls)
}

func TestDrillIntoRowWithoutIDFails(t *testing.T) {
	ctrl, _ := newDrilldownFixture()
	ctx := context.Background()
	require.NoError(t, ctrl.Load(ctx))

	err := ctrl.DrillInto(ctx, models.EngagementRow{Name: "broken"})

	assert.Error(t, err)
	assert.Empty(t, ctrl.Stack())
}

func TestSetFilterRefetchesCurrentLevel(t *testing.T) {
	ctrl, repo := newDrilldownFixture()
	ctx := context.Background()
	require.NoError(t, ctrl.Load(ctx))
	require.NoError(t, ctrl.DrillInto(ctx, ctrl.Dataset().Rows[0]))
	calls := len(repo.calls)

	require.NoError(t, ctrl.SetFilter(ctx, models.EngagementFilter{EventID: 7}))

	assert.Equal(t, models.LevelRegion, ctrl.Level())
	assert.Equal(t, calls+1, len(repo.calls))
}
