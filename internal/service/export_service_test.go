package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ministry-hub/attendance-api/internal/models"
)

type exportAnalyticsRepo struct {
	fakeAnalyticsRepo
	details []models.ExportDetail
}

func (f *exportAnalyticsRepo) ExportDetails(context.Context, models.EngagementFilter) ([]models.ExportDetail, error) {
	return f.details, nil
}

func newExportFixture(detailCount int) *ExportService {
	repo := &exportAnalyticsRepo{}
	repo.national = []models.EngagementRow{{RegionID: ptrInt64(1), Name: "North", TotalMembers: 10, AttendanceRate: 80}}
	for i := 0; i < detailCount; i++ {
		repo.details = append(repo.details, models.ExportDetail{
			MemberName: "John Doe",
			GroupName:  "Alpha",
			EventName:  "Sunday Service",
			Status:     "present",
			RecordedAt: time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		})
	}
	analytics := NewAnalyticsService(repo, NewCacheService(nil, nil, 0, nil, false), nil, 0, nil)
	svc := NewExportService(analytics, "Engagement", nil)
	svc.now = func() time.Time { return time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC) }
	return svc
}

func TestBuildPDFFilename(t *testing.T) {
	svc := newExportFixture(3)

	payload, filename, err := svc.BuildPDF(context.Background(), ExportRequest{
		Level: models.LevelNational,
		Scope: "North Region",
	})

	require.NoError(t, err)
	assert.Equal(t, "Engagement_Report_North_Region_2026-03-15.pdf", filename)
	assert.True(t, strings.HasPrefix(string(payload), "%PDF"))
}

func TestBuildPDFScopeFallsBackToDeepestBreadcrumb(t *testing.T) {
	svc := newExportFixture(1)

	_, filename, err := svc.BuildPDF(context.Background(), ExportRequest{
		Level: models.LevelNational,
		Path:  []models.NavigationEntry{{Level: models.LevelRegion, ID: 1, Name: "North"}},
	})

	require.NoError(t, err)
	assert.Equal(t, "Engagement_Report_North_2026-03-15.pdf", filename)
}

func TestBuildPDFLargeDetailSetStillRenders(t *testing.T) {
	svc := newExportFixture(120)

	payload, _, err := svc.BuildPDF(context.Background(), ExportRequest{Level: models.LevelNational})

	require.NoError(t, err)
	assert.NotEmpty(t, payload)
}

func TestBuildCSVFilenameExtension(t *testing.T) {
	svc := newExportFixture(2)

	payload, filename, err := svc.BuildCSV(context.Background(), ExportRequest{Level: models.LevelNational, Scope: "All"})

	require.NoError(t, err)
	assert.Equal(t, "Engagement_Report_All_2026-03-15.csv", filename)
	lines := strings.Split(strings.TrimSpace(string(payload)), "\n")
	assert.Len(t, lines, 3)
}
