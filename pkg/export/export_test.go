package export

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportFilename(t *testing.T) {
	report := Report{
		ReportType:  "Engagement",
		Scope:       "North Region",
		GeneratedAt: time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC),
	}
	assert.Equal(t, "Engagement_Report_North_Region_2026-03-15.pdf", report.Filename())
}

func TestReportFilenameEmptyScope(t *testing.T) {
	report := Report{
		ReportType:  "Engagement",
		GeneratedAt: time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC),
	}
	assert.Equal(t, "Engagement_Report_All_2026-03-15.pdf", report.Filename())
}

func sampleReport(rows int) Report {
	details := Dataset{Headers: []string{"Member", "Status"}}
	for i := 0; i < rows; i++ {
		details.Rows = append(details.Rows, map[string]string{
			"Member": fmt.Sprintf("Member %d", i+1),
			"Status": "present",
		})
	}
	return Report{
		Title:          "Engagement Report - National Overview",
		ReportType:     "Engagement",
		Scope:          "All",
		GeneratedAt:    time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC),
		Filters:        map[string]string{"Period": "2026-03-01 to 2026-03-15"},
		NavigationPath: []string{"National", "North Region"},
		Summary: []SummaryMetric{
			{Label: "Total Members", Value: "120"},
			{Label: "Average Attendance", Value: "82.4%"},
		},
		Details: details,
	}
}

func TestRenderReportProducesPDF(t *testing.T) {
	payload, err := NewPDFExporter().RenderReport(sampleReport(5))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(payload), "%PDF"))
}

func TestRenderReportCapsDetailRows(t *testing.T) {
	// 80 rows must still render: the table is capped, not rejected.
	payload, err := NewPDFExporter().RenderReport(sampleReport(MaxDetailRows + 30))
	require.NoError(t, err)
	assert.NotEmpty(t, payload)
}

func TestRenderReportRequiresHeaders(t *testing.T) {
	_, err := NewPDFExporter().RenderReport(Report{})
	assert.Error(t, err)
}

func TestCSVRender(t *testing.T) {
	payload, err := NewCSVExporter().Render(Dataset{
		Headers: []string{"Member", "Status"},
		Rows: []map[string]string{
			{"Member": "John Doe", "Status": "present"},
			{"Member": "Jane Smith", "Status": "absent"},
		},
	})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(payload)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Member,Status", lines[0])
	assert.Equal(t, "John Doe,present", lines[1])
}

func TestCSVRequiresHeaders(t *testing.T) {
	_, err := NewCSVExporter().Render(Dataset{})
	assert.Error(t, err)
}
