package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ministry-hub/attendance-api/internal/models"
	appErrors "github.com/ministry-hub/attendance-api/pkg/errors"
	"github.com/ministry-hub/attendance-api/pkg/export"
)

// ExportService builds engagement report documents from live analytics
// data: key metrics as the executive summary, the detail record dump as
// the capped table, and the drill-down breadcrumbs as the navigation path.
type ExportService struct {
	analytics  *AnalyticsService
	pdf        *export.PDFExporter
	csv        *export.CSVExporter
	reportType string
	logger     *zap.Logger
	now        func() time.Time
}

// NewExportService constructs an ExportService. reportType names the
// document family on filenames and headers, e.g. "Engagement".
func NewExportService(analytics *AnalyticsService, reportType string, logger *zap.Logger) *ExportService {
	if reportType == "" {
		reportType = "Engagement"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		analytics:  analytics,
		pdf:        export.NewPDFExporter(),
		csv:        export.NewCSVExporter(),
		reportType: reportType,
		logger:     logger,
		now:        time.Now,
	}
}

// ExportRequest describes one report to build.
type ExportRequest struct {
	Level  models.DrilldownLevel
	Path   []models.NavigationEntry
	Filter models.EngagementFilter
	Scope  string
}

// BuildPDF assembles and renders the report. The detail table is capped
// inside the renderer; the filename follows
// {ReportType}_Report_{scope}_{ISODate}.pdf.
func (s *ExportService) BuildPDF(ctx context.Context, req ExportRequest) ([]byte, string, error) {
	report, err := s.buildReport(ctx, req)
	if err != nil {
		return nil, "", err
	}
	payload, err := s.pdf.RenderReport(*report)
	if err != nil {
		s.logger.Error("pdf render failed", zap.String("scope", req.Scope), zap.Error(err))
		return nil, "", appErrors.Wrap(err, appErrors.ErrExportFailed.Code, appErrors.ErrExportFailed.Status, appErrors.ErrExportFailed.Message)
	}
	return payload, report.Filename(), nil
}

// BuildCSV renders the same detail dataset as CSV, uncapped.
func (s *ExportService) BuildCSV(ctx context.Context, req ExportRequest) ([]byte, string, error) {
	report, err := s.buildReport(ctx, req)
	if err != nil {
		return nil, "", err
	}
	payload, err := s.csv.Render(report.Details)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrExportFailed.Code, appErrors.ErrExportFailed.Status, appErrors.ErrExportFailed.Message)
	}
	filename := report.Filename()
	filename = filename[:len(filename)-len(".pdf")] + ".csv"
	return payload, filename, nil
}

func (s *ExportService) buildReport(ctx context.Context, req ExportRequest) (*export.Report, error) {
	parentID := int64(0)
	if len(req.Path) > 0 {
		parentID = req.Path[len(req.Path)-1].ID
	}
	dataset, _, err := s.analytics.Dataset(ctx, req.Level, parentID, req.Filter)
	if err != nil {
		return nil, err
	}
	details, err := s.analytics.ExportDetails(ctx, req.Filter)
	if err != nil {
		return nil, err
	}

	rows := make([]map[string]string, len(details))
	for i, d := range details {
		rows[i] = map[string]string{
			"Member": d.MemberName,
			"Group":  d.GroupName,
			"Event":  d.EventName,
			"Status": d.Status,
			"Date":   d.RecordedAt.Format("2006-01-02"),
			"Rate":   fmt.Sprintf("%.1f%%", d.AttendanceRate),
		}
	}

	path := make([]string, len(req.Path))
	for i, entry := range req.Path {
		path[i] = entry.Name
	}

	scope := req.Scope
	if scope == "" && len(path) > 0 {
		scope = path[len(path)-1]
	}

	return &export.Report{
		Title:          fmt.Sprintf("%s Report - %s", s.reportType, levelTitle(req.Level)),
		ReportType:     s.reportType,
		Scope:          scope,
		GeneratedAt:    s.now(),
		Filters:        describeFilters(req.Filter),
		NavigationPath: path,
		Summary: []export.SummaryMetric{
			{Label: "Total Members", Value: fmt.Sprintf("%d", dataset.KeyMetrics.TotalMembers)},
			{Label: "Total Events", Value: fmt.Sprintf("%d", dataset.KeyMetrics.TotalEvents)},
			{Label: "Average Attendance", Value: fmt.Sprintf("%.1f%%", dataset.KeyMetrics.AverageAttendance)},
			{Label: "Previous Period", Value: fmt.Sprintf("%.1f%%", dataset.KeyMetrics.PreviousAverage)},
		},
		Details: export.Dataset{
			Headers: []string{"Member", "Group", "Event", "Status", "Date", "Rate"},
			Rows:    rows,
		},
	}, nil
}

func levelTitle(level models.DrilldownLevel) string {
	switch level {
	case models.LevelRegion:
		return "Region Overview"
	case models.LevelUniversity:
		return "University Overview"
	case models.LevelMember:
		return "Member Statistics"
	default:
		return "National Overview"
	}
}

func describeFilters(filter models.EngagementFilter) map[string]string {
	filters := map[string]string{}
	if filter.EventID != 0 {
		filters["Event"] = fmt.Sprintf("#%d", filter.EventID)
	}
	if filter.EventType != nil {
		filters["Event Type"] = string(*filter.EventType)
	}
	if filter.DateFrom != nil && filter.DateTo != nil {
		filters["Period"] = filter.DateFrom.Format("2006-01-02") + " to " + filter.DateTo.Format("2006-01-02")
	} else if filter.DateFrom != nil {
		filters["Period"] = "from " + filter.DateFrom.Format("2006-01-02")
	} else if filter.DateTo != nil {
		filters["Period"] = "until " + filter.DateTo.Format("2006-01-02")
	}
	return filters
}
