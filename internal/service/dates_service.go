package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/ministry-hub/attendance-api/internal/models"
	appErrors "github.com/ministry-hub/attendance-api/pkg/errors"
)

const dateLayout = "2006-01-02"

type attendanceDatesRepository interface {
	DistinctDates(ctx context.Context, filter models.AttendanceFilter) ([]string, map[string]int, error)
}

// DateService resolves which attendance dates exist for a filter set and
// keeps date selections consistent with them.
type DateService struct {
	repo   attendanceDatesRepository
	logger *zap.Logger
	now    func() time.Time
}

// NewDateService constructs a DateService. The clock defaults to time.Now
// and is injectable for tests.
func NewDateService(repo attendanceDatesRepository, logger *zap.Logger) *DateService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DateService{repo: repo, logger: logger, now: time.Now}
}

// Available returns the distinct dates that carry attendance under the
// filter, newest first, with each predefined quick range tagged by whether
// any of those dates falls inside it. An empty result set falls back to a
// single entry for today so pickers always have something to show.
func (s *DateService) Available(ctx context.Context, filter models.AttendanceFilter) (*models.DateAvailability, error) {
	dates, stats, err := s.repo.DistinctDates(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load attendance dates")
	}
	today := s.now().Format(dateLayout)
	if len(dates) == 0 {
		dates = []string{today}
	}
	ranges := s.predefinedRanges()
	for i := range ranges {
		ranges[i].Available = anyDateWithin(dates, ranges[i].DateFrom, ranges[i].DateTo)
	}
	return &models.DateAvailability{
		Dates:            dates,
		PredefinedRanges: ranges,
		Stats:            stats,
	}, nil
}

// Reconcile checks a date selection against current availability. A
// selected date no longer present, or a range id that no longer resolves,
// resets the selection to "all".
func (s *DateService) Reconcile(availability *models.DateAvailability, selected models.DateSelection) models.DateSelection {
	if availability == nil || selected.IsZero() {
		return models.DateSelection{}
	}
	if selected.RangeID != "" {
		for _, r := range availability.PredefinedRanges {
			if r.ID == selected.RangeID && r.Available {
				return models.DateSelection{DateFrom: r.DateFrom, DateTo: r.DateTo, RangeID: r.ID}
			}
		}
		return models.DateSelection{}
	}
	if selected.DateFrom == selected.DateTo {
		for _, d := range availability.Dates {
			if d == selected.DateFrom {
				return selected
			}
		}
		return models.DateSelection{}
	}
	if anyDateWithin(availability.Dates, selected.DateFrom, selected.DateTo) {
		return selected
	}
	return models.DateSelection{}
}

// Resolve turns a range id into concrete bounds. Unknown ids are rejected.
func (s *DateService) Resolve(rangeID string) (models.DateSelection, error) {
	for _, r := range s.predefinedRanges() {
		if r.ID == rangeID {
			return models.DateSelection{DateFrom: r.DateFrom, DateTo: r.DateTo, RangeID: r.ID}, nil
		}
	}
	return models.DateSelection{}, appErrors.Clone(appErrors.ErrValidation, "unknown date range")
}

func (s *DateService) predefinedRanges() []models.PredefinedRange {
	ref := s.now()
	today := ref.Format(dateLayout)
	yesterday := ref.AddDate(0, 0, -1).Format(dateLayout)
	weekStart := startOfISOWeek(ref).Format(dateLayout)
	monthStart := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location()).Format(dateLayout)
	return []models.PredefinedRange{
		{ID: "today", Label: "Today", DateFrom: today, DateTo: today},
		{ID: "yesterday", Label: "Yesterday", DateFrom: yesterday, DateTo: yesterday},
		{ID: "last7days", Label: "Last 7 Days", DateFrom: ref.AddDate(0, 0, -6).Format(dateLayout), DateTo: today},
		{ID: "thisWeek", Label: "This Week", DateFrom: weekStart, DateTo: today},
		{ID: "thisMonth", Label: "This Month", DateFrom: monthStart, DateTo: today},
	}
}

// startOfISOWeek returns the Monday on or before t.
func startOfISOWeek(t time.Time) time.Time {
	day := int(t.Weekday())
	diff := 1 - day
	if day == 0 {
		diff = -6
	}
	return t.AddDate(0, 0, diff)
}

func anyDateWithin(dates []string, from, to string) bool {
	for _, d := range dates {
		if d >= from && d <= to {
			return true
		}
	}
	return false
}
