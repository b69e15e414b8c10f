package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ministry-hub/attendance-api/internal/models"
	appErrors "github.com/ministry-hub/attendance-api/pkg/errors"
)

type analyticsRepository interface {
	National(ctx context.Context, filter models.EngagementFilter) ([]models.EngagementRow, error)
	RegionUniversities(ctx context.Context, regionID int64, filter models.EngagementFilter) ([]models.EngagementRow, error)
	UniversitySmallGroups(ctx context.Context, universityID int64, filter models.EngagementFilter) ([]models.EngagementRow, error)
	SmallGroupMembers(ctx context.Context, smallGroupID int64, filter models.EngagementFilter) ([]models.EngagementRow, error)
	MemberStatistics(ctx context.Context, filter models.MemberFilter) ([]models.MemberStatistics, error)
	Contributions(ctx context.Context, filter models.EngagementFilter) (*models.ContributionAnalytics, error)
	ExportDetails(ctx context.Context, filter models.EngagementFilter) ([]models.ExportDetail, error)
}

// AnalyticsService aggregates engagement datasets per drill-down level,
// caching each dataset in redis and timing every repository query.
type AnalyticsService struct {
	repo     analyticsRepository
	cache    *CacheService
	metrics  *MetricsService
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewAnalyticsService constructs an AnalyticsService.
func NewAnalyticsService(repo analyticsRepository, cache *CacheService, metrics *MetricsService, cacheTTL time.Duration, logger *zap.Logger) *AnalyticsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cacheTTL <= 0 {
		cacheTTL = 10 * time.Minute
	}
	return &AnalyticsService{repo: repo, cache: cache, metrics: metrics, cacheTTL: cacheTTL, logger: logger}
}

// Dataset returns the engagement rows and key metrics for one level. The
// parent id is the region, university or small-group being expanded;
// national takes no parent. The boolean reports whether the payload came
// from cache.
func (s *AnalyticsService) Dataset(ctx context.Context, level models.DrilldownLevel, parentID int64, filter models.EngagementFilter) (*models.EngagementDataset, bool, error) {
	if level != models.LevelNational && parentID == 0 {
		return nil, false, appErrors.Clone(appErrors.ErrValidation, "a parent id is required below the national level")
	}
	key := s.datasetKey(level, parentID, filter)
	var cached models.EngagementDataset
	if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
		return &cached, true, nil
	}

	var (
		rows []models.EngagementRow
		err  error
	)
	start := time.Now()
	switch level {
	case models.LevelNational:
		rows, err = s.repo.National(ctx, filter)
	case models.LevelRegion:
		rows, err = s.repo.RegionUniversities(ctx, parentID, filter)
	case models.LevelUniversity:
		rows, err = s.repo.UniversitySmallGroups(ctx, parentID, filter)
	case models.LevelMember:
		rows, err = s.repo.SmallGroupMembers(ctx, parentID, filter)
	default:
		return nil, false, appErrors.Clone(appErrors.ErrValidation, "unknown drill-down level")
	}
	if s.metrics != nil {
		s.metrics.ObserveDBQuery("engagement_"+string(level), time.Since(start))
	}
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load engagement data")
	}

	dataset := &models.EngagementDataset{
		Level:      level,
		Rows:       rows,
		KeyMetrics: computeKeyMetrics(rows),
	}
	if err := s.cache.Set(ctx, key, dataset, s.cacheTTL); err != nil {
		s.logger.Warn("failed to cache engagement dataset", zap.String("key", key), zap.Error(err))
	}
	return dataset, false, nil
}

// MemberStatistics returns per-member aggregates for the statistics view.
func (s *AnalyticsService) MemberStatistics(ctx context.Context, filter models.MemberFilter) ([]models.MemberStatistics, bool, error) {
	key := fmt.Sprintf("analytics:members:%d:%d:%d:%d:%s",
		filter.RegionID, filter.UniversityID, filter.SmallGroupID, filter.AlumniGroupID, filter.Search)
	var cached []models.MemberStatistics
	if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
		return cached, true, nil
	}
	start := time.Now()
	stats, err := s.repo.MemberStatistics(ctx, filter)
	if s.metrics != nil {
		s.metrics.ObserveDBQuery("member_statistics", time.Since(start))
	}
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load member statistics")
	}
	if err := s.cache.Set(ctx, key, stats, s.cacheTTL); err != nil {
		s.logger.Warn("failed to cache member statistics", zap.String("key", key), zap.Error(err))
	}
	return stats, false, nil
}

// Contributions returns the financial rollups for the reports surface.
func (s *AnalyticsService) Contributions(ctx context.Context, filter models.EngagementFilter) (*models.ContributionAnalytics, bool, error) {
	key := "analytics:contributions:" + filterKey(filter)
	var cached models.ContributionAnalytics
	if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
		return &cached, true, nil
	}
	start := time.Now()
	analytics, err := s.repo.Contributions(ctx, filter)
	if s.metrics != nil {
		s.metrics.ObserveDBQuery("contributions", time.Since(start))
	}
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load contribution analytics")
	}
	if err := s.cache.Set(ctx, key, analytics, s.cacheTTL); err != nil {
		s.logger.Warn("failed to cache contribution analytics", zap.String("key", key), zap.Error(err))
	}
	return analytics, false, nil
}

// ExportDetails returns the detail rows that feed report exports. Export
// payloads are never cached: they must reflect the live record set.
func (s *AnalyticsService) ExportDetails(ctx context.Context, filter models.EngagementFilter) ([]models.ExportDetail, error) {
	start := time.Now()
	details, err := s.repo.ExportDetails(ctx, filter)
	if s.metrics != nil {
		s.metrics.ObserveDBQuery("export_details", time.Since(start))
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load export details")
	}
	return details, nil
}

// Invalidate drops every cached analytics payload. Called after attendance
// writes so dashboards do not serve stale aggregates for the full TTL.
func (s *AnalyticsService) Invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, "analytics:*"); err != nil {
		s.logger.Warn("failed to invalidate analytics cache", zap.Error(err))
	}
}

func (s *AnalyticsService) datasetKey(level models.DrilldownLevel, parentID int64, filter models.EngagementFilter) string {
	return fmt.Sprintf("analytics:%s:%d:%s", level, parentID, filterKey(filter))
}

func filterKey(filter models.EngagementFilter) string {
	eventType := ""
	if filter.EventType != nil {
		eventType = string(*filter.EventType)
	}
	from, to := "", ""
	if filter.DateFrom != nil {
		from = filter.DateFrom.Format("2006-01-02")
	}
	if filter.DateTo != nil {
		to = filter.DateTo.Format("2006-01-02")
	}
	return fmt.Sprintf("%d:%d:%d:%d:%s:%s:%s",
		filter.RegionID, filter.UniversityID, filter.SmallGroupID, filter.EventID, eventType, from, to)
}

func computeKeyMetrics(rows []models.EngagementRow) models.KeyMetrics {
	metrics := models.KeyMetrics{}
	if len(rows) == 0 {
		return metrics
	}
	var rateSum, prevSum float64
	for _, row := range rows {
		metrics.TotalMembers += row.TotalMembers
		metrics.TotalEvents += row.EventCount
		rateSum += row.AttendanceRate
		prevSum += row.PreviousRate
	}
	metrics.AverageAttendance = rateSum / float64(len(rows))
	metrics.PreviousAverage = prevSum / float64(len(rows))
	return metrics
}
