package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/ministry-hub/attendance-api/internal/models"
)

// AnalyticsRepository serves the aggregated datasets behind the engagement
// drill-down levels, member statistics and contribution rollups.
type AnalyticsRepository struct {
	db *sqlx.DB
}

// NewAnalyticsRepository constructs the repository.
func NewAnalyticsRepository(db *sqlx.DB) *AnalyticsRepository {
	return &AnalyticsRepository{db: db}
}

// attendanceJoin builds the attendance join condition for the active
// event/date filters. Constraints live in the ON clause so groups with no
// matching attendance still aggregate to zero rows.
func attendanceJoin(filter models.EngagementFilter, args *[]interface{}) string {
	conds := []string{"a.member_id = m.id"}
	if filter.EventID != 0 {
		conds = append(conds, fmt.Sprintf("a.event_id = $%d", len(*args)+1))
		*args = append(*args, filter.EventID)
	}
	if filter.EventType != nil {
		conds = append(conds, fmt.Sprintf("a.event_type = $%d", len(*args)+1))
		*args = append(*args, *filter.EventType)
	}
	if filter.DateFrom != nil {
		conds = append(conds, fmt.Sprintf("a.recorded_at >= $%d", len(*args)+1))
		*args = append(*args, *filter.DateFrom)
	}
	if filter.DateTo != nil {
		conds = append(conds, fmt.Sprintf("a.recorded_at < $%d", len(*args)+1))
		*args = append(*args, filter.DateTo.AddDate(0, 0, 1))
	}
	return strings.Join(conds, " AND ")
}

const engagementAggregates = `COUNT(DISTINCT m.id) AS total_members,
        COUNT(a.id) FILTER (WHERE a.status = 'present') AS present_count,
        COUNT(a.id) FILTER (WHERE a.status = 'absent') AS absent_count,
        COUNT(a.id) FILTER (WHERE a.status = 'excused') AS excused_count,
        COUNT(DISTINCT a.event_id) AS event_count,
        COUNT(a.id) AS attendance_count,
        COUNT(DISTINCT m.id) AS capacity,
        COALESCE(100.0 * COUNT(a.id) FILTER (WHERE a.status = 'present') / NULLIF(COUNT(a.id), 0), 0) AS attendance_rate,
        0::float AS previous_rate`

// National aggregates attendance per region across the whole organization.
func (r *AnalyticsRepository) National(ctx context.Context, filter models.EngagementFilter) ([]models.EngagementRow, error) {
	args := []interface{}{}
	join := attendanceJoin(filter, &args)
	query := fmt.Sprintf(`SELECT reg.id AS region_id, reg.name AS name, %s
FROM regions reg
LEFT JOIN members m ON m.region_id = reg.id
LEFT JOIN attendance a ON %s
GROUP BY reg.id, reg.name
ORDER BY reg.name`, engagementAggregates, join)
	rows, err := r.selectRows(ctx, query, args)
	if err != nil {
		return nil, fmt.Errorf("national engagement: %w", err)
	}
	return r.withPreviousRates(ctx, rows, 0, filter, "region")
}

// RegionUniversities aggregates attendance per university within a region.
func (r *AnalyticsRepository) RegionUniversities(ctx context.Context, regionID int64, filter models.EngagementFilter) ([]models.EngagementRow, error) {
	args := []interface{}{}
	join := attendanceJoin(filter, &args)
	args = append(args, regionID)
	query := fmt.Sprintf(`SELECT u.id AS university_id, u.name AS name, %s
FROM universities u
LEFT JOIN members m ON m.university_id = u.id
LEFT JOIN attendance a ON %s
WHERE u.region_id = $%d
GROUP BY u.id, u.name
ORDER BY u.name`, engagementAggregates, join, len(args))
	rows, err := r.selectRows(ctx, query, args)
	if err != nil {
		return nil, fmt.Errorf("region engagement: %w", err)
	}
	return r.withPreviousRates(ctx, rows, regionID, filter, "university")
}

// UniversitySmallGroups aggregates attendance per small group within a
// university.
func (r *AnalyticsRepository) UniversitySmallGroups(ctx context.Context, universityID int64, filter models.EngagementFilter) ([]models.EngagementRow, error) {
	args := []interface{}{}
	join := attendanceJoin(filter, &args)
	args = append(args, universityID)
	query := fmt.Sprintf(`SELECT sg.id AS small_group_id, sg.name AS name, %s
FROM small_groups sg
LEFT JOIN members m ON m.small_group_id = sg.id
LEFT JOIN attendance a ON %s
WHERE sg.university_id = $%d
GROUP BY sg.id, sg.name
ORDER BY sg.name`, engagementAggregates, join, len(args))
	rows, err := r.selectRows(ctx, query, args)
	if err != nil {
		return nil, fmt.Errorf("university engagement: %w", err)
	}
	return r.withPreviousRates(ctx, rows, universityID, filter, "smallgroup")
}

// SmallGroupMembers returns per-member aggregate rows for one small group.
func (r *AnalyticsRepository) SmallGroupMembers(ctx context.Context, smallGroupID int64, filter models.EngagementFilter) ([]models.EngagementRow, error) {
	args := []interface{}{}
	join := attendanceJoin(filter, &args)
	args = append(args, smallGroupID)
	query := fmt.Sprintf(`SELECT m.id AS member_id, m.firstname || ' ' || m.secondname AS name, %s
FROM members m
LEFT JOIN attendance a ON %s
WHERE m.small_group_id = $%d
GROUP BY m.id, m.firstname, m.secondname
ORDER BY m.firstname, m.secondname`, engagementAggregates, join, len(args))
	rows, err := r.selectRows(ctx, query, args)
	if err != nil {
		return nil, fmt.Errorf("member engagement: %w", err)
	}
	return r.withPreviousRates(ctx, rows, smallGroupID, filter, "member")
}

func (r *AnalyticsRepository) selectRows(ctx context.Context, query string, args []interface{}) ([]models.EngagementRow, error) {
	var rows []models.EngagementRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}
	return rows, nil
}

// withPreviousRates fills PreviousRate from an equal-length window ending
// where the current one starts. Without a bounded window there is no
// previous period and the rates stay zero. parentID is the drilled parent
// of the current query, not whatever scope the filter happens to carry.
func (r *AnalyticsRepository) withPreviousRates(ctx context.Context, rows []models.EngagementRow, parentID int64, filter models.EngagementFilter, level string) ([]models.EngagementRow, error) {
	if filter.DateFrom == nil || filter.DateTo == nil || len(rows) == 0 {
		return rows, nil
	}
	span := filter.DateTo.Sub(*filter.DateFrom) + 24*time.Hour
	prevTo := filter.DateFrom.Add(-24 * time.Hour)
	prevFrom := prevTo.Add(-span + 24*time.Hour)
	prev := filter
	prev.DateFrom = &prevFrom
	prev.DateTo = &prevTo

	var (
		prevRows []models.EngagementRow
		err      error
	)
	switch level {
	case "region":
		prevRows, err = r.nationalNoPrev(ctx, prev)
	case "university":
		prevRows, err = r.regionNoPrev(ctx, parentID, prev)
	case "smallgroup":
		prevRows, err = r.universityNoPrev(ctx, parentID, prev)
	default:
		prevRows, err = r.membersNoPrev(ctx, parentID, prev)
	}
	if err != nil {
		return nil, fmt.Errorf("previous period rates: %w", err)
	}

	byKey := make(map[string]float64, len(prevRows))
	for _, row := range prevRows {
		byKey[rowKey(row)] = row.AttendanceRate
	}
	for i := range rows {
		rows[i].PreviousRate = byKey[rowKey(rows[i])]
	}
	return rows, nil
}

func rowKey(row models.EngagementRow) string {
	switch {
	case row.MemberID != nil:
		return fmt.Sprintf("m%d", *row.MemberID)
	case row.SmallGroupID != nil:
		return fmt.Sprintf("g%d", *row.SmallGroupID)
	case row.UniversityID != nil:
		return fmt.Sprintf("u%d", *row.UniversityID)
	case row.RegionID != nil:
		return fmt.Sprintf("r%d", *row.RegionID)
	default:
		return row.Name
	}
}

func (r *AnalyticsRepository) nationalNoPrev(ctx context.Context, filter models.EngagementFilter) ([]models.EngagementRow, error) {
	args := []interface{}{}
	join := attendanceJoin(filter, &args)
	query := fmt.Sprintf(`SELECT reg.id AS region_id, reg.name AS name, %s
FROM regions reg
LEFT JOIN members m ON m.region_id = reg.id
LEFT JOIN attendance a ON %s
GROUP BY reg.id, reg.name`, engagementAggregates, join)
	return r.selectRows(ctx, query, args)
}

func (r *AnalyticsRepository) regionNoPrev(ctx context.Context, regionID int64, filter models.EngagementFilter) ([]models.EngagementRow, error) {
	args := []interface{}{}
	join := attendanceJoin(filter, &args)
	args = append(args, regionID)
	query := fmt.Sprintf(`SELECT u.id AS university_id, u.name AS name, %s
FROM universities u
LEFT JOIN members m ON m.university_id = u.id
LEFT JOIN attendance a ON %s
WHERE u.region_id = $%d
GROUP BY u.id, u.name`, engagementAggregates, join, len(args))
	return r.selectRows(ctx, query, args)
}

func (r *AnalyticsRepository) universityNoPrev(ctx context.Context, universityID int64, filter models.EngagementFilter) ([]models.EngagementRow, error) {
	args := []interface{}{}
	join := attendanceJoin(filter, &args)
	args = append(args, universityID)
	query := fmt.Sprintf(`SELECT sg.id AS small_group_id, sg.name AS name, %s
FROM small_groups sg
LEFT JOIN members m ON m.small_group_id = sg.id
LEFT JOIN attendance a ON %s
WHERE sg.university_id = $%d
GROUP BY sg.id, sg.name`, engagementAggregates, join, len(args))
	return r.selectRows(ctx, query, args)
}

func (r *AnalyticsRepository) membersNoPrev(ctx context.Context, smallGroupID int64, filter models.EngagementFilter) ([]models.EngagementRow, error) {
	args := []interface{}{}
	join := attendanceJoin(filter, &args)
	args = append(args, smallGroupID)
	query := fmt.Sprintf(`SELECT m.id AS member_id, m.firstname || ' ' || m.secondname AS name, %s
FROM members m
LEFT JOIN attendance a ON %s
WHERE m.small_group_id = $%d
GROUP BY m.id, m.firstname, m.secondname`, engagementAggregates, join, len(args))
	return r.selectRows(ctx, query, args)
}

// MemberStatistics returns per-member aggregate stats scoped by the filter.
func (r *AnalyticsRepository) MemberStatistics(ctx context.Context, filter models.MemberFilter) ([]models.MemberStatistics, error) {
	where := []string{"1=1"}
	args := []interface{}{}
	switch {
	case filter.SmallGroupID != 0:
		where = append(where, fmt.Sprintf("m.small_group_id = $%d", len(args)+1))
		args = append(args, filter.SmallGroupID)
	case filter.AlumniGroupID != 0:
		where = append(where, fmt.Sprintf("m.alumni_group_id = $%d", len(args)+1))
		args = append(args, filter.AlumniGroupID)
	case filter.UniversityID != 0:
		where = append(where, fmt.Sprintf("m.university_id = $%d", len(args)+1))
		args = append(args, filter.UniversityID)
	case filter.RegionID != 0:
		where = append(where, fmt.Sprintf("m.region_id = $%d", len(args)+1))
		args = append(args, filter.RegionID)
	}
	query := fmt.Sprintf(`SELECT m.id AS member_id, m.firstname, m.secondname,
        COUNT(a.id) FILTER (WHERE a.status = 'present') AS present_count,
        COUNT(a.id) FILTER (WHERE a.status = 'absent') AS absent_count,
        COUNT(a.id) FILTER (WHERE a.status = 'excused') AS excused_count,
        COUNT(a.id) AS total_records,
        COALESCE(100.0 * COUNT(a.id) FILTER (WHERE a.status = 'present') / NULLIF(COUNT(a.id), 0), 0) AS attendance_rate,
        MAX(a.recorded_at) FILTER (WHERE a.status = 'present') AS last_attended
FROM members m
LEFT JOIN attendance a ON a.member_id = m.id
WHERE %s
GROUP BY m.id, m.firstname, m.secondname
ORDER BY m.firstname, m.secondname`, strings.Join(where, " AND "))
	var rows []models.MemberStatistics
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("member statistics: %w", err)
	}
	return rows, nil
}

// Contributions returns the financial rollups for the reports surface.
func (r *AnalyticsRepository) Contributions(ctx context.Context, filter models.EngagementFilter) (*models.ContributionAnalytics, error) {
	where := []string{"1=1"}
	args := []interface{}{}
	if filter.DateFrom != nil {
		where = append(where, fmt.Sprintf("c.contributed_at >= $%d", len(args)+1))
		args = append(args, *filter.DateFrom)
	}
	if filter.DateTo != nil {
		where = append(where, fmt.Sprintf("c.contributed_at < $%d", len(args)+1))
		args = append(args, filter.DateTo.AddDate(0, 0, 1))
	}
	if filter.RegionID != 0 {
		where = append(where, fmt.Sprintf("m.region_id = $%d", len(args)+1))
		args = append(args, filter.RegionID)
	}
	query := fmt.Sprintf(`SELECT
        COALESCE(SUM(c.amount) FILTER (WHERE c.kind = 'revenue'), 0) AS total_revenue,
        COALESCE(SUM(c.amount) FILTER (WHERE c.kind = 'expense'), 0) AS total_expenses,
        COALESCE(SUM(c.amount) FILTER (WHERE c.kind = 'contribution'), 0) AS total_contributions,
        COUNT(DISTINCT c.member_id) AS contributor_count
FROM contributions c
JOIN members m ON m.id = c.member_id
WHERE %s`, strings.Join(where, " AND "))
	var out models.ContributionAnalytics
	if err := r.db.GetContext(ctx, &out, query, args...); err != nil {
		return nil, fmt.Errorf("contribution analytics: %w", err)
	}
	return &out, nil
}

// ExportDetails returns the flattened detail rows included in report exports.
func (r *AnalyticsRepository) ExportDetails(ctx context.Context, filter models.EngagementFilter) ([]models.ExportDetail, error) {
	where := []string{"1=1"}
	args := []interface{}{}
	if filter.RegionID != 0 {
		where = append(where, fmt.Sprintf("m.region_id = $%d", len(args)+1))
		args = append(args, filter.RegionID)
	}
	if filter.UniversityID != 0 {
		where = append(where, fmt.Sprintf("m.university_id = $%d", len(args)+1))
		args = append(args, filter.UniversityID)
	}
	if filter.SmallGroupID != 0 {
		where = append(where, fmt.Sprintf("m.small_group_id = $%d", len(args)+1))
		args = append(args, filter.SmallGroupID)
	}
	if filter.EventID != 0 {
		where = append(where, fmt.Sprintf("a.event_id = $%d", len(args)+1))
		args = append(args, filter.EventID)
	}
	if filter.DateFrom != nil {
		where = append(where, fmt.Sprintf("a.recorded_at >= $%d", len(args)+1))
		args = append(args, *filter.DateFrom)
	}
	if filter.DateTo != nil {
		where = append(where, fmt.Sprintf("a.recorded_at < $%d", len(args)+1))
		args = append(args, filter.DateTo.AddDate(0, 0, 1))
	}
	query := fmt.Sprintf(`SELECT m.firstname || ' ' || m.secondname AS member_name,
        COALESCE(sg.name, ag.name, u.name, reg.name, 'National') AS group_name,
        e.name AS event_name,
        a.status,
        a.recorded_at,
        COALESCE(100.0 * COUNT(a.id) FILTER (WHERE a.status = 'present') OVER (PARTITION BY a.member_id) / NULLIF(COUNT(a.id) OVER (PARTITION BY a.member_id), 0), 0) AS attendance_rate
FROM attendance a
JOIN members m ON m.id = a.member_id
JOIN events e ON e.id = a.event_id
LEFT JOIN small_groups sg ON sg.id = m.small_group_id
LEFT JOIN alumni_small_groups ag ON ag.id = m.alumni_group_id
LEFT JOIN universities u ON u.id = m.university_id
LEFT JOIN regions reg ON reg.id = m.region_id
WHERE %s
ORDER BY a.recorded_at DESC`, strings.Join(where, " AND "))
	var rows []models.ExportDetail
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("export details: %w", err)
	}
	return rows, nil
}
