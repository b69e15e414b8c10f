package models

import "time"

// DrilldownLevel identifies the aggregation depth of a reports view.
type DrilldownLevel string

const (
	LevelNational   DrilldownLevel = "national"
	LevelRegion     DrilldownLevel = "region"
	LevelUniversity DrilldownLevel = "university"
	LevelMember     DrilldownLevel = "member"
)

// LevelForDepth maps a navigation stack length onto the active level.
// 0→national, 1→region, 2→university, 3+→member.
func LevelForDepth(depth int) DrilldownLevel {
	switch {
	case depth <= 0:
		return LevelNational
	case depth == 1:
		return LevelRegion
	case depth == 2:
		return LevelUniversity
	default:
		return LevelMember
	}
}

// Depth returns the stack length that produces this level.
func (l DrilldownLevel) Depth() int {
	switch l {
	case LevelRegion:
		return 1
	case LevelUniversity:
		return 2
	case LevelMember:
		return 3
	default:
		return 0
	}
}

// NavigationEntry is one breadcrumb in the drill-down stack.
type NavigationEntry struct {
	Level DrilldownLevel `json:"level"`
	ID    int64          `json:"id"`
	Name  string         `json:"name"`
}

// EngagementRow is one aggregate row at any drill-down level. Which id
// fields are populated depends on the level: national rows carry region
// ids, region rows carry university ids, university rows carry small-group
// ids, and member rows carry member ids.
type EngagementRow struct {
	RegionID     *int64 `db:"region_id" json:"regionId,omitempty"`
	UniversityID *int64 `db:"university_id" json:"universityId,omitempty"`
	SmallGroupID *int64 `db:"small_group_id" json:"smallGroupId,omitempty"`
	MemberID     *int64 `db:"member_id" json:"memberId,omitempty"`
	Name         string `db:"name" json:"name"`

	TotalMembers    int     `db:"total_members" json:"totalMembers"`
	PresentCount    int     `db:"present_count" json:"presentCount"`
	AbsentCount     int     `db:"absent_count" json:"absentCount"`
	ExcusedCount    int     `db:"excused_count" json:"excusedCount"`
	AttendanceRate  float64 `db:"attendance_rate" json:"attendanceRate"`
	PreviousRate    float64 `db:"previous_rate" json:"previousRate"`
	EventCount      int     `db:"event_count" json:"eventCount"`
	Capacity        int     `db:"capacity" json:"capacity"`
	AttendanceCount int     `db:"attendance_count" json:"attendanceCount"`
}

// KeyMetrics summarises a level dataset for the executive-summary block.
type KeyMetrics struct {
	TotalMembers      int     `json:"totalMembers"`
	TotalEvents       int     `json:"totalEvents"`
	AverageAttendance float64 `json:"averageAttendance"`
	PreviousAverage   float64 `json:"previousAverage"`
}

// EngagementDataset couples a level's rows with its key metrics.
type EngagementDataset struct {
	Level      DrilldownLevel  `json:"level"`
	Rows       []EngagementRow `json:"rows"`
	KeyMetrics KeyMetrics      `json:"keyMetrics"`
}

// EngagementFilter scopes an engagement query to one parent entity plus
// the active event/date filters.
type EngagementFilter struct {
	RegionID     int64
	UniversityID int64
	SmallGroupID int64
	EventID      int64
	EventType    *EventType
	DateFrom     *time.Time
	DateTo       *time.Time
}

// MemberStatistics carries per-member aggregate attendance stats.
type MemberStatistics struct {
	MemberID       int64      `db:"member_id" json:"member_id"`
	FirstName      string     `db:"firstname" json:"firstname"`
	SecondName     string     `db:"secondname" json:"secondname"`
	PresentCount   int        `db:"present_count" json:"presentCount"`
	AbsentCount    int        `db:"absent_count" json:"absentCount"`
	ExcusedCount   int        `db:"excused_count" json:"excusedCount"`
	TotalRecords   int        `db:"total_records" json:"totalRecords"`
	AttendanceRate float64    `db:"attendance_rate" json:"attendanceRate"`
	LastAttended   *time.Time `db:"last_attended" json:"lastAttended,omitempty"`
}

// ContributionAnalytics carries financial rollups for the reports surface.
type ContributionAnalytics struct {
	TotalRevenue       float64 `db:"total_revenue" json:"totalRevenue"`
	TotalExpenses      float64 `db:"total_expenses" json:"totalExpenses"`
	TotalContributions float64 `db:"total_contributions" json:"totalContributions"`
	ContributorCount   int     `db:"contributor_count" json:"contributorCount"`
}

// ExportDetail is one row of the detail dump included in report exports.
type ExportDetail struct {
	MemberName     string    `db:"member_name" json:"memberName"`
	GroupName      string    `db:"group_name" json:"groupName"`
	EventName      string    `db:"event_name" json:"eventName"`
	Status         string    `db:"status" json:"status"`
	RecordedAt     time.Time `db:"recorded_at" json:"recordedAt"`
	AttendanceRate float64   `db:"attendance_rate" json:"attendanceRate"`
}

// SystemMetrics represents system-level instrumentation snapshots exposed
// alongside the analytics endpoints.
type SystemMetrics struct {
	CacheHitRatio            float64   `json:"cache_hit_ratio"`
	CacheHits                uint64    `json:"cache_hits"`
	CacheMisses              uint64    `json:"cache_misses"`
	RequestsTotal            uint64    `json:"requests_total"`
	AverageRequestDurationMs float64   `json:"average_request_duration_ms"`
	DBQueryCount             uint64    `json:"db_query_count"`
	AverageDBQueryDurationMs float64   `json:"average_db_query_duration_ms"`
	Goroutines               int       `json:"goroutines"`
	GeneratedAt              time.Time `json:"generated_at"`
}
