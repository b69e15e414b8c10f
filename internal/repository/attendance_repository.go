package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ministry-hub/attendance-api/internal/models"
)

// AttendanceRepository handles persistence for attendance records.
type AttendanceRepository struct {
	db *sqlx.DB
}

// NewAttendanceRepository constructs the repository.
func NewAttendanceRepository(db *sqlx.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

func attendanceWhere(filter models.AttendanceFilter) ([]string, []interface{}) {
	where := []string{"1=1"}
	args := []interface{}{}
	if filter.EventID != 0 {
		where = append(where, fmt.Sprintf("a.event_id = $%d", len(args)+1))
		args = append(args, filter.EventID)
	}
	if filter.EventType != nil {
		where = append(where, fmt.Sprintf("a.event_type = $%d", len(args)+1))
		args = append(args, *filter.EventType)
	}
	if filter.Status != nil && filter.Status.Valid() {
		where = append(where, fmt.Sprintf("a.status = $%d", len(args)+1))
		args = append(args, *filter.Status)
	}
	if filter.DateFrom != nil {
		where = append(where, fmt.Sprintf("a.recorded_at >= $%d", len(args)+1))
		args = append(args, *filter.DateFrom)
	}
	if filter.DateTo != nil {
		where = append(where, fmt.Sprintf("a.recorded_at < $%d", len(args)+1))
		args = append(args, filter.DateTo.AddDate(0, 0, 1))
	}
	if filter.Scope.RegionID != 0 {
		where = append(where, fmt.Sprintf("m.region_id = $%d", len(args)+1))
		args = append(args, filter.Scope.RegionID)
	}
	if filter.Scope.UniversityID != 0 {
		where = append(where, fmt.Sprintf("m.university_id = $%d", len(args)+1))
		args = append(args, filter.Scope.UniversityID)
	}
	if filter.Scope.SmallGroupID != 0 {
		where = append(where, fmt.Sprintf("m.small_group_id = $%d", len(args)+1))
		args = append(args, filter.Scope.SmallGroupID)
	}
	if filter.Scope.AlumniGroupID != 0 {
		where = append(where, fmt.Sprintf("m.alumni_group_id = $%d", len(args)+1))
		args = append(args, filter.Scope.AlumniGroupID)
	}
	if filter.Search != "" {
		n := len(args) + 1
		where = append(where, fmt.Sprintf("(m.firstname ILIKE $%d OR m.secondname ILIKE $%d OR e.name ILIKE $%d)", n, n, n))
		args = append(args, "%"+filter.Search+"%")
	}
	return where, args
}

// List returns attendance detail rows matching the provided filter.
func (r *AttendanceRepository) List(ctx context.Context, filter models.AttendanceFilter) ([]models.AttendanceDetail, int, error) {
	base := `FROM attendance a
JOIN members m ON m.id = a.member_id
JOIN events e ON e.id = a.event_id`
	where, args := attendanceWhere(filter)
	whereClause := strings.Join(where, " AND ")

	allowedSort := map[string]string{
		"recorded_at": "a.recorded_at",
		"status":      "a.status",
		"member":      "m.firstname",
	}
	sortColumn, ok := allowedSort[filter.SortBy]
	if !ok {
		sortColumn = "a.recorded_at"
	}
	order := strings.ToUpper(filter.SortOrder)
	if order != "ASC" && order != "DESC" {
		order = "DESC"
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 200 {
		size = 50
	}
	offset := (page - 1) * size

	query := fmt.Sprintf(`SELECT a.id, a.member_id, a.event_type, a.event_id, a.status, a.recorded_at, a.notes, a.created_at, a.updated_at,
        m.firstname, m.secondname, e.name AS event_name
        %s WHERE %s
        ORDER BY %s %s
        LIMIT %d OFFSET %d`, base, whereClause, sortColumn, order, size, offset)

	var rows []models.AttendanceDetail
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list attendance: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s WHERE %s", base, whereClause)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count attendance: %w", err)
	}
	return rows, total, nil
}

// BatchInsert writes one record per roster member and reports a per-record
// result. Duplicates (same member, event and day) are reported as failed
// entries without aborting the rest of the batch.
func (r *AttendanceRepository) BatchInsert(ctx context.Context, records []models.AttendanceRecord) ([]models.AttendanceBatchResult, error) {
	if len(records) == 0 {
		return nil, nil
	}
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin attendance batch: %w", err)
	}
	commit := false
	defer func() {
		if !commit {
			tx.Rollback()
		}
	}()

	const query = `INSERT INTO attendance (id, member_id, event_type, event_id, status, recorded_at, notes, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
ON CONFLICT (member_id, event_id, event_type, (recorded_at::date)) DO NOTHING
RETURNING id`
	now := time.Now().UTC()
	results := make([]models.AttendanceBatchResult, 0, len(records))
	for i := range records {
		rec := &records[i]
		if rec.ID == "" {
			rec.ID = uuid.NewString()
		}
		if rec.RecordedAt.IsZero() {
			rec.RecordedAt = now
		}
		rec.CreatedAt = now
		rec.UpdatedAt = now

		var insertedID string
		err := tx.QueryRowxContext(ctx, query, rec.ID, rec.MemberID, rec.EventType, rec.EventID, rec.Status, rec.RecordedAt, rec.Notes, rec.CreatedAt, rec.UpdatedAt).Scan(&insertedID)
		switch {
		case err == sql.ErrNoRows:
			results = append(results, models.AttendanceBatchResult{MemberID: rec.MemberID, Success: false, Error: "attendance already recorded for this member"})
		case err != nil:
			results = append(results, models.AttendanceBatchResult{MemberID: rec.MemberID, Success: false, Error: err.Error()})
		default:
			results = append(results, models.AttendanceBatchResult{MemberID: rec.MemberID, Success: true})
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit attendance batch: %w", err)
	}
	commit = true
	return results, nil
}

// UpdateStatus changes one record's status in place and returns the stored row.
func (r *AttendanceRepository) UpdateStatus(ctx context.Context, id string, status models.AttendanceStatus, notes *string) (*models.AttendanceRecord, error) {
	const query = `UPDATE attendance
SET status = $2, notes = COALESCE($3, notes), updated_at = $4
WHERE id = $1
RETURNING id, member_id, event_type, event_id, status, recorded_at, notes, created_at, updated_at`
	var stored models.AttendanceRecord
	if err := r.db.GetContext(ctx, &stored, query, id, status, notes, time.Now().UTC()); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("update attendance status: %w", err)
	}
	return &stored, nil
}

// DistinctDates returns the distinct days with attendance under the filter,
// newest first, plus per-status counts for the stats block.
func (r *AttendanceRepository) DistinctDates(ctx context.Context, filter models.AttendanceFilter) ([]string, map[string]int, error) {
	base := `FROM attendance a
JOIN members m ON m.id = a.member_id
JOIN events e ON e.id = a.event_id`
	where, args := attendanceWhere(filter)
	whereClause := strings.Join(where, " AND ")

	dateQuery := fmt.Sprintf(`SELECT DISTINCT to_char(a.recorded_at, 'YYYY-MM-DD') AS day %s WHERE %s ORDER BY day DESC`, base, whereClause)
	var dates []string
	if err := r.db.SelectContext(ctx, &dates, dateQuery, args...); err != nil {
		return nil, nil, fmt.Errorf("distinct attendance dates: %w", err)
	}

	statQuery := fmt.Sprintf(`SELECT a.status, COUNT(*) AS cnt %s WHERE %s GROUP BY a.status`, base, whereClause)
	statRows := []struct {
		Status string `db:"status"`
		Count  int    `db:"cnt"`
	}{}
	if err := r.db.SelectContext(ctx, &statRows, statQuery, args...); err != nil {
		return nil, nil, fmt.Errorf("attendance date stats: %w", err)
	}
	stats := make(map[string]int, len(statRows)+1)
	total := 0
	for _, row := range statRows {
		stats[row.Status] = row.Count
		total += row.Count
	}
	stats["total"] = total
	return dates, stats, nil
}
