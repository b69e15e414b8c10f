package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/ministry-hub/attendance-api/internal/models"
)

// EventRepository handles event persistence. The enhanced list joins the
// hierarchy tables so the scope names the label builder reads come back in
// one query.
type EventRepository struct {
	db *sqlx.DB
}

// NewEventRepository constructs the repository.
func NewEventRepository(db *sqlx.DB) *EventRepository {
	return &EventRepository{db: db}
}

// List returns events matching the filter with joined hierarchy names.
func (r *EventRepository) List(ctx context.Context, filter models.EventFilter) ([]models.Event, error) {
	where := []string{"1=1"}
	args := []interface{}{}
	if filter.ActiveOnly {
		where = append(where, "e.is_active = TRUE")
	}
	if filter.RegionID != 0 {
		where = append(where, fmt.Sprintf("e.region_id = $%d", len(args)+1))
		args = append(args, filter.RegionID)
	}
	if filter.UniversityID != 0 {
		where = append(where, fmt.Sprintf("e.university_id = $%d", len(args)+1))
		args = append(args, filter.UniversityID)
	}
	if filter.SmallGroupID != 0 {
		where = append(where, fmt.Sprintf("e.small_group_id = $%d", len(args)+1))
		args = append(args, filter.SmallGroupID)
	}
	if filter.AlumniGroupID != 0 {
		where = append(where, fmt.Sprintf("e.alumni_group_id = $%d", len(args)+1))
		args = append(args, filter.AlumniGroupID)
	}
	if filter.Type != nil {
		where = append(where, fmt.Sprintf("e.type = $%d", len(args)+1))
		args = append(args, *filter.Type)
	}

	query := fmt.Sprintf(`SELECT e.id, e.name, e.type, e.is_active,
        e.region_id, e.university_id, e.small_group_id, e.alumni_group_id,
        r.name AS region_name, u.name AS university_name,
        sg.name AS small_group_name, ag.name AS alumni_group_name,
        e.created_at
FROM events e
LEFT JOIN regions r ON r.id = e.region_id
LEFT JOIN universities u ON u.id = e.university_id
LEFT JOIN small_groups sg ON sg.id = e.small_group_id
LEFT JOIN alumni_small_groups ag ON ag.id = e.alumni_group_id
WHERE %s
ORDER BY e.name`, strings.Join(where, " AND "))

	var rows []models.Event
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return rows, nil
}

// FindByID returns one event with joined hierarchy names.
func (r *EventRepository) FindByID(ctx context.Context, id int64) (*models.Event, error) {
	const query = `SELECT e.id, e.name, e.type, e.is_active,
        e.region_id, e.university_id, e.small_group_id, e.alumni_group_id,
        r.name AS region_name, u.name AS university_name,
        sg.name AS small_group_name, ag.name AS alumni_group_name,
        e.created_at
FROM events e
LEFT JOIN regions r ON r.id = e.region_id
LEFT JOIN universities u ON u.id = e.university_id
LEFT JOIN small_groups sg ON sg.id = e.small_group_id
LEFT JOIN alumni_small_groups ag ON ag.id = e.alumni_group_id
WHERE e.id = $1 LIMIT 1`
	var event models.Event
	if err := r.db.GetContext(ctx, &event, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find event: %w", err)
	}
	return &event, nil
}
