package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/ministry-hub/attendance-api/internal/models"
)

const memberColumns = `id, firstname, secondname, email, phone, type, status, region_id, university_id, small_group_id, alumni_group_id, created_at`

// MemberRepository handles member roster queries.
type MemberRepository struct {
	db *sqlx.DB
}

// NewMemberRepository constructs the repository.
func NewMemberRepository(db *sqlx.DB) *MemberRepository {
	return &MemberRepository{db: db}
}

// List returns the roster matching the filter. Callers are expected to set
// at most one scope field (the most specific selected level).
func (r *MemberRepository) List(ctx context.Context, filter models.MemberFilter) ([]models.Member, error) {
	where := []string{"status = 'active'"}
	args := []interface{}{}
	switch {
	case filter.SmallGroupID != 0:
		where = append(where, fmt.Sprintf("small_group_id = $%d", len(args)+1))
		args = append(args, filter.SmallGroupID)
	case filter.AlumniGroupID != 0:
		where = append(where, fmt.Sprintf("alumni_group_id = $%d", len(args)+1))
		args = append(args, filter.AlumniGroupID)
	case filter.UniversityID != 0:
		where = append(where, fmt.Sprintf("university_id = $%d", len(args)+1))
		args = append(args, filter.UniversityID)
	case filter.RegionID != 0:
		where = append(where, fmt.Sprintf("region_id = $%d", len(args)+1))
		args = append(args, filter.RegionID)
	}
	if filter.Search != "" {
		where = append(where, fmt.Sprintf("(firstname ILIKE $%d OR secondname ILIKE $%d)", len(args)+1, len(args)+1))
		args = append(args, "%"+filter.Search+"%")
	}

	query := fmt.Sprintf(`SELECT %s FROM members WHERE %s ORDER BY firstname, secondname`,
		memberColumns, strings.Join(where, " AND "))
	var rows []models.Member
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	return rows, nil
}
