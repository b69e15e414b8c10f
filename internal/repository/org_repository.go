package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/ministry-hub/attendance-api/internal/models"
)

// OrgRepository serves lookups over the organizational hierarchy tables.
type OrgRepository struct {
	db *sqlx.DB
}

// NewOrgRepository constructs the repository.
func NewOrgRepository(db *sqlx.DB) *OrgRepository {
	return &OrgRepository{db: db}
}

// Regions returns all regions ordered by name.
func (r *OrgRepository) Regions(ctx context.Context) ([]models.Region, error) {
	const query = `SELECT id, name FROM regions ORDER BY name`
	var rows []models.Region
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list regions: %w", err)
	}
	return rows, nil
}

// Universities returns the universities of one region.
func (r *OrgRepository) Universities(ctx context.Context, regionID int64) ([]models.University, error) {
	const query = `SELECT id, name, region_id FROM universities WHERE region_id = $1 ORDER BY name`
	var rows []models.University
	if err := r.db.SelectContext(ctx, &rows, query, regionID); err != nil {
		return nil, fmt.Errorf("list universities: %w", err)
	}
	return rows, nil
}

// SmallGroups returns the small groups of one university.
func (r *OrgRepository) SmallGroups(ctx context.Context, universityID int64) ([]models.SmallGroup, error) {
	const query = `SELECT sg.id, sg.name, sg.university_id, u.region_id
FROM small_groups sg
JOIN universities u ON u.id = sg.university_id
WHERE sg.university_id = $1
ORDER BY sg.name`
	var rows []models.SmallGroup
	if err := r.db.SelectContext(ctx, &rows, query, universityID); err != nil {
		return nil, fmt.Errorf("list small groups: %w", err)
	}
	return rows, nil
}

// AlumniSmallGroups returns the alumni groups of one region. Alumni groups
// hang off regions directly, siblings of universities.
func (r *OrgRepository) AlumniSmallGroups(ctx context.Context, regionID int64) ([]models.AlumniSmallGroup, error) {
	const query = `SELECT id, name, region_id FROM alumni_small_groups WHERE region_id = $1 ORDER BY name`
	var rows []models.AlumniSmallGroup
	if err := r.db.SelectContext(ctx, &rows, query, regionID); err != nil {
		return nil, fmt.Errorf("list alumni small groups: %w", err)
	}
	return rows, nil
}
