package models

import "time"

// UserRole represents the available roles for the RBAC system. Every role
// except SUPERADMIN is bound to one level of the organizational hierarchy.
type UserRole string

const (
	RoleSuperAdmin       UserRole = "SUPERADMIN"
	RoleNational         UserRole = "NATIONAL"
	RoleRegion           UserRole = "REGION"
	RoleUniversity       UserRole = "UNIVERSITY"
	RoleSmallGroup       UserRole = "SMALLGROUP"
	RoleAlumniSmallGroup UserRole = "ALUMNISMALLGROUP"
)

// Elevated reports whether the role may pass explicit scope parameters and
// browse across the whole hierarchy.
func (r UserRole) Elevated() bool {
	return r == RoleSuperAdmin
}

// User represents an application user stored in the users table.
type User struct {
	ID           string     `db:"id" json:"id"`
	Email        string     `db:"email" json:"email"`
	PasswordHash string     `db:"password_hash" json:"-"`
	FullName     string     `db:"full_name" json:"full_name"`
	Role         UserRole   `db:"role" json:"role"`
	Active       bool       `db:"active" json:"active"`
	RegionID     *int64     `db:"region_id" json:"regionId,omitempty"`
	UniversityID *int64     `db:"university_id" json:"universityId,omitempty"`
	GroupID      *int64     `db:"group_id" json:"groupId,omitempty"`
	LastLogin    *time.Time `db:"last_login" json:"last_login,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}
