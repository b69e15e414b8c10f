package models

import "time"

// MemberType distinguishes current students from alumni.
type MemberType string

const (
	MemberTypeStudent MemberType = "student"
	MemberTypeAlumni  MemberType = "alumni"
)

// Member represents a ministry member attached to a point in the hierarchy.
type Member struct {
	ID            int64      `db:"id" json:"id"`
	FirstName     string     `db:"firstname" json:"firstname"`
	SecondName    string     `db:"secondname" json:"secondname"`
	Email         *string    `db:"email" json:"email,omitempty"`
	Phone         *string    `db:"phone" json:"phone,omitempty"`
	Type          MemberType `db:"type" json:"type"`
	Status        string     `db:"status" json:"status"`
	RegionID      *int64     `db:"region_id" json:"regionId,omitempty"`
	UniversityID  *int64     `db:"university_id" json:"universityId,omitempty"`
	SmallGroupID  *int64     `db:"small_group_id" json:"smallGroupId,omitempty"`
	AlumniGroupID *int64     `db:"alumni_group_id" json:"alumniGroupId,omitempty"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
}

// FullName joins first and second names for display and search.
func (m Member) FullName() string {
	if m.SecondName == "" {
		return m.FirstName
	}
	return m.FirstName + " " + m.SecondName
}

// MemberFilter selects a roster by the most specific scope level. At most
// one field is expected to be set per query.
type MemberFilter struct {
	RegionID      int64
	UniversityID  int64
	SmallGroupID  int64
	AlumniGroupID int64
	Search        string
}
