package models

import (
	"strings"
	"time"
)

// EventType distinguishes permanent ministry events from trainings.
type EventType string

const (
	EventTypePermanent EventType = "permanent"
	EventTypeTraining  EventType = "training"
)

// Valid reports whether the event type is supported.
func (t EventType) Valid() bool {
	return t == EventTypePermanent || t == EventTypeTraining
}

// Event is an attendance-bearing event attached to a point in the hierarchy.
// Scope ids are nullable: an event with no ids at all is a super-admin
// (national) event. Joined names are populated by the enhanced list query.
type Event struct {
	ID            int64     `db:"id" json:"id"`
	Name          string    `db:"name" json:"name"`
	Type          EventType `db:"type" json:"type"`
	IsActive      bool      `db:"is_active" json:"isActive"`
	RegionID      *int64    `db:"region_id" json:"regionId,omitempty"`
	UniversityID  *int64    `db:"university_id" json:"universityId,omitempty"`
	SmallGroupID  *int64    `db:"small_group_id" json:"smallGroupId,omitempty"`
	AlumniGroupID *int64    `db:"alumni_group_id" json:"alumniGroupId,omitempty"`

	RegionName     *string `db:"region_name" json:"region,omitempty"`
	UniversityName *string `db:"university_name" json:"university,omitempty"`
	SmallGroupName *string `db:"small_group_name" json:"smallGroup,omitempty"`
	AlumniName     *string `db:"alumni_group_name" json:"alumniGroup,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// HierarchicalScope derives the display label for the event's attachment
// point: the joined names of its non-null hierarchy levels, or a level
// label when no names are populated.
func (e Event) HierarchicalScope() string {
	parts := make([]string, 0, 3)
	if e.RegionName != nil && *e.RegionName != "" {
		parts = append(parts, *e.RegionName)
	}
	if e.UniversityName != nil && *e.UniversityName != "" {
		parts = append(parts, *e.UniversityName)
	}
	if e.SmallGroupName != nil && *e.SmallGroupName != "" {
		parts = append(parts, *e.SmallGroupName)
	}
	if e.AlumniName != nil && *e.AlumniName != "" {
		parts = append(parts, *e.AlumniName)
	}
	if len(parts) > 0 {
		return strings.Join(parts, " > ")
	}
	switch {
	case e.AlumniGroupID != nil:
		return "Alumni Small Group"
	case e.SmallGroupID != nil:
		return "Small Group"
	case e.UniversityID != nil:
		return "University"
	case e.RegionID != nil:
		return "Region"
	default:
		return "Super Admin"
	}
}

// MatchesScope reports whether the event's own attachment ids exactly equal
// the selected scope ids for every level the selection sets.
func (e Event) MatchesScope(sel ScopeSelection) bool {
	if sel.RegionID != 0 && (e.RegionID == nil || *e.RegionID != sel.RegionID) {
		return false
	}
	if sel.UniversityID != 0 && (e.UniversityID == nil || *e.UniversityID != sel.UniversityID) {
		return false
	}
	if sel.SmallGroupID != 0 && (e.SmallGroupID == nil || *e.SmallGroupID != sel.SmallGroupID) {
		return false
	}
	if sel.AlumniGroupID != 0 && (e.AlumniGroupID == nil || *e.AlumniGroupID != sel.AlumniGroupID) {
		return false
	}
	return true
}

// EventFilter defines query filters for event listing.
type EventFilter struct {
	RegionID      int64
	UniversityID  int64
	SmallGroupID  int64
	AlumniGroupID int64
	Type          *EventType
	ActiveOnly    bool
}
