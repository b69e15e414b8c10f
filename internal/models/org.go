package models

// ScopeLevel identifies a tier of the organizational hierarchy.
type ScopeLevel string

const (
	ScopeSuperAdmin       ScopeLevel = "superadmin"
	ScopeNational         ScopeLevel = "national"
	ScopeRegion           ScopeLevel = "region"
	ScopeUniversity       ScopeLevel = "university"
	ScopeSmallGroup       ScopeLevel = "smallgroup"
	ScopeAlumniSmallGroup ScopeLevel = "alumnismallgroup"
)

// Region is the top tier of the hierarchy.
type Region struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

// University belongs to a region.
type University struct {
	ID       int64  `db:"id" json:"id"`
	Name     string `db:"name" json:"name"`
	RegionID int64  `db:"region_id" json:"regionId"`
}

// SmallGroup belongs to a university.
type SmallGroup struct {
	ID           int64  `db:"id" json:"id"`
	Name         string `db:"name" json:"name"`
	UniversityID int64  `db:"university_id" json:"universityId"`
	RegionID     int64  `db:"region_id" json:"regionId"`
}

// AlumniSmallGroup belongs directly to a region, a sibling of universities.
type AlumniSmallGroup struct {
	ID       int64  `db:"id" json:"id"`
	Name     string `db:"name" json:"name"`
	RegionID int64  `db:"region_id" json:"regionId"`
}

// ScopeSelection is a dependent-selection chain over the hierarchy.
// A zero id means "all"/unset. Invariants: UniversityID set ⇒ RegionID set,
// SmallGroupID set ⇒ UniversityID set, AlumniGroupID set ⇒ RegionID set.
type ScopeSelection struct {
	RegionID      int64 `json:"regionId,omitempty"`
	UniversityID  int64 `json:"universityId,omitempty"`
	SmallGroupID  int64 `json:"smallGroupId,omitempty"`
	AlumniGroupID int64 `json:"alumniGroupId,omitempty"`
}

// IsZero reports whether nothing is selected.
func (s ScopeSelection) IsZero() bool {
	return s.RegionID == 0 && s.UniversityID == 0 && s.SmallGroupID == 0 && s.AlumniGroupID == 0
}

// MostSpecific returns the finest selected level and its id, preferring
// small group over alumni group over university over region.
func (s ScopeSelection) MostSpecific() (ScopeLevel, int64) {
	switch {
	case s.SmallGroupID != 0:
		return ScopeSmallGroup, s.SmallGroupID
	case s.AlumniGroupID != 0:
		return ScopeAlumniSmallGroup, s.AlumniGroupID
	case s.UniversityID != 0:
		return ScopeUniversity, s.UniversityID
	case s.RegionID != 0:
		return ScopeRegion, s.RegionID
	default:
		return ScopeNational, 0
	}
}
