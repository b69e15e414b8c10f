package models

// PredefinedRange is a server-suggested date range tagged with whether any
// attendance exists inside it under the current filters.
type PredefinedRange struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	DateFrom  string `json:"dateFrom"`
	DateTo    string `json:"dateTo"`
	Available bool   `json:"available"`
}

// DateAvailability is the distinct-dates payload for the current filters.
type DateAvailability struct {
	Dates            []string         `json:"dates"`
	PredefinedRanges []PredefinedRange `json:"predefinedRanges"`
	Stats            map[string]int   `json:"stats"`
}

// DateSelection is the resolved output contract handed to consumers.
// A single-day selection has DateFrom == DateTo. Empty strings mean "all".
type DateSelection struct {
	DateFrom string `json:"dateFrom,omitempty"`
	DateTo   string `json:"dateTo,omitempty"`
	RangeID  string `json:"rangeId,omitempty"`
}

// IsZero reports whether no date constraint is active.
func (d DateSelection) IsZero() bool {
	return d.DateFrom == "" && d.DateTo == "" && d.RangeID == ""
}
