package models

import "time"

// AttendanceStatus represents the status for attendance records.
type AttendanceStatus string

const (
	AttendanceStatusPresent AttendanceStatus = "present"
	AttendanceStatusAbsent  AttendanceStatus = "absent"
	AttendanceStatusExcused AttendanceStatus = "excused"
)

// Valid returns true when the status is a supported value.
func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendanceStatusPresent, AttendanceStatusAbsent, AttendanceStatusExcused:
		return true
	default:
		return false
	}
}

// AttendanceRecord is a single member's attendance at an event occurrence.
type AttendanceRecord struct {
	ID         string           `db:"id" json:"id"`
	MemberID   int64            `db:"member_id" json:"member_id"`
	EventType  EventType        `db:"event_type" json:"event_type"`
	EventID    int64            `db:"event_id" json:"event_id"`
	Status     AttendanceStatus `db:"status" json:"status"`
	RecordedAt time.Time        `db:"recorded_at" json:"recordedAt"`
	Notes      *string          `db:"notes" json:"notes,omitempty"`
	CreatedAt  time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time        `db:"updated_at" json:"updated_at"`
}

// AttendanceDetail extends the record with member and event metadata for
// the browsing surface.
type AttendanceDetail struct {
	AttendanceRecord
	FirstName  string `db:"firstname" json:"firstname"`
	SecondName string `db:"secondname" json:"secondname"`
	EventName  string `db:"event_name" json:"event_name"`
}

// AttendanceFilter defines query filters for record browsing. Search
// matches member and event names inside the query, so pagination counts
// the matched set.
type AttendanceFilter struct {
	EventID   int64
	EventType *EventType
	Status    *AttendanceStatus
	DateFrom  *time.Time
	DateTo    *time.Time
	Scope     ScopeSelection
	Search    string
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}

// AttendanceBatchItem is one member's entry in a batch submission.
type AttendanceBatchItem struct {
	MemberID int64            `json:"member_id"`
	Status   AttendanceStatus `json:"status"`
	Notes    *string          `json:"notes,omitempty"`
}

// AttendanceBatchResult reports the outcome for one submitted record.
type AttendanceBatchResult struct {
	MemberID int64  `json:"member_id"`
	Success  bool   `json:"success"`
	Error    string `json:"error,omitempty"`
}
