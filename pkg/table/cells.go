package table

// Trend classifies the direction of a comparison for display coloring.
type Trend string

const (
	TrendUp   Trend = "up"
	TrendDown Trend = "down"
	TrendFlat Trend = "flat"
)

// ComparisonCell renders a current-versus-previous value pair. Change is
// always Current - Previous.
type ComparisonCell struct {
	Current  float64 `json:"current"`
	Previous float64 `json:"previous"`
	Change   float64 `json:"change"`
}

// NewComparison builds a comparison cell with the change derived.
func NewComparison(current, previous float64) ComparisonCell {
	return ComparisonCell{Current: current, Previous: previous, Change: current - previous}
}

// ChangePercent returns the delta as a percentage of the previous value,
// or 0 when the previous value is zero.
func (c ComparisonCell) ChangePercent() float64 {
	if c.Previous == 0 {
		return 0
	}
	return c.Change / c.Previous * 100
}

// Trend reports the direction of the change.
func (c ComparisonCell) Trend() Trend {
	switch {
	case c.Change > 0:
		return TrendUp
	case c.Change < 0:
		return TrendDown
	default:
		return TrendFlat
	}
}

// ProgressBand groups a progress percentage for threshold coloring.
type ProgressBand string

const (
	ProgressHigh   ProgressBand = "high"
	ProgressMedium ProgressBand = "medium"
	ProgressLow    ProgressBand = "low"
)

// ProgressCell renders capacity versus attendance with a percentage bar.
type ProgressCell struct {
	Capacity   int     `json:"capacity"`
	Attendance int     `json:"attendance"`
	Percentage float64 `json:"percentage"`
}

// NewProgress builds a progress cell, deriving the percentage from the
// capacity when one is set.
func NewProgress(capacity, attendance int) ProgressCell {
	cell := ProgressCell{Capacity: capacity, Attendance: attendance}
	if capacity > 0 {
		cell.Percentage = float64(attendance) / float64(capacity) * 100
	}
	return cell
}

// Band maps the percentage onto a threshold color band.
func (p ProgressCell) Band() ProgressBand {
	switch {
	case p.Percentage >= 80:
		return ProgressHigh
	case p.Percentage >= 50:
		return ProgressMedium
	default:
		return ProgressLow
	}
}
