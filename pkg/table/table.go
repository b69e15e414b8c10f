// Package table implements a generic client-style table engine over
// already-fetched rows: free-text search, per-column filters, tri-state
// single-key sorting, pagination and column visibility.
package table

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ColumnType tags a column with its rendering and comparison semantics.
type ColumnType string

const (
	ColumnText       ColumnType = "text"
	ColumnNumber     ColumnType = "number"
	ColumnPercentage ColumnType = "percentage"
	ColumnComparison ColumnType = "comparison"
	ColumnIndicator  ColumnType = "indicator"
	ColumnStatus     ColumnType = "status"
	ColumnDate       ColumnType = "date"
	ColumnProgress   ColumnType = "progress"
)

// Column describes one column of the table specification.
type Column struct {
	Key   string     `json:"key"`
	Label string     `json:"label"`
	Type  ColumnType `json:"type"`
}

// Row is a single data row keyed by column key.
type Row map[string]interface{}

// SortDirection is the tri-state sort setting for a column.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
	SortNone SortDirection = ""
)

// SortConfig names the active sort key and direction.
type SortConfig struct {
	Key       string        `json:"key"`
	Direction SortDirection `json:"direction"`
}

// DefaultPageSize is used when the engine is built with a non-positive size.
const DefaultPageSize = 10

// Engine holds the interactive state of one table instance.
type Engine struct {
	columns  []Column
	pageSize int

	sortConfig *SortConfig
	filters    map[string]string
	searchTerm string
	page       int
	hidden     map[string]bool
}

// New constructs an engine for the given column specification.
func New(columns []Column, pageSize int) *Engine {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Engine{
		columns:  columns,
		pageSize: pageSize,
		filters:  map[string]string{},
		hidden:   map[string]bool{},
		page:     1,
	}
}

// Columns returns the full column specification.
func (e *Engine) Columns() []Column {
	return e.columns
}

// VisibleColumns returns the columns currently toggled on.
func (e *Engine) VisibleColumns() []Column {
	visible := make([]Column, 0, len(e.columns))
	for _, col := range e.columns {
		if !e.hidden[col.Key] {
			visible = append(visible, col)
		}
	}
	return visible
}

// ToggleColumn flips one column's visibility.
func (e *Engine) ToggleColumn(key string) {
	e.hidden[key] = !e.hidden[key]
}

// ToggleSort cycles the sort state for a key: none → asc → desc → none.
// Sorting by a different key restarts at ascending.
func (e *Engine) ToggleSort(key string) {
	if e.sortConfig == nil || e.sortConfig.Key != key {
		e.sortConfig = &SortConfig{Key: key, Direction: SortAsc}
		return
	}
	switch e.sortConfig.Direction {
	case SortAsc:
		e.sortConfig.Direction = SortDesc
	default:
		e.sortConfig = nil
	}
}

// Sort returns the active sort configuration, nil when unsorted.
func (e *Engine) Sort() *SortConfig {
	return e.sortConfig
}

// SetFilter sets a per-column substring filter and resets to page one.
// An empty value removes the filter.
func (e *Engine) SetFilter(key, value string) {
	if value == "" {
		delete(e.filters, key)
	} else {
		e.filters[key] = value
	}
	e.page = 1
}

// SetSearch sets the free-text search term and resets to page one.
func (e *Engine) SetSearch(term string) {
	e.searchTerm = term
	e.page = 1
}

// ClearFilters resets search, filters, sorting and pagination. Clearing an
// already-clear engine is a no-op.
func (e *Engine) ClearFilters() {
	e.searchTerm = ""
	e.filters = map[string]string{}
	e.sortConfig = nil
	e.page = 1
}

// SetPage requests a page; the value is clamped during Apply.
func (e *Engine) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	e.page = page
}

// Page returns the requested page number.
func (e *Engine) Page() int {
	return e.page
}

// Result is the materialised view of one Apply call.
type Result struct {
	Rows       []Row `json:"rows"`
	TotalRows  int   `json:"total_rows"`
	Page       int   `json:"page"`
	TotalPages int   `json:"total_pages"`
}

// Apply runs search, filters, sort and pagination over the rows and
// returns the visible page. The current page is clamped into the valid
// range for the filtered row count.
func (e *Engine) Apply(rows []Row) Result {
	filtered := e.filter(rows)
	e.sortRows(filtered)

	total := len(filtered)
	totalPages := (total + e.pageSize - 1) / e.pageSize
	if totalPages < 1 {
		totalPages = 1
	}
	page := e.page
	if page > totalPages {
		page = totalPages
	}
	if page < 1 {
		page = 1
	}
	e.page = page

	start := (page - 1) * e.pageSize
	end := start + e.pageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}
	return Result{Rows: filtered[start:end], TotalRows: total, Page: page, TotalPages: totalPages}
}

func (e *Engine) filter(rows []Row) []Row {
	out := make([]Row, 0, len(rows))
	search := strings.ToLower(strings.TrimSpace(e.searchTerm))
	for _, row := range rows {
		if search != "" && !e.matchesSearch(row, search) {
			continue
		}
		if !e.matchesFilters(row) {
			continue
		}
		out = append(out, row)
	}
	return out
}

func (e *Engine) matchesSearch(row Row, search string) bool {
	for _, col := range e.VisibleColumns() {
		if strings.Contains(strings.ToLower(CellString(row[col.Key])), search) {
			return true
		}
	}
	return false
}

func (e *Engine) matchesFilters(row Row) bool {
	for key, want := range e.filters {
		got := strings.ToLower(CellString(row[key]))
		if !strings.Contains(got, strings.ToLower(want)) {
			return false
		}
	}
	return true
}

func (e *Engine) sortRows(rows []Row) {
	cfg := e.sortConfig
	if cfg == nil || cfg.Direction == SortNone {
		return
	}
	sort.SliceStable(rows, func(i, j int) bool {
		less := lessCell(rows[i][cfg.Key], rows[j][cfg.Key])
		if cfg.Direction == SortDesc {
			return lessCell(rows[j][cfg.Key], rows[i][cfg.Key])
		}
		return less
	})
}

func lessCell(a, b interface{}) bool {
	an, aok := cellNumber(a)
	bn, bok := cellNumber(b)
	if aok && bok {
		return an < bn
	}
	return strings.ToLower(CellString(a)) < strings.ToLower(CellString(b))
}

func cellNumber(v interface{}) (float64, bool) {
	switch t := v.(type) {
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case ComparisonCell:
		return t.Current, true
	case ProgressCell:
		return t.Percentage, true
	case string:
		if n, err := strconv.ParseFloat(t, 64); err == nil {
			return n, true
		}
	}
	return 0, false
}

// CellString renders any cell value for search and filter matching.
func CellString(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case ComparisonCell:
		return fmt.Sprintf("%g (%+g)", t.Current, t.Change)
	case ProgressCell:
		return fmt.Sprintf("%d/%d (%.0f%%)", t.Attendance, t.Capacity, t.Percentage)
	default:
		return fmt.Sprint(t)
	}
}
