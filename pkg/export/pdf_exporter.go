package export

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// MaxDetailRows caps the tabular dump included in report documents.
const MaxDetailRows = 50

// SummaryMetric is one entry of a report's executive-summary block.
type SummaryMetric struct {
	Label string
	Value string
}

// Report describes a full export document: header, metadata, summary
// metrics and a detail dataset.
type Report struct {
	Title          string
	ReportType     string
	Scope          string
	GeneratedAt    time.Time
	Filters        map[string]string
	NavigationPath []string
	Summary        []SummaryMetric
	Details        Dataset
}

// Filename derives the artifact name: {ReportType}_Report_{scope}_{ISODate}.pdf.
func (r Report) Filename() string {
	scope := strings.ReplaceAll(strings.TrimSpace(r.Scope), " ", "_")
	if scope == "" {
		scope = "All"
	}
	return fmt.Sprintf("%s_Report_%s_%s.pdf", r.ReportType, scope, r.GeneratedAt.Format("2006-01-02"))
}

// PDFExporter renders datasets and reports into PDF documents.
type PDFExporter struct{}

// NewPDFExporter constructs a PDF exporter.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// Render creates a PDF document with an optional title and table body.
func (e *PDFExporter) Render(data Dataset, title string) ([]byte, error) {
	if len(data.Headers) == 0 {
		return nil, fmt.Errorf("pdf requires at least one header")
	}
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 15, 10)
	pdf.AddPage()

	if title != "" {
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 10, strings.ToUpper(title), "", 1, "C", false, 0, "")
		pdf.Ln(5)
	}

	writeTable(pdf, data, len(data.Rows))

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderReport creates the full report document: title header, metadata
// (generation date, applied filters, navigation path), an executive
// summary block and the first MaxDetailRows rows of the detail dataset.
func (e *PDFExporter) RenderReport(report Report) ([]byte, error) {
	if len(report.Details.Headers) == 0 {
		return nil, fmt.Errorf("report requires at least one detail header")
	}
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 15, 10)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, strings.ToUpper(report.Title), "", 1, "C", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Arial", "", 9)
	pdf.CellFormat(0, 5, fmt.Sprintf("Generated: %s", report.GeneratedAt.Format("2006-01-02 15:04")), "", 1, "L", false, 0, "")
	if len(report.NavigationPath) > 0 {
		pdf.CellFormat(0, 5, fmt.Sprintf("Path: %s", strings.Join(report.NavigationPath, " > ")), "", 1, "L", false, 0, "")
	}
	for _, key := range sortedKeys(report.Filters) {
		pdf.CellFormat(0, 5, fmt.Sprintf("%s: %s", key, report.Filters[key]), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	if len(report.Summary) > 0 {
		pdf.SetFont("Arial", "B", 11)
		pdf.CellFormat(0, 7, "Executive Summary", "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		for _, metric := range report.Summary {
			pdf.CellFormat(70, 6, metric.Label, "1", 0, "L", false, 0, "")
			pdf.CellFormat(50, 6, metric.Value, "1", 1, "R", false, 0, "")
		}
		pdf.Ln(4)
	}

	limit := len(report.Details.Rows)
	if limit > MaxDetailRows {
		limit = MaxDetailRows
	}
	writeTable(pdf, report.Details, limit)
	if len(report.Details.Rows) > limit {
		pdf.Ln(2)
		pdf.SetFont("Arial", "I", 8)
		pdf.CellFormat(0, 5, fmt.Sprintf("Showing first %d of %d records", limit, len(report.Details.Rows)), "", 1, "L", false, 0, "")
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render report pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func writeTable(pdf *gofpdf.Fpdf, data Dataset, limit int) {
	pdf.SetFont("Arial", "B", 10)
	colWidth := 190.0 / float64(len(data.Headers))
	for _, header := range data.Headers {
		pdf.CellFormat(colWidth, 8, header, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for i, row := range data.Rows {
		if i >= limit {
			break
		}
		for _, header := range data.Headers {
			pdf.CellFormat(colWidth, 7, row[header], "1", 0, "", false, 0, "")
		}
		pdf.Ln(-1)
	}
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
