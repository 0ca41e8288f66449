package domain

import "time"

// Report is the static portfolio report document model. It is computed once
// from the snapshot (unfiltered, whole-portfolio scope) and rendered into a
// self-contained HTML file, optionally also to PDF and XLSX.
type Report struct {
	ID          string      `json:"id" validate:"required,uuid"`
	Title       string      `json:"title" validate:"required,min=3,max=200"`
	GeneratedAt time.Time   `json:"generated_at"`
	Currency    string      `json:"currency"`
	KPIs        []Metric    `json:"kpis"`
	Charts      []ChartSpec `json:"charts"`
	Unavailable []string    `json:"unavailable,omitempty"`
}

// ReportFormat defines the renditions a report run can produce.
type ReportFormat string

const (
	ReportFormatHTML  ReportFormat = "html"
	ReportFormatPDF   ReportFormat = "pdf"
	ReportFormatExcel ReportFormat = "xlsx"
)

// ReportArtifact records one file written by a report run.
type ReportArtifact struct {
	Format ReportFormat `json:"format"`
	Path   string       `json:"path"`
	Size   int64        `json:"size"`
}

// ReportRunResult is returned by the report service after a generation run.
type ReportRunResult struct {
	ReportID    string           `json:"report_id"`
	GeneratedAt time.Time        `json:"generated_at"`
	Artifacts   []ReportArtifact `json:"artifacts"`
	Warnings    []string         `json:"warnings,omitempty"`
}
