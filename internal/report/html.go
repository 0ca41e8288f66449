package report

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"time"

	"pmocli/pkg/contracts/domain"
)

//go:embed template.html
var reportTemplate string

var reportTmpl = template.Must(template.New("report").Parse(reportTemplate))

// FileName returns the timestamped report file name for a generation time.
func FileName(at time.Time) string {
	return fmt.Sprintf("portfolio_report_%s.html", at.Format("2006-01-02_150405"))
}

type templateData struct {
	Title       string
	GeneratedAt string
	Currency    string
	KPIs        []domain.Metric
	Unavailable []string
	ChartJSON   template.JS
}

// WriteHTML renders the report into a self-contained HTML document. Charts
// are embedded as JSON and drawn client-side by Plotly, so the file opens
// without a server.
func (g *Generator) WriteHTML(rep *domain.Report, w io.Writer) error {
	charts, err := json.Marshal(rep.Charts)
	if err != nil {
		return fmt.Errorf("marshal report charts: %w", err)
	}

	data := templateData{
		Title:       rep.Title,
		GeneratedAt: rep.GeneratedAt.Format("2006-01-02 15:04:05"),
		Currency:    rep.Currency,
		KPIs:        rep.KPIs,
		Unavailable: rep.Unavailable,
		ChartJSON:   template.JS(charts),
	}
	if err := reportTmpl.Execute(w, data); err != nil {
		return fmt.Errorf("render report template: %w", err)
	}
	return nil
}
