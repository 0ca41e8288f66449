package domain

// ChartKind enumerates the chart families the presenter can emit.
type ChartKind string

const (
	ChartPie       ChartKind = "pie"
	ChartBar       ChartKind = "bar"
	ChartHBar      ChartKind = "hbar"
	ChartHistogram ChartKind = "histogram"
	ChartScatter   ChartKind = "scatter"
	ChartLine      ChartKind = "line"
	ChartTreemap   ChartKind = "treemap"
)

// Metric is a single KPI card.
type Metric struct {
	Label string  `json:"label"`
	Value string  `json:"value"`
	Raw   float64 `json:"raw"`
	Hint  string  `json:"hint,omitempty"`
}

// Point is one scatter sample.
type Point struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Label string  `json:"label,omitempty"`
}

// Series is a named sequence for grouped bar and line charts.
type Series struct {
	Name   string    `json:"name"`
	Labels []string  `json:"labels,omitempty"`
	Values []float64 `json:"values"`
}

// ChartSpec is a renderer-agnostic chart description. The dashboard page and
// the static report both translate specs into Plotly traces client-side; the
// Go side never renders pixels.
//
// Which fields are populated depends on Kind: pie/bar/hbar/treemap use
// Labels+Values, histogram uses Values (raw samples) plus Bins, scatter uses
// Points, line and grouped bars use Series. Colors, when set, runs parallel
// to Labels and pins slice colors.
type ChartSpec struct {
	ID        string    `json:"id"`
	Kind      ChartKind `json:"kind"`
	Title     string    `json:"title"`
	Labels    []string  `json:"labels,omitempty"`
	Values    []float64 `json:"values,omitempty"`
	Series    []Series  `json:"series,omitempty"`
	Points    []Point   `json:"points,omitempty"`
	Hole      float64   `json:"hole,omitempty"`
	Bins      int       `json:"bins,omitempty"`
	Colors    []string  `json:"colors,omitempty"`
	XTitle    string    `json:"x_title,omitempty"`
	YTitle    string    `json:"y_title,omitempty"`
	Truncated bool      `json:"truncated,omitempty"`
	Note      string    `json:"note,omitempty"`
}

// ColumnType drives client-side cell formatting.
type ColumnType string

const (
	ColumnText    ColumnType = "text"
	ColumnMoney   ColumnType = "money"
	ColumnPercent ColumnType = "percent"
	ColumnNumber  ColumnType = "number"
)

// Column describes one column of a presenter table.
type Column struct {
	Key   string     `json:"key"`
	Label string     `json:"label"`
	Type  ColumnType `json:"type"`
}

// TableSpec is a presenter table: typed columns plus row maps keyed by
// column key.
type TableSpec struct {
	ID      string                   `json:"id"`
	Title   string                   `json:"title"`
	Columns []Column                 `json:"columns"`
	Rows    []map[string]interface{} `json:"rows"`
}

// View is the complete computed payload for one dashboard view.
type View struct {
	Slug        string      `json:"slug"`
	Name        string      `json:"name"`
	Metrics     []Metric    `json:"metrics"`
	Charts      []ChartSpec `json:"charts"`
	Tables      []TableSpec `json:"tables,omitempty"`
	Unavailable []string    `json:"unavailable,omitempty"`
}

// ViewSummary is the registry listing entry used for navigation.
type ViewSummary struct {
	Slug          string   `json:"slug"`
	Name          string   `json:"name"`
	Description   string   `json:"description,omitempty"`
	Available     bool     `json:"available"`
	MissingTables []string `json:"missing_tables,omitempty"`
}
