package domain

import "time"

// ConditionKind classifies a non-fatal data quality condition raised while
// loading or normalizing a table. Conditions degrade outputs; they never
// abort the process.
type ConditionKind string

const (
	ConditionMissingFile   ConditionKind = "missing_file"
	ConditionMissingColumn ConditionKind = "missing_column"
	ConditionParse         ConditionKind = "parse"
	ConditionDivideByZero  ConditionKind = "divide_by_zero"
)

// Condition is one recorded data quality finding.
type Condition struct {
	Kind   ConditionKind `json:"kind"`
	Table  string        `json:"table,omitempty"`
	Column string        `json:"column,omitempty"`
	Detail string        `json:"detail,omitempty"`
	Count  int           `json:"count,omitempty"`
}

// TableReport summarizes one table's load outcome.
type TableReport struct {
	Table        string `json:"table"`
	File         string `json:"file"`
	Loaded       bool   `json:"loaded"`
	Rows         int    `json:"rows"`
	Columns      int    `json:"columns"`
	ParseErrors  int    `json:"parse_errors"`
	RowAnomalies int    `json:"row_anomalies"`
}

// SnapshotReport is the full load report served by GET /api/snapshot.
type SnapshotReport struct {
	LoadedAt   time.Time     `json:"loaded_at"`
	DataDir    string        `json:"data_dir"`
	Tables     []TableReport `json:"tables"`
	Conditions []Condition   `json:"conditions,omitempty"`
}
