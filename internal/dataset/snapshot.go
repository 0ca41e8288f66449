package dataset

import (
	"time"

	"pmocli/pkg/contracts/domain"
)

// Snapshot is the immutable per-process dataset cache: every registered
// table's normalized frame (nil when the file was missing), plus the load
// report and the conditions raised on the way in. Snapshots are never
// mutated or invalidated; a process that wants fresh data restarts.
type Snapshot struct {
	LoadedAt time.Time
	DataDir  string

	frames     map[string]*Frame
	reports    []domain.TableReport
	conditions []domain.Condition
}

// Frame returns a table's frame and whether it loaded.
func (s *Snapshot) Frame(table string) (*Frame, bool) {
	f, ok := s.frames[table]
	if !ok || f == nil {
		return nil, false
	}
	return f, true
}

// Missing returns, out of the given tables, those that did not load.
func (s *Snapshot) Missing(tables ...string) []string {
	var missing []string
	for _, t := range tables {
		if _, ok := s.Frame(t); !ok {
			missing = append(missing, t)
		}
	}
	return missing
}

func (s *Snapshot) missingTables() []string {
	var missing []string
	for _, r := range s.reports {
		if !r.Loaded {
			missing = append(missing, r.Table)
		}
	}
	return missing
}

// HasColumn reports whether a loaded table carries the column.
func (s *Snapshot) HasColumn(table, col string) bool {
	f, ok := s.Frame(table)
	return ok && f.HasColumn(col)
}

// Report returns the load report served over the API.
func (s *Snapshot) Report() domain.SnapshotReport {
	return domain.SnapshotReport{
		LoadedAt:   s.LoadedAt,
		DataDir:    s.DataDir,
		Tables:     append([]domain.TableReport(nil), s.reports...),
		Conditions: append([]domain.Condition(nil), s.conditions...),
	}
}

// Conditions returns the recorded data quality conditions.
func (s *Snapshot) Conditions() []domain.Condition {
	return append([]domain.Condition(nil), s.conditions...)
}
