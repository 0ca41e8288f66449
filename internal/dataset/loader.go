package dataset

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"golang.org/x/sync/errgroup"

	"pmocli/pkg/contracts/domain"
)

// loadConcurrency bounds the parallel file reads during the initial bulk load.
const loadConcurrency = 4

// Loader reads registered CSV extracts from a data directory into a
// Snapshot. All data plane failures degrade: a missing or unreadable file
// records a condition and leaves the table absent; Load itself errors only
// when the data directory is unusable.
type Loader struct {
	dir    string
	specs  []TableSpec
	logger *slog.Logger
}

// NewLoader creates a loader over the given directory and table specs.
func NewLoader(dir string, specs []TableSpec, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		dir:    dir,
		specs:  specs,
		logger: logger.With(slog.String("component", "dataset_loader")),
	}
}

type tableResult struct {
	spec         TableSpec
	frame        *Frame
	rowAnomalies int
	loadErr      error
}

// Load reads every registered table. Tables load concurrently; Load returns
// only once the snapshot is complete, after which it is immutable.
func (l *Loader) Load(ctx context.Context) (*Snapshot, error) {
	info, err := os.Stat(l.dir)
	if err != nil {
		return nil, fmt.Errorf("data directory %s: %w", l.dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("data directory %s: not a directory", l.dir)
	}

	start := time.Now()
	results := make([]tableResult, len(l.specs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(loadConcurrency)
	for i, spec := range l.specs {
		g.Go(func() error {
			results[i] = l.loadTable(ctx, spec)
			return nil
		})
	}
	// Workers report failures through their result slots, never through the
	// group, so a bad table cannot cancel its siblings.
	_ = g.Wait()

	snap := l.assemble(results)
	l.logger.InfoContext(ctx, "dataset loaded",
		slog.Int("tables", len(l.specs)),
		slog.Int("missing", len(snap.missingTables())),
		slog.Duration("elapsed", time.Since(start)))
	return snap, nil
}

func (l *Loader) loadTable(ctx context.Context, spec TableSpec) tableResult {
	res := tableResult{spec: spec}

	path := filepath.Join(l.dir, spec.File)
	file, err := os.Open(path)
	if err != nil {
		res.loadErr = err
		l.logger.WarnContext(ctx, "table file unavailable",
			slog.String("table", spec.Name),
			slog.String("file", spec.File),
			slog.String("error", err.Error()))
		return res
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		res.loadErr = fmt.Errorf("read header: %w", err)
		return res
	}

	frame := NewFrame(spec.Name, normalizeHeader(header))
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Keep what parsed so far; the anomaly shows up on the report.
			res.rowAnomalies++
			l.logger.WarnContext(ctx, "csv read aborted",
				slog.String("table", spec.Name),
				slog.String("error", err.Error()))
			break
		}
		if len(record) != len(frame.Columns) {
			res.rowAnomalies++
		}
		cells := make([]Value, 0, len(frame.Columns))
		for _, field := range record {
			cells = append(cells, StringValue(field))
		}
		frame.AddRow(cells...)
	}

	res.frame = frame
	return res
}

// assemble normalizes the raw frames and builds the immutable snapshot with
// its load report and condition list.
func (l *Loader) assemble(results []tableResult) *Snapshot {
	snap := &Snapshot{
		LoadedAt: time.Now(),
		DataDir:  l.dir,
		frames:   make(map[string]*Frame, len(results)),
	}

	for _, res := range results {
		report := domain.TableReport{
			Table: res.spec.Name,
			File:  res.spec.File,
		}

		if res.frame == nil {
			snap.frames[res.spec.Name] = nil
			snap.conditions = append(snap.conditions, domain.Condition{
				Kind:   domain.ConditionMissingFile,
				Table:  res.spec.Name,
				Detail: res.spec.File,
			})
			snap.reports = append(snap.reports, report)
			continue
		}

		frame, norm := Normalize(res.frame, res.spec)
		snap.frames[res.spec.Name] = frame

		report.Loaded = true
		report.Rows = frame.Len()
		report.Columns = len(frame.Columns)
		report.ParseErrors = norm.ParseErrors
		report.RowAnomalies = res.rowAnomalies
		snap.reports = append(snap.reports, report)

		for col, n := range norm.PerColumn {
			snap.conditions = append(snap.conditions, domain.Condition{
				Kind:   domain.ConditionParse,
				Table:  res.spec.Name,
				Column: col,
				Count:  n,
			})
		}
		for _, col := range res.spec.Required {
			if !frame.HasColumn(col) {
				snap.conditions = append(snap.conditions, domain.Condition{
					Kind:   domain.ConditionMissingColumn,
					Table:  res.spec.Name,
					Column: col,
				})
			}
		}
	}
	return snap
}

// normalizeHeader trims, snake-cases, and disambiguates column names.
func normalizeHeader(header []string) []string {
	out := make([]string, len(header))
	seen := make(map[string]int, len(header))
	for i, h := range header {
		name := toSnakeCase(strings.TrimSpace(h))
		if name == "" {
			name = fmt.Sprintf("column_%d", i+1)
		}
		if n, dup := seen[name]; dup {
			seen[name] = n + 1
			name = fmt.Sprintf("%s_%d", name, n+1)
		} else {
			seen[name] = 1
		}
		out[i] = name
	}
	return out
}

func toSnakeCase(s string) string {
	runes := []rune(s)
	var b strings.Builder
	lastUnderscore := false
	for i, r := range runes {
		switch {
		case r == ' ' || r == '-' || r == '.':
			if b.Len() > 0 && !lastUnderscore {
				b.WriteByte('_')
				lastUnderscore = true
			}
		case unicode.IsUpper(r):
			if i > 0 && !lastUnderscore && (unicode.IsLower(runes[i-1]) || unicode.IsDigit(runes[i-1])) {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			lastUnderscore = false
		default:
			b.WriteRune(r)
			lastUnderscore = r == '_'
		}
	}
	return strings.Trim(b.String(), "_")
}
