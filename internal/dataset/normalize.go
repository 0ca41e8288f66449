package dataset

import (
	"strconv"
	"strings"
	"time"
)

// dateLayouts are tried in order when parsing date columns.
var dateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// NormalizeReport counts the coercions a normalization pass had to make.
type NormalizeReport struct {
	ParseErrors int
	PerColumn   map[string]int
}

func (r *NormalizeReport) count(col string) {
	r.ParseErrors++
	if r.PerColumn == nil {
		r.PerColumn = make(map[string]int)
	}
	r.PerColumn[col]++
}

// Normalize applies the table spec's column typing to a frame and returns a new
// frame. The pass is idempotent: cells already carrying the target type pass
// through unchanged, so Normalize(Normalize(f)) equals Normalize(f) cell for
// cell.
//
// Coercion rules:
//   - dates: unparseable cells become absent and stay absent
//   - money, quantities, and percents: blank or absent cells become zero;
//     unparseable non-blank cells become zero and are counted as parse
//     errors; negative values are floored at zero and counted, so every
//     measure is non-negative after normalization
//   - strings: trimmed; blank collapses to absent (reads back as "")
func Normalize(f *Frame, spec TableSpec) (*Frame, NormalizeReport) {
	report := NormalizeReport{}
	if f == nil {
		return nil, report
	}

	out := NewFrame(f.Name, f.Columns)
	out.Rows = make([][]Value, 0, len(f.Rows))
	for _, row := range f.Rows {
		cells := make([]Value, len(f.Columns))
		for i, col := range f.Columns {
			cells[i] = normalizeCell(row[i], col, spec.TypeOf(col), &report)
		}
		out.Rows = append(out.Rows, cells)
	}
	return out, report
}

func normalizeCell(v Value, col string, t ColumnType, report *NormalizeReport) Value {
	switch t {
	case ColDate:
		return normalizeDate(v, col, report)
	case ColMoney, ColQuantity, ColPercent:
		return normalizeNumber(v, col, report)
	default:
		return normalizeString(v)
	}
}

func normalizeDate(v Value, col string, report *NormalizeReport) Value {
	switch v.Kind {
	case KindTime:
		return v
	case KindString:
		s := strings.TrimSpace(v.Str)
		if s == "" {
			return AbsentValue
		}
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return TimeValue(t)
			}
		}
		report.count(col)
		return AbsentValue
	default:
		return AbsentValue
	}
}

func normalizeNumber(v Value, col string, report *NormalizeReport) Value {
	switch v.Kind {
	case KindNumber:
		if v.Num < 0 {
			report.count(col)
			return NumberValue(0)
		}
		return v
	case KindString:
		s := strings.TrimSpace(v.Str)
		if s == "" {
			return NumberValue(0)
		}
		// Money extracts frequently carry thousands separators.
		s = strings.ReplaceAll(s, ",", "")
		n, err := strconv.ParseFloat(s, 64)
		if err != nil {
			report.count(col)
			return NumberValue(0)
		}
		if n < 0 {
			report.count(col)
			return NumberValue(0)
		}
		return NumberValue(n)
	default:
		// The fill-zero rule: absent measures read as zero downstream.
		return NumberValue(0)
	}
}

func normalizeString(v Value) Value {
	switch v.Kind {
	case KindString:
		s := strings.TrimSpace(v.Str)
		if s == "" {
			return AbsentValue
		}
		if s == v.Str {
			return v
		}
		return StringValue(s)
	default:
		return v
	}
}
