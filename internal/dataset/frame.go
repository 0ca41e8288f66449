package dataset

import (
	"time"
)

// ValueKind discriminates the typed states of a cell.
type ValueKind uint8

const (
	// KindAbsent marks a cell with no usable value. It is distinct from an
	// empty string and from zero; the normalizer decides which absents are
	// coerced to zero.
	KindAbsent ValueKind = iota
	KindString
	KindNumber
	KindTime
)

// Value is one typed cell. The zero Value is absent.
type Value struct {
	Kind ValueKind
	Str  string
	Num  float64
	Time time.Time
}

// AbsentValue is the canonical absent cell.
var AbsentValue = Value{Kind: KindAbsent}

// StringValue returns a string cell.
func StringValue(s string) Value {
	return Value{Kind: KindString, Str: s}
}

// NumberValue returns a numeric cell.
func NumberValue(f float64) Value {
	return Value{Kind: KindNumber, Num: f}
}

// TimeValue returns a timestamp cell.
func TimeValue(t time.Time) Value {
	return Value{Kind: KindTime, Time: t}
}

// IsAbsent reports whether the cell carries no value.
func (v Value) IsAbsent() bool {
	return v.Kind == KindAbsent
}

// Float returns the numeric value; absent and non-numeric cells read as zero.
func (v Value) Float() float64 {
	if v.Kind == KindNumber {
		return v.Num
	}
	return 0
}

// Text returns the string value; absent and non-string cells read as "".
func (v Value) Text() string {
	if v.Kind == KindString {
		return v.Str
	}
	return ""
}

// When returns the timestamp value and whether one is present.
func (v Value) When() (time.Time, bool) {
	if v.Kind == KindTime {
		return v.Time, true
	}
	return time.Time{}, false
}

// Equal compares two cells by kind and payload.
func (v Value) Equal(o Value) bool {
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case KindString:
		return v.Str == o.Str
	case KindNumber:
		return v.Num == o.Num
	case KindTime:
		return v.Time.Equal(o.Time)
	}
	return true
}

// Frame is a named table of typed cells with ordered columns. Frames are
// treated as immutable once built; derived frames are always fresh copies.
type Frame struct {
	Name    string
	Columns []string
	Rows    [][]Value

	colIdx map[string]int
}

// NewFrame creates an empty frame with the given column order.
func NewFrame(name string, columns []string) *Frame {
	f := &Frame{
		Name:    name,
		Columns: append([]string(nil), columns...),
	}
	f.reindex()
	return f
}

func (f *Frame) reindex() {
	f.colIdx = make(map[string]int, len(f.Columns))
	for i, c := range f.Columns {
		if _, ok := f.colIdx[c]; !ok {
			f.colIdx[c] = i
		}
	}
}

// AddRow appends a row, padding or truncating to the column count.
func (f *Frame) AddRow(cells ...Value) {
	row := make([]Value, len(f.Columns))
	for i := range row {
		if i < len(cells) {
			row[i] = cells[i]
		} else {
			row[i] = AbsentValue
		}
	}
	f.Rows = append(f.Rows, row)
}

// Len returns the row count.
func (f *Frame) Len() int {
	if f == nil {
		return 0
	}
	return len(f.Rows)
}

// Col returns the index of a column.
func (f *Frame) Col(name string) (int, bool) {
	if f == nil {
		return 0, false
	}
	i, ok := f.colIdx[name]
	return i, ok
}

// HasColumn reports whether the column exists.
func (f *Frame) HasColumn(name string) bool {
	_, ok := f.Col(name)
	return ok
}

// Value returns the cell at (row, column); out-of-range reads are absent.
func (f *Frame) Value(row int, col string) Value {
	i, ok := f.Col(col)
	if !ok || row < 0 || row >= f.Len() {
		return AbsentValue
	}
	return f.Rows[row][i]
}

// Float reads a numeric cell; absent reads as zero.
func (f *Frame) Float(row int, col string) float64 {
	return f.Value(row, col).Float()
}

// Text reads a string cell; absent reads as "".
func (f *Frame) Text(row int, col string) string {
	return f.Value(row, col).Text()
}

// When reads a timestamp cell.
func (f *Frame) When(row int, col string) (time.Time, bool) {
	return f.Value(row, col).When()
}

// Filter returns a new frame holding the rows the predicate accepts, in
// input order.
func (f *Frame) Filter(keep func(row int) bool) *Frame {
	out := NewFrame(f.Name, f.Columns)
	for i := range f.Rows {
		if keep(i) {
			out.Rows = append(out.Rows, f.Rows[i])
		}
	}
	return out
}

// Equal compares two frames cell for cell.
func (f *Frame) Equal(o *Frame) bool {
	if f.Len() != o.Len() || len(f.Columns) != len(o.Columns) {
		return false
	}
	for i, c := range f.Columns {
		if o.Columns[i] != c {
			return false
		}
	}
	for r := range f.Rows {
		for c := range f.Rows[r] {
			if !f.Rows[r][c].Equal(o.Rows[r][c]) {
				return false
			}
		}
	}
	return true
}
