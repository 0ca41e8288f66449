package analytics

import (
	"pmocli/internal/dataset"
)

// LeftJoin joins right onto left by the on column. Every left row appears
// exactly once in the result; when several right rows share a key the first
// match wins, which is safe because joins in this package always run against
// aggregated (unique-key) children. Unmatched rows fill zero for numeric
// columns and absent for everything else.
//
// Right-side columns other than the key are appended after the left columns;
// a name collision gets a "_right" suffix.
func LeftJoin(left, right *dataset.Frame, on string) *dataset.Frame {
	rightCols := make([]string, 0, len(right.Columns))
	outCols := append([]string(nil), left.Columns...)
	taken := make(map[string]struct{}, len(outCols))
	for _, c := range outCols {
		taken[c] = struct{}{}
	}
	for _, c := range right.Columns {
		if c == on {
			continue
		}
		name := c
		if _, clash := taken[name]; clash {
			name += "_right"
		}
		taken[name] = struct{}{}
		rightCols = append(rightCols, c)
		outCols = append(outCols, name)
	}

	// Index the right side by key, first match wins.
	byKey := make(map[string]int, right.Len())
	for row := 0; row < right.Len(); row++ {
		key := right.Text(row, on)
		if _, ok := byKey[key]; !ok {
			byKey[key] = row
		}
	}

	fillers := make([]dataset.Value, len(rightCols))
	for i, c := range rightCols {
		fillers[i] = fillValue(right, c)
	}

	out := dataset.NewFrame(left.Name, outCols)
	for row := 0; row < left.Len(); row++ {
		cells := make([]dataset.Value, 0, len(outCols))
		cells = append(cells, left.Rows[row]...)

		matched, ok := byKey[left.Text(row, on)]
		for i, c := range rightCols {
			if ok {
				cells = append(cells, right.Value(matched, c))
			} else {
				cells = append(cells, fillers[i])
			}
		}
		out.Rows = append(out.Rows, cells)
	}
	return out
}

// fillValue picks the unmatched-row filler for a right-side column: zero if
// the column holds numbers anywhere, absent otherwise.
func fillValue(right *dataset.Frame, col string) dataset.Value {
	for row := 0; row < right.Len(); row++ {
		switch right.Value(row, col).Kind {
		case dataset.KindNumber:
			return dataset.NumberValue(0)
		case dataset.KindString, dataset.KindTime:
			return dataset.AbsentValue
		}
	}
	return dataset.AbsentValue
}

// Rename returns a frame with columns renamed per the mapping; rows are
// shared with the input.
func Rename(f *dataset.Frame, mapping map[string]string) *dataset.Frame {
	cols := make([]string, len(f.Columns))
	for i, c := range f.Columns {
		if to, ok := mapping[c]; ok {
			cols[i] = to
		} else {
			cols[i] = c
		}
	}
	out := dataset.NewFrame(f.Name, cols)
	out.Rows = f.Rows
	return out
}
