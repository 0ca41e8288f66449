package analytics

import (
	"sort"

	"pmocli/internal/dataset"
)

// CountColumn is the values column name GroupCount emits.
const CountColumn = "count"

// GroupSum aggregates a measure by key. Groups appear in first-appearance
// order of the key; rows whose key is absent group under the empty string.
// The groups partition the input, so the sum over group totals equals
// SumColumn over the same rows.
func GroupSum(f *dataset.Frame, groupKey, valueCol string) *dataset.Frame {
	return groupFold(f, groupKey, valueCol, valueCol, func(acc *groupAcc, v float64) {
		acc.sum += v
	}, func(acc *groupAcc) float64 {
		return acc.sum
	})
}

// GroupMean aggregates a measure's arithmetic mean by key.
func GroupMean(f *dataset.Frame, groupKey, valueCol string) *dataset.Frame {
	return groupFold(f, groupKey, valueCol, valueCol, func(acc *groupAcc, v float64) {
		acc.sum += v
	}, func(acc *groupAcc) float64 {
		if acc.n == 0 {
			return 0
		}
		return acc.sum / float64(acc.n)
	})
}

// GroupCount counts rows by key into the "count" column.
func GroupCount(f *dataset.Frame, groupKey string) *dataset.Frame {
	return groupFold(f, groupKey, "", CountColumn, func(acc *groupAcc, v float64) {}, func(acc *groupAcc) float64 {
		return float64(acc.n)
	})
}

type groupAcc struct {
	key string
	sum float64
	n   int
}

func groupFold(f *dataset.Frame, groupKey, valueCol, outCol string, fold func(*groupAcc, float64), finish func(*groupAcc) float64) *dataset.Frame {
	out := dataset.NewFrame(f.Name, []string{groupKey, outCol})
	if f.Len() == 0 {
		return out
	}

	index := make(map[string]*groupAcc)
	order := make([]*groupAcc, 0)
	for row := 0; row < f.Len(); row++ {
		key := f.Text(row, groupKey)
		acc, ok := index[key]
		if !ok {
			acc = &groupAcc{key: key}
			index[key] = acc
			order = append(order, acc)
		}
		acc.n++
		if valueCol != "" {
			fold(acc, f.Float(row, valueCol))
		}
	}

	for _, acc := range order {
		out.AddRow(dataset.StringValue(acc.key), dataset.NumberValue(finish(acc)))
	}
	return out
}

// SumColumn totals a measure over all rows.
func SumColumn(f *dataset.Frame, col string) float64 {
	var total float64
	for row := 0; row < f.Len(); row++ {
		total += f.Float(row, col)
	}
	return total
}

// MeanColumn averages a measure over all rows; an empty frame means zero.
func MeanColumn(f *dataset.Frame, col string) float64 {
	if f.Len() == 0 {
		return 0
	}
	return SumColumn(f, col) / float64(f.Len())
}

// CountDistinct counts distinct non-empty values of a dimension.
func CountDistinct(f *dataset.Frame, col string) int {
	seen := make(map[string]struct{})
	for row := 0; row < f.Len(); row++ {
		if v := f.Text(row, col); v != "" {
			seen[v] = struct{}{}
		}
	}
	return len(seen)
}

// CountWhere counts rows whose dimension equals the given value.
func CountWhere(f *dataset.Frame, col, value string) int {
	n := 0
	for row := 0; row < f.Len(); row++ {
		if f.Text(row, col) == value {
			n++
		}
	}
	return n
}

// TopN returns the first n rows after a stable sort on sortCol. Ties keep
// their input order, so rankings are deterministic for equal values.
func TopN(f *dataset.Frame, n int, sortCol string, desc bool) *dataset.Frame {
	idx := make([]int, f.Len())
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		va, vb := f.Float(idx[a], sortCol), f.Float(idx[b], sortCol)
		if desc {
			return va > vb
		}
		return va < vb
	})

	if n > len(idx) {
		n = len(idx)
	}
	out := dataset.NewFrame(f.Name, f.Columns)
	for _, i := range idx[:n] {
		out.Rows = append(out.Rows, f.Rows[i])
	}
	return out
}

// SortBy returns all rows stably sorted on sortCol.
func SortBy(f *dataset.Frame, sortCol string, desc bool) *dataset.Frame {
	return TopN(f, f.Len(), sortCol, desc)
}

// Ratio returns num/den expressed as a percentage. A zero denominator
// degrades to zero rather than erroring; callers that care count those
// occurrences themselves.
func Ratio(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den * 100
}

// Variance returns budget minus actual for each element. Inputs of unequal
// length are truncated to the shorter prefix.
func Variance(budget, actual []float64) []float64 {
	n := len(budget)
	if len(actual) < n {
		n = len(actual)
	}
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = budget[i] - actual[i]
	}
	return out
}

// UtilizationPct returns actual/budget as percentages, element-wise, with
// zero budgets degrading to zero.
func UtilizationPct(actual, budget []float64) []float64 {
	n := len(budget)
	if len(actual) < n {
		n = len(actual)
	}
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = Ratio(actual[i], budget[i])
	}
	return out
}

// ColumnValues extracts a measure column as a slice.
func ColumnValues(f *dataset.Frame, col string) []float64 {
	out := make([]float64, 0, f.Len())
	for row := 0; row < f.Len(); row++ {
		out = append(out, f.Float(row, col))
	}
	return out
}

// ColumnTexts extracts a dimension column as a slice.
func ColumnTexts(f *dataset.Frame, col string) []string {
	out := make([]string, 0, f.Len())
	for row := 0; row < f.Len(); row++ {
		out = append(out, f.Text(row, col))
	}
	return out
}

// DistinctValues returns the sorted distinct non-empty values of a dimension.
func DistinctValues(f *dataset.Frame, col string) []string {
	seen := make(map[string]struct{})
	for row := 0; row < f.Len(); row++ {
		if v := f.Text(row, col); v != "" {
			seen[v] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
