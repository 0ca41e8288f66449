package analytics

import (
	"sort"

	"pmocli/internal/dataset"
)

// MonthColumn is the bucket column name MonthlyTotals emits.
const MonthColumn = "month"

// MonthlyTotals sums a measure into calendar-month buckets of a date column,
// labeled "2006-01" and sorted chronologically. Rows whose date is absent are
// excluded from the series.
func MonthlyTotals(f *dataset.Frame, dateCol, valueCol string) *dataset.Frame {
	totals := make(map[string]float64)
	for row := 0; row < f.Len(); row++ {
		t, ok := f.When(row, dateCol)
		if !ok {
			continue
		}
		totals[t.Format("2006-01")] += f.Float(row, valueCol)
	}

	months := make([]string, 0, len(totals))
	for m := range totals {
		months = append(months, m)
	}
	sort.Strings(months)

	out := dataset.NewFrame(f.Name, []string{MonthColumn, valueCol})
	for _, m := range months {
		out.AddRow(dataset.StringValue(m), dataset.NumberValue(totals[m]))
	}
	return out
}
