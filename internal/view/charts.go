package view

import (
	"fmt"

	"pmocli/internal/analytics"
	"pmocli/internal/dataset"
	"pmocli/pkg/contracts/domain"
)

// groupedChart turns a grouped frame (label column first, value column
// second) into a chart of the given kind.
func groupedChart(id string, kind domain.ChartKind, title string, groups *dataset.Frame, valueCol string) domain.ChartSpec {
	return domain.ChartSpec{
		ID:     id,
		Kind:   kind,
		Title:  title,
		Labels: analytics.ColumnTexts(groups, groups.Columns[0]),
		Values: analytics.ColumnValues(groups, valueCol),
	}
}

func pieChart(id, title string, groups *dataset.Frame, valueCol string, hole float64) domain.ChartSpec {
	spec := groupedChart(id, domain.ChartPie, title, groups, valueCol)
	spec.Hole = hole
	return spec
}

func barChart(id, title string, groups *dataset.Frame, valueCol string) domain.ChartSpec {
	return groupedChart(id, domain.ChartBar, title, groups, valueCol)
}

func hbarChart(id, title string, groups *dataset.Frame, valueCol string) domain.ChartSpec {
	return groupedChart(id, domain.ChartHBar, title, groups, valueCol)
}

func treemapChart(id, title string, groups *dataset.Frame, valueCol string) domain.ChartSpec {
	return groupedChart(id, domain.ChartTreemap, title, groups, valueCol)
}

func lineChart(id, title string, groups *dataset.Frame, valueCol string) domain.ChartSpec {
	return groupedChart(id, domain.ChartLine, title, groups, valueCol)
}

func histogramChart(id, title string, samples []float64, bins int) domain.ChartSpec {
	return domain.ChartSpec{
		ID:     id,
		Kind:   domain.ChartHistogram,
		Title:  title,
		Values: samples,
		Bins:   bins,
	}
}

// topNChart ranks groups by value, keeps the head, and labels the cut so
// readers know the chart is a truncation, not the population.
func topNChart(id string, kind domain.ChartKind, title string, groups *dataset.Frame, valueCol string, n int, what string) domain.ChartSpec {
	truncated := groups.Len() > n
	ranked := analytics.TopN(groups, n, valueCol, true)
	spec := groupedChart(id, kind, title, ranked, valueCol)
	if truncated {
		spec.Truncated = true
		spec.Note = fmt.Sprintf("Top %d by %s", n, what)
	}
	return spec
}

// relabel swaps grouped-frame labels (usually IDs) for display names and
// truncates them for axis readability. IDs without a name entry keep the ID.
func relabel(spec domain.ChartSpec, names map[string]string, maxLen int) domain.ChartSpec {
	out := make([]string, len(spec.Labels))
	for i, l := range spec.Labels {
		name := l
		if n, ok := names[l]; ok && n != "" {
			name = n
		}
		out[i] = analytics.TruncateLabel(name, maxLen)
	}
	spec.Labels = out
	return spec
}

// nameIndex builds an id -> display name lookup from a frame.
func nameIndex(f *dataset.Frame, idCol, nameCol string) map[string]string {
	idx := make(map[string]string, f.Len())
	for row := 0; row < f.Len(); row++ {
		id := f.Text(row, idCol)
		if _, ok := idx[id]; !ok {
			idx[id] = f.Text(row, nameCol)
		}
	}
	return idx
}

// metric builds a KPI card.
func metric(label, value string, raw float64) domain.Metric {
	return domain.Metric{Label: label, Value: value, Raw: raw}
}

// unavailable appends a section degradation note to a view.
func unavailable(v *domain.View, reason string) {
	v.Unavailable = append(v.Unavailable, reason)
}
