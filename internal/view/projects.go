package view

import (
	"pmocli/internal/analytics"
	"pmocli/internal/dataset"
	"pmocli/pkg/contracts/domain"
)

func buildProjectAnalytics(c *Context) domain.View {
	var v domain.View

	projects, ok := c.projects()
	if !ok {
		unavailable(&v, "projects table missing: view unavailable")
		return v
	}
	haveBudget := c.Snapshot.HasColumn(dataset.TableProjects, "budget_aed")
	haveCompletion := projects.HasColumn("completion_percentage")

	selected := float64(projects.Len())
	v.Metrics = append(v.Metrics, metric("Projects Selected", analytics.FormatCount(selected), selected))

	if haveBudget {
		total := analytics.SumColumn(projects, "budget_aed")
		v.Metrics = append(v.Metrics, metric("Combined Budget", analytics.FormatMoney(total), total))
	} else {
		unavailable(&v, "projects.budget_aed missing: budget KPIs and charts unavailable")
	}
	if haveCompletion {
		avg := analytics.MeanColumn(projects, "completion_percentage")
		v.Metrics = append(v.Metrics, metric("Avg Completion", analytics.FormatPercent(avg), avg))
	} else {
		unavailable(&v, "projects.completion_percentage missing: completion analysis unavailable")
	}
	onHold := analytics.CountWhere(projects, "status", "On Hold")
	v.Metrics = append(v.Metrics, metric("On Hold", analytics.FormatCount(float64(onHold)), float64(onHold)))

	if haveCompletion {
		v.Charts = append(v.Charts, histogramChart("completion-distribution", "Completion Distribution",
			analytics.ColumnValues(projects, "completion_percentage"), 20))
	}

	if haveBudget && haveCompletion {
		points := make([]domain.Point, 0, projects.Len())
		for row := 0; row < projects.Len(); row++ {
			points = append(points, domain.Point{
				X:     projects.Float(row, "budget_aed"),
				Y:     projects.Float(row, "completion_percentage"),
				Label: projects.Text(row, "project_name"),
			})
		}
		v.Charts = append(v.Charts, domain.ChartSpec{
			ID:     "budget-vs-completion",
			Kind:   domain.ChartScatter,
			Title:  "Budget vs Completion",
			Points: points,
			XTitle: "Budget (AED)",
			YTitle: "Completion %",
		})
	}

	v.Tables = append(v.Tables, projectTable(projects, haveBudget, haveCompletion))
	return v
}

// projectTable lists the filtered projects, largest budget first.
func projectTable(projects *dataset.Frame, haveBudget, haveCompletion bool) domain.TableSpec {
	sorted := projects
	if haveBudget {
		sorted = analytics.SortBy(projects, "budget_aed", true)
	}

	cols := []domain.Column{
		{Key: "project_name", Label: "Project", Type: domain.ColumnText},
		{Key: "project_type", Label: "Type", Type: domain.ColumnText},
		{Key: "status", Label: "Status", Type: domain.ColumnText},
	}
	if haveBudget {
		cols = append(cols, domain.Column{Key: "budget_aed", Label: "Budget", Type: domain.ColumnMoney})
	}
	if haveCompletion {
		cols = append(cols, domain.Column{Key: "completion_percentage", Label: "Completion", Type: domain.ColumnPercent})
	}
	cols = append(cols, domain.Column{Key: "location", Label: "Location", Type: domain.ColumnText})

	rows := make([]map[string]interface{}, 0, sorted.Len())
	for row := 0; row < sorted.Len(); row++ {
		entry := map[string]interface{}{
			"project_name": sorted.Text(row, "project_name"),
			"project_type": sorted.Text(row, "project_type"),
			"status":       sorted.Text(row, "status"),
			"location":     sorted.Text(row, "location"),
		}
		if haveBudget {
			entry["budget_aed"] = sorted.Float(row, "budget_aed")
		}
		if haveCompletion {
			entry["completion_percentage"] = sorted.Float(row, "completion_percentage")
		}
		rows = append(rows, entry)
	}

	return domain.TableSpec{
		ID:      "project-inventory",
		Title:   "Project Inventory",
		Columns: cols,
		Rows:    rows,
	}
}
