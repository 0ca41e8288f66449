package view

import (
	"fmt"

	"pmocli/internal/analytics"
	"pmocli/internal/dataset"
	"pmocli/pkg/contracts/domain"
)

func buildExecutiveOverview(c *Context) domain.View {
	var v domain.View

	projects, haveProjects := c.projects()
	if !haveProjects {
		unavailable(&v, "projects table missing: portfolio KPIs and charts unavailable")
	}
	haveBudget := haveProjects && c.Snapshot.HasColumn(dataset.TableProjects, "budget_aed")
	if haveProjects && !haveBudget {
		unavailable(&v, "projects.budget_aed missing: budget KPIs unavailable")
	}

	if haveBudget {
		total := analytics.SumColumn(projects, "budget_aed")
		v.Metrics = append(v.Metrics, metric("Total Budget", analytics.FormatMoneyM(total), total))
	}
	if haveProjects {
		active := analytics.CountWhere(projects, "status", "Active")
		m := metric("Active Projects", analytics.FormatCount(float64(active)), float64(active))
		m.Hint = fmt.Sprintf("of %d projects", projects.Len())
		v.Metrics = append(v.Metrics, m)
	}

	if employees, ok := c.Snapshot.Frame(dataset.TableEmployees); ok {
		v.Metrics = append(v.Metrics, metric("Workforce", analytics.FormatCount(float64(employees.Len())), float64(employees.Len())))
	} else {
		unavailable(&v, "employees table missing: workforce KPI unavailable")
	}

	if tasks, ok := c.tasks(); ok {
		v.Metrics = append(v.Metrics, metric("Total Tasks", analytics.FormatCount(float64(tasks.Len())), float64(tasks.Len())))
	} else {
		unavailable(&v, "tasks table missing: task KPI unavailable")
	}

	if haveProjects {
		if projects.HasColumn("completion_percentage") {
			avg := analytics.MeanColumn(projects, "completion_percentage")
			v.Metrics = append(v.Metrics, metric("Avg Completion", analytics.FormatPercent(avg), avg))
		} else {
			unavailable(&v, "projects.completion_percentage missing: completion KPI unavailable")
		}

		statusCounts := analytics.GroupCount(projects, "status")
		v.Charts = append(v.Charts, pieChart("project-status", "Projects by Status", statusCounts, analytics.CountColumn, 0.5))

		typeCounts := analytics.GroupCount(projects, "project_type")
		v.Charts = append(v.Charts, topNChart("projects-by-type", domain.ChartHBar, "Projects by Type",
			typeCounts, analytics.CountColumn, 8, "project count"))
	}

	if haveBudget {
		byType := analytics.GroupSum(projects, "project_type", "budget_aed")
		v.Charts = append(v.Charts, hbarChart("budget-by-type", "Budget by Project Type", byType, "budget_aed"))

		if projects.HasColumn("location") {
			byLocation := analytics.GroupSum(projects, "location", "budget_aed")
			v.Charts = append(v.Charts, treemapChart("budget-by-location", "Budget by Location", byLocation, "budget_aed"))
		} else {
			unavailable(&v, "projects.location missing: location treemap unavailable")
		}
	}

	return v
}
