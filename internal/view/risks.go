package view

import (
	"pmocli/internal/analytics"
	"pmocli/internal/dataset"
	"pmocli/pkg/contracts/domain"
)

// impactColors pins each impact level to a stable color so the donut
// reads the same across reloads regardless of category order.
var impactColors = map[string]string{
	"Critical": "#ef4444",
	"High":     "#f59e0b",
	"Medium":   "#6366f1",
	"Low":      "#10b981",
}

func buildRiskCompliance(c *Context) domain.View {
	var v domain.View

	risks, haveRisks := c.Snapshot.Frame(dataset.TableRisks)
	milestones, haveMilestones := c.Snapshot.Frame(dataset.TableMilestones)
	projects, haveProjects := c.projects()

	if !haveRisks {
		unavailable(&v, "risks table missing: risk KPIs and charts unavailable")
	}
	if !haveMilestones {
		unavailable(&v, "project_milestones table missing: milestone charts unavailable")
	}

	if haveRisks {
		v.Metrics = append(v.Metrics, metric("Total Risks", analytics.FormatCount(float64(risks.Len())), float64(risks.Len())))

		critical := analytics.CountWhere(risks, "impact", "Critical")
		v.Metrics = append(v.Metrics, metric("Critical", analytics.FormatCount(float64(critical)), float64(critical)))

		high := analytics.CountWhere(risks, "impact", "High")
		v.Metrics = append(v.Metrics, metric("High Impact", analytics.FormatCount(float64(high)), float64(high)))

		open := risks.Len() - analytics.CountWhere(risks, "status", "Closed")
		v.Metrics = append(v.Metrics, metric("Open Risks", analytics.FormatCount(float64(open)), float64(open)))

		byImpact := analytics.GroupCount(risks, "impact")
		impact := pieChart("risk-impact", "Risks by Impact", byImpact, analytics.CountColumn, 0.4)
		impact.Colors = make([]string, len(impact.Labels))
		for i, label := range impact.Labels {
			impact.Colors[i] = impactColors[label]
		}
		v.Charts = append(v.Charts, impact)

		if haveProjects {
			byProject := analytics.GroupCount(risks, "project_id")
			spec := topNChart("top-projects-by-risks", domain.ChartHBar, "Top Projects by Risk Count",
				byProject, analytics.CountColumn, 10, "recorded risks")
			spec = relabel(spec, nameIndex(projects, "project_id", "project_name"), 20)
			v.Charts = append(v.Charts, spec)
		}
	}

	if haveMilestones {
		byStatus := analytics.GroupCount(milestones, "status")
		v.Charts = append(v.Charts, barChart("milestone-status", "Milestones by Status", byStatus, analytics.CountColumn))

		completed := analytics.CountWhere(milestones, "status", "Completed")
		completion := analytics.Ratio(float64(completed), float64(milestones.Len()))
		v.Metrics = append(v.Metrics, metric("Milestone Completion", analytics.FormatPercent(completion), completion))
	}

	return v
}
