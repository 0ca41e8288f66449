package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pmocli/pkg/contracts/domain"
)

func TestExecutiveOverviewKPIs(t *testing.T) {
	snap := loadSnapshot(t, fullFixture())
	v, ok := NewRegistry().Build(snap, "executive-overview", domain.FilterSet{})
	require.True(t, ok)

	assert.Equal(t, "AED 12.0M", findMetric(t, v, "Total Budget").Value)

	active := findMetric(t, v, "Active Projects")
	assert.Equal(t, "2", active.Value)
	assert.Equal(t, "of 4 projects", active.Hint)

	assert.Equal(t, "3", findMetric(t, v, "Workforce").Value)
	assert.Equal(t, "5", findMetric(t, v, "Total Tasks").Value)
	assert.Equal(t, "65.0%", findMetric(t, v, "Avg Completion").Value)
	assert.Empty(t, v.Unavailable)
}

func TestExecutiveOverviewCharts(t *testing.T) {
	snap := loadSnapshot(t, fullFixture())
	v, ok := NewRegistry().Build(snap, "executive-overview", domain.FilterSet{})
	require.True(t, ok)

	status := findChart(t, v, "project-status")
	assert.Equal(t, domain.ChartPie, status.Kind)
	assert.InDelta(t, 0.5, status.Hole, 0.001)
	assert.Equal(t, []string{"Active", "On Hold", "Completed"}, status.Labels)
	assert.Equal(t, []float64{2, 1, 1}, status.Values)

	byType := findChart(t, v, "projects-by-type")
	assert.Equal(t, domain.ChartHBar, byType.Kind)
	assert.Equal(t, []string{"Infrastructure", "Fitout", "Technology"}, byType.Labels)
	assert.False(t, byType.Truncated, "three types fit under the top-8 cut")

	budget := findChart(t, v, "budget-by-type")
	assert.Equal(t, []float64{8800000, 1200000, 2000000}, budget.Values)

	location := findChart(t, v, "budget-by-location")
	assert.Equal(t, domain.ChartTreemap, location.Kind)
	assert.Equal(t, []string{"Dubai", "Abu Dhabi", "Sharjah"}, location.Labels)
}

func TestExecutiveOverviewDegradesWithoutEmployees(t *testing.T) {
	files := fullFixture()
	delete(files, "employees.csv")
	snap := loadSnapshot(t, files)

	v, ok := NewRegistry().Build(snap, "executive-overview", domain.FilterSet{})
	require.True(t, ok)

	assert.False(t, hasMetric(v, "Workforce"))
	assert.True(t, hasMetric(v, "Total Budget"), "budget KPIs survive a missing workforce extract")
	require.NotEmpty(t, v.Unavailable)
	assert.Contains(t, v.Unavailable[0], "employees")
}

func TestProjectAnalyticsTableSortedByBudget(t *testing.T) {
	snap := loadSnapshot(t, fullFixture())
	v, ok := NewRegistry().Build(snap, "project-analytics", domain.FilterSet{})
	require.True(t, ok)

	require.Len(t, v.Tables, 1)
	table := v.Tables[0]
	assert.Equal(t, "project-inventory", table.ID)
	require.Len(t, table.Rows, 4)
	assert.Equal(t, "Metro Extension", table.Rows[0]["project_name"])
	assert.Equal(t, "HQ Fitout", table.Rows[3]["project_name"])

	keys := make([]string, 0, len(table.Columns))
	for _, c := range table.Columns {
		keys = append(keys, c.Key)
	}
	assert.Contains(t, keys, "budget_aed")
	assert.Contains(t, keys, "completion_percentage")
}

func TestProjectAnalyticsDistributionCharts(t *testing.T) {
	snap := loadSnapshot(t, fullFixture())
	v, ok := NewRegistry().Build(snap, "project-analytics", domain.FilterSet{})
	require.True(t, ok)

	hist := findChart(t, v, "completion-distribution")
	assert.Equal(t, domain.ChartHistogram, hist.Kind)
	assert.Equal(t, 20, hist.Bins)
	assert.Len(t, hist.Values, 4)

	scatter := findChart(t, v, "budget-vs-completion")
	assert.Equal(t, domain.ChartScatter, scatter.Kind)
	require.Len(t, scatter.Points, 4)
	assert.Equal(t, "Metro Extension", scatter.Points[0].Label)
	assert.InDelta(t, 5000000, scatter.Points[0].X, 0.001)
	assert.InDelta(t, 60, scatter.Points[0].Y, 0.001)
}

func TestFinancialInsightsKPIs(t *testing.T) {
	snap := loadSnapshot(t, fullFixture())
	v, ok := NewRegistry().Build(snap, "financial-insights", domain.FilterSet{})
	require.True(t, ok)

	assert.Equal(t, "AED 830K", findMetric(t, v, "Total Expenses").Value)
	assert.Equal(t, "AED 1.3M", findMetric(t, v, "PO Value").Value)
	assert.Equal(t, "AED 12.0M", findMetric(t, v, "Combined Budget").Value)
	assert.Equal(t, "18.1%", findMetric(t, v, "Budget Utilization").Value)
}

func TestFinancialInsightsCharts(t *testing.T) {
	snap := loadSnapshot(t, fullFixture())
	v, ok := NewRegistry().Build(snap, "financial-insights", domain.FilterSet{})
	require.True(t, ok)

	categories := findChart(t, v, "expenses-by-category")
	assert.Equal(t, []string{"Materials", "Labor", "Consulting"}, categories.Labels)
	assert.Equal(t, []float64{560000, 180000, 90000}, categories.Values)

	monthly := findChart(t, v, "monthly-expenses")
	assert.Equal(t, domain.ChartLine, monthly.Kind)
	assert.Equal(t, []string{"2024-02", "2024-03", "2024-04"}, monthly.Labels)
	assert.Equal(t, []float64{250000, 270000, 310000}, monthly.Values)

	poStatus := findChart(t, v, "po-status")
	assert.InDelta(t, 0.4, poStatus.Hole, 0.001)
	assert.Equal(t, []string{"Approved", "Delivered", "Pending"}, poStatus.Labels)

	top := findChart(t, v, "top-projects-by-expenses")
	assert.Equal(t, []string{"Metro Extension", "Bridge Retrofit", "HQ Fitout"}, top.Labels)
	assert.Equal(t, []float64{430000, 310000, 90000}, top.Values)
}

func TestResourceManagementView(t *testing.T) {
	snap := loadSnapshot(t, fullFixture())
	v, ok := NewRegistry().Build(snap, "resource-management", domain.FilterSet{})
	require.True(t, ok)

	assert.Equal(t, "3", findMetric(t, v, "Workforce").Value)
	assert.Equal(t, "2", findMetric(t, v, "Departments").Value)
	assert.Equal(t, "AED 24K", findMetric(t, v, "Avg Salary").Value)
	assert.Equal(t, "140", findMetric(t, v, "Hours Logged").Value)

	headcount := findChart(t, v, "headcount-by-department")
	assert.Equal(t, []string{"Engineering", "Finance"}, headcount.Labels)
	assert.Equal(t, []float64{2, 1}, headcount.Values)

	billable := findChart(t, v, "billable-hours")
	assert.Equal(t, []string{"Yes", "No"}, billable.Labels)
	assert.Equal(t, []float64{120, 20}, billable.Values)

	approval := findChart(t, v, "hours-by-approval")
	assert.Equal(t, []string{"Approved", "Pending"}, approval.Labels)
}

func TestRiskComplianceView(t *testing.T) {
	snap := loadSnapshot(t, fullFixture())
	v, ok := NewRegistry().Build(snap, "risk-compliance", domain.FilterSet{})
	require.True(t, ok)

	assert.Equal(t, "5", findMetric(t, v, "Total Risks").Value)
	assert.Equal(t, "1", findMetric(t, v, "Critical").Value)
	assert.Equal(t, "2", findMetric(t, v, "High Impact").Value)
	assert.Equal(t, "3", findMetric(t, v, "Open Risks").Value)
	assert.Equal(t, "50.0%", findMetric(t, v, "Milestone Completion").Value)

	impact := findChart(t, v, "risk-impact")
	assert.InDelta(t, 0.4, impact.Hole, 0.001)
	assert.Equal(t, []string{"Critical", "High", "Medium", "Low"}, impact.Labels)
	assert.Equal(t, []string{"#ef4444", "#f59e0b", "#6366f1", "#10b981"}, impact.Colors)

	top := findChart(t, v, "top-projects-by-risks")
	assert.Equal(t, []string{"Metro Extension", "Bridge Retrofit", "HQ Fitout"}, top.Labels)
	assert.Equal(t, []float64{2, 2, 1}, top.Values)

	milestones := findChart(t, v, "milestone-status")
	assert.Equal(t, []string{"Completed", "In Progress", "Delayed"}, milestones.Labels)
}

func TestVendorAnalysisView(t *testing.T) {
	snap := loadSnapshot(t, fullFixture())
	v, ok := NewRegistry().Build(snap, "vendor-analysis", domain.FilterSet{})
	require.True(t, ok)

	assert.Equal(t, "3", findMetric(t, v, "Vendors").Value)
	assert.Equal(t, "AED 1.3M", findMetric(t, v, "PO Value").Value)
	assert.Equal(t, "AED 336K", findMetric(t, v, "Avg PO").Value)
	assert.Equal(t, "4", findMetric(t, v, "PO Count").Value)

	locations := findChart(t, v, "vendor-locations")
	assert.InDelta(t, 0.4, locations.Hole, 0.001)
	assert.Equal(t, []string{"Dubai", "Abu Dhabi"}, locations.Labels)
	assert.Equal(t, []float64{2, 1}, locations.Values)

	top := findChart(t, v, "top-vendors-by-po")
	assert.Equal(t, []string{"Gulf Steel Trading", "Falcon IT Services", "Oasis Logistics"}, top.Labels)
	assert.Equal(t, []float64{1050000, 220000, 75000}, top.Values)
}

func TestViewsBuildAgainstEmptySnapshot(t *testing.T) {
	snap := loadSnapshot(t, map[string]string{})
	r := NewRegistry()

	for _, def := range r.Definitions() {
		def := def
		t.Run(def.Slug, func(t *testing.T) {
			v, ok := r.Build(snap, def.Slug, domain.FilterSet{})
			require.True(t, ok)
			assert.Empty(t, v.Metrics)
			assert.Empty(t, v.Charts)
			assert.NotEmpty(t, v.Unavailable, "missing inputs must be reported, not ignored")
		})
	}
}
