package report

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"pmocli/internal/analytics"
	"pmocli/internal/dataset"
	"pmocli/pkg/contracts/domain"
)

// DefaultTopN is the project count in the budget vs actuals ranking.
const DefaultTopN = 10

// riskColors pins impact levels to the dashboard's palette so the report
// and the live view agree.
var riskColors = map[string]string{
	"Critical": "#ef4444",
	"High":     "#f59e0b",
	"Medium":   "#6366f1",
	"Low":      "#10b981",
}

// Options tune one report run.
type Options struct {
	Title string
	TopN  int
}

// Generator computes the static portfolio report document from a snapshot.
// Reports are always whole-portfolio: dashboard filters do not apply.
type Generator struct {
	logger *slog.Logger
}

// NewGenerator creates a report generator.
func NewGenerator(logger *slog.Logger) *Generator {
	return &Generator{logger: logger}
}

// Generate derives the report model: the KPI strip plus the fixed chart set.
// Missing inputs degrade section by section; Generate never fails on data
// quality.
func (g *Generator) Generate(ctx context.Context, snap *dataset.Snapshot, opts Options) *domain.Report {
	if opts.Title == "" {
		opts.Title = "Portfolio Report"
	}
	if opts.TopN <= 0 {
		opts.TopN = DefaultTopN
	}

	rep := &domain.Report{
		ID:          uuid.New().String(),
		Title:       opts.Title,
		GeneratedAt: time.Now(),
		Currency:    analytics.Currency,
	}

	projects, haveProjects := snap.Frame(dataset.TableProjects)
	expenses, _ := snap.Frame(dataset.TableExpenses)
	pos, _ := snap.Frame(dataset.TablePurchaseOrders)

	haveBudget := haveProjects && snap.HasColumn(dataset.TableProjects, "budget_aed")

	if !haveProjects {
		rep.Unavailable = append(rep.Unavailable, "projects table missing: budget KPIs and rankings unavailable")
	} else if !haveBudget {
		rep.Unavailable = append(rep.Unavailable, "projects.budget_aed missing: budget KPIs and rankings unavailable")
	}

	if haveBudget {
		total := analytics.SumColumn(projects, "budget_aed")
		rep.KPIs = append(rep.KPIs, domain.Metric{Label: "Total Budget", Value: analytics.FormatMoneyM(total), Raw: total})
	}

	spend := 0.0
	haveSpend := false
	if expenses != nil && expenses.HasColumn("amount_aed") {
		spend += analytics.SumColumn(expenses, "amount_aed")
		haveSpend = true
	}
	if pos != nil && pos.HasColumn("amount_aed") {
		spend += analytics.SumColumn(pos, "amount_aed")
		haveSpend = true
	}
	if haveSpend {
		rep.KPIs = append(rep.KPIs, domain.Metric{Label: "Recorded Spend", Value: analytics.FormatMoney(spend), Raw: spend})
	} else {
		rep.Unavailable = append(rep.Unavailable, "expenses and purchase_orders unusable: spend KPI unavailable")
	}

	if haveProjects && snap.HasColumn(dataset.TableProjects, "completion_percentage") {
		avg := analytics.MeanColumn(projects, "completion_percentage")
		rep.KPIs = append(rep.KPIs, domain.Metric{Label: "Avg Completion", Value: analytics.FormatPercent(avg), Raw: avg})
	}

	if haveBudget {
		if spec, ok := g.budgetVsActuals(projects, expenses, pos, opts.TopN); ok {
			rep.Charts = append(rep.Charts, spec)
		}
		if spec, ok := g.budgetByIndustry(snap, projects); ok {
			rep.Charts = append(rep.Charts, spec)
		} else {
			rep.Unavailable = append(rep.Unavailable, "clients table missing: industry breakdown unavailable")
		}
	}

	if tasks, ok := snap.Frame(dataset.TableTasks); ok {
		byStatus := analytics.GroupCount(tasks, "status")
		rep.Charts = append(rep.Charts, domain.ChartSpec{
			ID:     "task-status",
			Kind:   domain.ChartPie,
			Title:  "Tasks by Status",
			Labels: analytics.ColumnTexts(byStatus, "status"),
			Values: analytics.ColumnValues(byStatus, analytics.CountColumn),
		})
	} else {
		rep.Unavailable = append(rep.Unavailable, "tasks table missing: task status chart unavailable")
	}

	if employees, ok := snap.Frame(dataset.TableEmployees); ok && employees.HasColumn("salary_aed") {
		byDept := analytics.GroupMean(employees, "department", "salary_aed")
		rep.Charts = append(rep.Charts, domain.ChartSpec{
			ID:     "avg-salary-by-department",
			Kind:   domain.ChartHBar,
			Title:  "Average Salary by Department",
			Labels: analytics.ColumnTexts(byDept, "department"),
			Values: analytics.ColumnValues(byDept, "salary_aed"),
		})
	} else {
		rep.Unavailable = append(rep.Unavailable, "employees.salary_aed unusable: salary chart unavailable")
	}

	if risks, ok := snap.Frame(dataset.TableRisks); ok {
		byImpact := analytics.GroupCount(risks, "impact")
		spec := domain.ChartSpec{
			ID:     "risk-impact",
			Kind:   domain.ChartBar,
			Title:  "Risks by Impact",
			Labels: analytics.ColumnTexts(byImpact, "impact"),
			Values: analytics.ColumnValues(byImpact, analytics.CountColumn),
		}
		spec.Colors = make([]string, len(spec.Labels))
		for i, label := range spec.Labels {
			spec.Colors[i] = riskColors[label]
		}
		rep.Charts = append(rep.Charts, spec)
	} else {
		rep.Unavailable = append(rep.Unavailable, "risks table missing: risk chart unavailable")
	}

	g.logger.InfoContext(ctx, "report generated",
		slog.String("report_id", rep.ID),
		slog.Int("kpis", len(rep.KPIs)),
		slog.Int("charts", len(rep.Charts)),
		slog.Int("unavailable", len(rep.Unavailable)))

	return rep
}

// budgetVsActuals ranks the largest projects by budget and pairs budget with
// recorded actuals as grouped bars.
func (g *Generator) budgetVsActuals(projects, expenses, pos *dataset.Frame, topN int) (domain.ChartSpec, bool) {
	rows, zeroBudgets := analytics.FinancialHealth(projects, expenses, pos)
	if len(rows) == 0 {
		return domain.ChartSpec{}, false
	}
	if zeroBudgets > 0 {
		g.logger.Warn("projects with zero budget in report ranking", slog.Int("count", zeroBudgets))
	}

	ranked := analytics.TopN(analytics.HealthFrame(rows), topN, analytics.ColBudget, true)

	labels := make([]string, 0, ranked.Len())
	budgets := make([]float64, 0, ranked.Len())
	actuals := make([]float64, 0, ranked.Len())
	for row := 0; row < ranked.Len(); row++ {
		labels = append(labels, analytics.TruncateLabel(ranked.Text(row, analytics.ColProjectName), 25))
		budgets = append(budgets, ranked.Float(row, analytics.ColBudget))
		actuals = append(actuals, ranked.Float(row, analytics.ColActuals))
	}

	spec := domain.ChartSpec{
		ID:     "budget-vs-actuals",
		Kind:   domain.ChartBar,
		Title:  fmt.Sprintf("Top %d Projects: Budget vs Actuals", topN),
		Labels: labels,
		Series: []domain.Series{
			{Name: "Budget", Values: budgets},
			{Name: "Actuals", Values: actuals},
		},
	}
	if len(rows) > topN {
		spec.Truncated = true
		spec.Note = fmt.Sprintf("Top %d of %d projects by budget", topN, len(rows))
	}
	return spec, true
}

// budgetByIndustry joins projects onto clients and sums budget per client
// industry.
func (g *Generator) budgetByIndustry(snap *dataset.Snapshot, projects *dataset.Frame) (domain.ChartSpec, bool) {
	clients, ok := snap.Frame(dataset.TableClients)
	if !ok || !projects.HasColumn("client_id") || !clients.HasColumn("industry") {
		return domain.ChartSpec{}, false
	}

	joined := analytics.LeftJoin(projects, clients, "client_id")
	byIndustry := analytics.GroupSum(joined, "industry", "budget_aed")
	return domain.ChartSpec{
		ID:     "budget-by-industry",
		Kind:   domain.ChartPie,
		Title:  "Budget by Client Industry",
		Labels: analytics.ColumnTexts(byIndustry, "industry"),
		Values: analytics.ColumnValues(byIndustry, "budget_aed"),
		Hole:   0.4,
	}, true
}
