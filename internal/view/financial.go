package view

import (
	"pmocli/internal/analytics"
	"pmocli/internal/dataset"
	"pmocli/pkg/contracts/domain"
)

func buildFinancialInsights(c *Context) domain.View {
	var v domain.View

	projects, haveProjects := c.projects()
	expenses, haveExpenses := c.Snapshot.Frame(dataset.TableExpenses)
	pos, havePOs := c.Snapshot.Frame(dataset.TablePurchaseOrders)

	haveExpenseAmounts := haveExpenses && c.Snapshot.HasColumn(dataset.TableExpenses, "amount_aed")
	havePOAmounts := havePOs && c.Snapshot.HasColumn(dataset.TablePurchaseOrders, "amount_aed")
	haveBudget := haveProjects && c.Snapshot.HasColumn(dataset.TableProjects, "budget_aed")

	if !haveExpenses {
		unavailable(&v, "expenses table missing: expense KPIs and charts unavailable")
	} else if !haveExpenseAmounts {
		unavailable(&v, "expenses.amount_aed missing: expense KPIs unavailable")
	}
	if !havePOs {
		unavailable(&v, "purchase_orders table missing: PO KPIs and charts unavailable")
	} else if !havePOAmounts {
		unavailable(&v, "purchase_orders.amount_aed missing: PO KPIs unavailable")
	}
	if haveProjects && !haveBudget {
		unavailable(&v, "projects.budget_aed missing: utilization unavailable")
	}

	var totalExpenses, totalPOs float64
	if haveExpenseAmounts {
		totalExpenses = analytics.SumColumn(expenses, "amount_aed")
		v.Metrics = append(v.Metrics, metric("Total Expenses", analytics.FormatMoney(totalExpenses), totalExpenses))
	}
	if havePOAmounts {
		totalPOs = analytics.SumColumn(pos, "amount_aed")
		v.Metrics = append(v.Metrics, metric("PO Value", analytics.FormatMoney(totalPOs), totalPOs))
	}
	if haveBudget {
		totalBudget := analytics.SumColumn(projects, "budget_aed")
		v.Metrics = append(v.Metrics, metric("Combined Budget", analytics.FormatMoney(totalBudget), totalBudget))

		if haveExpenseAmounts || havePOAmounts {
			utilization := analytics.Ratio(totalExpenses+totalPOs, totalBudget)
			v.Metrics = append(v.Metrics, metric("Budget Utilization", analytics.FormatPercent(utilization), utilization))
		}
	}

	if haveExpenseAmounts {
		byCategory := analytics.GroupSum(expenses, "category", "amount_aed")
		v.Charts = append(v.Charts, barChart("expenses-by-category", "Expenses by Category", byCategory, "amount_aed"))

		monthly := analytics.MonthlyTotals(expenses, "date", "amount_aed")
		v.Charts = append(v.Charts, lineChart("monthly-expenses", "Monthly Expense Trend", monthly, "amount_aed"))
	}

	if havePOs {
		poStatus := analytics.GroupCount(pos, "status")
		v.Charts = append(v.Charts, pieChart("po-status", "Purchase Orders by Status", poStatus, analytics.CountColumn, 0.4))
	}

	if haveExpenseAmounts && haveProjects {
		byProject := analytics.GroupSum(expenses, "project_id", "amount_aed")
		spec := topNChart("top-projects-by-expenses", domain.ChartHBar, "Top Projects by Expenses",
			byProject, "amount_aed", 10, "recorded expenses")
		spec = relabel(spec, nameIndex(projects, "project_id", "project_name"), 25)
		v.Charts = append(v.Charts, spec)
	}

	return v
}
