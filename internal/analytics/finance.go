package analytics

import (
	"pmocli/internal/dataset"
	"pmocli/pkg/contracts/domain"
)

// Derived column names produced by the financial health composite.
const (
	ColExpenses    = "expenses_aed"
	ColPOs         = "purchase_orders_aed"
	ColActuals     = "total_actuals_aed"
	ColVariance    = "budget_variance_aed"
	ColUtilization = "budget_utilization_pct"
	ColBudget      = "budget_aed"
	ColProjectID   = "project_id"
	ColProjectName = "project_name"
)

// FinancialHealth derives the per-project financial position. The composite
// runs in a fixed order: aggregate the children, left-join onto projects,
// fill missing totals with zero, then derive the ratios. Expenses or
// purchase orders may be nil; their totals are then zero for every project.
//
// zeroBudgets reports how many utilization ratios degraded to zero because
// the project budget was zero.
func FinancialHealth(projects, expenses, purchaseOrders *dataset.Frame) (rows []domain.FinancialHealthRow, zeroBudgets int) {
	if projects == nil {
		return nil, 0
	}

	joined := projects
	if expenses != nil {
		expTotals := Rename(GroupSum(expenses, ColProjectID, "amount_aed"), map[string]string{"amount_aed": ColExpenses})
		joined = LeftJoin(joined, expTotals, ColProjectID)
	}
	if purchaseOrders != nil {
		poTotals := Rename(GroupSum(purchaseOrders, ColProjectID, "amount_aed"), map[string]string{"amount_aed": ColPOs})
		joined = LeftJoin(joined, poTotals, ColProjectID)
	}

	rows = make([]domain.FinancialHealthRow, 0, joined.Len())
	for row := 0; row < joined.Len(); row++ {
		r := domain.FinancialHealthRow{
			ProjectID:      joined.Text(row, ColProjectID),
			ProjectName:    joined.Text(row, ColProjectName),
			Budget:         joined.Float(row, ColBudget),
			Expenses:       joined.Float(row, ColExpenses),
			PurchaseOrders: joined.Float(row, ColPOs),
		}
		r.TotalActuals = r.Expenses + r.PurchaseOrders
		r.Variance = r.Budget - r.TotalActuals
		if r.Budget == 0 {
			zeroBudgets++
		}
		r.Utilization = Ratio(r.TotalActuals, r.Budget)
		rows = append(rows, r)
	}
	return rows, zeroBudgets
}

// HealthFrame projects financial health rows back into a frame, for reuse by
// the ranking and export helpers.
func HealthFrame(rows []domain.FinancialHealthRow) *dataset.Frame {
	f := dataset.NewFrame("financial_health", []string{
		ColProjectID, ColProjectName, ColBudget, ColExpenses, ColPOs, ColActuals, ColVariance, ColUtilization,
	})
	for _, r := range rows {
		f.AddRow(
			dataset.StringValue(r.ProjectID),
			dataset.StringValue(r.ProjectName),
			dataset.NumberValue(r.Budget),
			dataset.NumberValue(r.Expenses),
			dataset.NumberValue(r.PurchaseOrders),
			dataset.NumberValue(r.TotalActuals),
			dataset.NumberValue(r.Variance),
			dataset.NumberValue(r.Utilization),
		)
	}
	return f
}
