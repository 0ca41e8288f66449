package domain

// FinancialHealthRow is the per-project financial position derived by the
// canonical composite: expense and purchase order totals aggregated by
// project, left-joined onto the project list, missing totals filled with
// zero, then variance and utilization derived.
type FinancialHealthRow struct {
	ProjectID      string  `json:"project_id"`
	ProjectName    string  `json:"project_name"`
	Budget         float64 `json:"budget_aed"`
	Expenses       float64 `json:"expenses_aed"`
	PurchaseOrders float64 `json:"purchase_orders_aed"`
	TotalActuals   float64 `json:"total_actuals_aed"`
	Variance       float64 `json:"budget_variance_aed"`
	Utilization    float64 `json:"budget_utilization_pct"`
}
