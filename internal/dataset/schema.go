package dataset

// Canonical table names.
const (
	TableProjects       = "projects"
	TableClients        = "clients"
	TableEmployees      = "employees"
	TableTasks          = "tasks"
	TableExpenses       = "expenses"
	TableTimesheets     = "timesheets"
	TableVendors        = "vendors"
	TablePurchaseOrders = "purchase_orders"
	TableRisks          = "risks"
	TableMilestones     = "milestones"
	TableAssignments    = "assignments"
)

// ColumnType is the semantic class the normalizer applies to a column.
type ColumnType uint8

const (
	// ColString is the default for unregistered columns.
	ColString ColumnType = iota
	// ColDate parses with the known layouts; failures stay absent.
	ColDate
	// ColMoney parses as float; absent coerces to zero.
	ColMoney
	// ColQuantity behaves like money for coercion purposes.
	ColQuantity
	// ColPercent is a quantity additionally floored at zero.
	ColPercent
)

// TableSpec describes one registered table: its source file, its column
// typing, and the money columns the table's KPIs cannot live without.
type TableSpec struct {
	Name     string
	File     string
	Types    map[string]ColumnType
	Required []string
}

// TypeOf returns the semantic type of a column, defaulting to string.
func (s TableSpec) TypeOf(col string) ColumnType {
	if t, ok := s.Types[col]; ok {
		return t
	}
	return ColString
}

// Registry returns the canonical ten-table schema the dashboard loads.
// Specs are data, so callers can extend the set they hand to a Loader.
func Registry() []TableSpec {
	return []TableSpec{
		{
			Name: TableProjects,
			File: "projects.csv",
			Types: map[string]ColumnType{
				"start_date":            ColDate,
				"end_date":              ColDate,
				"budget_aed":            ColMoney,
				"completion_percentage": ColPercent,
			},
			Required: []string{"budget_aed"},
		},
		{
			Name:  TableClients,
			File:  "clients.csv",
			Types: map[string]ColumnType{},
		},
		{
			Name: TableEmployees,
			File: "employees.csv",
			Types: map[string]ColumnType{
				"joining_date": ColDate,
				"salary_aed":   ColMoney,
			},
			Required: []string{"salary_aed"},
		},
		{
			Name: TableTasks,
			File: "tasks.csv",
			Types: map[string]ColumnType{
				"start_date":      ColDate,
				"end_date":        ColDate,
				"estimated_hours": ColQuantity,
			},
		},
		{
			Name: TableExpenses,
			File: "expenses.csv",
			Types: map[string]ColumnType{
				"date":       ColDate,
				"amount_aed": ColMoney,
			},
			Required: []string{"amount_aed"},
		},
		{
			Name: TableTimesheets,
			File: "timesheets.csv",
			Types: map[string]ColumnType{
				"date":  ColDate,
				"hours": ColQuantity,
			},
		},
		{
			Name:  TableVendors,
			File:  "vendors.csv",
			Types: map[string]ColumnType{},
		},
		{
			Name: TablePurchaseOrders,
			File: "purchase_orders.csv",
			Types: map[string]ColumnType{
				"issue_date": ColDate,
				"amount_aed": ColMoney,
			},
			Required: []string{"amount_aed"},
		},
		{
			Name: TableRisks,
			File: "risks.csv",
			Types: map[string]ColumnType{
				"identified_date": ColDate,
			},
		},
		{
			Name: TableMilestones,
			File: "project_milestones.csv",
			Types: map[string]ColumnType{
				"planned_start": ColDate,
				"planned_end":   ColDate,
			},
		},
	}
}

// ExtendedRegistry returns the canonical tables plus the assignments extract
// read by the insights CLI.
func ExtendedRegistry() []TableSpec {
	return append(Registry(), TableSpec{
		Name: TableAssignments,
		File: "assignments.csv",
		Types: map[string]ColumnType{
			"start_date":            ColDate,
			"end_date":              ColDate,
			"allocation_percentage": ColPercent,
		},
	})
}
