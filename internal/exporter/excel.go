package exporter

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"pmocli/internal/analytics"
	"pmocli/internal/dataset"
)

// Sheet names of the portfolio workbook, in tab order.
const (
	SheetPortfolio  = "Portfolio"
	SheetFinancials = "Financials"
	SheetResources  = "Resources"
	SheetRisks      = "Risks"
	SheetVendors    = "Vendors"
)

// Workbook builds the portfolio XLSX workbook from a snapshot. Sheets for
// missing tables are written header-only so the workbook shape is stable.
type Workbook struct {
	logger *slog.Logger
}

// NewWorkbook creates a workbook builder.
func NewWorkbook(logger *slog.Logger) *Workbook {
	return &Workbook{logger: logger}
}

type sheetStyles struct {
	header int
	money  int
}

type sheetContent struct {
	headers   []string
	rows      [][]interface{}
	moneyCols []int
}

// Build assembles the five-sheet workbook. The caller owns the returned file
// and must Close it.
func (w *Workbook) Build(snap *dataset.Snapshot) (*excelize.File, error) {
	f := excelize.NewFile()

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}
	moneyStyle, err := f.NewStyle(&excelize.Style{NumFmt: 4}) // #,##0.00
	if err != nil {
		return nil, fmt.Errorf("create money style: %w", err)
	}
	st := sheetStyles{header: headerStyle, money: moneyStyle}

	sheets := []struct {
		name    string
		content sheetContent
	}{
		{SheetPortfolio, w.portfolioContent(snap)},
		{SheetFinancials, w.financialContent(snap)},
		{SheetResources, w.resourceContent(snap)},
		{SheetRisks, w.riskContent(snap)},
		{SheetVendors, w.vendorContent(snap)},
	}
	for _, s := range sheets {
		if err := writeSheet(f, s.name, s.content, st); err != nil {
			return nil, fmt.Errorf("write sheet %s: %w", s.name, err)
		}
		if len(s.content.rows) == 0 {
			w.logger.Warn("workbook sheet written header-only", slog.String("sheet", s.name))
		}
	}

	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("drop default sheet: %w", err)
	}
	idx, err := f.GetSheetIndex(SheetPortfolio)
	if err != nil {
		return nil, fmt.Errorf("locate first sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	return f, nil
}

// Write builds the workbook and streams it to out.
func (w *Workbook) Write(snap *dataset.Snapshot, out io.Writer) (int64, error) {
	f, err := w.Build(snap)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	return f.WriteTo(out)
}

func writeSheet(f *excelize.File, name string, content sheetContent, st sheetStyles) error {
	if _, err := f.NewSheet(name); err != nil {
		return err
	}
	headers := make([]interface{}, len(content.headers))
	for i, h := range content.headers {
		headers[i] = h
	}
	if err := f.SetSheetRow(name, "A1", &headers); err != nil {
		return err
	}
	lastHeader, err := excelize.CoordinatesToCellName(len(content.headers), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(name, "A1", lastHeader, st.header); err != nil {
		return err
	}

	for i := range content.rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(name, cell, &content.rows[i]); err != nil {
			return err
		}
	}
	if len(content.rows) == 0 {
		return nil
	}

	for _, col := range content.moneyCols {
		top, err := excelize.CoordinatesToCellName(col, 2)
		if err != nil {
			return err
		}
		bottom, err := excelize.CoordinatesToCellName(col, len(content.rows)+1)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(name, top, bottom, st.money); err != nil {
			return err
		}
	}
	return nil
}

// frameContent lifts frame columns into sheet rows in frame order.
func frameContent(f *dataset.Frame, headers []string, cols []string, moneyCols []int) sheetContent {
	content := sheetContent{headers: headers, moneyCols: moneyCols}
	for row := 0; row < f.Len(); row++ {
		cells := make([]interface{}, len(cols))
		for i, c := range cols {
			cells[i] = cellValue(f.Value(row, c))
		}
		content.rows = append(content.rows, cells)
	}
	return content
}

func (w *Workbook) portfolioContent(snap *dataset.Snapshot) sheetContent {
	headers := []string{"Project ID", "Project", "Type", "Status", "Budget (AED)", "Completion %", "Location"}
	projects, ok := snap.Frame(dataset.TableProjects)
	if !ok {
		return sheetContent{headers: headers}
	}
	return frameContent(projects, headers,
		[]string{"project_id", "project_name", "project_type", "status", "budget_aed", "completion_percentage", "location"},
		[]int{5})
}

func (w *Workbook) financialContent(snap *dataset.Snapshot) sheetContent {
	headers := []string{"Project ID", "Project", "Budget (AED)", "Expenses (AED)", "Purchase Orders (AED)", "Total Actuals (AED)", "Variance (AED)", "Utilization %"}
	projects, ok := snap.Frame(dataset.TableProjects)
	if !ok {
		return sheetContent{headers: headers}
	}
	expenses, _ := snap.Frame(dataset.TableExpenses)
	pos, _ := snap.Frame(dataset.TablePurchaseOrders)

	rows, zeroBudgets := analytics.FinancialHealth(projects, expenses, pos)
	if zeroBudgets > 0 {
		w.logger.Warn("zero-budget projects in financial sheet", slog.Int("count", zeroBudgets))
	}
	health := analytics.HealthFrame(rows)
	return frameContent(health, headers,
		[]string{
			analytics.ColProjectID, analytics.ColProjectName, analytics.ColBudget,
			analytics.ColExpenses, analytics.ColPOs, analytics.ColActuals,
			analytics.ColVariance, analytics.ColUtilization,
		},
		[]int{3, 4, 5, 6, 7})
}

func (w *Workbook) resourceContent(snap *dataset.Snapshot) sheetContent {
	headers := []string{"Employee ID", "Name", "Department", "Nationality", "Salary (AED)", "Joined"}
	employees, ok := snap.Frame(dataset.TableEmployees)
	if !ok {
		return sheetContent{headers: headers}
	}
	return frameContent(employees, headers,
		[]string{"employee_id", "employee_name", "department", "nationality", "salary_aed", "joining_date"},
		[]int{5})
}

func (w *Workbook) riskContent(snap *dataset.Snapshot) sheetContent {
	headers := []string{"Risk ID", "Project", "Impact", "Status", "Identified"}
	risks, ok := snap.Frame(dataset.TableRisks)
	if !ok {
		return sheetContent{headers: headers}
	}
	// Swap project ids for names when the projects table is around.
	frame := risks
	nameCol := "project_id"
	if projects, ok := snap.Frame(dataset.TableProjects); ok && projects.HasColumn("project_name") {
		frame = analytics.LeftJoin(risks, projects, "project_id")
		nameCol = "project_name"
	}
	return frameContent(frame, headers,
		[]string{"risk_id", nameCol, "impact", "status", "identified_date"},
		nil)
}

func (w *Workbook) vendorContent(snap *dataset.Snapshot) sheetContent {
	headers := []string{"Vendor ID", "Vendor", "Category", "Location", "PO Value (AED)"}
	vendors, ok := snap.Frame(dataset.TableVendors)
	if !ok {
		return sheetContent{headers: headers}
	}
	frame := vendors
	if pos, ok := snap.Frame(dataset.TablePurchaseOrders); ok && pos.HasColumn("amount_aed") {
		totals := analytics.Rename(
			analytics.GroupSum(pos, "vendor_id", "amount_aed"),
			map[string]string{"amount_aed": "po_value_aed"})
		frame = analytics.LeftJoin(vendors, totals, "vendor_id")
	}
	return frameContent(frame, headers,
		[]string{"vendor_id", "vendor_name", "category", "location", "po_value_aed"},
		[]int{5})
}
