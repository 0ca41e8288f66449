package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"sort"

	"github.com/joho/godotenv"

	"pmocli/internal/analytics"
	"pmocli/internal/config"
	"pmocli/internal/dataset"
	"pmocli/internal/validation"
	"pmocli/pkg/contracts/domain"
)

// digest is the full console EDA payload; --json emits it verbatim.
type digest struct {
	Tables       []tableDigest       `json:"tables"`
	Conditions   []domain.Condition  `json:"conditions,omitempty"`
	OverSpenders []spendDigest       `json:"over_spenders,omitempty"`
	UnderSpend   []spendDigest       `json:"largest_remaining_budgets,omitempty"`
	Workforce    []countDigest       `json:"workforce_by_department,omitempty"`
	RiskHotSpots []countDigest       `json:"open_risks_by_impact,omitempty"`
	Timesheets   *timesheetDigest    `json:"timesheets,omitempty"`
	Notes        []string            `json:"notes,omitempty"`
}

type tableDigest struct {
	Table       string `json:"table"`
	File        string `json:"file"`
	Loaded      bool   `json:"loaded"`
	Rows        int    `json:"rows"`
	Columns     int    `json:"columns"`
	ParseErrors int    `json:"parse_errors"`
}

type spendDigest struct {
	ProjectID   string  `json:"project_id"`
	ProjectName string  `json:"project_name"`
	Budget      float64 `json:"budget_aed"`
	Actuals     float64 `json:"total_actuals_aed"`
	Variance    float64 `json:"budget_variance_aed"`
	Utilization float64 `json:"budget_utilization_pct"`
}

type countDigest struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

type timesheetDigest struct {
	Entries      int     `json:"entries"`
	TotalHours   float64 `json:"total_hours"`
	PendingCount int     `json:"pending_approval"`
}

func main() {
	dataDir := flag.String("data", "", "extract directory (defaults to configured data dir)")
	asJSON := flag.Bool("json", false, "emit the digest as JSON instead of aligned text")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	paths := config.NewPaths(cfg.Paths)
	if *dataDir != "" {
		paths.DataDir = *dataDir
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	if err := validation.NewExtractValidator(logger).ValidateDataDir(paths.DataDir, dataset.ExtendedRegistry()); err != nil {
		slog.Error("Extract directory rejected", "error", err)
		os.Exit(1)
	}

	store := dataset.NewStore(dataset.NewLoader(paths.DataDir, dataset.ExtendedRegistry(), logger), logger)
	snap, err := store.Load(context.Background())
	if err != nil {
		slog.Error("Failed to load extracts", "error", err)
		os.Exit(1)
	}

	d := buildDigest(snap)

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(d); err != nil {
			slog.Error("Failed to encode digest", "error", err)
			os.Exit(1)
		}
		return
	}

	printDigest(d)
}

func buildDigest(snap *dataset.Snapshot) digest {
	rep := snap.Report()

	var d digest
	for _, t := range rep.Tables {
		d.Tables = append(d.Tables, tableDigest{
			Table:       t.Table,
			File:        t.File,
			Loaded:      t.Loaded,
			Rows:        t.Rows,
			Columns:     t.Columns,
			ParseErrors: t.ParseErrors,
		})
	}
	d.Conditions = rep.Conditions

	projects, _ := snap.Frame(dataset.TableProjects)
	expenses, _ := snap.Frame(dataset.TableExpenses)
	purchaseOrders, _ := snap.Frame(dataset.TablePurchaseOrders)
	if projects != nil && projects.HasColumn("budget_aed") {
		rows, zeroBudgets := analytics.FinancialHealth(projects, expenses, purchaseOrders)
		d.OverSpenders, d.UnderSpend = spendRankings(rows)
		if zeroBudgets > 0 {
			d.Notes = append(d.Notes, fmt.Sprintf("%d projects carry a zero budget; utilization reported as 0", zeroBudgets))
		}
	} else {
		d.Notes = append(d.Notes, "projects table or budget_aed column missing: financial health skipped")
	}

	if employees, ok := snap.Frame(dataset.TableEmployees); ok {
		d.Workforce = groupCounts(analytics.GroupCount(employees, "department"))
	} else {
		d.Notes = append(d.Notes, "employees table missing: workforce distribution skipped")
	}

	if risks, ok := snap.Frame(dataset.TableRisks); ok {
		open := risks.Filter(func(row int) bool {
			return risks.Text(row, "status") == "Open"
		})
		d.RiskHotSpots = groupCounts(analytics.GroupCount(open, "impact"))
	} else {
		d.Notes = append(d.Notes, "risks table missing: risk hot spots skipped")
	}

	if ts, ok := snap.Frame(dataset.TableTimesheets); ok {
		td := &timesheetDigest{
			Entries:    ts.Len(),
			TotalHours: analytics.SumColumn(ts, "hours"),
		}
		if ts.HasColumn("approval_status") {
			td.PendingCount = analytics.CountWhere(ts, "approval_status", "Pending")
		} else {
			d.Notes = append(d.Notes, "timesheets.approval_status column absent: approval backlog unavailable")
		}
		d.Timesheets = td
	}

	return d
}

// spendRankings splits the financial health rows into the five largest
// overruns and the five largest remaining budgets.
func spendRankings(rows []domain.FinancialHealthRow) (over, under []spendDigest) {
	byVariance := make([]domain.FinancialHealthRow, len(rows))
	copy(byVariance, rows)
	sort.SliceStable(byVariance, func(i, j int) bool {
		return byVariance[i].Variance < byVariance[j].Variance
	})

	for _, r := range byVariance {
		if r.Variance < 0 && len(over) < 5 {
			over = append(over, toSpendDigest(r))
		}
	}
	for i := len(byVariance) - 1; i >= 0 && len(under) < 5; i-- {
		if byVariance[i].Variance > 0 {
			under = append(under, toSpendDigest(byVariance[i]))
		}
	}
	return over, under
}

func toSpendDigest(r domain.FinancialHealthRow) spendDigest {
	return spendDigest{
		ProjectID:   r.ProjectID,
		ProjectName: r.ProjectName,
		Budget:      r.Budget,
		Actuals:     r.TotalActuals,
		Variance:    r.Variance,
		Utilization: r.Utilization,
	}
}

func groupCounts(f *dataset.Frame) []countDigest {
	keyCol := f.Columns[0]
	out := make([]countDigest, 0, f.Len())
	for row := 0; row < f.Len(); row++ {
		out = append(out, countDigest{
			Key:   f.Text(row, keyCol),
			Count: int(f.Float(row, analytics.CountColumn)),
		})
	}
	return out
}

func printDigest(d digest) {
	fmt.Println("=== PORTFOLIO EXTRACTS ===")
	fmt.Printf("%-18s %-24s %-7s %6s %8s %12s\n", "Table", "File", "Loaded", "Rows", "Columns", "ParseErrors")
	for _, t := range d.Tables {
		fmt.Printf("%-18s %-24s %-7v %6d %8d %12d\n", t.Table, t.File, t.Loaded, t.Rows, t.Columns, t.ParseErrors)
	}
	if len(d.Conditions) > 0 {
		fmt.Printf("\n%d data conditions recorded:\n", len(d.Conditions))
		for _, c := range d.Conditions {
			fmt.Printf("  [%s] table=%s column=%s count=%d %s\n", c.Kind, c.Table, c.Column, c.Count, c.Detail)
		}
	}

	if len(d.OverSpenders) > 0 {
		fmt.Println("\n=== TOP OVERRUNS (actuals above budget) ===")
		printSpend(d.OverSpenders)
	}
	if len(d.UnderSpend) > 0 {
		fmt.Println("\n=== LARGEST REMAINING BUDGETS ===")
		printSpend(d.UnderSpend)
	}

	if len(d.Workforce) > 0 {
		fmt.Println("\n=== WORKFORCE BY DEPARTMENT ===")
		for _, c := range d.Workforce {
			fmt.Printf("%-24s %6d\n", c.Key, c.Count)
		}
	}

	if len(d.RiskHotSpots) > 0 {
		fmt.Println("\n=== OPEN RISKS BY IMPACT ===")
		for _, c := range d.RiskHotSpots {
			fmt.Printf("%-24s %6d\n", c.Key, c.Count)
		}
	}

	if d.Timesheets != nil {
		fmt.Println("\n=== TIMESHEETS ===")
		fmt.Printf("Entries: %d  Total hours: %.1f  Pending approval: %d\n",
			d.Timesheets.Entries, d.Timesheets.TotalHours, d.Timesheets.PendingCount)
	}

	for _, note := range d.Notes {
		fmt.Printf("\nNote: %s\n", note)
	}
}

func printSpend(rows []spendDigest) {
	fmt.Printf("%-10s %-28s %14s %14s %14s %8s\n", "Project", "Name", "Budget", "Actuals", "Variance", "Util%")
	for _, r := range rows {
		fmt.Printf("%-10s %-28s %14s %14s %14s %7.1f%%\n",
			r.ProjectID, analytics.TruncateLabel(r.ProjectName, 28),
			analytics.FormatMoney(r.Budget), analytics.FormatMoney(r.Actuals),
			analytics.FormatMoney(r.Variance), r.Utilization)
	}
}
