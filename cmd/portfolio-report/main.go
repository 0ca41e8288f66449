package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"pmocli/internal/analytics"
	"pmocli/internal/config"
	"pmocli/internal/dataset"
	"pmocli/internal/exporter"
	"pmocli/internal/services"
	"pmocli/internal/validation"
)

func main() {
	dataDir := flag.String("data", "", "extract directory (defaults to configured data dir)")
	outputDir := flag.String("out", "", "output directory for the report (defaults to configured reports dir)")
	title := flag.String("title", "", "report title (defaults to configured title)")
	topN := flag.Int("top", 0, "ranking size for top-N charts (defaults to configured value)")
	includePDF := flag.Bool("pdf", false, "also print the report to PDF via headless Chrome")
	includeXLSX := flag.Bool("xlsx", false, "also write the XLSX workbook rendition")
	includeCSV := flag.Bool("csv", false, "also write the financial health table as CSV")
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
	if *outputDir != "" {
		paths.ReportsDir = *outputDir
	}
	if *title == "" {
		*title = cfg.Report.Title
	}
	if *topN == 0 {
		*topN = cfg.Report.TopN
	}

	logger := slog.Default()
	ctx := context.Background()

	if err := validation.NewExtractValidator(logger).ValidateDataDir(paths.DataDir, dataset.Registry()); err != nil {
		slog.Error("Extract directory rejected", "error", err)
		os.Exit(1)
	}

	slog.Info("Loading portfolio extracts", "data_dir", paths.DataDir)
	store := dataset.NewStore(dataset.NewLoader(paths.DataDir, dataset.Registry(), logger), logger)
	snap, err := store.Load(ctx)
	if err != nil {
		slog.Error("Failed to load extracts", "error", err)
		os.Exit(1)
	}

	rep := snap.Report()
	loaded := 0
	for _, t := range rep.Tables {
		if t.Loaded {
			loaded++
		}
	}
	slog.Info("Extracts loaded",
		"tables", fmt.Sprintf("%d/%d", loaded, len(rep.Tables)),
		"conditions", len(rep.Conditions))

	svc := services.NewReportService(store, paths, logger)
	result, err := svc.Generate(ctx, services.GenerateOptions{
		Title:       *title,
		TopN:        *topN,
		IncludePDF:  *includePDF,
		IncludeXLSX: *includeXLSX,
	})
	if err != nil {
		slog.Error("Report generation failed", "error", err)
		os.Exit(1)
	}

	fmt.Println("\n=== PORTFOLIO REPORT ===")
	for _, a := range result.Artifacts {
		fmt.Printf("%-5s  %9d bytes  %s\n", a.Format, a.Size, a.Path)
	}
	if *includeCSV {
		if path, err := writeHealthCSV(snap, paths); err != nil {
			slog.Error("CSV rendition failed", "error", err)
		} else if path != "" {
			if info, err := os.Stat(path); err == nil {
				fmt.Printf("%-5s  %9d bytes  %s\n", "csv", info.Size(), path)
			}
		}
	}
	if len(result.Warnings) > 0 {
		fmt.Println("\nWarnings:")
		for _, wmsg := range result.Warnings {
			fmt.Printf("  - %s\n", wmsg)
		}
	}

	slog.Info("Report run complete",
		"report_id", result.ReportID,
		"artifacts", len(result.Artifacts),
		"warnings", len(result.Warnings))
}

// writeHealthCSV exports the per-project financial health table next to the
// report. Returns an empty path when the projects table never loaded.
func writeHealthCSV(snap *dataset.Snapshot, paths *config.Paths) (string, error) {
	projects, ok := snap.Frame(dataset.TableProjects)
	if !ok {
		slog.Warn("CSV rendition skipped: projects table absent")
		return "", nil
	}
	expenses, _ := snap.Frame(dataset.TableExpenses)
	purchaseOrders, _ := snap.Frame(dataset.TablePurchaseOrders)
	rows, _ := analytics.FinancialHealth(projects, expenses, purchaseOrders)

	const name = "financial_health.csv"
	if err := exporter.NewCSVWriter(paths).WriteFrame(name, analytics.HealthFrame(rows)); err != nil {
		return "", err
	}
	return paths.GetReportPath(name), nil
}
