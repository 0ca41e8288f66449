package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"pmocli/internal/config"
	"pmocli/internal/dataset"
	"pmocli/internal/exporter"
	"pmocli/internal/report"
	"pmocli/pkg/contracts/domain"
)

// ReportService runs report generation: compute the document model, write
// the HTML rendition, and optionally the PDF and XLSX renditions next to it.
type ReportService struct {
	store     *dataset.Store
	generator *report.Generator
	pdf       *report.PDFRenderer
	workbook  *exporter.Workbook
	paths     *config.Paths
	logger    *slog.Logger
}

// NewReportService creates a report service.
func NewReportService(store *dataset.Store, paths *config.Paths, logger *slog.Logger) *ReportService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReportService{
		store:     store,
		generator: report.NewGenerator(logger),
		pdf:       report.NewPDFRenderer(logger),
		workbook:  exporter.NewWorkbook(logger),
		paths:     paths,
		logger:    logger.With(slog.String("component", "report_service")),
	}
}

// GenerateOptions tune one report run.
type GenerateOptions struct {
	Title       string
	TopN        int
	IncludePDF  bool
	IncludeXLSX bool
}

// Generate runs a full report generation. The HTML rendition is mandatory;
// failed optional renditions degrade into warnings on the run result.
func (s *ReportService) Generate(ctx context.Context, opts GenerateOptions) (*domain.ReportRunResult, error) {
	snap, err := s.store.Snapshot()
	if err != nil {
		s.logger.WarnContext(ctx, "snapshot unavailable", slog.String("error", err.Error()))
		return nil, ErrSnapshotUnavailable
	}

	rep := s.generator.Generate(ctx, snap, report.Options{Title: opts.Title, TopN: opts.TopN})

	if err := os.MkdirAll(s.paths.ReportsDir, 0755); err != nil {
		return nil, fmt.Errorf("%w: create reports dir: %v", ErrReportWriteFailed, err)
	}

	htmlPath := s.paths.GetReportPath(report.FileName(rep.GeneratedAt))
	if err := s.writeHTML(rep, htmlPath); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReportWriteFailed, err)
	}

	result := &domain.ReportRunResult{
		ReportID:    rep.ID,
		GeneratedAt: rep.GeneratedAt,
		Artifacts:   []domain.ReportArtifact{artifact(domain.ReportFormatHTML, htmlPath)},
		Warnings:    append([]string(nil), rep.Unavailable...),
	}

	if opts.IncludeXLSX {
		xlsxPath := replaceExt(htmlPath, ".xlsx")
		if err := s.writeXLSX(snap, xlsxPath); err != nil {
			s.logger.ErrorContext(ctx, "xlsx rendition failed",
				slog.String("path", xlsxPath), slog.String("error", err.Error()))
			result.Warnings = append(result.Warnings, "xlsx rendition unavailable: "+err.Error())
		} else {
			result.Artifacts = append(result.Artifacts, artifact(domain.ReportFormatExcel, xlsxPath))
		}
	}

	if opts.IncludePDF {
		pdfPath := replaceExt(htmlPath, ".pdf")
		if buf, err := s.pdf.Render(ctx, htmlPath); err != nil {
			// Chrome is optional at runtime; the run still succeeds.
			s.logger.ErrorContext(ctx, "pdf rendition failed",
				slog.String("path", pdfPath), slog.String("error", err.Error()))
			result.Warnings = append(result.Warnings, "pdf rendition unavailable: "+err.Error())
		} else if err := os.WriteFile(pdfPath, buf, 0644); err != nil {
			s.logger.ErrorContext(ctx, "pdf write failed",
				slog.String("path", pdfPath), slog.String("error", err.Error()))
			result.Warnings = append(result.Warnings, "pdf rendition unavailable: "+err.Error())
		} else {
			result.Artifacts = append(result.Artifacts, artifact(domain.ReportFormatPDF, pdfPath))
		}
	}

	s.logger.InfoContext(ctx, "report run complete",
		slog.String("report_id", rep.ID),
		slog.Int("artifacts", len(result.Artifacts)),
		slog.Int("warnings", len(result.Warnings)))
	return result, nil
}

// RenderHTML computes the report document and streams the HTML rendition
// without touching the reports directory. Serves the on-demand report
// endpoint.
func (s *ReportService) RenderHTML(ctx context.Context, w io.Writer, opts GenerateOptions) error {
	snap, err := s.store.Snapshot()
	if err != nil {
		s.logger.WarnContext(ctx, "snapshot unavailable", slog.String("error", err.Error()))
		return ErrSnapshotUnavailable
	}
	rep := s.generator.Generate(ctx, snap, report.Options{Title: opts.Title, TopN: opts.TopN})
	return s.generator.WriteHTML(rep, w)
}

// ExportWorkbook streams the portfolio XLSX workbook, for the download
// endpoint.
func (s *ReportService) ExportWorkbook(ctx context.Context, w io.Writer) (int64, error) {
	snap, err := s.store.Snapshot()
	if err != nil {
		s.logger.WarnContext(ctx, "snapshot unavailable", slog.String("error", err.Error()))
		return 0, ErrSnapshotUnavailable
	}
	return s.workbook.Write(snap, w)
}

func (s *ReportService) writeHTML(rep *domain.Report, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report file: %v", err)
	}
	if err := s.generator.WriteHTML(rep, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (s *ReportService) writeXLSX(snap *dataset.Snapshot, path string) error {
	wb, err := s.workbook.Build(snap)
	if err != nil {
		return err
	}
	defer wb.Close()
	return wb.SaveAs(path)
}

func artifact(format domain.ReportFormat, path string) domain.ReportArtifact {
	a := domain.ReportArtifact{Format: format, Path: path}
	if info, err := os.Stat(path); err == nil {
		a.Size = info.Size()
	}
	return a
}

func replaceExt(path, ext string) string {
	return strings.TrimSuffix(path, ".html") + ext
}
