package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "pmocli/internal/errors"
	"pmocli/internal/files"
	"pmocli/internal/infrastructure"
	"pmocli/internal/middleware"
	"pmocli/internal/services"
	api "pmocli/pkg/contracts/api/v1"
)

// ReportHandler runs report generation and serves the workbook export.
type ReportHandler struct {
	service      *services.ReportService
	discovery    *files.Discovery
	validator    *middleware.ValidationMiddleware
	params       *middleware.QueryParamValidator
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewReportHandler creates a report handler.
func NewReportHandler(service *services.ReportService, discovery *files.Discovery, validator *middleware.ValidationMiddleware, logger *slog.Logger) *ReportHandler {
	errorHandler := apierrors.NewErrorHandler(logger, false)
	return &ReportHandler{
		service:      service,
		discovery:    discovery,
		validator:    validator,
		params:       middleware.NewQueryParamValidator(logger, errorHandler),
		logger:       logger.With(slog.String("handler", "report")),
		errorHandler: errorHandler,
	}
}

// RegisterRoutes registers the report routes.
func (h *ReportHandler) RegisterRoutes(r chi.Router) {
	r.Get("/report", h.RenderHTML)
	r.Post("/report", h.Generate)
	r.Get("/reports", h.ListArtifacts)
	r.Get("/export/xlsx", h.ExportXLSX)
}

// ListArtifacts handles GET /api/reports, listing past report runs on disk.
func (h *ReportHandler) ListArtifacts(w http.ResponseWriter, r *http.Request) {
	artifacts, err := h.discovery.ListArtifacts()
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.FileSystemError("list reports", err))
		return
	}
	respondData(w, r, map[string]interface{}{"reports": artifacts})
}

// RenderHTML handles GET /api/report, streaming the report document without
// writing artifacts. Optional query params: top (ranking size), title.
func (h *ReportHandler) RenderHTML(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	top, ok := h.params.ValidateInt(w, r, "top", 3, 50, 0)
	if !ok {
		return
	}
	opts := services.GenerateOptions{
		Title: r.URL.Query().Get("title"),
		TopN:  top,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.service.RenderHTML(ctx, w, opts); err != nil {
		w.Header().Del("Content-Type")
		h.errorHandler.HandleError(w, r, err)
		return
	}
}

// Generate handles POST /api/report. An empty body runs the report with
// defaults.
func (h *ReportHandler) Generate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.ReportGenerateRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.errorHandler.HandleError(w, r, apierrors.InvalidRequestWithError(err))
			return
		}
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	h.logger.InfoContext(ctx, "report run requested",
		slog.String("title", req.Title),
		slog.Bool("include_pdf", req.IncludePDF),
		slog.Bool("include_xlsx", req.IncludeXLSX))

	start := time.Now()
	result, err := h.service.Generate(ctx, services.GenerateOptions{
		Title:       req.Title,
		TopN:        req.TopN,
		IncludePDF:  req.IncludePDF,
		IncludeXLSX: req.IncludeXLSX,
	})
	if metrics := middleware.GetAppMetricsFromContext(ctx); metrics != nil {
		infrastructure.RecordReportRun(ctx, metrics, "html", time.Since(start), err)
	}
	if err != nil {
		if errors.Is(err, services.ErrReportWriteFailed) {
			h.errorHandler.HandleError(w, r, apierrors.ReportGenerationError(err))
			return
		}
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	respondData(w, r, result)
}

// ExportXLSX handles GET /api/export/xlsx, streaming the workbook without
// staging it on disk.
func (h *ReportHandler) ExportXLSX(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	filename := fmt.Sprintf("portfolio_%s.xlsx", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	n, err := h.service.ExportWorkbook(ctx, w)
	if err != nil {
		// Nothing written yet when the snapshot is unavailable.
		if n == 0 {
			w.Header().Del("Content-Disposition")
			w.Header().Del("Content-Type")
			h.errorHandler.HandleError(w, r, err)
			return
		}
		h.logger.ErrorContext(ctx, "workbook stream aborted mid-write",
			slog.Int64("bytes_written", n),
			slog.String("error", err.Error()))
		return
	}

	h.logger.InfoContext(ctx, "workbook exported",
		slog.String("filename", filename),
		slog.Int64("bytes", n))
}
