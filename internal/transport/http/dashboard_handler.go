package http

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	apierrors "pmocli/internal/errors"
	"pmocli/internal/infrastructure"
	"pmocli/internal/middleware"
	"pmocli/internal/services"
	api "pmocli/pkg/contracts/api/v1"
	"pmocli/pkg/contracts/domain"
)

// DashboardHandler serves the view catalog, computed views, filter options,
// and the snapshot load report.
type DashboardHandler struct {
	service      *services.DashboardService
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewDashboardHandler creates a dashboard handler.
func NewDashboardHandler(service *services.DashboardService, logger *slog.Logger) *DashboardHandler {
	return &DashboardHandler{
		service:      service,
		logger:       logger.With(slog.String("handler", "dashboard")),
		errorHandler: apierrors.NewErrorHandler(logger, false),
	}
}

// RegisterRoutes registers the dashboard routes.
func (h *DashboardHandler) RegisterRoutes(r chi.Router) {
	r.Get("/views", h.ListViews)
	r.Get("/views/{slug}", h.GetView)
	r.Get("/filters", h.FilterOptions)
	r.Get("/snapshot", h.SnapshotReport)
}

// ListViews handles GET /api/views
func (h *DashboardHandler) ListViews(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.service.ListViews(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	respondData(w, r, map[string]interface{}{"views": summaries})
}

// GetView handles GET /api/views/{slug}. Filter dimensions arrive as
// repeated query parameters: ?type=Fitout&type=Consultancy&status=Completed.
func (h *DashboardHandler) GetView(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	slug := chi.URLParam(r, "slug")
	filters := parseFilters(r)

	start := time.Now()
	v, err := h.service.GetView(ctx, slug, filters)
	if metrics := middleware.GetAppMetricsFromContext(ctx); metrics != nil {
		infrastructure.RecordViewBuild(ctx, metrics, slug, time.Since(start), err)
	}
	if err != nil {
		if errors.Is(err, services.ErrViewNotFound) {
			h.errorHandler.HandleError(w, r, apierrors.ViewNotFoundError(slug))
			return
		}
		h.errorHandler.HandleError(w, r, err)
		return
	}
	respondData(w, r, v)
}

// FilterOptions handles GET /api/filters
func (h *DashboardHandler) FilterOptions(w http.ResponseWriter, r *http.Request) {
	opts, err := h.service.FilterOptions(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	respondData(w, r, opts)
}

// SnapshotReport handles GET /api/snapshot
func (h *DashboardHandler) SnapshotReport(w http.ResponseWriter, r *http.Request) {
	rep, err := h.service.SnapshotReport(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	respondData(w, r, rep)
}

func parseFilters(r *http.Request) domain.FilterSet {
	q := r.URL.Query()
	return api.ViewQuery{
		Types:      q["type"],
		Statuses:   q["status"],
		Priorities: q["priority"],
	}.FilterSet()
}
