package services

import (
	"context"
	"log/slog"

	"pmocli/internal/dataset"
	"pmocli/internal/view"
	"pmocli/pkg/contracts/domain"
)

// DashboardService serves the view catalog and computed view payloads. All
// reads go through the load-once snapshot store; filters recompute views on
// every call.
type DashboardService struct {
	store    *dataset.Store
	registry *view.Registry
	logger   *slog.Logger
}

// NewDashboardService creates a dashboard service.
func NewDashboardService(store *dataset.Store, registry *view.Registry, logger *slog.Logger) *DashboardService {
	if logger == nil {
		logger = slog.Default()
	}
	return &DashboardService{
		store:    store,
		registry: registry,
		logger:   logger.With(slog.String("component", "dashboard_service")),
	}
}

func (s *DashboardService) snapshot(ctx context.Context) (*dataset.Snapshot, error) {
	snap, err := s.store.Snapshot()
	if err != nil {
		s.logger.WarnContext(ctx, "snapshot unavailable", slog.String("error", err.Error()))
		return nil, ErrSnapshotUnavailable
	}
	return snap, nil
}

// ListViews returns every registered view with its availability.
func (s *DashboardService) ListViews(ctx context.Context) ([]domain.ViewSummary, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return s.registry.Summaries(snap), nil
}

// GetView computes one view under the given filters.
func (s *DashboardService) GetView(ctx context.Context, slug string, filters domain.FilterSet) (domain.View, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return domain.View{}, err
	}

	v, ok := s.registry.Build(snap, slug, filters)
	if !ok {
		return domain.View{}, ErrViewNotFound
	}

	s.logger.InfoContext(ctx, "view computed",
		slog.String("slug", slug),
		slog.Bool("filtered", !filters.IsZero()),
		slog.Int("metrics", len(v.Metrics)),
		slog.Int("charts", len(v.Charts)),
		slog.Int("unavailable", len(v.Unavailable)))
	return v, nil
}

// FilterOptions returns the selectable filter values in the snapshot.
func (s *DashboardService) FilterOptions(ctx context.Context) (domain.FilterOptions, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return domain.FilterOptions{}, err
	}
	return view.Options(snap), nil
}

// SnapshotReport returns the load report: per-table outcomes plus recorded
// data quality conditions.
func (s *DashboardService) SnapshotReport(ctx context.Context) (domain.SnapshotReport, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return domain.SnapshotReport{}, err
	}
	return snap.Report(), nil
}
