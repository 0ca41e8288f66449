package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"pmocli/internal/config"
	"pmocli/internal/dataset"
	apierrors "pmocli/internal/errors"
	"pmocli/internal/files"
	"pmocli/internal/infrastructure"
	customMiddleware "pmocli/internal/middleware"
	"pmocli/internal/services"
	handlers "pmocli/internal/transport/http"
	"pmocli/internal/view"
	"pmocli/pkg/contracts"
)

// Application wires the configuration, the load-once dataset store, the
// services, and the HTTP server into one runnable unit.
type Application struct {
	Config        *config.Config
	Paths         *config.Paths
	Router        *chi.Mux
	Server        *http.Server
	Store         *dataset.Store
	Dashboard     *services.DashboardService
	Report        *services.ReportService
	Health        *services.HealthService
	Logger        *slog.Logger
	OTelProviders *infrastructure.OTelProviders

	otel *customMiddleware.OTelMiddleware
}

// NewApplication creates a fully wired application instance.
func NewApplication() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("initialize logger: %w", err)
	}

	logger.Info("application starting",
		slog.String("version", contracts.GetVersionString()),
		slog.Int("port", cfg.Server.Port))

	paths := config.NewPaths(cfg.Paths)
	if err := paths.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	otelProviders, err := infrastructure.InitializeOTel(cfg.Observability, logger)
	if err != nil {
		return nil, fmt.Errorf("initialize opentelemetry: %w", err)
	}

	app := &Application{
		Config:        cfg,
		Paths:         paths,
		Logger:        logger,
		OTelProviders: otelProviders,
	}

	app.initializeServices()
	if err := app.setupRouter(); err != nil {
		return nil, err
	}
	app.createServer()

	return app, nil
}

// initializeServices builds the dataset store and the service layer. The
// store stays unloaded here; LoadSnapshot runs it during Start.
func (a *Application) initializeServices() {
	loader := dataset.NewLoader(a.Paths.DataDir, dataset.Registry(), a.Logger)
	a.Store = dataset.NewStore(loader, a.Logger)

	a.Dashboard = services.NewDashboardService(a.Store, view.NewRegistry(), a.Logger)
	a.Report = services.NewReportService(a.Store, a.Paths, a.Logger)
	a.Health = services.NewHealthService(a.Store, a.Paths, a.Logger)
}

// LoadSnapshot runs the one-time dataset load. Missing or broken tables
// degrade into conditions; only a failure to read the data directory itself
// is an error.
func (a *Application) LoadSnapshot(ctx context.Context) error {
	snap, err := a.Store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load dataset: %w", err)
	}

	rep := snap.Report()
	loaded := 0
	for _, t := range rep.Tables {
		if t.Loaded {
			loaded++
		}
	}
	a.Logger.InfoContext(ctx, "dataset snapshot loaded",
		slog.String("data_dir", a.Paths.DataDir),
		slog.Int("tables_loaded", loaded),
		slog.Int("tables_total", len(rep.Tables)),
		slog.Int("conditions", len(rep.Conditions)))

	if a.otel != nil {
		infrastructure.RecordSnapshotState(ctx, a.otel.Metrics(), loaded, len(rep.Conditions))
	}
	return nil
}

// setupRouter configures the HTTP router. Ordering: RequestID → RealIP →
// OTel → StructuredLogger → Recoverer → SecurityHeaders → CORS → rate
// limit, with per-group timeouts inside /api.
func (a *Application) setupRouter() error {
	r := chi.NewRouter()

	r.Use(customMiddleware.RequestID)
	r.Use(customMiddleware.RealIP)

	otelMiddleware, err := customMiddleware.NewOTelMiddleware(a.OTelProviders)
	if err != nil {
		return fmt.Errorf("create otel middleware: %w", err)
	}
	a.otel = otelMiddleware

	r.Group(func(r chi.Router) {
		r.Use(otelMiddleware.Handler)
		r.Use(customMiddleware.StructuredLogger(a.Logger))
		r.Use(customMiddleware.Recoverer(a.Logger))
		r.Use(customMiddleware.SecurityHeaders)

		// Request/response debug logging with body capture, development only.
		if a.Config.Logging.Development {
			errMw := apierrors.NewErrorMiddleware(apierrors.NewErrorHandler(a.Logger, true), a.Logger)
			r.Use(errMw.Handler)
		}

		if a.Config.Security.EnableCORS {
			r.Use(customMiddleware.CORS(a.Config.Security.AllowedOrigins))
		}
		if a.Config.Security.RateLimit.Enabled {
			r.Use(customMiddleware.NewRateLimiter(
				a.Config.Security.RateLimit.RPS,
				a.Config.Security.RateLimit.Burst,
				a.Logger,
			).Handler)
		}

		a.setupAPIRoutes(r)

		r.Get("/", handlers.ServeDashboard())
	})

	// Prometheus scrape endpoint stays outside the middleware chain.
	if a.OTelProviders.PrometheusHTTP != nil {
		r.Handle("/metrics", a.OTelProviders.PrometheusHTTP)
	}

	a.Router = r
	return nil
}

// setupAPIRoutes configures the /api endpoints.
func (a *Application) setupAPIRoutes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))

		// Read endpoints under the standard request timeout.
		r.Group(func(r chi.Router) {
			r.Use(customMiddleware.Timeout(a.Config.Server.RequestTimeout, a.Logger))

			dashboardHandler := handlers.NewDashboardHandler(a.Dashboard, a.Logger)
			dashboardHandler.RegisterRoutes(r)

			healthHandler := handlers.NewHealthHandler(a.Health, a.Logger)
			r.Get("/healthz", healthHandler.HealthCheck)
			r.Get("/healthz/live", healthHandler.LivenessCheck)
			r.Get("/version", healthHandler.Version)
		})

		// Report runs can outlive the standard timeout; PDF rendering in
		// particular waits on a headless Chrome round trip.
		r.Group(func(r chi.Router) {
			validator := customMiddleware.NewValidationMiddleware(a.Logger, apierrors.NewErrorHandler(a.Logger, false))

			r.Use(customMiddleware.Timeout(config.ReportGenerationTimeout, a.Logger))
			r.Use(customMiddleware.AuditLog(a.Logger))
			r.Use(customMiddleware.ContentTypeValidator("application/json"))
			r.Use(validator.ValidateRequest)

			discovery := files.NewDiscovery(a.Paths.ReportsDir)
			reportHandler := handlers.NewReportHandler(a.Report, discovery, validator, a.Logger)
			reportHandler.RegisterRoutes(r)
		})
	})
}

// createServer creates the HTTP server.
func (a *Application) createServer() {
	a.Server = &http.Server{
		Addr:           fmt.Sprintf(":%d", a.Config.Server.Port),
		Handler:        a.Router,
		ReadTimeout:    a.Config.Server.ReadTimeout,
		WriteTimeout:   a.Config.Server.WriteTimeout,
		IdleTimeout:    a.Config.Server.IdleTimeout,
		MaxHeaderBytes: a.Config.Server.MaxHeaderBytes,
	}
}

// Start loads the snapshot and starts the HTTP server. Server failures
// cancel the passed context.
func (a *Application) Start(ctx context.Context, cancel context.CancelFunc) error {
	if err := a.LoadSnapshot(ctx); err != nil {
		// The API still answers; data endpoints return snapshot-unavailable
		// problems until the operator fixes the extract directory.
		a.Logger.ErrorContext(ctx, "snapshot load failed, serving degraded",
			slog.String("error", err.Error()))
	}

	go func() {
		if err := a.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.Logger.ErrorContext(ctx, "server error", slog.String("error", err.Error()))
			cancel()
		}
	}()

	a.Logger.InfoContext(ctx, "application started",
		slog.String("address", fmt.Sprintf("http://localhost:%d", a.Config.Server.Port)))
	return nil
}

// Stop gracefully stops the application.
func (a *Application) Stop(ctx context.Context) error {
	a.Logger.InfoContext(ctx, "shutting down application")

	shutdownCtx, cancel := context.WithTimeout(ctx, a.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	if a.OTelProviders != nil {
		if err := a.OTelProviders.Shutdown(shutdownCtx); err != nil {
			a.Logger.ErrorContext(ctx, "opentelemetry shutdown error",
				slog.String("error", err.Error()))
		}
	}

	infrastructure.CloseLogFile()
	a.Logger.InfoContext(ctx, "application shutdown complete")
	return nil
}

// Run runs the application until interrupted.
func (a *Application) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	if err := a.Start(ctx, cancel); err != nil {
		return err
	}

	select {
	case <-sigChan:
		a.Logger.InfoContext(ctx, "received interrupt signal")
	case <-ctx.Done():
	}

	return a.Stop(context.Background())
}
