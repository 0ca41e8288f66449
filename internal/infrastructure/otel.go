package infrastructure

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.28.0"
	"go.opentelemetry.io/otel/trace"

	"pmocli/internal/config"
	"pmocli/pkg/contracts"
)

const (
	// MeterName identifies the instrumentation scope for all meters and tracers.
	MeterName = "pmocli"
)

// OTelProviders holds the OpenTelemetry providers and the Prometheus
// scrape handler exposed on /metrics.
type OTelProviders struct {
	TracerProvider *sdktrace.TracerProvider
	MeterProvider  *sdkmetric.MeterProvider
	Tracer         trace.Tracer
	Meter          metric.Meter
	PrometheusHTTP http.Handler
	Logger         *slog.Logger
}

// InitializeOTel wires up tracing and metrics according to the
// observability configuration. Tracing uses a stdout exporter (this is a
// single-node tool, not a distributed system); metrics are exported via
// Prometheus and served on /metrics.
func InitializeOTel(cfg config.ObservabilityConfig, logger *slog.Logger) (*OTelProviders, error) {
	ctx := context.Background()

	logger.InfoContext(ctx, "initializing OpenTelemetry",
		slog.String("service", cfg.ServiceName),
		slog.Bool("tracing_enabled", cfg.TracingEnabled),
		slog.Bool("metrics_enabled", cfg.MetricsEnabled))

	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(cfg.ServiceName),
		semconv.ServiceVersion(contracts.Version),
		attribute.String("service.instance.id", generateInstanceID()),
	)

	providers := &OTelProviders{Logger: logger}

	if cfg.TracingEnabled {
		exporter, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
		if err != nil {
			return nil, fmt.Errorf("failed to create trace exporter: %w", err)
		}
		tp := sdktrace.NewTracerProvider(
			sdktrace.WithBatcher(exporter),
			sdktrace.WithResource(res),
		)
		providers.TracerProvider = tp
		providers.Tracer = tp.Tracer(MeterName, trace.WithInstrumentationVersion(contracts.Version))
		otel.SetTracerProvider(tp)
	}

	if cfg.MetricsEnabled {
		// A dedicated registry keeps repeated initialization (and the Go
		// runtime collectors) from colliding on the global registerer.
		registry := promclient.NewRegistry()
		exporter, err := prometheus.New(prometheus.WithRegisterer(registry))
		if err != nil {
			return nil, fmt.Errorf("failed to create prometheus exporter: %w", err)
		}
		mp := sdkmetric.NewMeterProvider(
			sdkmetric.WithResource(res),
			sdkmetric.WithReader(exporter),
		)
		providers.MeterProvider = mp
		providers.Meter = mp.Meter(MeterName, metric.WithInstrumentationVersion(contracts.Version))
		providers.PrometheusHTTP = promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
		otel.SetMeterProvider(mp)
	}

	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return providers, nil
}

// AppMetrics holds the application-specific instruments.
type AppMetrics struct {
	// HTTP metrics
	HTTPRequestsTotal   metric.Int64Counter
	HTTPRequestDuration metric.Float64Histogram
	HTTPActiveRequests  metric.Int64UpDownCounter

	// View pipeline metrics
	ViewBuildsTotal   metric.Int64Counter
	ViewBuildDuration metric.Float64Histogram

	// Snapshot metrics
	SnapshotTablesLoaded metric.Int64Gauge
	SnapshotConditions   metric.Int64Gauge

	// Report metrics
	ReportRunsTotal   metric.Int64Counter
	ReportRunDuration metric.Float64Histogram
}

// CreateAppMetrics registers the application instruments on the meter.
func CreateAppMetrics(meter metric.Meter) (*AppMetrics, error) {
	httpRequestsTotal, err := meter.Int64Counter(
		"http_requests_total",
		metric.WithDescription("Total number of HTTP requests"),
	)
	if err != nil {
		return nil, err
	}

	httpRequestDuration, err := meter.Float64Histogram(
		"http_request_duration_seconds",
		metric.WithDescription("HTTP request duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	httpActiveRequests, err := meter.Int64UpDownCounter(
		"http_active_requests",
		metric.WithDescription("Number of in-flight HTTP requests"),
	)
	if err != nil {
		return nil, err
	}

	viewBuildsTotal, err := meter.Int64Counter(
		"view_builds_total",
		metric.WithDescription("Total number of dashboard view computations"),
	)
	if err != nil {
		return nil, err
	}

	viewBuildDuration, err := meter.Float64Histogram(
		"view_build_duration_seconds",
		metric.WithDescription("Dashboard view computation duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	snapshotTablesLoaded, err := meter.Int64Gauge(
		"snapshot_tables_loaded",
		metric.WithDescription("Number of tables present in the loaded snapshot"),
	)
	if err != nil {
		return nil, err
	}

	snapshotConditions, err := meter.Int64Gauge(
		"snapshot_conditions",
		metric.WithDescription("Number of data quality conditions recorded at load"),
	)
	if err != nil {
		return nil, err
	}

	reportRunsTotal, err := meter.Int64Counter(
		"report_runs_total",
		metric.WithDescription("Total number of report generation runs"),
	)
	if err != nil {
		return nil, err
	}

	reportRunDuration, err := meter.Float64Histogram(
		"report_run_duration_seconds",
		metric.WithDescription("Report generation duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	return &AppMetrics{
		HTTPRequestsTotal:    httpRequestsTotal,
		HTTPRequestDuration:  httpRequestDuration,
		HTTPActiveRequests:   httpActiveRequests,
		ViewBuildsTotal:      viewBuildsTotal,
		ViewBuildDuration:    viewBuildDuration,
		SnapshotTablesLoaded: snapshotTablesLoaded,
		SnapshotConditions:   snapshotConditions,
		ReportRunsTotal:      reportRunsTotal,
		ReportRunDuration:    reportRunDuration,
	}, nil
}

// RecordViewBuild records a single dashboard view computation.
func RecordViewBuild(ctx context.Context, m *AppMetrics, slug string, duration time.Duration, err error) {
	if m == nil {
		return
	}

	status := "success"
	if err != nil {
		status = "failure"
	}
	attrs := metric.WithAttributes(
		attribute.String("view", slug),
		attribute.String("status", status),
	)
	m.ViewBuildsTotal.Add(ctx, 1, attrs)
	m.ViewBuildDuration.Record(ctx, duration.Seconds(), attrs)
}

// RecordSnapshotState records the table and condition counts of the
// loaded snapshot.
func RecordSnapshotState(ctx context.Context, m *AppMetrics, tables, conditions int) {
	if m == nil {
		return
	}
	m.SnapshotTablesLoaded.Record(ctx, int64(tables))
	m.SnapshotConditions.Record(ctx, int64(conditions))
}

// RecordReportRun records a report generation run and its outcome.
func RecordReportRun(ctx context.Context, m *AppMetrics, format string, duration time.Duration, err error) {
	if m == nil {
		return
	}

	status := "success"
	if err != nil {
		status = "failure"
	}
	attrs := metric.WithAttributes(
		attribute.String("format", format),
		attribute.String("status", status),
	)
	m.ReportRunsTotal.Add(ctx, 1, attrs)
	m.ReportRunDuration.Record(ctx, duration.Seconds(), attrs)
}

// Shutdown gracefully shuts down OpenTelemetry providers.
func (p *OTelProviders) Shutdown(ctx context.Context) error {
	var errs []error

	if p.TracerProvider != nil {
		if err := p.TracerProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer provider shutdown: %w", err))
		}
	}

	if p.MeterProvider != nil {
		if err := p.MeterProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter provider shutdown: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("opentelemetry shutdown errors: %v", errs)
	}
	return nil
}

// generateInstanceID generates a unique instance identifier
func generateInstanceID() string {
	hostname, _ := os.Hostname()
	return fmt.Sprintf("%s-%d", hostname, time.Now().Unix())
}

// TraceIDFromContext extracts the span trace ID from context for logging
// correlation. Returns empty when no recording span is present.
func TraceIDFromContext(ctx context.Context) string {
	spanCtx := trace.SpanContextFromContext(ctx)
	if spanCtx.IsValid() {
		return spanCtx.TraceID().String()
	}
	return ""
}

// RecordError records an error on the current span
func RecordError(ctx context.Context, err error, options ...trace.EventOption) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}

	span.RecordError(err, options...)
	span.SetStatus(codes.Error, err.Error())
}

// SetSpanAttributes sets attributes on the current span
func SetSpanAttributes(ctx context.Context, attributes map[string]interface{}) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}

	for k, v := range attributes {
		switch val := v.(type) {
		case string:
			span.SetAttributes(attribute.String(k, val))
		case int:
			span.SetAttributes(attribute.Int(k, val))
		case int64:
			span.SetAttributes(attribute.Int64(k, val))
		case float64:
			span.SetAttributes(attribute.Float64(k, val))
		case bool:
			span.SetAttributes(attribute.Bool(k, val))
		default:
			span.SetAttributes(attribute.String(k, fmt.Sprintf("%v", val)))
		}
	}
}
