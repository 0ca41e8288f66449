package infrastructure

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pmocli/internal/config"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestInitializeOTelMetricsOnly(t *testing.T) {
	providers, err := InitializeOTel(config.ObservabilityConfig{
		MetricsEnabled: true,
		ServiceName:    "pmo-pulse-test",
	}, discardLogger())
	require.NoError(t, err)
	t.Cleanup(func() { providers.Shutdown(context.Background()) })

	assert.NotNil(t, providers.MeterProvider)
	assert.NotNil(t, providers.Meter)
	assert.NotNil(t, providers.PrometheusHTTP)
	assert.Nil(t, providers.TracerProvider)
}

func TestInitializeOTelDisabled(t *testing.T) {
	providers, err := InitializeOTel(config.ObservabilityConfig{
		ServiceName: "pmo-pulse-test",
	}, discardLogger())
	require.NoError(t, err)

	assert.Nil(t, providers.MeterProvider)
	assert.Nil(t, providers.TracerProvider)
	assert.Nil(t, providers.PrometheusHTTP)
	assert.NoError(t, providers.Shutdown(context.Background()))
}

func TestCreateAppMetrics(t *testing.T) {
	providers, err := InitializeOTel(config.ObservabilityConfig{
		MetricsEnabled: true,
		ServiceName:    "pmo-pulse-test",
	}, discardLogger())
	require.NoError(t, err)
	t.Cleanup(func() { providers.Shutdown(context.Background()) })

	metrics, err := CreateAppMetrics(providers.Meter)
	require.NoError(t, err)

	assert.NotNil(t, metrics.HTTPRequestsTotal)
	assert.NotNil(t, metrics.HTTPRequestDuration)
	assert.NotNil(t, metrics.ViewBuildsTotal)
	assert.NotNil(t, metrics.SnapshotTablesLoaded)
	assert.NotNil(t, metrics.ReportRunsTotal)

	ctx := context.Background()
	// Recording helpers must not panic with live instruments.
	RecordViewBuild(ctx, metrics, "executive-overview", 5*time.Millisecond, nil)
	RecordSnapshotState(ctx, metrics, 10, 2)
	RecordReportRun(ctx, metrics, "html", 120*time.Millisecond, assert.AnError)
}

func TestRecordHelpersNilMetrics(t *testing.T) {
	ctx := context.Background()
	assert.NotPanics(t, func() {
		RecordViewBuild(ctx, nil, "executive-overview", time.Millisecond, nil)
		RecordSnapshotState(ctx, nil, 0, 0)
		RecordReportRun(ctx, nil, "pdf", time.Millisecond, nil)
	})
}

func TestTraceIDFromContextWithoutSpan(t *testing.T) {
	assert.Empty(t, TraceIDFromContext(context.Background()))
}
