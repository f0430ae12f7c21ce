package infrastructure

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/antonKorobenko/test-task/internal/config"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// TestOTelInitialization tests OpenTelemetry initialization
func TestOTelInitialization(t *testing.T) {
	providers, err := InitializeOTel(nil, discardLogger())
	require.NoError(t, err)
	require.NotNil(t, providers)

	// default config exports metrics only
	assert.Nil(t, providers.TracerProvider)
	assert.NotNil(t, providers.Tracer)
	assert.NotNil(t, providers.MeterProvider)
	assert.NotNil(t, providers.Meter)
	assert.NotNil(t, providers.PrometheusHTTP)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	assert.NoError(t, providers.Shutdown(ctx))
}

func TestOTelConfiguration(t *testing.T) {
	tests := []struct {
		name           string
		cfg            *OTelConfig
		wantErr        bool
		wantTracing    bool
		wantPrometheus bool
	}{
		{
			name:           "metrics only",
			cfg:            &OTelConfig{ServiceName: "t", MetricExporter: "prometheus", TraceExporter: "none", SampleRatio: 1},
			wantPrometheus: true,
		},
		{
			name:        "stdout traces",
			cfg:         &OTelConfig{ServiceName: "t", MetricExporter: "none", TraceExporter: "stdout", SampleRatio: 0.5},
			wantTracing: true,
		},
		{
			name: "everything disabled",
			cfg:  &OTelConfig{ServiceName: "t", MetricExporter: "none", TraceExporter: "none"},
		},
		{
			name:    "unknown trace exporter",
			cfg:     &OTelConfig{ServiceName: "t", TraceExporter: "jaeger"},
			wantErr: true,
		},
		{
			name:    "unknown metric exporter",
			cfg:     &OTelConfig{ServiceName: "t", MetricExporter: "statsd"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			providers, err := InitializeOTel(tt.cfg, discardLogger())
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			defer providers.Shutdown(context.Background())

			assert.Equal(t, tt.wantTracing, providers.TracerProvider != nil)
			assert.Equal(t, tt.wantPrometheus, providers.PrometheusHTTP != nil)
			assert.NotNil(t, providers.Meter)
		})
	}
}

func TestOTelConfigFrom(t *testing.T) {
	cfg := OTelConfigFrom(config.TelemetryConfig{
		ServiceName:    "stats-api",
		Environment:    "production",
		TraceExporter:  "stdout",
		MetricExporter: "none",
		SampleRatio:    0.25,
	}, "2.1.0")

	assert.Equal(t, "stats-api", cfg.ServiceName)
	assert.Equal(t, "2.1.0", cfg.ServiceVersion)
	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, "stdout", cfg.TraceExporter)
	assert.Equal(t, "none", cfg.MetricExporter)
	assert.Equal(t, 0.25, cfg.SampleRatio)

	defaults := OTelConfigFrom(config.TelemetryConfig{}, "")
	assert.Equal(t, ServiceName, defaults.ServiceName)
	assert.Equal(t, ServiceVersion, defaults.ServiceVersion)
}

// TestBusinessMetrics tests business metrics creation
func TestBusinessMetrics(t *testing.T) {
	providers, err := InitializeOTel(DefaultOTelConfig(), discardLogger())
	require.NoError(t, err)
	defer providers.Shutdown(context.Background())

	metrics, err := CreateBusinessMetrics(providers.Meter)
	require.NoError(t, err)
	require.NotNil(t, metrics)

	assert.NotNil(t, metrics.HTTPRequestsTotal)
	assert.NotNil(t, metrics.HTTPRequestDuration)
	assert.NotNil(t, metrics.HTTPActiveRequests)
	assert.NotNil(t, metrics.StatsRunsTotal)
	assert.NotNil(t, metrics.StatsRunDuration)
	assert.NotNil(t, metrics.StatsRowsProduced)
	assert.NotNil(t, metrics.DatasetRowsLoaded)
	assert.NotNil(t, metrics.SystemErrors)
}

// TestPrometheusEndpoint records a few metrics and scrapes them back
func TestPrometheusEndpoint(t *testing.T) {
	providers, err := InitializeOTel(DefaultOTelConfig(), discardLogger())
	require.NoError(t, err)
	defer providers.Shutdown(context.Background())

	metrics, err := CreateBusinessMetrics(providers.Meter)
	require.NoError(t, err)

	ctx := context.Background()
	RecordStatsRun(ctx, metrics, "day", OutcomeSuccess, 120*time.Millisecond, 3)
	RecordDatasetLoaded(ctx, metrics, "trades", 42)
	RecordSystemError(ctx, metrics, "loader")

	server := httptest.NewServer(providers.PrometheusHTTP)
	defer server.Close()

	resp, err := http.Get(server.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/plain")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	text := string(body)
	assert.Contains(t, text, "stats_runs_total")
	assert.Contains(t, text, "stats_rows_produced_total")
	assert.Contains(t, text, "dataset_rows_loaded_total")
	assert.Contains(t, text, "system_errors_total")
	assert.Contains(t, text, "go_goroutines")
}

func TestRecordHelpersTolerateNilMetrics(t *testing.T) {
	ctx := context.Background()
	assert.NotPanics(t, func() {
		RecordStatsRun(ctx, nil, "hour", OutcomeError, time.Second, 0)
		RecordDatasetLoaded(ctx, nil, "prices", 1)
		RecordSystemError(ctx, nil, "loader")
	})
}

// TestTraceCorrelation tests trace ID correlation
func TestTraceCorrelation(t *testing.T) {
	tp := sdktrace.NewTracerProvider()
	defer tp.Shutdown(context.Background())

	ctx, span := tp.Tracer("test").Start(context.Background(), "test-operation")
	defer span.End()

	traceID := TraceIDFromContext(ctx)
	assert.NotEmpty(t, traceID)
	assert.Equal(t, span.SpanContext().TraceID().String(), traceID)

	RecordError(ctx, assert.AnError)
	assert.True(t, span.IsRecording())

	assert.Empty(t, TraceIDFromContext(context.Background()))
}
