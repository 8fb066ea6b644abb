package observability

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsRecorder records render metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordRender records one render with its duration, output size and
	// error status.
	RecordRender(ctx context.Context, script string, duration time.Duration, outputBytes int, err error)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	renders     metric.Int64Counter
	errors      metric.Int64Counter
	latency     metric.Float64Histogram
	outputBytes metric.Int64Histogram
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

// getDefaultMetrics lazily initializes the default OTel metrics instance.
func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics()
	})
	return defaultMetrics, defaultMetricsErr
}

func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("scriptkit")

	renders, err := meter.Int64Counter("scriptkit.render.count",
		metric.WithDescription("Number of script renders"),
	)
	if err != nil {
		return nil, err
	}

	errs, err := meter.Int64Counter("scriptkit.render.errors",
		metric.WithDescription("Number of failed script renders"),
	)
	if err != nil {
		return nil, err
	}

	latency, err := meter.Float64Histogram("scriptkit.render.latency_ms",
		metric.WithDescription("Script render latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	outputBytes, err := meter.Int64Histogram("scriptkit.render.output_bytes",
		metric.WithDescription("Size of rendered scripts in bytes"),
		metric.WithUnit("By"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		renders:     renders,
		errors:      errs,
		latency:     latency,
		outputBytes: outputBytes,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder that uses OpenTelemetry.
// If metrics initialization fails, returns a no-op recorder.
//
// The recorder uses the global OTel meter provider. Configure the provider
// before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetMeterProvider(yourProvider)
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		slog.Warn("metrics initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return NoopMetrics{}
	}
	return m
}

// RecordRender records a render.
func (m *otelMetrics) RecordRender(ctx context.Context, script string, duration time.Duration, outputBytes int, err error) {
	attrs := metric.WithAttributes(
		attribute.String("script", script),
		attribute.Bool("success", err == nil),
	)

	m.renders.Add(ctx, 1, attrs)
	m.latency.Record(ctx, float64(duration.Microseconds())/1000, attrs)

	if err != nil {
		m.errors.Add(ctx, 1, attrs)
		return
	}
	m.outputBytes.Record(ctx, int64(outputBytes), attrs)
}
