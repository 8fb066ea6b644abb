// Package observability provides structured logging, metrics and tracing
// for script rendering.
//
// Features:
//   - Structured logging via slog (Go stdlib)
//   - Metrics via OpenTelemetry
//   - Tracing via OpenTelemetry
//
// All features are opt-in and have no-op implementations when disabled.
package observability

import (
	"log/slog"
)

// EnrichLogger adds render context to a logger.
// Returns a new logger with script and render_id fields.
//
// Example:
//
//	enriched := EnrichLogger(logger, "patients.sql", "2f1c...")
//	enriched.Info("resolving") // includes script, render_id
func EnrichLogger(logger *slog.Logger, script, renderID string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(
		slog.String("script", script),
		slog.String("render_id", renderID),
	)
}

// LogRenderStart logs the start of a render.
func LogRenderStart(logger *slog.Logger, script, renderID string, bindingCount int) {
	if logger == nil {
		return
	}
	logger.Debug("render starting",
		slog.String("script", script),
		slog.String("render_id", renderID),
		slog.Int("bindings", bindingCount),
	)
}

// LogRenderComplete logs a successful render.
func LogRenderComplete(logger *slog.Logger, script, renderID string, durationMs float64, outputBytes int) {
	if logger == nil {
		return
	}
	logger.Info("render completed",
		slog.String("script", script),
		slog.String("render_id", renderID),
		slog.Float64("duration_ms", durationMs),
		slog.Int("output_bytes", outputBytes),
	)
}

// LogRenderError logs a failed render.
func LogRenderError(logger *slog.Logger, script, renderID string, err error, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Error("render failed",
		slog.String("script", script),
		slog.String("render_id", renderID),
		slog.String("error", err.Error()),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogScriptLoaded logs a script added to the catalog.
func LogScriptLoaded(logger *slog.Logger, script string, sizeBytes int) {
	if logger == nil {
		return
	}
	logger.Debug("script loaded",
		slog.String("script", script),
		slog.Int("size_bytes", sizeBytes),
	)
}
