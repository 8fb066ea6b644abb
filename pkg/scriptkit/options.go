package scriptkit

import (
	"log/slog"

	"github.com/randalmurphal/scriptkit/pkg/scriptkit/observability"
)

// Option configures a Replacer.
type Option func(*Replacer)

// WithTemplate sets the tokens and validator used by the Replacer.
//
// Default: SQL()
//
// Example:
//
//	r := scriptkit.New(scriptkit.WithTemplate(scriptkit.JSON()))
//	out, _ := r.Replace(`{"size": <size>}`, map[string]string{"size": "10"})
//	// out: {"size": 10}
func WithTemplate(t Template) Option {
	return func(r *Replacer) {
		r.tmpl = t
	}
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithReplacer sets the Replacer used to resolve scripts.
//
// Default: New() (SQL template)
func WithReplacer(r *Replacer) LoaderOption {
	return func(l *Loader) {
		if r != nil {
			l.replacer = r
		}
	}
}

// WithLogger sets the structured logger. A nil logger disables logging.
func WithLogger(logger *slog.Logger) LoaderOption {
	return func(l *Loader) {
		l.logger = logger
	}
}

// WithMetrics sets the metrics recorder.
//
// Default: observability.NoopMetrics{}
//
// Example:
//
//	loader := scriptkit.NewLoader(store, scriptkit.WithMetrics(observability.NewMetricsRecorder()))
func WithMetrics(m observability.MetricsRecorder) LoaderOption {
	return func(l *Loader) {
		if m != nil {
			l.metrics = m
		}
	}
}

// WithSpanManager sets the span manager used to trace renders.
//
// Default: observability.NoopSpanManager{}
func WithSpanManager(s observability.SpanManager) LoaderOption {
	return func(l *Loader) {
		if s != nil {
			l.spans = s
		}
	}
}
