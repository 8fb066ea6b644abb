package scriptkit

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/randalmurphal/scriptkit/pkg/scriptkit/catalog"
	"github.com/randalmurphal/scriptkit/pkg/scriptkit/observability"
)

// Loader renders named scripts held in a catalog.
//
// Loader is safe for concurrent use when its store is.
type Loader struct {
	store    catalog.Store
	replacer *Replacer
	logger   *slog.Logger
	metrics  observability.MetricsRecorder
	spans    observability.SpanManager
}

// NewLoader creates a Loader backed by store.
//
// Example:
//
//	loader := scriptkit.NewLoader(catalog.NewMemoryStore())
//	if err := loader.Load(scripts, "patients.sql"); err != nil {
//	    return err
//	}
//	query, err := loader.Render(ctx, "patients.sql", map[string]string{"id": "42"})
func NewLoader(store catalog.Store, opts ...LoaderOption) *Loader {
	l := &Loader{
		store:    store,
		replacer: defaultReplacer,
		metrics:  observability.NoopMetrics{},
		spans:    observability.NoopSpanManager{},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Replacer returns the Replacer used by Render.
func (l *Loader) Replacer() *Replacer {
	return l.replacer
}

// Load reads each named file from fsys and stores it under its name.
// Blank names are skipped. Loading stops at the first failure.
func (l *Loader) Load(fsys fs.FS, names ...string) error {
	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			continue
		}
		text, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("load script %s: %w", name, err)
		}
		if err := l.put(name, text); err != nil {
			return err
		}
	}
	return nil
}

// Add stores text under name.
func (l *Loader) Add(name, text string) error {
	return l.put(name, []byte(text))
}

func (l *Loader) put(name string, text []byte) error {
	if err := l.store.Put(name, text); err != nil {
		return fmt.Errorf("store script %s: %w", name, err)
	}
	observability.LogScriptLoaded(l.logger, name, len(text))
	return nil
}

// Render fetches the named script and resolves it against bindings,
// applying the template's comment and blank-line stripping.
//
// Errors are returned as *RenderError. A missing script has
// catalog.ErrNotFound in its chain.
func (l *Loader) Render(ctx context.Context, name string, bindings map[string]string) (string, error) {
	renderID := uuid.NewString()
	ctx, span := l.spans.StartRenderSpan(ctx, name, renderID)
	observability.LogRenderStart(l.logger, name, renderID, len(bindings))
	start := time.Now()

	out, err := l.render(ctx, name, bindings)

	elapsed := time.Since(start)
	durationMs := float64(elapsed.Microseconds()) / 1000
	l.metrics.RecordRender(ctx, name, elapsed, len(out), err)
	if err != nil {
		err = &RenderError{Script: name, RenderID: renderID, Err: err}
		observability.LogRenderError(l.logger, name, renderID, err, durationMs)
		l.spans.EndSpanWithError(span, err)
		return "", err
	}

	observability.LogRenderComplete(l.logger, name, renderID, durationMs, len(out))
	l.spans.EndSpanWithError(span, nil)
	return out, nil
}

func (l *Loader) render(ctx context.Context, name string, bindings map[string]string) (string, error) {
	text, err := l.store.Get(name)
	if err != nil {
		return "", err
	}
	l.spans.AddSpanEvent(ctx, "script.fetched", attribute.Int("size_bytes", len(text)))
	return l.replacer.Process(string(text), bindings)
}
