package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/attribute"
)

func TestNoopMetrics_RecordRender(t *testing.T) {
	m := NoopMetrics{}

	assert.NotPanics(t, func() {
		m.RecordRender(context.Background(), "patients.sql", time.Millisecond, 10, nil)
		m.RecordRender(context.Background(), "", 0, 0, errors.New("test"))
	})
}

func TestNoopSpanManager(t *testing.T) {
	sm := NoopSpanManager{}
	ctx := context.Background()

	newCtx, span := sm.StartRenderSpan(ctx, "patients.sql", "render-1")
	assert.Equal(t, ctx, newCtx, "context should be unchanged")
	assert.False(t, span.IsRecording())

	assert.NotPanics(t, func() {
		sm.AddSpanEvent(ctx, "event", attribute.String("k", "v"))
		sm.EndSpanWithError(span, errors.New("test"))
		sm.EndSpanWithError(nil, nil)
	})
}
