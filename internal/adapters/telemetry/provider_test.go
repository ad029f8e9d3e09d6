package telemetry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.trai.ch/strata/internal/adapters/telemetry"
)

func setupRecorder() (*tracetest.SpanRecorder, *trace.TracerProvider) {
	sr := tracetest.NewSpanRecorder()
	tp := trace.NewTracerProvider(trace.WithSpanProcessor(sr))
	otel.SetTracerProvider(tp)
	return sr, tp
}

func TestOTelTracer_EmitPlan(t *testing.T) {
	sr, tp := setupRecorder()
	defer func() { _ = tp.Shutdown(context.Background()) }()

	tracer := telemetry.NewOTelTracer("test-tracer")
	defer func() { _ = tracer.Shutdown(context.Background()) }()

	deltas := []string{"base:packages", "base:env"}
	stages := map[string][]string{"base": deltas}

	ctx, span := tp.Tracer("test").Start(context.Background(), "root")
	tracer.EmitPlan(ctx, deltas, stages, "dev")
	span.End()

	_ = tp.ForceFlush(ctx)
	spans := sr.Ended()
	require.Len(t, spans, 1)

	events := spans[0].Events()
	require.Len(t, events, 1)
	assert.Equal(t, "plan_emitted", events[0].Name)
}

func TestOTelTracer_EmitPlanNotifiesRenderer(t *testing.T) {
	mock := &mockRenderer{}
	tracer := telemetry.NewOTelTracer("test-tracer").WithRenderer(mock)
	defer func() { _ = tracer.Shutdown(context.Background()) }()

	tracer.EmitPlan(context.Background(), []string{"base:env"}, map[string][]string{"base": {"base:env"}}, "base")

	mock.mu.Lock()
	planCalls := mock.planCalls
	mock.mu.Unlock()
	assert.Equal(t, 1, planCalls)
}

func TestOTelTracer_SpanLogsReachRenderer(t *testing.T) {
	mock := &mockRenderer{}
	tracer := telemetry.NewOTelTracer("test-tracer").WithRenderer(mock)
	defer func() { _ = tracer.Shutdown(context.Background()) }()

	_, span := tracer.Start(context.Background(), "prod:sync-deps")
	_, err := span.Write([]byte("Resolved 42 packages\n"))
	require.NoError(t, err)
	span.End()

	// The log channel is drained asynchronously.
	require.Eventually(t, func() bool {
		mock.mu.Lock()
		defer mock.mu.Unlock()
		return mock.logCalls > 0
	}, time.Second, 10*time.Millisecond)

	mock.mu.Lock()
	defer mock.mu.Unlock()
	assert.Contains(t, string(mock.logs[0]), "Resolved 42 packages")
}

func TestOTelSpan_SetAttribute(t *testing.T) {
	sr, tp := setupRecorder()
	defer func() { _ = tp.Shutdown(context.Background()) }()

	tracer := telemetry.NewOTelTracer("test-tracer")
	ctx, span := tracer.Start(context.Background(), "attr-test")

	span.SetAttribute("str", "val")
	span.SetAttribute("int", 123)
	span.SetAttribute("int64", int64(456))
	span.SetAttribute("float", 3.14)
	span.SetAttribute("bool", true)
	span.SetAttribute("slice", []string{"a", "b"})

	span.End()

	_ = tp.ForceFlush(ctx)
	spans := sr.Ended()
	require.Len(t, spans, 1)

	attrMap := make(map[string]any)
	for _, a := range spans[0].Attributes() {
		switch a.Value.Type() {
		case attribute.STRING:
			attrMap[string(a.Key)] = a.Value.AsString()
		case attribute.INT64:
			attrMap[string(a.Key)] = a.Value.AsInt64()
		case attribute.FLOAT64:
			attrMap[string(a.Key)] = a.Value.AsFloat64()
		case attribute.BOOL:
			attrMap[string(a.Key)] = a.Value.AsBool()
		case attribute.STRINGSLICE:
			attrMap[string(a.Key)] = a.Value.AsStringSlice()
		}
	}

	assert.Equal(t, "val", attrMap["str"])
	assert.Equal(t, int64(123), attrMap["int"])
	assert.Equal(t, int64(456), attrMap["int64"])
	assert.InDelta(t, 3.14, attrMap["float"], 0.001)
	assert.Equal(t, true, attrMap["bool"])
	assert.Equal(t, []string{"a", "b"}, attrMap["slice"])
}

func TestOTelSpan_RecordError(t *testing.T) {
	sr, tp := setupRecorder()
	defer func() { _ = tp.Shutdown(context.Background()) }()

	tracer := telemetry.NewOTelTracer("test-tracer")
	ctx, span := tracer.Start(context.Background(), "err-test")

	span.RecordError(errors.New("sync failed"))
	span.End()

	_ = tp.ForceFlush(ctx)
	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "sync failed", spans[0].Status().Description)
}
