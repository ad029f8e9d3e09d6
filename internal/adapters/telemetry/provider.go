package telemetry

import (
	"context"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.trai.ch/strata/internal/core/ports"
)

// LogBufferSize determines the size of the async log channel.
const LogBufferSize = 4096

// logEvent carries a chunk of log output for a specific delta span.
type logEvent struct {
	spanID string
	data   []byte
}

// OTelTracer is a concrete implementation of ports.Tracer using OpenTelemetry.
type OTelTracer struct {
	tracer   trace.Tracer
	renderer ports.Renderer
	logChan  chan logEvent
	mu       sync.RWMutex
}

// NewOTelTracer creates a new OTelTracer with the given instrumentation name.
func NewOTelTracer(name string) *OTelTracer {
	t := &OTelTracer{
		tracer:  otel.Tracer(name),
		logChan: make(chan logEvent, LogBufferSize), // Buffered to handle bursts
	}
	go t.runLoop()
	return t
}

func (t *OTelTracer) runLoop() {
	for ev := range t.logChan {
		t.mu.RLock()
		r := t.renderer
		t.mu.RUnlock()

		if r != nil {
			r.OnDeltaLog(ev.spanID, ev.data)
		}
	}
}

// Shutdown stops the background log processor.
func (t *OTelTracer) Shutdown(_ context.Context) error {
	close(t.logChan)
	return nil
}

// WithRenderer sets the renderer to stream delta logs to.
func (t *OTelTracer) WithRenderer(r ports.Renderer) *OTelTracer {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.renderer = r
	return t
}

// Start creates a new span.
func (t *OTelTracer) Start(ctx context.Context, name string) (context.Context, ports.Span) {
	ctx, span := t.tracer.Start(ctx, name)

	t.mu.RLock()
	r := t.renderer
	t.mu.RUnlock()

	var batcher *BatchProcessor
	if r != nil {
		spanID := span.SpanContext().SpanID().String()
		cb := func(data []byte) {
			select {
			case t.logChan <- logEvent{spanID: spanID, data: data}:
			default:
				// Drop logs if buffer is full to prevent blocking the build
			}
		}
		batcher = NewBatchProcessor(0, 0, cb)
	}

	return ctx, &OTelSpan{span: span, batcher: batcher}
}

// EmitPlan signals the planned delta chain by adding an event to the current
// span and forwarding the plan to the renderer.
func (t *OTelTracer) EmitPlan(ctx context.Context, deltas []string, stages map[string][]string, target string) {
	span := trace.SpanFromContext(ctx)
	if span.IsRecording() {
		span.AddEvent("plan_emitted", trace.WithAttributes(
			attribute.StringSlice("deltas", deltas),
			attribute.String("target", target),
		))
	}

	t.mu.RLock()
	r := t.renderer
	t.mu.RUnlock()

	if r != nil {
		r.OnPlanEmit(deltas, stages, target)
	}
}

// OTelSpan is a concrete implementation of ports.Span using OpenTelemetry.
type OTelSpan struct {
	span    trace.Span
	batcher *BatchProcessor
}

// End completes the span.
func (s *OTelSpan) End() {
	if s.batcher != nil {
		_ = s.batcher.Close()
	}
	s.span.End()
}

// RecordError records an error for the span.
func (s *OTelSpan) RecordError(err error) {
	s.span.RecordError(err)
	s.span.SetStatus(codes.Error, err.Error())
}

// SetAttribute adds a key-value pair to the span.
func (s *OTelSpan) SetAttribute(key string, value any) {
	switch v := value.(type) {
	case string:
		s.span.SetAttributes(attribute.String(key, v))
	case int:
		s.span.SetAttributes(attribute.Int(key, v))
	case int64:
		s.span.SetAttributes(attribute.Int64(key, v))
	case float64:
		s.span.SetAttributes(attribute.Float64(key, v))
	case bool:
		s.span.SetAttributes(attribute.Bool(key, v))
	case []string:
		s.span.SetAttributes(attribute.StringSlice(key, v))
	default:
		s.span.SetAttributes(attribute.String(key, fmt.Sprintf("%v", v)))
	}
}

// Write satisfies io.Writer by adding a log event to the span or writing to the batcher.
func (s *OTelSpan) Write(p []byte) (n int, err error) {
	if s.batcher != nil {
		return s.batcher.Write(p)
	}
	s.span.AddEvent("log", trace.WithAttributes(attribute.String("message", string(p))))
	return len(p), nil
}
