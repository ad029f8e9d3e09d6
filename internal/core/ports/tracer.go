package ports

import (
	"context"
	"io"
)

// Span represents one traced unit of work. It doubles as the sink for the
// unit's process output: the composer hands spans to the executor as stdout
// and stderr.
type Span interface {
	io.Writer

	// End completes the span.
	End()

	// RecordError records an error for the span.
	RecordError(err error)

	// SetAttribute adds a key-value pair to the span.
	SetAttribute(key string, value any)
}

// Tracer creates spans for stages and deltas.
//
//go:generate mockgen -source=tracer.go -destination=mocks/mock_tracer.go -package=mocks
type Tracer interface {
	// Start creates a new span as a child of the span in ctx, if any.
	Start(ctx context.Context, name string) (context.Context, Span)

	// EmitPlan signals the planned delta chain before execution begins.
	EmitPlan(ctx context.Context, deltas []string, stages map[string][]string, target string)
}
