package ports

import (
	"context"
	"time"
)

// Renderer is the abstraction for output rendering.
// It decouples telemetry collection from presentation logic,
// allowing the same event stream to drive either a rich TUI or linear CI logs.
//
//go:generate mockgen -source=renderer.go -destination=mocks/mock_renderer.go -package=mocks
type Renderer interface {
	// Start initializes the renderer and begins its lifecycle.
	// For asynchronous renderers (like TUI), this may launch background goroutines.
	Start(ctx context.Context) error

	// Stop signals the renderer to stop accepting new events and prepare for
	// shutdown. It should flush any buffered output.
	Stop() error

	// Wait blocks until the renderer has fully terminated.
	// For synchronous renderers, this may return immediately.
	Wait() error

	// OnPlanEmit is called when the composer has planned the delta chain.
	// deltas: list of all delta names in application order
	// stages: stage membership map (stage -> list of delta names)
	// target: the user-requested build target
	OnPlanEmit(deltas []string, stages map[string][]string, target string)

	// OnDeltaStart is called when a delta begins application.
	// spanID: unique identifier for this delta application
	// parentID: spanID of the enclosing span (empty if root)
	// name: human-readable delta name
	// startTime: when the application started
	OnDeltaStart(spanID, parentID, name string, startTime time.Time)

	// OnDeltaLog is called when a delta emits output.
	// data may contain partial lines or ANSI sequences.
	OnDeltaLog(spanID string, data []byte)

	// OnDeltaComplete is called when a delta finishes.
	// err is nil if the delta succeeded.
	OnDeltaComplete(spanID string, endTime time.Time, err error)
}
