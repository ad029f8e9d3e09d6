package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Renderer wraps the TUI Bubble Tea model as a ports.Renderer.
type Renderer struct {
	program *tea.Program
	model   *Model
	errCh   chan error
}

// NewRenderer creates a new TUI renderer.
func NewRenderer(model *Model, opts ...tea.ProgramOption) *Renderer {
	program := tea.NewProgram(model, opts...)
	return &Renderer{
		program: program,
		model:   model,
		errCh:   make(chan error, 1),
	}
}

// Start launches the TUI in a background goroutine.
func (r *Renderer) Start(_ context.Context) error {
	go func() {
		_, err := r.program.Run()
		r.errCh <- err
	}()
	return nil
}

// Stop signals the TUI to quit.
func (r *Renderer) Stop() error {
	r.program.Quit()
	return nil
}

// Wait blocks until the TUI has terminated.
func (r *Renderer) Wait() error {
	return <-r.errCh
}

// OnPlanEmit forwards plan initialization to the TUI.
func (r *Renderer) OnPlanEmit(deltas []string, stages map[string][]string, target string) {
	r.program.Send(MsgInitPlan{
		Deltas: deltas,
		Stages: stages,
		Target: target,
	})
}

// OnDeltaStart forwards delta start events to the TUI.
func (r *Renderer) OnDeltaStart(spanID, parentID, name string, startTime time.Time) {
	r.program.Send(MsgDeltaStart{
		SpanID:    spanID,
		ParentID:  parentID,
		Name:      name,
		StartTime: startTime,
	})
}

// OnDeltaLog forwards delta log data to the TUI.
func (r *Renderer) OnDeltaLog(spanID string, data []byte) {
	r.program.Send(MsgDeltaLog{
		SpanID: spanID,
		Data:   data,
	})
}

// OnDeltaComplete forwards delta completion events to the TUI.
func (r *Renderer) OnDeltaComplete(spanID string, endTime time.Time, err error) {
	r.program.Send(MsgDeltaComplete{
		SpanID:  spanID,
		EndTime: endTime,
		Err:     err,
	})
}

// Program returns the underlying tea.Program for testing.
func (r *Renderer) Program() *tea.Program {
	return r.program
}
