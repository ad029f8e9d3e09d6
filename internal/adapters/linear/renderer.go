// Package linear provides a synchronous, line-buffered renderer for CI environments.
package linear

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/muesli/termenv"
)

// Renderer implements ports.Renderer for CI/non-interactive environments.
// It outputs linear, chronological logs with delta name prefixes.
type Renderer struct {
	stdout io.Writer
	stderr io.Writer
	output *termenv.Output

	mu      sync.Mutex
	deltas  map[string]*deltaState // spanID -> delta state
	buffers map[string]*bytes.Buffer
}

type deltaState struct {
	name      string
	startTime time.Time
}

// NewRenderer creates a new linear Renderer.
func NewRenderer(stdout, stderr io.Writer) *Renderer {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}

	profile := colorProfile()
	output := termenv.NewOutput(stderr, termenv.WithProfile(profile))

	return &Renderer{
		stdout:  stdout,
		stderr:  stderr,
		output:  output,
		deltas:  make(map[string]*deltaState),
		buffers: make(map[string]*bytes.Buffer),
	}
}

// colorProfile returns the color profile based on environment.
func colorProfile() termenv.Profile {
	if os.Getenv("NO_COLOR") != "" {
		return termenv.Ascii
	}
	// Use ANSI for basic color support in CI
	return termenv.ANSI
}

// Start is a no-op for linear renderer (synchronous).
func (r *Renderer) Start(_ context.Context) error {
	return nil
}

// Stop flushes all remaining buffers.
func (r *Renderer) Stop() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for spanID := range r.buffers {
		r.flushBufferLocked(spanID)
	}

	return nil
}

// Wait is a no-op for linear renderer (synchronous).
func (r *Renderer) Wait() error {
	return nil
}

// OnPlanEmit prints the planned delta chain, grouped by stage.
func (r *Renderer) OnPlanEmit(deltas []string, stages map[string][]string, target string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, _ = fmt.Fprintf(r.stderr, "Composing %d delta(s) across %d stage(s) for target %q\n",
		len(deltas), len(stages), target)
}

// OnDeltaStart prints a delta start message.
func (r *Renderer) OnDeltaStart(spanID, _ /* parentID */, name string, startTime time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.deltas[spanID] = &deltaState{
		name:      name,
		startTime: startTime,
	}
	r.buffers[spanID] = new(bytes.Buffer)

	prefix := r.output.String(fmt.Sprintf("[%s]", name)).Faint().String()
	_, _ = fmt.Fprintf(r.stderr, "%s Applying...\n", prefix)
}

// OnDeltaLog buffers log data and prints complete lines with delta prefix.
func (r *Renderer) OnDeltaLog(spanID string, data []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delta, ok := r.deltas[spanID]
	if !ok {
		return
	}

	buf := r.buffers[spanID]
	buf.Write(data)

	// Process complete lines
	for {
		line, err := buf.ReadBytes('\n')
		if err != nil {
			// Incomplete line, put it back
			if len(line) > 0 {
				newBuf := new(bytes.Buffer)
				newBuf.Write(line)
				r.buffers[spanID] = newBuf
			}
			break
		}

		r.printLineLocked(delta.name, line)
	}
}

// OnDeltaComplete flushes the remaining buffer and prints completion status.
func (r *Renderer) OnDeltaComplete(spanID string, endTime time.Time, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delta, ok := r.deltas[spanID]
	if !ok {
		return
	}

	r.flushBufferLocked(spanID)

	duration := endTime.Sub(delta.startTime)
	prefix := fmt.Sprintf("[%s]", delta.name)

	if err != nil {
		symbol := r.output.String("✗").Foreground(termenv.ANSIRed).String()
		_, _ = fmt.Fprintf(r.stderr, "%s %s Failed after %v: %v\n",
			prefix, symbol, duration, err)
	} else {
		symbol := r.output.String("✓").Foreground(termenv.ANSIGreen).String()
		_, _ = fmt.Fprintf(r.stderr, "%s %s Applied in %v\n",
			prefix, symbol, duration)
	}

	delete(r.deltas, spanID)
	delete(r.buffers, spanID)
}

// flushBufferLocked flushes any remaining data in the buffer for a delta.
// Must be called with r.mu held.
func (r *Renderer) flushBufferLocked(spanID string) {
	delta, ok := r.deltas[spanID]
	if !ok {
		return
	}

	buf := r.buffers[spanID]
	if buf.Len() > 0 {
		r.printLineLocked(delta.name, buf.Bytes())
		buf.Reset()
	}
}

// printLineLocked prints a line with the delta name prefix.
// Must be called with r.mu held.
func (r *Renderer) printLineLocked(deltaName string, line []byte) {
	line = bytes.TrimSuffix(line, []byte("\n"))
	line = bytes.TrimSuffix(line, []byte("\r"))

	if len(line) == 0 {
		return
	}

	prefix := fmt.Sprintf("[%s]", deltaName)
	_, _ = fmt.Fprintf(r.stdout, "%s %s\n", prefix, string(line))
}
