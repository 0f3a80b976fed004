package dispatch

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// DefaultPollInterval bounds how long Run waits for an event before it
// looks at the machine again.
const DefaultPollInterval = 100 * time.Millisecond

// ErrSourceClosed is returned by an EventSource that will never produce
// another event.
var ErrSourceClosed = errors.New("event source closed")

// EventSource yields input events.
type EventSource interface {
	// Next waits at most timeout for an event. It returns ok=false when
	// the timeout elapsed with nothing to report.
	Next(ctx context.Context, timeout time.Duration) (ev Event, ok bool, err error)
}

// Renderer draws frames.
type Renderer interface {
	Render(Frame) error
}

// RunOption configures Run.
type RunOption func(*runConfig)

type runConfig struct {
	poll time.Duration
}

// WithPollInterval sets the EventSource wait. Non-positive values keep
// the default.
func WithPollInterval(d time.Duration) RunOption {
	return func(c *runConfig) {
		if d > 0 {
			c.poll = d
		}
	}
}

// Run drives m until it reaches Exiting and reports whether the user
// asked to save. The frame is rendered before every wait, and once more
// right after the machine enters Editing so the editor shows before the
// first editing key is read.
func Run(ctx context.Context, m *Machine, src EventSource, r Renderer, opts ...RunOption) (bool, error) {
	c := &runConfig{poll: DefaultPollInterval}
	for _, opt := range opts {
		opt(c)
	}

	for m.State() != Exiting {
		if err := ctx.Err(); err != nil {
			return false, err
		}
		if err := r.Render(m.Frame()); err != nil {
			return false, fmt.Errorf("render: %w", err)
		}
		ev, ok, err := src.Next(ctx, c.poll)
		if err != nil {
			return false, fmt.Errorf("read event: %w", err)
		}
		if !ok {
			continue
		}
		if m.Handle(ev) {
			if err := r.Render(m.Frame()); err != nil {
				return false, fmt.Errorf("render: %w", err)
			}
		}
	}
	return m.Save(), nil
}
