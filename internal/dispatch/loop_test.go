package dispatch

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/nibzard/checklist-go/internal/store"
)

// scriptedSource replays events, reporting a timeout before each one.
type scriptedSource struct {
	events   []Event
	timeouts bool
	pending  bool
	waits    []time.Duration
}

func (s *scriptedSource) Next(ctx context.Context, timeout time.Duration) (Event, bool, error) {
	s.waits = append(s.waits, timeout)
	if len(s.events) == 0 {
		return Event{}, false, ErrSourceClosed
	}
	if s.timeouts && !s.pending {
		s.pending = true
		return Event{}, false, nil
	}
	s.pending = false
	ev := s.events[0]
	s.events = s.events[1:]
	return ev, true, nil
}

type recordingRenderer struct {
	frames []Frame
	err    error
}

func (r *recordingRenderer) Render(f Frame) error {
	r.frames = append(r.frames, f)
	return r.err
}

func keyEvents(keys ...Key) []Event {
	events := make([]Event, len(keys))
	for i, k := range keys {
		events[i] = KeyEvent(k)
	}
	return events
}

func TestRunReturnsSaveOutcome(t *testing.T) {
	tests := []struct {
		name string
		keys []Key
		save bool
	}{
		{"save", []Key{RuneKey(' '), RuneKey('s')}, true},
		{"quit", []Key{RuneKey(' '), RuneKey('q')}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMachine(store.New(sampleTasks()))
			src := &scriptedSource{events: keyEvents(tt.keys...)}
			r := &recordingRenderer{}

			save, err := Run(context.Background(), m, src, r)
			if err != nil {
				t.Fatalf("Run: %v", err)
			}
			if save != tt.save {
				t.Fatalf("save = %v, want %v", save, tt.save)
			}
			if len(r.frames) != len(tt.keys) {
				t.Fatalf("rendered %d frames, want %d", len(r.frames), len(tt.keys))
			}
		})
	}
}

func TestRunRendersBeforeEditing(t *testing.T) {
	m := NewMachine(store.New(sampleTasks()))
	src := &scriptedSource{events: keyEvents(RuneKey('e'), NamedKey("esc"), RuneKey('q'))}
	r := &recordingRenderer{}

	if _, err := Run(context.Background(), m, src, r); err != nil {
		t.Fatalf("Run: %v", err)
	}

	// browse, editor overlay, editing wait, browse after esc
	if len(r.frames) != 4 {
		t.Fatalf("rendered %d frames, want 4", len(r.frames))
	}
	if r.frames[0].State != Browsing || r.frames[0].Edit != nil {
		t.Fatalf("frame 0 = %+v", r.frames[0])
	}
	if r.frames[1].State != Editing || r.frames[1].Edit == nil {
		t.Fatalf("frame 1 has no editor overlay: %+v", r.frames[1])
	}
	if r.frames[1].Edit.Text != "buy milk" {
		t.Fatalf("overlay text = %q", r.frames[1].Edit.Text)
	}
	if r.frames[3].State != Browsing {
		t.Fatalf("frame 3 state = %v", r.frames[3].State)
	}
}

func TestRunRedrawsOnTimeout(t *testing.T) {
	m := NewMachine(store.New(sampleTasks()))
	src := &scriptedSource{events: keyEvents(RuneKey('j'), RuneKey('q')), timeouts: true}
	r := &recordingRenderer{}

	if _, err := Run(context.Background(), m, src, r, WithPollInterval(5*time.Millisecond)); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(r.frames) != 4 {
		t.Fatalf("rendered %d frames, want 4", len(r.frames))
	}
	for _, w := range src.waits {
		if w != 5*time.Millisecond {
			t.Fatalf("wait = %v, want 5ms", w)
		}
	}
	if got := r.frames[3].Selected; got != 1 {
		t.Fatalf("selected = %d, want 1", got)
	}
}

func TestRunDefaultPollInterval(t *testing.T) {
	m := NewMachine(store.New(nil))
	src := &scriptedSource{events: keyEvents(RuneKey('q'))}

	if _, err := Run(context.Background(), m, src, &recordingRenderer{}, WithPollInterval(0)); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if src.waits[0] != DefaultPollInterval {
		t.Fatalf("wait = %v, want %v", src.waits[0], DefaultPollInterval)
	}
}

func TestRunSourceClosed(t *testing.T) {
	m := NewMachine(store.New(sampleTasks()))
	src := &scriptedSource{events: keyEvents(RuneKey('j'))}

	_, err := Run(context.Background(), m, src, &recordingRenderer{})
	if !errors.Is(err, ErrSourceClosed) {
		t.Fatalf("err = %v, want ErrSourceClosed", err)
	}
}

func TestRunRenderError(t *testing.T) {
	boom := errors.New("boom")
	m := NewMachine(store.New(sampleTasks()))
	src := &scriptedSource{events: keyEvents(RuneKey('q'))}

	_, err := Run(context.Background(), m, src, &recordingRenderer{err: boom})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}
}

func TestRunCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	m := NewMachine(store.New(sampleTasks()))
	src := &scriptedSource{events: keyEvents(RuneKey('s'))}

	save, err := Run(ctx, m, src, &recordingRenderer{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if save {
		t.Fatal("cancelled run reported save")
	}
}
