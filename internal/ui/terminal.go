// Package ui connects the dispatcher to a real terminal through bubbletea.
package ui

import (
	"context"
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/nibzard/checklist-go/internal/dispatch"
)

// frameMsg carries a frame from the dispatcher into the program.
type frameMsg dispatch.Frame

// eventQueue buffers translated input for the dispatcher. Pushing never
// blocks so the program's update loop cannot stall on a slow reader.
type eventQueue struct {
	mu     sync.Mutex
	events []dispatch.Event
	notify chan struct{}
}

func newEventQueue() *eventQueue {
	return &eventQueue{notify: make(chan struct{}, 1)}
}

func (q *eventQueue) push(ev dispatch.Event) {
	q.mu.Lock()
	q.events = append(q.events, ev)
	q.mu.Unlock()
	select {
	case q.notify <- struct{}{}:
	default:
	}
}

func (q *eventQueue) pop() (dispatch.Event, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.events) == 0 {
		return dispatch.Event{}, false
	}
	ev := q.events[0]
	q.events = q.events[1:]
	return ev, true
}

// model is the bubbletea side: it translates input and draws the last
// frame it was sent. It never touches task state.
type model struct {
	queue    *eventQueue
	frame    dispatch.Frame
	hasFrame bool
	width    int
	showHelp bool
	help     help.Model
}

func newModel(queue *eventQueue, showHelp bool) *model {
	return &model{
		queue:    queue,
		showHelp: showHelp,
		help:     newHelp(),
	}
}

func (m *model) Init() tea.Cmd {
	return nil
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		for _, k := range translateKey(msg) {
			m.queue.push(dispatch.KeyEvent(k))
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		// The bottom row is the status bar.
		m.queue.push(dispatch.ResizeEvent(max(msg.Height-1, 1)))
	case frameMsg:
		m.frame = dispatch.Frame(msg)
		m.hasFrame = true
	}
	return m, nil
}

func (m *model) View() string {
	if !m.hasFrame {
		return ""
	}
	return renderFrame(m.frame, m.width, m.showHelp, m.help)
}

// translateKey converts a bubbletea key into dispatcher keys. Names are
// kept as bubbletea spells them. Runes typed together arrive in one
// message and are split into one key each. A paste stays whole under a
// bracketed name that no binding uses, so it is only ever inserted as text.
func translateKey(msg tea.KeyMsg) []dispatch.Key {
	if msg.Alt {
		return []dispatch.Key{dispatch.NamedKey(msg.String())}
	}
	switch msg.Type {
	case tea.KeyRunes:
		if msg.Paste {
			runes := append([]rune(nil), msg.Runes...)
			return []dispatch.Key{{Name: msg.String(), Runes: runes}}
		}
		keys := make([]dispatch.Key, 0, len(msg.Runes))
		for _, r := range msg.Runes {
			keys = append(keys, dispatch.RuneKey(r))
		}
		return keys
	case tea.KeySpace:
		return []dispatch.Key{dispatch.RuneKey(' ')}
	default:
		return []dispatch.Key{dispatch.NamedKey(msg.String())}
	}
}

// Terminal runs a bubbletea program and exposes it to the dispatcher as
// an EventSource and a Renderer.
type Terminal struct {
	program *tea.Program
	queue   *eventQueue
	cancel  context.CancelFunc
	done    chan struct{}
	err     error
}

// NewTerminal prepares a full-screen program. Call Start to take over the
// terminal.
func NewTerminal(ctx context.Context, showHelp bool, opts ...tea.ProgramOption) *Terminal {
	ctx, cancel := context.WithCancel(ctx)
	queue := newEventQueue()
	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)
	return &Terminal{
		program: tea.NewProgram(newModel(queue, showHelp), opts...),
		queue:   queue,
		cancel:  cancel,
		done:    make(chan struct{}),
	}
}

// Start runs the program in the background. Raw mode is restored when the
// program exits, whichever way it exits.
func (t *Terminal) Start() {
	go func() {
		defer close(t.done)
		_, t.err = t.program.Run()
		t.cancel()
	}()
}

// Next implements dispatch.EventSource.
func (t *Terminal) Next(ctx context.Context, timeout time.Duration) (dispatch.Event, bool, error) {
	if ev, ok := t.queue.pop(); ok {
		return ev, true, nil
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()
	for {
		select {
		case <-t.queue.notify:
			if ev, ok := t.queue.pop(); ok {
				return ev, true, nil
			}
		case <-timer.C:
			return dispatch.Event{}, false, nil
		case <-t.done:
			if t.err != nil {
				return dispatch.Event{}, false, t.err
			}
			return dispatch.Event{}, false, dispatch.ErrSourceClosed
		case <-ctx.Done():
			return dispatch.Event{}, false, ctx.Err()
		}
	}
}

// Render implements dispatch.Renderer.
func (t *Terminal) Render(f dispatch.Frame) error {
	select {
	case <-t.done:
		return dispatch.ErrSourceClosed
	default:
	}
	// Send returns early once the program's context is cancelled.
	t.program.Send(frameMsg(f))
	return nil
}

// Close stops the program and waits for the terminal to be restored.
func (t *Terminal) Close() error {
	t.program.Quit()
	<-t.done
	return t.err
}

// Kill stops the program without a final render and waits for it to
// restore the terminal.
func (t *Terminal) Kill() {
	t.program.Kill()
	<-t.done
}

// IsTTY reports whether w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
