package dispatch

import (
	"io"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/log"

	"github.com/nibzard/checklist-go/internal/editor"
	"github.com/nibzard/checklist-go/internal/store"
	"github.com/nibzard/checklist-go/internal/todo"
)

// State is the dispatcher state.
type State int

const (
	Browsing State = iota
	Editing
	Exiting
)

func (s State) String() string {
	switch s {
	case Browsing:
		return "browsing"
	case Editing:
		return "editing"
	case Exiting:
		return "exiting"
	default:
		return "unknown"
	}
}

// Machine maps events onto a Store and, while Editing, an Editor.
type Machine struct {
	store  *store.Store
	keys   KeyMap
	logger *log.Logger
	state  State
	edit   *editor.Editor
	save   bool
}

// MachineOption configures a Machine.
type MachineOption func(*Machine)

// WithKeyMap replaces the default key map.
func WithKeyMap(km KeyMap) MachineOption {
	return func(m *Machine) {
		m.keys = km
	}
}

// WithLogger sets the logger used for transition and mutation records.
func WithLogger(logger *log.Logger) MachineOption {
	return func(m *Machine) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// NewMachine returns a Machine in the Browsing state.
func NewMachine(s *store.Store, opts ...MachineOption) *Machine {
	m := &Machine{
		store:  s,
		keys:   DefaultKeyMap(),
		logger: log.New(io.Discard),
		state:  Browsing,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// State returns the current state.
func (m *Machine) State() State { return m.state }

// Save reports whether the session ended with a save request. It is only
// meaningful once State is Exiting.
func (m *Machine) Save() bool { return m.save }

// Store returns the underlying store.
func (m *Machine) Store() *store.Store { return m.store }

// Editor returns the active line editor, or nil outside Editing.
func (m *Machine) Editor() *editor.Editor { return m.edit }

// Keys returns the key map in use.
func (m *Machine) Keys() KeyMap { return m.keys }

// Handle applies one event and reports whether it moved the machine
// into Editing.
func (m *Machine) Handle(ev Event) bool {
	switch ev.Kind {
	case EventResize:
		m.store.SetViewport(ev.Height)
		return false
	case EventKey:
	default:
		return false
	}

	switch m.state {
	case Browsing:
		return m.browse(ev.Key)
	case Editing:
		m.editKey(ev.Key)
	}
	return false
}

func (m *Machine) browse(k Key) bool {
	s := m.store
	km := &m.keys
	switch {
	case key.Matches(k, km.Save):
		m.exit(true)
	case key.Matches(k, km.Quit):
		m.exit(false)
	case key.Matches(k, km.MoveUp):
		m.logMutation("move up", s.MoveTaskUp())
	case key.Matches(k, km.MoveDown):
		m.logMutation("move down", s.MoveTaskDown())
	case key.Matches(k, km.Up):
		s.MoveSelection(-1)
	case key.Matches(k, km.Down):
		s.MoveSelection(1)
	case key.Matches(k, km.Top):
		s.JumpToStart()
	case key.Matches(k, km.Bottom):
		s.JumpToEnd()
	case key.Matches(k, km.Toggle):
		m.logMutation("toggle", s.ToggleCompleted())
	case key.Matches(k, km.Delete):
		m.logMutation("delete", s.DeleteSelected())
	case key.Matches(k, km.Indent):
		m.logMutation("indent", s.Indent())
	case key.Matches(k, km.Outdent):
		m.logMutation("outdent", s.Outdent())
	case key.Matches(k, km.Insert):
		if s.InsertAfterSelected() {
			m.logMutation("insert", true)
			m.beginEdit()
			return true
		}
	case key.Matches(k, km.Edit):
		if !s.Empty() {
			m.beginEdit()
			return true
		}
	}
	return false
}

func (m *Machine) beginEdit() {
	task, _ := m.store.Current()
	m.edit = editor.New(task.Description, m.store.Dirty())
	m.transition(Editing)
}

func (m *Machine) editKey(k Key) {
	e := m.edit
	km := &m.keys

	// Any keystroke marks the store dirty; commit and cancel restore
	// the flag when the session changed nothing.
	m.store.MarkDirty()

	switch {
	case key.Matches(k, km.Commit):
		res := e.Commit()
		m.store.SetDescription(res.Description)
		m.store.SetDirty(res.Dirty)
		m.logger.Debug("edit committed", "index", m.store.Selected(), "changed", e.Changed())
		m.endEdit()
	case key.Matches(k, km.Cancel):
		res := e.Cancel()
		m.store.SetDirty(res.Dirty)
		m.logger.Debug("edit cancelled", "index", m.store.Selected())
		m.endEdit()
	case key.Matches(k, km.WordLeft):
		e.Left(true)
	case key.Matches(k, km.WordRight):
		e.Right(true)
	case key.Matches(k, km.Left):
		e.Left(false)
	case key.Matches(k, km.Right):
		e.Right(false)
	case key.Matches(k, km.LineStart):
		e.Home()
	case key.Matches(k, km.LineEnd):
		e.End()
	case key.Matches(k, km.Backspace):
		e.Backspace()
	case key.Matches(k, km.DeleteForward):
		e.Delete()
	default:
		e.InsertRunes(k.Runes)
	}
}

func (m *Machine) endEdit() {
	m.edit = nil
	m.transition(Browsing)
}

func (m *Machine) exit(save bool) {
	m.save = save
	m.transition(Exiting)
}

func (m *Machine) transition(to State) {
	m.logger.Debug("state change", "from", m.state, "to", to)
	m.state = to
}

func (m *Machine) logMutation(op string, applied bool) {
	if !applied {
		return
	}
	m.logger.Debug(op, "index", m.store.Selected(), "tasks", m.store.Len())
}

// EditView is the editor overlay drawn over the selected row.
type EditView struct {
	Text string
	// Cursor is a rune offset into Text.
	Cursor int
}

// Frame is everything a Renderer needs to draw one screen.
type Frame struct {
	// Tasks is the visible window, starting at Offset.
	Tasks       []todo.Task
	Selected    int
	Offset      int
	Dirty       bool
	Viewport    int
	Total       int
	Uncompleted int
	State       State
	// Edit is set while Editing.
	Edit *EditView
	Keys KeyMap
}

// Frame snapshots the machine for drawing.
func (m *Machine) Frame() Frame {
	s := m.store
	f := Frame{
		Tasks:       s.Window(),
		Selected:    s.Selected(),
		Offset:      s.Offset(),
		Dirty:       s.Dirty(),
		Viewport:    s.Viewport(),
		Total:       s.Len(),
		Uncompleted: s.Uncompleted(),
		State:       m.state,
		Keys:        m.keys,
	}
	if m.state == Editing && m.edit != nil {
		f.Edit = &EditView{Text: m.edit.Text(), Cursor: m.edit.Cursor()}
	}
	return f
}
