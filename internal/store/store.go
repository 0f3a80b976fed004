// Package store owns the in-memory task list and its selection state.
package store

import "github.com/nibzard/checklist-go/internal/todo"

// DefaultViewport is the viewport height used until the terminal reports its size.
const DefaultViewport = 23

// Store holds the task list, selection index, scroll offset, and dirty flag.
//
// All operations are total: they clamp indices and treat an empty list as a
// no-op, so callers never need to guard them. After every operation the
// selection is inside the viewport:
//
//	offset <= selected <= offset+viewport-1
type Store struct {
	tasks    []todo.Task
	selected int
	offset   int
	viewport int
	dirty    bool
}

// New creates a store over a copy of tasks.
func New(tasks []todo.Task) *Store {
	s := &Store{
		tasks:    append([]todo.Task(nil), tasks...),
		viewport: DefaultViewport,
	}
	return s
}

// Tasks returns a copy of the task list.
func (s *Store) Tasks() []todo.Task {
	return append([]todo.Task{}, s.tasks...)
}

// Len returns the number of tasks.
func (s *Store) Len() int { return len(s.tasks) }

// Empty reports whether the list has no tasks.
func (s *Store) Empty() bool { return len(s.tasks) == 0 }

// Selected returns the selected index. It is 0 and meaningless on an empty list.
func (s *Store) Selected() int { return s.selected }

// Offset returns the index of the first visible row.
func (s *Store) Offset() int { return s.offset }

// Viewport returns the number of task rows visible at once.
func (s *Store) Viewport() int { return s.viewport }

// Dirty reports whether unsaved changes exist.
func (s *Store) Dirty() bool { return s.dirty }

// Current returns the selected task.
func (s *Store) Current() (todo.Task, bool) {
	if s.Empty() {
		return todo.Task{}, false
	}
	return s.tasks[s.selected], true
}

// Window returns the visible slice of tasks, starting at Offset.
func (s *Store) Window() []todo.Task {
	if s.offset >= len(s.tasks) {
		return nil
	}
	end := min(s.offset+s.viewport, len(s.tasks))
	return append([]todo.Task(nil), s.tasks[s.offset:end]...)
}

// Uncompleted counts the open tasks.
func (s *Store) Uncompleted() int {
	return todo.Uncompleted(s.tasks)
}

// SetViewport changes the viewport height and scrolls to keep the selection visible.
func (s *Store) SetViewport(height int) {
	s.viewport = max(height, 1)
	s.follow()
}

// MarkDirty records that unsaved changes exist.
func (s *Store) MarkDirty() { s.dirty = true }

// SetDirty overrides the dirty flag. Edit sessions use it to restore the
// flag when nothing was changed.
func (s *Store) SetDirty(dirty bool) { s.dirty = dirty }

// MoveSelection moves the selection by delta, clamped to the list bounds.
func (s *Store) MoveSelection(delta int) {
	if s.Empty() {
		return
	}
	s.selected = clamp(s.selected+delta, 0, len(s.tasks)-1)
	s.follow()
}

// JumpToStart selects the first task.
func (s *Store) JumpToStart() {
	if s.Empty() {
		return
	}
	s.selected = 0
	s.follow()
}

// JumpToEnd selects the last task.
func (s *Store) JumpToEnd() {
	if s.Empty() {
		return
	}
	s.selected = len(s.tasks) - 1
	s.follow()
}

// MoveTaskUp swaps the selected task with the one above it.
func (s *Store) MoveTaskUp() bool {
	if s.Empty() || s.selected == 0 {
		return false
	}
	i := s.selected
	s.tasks[i-1], s.tasks[i] = s.tasks[i], s.tasks[i-1]
	s.selected--
	s.MarkDirty()
	s.follow()
	return true
}

// MoveTaskDown swaps the selected task with the one below it.
func (s *Store) MoveTaskDown() bool {
	if s.Empty() || s.selected == len(s.tasks)-1 {
		return false
	}
	i := s.selected
	s.tasks[i+1], s.tasks[i] = s.tasks[i], s.tasks[i+1]
	s.selected++
	s.MarkDirty()
	s.follow()
	return true
}

// ToggleCompleted flips the completed flag of the selected task.
func (s *Store) ToggleCompleted() bool {
	if s.Empty() {
		return false
	}
	s.tasks[s.selected].Completed = !s.tasks[s.selected].Completed
	s.MarkDirty()
	return true
}

// DeleteSelected removes the selected task. The selection stays on the
// same index, or moves up one when the last task was removed.
func (s *Store) DeleteSelected() bool {
	if s.Empty() {
		return false
	}
	i := s.selected
	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	if s.selected >= len(s.tasks) {
		s.selected = max(len(s.tasks)-1, 0)
	}
	s.MarkDirty()
	s.follow()
	return true
}

// InsertAfterSelected inserts an empty task after the selection, at the
// selected task's level, and selects it. On an empty list the task goes
// to index 0 at level 0. It reports true so the caller starts editing.
func (s *Store) InsertAfterSelected() bool {
	task := todo.Task{}
	if s.Empty() {
		s.tasks = append(s.tasks, task)
		s.selected = 0
	} else {
		task.Level = s.tasks[s.selected].Level
		at := s.selected + 1
		s.tasks = append(s.tasks, todo.Task{})
		copy(s.tasks[at+1:], s.tasks[at:])
		s.tasks[at] = task
		s.selected = at
	}
	s.MarkDirty()
	s.follow()
	return true
}

// Indent increases the selected task's level.
func (s *Store) Indent() bool {
	if s.Empty() {
		return false
	}
	s.tasks[s.selected].Level++
	s.MarkDirty()
	return true
}

// Outdent decreases the selected task's level, stopping at 0.
func (s *Store) Outdent() bool {
	if s.Empty() || s.tasks[s.selected].Level <= 0 {
		return false
	}
	s.tasks[s.selected].Level--
	s.MarkDirty()
	return true
}

// SetDescription replaces the selected task's description.
func (s *Store) SetDescription(description string) bool {
	if s.Empty() {
		return false
	}
	s.tasks[s.selected].Description = description
	return true
}

// follow scrolls by the minimum amount needed to keep the selection visible.
func (s *Store) follow() {
	if s.Empty() {
		s.selected = 0
		s.offset = 0
		return
	}
	if s.selected < s.offset {
		s.offset = s.selected
	}
	if s.selected > s.offset+s.viewport-1 {
		s.offset = s.selected - s.viewport + 1
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
