package editor

import "testing"

func TestNewPlacesCursorAtEnd(t *testing.T) {
	e := New("héllo", false)
	if e.Cursor() != 5 {
		t.Errorf("Cursor: got %d, want 5", e.Cursor())
	}
	if e.Text() != "héllo" {
		t.Errorf("Text: got %q", e.Text())
	}
}

func TestInsert(t *testing.T) {
	e := New("ac", false)
	e.Left(false)
	e.Insert('b')
	if e.Text() != "abc" || e.Cursor() != 2 {
		t.Errorf("after insert: text=%q cursor=%d", e.Text(), e.Cursor())
	}
	e.Home()
	e.Insert('>')
	if e.Text() != ">abc" || e.Cursor() != 1 {
		t.Errorf("insert at start: text=%q cursor=%d", e.Text(), e.Cursor())
	}
	e.Insert('\n')
	e.Insert('\t')
	if e.Text() != ">abc" {
		t.Errorf("control runes inserted: %q", e.Text())
	}
	e.End()
	e.InsertRunes([]rune("→✓"))
	if e.Text() != ">abc→✓" || e.Cursor() != 6 {
		t.Errorf("InsertRunes: text=%q cursor=%d", e.Text(), e.Cursor())
	}
}

func TestBackspaceAndDelete(t *testing.T) {
	e := New("abc", false)
	e.Backspace()
	if e.Text() != "ab" || e.Cursor() != 2 {
		t.Errorf("Backspace at end: text=%q cursor=%d", e.Text(), e.Cursor())
	}
	e.Delete()
	if e.Text() != "ab" {
		t.Errorf("Delete at end changed text: %q", e.Text())
	}
	e.Home()
	e.Backspace()
	if e.Text() != "ab" || e.Cursor() != 0 {
		t.Errorf("Backspace at start: text=%q cursor=%d", e.Text(), e.Cursor())
	}
	e.Delete()
	if e.Text() != "b" || e.Cursor() != 0 {
		t.Errorf("Delete at start: text=%q cursor=%d", e.Text(), e.Cursor())
	}
}

func TestCursorBounds(t *testing.T) {
	e := New("ab", false)
	e.Right(false)
	e.Right(true)
	if e.Cursor() != 2 {
		t.Errorf("Right past end: got %d", e.Cursor())
	}
	e.Left(false)
	e.Left(false)
	e.Left(false)
	e.Left(true)
	if e.Cursor() != 0 {
		t.Errorf("Left past start: got %d", e.Cursor())
	}

	empty := New("", false)
	empty.Left(true)
	empty.Right(true)
	empty.Backspace()
	empty.Delete()
	if empty.Cursor() != 0 || empty.Text() != "" {
		t.Errorf("empty editor: cursor=%d text=%q", empty.Cursor(), empty.Text())
	}
}

func TestWordSkip(t *testing.T) {
	// spaces at offsets 3 and 8
	const text = "buy some milk"

	tests := []struct {
		name  string
		start int
		right bool
		want  int
	}{
		{"right from start stops on space", 0, true, 3},
		{"right from space moves at least one", 3, true, 8},
		{"right inside last word reaches end", 9, true, 13},
		{"left from end stops on space", 13, false, 8},
		{"left from space moves at least one", 8, false, 3},
		{"left inside first word reaches start", 2, false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New(text, false)
			e.Home()
			for i := 0; i < tt.start; i++ {
				e.Right(false)
			}
			if tt.right {
				e.Right(true)
			} else {
				e.Left(true)
			}
			if e.Cursor() != tt.want {
				t.Errorf("cursor: got %d, want %d", e.Cursor(), tt.want)
			}
		})
	}
}

func TestHomeEnd(t *testing.T) {
	e := New("hello", false)
	e.Home()
	if e.Cursor() != 0 {
		t.Errorf("Home: got %d", e.Cursor())
	}
	e.End()
	if e.Cursor() != 5 {
		t.Errorf("End: got %d", e.Cursor())
	}
}

func TestCommitDirty(t *testing.T) {
	tests := []struct {
		name     string
		wasDirty bool
		edit     func(*Editor)
		want     bool
	}{
		{"unchanged on clean store", false, func(*Editor) {}, false},
		{"changed back to original", false, func(e *Editor) { e.Insert('x'); e.Backspace() }, false},
		{"changed on clean store", false, func(e *Editor) { e.Insert('x') }, true},
		{"unchanged on dirty store", true, func(*Editor) {}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New("task", tt.wasDirty)
			tt.edit(e)
			res := e.Commit()
			if !res.Committed {
				t.Error("Committed: got false")
			}
			if res.Dirty != tt.want {
				t.Errorf("Dirty: got %v, want %v", res.Dirty, tt.want)
			}
		})
	}
}

func TestCancelRestores(t *testing.T) {
	for _, wasDirty := range []bool{false, true} {
		e := New("task", wasDirty)
		e.InsertRunes([]rune(" more"))
		res := e.Cancel()
		if res.Committed {
			t.Error("Committed: got true")
		}
		if res.Description != "task" {
			t.Errorf("Description: got %q, want original", res.Description)
		}
		if res.Dirty != wasDirty {
			t.Errorf("Dirty: got %v, want %v", res.Dirty, wasDirty)
		}
	}
}
