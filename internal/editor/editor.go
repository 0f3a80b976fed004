// Package editor implements the in-place line editor used to change a
// task description.
package editor

import "unicode"

// Result is the outcome of an edit session.
type Result struct {
	// Description is the text to store in the task.
	Description string
	// Committed is false when the session was cancelled.
	Committed bool
	// Dirty is the dirty flag the store should carry after the session.
	Dirty bool
}

// Editor holds the text under edit and a cursor measured in runes from
// the start of the text.
type Editor struct {
	text     []rune
	cursor   int
	original string
	wasDirty bool
}

// New starts a session on description with the cursor at the end.
// wasDirty is the store's dirty flag when the session began.
func New(description string, wasDirty bool) *Editor {
	text := []rune(description)
	return &Editor{
		text:     text,
		cursor:   len(text),
		original: description,
		wasDirty: wasDirty,
	}
}

// Text returns the current text.
func (e *Editor) Text() string { return string(e.text) }

// Cursor returns the cursor offset in runes.
func (e *Editor) Cursor() int { return e.cursor }

// Original returns the description the session started from.
func (e *Editor) Original() string { return e.original }

// Changed reports whether the text differs from the original.
func (e *Editor) Changed() bool { return string(e.text) != e.original }

// Insert splices r in at the cursor and advances the cursor. Line breaks
// and other non-printable runes are ignored.
func (e *Editor) Insert(r rune) {
	if !unicode.IsPrint(r) {
		return
	}
	e.text = append(e.text, 0)
	copy(e.text[e.cursor+1:], e.text[e.cursor:])
	e.text[e.cursor] = r
	e.cursor++
}

// InsertRunes inserts each rune in turn, as when text is pasted.
func (e *Editor) InsertRunes(rs []rune) {
	for _, r := range rs {
		e.Insert(r)
	}
}

// Backspace removes the rune before the cursor.
func (e *Editor) Backspace() {
	if e.cursor == 0 {
		return
	}
	e.text = append(e.text[:e.cursor-1], e.text[e.cursor:]...)
	e.cursor--
}

// Delete removes the rune under the cursor.
func (e *Editor) Delete() {
	if e.cursor >= len(e.text) {
		return
	}
	e.text = append(e.text[:e.cursor], e.text[e.cursor+1:]...)
}

// Left moves the cursor one rune left. With word set it keeps moving
// until it lands on a space or reaches the start.
func (e *Editor) Left(word bool) {
	for e.cursor > 0 {
		e.cursor--
		if !word || e.text[e.cursor] == ' ' {
			return
		}
	}
}

// Right moves the cursor one rune right. With word set it keeps moving
// until it lands on a space or reaches the end.
func (e *Editor) Right(word bool) {
	for e.cursor < len(e.text) {
		e.cursor++
		if !word || e.cursor == len(e.text) || e.text[e.cursor] == ' ' {
			return
		}
	}
}

// Home moves the cursor to the start of the text.
func (e *Editor) Home() { e.cursor = 0 }

// End moves the cursor past the last rune.
func (e *Editor) End() { e.cursor = len(e.text) }

// Commit ends the session keeping the edited text. An unchanged commit on
// a clean store leaves the store clean.
func (e *Editor) Commit() Result {
	return Result{
		Description: e.Text(),
		Committed:   true,
		Dirty:       e.wasDirty || e.Changed(),
	}
}

// Cancel ends the session discarding the edited text and restores the
// dirty flag the store had when the session began.
func (e *Editor) Cancel() Result {
	return Result{
		Description: e.original,
		Committed:   false,
		Dirty:       e.wasDirty,
	}
}
