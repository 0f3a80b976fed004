package dispatch

// Key is a key press.
type Key struct {
	// Name is the bubbletea-style key name, such as "a", "ctrl+up" or "esc".
	Name string
	// Runes is the text the key produces, empty for control keys.
	Runes []rune
}

// String returns the key name. It makes Key usable with key.Matches.
func (k Key) String() string { return k.Name }

// RuneKey returns the key that types r.
func RuneKey(r rune) Key {
	return Key{Name: string(r), Runes: []rune{r}}
}

// NamedKey returns a control key such as "enter" or "ctrl+left".
func NamedKey(name string) Key {
	return Key{Name: name}
}

// EventKind distinguishes events.
type EventKind int

const (
	// EventKey is a key press.
	EventKey EventKind = iota
	// EventResize reports a new viewport height.
	EventResize
)

// Event is one input event.
type Event struct {
	Kind EventKind
	Key  Key
	// Height is the number of task rows available, for EventResize.
	Height int
}

// KeyEvent wraps k in an Event.
func KeyEvent(k Key) Event {
	return Event{Kind: EventKey, Key: k}
}

// ResizeEvent reports a viewport of height rows.
func ResizeEvent(height int) Event {
	return Event{Kind: EventResize, Height: height}
}
