package dispatch

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

// KeyMap holds the bindings for both states. Browse bindings are only
// consulted while Browsing and edit bindings only while Editing, so the
// same key may appear in both groups.
type KeyMap struct {
	// Browsing
	Up       key.Binding
	Down     key.Binding
	MoveUp   key.Binding
	MoveDown key.Binding
	Toggle   key.Binding
	Delete   key.Binding
	Insert   key.Binding
	Edit     key.Binding
	Indent   key.Binding
	Outdent  key.Binding
	Top      key.Binding
	Bottom   key.Binding
	Save     key.Binding
	Quit     key.Binding

	// Editing
	Commit        key.Binding
	Cancel        key.Binding
	Left          key.Binding
	Right         key.Binding
	WordLeft      key.Binding
	WordRight     key.Binding
	LineStart     key.Binding
	LineEnd       key.Binding
	Backspace     key.Binding
	DeleteForward key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		MoveUp: key.NewBinding(
			key.WithKeys("ctrl+up", "K"),
			key.WithHelp("ctrl+↑/K", "move up"),
		),
		MoveDown: key.NewBinding(
			key.WithKeys("ctrl+down", "J"),
			key.WithHelp("ctrl+↓/J", "move down"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "toggle"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "del"),
		),
		Insert: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "ins"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		Indent: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "indent"),
		),
		Outdent: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "outdent"),
		),
		Top: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("home/g", "top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("end/G", "bottom"),
		),
		Save: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "quit & save"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),

		Commit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "confirm"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		Left: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←/→", "move"),
		),
		Right: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("←/→", "move"),
		),
		WordLeft: key.NewBinding(
			key.WithKeys("ctrl+left", "alt+b"),
			key.WithHelp("ctrl+←/→", "word"),
		),
		WordRight: key.NewBinding(
			key.WithKeys("ctrl+right", "alt+f"),
			key.WithHelp("ctrl+←/→", "word"),
		),
		LineStart: key.NewBinding(
			key.WithKeys("home", "ctrl+a"),
			key.WithHelp("home/end", "line start/end"),
		),
		LineEnd: key.NewBinding(
			key.WithKeys("end", "ctrl+e"),
			key.WithHelp("home/end", "line start/end"),
		),
		Backspace: key.NewBinding(
			key.WithKeys("backspace"),
			key.WithHelp("backspace", "delete back"),
		),
		DeleteForward: key.NewBinding(
			key.WithKeys("delete", "ctrl+d"),
			key.WithHelp("del", "delete"),
		),
	}
}

// browseBindings maps action names to the Browsing bindings.
func (km *KeyMap) browseBindings() map[string]*key.Binding {
	return map[string]*key.Binding{
		"up":        &km.Up,
		"down":      &km.Down,
		"move_up":   &km.MoveUp,
		"move_down": &km.MoveDown,
		"toggle":    &km.Toggle,
		"delete":    &km.Delete,
		"insert":    &km.Insert,
		"edit":      &km.Edit,
		"indent":    &km.Indent,
		"outdent":   &km.Outdent,
		"top":       &km.Top,
		"bottom":    &km.Bottom,
		"save":      &km.Save,
		"quit":      &km.Quit,
	}
}

// editBindings maps action names to the Editing bindings.
func (km *KeyMap) editBindings() map[string]*key.Binding {
	return map[string]*key.Binding{
		"commit":         &km.Commit,
		"cancel":         &km.Cancel,
		"left":           &km.Left,
		"right":          &km.Right,
		"word_left":      &km.WordLeft,
		"word_right":     &km.WordRight,
		"line_start":     &km.LineStart,
		"line_end":       &km.LineEnd,
		"backspace":      &km.Backspace,
		"delete_forward": &km.DeleteForward,
	}
}

// ActionNames lists every action name accepted by Apply, sorted.
func ActionNames() []string {
	km := DefaultKeyMap()
	var names []string
	for name := range km.browseBindings() {
		names = append(names, name)
	}
	for name := range km.editBindings() {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Apply replaces the keys of the named actions. It fails on unknown
// actions, empty key lists, and keys bound to two actions of one state.
func (km *KeyMap) Apply(overrides map[string][]string) error {
	if len(overrides) == 0 {
		return nil
	}
	browse := km.browseBindings()
	edit := km.editBindings()

	names := make([]string, 0, len(overrides))
	for name := range overrides {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		keys := trimKeys(overrides[name])
		if len(keys) == 0 {
			return fmt.Errorf("keys.%s: no keys given", name)
		}
		b, ok := browse[name]
		if !ok {
			b, ok = edit[name]
		}
		if !ok {
			return fmt.Errorf("keys.%s: unknown action (known: %s)", name, strings.Join(ActionNames(), ", "))
		}
		b.SetKeys(keys...)
		b.SetHelp(strings.Join(keys, "/"), b.Help().Desc)
	}

	if err := checkConflicts(browse); err != nil {
		return err
	}
	return checkConflicts(edit)
}

func trimKeys(keys []string) []string {
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		// A lone space is the space bar; anything else is trimmed.
		if k != " " {
			k = strings.TrimSpace(k)
		}
		if k == "space" {
			k = " "
		}
		if k != "" {
			out = append(out, k)
		}
	}
	return out
}

func checkConflicts(group map[string]*key.Binding) error {
	names := make([]string, 0, len(group))
	for name := range group {
		names = append(names, name)
	}
	sort.Strings(names)

	owner := make(map[string]string)
	for _, name := range names {
		for _, k := range group[name].Keys() {
			if prev, ok := owner[k]; ok {
				return fmt.Errorf("key %q is bound to both %s and %s", k, prev, name)
			}
			owner[k] = name
		}
	}
	return nil
}

// BrowseHelp returns the bindings shown in the status line while Browsing.
func (km KeyMap) BrowseHelp() []key.Binding {
	return []key.Binding{km.Up, km.Down, km.Toggle, km.Insert, km.Delete, km.Edit, km.Save, km.Quit}
}

// EditHelp returns the bindings shown in the status line while Editing.
func (km KeyMap) EditHelp() []key.Binding {
	return []key.Binding{km.Commit, km.Cancel, km.WordLeft, km.LineStart}
}
