// Package dispatch turns key events into task list and line editor
// operations.
//
// The Machine is a three-state automaton:
//
//	Browsing --insert/edit--> Editing --commit/cancel--> Browsing
//	Browsing --save/quit----> Exiting (terminal)
//
// Run drives a Machine from a pull-based EventSource and draws through a
// Renderer. The only blocking point is EventSource.Next, which waits for
// at most the poll interval, so the loop never blocks indefinitely. A
// single goroutine owns the Machine for its whole life; no locking is
// involved.
//
// Keys are named the way bubbletea names them ("j", "ctrl+up",
// "shift+tab", " " for space) so that KeyMap bindings built with
// bubbles/key match them directly.
package dispatch
