// Package todo parses and writes checklist files.
//
// A checklist file is plain UTF-8 text. Every line of the form
//
//	<indent>- [ ] description
//	<indent>- [x] description
//
// becomes a Task. The indent is made of IndentUnit (two spaces) repeated
// once per nesting level; an indent that is not an exact multiple of the
// unit is truncated by integer division. The checkbox is a space (open)
// or x/X (completed).
//
// # Lossy round trip
//
// Lines that do not match the grammar are skipped when parsing and are
// therefore dropped when the list is written back. Only the checklist
// lines survive a Load/Save cycle:
//
//	Parse(Serialize(tasks)) == tasks
//
// holds for every task list whose descriptions contain no newlines.
//
// # File Format
//
// When writing checklist files, the package uses:
//   - one task per line, in list order
//   - a lowercase x for completed tasks
//   - a trailing newline after every task
//   - an atomic replace of the target file (temp file + rename)
//
// # Export
//
// Export renders a task list as JSON and validates it against the embedded
// checklist schema (JSON Schema draft 2020-12) before it is handed out.
package todo
