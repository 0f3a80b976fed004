package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# checklist configuration file
# Values can be overridden by CHECKLIST_* environment variables or CLI flags

# File searched for upwards from the git root when no path is given
todo_file = "TODO.md"

# How long the editor waits for input before redrawing (milliseconds)
poll_interval_ms = 100

# Show key help in the status bar
show_help = true

# Debug logs (empty disables logging; supports ~ and $VAR)
# log_dir = "~/.checklist/logs"
log_level = "info"
log_format = "text"
log_timestamps = false
log_caller = false

# Rebind actions. Keys use bubbletea names: "a", "ctrl+s", "shift+tab", "space".
# Browsing: up down move_up move_down toggle delete insert edit indent
#           outdent top bottom save quit
# Editing:  commit cancel left right word_left word_right line_start
#           line_end backspace delete_forward
[keys]
# save = ["s", "ctrl+s"]
# quit = ["q", "ctrl+c"]
`
}
