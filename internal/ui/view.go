package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/nibzard/checklist-go/internal/dispatch"
	"github.com/nibzard/checklist-go/internal/todo"
)

const ellipsis = "…"

// newHelp returns a help model that renders plain text so the status bar
// background is not interrupted by per-key styling.
func newHelp() help.Model {
	h := help.New()
	plain := lipgloss.NewStyle()
	h.ShortSeparator = ", "
	h.Ellipsis = ellipsis
	h.Styles.ShortKey = plain
	h.Styles.ShortDesc = plain
	h.Styles.ShortSeparator = plain
	h.Styles.Ellipsis = plain
	return h
}

// renderFrame draws the task window followed by the status row. Width and
// height of zero mean the terminal size is not known yet.
func renderFrame(f dispatch.Frame, width int, showHelp bool, h help.Model) string {
	var b strings.Builder

	rows := f.Viewport
	if f.Total == 0 {
		b.WriteString(emptyStyle.Render("No tasks."))
		b.WriteString("\n")
		rows--
	} else {
		for i, task := range f.Tasks {
			line := renderTask(task, f.Offset+i == f.Selected, editViewFor(f, i))
			if width > 0 {
				line = ansi.Truncate(line, width, ellipsis)
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
		rows -= len(f.Tasks)
	}
	for ; rows > 0; rows-- {
		b.WriteString("\n")
	}

	b.WriteString(renderStatus(f, width, showHelp, h))
	return b.String()
}

func editViewFor(f dispatch.Frame, row int) *dispatch.EditView {
	if f.Edit == nil || f.Offset+row != f.Selected {
		return nil
	}
	return f.Edit
}

func renderTask(task todo.Task, selected bool, edit *dispatch.EditView) string {
	prefix := "[" + task.Checkbox() + "] " + strings.Repeat(todo.IndentUnit, task.Level)

	if edit != nil {
		return prefix + renderEditLine(edit)
	}

	desc := task.Description
	style := lipgloss.NewStyle()
	if selected {
		style = selectedStyle
	}
	if task.Completed {
		style = style.Inherit(completedStyle)
	}
	return prefix + style.Render(desc)
}

func renderEditLine(edit *dispatch.EditView) string {
	text := []rune(edit.Text)
	cursor := min(max(edit.Cursor, 0), len(text))

	at := " "
	after := ""
	if cursor < len(text) {
		at = string(text[cursor])
		after = string(text[cursor+1:])
	}
	return editingStyle.Render(string(text[:cursor])) +
		cursorStyle.Render(at) +
		editingStyle.Render(after)
}

func renderStatus(f dispatch.Frame, width int, showHelp bool, h help.Model) string {
	badge := unchangedStyle.Render(" [NO CHANGES] ")
	if f.Dirty {
		badge = changedStyle.Render(" [CHANGED] ")
	}
	count := countStyle.Render(fmt.Sprintf(" %d uncompleted ", f.Uncompleted))
	right := badge + count

	var left string
	if showHelp {
		bindings := f.Keys.BrowseHelp()
		if f.State == dispatch.Editing {
			bindings = f.Keys.EditHelp()
		}
		left = h.ShortHelpView(bindings)
	}

	if width <= 0 {
		if left == "" {
			return right
		}
		return helpBarStyle.Render(left) + " " + right
	}

	avail := max(width-ansi.StringWidth(right), 0)
	left = ansi.Truncate(left, avail, ellipsis)
	pad := avail - ansi.StringWidth(left)
	return helpBarStyle.Render(left+strings.Repeat(" ", pad)) + right
}
