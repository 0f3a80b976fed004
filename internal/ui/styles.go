package ui

import "github.com/charmbracelet/lipgloss"

// ANSI palette indices so the editor follows the terminal theme.
var (
	colorBlack    = lipgloss.Color("0")
	colorRed      = lipgloss.Color("1")
	colorGreen    = lipgloss.Color("2")
	colorGrey     = lipgloss.Color("7")
	colorDarkGrey = lipgloss.Color("8")
	colorWhite    = lipgloss.Color("15")
)

var (
	selectedStyle = lipgloss.NewStyle().
			Foreground(colorGreen).
			Background(colorDarkGrey)

	editingStyle = lipgloss.NewStyle().
			Foreground(colorBlack).
			Background(colorGreen)

	cursorStyle = editingStyle.Reverse(true)

	completedStyle = lipgloss.NewStyle().Faint(true)

	emptyStyle = lipgloss.NewStyle().Foreground(colorGrey)

	helpBarStyle = lipgloss.NewStyle().
			Foreground(colorWhite).
			Background(colorGrey)

	changedStyle = lipgloss.NewStyle().
			Foreground(colorWhite).
			Background(colorRed)

	unchangedStyle = lipgloss.NewStyle().
			Foreground(colorWhite).
			Background(colorGreen)

	countStyle = lipgloss.NewStyle().
			Foreground(colorBlack).
			Background(colorWhite)
)
