package tui

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	colorPrimary = lipgloss.Color("#6C63FF")
	colorMuted   = lipgloss.Color("#666666")
	colorSuccess = lipgloss.Color("#2ECC71")
	colorWarning = lipgloss.Color("#F39C12")
	colorError   = lipgloss.Color("#E74C3C")
	colorSubtle  = lipgloss.Color("#414868")
	colorToday   = lipgloss.Color("#2EC4B6")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			Padding(0, 1)

	dirtyStyle = lipgloss.NewStyle().
			Foreground(colorWarning).
			Padding(0, 1)

	dayStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorSubtle).
			Padding(0, 1)

	activeDayStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorPrimary).
			Padding(0, 1)

	dayHeaderStyle = lipgloss.NewStyle().Bold(true)
	todayStyle     = lipgloss.NewStyle().Bold(true).Foreground(colorToday)
	outsideStyle   = lipgloss.NewStyle().Foreground(colorMuted)

	cursorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	doneStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Strikethrough(true)

	eventStyle = lipgloss.NewStyle().Italic(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(colorSuccess).
			Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorError).
			Padding(0, 1)

	helpStyle = lipgloss.NewStyle().
			Padding(0, 1)
)
