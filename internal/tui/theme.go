package tui

import "github.com/charmbracelet/lipgloss"

// Catppuccin Mocha, the subset the board uses.
const (
	colorPink     lipgloss.Color = "#f5c2e7"
	colorRed      lipgloss.Color = "#f38ba8"
	colorYellow   lipgloss.Color = "#f9e2af"
	colorLavender lipgloss.Color = "#b4befe"
	colorText     lipgloss.Color = "#cdd6f4"
	colorOverlay1 lipgloss.Color = "#7f849c"
	colorSurface1 lipgloss.Color = "#45475a"
)

const (
	colorAccent = colorPink
	colorFocus  = colorLavender
	colorError  = colorRed
)

var (
	crumbStyle     = lipgloss.NewStyle().Foreground(colorOverlay1)
	crumbLastStyle = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	errorStyle     = lipgloss.NewStyle().Foreground(colorError).Bold(true)
	hintStyle      = lipgloss.NewStyle().Foreground(colorYellow)
	promptStyle    = lipgloss.NewStyle().Foreground(colorFocus)
)

var frameStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(colorSurface1).
	Foreground(colorText).
	Padding(0, 1)
