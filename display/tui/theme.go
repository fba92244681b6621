package tui

import "github.com/charmbracelet/lipgloss"

// Color palette for the dashboard.
const (
	colorPrimary   = lipgloss.Color("#06B6D4") // Cyan
	colorSuccess   = lipgloss.Color("#22C55E") // Green
	colorDanger    = lipgloss.Color("#EF4444") // Red
	colorMuted     = lipgloss.Color("#6B7280") // Gray
	colorHighlight = lipgloss.Color("#EAB308") // Yellow
)

// Styles used throughout the TUI.
var (
	styleActiveTab   lipgloss.Style
	styleInactiveTab lipgloss.Style
	styleHeader      lipgloss.Style
	styleTitle       lipgloss.Style
	styleSection     lipgloss.Style
	styleMuted       lipgloss.Style
)

func init() {
	styleActiveTab = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(colorPrimary).
		Padding(0, 2)

	styleInactiveTab = lipgloss.NewStyle().
		Foreground(colorMuted).
		Padding(0, 2)

	styleHeader = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(colorMuted)

	styleTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(colorHighlight).
		Padding(0, 1)

	styleSection = lipgloss.NewStyle().
		Bold(true).
		Foreground(colorPrimary)

	styleMuted = lipgloss.NewStyle().
		Foreground(colorMuted)
}
