package widgets

import "github.com/charmbracelet/lipgloss"

var (
	statusErrorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444"))
	statusSuccessStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#22C55E"))
)

// RenderStatusLine renders the one-line status bar. An advisory message
// takes precedence and is colored red for errors and green otherwise;
// with no message the neutral fallback text is shown unstyled.
func RenderStatusLine(message string, isErr bool, fallback string) string {
	if message == "" {
		return fallback
	}
	if isErr {
		return statusErrorStyle.Render(message)
	}
	return statusSuccessStyle.Render(message)
}
