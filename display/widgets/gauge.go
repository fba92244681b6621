package widgets

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// GaugeConfig controls the appearance of a horizontal bar gauge.
type GaugeConfig struct {
	// Width is the character width of the bar itself.
	Width int
	// Percent is the fill value from 0 to 100.
	Percent float64
	// Label is optional text shown to the left of the bar.
	Label string
	// Detail is optional text shown to the right instead of the bare
	// percentage, e.g. "1.2 GiB/7.6 GiB (15.8%)".
	Detail string
	// ShowPercent appends "XX%" when Detail is empty.
	ShowPercent bool
}

// gaugeColor maps a fill percentage to green, yellow, or red.
func gaugeColor(percent float64) lipgloss.Color {
	switch {
	case percent >= 90:
		return lipgloss.Color("#EF4444")
	case percent >= 70:
		return lipgloss.Color("#EAB308")
	default:
		return lipgloss.Color("#22C55E")
	}
}

// RenderGauge renders a horizontal bar gauge.
// Format: [Label] ████████░░░░ [Detail|XX%]
func RenderGauge(cfg GaugeConfig) string {
	percent := math.Max(0, math.Min(100, cfg.Percent))

	width := cfg.Width
	if width <= 0 {
		width = 20
	}

	filled := int(math.Round(percent / 100.0 * float64(width)))
	bar := lipgloss.NewStyle().Foreground(gaugeColor(percent)).Render(strings.Repeat("█", filled)) +
		strings.Repeat("░", width-filled)

	var sb strings.Builder
	if cfg.Label != "" {
		sb.WriteString(cfg.Label)
		sb.WriteString(" ")
	}
	sb.WriteString(bar)
	if cfg.Detail != "" {
		sb.WriteString(" ")
		sb.WriteString(cfg.Detail)
	} else if cfg.ShowPercent {
		sb.WriteString(fmt.Sprintf(" %5.1f%%", percent))
	}

	return sb.String()
}

// FormatBytes renders a byte count with a binary unit suffix.
func FormatBytes(bytes uint64) string {
	const (
		kib = 1 << 10
		mib = 1 << 20
		gib = 1 << 30
		tib = 1 << 40
	)

	switch {
	case bytes >= tib:
		return fmt.Sprintf("%.2f TiB", float64(bytes)/tib)
	case bytes >= gib:
		return fmt.Sprintf("%.2f GiB", float64(bytes)/gib)
	case bytes >= mib:
		return fmt.Sprintf("%.2f MiB", float64(bytes)/mib)
	case bytes >= kib:
		return fmt.Sprintf("%.2f KiB", float64(bytes)/kib)
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}
