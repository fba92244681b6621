// Package widgets renders the text chart primitives of the dashboard:
// sparkline histories, usage gauges, the selectable process table, and
// the status line.
package widgets

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// sparkBlocks contains 8 unicode block characters for sparkline rendering,
// ordered from lowest to highest.
var sparkBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// SparklineConfig controls the appearance of a history sparkline.
type SparklineConfig struct {
	// Data points to render, oldest first.
	Data []float64
	// Width is the number of characters to render. If 0, uses len(Data).
	// Older points beyond Width are dropped; short histories are
	// left-padded so the newest sample stays at the right edge.
	Width int
	// Max is the top of the scale. If 0, the data maximum is used.
	// The bottom of the scale is always 0: rates and percentages never
	// go negative.
	Max float64
	// Label is optional text shown before the sparkline.
	Label string
	// Color is the lipgloss color for the sparkline characters.
	Color lipgloss.Color
}

// RenderSparkline renders a unicode block sparkline from the given
// configuration.
func RenderSparkline(cfg SparklineConfig) string {
	if len(cfg.Data) == 0 {
		return ""
	}

	data := cfg.Data
	width := cfg.Width
	if width <= 0 {
		width = len(data)
	}
	if width < len(data) {
		data = data[len(data)-width:]
	}

	max := cfg.Max
	if max <= 0 {
		for _, v := range data {
			if v > max {
				max = v
			}
		}
	}

	runes := make([]rune, 0, len(data))
	for _, v := range data {
		if max <= 0 {
			runes = append(runes, sparkBlocks[0])
			continue
		}
		normalized := v / max
		if normalized < 0 {
			normalized = 0
		}
		if normalized > 1 {
			normalized = 1
		}
		idx := int(normalized * float64(len(sparkBlocks)-1))
		runes = append(runes, sparkBlocks[idx])
	}

	spark := string(runes)
	if width > len(data) {
		spark = strings.Repeat(" ", width-len(data)) + spark
	}

	if cfg.Color != "" {
		spark = lipgloss.NewStyle().Foreground(cfg.Color).Render(spark)
	}
	if cfg.Label != "" {
		spark = cfg.Label + " " + spark
	}

	return spark
}
