package widgets

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Column defines a single table column.
type Column struct {
	// Title is the header text.
	Title string
	// Width is the fixed character width. If 0, auto-calculated from content.
	Width int
}

// TableConfig holds the configuration for rendering a selectable table.
type TableConfig struct {
	// Columns defines the table structure.
	Columns []Column
	// Rows is the table data. Each row is a slice of cell strings.
	Rows [][]string
	// Selected is the index of the highlighted row. -1 disables selection.
	Selected int
	// MaxRows limits how many rows are rendered. The window scrolls to
	// keep the selected row visible. 0 means all rows.
	MaxRows int
	// HeaderStyle is the lipgloss style for the header row.
	HeaderStyle lipgloss.Style
	// SelectedStyle is the lipgloss style for the selected row.
	SelectedStyle lipgloss.Style
}

// DefaultTableConfig returns a TableConfig with sensible defaults.
func DefaultTableConfig() TableConfig {
	return TableConfig{
		Selected:      -1,
		HeaderStyle:   lipgloss.NewStyle().Bold(true),
		SelectedStyle: lipgloss.NewStyle().Background(lipgloss.Color("#374151")),
	}
}

// RenderTable renders a fixed-layout table with an optional ">>" selection
// marker.
func RenderTable(cfg TableConfig) string {
	if len(cfg.Columns) == 0 {
		return ""
	}

	widths := columnWidths(cfg.Columns, cfg.Rows)

	var lines []string

	headerCells := make([]string, len(cfg.Columns))
	for i, col := range cfg.Columns {
		headerCells[i] = padOrTruncate(col.Title, widths[i])
	}
	lines = append(lines, cfg.HeaderStyle.Render("   "+strings.Join(headerCells, "  ")))

	first, last := visibleWindow(len(cfg.Rows), cfg.Selected, cfg.MaxRows)
	for rowIdx := first; rowIdx < last; rowIdx++ {
		row := cfg.Rows[rowIdx]
		cells := make([]string, len(cfg.Columns))
		for i := range cfg.Columns {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			cells[i] = padOrTruncate(cell, widths[i])
		}

		marker := "   "
		line := strings.Join(cells, "  ")
		if rowIdx == cfg.Selected {
			marker = ">> "
			line = cfg.SelectedStyle.Render(line)
		}
		lines = append(lines, marker+line)
	}

	return strings.Join(lines, "\n")
}

// visibleWindow returns the [first, last) row range to render, scrolled
// so the selected row stays inside it.
func visibleWindow(total, selected, maxRows int) (int, int) {
	if maxRows <= 0 || total <= maxRows {
		return 0, total
	}
	first := 0
	if selected >= maxRows {
		first = selected - maxRows + 1
	}
	if first+maxRows > total {
		first = total - maxRows
	}
	return first, first + maxRows
}

// padOrTruncate pads a string to width, truncating with an ellipsis when
// too long.
func padOrTruncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) > width {
		if width <= 1 {
			return string(runes[:width])
		}
		return string(runes[:width-1]) + "…"
	}
	return s + strings.Repeat(" ", width-len(runes))
}

// columnWidths resolves fixed widths, auto-sizing zero-width columns from
// their content.
func columnWidths(cols []Column, rows [][]string) []int {
	widths := make([]int, len(cols))
	for i, col := range cols {
		if col.Width > 0 {
			widths[i] = col.Width
			continue
		}
		w := len([]rune(col.Title))
		for _, row := range rows {
			if i < len(row) && len([]rune(row[i])) > w {
				w = len([]rune(row[i]))
			}
		}
		if w == 0 {
			w = 1
		}
		widths[i] = w
	}
	return widths
}
