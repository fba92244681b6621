package tui

import (
	"gitlab.com/tinyland/lab/procpulse/display/widgets"
	"gitlab.com/tinyland/lab/procpulse/proc"
)

// processColumnWidths fixes the table layout so columns do not jump
// around as values change between refreshes.
var processColumnWidths = []int{10, 6, 6, 5, 7, 7, 12, 9, 9, 8, 30}

// renderProcessesTab renders the sortable, filterable process table.
func (m Model) renderProcessesTab(height int) string {
	titles := proc.ColumnTitles()
	columns := make([]widgets.Column, len(titles))
	for i, title := range titles {
		width := 0
		if i < len(processColumnWidths) {
			width = processColumnWidths[i]
		}
		columns[i] = widgets.Column{Title: title, Width: width}
	}

	rows := make([][]string, len(m.visible))
	for i, record := range m.visible {
		rows[i] = record.Row()
	}

	cfg := widgets.DefaultTableConfig()
	cfg.Columns = columns
	cfg.Rows = rows
	cfg.Selected = m.selected
	cfg.MaxRows = height - 1 // header line
	cfg.HeaderStyle = styleSection

	return widgets.RenderTable(cfg)
}
