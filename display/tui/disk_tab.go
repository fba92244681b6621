package tui

import (
	"fmt"
	"strings"

	"gitlab.com/tinyland/lab/procpulse/display/widgets"
	"gitlab.com/tinyland/lab/procpulse/proc"
)

// renderDiskTab renders read/write throughput per block device: a
// sparkline of the rate history and the current rates. Devices appear in
// /proc/diskstats order.
func (m Model) renderDiskTab(height int) string {
	var sb strings.Builder

	sb.WriteString(styleSection.Render("Disk I/O"))
	sb.WriteString("\n\n")

	if len(m.diskStats) == 0 {
		sb.WriteString(styleMuted.Render("Collecting..."))
		return sb.String()
	}

	for _, dev := range m.diskStats {
		hist, ok := m.diskHist[dev.Device]
		if !ok || hist.Len() == 0 {
			sb.WriteString(fmt.Sprintf("%-10s waiting for samples\n\n", dev.Device))
			continue
		}

		last := hist.Last()
		max := hist.Max(rateFloor)

		sb.WriteString(fmt.Sprintf("%-10s read  %12s  %s\n", dev.Device,
			proc.FormatRate(last[0]),
			widgets.RenderSparkline(widgets.SparklineConfig{
				Data:  hist.Column(0),
				Width: m.chartWidth() - 20,
				Max:   max,
				Color: colorPrimary,
			})))
		sb.WriteString(fmt.Sprintf("%-10s write %12s  %s\n\n", "",
			proc.FormatRate(last[1]),
			widgets.RenderSparkline(widgets.SparklineConfig{
				Data:  hist.Column(1),
				Width: m.chartWidth() - 20,
				Max:   max,
				Color: colorHighlight,
			})))
	}

	return sb.String()
}

// rateFloor keeps throughput chart scales non-degenerate on idle
// devices.
const rateFloor = 1024.0
