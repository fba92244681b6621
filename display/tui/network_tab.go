package tui

import (
	"fmt"
	"strings"

	"gitlab.com/tinyland/lab/procpulse/display/widgets"
	"gitlab.com/tinyland/lab/procpulse/proc"
)

// renderNetworkTab renders receive/transmit throughput per interface.
// Interfaces appear in /proc/net/dev order; loopback is excluded at
// collection time.
func (m Model) renderNetworkTab(height int) string {
	var sb strings.Builder

	sb.WriteString(styleSection.Render("Network I/O"))
	sb.WriteString("\n\n")

	if len(m.netStats) == 0 {
		sb.WriteString(styleMuted.Render("Collecting..."))
		return sb.String()
	}

	for _, iface := range m.netStats {
		hist, ok := m.netHist[iface.Interface]
		if !ok || hist.Len() == 0 {
			sb.WriteString(fmt.Sprintf("%-10s waiting for samples\n\n", iface.Interface))
			continue
		}

		last := hist.Last()
		max := hist.Max(rateFloor)

		sb.WriteString(fmt.Sprintf("%-10s rx %12s  %s\n", iface.Interface,
			proc.FormatRate(last[0]),
			widgets.RenderSparkline(widgets.SparklineConfig{
				Data:  hist.Column(0),
				Width: m.chartWidth() - 17,
				Max:   max,
				Color: colorPrimary,
			})))
		sb.WriteString(fmt.Sprintf("%-10s tx %12s  %s\n\n", "",
			proc.FormatRate(last[1]),
			widgets.RenderSparkline(widgets.SparklineConfig{
				Data:  hist.Column(1),
				Width: m.chartWidth() - 17,
				Max:   max,
				Color: colorHighlight,
			})))
	}

	return sb.String()
}
