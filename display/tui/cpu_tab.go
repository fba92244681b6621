package tui

import (
	"fmt"
	"strings"

	"gitlab.com/tinyland/lab/procpulse/display/widgets"
)

// renderCpuTab renders the aggregate CPU history sparkline and one gauge
// per core. cpuUsage[0] is the aggregate "cpu" line of /proc/stat, the
// rest are per-core values.
func (m Model) renderCpuTab(height int) string {
	var sb strings.Builder

	sb.WriteString(styleSection.Render("CPU Usage"))
	sb.WriteString("\n\n")

	if len(m.cpuUsage) == 0 {
		sb.WriteString(styleMuted.Render("Collecting..."))
		return sb.String()
	}

	spark := widgets.RenderSparkline(widgets.SparklineConfig{
		Data:  m.cpuHist.Column(0),
		Width: m.chartWidth(),
		Max:   100,
		Color: colorPrimary,
	})
	sb.WriteString(fmt.Sprintf("Total %5.1f%%  %s\n\n", m.cpuUsage[0], spark))

	for core, usage := range m.cpuUsage[1:] {
		sb.WriteString(widgets.RenderGauge(widgets.GaugeConfig{
			Width:       40,
			Percent:     usage,
			Label:       fmt.Sprintf("Core %2d", core),
			ShowPercent: true,
		}))
		sb.WriteString("\n")
	}

	return sb.String()
}

// chartWidth is the sparkline width that fits beside its labels.
func (m Model) chartWidth() int {
	width := m.width - 20
	if width < 10 {
		width = 10
	}
	if width > 100 {
		width = 100
	}
	return width
}
