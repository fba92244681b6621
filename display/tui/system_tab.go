package tui

import (
	"fmt"
	"strings"

	"gitlab.com/tinyland/lab/procpulse/display/widgets"
	"gitlab.com/tinyland/lab/procpulse/proc"
)

// renderSystemTab renders memory and swap gauges, load averages with
// history, and the sysinfo summary (uptime, process count, shared and
// buffer RAM).
func (m Model) renderSystemTab(height int) string {
	var sb strings.Builder

	sb.WriteString(styleSection.Render("System"))
	sb.WriteString("\n\n")

	info := m.sys
	if info == nil {
		sb.WriteString(styleMuted.Render("Collecting..."))
		return sb.String()
	}

	unit := uint64(info.Unit)
	totalRAM := info.Totalram * unit
	usedRAM := (info.Totalram - info.Freeram) * unit
	totalSwap := info.Totalswap * unit
	usedSwap := (info.Totalswap - info.Freeswap) * unit

	sb.WriteString(widgets.RenderGauge(widgets.GaugeConfig{
		Width:   40,
		Percent: proc.MemoryUsedPercent(info),
		Label:   "RAM ",
		Detail: fmt.Sprintf("%s / %s (%.1f%%)",
			widgets.FormatBytes(usedRAM), widgets.FormatBytes(totalRAM),
			proc.MemoryUsedPercent(info)),
	}))
	sb.WriteString("\n")

	swapDetail := "no swap configured"
	if info.Totalswap > 0 {
		swapDetail = fmt.Sprintf("%s / %s (%.1f%%)",
			widgets.FormatBytes(usedSwap), widgets.FormatBytes(totalSwap),
			proc.SwapUsedPercent(info))
	}
	sb.WriteString(widgets.RenderGauge(widgets.GaugeConfig{
		Width:   40,
		Percent: proc.SwapUsedPercent(info),
		Label:   "Swap",
		Detail:  swapDetail,
	}))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("Load average: %.2f %.2f %.2f  %s\n",
		proc.LoadAverage(uint64(info.Loads[0])),
		proc.LoadAverage(uint64(info.Loads[1])),
		proc.LoadAverage(uint64(info.Loads[2])),
		widgets.RenderSparkline(widgets.SparklineConfig{
			Data:  m.loadHist.Column(0),
			Width: m.chartWidth() - 30,
			Max:   m.loadHist.Max(1),
			Color: colorHighlight,
		})))

	sb.WriteString(fmt.Sprintf("Memory use:   %s\n\n",
		widgets.RenderSparkline(widgets.SparklineConfig{
			Data:  m.memHist.Column(0),
			Width: m.chartWidth() - 16,
			Max:   100,
			Color: colorPrimary,
		})))

	sb.WriteString(fmt.Sprintf("Uptime:      %s\n", formatUptime(info.Uptime)))
	sb.WriteString(fmt.Sprintf("Processes:   %d\n", info.Procs))
	sb.WriteString(fmt.Sprintf("Shared RAM:  %s\n", widgets.FormatBytes(info.Sharedram*unit)))
	sb.WriteString(fmt.Sprintf("Buffer RAM:  %s\n", widgets.FormatBytes(info.Bufferram*unit)))

	return sb.String()
}

// formatUptime renders seconds of uptime as "Xd Xh Xm Xs".
func formatUptime(seconds int64) string {
	days := seconds / 86400
	hours := (seconds % 86400) / 3600
	minutes := (seconds % 3600) / 60
	secs := seconds % 60
	return fmt.Sprintf("%dd %dh %dm %ds", days, hours, minutes, secs)
}
