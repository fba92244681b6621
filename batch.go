package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/x/term"

	"gitlab.com/tinyland/lab/procpulse/config"
	"gitlab.com/tinyland/lab/procpulse/proc"
)

// batchSeparatorWidth is the dash ruler width between the table header
// and the process rows.
const batchSeparatorWidth = 150

// clearScreen moves the cursor home after wiping the terminal, so each
// report repaints in place.
const clearScreen = "\x1b[2J\x1b[1;1H"

// runBatch prints a full stats report to out every refresh interval and
// appends the same report to the configured log file. iterations 0 runs
// until the context is cancelled.
func runBatch(ctx context.Context, collector *proc.Collector, cfg *config.Config,
	iterations uint, out *os.File, logger *slog.Logger) error {

	refresh, err := cfg.Refresh()
	if err != nil {
		return err
	}

	logFile, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logFile.Close()

	// Repainting in place only makes sense on a terminal; piped output
	// gets plain sequential reports.
	isTTY := term.IsTerminal(out.Fd())

	var iteration uint
	for iterations == 0 || iteration != iterations {
		report, err := buildReport(collector, cfg)
		if err != nil {
			return err
		}
		iteration++

		if isTTY {
			fmt.Fprint(out, clearScreen)
		}
		fmt.Fprint(out, report)

		if _, err := io.WriteString(logFile, report+"\n"); err != nil {
			logger.Warn("log write failed", "file", cfg.Log.File, "error", err)
		}

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(refresh):
		}
	}

	return nil
}

// buildReport assembles one stats report: system memory and load, CPU
// usage per core, and the process table under the configured view.
// Per-source read failures become report lines; an unreadable /proc is
// an error and ends the run.
func buildReport(collector *proc.Collector, cfg *config.Config) (string, error) {
	var sb strings.Builder

	if info, err := proc.ReadSysinfo(); err == nil {
		// Memory values scale to MB through the kernel's mem_unit.
		unitDiv := uint64(1_000_000) / uint64(info.Unit)
		if unitDiv == 0 {
			unitDiv = 1
		}
		fmt.Fprintf(&sb, "totalram: %d\nsharedram: %d\nfreeram: %d\nbufferram: %d\ntotalswap: %d\nfreeswap: %d\nuptime: %d\nloads: %v\n",
			info.Totalram/unitDiv,
			info.Sharedram/unitDiv,
			info.Freeram/unitDiv,
			info.Bufferram/unitDiv,
			info.Totalswap/unitDiv,
			info.Freeswap/unitDiv,
			info.Uptime,
			info.Loads,
		)
	} else {
		fmt.Fprintf(&sb, "Error retrieving system info: %v\n", err)
	}

	if usage, err := collector.CPUUsage(); err == nil {
		sb.WriteString("CPU Usage:\n")
		for i, u := range usage {
			if i == 0 {
				fmt.Fprintf(&sb, "Total CPU: %.2f%%\n", u)
			} else {
				fmt.Fprintf(&sb, "Core %d: %.2f%%\n", i, u)
			}
		}
	} else {
		fmt.Fprintf(&sb, "Error retrieving CPU usage: %v\n", err)
	}

	fmt.Fprintf(&sb, "%-6s\t%-6s\t%-6s\t%-6s\t%-8s\t%-8s\t%-12s\t%-10s\t%-10s\t%-8s\t%-20s\n",
		"UID", "PID", "PPID", "STATE", "MEM(MB)", "THREADS",
		"VIRT_MEM(MB)", "USER_TIME", "SYS_TIME", "Priority", "Name")
	sb.WriteString(strings.Repeat("-", batchSeparatorWidth))
	sb.WriteByte('\n')

	records, err := collector.Processes()
	if err != nil {
		return "", err
	}
	visible, err := viewFromConfig(records, cfg)
	if err != nil {
		return "", err
	}
	for _, record := range visible {
		sb.WriteString(record.String())
		sb.WriteByte('\n')
	}

	return sb.String(), nil
}
