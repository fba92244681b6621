// procpulse is a live process and resource monitor for Linux.
//
// It reads process, CPU, memory, disk, and network data from /proc and
// surfaces it either as a periodically refreshing text report, a process
// ancestry tree, or an interactive tabbed TUI. It can also send signals,
// renice, and pin processes to CPUs.
//
// Usage:
//
//	procpulse [flags]
//
// Flags:
//
//	-tui              Launch interactive dashboard
//	-t                Print process tree and exit
//	-config string    Path to configuration file
//	-r uint           Stats refresh rate in seconds
//	-n int            Max number of processes to show (0 = all)
//	-i uint           Number of iterations (0 = run until interrupted)
//	-o string         Output file for batch logs
//	-s string         Sort key (name|pid|memory|priority|user|state|threads|vmsize|utime|stime)
//	-f string         Filter key (name|user|pid|ppid|state|any)
//	-pattern string   Pattern to filter by
//	-e                The pattern should be an exact match
//	-d                Sort in descending order
//	-pid int          Target pid for control operations
//	-all              Apply the control operation to all matching processes
//	-k int            Send signal to target process(es)
//	-p int            Set priority of target process(es)
//	-c string         Comma-separated CPU list to bind target process(es) to
//	-verbose          Enable verbose logging
//	-version          Print version and exit
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sys/unix"

	"gitlab.com/tinyland/lab/procpulse/config"
	"gitlab.com/tinyland/lab/procpulse/display/tui"
	"gitlab.com/tinyland/lab/procpulse/proc"
	"gitlab.com/tinyland/lab/procpulse/procview"
)

func main() {
	var (
		configPath  = flag.String("config", "", "Path to configuration file")
		runTUI      = flag.Bool("tui", false, "Launch interactive dashboard")
		showTree    = flag.Bool("t", false, "Print process tree and exit")
		refreshRate = flag.Uint("r", 1, "Stats refresh rate in seconds")
		nprocs      = flag.Int("n", 0, "Max number of processes to show (0 = all)")
		iterations  = flag.Uint("i", 0, "Number of iterations (0 = run until interrupted)")
		outputFile  = flag.String("o", "", "Output file for batch logs")
		sortBy      = flag.String("s", "", "Sort key (name|pid|memory|priority|user|state|threads|vmsize|utime|stime)")
		filterBy    = flag.String("f", "", "Filter key (name|user|pid|ppid|state|any)")
		pattern     = flag.String("pattern", "", "Pattern to filter by")
		exactMatch  = flag.Bool("e", false, "The pattern should be an exact match")
		descending  = flag.Bool("d", false, "Sort in descending order")
		targetPID   = flag.Int("pid", 0, "Target pid for control operations")
		allProcs    = flag.Bool("all", false, "Apply the control operation to all matching processes")
		killSignal  = flag.Int("k", int(unix.SIGKILL), "Send signal to target process(es)")
		priority    = flag.Int("p", 0, "Set priority of target process(es)")
		cpuList     = flag.String("c", "", "Comma-separated CPU list to bind target process(es) to")
		verbose     = flag.Bool("verbose", false, "Enable verbose logging")
		showVersion = flag.Bool("version", false, "Print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("procpulse %s (%s) built %s\n", version, commit, date)
		os.Exit(0)
	}

	// Boolean control flags carry no value, so presence has to come from
	// flag.Visit.
	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	// ---------------------------------------------------------------
	// Load configuration and apply CLI overrides
	// ---------------------------------------------------------------

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	if set["r"] {
		cfg.Monitor.RefreshInterval = fmt.Sprintf("%ds", *refreshRate)
	}
	if set["n"] {
		cfg.Monitor.MaxProcs = *nprocs
	}
	if set["s"] {
		cfg.View.SortBy = *sortBy
	}
	if set["f"] {
		cfg.View.FilterBy = *filterBy
	}
	if set["pattern"] {
		cfg.View.Pattern = *pattern
	}
	if set["e"] {
		cfg.View.ExactMatch = *exactMatch
	}
	if set["d"] {
		cfg.View.Descending = *descending
	}
	if set["o"] {
		cfg.Log.File = *outputFile
	}
	if set["verbose"] {
		cfg.Log.Verbose = *verbose
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(cfg)
	collector := proc.NewCollector(logger)

	// ---------------------------------------------------------------
	// Control mode: signal, renice, or pin, then exit
	// ---------------------------------------------------------------

	if set["k"] || set["p"] || set["c"] {
		if !set["pid"] && !*allProcs {
			fmt.Fprintln(os.Stderr, "control operations need -pid or -all")
			os.Exit(1)
		}

		pids, err := targetPIDs(collector, cfg, *targetPID, *allProcs)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to resolve target processes: %v\n", err)
			os.Exit(1)
		}

		switch {
		case set["k"]:
			for _, pid := range pids {
				proc.KillNotify(pid, unix.Signal(*killSignal), nil)
			}
		case set["p"]:
			for _, pid := range pids {
				proc.SetPriorityNotify(pid, *priority, nil)
			}
		case set["c"]:
			cpus, err := parseCPUList(*cpuList)
			if err != nil {
				fmt.Fprintf(os.Stderr, "invalid cpu list: %v\n", err)
				os.Exit(1)
			}
			for _, pid := range pids {
				proc.BindCPUAffinityNotify(pid, cpus, nil)
			}
		}
		os.Exit(0)
	}

	// ---------------------------------------------------------------
	// Tree mode
	// ---------------------------------------------------------------

	if *showTree {
		records, err := collector.Processes()
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to read processes: %v\n", err)
			os.Exit(1)
		}
		visible, err := viewFromConfig(records, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to list processes: %v\n", err)
			os.Exit(1)
		}
		fmt.Print(procview.BuildTree(visible, 0).Render())
		os.Exit(0)
	}

	// ---------------------------------------------------------------
	// Context with signal handling
	// ---------------------------------------------------------------

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	// ---------------------------------------------------------------
	// TUI mode
	// ---------------------------------------------------------------

	if *runTUI {
		defer func() {
			if r := recover(); r != nil {
				// Restore terminal from alt-screen before printing the error.
				fmt.Print("\x1b[?1049l\x1b[?25h")
				fmt.Fprintf(os.Stderr, "procpulse: TUI panic: %v\n", r)
				os.Exit(1)
			}
		}()

		model := tui.New(collector, cfg, logger)
		p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
		if _, err := p.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "TUI error: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	// ---------------------------------------------------------------
	// Default: periodic batch report
	// ---------------------------------------------------------------

	if err := runBatch(ctx, collector, cfg, *iterations, os.Stdout, logger); err != nil {
		fmt.Fprintf(os.Stderr, "batch error: %v\n", err)
		os.Exit(1)
	}
}

// newLogger builds the structured logger. Batch and TUI modes own
// stdout, so log records go to the configured file; when the file cannot
// be opened logging is disabled rather than corrupting the display.
func newLogger(cfg *config.Config) *slog.Logger {
	level := slog.LevelInfo
	if cfg.Log.Verbose {
		level = slog.LevelDebug
	}

	var w io.Writer = io.Discard
	if f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644); err == nil {
		w = f
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// viewFromConfig applies the configured sort and filter to a snapshot.
func viewFromConfig(records []proc.ProcessRecord, cfg *config.Config) ([]proc.ProcessRecord, error) {
	count := cfg.Monitor.MaxProcs
	if count <= 0 {
		count = len(records)
	}
	sortKey, err := procview.ParseSortKey(cfg.View.SortBy)
	if err != nil {
		return nil, err
	}
	filterKey, err := procview.ParseFilterKey(cfg.View.FilterBy)
	if err != nil {
		return nil, err
	}
	return procview.List(records, 0, count, sortKey, !cfg.View.Descending,
		filterKey, cfg.View.Pattern, cfg.View.ExactMatch)
}

// targetPIDs resolves the processes a control operation applies to:
// every process matching the configured view with -all, otherwise the
// single -pid value.
func targetPIDs(collector *proc.Collector, cfg *config.Config, pid int, all bool) ([]int, error) {
	if !all {
		return []int{pid}, nil
	}

	records, err := collector.Processes()
	if err != nil {
		return nil, err
	}
	visible, err := viewFromConfig(records, cfg)
	if err != nil {
		return nil, err
	}

	pids := make([]int, len(visible))
	for i, r := range visible {
		pids[i] = int(r.PID)
	}
	return pids, nil
}

// parseCPUList parses a comma-separated list of CPU ids.
func parseCPUList(s string) ([]int, error) {
	var cpus []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		cpu, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("cpu %q: %w", part, err)
		}
		cpus = append(cpus, cpu)
	}
	if len(cpus) == 0 {
		return nil, fmt.Errorf("empty cpu list")
	}
	return cpus, nil
}
