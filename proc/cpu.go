package proc

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"
)

// cpuCounters is one /proc/stat cpu line reduced to the totals needed for
// usage deltas.
type cpuCounters struct {
	total uint64
	idle  uint64
}

// CPUUsage computes per-line CPU usage percentages from /proc/stat deltas.
// The first element is the aggregate "cpu" line, followed by each core in
// file order. The first call seeds the counters and returns an empty
// slice; meaningful percentages require two calls separated by an
// interval.
func (c *Collector) CPUUsage() ([]float64, error) {
	f, err := c.openStat()
	if err != nil {
		return nil, fmt.Errorf("proc: open stat: %w", err)
	}
	defer f.Close()

	var current []cpuCounters
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "cpu") {
			continue
		}
		fields := strings.Fields(line)

		// user nice system idle iowait irq softirq
		var counters cpuCounters
		for i := 1; i < len(fields) && i <= 7; i++ {
			v, err := strconv.ParseUint(fields[i], 10, 64)
			if err != nil {
				v = 0
			}
			counters.total += v
			if i == 4 {
				counters.idle = v
			}
		}
		current = append(current, counters)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("proc: read stat: %w", err)
	}

	usage := make([]float64, 0, len(current))
	for i, prev := range c.prevCPU {
		if i >= len(current) {
			break
		}
		totalDiff := current[i].total - prev.total
		idleDiff := current[i].idle - prev.idle

		var pct float64
		if totalDiff > 0 {
			pct = float64(totalDiff-idleDiff) / float64(totalDiff) * 100.0
		}
		usage = append(usage, pct)
	}

	c.prevCPU = current
	return usage, nil
}
