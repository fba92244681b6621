package proc

import (
	"bufio"
	"fmt"
	"strings"
)

// NetworkStats reads the current counters for all physical network
// interfaces from /proc/net/dev. The loopback interface is excluded.
func (c *Collector) NetworkStats() ([]NetworkCounters, error) {
	f, err := c.openNetDev()
	if err != nil {
		return nil, fmt.Errorf("proc: open net/dev: %w", err)
	}
	defer f.Close()

	var stats []NetworkCounters
	lineNo := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lineNo++
		// Two header lines precede the per-interface rows.
		if lineNo <= 2 {
			continue
		}

		parts := strings.Split(scanner.Text(), ":")
		if len(parts) != 2 {
			continue
		}

		iface := strings.TrimSpace(parts[0])
		fields := strings.Fields(parts[1])
		if len(fields) < 16 || iface == "lo" {
			continue
		}

		values := make([]uint64, len(fields))
		for i, field := range fields {
			values[i] = parseCounter(field)
		}

		stats = append(stats, NetworkCounters{
			Interface:          iface,
			BytesReceived:      values[0],
			PacketsReceived:    values[1],
			ErrorsReceived:     values[2],
			DropsReceived:      values[3],
			BytesTransmitted:   values[8],
			PacketsTransmitted: values[9],
			ErrorsTransmitted:  values[10],
			DropsTransmitted:   values[11],
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("proc: read net/dev: %w", err)
	}

	return stats, nil
}
