package proc

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"
)

// DiskStats reads the current counters for all sd, hd, and nvme block
// devices from /proc/diskstats. Partitions match the same prefixes and
// are included alongside their whole-disk device.
func (c *Collector) DiskStats() ([]DiskCounters, error) {
	f, err := c.openDiskstats()
	if err != nil {
		return nil, fmt.Errorf("proc: open diskstats: %w", err)
	}
	defer f.Close()

	var stats []DiskCounters
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 14 {
			continue
		}

		device := fields[2]
		if !strings.HasPrefix(device, "sd") &&
			!strings.HasPrefix(device, "hd") &&
			!strings.HasPrefix(device, "nvme") {
			continue
		}

		stats = append(stats, DiskCounters{
			Device:          device,
			ReadsCompleted:  parseCounter(fields[3]),
			ReadsMerged:     parseCounter(fields[4]),
			SectorsRead:     parseCounter(fields[5]),
			TimeReading:     parseCounter(fields[6]),
			WritesCompleted: parseCounter(fields[7]),
			WritesMerged:    parseCounter(fields[8]),
			SectorsWritten:  parseCounter(fields[9]),
			TimeWriting:     parseCounter(fields[10]),
			IOInProgress:    parseCounter(fields[11]),
			TimeIO:          parseCounter(fields[12]),
			WeightedTimeIO:  parseCounter(fields[13]),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("proc: read diskstats: %w", err)
	}

	return stats, nil
}

// parseCounter parses a monotonic counter field, defaulting to 0.
func parseCounter(s string) uint64 {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0
	}
	return v
}
