package proc

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Collector reads process and resource snapshots from /proc. It owns the
// uid-to-username cache and the previous CPU counters used for delta
// computation, so it is not safe for concurrent use; callers are expected
// to drive it from a single loop.
type Collector struct {
	logger *slog.Logger

	// procRoot is the mount point of the proc filesystem.
	procRoot string

	// usernames caches /etc/passwd lookups. Entries are never invalidated;
	// a user added after the first miss keeps resolving to "".
	usernames map[uint32]string

	// prevCPU holds the last per-line (total, idle) counters from
	// /proc/stat. Empty until the first CPUUsage call.
	prevCPU []cpuCounters

	// Overridable seams for testing.
	openStat      func() (io.ReadCloser, error)
	openPasswd    func() (io.ReadCloser, error)
	openDiskstats func() (io.ReadCloser, error)
	openNetDev    func() (io.ReadCloser, error)
	priorityOf    func(pid int) (int, error)
}

// NewCollector creates a Collector reading from the real /proc.
// If logger is nil, a no-op logger is used.
func NewCollector(logger *slog.Logger) *Collector {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Collector{
		logger:    logger,
		procRoot:  "/proc",
		usernames: make(map[uint32]string),
		openStat: func() (io.ReadCloser, error) {
			return os.Open("/proc/stat")
		},
		openPasswd: func() (io.ReadCloser, error) {
			return os.Open("/etc/passwd")
		},
		openDiskstats: func() (io.ReadCloser, error) {
			return os.Open("/proc/diskstats")
		},
		openNetDev: func() (io.ReadCloser, error) {
			return os.Open("/proc/net/dev")
		},
		priorityOf: GetPriority,
	}
}

// Processes reads a snapshot of every process visible under /proc.
// Entries that vanish or cannot be read mid-scan are skipped silently;
// only a failure to list /proc itself is an error.
func (c *Collector) Processes() ([]ProcessRecord, error) {
	entries, err := os.ReadDir(c.procRoot)
	if err != nil {
		return nil, fmt.Errorf("proc: list %s: %w", c.procRoot, err)
	}

	var records []ProcessRecord
	for _, entry := range entries {
		pid, err := strconv.ParseInt(entry.Name(), 10, 32)
		if err != nil {
			continue
		}
		record, err := c.readProcess(int32(pid))
		if err != nil {
			// Process exited between the directory listing and the read.
			continue
		}
		records = append(records, record)
	}

	return records, nil
}

// readProcess builds a ProcessRecord from /proc/[pid]/status.
func (c *Collector) readProcess(pid int32) (ProcessRecord, error) {
	path := filepath.Join(c.procRoot, strconv.FormatInt(int64(pid), 10), "status")
	data, err := os.ReadFile(path)
	if err != nil {
		return ProcessRecord{}, err
	}

	status := parseStatusFile(string(data))

	record := ProcessRecord{
		PID:           pid,
		PPID:          int32(statusInt(status, "PPid")),
		Name:          statusFirst(status, "Name"),
		Memory:        statusUint(status, "VmRSS"),
		Threads:       statusUint(status, "Threads"),
		VirtualMemory: statusUint(status, "VmSize"),
		UserTime:      statusUint(status, "Utime"),
		SystemTime:    statusUint(status, "Stime"),
	}

	if state := statusFirst(status, "State"); state != "" {
		record.State = state[0]
	}

	uid := uint32(statusUint(status, "Uid"))
	record.User = c.username(uid)

	if nice, err := c.priorityOf(int(pid)); err == nil {
		record.Priority = int32(nice)
	}

	return record, nil
}

// parseStatusFile parses the whole of a /proc/[pid]/status file into a
// key-to-fields table. Lines rejected by parseStatusLine are dropped.
func parseStatusFile(content string) map[string][]string {
	status := make(map[string][]string)
	for _, line := range strings.Split(content, "\n") {
		if line == "" {
			continue
		}
		key, values, ok := parseStatusLine(line)
		if !ok || key == "" {
			continue
		}
		status[key] = values
	}
	return status
}

// parseStatusLine splits one status line into its key and whitespace
// separated values. A line must contain exactly one colon; lines with more
// (e.g. "Speculation_Store_Bypass: thread vulnerable: ..." style values or
// embedded timestamps) are rejected and that field dropped. None of the
// fields the record needs ever contain extra colons.
func parseStatusLine(line string) (string, []string, bool) {
	parts := strings.Split(line, ":")
	if len(parts) != 2 {
		return "", nil, false
	}
	return strings.TrimSpace(parts[0]), strings.Fields(parts[1]), true
}

// statusFirst returns the first value of a status field, or "" if the
// field is missing or empty.
func statusFirst(status map[string][]string, key string) string {
	values := status[key]
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

// statusUint parses the first value of a status field, defaulting to 0.
func statusUint(status map[string][]string, key string) uint64 {
	v, err := strconv.ParseUint(statusFirst(status, key), 10, 64)
	if err != nil {
		return 0
	}
	return v
}

// statusInt parses the first value of a status field, defaulting to 0.
func statusInt(status map[string][]string, key string) int64 {
	v, err := strconv.ParseInt(statusFirst(status, key), 10, 64)
	if err != nil {
		return 0
	}
	return v
}

// username resolves a uid to a username via the cache, scanning
// /etc/passwd on a miss. Unknown uids resolve to "".
func (c *Collector) username(uid uint32) string {
	if name, ok := c.usernames[uid]; ok {
		return name
	}

	f, err := c.openPasswd()
	if err != nil {
		c.logger.Debug("proc: open passwd", "error", err)
		return ""
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		fields := strings.Split(scanner.Text(), ":")
		if len(fields) < 3 {
			continue
		}
		entryUID, err := strconv.ParseUint(fields[2], 10, 32)
		if err != nil {
			continue
		}
		if uint32(entryUID) == uid {
			c.usernames[uid] = fields[0]
			return fields[0]
		}
	}

	return ""
}
