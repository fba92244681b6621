package proc

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// loadScale converts the fixed-point load averages of sysinfo(2) to
// floating point.
const loadScale = 65536.0

// ReadSysinfo returns the kernel's system summary: memory and swap
// totals, load averages, uptime, and process count.
func ReadSysinfo() (*unix.Sysinfo_t, error) {
	var info unix.Sysinfo_t
	if err := unix.Sysinfo(&info); err != nil {
		return nil, fmt.Errorf("proc: sysinfo: %w", err)
	}
	return &info, nil
}

// LoadAverage converts one of the Loads values of a Sysinfo_t to a
// floating-point load average.
func LoadAverage(raw uint64) float64 {
	return float64(raw) / loadScale
}

// MemoryUsedPercent returns the fraction of RAM in use as a percentage.
func MemoryUsedPercent(info *unix.Sysinfo_t) float64 {
	if info.Totalram == 0 {
		return 0
	}
	return float64(info.Totalram-info.Freeram) / float64(info.Totalram) * 100.0
}

// SwapUsedPercent returns the fraction of swap in use as a percentage.
// Hosts without swap report 0.
func SwapUsedPercent(info *unix.Sysinfo_t) float64 {
	if info.Totalswap == 0 {
		return 0
	}
	return float64(info.Totalswap-info.Freeswap) / float64(info.Totalswap) * 100.0
}
