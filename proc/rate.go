package proc

import "fmt"

// Byte-per-second unit thresholds for FormatRate.
const (
	rateKB = 1024.0
	rateMB = rateKB * 1024.0
	rateGB = rateMB * 1024.0
)

// sectorSize is the fixed sector unit of /proc/diskstats, independent of
// the device's physical sector size.
const sectorSize = 512

// DiskRates derives read/write throughput from two diskstats snapshots
// taken elapsedSeconds apart. Devices missing from the previous snapshot
// produce no rate. A counter that wrapped or reset between snapshots
// yields a garbage delta for that interval; the next interval recovers.
func DiskRates(previous, current []DiskCounters, elapsedSeconds float64) []Rate {
	var rates []Rate
	for _, curr := range current {
		prev, ok := findDisk(previous, curr.Device)
		if !ok {
			continue
		}
		readBytes := (curr.SectorsRead - prev.SectorsRead) * sectorSize
		writeBytes := (curr.SectorsWritten - prev.SectorsWritten) * sectorSize
		rates = append(rates, Rate{
			Name:   curr.Device,
			First:  float64(readBytes) / elapsedSeconds,
			Second: float64(writeBytes) / elapsedSeconds,
		})
	}
	return rates
}

// NetworkRates derives receive/transmit throughput from two network
// snapshots taken elapsedSeconds apart. Interfaces missing from the
// previous snapshot produce no rate.
func NetworkRates(previous, current []NetworkCounters, elapsedSeconds float64) []Rate {
	var rates []Rate
	for _, curr := range current {
		prev, ok := findInterface(previous, curr.Interface)
		if !ok {
			continue
		}
		rates = append(rates, Rate{
			Name:   curr.Interface,
			First:  float64(curr.BytesReceived-prev.BytesReceived) / elapsedSeconds,
			Second: float64(curr.BytesTransmitted-prev.BytesTransmitted) / elapsedSeconds,
		})
	}
	return rates
}

// FormatRate renders a bytes-per-second value with a binary unit suffix.
// Values below 1 KB/s are shown as whole bytes.
func FormatRate(bytesPerSec float64) string {
	switch {
	case bytesPerSec >= rateGB:
		return fmt.Sprintf("%.2f GB/s", bytesPerSec/rateGB)
	case bytesPerSec >= rateMB:
		return fmt.Sprintf("%.2f MB/s", bytesPerSec/rateMB)
	case bytesPerSec >= rateKB:
		return fmt.Sprintf("%.2f KB/s", bytesPerSec/rateKB)
	default:
		return fmt.Sprintf("%.0f B/s", bytesPerSec)
	}
}

func findDisk(stats []DiskCounters, device string) (DiskCounters, bool) {
	for _, s := range stats {
		if s.Device == device {
			return s, true
		}
	}
	return DiskCounters{}, false
}

func findInterface(stats []NetworkCounters, iface string) (NetworkCounters, bool) {
	for _, s := range stats {
		if s.Interface == iface {
			return s, true
		}
	}
	return NetworkCounters{}, false
}
