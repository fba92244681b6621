// Package proc reads process and resource information from the Linux /proc
// filesystem and provides process control operations (signals, priority,
// CPU affinity).
package proc

import (
	"fmt"
	"strconv"
)

// ProcessRecord is a point-in-time snapshot of one process, built from
// /proc/[pid]/status. Records are rebuilt on every collection pass; a pid
// only identifies a process within a single snapshot.
type ProcessRecord struct {
	User          string
	PID           int32
	PPID          int32
	Name          string
	State         byte
	Memory        uint64 // VmRSS in kB
	Threads       uint64
	VirtualMemory uint64 // VmSize in kB
	UserTime      uint64
	SystemTime    uint64
	Priority      int32 // nice value
}

// Row returns the record's display cells in table column order.
// Memory columns are converted from kB to MB.
func (p ProcessRecord) Row() []string {
	return []string{
		p.User,
		strconv.FormatInt(int64(p.PID), 10),
		strconv.FormatInt(int64(p.PPID), 10),
		string(p.State),
		strconv.FormatUint(p.Memory/1000, 10),
		strconv.FormatUint(p.Threads, 10),
		strconv.FormatUint(p.VirtualMemory/1000, 10),
		strconv.FormatUint(p.UserTime, 10),
		strconv.FormatUint(p.SystemTime, 10),
		strconv.FormatInt(int64(p.Priority), 10),
		p.Name,
	}
}

// String formats the record as a single tab-separated line, matching the
// batch table layout. It also serves as the haystack for "any" filtering.
func (p ProcessRecord) String() string {
	return fmt.Sprintf("%-10s\t%-6d\t%-6d\t%-1c\t%-6d\t%-2d\t%-6d\t%-10d\t%-10d\t%-3d\t%-40s",
		p.User,
		p.PID,
		p.PPID,
		p.State,
		p.Memory/1000,
		p.Threads,
		p.VirtualMemory/1000,
		p.UserTime,
		p.SystemTime,
		p.Priority,
		p.Name,
	)
}

// ColumnTitles returns the header cells matching Row.
func ColumnTitles() []string {
	return []string{
		"UID", "PID", "PPID", "STATE", "MEM(MB)", "THREADS",
		"VIRT_MEM(MB)", "USER_TIME", "SYS_TIME", "PRIORITY", "NAME",
	}
}

// DiskCounters holds the monotonic counters for one block device, as read
// from one line of /proc/diskstats.
type DiskCounters struct {
	Device          string
	ReadsCompleted  uint64
	ReadsMerged     uint64
	SectorsRead     uint64
	TimeReading     uint64
	WritesCompleted uint64
	WritesMerged    uint64
	SectorsWritten  uint64
	TimeWriting     uint64
	IOInProgress    uint64
	TimeIO          uint64
	WeightedTimeIO  uint64
}

// NetworkCounters holds the monotonic counters for one network interface,
// as read from one line of /proc/net/dev.
type NetworkCounters struct {
	Interface          string
	BytesReceived      uint64
	PacketsReceived    uint64
	ErrorsReceived     uint64
	DropsReceived      uint64
	BytesTransmitted   uint64
	PacketsTransmitted uint64
	ErrorsTransmitted  uint64
	DropsTransmitted   uint64
}

// Rate is a derived throughput pair for one device or interface, in
// bytes per second. For disks First is the read rate and Second the write
// rate; for interfaces First is receive and Second transmit.
type Rate struct {
	Name   string
	First  float64
	Second float64
}

// StatusMessage is an advisory outcome report from a control operation,
// displayed on the dashboard status line.
type StatusMessage struct {
	Text string
	Err  bool
}
