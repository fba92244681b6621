// Package procview turns raw process snapshots into display-ready views:
// sorting, filtering, windowing, and process-tree construction.
package procview

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"gitlab.com/tinyland/lab/procpulse/proc"
)

// ErrInvalidSortKey is returned when a sort key is outside the accepted
// vocabulary.
var ErrInvalidSortKey = errors.New("procview: invalid sort key")

// ErrInvalidFilterKey is returned when a filter key is outside the
// accepted vocabulary.
var ErrInvalidFilterKey = errors.New("procview: invalid filter key")

// SortKey identifies the record field to sort by.
type SortKey string

// The accepted sort keys.
const (
	SortByName     SortKey = "name"
	SortByPID      SortKey = "pid"
	SortByMemory   SortKey = "memory"
	SortByPriority SortKey = "priority"
	SortByUser     SortKey = "user"
	SortByState    SortKey = "state"
	SortByThreads  SortKey = "threads"
	SortByVmSize   SortKey = "vmsize"
	SortByUserTime SortKey = "utime"
	SortBySysTime  SortKey = "stime"
)

// FilterKey identifies the record field a filter pattern matches against.
type FilterKey string

// The accepted filter keys. FilterAny matches against the whole formatted
// row.
const (
	FilterByName  FilterKey = "name"
	FilterByUser  FilterKey = "user"
	FilterByPID   FilterKey = "pid"
	FilterByPPID  FilterKey = "ppid"
	FilterByState FilterKey = "state"
	FilterAny     FilterKey = "any"
)

// ParseSortKey validates a sort key string.
func ParseSortKey(s string) (SortKey, error) {
	switch key := SortKey(s); key {
	case SortByName, SortByPID, SortByMemory, SortByPriority, SortByUser,
		SortByState, SortByThreads, SortByVmSize, SortByUserTime, SortBySysTime:
		return key, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidSortKey, s)
	}
}

// ParseFilterKey validates a filter key string. The empty string is
// accepted and means no filtering.
func ParseFilterKey(s string) (FilterKey, error) {
	switch key := FilterKey(s); key {
	case "", FilterByName, FilterByUser, FilterByPID, FilterByPPID,
		FilterByState, FilterAny:
		return key, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidFilterKey, s)
	}
}

// List produces the visible window of a process snapshot: a stable sort
// by sortKey, an optional filter, then the [from, from+count) window of
// the ascending order. With ascending false the symmetric window from the
// tail is returned in reverse, so from counts from the other end. count
// is clamped to the filtered length and from is clamped so the window
// always fits. The input slice is not modified.
func List(records []proc.ProcessRecord, from, count int, sortKey SortKey,
	ascending bool, filterKey FilterKey, pattern string, exact bool) ([]proc.ProcessRecord, error) {

	sorted := make([]proc.ProcessRecord, len(records))
	copy(sorted, records)

	if err := sortRecords(sorted, sortKey); err != nil {
		return nil, err
	}

	if filterKey != "" {
		filtered, err := Filter(sorted, filterKey, pattern, exact)
		if err != nil {
			return nil, err
		}
		sorted = filtered
	}

	if count > len(sorted) {
		count = len(sorted)
	}
	if from+count > len(sorted) {
		from = len(sorted) - count
	}

	if ascending {
		return sorted[from : from+count], nil
	}

	window := sorted[len(sorted)-from-count : len(sorted)-from]
	reversed := make([]proc.ProcessRecord, len(window))
	for i, r := range window {
		reversed[len(window)-1-i] = r
	}
	return reversed, nil
}

// Filter returns the records whose filterKey field matches pattern, by
// exact equality or case-sensitive substring.
func Filter(records []proc.ProcessRecord, filterKey FilterKey, pattern string,
	exact bool) ([]proc.ProcessRecord, error) {

	field, err := fieldFunc(filterKey)
	if err != nil {
		return nil, err
	}

	var matched []proc.ProcessRecord
	for _, r := range records {
		value := field(r)
		if exact {
			if value == pattern {
				matched = append(matched, r)
			}
		} else if strings.Contains(value, pattern) {
			matched = append(matched, r)
		}
	}
	return matched, nil
}

// sortRecords stable-sorts records ascending by the given key.
func sortRecords(records []proc.ProcessRecord, sortKey SortKey) error {
	var less func(a, b proc.ProcessRecord) bool
	switch sortKey {
	case SortByName:
		less = func(a, b proc.ProcessRecord) bool { return a.Name < b.Name }
	case SortByPID:
		less = func(a, b proc.ProcessRecord) bool { return a.PID < b.PID }
	case SortByMemory:
		less = func(a, b proc.ProcessRecord) bool { return a.Memory < b.Memory }
	case SortByPriority:
		less = func(a, b proc.ProcessRecord) bool { return a.Priority < b.Priority }
	case SortByUser:
		less = func(a, b proc.ProcessRecord) bool { return a.User < b.User }
	case SortByState:
		less = func(a, b proc.ProcessRecord) bool { return a.State < b.State }
	case SortByThreads:
		less = func(a, b proc.ProcessRecord) bool { return a.Threads < b.Threads }
	case SortByVmSize:
		less = func(a, b proc.ProcessRecord) bool { return a.VirtualMemory < b.VirtualMemory }
	case SortByUserTime:
		less = func(a, b proc.ProcessRecord) bool { return a.UserTime < b.UserTime }
	case SortBySysTime:
		less = func(a, b proc.ProcessRecord) bool { return a.SystemTime < b.SystemTime }
	default:
		return fmt.Errorf("%w: %q", ErrInvalidSortKey, sortKey)
	}

	sort.SliceStable(records, func(i, j int) bool { return less(records[i], records[j]) })
	return nil
}

// fieldFunc returns the accessor for a filter key.
func fieldFunc(filterKey FilterKey) (func(proc.ProcessRecord) string, error) {
	switch filterKey {
	case FilterByName:
		return func(r proc.ProcessRecord) string { return r.Name }, nil
	case FilterByUser:
		return func(r proc.ProcessRecord) string { return r.User }, nil
	case FilterByPID:
		return func(r proc.ProcessRecord) string { return strconv.FormatInt(int64(r.PID), 10) }, nil
	case FilterByPPID:
		return func(r proc.ProcessRecord) string { return strconv.FormatInt(int64(r.PPID), 10) }, nil
	case FilterByState:
		return func(r proc.ProcessRecord) string { return string(r.State) }, nil
	case FilterAny:
		return proc.ProcessRecord.String, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidFilterKey, filterKey)
	}
}
