package procview

import (
	"errors"
	"testing"

	"gitlab.com/tinyland/lab/procpulse/proc"
)

// pidRecords builds records whose pids equal the given values, in order.
func pidRecords(pids ...int32) []proc.ProcessRecord {
	records := make([]proc.ProcessRecord, len(pids))
	for i, pid := range pids {
		records[i] = proc.ProcessRecord{PID: pid, Name: "p"}
	}
	return records
}

func pidsOf(records []proc.ProcessRecord) []int32 {
	pids := make([]int32, len(records))
	for i, r := range records {
		pids[i] = r.PID
	}
	return pids
}

func equalPIDs(a, b []int32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestListWindowing(t *testing.T) {
	records := pidRecords(10, 1, 7, 3, 9, 5, 2, 8, 4, 6)

	tests := []struct {
		name      string
		from      int
		count     int
		ascending bool
		want      []int32
	}{
		{"ascending window", 2, 3, true, []int32{3, 4, 5}},
		{"descending window from tail", 2, 3, false, []int32{8, 7, 6}},
		{"from zero ascending", 0, 2, true, []int32{1, 2}},
		{"from zero descending", 0, 2, false, []int32{10, 9}},
		{"count clamped to length", 0, 50, true, []int32{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}},
		{"from clamped to fit", 9, 3, true, []int32{8, 9, 10}},
		{"zero count", 3, 0, true, nil},
		{"from beyond length zero count", 99, 0, true, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := List(records, tt.from, tt.count, SortByPID, tt.ascending, "", "", false)
			if err != nil {
				t.Fatalf("List() error: %v", err)
			}
			if !equalPIDs(pidsOf(got), tt.want) {
				t.Errorf("List() pids = %v, want %v", pidsOf(got), tt.want)
			}
		})
	}
}

func TestListDoesNotModifyInput(t *testing.T) {
	records := pidRecords(3, 1, 2)
	if _, err := List(records, 0, 3, SortByPID, true, "", "", false); err != nil {
		t.Fatal(err)
	}
	if !equalPIDs(pidsOf(records), []int32{3, 1, 2}) {
		t.Errorf("input slice reordered to %v", pidsOf(records))
	}
}

func TestListSortKeys(t *testing.T) {
	records := []proc.ProcessRecord{
		{PID: 1, Name: "zsh", User: "bob", Memory: 300, Priority: 5, State: 'S', Threads: 2, VirtualMemory: 900, UserTime: 30, SystemTime: 3},
		{PID: 2, Name: "awk", User: "alice", Memory: 100, Priority: -5, State: 'R', Threads: 8, VirtualMemory: 100, UserTime: 10, SystemTime: 9},
		{PID: 3, Name: "mid", User: "carol", Memory: 200, Priority: 0, State: 'D', Threads: 5, VirtualMemory: 500, UserTime: 20, SystemTime: 6},
	}

	tests := []struct {
		key  SortKey
		want []int32
	}{
		{SortByName, []int32{2, 3, 1}},
		{SortByPID, []int32{1, 2, 3}},
		{SortByMemory, []int32{2, 3, 1}},
		{SortByPriority, []int32{2, 3, 1}},
		{SortByUser, []int32{2, 1, 3}},
		{SortByState, []int32{3, 2, 1}},
		{SortByThreads, []int32{1, 3, 2}},
		{SortByVmSize, []int32{2, 3, 1}},
		{SortByUserTime, []int32{2, 3, 1}},
		{SortBySysTime, []int32{1, 3, 2}},
	}

	for _, tt := range tests {
		t.Run(string(tt.key), func(t *testing.T) {
			got, err := List(records, 0, len(records), tt.key, true, "", "", false)
			if err != nil {
				t.Fatalf("List() error: %v", err)
			}
			if !equalPIDs(pidsOf(got), tt.want) {
				t.Errorf("sort by %s = %v, want %v", tt.key, pidsOf(got), tt.want)
			}
		})
	}
}

func TestListSortIsStable(t *testing.T) {
	records := []proc.ProcessRecord{
		{PID: 5, Memory: 100},
		{PID: 1, Memory: 100},
		{PID: 9, Memory: 100},
	}
	got, err := List(records, 0, 3, SortByMemory, true, "", "", false)
	if err != nil {
		t.Fatal(err)
	}
	if !equalPIDs(pidsOf(got), []int32{5, 1, 9}) {
		t.Errorf("equal keys reordered: %v", pidsOf(got))
	}
}

func TestFilter(t *testing.T) {
	records := []proc.ProcessRecord{
		{PID: 100, PPID: 1, Name: "systemd-journal", User: "root", State: 'S'},
		{PID: 200, PPID: 1, Name: "sshd", User: "root", State: 'S'},
		{PID: 300, PPID: 200, Name: "bash", User: "alice", State: 'R'},
	}

	tests := []struct {
		name    string
		key     FilterKey
		pattern string
		exact   bool
		want    []int32
	}{
		{"name substring", FilterByName, "sh", false, []int32{200, 300}},
		{"name exact", FilterByName, "sshd", true, []int32{200}},
		{"name exact no partial", FilterByName, "ssh", true, nil},
		{"user", FilterByUser, "alice", false, []int32{300}},
		{"pid", FilterByPID, "200", true, []int32{200}},
		{"ppid", FilterByPPID, "200", true, []int32{300}},
		{"state", FilterByState, "R", true, []int32{300}},
		{"any matches row text", FilterAny, "alice", false, []int32{300}},
		{"case sensitive", FilterByName, "SSHD", false, nil},
		{"empty pattern matches all", FilterByName, "", false, []int32{100, 200, 300}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Filter(records, tt.key, tt.pattern, tt.exact)
			if err != nil {
				t.Fatalf("Filter() error: %v", err)
			}
			if !equalPIDs(pidsOf(got), tt.want) {
				t.Errorf("Filter() pids = %v, want %v", pidsOf(got), tt.want)
			}
		})
	}
}

func TestParseSortKey(t *testing.T) {
	for _, valid := range []string{"name", "pid", "memory", "priority", "user",
		"state", "threads", "vmsize", "utime", "stime"} {
		if _, err := ParseSortKey(valid); err != nil {
			t.Errorf("ParseSortKey(%q) error: %v", valid, err)
		}
	}

	if _, err := ParseSortKey("cpu"); !errors.Is(err, ErrInvalidSortKey) {
		t.Errorf("ParseSortKey(cpu) error = %v, want ErrInvalidSortKey", err)
	}
}

func TestParseFilterKey(t *testing.T) {
	for _, valid := range []string{"", "name", "user", "pid", "ppid", "state", "any"} {
		if _, err := ParseFilterKey(valid); err != nil {
			t.Errorf("ParseFilterKey(%q) error: %v", valid, err)
		}
	}

	if _, err := ParseFilterKey("memory"); !errors.Is(err, ErrInvalidFilterKey) {
		t.Errorf("ParseFilterKey(memory) error = %v, want ErrInvalidFilterKey", err)
	}
}

func TestListInvalidKeysReturnTypedErrors(t *testing.T) {
	records := pidRecords(1, 2)

	if _, err := List(records, 0, 2, "bogus", true, "", "", false); !errors.Is(err, ErrInvalidSortKey) {
		t.Errorf("invalid sort key error = %v, want ErrInvalidSortKey", err)
	}
	if _, err := List(records, 0, 2, SortByPID, true, "bogus", "", false); !errors.Is(err, ErrInvalidFilterKey) {
		t.Errorf("invalid filter key error = %v, want ErrInvalidFilterKey", err)
	}
}
