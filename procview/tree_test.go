package procview

import (
	"testing"

	"gitlab.com/tinyland/lab/procpulse/proc"
)

func TestBuildTree(t *testing.T) {
	records := []proc.ProcessRecord{
		{PID: 1, PPID: 0},
		{PID: 2, PPID: 1},
		{PID: 3, PPID: 1},
		{PID: 4, PPID: 2},
	}

	tree := BuildTree(records, 0)

	if tree.PID != 0 {
		t.Fatalf("root pid = %d, want 0", tree.PID)
	}
	if len(tree.Children) != 1 || tree.Children[0].PID != 1 {
		t.Fatalf("root children = %+v, want [1]", tree.Children)
	}

	init := tree.Children[0]
	if len(init.Children) != 2 || init.Children[0].PID != 2 || init.Children[1].PID != 3 {
		t.Fatalf("pid 1 children = %+v, want [2 3]", init.Children)
	}
	if len(init.Children[0].Children) != 1 || init.Children[0].Children[0].PID != 4 {
		t.Fatalf("pid 2 children = %+v, want [4]", init.Children[0].Children)
	}
	if len(init.Children[1].Children) != 0 {
		t.Fatalf("pid 3 children = %+v, want none", init.Children[1].Children)
	}
}

func TestBuildTreeRootAbsentFromSnapshot(t *testing.T) {
	// Pid 0 never appears in /proc, but rooting there yields the full tree.
	records := []proc.ProcessRecord{{PID: 7, PPID: 0}}
	tree := BuildTree(records, 0)
	if len(tree.Children) != 1 || tree.Children[0].PID != 7 {
		t.Fatalf("children = %+v, want [7]", tree.Children)
	}
}

func TestBuildTreeLeafRoot(t *testing.T) {
	records := []proc.ProcessRecord{{PID: 1, PPID: 0}}
	tree := BuildTree(records, 1)
	if tree.PID != 1 || len(tree.Children) != 0 {
		t.Fatalf("tree = %+v, want leaf 1", tree)
	}
}

func TestTreeRender(t *testing.T) {
	records := []proc.ProcessRecord{
		{PID: 1, PPID: 0},
		{PID: 2, PPID: 1},
		{PID: 3, PPID: 1},
		{PID: 4, PPID: 2},
	}

	got := BuildTree(records, 0).Render()
	want := "0\n" +
		"├── 1\n" +
		"│   ├── 2\n" +
		"│   │   ├── 4\n" +
		"│   ├── 3\n"

	if got != want {
		t.Errorf("Render() =\n%s\nwant:\n%s", got, want)
	}
}
