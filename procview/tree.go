package procview

import (
	"strconv"
	"strings"

	"gitlab.com/tinyland/lab/procpulse/proc"
)

// Tree is a process ancestry tree node. Children appear in snapshot
// order.
type Tree struct {
	PID      int32
	Children []*Tree
}

// BuildTree builds the ancestry tree rooted at pid from one snapshot.
// The root itself need not appear in the snapshot: pid 0 yields the whole
// system tree even though there is no process 0. Cyclic ppid data would
// not terminate, but /proc cannot produce it.
func BuildTree(records []proc.ProcessRecord, pid int32) *Tree {
	index := make(map[int32][]proc.ProcessRecord, len(records))
	for _, r := range records {
		index[r.PPID] = append(index[r.PPID], r)
	}
	return buildSubtree(index, pid)
}

func buildSubtree(index map[int32][]proc.ProcessRecord, pid int32) *Tree {
	node := &Tree{PID: pid}
	for _, child := range index[pid] {
		node.Children = append(node.Children, buildSubtree(index, child.PID))
	}
	return node
}

// Render formats the tree with box-drawing branch markers, the root pid
// on the first line.
func (t *Tree) Render() string {
	var sb strings.Builder
	t.render(&sb, 0)
	return sb.String()
}

func (t *Tree) render(sb *strings.Builder, depth int) {
	if depth == 0 {
		sb.WriteString(strconv.FormatInt(int64(t.PID), 10))
		sb.WriteByte('\n')
	} else {
		sb.WriteString(strings.Repeat("│   ", depth-1))
		sb.WriteString("├── ")
		sb.WriteString(strconv.FormatInt(int64(t.PID), 10))
		sb.WriteByte('\n')
	}
	for _, child := range t.Children {
		child.render(sb, depth+1)
	}
}
