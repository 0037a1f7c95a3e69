package graph

import (
	"sort"

	"github.com/dawsh2/Torq/internal/task"
)

// DanglingRef records a dependency or blocks entry that references no
// known task. Dangling references are data, not errors: the affected edge
// is omitted from the graph and the reference is reported here so callers
// can surface it. Under the readiness evaluator's fail-closed policy the
// referencing task is treated as blocked forever by the missing edge.
type DanglingRef struct {
	// TaskID is the task that made the reference.
	TaskID string `json:"task_id"`

	// MissingID is the referenced id that resolves to no task.
	MissingID string `json:"missing_id"`

	// Field names the declaration the reference came from:
	// "depends_on" or "blocks".
	Field string `json:"field"`
}

// Graph is the dependency graph over one task snapshot: forward edges
// point from a task to the tasks it unblocks. Like the snapshot it wraps,
// a Graph is immutable after Build and safe for concurrent reads.
type Graph struct {
	snap         *task.Snapshot
	successors   map[string][]string
	predecessors map[string][]string
	dangling     []DanglingRef
	edgeCount    int
}

// Build constructs the dependency graph for a snapshot. It never fails:
// structural problems were rejected at snapshot construction, and
// references to unknown ids become DanglingRef rows rather than edges.
func Build(snap *task.Snapshot) *Graph {
	g := &Graph{
		snap:         snap,
		successors:   make(map[string][]string, snap.Len()),
		predecessors: make(map[string][]string, snap.Len()),
	}

	seen := make(map[[2]string]bool)
	addEdge := func(from, to string) {
		key := [2]string{from, to}
		if seen[key] {
			return
		}
		seen[key] = true
		g.successors[from] = append(g.successors[from], to)
		g.predecessors[to] = append(g.predecessors[to], from)
		g.edgeCount++
	}

	for _, t := range snap.Tasks() {
		for _, dep := range t.DependsOn {
			if !snap.Contains(dep) {
				g.dangling = append(g.dangling, DanglingRef{TaskID: t.ID, MissingID: dep, Field: "depends_on"})
				continue
			}
			addEdge(dep, t.ID)
		}
		for _, blocked := range t.Blocks {
			if !snap.Contains(blocked) {
				g.dangling = append(g.dangling, DanglingRef{TaskID: t.ID, MissingID: blocked, Field: "blocks"})
				continue
			}
			addEdge(t.ID, blocked)
		}
	}

	for id := range g.successors {
		sort.Strings(g.successors[id])
	}
	for id := range g.predecessors {
		sort.Strings(g.predecessors[id])
	}

	return g
}

// Snapshot returns the snapshot this graph was built from.
func (g *Graph) Snapshot() *task.Snapshot {
	return g.snap
}

// Len returns the number of nodes in the graph.
func (g *Graph) Len() int {
	return g.snap.Len()
}

// EdgeCount returns the number of distinct edges.
func (g *Graph) EdgeCount() int {
	return g.edgeCount
}

// Successors returns the ids that depend on the given task, sorted
// ascending. The returned slice is shared; callers must not mutate it.
func (g *Graph) Successors(id string) []string {
	return g.successors[id]
}

// Predecessors returns the ids the given task depends on (known tasks
// only), sorted ascending. The returned slice is shared; callers must not
// mutate it.
func (g *Graph) Predecessors(id string) []string {
	return g.predecessors[id]
}

// Dangling returns the recorded dangling references in discovery order,
// which is deterministic: snapshot input order, depends_on before blocks.
func (g *Graph) Dangling() []DanglingRef {
	return g.dangling
}

// Roots returns the ids with no predecessors, sorted ascending.
func (g *Graph) Roots() []string {
	var roots []string
	for _, id := range g.snap.SortedIDs() {
		if len(g.predecessors[id]) == 0 {
			roots = append(roots, id)
		}
	}
	return roots
}

// Leaves returns the ids with no successors, sorted ascending.
func (g *Graph) Leaves() []string {
	var leaves []string
	for _, id := range g.snap.SortedIDs() {
		if len(g.successors[id]) == 0 {
			leaves = append(leaves, id)
		}
	}
	return leaves
}

// ReachableFrom returns every id reachable from the given task by
// following successor edges, sorted ascending and excluding the task
// itself. The visited set guarantees termination on cyclic input.
func (g *Graph) ReachableFrom(id string) []string {
	visited := make(map[string]bool)
	queue := append([]string(nil), g.successors[id]...)

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if visited[cur] {
			continue
		}
		visited[cur] = true
		queue = append(queue, g.successors[cur]...)
	}

	delete(visited, id)
	out := make([]string, 0, len(visited))
	for v := range visited {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// Reaches reports whether to is reachable from from by following
// successor edges. A task reaches itself trivially.
func (g *Graph) Reaches(from, to string) bool {
	if from == to {
		return true
	}

	visited := make(map[string]bool)
	queue := append([]string(nil), g.successors[from]...)

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur == to {
			return true
		}
		if visited[cur] {
			continue
		}
		visited[cur] = true
		queue = append(queue, g.successors[cur]...)
	}
	return false
}
