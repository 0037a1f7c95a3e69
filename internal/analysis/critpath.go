package analysis

import (
	"github.com/dawsh2/Torq/internal/errors"
	"github.com/dawsh2/Torq/internal/graph"
)

// Path is the critical path: the longest chain of dependency edges,
// counted by node, from a task with no prerequisites to one that
// unblocks nothing. It is a lower bound on serial completion time.
type Path struct {
	IDs    []string `json:"ids"`
	Length int      `json:"length"`
}

// CriticalPath computes the longest dependency chain by dynamic
// programming over reverse topological order: the longest chain from a
// task is one more than the longest chain from its best successor.
// Ties are broken toward the lexicographically smallest id, both when
// choosing a chain successor and when choosing the start, so the result
// is stable across runs.
//
// An empty graph yields an empty path and no error. A cyclic graph is
// refused with a CyclicGraphError, since "longest chain" is undefined
// once a chain can loop.
func CriticalPath(g *graph.Graph) (Path, error) {
	snap := g.Snapshot()
	if snap.Len() == 0 {
		return Path{}, nil
	}
	if report := g.DetectCycle(); report.HasCycle {
		return Path{}, errors.NewCyclicGraphError(report.Members).WithOperation("critical-path")
	}

	longest := make(map[string]int, snap.Len())
	next := make(map[string]string, snap.Len())

	order := g.TopoOrder().Order
	for i := len(order) - 1; i >= 0; i-- {
		id := order[i]
		longest[id] = 1
		for _, succ := range g.Successors(id) {
			// Successors are sorted ascending, so keeping only strict
			// improvements leaves the smallest id in place on a tie.
			if 1+longest[succ] > longest[id] {
				longest[id] = 1 + longest[succ]
				next[id] = succ
			}
		}
	}

	start, best := "", 0
	for _, id := range snap.SortedIDs() {
		if longest[id] > best {
			best = longest[id]
			start = id
		}
	}

	ids := make([]string, 0, best)
	for cur := start; cur != ""; cur = next[cur] {
		ids = append(ids, cur)
	}
	return Path{IDs: ids, Length: len(ids)}, nil
}
