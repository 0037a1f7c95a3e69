package analysis

import (
	"sort"

	"github.com/dawsh2/Torq/internal/errors"
	"github.com/dawsh2/Torq/internal/graph"
)

// Group is one parallel-execution tier: pending tasks whose dependencies
// all sit at strictly lower levels, so they may proceed concurrently
// once those dependencies complete.
type Group struct {
	Level int      `json:"level"`
	IDs   []string `json:"ids"`
}

// Leveling is the dependency-depth assignment for every task, plus the
// pending-task groups derived from it.
type Leveling struct {
	Depth  map[string]int `json:"depth"`
	Groups []Group        `json:"groups"`
}

// ParallelLevels assigns each task a level: 0 for tasks with no known
// dependencies, otherwise one more than the deepest dependency. Levels
// are computed for every task; the returned groups hold only pending
// tasks, in ascending level order with ids sorted, and levels with no
// pending task are omitted.
//
// The invariant callers may rely on: a task's level is strictly greater
// than the level of each of its dependencies.
//
// Cyclic input is refused with a CyclicGraphError, since no level
// assignment can satisfy the invariant inside a cycle.
func ParallelLevels(g *graph.Graph) (*Leveling, error) {
	if report := g.DetectCycle(); report.HasCycle {
		return nil, errors.NewCyclicGraphError(report.Members).WithOperation("parallel")
	}

	snap := g.Snapshot()
	order := g.TopoOrder().Order

	// Topological order guarantees every dependency's depth is final
	// before its dependents are visited.
	depth := make(map[string]int, snap.Len())
	for _, id := range order {
		level := 0
		for _, dep := range g.Predecessors(id) {
			if depth[dep]+1 > level {
				level = depth[dep] + 1
			}
		}
		depth[id] = level
	}

	byLevel := make(map[int][]string)
	for _, id := range order {
		t, _ := snap.Task(id)
		if !t.Status.IsActionable() {
			continue
		}
		byLevel[depth[id]] = append(byLevel[depth[id]], id)
	}

	levels := make([]int, 0, len(byLevel))
	for level := range byLevel {
		levels = append(levels, level)
	}
	sort.Ints(levels)

	groups := make([]Group, 0, len(levels))
	for _, level := range levels {
		ids := byLevel[level]
		sort.Strings(ids)
		groups = append(groups, Group{Level: level, IDs: ids})
	}

	return &Leveling{Depth: depth, Groups: groups}, nil
}
