package analysis

import (
	"sort"

	"github.com/dawsh2/Torq/internal/graph"
	"github.com/dawsh2/Torq/internal/task"
)

// DefaultTopBottlenecks bounds the ranking when the caller does not ask
// for a specific count.
const DefaultTopBottlenecks = 10

// Bottleneck scores one task by how much other work its completion
// unblocks. Tasks that block nothing are not listed.
type Bottleneck struct {
	ID       string        `json:"id"`
	Status   task.Status   `json:"status"`
	Priority task.Priority `json:"priority"`

	// DirectDependents is the task's out-degree.
	DirectDependents int `json:"direct_successor_count"`

	// TransitiveDependents counts every task reachable through successor
	// edges. Direct out-degree understates a task that gates a long
	// chain; the transitive count is what the ranking sorts by.
	TransitiveDependents int `json:"transitive_successor_count"`
}

// Bottlenecks ranks tasks by transitive impact, descending, with ties
// broken by direct dependents descending and then by ascending id.
// topK <= 0 returns the full ranking. Cycles are tolerated: the
// reachability walk carries a visited set, so members of a cycle simply
// count each other once.
func Bottlenecks(g *graph.Graph, topK int) []Bottleneck {
	snap := g.Snapshot()

	var ranked []Bottleneck
	for _, id := range snap.SortedIDs() {
		direct := len(g.Successors(id))
		if direct == 0 {
			continue
		}
		t, _ := snap.Task(id)
		ranked = append(ranked, Bottleneck{
			ID:                   id,
			Status:               t.Status,
			Priority:             t.Priority,
			DirectDependents:     direct,
			TransitiveDependents: len(g.ReachableFrom(id)),
		})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].TransitiveDependents != ranked[j].TransitiveDependents {
			return ranked[i].TransitiveDependents > ranked[j].TransitiveDependents
		}
		if ranked[i].DirectDependents != ranked[j].DirectDependents {
			return ranked[i].DirectDependents > ranked[j].DirectDependents
		}
		return ranked[i].ID < ranked[j].ID
	})

	if topK > 0 && len(ranked) > topK {
		ranked = ranked[:topK]
	}
	return ranked
}
