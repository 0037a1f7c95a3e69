package analysis

import (
	"sort"

	"github.com/dawsh2/Torq/internal/graph"
	"github.com/dawsh2/Torq/internal/task"
)

// ReadyTasks returns the ids of tasks eligible to start right now: the
// status is actionable and every dependency resolves to a known task in
// a terminal state. A dependency naming no known task keeps its
// dependent unready forever; readiness is never granted on an assumption
// about unknown work. Results are sorted by priority rank, then id.
func ReadyTasks(g *graph.Graph) []string {
	snap := g.Snapshot()

	var ready []string
	for _, t := range snap.Tasks() {
		if !t.Status.IsActionable() {
			continue
		}
		if !depsSatisfied(g, t) {
			continue
		}
		ready = append(ready, t.ID)
	}

	sort.Slice(ready, func(i, j int) bool {
		a, _ := snap.Task(ready[i])
		b, _ := snap.Task(ready[j])
		if a.Priority.Rank() != b.Priority.Rank() {
			return a.Priority.Rank() < b.Priority.Rank()
		}
		return a.ID < b.ID
	})
	return ready
}

// depsSatisfied checks both declaration forms: DependsOn entries must
// all resolve (the fail-closed rule for dangling ids), and every
// reconciled predecessor, including those asserted through another
// task's Blocks, must be terminal.
func depsSatisfied(g *graph.Graph, t *task.Task) bool {
	snap := g.Snapshot()
	for _, dep := range t.DependsOn {
		if !snap.Contains(dep) {
			return false
		}
	}
	for _, pred := range g.Predecessors(t.ID) {
		p, _ := snap.Task(pred)
		if !p.Status.IsTerminal() {
			return false
		}
	}
	return true
}
