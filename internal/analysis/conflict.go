package analysis

import (
	"github.com/dawsh2/Torq/internal/errors"
	"github.com/dawsh2/Torq/internal/graph"
	"github.com/dawsh2/Torq/internal/task"
)

// Conflict flags two tasks that mutate overlapping scope while neither
// orders the other through the dependency graph. Overlapping resource
// mutation without an ordering guarantee is a latent race; this check is
// a soundness heuristic over the graph, not a lock. A is always the
// smaller id.
type Conflict struct {
	A       string   `json:"id_a"`
	B       string   `json:"id_b"`
	Overlap []string `json:"overlapping_scope"`
}

// ScopeConflicts examines every unordered pair of InProgress tasks and
// reports those whose scopes overlap while neither task reaches the
// other through dependency edges. Reachability in either direction is
// an ordering guarantee and exempts the pair, whether the edge is direct
// or runs through intermediate tasks. Pairs are reported sorted by
// (A, B) with the overlap sorted.
func ScopeConflicts(g *graph.Graph) []Conflict {
	snap := g.Snapshot()

	var active []*task.Task
	for _, id := range snap.SortedIDs() {
		t, _ := snap.Task(id)
		if t.Status == task.StatusInProgress && len(t.Scope) > 0 {
			active = append(active, t)
		}
	}

	var conflicts []Conflict
	for i := 0; i < len(active); i++ {
		for j := i + 1; j < len(active); j++ {
			if c, ok := conflictBetween(g, active[i], active[j]); ok {
				conflicts = append(conflicts, c)
			}
		}
	}
	return conflicts
}

// ConflictsWith runs the scope-conflict check for a single task against
// every InProgress task, whatever the target's own status: would
// starting or continuing this task race anything already underway? An
// unknown id is an error.
func ConflictsWith(g *graph.Graph, id string) ([]Conflict, error) {
	snap := g.Snapshot()
	target, ok := snap.Task(id)
	if !ok {
		return nil, errors.NewUnknownTaskError(id)
	}

	var conflicts []Conflict
	for _, otherID := range snap.SortedIDs() {
		if otherID == id {
			continue
		}
		other, _ := snap.Task(otherID)
		if other.Status != task.StatusInProgress {
			continue
		}
		if c, ok := conflictBetween(g, target, other); ok {
			conflicts = append(conflicts, c)
		}
	}
	return conflicts, nil
}

func conflictBetween(g *graph.Graph, a, b *task.Task) (Conflict, bool) {
	overlap := intersect(a.Scope, b.Scope)
	if len(overlap) == 0 {
		return Conflict{}, false
	}
	if g.Reaches(a.ID, b.ID) || g.Reaches(b.ID, a.ID) {
		return Conflict{}, false
	}
	if b.ID < a.ID {
		a, b = b, a
	}
	return Conflict{A: a.ID, B: b.ID, Overlap: overlap}, true
}

// intersect returns the elements common to two sorted sets. Scope sets
// are canonicalized at snapshot construction, so a single merge walk
// suffices.
func intersect(a, b []string) []string {
	var out []string
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] == b[j]:
			out = append(out, a[i])
			i++
			j++
		case a[i] < b[j]:
			i++
		default:
			j++
		}
	}
	return out
}
