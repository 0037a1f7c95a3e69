package analysis

import (
	"sort"

	"github.com/dawsh2/Torq/internal/errors"
	"github.com/dawsh2/Torq/internal/graph"
	"github.com/dawsh2/Torq/internal/task"
)

// PhaseStatus is the rollup of one group's task statuses.
type PhaseStatus string

const (
	PhaseComplete   PhaseStatus = "complete"
	PhaseInProgress PhaseStatus = "in_progress"
	PhasePartial    PhaseStatus = "partial"
	PhasePending    PhaseStatus = "pending"
)

// PhaseGroup summarizes one group inside a phase.
type PhaseGroup struct {
	Name   string      `json:"name"`
	Status PhaseStatus `json:"status"`
	Tasks  []string    `json:"tasks"`
}

// Phase is one wave of groups that may run concurrently: every group a
// member group depends on sits in an earlier phase.
type Phase struct {
	Index  int          `json:"phase"`
	Groups []PhaseGroup `json:"groups"`
}

// Timeline is the phase ordering of group labels.
type Timeline struct {
	Phases []Phase `json:"phases"`
}

// GroupTimeline orders group labels into execution phases. Group X
// precedes group Y when any task in Y depends on a task in X; groups
// with no dependency between them share a phase. Tasks without a group
// label do not participate, and a dependency running through an
// ungrouped task carries no ordering between groups.
//
// Cyclic task input is refused, and so is a dependency cycle between
// the groups themselves, which can exist even over an acyclic task
// graph when two groups each contain work the other gates.
func GroupTimeline(g *graph.Graph) (*Timeline, error) {
	if report := g.DetectCycle(); report.HasCycle {
		return nil, errors.NewCyclicGraphError(report.Members).WithOperation("timeline")
	}

	snap := g.Snapshot()

	groupTasks := make(map[string][]string)
	groupDeps := make(map[string]map[string]bool)
	for _, id := range g.TopoOrder().Order {
		t, _ := snap.Task(id)
		if t.Group == "" {
			continue
		}
		groupTasks[t.Group] = append(groupTasks[t.Group], id)
		for _, dep := range g.Predecessors(id) {
			d, _ := snap.Task(dep)
			if d.Group == "" || d.Group == t.Group {
				continue
			}
			if groupDeps[t.Group] == nil {
				groupDeps[t.Group] = make(map[string]bool)
			}
			groupDeps[t.Group][d.Group] = true
		}
	}

	groupSucc := make(map[string][]string)
	indeg := make(map[string]int, len(groupTasks))
	for name := range groupTasks {
		indeg[name] = len(groupDeps[name])
		for dep := range groupDeps[name] {
			groupSucc[dep] = append(groupSucc[dep], name)
		}
	}

	var wave []string
	for name := range groupTasks {
		if indeg[name] == 0 {
			wave = append(wave, name)
		}
	}
	sort.Strings(wave)

	timeline := &Timeline{}
	placed := 0
	for phase := 1; len(wave) > 0; phase++ {
		p := Phase{Index: phase}
		for _, name := range wave {
			ids := groupTasks[name]
			sort.Strings(ids)
			p.Groups = append(p.Groups, PhaseGroup{
				Name:   name,
				Status: rollupStatus(snap, ids),
				Tasks:  ids,
			})
		}
		timeline.Phases = append(timeline.Phases, p)
		placed += len(wave)

		var next []string
		for _, name := range wave {
			for _, succ := range groupSucc[name] {
				indeg[succ]--
				if indeg[succ] == 0 {
					next = append(next, succ)
				}
			}
		}
		sort.Strings(next)
		wave = next
	}

	if placed < len(groupTasks) {
		var remaining []string
		for name := range groupTasks {
			if indeg[name] > 0 {
				remaining = append(remaining, name)
			}
		}
		sort.Strings(remaining)
		return nil, errors.NewCyclicGraphError(remaining).WithOperation("timeline")
	}

	return timeline, nil
}

// rollupStatus reduces a group's tasks to a single phase status. All
// terminal beats any in progress beats some terminal beats nothing
// started, matching how a sprint reads at a glance.
func rollupStatus(snap *task.Snapshot, ids []string) PhaseStatus {
	terminal := 0
	inProgress := false
	for _, id := range ids {
		t, _ := snap.Task(id)
		switch {
		case t.Status.IsTerminal():
			terminal++
		case t.Status == task.StatusInProgress:
			inProgress = true
		}
	}

	switch {
	case terminal == len(ids):
		return PhaseComplete
	case inProgress:
		return PhaseInProgress
	case terminal > 0:
		return PhasePartial
	default:
		return PhasePending
	}
}
