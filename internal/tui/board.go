package tui

import (
	"sort"

	"github.com/dawsh2/Torq/internal/graph"
	"github.com/dawsh2/Torq/internal/task"
)

// BoardNode is one task placed on the board.
type BoardNode struct {
	Task       *task.Task
	Level      int      // dependency level (0 = no dependencies)
	DependsOn  []string // known dependency ids, both edge spellings
	Dependents []string // ids this task unblocks
}

// Board arranges every task into dependency levels for rendering.
// Tasks trapped in cycles get no valid level; they are pinned to a
// final level and flagged so the view can show a banner.
type Board struct {
	nodes map[string]*BoardNode
	// levels groups task ids by dependency level
	levels [][]string
	// maxLevel is the deepest level on the board
	maxLevel int
	// hasCycle is true if cyclic dependencies were detected
	hasCycle bool
	// cycleIDs holds tasks with no valid level: cycle members and
	// everything gated behind them
	cycleIDs []string
}

// NewBoard lays out the graph. A nil or empty graph yields an empty
// board.
func NewBoard(g *graph.Graph) *Board {
	b := &Board{
		nodes:  make(map[string]*BoardNode),
		levels: make([][]string, 0),
	}
	if g == nil || g.Len() == 0 {
		return b
	}

	for _, t := range g.Snapshot().Tasks() {
		b.nodes[t.ID] = &BoardNode{
			Task:       t,
			DependsOn:  g.Predecessors(t.ID),
			Dependents: g.Successors(t.ID),
		}
	}

	b.calculateLevels()
	return b
}

// calculateLevels assigns each node the first level at which all of
// its dependencies are already placed. When a pass places nothing and
// nodes remain, those nodes are inside or behind a cycle; they all go
// on one final level.
func (b *Board) calculateLevels() {
	placed := make(map[string]bool)

	for len(placed) < len(b.nodes) {
		var current []string

		for id, node := range b.nodes {
			if placed[id] {
				continue
			}
			ready := true
			for _, dep := range node.DependsOn {
				if !placed[dep] {
					ready = false
					break
				}
			}
			if ready {
				current = append(current, id)
				node.Level = len(b.levels)
			}
		}

		if len(current) == 0 {
			var stuck []string
			for id := range b.nodes {
				if !placed[id] {
					stuck = append(stuck, id)
					placed[id] = true
					b.nodes[id].Level = len(b.levels)
				}
			}
			sort.Strings(stuck)
			b.hasCycle = true
			b.cycleIDs = stuck
			b.levels = append(b.levels, stuck)
			break
		}

		sort.Strings(current)
		for _, id := range current {
			placed[id] = true
		}
		b.levels = append(b.levels, current)
	}

	b.maxLevel = max(len(b.levels)-1, 0)
}

// Len returns the number of tasks on the board.
func (b *Board) Len() int {
	return len(b.nodes)
}

// Node returns the placed node for a task id.
func (b *Board) Node(id string) (*BoardNode, bool) {
	n, ok := b.nodes[id]
	return n, ok
}

// Levels returns the ids per level, shallowest first.
func (b *Board) Levels() [][]string {
	return b.levels
}

// HasCycle reports whether any task could not be placed.
func (b *Board) HasCycle() bool {
	return b.hasCycle
}

// CycleIDs returns the tasks pinned to the final level by a cycle.
func (b *Board) CycleIDs() []string {
	return b.cycleIDs
}
