package graph

import (
	"slices"
	"sort"
)

// CycleReport is the result of cycle detection. Members is culprit
// evidence: the nodes on the DFS path when the first back-edge was found,
// plus the back-edge target. It is not an exhaustive enumeration of every
// node in every cycle.
type CycleReport struct {
	HasCycle bool     `json:"has_cycle"`
	Members  []string `json:"members,omitempty"`
}

const (
	white = iota // unvisited
	gray         // on the current DFS path
	black        // fully explored
)

// dfsFrame tracks one node on the explicit DFS stack and the index of the
// next successor to examine.
type dfsFrame struct {
	id   string
	next int
}

// DetectCycle runs a three-color depth-first search over the whole graph.
// The traversal uses an explicit frame stack rather than recursion, so
// arbitrarily deep chains cannot exhaust the goroutine stack. Start nodes
// are taken in lexicographic order and adjacency lists are sorted, so
// repeated runs on identical input report identical members.
//
// An empty graph reports no cycle.
func (g *Graph) DetectCycle() CycleReport {
	color := make(map[string]int, g.snap.Len())

	for _, start := range g.snap.SortedIDs() {
		if color[start] != white {
			continue
		}

		stack := []dfsFrame{{id: start}}
		color[start] = gray

		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			succs := g.successors[top.id]

			if top.next >= len(succs) {
				color[top.id] = black
				stack = stack[:len(stack)-1]
				continue
			}

			next := succs[top.next]
			top.next++

			switch color[next] {
			case white:
				color[next] = gray
				stack = append(stack, dfsFrame{id: next})
			case gray:
				// Back-edge: everything gray is on the current path and
				// implicated, together with the edge target.
				members := make([]string, 0, len(stack)+1)
				for _, f := range stack {
					members = append(members, f.id)
				}
				members = append(members, next)
				sort.Strings(members)
				return CycleReport{HasCycle: true, Members: slices.Compact(members)}
			}
		}
	}

	return CycleReport{}
}
