package graph

import (
	"container/heap"
	"sort"
)

// TopoResult is the outcome of Kahn's algorithm. When the graph is cyclic
// the order is partial: every task that is not downstream of a cycle still
// appears, and the unplaceable remainder is listed in Remaining. A cycle
// is reported as data here, never as an error, so callers can still show
// what is resolvable.
type TopoResult struct {
	Order     []string `json:"order"`
	HasCycle  bool     `json:"has_cycle"`
	Remaining []string `json:"remaining,omitempty"`
}

// idHeap is a min-heap of task ids: the ready queue for Kahn's algorithm.
// Popping the smallest id at every step makes the order deterministic.
type idHeap []string

func (h idHeap) Len() int           { return len(h) }
func (h idHeap) Less(i, j int) bool { return h[i] < h[j] }
func (h idHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *idHeap) Push(x any)        { *h = append(*h, x.(string)) }
func (h *idHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// TopoOrder computes a topological execution order using Kahn's
// algorithm: in-degrees are counted from the edge set, every
// zero-in-degree node seeds the ready heap, and draining a node decrements
// its successors, enqueueing any that reach zero. If fewer nodes are
// emitted than exist, a cycle sits among the remainder.
func (g *Graph) TopoOrder() TopoResult {
	indeg := make(map[string]int, g.snap.Len())
	for _, id := range g.snap.IDs() {
		indeg[id] = len(g.predecessors[id])
	}

	ready := &idHeap{}
	heap.Init(ready)
	for _, id := range g.snap.SortedIDs() {
		if indeg[id] == 0 {
			heap.Push(ready, id)
		}
	}

	order := make([]string, 0, g.snap.Len())
	for ready.Len() > 0 {
		id := heap.Pop(ready).(string)
		order = append(order, id)
		for _, succ := range g.successors[id] {
			indeg[succ]--
			if indeg[succ] == 0 {
				heap.Push(ready, succ)
			}
		}
	}

	result := TopoResult{Order: order}
	if len(order) < g.snap.Len() {
		result.HasCycle = true
		for id, d := range indeg {
			if d > 0 {
				result.Remaining = append(result.Remaining, id)
			}
		}
		sort.Strings(result.Remaining)
	}
	return result
}
