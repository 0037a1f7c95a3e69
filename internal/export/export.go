// Package export projects a dependency graph into a renderer-facing
// node/edge structure and serializes it as Graphviz DOT or JSON. Nodes
// carry the attributes renderers style by; edges carry the kind of
// relation they assert. Output is deterministic: identical input
// produces byte-identical renderings.
package export

import (
	"encoding/json"
	"io"
	"slices"
	"sort"

	"github.com/dawsh2/Torq/internal/graph"
	"github.com/dawsh2/Torq/internal/task"
)

// Node is one task in the exportable graph.
type Node struct {
	ID       string        `json:"id"`
	Title    string        `json:"title,omitempty"`
	Status   task.Status   `json:"status"`
	Priority task.Priority `json:"priority"`
	Group    string        `json:"group,omitempty"`
}

// EdgeKind names the relation an edge asserts.
type EdgeKind string

const (
	// EdgeDepends is an ordering edge asserted by the dependent's
	// DependsOn list.
	EdgeDepends EdgeKind = "depends"

	// EdgeBlocks is an ordering edge asserted only by the dependency's
	// Blocks list, with no mirroring DependsOn entry.
	EdgeBlocks EdgeKind = "blocks"

	// EdgeParent is a hierarchy edge from parent to child. It carries no
	// ordering semantics and never participates in graph analyses.
	EdgeParent EdgeKind = "parent"
)

// Edge is one directed relation between two known tasks.
type Edge struct {
	From string   `json:"from"`
	To   string   `json:"to"`
	Kind EdgeKind `json:"kind"`
}

// Graph is the exportable projection of a dependency graph.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Build projects the dependency graph. Nodes come out sorted by id.
// Ordering edges come out sorted by (from, to) and keep the declaration
// that asserted them: a dependent's own DependsOn entry wins over the
// inverse Blocks assertion when both exist. Parent references to
// unknown ids are dropped, as hierarchy is a rendering concern.
func Build(g *graph.Graph) *Graph {
	snap := g.Snapshot()
	out := &Graph{
		Nodes: make([]Node, 0, snap.Len()),
		Edges: make([]Edge, 0, g.EdgeCount()),
	}

	for _, id := range snap.SortedIDs() {
		t, _ := snap.Task(id)
		out.Nodes = append(out.Nodes, Node{
			ID:       t.ID,
			Title:    t.Title,
			Status:   t.Status,
			Priority: t.Priority,
			Group:    t.Group,
		})
	}

	for _, id := range snap.SortedIDs() {
		for _, succ := range g.Successors(id) {
			dependent, _ := snap.Task(succ)
			kind := EdgeBlocks
			if slices.Contains(dependent.DependsOn, id) {
				kind = EdgeDepends
			}
			out.Edges = append(out.Edges, Edge{From: id, To: succ, Kind: kind})
		}
	}

	var parents []Edge
	for _, id := range snap.SortedIDs() {
		t, _ := snap.Task(id)
		if t.Parent == "" || !snap.Contains(t.Parent) {
			continue
		}
		parents = append(parents, Edge{From: t.Parent, To: t.ID, Kind: EdgeParent})
	}
	sort.Slice(parents, func(i, j int) bool {
		if parents[i].From != parents[j].From {
			return parents[i].From < parents[j].From
		}
		return parents[i].To < parents[j].To
	})
	out.Edges = append(out.Edges, parents...)

	return out
}

// JSON writes the graph as indented JSON.
func (g *Graph) JSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(g)
}
