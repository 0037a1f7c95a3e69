package export

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/dawsh2/Torq/internal/task"
)

// DOT writes the graph in Graphviz format. Tasks sharing a group render
// inside one filled cluster per group; ungrouped tasks sit at the top
// level. Node fill encodes status, node shape encodes priority, and
// edge style encodes the relation kind: solid for depends, dashed for
// blocks, dotted for parent.
func (g *Graph) DOT(w io.Writer) error {
	var b strings.Builder
	b.WriteString("digraph TaskDependencies {\n")
	b.WriteString("  rankdir=LR;\n")
	b.WriteString("  node [shape=box, style=rounded];\n")
	b.WriteString("\n")

	grouped := make(map[string][]Node)
	var ungrouped []Node
	var groups []string
	for _, n := range g.Nodes {
		if n.Group == "" {
			ungrouped = append(ungrouped, n)
			continue
		}
		if _, seen := grouped[n.Group]; !seen {
			groups = append(groups, n.Group)
		}
		grouped[n.Group] = append(grouped[n.Group], n)
	}
	// Nodes arrive sorted by id; insertion order of group names is
	// id-driven, so sort them by name for stable cluster output.
	sort.Strings(groups)

	for _, group := range groups {
		fmt.Fprintf(&b, "  subgraph %q {\n", "cluster_"+group)
		fmt.Fprintf(&b, "    label=%q;\n", group)
		b.WriteString("    style=filled;\n")
		b.WriteString("    fillcolor=lightgrey;\n")
		for _, n := range grouped[group] {
			fmt.Fprintf(&b, "    %q [fillcolor=%s, style=filled, shape=%s];\n",
				n.ID, statusColor(n.Status), priorityShape(n.Priority))
		}
		b.WriteString("  }\n")
		b.WriteString("\n")
	}

	if len(ungrouped) > 0 {
		for _, n := range ungrouped {
			fmt.Fprintf(&b, "  %q [fillcolor=%s, style=filled, shape=%s];\n",
				n.ID, statusColor(n.Status), priorityShape(n.Priority))
		}
		b.WriteString("\n")
	}

	var wroteOrdering, wroteHierarchy bool
	for _, e := range g.Edges {
		switch e.Kind {
		case EdgeParent:
			if !wroteHierarchy {
				b.WriteString("  // Hierarchy\n")
				wroteHierarchy = true
			}
			fmt.Fprintf(&b, "  %q -> %q [style=dotted];\n", e.From, e.To)
		case EdgeBlocks:
			if !wroteOrdering {
				b.WriteString("  // Dependencies\n")
				wroteOrdering = true
			}
			fmt.Fprintf(&b, "  %q -> %q [style=dashed];\n", e.From, e.To)
		default:
			if !wroteOrdering {
				b.WriteString("  // Dependencies\n")
				wroteOrdering = true
			}
			fmt.Fprintf(&b, "  %q -> %q;\n", e.From, e.To)
		}
	}

	b.WriteString("}\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func statusColor(s task.Status) string {
	switch s {
	case task.StatusComplete:
		return "lightgreen"
	case task.StatusInProgress:
		return "yellow"
	case task.StatusBlocked:
		return "pink"
	default:
		return "white"
	}
}

func priorityShape(p task.Priority) string {
	switch p {
	case task.PriorityCritical:
		return "octagon"
	case task.PriorityHigh:
		return "diamond"
	default:
		return "box"
	}
}
