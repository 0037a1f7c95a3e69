package graph

import (
	"reflect"
	"testing"

	"github.com/dawsh2/Torq/internal/task"
)

func mustSnapshot(t *testing.T, records ...task.Task) *task.Snapshot {
	t.Helper()
	snap, err := task.NewSnapshot(records)
	if err != nil {
		t.Fatalf("NewSnapshot() error = %v", err)
	}
	return snap
}

func TestBuild_EdgesFromBothDeclarations(t *testing.T) {
	// "b" declares the dependency, "a" declares the inverse. Both spell
	// the same edge a->b, which must be counted once.
	snap := mustSnapshot(t,
		task.Task{ID: "a", Blocks: []string{"b"}},
		task.Task{ID: "b", DependsOn: []string{"a"}},
	)
	g := Build(snap)

	if g.EdgeCount() != 1 {
		t.Errorf("EdgeCount() = %d, want 1", g.EdgeCount())
	}
	if got := g.Successors("a"); !reflect.DeepEqual(got, []string{"b"}) {
		t.Errorf("Successors(a) = %v, want [b]", got)
	}
	if got := g.Predecessors("b"); !reflect.DeepEqual(got, []string{"a"}) {
		t.Errorf("Predecessors(b) = %v, want [a]", got)
	}
}

func TestBuild_BlocksOnlyEdge(t *testing.T) {
	// An edge declared only through Blocks is as binding as one declared
	// through DependsOn.
	snap := mustSnapshot(t,
		task.Task{ID: "a", Blocks: []string{"b"}},
		task.Task{ID: "b"},
	)
	g := Build(snap)

	if got := g.Predecessors("b"); !reflect.DeepEqual(got, []string{"a"}) {
		t.Errorf("Predecessors(b) = %v, want [a]", got)
	}
	if got := g.Successors("b"); len(got) != 0 {
		t.Errorf("Successors(b) = %v, want none", got)
	}
}

func TestBuild_DanglingRefs(t *testing.T) {
	snap := mustSnapshot(t,
		task.Task{ID: "a", DependsOn: []string{"ghost"}, Blocks: []string{"b", "phantom"}},
		task.Task{ID: "b"},
	)
	g := Build(snap)

	want := []DanglingRef{
		{TaskID: "a", MissingID: "ghost", Field: "depends_on"},
		{TaskID: "a", MissingID: "phantom", Field: "blocks"},
	}
	if got := g.Dangling(); !reflect.DeepEqual(got, want) {
		t.Errorf("Dangling() = %v, want %v", got, want)
	}
	// Only the a->b edge survives; the dangling references contribute none.
	if g.EdgeCount() != 1 {
		t.Errorf("EdgeCount() = %d, want 1", g.EdgeCount())
	}
}

func TestBuild_SortedAdjacency(t *testing.T) {
	snap := mustSnapshot(t,
		task.Task{ID: "hub", Blocks: []string{"z", "m", "a"}},
		task.Task{ID: "a"},
		task.Task{ID: "m"},
		task.Task{ID: "z"},
	)
	g := Build(snap)

	if got := g.Successors("hub"); !reflect.DeepEqual(got, []string{"a", "m", "z"}) {
		t.Errorf("Successors(hub) = %v, want [a m z]", got)
	}
	if got := g.Len(); got != 4 {
		t.Errorf("Len() = %d, want 4", got)
	}
}

func TestRootsAndLeaves(t *testing.T) {
	snap := mustSnapshot(t,
		task.Task{ID: "a"},
		task.Task{ID: "b", DependsOn: []string{"a"}},
		task.Task{ID: "c", DependsOn: []string{"b"}},
		task.Task{ID: "d"},
	)
	g := Build(snap)

	if got := g.Roots(); !reflect.DeepEqual(got, []string{"a", "d"}) {
		t.Errorf("Roots() = %v, want [a d]", got)
	}
	if got := g.Leaves(); !reflect.DeepEqual(got, []string{"c", "d"}) {
		t.Errorf("Leaves() = %v, want [c d]", got)
	}
}

func TestReachableFrom(t *testing.T) {
	snap := mustSnapshot(t,
		task.Task{ID: "a", Blocks: []string{"b", "c"}},
		task.Task{ID: "b", Blocks: []string{"d"}},
		task.Task{ID: "c"},
		task.Task{ID: "d"},
		task.Task{ID: "e"},
	)
	g := Build(snap)

	tests := []struct {
		id   string
		want []string
	}{
		{"a", []string{"b", "c", "d"}},
		{"b", []string{"d"}},
		{"d", nil},
		{"e", nil},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			got := g.ReachableFrom(tt.id)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ReachableFrom(%q) = %v, want %v", tt.id, got, tt.want)
			}
		})
	}
}

func TestReachableFrom_Cycle(t *testing.T) {
	// Reachability terminates on cyclic input and still excludes the
	// starting task even when the cycle leads back to it.
	snap := mustSnapshot(t,
		task.Task{ID: "x", DependsOn: []string{"y"}},
		task.Task{ID: "y", DependsOn: []string{"x"}},
	)
	g := Build(snap)

	if got := g.ReachableFrom("x"); !reflect.DeepEqual(got, []string{"y"}) {
		t.Errorf("ReachableFrom(x) = %v, want [y]", got)
	}
}

func TestReaches(t *testing.T) {
	snap := mustSnapshot(t,
		task.Task{ID: "a", Blocks: []string{"b"}},
		task.Task{ID: "b", Blocks: []string{"c"}},
		task.Task{ID: "c"},
		task.Task{ID: "d"},
	)
	g := Build(snap)

	tests := []struct {
		name     string
		from, to string
		want     bool
	}{
		{"direct", "a", "b", true},
		{"transitive", "a", "c", true},
		{"reverse", "c", "a", false},
		{"disconnected", "a", "d", false},
		{"self", "d", "d", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := g.Reaches(tt.from, tt.to); got != tt.want {
				t.Errorf("Reaches(%q, %q) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}
