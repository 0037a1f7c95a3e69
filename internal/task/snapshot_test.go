package task

import (
	"reflect"
	"testing"

	"github.com/dawsh2/Torq/internal/errors"
)

func TestNewSnapshot(t *testing.T) {
	snap, err := NewSnapshot([]Task{
		{ID: "B", Status: StatusPending, Priority: PriorityMedium},
		{ID: "A", Status: StatusComplete, DependsOn: []string{"B"}},
	})
	if err != nil {
		t.Fatalf("NewSnapshot() error = %v", err)
	}

	if snap.Len() != 2 {
		t.Errorf("Len() = %d, want 2", snap.Len())
	}
	if !snap.Contains("A") || !snap.Contains("B") {
		t.Error("Contains() lost a task")
	}
	if _, ok := snap.Task("C"); ok {
		t.Error(`Task("C") found, want missing`)
	}

	// Input order preserved, sorted order lexicographic.
	if got := snap.IDs(); !reflect.DeepEqual(got, []string{"B", "A"}) {
		t.Errorf("IDs() = %v, want [B A]", got)
	}
	if got := snap.SortedIDs(); !reflect.DeepEqual(got, []string{"A", "B"}) {
		t.Errorf("SortedIDs() = %v, want [A B]", got)
	}
}

func TestNewSnapshot_EmptyID(t *testing.T) {
	_, err := NewSnapshot([]Task{{ID: ""}})
	if err == nil {
		t.Fatal("NewSnapshot() with empty id: error = nil, want error")
	}
	if !errors.Is(err, errors.ErrInvalidInput) {
		t.Errorf("error = %v, want ErrInvalidInput", err)
	}
}

func TestNewSnapshot_DuplicateID(t *testing.T) {
	_, err := NewSnapshot([]Task{
		{ID: "TASK-001", SourceFile: "sprint-1/a.md"},
		{ID: "TASK-001", SourceFile: "sprint-2/b.md"},
	})
	if err == nil {
		t.Fatal("NewSnapshot() with duplicate id: error = nil, want error")
	}

	var dup *errors.DuplicateIDError
	if !errors.As(err, &dup) {
		t.Fatalf("error = %T, want *DuplicateIDError", err)
	}
	if dup.ID != "TASK-001" {
		t.Errorf("DuplicateIDError.ID = %q, want %q", dup.ID, "TASK-001")
	}
	if len(dup.Files) != 2 {
		t.Errorf("DuplicateIDError.Files = %v, want both source files", dup.Files)
	}
	if !errors.IsStructural(err) {
		t.Error("IsStructural() = false, want true")
	}
}

func TestNewSnapshot_SelfDependency(t *testing.T) {
	tests := []struct {
		name string
		task Task
	}{
		{"in depends_on", Task{ID: "X", DependsOn: []string{"X"}}},
		{"in blocks", Task{ID: "X", Blocks: []string{"X"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSnapshot([]Task{tt.task})
			if err == nil {
				t.Fatal("NewSnapshot() error = nil, want SelfDependencyError")
			}
			var selfDep *errors.SelfDependencyError
			if !errors.As(err, &selfDep) {
				t.Fatalf("error = %T, want *SelfDependencyError", err)
			}
			if selfDep.ID != "X" {
				t.Errorf("SelfDependencyError.ID = %q, want %q", selfDep.ID, "X")
			}
		})
	}
}

func TestNewSnapshot_DanglingReferenceAllowed(t *testing.T) {
	// Unknown references are graph-layer data, not snapshot errors.
	snap, err := NewSnapshot([]Task{
		{ID: "A", DependsOn: []string{"GHOST"}},
	})
	if err != nil {
		t.Fatalf("NewSnapshot() error = %v, want nil", err)
	}
	if snap.Len() != 1 {
		t.Errorf("Len() = %d, want 1", snap.Len())
	}
}

func TestSnapshot_CanonicalizesSets(t *testing.T) {
	snap, err := NewSnapshot([]Task{
		{ID: "A", DependsOn: []string{"C", "B", "C"}, Scope: []string{"b.rs", "a.rs"}},
		{ID: "B"},
		{ID: "C"},
	})
	if err != nil {
		t.Fatalf("NewSnapshot() error = %v", err)
	}

	a, _ := snap.Task("A")
	if !reflect.DeepEqual(a.DependsOn, []string{"B", "C"}) {
		t.Errorf("DependsOn = %v, want sorted deduped [B C]", a.DependsOn)
	}
	if !reflect.DeepEqual(a.Scope, []string{"a.rs", "b.rs"}) {
		t.Errorf("Scope = %v, want sorted [a.rs b.rs]", a.Scope)
	}
}

func TestSnapshot_DoesNotAliasCallerSlices(t *testing.T) {
	deps := []string{"B"}
	records := []Task{{ID: "A", DependsOn: deps}, {ID: "B"}}

	snap, err := NewSnapshot(records)
	if err != nil {
		t.Fatalf("NewSnapshot() error = %v", err)
	}

	deps[0] = "MUTATED"
	a, _ := snap.Task("A")
	if a.DependsOn[0] != "B" {
		t.Error("snapshot aliases caller-owned slice")
	}
}

func TestSnapshot_CountByStatus(t *testing.T) {
	snap, err := NewSnapshot([]Task{
		{ID: "A", Status: StatusPending},
		{ID: "B", Status: StatusPending},
		{ID: "C", Status: StatusComplete},
		{ID: "D", Status: StatusInProgress},
	})
	if err != nil {
		t.Fatalf("NewSnapshot() error = %v", err)
	}

	counts := snap.CountByStatus()
	if counts[StatusPending] != 2 {
		t.Errorf("pending count = %d, want 2", counts[StatusPending])
	}
	if counts[StatusComplete] != 1 {
		t.Errorf("complete count = %d, want 1", counts[StatusComplete])
	}
	if counts[StatusInProgress] != 1 {
		t.Errorf("in_progress count = %d, want 1", counts[StatusInProgress])
	}
	if counts[StatusCancelled] != 0 {
		t.Errorf("cancelled count = %d, want 0", counts[StatusCancelled])
	}
}

func TestSnapshot_Empty(t *testing.T) {
	snap, err := NewSnapshot(nil)
	if err != nil {
		t.Fatalf("NewSnapshot(nil) error = %v, want nil", err)
	}
	if snap.Len() != 0 {
		t.Errorf("Len() = %d, want 0", snap.Len())
	}
	if got := snap.IDs(); len(got) != 0 {
		t.Errorf("IDs() = %v, want empty", got)
	}
}
