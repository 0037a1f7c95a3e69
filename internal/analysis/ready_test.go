package analysis

import (
	"reflect"
	"slices"
	"testing"

	"github.com/dawsh2/Torq/internal/task"
)

func TestReadyTasks_ActionableOnly(t *testing.T) {
	g := buildGraph(t,
		task.Task{ID: "a", Status: task.StatusPending},
		task.Task{ID: "b", Status: task.StatusInProgress},
		task.Task{ID: "c", Status: task.StatusComplete},
		task.Task{ID: "d", Status: task.StatusBlocked},
		task.Task{ID: "e", Status: task.StatusCancelled},
	)

	if got := ReadyTasks(g); !reflect.DeepEqual(got, []string{"a"}) {
		t.Errorf("ReadyTasks() = %v, want [a]", got)
	}
}

func TestReadyTasks_DependencyStates(t *testing.T) {
	tests := []struct {
		depStatus task.Status
		wantReady bool
	}{
		{task.StatusComplete, true},
		{task.StatusCancelled, true},
		{task.StatusPending, false},
		{task.StatusInProgress, false},
		{task.StatusBlocked, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.depStatus), func(t *testing.T) {
			g := buildGraph(t,
				task.Task{ID: "dep", Status: tt.depStatus},
				task.Task{ID: "t", Status: task.StatusPending, DependsOn: []string{"dep"}},
			)
			got := slices.Contains(ReadyTasks(g), "t")
			if got != tt.wantReady {
				t.Errorf("ready(t) with %s dependency = %v, want %v", tt.depStatus, got, tt.wantReady)
			}
		})
	}
}

func TestReadyTasks_UnknownDependencyFailsClosed(t *testing.T) {
	g := buildGraph(t,
		task.Task{ID: "t", Status: task.StatusPending, DependsOn: []string{"ghost"}},
	)

	if got := ReadyTasks(g); len(got) != 0 {
		t.Errorf("ReadyTasks() = %v, want none: an unknown dependency never satisfies", got)
	}
}

func TestReadyTasks_BlocksDeclaredDependency(t *testing.T) {
	t.Run("blocker pending", func(t *testing.T) {
		g := buildGraph(t,
			task.Task{ID: "u", Status: task.StatusPending, Blocks: []string{"v"}},
			task.Task{ID: "v", Status: task.StatusPending},
		)
		if got := ReadyTasks(g); !reflect.DeepEqual(got, []string{"u"}) {
			t.Errorf("ReadyTasks() = %v, want [u]", got)
		}
	})

	t.Run("blocker complete", func(t *testing.T) {
		g := buildGraph(t,
			task.Task{ID: "u", Status: task.StatusComplete, Blocks: []string{"v"}},
			task.Task{ID: "v", Status: task.StatusPending},
		)
		if got := ReadyTasks(g); !reflect.DeepEqual(got, []string{"v"}) {
			t.Errorf("ReadyTasks() = %v, want [v]", got)
		}
	})
}

func TestReadyTasks_PriorityOrdering(t *testing.T) {
	g := buildGraph(t,
		task.Task{ID: "low-1", Status: task.StatusPending, Priority: task.PriorityLow},
		task.Task{ID: "med-b", Status: task.StatusPending, Priority: task.PriorityMedium},
		task.Task{ID: "crit-1", Status: task.StatusPending, Priority: task.PriorityCritical},
		task.Task{ID: "med-a", Status: task.StatusPending, Priority: task.PriorityMedium},
	)

	want := []string{"crit-1", "med-a", "med-b", "low-1"}
	if got := ReadyTasks(g); !reflect.DeepEqual(got, want) {
		t.Errorf("ReadyTasks() = %v, want %v", got, want)
	}
}
