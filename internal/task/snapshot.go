package task

import (
	"slices"
	"sort"

	"github.com/dawsh2/Torq/internal/errors"
)

// Snapshot is an immutable, validated collection of task records: the unit
// of input for every analysis. Input order is preserved because it serves
// as the final tie-break for deterministic iteration.
//
// A Snapshot is safe for concurrent read access. Callers must not mutate
// tasks returned from it.
type Snapshot struct {
	tasks []Task
	index map[string]int
}

// NewSnapshot validates the given records and builds a Snapshot.
//
// Validation here is the fail-fast structural kind:
//   - empty ids are rejected
//   - two records sharing an id is a DuplicateIDError
//   - a task listing its own id in DependsOn or Blocks is a
//     SelfDependencyError
//
// Dangling references are not checked here: a reference to an unknown id
// is data for the graph builder, not grounds to refuse the snapshot.
func NewSnapshot(records []Task) (*Snapshot, error) {
	s := &Snapshot{
		tasks: make([]Task, 0, len(records)),
		index: make(map[string]int, len(records)),
	}

	for _, rec := range records {
		if rec.ID == "" {
			return nil, errors.NewValidationError("task id must not be empty").
				WithField("id")
		}
		if prev, exists := s.index[rec.ID]; exists {
			dup := errors.NewDuplicateIDError(rec.ID)
			for _, f := range []string{s.tasks[prev].SourceFile, rec.SourceFile} {
				if f != "" {
					dup = dup.WithFiles(f)
				}
			}
			return nil, dup
		}
		if slices.Contains(rec.DependsOn, rec.ID) || slices.Contains(rec.Blocks, rec.ID) {
			return nil, errors.NewSelfDependencyError(rec.ID)
		}

		s.index[rec.ID] = len(s.tasks)
		s.tasks = append(s.tasks, rec.clone())
	}

	return s, nil
}

// Len returns the number of tasks in the snapshot.
func (s *Snapshot) Len() int {
	return len(s.tasks)
}

// Task returns the task with the given id.
func (s *Snapshot) Task(id string) (*Task, bool) {
	i, ok := s.index[id]
	if !ok {
		return nil, false
	}
	return &s.tasks[i], true
}

// Contains reports whether the snapshot holds a task with the given id.
func (s *Snapshot) Contains(id string) bool {
	_, ok := s.index[id]
	return ok
}

// Tasks returns the tasks in input order.
func (s *Snapshot) Tasks() []*Task {
	out := make([]*Task, len(s.tasks))
	for i := range s.tasks {
		out[i] = &s.tasks[i]
	}
	return out
}

// IDs returns the task ids in input order.
func (s *Snapshot) IDs() []string {
	out := make([]string, len(s.tasks))
	for i, t := range s.tasks {
		out[i] = t.ID
	}
	return out
}

// SortedIDs returns the task ids in ascending lexicographic order.
func (s *Snapshot) SortedIDs() []string {
	out := s.IDs()
	sort.Strings(out)
	return out
}

// CountByStatus returns the number of tasks per status.
func (s *Snapshot) CountByStatus() map[Status]int {
	counts := make(map[Status]int)
	for i := range s.tasks {
		counts[s.tasks[i].Status]++
	}
	return counts
}

// cloneSorted copies a string set, sorts it, and drops duplicates, so
// snapshot storage is canonical regardless of how the source file ordered
// its lists.
func cloneSorted(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	sort.Strings(out)
	return slices.Compact(out)
}
