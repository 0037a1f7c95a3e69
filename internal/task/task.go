package task

import (
	"fmt"
	"strings"
)

// Status represents the workflow state of a task.
type Status string

const (
	// StatusPending indicates the task has not started and is actionable
	// once its dependencies complete.
	StatusPending Status = "pending"

	// StatusInProgress indicates the task is actively being worked.
	StatusInProgress Status = "in_progress"

	// StatusComplete indicates the task finished.
	StatusComplete Status = "complete"

	// StatusBlocked indicates the task is waiting on something outside
	// the dependency graph.
	StatusBlocked Status = "blocked"

	// StatusCancelled indicates the task was abandoned. Cancelled counts
	// as terminal: dependents are no longer waiting on it.
	StatusCancelled Status = "cancelled"
)

// String returns the string representation of the status.
func (s Status) String() string {
	return string(s)
}

// IsTerminal returns true if this status represents a final state.
// Dependencies on a terminal task are considered satisfied.
func (s Status) IsTerminal() bool {
	return s == StatusComplete || s == StatusCancelled
}

// IsActionable returns true if the task is eligible to start, dependencies
// permitting.
func (s Status) IsActionable() bool {
	return s == StatusPending
}

// Valid returns true if the status is one of the known values.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusComplete, StatusBlocked, StatusCancelled:
		return true
	}
	return false
}

// ParseStatus normalizes a status spelling from a task file into a Status.
// The source system wrote statuses in several dialects (TODO, NEXT,
// IN_PROGRESS, IN-PROGRESS, WAITING, DONE, COMPLETE, CANCELLED); all of
// them are accepted here so old task files keep parsing.
func ParseStatus(s string) (Status, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.ReplaceAll(norm, "-", "_")

	switch norm {
	case "pending", "todo", "next":
		return StatusPending, nil
	case "in_progress", "inprogress", "wip":
		return StatusInProgress, nil
	case "complete", "completed", "done":
		return StatusComplete, nil
	case "blocked", "waiting":
		return StatusBlocked, nil
	case "cancelled", "canceled":
		return StatusCancelled, nil
	}
	return "", fmt.Errorf("unrecognized status %q", s)
}

// Priority orders tasks for tie-breaking. It never affects graph validity
// or ordering constraints, only the presentation order of equal choices.
type Priority string

const (
	PriorityCritical Priority = "critical"
	PriorityHigh     Priority = "high"
	PriorityMedium   Priority = "medium"
	PriorityLow      Priority = "low"
)

// String returns the string representation of the priority.
func (p Priority) String() string {
	return string(p)
}

// Rank returns the sort rank of the priority: Critical sorts first.
// Unknown priorities rank with Medium.
func (p Priority) Rank() int {
	switch p {
	case PriorityCritical:
		return 0
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 3
	}
	return 2
}

// Valid returns true if the priority is one of the known values.
func (p Priority) Valid() bool {
	switch p {
	case PriorityCritical, PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// ParsePriority normalizes a priority spelling from a task file.
func ParsePriority(s string) (Priority, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "critical":
		return PriorityCritical, nil
	case "high":
		return PriorityHigh, nil
	case "medium":
		return PriorityMedium, nil
	case "low":
		return PriorityLow, nil
	}
	return "", fmt.Errorf("unrecognized priority %q", s)
}

// Task is one unit of work as ingested from a task file. Records are
// immutable inputs to an analysis pass: the engine never mutates a Task,
// and any status transition is driven by an external actor and re-fed as
// a new snapshot.
type Task struct {
	// ID is the globally unique task identifier (e.g. "TASK-042").
	ID string `json:"id"`

	// Title is the human-readable summary from the task file heading.
	Title string `json:"title,omitempty"`

	// Status is the workflow state.
	Status Status `json:"status"`

	// Priority breaks ties when ordering otherwise-equal tasks.
	Priority Priority `json:"priority"`

	// DependsOn lists task ids that must reach a terminal state before
	// this task is executable.
	DependsOn []string `json:"depends_on,omitempty"`

	// Blocks lists task ids this task unblocks on completion: the inverse
	// assertion of another task's DependsOn, contributed independently and
	// reconciled by the graph builder.
	Blocks []string `json:"blocks,omitempty"`

	// Scope lists opaque resource identifiers (usually file paths) this
	// task is expected to mutate.
	Scope []string `json:"scope,omitempty"`

	// Group is an optional reporting label (sprint, phase). It never
	// affects ordering.
	Group string `json:"group,omitempty"`

	// Parent optionally names a parent task for hierarchy rendering.
	// Parent edges are export-only; they carry no ordering semantics.
	Parent string `json:"parent,omitempty"`

	// SourceFile is the file the record was ingested from, for reporting.
	SourceFile string `json:"source_file,omitempty"`
}

// clone returns a deep copy of the task so snapshot storage never aliases
// caller-owned slices.
func (t Task) clone() Task {
	cp := t
	cp.DependsOn = cloneSorted(t.DependsOn)
	cp.Blocks = cloneSorted(t.Blocks)
	cp.Scope = cloneSorted(t.Scope)
	return cp
}
