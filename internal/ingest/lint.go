package ingest

import (
	"fmt"

	"github.com/dawsh2/Torq/internal/task"
)

// Severity classifies a lint finding.
type Severity string

const (
	// SeverityError marks metadata the engine cannot trust. Files with
	// errors still load, but validate reports them and exits non-zero.
	SeverityError Severity = "error"

	// SeverityWarning marks metadata worth fixing that does not block
	// analysis.
	SeverityWarning Severity = "warning"
)

// Message is a single lint finding against one task file.
type Message struct {
	Severity Severity `json:"severity"`
	TaskID   string   `json:"task_id,omitempty"`
	Field    string   `json:"field,omitempty"`
	Text     string   `json:"text"`
	File     string   `json:"file,omitempty"`
}

// IsError reports whether the message is error severity.
func (m Message) IsError() bool { return m.Severity == SeverityError }

// IsWarning reports whether the message is warning severity.
func (m Message) IsWarning() bool { return m.Severity == SeverityWarning }

// Result aggregates lint findings over a set of task files.
type Result struct {
	// IsValid is true when no error-severity finding was recorded;
	// warnings alone leave a result valid.
	IsValid      bool      `json:"is_valid"`
	Messages     []Message `json:"messages"`
	ErrorCount   int       `json:"error_count"`
	WarningCount int       `json:"warning_count"`
}

// HasErrors reports whether any error-severity finding was recorded.
func (r *Result) HasErrors() bool { return r.ErrorCount > 0 }

// HasWarnings reports whether any warning-severity finding was recorded.
func (r *Result) HasWarnings() bool { return r.WarningCount > 0 }

// MessagesFor returns the findings recorded against one task id.
func (r *Result) MessagesFor(taskID string) []Message {
	var msgs []Message
	for _, m := range r.Messages {
		if m.TaskID == taskID {
			msgs = append(msgs, m)
		}
	}
	return msgs
}

func (r *Result) add(m Message) {
	if m.IsError() {
		r.IsValid = false
		r.ErrorCount++
	} else if m.IsWarning() {
		r.WarningCount++
	}
	r.Messages = append(r.Messages, m)
}

// Lint checks raw records for missing or malformed metadata. It only
// looks at what a single file can get wrong; cross-file structure
// (duplicate ids, dangling references, cycles) belongs to the snapshot
// and the graph.
func Lint(raws []RawTask) *Result {
	result := &Result{IsValid: true, Messages: make([]Message, 0)}
	for _, raw := range raws {
		for _, msg := range lintTask(raw) {
			result.add(msg)
		}
	}
	return result
}

// lintTask runs the per-file checks against one record.
func lintTask(raw RawTask) []Message {
	var msgs []Message
	report := func(sev Severity, field, text string) {
		msgs = append(msgs, Message{
			Severity: sev,
			TaskID:   raw.ID,
			Field:    field,
			Text:     text,
			File:     raw.SourceFile,
		})
	}

	if raw.ID == "" {
		report(SeverityError, "task_id", "Missing required field: task_id")
	}

	status := task.Status("")
	if raw.Status == "" {
		report(SeverityError, "status", "Missing required field: status")
	} else if s, err := task.ParseStatus(raw.Status); err != nil {
		report(SeverityError, "status",
			fmt.Sprintf("Invalid status: %q (expected pending, in_progress, complete, blocked, or cancelled)", raw.Status))
	} else {
		status = s
	}

	if raw.Priority == "" {
		report(SeverityError, "priority", "Missing required field: priority")
	} else if _, err := task.ParsePriority(raw.Priority); err != nil {
		report(SeverityError, "priority",
			fmt.Sprintf("Invalid priority: %q (expected critical, high, medium, or low)", raw.Priority))
	}

	for _, dep := range raw.DependsOn {
		if dep != "" && dep == raw.ID {
			report(SeverityError, "depends_on", "Task depends on itself")
			break
		}
	}
	for _, blocked := range raw.Blocks {
		if blocked != "" && blocked == raw.ID {
			report(SeverityError, "blocks", "Task blocks itself")
			break
		}
	}
	if hasDuplicates(raw.DependsOn) {
		report(SeverityWarning, "depends_on", "Duplicate entries in depends_on")
	}

	// A task that is underway or finished should say what it waited on
	// and what it touched.
	started := status == task.StatusInProgress || status == task.StatusComplete
	if started && !raw.HasDependsOn {
		report(SeverityWarning, "depends_on",
			fmt.Sprintf("Task with status %s has no depends_on key (use [] for a root task)", status))
	}
	if status == task.StatusInProgress && len(raw.Scope) == 0 {
		report(SeverityWarning, "scope", "In-progress task declares no scope")
	}
	if status == task.StatusComplete && len(raw.Scope) == 0 {
		report(SeverityWarning, "scope", "Completed task declares no scope")
	}

	return msgs
}

func hasDuplicates(ids []string) bool {
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			return true
		}
		seen[id] = true
	}
	return false
}
