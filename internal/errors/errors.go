// Package errors provides centralized error definitions and error handling
// utilities for the Torq task engine. It defines the structural and
// analytical error taxonomy, error constructors with context wrapping, and
// error classification helpers.
//
// # Error Types
//
// The package provides two categories of errors:
//
// Structural errors make a task snapshot unusable and fail fast before any
// analysis runs:
//   - DuplicateIDError: two task records share an id
//   - SelfDependencyError: a task lists its own id in depends_on
//
// Analytical errors are raised by analyses whose algorithm is undefined on
// malformed input:
//   - CyclicGraphError: the dependency graph contains a cycle (critical
//     path, parallel leveling)
//   - UnknownTaskError: a requested task id resolves to no known task
//
// Dangling references are deliberately not errors: they are surfaced as
// data rows by the graph builder so partial graphs still answer queries.
//
// # Usage
//
// Creating errors:
//
//	// Structural error
//	err := errors.NewDuplicateIDError("TASK-042")
//
//	// Analytical error with context
//	err := errors.NewCyclicGraphError(members).WithOperation("critical-path")
//
// Checking errors:
//
//	// Check for specific sentinel errors
//	if errors.Is(err, errors.ErrCyclicGraph) { ... }
//
//	// Check for error types
//	var cycleErr *errors.CyclicGraphError
//	if errors.As(err, &cycleErr) { ... }
//
//	// Use classification helpers
//	if errors.IsStructural(err) { ... }
//	if errors.IsUserFacing(err) { ... }
//
// # Error Classification
//
// Errors can be classified by severity and behavior:
//   - Structural: the snapshot is unusable, nothing downstream may run
//   - UserFacing: errors safe to display to users (vs internal errors)
//   - Severity: Debug, Info, Warning, Error, Critical
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Re-export standard library functions for convenience.
// This allows callers to import only this package for all error handling.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
	Join   = errors.Join
)

// Severity represents the severity level of an error.
type Severity int

const (
	// SeverityDebug is for errors that are useful for debugging but not critical.
	SeverityDebug Severity = iota
	// SeverityInfo is for informational errors that don't indicate a problem.
	SeverityInfo
	// SeverityWarning is for errors that might indicate a problem but aren't critical.
	SeverityWarning
	// SeverityError is for errors that indicate a real problem.
	SeverityError
	// SeverityCritical is for errors that require immediate attention.
	SeverityCritical
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityDebug:
		return "debug"
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// -----------------------------------------------------------------------------
// Sentinel Errors
// -----------------------------------------------------------------------------

// Snapshot-related sentinel errors
var (
	// ErrDuplicateID indicates that two task records share an id.
	ErrDuplicateID = New("duplicate task id")
	// ErrSelfDependency indicates that a task depends on itself.
	ErrSelfDependency = New("task depends on itself")
	// ErrNoTasks indicates that a snapshot contains no task records.
	ErrNoTasks = New("no tasks")
)

// Graph-related sentinel errors
var (
	// ErrCyclicGraph indicates a cycle in the dependency graph.
	ErrCyclicGraph = New("dependency graph contains a cycle")
	// ErrUnknownTask indicates that a task id resolves to no known task.
	ErrUnknownTask = New("unknown task id")
)

// General sentinel errors
var (
	// ErrInvalidInput indicates that input validation failed.
	ErrInvalidInput = New("invalid input")
	// ErrOperationFailed indicates a general operation failure.
	ErrOperationFailed = New("operation failed")
)

// -----------------------------------------------------------------------------
// Base Error Interface
// -----------------------------------------------------------------------------

// TorqError is the base interface for all engine errors.
// It extends the standard error interface with additional methods for
// error handling and classification.
type TorqError interface {
	error

	// Unwrap returns the underlying error, if any.
	Unwrap() error

	// Is reports whether this error matches the target error.
	// This is used by errors.Is() for error comparison.
	Is(target error) bool

	// Severity returns the severity level of this error.
	Severity() Severity

	// IsUserFacing returns true if the error message is safe to display
	// to end users.
	IsUserFacing() bool
}

// -----------------------------------------------------------------------------
// Base Error Implementation
// -----------------------------------------------------------------------------

// baseError provides common functionality for all error types.
type baseError struct {
	message    string
	cause      error
	severity   Severity
	userFacing bool
}

// Error returns the error message.
func (e *baseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// Unwrap returns the underlying error.
func (e *baseError) Unwrap() error {
	return e.cause
}

// Is checks if this error matches the target.
func (e *baseError) Is(target error) bool {
	if e.cause != nil {
		return errors.Is(e.cause, target)
	}
	return false
}

// Severity returns the error severity.
func (e *baseError) Severity() Severity {
	return e.severity
}

// IsUserFacing returns whether the error is safe to show users.
func (e *baseError) IsUserFacing() bool {
	return e.userFacing
}

// -----------------------------------------------------------------------------
// Structural Errors
// -----------------------------------------------------------------------------

// DuplicateIDError reports that two task records share an id. The whole
// snapshot is unusable; no analysis may run on it.
//
// Example:
//
//	err := errors.NewDuplicateIDError("TASK-042").WithFiles("a.md", "b.md")
//	fmt.Println(err) // "duplicate task id 'TASK-042' (declared in a.md, b.md)"
type DuplicateIDError struct {
	baseError
	ID    string
	Files []string
}

// NewDuplicateIDError creates a new DuplicateIDError for the given task id.
func NewDuplicateIDError(id string) *DuplicateIDError {
	return &DuplicateIDError{
		baseError: baseError{
			message:    fmt.Sprintf("duplicate task id '%s'", id),
			cause:      ErrDuplicateID,
			severity:   SeverityCritical,
			userFacing: true,
		},
		ID: id,
	}
}

// WithFiles records the source files that both declared the id.
func (e *DuplicateIDError) WithFiles(files ...string) *DuplicateIDError {
	e.Files = append(e.Files, files...)
	return e
}

// Error returns the formatted error message.
func (e *DuplicateIDError) Error() string {
	if len(e.Files) > 0 {
		return fmt.Sprintf("duplicate task id '%s' (declared in %s)", e.ID, strings.Join(e.Files, ", "))
	}
	return fmt.Sprintf("duplicate task id '%s'", e.ID)
}

// Is checks if this error matches the target.
func (e *DuplicateIDError) Is(target error) bool {
	if _, ok := target.(*DuplicateIDError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// SelfDependencyError reports a task that lists its own id in depends_on:
// a degenerate one-node cycle, fatal to the same analyses as any cycle.
//
// Example:
//
//	err := errors.NewSelfDependencyError("TASK-007")
//	fmt.Println(err) // "task 'TASK-007' depends on itself"
type SelfDependencyError struct {
	baseError
	ID string
}

// NewSelfDependencyError creates a new SelfDependencyError for the given task id.
func NewSelfDependencyError(id string) *SelfDependencyError {
	return &SelfDependencyError{
		baseError: baseError{
			message:    fmt.Sprintf("task '%s' depends on itself", id),
			cause:      ErrSelfDependency,
			severity:   SeverityCritical,
			userFacing: true,
		},
		ID: id,
	}
}

// Error returns the formatted error message.
func (e *SelfDependencyError) Error() string {
	return fmt.Sprintf("task '%s' depends on itself", e.ID)
}

// Is checks if this error matches the target.
func (e *SelfDependencyError) Is(target error) bool {
	if _, ok := target.(*SelfDependencyError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// -----------------------------------------------------------------------------
// Analytical Errors
// -----------------------------------------------------------------------------

// CyclicGraphError is raised by analyses that require an acyclic graph
// (critical path, parallel leveling). Members holds the implicated task
// ids as reported by cycle detection: culprit evidence, not an exhaustive
// enumeration of every cycle.
//
// Example:
//
//	err := errors.NewCyclicGraphError([]string{"X", "Y"}).WithOperation("critical-path")
//	fmt.Println(err) // "cyclic graph [op=critical-path]: cycle involving X, Y"
type CyclicGraphError struct {
	baseError
	Members   []string
	Operation string
}

// NewCyclicGraphError creates a new CyclicGraphError naming the implicated
// task ids.
func NewCyclicGraphError(members []string) *CyclicGraphError {
	return &CyclicGraphError{
		baseError: baseError{
			message:    "cycle detected",
			cause:      ErrCyclicGraph,
			severity:   SeverityError,
			userFacing: true,
		},
		Members: members,
	}
}

// WithOperation records which analysis refused to run.
func (e *CyclicGraphError) WithOperation(op string) *CyclicGraphError {
	e.Operation = op
	return e
}

// Error returns the formatted error message.
func (e *CyclicGraphError) Error() string {
	prefix := "cyclic graph"
	if e.Operation != "" {
		prefix = fmt.Sprintf("cyclic graph [op=%s]", e.Operation)
	}
	if len(e.Members) > 0 {
		return fmt.Sprintf("%s: cycle involving %s", prefix, strings.Join(e.Members, ", "))
	}
	return fmt.Sprintf("%s: cycle detected", prefix)
}

// Is checks if this error matches the target.
func (e *CyclicGraphError) Is(target error) bool {
	if _, ok := target.(*CyclicGraphError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// UnknownTaskError reports a task id that resolves to no known task.
//
// Example:
//
//	err := errors.NewUnknownTaskError("TASK-999")
//	fmt.Println(err) // "task 'TASK-999' not found"
type UnknownTaskError struct {
	baseError
	ID string
}

// NewUnknownTaskError creates a new UnknownTaskError for the given task id.
func NewUnknownTaskError(id string) *UnknownTaskError {
	return &UnknownTaskError{
		baseError: baseError{
			message:    fmt.Sprintf("task '%s' not found", id),
			cause:      ErrUnknownTask,
			severity:   SeverityWarning,
			userFacing: true,
		},
		ID: id,
	}
}

// WithCause adds a cause to the error.
func (e *UnknownTaskError) WithCause(cause error) *UnknownTaskError {
	e.cause = cause
	return e
}

// Error returns the formatted error message.
func (e *UnknownTaskError) Error() string {
	return fmt.Sprintf("task '%s' not found", e.ID)
}

// Is checks if this error matches the target.
func (e *UnknownTaskError) Is(target error) bool {
	if _, ok := target.(*UnknownTaskError); ok {
		return true
	}
	if errors.Is(target, ErrUnknownTask) {
		return true
	}
	return e.baseError.Is(target)
}

// ValidationError represents invalid input or state outside the structural
// taxonomy, such as an unreadable task file or a malformed flag value.
//
// Example:
//
//	err := errors.NewValidationError("status is not recognized")
//	err = err.WithField("status").WithValue("WIP")
type ValidationError struct {
	baseError
	Field string
	Value any
}

// NewValidationError creates a new ValidationError.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{
		baseError: baseError{
			message:    message,
			severity:   SeverityWarning,
			userFacing: true,
		},
	}
}

// WithField adds a field name to the error context.
func (e *ValidationError) WithField(field string) *ValidationError {
	e.Field = field
	return e
}

// WithValue adds the invalid value to the error context.
func (e *ValidationError) WithValue(value any) *ValidationError {
	e.Value = value
	return e
}

// WithCause adds a cause to the error.
func (e *ValidationError) WithCause(cause error) *ValidationError {
	e.cause = cause
	return e
}

// Error returns the formatted error message.
func (e *ValidationError) Error() string {
	var parts []string
	if e.Field != "" {
		parts = append(parts, fmt.Sprintf("field=%s", e.Field))
	}
	if e.Value != nil {
		parts = append(parts, fmt.Sprintf("value=%v", e.Value))
	}

	prefix := "validation error"
	if len(parts) > 0 {
		prefix = fmt.Sprintf("validation error [%s]", strings.Join(parts, ", "))
	}

	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// Is checks if this error matches the target.
func (e *ValidationError) Is(target error) bool {
	if _, ok := target.(*ValidationError); ok {
		return true
	}
	if errors.Is(target, ErrInvalidInput) {
		return true
	}
	return e.baseError.Is(target)
}

// -----------------------------------------------------------------------------
// Error Classification Helpers
// -----------------------------------------------------------------------------

// IsStructural returns true if the error makes the whole snapshot unusable
// (duplicate id or self-dependency). Structural errors fail fast: no
// analysis runs on a snapshot that produced one.
//
// Example:
//
//	if errors.IsStructural(err) {
//	    return exitUsage(err)
//	}
func IsStructural(err error) bool {
	if err == nil {
		return false
	}

	var dup *DuplicateIDError
	var selfDep *SelfDependencyError

	return As(err, &dup) || As(err, &selfDep) ||
		Is(err, ErrDuplicateID) || Is(err, ErrSelfDependency)
}

// IsUserFacing returns true if the error message is safe to display to end
// users. This checks for errors implementing TorqError with IsUserFacing()
// returning true.
//
// Example:
//
//	if errors.IsUserFacing(err) {
//	    displayToUser(err.Error())
//	} else {
//	    displayToUser("An internal error occurred")
//	    log.Error("internal error", "err", err)
//	}
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}

	var torqErr TorqError
	if As(err, &torqErr) {
		return torqErr.IsUserFacing()
	}

	return false
}

// GetSeverity returns the severity level of the error.
// Returns SeverityError for errors that don't implement TorqError.
//
// Example:
//
//	switch errors.GetSeverity(err) {
//	case errors.SeverityCritical:
//	    log.Error("snapshot unusable", "err", err)
//	case errors.SeverityWarning:
//	    log.Warn("warning", "err", err)
//	}
func GetSeverity(err error) Severity {
	if err == nil {
		return SeverityDebug
	}

	var torqErr TorqError
	if As(err, &torqErr) {
		return torqErr.Severity()
	}

	return SeverityError
}

// -----------------------------------------------------------------------------
// Convenience Constructors
// -----------------------------------------------------------------------------

// Wrap wraps an error with additional context message.
//
// Example:
//
//	err := errors.Wrap(baseErr, "failed to load tasks")
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with a formatted context message.
//
// Example:
//
//	err := errors.Wrapf(baseErr, "failed to parse task file %s", path)
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
