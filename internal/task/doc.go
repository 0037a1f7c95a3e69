// Package task defines the task record model and the validated snapshot
// the dependency graph engine consumes.
//
// A [Task] is the unit of work: an id, a status, a priority, the ids it
// depends on, the ids it blocks, the resource scope it mutates, and an
// optional group label. Tasks are plain data; all behavior lives in the
// graph and analysis packages.
//
// The core type is [Snapshot], an immutable, validated collection of task
// records. [NewSnapshot] performs the structural validation that must fail
// fast before any analysis runs: empty ids, duplicate ids, and
// self-dependencies are rejected there, so downstream consumers never see
// them. Everything softer (dangling references, cycles) is left for the
// graph layer to surface as data.
//
// Usage:
//
//	snap, err := task.NewSnapshot(records)
//	if err != nil {
//	    return err // DuplicateIDError, SelfDependencyError, ...
//	}
//	g := graph.Build(snap)
package task
