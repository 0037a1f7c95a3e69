// Package graph builds the task dependency graph and provides the
// structure-level algorithms every analysis consumes.
//
// [Build] is the single place adjacency is constructed: an edge u -> v
// exists when v depends on u or when u declares that it blocks v. Both
// assertions contribute independently and are reconciled (deduplicated)
// here, so no two analyses can drift on slightly different adjacency
// rules. Edges referencing unknown ids are never silently dropped; they
// are recorded as [DanglingRef] rows for callers to report.
//
// The two traversals that tolerate malformed input live here too:
// [Graph.DetectCycle] (three-color DFS on an explicit stack) and
// [Graph.TopoOrder] (Kahn's algorithm returning a partial order plus a
// cycle flag instead of an error). Analyses that require acyclicity build
// on these and live in the analysis package.
//
// All results are deterministic: adjacency lists are sorted, traversal
// start order is lexicographic, and the ready queue is a min-heap by id.
package graph
