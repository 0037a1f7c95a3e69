// Package analysis implements the read-only analyses over a dependency
// graph: critical path, bottleneck ranking, parallel-execution leveling,
// readiness evaluation, scope-conflict detection, and the group timeline.
//
// Every function takes an immutable [graph.Graph] and returns a fresh
// result, so concurrent calls over the same graph need no coordination.
// Cycles are tolerated and reported as data except where the computation
// is undefined on cyclic input: [CriticalPath], [ParallelLevels] and
// [GroupTimeline] refuse such graphs with a CyclicGraphError instead of
// guessing.
package analysis
