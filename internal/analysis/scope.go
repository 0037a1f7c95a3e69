package analysis

import (
	"path/filepath"
	"strings"

	"github.com/dawsh2/Torq/internal/graph"
	"github.com/dawsh2/Torq/internal/task"
)

// ScopeMatch records one task whose declared scope touches a queried
// file pattern.
type ScopeMatch struct {
	ID     string      `json:"id"`
	Status task.Status `json:"status"`

	// Match is the scope entry that matched the pattern; when several
	// entries match, the lexicographically first one is reported.
	Match string `json:"match"`

	// File is the base name of the task's source file, when known.
	File string `json:"file,omitempty"`
}

// ScopeImpact finds every task whose scope overlaps the pattern.
// Matching is bidirectional substring: a scope entry matches when it
// contains the pattern or the pattern contains it, so both a directory
// prefix query and a full-path query behave as a filter. Results are
// sorted by id.
func ScopeImpact(g *graph.Graph, pattern string) []ScopeMatch {
	snap := g.Snapshot()

	var matches []ScopeMatch
	for _, id := range snap.SortedIDs() {
		t, _ := snap.Task(id)
		for _, item := range t.Scope {
			if !strings.Contains(item, pattern) && !strings.Contains(pattern, item) {
				continue
			}
			m := ScopeMatch{ID: t.ID, Status: t.Status, Match: item}
			if t.SourceFile != "" {
				m.File = filepath.Base(t.SourceFile)
			}
			matches = append(matches, m)
			break
		}
	}
	return matches
}
