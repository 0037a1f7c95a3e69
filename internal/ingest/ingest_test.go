package ingest

import (
	"reflect"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/dawsh2/Torq/internal/task"
)

// taskFile assembles a Markdown task file from frontmatter lines.
func taskFile(lines ...string) []byte {
	return []byte("---\n" + strings.Join(lines, "\n") + "\n---\n")
}

func TestParse(t *testing.T) {
	t.Run("full frontmatter", func(t *testing.T) {
		data := []byte(`---
task_id: AUTH-001
status: in_progress
priority: high
depends_on: [CORE-001, CORE-002]
blocks:
  - API-003
scope:
  - src/auth/login.rs
sprint: sprint-012
parent: EPIC-001
---

# Implement login endpoint

Details follow.
`)
		got, err := Parse(data, "sprint-012/AUTH-001.md")
		if err != nil {
			t.Fatalf("Parse() error = %v", err)
		}

		want := RawTask{
			ID:           "AUTH-001",
			Title:        "Implement login endpoint",
			Status:       "in_progress",
			Priority:     "high",
			DependsOn:    []string{"CORE-001", "CORE-002"},
			Blocks:       []string{"API-003"},
			Scope:        []string{"src/auth/login.rs"},
			Group:        "sprint-012",
			Parent:       "EPIC-001",
			HasDependsOn: true,
			HasBlocks:    true,
			HasScope:     true,
			SourceFile:   "sprint-012/AUTH-001.md",
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("Parse() = %+v, want %+v", got, want)
		}
	})

	t.Run("explicit empty list sets presence flag", func(t *testing.T) {
		data := taskFile("task_id: T-1", "status: pending", "priority: low", "depends_on: []")
		got, err := Parse(data, "T-1.md")
		if err != nil {
			t.Fatalf("Parse() error = %v", err)
		}
		if !got.HasDependsOn || len(got.DependsOn) != 0 {
			t.Errorf("depends_on: [] should set HasDependsOn with no entries, got flag=%v entries=%v",
				got.HasDependsOn, got.DependsOn)
		}
		if got.HasBlocks || got.HasScope {
			t.Errorf("omitted keys should leave presence flags unset, got blocks=%v scope=%v",
				got.HasBlocks, got.HasScope)
		}
	})

	t.Run("missing frontmatter", func(t *testing.T) {
		_, err := Parse([]byte("# Just a document\n\nNo header here.\n"), "doc.md")
		if err == nil {
			t.Fatal("Parse() expected error for file without frontmatter")
		}
		if !strings.Contains(err.Error(), "frontmatter") {
			t.Errorf("Parse() error = %v, want mention of frontmatter", err)
		}
	})

	t.Run("empty frontmatter", func(t *testing.T) {
		if _, err := Parse([]byte("---\n\n---\n# Body\n"), "empty.md"); err == nil {
			t.Fatal("Parse() expected error for empty frontmatter block")
		}
	})

	t.Run("malformed yaml", func(t *testing.T) {
		if _, err := Parse([]byte("---\nstatus: [\n---\n"), "bad.md"); err == nil {
			t.Fatal("Parse() expected error for malformed YAML")
		}
	})

	t.Run("title skips lower headings", func(t *testing.T) {
		data := []byte("---\ntask_id: T-2\n---\nintro text\n\n## Notes\n\n# The Real Title\n")
		got, err := Parse(data, "T-2.md")
		if err != nil {
			t.Fatalf("Parse() error = %v", err)
		}
		if got.Title != "The Real Title" {
			t.Errorf("Title = %q, want %q", got.Title, "The Real Title")
		}
	})
}

func TestLoadDir(t *testing.T) {
	fsys := fstest.MapFS{
		"tasks/TOP-001.md": {Data: taskFile(
			"task_id: TOP-001", "status: pending", "priority: medium")},
		"tasks/sprint-012/AUTH-001.md": {Data: taskFile(
			"task_id: AUTH-001", "status: pending", "priority: high")},
		"tasks/sprint-012/SPRINT_PLAN.md": {Data: []byte("# The plan\n")},
		"tasks/sprint-012/TASK-template.md": {Data: taskFile(
			"task_id: FILL-ME-IN", "status: pending", "priority: low")},
		"tasks/sprint-013/CORE-002.md": {Data: taskFile(
			"task_id: CORE-002", "status: pending", "priority: low", "sprint: backlog")},
		"tasks/sprint-013/broken.md": {Data: []byte("no frontmatter here\n")},
		"tasks/archive/OLD-001.md": {Data: taskFile(
			"task_id: OLD-001", "status: complete", "priority: low")},
		"tasks/notes.txt": {Data: []byte("not markdown\n")},
	}

	raws, fileErrs, err := LoadDir(fsys, "tasks")
	if err != nil {
		t.Fatalf("LoadDir() error = %v", err)
	}

	var gotIDs []string
	for _, raw := range raws {
		gotIDs = append(gotIDs, raw.ID)
	}
	wantIDs := []string{"TOP-001", "AUTH-001", "CORE-002"}
	if !reflect.DeepEqual(gotIDs, wantIDs) {
		t.Fatalf("LoadDir() ids = %v, want %v", gotIDs, wantIDs)
	}

	if raws[0].Group != "" {
		t.Errorf("root-level task group = %q, want empty", raws[0].Group)
	}
	if raws[1].Group != "sprint-012" {
		t.Errorf("AUTH-001 group = %q, want sprint-012 from directory", raws[1].Group)
	}
	if raws[2].Group != "backlog" {
		t.Errorf("CORE-002 group = %q, want backlog from frontmatter", raws[2].Group)
	}
	if raws[1].SourceFile != "tasks/sprint-012/AUTH-001.md" {
		t.Errorf("SourceFile = %q, want full path under root", raws[1].SourceFile)
	}

	if len(fileErrs) != 1 {
		t.Fatalf("LoadDir() file errors = %v, want exactly one", fileErrs)
	}
	if fileErrs[0].File != "tasks/sprint-013/broken.md" {
		t.Errorf("file error path = %q, want tasks/sprint-013/broken.md", fileErrs[0].File)
	}
}

func TestLoadDir_MissingRoot(t *testing.T) {
	if _, _, err := LoadDir(fstest.MapFS{}, "missing"); err == nil {
		t.Fatal("LoadDir() expected error for missing root")
	}
}

func TestResolve(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		got := Resolve([]RawTask{{ID: "T-1", SourceFile: "T-1.md"}})
		want := []task.Task{{
			ID:         "T-1",
			Status:     task.StatusPending,
			Priority:   task.PriorityMedium,
			SourceFile: "T-1.md",
		}}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("Resolve() = %+v, want %+v", got, want)
		}
	})

	t.Run("dialect spellings normalize", func(t *testing.T) {
		got := Resolve([]RawTask{
			{ID: "a", Status: "TODO", Priority: "HIGH"},
			{ID: "b", Status: "DONE", Priority: "low"},
			{ID: "c", Status: "IN_PROGRESS"},
		})
		if got[0].Status != task.StatusPending || got[0].Priority != task.PriorityHigh {
			t.Errorf("TODO/HIGH resolved to %s/%s", got[0].Status, got[0].Priority)
		}
		if got[1].Status != task.StatusComplete {
			t.Errorf("DONE resolved to %s, want %s", got[1].Status, task.StatusComplete)
		}
		if got[2].Status != task.StatusInProgress {
			t.Errorf("IN_PROGRESS resolved to %s, want %s", got[2].Status, task.StatusInProgress)
		}
	})

	t.Run("unknown spelling carried through", func(t *testing.T) {
		got := Resolve([]RawTask{{ID: "t", Status: "someday", Priority: "urgent"}})
		if got[0].Status != task.Status("someday") {
			t.Errorf("Status = %q, want spelling preserved", got[0].Status)
		}
		if got[0].Status.IsTerminal() || got[0].Status.IsActionable() {
			t.Error("unknown status must be neither terminal nor actionable")
		}
		if got[0].Priority != task.Priority("urgent") {
			t.Errorf("Priority = %q, want spelling preserved", got[0].Priority)
		}
	})

	t.Run("fields pass through", func(t *testing.T) {
		raw := RawTask{
			ID:         "AUTH-001",
			Title:      "Login",
			Status:     "blocked",
			Priority:   "critical",
			DependsOn:  []string{"CORE-001"},
			Blocks:     []string{"API-003"},
			Scope:      []string{"src/auth.rs"},
			Group:      "sprint-012",
			Parent:     "EPIC-001",
			SourceFile: "sprint-012/AUTH-001.md",
		}
		got := Resolve([]RawTask{raw})[0]
		want := task.Task{
			ID:         "AUTH-001",
			Title:      "Login",
			Status:     task.StatusBlocked,
			Priority:   task.PriorityCritical,
			DependsOn:  []string{"CORE-001"},
			Blocks:     []string{"API-003"},
			Scope:      []string{"src/auth.rs"},
			Group:      "sprint-012",
			Parent:     "EPIC-001",
			SourceFile: "sprint-012/AUTH-001.md",
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("Resolve() = %+v, want %+v", got, want)
		}
	})
}
