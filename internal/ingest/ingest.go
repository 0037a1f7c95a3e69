// Package ingest loads task records from Markdown task files.
//
// A task file is a Markdown document opening with a YAML frontmatter
// block fenced by --- lines. The frontmatter carries the task metadata
// (task_id, status, priority, depends_on, blocks, scope, sprint,
// parent); the first level-one heading of the body becomes the title.
// Files are laid out one task per file under a tasks directory, grouped
// into subdirectories by sprint.
//
// Loading is two-phase: LoadDir returns RawTask records that preserve
// the file's exact spellings for lint checks, and Resolve normalizes
// them into task.Task records for the graph engine.
package ingest

import (
	"fmt"
	"io/fs"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dawsh2/Torq/internal/task"
)

// RawTask is one task file as written, before normalization. Status and
// Priority keep the file's exact spelling so lint can report what the
// author actually typed; the presence flags distinguish an explicit
// empty list from an omitted key.
type RawTask struct {
	ID        string
	Title     string
	Status    string
	Priority  string
	DependsOn []string
	Blocks    []string
	Scope     []string
	Group     string
	Parent    string

	HasDependsOn bool
	HasBlocks    bool
	HasScope     bool

	// SourceFile is the path the record was parsed from, relative to
	// the loaded root.
	SourceFile string
}

// FileError records a task file that could not be parsed. Parse
// failures are reported alongside the records that did load; one broken
// file never aborts a directory load.
type FileError struct {
	File string
	Err  error
}

func (e *FileError) Error() string { return e.File + ": " + e.Err.Error() }

func (e *FileError) Unwrap() error { return e.Err }

// frontmatter is the YAML shape of a task file header. Pointer slices
// record whether the key appeared at all. Unknown keys are ignored so
// task files can carry extra metadata the engine does not use.
type frontmatter struct {
	TaskID    string    `yaml:"task_id"`
	Status    string    `yaml:"status"`
	Priority  string    `yaml:"priority"`
	DependsOn *[]string `yaml:"depends_on"`
	Blocks    *[]string `yaml:"blocks"`
	Scope     *[]string `yaml:"scope"`
	Sprint    string    `yaml:"sprint"`
	Parent    string    `yaml:"parent"`
}

// nonTaskFiles are Markdown files that live beside task files but carry
// no task metadata.
var nonTaskFiles = map[string]bool{
	"SPRINT_PLAN.md":  true,
	"README.md":       true,
	"TEST_RESULTS.md": true,
}

// Parse parses a single task file. The source path is recorded on the
// returned record and used in error messages.
func Parse(data []byte, source string) (RawTask, error) {
	meta, body, err := splitFrontmatter(data)
	if err != nil {
		return RawTask{}, err
	}

	var fm frontmatter
	if err := yaml.Unmarshal([]byte(meta), &fm); err != nil {
		return RawTask{}, fmt.Errorf("frontmatter: %w", err)
	}

	raw := RawTask{
		ID:         fm.TaskID,
		Title:      firstHeading(body),
		Status:     fm.Status,
		Priority:   fm.Priority,
		Group:      fm.Sprint,
		Parent:     fm.Parent,
		SourceFile: source,
	}
	if fm.DependsOn != nil {
		raw.DependsOn = *fm.DependsOn
		raw.HasDependsOn = true
	}
	if fm.Blocks != nil {
		raw.Blocks = *fm.Blocks
		raw.HasBlocks = true
	}
	if fm.Scope != nil {
		raw.Scope = *fm.Scope
		raw.HasScope = true
	}
	return raw, nil
}

// LoadDir walks root inside fsys and parses every task file found.
// Records come back in lexical path order. Directories whose name
// contains "archive" are skipped entirely, as are known non-task
// Markdown files and template files awaiting rename. A file's group
// defaults to the name of the subdirectory directly under root that
// contains it, unless the frontmatter names a sprint explicitly.
//
// Files that fail to parse are returned as FileErrors next to the
// records that loaded; the error return is reserved for the walk itself
// failing.
func LoadDir(fsys fs.FS, root string) ([]RawTask, []*FileError, error) {
	var (
		raws     []RawTask
		fileErrs []*FileError
	)

	err := fs.WalkDir(fsys, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && strings.Contains(strings.ToLower(d.Name()), "archive") {
				return fs.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(d.Name(), ".md") || skipFile(d.Name()) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			fileErrs = append(fileErrs, &FileError{File: path, Err: err})
			return nil
		}
		raw, err := Parse(data, path)
		if err != nil {
			fileErrs = append(fileErrs, &FileError{File: path, Err: err})
			return nil
		}
		if raw.Group == "" {
			raw.Group = subdirOf(root, path)
		}
		raws = append(raws, raw)
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("walking %s: %w", root, err)
	}
	return raws, fileErrs, nil
}

// Resolve normalizes raw records into engine records. Missing fields
// take their defaults: status pending, priority medium, nil lists. A
// status or priority spelling that ParseStatus or ParsePriority does
// not recognize is carried through unmodified; such a task is neither
// actionable nor terminal, and lint reports the spelling as an error.
func Resolve(raws []RawTask) []task.Task {
	tasks := make([]task.Task, 0, len(raws))
	for _, raw := range raws {
		tasks = append(tasks, resolveTask(raw))
	}
	return tasks
}

func resolveTask(raw RawTask) task.Task {
	status := task.StatusPending
	if raw.Status != "" {
		if s, err := task.ParseStatus(raw.Status); err == nil {
			status = s
		} else {
			status = task.Status(raw.Status)
		}
	}

	priority := task.PriorityMedium
	if raw.Priority != "" {
		if p, err := task.ParsePriority(raw.Priority); err == nil {
			priority = p
		} else {
			priority = task.Priority(raw.Priority)
		}
	}

	return task.Task{
		ID:         raw.ID,
		Title:      raw.Title,
		Status:     status,
		Priority:   priority,
		DependsOn:  raw.DependsOn,
		Blocks:     raw.Blocks,
		Scope:      raw.Scope,
		Group:      raw.Group,
		Parent:     raw.Parent,
		SourceFile: raw.SourceFile,
	}
}

// splitFrontmatter separates the YAML header from the Markdown body.
// The file must open with a --- fence and close the header with a
// second one; an empty header is rejected because it cannot carry a
// task id.
func splitFrontmatter(data []byte) (meta, body string, err error) {
	parts := strings.SplitN(string(data), "---", 3)
	if len(parts) < 3 {
		return "", "", fmt.Errorf("no YAML frontmatter block")
	}
	if strings.TrimSpace(parts[1]) == "" {
		return "", "", fmt.Errorf("empty YAML frontmatter block")
	}
	return parts[1], parts[2], nil
}

// firstHeading returns the text of the first level-one Markdown heading
// in body, or "" when the body has none.
func firstHeading(body string) string {
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if after, ok := strings.CutPrefix(line, "# "); ok {
			return strings.TrimSpace(after)
		}
	}
	return ""
}

// skipFile reports whether name is a known non-task Markdown file or a
// template awaiting rename.
func skipFile(name string) bool {
	if nonTaskFiles[name] {
		return true
	}
	lower := strings.ToLower(name)
	return strings.Contains(lower, "rename_me") || strings.Contains(lower, "template")
}

// subdirOf returns the name of the subdirectory directly under root
// that contains path, or "" for files at the root itself.
func subdirOf(root, path string) string {
	rel := path
	if root != "." {
		rel = strings.TrimPrefix(path, root+"/")
	}
	if i := strings.IndexByte(rel, '/'); i >= 0 {
		return rel[:i]
	}
	return ""
}
