// Package watch rebuilds the task graph whenever task files change on
// disk. It wraps fsnotify with the recursive directory handling and
// debouncing that editors make necessary: a single save can fire
// several events, and new sprint directories must be picked up as they
// appear.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gobwas/glob"

	"github.com/dawsh2/Torq/internal/graph"
	"github.com/dawsh2/Torq/internal/ingest"
	"github.com/dawsh2/Torq/internal/logging"
	"github.com/dawsh2/Torq/internal/task"
)

// Reload is one rebuild of the graph after the tasks directory changed.
// Err is set when the directory no longer forms a valid snapshot, for
// example a duplicate id introduced mid-edit; Graph is nil in that
// case and the previous graph remains the latest good one.
type Reload struct {
	Graph      *graph.Graph
	FileErrors []*ingest.FileError
	Err        error
	At         time.Time
}

// Watcher re-reads a tasks directory when its files change and hands
// each rebuilt graph to a callback.
type Watcher struct {
	dir      string
	debounce time.Duration
	ignore   []glob.Glob
	logger   *logging.Logger
	fs       *fsnotify.Watcher

	mu       sync.Mutex
	onReload func(Reload)
}

// New creates a watcher for the given tasks directory. The debounce
// window batches the event bursts editors produce for a single save.
// Ignore patterns are globs over paths relative to dir, with **
// crossing directory boundaries; events under matching paths do not
// trigger a reload.
func New(dir string, debounce time.Duration, ignore []string, logger *logging.Logger) (*Watcher, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("tasks directory does not exist: %s", dir)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("tasks path is not a directory: %s", dir)
	}

	globs := make([]glob.Glob, 0, len(ignore))
	for _, pattern := range ignore {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid ignore pattern %q: %w", pattern, err)
		}
		globs = append(globs, g)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		dir:      dir,
		debounce: debounce,
		ignore:   globs,
		logger:   logger,
		fs:       fsw,
	}, nil
}

// OnReload sets the callback invoked for the initial load and after
// every debounced batch of changes.
func (w *Watcher) OnReload(cb func(Reload)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onReload = cb
}

// Run loads the directory once, then watches it until ctx is
// cancelled. The fsnotify watcher is closed on return.
func (w *Watcher) Run(ctx context.Context) error {
	defer func() { _ = w.fs.Close() }()

	if err := w.watchRecursive(w.dir); err != nil {
		return err
	}
	w.reload()

	// Drain the initial timer so the first Reset arms it cleanly.
	debounce := time.NewTimer(0)
	<-debounce.C
	defer debounce.Stop()

	pending := make(map[string]struct{})
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			// A created subdirectory needs its own watch before
			// events inside it can be seen.
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = w.watchRecursive(event.Name)
				}
			}
			pending[event.Name] = struct{}{}
			debounce.Reset(w.debounce)

		case <-debounce.C:
			if len(pending) == 0 {
				continue
			}
			w.logger.Debug("task files changed", "count", len(pending))
			pending = make(map[string]struct{})
			w.reload()

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", "error", err.Error())
		}
	}
}

// watchRecursive adds root and every subdirectory under it to the
// watcher. Only directories can be watched; unreadable ones are
// skipped rather than failing the whole watch.
func (w *Watcher) watchRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && (skipDir(d.Name()) || w.ignored(path)) {
			return filepath.SkipDir
		}
		if err := w.fs.Add(path); err != nil {
			w.logger.Warn("cannot watch directory", "dir", path, "error", err.Error())
		}
		return nil
	})
}

// relevant reports whether an event can change the graph: task files,
// directory churn, and anything removed or renamed, which cannot be
// stat'ed anymore and may have been either.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	if skipDir(filepath.Base(event.Name)) {
		return false
	}
	if w.ignored(event.Name) {
		return false
	}
	if strings.HasSuffix(event.Name, ".md") {
		return true
	}
	if event.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
		return true
	}
	info, err := os.Stat(event.Name)
	return err == nil && info.IsDir()
}

// ignored reports whether a path matches a configured ignore pattern.
// A trailing slash variant is tried too so that a pattern like
// "drafts/**" also suppresses the drafts directory itself.
func (w *Watcher) ignored(path string) bool {
	rel, err := filepath.Rel(w.dir, path)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	for _, g := range w.ignore {
		if g.Match(rel) || g.Match(rel+"/") {
			return true
		}
	}
	return false
}

// skipDir mirrors the loader's rule: hidden directories and anything
// archived do not hold live tasks.
func skipDir(name string) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}
	return strings.Contains(strings.ToLower(name), "archive")
}

// reload re-reads the directory and delivers the result. Load
// failures are delivered rather than swallowed so a caller can show
// them; the watch itself keeps running.
func (w *Watcher) reload() {
	r := Reload{At: time.Now()}

	raws, fileErrs, err := ingest.LoadDir(os.DirFS(w.dir), ".")
	if err != nil {
		r.Err = err
	} else {
		r.FileErrors = fileErrs
		snap, err := task.NewSnapshot(ingest.Resolve(raws))
		if err != nil {
			r.Err = err
		} else {
			r.Graph = graph.Build(snap)
		}
	}

	if r.Err != nil {
		w.logger.Warn("reload failed", "error", r.Err.Error())
	} else {
		w.logger.Info("graph reloaded", "tasks", r.Graph.Len(), "parse_errors", len(r.FileErrors))
	}

	w.mu.Lock()
	cb := w.onReload
	w.mu.Unlock()
	if cb != nil {
		cb(r)
	}
}
