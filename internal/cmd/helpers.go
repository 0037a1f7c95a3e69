package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"

	"github.com/dawsh2/Torq/internal/config"
	"github.com/dawsh2/Torq/internal/errors"
	"github.com/dawsh2/Torq/internal/graph"
	"github.com/dawsh2/Torq/internal/ingest"
	"github.com/dawsh2/Torq/internal/logging"
	"github.com/dawsh2/Torq/internal/task"
	"github.com/dawsh2/Torq/internal/tui/styles"
)

// silentError signals a non-zero exit after output was already written,
// without a duplicate error message being printed.
type silentError struct{}

func (e *silentError) Error() string { return "command failed" }

// outputJSON prints v as indented JSON on stdout.
func outputJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

// commandLogger builds the run logger for one invocation. Logging
// failures never block a command; they degrade to a nop logger.
func commandLogger(cfg *config.Config, name string) *logging.Logger {
	if !cfg.Log.Enabled {
		return logging.NopLogger()
	}
	logger, err := logging.New(cfg.LogDir(), cfg.Log.Level, cfg.Log.Rotation())
	if err != nil {
		return logging.NopLogger()
	}
	return logger.WithRun(logging.NewRunID()).WithCommand(name)
}

// loadSnapshot reads the configured tasks directory into a validated
// snapshot. Files that fail to parse come back alongside the snapshot;
// they are findings for validate and log entries for everyone else.
func loadSnapshot(cfg *config.Config) (*task.Snapshot, []*ingest.FileError, error) {
	raws, fileErrs, err := ingest.LoadDir(os.DirFS(cfg.TasksDir), ".")
	if err != nil {
		return nil, nil, fmt.Errorf("tasks directory %s: %w", cfg.TasksDir, err)
	}
	snap, err := task.NewSnapshot(ingest.Resolve(raws))
	if err != nil {
		return nil, fileErrs, err
	}
	return snap, fileErrs, nil
}

// loadGraph builds the dependency graph for the configured tasks
// directory, logging parse failures and moving on.
func loadGraph(cfg *config.Config, logger *logging.Logger) (*graph.Graph, error) {
	snap, fileErrs, err := loadSnapshot(cfg)
	if err != nil {
		return nil, err
	}
	for _, fe := range fileErrs {
		logger.Warn("skipping unparseable task file", "file", fe.File, "error", fe.Err.Error())
	}
	return graph.Build(snap), nil
}

// taskLine formats one task for a human listing: id, priority, title.
func taskLine(t *task.Task) string {
	line := fmt.Sprintf("%s [%s]", t.ID, t.Priority)
	if t.Title != "" {
		line += " " + t.Title
	}
	return line
}

// renderStatus renders a status icon and word in the status color.
// Color degrades to plain text on non-TTY output.
func renderStatus(s task.Status) string {
	style := lipgloss.NewStyle().Foreground(styles.StatusColor(string(s)))
	return style.Render(styles.StatusIcon(string(s)) + " " + string(s))
}

// analysisError is the JSON shape for an analysis that refused to run.
type analysisError struct {
	Error   string   `json:"error"`
	Cycle   bool     `json:"cycle,omitempty"`
	Members []string `json:"members,omitempty"`
}

// newAnalysisError wraps err for JSON output, surfacing cycle members
// when the refusal was a cyclic graph.
func newAnalysisError(err error) analysisError {
	out := analysisError{Error: err.Error()}
	var cyc *errors.CyclicGraphError
	if errors.As(err, &cyc) {
		out.Cycle = true
		out.Members = cyc.Members
	}
	return out
}
