package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dawsh2/Torq/internal/config"
	"github.com/dawsh2/Torq/internal/graph"
	"github.com/dawsh2/Torq/internal/ingest"
	"github.com/dawsh2/Torq/internal/task"
	"github.com/dawsh2/Torq/internal/tui/styles"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate task files and the dependency graph",
	Long: `Validate every task file in the tasks directory and the graph they form.

This command checks:
  - YAML frontmatter syntax in each task file
  - Required fields (task_id, status, priority)
  - Status and priority spellings
  - Self-references and duplicate dependency entries
  - Dependency references that resolve to no known task
  - Dependency cycles

The exit code indicates the result:
  0 - All task files are valid (warnings allowed)
  1 - At least one file or the graph structure is invalid

Examples:
  # Validate the default tasks directory
  torq validate

  # Validate a specific directory
  torq validate --tasks-dir ./sprints

  # Validate with JSON output
  torq validate --json`,
	RunE: runValidate,
}

var (
	validateJSON bool
)

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().BoolVar(&validateJSON, "json", false, "Output validation result as JSON")
}

// parseFailure is one file that could not be parsed into a task record.
type parseFailure struct {
	File  string `json:"file"`
	Error string `json:"error"`
}

// validateOutput is the JSON output format for validation results.
type validateOutput struct {
	Valid           bool                `json:"valid"`
	TasksDir        string              `json:"tasks_dir"`
	TotalTasks      int                 `json:"total_tasks"`
	ParseErrors     []parseFailure      `json:"parse_errors,omitempty"`
	Lint            *ingest.Result      `json:"lint,omitempty"`
	StructuralError string              `json:"structural_error,omitempty"`
	Dangling        []graph.DanglingRef `json:"dangling,omitempty"`
	Cycle           []string            `json:"cycle,omitempty"`
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg := config.Get()
	logger := commandLogger(cfg, "validate")
	defer logger.Close()

	raws, fileErrs, err := ingest.LoadDir(os.DirFS(cfg.TasksDir), ".")
	if err != nil {
		if validateJSON {
			if jerr := outputJSON(validateOutput{
				Valid:           false,
				TasksDir:        cfg.TasksDir,
				StructuralError: err.Error(),
			}); jerr != nil {
				return jerr
			}
			return &silentError{}
		}
		return fmt.Errorf("tasks directory %s: %w", cfg.TasksDir, err)
	}

	out := validateOutput{
		Valid:      true,
		TasksDir:   cfg.TasksDir,
		TotalTasks: len(raws),
	}
	for _, fe := range fileErrs {
		out.Valid = false
		out.ParseErrors = append(out.ParseErrors, parseFailure{File: fe.File, Error: fe.Err.Error()})
	}

	lint := ingest.Lint(raws)
	out.Lint = lint
	if !lint.IsValid {
		out.Valid = false
	}

	// Structural checks run on whatever parsed. A snapshot failure such
	// as a duplicate id ends them early; the per-file findings above
	// still stand.
	snap, err := task.NewSnapshot(ingest.Resolve(raws))
	if err != nil {
		out.Valid = false
		out.StructuralError = err.Error()
	} else {
		g := graph.Build(snap)
		out.Dangling = g.Dangling()
		if len(out.Dangling) > 0 {
			out.Valid = false
		}
		if report := g.DetectCycle(); report.HasCycle {
			out.Valid = false
			out.Cycle = report.Members
		}
	}

	logger.Info("validation finished",
		"tasks", out.TotalTasks,
		"valid", out.Valid,
		"parse_errors", len(out.ParseErrors),
		"lint_errors", lint.ErrorCount,
		"lint_warnings", lint.WarningCount,
	)

	if validateJSON {
		if err := outputJSON(out); err != nil {
			return err
		}
		if !out.Valid {
			return &silentError{}
		}
		return nil
	}
	return validateHuman(out)
}

// validateHuman prints validation results in a human readable format:
// a summary, then findings grouped by kind.
func validateHuman(out validateOutput) error {
	fmt.Printf("Validating: %s\n", out.TasksDir)
	fmt.Printf("  Tasks: %d\n", out.TotalTasks)
	fmt.Println()

	if out.Valid {
		fmt.Printf("Status: %s\n", styles.SuccessMsg.Render("VALID"))
	} else {
		fmt.Printf("Status: %s\n", styles.ErrorMsg.Render("INVALID"))
	}
	if out.Lint != nil && (out.Lint.ErrorCount > 0 || out.Lint.WarningCount > 0) {
		fmt.Printf("  Errors: %d, Warnings: %d\n", out.Lint.ErrorCount, out.Lint.WarningCount)
	}
	fmt.Println()

	if len(out.ParseErrors) > 0 {
		fmt.Println("Unparseable files:")
		for _, pe := range out.ParseErrors {
			fmt.Printf("  - %s: %s\n", pe.File, pe.Error)
		}
		fmt.Println()
	}

	if out.Lint != nil && len(out.Lint.Messages) > 0 {
		printLintGroup("Errors:", out.Lint, ingest.SeverityError)
		printLintGroup("Warnings:", out.Lint, ingest.SeverityWarning)
	}

	if out.StructuralError != "" {
		fmt.Println("Structure:")
		fmt.Printf("  - %s\n", out.StructuralError)
		fmt.Println()
	}

	if len(out.Dangling) > 0 {
		fmt.Println("Unknown references:")
		for _, d := range out.Dangling {
			fmt.Printf("  - [%s] %s names unknown task %s\n", d.TaskID, d.Field, d.MissingID)
		}
		fmt.Println()
	}

	if len(out.Cycle) > 0 {
		fmt.Println("Cycle:")
		fmt.Printf("  - %s\n", strings.Join(out.Cycle, " -> "))
		fmt.Println()
	}

	if !out.Valid {
		return fmt.Errorf("task validation failed")
	}
	return nil
}

// printLintGroup prints all lint messages of one severity under a heading.
func printLintGroup(heading string, result *ingest.Result, sev ingest.Severity) {
	var msgs []ingest.Message
	for _, msg := range result.Messages {
		if msg.Severity == sev {
			msgs = append(msgs, msg)
		}
	}
	if len(msgs) == 0 {
		return
	}
	fmt.Println(heading)
	for _, msg := range msgs {
		prefix := "  - "
		if msg.TaskID != "" {
			prefix = fmt.Sprintf("  - [%s] ", msg.TaskID)
		}
		fmt.Printf("%s%s\n", prefix, msg.Text)
		if msg.File != "" {
			fmt.Printf("    %s\n", styles.Muted.Render(msg.File))
		}
	}
	fmt.Println()
}
