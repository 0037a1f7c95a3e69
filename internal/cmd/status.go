package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/dawsh2/Torq/internal/analysis"
	"github.com/dawsh2/Torq/internal/config"
	"github.com/dawsh2/Torq/internal/task"
	"github.com/dawsh2/Torq/internal/tui/styles"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Summarize the task graph",
	Long: `Summarize the task graph: how many tasks exist per status, how the
graph is shaped, and how many tasks could be started right now.

Examples:
  # Summarize the default tasks directory
  torq status

  # Summarize with JSON output
  torq status --json`,
	RunE: runStatus,
}

var (
	statusJSON bool
)

func init() {
	rootCmd.AddCommand(statusCmd)
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "Output summary as JSON")
}

// statusDisplayOrder fixes the row order of the per-status table.
var statusDisplayOrder = []task.Status{
	task.StatusPending,
	task.StatusInProgress,
	task.StatusBlocked,
	task.StatusComplete,
	task.StatusCancelled,
}

// statusOutput is the JSON output format for the status summary.
type statusOutput struct {
	TasksDir   string              `json:"tasks_dir"`
	TotalTasks int                 `json:"total_tasks"`
	Edges      int                 `json:"edges"`
	Roots      int                 `json:"roots"`
	Leaves     int                 `json:"leaves"`
	ByStatus   map[task.Status]int `json:"by_status"`
	Ready      int                 `json:"ready"`
	Dangling   int                 `json:"dangling_refs"`
	HasCycle   bool                `json:"has_cycle"`
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg := config.Get()
	logger := commandLogger(cfg, "status")
	defer logger.Close()

	g, err := loadGraph(cfg, logger)
	if err != nil {
		return err
	}

	out := statusOutput{
		TasksDir:   cfg.TasksDir,
		TotalTasks: g.Len(),
		Edges:      g.EdgeCount(),
		Roots:      len(g.Roots()),
		Leaves:     len(g.Leaves()),
		ByStatus:   g.Snapshot().CountByStatus(),
		Ready:      len(analysis.ReadyTasks(g)),
		Dangling:   len(g.Dangling()),
		HasCycle:   g.DetectCycle().HasCycle,
	}
	logger.Info("status summary", "tasks", out.TotalTasks, "edges", out.Edges, "ready", out.Ready)

	if statusJSON {
		return outputJSON(out)
	}
	statusHuman(out)
	return nil
}

func statusHuman(out statusOutput) {
	fmt.Printf("Tasks: %d (%s)\n", out.TotalTasks, out.TasksDir)
	fmt.Println()
	for _, st := range statusDisplayOrder {
		icon := lipgloss.NewStyle().
			Foreground(styles.StatusColor(string(st))).
			Render(styles.StatusIcon(string(st)))
		fmt.Printf("  %s %-11s %d\n", icon, st, out.ByStatus[st])
	}
	fmt.Println()
	fmt.Printf("Edges: %d  Roots: %d  Leaves: %d\n", out.Edges, out.Roots, out.Leaves)
	fmt.Printf("Ready to start: %d\n", out.Ready)

	if out.HasCycle || out.Dangling > 0 {
		fmt.Println()
	}
	if out.HasCycle {
		fmt.Println(styles.WarningMsg.Render("cycle detected, run torq validate for details"))
	}
	if out.Dangling > 0 {
		fmt.Println(styles.WarningMsg.Render(fmt.Sprintf("%d dependency reference(s) resolve to no known task", out.Dangling)))
	}
}
