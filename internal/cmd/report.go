package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sourcegraph/conc"
	"github.com/spf13/cobra"

	"github.com/dawsh2/Torq/internal/analysis"
	"github.com/dawsh2/Torq/internal/config"
	"github.com/dawsh2/Torq/internal/graph"
	"github.com/dawsh2/Torq/internal/task"
	"github.com/dawsh2/Torq/internal/tui/styles"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Run every analysis and print one combined report",
	Long: `Run every analysis over the task graph and print one combined report:
status counts, cycle check, critical path, parallel levels, ready
tasks, bottlenecks and scope conflicts.

Independent analyses run concurrently. On a cyclic graph the sections
that need an acyclic graph are marked unavailable instead of failing
the whole report.

Examples:
  # Full report for the default tasks directory
  torq report

  # Feed the report to other tooling
  torq report --json`,
	RunE: runReport,
}

var (
	reportJSON bool
)

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.Flags().BoolVar(&reportJSON, "json", false, "Output report as JSON")
}

// reportOutput is the JSON output format for the combined report.
type reportOutput struct {
	TasksDir     string                `json:"tasks_dir"`
	TotalTasks   int                   `json:"total_tasks"`
	ByStatus     map[task.Status]int   `json:"by_status"`
	HasCycle     bool                  `json:"has_cycle"`
	CycleMembers []string              `json:"cycle_members,omitempty"`
	Ready        []string              `json:"ready"`
	Bottlenecks  []analysis.Bottleneck `json:"bottlenecks"`
	CriticalPath *analysis.Path        `json:"critical_path,omitempty"`
	Levels       []analysis.Group      `json:"levels,omitempty"`
	Conflicts    []analysis.Conflict   `json:"conflicts"`
	Dangling     []graph.DanglingRef   `json:"dangling,omitempty"`
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg := config.Get()
	logger := commandLogger(cfg, "report")
	defer logger.Close()

	g, err := loadGraph(cfg, logger)
	if err != nil {
		return err
	}

	cycle := g.DetectCycle()
	out := reportOutput{
		TasksDir:     cfg.TasksDir,
		TotalTasks:   g.Len(),
		ByStatus:     g.Snapshot().CountByStatus(),
		HasCycle:     cycle.HasCycle,
		CycleMembers: cycle.Members,
		Dangling:     g.Dangling(),
	}

	// Each goroutine writes its own variable; the graph itself is
	// read-only after Build.
	var (
		ready     []string
		ranked    []analysis.Bottleneck
		conflicts []analysis.Conflict
		critical  analysis.Path
		critErr   error
		leveling  *analysis.Leveling
		levelErr  error
	)
	var wg conc.WaitGroup
	wg.Go(func() { ready = analysis.ReadyTasks(g) })
	wg.Go(func() { ranked = analysis.Bottlenecks(g, cfg.Bottlenecks.Top) })
	wg.Go(func() { conflicts = analysis.ScopeConflicts(g) })
	if !cycle.HasCycle {
		wg.Go(func() { critical, critErr = analysis.CriticalPath(g) })
		wg.Go(func() { leveling, levelErr = analysis.ParallelLevels(g) })
	}
	wg.Wait()

	out.Ready = ready
	out.Bottlenecks = ranked
	out.Conflicts = conflicts
	if !cycle.HasCycle {
		if critErr != nil {
			return critErr
		}
		if levelErr != nil {
			return levelErr
		}
		out.CriticalPath = &critical
		out.Levels = leveling.Groups
	}
	logger.Info("report computed",
		"tasks", out.TotalTasks,
		"has_cycle", out.HasCycle,
		"ready", len(out.Ready),
		"conflicts", len(out.Conflicts),
	)

	if reportJSON {
		return outputJSON(out)
	}
	reportHuman(out)
	return nil
}

func reportHuman(out reportOutput) {
	fmt.Printf("Task graph report: %s (%d tasks)\n", out.TasksDir, out.TotalTasks)
	fmt.Println()

	for _, st := range statusDisplayOrder {
		icon := lipgloss.NewStyle().
			Foreground(styles.StatusColor(string(st))).
			Render(styles.StatusIcon(string(st)))
		fmt.Printf("  %s %-11s %d\n", icon, st, out.ByStatus[st])
	}
	fmt.Println()

	if out.HasCycle {
		fmt.Println(styles.ErrorMsg.Render(
			fmt.Sprintf("Cycle: %s", strings.Join(out.CycleMembers, " -> "))))
		fmt.Println("Critical path: unavailable (cycle)")
		fmt.Println("Parallel levels: unavailable (cycle)")
	} else {
		if out.CriticalPath != nil && out.CriticalPath.Length > 0 {
			fmt.Printf("Critical path (%d): %s\n",
				out.CriticalPath.Length, strings.Join(out.CriticalPath.IDs, " -> "))
		}
		fmt.Printf("Parallel levels: %d\n", len(out.Levels))
		for _, grp := range out.Levels {
			fmt.Printf("  Level %d (%d): %s\n", grp.Level, len(grp.IDs), strings.Join(grp.IDs, ", "))
		}
	}
	fmt.Println()

	fmt.Printf("Ready to start (%d): %s\n", len(out.Ready), strings.Join(out.Ready, ", "))

	if len(out.Bottlenecks) > 0 {
		fmt.Printf("Bottlenecks (top %d):\n", len(out.Bottlenecks))
		for i, b := range out.Bottlenecks {
			fmt.Printf("  %d. %s blocks %d directly, %d transitively\n",
				i+1, b.ID, b.DirectDependents, b.TransitiveDependents)
		}
	}

	if len(out.Conflicts) > 0 {
		fmt.Printf("Scope conflicts (%d):\n", len(out.Conflicts))
		for _, c := range out.Conflicts {
			fmt.Printf("  %s <-> %s: %s\n", c.A, c.B, strings.Join(c.Overlap, ", "))
		}
	}

	if len(out.Dangling) > 0 {
		fmt.Println(styles.WarningMsg.Render(
			fmt.Sprintf("%d dependency reference(s) resolve to no known task", len(out.Dangling))))
	}
}
