package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dawsh2/Torq/internal/analysis"
	"github.com/dawsh2/Torq/internal/config"
	"github.com/dawsh2/Torq/internal/tui/styles"
)

var conflictsCmd = &cobra.Command{
	Use:   "conflicts [task-id]",
	Short: "Find in-progress tasks touching the same files",
	Long: `Find pairs of tasks that declare overlapping scope without any
dependency ordering between them. Two such tasks can race on the same
files.

Without an argument, every pair of unordered in-progress tasks is
checked. With a task id, that task is checked against all in-progress
tasks regardless of its own status.

Examples:
  # All conflicts between in-progress tasks
  torq conflicts

  # What would collide with starting AUTH-003 now
  torq conflicts AUTH-003`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConflicts,
}

var (
	conflictsJSON bool
)

func init() {
	rootCmd.AddCommand(conflictsCmd)
	conflictsCmd.Flags().BoolVar(&conflictsJSON, "json", false, "Output conflicts as JSON")
}

// conflictsOutput is the JSON output format for the conflict listing.
type conflictsOutput struct {
	Count     int                 `json:"count"`
	Conflicts []analysis.Conflict `json:"conflicts"`
}

func runConflicts(cmd *cobra.Command, args []string) error {
	cfg := config.Get()
	logger := commandLogger(cfg, "conflicts")
	defer logger.Close()

	g, err := loadGraph(cfg, logger)
	if err != nil {
		return err
	}

	var conflicts []analysis.Conflict
	if len(args) > 0 {
		conflicts, err = analysis.ConflictsWith(g, args[0])
		if err != nil {
			return err
		}
	} else {
		conflicts = analysis.ScopeConflicts(g)
	}
	out := conflictsOutput{Count: len(conflicts), Conflicts: conflicts}
	logger.Info("conflicts computed", "count", out.Count)

	if conflictsJSON {
		return outputJSON(out)
	}

	if out.Count == 0 {
		fmt.Println("No scope conflicts.")
		return nil
	}
	fmt.Printf("Scope conflicts (%d):\n", out.Count)
	for _, c := range out.Conflicts {
		fmt.Printf("  %s\n", styles.WarningMsg.Render(fmt.Sprintf("%s <-> %s", c.A, c.B)))
		for _, f := range c.Overlap {
			fmt.Printf("    %s\n", f)
		}
	}
	return nil
}
