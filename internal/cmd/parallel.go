package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dawsh2/Torq/internal/analysis"
	"github.com/dawsh2/Torq/internal/config"
)

var parallelCmd = &cobra.Command{
	Use:   "parallel",
	Short: "Group pending tasks into parallel work levels",
	Long: `Group pending tasks into levels that can run concurrently. Every task
in a level depends only on tasks in earlier levels, so one level can be
handed to as many people as it has tasks.

Finished and in-flight tasks still push their dependents down, but only
pending tasks appear in the levels. A cyclic graph has no valid
leveling; the command reports the cycle and exits 1.

Examples:
  # Show the parallel execution levels
  torq parallel

  # Levels plus the per-task depth map
  torq parallel --json`,
	RunE: runParallel,
}

var (
	parallelJSON bool
)

func init() {
	rootCmd.AddCommand(parallelCmd)
	parallelCmd.Flags().BoolVar(&parallelJSON, "json", false, "Output levels as JSON")
}

func runParallel(cmd *cobra.Command, args []string) error {
	cfg := config.Get()
	logger := commandLogger(cfg, "parallel")
	defer logger.Close()

	g, err := loadGraph(cfg, logger)
	if err != nil {
		return err
	}

	lev, err := analysis.ParallelLevels(g)
	if err != nil {
		logger.Error("parallel leveling refused", "error", err.Error())
		if parallelJSON {
			if jerr := outputJSON(newAnalysisError(err)); jerr != nil {
				return jerr
			}
			return &silentError{}
		}
		return err
	}
	logger.Info("parallel levels computed", "levels", len(lev.Groups))

	if parallelJSON {
		return outputJSON(lev)
	}

	if len(lev.Groups) == 0 {
		fmt.Println("No pending tasks to schedule.")
		return nil
	}
	fmt.Printf("Parallel execution plan: %d level(s)\n", len(lev.Groups))
	for _, grp := range lev.Groups {
		fmt.Printf("  Level %d (%d): %s\n", grp.Level, len(grp.IDs), strings.Join(grp.IDs, ", "))
	}
	return nil
}
