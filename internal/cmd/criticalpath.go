package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dawsh2/Torq/internal/analysis"
	"github.com/dawsh2/Torq/internal/config"
)

var criticalPathCmd = &cobra.Command{
	Use:   "critical-path",
	Short: "Show the longest dependency chain",
	Long: `Show the critical path: the longest chain of tasks in which each one
must finish before the next can begin. Its length is a lower bound on
how many sequential steps the whole graph needs, no matter how many
people work in parallel.

A cyclic graph has no critical path; the command reports the cycle and
exits 1.

Examples:
  # Show the critical path
  torq critical-path

  # Path as JSON
  torq critical-path --json`,
	RunE: runCriticalPath,
}

var (
	criticalPathJSON bool
)

func init() {
	rootCmd.AddCommand(criticalPathCmd)
	criticalPathCmd.Flags().BoolVar(&criticalPathJSON, "json", false, "Output path as JSON")
}

func runCriticalPath(cmd *cobra.Command, args []string) error {
	cfg := config.Get()
	logger := commandLogger(cfg, "critical-path")
	defer logger.Close()

	g, err := loadGraph(cfg, logger)
	if err != nil {
		return err
	}

	path, err := analysis.CriticalPath(g)
	if err != nil {
		logger.Error("critical path refused", "error", err.Error())
		if criticalPathJSON {
			if jerr := outputJSON(newAnalysisError(err)); jerr != nil {
				return jerr
			}
			return &silentError{}
		}
		return err
	}
	logger.Info("critical path computed", "length", path.Length)

	if criticalPathJSON {
		return outputJSON(path)
	}

	if path.Length == 0 {
		fmt.Println("No tasks.")
		return nil
	}
	fmt.Printf("Critical path: %d task(s)\n", path.Length)
	snap := g.Snapshot()
	for i, id := range path.IDs {
		if t, ok := snap.Task(id); ok {
			fmt.Printf("  %d. %s\n", i+1, taskLine(t))
		} else {
			fmt.Printf("  %d. %s\n", i+1, id)
		}
	}
	return nil
}
