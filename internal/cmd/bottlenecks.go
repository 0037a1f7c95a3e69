package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dawsh2/Torq/internal/analysis"
	"github.com/dawsh2/Torq/internal/config"
)

var bottlenecksCmd = &cobra.Command{
	Use:   "bottlenecks",
	Short: "Rank tasks by how much work they block",
	Long: `Rank tasks by how many other tasks sit downstream of them,
transitively. The top entry is the task whose completion unblocks the
most future work.

Tasks inside a dependency cycle still rank; everything reachable from
them counts as blocked.

Examples:
  # Top 10 blockers
  torq bottlenecks

  # Only the worst three
  torq bottlenecks --top 3`,
	RunE: runBottlenecks,
}

var (
	bottlenecksJSON bool
)

func init() {
	rootCmd.AddCommand(bottlenecksCmd)
	bottlenecksCmd.Flags().BoolVar(&bottlenecksJSON, "json", false, "Output ranking as JSON")
	bottlenecksCmd.Flags().Int("top", analysis.DefaultTopBottlenecks, "How many tasks to rank")
	_ = viper.BindPFlag("bottlenecks.top", bottlenecksCmd.Flags().Lookup("top"))
}

// bottlenecksOutput is the JSON output format for the blocker ranking.
type bottlenecksOutput struct {
	Count       int                   `json:"count"`
	Bottlenecks []analysis.Bottleneck `json:"bottlenecks"`
}

func runBottlenecks(cmd *cobra.Command, args []string) error {
	cfg := config.Get()
	logger := commandLogger(cfg, "bottlenecks")
	defer logger.Close()

	g, err := loadGraph(cfg, logger)
	if err != nil {
		return err
	}

	ranked := analysis.Bottlenecks(g, cfg.Bottlenecks.Top)
	out := bottlenecksOutput{Count: len(ranked), Bottlenecks: ranked}
	logger.Info("bottlenecks computed", "count", out.Count, "top", cfg.Bottlenecks.Top)

	if bottlenecksJSON {
		return outputJSON(out)
	}

	if out.Count == 0 {
		fmt.Println("No task blocks any other work.")
		return nil
	}
	fmt.Printf("Bottlenecks (top %d):\n", out.Count)
	for i, b := range out.Bottlenecks {
		fmt.Printf("  %d. %s [%s] %s\n", i+1, b.ID, b.Priority, renderStatus(b.Status))
		fmt.Printf("     blocks %d directly, %d transitively\n", b.DirectDependents, b.TransitiveDependents)
	}
	return nil
}
