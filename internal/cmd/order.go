package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dawsh2/Torq/internal/config"
	"github.com/dawsh2/Torq/internal/tui/styles"
)

var orderCmd = &cobra.Command{
	Use:   "order",
	Short: "Print a topological execution order",
	Long: `Print a valid execution order: every task appears after all of its
dependencies. Ties are broken by task id, so the order is stable across
runs.

On a cyclic graph the acyclic prefix is still printed; tasks trapped in
cycles are reported separately and the command still exits 0, since a
partial order is a usable result.

Examples:
  # One task id per line, dependencies first
  torq order

  # Raw edges, the format tsort(1) reads
  torq order --edges

  # Order with cycle information
  torq order --json`,
	RunE: runOrder,
}

var (
	orderJSON  bool
	orderEdges bool
)

func init() {
	rootCmd.AddCommand(orderCmd)
	orderCmd.Flags().BoolVar(&orderJSON, "json", false, "Output order as JSON")
	orderCmd.Flags().BoolVar(&orderEdges, "edges", false, "Print dependency edges instead of the order")
}

func runOrder(cmd *cobra.Command, args []string) error {
	if orderJSON && orderEdges {
		return fmt.Errorf("--edges cannot be combined with --json")
	}

	cfg := config.Get()
	logger := commandLogger(cfg, "order")
	defer logger.Close()

	g, err := loadGraph(cfg, logger)
	if err != nil {
		return err
	}

	if orderEdges {
		for _, id := range g.Snapshot().SortedIDs() {
			for _, succ := range g.Successors(id) {
				fmt.Printf("%s %s\n", id, succ)
			}
		}
		return nil
	}

	res := g.TopoOrder()
	logger.Info("topological order computed", "ordered", len(res.Order), "has_cycle", res.HasCycle)

	if orderJSON {
		return outputJSON(res)
	}

	for _, id := range res.Order {
		fmt.Println(id)
	}
	if res.HasCycle {
		fmt.Println(styles.WarningMsg.Render(
			fmt.Sprintf("cycle: %d task(s) have no valid position: %s",
				len(res.Remaining), strings.Join(res.Remaining, ", "))))
	}
	return nil
}
