package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dawsh2/Torq/internal/analysis"
	"github.com/dawsh2/Torq/internal/config"
	"github.com/dawsh2/Torq/internal/tui/styles"
)

var scopeCmd = &cobra.Command{
	Use:   "scope <pattern>",
	Short: "Find tasks whose scope touches a path",
	Long: `Find every task whose declared scope matches the given pattern. Use it
before editing a file to see which tasks claim it.

The pattern is matched as a substring of each scope entry, or as a glob
when it contains glob metacharacters.

Examples:
  # Who touches the auth module
  torq scope src/auth

  # Glob over all migrations
  torq scope 'migrations/*.sql'`,
	Args: cobra.ExactArgs(1),
	RunE: runScope,
}

var (
	scopeJSON bool
)

func init() {
	rootCmd.AddCommand(scopeCmd)
	scopeCmd.Flags().BoolVar(&scopeJSON, "json", false, "Output matches as JSON")
}

// scopeOutput is the JSON output format for the scope query.
type scopeOutput struct {
	Pattern string                `json:"pattern"`
	Count   int                   `json:"count"`
	Matches []analysis.ScopeMatch `json:"matches"`
}

func runScope(cmd *cobra.Command, args []string) error {
	cfg := config.Get()
	logger := commandLogger(cfg, "scope")
	defer logger.Close()

	g, err := loadGraph(cfg, logger)
	if err != nil {
		return err
	}

	pattern := args[0]
	matches := analysis.ScopeImpact(g, pattern)
	out := scopeOutput{Pattern: pattern, Count: len(matches), Matches: matches}
	logger.Info("scope query", "pattern", pattern, "count", out.Count)

	if scopeJSON {
		return outputJSON(out)
	}

	if out.Count == 0 {
		fmt.Printf("No task scope matches %q.\n", pattern)
		return nil
	}
	fmt.Printf("Tasks touching %q (%d):\n", pattern, out.Count)
	for _, m := range out.Matches {
		fmt.Printf("  %s %s %s\n", m.ID, renderStatus(m.Status), styles.Muted.Render(m.Match))
	}
	return nil
}
