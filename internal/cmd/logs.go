package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/dawsh2/Torq/internal/config"
	"github.com/dawsh2/Torq/internal/logging"
)

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Query the torq run log",
	Long: `Query the structured log that commands write as they run.

Entries are read from torq.log and its rotated backups, oldest first.
Filters combine with AND.

Examples:
  # Everything the last two hours of runs logged at WARN or above
  torq logs --since 2h --level warn

  # Follow one invocation by its run id
  torq logs --run aa11bb22

  # Export what the order command logged as CSV
  torq logs --command order --format csv > order-runs.csv`,
	RunE: runLogs,
}

var (
	logsFormat   string
	logsLevel    string
	logsRun      string
	logsCommand  string
	logsContains string
	logsSince    string
)

func init() {
	rootCmd.AddCommand(logsCmd)
	logsCmd.Flags().StringVarP(&logsFormat, "format", "f", "text", "Output format: text, json or csv")
	logsCmd.Flags().StringVar(&logsLevel, "level", "", "Only entries at or above this level")
	logsCmd.Flags().StringVar(&logsRun, "run", "", "Only entries from this run id")
	logsCmd.Flags().StringVar(&logsCommand, "command", "", "Only entries from this command verb")
	logsCmd.Flags().StringVar(&logsContains, "contains", "", "Only entries whose message contains this text")
	logsCmd.Flags().StringVar(&logsSince, "since", "", "Only entries newer than this duration (e.g. 30m, 2h)")
}

func runLogs(cmd *cobra.Command, args []string) error {
	if logsFormat != "text" && logsFormat != "json" && logsFormat != "csv" {
		return fmt.Errorf("unknown format %q (expected text, json or csv)", logsFormat)
	}
	if logsLevel != "" && !validLevel(logsLevel) {
		return fmt.Errorf("unknown level %q (expected debug, info, warn or error)", logsLevel)
	}

	filter := logging.Filter{
		Level:           logsLevel,
		RunID:           logsRun,
		Command:         logsCommand,
		MessageContains: logsContains,
	}
	if logsSince != "" {
		d, err := time.ParseDuration(logsSince)
		if err != nil {
			return fmt.Errorf("invalid --since duration %q: %w", logsSince, err)
		}
		filter.Since = time.Now().Add(-d)
	}

	// No run logger here: this command reads the file the logger
	// would be appending to.
	cfg := config.Get()
	entries, err := logging.ReadEntries(cfg.LogDir())
	if err != nil {
		return err
	}

	matched := logging.FilterEntries(entries, filter)
	if logsFormat == "text" && len(matched) == 0 {
		fmt.Println("No log entries match.")
		return nil
	}
	return logging.WriteEntries(os.Stdout, matched, logsFormat)
}

func validLevel(level string) bool {
	for _, l := range logging.ValidLevels() {
		if strings.EqualFold(level, l) {
			return true
		}
	}
	return false
}
