package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dawsh2/Torq/internal/analysis"
	"github.com/dawsh2/Torq/internal/config"
	"github.com/dawsh2/Torq/internal/tui/styles"
	"github.com/dawsh2/Torq/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-check the graph whenever task files change",
	Long: `Watch the tasks directory and print a fresh one-line summary every
time a task file changes: task count, ready count, conflicts, and
whether a cycle appeared. Useful in a spare terminal while editing
task files.

Runs until interrupted.

Examples:
  # Watch the default tasks directory
  torq watch

  # Calmer output for slow editors
  torq watch --debounce-ms 2000

  # Leave draft files out of the loop
  torq watch --ignore 'drafts/**'`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().Int("debounce-ms", 500, "How long to batch change events, in milliseconds")
	watchCmd.Flags().StringSlice("ignore", nil, "Glob patterns (relative to the tasks directory) that never trigger a reload")
	_ = viper.BindPFlag("watch.debounce_ms", watchCmd.Flags().Lookup("debounce-ms"))
	_ = viper.BindPFlag("watch.ignore", watchCmd.Flags().Lookup("ignore"))
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg := config.Get()
	logger := commandLogger(cfg, "watch")
	defer logger.Close()

	w, err := watch.New(cfg.TasksDir, cfg.Watch.Debounce(), cfg.Watch.Ignore, logger)
	if err != nil {
		return err
	}
	w.OnReload(func(r watch.Reload) { printWatchUpdate(r) })

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Watching %s (ctrl-c to stop)\n", cfg.TasksDir)
	return w.Run(ctx)
}

// printWatchUpdate renders one reload as a single timestamped line,
// with per-file problems indented under it.
func printWatchUpdate(r watch.Reload) {
	stamp := styles.Muted.Render(r.At.Format("15:04:05"))
	if r.Err != nil {
		fmt.Printf("%s %s\n", stamp, styles.ErrorMsg.Render(r.Err.Error()))
		return
	}

	g := r.Graph
	parts := []string{
		fmt.Sprintf("%d tasks", g.Len()),
		fmt.Sprintf("%d ready", len(analysis.ReadyTasks(g))),
	}
	if n := len(analysis.ScopeConflicts(g)); n > 0 {
		parts = append(parts, styles.WarningMsg.Render(fmt.Sprintf("%d conflict(s)", n)))
	}
	if n := len(g.Dangling()); n > 0 {
		parts = append(parts, styles.WarningMsg.Render(fmt.Sprintf("%d unknown ref(s)", n)))
	}
	if g.DetectCycle().HasCycle {
		parts = append(parts, styles.ErrorMsg.Render("cycle"))
	}
	fmt.Printf("%s %s\n", stamp, strings.Join(parts, ", "))

	for _, fe := range r.FileErrors {
		fmt.Printf("  %s\n", styles.Muted.Render(fmt.Sprintf("%s: %v", fe.File, fe.Err)))
	}
}
