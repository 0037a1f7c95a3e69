package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/dawsh2/Torq/internal/config"
	"github.com/dawsh2/Torq/internal/tui"
	"github.com/dawsh2/Torq/internal/watch"
)

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Browse the task graph in an interactive board",
	Long: `Open an interactive terminal board of the task graph.

Tasks are grouped into dependency levels: a task sits one level below
the deepest task it depends on, so work flows top to bottom. The
sidebar shows the selected task's status, scope, and relations.

Keys:
  j/k, up/down   move selection
  g/G            jump to first/last task
  /              filter by id or title
  esc            clear the filter
  q              quit

Examples:
  # Browse the current task graph
  torq board

  # Keep the board in sync while editing task files
  torq board --watch`,
	RunE: runBoard,
}

var (
	boardWatch bool
)

func init() {
	rootCmd.AddCommand(boardCmd)
	boardCmd.Flags().BoolVar(&boardWatch, "watch", false, "Reload the board when task files change")
}

func runBoard(cmd *cobra.Command, args []string) error {
	cfg := config.Get()
	logger := commandLogger(cfg, "board")
	defer logger.Close()

	g, err := loadGraph(cfg, logger)
	if err != nil {
		return err
	}

	app := tui.New(g, cfg.TasksDir)

	if boardWatch {
		w, err := watch.New(cfg.TasksDir, cfg.Watch.Debounce(), cfg.Watch.Ignore, logger)
		if err != nil {
			return err
		}
		// A reload that failed to parse keeps the last good board.
		w.OnReload(func(r watch.Reload) {
			if r.Err == nil && r.Graph != nil {
				app.Reload(r.Graph)
			}
		})

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go func() { _ = w.Run(ctx) }()
	}

	return app.Run()
}
