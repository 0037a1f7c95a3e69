package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dawsh2/Torq/internal/analysis"
	"github.com/dawsh2/Torq/internal/config"
	"github.com/dawsh2/Torq/internal/task"
	"github.com/dawsh2/Torq/internal/tui/styles"
)

var readyCmd = &cobra.Command{
	Use:   "ready",
	Short: "List tasks that can start right now",
	Long: `List every pending task whose dependencies are all complete.

Tasks come back highest priority first, so the first line is the
suggested next piece of work. A pending task with a dependency that is
unknown, unfinished, or cancelled is not ready.

Examples:
  # Show ready tasks
  torq ready

  # Feed the top pick into a script
  torq ready --json | jq -r '.tasks[0].id'`,
	RunE: runReady,
}

var (
	readyJSON bool
)

func init() {
	rootCmd.AddCommand(readyCmd)
	readyCmd.Flags().BoolVar(&readyJSON, "json", false, "Output ready tasks as JSON")
}

// readyTask is one startable task in the ready listing.
type readyTask struct {
	ID       string        `json:"id"`
	Title    string        `json:"title,omitempty"`
	Priority task.Priority `json:"priority"`
	File     string        `json:"file,omitempty"`
}

// readyOutput is the JSON output format for the ready listing.
type readyOutput struct {
	Count int         `json:"count"`
	Tasks []readyTask `json:"tasks"`
}

func runReady(cmd *cobra.Command, args []string) error {
	cfg := config.Get()
	logger := commandLogger(cfg, "ready")
	defer logger.Close()

	g, err := loadGraph(cfg, logger)
	if err != nil {
		return err
	}

	ids := analysis.ReadyTasks(g)
	out := readyOutput{Count: len(ids), Tasks: make([]readyTask, 0, len(ids))}
	snap := g.Snapshot()
	for _, id := range ids {
		t, ok := snap.Task(id)
		if !ok {
			continue
		}
		out.Tasks = append(out.Tasks, readyTask{
			ID:       t.ID,
			Title:    t.Title,
			Priority: t.Priority,
			File:     t.SourceFile,
		})
	}
	logger.Info("ready tasks computed", "count", out.Count)

	if readyJSON {
		return outputJSON(out)
	}

	if out.Count == 0 {
		fmt.Println("No tasks are ready to start.")
		return nil
	}
	fmt.Printf("Ready to start (%d):\n", out.Count)
	for _, rt := range out.Tasks {
		line := fmt.Sprintf("  %s [%s]", rt.ID, rt.Priority)
		if rt.Title != "" {
			line += " " + rt.Title
		}
		fmt.Println(line)
		if rt.File != "" {
			fmt.Printf("    %s\n", styles.Muted.Render(rt.File))
		}
	}
	return nil
}
