package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dawsh2/Torq/internal/analysis"
	"github.com/dawsh2/Torq/internal/config"
)

var timelineCmd = &cobra.Command{
	Use:   "timeline",
	Short: "Order task groups into execution phases",
	Long: `Order task groups (sprints, epics) into phases. A group lands in a
later phase than every group it depends on; groups with no ordering
between them share a phase and can run side by side.

Each group carries a rollup status: complete when all of its tasks are,
in_progress or partial while work is underway, pending before any task
has started. Tasks without a group label are ignored.

A dependency cycle between tasks, or between the groups themselves,
makes phases undefined; the command reports it and exits 1.

Examples:
  # Show the phase plan
  torq timeline

  # Phases as JSON
  torq timeline --json`,
	RunE: runTimeline,
}

var (
	timelineJSON bool
)

func init() {
	rootCmd.AddCommand(timelineCmd)
	timelineCmd.Flags().BoolVar(&timelineJSON, "json", false, "Output phases as JSON")
}

func runTimeline(cmd *cobra.Command, args []string) error {
	cfg := config.Get()
	logger := commandLogger(cfg, "timeline")
	defer logger.Close()

	g, err := loadGraph(cfg, logger)
	if err != nil {
		return err
	}

	tl, err := analysis.GroupTimeline(g)
	if err != nil {
		logger.Error("timeline refused", "error", err.Error())
		if timelineJSON {
			if jerr := outputJSON(newAnalysisError(err)); jerr != nil {
				return jerr
			}
			return &silentError{}
		}
		return err
	}
	logger.Info("timeline computed", "phases", len(tl.Phases))

	if timelineJSON {
		return outputJSON(tl)
	}

	if len(tl.Phases) == 0 {
		fmt.Println("No grouped tasks.")
		return nil
	}
	fmt.Printf("Timeline: %d phase(s)\n", len(tl.Phases))
	for _, phase := range tl.Phases {
		fmt.Printf("  Phase %d:\n", phase.Index)
		for _, grp := range phase.Groups {
			fmt.Printf("    %s [%s] %s\n", grp.Name, grp.Status, strings.Join(grp.Tasks, ", "))
		}
	}
	return nil
}
