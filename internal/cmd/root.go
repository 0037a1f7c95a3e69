// Package cmd implements the torq command line interface.
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dawsh2/Torq/internal/config"
	"github.com/dawsh2/Torq/internal/errors"
)

var rootCmd = &cobra.Command{
	Use:   "torq",
	Short: "Task dependency graph engine",
	Long: `Torq analyzes a directory of task files and answers ordering
questions about them: what can start now, what blocks the most work,
where the critical path runs, and which tasks can proceed in parallel.

Task files are Markdown documents with YAML frontmatter declaring
dependencies; every command works on an immutable snapshot of the
directory, so results are reproducible for a given set of files.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. Errors are printed here exactly once;
// a silentError means the failing command already wrote its output.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		var silent *silentError
		if !errors.As(err, &silent) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
	}
	return err
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.config/torq/config.yaml)")
	rootCmd.PersistentFlags().StringP("tasks-dir", "d", "", `tasks directory (default "tasks")`)
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")

	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("tasks_dir", rootCmd.PersistentFlags().Lookup("tasks-dir"))
	_ = viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
}

func initConfig() {
	// Set defaults first so they're available even without a config file
	config.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
		viper.AddConfigPath("$HOME/.config/torq")
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("TORQ")
	// Replace dots with underscores for nested keys in env vars
	// e.g., TORQ_WATCH_DEBOUNCE_MS for watch.debounce_ms
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()
}
