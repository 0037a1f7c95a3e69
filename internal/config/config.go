package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gobwas/glob"
	"github.com/spf13/viper"

	"github.com/dawsh2/Torq/internal/analysis"
	"github.com/dawsh2/Torq/internal/errors"
	"github.com/dawsh2/Torq/internal/logging"
)

// Config represents the complete torq configuration.
type Config struct {
	// TasksDir is the directory holding task files, laid out one task
	// per Markdown file in sprint subdirectories.
	TasksDir string `mapstructure:"tasks_dir"`

	Log         LogConfig         `mapstructure:"log"`
	Bottlenecks BottlenecksConfig `mapstructure:"bottlenecks"`
	Watch       WatchConfig       `mapstructure:"watch"`
}

// LogConfig controls structured logging.
type LogConfig struct {
	// Enabled turns logging on. Commands run fine without it.
	Enabled bool `mapstructure:"enabled"`
	// Level is one of debug, info, warn, error.
	Level string `mapstructure:"level"`
	// Dir is where torq.log is written. Empty means the default:
	// {ConfigDir()}/logs.
	Dir string `mapstructure:"dir"`
	// MaxSizeMB is the log file size in megabytes that triggers
	// rotation. Zero disables rotation.
	MaxSizeMB int `mapstructure:"max_size_mb"`
	// MaxBackups is how many rotated log files to keep.
	MaxBackups int `mapstructure:"max_backups"`
}

// Rotation returns the rotation settings in the form the logging
// package consumes.
func (c *LogConfig) Rotation() logging.RotationConfig {
	return logging.RotationConfig{
		MaxSizeMB:  c.MaxSizeMB,
		MaxBackups: c.MaxBackups,
	}
}

// BottlenecksConfig controls the bottleneck ranking.
type BottlenecksConfig struct {
	// Top is how many ranked tasks to report. Zero or negative means
	// report all of them.
	Top int `mapstructure:"top"`
}

// WatchConfig controls the file watcher.
type WatchConfig struct {
	// DebounceMs is how long to wait after the last file event before
	// re-analyzing (in milliseconds).
	DebounceMs int `mapstructure:"debounce_ms"`
	// Ignore lists glob patterns, relative to the tasks directory,
	// whose paths never trigger a reload. Hidden and archive
	// directories are skipped regardless.
	Ignore []string `mapstructure:"ignore"`
}

// Default returns the configuration used when no config file, flags or
// environment overrides are present.
func Default() *Config {
	return &Config{
		TasksDir: "tasks",
		Log: LogConfig{
			Enabled:    true,
			Level:      "info",
			Dir:        "", // empty means use default: {ConfigDir()}/logs
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
		Bottlenecks: BottlenecksConfig{
			Top: analysis.DefaultTopBottlenecks,
		},
		Watch: WatchConfig{
			DebounceMs: 500,
			Ignore:     []string{},
		},
	}
}

// Debounce returns the watch debounce window as a time.Duration.
func (c *WatchConfig) Debounce() time.Duration {
	return time.Duration(c.DebounceMs) * time.Millisecond
}

// LogDir returns the directory log files go to, resolving the empty
// default to {ConfigDir()}/logs.
func (c *Config) LogDir() string {
	if c.Log.Dir != "" {
		return c.Log.Dir
	}
	return filepath.Join(ConfigDir(), "logs")
}

// SetDefaults registers default values with viper.
func SetDefaults() {
	defaults := Default()

	viper.SetDefault("tasks_dir", defaults.TasksDir)
	viper.SetDefault("log.enabled", defaults.Log.Enabled)
	viper.SetDefault("log.level", defaults.Log.Level)
	viper.SetDefault("log.dir", defaults.Log.Dir)
	viper.SetDefault("log.max_size_mb", defaults.Log.MaxSizeMB)
	viper.SetDefault("log.max_backups", defaults.Log.MaxBackups)
	viper.SetDefault("bottlenecks.top", defaults.Bottlenecks.Top)
	viper.SetDefault("watch.debounce_ms", defaults.Watch.DebounceMs)
	viper.SetDefault("watch.ignore", defaults.Watch.Ignore)
}

// Load reads the configuration from viper into a Config and validates it.
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Get returns the current configuration, falling back to defaults if
// loading fails.
func Get() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Validate checks for values the commands cannot work with.
func (c *Config) Validate() error {
	if c.TasksDir == "" {
		return errors.NewValidationError("tasks_dir cannot be empty").WithField("tasks_dir")
	}

	level := strings.ToUpper(c.Log.Level)
	valid := false
	for _, l := range logging.ValidLevels() {
		if level == l {
			valid = true
			break
		}
	}
	if !valid {
		return errors.NewValidationError("log.level must be one of debug, info, warn, error").WithField("log.level")
	}

	if c.Log.MaxSizeMB < 0 {
		return errors.NewValidationError("log.max_size_mb cannot be negative").WithField("log.max_size_mb")
	}
	if c.Log.MaxBackups < 0 {
		return errors.NewValidationError("log.max_backups cannot be negative").WithField("log.max_backups")
	}

	if c.Watch.DebounceMs <= 0 {
		return errors.NewValidationError("watch.debounce_ms must be positive").WithField("watch.debounce_ms")
	}

	for _, pattern := range c.Watch.Ignore {
		if _, err := glob.Compile(pattern, '/'); err != nil {
			return errors.NewValidationError("watch.ignore pattern " + pattern + " does not compile").WithField("watch.ignore")
		}
	}

	return nil
}

// ConfigDir returns the path to the user's torq config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "torq")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".torq"
	}
	return filepath.Join(home, ".config", "torq")
}

// ConfigFile returns the path to the config file.
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}
