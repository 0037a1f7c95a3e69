package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dawsh2/Torq/internal/errors"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg == nil {
		t.Fatal("Default() returned nil")
	}

	if cfg.TasksDir != "tasks" {
		t.Errorf("TasksDir = %q, want %q", cfg.TasksDir, "tasks")
	}
	if !cfg.Log.Enabled {
		t.Error("Log.Enabled should be true by default")
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %q, want %q", cfg.Log.Level, "info")
	}
	if cfg.Log.Dir != "" {
		t.Errorf("Log.Dir = %q, want empty (resolved lazily)", cfg.Log.Dir)
	}
	if cfg.Log.MaxSizeMB != 10 {
		t.Errorf("Log.MaxSizeMB = %d, want 10", cfg.Log.MaxSizeMB)
	}
	if cfg.Log.MaxBackups != 3 {
		t.Errorf("Log.MaxBackups = %d, want 3", cfg.Log.MaxBackups)
	}
	if cfg.Bottlenecks.Top != 10 {
		t.Errorf("Bottlenecks.Top = %d, want 10", cfg.Bottlenecks.Top)
	}
	if cfg.Watch.DebounceMs != 500 {
		t.Errorf("Watch.DebounceMs = %d, want 500", cfg.Watch.DebounceMs)
	}
	if len(cfg.Watch.Ignore) != 0 {
		t.Errorf("Watch.Ignore = %v, want empty", cfg.Watch.Ignore)
	}
}

func TestWatchConfig_Debounce(t *testing.T) {
	tests := []struct {
		ms       int
		expected time.Duration
	}{
		{100, 100 * time.Millisecond},
		{500, 500 * time.Millisecond},
		{1000, 1 * time.Second},
		{0, 0},
	}

	for _, tt := range tests {
		cfg := WatchConfig{DebounceMs: tt.ms}
		if result := cfg.Debounce(); result != tt.expected {
			t.Errorf("Debounce() with %dms = %v, want %v", tt.ms, result, tt.expected)
		}
	}
}

func TestLogConfig_Rotation(t *testing.T) {
	lc := LogConfig{MaxSizeMB: 25, MaxBackups: 5}

	rot := lc.Rotation()
	if rot.MaxSizeMB != 25 || rot.MaxBackups != 5 {
		t.Errorf("Rotation() = %+v, want MaxSizeMB 25 MaxBackups 5", rot)
	}
	if rot.Compress {
		t.Error("Compress should be off; there is no config knob for it")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults are valid", func(c *Config) {}, false},
		{"empty tasks_dir", func(c *Config) { c.TasksDir = "" }, true},
		{"unknown log level", func(c *Config) { c.Log.Level = "loud" }, true},
		{"uppercase log level", func(c *Config) { c.Log.Level = "DEBUG" }, false},
		{"negative max_size_mb", func(c *Config) { c.Log.MaxSizeMB = -1 }, true},
		{"zero max_size_mb disables rotation", func(c *Config) { c.Log.MaxSizeMB = 0 }, false},
		{"negative max_backups", func(c *Config) { c.Log.MaxBackups = -1 }, true},
		{"zero debounce", func(c *Config) { c.Watch.DebounceMs = 0 }, true},
		{"negative top is allowed", func(c *Config) { c.Bottlenecks.Top = -1 }, false},
		{"valid ignore globs", func(c *Config) { c.Watch.Ignore = []string{"drafts/**", "*.tmp.md"} }, false},
		{"unterminated ignore glob", func(c *Config) { c.Watch.Ignore = []string{"["} }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrInvalidInput) {
				t.Errorf("Validate() error = %v, want ErrInvalidInput match", err)
			}
		})
	}
}

func TestConfigDir(t *testing.T) {
	t.Run("with XDG_CONFIG_HOME", func(t *testing.T) {
		original := os.Getenv("XDG_CONFIG_HOME")
		defer func() { _ = os.Setenv("XDG_CONFIG_HOME", original) }()

		_ = os.Setenv("XDG_CONFIG_HOME", "/custom/config")
		result := ConfigDir()
		expected := "/custom/config/torq"
		if result != expected {
			t.Errorf("ConfigDir() = %q, want %q", result, expected)
		}
	})

	t.Run("without XDG_CONFIG_HOME", func(t *testing.T) {
		original := os.Getenv("XDG_CONFIG_HOME")
		defer func() { _ = os.Setenv("XDG_CONFIG_HOME", original) }()

		_ = os.Setenv("XDG_CONFIG_HOME", "")
		result := ConfigDir()

		home, _ := os.UserHomeDir()
		expected := filepath.Join(home, ".config", "torq")
		if result != expected {
			t.Errorf("ConfigDir() = %q, want %q", result, expected)
		}
	})
}

func TestConfigFile(t *testing.T) {
	original := os.Getenv("XDG_CONFIG_HOME")
	defer func() { _ = os.Setenv("XDG_CONFIG_HOME", original) }()

	_ = os.Setenv("XDG_CONFIG_HOME", "/custom/config")
	result := ConfigFile()
	expected := "/custom/config/torq/config.yaml"
	if result != expected {
		t.Errorf("ConfigFile() = %q, want %q", result, expected)
	}
}

func TestLogDir(t *testing.T) {
	original := os.Getenv("XDG_CONFIG_HOME")
	defer func() { _ = os.Setenv("XDG_CONFIG_HOME", original) }()
	_ = os.Setenv("XDG_CONFIG_HOME", "/custom/config")

	cfg := Default()
	if got, want := cfg.LogDir(), "/custom/config/torq/logs"; got != want {
		t.Errorf("LogDir() = %q, want %q", got, want)
	}

	cfg.Log.Dir = "/var/log/torq"
	if got := cfg.LogDir(); got != "/var/log/torq" {
		t.Errorf("LogDir() = %q, want explicit dir to win", got)
	}
}

func TestGet(t *testing.T) {
	// Normally done by the root command's init.
	SetDefaults()

	cfg := Get()
	if cfg == nil {
		t.Fatal("Get() returned nil")
	}
	if cfg.TasksDir != "tasks" {
		t.Errorf("Get().TasksDir = %q, want %q", cfg.TasksDir, "tasks")
	}
}
