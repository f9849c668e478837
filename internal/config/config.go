// Package config loads Keeper's configuration from an optional YAML file
// with KEEPER_* environment overrides on top.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Backend selects the note persistence backend. Tasks always live in the
// relational store; only notes are pluggable.
const (
	BackendSQLite   = "sqlite"
	BackendMarkdown = "markdown"
)

// Duration wraps time.Duration so YAML values like "1h" parse directly.
type Duration time.Duration

// UnmarshalYAML parses a Go duration string.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", value.Value, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML renders the duration back as a string.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// Config holds everything one Keeper instance needs. One instance, one
// database file, one audit log, optionally one notebook file.
type Config struct {
	DBPath            string   `yaml:"db_path"`
	NotebookPath      string   `yaml:"notebook_path"`
	AuditLogPath      string   `yaml:"audit_log_path"`
	Backend           string   `yaml:"backend"`
	HistoryIdleWindow Duration `yaml:"history_idle_window"`
	RejectThreshold   float64  `yaml:"reject_threshold"`
	MergeThreshold    float64  `yaml:"merge_threshold"`
}

// Default returns the configuration Keeper runs with when no file and no
// environment overrides are present.
func Default() Config {
	return Config{
		DBPath:            "tasks.db",
		NotebookPath:      "notebook.md",
		AuditLogPath:      "logs/audit.log",
		Backend:           BackendSQLite,
		HistoryIdleWindow: Duration(time.Hour),
		RejectThreshold:   0.8,
		MergeThreshold:    0.5,
	}
}

// Load builds the configuration: defaults, then the YAML file at path if
// it exists, then environment overrides, then validation.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// No file is fine: defaults plus environment.
		case err != nil:
			return Config{}, fmt.Errorf("reading config: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
			}
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	setString(&c.DBPath, "KEEPER_DB_PATH")
	setString(&c.NotebookPath, "KEEPER_NOTEBOOK_PATH")
	setString(&c.AuditLogPath, "KEEPER_AUDIT_LOG")
	setString(&c.Backend, "KEEPER_BACKEND")

	if v := os.Getenv("KEEPER_HISTORY_IDLE_WINDOW"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			c.HistoryIdleWindow = Duration(parsed)
		}
	}
	setFloat(&c.RejectThreshold, "KEEPER_REJECT_THRESHOLD")
	setFloat(&c.MergeThreshold, "KEEPER_MERGE_THRESHOLD")
}

// Validate checks the invariants the rest of the system assumes.
func (c Config) Validate() error {
	if c.Backend != BackendSQLite && c.Backend != BackendMarkdown {
		return fmt.Errorf("backend must be %q or %q, got %q", BackendSQLite, BackendMarkdown, c.Backend)
	}
	if c.Backend == BackendMarkdown && c.NotebookPath == "" {
		return fmt.Errorf("notebook_path is required for the markdown backend")
	}
	if c.DBPath == "" {
		return fmt.Errorf("db_path is required")
	}
	if c.HistoryIdleWindow <= 0 {
		return fmt.Errorf("history_idle_window must be positive")
	}
	if c.RejectThreshold <= 0 || c.RejectThreshold > 1 {
		return fmt.Errorf("reject_threshold must be in (0, 1], got %g", c.RejectThreshold)
	}
	if c.MergeThreshold <= 0 || c.MergeThreshold > 1 {
		return fmt.Errorf("merge_threshold must be in (0, 1], got %g", c.MergeThreshold)
	}
	if c.MergeThreshold > c.RejectThreshold {
		return fmt.Errorf("merge_threshold (%g) must not exceed reject_threshold (%g)",
			c.MergeThreshold, c.RejectThreshold)
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setFloat(dst *float64, key string) {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			*dst = parsed
		}
	}
}
