// Package config provides configuration parsing for procpulse.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"gitlab.com/tinyland/lab/procpulse/procview"
)

// Config represents the procpulse configuration.
type Config struct {
	// Monitor holds collection settings.
	Monitor MonitorConfig `yaml:"monitor"`

	// View holds the default process view settings.
	View ViewConfig `yaml:"view"`

	// Log holds batch-mode log output settings.
	Log LogConfig `yaml:"log"`
}

// MonitorConfig holds collection settings.
type MonitorConfig struct {
	// RefreshInterval is a duration string (e.g. "1s", "500ms") between
	// collection passes.
	RefreshInterval string `yaml:"refresh_interval"`
	// MaxProcs limits how many processes the view shows. 0 means all.
	MaxProcs int `yaml:"max_procs"`
}

// ViewConfig holds the default process view settings.
type ViewConfig struct {
	// SortBy is the initial sort key (name|pid|memory|priority|user|state|threads|vmsize|utime|stime).
	SortBy string `yaml:"sort_by"`
	// Descending sorts the view in descending order.
	Descending bool `yaml:"descending"`
	// FilterBy is the initial filter key (name|user|pid|ppid|state|any). Empty disables filtering.
	FilterBy string `yaml:"filter_by"`
	// Pattern is the initial filter pattern.
	Pattern string `yaml:"pattern"`
	// ExactMatch requires the pattern to match the whole field.
	ExactMatch bool `yaml:"exact_match"`
}

// LogConfig holds batch-mode log output settings.
type LogConfig struct {
	// File is the path batch output is appended to.
	File string `yaml:"file"`
	// Verbose enables debug-level logging.
	Verbose bool `yaml:"verbose"`
}

// DefaultConfig returns a Config populated with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Monitor: MonitorConfig{
			RefreshInterval: "1s",
			MaxProcs:        0,
		},
		View: ViewConfig{
			SortBy:     "pid",
			Descending: false,
			FilterBy:   "",
			Pattern:    "",
			ExactMatch: false,
		},
		Log: LogConfig{
			File:    "/tmp/procpulse.log",
			Verbose: false,
		},
	}
}

// LoadConfig loads configuration from a YAML file, merging with defaults.
// A missing file yields the defaults.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	if path == "" {
		return config, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, err
	}

	return config, nil
}

// Refresh parses the configured refresh interval.
func (c *Config) Refresh() (time.Duration, error) {
	d, err := time.ParseDuration(c.Monitor.RefreshInterval)
	if err != nil {
		return 0, fmt.Errorf("monitor.refresh_interval: %w", err)
	}
	return d, nil
}

// Validate checks the configuration for required fields and logical consistency.
func (c *Config) Validate() error {
	d, err := c.Refresh()
	if err != nil {
		return err
	}
	if d <= 0 {
		return fmt.Errorf("monitor.refresh_interval must be positive, got %q", c.Monitor.RefreshInterval)
	}

	if c.Monitor.MaxProcs < 0 {
		return fmt.Errorf("monitor.max_procs must be non-negative, got %d", c.Monitor.MaxProcs)
	}

	if _, err := procview.ParseSortKey(c.View.SortBy); err != nil {
		return fmt.Errorf("view.sort_by: %w", err)
	}
	if _, err := procview.ParseFilterKey(c.View.FilterBy); err != nil {
		return fmt.Errorf("view.filter_by: %w", err)
	}

	if c.Log.File == "" {
		return fmt.Errorf("log.file is required")
	}

	return nil
}

// SaveConfig saves configuration to a YAML file.
func SaveConfig(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
