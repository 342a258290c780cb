// Package config handles configuration loading and validation for tasks.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/colonyops/tasks/internal/core/task"
)

// Config holds the application configuration.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	TUI      TUIConfig      `yaml:"tui"`
	Defaults DefaultsConfig `yaml:"defaults"`
	DataDir  string         `yaml:"-"` // set by caller, not from config file
}

// DatabaseConfig tunes the SQLite connection pool.
type DatabaseConfig struct {
	MaxOpenConns int `yaml:"max_open_conns"`
	MaxIdleConns int `yaml:"max_idle_conns"`
	BusyTimeout  int `yaml:"busy_timeout"` // milliseconds
}

// TUIConfig holds terminal UI settings.
type TUIConfig struct {
	DefaultSort   string        `yaml:"default_sort"`
	ExpandStatus  string        `yaml:"expand_status"`
	DateFormat    string        `yaml:"date_format"`
	WatchDebounce time.Duration `yaml:"watch_debounce"`
}

// DefaultsConfig holds values applied to new tasks.
type DefaultsConfig struct {
	Priority string        `yaml:"priority"`
	DueIn    time.Duration `yaml:"due_in"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		Database: DatabaseConfig{
			MaxOpenConns: 4,
			MaxIdleConns: 2,
			BusyTimeout:  5000,
		},
		TUI: TUIConfig{
			DefaultSort:   string(task.SortDueDate),
			ExpandStatus:  string(task.StatusPending),
			DateFormat:    "Jan 02, 2006",
			WatchDebounce: 150 * time.Millisecond,
		},
		Defaults: DefaultsConfig{
			Priority: task.PriorityLow.String(),
		},
	}
}

// Load reads configPath over the defaults. A missing file is not an error.
func Load(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		case !os.IsNotExist(err):
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg.DataDir = dataDir
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults fills zero values left by a partial config file.
func (c *Config) applyDefaults() {
	d := DefaultConfig()

	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = d.Database.MaxOpenConns
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = d.Database.MaxIdleConns
	}
	if c.Database.BusyTimeout == 0 {
		c.Database.BusyTimeout = d.Database.BusyTimeout
	}
	if c.TUI.DefaultSort == "" {
		c.TUI.DefaultSort = d.TUI.DefaultSort
	}
	if c.TUI.ExpandStatus == "" {
		c.TUI.ExpandStatus = d.TUI.ExpandStatus
	}
	if c.TUI.DateFormat == "" {
		c.TUI.DateFormat = d.TUI.DateFormat
	}
	if c.TUI.WatchDebounce == 0 {
		c.TUI.WatchDebounce = d.TUI.WatchDebounce
	}
	if c.Defaults.Priority == "" {
		c.Defaults.Priority = d.Defaults.Priority
	}
}

// Validate checks that the configuration is structurally valid.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data directory cannot be empty")
	}
	if c.Database.MaxOpenConns < 1 {
		return fmt.Errorf("database.max_open_conns must be at least 1")
	}
	if c.Database.MaxIdleConns < 0 {
		return fmt.Errorf("database.max_idle_conns cannot be negative")
	}
	if c.Database.BusyTimeout < 0 {
		return fmt.Errorf("database.busy_timeout cannot be negative")
	}
	if _, err := task.ParseSortBy(c.TUI.DefaultSort); err != nil {
		return fmt.Errorf("tui.default_sort: %w", err)
	}
	if _, err := task.ParseStatus(c.TUI.ExpandStatus); err != nil {
		return fmt.Errorf("tui.expand_status: %w", err)
	}
	if _, err := task.ParsePriority(c.Defaults.Priority); err != nil {
		return fmt.Errorf("defaults.priority: %w", err)
	}
	if c.Defaults.DueIn < 0 {
		return fmt.Errorf("defaults.due_in cannot be negative")
	}
	return nil
}

// SortBy returns the configured initial sort. Call after Validate.
func (t TUIConfig) SortBy() task.SortBy {
	s, err := task.ParseSortBy(t.DefaultSort)
	if err != nil {
		return task.SortDueDate
	}
	return s
}

// Expand returns the status whose section starts expanded. Call after Validate.
func (t TUIConfig) Expand() task.Status {
	s, err := task.ParseStatus(t.ExpandStatus)
	if err != nil {
		return task.StatusPending
	}
	return s
}

// NewTask returns a blank pending task with the configured defaults applied.
func (d DefaultsConfig) NewTask(title string, now time.Time) task.Task {
	t := task.New(title, now.Add(d.DueIn))
	if p, err := task.ParsePriority(d.Priority); err == nil {
		t.Priority = p
	}
	return t
}
