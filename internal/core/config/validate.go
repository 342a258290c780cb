package config

import (
	"fmt"
	"os"
	"time"

	"github.com/hay-kot/criterio"
)

// ValidateDeep performs Validate and then checks filesystem access and
// format strings. The configPath argument names the config file to check;
// an empty string skips that check.
func (c *Config) ValidateDeep(configPath string) error {
	if err := c.Validate(); err != nil {
		return err
	}

	return criterio.ValidateStruct(
		validateConfigFile(configPath),
		criterio.Run("data_dir", c.DataDir, isDirectoryOrNotExist),
		criterio.Run("tui.date_format", c.TUI.DateFormat, isUsefulDateFormat),
		c.validatePool(),
	)
}

// Warnings returns non-fatal configuration issues.
func (c *Config) Warnings() []string {
	var warnings []string
	if c.Database.MaxIdleConns > c.Database.MaxOpenConns {
		warnings = append(warnings, "database.max_idle_conns exceeds max_open_conns; extra idle connections are never kept")
	}
	if c.TUI.WatchDebounce > 5*time.Second {
		warnings = append(warnings, "tui.watch_debounce above 5s makes external changes slow to appear")
	}
	return warnings
}

func (c *Config) validatePool() error {
	var errs criterio.FieldErrorsBuilder
	if c.Database.BusyTimeout > 0 && c.Database.BusyTimeout < 100 {
		errs = errs.Append("database.busy_timeout", fmt.Errorf("%dms is too short for WAL checkpoints", c.Database.BusyTimeout))
	}
	if c.Database.MaxOpenConns > 64 {
		errs = errs.Append("database.max_open_conns", fmt.Errorf("%d exceeds the supported maximum of 64", c.Database.MaxOpenConns))
	}
	return errs.ToError()
}

func validateConfigFile(configPath string) error {
	if configPath == "" {
		return nil
	}

	info, err := os.Stat(configPath)
	if os.IsNotExist(err) {
		return nil // not found is fine, using defaults
	}
	if err != nil {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("cannot access: %w", err))
	}
	if info.IsDir() {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("%s is a directory, not a file", configPath))
	}
	return nil
}

// isDirectoryOrNotExist validates that a path is a directory or doesn't exist.
func isDirectoryOrNotExist(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil // will be created
	}
	if err != nil {
		return fmt.Errorf("cannot access: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("exists but is not a directory")
	}
	return nil
}

// isUsefulDateFormat rejects layouts that render no date component, which
// usually means the Go reference date was not used. Two samples on different
// days at the same clock time must render differently.
func isUsefulDateFormat(layout string) error {
	a := time.Date(1999, 11, 23, 22, 33, 44, 0, time.UTC)
	b := time.Date(2001, 3, 7, 22, 33, 44, 0, time.UTC)
	out := a.Format(layout)
	if out == layout {
		return fmt.Errorf("%q contains no reference date fields (use Go layout, e.g. \"Jan 02, 2006\")", layout)
	}
	if out == b.Format(layout) {
		return fmt.Errorf("%q does not render a date", layout)
	}
	return nil
}
