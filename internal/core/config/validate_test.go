package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hay-kot/criterio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateDeep_Valid(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DataDir = t.TempDir()

	assert.NoError(t, cfg.ValidateDeep(""))
	assert.NoError(t, cfg.ValidateDeep(filepath.Join(t.TempDir(), "missing.yaml")))
}

func TestValidateDeep_FieldErrors(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "not-a-dir")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	cfg := DefaultConfig()
	cfg.DataDir = file
	cfg.TUI.DateFormat = "yesterday"
	cfg.Database.BusyTimeout = 10

	err := cfg.ValidateDeep(dir)
	require.Error(t, err)

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)

	fields := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields = append(fields, fe.Field)
	}
	assert.ElementsMatch(t, []string{"config_file", "data_dir", "tui.date_format", "database.busy_timeout"}, fields)
}

func TestWarnings(t *testing.T) {
	cfg := DefaultConfig()
	assert.Empty(t, cfg.Warnings())

	cfg.Database.MaxIdleConns = 10
	assert.Len(t, cfg.Warnings(), 1)
}

func TestIsUsefulDateFormat(t *testing.T) {
	for _, layout := range []string{"2006-01-02", "Jan 02, 2006", time.RFC3339, "Mon 2 Jan", "02/01/06 15:04"} {
		t.Run(layout, func(t *testing.T) {
			assert.NoError(t, isUsefulDateFormat(layout))
		})
	}

	for _, layout := range []string{"never", "yesterday", "15:04", ""} {
		t.Run("reject "+layout, func(t *testing.T) {
			assert.Error(t, isUsefulDateFormat(layout))
		})
	}
}
