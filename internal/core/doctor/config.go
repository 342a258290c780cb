package doctor

import (
	"context"
	"errors"

	"github.com/hay-kot/criterio"

	"github.com/colonyops/tasks/internal/core/config"
)

// ConfigCheck validates the loaded configuration against the filesystem.
type ConfigCheck struct {
	cfg        *config.Config
	configPath string
}

// NewConfigCheck creates a new config check.
func NewConfigCheck(cfg *config.Config, configPath string) *ConfigCheck {
	return &ConfigCheck{cfg: cfg, configPath: configPath}
}

func (c *ConfigCheck) Name() string {
	return "Configuration"
}

func (c *ConfigCheck) Run(_ context.Context) Result {
	result := Result{Name: c.Name()}

	err := c.cfg.ValidateDeep(c.configPath)

	var fieldErrs criterio.FieldErrors
	switch {
	case err == nil:
		result.Items = append(result.Items, CheckItem{Label: "config", Status: StatusPass, Detail: c.configPath})
	case errors.As(err, &fieldErrs):
		for _, fe := range fieldErrs {
			result.Items = append(result.Items, CheckItem{Label: fe.Field, Status: StatusFail, Detail: fe.Err.Error()})
		}
	default:
		result.Items = append(result.Items, CheckItem{Label: "config", Status: StatusFail, Detail: err.Error()})
	}

	for _, w := range c.cfg.Warnings() {
		result.Items = append(result.Items, CheckItem{Label: "config", Status: StatusWarn, Detail: w})
	}

	return result
}
