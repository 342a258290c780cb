package commands

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/hay-kot/criterio"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/tasks/internal/app"
	"github.com/colonyops/tasks/pkg/iojson"
)

type ConfigCmd struct {
	flags  *Flags
	app    *app.App
	format string
}

// NewConfigCmd creates a new config command.
func NewConfigCmd(flags *Flags, app *app.App) *ConfigCmd {
	return &ConfigCmd{flags: flags, app: app}
}

// Register adds the config command group to the application.
func (cmd *ConfigCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "config",
		Usage: "Configuration management commands",
		Commands: []*cli.Command{
			{
				Name:        "validate",
				Usage:       "Validate configuration file",
				UsageText:   "tasks config validate [options]",
				Description: "Validates the configuration file, checking the data directory, date format, and connection pool settings.",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        "format",
						Usage:       "output format (text, json)",
						Value:       "text",
						Destination: &cmd.format,
					},
				},
				Action: cmd.runValidate,
			},
			{
				Name:   "path",
				Usage:  "Print the configuration file path",
				Action: cmd.runPath,
			},
		},
	})

	return app
}

type configIssue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (cmd *ConfigCmd) runValidate(_ context.Context, c *cli.Command) error {
	issues := fieldIssues(cmd.flags.Config.ValidateDeep(cmd.flags.ConfigPath))
	warnings := cmd.flags.Config.Warnings()

	if cmd.format == "json" {
		out := struct {
			Valid    bool          `json:"valid"`
			Errors   []configIssue `json:"errors,omitempty"`
			Warnings []string      `json:"warnings,omitempty"`
		}{
			Valid:    len(issues) == 0,
			Errors:   issues,
			Warnings: warnings,
		}
		if err := iojson.WriteWith(c.Root().Writer, os.Stderr, out); err != nil {
			return err
		}
		if len(issues) > 0 {
			return cli.Exit("", 1)
		}
		return nil
	}

	st := cliStyles(context.Background(), cmd.app)
	w := os.Stderr

	for _, warn := range warnings {
		_, _ = fmt.Fprintf(w, "%s %s\n", st.TextWarning.Render("●"), warn)
	}
	for _, issue := range issues {
		_, _ = fmt.Fprintf(w, "%s %s: %s\n", st.TextError.Render("✘"), issue.Field, issue.Message)
	}

	_, _ = fmt.Fprintln(w)
	if len(issues) == 0 {
		_, _ = fmt.Fprintln(w, st.TextSuccess.Render("✔ Configuration is valid"))
		return nil
	}

	_, _ = fmt.Fprintln(w, st.TextError.Render(fmt.Sprintf("%d error(s) found", len(issues))))
	return cli.Exit("", 1)
}

func (cmd *ConfigCmd) runPath(_ context.Context, c *cli.Command) error {
	_, _ = fmt.Fprintln(c.Root().Writer, cmd.flags.ConfigPath)
	return nil
}

// fieldIssues flattens criterio field errors; other errors become a single
// issue against the whole file.
func fieldIssues(err error) []configIssue {
	if err == nil {
		return nil
	}

	var fieldErrs criterio.FieldErrors
	if !errors.As(err, &fieldErrs) {
		return []configIssue{{Field: "config", Message: err.Error()}}
	}

	issues := make([]configIssue, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		issues = append(issues, configIssue{Field: fe.Field, Message: fe.Err.Error()})
	}
	return issues
}
