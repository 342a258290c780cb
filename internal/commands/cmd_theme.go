package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/tasks/internal/app"
	"github.com/colonyops/tasks/internal/core/logging"
	"github.com/colonyops/tasks/internal/core/settings"
)

type ThemeCmd struct {
	flags *Flags
	app   *app.App
}

// NewThemeCmd creates a new theme command
func NewThemeCmd(flags *Flags, app *app.App) *ThemeCmd {
	return &ThemeCmd{flags: flags, app: app}
}

// Register adds the theme command group to the application
func (cmd *ThemeCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "theme",
		Usage: "Show or change the color theme",
		Description: `The theme preference is stored in the database and shared with the TUI.
"system" follows the terminal background.

Examples:
  tasks theme
  tasks theme set light`,
		Action: cmd.runGet,
		Commands: []*cli.Command{
			{
				Name:   "get",
				Usage:  "Print the current theme",
				Action: cmd.runGet,
			},
			{
				Name:      "set",
				Usage:     "Change the theme",
				UsageText: "tasks theme set <" + themeNames() + ">",
				ShellComplete: func(_ context.Context, c *cli.Command) {
					for _, t := range settings.Themes {
						_, _ = fmt.Fprintln(c.Root().Writer, string(t))
					}
				},
				Action: cmd.runSet,
			},
		},
	})

	return app
}

func (cmd *ThemeCmd) runGet(ctx context.Context, c *cli.Command) error {
	theme, err := cmd.app.Settings.Theme(logging.WithCommand(ctx, "theme"))
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(c.Root().Writer, string(theme))
	return nil
}

func (cmd *ThemeCmd) runSet(ctx context.Context, c *cli.Command) error {
	if !c.Args().Present() {
		return fmt.Errorf("theme required: %s", themeNames())
	}

	theme, err := settings.ParseTheme(c.Args().First())
	if err != nil {
		return err
	}

	if err := cmd.app.Settings.SetTheme(logging.WithCommand(ctx, "theme"), theme); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Theme set to %s\n", theme.Label())
	return nil
}

func themeNames() string {
	names := make([]string, len(settings.Themes))
	for i, t := range settings.Themes {
		names[i] = string(t)
	}
	return strings.Join(names, "|")
}
