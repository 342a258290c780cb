package commands

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/tasks/internal/app"
	"github.com/colonyops/tasks/internal/core/logging"
)

type RmCmd struct {
	flags *Flags
	app   *app.App

	yes bool
}

// NewRmCmd creates the rm and clear commands
func NewRmCmd(flags *Flags, app *app.App) *RmCmd {
	return &RmCmd{flags: flags, app: app}
}

// Register adds the rm and clear commands to the application
func (cmd *RmCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands,
		&cli.Command{
			Name:          "rm",
			Aliases:       []string{"remove"},
			Usage:         "Delete tasks",
			UsageText:     "tasks rm <id>...",
			ShellComplete: TaskIDCompleter(cmd.app),
			Action:        cmd.runRemove,
		},
		&cli.Command{
			Name:      "clear",
			Usage:     "Delete every task",
			UsageText: "tasks clear [--yes]",
			Description: `Deletes all tasks. Asks for confirmation on an interactive terminal;
otherwise --yes is required.`,
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:        "yes",
					Aliases:     []string{"y"},
					Usage:       "skip the confirmation prompt",
					Destination: &cmd.yes,
				},
			},
			Action: cmd.runClear,
		},
	)

	return app
}

func (cmd *RmCmd) runRemove(ctx context.Context, c *cli.Command) error {
	ids, err := parseIDs(c)
	if err != nil {
		return err
	}
	ctx = logging.WithCommand(ctx, "rm")

	for _, id := range ids {
		if err := cmd.app.Tasks.Remove(logging.WithTaskID(ctx, id), id); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Removed %d\n", id)
	}
	return nil
}

func (cmd *RmCmd) runClear(ctx context.Context, _ *cli.Command) error {
	ctx = logging.WithCommand(ctx, "clear")

	if !cmd.yes {
		if !isTTY() {
			return fmt.Errorf("refusing to delete all tasks without --yes")
		}

		confirmed := false
		err := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title("Delete every task?").
					Description("This cannot be undone.").
					Affirmative("Delete").
					Negative("Cancel").
					Value(&confirmed),
			),
		).WithTheme(cliStyles(ctx, cmd.app).FormTheme()).Run()
		if err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return fmt.Errorf("confirm: %w", err)
		}
		if !confirmed {
			return nil
		}
	}

	n, err := cmd.app.Tasks.Clear(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Removed %d task(s)\n", n)
	return nil
}
