package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/tasks/internal/app"
	"github.com/colonyops/tasks/internal/core/logging"
	"github.com/colonyops/tasks/internal/core/task"
)

type DoneCmd struct {
	flags *Flags
	app   *app.App

	undo bool
}

// NewDoneCmd creates a new done command
func NewDoneCmd(flags *Flags, app *app.App) *DoneCmd {
	return &DoneCmd{flags: flags, app: app}
}

// Register adds the done command to the application
func (cmd *DoneCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "done",
		Usage:     "Mark tasks completed",
		UsageText: "tasks done [--undo] <id>...",
		Description: `Marks each task completed. With --undo the tasks return to pending.

Examples:
  tasks done 3
  tasks done 3 4 7
  tasks done --undo 3`,
		ShellComplete: TaskIDCompleter(cmd.app, task.StatusPending),
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "undo",
				Aliases:     []string{"u"},
				Usage:       "mark the tasks pending again",
				Destination: &cmd.undo,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *DoneCmd) run(ctx context.Context, c *cli.Command) error {
	ids, err := parseIDs(c)
	if err != nil {
		return err
	}
	ctx = logging.WithCommand(ctx, "done")

	status := task.StatusCompleted
	if cmd.undo {
		status = task.StatusPending
	}

	for _, id := range ids {
		if err := cmd.app.Tasks.SetStatus(logging.WithTaskID(ctx, id), id, status); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "%d %s\n", id, status)
	}

	return nil
}
