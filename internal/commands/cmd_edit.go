package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/tasks/internal/app"
	"github.com/colonyops/tasks/internal/core/logging"
	"github.com/colonyops/tasks/internal/core/task"
	"github.com/colonyops/tasks/internal/core/validate"
	"github.com/colonyops/tasks/pkg/executil"
)

type EditCmd struct {
	flags *Flags
	app   *app.App
	exec  executil.Executor

	title       string
	description string
	priority    string
	due         string
	editor      bool
}

// NewEditCmd creates a new edit command
func NewEditCmd(flags *Flags, app *app.App) *EditCmd {
	return &EditCmd{flags: flags, app: app, exec: &executil.RealExecutor{}}
}

// Register adds the edit command to the application
func (cmd *EditCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "edit",
		Aliases:   []string{"e"},
		Usage:     "Change a task's fields",
		UsageText: "tasks edit [options] <id>",
		Description: `Updates the given fields of a task; unset flags leave fields unchanged.
Status is changed with 'tasks done'.

With --editor (or no field flags on an interactive terminal) the description
opens in $VISUAL or $EDITOR.

Examples:
  tasks edit 3 --title "Buy oat milk"
  tasks edit 3 --priority high --due tomorrow
  tasks edit 3 --editor`,
		ShellComplete: TaskIDCompleter(cmd.app),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "title",
				Aliases:     []string{"t"},
				Usage:       "new title",
				Destination: &cmd.title,
			},
			&cli.StringFlag{
				Name:        "description",
				Aliases:     []string{"d"},
				Usage:       "new markdown description",
				Destination: &cmd.description,
			},
			&cli.StringFlag{
				Name:        "priority",
				Aliases:     []string{"p"},
				Usage:       "new priority (low, medium, high)",
				Destination: &cmd.priority,
			},
			&cli.StringFlag{
				Name:        "due",
				Usage:       "new due date (YYYY-MM-DD, RFC 3339, today, tomorrow)",
				Destination: &cmd.due,
			},
			&cli.BoolFlag{
				Name:        "editor",
				Aliases:     []string{"E"},
				Usage:       "edit the description in $EDITOR",
				Destination: &cmd.editor,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *EditCmd) run(ctx context.Context, c *cli.Command) error {
	id, err := parseID(c.Args().First())
	if err != nil {
		return err
	}
	ctx = logging.WithTaskID(logging.WithCommand(ctx, "edit"), id)

	t, err := cmd.app.Tasks.Get(ctx, id)
	if err != nil {
		return err
	}

	changed := false
	if c.IsSet("title") {
		t.Title = cmd.title
		changed = true
	}
	if c.IsSet("description") {
		t.Description = cmd.description
		changed = true
	}
	if c.IsSet("priority") {
		p, err := task.ParsePriority(cmd.priority)
		if err != nil {
			return err
		}
		t.Priority = p
		changed = true
	}
	if c.IsSet("due") {
		due, err := parseDue(cmd.due, time.Now())
		if err != nil {
			return err
		}
		t.DueDate = due
		changed = true
	}

	if cmd.editor || (!changed && isTTY()) {
		desc, err := executil.EditText(ctx, cmd.exec, executil.Streams{
			In:  os.Stdin,
			Out: os.Stdout,
			Err: os.Stderr,
		}, os.Getenv, t.Description)
		if err != nil {
			return fmt.Errorf("edit description: %w", err)
		}
		changed = changed || desc != t.Description
		t.Description = desc
	}

	if !changed {
		fmt.Fprintf(os.Stderr, "Nothing to change\n")
		return nil
	}

	if err := validate.Task(t); err != nil {
		return err
	}

	if err := cmd.app.Tasks.Update(ctx, t); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Updated %d\n", id)
	return nil
}
