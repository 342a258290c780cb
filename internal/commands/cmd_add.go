package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/tasks/internal/app"
	"github.com/colonyops/tasks/internal/core/logging"
	"github.com/colonyops/tasks/internal/core/styles"
	"github.com/colonyops/tasks/internal/core/task"
	"github.com/colonyops/tasks/internal/core/validate"
	"github.com/colonyops/tasks/pkg/iojson"
)

type AddCmd struct {
	flags *Flags
	app   *app.App

	description string
	priority    string
	due         string
	jsonOutput  bool
}

// NewAddCmd creates a new add command
func NewAddCmd(flags *Flags, app *app.App) *AddCmd {
	return &AddCmd{flags: flags, app: app}
}

// Register adds the add command to the application
func (cmd *AddCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "add",
		Aliases:   []string{"a"},
		Usage:     "Create a task",
		UsageText: "tasks add [options] <title...>",
		Description: `Creates a pending task. The remaining arguments are joined into the title.

Without a title on an interactive terminal, a form prompts for every field.

Examples:
  tasks add Buy milk
  tasks add --priority high --due 2025-06-01 "File taxes"
  tasks add                                    # interactive form`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "description",
				Aliases:     []string{"d"},
				Usage:       "markdown description",
				Destination: &cmd.description,
			},
			&cli.StringFlag{
				Name:        "priority",
				Aliases:     []string{"p"},
				Usage:       "priority (low, medium, high); defaults to defaults.priority",
				Destination: &cmd.priority,
			},
			&cli.StringFlag{
				Name:        "due",
				Usage:       "due date (YYYY-MM-DD, RFC 3339, today, tomorrow)",
				Destination: &cmd.due,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "print the created task as JSON",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *AddCmd) run(ctx context.Context, c *cli.Command) error {
	ctx = logging.WithCommand(ctx, "add")
	now := time.Now()

	t := cmd.flags.Config.Defaults.NewTask(strings.Join(c.Args().Slice(), " "), now)
	t.Description = cmd.description

	if cmd.priority != "" {
		p, err := task.ParsePriority(cmd.priority)
		if err != nil {
			return err
		}
		t.Priority = p
	}

	if cmd.due != "" {
		due, err := parseDue(cmd.due, now)
		if err != nil {
			return err
		}
		t.DueDate = due
	}

	if t.IsBlank() {
		if !isTTY() {
			return validate.ErrTitleRequired
		}
		var err error
		t, err = cmd.runForm(ctx, t)
		if err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return fmt.Errorf("form: %w", err)
		}
	}

	if err := validate.Task(t); err != nil {
		return err
	}

	created, err := cmd.app.Tasks.Create(ctx, t)
	if err != nil {
		return fmt.Errorf("create task: %w", err)
	}

	if cmd.jsonOutput {
		return iojson.WriteWith(c.Root().Writer, os.Stderr, created)
	}

	_, _ = fmt.Fprintf(c.Root().Writer, "%d\n", created.ID)
	return nil
}

func (cmd *AddCmd) runForm(ctx context.Context, t task.Task) (task.Task, error) {
	st := cliStyles(ctx, cmd.app)

	fmt.Println(st.Header.Render(styles.IconCheckList + "New task"))
	fmt.Println()

	due := t.DueDate.Format(dueLayout)
	priority := t.Priority

	options := make([]huh.Option[task.Priority], 0, len(task.Priorities))
	for _, p := range task.Priorities {
		options = append(options, huh.NewOption(p.String(), p))
	}

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Validate(validate.Title).
				Value(&t.Title),
			huh.NewText().
				Title("Description").
				Description("Markdown is rendered in the TUI and by 'tasks show'").
				Value(&t.Description),
			huh.NewSelect[task.Priority]().
				Title("Priority").
				Options(options...).
				Value(&priority),
			huh.NewInput().
				Title("Due").
				Description("YYYY-MM-DD").
				Validate(func(s string) error {
					_, err := parseDue(s, t.DueDate)
					return err
				}).
				Value(&due),
		),
	).WithTheme(st.FormTheme()).Run()
	if err != nil {
		return t, err
	}

	t.Priority = priority
	t.DueDate, err = parseDue(due, t.DueDate)
	return t, err
}
