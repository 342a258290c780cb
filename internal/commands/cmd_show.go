package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/tasks/internal/app"
	"github.com/colonyops/tasks/internal/core/logging"
	"github.com/colonyops/tasks/internal/core/styles"
	"github.com/colonyops/tasks/internal/core/task"
	"github.com/colonyops/tasks/pkg/iojson"
)

type ShowCmd struct {
	flags *Flags
	app   *app.App

	jsonOutput bool
	raw        bool
}

// NewShowCmd creates a new show command
func NewShowCmd(flags *Flags, app *app.App) *ShowCmd {
	return &ShowCmd{flags: flags, app: app}
}

// Register adds the show command to the application
func (cmd *ShowCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:          "show",
		Usage:         "Show a task with its rendered description",
		UsageText:     "tasks show [--json] [--raw] <id>",
		ShellComplete: TaskIDCompleter(cmd.app),
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output the task as JSON",
				Destination: &cmd.jsonOutput,
			},
			&cli.BoolFlag{
				Name:        "raw",
				Usage:       "print the description without markdown rendering",
				Destination: &cmd.raw,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ShowCmd) run(ctx context.Context, c *cli.Command) error {
	id, err := parseID(c.Args().First())
	if err != nil {
		return err
	}
	ctx = logging.WithTaskID(logging.WithCommand(ctx, "show"), id)

	t, err := cmd.app.Tasks.Get(ctx, id)
	if err != nil {
		return err
	}

	out := c.Root().Writer
	if cmd.jsonOutput {
		return iojson.WriteWith(out, os.Stderr, t)
	}

	st := cliStyles(ctx, cmd.app)

	icon := styles.IconTodo
	if t.Status == task.StatusCompleted {
		icon = styles.IconDone
	}

	_, _ = fmt.Fprintf(out, "%s %s %s\n", icon, st.TextForegroundBold.Render(t.Title), st.TextMuted.Render(fmt.Sprintf("#%d", t.ID)))
	_, _ = fmt.Fprintf(out, "  %s  %s  %s\n",
		st.TextSecondary.Render(t.Status.Label()),
		st.Priority(t.Priority).Render(t.Priority.String()),
		st.DueDate.Render(styles.IconCalendar+" "+t.DueDate.Format(cmd.flags.Config.TUI.DateFormat)))

	if strings.TrimSpace(t.Description) == "" {
		return nil
	}

	_, _ = fmt.Fprintln(out)
	if cmd.raw {
		_, _ = fmt.Fprintln(out, t.Description)
		return nil
	}

	rendered, err := renderMarkdown(st, t.Description, termWidth(80))
	if err != nil {
		return err
	}
	_, _ = fmt.Fprint(out, rendered)
	return nil
}

func renderMarkdown(st styles.Styles, md string, width int) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithStyles(st.Glamour()),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("create markdown renderer: %w", err)
	}

	out, err := r.Render(md)
	if err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return out, nil
}
