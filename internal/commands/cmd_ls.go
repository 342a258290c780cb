package commands

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/tasks/internal/app"
	"github.com/colonyops/tasks/internal/core/logging"
	"github.com/colonyops/tasks/internal/core/task"
	"github.com/colonyops/tasks/internal/core/tasklist"
	"github.com/colonyops/tasks/pkg/iojson"
)

type LsCmd struct {
	flags *Flags
	app   *app.App

	sortBy      string
	status      string
	match       string
	jsonOutput  bool
	jsonlOutput bool
}

// NewLsCmd creates a new ls command
func NewLsCmd(flags *Flags, app *app.App) *LsCmd {
	return &LsCmd{flags: flags, app: app}
}

// Register adds the ls command to the application
func (cmd *LsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "ls",
		Aliases:   []string{"list"},
		Usage:     "List tasks grouped by status",
		UsageText: "tasks ls [--sort <sort>] [--status <status>] [--match <glob>] [--json|--jsonl]",
		Description: `Displays tasks grouped into pending and completed sections, sorted within
each section, followed by the completion progress.

Use --json for the grouped overview as a single document, or --jsonl for one
task per line.

Examples:
  tasks ls
  tasks ls --sort priority --status pending
  tasks ls --match "*milk*" --jsonl`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "sort",
				Aliases:     []string{"s"},
				Usage:       "sort within sections (due_date, alphabet, priority); defaults to tui.default_sort",
				Destination: &cmd.sortBy,
			},
			&cli.StringFlag{
				Name:        "status",
				Usage:       "only show one section (pending, completed)",
				Destination: &cmd.status,
			},
			&cli.StringFlag{
				Name:        "match",
				Aliases:     []string{"m"},
				Usage:       "glob matched against titles, case-insensitive",
				Destination: &cmd.match,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output the grouped overview as JSON",
				Destination: &cmd.jsonOutput,
			},
			&cli.BoolFlag{
				Name:        "jsonl",
				Usage:       "output one task per line as JSON",
				Destination: &cmd.jsonlOutput,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *LsCmd) run(ctx context.Context, c *cli.Command) error {
	ctx = logging.WithCommand(ctx, "ls")

	sortBy := cmd.flags.Config.TUI.SortBy()
	if cmd.sortBy != "" {
		s, err := task.ParseSortBy(cmd.sortBy)
		if err != nil {
			return err
		}
		sortBy = s
	}

	var status task.Status
	if cmd.status != "" {
		s, err := task.ParseStatus(cmd.status)
		if err != nil {
			return err
		}
		status = s
	}

	matcher, err := tasklist.NewMatcher(cmd.match)
	if err != nil {
		return err
	}

	tasks, err := cmd.app.Tasks.List(ctx)
	if err != nil {
		return fmt.Errorf("list tasks: %w", err)
	}

	overview := tasklist.Aggregate(matcher.Filter(tasks), sortBy, cmd.flags.Config.TUI.Expand())
	overview.Progress = tasklist.ProgressOf(tasks)
	if status != "" {
		overview = onlySection(overview, status)
	}

	out := c.Root().Writer

	switch {
	case cmd.jsonOutput:
		return iojson.WriteWith(out, os.Stderr, overview)
	case cmd.jsonlOutput:
		var rows []task.Task
		for _, sec := range overview.Sections {
			rows = append(rows, sec.Tasks...)
		}
		return iojson.WriteLines(out, rows)
	}

	if overview.Empty() {
		fmt.Fprintf(os.Stderr, "No tasks found\n")
		return nil
	}

	st := cliStyles(ctx, cmd.app)
	dateFormat := cmd.flags.Config.TUI.DateFormat

	for i, sec := range overview.Sections {
		if i > 0 {
			_, _ = fmt.Fprintln(out)
		}
		_, _ = fmt.Fprintf(out, "%s %s\n",
			st.SectionHeader.Render(sec.Label()),
			st.SectionCount.Render(fmt.Sprintf("(%d)", sec.Count)))

		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		_, _ = fmt.Fprintln(w, "ID\tPRIORITY\tDUE\tTITLE")
		for _, t := range sec.Tasks {
			_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%s\n",
				t.ID, strings.ToLower(t.Priority.String()), t.DueDate.Format(dateFormat), t.Title)
		}
		_ = w.Flush()
	}

	if p := overview.Progress; p != nil {
		fmt.Fprintf(os.Stderr, "\n%d/%d completed (%.0f%%)\n", p.Completed, p.Total, p.Percent)
	}

	return nil
}

// onlySection drops every section but status. Progress still covers all tasks.
func onlySection(o tasklist.Overview, status task.Status) tasklist.Overview {
	sec, ok := o.Section(status)
	if !ok {
		o.Sections = nil
		return o
	}
	o.Sections = []tasklist.Section{sec}
	return o
}
