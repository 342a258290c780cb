package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/tasks/internal/app"
	"github.com/colonyops/tasks/internal/core/task"
)

// TaskIDCompleter returns a ShellCompleteFunc that suggests task ids as
// positional completions, with the title as the description. Only tasks in
// one of the given statuses are offered; no statuses means all of them.
//
// When the user's last typed argument starts with "-", it falls back to the
// default flag completion behavior.
func TaskIDCompleter(a *app.App, statuses ...task.Status) cli.ShellCompleteFunc {
	return func(ctx context.Context, cmd *cli.Command) {
		if args := cmd.Args(); args.Present() {
			last := args.Slice()[args.Len()-1]
			if len(last) > 0 && last[0] == '-' {
				cli.DefaultCompleteWithFlags(ctx, cmd)
				return
			}
		}

		tasks, err := a.Tasks.List(ctx)
		if err != nil {
			return
		}

		w := cmd.Root().Writer
		for _, t := range tasks {
			if !statusIn(t.Status, statuses) {
				continue
			}
			_, _ = fmt.Fprintf(w, "%d:%s\n", t.ID, t.Title)
		}
	}
}

func statusIn(s task.Status, statuses []task.Status) bool {
	if len(statuses) == 0 {
		return true
	}
	for _, want := range statuses {
		if s == want {
			return true
		}
	}
	return false
}
