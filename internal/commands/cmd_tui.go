package commands

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/tasks/internal/app"
	"github.com/colonyops/tasks/internal/core/logging"
	"github.com/colonyops/tasks/internal/core/task"
	"github.com/colonyops/tasks/internal/core/tasklist"
	"github.com/colonyops/tasks/internal/tui"
)

type TuiCmd struct {
	flags *Flags
	app   *app.App

	sortBy string
	expand string
	match  string
}

// NewTuiCmd creates a new tui command
func NewTuiCmd(flags *Flags, app *app.App) *TuiCmd {
	return &TuiCmd{
		flags: flags,
		app:   app,
	}
}

// Flags returns the TUI-specific flags for registration on the root command
func (cmd *TuiCmd) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "sort",
			Usage:       "initial sort (due_date, alphabet, priority); defaults to tui.default_sort",
			Local:       true,
			Destination: &cmd.sortBy,
		},
		&cli.StringFlag{
			Name:        "expand",
			Usage:       "section expanded on start (pending, completed); defaults to tui.expand_status",
			Local:       true,
			Destination: &cmd.expand,
		},
		&cli.StringFlag{
			Name:        "match",
			Usage:       "initial title glob",
			Local:       true,
			Destination: &cmd.match,
		},
	}
}

// Run executes the TUI. Exported for use as default command.
func (cmd *TuiCmd) Run(ctx context.Context, c *cli.Command) error {
	return cmd.run(ctx, c)
}

func (cmd *TuiCmd) run(ctx context.Context, _ *cli.Command) error {
	cfg := cmd.app.Config

	opts := tui.Opts{
		SortBy:   cfg.TUI.SortBy(),
		FilterBy: cfg.TUI.Expand(),
		Match:    cmd.match,
	}
	if cmd.sortBy != "" {
		s, err := task.ParseSortBy(cmd.sortBy)
		if err != nil {
			return err
		}
		opts.SortBy = s
	}
	if cmd.expand != "" {
		s, err := task.ParseStatus(cmd.expand)
		if err != nil {
			return err
		}
		opts.FilterBy = s
	}
	if _, err := tasklist.NewMatcher(cmd.match); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(logging.WithCommand(ctx, "tui"))
	defer cancel()

	watcher, err := app.NewDBWatcher(cmd.app.DB.Path(), cmd.app.Tasks, cfg.TUI.WatchDebounce, log.Logger)
	if err != nil {
		// The TUI still works without cross-process refresh.
		log.Warn().Err(err).Msg("database watcher disabled")
	} else {
		go watcher.Run(ctx)
	}

	deps := tui.Deps{
		Tasks:  cmd.app.Tasks,
		Prefs:  cmd.app.Settings,
		Bus:    cmd.app.Bus,
		Config: cfg,
		Log:    log.Logger,
	}

	if console := cmd.flags.Console; console != nil {
		console.Hold()
		defer func() { _ = console.Release() }()
	}

	p := tea.NewProgram(tui.New(ctx, deps, opts))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}

	return nil
}
