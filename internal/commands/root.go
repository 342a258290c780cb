package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/tasks/internal/app"
)

// Root builds the full command tree bound to flags and a. Lifecycle hooks
// and the version are left to the caller, so docgen can render the same tree
// without opening a database.
func Root(flags *Flags, a *app.App) *cli.Command {
	root := &cli.Command{
		Name:      "tasks",
		Usage:     "Track tasks from the terminal",
		UsageText: "tasks [global options] command [command options]",
		Description: `Tasks is an offline task manager backed by a local SQLite database.

Tasks are grouped into pending and completed sections with an overall
progress figure. Descriptions are markdown.

Run 'tasks' with no arguments to open the interactive task list.
Run 'tasks add <title>' to create a task from the shell.`,
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("TASKS_LOG_LEVEL"),
				Value:       "info",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file",
				Sources:     cli.EnvVars("TASKS_LOG_FILE"),
				Value:       DefaultLogFile(),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("TASKS_CONFIG"),
				Value:       DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "data-dir",
				Usage:       "path to data directory",
				Sources:     cli.EnvVars("TASKS_DATA_DIR"),
				Value:       DefaultDataDir(),
				Destination: &flags.DataDir,
			},
		},
	}

	tuiCmd := NewTuiCmd(flags, a)

	root = NewAddCmd(flags, a).Register(root)
	root = NewLsCmd(flags, a).Register(root)
	root = NewShowCmd(flags, a).Register(root)
	root = NewDoneCmd(flags, a).Register(root)
	root = NewEditCmd(flags, a).Register(root)
	root = NewRmCmd(flags, a).Register(root)
	root = NewImportCmd(flags, a).Register(root)
	root = NewThemeCmd(flags, a).Register(root)
	root = NewConfigCmd(flags, a).Register(root)
	root = NewDoctorCmd(flags, a).Register(root)

	// Register TUI flags on root command
	root.Flags = append(root.Flags, tuiCmd.Flags()...)

	// Set TUI as default action when no subcommand is provided
	root.Action = func(ctx context.Context, c *cli.Command) error {
		if c.Args().Len() > 0 {
			return fmt.Errorf("unknown command %q. Run 'tasks --help' for usage", c.Args().First())
		}
		return tuiCmd.Run(ctx, c)
	}

	return root
}
