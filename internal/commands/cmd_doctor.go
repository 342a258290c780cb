package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/tasks/internal/app"
	"github.com/colonyops/tasks/internal/core/doctor"
	"github.com/colonyops/tasks/internal/core/logging"
	"github.com/colonyops/tasks/pkg/iojson"
)

type DoctorCmd struct {
	flags   *Flags
	app     *app.App
	format  string
	autofix bool
}

func NewDoctorCmd(flags *Flags, app *app.App) *DoctorCmd {
	return &DoctorCmd{flags: flags, app: app}
}

func (cmd *DoctorCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:        "doctor",
		Usage:       "Run health checks on your tasks setup",
		UsageText:   "tasks doctor [options]",
		Description: "Runs diagnostic checks on configuration, the database file, and stored tasks.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "format",
				Usage:       "output format (text, json)",
				Value:       "text",
				Destination: &cmd.format,
			},
			&cli.BoolFlag{
				Name:        "autofix",
				Usage:       "automatically fix issues (e.g., checkpoint an oversized WAL)",
				Destination: &cmd.autofix,
			},
		},
		Action: cmd.run,
	})
	return app
}

func (cmd *DoctorCmd) run(ctx context.Context, c *cli.Command) error {
	ctx = logging.WithCommand(ctx, "doctor")
	results := cmd.app.Doctor.RunChecks(ctx, cmd.flags.ConfigPath, cmd.autofix)

	if cmd.format == "json" {
		return cmd.outputJSON(c, results)
	}

	return cmd.outputText(ctx, results)
}

func (cmd *DoctorCmd) outputJSON(c *cli.Command, results []doctor.Result) error {
	passed, warned, failed := doctor.Summary(results)

	out := struct {
		Healthy bool            `json:"healthy"`
		Summary summaryJSON     `json:"summary"`
		Checks  []doctor.Result `json:"checks"`
	}{
		Healthy: failed == 0,
		Summary: summaryJSON{Passed: passed, Warned: warned, Failed: failed},
		Checks:  results,
	}

	if err := iojson.WriteWith(c.Root().Writer, os.Stderr, out); err != nil {
		return err
	}
	if failed > 0 {
		return cli.Exit("", 1)
	}
	return nil
}

type summaryJSON struct {
	Passed int `json:"passed"`
	Warned int `json:"warned"`
	Failed int `json:"failed"`
}

func (cmd *DoctorCmd) outputText(ctx context.Context, results []doctor.Result) error {
	st := cliStyles(ctx, cmd.app)
	w := os.Stderr
	divider := st.TextMuted.Render(strings.Repeat("─", 40))

	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, st.TextPrimaryBold.Render("Tasks Doctor"))
	_, _ = fmt.Fprintln(w, divider)
	_, _ = fmt.Fprintln(w)

	for _, result := range results {
		_, _ = fmt.Fprintln(w, st.TextForegroundBold.Render(result.Name))

		for _, item := range result.Items {
			var detail string
			if item.Detail != "" {
				detail = " " + st.TextMuted.Render(item.Detail)
			}
			if item.Fixed {
				detail += " " + st.TextSuccess.Render("(fixed)")
			}

			var icon string
			switch item.Status {
			case doctor.StatusPass:
				icon = st.TextSuccess.Render("✔")
			case doctor.StatusWarn:
				icon = st.TextWarning.Render("●")
			case doctor.StatusFail:
				icon = st.TextError.Render("✘")
			}

			_, _ = fmt.Fprintf(w, "  %s %s%s\n", icon, item.Label, detail)
		}

		_, _ = fmt.Fprintln(w)
	}

	passed, warned, failed := doctor.Summary(results)
	summary := fmt.Sprintf("%s  %s  %s",
		st.TextSuccess.Render(fmt.Sprintf("%d passed", passed)),
		st.TextWarning.Render(fmt.Sprintf("%d warnings", warned)),
		st.TextError.Render(fmt.Sprintf("%d failed", failed)),
	)
	_, _ = fmt.Fprintln(w, summary)

	if !cmd.autofix {
		fixable := doctor.CountFixable(results)
		if fixable > 0 {
			_, _ = fmt.Fprintln(w)
			hint := st.TextMuted.Render(fmt.Sprintf("Run 'tasks doctor --autofix' to fix %d issue(s)", fixable))
			_, _ = fmt.Fprintln(w, hint)
		}
	}

	if failed > 0 {
		return cli.Exit("", 1)
	}

	return nil
}
