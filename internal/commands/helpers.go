package commands

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/colonyops/tasks/internal/app"
	"github.com/colonyops/tasks/internal/core/styles"
)

// dueLayout is the date format accepted by --due flags.
const dueLayout = "2006-01-02"

// cliStyles builds styles for the stored theme preference. The CLI has no
// background query, so the system theme renders with the dark palette.
func cliStyles(ctx context.Context, a *app.App) styles.Styles {
	theme, err := a.Settings.Theme(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("failed to read theme preference")
	}
	return styles.New(styles.PaletteFor(theme, true))
}

// isTTY reports whether stdin and stdout are both terminals.
func isTTY() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// termWidth returns the stdout width, or fallback when it is not a terminal.
func termWidth(fallback int) int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return fallback
	}
	return w
}

// parseIDs parses every positional argument as a task id.
func parseIDs(c *cli.Command) ([]int64, error) {
	if !c.Args().Present() {
		return nil, fmt.Errorf("task id required")
	}

	ids := make([]int64, 0, c.Args().Len())
	for _, arg := range c.Args().Slice() {
		id, err := parseID(arg)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func parseID(s string) (int64, error) {
	// Completions are offered as "<id>:<title>".
	s, _, _ = strings.Cut(strings.TrimPrefix(s, "#"), ":")
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid task id %q", s)
	}
	return id, nil
}

// parseDue accepts YYYY-MM-DD in the local zone, RFC 3339, "today" or
// "tomorrow". Date-only values keep the clock time of now.
func parseDue(s string, now time.Time) (time.Time, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "today":
		return now, nil
	case "tomorrow":
		return now.AddDate(0, 0, 1), nil
	}

	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}

	day, err := time.ParseInLocation(dueLayout, strings.TrimSpace(s), now.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid due date %q: use YYYY-MM-DD", s)
	}
	return time.Date(day.Year(), day.Month(), day.Day(),
		now.Hour(), now.Minute(), now.Second(), 0, now.Location()), nil
}
