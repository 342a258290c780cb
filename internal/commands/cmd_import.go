package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/hay-kot/criterio"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/tasks/internal/app"
	"github.com/colonyops/tasks/internal/core/logging"
	"github.com/colonyops/tasks/internal/core/task"
	"github.com/colonyops/tasks/internal/core/validate"
	"github.com/colonyops/tasks/pkg/iojson"
)

type ImportCmd struct {
	flags  *Flags
	app    *app.App
	reader iojson.FileReader[ImportInput]
}

// NewImportCmd creates a new import command
func NewImportCmd(flags *Flags, app *app.App) *ImportCmd {
	return &ImportCmd{flags: flags, app: app}
}

// Register adds the import command to the application
func (cmd *ImportCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "import",
		Usage:     "Create tasks from JSON",
		UsageText: "tasks import [-f file.json]",
		Description: `Creates tasks from a JSON document read from --file or piped stdin.

The whole document is validated before anything is written. Results are
written as JSON lines, one per task.

Input schema:
  {
    "tasks": [
      {
        "title": "Buy milk",            // required
        "description": "two litres",    // optional, markdown
        "priority": "high",             // optional: low, medium, high
        "due_date": "2025-06-01T09:00:00Z", // optional RFC 3339
        "status": "completed"           // optional: pending, completed
      }
    ]
  }`,
		Flags: []cli.Flag{
			cmd.reader.Flag(),
		},
		Action: cmd.run,
	})

	return app
}

// ImportInput is the JSON input schema for tasks import.
type ImportInput struct {
	Tasks []ImportTask `json:"tasks"`
}

// ImportTask defines a single task to create.
type ImportTask struct {
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Priority    string    `json:"priority,omitempty"`
	DueDate     time.Time `json:"due_date,omitzero"`
	Status      string    `json:"status,omitempty"`
}

// ImportResult is written for each input task.
type ImportResult struct {
	Title string `json:"title"`
	ID    int64  `json:"id,omitempty"`
	Error string `json:"error,omitempty"`
}

// Validate checks the import input for errors using criterio.
func (in ImportInput) Validate() error {
	if len(in.Tasks) == 0 {
		return criterio.NewFieldErrors("tasks", fmt.Errorf("array is empty"))
	}

	var errs criterio.FieldErrorsBuilder
	for i, t := range in.Tasks {
		field := fmt.Sprintf("tasks[%d]", i)

		if err := validate.Title(t.Title); err != nil {
			errs = errs.Append(field+".title", err)
		}
		if t.Priority != "" {
			if _, err := task.ParsePriority(t.Priority); err != nil {
				errs = errs.Append(field+".priority", err)
			}
		}
		if t.Status != "" {
			if _, err := task.ParseStatus(t.Status); err != nil {
				errs = errs.Append(field+".status", err)
			}
		}
	}

	return errs.ToError()
}

// toTask applies the configured defaults for missing fields. Call after Validate.
func (it ImportTask) toTask(defaults func(title string, now time.Time) task.Task, now time.Time) task.Task {
	t := defaults(it.Title, now)
	t.Description = it.Description
	if p, err := task.ParsePriority(it.Priority); err == nil {
		t.Priority = p
	}
	if !it.DueDate.IsZero() {
		t.DueDate = it.DueDate
	}
	return t
}

func (cmd *ImportCmd) run(ctx context.Context, c *cli.Command) error {
	ctx = logging.WithCommand(ctx, "import")

	input, err := cmd.reader.Read()
	if err != nil {
		return err
	}
	if err := input.Validate(); err != nil {
		return fmt.Errorf("invalid input: %w", err)
	}

	now := time.Now()
	results := make([]ImportResult, 0, len(input.Tasks))
	failed := 0

	for _, it := range input.Tasks {
		res := ImportResult{Title: it.Title}

		created, err := cmd.app.Tasks.Create(ctx, it.toTask(cmd.flags.Config.Defaults.NewTask, now))
		if err == nil && it.Status != "" {
			// Create always inserts pending tasks.
			status, _ := task.ParseStatus(it.Status)
			if status != task.StatusPending {
				err = cmd.app.Tasks.SetStatus(ctx, created.ID, status)
			}
		}

		if err != nil {
			res.Error = err.Error()
			failed++
		}
		res.ID = created.ID
		results = append(results, res)
	}

	if err := iojson.WriteLines(c.Root().Writer, results); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Imported %d of %d task(s)\n", len(results)-failed, len(results))
	if failed > 0 {
		return cli.Exit("", 1)
	}
	return nil
}
