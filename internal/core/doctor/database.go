package doctor

import (
	"context"
	"fmt"
	"strings"

	"github.com/colonyops/tasks/internal/data/db"
)

// walWarnSize is the write-ahead log size above which a checkpoint is suggested.
const walWarnSize = 4 << 20

// Database is the subset of *db.DB inspected by DatabaseCheck.
type Database interface {
	Path() string
	QuickCheck(ctx context.Context) ([]string, error)
	MigrationStatus(ctx context.Context) ([]db.MigrationState, error)
	WALSize() int64
	Checkpoint(ctx context.Context) error
}

// DatabaseCheck verifies integrity, schema version and WAL growth.
type DatabaseCheck struct {
	db      Database
	autofix bool
}

// NewDatabaseCheck creates a new database check. When autofix is set an
// oversized WAL is checkpointed.
func NewDatabaseCheck(database Database, autofix bool) *DatabaseCheck {
	return &DatabaseCheck{db: database, autofix: autofix}
}

func (c *DatabaseCheck) Name() string {
	return "Database"
}

func (c *DatabaseCheck) Run(ctx context.Context) Result {
	result := Result{Name: c.Name()}
	result.Items = append(result.Items,
		c.integrity(ctx),
		c.migrations(ctx),
		c.wal(ctx),
	)
	return result
}

func (c *DatabaseCheck) integrity(ctx context.Context) CheckItem {
	problems, err := c.db.QuickCheck(ctx)
	switch {
	case err != nil:
		return CheckItem{Label: "integrity", Status: StatusFail, Detail: err.Error()}
	case len(problems) > 0:
		return CheckItem{
			Label:  "integrity",
			Status: StatusFail,
			Detail: fmt.Sprintf("%d problem(s): %s", len(problems), problems[0]),
		}
	default:
		return CheckItem{Label: "integrity", Status: StatusPass, Detail: c.db.Path()}
	}
}

func (c *DatabaseCheck) migrations(ctx context.Context) CheckItem {
	states, err := c.db.MigrationStatus(ctx)
	if err != nil {
		return CheckItem{Label: "schema", Status: StatusFail, Detail: err.Error()}
	}

	var pending []string
	latest := 0
	for _, s := range states {
		if s.Applied {
			latest = max(latest, s.Version)
			continue
		}
		pending = append(pending, fmt.Sprintf("%04d_%s", s.Version, s.Name))
	}

	if len(pending) > 0 {
		return CheckItem{
			Label:  "schema",
			Status: StatusWarn,
			Detail: "pending migrations: " + strings.Join(pending, ", "),
		}
	}
	return CheckItem{Label: "schema", Status: StatusPass, Detail: fmt.Sprintf("version %04d", latest)}
}

func (c *DatabaseCheck) wal(ctx context.Context) CheckItem {
	size := c.db.WALSize()
	if size <= walWarnSize {
		return CheckItem{Label: "wal", Status: StatusPass, Detail: fmt.Sprintf("%d KiB", size>>10)}
	}

	item := CheckItem{
		Label:   "wal",
		Status:  StatusWarn,
		Detail:  fmt.Sprintf("%d KiB, checkpoint recommended", size>>10),
		Fixable: true,
	}
	if !c.autofix {
		return item
	}

	if err := c.db.Checkpoint(ctx); err != nil {
		item.Detail = "checkpoint failed: " + err.Error()
		return item
	}
	return CheckItem{Label: "wal", Status: StatusPass, Detail: "checkpointed", Fixed: true}
}
