package db

import (
	"context"
	"fmt"
	"os"
)

// QuickCheck runs PRAGMA quick_check and returns the reported problems.
// A healthy database returns an empty slice.
func (db *DB) QuickCheck(ctx context.Context) ([]string, error) {
	rows, err := db.conn.QueryContext(ctx, "PRAGMA quick_check")
	if err != nil {
		return nil, fmt.Errorf("quick check: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var problems []string
	for rows.Next() {
		var line string
		if err := rows.Scan(&line); err != nil {
			return nil, fmt.Errorf("scan quick check: %w", err)
		}
		if line != "ok" {
			problems = append(problems, line)
		}
	}
	return problems, rows.Err()
}

// WALSize returns the size of the write-ahead log in bytes, or 0 when absent.
func (db *DB) WALSize() int64 {
	info, err := os.Stat(db.path + "-wal")
	if err != nil {
		return 0
	}
	return info.Size()
}

// Checkpoint folds the write-ahead log into the main database file and
// truncates it.
func (db *DB) Checkpoint(ctx context.Context) error {
	if _, err := db.conn.ExecContext(ctx, "PRAGMA wal_checkpoint(TRUNCATE)"); err != nil {
		return fmt.Errorf("wal checkpoint: %w", err)
	}
	return nil
}
