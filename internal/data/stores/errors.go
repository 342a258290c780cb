package stores

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/colonyops/tasks/internal/data/db"
)

const (
	busyRetries  = 3
	busyInitWait = 25 * time.Millisecond
)

// isBusyError returns true if the error is a SQLITE_BUSY or SQLITE_LOCKED error.
func isBusyError(err error) bool {
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		code := sqliteErr.Code() & 0xff
		return code == sqlite3.SQLITE_BUSY || code == sqlite3.SQLITE_LOCKED
	}
	return false
}

// IsCorruptionError returns true if the error indicates database corruption.
func IsCorruptionError(err error) bool {
	if err == nil {
		return false
	}

	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		code := sqliteErr.Code() & 0xff
		return code == sqlite3.SQLITE_CORRUPT || code == sqlite3.SQLITE_NOTADB
	}

	msg := err.Error()
	return strings.Contains(msg, "database disk image is malformed") ||
		strings.Contains(msg, "file is not a database")
}

// IsNotFoundError returns true if the error is a "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// withBusyRetry retries fn while SQLite reports the database as busy. The
// connection busy timeout handles most contention; this covers the cases
// where SQLite returns BUSY immediately (WAL checkpoints, lock upgrades).
func withBusyRetry(ctx context.Context, fn func() error) error {
	wait := busyInitWait
	var err error
	for i := range busyRetries {
		err = fn()
		if err == nil || !isBusyError(err) {
			return err
		}

		if i < busyRetries-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
			wait *= 2
		}
	}
	return err
}

// RecoverFromCorruption moves a corrupted database (and its WAL/SHM files)
// aside so the next Open starts from an empty schema.
func RecoverFromCorruption(dataDir string) (string, error) {
	dbPath := filepath.Join(dataDir, db.FileName)
	backupPath := fmt.Sprintf("%s.corrupt.%s", dbPath, time.Now().Format("20060102-150405"))

	if err := os.Rename(dbPath, backupPath); err != nil && !os.IsNotExist(err) {
		return "", fmt.Errorf("failed to backup corrupted database: %w", err)
	}

	// Orphaned WAL/SHM files would be replayed against the fresh database.
	for _, suffix := range []string{"-wal", "-shm"} {
		src := dbPath + suffix
		if _, err := os.Stat(src); err != nil {
			continue
		}
		if err := os.Rename(src, backupPath+suffix); err != nil {
			if delErr := os.Remove(src); delErr != nil {
				return "", fmt.Errorf("failed to backup or remove %s file: %w", suffix, err)
			}
		}
	}

	return backupPath, nil
}
