package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"time"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migration is one versioned schema change with its inverse.
type Migration struct {
	Version int
	Name    string
	UpSQL   string
	DownSQL string
}

// MigrationState pairs a migration with whether it has been applied.
type MigrationState struct {
	Migration
	Applied bool
}

type migrator struct {
	conn *sql.DB
	fsys fs.FS
}

func newMigrator(conn *sql.DB) *migrator {
	return &migrator{conn: conn, fsys: migrationsFS}
}

// Up applies every pending migration in version order.
func (m *migrator) Up(ctx context.Context) error {
	migrations, applied, err := m.load(ctx)
	if err != nil {
		return err
	}

	for _, mig := range migrations {
		if applied[mig.Version] {
			continue
		}

		slog.Info("applying migration", "version", mig.Version, "name", mig.Name)
		err := m.inTx(ctx, mig.UpSQL,
			"INSERT INTO schema_migrations (version, name, applied_at) VALUES (?, ?, ?)",
			mig.Version, mig.Name, time.Now().UnixNano(),
		)
		if err != nil {
			return fmt.Errorf("migration %04d (%s): %w", mig.Version, mig.Name, err)
		}
	}

	return nil
}

// Down reverts the last n applied migrations, newest first.
func (m *migrator) Down(ctx context.Context, n int) error {
	if n <= 0 {
		return fmt.Errorf("n must be positive, got %d", n)
	}

	migrations, applied, err := m.load(ctx)
	if err != nil {
		return err
	}

	var toRevert []Migration
	for _, mig := range slices.Backward(migrations) {
		if applied[mig.Version] {
			toRevert = append(toRevert, mig)
		}
	}

	if n > len(toRevert) {
		return fmt.Errorf("requested %d down migrations but only %d are applied", n, len(toRevert))
	}

	for _, mig := range toRevert[:n] {
		slog.Info("reverting migration", "version", mig.Version, "name", mig.Name)
		err := m.inTx(ctx, mig.DownSQL, "DELETE FROM schema_migrations WHERE version = ?", mig.Version)
		if err != nil {
			return fmt.Errorf("revert migration %04d (%s): %w", mig.Version, mig.Name, err)
		}
	}

	return nil
}

// Status lists every known migration and whether it has been applied.
func (m *migrator) Status(ctx context.Context) ([]MigrationState, error) {
	migrations, applied, err := m.load(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]MigrationState, len(migrations))
	for i, mig := range migrations {
		out[i] = MigrationState{Migration: mig, Applied: applied[mig.Version]}
	}
	return out, nil
}

// MigrateDown reverts the last n applied migrations on db.
func (db *DB) MigrateDown(ctx context.Context, n int) error {
	return newMigrator(db.conn).Down(ctx, n)
}

// MigrationStatus reports which embedded migrations have been applied to db.
func (db *DB) MigrationStatus(ctx context.Context) ([]MigrationState, error) {
	return newMigrator(db.conn).Status(ctx)
}

func (m *migrator) load(ctx context.Context) ([]Migration, map[int]bool, error) {
	migrations, err := loadMigrations(m.fsys)
	if err != nil {
		return nil, nil, fmt.Errorf("loading migrations: %w", err)
	}

	_, err = m.conn.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version    INTEGER PRIMARY KEY,
			name       TEXT NOT NULL,
			applied_at INTEGER NOT NULL
		)
	`)
	if err != nil {
		return nil, nil, fmt.Errorf("creating schema_migrations table: %w", err)
	}

	rows, err := m.conn.QueryContext(ctx, "SELECT version FROM schema_migrations")
	if err != nil {
		return nil, nil, fmt.Errorf("querying applied versions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	applied := make(map[int]bool)
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err != nil {
			return nil, nil, fmt.Errorf("scanning version: %w", err)
		}
		applied[v] = true
	}

	return migrations, applied, rows.Err()
}

// inTx runs a schema statement and its bookkeeping statement atomically.
func (m *migrator) inTx(ctx context.Context, schemaSQL, bookkeeping string, args ...any) error {
	tx, err := m.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("executing SQL: %w", err)
	}

	if _, err := tx.ExecContext(ctx, bookkeeping, args...); err != nil {
		return fmt.Errorf("recording migration: %w", err)
	}

	return tx.Commit()
}

// loadMigrations reads NNNN_name.{up,down}.sql pairs from fsys, sorted by version.
func loadMigrations(fsys fs.FS) ([]Migration, error) {
	entries, err := fs.ReadDir(fsys, "migrations")
	if err != nil {
		return nil, fmt.Errorf("reading migrations directory: %w", err)
	}

	byVersion := make(map[int]*Migration)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		fname := entry.Name()

		version, name, direction, err := parseFilename(fname)
		if err != nil {
			return nil, fmt.Errorf("invalid migration filename %q: %w", fname, err)
		}

		content, err := fs.ReadFile(fsys, "migrations/"+fname)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", fname, err)
		}

		mig, ok := byVersion[version]
		if !ok {
			mig = &Migration{Version: version, Name: name}
			byVersion[version] = mig
		}

		target := &mig.UpSQL
		if direction == "down" {
			target = &mig.DownSQL
		}
		if *target != "" {
			return nil, fmt.Errorf("duplicate %s migration for version %04d", direction, version)
		}
		*target = string(content)
	}

	migrations := make([]Migration, 0, len(byVersion))
	for _, mig := range byVersion {
		switch {
		case mig.UpSQL == "":
			return nil, fmt.Errorf("migration %04d has down file but no up file", mig.Version)
		case mig.DownSQL == "":
			return nil, fmt.Errorf("migration %04d has up file but no down file", mig.Version)
		}
		migrations = append(migrations, *mig)
	}

	slices.SortFunc(migrations, func(a, b Migration) int { return a.Version - b.Version })
	return migrations, nil
}

// parseFilename extracts version, name, and direction from "NNNN_name.up.sql" or "NNNN_name.down.sql".
func parseFilename(filename string) (int, string, string, error) {
	var direction string
	switch {
	case strings.HasSuffix(filename, ".up.sql"):
		direction = "up"
		filename = strings.TrimSuffix(filename, ".up.sql")
	case strings.HasSuffix(filename, ".down.sql"):
		direction = "down"
		filename = strings.TrimSuffix(filename, ".down.sql")
	default:
		return 0, "", "", fmt.Errorf("expected .up.sql or .down.sql suffix, got %q", filename)
	}

	version, name, ok := strings.Cut(filename, "_")
	if !ok || name == "" {
		return 0, "", "", fmt.Errorf("expected format NNNN_name.{up,down}.sql")
	}

	v, err := strconv.Atoi(version)
	if err != nil {
		return 0, "", "", fmt.Errorf("version %q is not a valid integer: %w", version, err)
	}
	if v <= 0 {
		return 0, "", "", fmt.Errorf("version must be positive, got %d", v)
	}

	return v, name, direction, nil
}
