package app

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// DBWatcher refreshes a TaskService when the database file changes on disk,
// so a TUI picks up tasks written by another process (for example
// `tasks add` in a second terminal).
type DBWatcher struct {
	watcher     *fsnotify.Watcher
	dbFile      string
	debounceDur time.Duration
	tasks       *TaskService
	log         zerolog.Logger
}

// NewDBWatcher watches the directory holding dbPath.
func NewDBWatcher(dbPath string, tasks *TaskService, debounce time.Duration, log zerolog.Logger) (*DBWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}

	// SQLite replaces -wal/-shm files, so watch the directory rather than the files.
	if err := watcher.Add(filepath.Dir(dbPath)); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(dbPath), err)
	}

	if debounce <= 0 {
		debounce = 150 * time.Millisecond
	}

	return &DBWatcher{
		watcher:     watcher,
		dbFile:      filepath.Base(dbPath),
		debounceDur: debounce,
		tasks:       tasks,
		log:         log.With().Str("component", "db-watcher").Logger(),
	}, nil
}

// Run refreshes the task snapshot after each settled burst of writes until
// ctx is done. It closes the underlying watcher on return.
func (w *DBWatcher) Run(ctx context.Context) {
	defer func() { _ = w.watcher.Close() }()

	var (
		debounce *time.Timer
		fire     <-chan time.Time
	)

	for {
		select {
		case <-ctx.Done():
			if debounce != nil {
				debounce.Stop()
			}
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}

			if debounce == nil {
				debounce = time.NewTimer(w.debounceDur)
			} else {
				debounce.Reset(w.debounceDur)
			}
			fire = debounce.C

		case <-fire:
			fire = nil
			w.log.Debug().Msg("database changed on disk; refreshing")
			w.tasks.Refresh(ctx)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Error().Err(err).Msg("watcher error")
		}
	}
}

func (w *DBWatcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return false
	}
	return strings.HasPrefix(filepath.Base(event.Name), w.dbFile)
}
