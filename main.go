package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/tasks/internal/app"
	"github.com/colonyops/tasks/internal/commands"
	"github.com/colonyops/tasks/internal/core/config"
	"github.com/colonyops/tasks/internal/core/eventbus"
	"github.com/colonyops/tasks/internal/core/logging"
	"github.com/colonyops/tasks/internal/core/settings"
	"github.com/colonyops/tasks/internal/data/db"
	"github.com/colonyops/tasks/internal/data/stores"
	"github.com/colonyops/tasks/pkg/logutils"
	"github.com/colonyops/tasks/pkg/utils"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	// When installed via `go install module@version`, init() populates
	// these from runtime/debug.BuildInfo instead.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func build() string {
	v, c, d := version, commit, date

	// When installed via `go install module@version`, ldflags aren't set
	// so version remains "dev". Fall back to runtime/debug.BuildInfo which
	// Go populates automatically with the module version and VCS metadata.
	if v == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			if mv := info.Main.Version; mv != "" && mv != "(devel)" {
				v = mv
			}
			for _, s := range info.Settings {
				switch s.Key {
				case "vcs.revision":
					c = s.Value
				case "vcs.time":
					d = s.Value
				}
			}
		}
	}

	short := c
	if len(c) > 7 {
		short = c[:7]
	}

	return fmt.Sprintf("%s (%s) %s", v, short, d)
}

func main() {
	ctx := context.Background()

	var (
		logCloser func()
		tasksApp  = &app.App{}
		database  *db.DB
		busCancel context.CancelFunc
	)

	flags := &commands.Flags{
		Console: utils.NewDeferredWriter(os.Stderr),
	}

	root := commands.Root(flags, tasksApp)
	root.Version = build()
	root.Before = func(ctx context.Context, c *cli.Command) (context.Context, error) {
		logFile := flags.LogFile
		if logFile == "" {
			logFile = filepath.Join(flags.DataDir, "tasks.log")
		}

		logger, closer, err := logutils.New(flags.LogLevel, logFile, flags.Console)
		if err != nil {
			return ctx, fmt.Errorf("setup logger: %w", err)
		}
		log.Logger = logger.Hook(logging.ContextHook{})
		logCloser = closer

		cfg, err := config.Load(flags.ConfigPath, flags.DataDir)
		if err != nil {
			return ctx, fmt.Errorf("load config: %w", err)
		}
		flags.Config = cfg

		dbOpts := db.OpenOptions{
			MaxOpenConns: cfg.Database.MaxOpenConns,
			MaxIdleConns: cfg.Database.MaxIdleConns,
			BusyTimeout:  cfg.Database.BusyTimeout,
		}
		database, err = openDatabase(cfg.DataDir, dbOpts)
		if err != nil {
			return ctx, err
		}

		// Start the event bus; it stops in After.
		bus := eventbus.New(64)
		busCtx, cancel := context.WithCancel(context.Background())
		busCancel = cancel
		go bus.Start(busCtx)

		eventbus.RegisterDebugLogger(bus, logging.Component("eventbus"))
		eventbus.NewNotificationRouter(bus).Register()

		var (
			taskStore = stores.NewTaskStore(database)
			kvStore   = stores.NewKVStore(database)
			svcLogger = log.With().Str("component", "tasks").Logger()
		)

		prefs := settings.NewService(kvStore, bus, svcLogger)
		taskSvc := app.NewTaskService(taskStore, bus, svcLogger)

		// Populate the pre-allocated App struct (commands already hold a pointer to it)
		*tasksApp = *app.NewApp(taskSvc, prefs, cfg, database, bus)

		return ctx, nil
	}
	root.After = func(ctx context.Context, c *cli.Command) error {
		if busCancel != nil {
			busCancel()
		}

		var closeErr error
		if database != nil {
			if err := database.Close(); err != nil {
				log.Error().Err(err).Msg("failed to close database")
				closeErr = err
			}
		}

		_ = flags.Console.Release()

		if logCloser != nil {
			logCloser()
		}
		return closeErr
	}

	exitCode := 0
	runErr := root.Run(ctx, os.Args)
	if runErr != nil {
		fmt.Println()
		fmt.Println(runErr.Error())
		exitCode = 1
	}

	os.Exit(exitCode)
}

// openDatabase opens the task database. A corrupt file is moved aside and a
// fresh database created in its place.
func openDatabase(dataDir string, opts db.OpenOptions) (*db.DB, error) {
	database, err := db.Open(dataDir, opts)
	if err == nil {
		return database, nil
	}
	if !stores.IsCorruptionError(err) {
		return nil, fmt.Errorf("open database: %w", err)
	}

	backup, recErr := stores.RecoverFromCorruption(dataDir)
	if recErr != nil {
		return nil, fmt.Errorf("open database: %w (recovery failed: %w)", err, recErr)
	}
	log.Warn().Err(err).Str("backup", backup).Msg("database was corrupt; moved aside and started fresh")

	database, err = db.Open(dataDir, opts)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return database, nil
}
