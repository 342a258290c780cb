package app

import (
	"context"

	"github.com/colonyops/tasks/internal/core/config"
	"github.com/colonyops/tasks/internal/core/doctor"
	"github.com/colonyops/tasks/internal/core/eventbus"
	"github.com/colonyops/tasks/internal/core/settings"
	"github.com/colonyops/tasks/internal/data/db"
)

// App is the central entry point for all task operations.
// Commands and TUI consume App instead of cherry-picking raw dependencies.
type App struct {
	Tasks    *TaskService
	Settings *settings.Service
	Doctor   *DoctorService

	Config *config.Config
	DB     *db.DB
	Bus    *eventbus.EventBus
}

// NewApp constructs an App from explicit dependencies.
func NewApp(
	tasks *TaskService,
	prefs *settings.Service,
	cfg *config.Config,
	database *db.DB,
	bus *eventbus.EventBus,
) *App {
	return &App{
		Tasks:    tasks,
		Settings: prefs,
		Doctor:   NewDoctorService(tasks, database, cfg),
		Config:   cfg,
		DB:       database,
		Bus:      bus,
	}
}

// DoctorService runs health checks on the tasks setup.
type DoctorService struct {
	tasks  *TaskService
	db     doctor.Database
	config *config.Config
}

// NewDoctorService creates a new DoctorService.
func NewDoctorService(tasks *TaskService, database doctor.Database, cfg *config.Config) *DoctorService {
	return &DoctorService{tasks: tasks, db: database, config: cfg}
}

// RunChecks executes all doctor checks and returns results.
func (d *DoctorService) RunChecks(ctx context.Context, configPath string, autofix bool) []doctor.Result {
	checks := []doctor.Check{
		doctor.NewConfigCheck(d.config, configPath),
		doctor.NewDatabaseCheck(d.db, autofix),
		doctor.NewTaskCheck(d.tasks.store),
	}
	return doctor.RunAll(ctx, checks)
}
