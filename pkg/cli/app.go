package cli

import (
	"database/sql"
	"errors"
	"fmt"

	"daylog/pkg/config"
	"daylog/pkg/database"
	"daylog/pkg/todo"
	"daylog/pkg/utils"
)

// App is everything a command needs: configuration, the persisted state and
// the task store wired to save on every change.
type App struct {
	Config config.Config
	Styles config.Styles
	DB     *sql.DB
	State  *database.StateStore
	Store  *todo.Store
}

// OpenApp loads configuration, connects to the database and loads the tasks.
// An unreadable stored document starts an empty store; saves fail until the
// document is purged.
func OpenApp(configPath string, verbose bool) (*App, error) {
	app, err := openState(configPath, verbose)
	if err != nil {
		return nil, err
	}

	tasks, err := app.State.LoadTasks(nowFunc())
	switch {
	case errors.Is(err, database.ErrUnreadable):
		utils.Log("Starting with no tasks: %v", err)
		tasks = nil
	case err != nil:
		app.Close()
		return nil, fmt.Errorf("loading tasks: %w", err)
	}
	utils.Log("Loaded %d task(s)", len(tasks))

	app.Store = todo.NewStore(
		todo.WithClock(nowFunc),
		todo.WithTasks(tasks),
		todo.WithOnChange(app.State.SaveTasks),
	)
	return app, nil
}

// openState opens configuration, logging and the database without reading
// the stored tasks. Store is nil.
func openState(configPath string, verbose bool) (*App, error) {
	cfg, styles, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if err := utils.InitLogger(verbose, cfg.LogFile); err != nil {
		return nil, err
	}

	driver := cfg.Driver
	if driver == "" {
		driver = database.DetectDriver(cfg.Database)
	}
	utils.Log("Opening %s database %s", driver, cfg.Database)

	db, err := database.ConnectDB(driver, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	if err := database.EnsureSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &App{
		Config: cfg,
		Styles: styles,
		DB:     db,
		State:  database.NewStateStore(db, driver, database.LockPathFor(driver, cfg.Database), cfg.QuotaBytes),
	}, nil
}

// Close releases the database and the log file.
func (a *App) Close() error {
	defer utils.CloseLogger()
	return a.DB.Close()
}
