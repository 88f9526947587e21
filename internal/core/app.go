package core

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/vrsandeep/ugc-console/internal/client"
	"github.com/vrsandeep/ugc-console/internal/config"
	"github.com/vrsandeep/ugc-console/internal/db"
	"github.com/vrsandeep/ugc-console/internal/monitor"
	"github.com/vrsandeep/ugc-console/internal/poller"
	"github.com/vrsandeep/ugc-console/internal/store"
	"github.com/vrsandeep/ugc-console/internal/websocket"
)

// App holds the core components of the application that are shared
// between the server and the CLI.
type App struct {
	Config  *config.Config
	DB      *sql.DB
	Store   *store.Store
	WsHub   *websocket.Hub
	Backend *client.Client
	Monitor *monitor.Monitor
	Version string
}

// New sets up and returns a new App instance. It handles loading the
// configuration, initializing the database connection, and running migrations.
func New(version string) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	database, err := db.InitDB(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// We can't proceed without a valid schema.
	if err := db.RunMigrations(database); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to run database migrations: %w", err)
	}

	app, err := Build(cfg, database, version)
	if err != nil {
		database.Close()
		return nil, err
	}
	log.Println("Core application setup complete.")
	return app, nil
}

// Build wires the backend client, poll history and monitor around an
// already migrated database. The hub is created but not running, and
// polling has not started.
func Build(cfg *config.Config, database *sql.DB, version string) (*App, error) {
	st := store.New(database)
	hub := websocket.NewHub()
	backend := client.New(cfg.Backend.BaseURL)

	mon, err := monitor.New(backend, poller.NewManager(st), hub, st, monitor.Options{
		Polling:   cfg.Polling,
		Retention: cfg.History.Retention,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to register poll tasks: %w", err)
	}

	return &App{
		Config:  cfg,
		DB:      database,
		Store:   st,
		WsHub:   hub,
		Backend: backend,
		Monitor: mon,
		Version: version,
	}, nil
}

// WatchConfig hot-applies polling changes made to config.yml while running.
func (a *App) WatchConfig() error {
	_, err := config.Watch(func(cfg *config.Config) {
		a.Monitor.ApplyPolling(cfg.Polling)
	})
	return err
}

// Close stops polling and releases the hub and the database.
func (a *App) Close() {
	if a.Monitor != nil {
		a.Monitor.Stop()
	}
	if a.WsHub != nil {
		a.WsHub.Close()
	}
	if a.DB != nil {
		a.DB.Close()
	}
}
