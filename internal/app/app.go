package app

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dori/constructtrack/internal/api"
	"github.com/dori/constructtrack/internal/config"
	"github.com/dori/constructtrack/internal/db"
	"github.com/dori/constructtrack/internal/logging"
	"github.com/dori/constructtrack/internal/notify"
	"github.com/dori/constructtrack/internal/panel"
	"github.com/gofrs/flock"
)

// App holds the application state and dependencies
type App struct {
	Config   *config.Config
	Client   *api.Client
	Panel    *panel.Panel
	DB       *db.DB
	Notifier *notify.Notifier
	lockFile *flock.Flock
}

// Options controls how New sets the application up
type Options struct {
	// Interactive takes the single-instance lock. Scripted subcommands
	// leave it false so they can run next to the TUI.
	Interactive bool
}

// New creates a new application instance
func New(cfg *config.Config, opts Options) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("missing configuration")
	}

	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	client := api.NewClient(cfg.BackendURL, nil)
	app := &App{
		Config:   cfg,
		Client:   client,
		Panel:    panel.New(client),
		Notifier: notify.NewNotifier(cfg.Notifications),
	}

	if opts.Interactive {
		if err := app.acquireLock(); err != nil {
			return nil, err
		}
	}

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		app.releaseLock()
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	app.DB = database

	logging.Debugf("app: backend=%s data=%s interactive=%v", client.BaseURL(), cfg.DataDir, opts.Interactive)
	return app, nil
}

// ThemeName returns the persisted theme, falling back to the configured one
func (a *App) ThemeName() string {
	if a.DB != nil {
		if name, ok, err := a.DB.GetSetting(db.SettingTheme); err == nil && ok {
			return name
		}
	}
	return a.Config.Theme
}

// SaveTheme persists the theme choice for the next start
func (a *App) SaveTheme(name string) error {
	if a.DB == nil {
		return nil
	}
	return a.DB.SetSetting(db.SettingTheme, name)
}

// ResetTheme forgets the saved theme so the configured one applies again
func (a *App) ResetTheme() error {
	if a.DB == nil {
		return nil
	}
	return a.DB.DeleteSetting(db.SettingTheme)
}

// acquireLock acquires an exclusive file lock to prevent multiple TUIs
func (a *App) acquireLock() error {
	lockPath := filepath.Join(a.Config.DataDir, "constructtrack.lock")
	a.lockFile = flock.New(lockPath)

	locked, err := a.lockFile.TryLock()
	if err != nil {
		return fmt.Errorf("failed to acquire lock: %w", err)
	}

	if !locked {
		return fmt.Errorf("another instance of constructtrack is already running")
	}

	return nil
}

// releaseLock releases the file lock
func (a *App) releaseLock() {
	if a.lockFile != nil {
		a.lockFile.Unlock()
	}
}

// Close cleans up application resources
func (a *App) Close() error {
	var errs []error

	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
	}

	a.releaseLock()

	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}
