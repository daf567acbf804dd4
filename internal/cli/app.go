// Package cli provides the feedwall command-line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/bnema/feedwall/internal/bootstrap"
	"github.com/bnema/feedwall/internal/cli/styles"
	"github.com/bnema/feedwall/internal/domain/build"
	"github.com/bnema/feedwall/internal/domain/entity"
	"github.com/bnema/feedwall/internal/infrastructure/config"
	"github.com/bnema/feedwall/internal/infrastructure/lock"
	"github.com/bnema/feedwall/internal/logging"
)

// App holds CLI dependencies.
type App struct {
	Config    *config.Config
	Theme     *styles.Theme
	BuildInfo build.Info
	// ConfigErr is set when the config file could not be loaded; Config
	// then holds the defaults.
	ConfigErr error

	stack *bootstrap.Stack
	ctx   context.Context
}

// NewApp loads the configuration and a quiet stderr logger. The settings
// database is only opened by commands that call Stack.
func NewApp() (*App, error) {
	cfg, cfgErr := loadConfig()

	logLevel := cfg.Logging.Level
	if envLevel := os.Getenv("FEEDWALL_LOG_LEVEL"); envLevel != "" {
		logLevel = envLevel
	}
	logger := logging.New(logging.Config{
		Level:      logging.ParseLevel(logLevel),
		Format:     cfg.Logging.Format,
		TimeFormat: "15:04:05",
	})
	ctx := logging.WithComponent(logging.WithContext(context.Background(), logger), "cli")

	if cfgErr != nil {
		logger.Debug().Err(cfgErr).Msg("using default configuration")
	}

	return &App{
		Config:    cfg,
		Theme:     styles.NewTheme(cfg),
		ConfigErr: cfgErr,
		ctx:       ctx,
	}, nil
}

// Ctx returns the application context with logger.
func (a *App) Ctx() context.Context {
	return a.ctx
}

// Stack builds the use cases on first call and restores the persisted
// session into them.
func (a *App) Stack() (*bootstrap.Stack, error) {
	if a.stack != nil {
		return a.stack, nil
	}
	if a.ConfigErr != nil {
		return nil, fmt.Errorf("load config: %w", a.ConfigErr)
	}

	stack, err := bootstrap.NewStack(a.ctx, bootstrap.StackOptions{Config: a.Config})
	if err != nil {
		return nil, err
	}
	if _, err := stack.RestoreSession(a.ctx); err != nil {
		_ = stack.Close(a.ctx)
		return nil, fmt.Errorf("restore session: %w", err)
	}
	a.stack = stack
	return stack, nil
}

// Close flushes pending settings and closes the database.
func (a *App) Close() error {
	if a.stack == nil {
		return nil
	}
	err := a.stack.Close(a.ctx)
	a.stack = nil
	return err
}

func loadConfig() (*config.Config, error) {
	if err := config.Init(); err != nil {
		return config.DefaultConfig(), err
	}
	return config.Get(), nil
}

// DefaultArrangement returns layout.default normalized against the
// configured sites, the arrangement "layout reset" applies.
func (a *App) DefaultArrangement() entity.Arrangement {
	board, err := entity.NewBoard(a.Config.SiteEntities())
	if err != nil {
		return a.Config.DefaultArrangement()
	}
	board.Apply(a.Config.DefaultArrangement())
	return board.Arrangement()
}

// WindowRunning reports whether a feedwall window holds the instance lock.
func (a *App) WindowRunning() (int, bool) {
	path, err := config.GetLockFile()
	if err != nil {
		return 0, false
	}
	l, err := lock.Acquire(path)
	if errors.Is(err, lock.ErrLocked) {
		pid, _ := lock.Owner(path)
		return pid, true
	}
	if err == nil {
		_ = l.Release()
	}
	return 0, false
}
