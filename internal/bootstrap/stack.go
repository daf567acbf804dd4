// Package bootstrap wires feedwall's use cases to their infrastructure.
package bootstrap

import (
	"context"
	"errors"
	"fmt"

	"github.com/bnema/feedwall/internal/application/usecase"
	"github.com/bnema/feedwall/internal/domain/entity"
	"github.com/bnema/feedwall/internal/infrastructure/config"
	"github.com/bnema/feedwall/internal/infrastructure/persistence/sqlite"
	"github.com/bnema/feedwall/internal/infrastructure/webkit"
	"github.com/bnema/feedwall/internal/logging"
	"github.com/bnema/feedwall/internal/ui/mainloop"
)

// StackOptions configures NewStack.
type StackOptions struct {
	Config *config.Config
	// Post runs debounced work on the UI loop. Nil runs it on the timer
	// goroutine, which is only safe without a window.
	Post func(func())
}

// Stack holds every long-lived component of a run.
type Stack struct {
	Config      *config.Config
	DB          *sqlite.LazyDB
	Settings    *sqlite.SettingsRepository
	Writer      *usecase.SettingsWriter
	Session     *usecase.Session
	Arranger    *usecase.PanelArranger
	Controls    *usecase.ManageControlsUseCase
	Viewports   *usecase.ViewportCoordinator
	Permissions *usecase.HandlePermissionUseCase
	Restore     *usecase.RestoreSessionUseCase
}

// NewStack builds the board from the configured sites and default layout and
// wires the use cases. The database is opened lazily on first use.
func NewStack(ctx context.Context, opts StackOptions) (*Stack, error) {
	cfg := opts.Config
	if cfg == nil {
		return nil, fmt.Errorf("bootstrap: config is required")
	}
	log := logging.FromContext(ctx).With().Str("component", "bootstrap").Logger()

	board, err := entity.NewBoard(cfg.SiteEntities())
	if err != nil {
		return nil, fmt.Errorf("bootstrap: build board: %w", err)
	}
	if !board.Apply(cfg.DefaultArrangement()) {
		log.Warn().Strs("slots", cfg.Layout.Default).Msg("default layout has no known main site, using site order")
	}

	db := sqlite.NewLazyDB(cfg.Database.Path)
	repo := sqlite.NewSettingsRepository(db)
	writer := usecase.NewSettingsWriter(ctx, repo)

	session := usecase.NewSession(board)
	arranger := usecase.NewPanelArranger(session, writer, nil)
	controls := usecase.NewManageControlsUseCase(session, writer)

	debounce := cfg.ResizeDebounce()
	if debounce <= 0 {
		debounce = usecase.DefaultResizeDebounce
	}
	viewports := usecase.NewViewportCoordinator(session, nil, usecase.ViewportOptions{
		Viewports:        cfg.Viewports(),
		DesktopUserAgent: cfg.UserAgents.Desktop,
		MobileUserAgent:  cfg.UserAgents.Mobile,
		Debouncer:        mainloop.NewDebouncer(debounce, opts.Post),
	})
	arranger.SetObserver(viewports)
	controls.SetObserver(viewports)

	return &Stack{
		Config:      cfg,
		DB:          db,
		Settings:    repo,
		Writer:      writer,
		Session:     session,
		Arranger:    arranger,
		Controls:    controls,
		Viewports:   viewports,
		Permissions: usecase.NewHandlePermissionUseCase(),
		Restore:     usecase.NewRestoreSessionUseCase(repo, arranger, controls),
	}, nil
}

// RestoreSession replays the persisted arrangement and controls.
func (s *Stack) RestoreSession(ctx context.Context) (*usecase.RestoreOutput, error) {
	return s.Restore.Execute(ctx)
}

// HostDeps returns the use cases the window drives.
func (s *Stack) HostDeps() webkit.HostDeps {
	return webkit.HostDeps{
		Arranger:    s.Arranger,
		Controls:    s.Controls,
		Viewports:   s.Viewports,
		Permissions: s.Permissions,
	}
}

// HostOptions derives the window options from the configuration.
func (s *Stack) HostOptions(dataDir, cacheDir string) webkit.HostOptions {
	p := s.Config.Appearance.Palette
	return webkit.HostOptions{
		Title:     s.Config.Window.Title,
		Width:     s.Config.Window.Width,
		Height:    s.Config.Window.Height,
		MainRatio: s.Config.Window.MainRatio,
		Sites:     s.Config.SiteEntities(),
		DataDir:   dataDir,
		CacheDir:  cacheDir,
		Palette: webkit.Palette{
			Background: p.Background,
			Surface:    p.Surface,
			Text:       p.Text,
			Muted:      p.Muted,
			Accent:     p.Accent,
			Border:     p.Border,
		},
	}
}

// Close stops pending resize work, flushes queued settings and closes the
// database.
func (s *Stack) Close(ctx context.Context) error {
	s.Viewports.Close()
	flushErr := s.Writer.Flush(ctx)
	s.Writer.Close()
	return errors.Join(flushErr, s.DB.Close())
}
