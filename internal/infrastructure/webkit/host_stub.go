//go:build !webkit_cgo

package webkit

import (
	"context"
	"fmt"

	"github.com/bnema/feedwall/internal/application/port"
	"github.com/bnema/feedwall/internal/domain/entity"
	"github.com/bnema/feedwall/internal/logging"
)

// PostToMain runs fn immediately; there is no main loop without GTK.
func PostToMain(fn func()) { fn() }

// Host is a placeholder used when the binary is built without GTK.
type Host struct {
	opts HostOptions
	deps HostDeps
}

var (
	_ port.PanelHost       = (*Host)(nil)
	_ port.SurfaceProvider = (*Host)(nil)
)

// NewHost validates its inputs like the GTK host does.
func NewHost(opts HostOptions, deps HostDeps) (*Host, error) {
	if err := deps.validate(); err != nil {
		return nil, err
	}
	if len(opts.Sites) == 0 {
		return nil, fmt.Errorf("host needs at least one site")
	}
	return &Host{opts: opts, deps: deps}, nil
}

func (h *Host) Surface(entity.SiteID) (port.Surface, bool) { return nil, false }

func (h *Host) Render(context.Context, []entity.Panel) error { return ErrHostUnavailable }

// Run logs why no window can be shown and returns a non-zero status.
func (h *Host) Run(ctx context.Context) int {
	logging.FromContext(ctx).Error().Err(ErrHostUnavailable).Msg("cannot open window")
	return 1
}
