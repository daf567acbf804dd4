// Package port defines application-layer interfaces for external capabilities.
// Ports abstract infrastructure concerns, allowing the application layer to
// remain independent of specific implementations (WebKit, GTK, etc.).
package port

import (
	"context"

	"github.com/bnema/feedwall/internal/domain/entity"
)

// Surface is one embedded, isolated browser view hosting a single site.
type Surface interface {
	// SiteID returns the site this surface renders.
	SiteID() entity.SiteID
	// Size returns the current allocated size in logical pixels.
	Size() (width, height int)
	// SetUserAgent replaces the user agent for subsequent requests.
	SetUserAgent(ctx context.Context, userAgent string) error
	// SetViewportWidth injects a viewport directive of the given width;
	// zero removes a previously injected directive.
	SetViewportWidth(ctx context.Context, width int) error
	// SetZoomLevel applies a page zoom factor (1.0 = 100%).
	SetZoomLevel(ctx context.Context, factor float64) error
	// SetVolume applies a volume in [0, 1] to every media element.
	SetVolume(ctx context.Context, volume float64) error
}

// SurfaceProvider resolves the surface of a site.
type SurfaceProvider interface {
	Surface(id entity.SiteID) (Surface, bool)
}

//go:generate mockgen -destination=mocks/panel_host.go -package=mocks github.com/bnema/feedwall/internal/application/port PanelHost

// PanelHost is the presentation layer. Render is called with the full derived
// panel list after every mutation and must re-place panels to match it.
type PanelHost interface {
	Render(ctx context.Context, panels []entity.Panel) error
}
