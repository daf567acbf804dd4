// Package webkit hosts feedwall's panels in a GTK4 window, one WebKitGTK web
// view per site. Without the webkit_cgo build tag only the pure helpers and a
// stub host are compiled.
package webkit

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bnema/feedwall/internal/application/usecase"
	"github.com/bnema/feedwall/internal/domain/entity"
)

var (
	// ErrHostUnavailable is returned by the stub host in builds without GTK.
	ErrHostUnavailable = errors.New("webkit host unavailable: rebuild with -tags webkit_cgo")
	// ErrSurfaceDestroyed is returned when a surface's web view is gone.
	ErrSurfaceDestroyed = errors.New("surface destroyed")
)

// Page zoom accepted by WebKit surfaces.
const (
	surfaceZoomMin = 0.25
	surfaceZoomMax = 5.0
)

// HostOptions configures the window.
type HostOptions struct {
	AppID     string
	Title     string
	Width     int
	Height    int
	MainRatio float64
	Sites     []entity.Site
	// DataDir and CacheDir back the persistent network session (cookies,
	// local storage) shared by every panel.
	DataDir  string
	CacheDir string
	Palette  Palette
}

// Palette holds the #RRGGBB colors used by the window chrome.
type Palette struct {
	Background string
	Surface    string
	Text       string
	Muted      string
	Accent     string
	Border     string
}

// HostDeps are the use cases the host drives.
type HostDeps struct {
	Arranger    *usecase.PanelArranger
	Controls    *usecase.ManageControlsUseCase
	Viewports   *usecase.ViewportCoordinator
	Permissions *usecase.HandlePermissionUseCase
}

func (d HostDeps) validate() error {
	switch {
	case d.Arranger == nil:
		return fmt.Errorf("host needs an arranger")
	case d.Controls == nil:
		return fmt.Errorf("host needs controls")
	case d.Viewports == nil:
		return fmt.Errorf("host needs a viewport coordinator")
	case d.Permissions == nil:
		return fmt.Errorf("host needs a permission handler")
	}
	return nil
}

// ClampSurfaceZoom bounds a page zoom factor to what surfaces accept.
func ClampSurfaceZoom(z float64) float64 {
	if !(z > surfaceZoomMin) {
		return surfaceZoomMin
	}
	if z > surfaceZoomMax {
		return surfaceZoomMax
	}
	return z
}

// PanelTitle is the header text of a panel.
func PanelTitle(p entity.Panel) string {
	name := p.Site.Name
	if name == "" {
		name = string(p.Site.ID)
	}
	switch p.Slot.Kind {
	case entity.SlotMain:
		return name
	case entity.SlotSecondary:
		return name + " · secondary"
	default:
		return name + " · click to swap"
	}
}

// StatusText summarizes the global controls for the status bar.
func StatusText(c entity.GlobalControls) string {
	parts := []string{
		"zoom " + entity.FormatPercent(c.Zoom),
		entity.VolumeIconFor(c.Volume).Glyph() + " " + entity.FormatPercent(c.Volume),
	}
	if c.Pinned {
		parts = append(parts, "pinned")
	}
	return strings.Join(parts, "  ")
}

// BuildCSS renders the window stylesheet for a palette.
func BuildCSS(p Palette) string {
	return fmt.Sprintf(`window.feedwall { background-color: %[1]s; }
.feedwall-panel { background-color: %[2]s; border: 1px solid %[6]s; }
.feedwall-panel.main { border-color: %[5]s; }
.feedwall-header { color: %[3]s; padding: 2px 8px; font-size: 0.85em; }
.feedwall-panel.sub .feedwall-header:hover { color: %[5]s; }
.feedwall-status { color: %[4]s; padding: 2px 8px; font-size: 0.8em; }
`, p.Background, p.Surface, p.Text, p.Muted, p.Accent, p.Border)
}
