//go:build webkit_cgo

package webkit

import (
	"context"
	"sync"

	webkit "github.com/diamondburned/gotk4-webkitgtk/pkg/webkit/v6"

	"github.com/bnema/feedwall/internal/application/port"
	"github.com/bnema/feedwall/internal/domain/entity"
)

// surface wraps one web view. Methods must be called on the GTK main loop.
type surface struct {
	id   entity.SiteID
	view *webkit.WebView

	mu            sync.Mutex
	destroyed     bool
	userAgent     string
	viewportWidth int
	volume        float64
}

var _ port.Surface = (*surface)(nil)

func newSurface(id entity.SiteID, view *webkit.WebView) *surface {
	s := &surface{id: id, view: view, volume: entity.VolumeDefault}
	s.installScripts()
	return s
}

func (s *surface) SiteID() entity.SiteID { return s.id }

func (s *surface) Size() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.destroyed {
		return 0, 0
	}
	return s.view.Width(), s.view.Height()
}

func (s *surface) SetUserAgent(_ context.Context, userAgent string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.destroyed {
		return ErrSurfaceDestroyed
	}
	if s.userAgent == userAgent {
		return nil
	}
	s.userAgent = userAgent
	s.view.Settings().SetUserAgent(userAgent)
	return nil
}

func (s *surface) SetViewportWidth(ctx context.Context, width int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.destroyed {
		return ErrSurfaceDestroyed
	}
	if width < 0 {
		width = 0
	}
	s.viewportWidth = width
	s.installScriptsLocked()
	s.view.EvaluateJavascript(ctx, ViewportScript(width), -1, "", "", nil)
	return nil
}

func (s *surface) SetZoomLevel(_ context.Context, factor float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.destroyed {
		return ErrSurfaceDestroyed
	}
	s.view.SetZoomLevel(ClampSurfaceZoom(factor))
	return nil
}

func (s *surface) SetVolume(ctx context.Context, volume float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.destroyed {
		return ErrSurfaceDestroyed
	}
	s.volume = entity.ClampVolume(volume)
	s.installScriptsLocked()
	s.view.EvaluateJavascript(ctx, VolumeScript(s.volume), -1, "", "", nil)
	return nil
}

func (s *surface) installScripts() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.installScriptsLocked()
}

// installScriptsLocked replaces the document-start scripts so the next
// navigation starts with the current viewport and volume.
func (s *surface) installScriptsLocked() {
	ucm := s.view.UserContentManager()
	if ucm == nil {
		return
	}
	ucm.RemoveAllScripts()
	for _, src := range []string{ViewportScript(s.viewportWidth), VolumeScript(s.volume)} {
		ucm.AddScript(webkit.NewUserScript(
			src,
			webkit.UserContentInjectTopFrame,
			webkit.UserScriptInjectAtDocumentStart,
			nil,
			nil,
		))
	}
}

func (s *surface) destroy() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.destroyed = true
}
