package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/bnema/feedwall/internal/application/port"
	"github.com/bnema/feedwall/internal/domain/entity"
	"github.com/bnema/feedwall/internal/logging"
)

// DefaultResizeDebounce is the quiet period before a container resize
// triggers a zoom recomputation.
const DefaultResizeDebounce = 150 * time.Millisecond

const resizeDebounceKey = "container-resize"

// Debouncer delays a keyed callback until the key has been quiet.
// mainloop.Debouncer satisfies it.
type Debouncer interface {
	Trigger(key string, fn func())
	Stop()
}

// ViewportOptions configures the coordinator.
type ViewportOptions struct {
	Viewports        entity.Viewports
	DesktopUserAgent string
	MobileUserAgent  string
	// Debouncer delays OnContainerResize. Nil recomputes immediately.
	Debouncer Debouncer
}

type appliedViewport struct {
	width  int
	height int
	mode   entity.PresentationMode
	zoom   float64
}

// ViewportCoordinator keeps each surface's user agent, viewport directive,
// zoom and volume consistent with its slot, size and the global controls.
type ViewportCoordinator struct {
	session  *Session
	surfaces port.SurfaceProvider
	opts     ViewportOptions

	mu      sync.Mutex
	pending map[entity.SiteID]bool
	applied map[entity.SiteID]appliedViewport
}

// NewViewportCoordinator creates a coordinator. Zero-valued viewports fall
// back to the built-in references.
func NewViewportCoordinator(session *Session, surfaces port.SurfaceProvider, opts ViewportOptions) *ViewportCoordinator {
	if opts.Viewports == (entity.Viewports{}) {
		opts.Viewports = entity.DefaultViewports()
	}
	return &ViewportCoordinator{
		session:  session,
		surfaces: surfaces,
		opts:     opts,
		pending:  make(map[entity.SiteID]bool),
		applied:  make(map[entity.SiteID]appliedViewport),
	}
}

// SetSurfaceProvider attaches the host's surfaces once they exist.
func (c *ViewportCoordinator) SetSurfaceProvider(surfaces port.SurfaceProvider) {
	c.mu.Lock()
	c.surfaces = surfaces
	c.mu.Unlock()
}

// UserAgentFor returns the configured user agent of a mode.
func (c *ViewportCoordinator) UserAgentFor(mode entity.PresentationMode) string {
	if mode == entity.ModeMobile {
		return c.opts.MobileUserAgent
	}
	return c.opts.DesktopUserAgent
}

// ZoomFor returns the zoom factor applied to a panel of the given size:
// the mode's clamped fit times the site's effective zoom.
func (c *ViewportCoordinator) ZoomFor(id entity.SiteID, mode entity.PresentationMode, width, height int) float64 {
	fit := c.opts.Viewports.For(mode).Fit(float64(width), float64(height))
	return fit.Clamped * c.session.Controls().EffectiveZoom(id)
}

// OnSurfaceReady configures a freshly created surface for its current slot.
func (c *ViewportCoordinator) OnSurfaceReady(ctx context.Context, id entity.SiteID) {
	surface, mode, ok := c.resolve(ctx, id)
	if !ok {
		return
	}
	c.applyMode(ctx, surface, mode)
	w, h := surface.Size()
	c.applyZoom(ctx, surface, mode, w, h)
	c.applyVolume(ctx, surface)
}

// OnSwap re-targets the changed panels immediately and defers their zoom to
// the next geometry commit.
func (c *ViewportCoordinator) OnSwap(ctx context.Context, changed ...entity.SiteID) {
	for _, id := range changed {
		if id == entity.NoSite {
			continue
		}
		surface, mode, ok := c.resolve(ctx, id)
		if !ok {
			continue
		}
		c.applyMode(ctx, surface, mode)
		c.markPending(id)
	}
}

// OnArrangementApplied re-targets every panel after a bulk reassignment.
func (c *ViewportCoordinator) OnArrangementApplied(ctx context.Context) {
	for _, panel := range c.session.Panels() {
		surface, ok := c.surface(panel.Site.ID)
		if !ok {
			continue
		}
		c.applyMode(ctx, surface, panel.Mode)
		c.markPending(panel.Site.ID)
		w, h := surface.Size()
		c.applyZoom(ctx, surface, panel.Mode, w, h)
	}
}

// OnGeometryCommitted is reported by the host once a panel's allocation is
// final. Pending panels always recompute; others only when the size changed.
func (c *ViewportCoordinator) OnGeometryCommitted(ctx context.Context, id entity.SiteID, width, height int) {
	surface, mode, ok := c.resolve(ctx, id)
	if !ok {
		return
	}

	c.mu.Lock()
	pending := c.pending[id]
	last, seen := c.applied[id]
	delete(c.pending, id)
	c.mu.Unlock()

	if !pending && seen && last.width == width && last.height == height && last.mode == mode {
		return
	}
	c.applyZoom(ctx, surface, mode, width, height)
}

// OnContainerResize schedules a zoom recomputation for every panel.
func (c *ViewportCoordinator) OnContainerResize(ctx context.Context) {
	if c.opts.Debouncer == nil {
		c.ReapplyZoom(ctx)
		return
	}
	c.opts.Debouncer.Trigger(resizeDebounceKey, func() { c.ReapplyZoom(ctx) })
}

// ReapplyZoom recomputes zoom from every surface's current size.
func (c *ViewportCoordinator) ReapplyZoom(ctx context.Context) {
	for _, panel := range c.session.Panels() {
		surface, ok := c.surface(panel.Site.ID)
		if !ok {
			continue
		}
		w, h := surface.Size()
		c.applyZoom(ctx, surface, panel.Mode, w, h)
	}
}

// ApplyControls re-applies zoom and volume to every surface.
func (c *ViewportCoordinator) ApplyControls(ctx context.Context) {
	for _, panel := range c.session.Panels() {
		surface, ok := c.surface(panel.Site.ID)
		if !ok {
			continue
		}
		w, h := surface.Size()
		c.applyZoom(ctx, surface, panel.Mode, w, h)
		c.applyVolume(ctx, surface)
	}
}

// OnControlsChanged implements ControlsObserver.
func (c *ViewportCoordinator) OnControlsChanged(ctx context.Context) {
	c.ApplyControls(ctx)
}

// OnLoadFailed records a navigation failure; the panel stays in place.
func (c *ViewportCoordinator) OnLoadFailed(ctx context.Context, id entity.SiteID, uri string, err error) {
	logging.FromContext(ctx).Warn().
		Err(err).
		Str("site", string(id)).
		Str("uri", uri).
		Msg("panel failed to load")
}

// Close cancels a pending resize recomputation.
func (c *ViewportCoordinator) Close() {
	if c.opts.Debouncer != nil {
		c.opts.Debouncer.Stop()
	}
}

func (c *ViewportCoordinator) surface(id entity.SiteID) (port.Surface, bool) {
	c.mu.Lock()
	provider := c.surfaces
	c.mu.Unlock()
	if provider == nil {
		return nil, false
	}
	return provider.Surface(id)
}

func (c *ViewportCoordinator) resolve(ctx context.Context, id entity.SiteID) (port.Surface, entity.PresentationMode, bool) {
	slot, ok := c.session.SlotOf(id)
	if !ok {
		logging.FromContext(ctx).Debug().Str("site", string(id)).Msg("site has no slot")
		return nil, entity.ModeDesktop, false
	}
	surface, ok := c.surface(id)
	if !ok {
		logging.FromContext(ctx).Debug().Str("site", string(id)).Msg("site has no surface yet")
		return nil, entity.ModeDesktop, false
	}
	return surface, entity.ModeForSlot(slot), true
}

func (c *ViewportCoordinator) markPending(id entity.SiteID) {
	c.mu.Lock()
	c.pending[id] = true
	c.mu.Unlock()
}

// applyMode sets the user agent and the mobile viewport directive. Desktop
// panels get the desktop agent and no directive so a swapped surface is reset.
func (c *ViewportCoordinator) applyMode(ctx context.Context, surface port.Surface, mode entity.PresentationMode) {
	log := logging.FromContext(ctx).With().
		Str("site", string(surface.SiteID())).
		Str("mode", mode.String()).
		Logger()

	if ua := c.UserAgentFor(mode); ua != "" {
		if err := surface.SetUserAgent(ctx, ua); err != nil {
			log.Warn().Err(err).Msg("failed to set user agent")
		}
	}

	width := 0
	if mode == entity.ModeMobile {
		width = int(c.opts.Viewports.Mobile.Width)
	}
	if err := surface.SetViewportWidth(ctx, width); err != nil {
		log.Warn().Err(err).Msg("failed to update viewport directive")
	}
}

func (c *ViewportCoordinator) applyZoom(ctx context.Context, surface port.Surface, mode entity.PresentationMode, width, height int) {
	id := surface.SiteID()
	zoom := c.ZoomFor(id, mode, width, height)
	log := logging.FromContext(ctx)

	if err := surface.SetZoomLevel(ctx, zoom); err != nil {
		log.Warn().Err(err).Str("site", string(id)).Msg("failed to apply zoom")
		return
	}

	c.mu.Lock()
	c.applied[id] = appliedViewport{width: width, height: height, mode: mode, zoom: zoom}
	c.mu.Unlock()

	log.Debug().
		Str("site", string(id)).
		Str("mode", mode.String()).
		Int("width", width).
		Int("height", height).
		Str("zoom", entity.FormatPercent(zoom)).
		Msg("zoom applied")
}

func (c *ViewportCoordinator) applyVolume(ctx context.Context, surface port.Surface) {
	id := surface.SiteID()
	volume := c.session.Controls().EffectiveVolume(id)
	if err := surface.SetVolume(ctx, volume); err != nil {
		logging.FromContext(ctx).Warn().Err(err).Str("site", string(id)).Msg("failed to apply volume")
	}
}
