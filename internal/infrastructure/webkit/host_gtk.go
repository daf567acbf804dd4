//go:build webkit_cgo

package webkit

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"sync"

	webkit "github.com/diamondburned/gotk4-webkitgtk/pkg/webkit/v6"
	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/gio/v2"
	"github.com/diamondburned/gotk4/pkg/glib/v2"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/bnema/feedwall/internal/application/port"
	"github.com/bnema/feedwall/internal/application/usecase"
	"github.com/bnema/feedwall/internal/domain/entity"
	"github.com/bnema/feedwall/internal/logging"
	"github.com/bnema/feedwall/internal/ui/mainloop"
)

const (
	defaultAppID = "io.github.bnema.feedwall"
	renderKey    = "render"
	statusKey    = "status"
)

// PostToMain schedules fn on the GTK main loop.
func PostToMain(fn func()) {
	glib.IdleAdd(func() bool {
		fn()
		return false
	})
}

// Host is the GTK window holding every panel. It implements port.PanelHost
// and port.SurfaceProvider.
type Host struct {
	opts HostOptions
	deps HostDeps
	ctx  context.Context

	app       *gtk.Application
	window    *gtk.ApplicationWindow
	paned     *gtk.Paned
	mainSlot  *gtk.Box
	sideRow   *gtk.Box
	status    *gtk.Label
	session   *webkit.NetworkSession
	coalescer *mainloop.Coalescer

	mu     sync.RWMutex
	panels map[entity.SiteID]*panelWidget
}

type panelWidget struct {
	id      entity.SiteID
	root    *gtk.Box
	header  *gtk.Label
	view    *webkit.WebView
	surface *surface
	parent  *gtk.Box

	lastWidth   int
	lastHeight  int
	forceReport bool
}

var (
	_ port.PanelHost       = (*Host)(nil)
	_ port.SurfaceProvider = (*Host)(nil)
)

// NewHost creates the host. Widgets are built when the application activates.
func NewHost(opts HostOptions, deps HostDeps) (*Host, error) {
	if err := deps.validate(); err != nil {
		return nil, err
	}
	if len(opts.Sites) == 0 {
		return nil, fmt.Errorf("host needs at least one site")
	}
	if opts.AppID == "" {
		opts.AppID = defaultAppID
	}
	return &Host{
		opts:      opts,
		deps:      deps,
		ctx:       context.Background(),
		coalescer: mainloop.NewCoalescer(PostToMain),
		panels:    make(map[entity.SiteID]*panelWidget, len(opts.Sites)),
	}, nil
}

// Surface implements port.SurfaceProvider.
func (h *Host) Surface(id entity.SiteID) (port.Surface, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	p, ok := h.panels[id]
	if !ok || p.surface == nil {
		return nil, false
	}
	return p.surface, true
}

// Render implements port.PanelHost. Bursts of renders collapse into one
// re-placement on the next main-loop iteration.
func (h *Host) Render(_ context.Context, panels []entity.Panel) error {
	snapshot := append([]entity.Panel(nil), panels...)
	h.coalescer.Post(renderKey, func() { h.place(snapshot) })
	return nil
}

// Run blocks on the GTK main loop until the window closes or ctx is done.
// It returns the application exit status.
func (h *Host) Run(ctx context.Context) int {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	h.ctx = ctx
	h.app = gtk.NewApplication(h.opts.AppID, gio.ApplicationFlagsNone)
	h.app.ConnectActivate(h.activate)

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			PostToMain(h.app.Quit)
		case <-stop:
		}
	}()

	// GTK must not see our own command-line flags.
	code := h.app.Run(os.Args[:1])
	h.shutdown()
	return code
}

func (h *Host) activate() {
	log := logging.FromContext(h.ctx).With().Str("component", "host").Logger()

	h.session = webkit.NewNetworkSession(h.opts.DataDir, h.opts.CacheDir)
	if h.session == nil {
		log.Warn().Msg("persistent network session unavailable, using ephemeral storage")
	}

	h.loadCSS()
	h.buildWindow()

	for _, site := range h.opts.Sites {
		p := h.buildPanel(site)
		h.mu.Lock()
		h.panels[site.ID] = p
		h.mu.Unlock()
	}

	h.deps.Arranger.SetHost(h)
	h.deps.Viewports.SetSurfaceProvider(h)
	h.place(h.deps.Arranger.Panels())
	h.refreshStatus()

	for _, site := range h.opts.Sites {
		h.mu.RLock()
		p := h.panels[site.ID]
		h.mu.RUnlock()
		p.view.LoadURI(site.URL)
	}

	h.window.Present()
	log.Info().Int("panels", len(h.opts.Sites)).Msg("window presented")
}

func (h *Host) loadCSS() {
	provider := gtk.NewCSSProvider()
	provider.LoadFromString(BuildCSS(h.opts.Palette))
	gtk.StyleContextAddProviderForDisplay(
		gdk.DisplayGetDefault(),
		provider,
		gtk.STYLE_PROVIDER_PRIORITY_APPLICATION,
	)
}

func (h *Host) buildWindow() {
	h.window = gtk.NewApplicationWindow(h.app)
	h.window.SetTitle(h.opts.Title)
	h.window.SetDefaultSize(h.opts.Width, h.opts.Height)
	h.window.AddCSSClass("feedwall")

	h.mainSlot = gtk.NewBox(gtk.OrientationVertical, 0)
	h.mainSlot.SetHExpand(true)
	h.mainSlot.SetVExpand(true)

	h.sideRow = gtk.NewBox(gtk.OrientationHorizontal, 2)
	h.sideRow.SetHomogeneous(true)
	h.sideRow.SetVExpand(true)

	h.paned = gtk.NewPaned(gtk.OrientationHorizontal)
	h.paned.SetStartChild(h.mainSlot)
	h.paned.SetEndChild(h.sideRow)
	h.paned.SetResizeStartChild(true)
	h.paned.SetShrinkStartChild(false)
	h.paned.SetShrinkEndChild(false)
	h.paned.SetPosition(int(float64(h.opts.Width) * h.opts.MainRatio))
	h.paned.SetVExpand(true)

	h.status = gtk.NewLabel("")
	h.status.AddCSSClass("feedwall-status")
	h.status.SetXAlign(1)

	root := gtk.NewBox(gtk.OrientationVertical, 0)
	root.Append(h.paned)
	root.Append(h.status)
	h.window.SetChild(root)

	onResize := func() { h.deps.Viewports.OnContainerResize(h.ctx) }
	h.window.Connect("notify::default-width", onResize)
	h.window.Connect("notify::default-height", onResize)
	h.window.Connect("notify::maximized", onResize)
	h.paned.Connect("notify::position", onResize)

	keys := gtk.NewEventControllerKey()
	keys.ConnectKeyPressed(func(keyval, _ uint, state gdk.ModifierType) bool {
		action := ActionForKey(keyval, state.Has(gdk.ControlMask))
		if !Dispatch(h.ctx, action, h.deps) {
			return false
		}
		h.coalescer.Post(statusKey, h.refreshStatus)
		return true
	})
	h.window.AddController(keys)
}

func (h *Host) buildPanel(site entity.Site) *panelWidget {
	p := &panelWidget{id: site.ID, forceReport: true}

	p.root = gtk.NewBox(gtk.OrientationVertical, 0)
	p.root.AddCSSClass("feedwall-panel")
	p.root.SetHExpand(true)
	p.root.SetVExpand(true)

	p.header = gtk.NewLabel(site.Name)
	p.header.AddCSSClass("feedwall-header")
	p.header.SetXAlign(0)
	click := gtk.NewGestureClick()
	click.SetButton(1)
	click.ConnectPressed(func(_ int, _, _ float64) {
		h.deps.Arranger.SwapByPanel(h.ctx, site.ID)
	})
	p.header.AddController(click)

	p.view = webkit.NewWebView()
	p.view.SetHExpand(true)
	p.view.SetVExpand(true)
	p.surface = newSurface(site.ID, p.view)

	p.root.Append(p.header)
	p.root.Append(p.view)

	h.wireView(p, site)
	return p
}

func (h *Host) wireView(p *panelWidget, site entity.Site) {
	log := logging.FromContext(h.ctx).With().Str("site", string(site.ID)).Logger()

	p.view.ConnectLoadChanged(func(event webkit.LoadEvent) {
		if event == webkit.LoadCommitted {
			h.deps.Viewports.OnSurfaceReady(h.ctx, site.ID)
		}
	})
	p.view.ConnectLoadFailed(func(_ webkit.LoadEvent, failingURI string, err error) bool {
		h.deps.Viewports.OnLoadFailed(h.ctx, site.ID, failingURI, err)
		return false
	})

	p.view.ConnectPermissionRequest(func(request webkit.PermissionRequester) bool {
		h.deps.Permissions.HandlePermissionRequest(h.ctx, p.view.URI(), permissionNames(request), usecase.PermissionCallback{
			Allow: request.Allow,
			Deny:  request.Deny,
		})
		return true
	})
	p.view.ConnectEnterFullscreen(func() bool {
		return !h.deps.Permissions.IsAllowed(string(entity.PermissionFullscreen))
	})

	p.view.AddTickCallback(func(_ gtk.Widgetter, _ gdk.FrameClocker) bool {
		h.reportGeometry(p)
		return true
	})

	p.view.ConnectClose(func() {
		log.Debug().Msg("web view closed")
		p.surface.destroy()
	})
}

// reportGeometry tells the coordinator a panel's allocation once it differs
// from the last report, or on the first frame after a re-placement.
func (h *Host) reportGeometry(p *panelWidget) {
	w, ht := p.view.Width(), p.view.Height()
	if w <= 0 || ht <= 0 {
		return
	}
	if !p.forceReport && w == p.lastWidth && ht == p.lastHeight {
		return
	}
	p.forceReport = false
	p.lastWidth, p.lastHeight = w, ht
	h.deps.Viewports.OnGeometryCommitted(h.ctx, p.id, w, ht)
}

// place moves every panel widget into the container of its slot.
func (h *Host) place(panels []entity.Panel) {
	if h.window == nil {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, panel := range panels {
		if p, ok := h.panels[panel.Site.ID]; ok && p.parent != nil {
			p.parent.Remove(p.root)
			p.parent = nil
		}
	}

	for _, panel := range panels {
		p, ok := h.panels[panel.Site.ID]
		if !ok {
			continue
		}
		target := h.sideRow
		if panel.Slot.Kind == entity.SlotMain {
			target = h.mainSlot
		}
		target.Append(p.root)
		p.parent = target

		for _, class := range []string{"main", "secondary", "sub"} {
			p.root.RemoveCSSClass(class)
		}
		p.root.AddCSSClass(panel.Slot.Kind.String())
		p.header.SetText(PanelTitle(panel))
		p.forceReport = true
	}
}

func (h *Host) refreshStatus() {
	if h.status == nil {
		return
	}
	h.status.SetText(StatusText(h.deps.Controls.Controls()))
}

func (h *Host) shutdown() {
	h.coalescer.Close()
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, p := range h.panels {
		p.surface.destroy()
	}
}

// permissionNames maps a WebKit permission request to allow-list names.
// Unknown request kinds map to their type name, which is never allowed.
func permissionNames(request webkit.PermissionRequester) []string {
	switch request.(type) {
	case *webkit.UserMediaPermissionRequest:
		return []string{string(entity.PermissionMedia)}
	case *webkit.GeolocationPermissionRequest:
		return []string{string(entity.PermissionGeolocation)}
	case *webkit.NotificationPermissionRequest:
		return []string{string(entity.PermissionNotifications)}
	case *webkit.PointerLockPermissionRequest:
		return []string{string(entity.PermissionPointerLock)}
	case *webkit.ClipboardPermissionRequest:
		return []string{string(entity.PermissionClipboardRead)}
	default:
		return []string{fmt.Sprintf("%T", request)}
	}
}
