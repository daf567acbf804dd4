package usecase_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bnema/feedwall/internal/application/port"
	"github.com/bnema/feedwall/internal/application/port/mocks"
	"github.com/bnema/feedwall/internal/application/usecase"
	"github.com/bnema/feedwall/internal/domain/entity"
	"github.com/bnema/feedwall/internal/ui/mainloop"
)

const (
	testDesktopUA = "desktop-agent"
	testMobileUA  = "mobile-agent"
)

type fakeSurface struct {
	id entity.SiteID

	mu      sync.Mutex
	width   int
	height  int
	agents  []string
	widths  []int
	zooms   []float64
	volumes []float64
}

func (s *fakeSurface) SiteID() entity.SiteID { return s.id }

func (s *fakeSurface) Size() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.width, s.height
}

func (s *fakeSurface) resize(w, h int) {
	s.mu.Lock()
	s.width, s.height = w, h
	s.mu.Unlock()
}

func (s *fakeSurface) SetUserAgent(_ context.Context, ua string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.agents = append(s.agents, ua)
	return nil
}

func (s *fakeSurface) SetViewportWidth(_ context.Context, width int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.widths = append(s.widths, width)
	return nil
}

func (s *fakeSurface) SetZoomLevel(_ context.Context, factor float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.zooms = append(s.zooms, factor)
	return nil
}

func (s *fakeSurface) SetVolume(_ context.Context, volume float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.volumes = append(s.volumes, volume)
	return nil
}

func (s *fakeSurface) zoomCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.zooms)
}

func (s *fakeSurface) lastZoom() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.zooms) == 0 {
		return 0
	}
	return s.zooms[len(s.zooms)-1]
}

func (s *fakeSurface) lastAgent() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.agents) == 0 {
		return ""
	}
	return s.agents[len(s.agents)-1]
}

func (s *fakeSurface) lastWidth() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.widths) == 0 {
		return -1
	}
	return s.widths[len(s.widths)-1]
}

type fakeSurfaces map[entity.SiteID]*fakeSurface

func (f fakeSurfaces) Surface(id entity.SiteID) (port.Surface, bool) {
	s, ok := f[id]
	if !ok {
		return nil, false
	}
	return s, true
}

// newFakeSurfaces sizes main for desktop, secondary and subs for mobile.
func newFakeSurfaces() fakeSurfaces {
	return fakeSurfaces{
		"youtube":   {id: "youtube", width: 1280, height: 720},
		"tiktok":    {id: "tiktok", width: 393, height: 852},
		"x":         {id: "x", width: 196, height: 426},
		"instagram": {id: "instagram", width: 196, height: 426},
		"threads":   {id: "threads", width: 196, height: 426},
	}
}

func newTestCoordinator(session *usecase.Session, surfaces port.SurfaceProvider, d usecase.Debouncer) *usecase.ViewportCoordinator {
	return usecase.NewViewportCoordinator(session, surfaces, usecase.ViewportOptions{
		Viewports:        entity.DefaultViewports(),
		DesktopUserAgent: testDesktopUA,
		MobileUserAgent:  testMobileUA,
		Debouncer:        d,
	})
}

func TestViewportCoordinator_OnSurfaceReady(t *testing.T) {
	ctx := testContext()
	surfaces := newFakeSurfaces()
	c := newTestCoordinator(newTestSession(t), surfaces, nil)

	c.OnSurfaceReady(ctx, "youtube")
	c.OnSurfaceReady(ctx, "tiktok")
	c.OnSurfaceReady(ctx, "x")

	main := surfaces["youtube"]
	assert.Equal(t, testDesktopUA, main.lastAgent())
	assert.Equal(t, 0, main.lastWidth())
	assert.Equal(t, 1.0, main.lastZoom())
	assert.Equal(t, []float64{entity.VolumeDefault}, main.volumes)

	secondary := surfaces["tiktok"]
	assert.Equal(t, testMobileUA, secondary.lastAgent())
	assert.Equal(t, 393, secondary.lastWidth())
	assert.Equal(t, 1.0, secondary.lastZoom())

	sub := surfaces["x"]
	assert.Equal(t, testMobileUA, sub.lastAgent())
	assert.InDelta(t, 0.4987, sub.lastZoom(), 1e-3)
}

func TestViewportCoordinator_OnSurfaceReadyUnknownSite(t *testing.T) {
	ctx := testContext()
	surfaces := newFakeSurfaces()
	surfaces["reddit"] = &fakeSurface{id: "reddit", width: 100, height: 100}
	c := newTestCoordinator(newTestSession(t), surfaces, nil)

	c.OnSurfaceReady(ctx, "reddit")
	assert.Zero(t, surfaces["reddit"].zoomCount())
}

func TestViewportCoordinator_SwapDefersZoomToGeometryCommit(t *testing.T) {
	ctx := testContext()
	session := newTestSession(t)
	surfaces := newFakeSurfaces()
	c := newTestCoordinator(session, surfaces, nil)
	arranger := usecase.NewPanelArranger(session, nil, nil)
	arranger.SetObserver(c)

	for id := range surfaces {
		c.OnSurfaceReady(ctx, id)
	}
	xZooms := surfaces["x"].zoomCount()
	ytZooms := surfaces["youtube"].zoomCount()

	_, ok := arranger.SwapMainWithSub(ctx, "x")
	require.True(t, ok)

	// Mode switches immediately.
	assert.Equal(t, testDesktopUA, surfaces["x"].lastAgent())
	assert.Equal(t, 0, surfaces["x"].lastWidth())
	assert.Equal(t, testMobileUA, surfaces["youtube"].lastAgent())
	assert.Equal(t, 393, surfaces["youtube"].lastWidth())

	// Zoom waits for the new allocation.
	assert.Equal(t, xZooms, surfaces["x"].zoomCount())
	assert.Equal(t, ytZooms, surfaces["youtube"].zoomCount())

	surfaces["x"].resize(2560, 1440)
	surfaces["youtube"].resize(196, 426)
	c.OnGeometryCommitted(ctx, "x", 2560, 1440)
	c.OnGeometryCommitted(ctx, "youtube", 196, 426)

	assert.Equal(t, 2.0, surfaces["x"].lastZoom())
	assert.InDelta(t, 0.4987, surfaces["youtube"].lastZoom(), 1e-3)

	// Untouched panels did not change mode.
	assert.Equal(t, testMobileUA, surfaces["instagram"].lastAgent())
}

func TestViewportCoordinator_PendingPanelRecomputesAtSameSize(t *testing.T) {
	ctx := testContext()
	session := newTestSession(t)
	surfaces := newFakeSurfaces()
	c := newTestCoordinator(session, surfaces, nil)

	c.OnSurfaceReady(ctx, "tiktok")
	before := surfaces["tiktok"].zoomCount()

	c.OnSwap(ctx, "tiktok")
	c.OnGeometryCommitted(ctx, "tiktok", 393, 852)
	assert.Equal(t, before+1, surfaces["tiktok"].zoomCount())
}

func TestViewportCoordinator_GeometryCommitSkipsUnchangedSize(t *testing.T) {
	ctx := testContext()
	surfaces := newFakeSurfaces()
	c := newTestCoordinator(newTestSession(t), surfaces, nil)

	c.OnSurfaceReady(ctx, "youtube")
	require.Equal(t, 1, surfaces["youtube"].zoomCount())

	c.OnGeometryCommitted(ctx, "youtube", 1280, 720)
	assert.Equal(t, 1, surfaces["youtube"].zoomCount())

	c.OnGeometryCommitted(ctx, "youtube", 320, 180)
	assert.Equal(t, 2, surfaces["youtube"].zoomCount())
	assert.Equal(t, 0.5, surfaces["youtube"].lastZoom())
}

func TestViewportCoordinator_ControlsChangeReappliesZoomAndVolume(t *testing.T) {
	ctx := testContext()
	session := newTestSession(t)
	surfaces := newFakeSurfaces()
	c := newTestCoordinator(session, surfaces, nil)
	controls := usecase.NewManageControlsUseCase(session, nil)
	controls.SetObserver(c)

	controls.SetZoom(ctx, 1.5)
	assert.InDelta(t, 1.5, surfaces["youtube"].lastZoom(), 1e-9)
	assert.InDelta(t, 1.5, surfaces["tiktok"].lastZoom(), 1e-9)

	require.NoError(t, controls.SetSiteVolume(ctx, "tiktok", 0.1))
	assert.Equal(t, 0.1, surfaces["tiktok"].volumes[len(surfaces["tiktok"].volumes)-1])
	assert.Equal(t, entity.VolumeDefault, surfaces["youtube"].volumes[len(surfaces["youtube"].volumes)-1])
}

func TestViewportCoordinator_ContainerResizeIsDebounced(t *testing.T) {
	ctx := testContext()
	surfaces := newFakeSurfaces()
	debouncer := mainloop.NewDebouncer(40*time.Millisecond, nil)
	c := newTestCoordinator(newTestSession(t), surfaces, debouncer)
	defer c.Close()

	for i := 0; i < 5; i++ {
		c.OnContainerResize(ctx)
		time.Sleep(2 * time.Millisecond)
	}
	assert.Zero(t, surfaces["youtube"].zoomCount())

	assert.Eventually(t, func() bool {
		return surfaces["youtube"].zoomCount() == 1
	}, time.Second, 5*time.Millisecond)

	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, 1, surfaces["youtube"].zoomCount())
	assert.Equal(t, 1, surfaces["threads"].zoomCount())
}

func TestViewportCoordinator_SurfaceFailuresDoNotAbortLoop(t *testing.T) {
	ctx := testContext()
	session := newTestSession(t)

	broken := mocks.NewMockSurface(t)
	broken.On("SiteID").Return(entity.SiteID("youtube"))
	broken.On("Size").Return(1280, 720)
	broken.On("SetZoomLevel", mock.Anything, mock.Anything).Return(errors.New("web process crashed"))
	broken.On("SetVolume", mock.Anything, mock.Anything).Return(errors.New("web process crashed"))

	surfaces := newFakeSurfaces()
	provider := mocks.NewMockSurfaceProvider(t)
	provider.On("Surface", entity.SiteID("youtube")).Return(broken, true)
	for id, s := range surfaces {
		if id != "youtube" {
			provider.On("Surface", id).Return(s, true)
		}
	}

	c := newTestCoordinator(session, provider, nil)
	c.ApplyControls(ctx)

	for id, s := range surfaces {
		if id == "youtube" {
			continue
		}
		assert.Equal(t, 1, s.zoomCount(), "site %s", id)
	}
}

func TestViewportCoordinator_ZoomFor(t *testing.T) {
	session := newTestSession(t)
	c := newTestCoordinator(session, nil, nil)

	assert.Equal(t, 1.0, c.ZoomFor("youtube", entity.ModeDesktop, 1280, 720))
	assert.Equal(t, 2.0, c.ZoomFor("youtube", entity.ModeDesktop, 2560, 1440))
	assert.Equal(t, 0.5, c.ZoomFor("youtube", entity.ModeDesktop, 320, 180))
	assert.Equal(t, 0.25, c.ZoomFor("x", entity.ModeMobile, 10, 10))
	assert.Equal(t, testMobileUA, c.UserAgentFor(entity.ModeMobile))
}
