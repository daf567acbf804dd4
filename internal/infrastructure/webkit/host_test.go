package webkit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/feedwall/internal/application/usecase"
	"github.com/bnema/feedwall/internal/domain/entity"
	"github.com/bnema/feedwall/internal/logging"
)

func testDeps(t *testing.T) (context.Context, HostDeps) {
	t.Helper()
	board, err := entity.NewBoard(entity.DefaultSites())
	require.NoError(t, err)
	session := usecase.NewSession(board)
	ctx := logging.WithContext(context.Background(), logging.NewFromConfigValues("debug", "console"))
	return ctx, HostDeps{
		Arranger:    usecase.NewPanelArranger(session, nil, nil),
		Controls:    usecase.NewManageControlsUseCase(session, nil),
		Viewports:   usecase.NewViewportCoordinator(session, nil, usecase.ViewportOptions{}),
		Permissions: usecase.NewHandlePermissionUseCase(),
	}
}

func TestHostDeps_Validate(t *testing.T) {
	_, deps := testDeps(t)
	assert.NoError(t, deps.validate())

	deps.Viewports = nil
	assert.EqualError(t, deps.validate(), "host needs a viewport coordinator")
}

func TestClampSurfaceZoom(t *testing.T) {
	assert.Equal(t, 0.25, ClampSurfaceZoom(0.1))
	assert.Equal(t, 0.25, ClampSurfaceZoom(-3))
	assert.Equal(t, 1.3, ClampSurfaceZoom(1.3))
	assert.Equal(t, 5.0, ClampSurfaceZoom(12))
}

func TestPanelTitle(t *testing.T) {
	site := entity.Site{ID: "bluesky", Name: "Bluesky"}
	assert.Equal(t, "Bluesky", PanelTitle(entity.Panel{Site: site, Slot: entity.MainSlot()}))
	assert.Equal(t, "Bluesky · secondary", PanelTitle(entity.Panel{Site: site, Slot: entity.SecondarySlot()}))
	assert.Equal(t, "Bluesky · click to swap", PanelTitle(entity.Panel{Site: site, Slot: entity.SubSlot(2)}))

	unnamed := entity.Site{ID: "mastodon"}
	assert.Equal(t, "mastodon", PanelTitle(entity.Panel{Site: unnamed, Slot: entity.MainSlot()}))
}

func TestStatusText(t *testing.T) {
	c := entity.DefaultGlobalControls()
	assert.Equal(t, "zoom 100%  🔉 50%", StatusText(c))

	c.Zoom = 1.2
	c.Volume = 0
	c.Pinned = true
	assert.Equal(t, "zoom 120%  🔇 0%  pinned", StatusText(c))
}

func TestBuildCSS(t *testing.T) {
	css := BuildCSS(Palette{
		Background: "#000001",
		Surface:    "#000002",
		Text:       "#000003",
		Muted:      "#000004",
		Accent:     "#000005",
		Border:     "#000006",
	})
	assert.Contains(t, css, "window.feedwall { background-color: #000001; }")
	assert.Contains(t, css, "border: 1px solid #000006;")
	assert.Contains(t, css, ".feedwall-panel.main { border-color: #000005; }")
	assert.Contains(t, css, ".feedwall-status { color: #000004;")
	assert.NotContains(t, css, "%!")
}

func TestActionForKey(t *testing.T) {
	tests := []struct {
		name   string
		keyval uint
		ctrl   bool
		want   Action
	}{
		{"plus", keyPlus, true, ActionZoomIn},
		{"equal", keyEqual, true, ActionZoomIn},
		{"keypad add", keyKPAdd, true, ActionZoomIn},
		{"minus", keyMinus, true, ActionZoomOut},
		{"zero", key0, true, ActionZoomReset},
		{"m", keyM, true, ActionToggleMute},
		{"M", 0x04d, true, ActionToggleMute},
		{"p", keyP, true, ActionTogglePinned},
		{"s", keyS, true, ActionSwapSecondary},
		{"up", keyUp, true, ActionVolumeUp},
		{"down", keyDown, true, ActionVolumeDown},
		{"no ctrl", keyPlus, false, ActionNone},
		{"unbound", 0x071, true, ActionNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ActionForKey(tt.keyval, tt.ctrl))
		})
	}
}

func TestDispatch_Controls(t *testing.T) {
	ctx, deps := testDeps(t)

	require.True(t, Dispatch(ctx, ActionZoomIn, deps))
	assert.InDelta(t, 1.1, deps.Controls.Controls().Zoom, 1e-9)

	require.True(t, Dispatch(ctx, ActionZoomReset, deps))
	assert.Equal(t, entity.ZoomDefault, deps.Controls.Controls().Zoom)

	require.True(t, Dispatch(ctx, ActionZoomOut, deps))
	assert.InDelta(t, 0.9, deps.Controls.Controls().Zoom, 1e-9)

	require.True(t, Dispatch(ctx, ActionVolumeUp, deps))
	assert.Equal(t, 0.6, deps.Controls.Controls().Volume)
	require.True(t, Dispatch(ctx, ActionVolumeDown, deps))
	require.True(t, Dispatch(ctx, ActionVolumeDown, deps))
	assert.Equal(t, 0.4, deps.Controls.Controls().Volume)

	require.True(t, Dispatch(ctx, ActionToggleMute, deps))
	assert.Equal(t, 0.0, deps.Controls.Controls().Volume)
	require.True(t, Dispatch(ctx, ActionToggleMute, deps))
	assert.Equal(t, 0.4, deps.Controls.Controls().Volume)

	require.True(t, Dispatch(ctx, ActionTogglePinned, deps))
	assert.True(t, deps.Controls.Controls().Pinned)

	assert.False(t, Dispatch(ctx, ActionNone, deps))
}

func TestDispatch_SwapSecondary(t *testing.T) {
	ctx, deps := testDeps(t)
	before := deps.Arranger.CurrentArrangement()
	require.NotEqual(t, entity.NoSite, before.Secondary())

	require.True(t, Dispatch(ctx, ActionSwapSecondary, deps))

	after := deps.Arranger.CurrentArrangement()
	assert.Equal(t, before.Secondary(), after.Main())
	assert.Equal(t, before.Main(), after.Secondary())
}

func TestStepVolume(t *testing.T) {
	assert.Equal(t, 0.3, stepVolume(0.2, 1))
	assert.Equal(t, 0.7, stepVolume(0.8, -1))
	assert.Equal(t, 1.1, stepVolume(1, 1), "clamping is left to the controls")
}
