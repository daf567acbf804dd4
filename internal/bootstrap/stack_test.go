package bootstrap

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/feedwall/internal/domain/entity"
	"github.com/bnema/feedwall/internal/infrastructure/config"
	"github.com/bnema/feedwall/internal/logging"
)

func testContext() context.Context {
	return logging.WithContext(context.Background(), logging.NewFromConfigValues("debug", "console"))
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Database.Path = filepath.Join(t.TempDir(), "feedwall.sqlite")
	return cfg
}

func newTestStack(t *testing.T, cfg *config.Config) *Stack {
	t.Helper()
	stack, err := NewStack(testContext(), StackOptions{Config: cfg})
	require.NoError(t, err)
	return stack
}

func TestNewStack_RequiresConfig(t *testing.T) {
	_, err := NewStack(testContext(), StackOptions{})
	assert.Error(t, err)
}

func TestNewStack_AppliesDefaultLayout(t *testing.T) {
	cfg := testConfig(t)
	cfg.Layout.Default = []string{"x", "", "youtube", "tiktok"}

	stack := newTestStack(t, cfg)
	t.Cleanup(func() { _ = stack.Close(testContext()) })

	got := stack.Arranger.CurrentArrangement()
	assert.Equal(t, entity.SiteID("x"), got.Main())
	assert.Equal(t, entity.NoSite, got.Secondary())
	assert.Equal(t, []entity.SiteID{"youtube", "tiktok", "instagram", "threads"}, got.Subs())
}

func TestNewStack_UnknownDefaultMainKeepsSiteOrder(t *testing.T) {
	cfg := testConfig(t)
	cfg.Layout.Default = []string{"myspace"}

	stack := newTestStack(t, cfg)
	t.Cleanup(func() { _ = stack.Close(testContext()) })

	got := stack.Arranger.CurrentArrangement()
	assert.Equal(t, entity.SiteID("youtube"), got.Main())
	assert.Equal(t, entity.SiteID("tiktok"), got.Secondary())
}

func TestStack_RestoreOnEmptyDatabaseKeepsDefaults(t *testing.T) {
	ctx := testContext()
	stack := newTestStack(t, testConfig(t))
	t.Cleanup(func() { _ = stack.Close(ctx) })

	out, err := stack.RestoreSession(ctx)
	require.NoError(t, err)
	assert.False(t, out.LayoutRestored)
	assert.Equal(t, entity.ZoomDefault, out.Controls.Zoom)
	assert.Equal(t, entity.VolumeDefault, out.Controls.Volume)
	assert.False(t, out.Controls.Pinned)
}

func TestStack_PersistsAcrossRuns(t *testing.T) {
	ctx := testContext()
	cfg := testConfig(t)

	first := newTestStack(t, cfg)
	_, err := first.RestoreSession(ctx)
	require.NoError(t, err)

	_, swapped := first.Arranger.SwapMainWithSub(ctx, "instagram")
	require.True(t, swapped)
	first.Controls.SetVolume(ctx, 0.8)
	first.Controls.StepZoom(ctx, 1)
	first.Controls.TogglePinned(ctx)
	want := first.Arranger.CurrentArrangement()
	require.NoError(t, first.Close(ctx))

	second := newTestStack(t, cfg)
	t.Cleanup(func() { _ = second.Close(ctx) })
	out, err := second.RestoreSession(ctx)
	require.NoError(t, err)

	assert.True(t, out.LayoutRestored)
	assert.Equal(t, want, out.Arrangement)
	assert.Equal(t, 0.8, out.Controls.Volume)
	assert.InDelta(t, 1.1, out.Controls.Zoom, 1e-9)
	assert.True(t, out.Controls.Pinned)
}

func TestStack_HostWiring(t *testing.T) {
	cfg := testConfig(t)
	cfg.Window.Title = "wall"
	stack := newTestStack(t, cfg)
	t.Cleanup(func() { _ = stack.Close(testContext()) })

	deps := stack.HostDeps()
	assert.Same(t, stack.Arranger, deps.Arranger)
	assert.Same(t, stack.Controls, deps.Controls)
	assert.Same(t, stack.Viewports, deps.Viewports)
	assert.Same(t, stack.Permissions, deps.Permissions)

	opts := stack.HostOptions("/data", "/cache")
	assert.Equal(t, "wall", opts.Title)
	assert.Equal(t, cfg.Window.Width, opts.Width)
	assert.Equal(t, "/data", opts.DataDir)
	assert.Equal(t, "/cache", opts.CacheDir)
	assert.Len(t, opts.Sites, len(cfg.Sites))
	assert.Equal(t, cfg.Appearance.Palette.Accent, opts.Palette.Accent)
}

func TestStack_CloseWithoutUseSkipsDatabase(t *testing.T) {
	stack := newTestStack(t, testConfig(t))
	require.NoError(t, stack.Close(testContext()))
	assert.False(t, stack.DB.Opened())
}
