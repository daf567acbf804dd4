package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/bnema/feedwall/internal/application/port"
	"github.com/bnema/feedwall/internal/application/port/mocks"
	"github.com/bnema/feedwall/internal/application/usecase"
	"github.com/bnema/feedwall/internal/domain/entity"
)

func TestPanelArranger_SwapMainWithSub_DefaultBoard(t *testing.T) {
	ctx := testContext()
	writer := &recordingWriter{}
	observer := &recordingObserver{}

	arranger := usecase.NewPanelArranger(newTestSession(t), writer, nil)
	arranger.SetObserver(observer)

	got, ok := arranger.SwapMainWithSub(ctx, "x")
	require.True(t, ok)
	assert.Equal(t, arr("x", "tiktok", "youtube", "instagram", "threads"), got)
	assert.Equal(t, got, arranger.CurrentArrangement())

	stored, ok := writer.last(port.SettingLayout)
	require.True(t, ok)
	assert.Equal(t, entity.StoredLayout{Slots: []string{"x", "tiktok", "youtube", "instagram", "threads"}}, stored)

	require.Len(t, observer.swaps, 1)
	assert.ElementsMatch(t, []entity.SiteID{"x", "youtube"}, observer.swaps[0])
}

func TestPanelArranger_SwapMainWithSub_ModesFollowSlots(t *testing.T) {
	ctx := testContext()
	arranger := usecase.NewPanelArranger(newTestSession(t), nil, nil)

	_, ok := arranger.SwapMainWithSub(ctx, "instagram")
	require.True(t, ok)

	modes := map[entity.SiteID]entity.PresentationMode{}
	for _, p := range arranger.Panels() {
		modes[p.Site.ID] = p.Mode
	}
	assert.Equal(t, entity.ModeDesktop, modes["instagram"])
	assert.Equal(t, entity.ModeMobile, modes["youtube"])
	assert.Equal(t, entity.ModeMobile, modes["tiktok"])
}

func TestPanelArranger_SwapMainWithSub_SecondSwapOfSameSiteIsNoop(t *testing.T) {
	ctx := testContext()
	writer := &recordingWriter{}
	arranger := usecase.NewPanelArranger(newTestSession(t), writer, nil)

	first, ok := arranger.SwapMainWithSub(ctx, "x")
	require.True(t, ok)

	again, ok := arranger.SwapMainWithSub(ctx, "x")
	assert.False(t, ok)
	assert.Equal(t, first, again)
	assert.Equal(t, 1, writer.count())
}

func TestPanelArranger_SwapMainWithSub_RoundTripRestoresArrangement(t *testing.T) {
	ctx := testContext()
	arranger := usecase.NewPanelArranger(newTestSession(t), nil, nil)
	before := arranger.CurrentArrangement()

	_, ok := arranger.SwapMainWithSub(ctx, "x")
	require.True(t, ok)
	_, ok = arranger.SwapMainWithSub(ctx, "youtube")
	require.True(t, ok)

	assert.Equal(t, before, arranger.CurrentArrangement())
}

func TestPanelArranger_SwapsIgnoredWhenPinned(t *testing.T) {
	ctx := testContext()
	session := newTestSession(t)
	writer := &recordingWriter{}
	observer := &recordingObserver{}

	controls := usecase.NewManageControlsUseCase(session, nil)
	controls.SetPinned(ctx, true)

	arranger := usecase.NewPanelArranger(session, writer, nil)
	arranger.SetObserver(observer)
	before := arranger.CurrentArrangement()

	_, ok := arranger.SwapMainWithSub(ctx, "x")
	assert.False(t, ok)
	_, ok = arranger.SwapMainWithSecondary(ctx)
	assert.False(t, ok)
	_, ok = arranger.SwapByPanel(ctx, "threads")
	assert.False(t, ok)

	assert.Equal(t, before, arranger.CurrentArrangement())
	assert.Zero(t, writer.count())
	assert.Empty(t, observer.swaps)
}

func TestPanelArranger_SwapMainWithSub_NotASub(t *testing.T) {
	ctx := testContext()
	arranger := usecase.NewPanelArranger(newTestSession(t), nil, nil)
	before := arranger.CurrentArrangement()

	for _, id := range []entity.SiteID{"youtube", "tiktok", "reddit", entity.NoSite} {
		_, ok := arranger.SwapMainWithSub(ctx, id)
		assert.False(t, ok, "site %q", id)
	}
	assert.Equal(t, before, arranger.CurrentArrangement())
}

func TestPanelArranger_SwapMainWithSecondary(t *testing.T) {
	ctx := testContext()
	observer := &recordingObserver{}
	arranger := usecase.NewPanelArranger(newTestSession(t), nil, nil)
	arranger.SetObserver(observer)

	got, ok := arranger.SwapMainWithSecondary(ctx)
	require.True(t, ok)
	assert.Equal(t, arr("tiktok", "youtube", "x", "instagram", "threads"), got)
	require.Len(t, observer.swaps, 1)
	assert.ElementsMatch(t, []entity.SiteID{"youtube", "tiktok"}, observer.swaps[0])
}

func TestPanelArranger_SwapMainWithSecondary_NoSecondary(t *testing.T) {
	ctx := testContext()
	arranger := usecase.NewPanelArranger(newTestSession(t), nil, nil)
	require.True(t, arranger.ApplyArrangement(ctx, arr("youtube", "", "tiktok", "x", "instagram", "threads")))

	_, ok := arranger.SwapMainWithSecondary(ctx)
	assert.False(t, ok)
	assert.Equal(t, arr("youtube", "", "tiktok", "x", "instagram", "threads"), arranger.CurrentArrangement())
}

func TestPanelArranger_SwapByPanel(t *testing.T) {
	ctx := testContext()
	arranger := usecase.NewPanelArranger(newTestSession(t), nil, nil)

	_, ok := arranger.SwapByPanel(ctx, "youtube")
	assert.False(t, ok, "clicking main does nothing")

	got, ok := arranger.SwapByPanel(ctx, "tiktok")
	require.True(t, ok)
	assert.Equal(t, arr("tiktok", "youtube", "x", "instagram", "threads"), got)

	got, ok = arranger.SwapByPanel(ctx, "threads")
	require.True(t, ok)
	assert.Equal(t, arr("threads", "youtube", "x", "instagram", "tiktok"), got)
}

func TestPanelArranger_ApplyArrangement(t *testing.T) {
	tests := []struct {
		name    string
		in      entity.Arrangement
		applied bool
		want    entity.Arrangement
	}{
		{
			name:    "full arrangement",
			in:      arr("x", "threads", "youtube", "tiktok", "instagram"),
			applied: true,
			want:    arr("x", "threads", "youtube", "tiktok", "instagram"),
		},
		{
			name:    "missing sites appended as subs",
			in:      arr("instagram", "tiktok"),
			applied: true,
			want:    arr("instagram", "tiktok", "youtube", "x", "threads"),
		},
		{
			name:    "unknown and duplicate ids skipped",
			in:      arr("x", "reddit", "x", "youtube", "youtube"),
			applied: true,
			want:    arr("x", "", "youtube", "tiktok", "instagram", "threads"),
		},
		{
			name:    "unknown main keeps board",
			in:      arr("reddit", "x"),
			applied: false,
			want:    arr("youtube", "tiktok", "x", "instagram", "threads"),
		},
		{
			name:    "empty main keeps board",
			in:      arr("", "x"),
			applied: false,
			want:    arr("youtube", "tiktok", "x", "instagram", "threads"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := testContext()
			observer := &recordingObserver{}
			arranger := usecase.NewPanelArranger(newTestSession(t), nil, nil)
			arranger.SetObserver(observer)

			assert.Equal(t, tt.applied, arranger.ApplyArrangement(ctx, tt.in))
			assert.Equal(t, tt.want, arranger.CurrentArrangement())
			if tt.applied {
				assert.Equal(t, 1, observer.applied)
			} else {
				assert.Zero(t, observer.applied)
			}
		})
	}
}

func TestPanelArranger_ApplyArrangementDoesNotPersist(t *testing.T) {
	ctx := testContext()
	writer := &recordingWriter{}
	arranger := usecase.NewPanelArranger(newTestSession(t), writer, nil)

	require.True(t, arranger.ApplyArrangement(ctx, arr("x")))
	assert.Zero(t, writer.count())

	require.True(t, arranger.ResetArrangement(ctx, arr("tiktok")))
	stored, ok := writer.last(port.SettingLayout)
	require.True(t, ok)
	assert.Equal(t, entity.StoredLayout{Slots: []string{"tiktok", "", "youtube", "x", "instagram", "threads"}}, stored)
}

func TestPanelArranger_SnapshotIsDetachedFromBoard(t *testing.T) {
	ctx := testContext()
	writer := &recordingWriter{}
	arranger := usecase.NewPanelArranger(newTestSession(t), writer, nil)

	_, ok := arranger.SwapMainWithSub(ctx, "x")
	require.True(t, ok)
	first, _ := writer.last(port.SettingLayout)

	_, ok = arranger.SwapMainWithSub(ctx, "threads")
	require.True(t, ok)

	assert.Equal(t, []string{"x", "tiktok", "youtube", "instagram", "threads"}, first.(entity.StoredLayout).Slots)
}

func TestPanelArranger_RendersAfterSwap(t *testing.T) {
	ctx := testContext()
	ctrl := gomock.NewController(t)
	host := mocks.NewMockPanelHost(ctrl)

	arranger := usecase.NewPanelArranger(newTestSession(t), nil, host)

	host.EXPECT().Render(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, panels []entity.Panel) error {
			require.Len(t, panels, 5)
			assert.Equal(t, entity.SiteID("x"), panels[0].Site.ID)
			assert.Equal(t, entity.MainSlot(), panels[0].Slot)
			assert.Equal(t, entity.ModeDesktop, panels[0].Mode)
			return nil
		})

	_, ok := arranger.SwapMainWithSub(ctx, "x")
	assert.True(t, ok)
}

func TestPanelArranger_RenderFailureDoesNotUndoSwap(t *testing.T) {
	ctx := testContext()
	ctrl := gomock.NewController(t)
	host := mocks.NewMockPanelHost(ctrl)
	host.EXPECT().Render(gomock.Any(), gomock.Any()).Return(errors.New("window gone"))

	arranger := usecase.NewPanelArranger(newTestSession(t), nil, host)

	got, ok := arranger.SwapMainWithSub(ctx, "x")
	assert.True(t, ok)
	assert.Equal(t, got, arranger.CurrentArrangement())
}
