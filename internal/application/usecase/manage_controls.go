package usecase

import (
	"context"
	"fmt"

	"github.com/bnema/feedwall/internal/application/port"
	"github.com/bnema/feedwall/internal/domain/entity"
	"github.com/bnema/feedwall/internal/logging"
)

// ControlsObserver re-applies zoom and volume after a control change.
type ControlsObserver interface {
	OnControlsChanged(ctx context.Context)
}

// ManageControlsUseCase handles the global pin, zoom and volume controls and
// their per-site overrides.
type ManageControlsUseCase struct {
	session  *Session
	writer   SettingsEnqueuer
	observer ControlsObserver

	// lastVolume is restored by ToggleMute; guarded by session.mu.
	lastVolume float64
}

// NewManageControlsUseCase creates the controls use case. writer may be nil.
func NewManageControlsUseCase(session *Session, writer SettingsEnqueuer) *ManageControlsUseCase {
	return &ManageControlsUseCase{session: session, writer: writer, lastVolume: entity.VolumeDefault}
}

// SetObserver attaches the viewport coordinator.
func (uc *ManageControlsUseCase) SetObserver(observer ControlsObserver) {
	uc.observer = observer
}

// Controls returns a copy of the current controls.
func (uc *ManageControlsUseCase) Controls() entity.GlobalControls {
	return uc.session.Controls()
}

// Load replaces the controls without persisting them. Used on restore.
func (uc *ManageControlsUseCase) Load(ctx context.Context, c entity.GlobalControls) {
	c = c.Clone()
	c.Zoom = entity.ClampZoom(c.Zoom)
	c.Volume = entity.ClampVolume(c.Volume)
	uc.session.update(func(_ *entity.Board, cur *entity.GlobalControls) {
		*cur = c
		if c.Volume > 0 {
			uc.lastVolume = c.Volume
		}
	})
	uc.notify(ctx)
}

// SetPinned freezes or unfreezes the arrangement.
func (uc *ManageControlsUseCase) SetPinned(ctx context.Context, pinned bool) {
	uc.session.update(func(_ *entity.Board, c *entity.GlobalControls) {
		c.Pinned = pinned
	})
	logging.FromContext(ctx).Info().Bool("pinned", pinned).Msg("pin changed")
	uc.persist(port.SettingPinned, pinned)
}

// TogglePinned flips the pin and returns the new state.
func (uc *ManageControlsUseCase) TogglePinned(ctx context.Context) bool {
	var pinned bool
	uc.session.update(func(_ *entity.Board, c *entity.GlobalControls) {
		c.Pinned = !c.Pinned
		pinned = c.Pinned
	})
	logging.FromContext(ctx).Info().Bool("pinned", pinned).Msg("pin toggled")
	uc.persist(port.SettingPinned, pinned)
	return pinned
}

// SetZoom sets the global zoom multiplier, clamped, and returns it.
func (uc *ManageControlsUseCase) SetZoom(ctx context.Context, zoom float64) float64 {
	zoom = entity.ClampZoom(zoom)
	uc.session.update(func(_ *entity.Board, c *entity.GlobalControls) {
		c.Zoom = zoom
	})
	logging.FromContext(ctx).Debug().Str("zoom", entity.FormatPercent(zoom)).Msg("global zoom set")
	uc.persist(port.SettingZoom, zoom)
	uc.notify(ctx)
	return zoom
}

// StepZoom moves the global zoom one step in dir (+1 or -1).
func (uc *ManageControlsUseCase) StepZoom(ctx context.Context, dir int) float64 {
	return uc.SetZoom(ctx, entity.StepZoom(uc.session.Controls().Zoom, dir))
}

// ResetZoom restores the default global zoom.
func (uc *ManageControlsUseCase) ResetZoom(ctx context.Context) float64 {
	return uc.SetZoom(ctx, entity.ZoomDefault)
}

// SetVolume sets the global volume, clamped, and returns it.
func (uc *ManageControlsUseCase) SetVolume(ctx context.Context, volume float64) float64 {
	volume = entity.ClampVolume(volume)
	uc.session.update(func(_ *entity.Board, c *entity.GlobalControls) {
		c.Volume = volume
		if volume > 0 {
			uc.lastVolume = volume
		}
	})
	logging.FromContext(ctx).Debug().Str("volume", entity.FormatPercent(volume)).Msg("global volume set")
	uc.persist(port.SettingVolume, volume)
	uc.notify(ctx)
	return volume
}

// ToggleMute mutes, or restores the last non-zero volume when muted.
func (uc *ManageControlsUseCase) ToggleMute(ctx context.Context) float64 {
	var next float64
	uc.session.update(func(_ *entity.Board, c *entity.GlobalControls) {
		if c.Volume > 0 {
			next = 0
			return
		}
		next = uc.lastVolume
		if next <= 0 {
			next = entity.VolumeDefault
		}
	})
	return uc.SetVolume(ctx, next)
}

// SetSiteZoom overrides the zoom multiplier for one site.
func (uc *ManageControlsUseCase) SetSiteZoom(ctx context.Context, id entity.SiteID, zoom float64) error {
	if _, ok := uc.session.Site(id); !ok {
		return fmt.Errorf("set zoom for %q: %w", id, entity.ErrUnknownSite)
	}
	zoom = entity.ClampZoom(zoom)
	var snapshot map[string]float64
	uc.session.update(func(_ *entity.Board, c *entity.GlobalControls) {
		c.SiteZoom[id] = zoom
		snapshot = siteValues(c.SiteZoom)
	})
	logging.FromContext(ctx).Debug().Str("site", string(id)).Float64("zoom", zoom).Msg("site zoom set")
	uc.persist(port.SettingSiteZoom, snapshot)
	uc.notify(ctx)
	return nil
}

// ClearSiteZoom removes a site's zoom override.
func (uc *ManageControlsUseCase) ClearSiteZoom(ctx context.Context, id entity.SiteID) error {
	if _, ok := uc.session.Site(id); !ok {
		return fmt.Errorf("clear zoom for %q: %w", id, entity.ErrUnknownSite)
	}
	var snapshot map[string]float64
	uc.session.update(func(_ *entity.Board, c *entity.GlobalControls) {
		delete(c.SiteZoom, id)
		snapshot = siteValues(c.SiteZoom)
	})
	uc.persist(port.SettingSiteZoom, snapshot)
	uc.notify(ctx)
	return nil
}

// SetSiteVolume overrides the volume for one site.
func (uc *ManageControlsUseCase) SetSiteVolume(ctx context.Context, id entity.SiteID, volume float64) error {
	if _, ok := uc.session.Site(id); !ok {
		return fmt.Errorf("set volume for %q: %w", id, entity.ErrUnknownSite)
	}
	volume = entity.ClampVolume(volume)
	var snapshot map[string]float64
	uc.session.update(func(_ *entity.Board, c *entity.GlobalControls) {
		c.SiteVolume[id] = volume
		snapshot = siteValues(c.SiteVolume)
	})
	logging.FromContext(ctx).Debug().Str("site", string(id)).Float64("volume", volume).Msg("site volume set")
	uc.persist(port.SettingSiteVolume, snapshot)
	uc.notify(ctx)
	return nil
}

// ClearSiteVolume removes a site's volume override.
func (uc *ManageControlsUseCase) ClearSiteVolume(ctx context.Context, id entity.SiteID) error {
	if _, ok := uc.session.Site(id); !ok {
		return fmt.Errorf("clear volume for %q: %w", id, entity.ErrUnknownSite)
	}
	var snapshot map[string]float64
	uc.session.update(func(_ *entity.Board, c *entity.GlobalControls) {
		delete(c.SiteVolume, id)
		snapshot = siteValues(c.SiteVolume)
	})
	uc.persist(port.SettingSiteVolume, snapshot)
	uc.notify(ctx)
	return nil
}

func (uc *ManageControlsUseCase) persist(key string, value any) {
	if uc.writer != nil {
		uc.writer.Enqueue(key, value)
	}
}

func (uc *ManageControlsUseCase) notify(ctx context.Context) {
	if uc.observer != nil {
		uc.observer.OnControlsChanged(ctx)
	}
}

func siteValues(m map[entity.SiteID]float64) map[string]float64 {
	out := make(map[string]float64, len(m))
	for k, v := range m {
		out[string(k)] = v
	}
	return out
}
