package usecase

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/bnema/feedwall/internal/application/port"
	"github.com/bnema/feedwall/internal/domain/entity"
	"github.com/bnema/feedwall/internal/logging"
)

// RestoreOutput reports what was restored.
type RestoreOutput struct {
	Arrangement    entity.Arrangement
	Controls       entity.GlobalControls
	LayoutRestored bool
}

// RestoreSessionUseCase loads persisted settings into the session at startup.
type RestoreSessionUseCase struct {
	store    port.SettingsStore
	arranger *PanelArranger
	controls *ManageControlsUseCase
}

// NewRestoreSessionUseCase creates the restore use case.
func NewRestoreSessionUseCase(
	store port.SettingsStore,
	arranger *PanelArranger,
	controls *ManageControlsUseCase,
) *RestoreSessionUseCase {
	return &RestoreSessionUseCase{store: store, arranger: arranger, controls: controls}
}

var restoreKeys = []string{
	port.SettingLayout,
	port.SettingPinned,
	port.SettingZoom,
	port.SettingVolume,
	port.SettingSiteZoom,
	port.SettingSiteVolume,
}

// Execute reads every setting concurrently. Read failures and malformed
// values fall back to defaults; only context cancellation is returned.
func (uc *RestoreSessionUseCase) Execute(ctx context.Context) (*RestoreOutput, error) {
	log := logging.FromContext(ctx).With().Str("component", "restore").Logger()

	raw := make([][]byte, len(restoreKeys))
	g, gctx := errgroup.WithContext(ctx)
	for i, key := range restoreKeys {
		g.Go(func() error {
			data, err := uc.store.Get(gctx, key)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				log.Warn().Err(err).Str("key", key).Msg("failed to read setting, using default")
				return nil
			}
			raw[i] = data
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("restore settings: %w", err)
	}

	values := make(map[string][]byte, len(restoreKeys))
	for i, key := range restoreKeys {
		if len(raw[i]) > 0 {
			values[key] = raw[i]
		}
	}

	out := &RestoreOutput{}
	if data, ok := values[port.SettingLayout]; ok {
		arr, err := entity.ParseStoredLayout(data)
		switch {
		case err != nil:
			log.Warn().Err(err).Msg("persisted layout is invalid, keeping default arrangement")
		case uc.arranger.ApplyArrangement(ctx, arr):
			out.LayoutRestored = true
		}
	}

	controls := entity.DefaultGlobalControls()
	decodeSetting(&log, values, port.SettingPinned, &controls.Pinned)
	decodeSetting(&log, values, port.SettingZoom, &controls.Zoom)
	decodeSetting(&log, values, port.SettingVolume, &controls.Volume)
	controls.SiteZoom = uc.decodeSiteValues(&log, values, port.SettingSiteZoom)
	controls.SiteVolume = uc.decodeSiteValues(&log, values, port.SettingSiteVolume)
	uc.controls.Load(ctx, controls)

	out.Arrangement = uc.arranger.CurrentArrangement()
	out.Controls = uc.controls.Controls()
	log.Info().
		Strs("slots", out.Arrangement.Strings()).
		Bool("layout_restored", out.LayoutRestored).
		Bool("pinned", out.Controls.Pinned).
		Msg("session restored")
	return out, nil
}

// decodeSetting leaves dst at its default when the value is absent or malformed.
func decodeSetting[T any](log *zerolog.Logger, values map[string][]byte, key string, dst *T) {
	data, ok := values[key]
	if !ok {
		return
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("malformed setting, using default")
		return
	}
	*dst = v
}

// decodeSiteValues drops overrides for sites that are no longer configured.
func (uc *RestoreSessionUseCase) decodeSiteValues(
	log *zerolog.Logger,
	values map[string][]byte,
	key string,
) map[entity.SiteID]float64 {
	var stored map[string]float64
	decodeSetting(log, values, key, &stored)

	out := make(map[entity.SiteID]float64, len(stored))
	for site, v := range stored {
		id := entity.SiteID(site)
		if _, ok := uc.arranger.session.Site(id); !ok {
			log.Debug().Str("key", key).Str("site", site).Msg("dropping override for unknown site")
			continue
		}
		out[id] = v
	}
	return out
}
