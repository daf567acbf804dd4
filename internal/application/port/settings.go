package port

import "context"

// Setting keys persisted in the settings store.
const (
	SettingLayout     = "layout"
	SettingPinned     = "pinned"
	SettingZoom       = "zoom"
	SettingVolume     = "volume"
	SettingSiteZoom   = "site_zoom"
	SettingSiteVolume = "site_volume"
)

// SettingsStore is the asynchronous key-value store that outlives the
// process. Values cross the boundary as JSON.
type SettingsStore interface {
	// Get returns the raw JSON value for key, or (nil, nil) when absent.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set stores value (JSON-encoded by the implementation) under key.
	Set(ctx context.Context, key string, value any) error
}
