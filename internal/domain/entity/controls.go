package entity

import (
	"math"
	"strconv"
)

// Zoom and volume constants.
const (
	ZoomDefault   = 1.0
	ZoomMin       = 0.5 // 50%
	ZoomMax       = 2.0 // 200%
	ZoomStep      = 0.1 // 10% increments
	VolumeDefault = 0.5
	VolumeMin     = 0.0
	VolumeMax     = 1.0
)

// ClampZoom constrains a global zoom multiplier to [ZoomMin, ZoomMax].
// NaN resets to ZoomDefault.
func ClampZoom(z float64) float64 {
	if math.IsNaN(z) {
		return ZoomDefault
	}
	return clamp(z, ZoomMin, ZoomMax)
}

// ClampVolume constrains a volume to [0, 1]. NaN resets to VolumeDefault.
func ClampVolume(v float64) float64 {
	if math.IsNaN(v) {
		return VolumeDefault
	}
	return clamp(v, VolumeMin, VolumeMax)
}

// StepZoom moves z by dir steps of ZoomStep, snapping to one decimal.
func StepZoom(z float64, dir int) float64 {
	next := ClampZoom(z) + float64(dir)*ZoomStep
	return ClampZoom(math.Round(next*10) / 10)
}

// FormatPercent renders a ratio as a whole percentage, rounding half up
// ("56%" for 0.555). Binary noise below 1e-9 is snapped away first so that
// values whose decimal form ends in 5 round up.
func FormatPercent(x float64) string {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return "0%"
	}
	v := math.Round(x*100*1e9) / 1e9
	p := math.Floor(v + 0.5)
	if p == 0 {
		p = 0 // drop negative zero
	}
	return strconv.FormatFloat(p, 'f', 0, 64) + "%"
}

// VolumeIcon is the icon band of a volume level.
type VolumeIcon string

const (
	VolumeIconMute VolumeIcon = "mute"
	VolumeIconLow  VolumeIcon = "low"
	VolumeIconMid  VolumeIcon = "mid"
	VolumeIconHigh VolumeIcon = "high"
)

// Volume band lower bounds.
const (
	volumeMidFloor  = 0.3
	volumeHighFloor = 0.7
)

// VolumeIconFor selects the icon band; each band includes its lower bound.
func VolumeIconFor(v float64) VolumeIcon {
	v = ClampVolume(v)
	switch {
	case v == 0:
		return VolumeIconMute
	case v < volumeMidFloor:
		return VolumeIconLow
	case v < volumeHighFloor:
		return VolumeIconMid
	default:
		return VolumeIconHigh
	}
}

// Glyph returns a single-character rendering of the icon.
func (i VolumeIcon) Glyph() string {
	switch i {
	case VolumeIconMute:
		return "🔇"
	case VolumeIconLow:
		return "🔈"
	case VolumeIconMid:
		return "🔉"
	default:
		return "🔊"
	}
}

// GlobalControls are the user controls shared by every panel.
// SiteZoom and SiteVolume override the global values for one site.
type GlobalControls struct {
	Pinned     bool
	Zoom       float64
	Volume     float64
	SiteZoom   map[SiteID]float64
	SiteVolume map[SiteID]float64
}

// DefaultGlobalControls returns unpinned controls at default zoom and volume.
func DefaultGlobalControls() GlobalControls {
	return GlobalControls{
		Zoom:       ZoomDefault,
		Volume:     VolumeDefault,
		SiteZoom:   map[SiteID]float64{},
		SiteVolume: map[SiteID]float64{},
	}
}

// EffectiveZoom returns the site's zoom override or the global zoom.
func (c GlobalControls) EffectiveZoom(id SiteID) float64 {
	if z, ok := c.SiteZoom[id]; ok {
		return ClampZoom(z)
	}
	return ClampZoom(c.Zoom)
}

// EffectiveVolume returns the site's volume override or the global volume.
func (c GlobalControls) EffectiveVolume(id SiteID) float64 {
	if v, ok := c.SiteVolume[id]; ok {
		return ClampVolume(v)
	}
	return ClampVolume(c.Volume)
}

// Clone returns a deep copy.
func (c GlobalControls) Clone() GlobalControls {
	out := c
	out.SiteZoom = make(map[SiteID]float64, len(c.SiteZoom))
	for k, v := range c.SiteZoom {
		out.SiteZoom[k] = v
	}
	out.SiteVolume = make(map[SiteID]float64, len(c.SiteVolume))
	for k, v := range c.SiteVolume {
		out.SiteVolume[k] = v
	}
	return out
}
