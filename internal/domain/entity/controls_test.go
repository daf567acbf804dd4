package entity_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bnema/feedwall/internal/domain/entity"
)

func TestClampZoom(t *testing.T) {
	assert.Equal(t, 0.5, entity.ClampZoom(0.1))
	assert.Equal(t, 2.0, entity.ClampZoom(3))
	assert.Equal(t, 1.25, entity.ClampZoom(1.25))
	assert.Equal(t, entity.ZoomDefault, entity.ClampZoom(math.NaN()))
	assert.Equal(t, 2.0, entity.ClampZoom(math.Inf(1)))
}

func TestClampVolume(t *testing.T) {
	assert.Equal(t, 0.0, entity.ClampVolume(-0.5))
	assert.Equal(t, 1.0, entity.ClampVolume(1.5))
	assert.Equal(t, 0.3, entity.ClampVolume(0.3))
	assert.Equal(t, entity.VolumeDefault, entity.ClampVolume(math.NaN()))
}

func TestClamps_MonotonicAndIdempotent(t *testing.T) {
	prevZoom, prevVolume := math.Inf(-1), math.Inf(-1)
	for x := -3.0; x <= 3.0; x += 0.01 {
		z := entity.ClampZoom(x)
		v := entity.ClampVolume(x)

		assert.GreaterOrEqual(t, z, prevZoom)
		assert.GreaterOrEqual(t, v, prevVolume)
		assert.Equal(t, z, entity.ClampZoom(z))
		assert.Equal(t, v, entity.ClampVolume(v))

		prevZoom, prevVolume = z, v
	}
}

func TestStepZoom(t *testing.T) {
	assert.InDelta(t, 1.1, entity.StepZoom(1.0, 1), 1e-12)
	assert.InDelta(t, 0.9, entity.StepZoom(1.0, -1), 1e-12)
	assert.Equal(t, 2.0, entity.StepZoom(1.95, 1))
	assert.Equal(t, 0.5, entity.StepZoom(0.5, -1))

	z := 1.0
	for i := 0; i < 3; i++ {
		z = entity.StepZoom(z, 1)
	}
	assert.Equal(t, "130%", entity.FormatPercent(z))
}

func TestFormatPercent(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0%"},
		{0.555, "56%"},
		{0.5, "50%"},
		{1, "100%"},
		{0.004, "0%"},
		{0.005, "1%"},
		{1.234, "123%"},
		{2, "200%"},
		{0.2499, "25%"},
		{math.NaN(), "0%"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, entity.FormatPercent(tt.in), "input %v", tt.in)
	}
}

func TestVolumeIconFor(t *testing.T) {
	tests := []struct {
		in   float64
		want entity.VolumeIcon
	}{
		{0, entity.VolumeIconMute},
		{-1, entity.VolumeIconMute},
		{0.01, entity.VolumeIconLow},
		{0.29, entity.VolumeIconLow},
		{0.3, entity.VolumeIconMid},
		{0.69, entity.VolumeIconMid},
		{0.7, entity.VolumeIconHigh},
		{1, entity.VolumeIconHigh},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, entity.VolumeIconFor(tt.in), "volume %v", tt.in)
	}
	assert.NotEmpty(t, entity.VolumeIconMute.Glyph())
	assert.NotEqual(t, entity.VolumeIconLow.Glyph(), entity.VolumeIconHigh.Glyph())
}

func TestGlobalControls_EffectiveValues(t *testing.T) {
	c := entity.DefaultGlobalControls()
	c.Zoom = 1.2
	c.SiteZoom["x"] = 0.8
	c.SiteVolume["tiktok"] = 0

	assert.Equal(t, 1.2, c.EffectiveZoom("youtube"))
	assert.Equal(t, 0.8, c.EffectiveZoom("x"))
	assert.Equal(t, entity.VolumeDefault, c.EffectiveVolume("youtube"))
	assert.Equal(t, 0.0, c.EffectiveVolume("tiktok"))

	clone := c.Clone()
	clone.SiteZoom["x"] = 1.9
	assert.Equal(t, 0.8, c.SiteZoom["x"])
}
