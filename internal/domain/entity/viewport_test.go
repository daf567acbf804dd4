package entity_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/feedwall/internal/domain/entity"
)

func TestCalculateZoom(t *testing.T) {
	tests := []struct {
		name    string
		mode    entity.PresentationMode
		w, h    float64
		raw     float64
		clamped float64
	}{
		{"desktop reference size", entity.ModeDesktop, 1280, 720, 1.0, 1.0},
		{"desktop double size", entity.ModeDesktop, 2560, 1440, 2.0, 2.0},
		{"desktop quarter size", entity.ModeDesktop, 320, 180, 0.25, 0.5},
		{"desktop huge panel", entity.ModeDesktop, 10000, 10000, 7.8125, 2.0},
		{"desktop height bound", entity.ModeDesktop, 2560, 720, 1.0, 1.0},
		{"mobile reference size", entity.ModeMobile, 393, 852, 1.0, 1.0},
		{"mobile half width", entity.ModeMobile, 196.5, 852, 0.5, 0.5},
		{"mobile tiny", entity.ModeMobile, 50, 50, 50.0 / 852, 0.25},
		{"mobile large", entity.ModeMobile, 1000, 2000, 2000.0 / 852, 1.0},
		{"zero width", entity.ModeDesktop, 0, 720, 0, 0.5},
		{"negative height", entity.ModeMobile, 393, -1, 0, 0.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := entity.CalculateZoom(tt.mode, tt.w, tt.h)
			assert.InDelta(t, tt.raw, got.Raw, 1e-9)
			assert.InDelta(t, tt.clamped, got.Clamped, 1e-9)
		})
	}
}

func TestCalculateZoom_ClampedWithinModeRange(t *testing.T) {
	for w := 1.0; w < 6000; w *= 1.7 {
		for h := 1.0; h < 6000; h *= 1.9 {
			d := entity.CalculateZoom(entity.ModeDesktop, w, h).Clamped
			assert.GreaterOrEqual(t, d, 0.5)
			assert.LessOrEqual(t, d, 2.0)

			m := entity.CalculateZoom(entity.ModeMobile, w, h).Clamped
			assert.GreaterOrEqual(t, m, 0.25)
			assert.LessOrEqual(t, m, 1.0)
		}
	}
}

func TestNewReferenceViewport(t *testing.T) {
	rv, err := entity.NewReferenceViewport(800, 600, 0.5, 1.5)
	require.NoError(t, err)
	assert.Equal(t, 1.0, rv.Fit(800, 600).Clamped)

	invalid := [][4]float64{
		{0, 600, 0.5, 1.5},
		{800, -1, 0.5, 1.5},
		{800, 600, 0, 1.5},
		{800, 600, 2, 1},
		{math.NaN(), 600, 0.5, 1.5},
	}
	for _, c := range invalid {
		_, err := entity.NewReferenceViewport(c[0], c[1], c[2], c[3])
		assert.ErrorIs(t, err, entity.ErrInvalidReferenceViewport, "%v", c)
	}
}

func TestViewports(t *testing.T) {
	v := entity.DefaultViewports()
	require.NoError(t, v.Validate())
	assert.Equal(t, entity.DesktopViewport, v.For(entity.ModeDesktop))
	assert.Equal(t, entity.MobileViewport, v.For(entity.ModeMobile))

	v.Mobile.MaxScale = 0.1
	assert.ErrorIs(t, v.Validate(), entity.ErrInvalidReferenceViewport)
}
