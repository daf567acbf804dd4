package entity

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidReferenceViewport is returned for reference viewports that cannot
// be scaled against (non-positive sizes or an inverted scale range).
var ErrInvalidReferenceViewport = errors.New("invalid reference viewport")

// ReferenceViewport is the nominal logical size that panel content is scaled
// against, together with the scale range allowed for the mode.
type ReferenceViewport struct {
	Width    float64
	Height   float64
	MinScale float64
	MaxScale float64
}

// Built-in reference viewports.
var (
	DesktopViewport = ReferenceViewport{Width: 1280, Height: 720, MinScale: 0.5, MaxScale: 2.0}
	MobileViewport  = ReferenceViewport{Width: 393, Height: 852, MinScale: 0.25, MaxScale: 1.0}
)

// NewReferenceViewport validates and builds a reference viewport.
func NewReferenceViewport(width, height, minScale, maxScale float64) (ReferenceViewport, error) {
	rv := ReferenceViewport{Width: width, Height: height, MinScale: minScale, MaxScale: maxScale}
	if err := rv.Validate(); err != nil {
		return ReferenceViewport{}, err
	}
	return rv, nil
}

// Validate reports whether the viewport can be used for zoom calculation.
func (rv ReferenceViewport) Validate() error {
	if !(rv.Width > 0) || !(rv.Height > 0) {
		return fmt.Errorf("%w: size %gx%g must be positive", ErrInvalidReferenceViewport, rv.Width, rv.Height)
	}
	if !(rv.MinScale > 0) || rv.MinScale > rv.MaxScale {
		return fmt.Errorf("%w: scale range [%g, %g]", ErrInvalidReferenceViewport, rv.MinScale, rv.MaxScale)
	}
	return nil
}

// ZoomResult holds both the raw fit factor and the mode-clamped one.
type ZoomResult struct {
	Raw     float64
	Clamped float64
}

// Viewports pairs the reference viewports of both modes.
type Viewports struct {
	Desktop ReferenceViewport
	Mobile  ReferenceViewport
}

// DefaultViewports returns the built-in desktop and mobile references.
func DefaultViewports() Viewports {
	return Viewports{Desktop: DesktopViewport, Mobile: MobileViewport}
}

// For returns the reference viewport of a mode.
func (v Viewports) For(mode PresentationMode) ReferenceViewport {
	if mode == ModeMobile {
		return v.Mobile
	}
	return v.Desktop
}

// Validate checks both references.
func (v Viewports) Validate() error {
	if err := v.Desktop.Validate(); err != nil {
		return fmt.Errorf("desktop: %w", err)
	}
	if err := v.Mobile.Validate(); err != nil {
		return fmt.Errorf("mobile: %w", err)
	}
	return nil
}

// CalculateZoom maps a panel size to a scale factor using the built-in
// reference viewports.
func CalculateZoom(mode PresentationMode, panelWidth, panelHeight float64) ZoomResult {
	return DefaultViewports().For(mode).Fit(panelWidth, panelHeight)
}

// Fit returns the largest factor at which the reference content fits inside
// the panel on both axes, and that factor clamped to the scale range.
// Non-positive panel sizes yield a raw factor of 0.
func (rv ReferenceViewport) Fit(panelWidth, panelHeight float64) ZoomResult {
	raw := 0.0
	if panelWidth > 0 && panelHeight > 0 {
		raw = math.Min(panelWidth/rv.Width, panelHeight/rv.Height)
	}
	return ZoomResult{Raw: raw, Clamped: clamp(raw, rv.MinScale, rv.MaxScale)}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
