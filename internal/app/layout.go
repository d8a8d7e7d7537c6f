package app

import (
	"math"

	"github.com/irfansharif/palettepro/internal/geom"
	"github.com/irfansharif/palettepro/internal/wheel"
)

const (
	margin        = 32.0
	swatchGap     = 12.0
	wheelFraction = 0.4 // share of the width given to the wheel panel
)

// Layout places the wheel and swatches in a framebuffer. The wheel sits in a
// panel on the left; swatches form a row of equal columns on the right.
type Layout struct {
	Width, Height int
	WheelPanel    geom.Box
	SwatchPanel   geom.Box
	Wheel         wheel.Wheel
	Swatches      []geom.Box
}

// NewLayout lays out n swatches in a w×h framebuffer.
func NewLayout(w, h, n int) Layout {
	l := Layout{Width: w, Height: h}
	W, H := float64(w), float64(h)

	leftW := math.Floor(W * wheelFraction)
	l.WheelPanel = geom.MakeBox(margin, margin, math.Max(0, leftW-1.5*margin), math.Max(0, H-2*margin))
	l.SwatchPanel = geom.MakeBox(leftW+0.5*margin, margin, math.Max(0, W-leftW-1.5*margin), math.Max(0, H-2*margin))

	radius := 0.5*math.Min(l.WheelPanel.W, l.WheelPanel.H) - margin
	l.Wheel = wheel.New(l.WheelPanel.Center(), math.Max(0, radius))

	if n <= 0 {
		return l
	}
	area := l.SwatchPanel.Inset(margin)
	swatchW := math.Max(0, (area.W-swatchGap*float64(n-1))/float64(n))
	l.Swatches = make([]geom.Box, n)
	for i := range l.Swatches {
		l.Swatches[i] = geom.MakeBox(area.X+float64(i)*(swatchW+swatchGap), area.Y, swatchW, area.H)
	}
	return l
}

// SwatchAt returns the swatch under p.
func (l Layout) SwatchAt(p geom.Point) (int, bool) {
	for i, b := range l.Swatches {
		if b.Contains(p) {
			return i, true
		}
	}
	return -1, false
}

// WheelAt returns the hue and saturation under p.
func (l Layout) WheelAt(p geom.Point) (hue, sat float64, ok bool) {
	return l.Wheel.At(p)
}
