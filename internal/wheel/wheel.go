// Package wheel maps between screen positions and hue/saturation pairs on a
// circular color wheel. Hue grows clockwise from the positive x axis, and
// saturation grows linearly from the center (0) to the rim (1).
package wheel

import (
	"math"

	"github.com/irfansharif/palettepro/internal/geom"
	"github.com/irfansharif/palettepro/internal/harmony"
)

// MarkerExclusion is the angular distance (degrees) around the picker hue
// within which harmony markers are not drawn.
const MarkerExclusion = 5.0

// Wheel is a hue/saturation disc centered at Center.
type Wheel struct {
	Center geom.Point
	Radius float64
}

// Marker is a harmony hue placed on the wheel.
type Marker struct {
	Hue float64
	Pos geom.Point
}

// Sector is one pie wedge of the wheel: the center followed by two rim points
// at hues From and To.
type Sector struct {
	From, To float64
	Tri      [3]geom.Point
}

func New(center geom.Point, radius float64) Wheel {
	return Wheel{Center: center, Radius: radius}
}

// At maps a screen point to the hue and saturation under it. ok is false for
// points outside the disc.
func (w Wheel) At(p geom.Point) (hue, sat float64, ok bool) {
	if w.Radius <= 0 {
		return 0, 0, false
	}
	d := geom.Dist(w.Center, p)
	if d > w.Radius {
		return 0, 0, false
	}
	return harmony.NormalizeHue(geom.Angle(w.Center, p)), math.Min(1, d/w.Radius), true
}

// Point is the inverse of At. Saturation is clamped to [0,1].
func (w Wheel) Point(hue, sat float64) geom.Point {
	if sat < 0 || math.IsNaN(sat) {
		sat = 0
	}
	if sat > 1 {
		sat = 1
	}
	return geom.Polar(w.Center, sat*w.Radius, harmony.NormalizeHue(hue))
}

// Markers places each harmony hue at the picker's saturation, skipping hues
// that would sit on top of the picker itself.
func (w Wheel) Markers(hues []float64, hue, sat float64) []Marker {
	markers := make([]Marker, 0, len(hues))
	for _, h := range hues {
		if hueDistance(h, hue) <= MarkerExclusion {
			continue
		}
		markers = append(markers, Marker{Hue: harmony.NormalizeHue(h), Pos: w.Point(h, sat)})
	}
	return markers
}

// Sectors splits the disc into n wedges of equal angle.
func (w Wheel) Sectors(n int) []Sector {
	if n < 3 {
		n = 3
	}
	step := 360 / float64(n)
	sectors := make([]Sector, n)
	for i := range sectors {
		from, to := float64(i)*step, float64(i+1)*step
		sectors[i] = Sector{
			From: from,
			To:   harmony.NormalizeHue(to),
			Tri: [3]geom.Point{
				w.Center,
				geom.Polar(w.Center, w.Radius, from),
				geom.Polar(w.Center, w.Radius, to),
			},
		}
	}
	return sectors
}

func hueDistance(a, b float64) float64 {
	d := math.Abs(harmony.NormalizeHue(a) - harmony.NormalizeHue(b))
	return math.Min(d, 360-d)
}
