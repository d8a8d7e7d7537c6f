package render

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/irfansharif/palettepro/internal/geom"
	"github.com/irfansharif/palettepro/internal/wheel"
)

const circleSegments = 32

var (
	white = colorful.Color{R: 1, G: 1, B: 1}
	black = colorful.Color{}
)

// appendVertex appends one (x, y, r, g, b, a) vertex.
func appendVertex(vertices []float32, p geom.Point, c colorful.Color, alpha float64) []float32 {
	c = c.Clamped()
	return append(vertices,
		float32(p.X), float32(p.Y), // position
		float32(c.R), float32(c.G), float32(c.B), float32(alpha), // color
	)
}

// appendTriangles appends solid-colored triangles.
func appendTriangles(vertices []float32, triangles [][3]geom.Point, c colorful.Color, alpha float64) []float32 {
	for _, tri := range triangles {
		for v := 0; v < 3; v++ {
			vertices = appendVertex(vertices, tri[v], c, alpha)
		}
	}
	return vertices
}

// appendPolygon triangulates and appends a solid-colored polygon, with
// optional holes.
func appendPolygon(vertices []float32, c colorful.Color, alpha float64, outer []geom.Point, holes ...[]geom.Point) ([]float32, error) {
	triangles, err := earClip(outer, holes...)
	if err != nil {
		return vertices, err
	}
	return appendTriangles(vertices, triangles, c, alpha), nil
}

// appendDisc appends a filled circle.
func appendDisc(vertices []float32, center geom.Point, radius float64, c colorful.Color) ([]float32, error) {
	return appendPolygon(vertices, c, 1, geom.Circle(center, radius, circleSegments))
}

// appendRing appends an annulus between inner and outer radii.
func appendRing(vertices []float32, center geom.Point, inner, outer float64, c colorful.Color, alpha float64) ([]float32, error) {
	return appendPolygon(vertices, c, alpha,
		geom.Circle(center, outer, circleSegments),
		reversed(geom.Circle(center, inner, circleSegments)),
	)
}

// appendOutline appends a rectangular frame of the given thickness drawn
// inside the box.
func appendOutline(vertices []float32, box geom.Box, thickness float64, c colorful.Color, alpha float64) ([]float32, error) {
	return appendPolygon(vertices, c, alpha, box.Corners(), reversed(box.Inset(thickness).Corners()))
}

// wheelVertices builds the hue/saturation disc at a fixed lightness. Every
// wedge is a single triangle: gray at the center, fully saturated at the rim.
// HSL is linear in saturation at a fixed hue and lightness, so the
// rasterizer's color interpolation reproduces the radial gradient.
func wheelVertices(w wheel.Wheel, lightness float64, segments int) []float32 {
	sectors := w.Sectors(segments)
	vertices := make([]float32, 0, len(sectors)*3*6)
	for _, s := range sectors {
		vertices = appendVertex(vertices, s.Tri[0], colorful.Hsl(s.From, 0, lightness), 1)
		vertices = appendVertex(vertices, s.Tri[1], colorful.Hsl(s.From, 1, lightness), 1)
		vertices = appendVertex(vertices, s.Tri[2], colorful.Hsl(s.To, 1, lightness), 1)
	}
	return vertices
}

// markerVertices draws each harmony marker as a white ring around a black
// edged disc in the marker's color, and the picker handle as a larger one.
func markerVertices(markers []wheel.Marker, sat, lightness float64, picker geom.Point, pickerColor colorful.Color) ([]float32, error) {
	var (
		vertices []float32
		err      error
	)
	for _, m := range markers {
		if vertices, err = appendHandle(vertices, m.Pos, 6, colorful.Hsl(m.Hue, sat, lightness)); err != nil {
			return nil, err
		}
	}
	if vertices, err = appendHandle(vertices, picker, 8, pickerColor); err != nil {
		return nil, err
	}
	return vertices, nil
}

func appendHandle(vertices []float32, center geom.Point, radius float64, c colorful.Color) ([]float32, error) {
	var err error
	if vertices, err = appendRing(vertices, center, radius, radius+2.5, white, 0.95); err != nil {
		return nil, err
	}
	if vertices, err = appendDisc(vertices, center, radius, black); err != nil {
		return nil, err
	}
	return appendDisc(vertices, center, radius-1, c)
}

func reversed(pts []geom.Point) []geom.Point {
	out := make([]geom.Point, len(pts))
	for i, p := range pts {
		out[len(pts)-1-i] = p
	}
	return out
}
