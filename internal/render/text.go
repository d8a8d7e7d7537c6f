package render

import (
	"image"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/irfansharif/palettepro/internal/geom"
)

// Label is text drawn over the scene in the 7x13 bitmap font.
type Label struct {
	Pos   geom.Point // top-left corner
	Lines []string
	Color colorful.Color
	Scale float64 // framebuffer pixels per font pixel; <= 0 means 1
}

var labelFace = basicfont.Face7x13

// TextSize is the size of lines drawn at scale, in framebuffer pixels.
func TextSize(lines []string, scale float64) (w, h float64) {
	if scale <= 0 {
		scale = 1
	}
	width := 0
	for _, line := range lines {
		if adv := font.MeasureString(labelFace, line).Ceil(); adv > width {
			width = adv
		}
	}
	height := labelFace.Metrics().Height.Ceil() * len(lines)
	return float64(width) * scale, float64(height) * scale
}

// rasterize draws lines into a glyph mask, one line per font height.
func rasterize(lines []string) *image.Alpha {
	w, h := TextSize(lines, 1)
	mask := image.NewAlpha(image.Rect(0, 0, int(w), int(h)))
	if mask.Rect.Empty() {
		return mask
	}
	metrics := labelFace.Metrics()
	d := font.Drawer{Dst: mask, Src: image.Opaque, Face: labelFace}
	for i, line := range lines {
		d.Dot = fixed.P(0, i*metrics.Height.Ceil()+metrics.Ascent.Ceil())
		d.DrawString(line)
	}
	return mask
}

// appendText appends one quad per horizontal run of lit glyph pixels. The
// bitmap font has no antialiasing, so runs are exact.
func appendText(vertices []float32, l Label) []float32 {
	scale := l.Scale
	if scale <= 0 {
		scale = 1
	}
	mask := rasterize(l.Lines)
	b := mask.Bounds()
	lit := func(x, y int) bool { return mask.AlphaAt(x, y).A >= 0x80 }

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; {
			if !lit(x, y) {
				x++
				continue
			}
			start := x
			for x < b.Max.X && lit(x, y) {
				x++
			}
			lo := l.Pos.Add(geom.MakePoint(float64(start), float64(y)).Scale(scale))
			hi := l.Pos.Add(geom.MakePoint(float64(x), float64(y+1)).Scale(scale))
			vertices = appendRect(vertices, lo, hi, l.Color)
		}
	}
	return vertices
}

// appendRect appends an axis-aligned opaque rectangle as two triangles.
func appendRect(vertices []float32, lo, hi geom.Point, c colorful.Color) []float32 {
	a, b := lo, geom.MakePoint(hi.X, lo.Y)
	cc, d := hi, geom.MakePoint(lo.X, hi.Y)
	return appendTriangles(vertices, [][3]geom.Point{{a, b, cc}, {a, cc, d}}, c, 1)
}
