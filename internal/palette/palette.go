// Package palette turns generated harmony colors into displayable swatches:
// hex labels, a readable text color per swatch, and the random base color
// helper used by the presentation layer.
package palette

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/irfansharif/palettepro/internal/colorspace"
	"github.com/irfansharif/palettepro/internal/harmony"
)

const (
	contrastThreshold = 4.5 // WCAG AA for normal text
	textLight         = "#ffffff"
	textDark          = "#000000"
)

// Swatch is one displayed palette entry.
type Swatch struct {
	Index int         // position in the palette, 0 is the base color
	Color harmony.HSL // color as generated
	Hex   string      // lowercase #rrggbb
	Text  string      // text color readable on top of the swatch
}

// Label is the 1-based badge shown on the swatch.
func (s Swatch) Label() string {
	return fmt.Sprintf("#%d", s.Index+1)
}

// DisplayHex is the hex code as printed on the swatch.
func (s Swatch) DisplayHex() string {
	return strings.ToUpper(s.Hex)
}

// TextColor is Text as a color, black if Text is malformed.
func (s Swatch) TextColor() colorful.Color {
	c, err := colorspace.ParseHex(s.Text)
	if err != nil {
		return colorful.Color{}
	}
	return c
}

// Palette is an ordered list of swatches.
type Palette []Swatch

// Build serializes generated colors into swatches.
func Build(colors []harmony.HSL) Palette {
	p := make(Palette, len(colors))
	hexes := colorspace.Hexes(colors)
	for i, c := range colors {
		p[i] = Swatch{
			Index: i,
			Color: c,
			Hex:   hexes[i],
			Text:  ContrastText(colorspace.FromHSL(c)),
		}
	}
	return p
}

// Hexes returns the hex code of every swatch.
func (p Palette) Hexes() []string {
	out := make([]string, len(p))
	for i, s := range p {
		out[i] = s.Hex
	}
	return out
}

// CopyAllText is what "copy all" puts on the clipboard.
func (p Palette) CopyAllText() string {
	return strings.Join(p.Hexes(), ", ")
}

// ContrastRatio returns the WCAG contrast ratio between two colors, in
// [1, 21].
func ContrastRatio(a, b colorful.Color) float64 {
	la, lb := luminance(a), luminance(b)
	if la < lb {
		la, lb = lb, la
	}
	return (la + 0.05) / (lb + 0.05)
}

// luminance is the WCAG relative luminance.
func luminance(c colorful.Color) float64 {
	r, g, b := c.Clamped().LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b
}

// ContrastText picks white text when it clears the contrast threshold against
// the swatch, black otherwise.
func ContrastText(c colorful.Color) string {
	white := colorful.Color{R: 1, G: 1, B: 1}
	if ContrastRatio(c, white) > contrastThreshold {
		return textLight
	}
	return textDark
}

// Title names a palette after its rule.
func Title(rule harmony.Rule) string {
	switch rule {
	case harmony.Monochromatic:
		return "Monochromatic Palette"
	case harmony.Analogous:
		return "Analogous Harmony"
	case harmony.Complementary:
		return "Complementary Colors"
	case harmony.Triadic:
		return "Triadic Harmony"
	case harmony.Tetradic:
		return "Tetradic Square"
	case harmony.Rainbow:
		return "Rainbow Spectrum"
	case harmony.SplitComplementary:
		return "Split Complementary"
	default:
		return "Custom Palette"
	}
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

// RandomBase returns a random, reasonably vivid base color. Randomness lives
// here, never in the harmony engine.
func RandomBase(r *rand.Rand) harmony.HSL {
	return harmony.HSL{
		H: r.Float64() * 360,
		S: clamp(0.45+r.Float64()*0.55, 0, 1),
		L: clamp(0.35+r.Float64()*0.3, 0, 1),
	}
}

// DescribeLightness names a wheel lightness band, given in percent.
func DescribeLightness(percent int) string {
	switch {
	case percent <= 30:
		return "Very Dark - Deep, rich tones"
	case percent <= 40:
		return "Dark - Bold colors"
	case percent <= 60:
		return "Standard - Saturated colors"
	case percent <= 70:
		return "Light - Soft tones"
	case percent <= 80:
		return "Pastel - Light, gentle colors"
	default:
		return "Very Light - Subtle pastels"
	}
}
