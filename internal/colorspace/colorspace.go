// Package colorspace converts between the textual color forms a user can type
// (hex, RGB triples, HSL triples) and the HSL representation the harmony
// engine works in. Conversions go through go-colorful.
package colorspace

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/irfansharif/palettepro/internal/harmony"
)

// ErrInvalidColor is returned (wrapped) for text that is not a color.
var ErrInvalidColor = errors.New("invalid color")

var hexPattern = regexp.MustCompile(`^#[0-9a-f]{3}$|^#[0-9a-f]{6}$`)

// FromHSL converts an engine color into a go-colorful color.
func FromHSL(c harmony.HSL) colorful.Color {
	return colorful.Hsl(c.H, c.S, c.L).Clamped()
}

// ToHSL converts a go-colorful color into an engine color. Components that
// come out non-numeric are replaced with the engine defaults (hue 0,
// saturation and lightness 0.5).
func ToHSL(c colorful.Color) harmony.HSL {
	h, s, l := c.Clamped().Hsl()
	if math.IsNaN(h) {
		h = 0
	}
	if math.IsNaN(s) {
		s = 0.5
	}
	if math.IsNaN(l) {
		l = 0.5
	}
	return harmony.HSL{H: harmony.NormalizeHue(h), S: s, L: l}
}

// Hex serializes an engine color as lowercase #rrggbb.
func Hex(c harmony.HSL) string {
	return FromHSL(c).Hex()
}

// Hexes serializes a palette.
func Hexes(colors []harmony.HSL) []string {
	out := make([]string, len(colors))
	for i, c := range colors {
		out[i] = Hex(c)
	}
	return out
}

// FromRGB255 builds a color from 8-bit channels.
func FromRGB255(r, g, b uint8) colorful.Color {
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}

// ParseHex parses 3- or 6-digit hex, with or without the leading '#'.
// Surrounding whitespace and case are ignored.
func ParseHex(s string) (colorful.Color, error) {
	clean := strings.ToLower(strings.TrimSpace(s))
	if clean != "" && !strings.HasPrefix(clean, "#") {
		clean = "#" + clean
	}
	if !hexPattern.MatchString(clean) {
		return colorful.Color{}, fmt.Errorf("%w: %q is not a 3 or 6 digit hex color", ErrInvalidColor, s)
	}
	c, err := colorful.Hex(clean)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("%w: %v", ErrInvalidColor, err)
	}
	return c, nil
}

// ParseRGB parses "r, g, b" or "rgb(r, g, b)". Fields that don't start with a
// number count as 0; values are clamped to [0, 255].
func ParseRGB(s string) (colorful.Color, error) {
	fields, err := triple(s, "rgb")
	if err != nil {
		return colorful.Color{}, err
	}
	var ch [3]uint8
	for i, f := range fields {
		ch[i] = uint8(clampInt(leadingInt(f), 0, 255))
	}
	return FromRGB255(ch[0], ch[1], ch[2]), nil
}

// ParseHSL parses "h, s%, l%" or "hsl(h, s%, l%)"; the percent signs are
// optional. Hue is clamped to [0, 360], saturation and lightness to [0, 100].
func ParseHSL(s string) (colorful.Color, error) {
	fields, err := triple(s, "hsl")
	if err != nil {
		return colorful.Color{}, err
	}
	h := clampInt(leadingInt(fields[0]), 0, 360)
	sat := clampInt(leadingInt(strings.ReplaceAll(fields[1], "%", "")), 0, 100)
	l := clampInt(leadingInt(strings.ReplaceAll(fields[2], "%", "")), 0, 100)
	return colorful.Hsl(float64(h), float64(sat)/100, float64(l)/100).Clamped(), nil
}

// Parse accepts any of the supported textual forms.
func Parse(s string) (colorful.Color, error) {
	clean := strings.ToLower(strings.TrimSpace(s))
	switch {
	case strings.HasPrefix(clean, "rgb"):
		return ParseRGB(clean)
	case strings.HasPrefix(clean, "hsl"), strings.Contains(clean, "%"):
		return ParseHSL(clean)
	case strings.Contains(clean, ","):
		return ParseRGB(clean)
	default:
		return ParseHex(clean)
	}
}

// triple strips an optional "name(...)" wrapper and splits on commas.
func triple(s, name string) ([]string, error) {
	clean := strings.ToLower(strings.TrimSpace(s))
	if strings.HasPrefix(clean, name) {
		clean = strings.TrimPrefix(clean, name)
		clean = strings.TrimSpace(clean)
		clean = strings.TrimPrefix(clean, "(")
		clean = strings.TrimSuffix(clean, ")")
	}
	fields := strings.Split(clean, ",")
	if len(fields) != 3 {
		return nil, fmt.Errorf("%w: %q needs three comma-separated values", ErrInvalidColor, s)
	}
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	return fields, nil
}

// leadingInt parses the optional sign and digits at the start of s, ignoring
// anything after them. No digits means 0.
func leadingInt(s string) int {
	s = strings.TrimSpace(s)
	neg := false
	if strings.HasPrefix(s, "-") || strings.HasPrefix(s, "+") {
		neg = s[0] == '-'
		s = s[1:]
	}
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			break
		}
		n = n*10 + int(r-'0')
		if n > 1<<20 { // far beyond any channel; stop before overflow
			break
		}
	}
	if neg {
		return -n
	}
	return n
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
