package colorspace

import (
	"fmt"
	"math"

	"github.com/irfansharif/palettepro/internal/harmony"
)

// DisplayRGB is a color rounded to 8-bit channels.
type DisplayRGB struct {
	R, G, B uint8
}

func (d DisplayRGB) String() string {
	return fmt.Sprintf("%d, %d, %d", d.R, d.G, d.B)
}

// DisplayHSL is a color rounded for display: hue to the nearest degree,
// saturation and lightness to the nearest percent.
type DisplayHSL struct {
	H, S, L int
}

func (d DisplayHSL) String() string {
	return fmt.Sprintf("%d, %d%%, %d%%", d.H, d.S, d.L)
}

// RGB rounds an engine color to 8-bit channels.
func RGB(c harmony.HSL) DisplayRGB {
	r, g, b := FromHSL(c).RGB255()
	return DisplayRGB{R: r, G: g, B: b}
}

// Display rounds an engine color for display.
func Display(c harmony.HSL) DisplayHSL {
	h := c.H
	if math.IsNaN(h) {
		h = 0
	}
	d := DisplayHSL{
		H: int(math.Round(harmony.NormalizeHue(h))),
		S: int(math.Round(c.S * 100)),
		L: int(math.Round(c.L * 100)),
	}
	if d.H == 360 {
		d.H = 0
	}
	return d
}
