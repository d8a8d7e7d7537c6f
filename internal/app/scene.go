package app

import (
	"time"

	"github.com/irfansharif/palettepro/internal/colorspace"
	"github.com/irfansharif/palettepro/internal/geom"
	"github.com/irfansharif/palettepro/internal/palette"
	"github.com/irfansharif/palettepro/internal/render"
)

const (
	labelPadding  = 12.0
	maxLabelScale = 3
)

// BuildScene turns the state and layout into what the renderer draws.
func BuildScene(s *State, l Layout, p palette.Palette, now time.Time) render.Scene {
	theme := render.LightTheme
	if s.Dark {
		theme = render.DarkTheme
	}

	lightness := float64(s.WheelLightness) / 100
	sat := s.Base.S

	scene := render.Scene{
		Wheel:          l.Wheel,
		WheelLightness: lightness,
		Picker:         l.Wheel.Point(s.Base.H, sat),
		PickerColor:    colorspace.FromHSL(s.Base),
		PickerSat:      sat,
		Markers:        l.Wheel.Markers(s.MarkerHues(), s.Base.H, sat),
		Panels:         []geom.Box{l.WheelPanel, l.SwatchPanel},
		Theme:          theme,
	}

	caption := []string{s.Rule.Label(), s.Rule.Description()}
	if scale, ok := fitText(caption, l.WheelPanel.Inset(labelPadding)); ok {
		scene.Labels = append(scene.Labels, render.Label{
			Pos:   geom.MakePoint(l.WheelPanel.X+labelPadding, l.WheelPanel.Y+labelPadding),
			Lines: caption,
			Color: theme.Outline,
			Scale: scale,
		})
	}

	for i, sw := range p {
		if i >= len(l.Swatches) {
			break
		}
		box := l.Swatches[i]
		scene.Swatches = append(scene.Swatches, render.SwatchQuad{
			Box:      box,
			Color:    colorspace.FromHSL(sw.Color),
			Selected: s.Highlighted(i, now),
		})

		lines := []string{sw.Label(), sw.DisplayHex()}
		scale, ok := fitText(lines, box.Inset(labelPadding))
		if !ok {
			continue
		}
		_, h := render.TextSize(lines, scale)
		scene.Labels = append(scene.Labels, render.Label{
			Pos:   geom.MakePoint(box.X+labelPadding, box.Y+box.H-labelPadding-h),
			Lines: lines,
			Color: sw.TextColor(),
			Scale: scale,
		})
	}
	return scene
}

// fitText returns the largest whole scale at which lines fit in b.
func fitText(lines []string, b geom.Box) (float64, bool) {
	for scale := maxLabelScale; scale >= 1; scale-- {
		w, h := render.TextSize(lines, float64(scale))
		if w <= b.W && h <= b.H {
			return float64(scale), true
		}
	}
	return 0, false
}
