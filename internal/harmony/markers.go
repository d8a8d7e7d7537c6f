package harmony

// MarkerHues returns the defining hue positions of rule for base, used to
// annotate a color wheel. The offsets are the ones Generate cycles through;
// no saturation or lightness is involved and the result does not depend on a
// palette size. Rainbow, having no fixed geometry, reports six evenly spaced
// hues.
func (g *Generator) MarkerHues(base HSL, rule Rule) []float64 {
	h := sanitize(base).H

	var offsets []float64
	switch rule {
	case Monochromatic:
		offsets = []float64{0}
	case Analogous:
		offsets = []float64{0, analogousStep, -analogousStep}
	case Complementary:
		offsets = []float64{0, 180}
	case Triadic:
		offsets = []float64{0, 120, 240}
	case Tetradic:
		offsets = []float64{0, 90, 180, 270}
	case SplitComplementary:
		offsets = []float64{0, 210, 150}
	case Rainbow:
		offsets = make([]float64, rainbowMarkers)
		for i := range offsets {
			offsets[i] = float64(i) * 360 / rainbowMarkers
		}
	default:
		offsets = []float64{0}
	}

	hues := make([]float64, len(offsets))
	for i, o := range offsets {
		hues[i] = NormalizeHue(h + o)
	}
	return hues
}

// WheelHues is MarkerHues for a wheel shown next to a palette of count
// colors. Rainbow follows the palette's own spacing so that every swatch hue
// is marked; the other rules have fixed geometry and match MarkerHues. The
// count is clamped the way Generate clamps it.
func (g *Generator) WheelHues(base HSL, rule Rule, count int) []float64 {
	if rule != Rainbow {
		return g.MarkerHues(base, rule)
	}
	h := sanitize(base).H
	n := g.ClampCount(count)
	hues := make([]float64, n)
	for i := range hues {
		hues[i] = NormalizeHue(h + float64(i)*360/float64(n))
	}
	return hues
}
