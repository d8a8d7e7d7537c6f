package harmony

import "math"

const (
	analogousStep  = 30.0 // degrees between neighbouring analogous hues
	analogousFade  = 0.2  // saturation lost at a 180° offset
	rainbowMarkers = 6    // marker hues shown for the rainbow rule

	spectrumLow  = 0.15 // darkest monochromatic lightness
	spectrumHigh = 0.85 // lightest monochromatic lightness
	spectrumMid  = 0.5
	spectrumFade = 0.4 // saturation lost at either end of the spectrum
	maxSpectrum  = 64  // densest spectrum tried before giving up on the epsilon
)

// fixedSpectrum is used for palettes of up to five colors.
var fixedSpectrum = []float64{0.15, 0.35, 0.5, 0.7, 0.85}

// Generate derives count colors from base according to rule. The count is
// clamped to the configured range. Element 0 is the base color; every element
// passes through Clamp. An unknown rule yields a single-element palette
// holding the unmodified input.
func (g *Generator) Generate(base HSL, rule Rule, count int) []HSL {
	if !rule.valid() {
		return []HSL{base}
	}

	c := sanitize(base)
	n := g.ClampCount(count)
	out := make([]HSL, n)
	out[0] = c

	switch rule {
	case Monochromatic:
		g.monochromatic(c, out)
	case Analogous:
		analogous(c, out)
	case Complementary:
		complementary(c, out)
	case Triadic:
		cycle(c, out, []float64{0, 120, 240})
	case Tetradic:
		cycle(c, out, []float64{0, 90, 180, 270})
	case SplitComplementary:
		cycle(c, out, []float64{0, 210, 150})
	case Rainbow:
		rainbow(c, out)
	}

	for i := range out {
		out[i] = g.Clamp(out[i])
	}
	return out
}

// analogous walks outwards from the base hue in 30° steps, alternating sides:
// +30, -30, +60, -60, ... Saturation fades with the angular offset.
func analogous(c HSL, out []HSL) {
	for i := 1; i < len(out); i++ {
		step := float64((i+1)/2) * analogousStep
		if i%2 == 0 {
			step = -step
		}
		d := angularDistance(0, step)
		out[i] = HSL{
			H: c.H + step,
			S: c.S * (1 - analogousFade*d/180),
			L: c.L,
		}
	}
}

// complementary emits the complement first, then alternates between base and
// complement hues with growing shade.
func complementary(c HSL, out []HSL) {
	for i := 1; i < len(out); i++ {
		h := c.H + 180
		if i%2 == 0 {
			h = c.H
		}
		out[i] = shade(HSL{H: h, S: c.S, L: c.L}, i/2)
	}
}

// cycle steps through the given hue offsets by index, shading more strongly
// each time the offsets wrap around.
func cycle(c HSL, out []HSL, offsets []float64) {
	k := len(offsets)
	for i := 1; i < len(out); i++ {
		out[i] = shade(HSL{H: c.H + offsets[i%k], S: c.S, L: c.L}, i/k)
	}
}

// rainbow spreads the palette evenly around the whole wheel.
func rainbow(c HSL, out []HSL) {
	n := float64(len(out))
	for i := 1; i < len(out); i++ {
		out[i] = HSL{H: c.H + float64(i)*360/n, S: c.S, L: c.L}
	}
}

// shade perturbs saturation and lightness. Level 0 is the identity; odd
// levels lighten and desaturate, even levels darken and saturate, and the
// magnitude grows every two levels.
func shade(c HSL, level int) HSL {
	if level <= 0 {
		return c
	}
	m := 0.1 * float64((level+1)/2)
	if level%2 == 1 {
		return HSL{H: c.H, S: math.Max(0, c.S*(1-3*m)), L: c.L * (1 + m)}
	}
	return HSL{H: c.H, S: c.S * (1 + 2*m), L: c.L * (1 - 2*m)}
}

// monochromatic keeps the hue and spreads lightness over a dark-to-light
// spectrum, skipping spectrum points that would land on top of the base.
func (g *Generator) monochromatic(c HSL, out []HSL) {
	want := len(out) - 1
	if want == 0 {
		return
	}

	baseL := g.Clamp(c).L
	points := g.spectrumFor(baseL, len(out), want)
	for i, p := range pick(points, want, baseL) {
		d := math.Abs(p - spectrumMid)
		out[i+1] = HSL{
			H: c.H,
			S: c.S * (1 - spectrumFade*d/(spectrumHigh-spectrumMid)),
			L: p,
		}
	}
}

// spectrumFor returns at least want lightness candidates, none of them the
// point nearest baseL nor within MonoEpsilon of it. The spectrum is made
// denser until enough candidates survive.
func (g *Generator) spectrumFor(baseL float64, n, want int) []float64 {
	start := n
	if n <= len(fixedSpectrum) {
		start = len(fixedSpectrum)
	}
	for m := start; m <= maxSpectrum; m++ {
		var candidates []float64
		points := spectrum(m)
		nearest := nearestIndex(points, baseL)
		for i, p := range points {
			if i == nearest || math.Abs(p-baseL) < g.cfg.MonoEpsilon {
				continue
			}
			candidates = append(candidates, p)
		}
		if len(candidates) >= want {
			return candidates
		}
	}

	// The epsilon is too wide for any spectrum; drop only the nearest point.
	m := start
	if m < want+1 {
		m = want + 1
	}
	points := spectrum(m)
	nearest := nearestIndex(points, baseL)
	return append(points[:nearest:nearest], points[nearest+1:]...)
}

// spectrum returns m lightness points from dark to light.
func spectrum(m int) []float64 {
	if m <= len(fixedSpectrum) {
		return append([]float64(nil), fixedSpectrum...)
	}
	points := make([]float64, m)
	step := (spectrumHigh - spectrumLow) / float64(m-1)
	for i := range points {
		points[i] = spectrumLow + float64(i)*step
	}
	return points
}

func nearestIndex(points []float64, v float64) int {
	best, bestDist := 0, math.Inf(1)
	for i, p := range points {
		if d := math.Abs(p - v); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// pick chooses k of the sorted candidates, spread evenly from darkest to
// lightest. A single pick takes the candidate farthest from baseL.
func pick(candidates []float64, k int, baseL float64) []float64 {
	if k >= len(candidates) {
		return candidates[:k]
	}
	if k == 1 {
		far := candidates[0]
		for _, p := range candidates[1:] {
			if math.Abs(p-baseL) > math.Abs(far-baseL) {
				far = p
			}
		}
		return []float64{far}
	}
	picked := make([]float64, k)
	for j := range picked {
		idx := int(math.Round(float64(j) * float64(len(candidates)-1) / float64(k-1)))
		picked[j] = candidates[idx]
	}
	return picked
}
