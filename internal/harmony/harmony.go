// Package harmony derives palettes from a single base color.
//
// Given a base hue/saturation/lightness and a Rule, the generator
// deterministically produces an ordered sequence of related colors:
//   - element 0 is always the base color;
//   - elements 1..n-1 follow the rule's hue pattern, with saturation and
//     lightness perturbed by a factor that grows with the index;
//   - every emitted color passes through a clamp-and-normalize step that
//     keeps hue in [0, 360) and lightness away from pure black and white.
//
// Everything here is a pure function of its inputs. A Generator is immutable
// once built and may be shared between goroutines.
package harmony

import "math"

// HSL is a color as hue (degrees, cyclic), saturation and lightness (both
// normalized to [0, 1]).
type HSL struct {
	H float64
	S float64
	L float64
}

// Config holds the tunables of the generator.
type Config struct {
	MinCount         int     // smallest palette produced
	MaxCount         int     // largest palette produced
	LightnessFloor   float64 // lowest lightness emitted
	LightnessCeiling float64 // highest lightness emitted
	MonoEpsilon      float64 // monochromatic spectrum points this close to the base are dropped
}

// DefaultConfig returns the stock configuration.
func DefaultConfig() Config {
	return Config{
		MinCount:         2,
		MaxCount:         8,
		LightnessFloor:   0.1,
		LightnessCeiling: 0.9,
		MonoEpsilon:      0.1,
	}
}

// Generator derives palettes according to its Config.
type Generator struct {
	cfg Config
}

// NewGenerator returns a generator for the given config. Out-of-range values
// are repaired rather than rejected: counts are raised to at least 1, the
// lightness bounds are clamped to [0, 1] and swapped if inverted.
func NewGenerator(cfg Config) *Generator {
	if cfg.MinCount < 1 {
		cfg.MinCount = 1
	}
	if cfg.MaxCount < cfg.MinCount {
		cfg.MaxCount = cfg.MinCount
	}
	cfg.LightnessFloor = clamp(cfg.LightnessFloor, 0, 1)
	cfg.LightnessCeiling = clamp(cfg.LightnessCeiling, 0, 1)
	if cfg.LightnessFloor > cfg.LightnessCeiling {
		cfg.LightnessFloor, cfg.LightnessCeiling = cfg.LightnessCeiling, cfg.LightnessFloor
	}
	if cfg.MonoEpsilon < 0 || isBad(cfg.MonoEpsilon) {
		cfg.MonoEpsilon = 0
	}
	return &Generator{cfg: cfg}
}

// Config returns the (repaired) configuration in use.
func (g *Generator) Config() Config {
	return g.cfg
}

// ClampCount clamps a requested palette size to the configured range.
func (g *Generator) ClampCount(count int) int {
	if count < g.cfg.MinCount {
		return g.cfg.MinCount
	}
	if count > g.cfg.MaxCount {
		return g.cfg.MaxCount
	}
	return count
}

var defaultGenerator = NewGenerator(DefaultConfig())

// Generate derives a palette using the default configuration.
func Generate(base HSL, rule Rule, count int) []HSL {
	return defaultGenerator.Generate(base, rule, count)
}

// MarkerHues returns the defining hues of a rule using the default
// configuration.
func MarkerHues(base HSL, rule Rule) []float64 {
	return defaultGenerator.MarkerHues(base, rule)
}

// Clamp applies the clamp-and-normalize step: hue is normalized into
// [0, 360) (NaN becomes 0), saturation clamped to [0, 1] (NaN becomes 0) and
// lightness clamped to the configured floor and ceiling (NaN becomes 0.5).
func (g *Generator) Clamp(c HSL) HSL {
	h := c.H
	if isBad(h) {
		h = 0
	}
	s := c.S
	if isBad(s) {
		s = 0
	}
	l := c.L
	if isBad(l) {
		l = 0.5
	}
	return HSL{
		H: NormalizeHue(h),
		S: clamp(s, 0, 1),
		L: clamp(l, g.cfg.LightnessFloor, g.cfg.LightnessCeiling),
	}
}

// NormalizeHue maps any finite angle into [0, 360).
func NormalizeHue(h float64) float64 {
	if isBad(h) {
		return 0
	}
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	if h >= 360 { // -tiny + 360 rounds up
		h = 0
	}
	return h
}

// sanitize substitutes defaults for non-numeric components of an incoming
// color: fully desaturated colors have no defined hue.
func sanitize(c HSL) HSL {
	if isBad(c.H) {
		c.H = 0
	}
	if isBad(c.S) {
		c.S = 0.5
	}
	if isBad(c.L) {
		c.L = 0.5
	}
	c.H = NormalizeHue(c.H)
	return c
}

// angularDistance returns the shortest distance between two hues, in [0, 180].
func angularDistance(a, b float64) float64 {
	d := math.Abs(NormalizeHue(a) - NormalizeHue(b))
	if d > 180 {
		d = 360 - d
	}
	return d
}

func isBad(v float64) bool {
	return math.IsNaN(v) || math.IsInf(v, 0)
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
