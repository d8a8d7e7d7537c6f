package harmony

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sampleBases = []HSL{
	{H: 0, S: 1, L: 0.5},
	{H: 217, S: 0.91, L: 0.6},
	{H: 359.9, S: 0.2, L: 0.05},
	{H: 45.5, S: 0, L: 1},
	{H: 400, S: 0.7, L: 0.425},
	{H: -30, S: 1.4, L: -0.2},
}

func TestGenerate_Deterministic(t *testing.T) {
	for _, rule := range AllRules() {
		for _, base := range sampleBases {
			for n := 2; n <= 8; n++ {
				assert.Equal(t, Generate(base, rule, n), Generate(base, rule, n), "%s n=%d", rule, n)
			}
		}
	}
}

func TestGenerate_Length(t *testing.T) {
	for _, rule := range AllRules() {
		t.Run(rule.String(), func(t *testing.T) {
			for n := 2; n <= 8; n++ {
				assert.Len(t, Generate(sampleBases[1], rule, n), n)
			}
			assert.Len(t, Generate(sampleBases[1], rule, 0), 2, "count below range")
			assert.Len(t, Generate(sampleBases[1], rule, -4), 2, "negative count")
			assert.Len(t, Generate(sampleBases[1], rule, 20), 8, "count above range")
		})
	}
}

func TestGenerate_BasePreserved(t *testing.T) {
	for _, rule := range AllRules() {
		for _, base := range sampleBases {
			out := Generate(base, rule, 5)
			assert.InDelta(t, NormalizeHue(base.H), out[0].H, 1e-9, "%s base %+v", rule, base)
		}
	}

	out := Generate(HSL{H: 200, S: 0.6, L: 0.4}, Tetradic, 4)
	assert.Equal(t, HSL{H: 200, S: 0.6, L: 0.4}, out[0])
}

func TestGenerate_Bounds(t *testing.T) {
	for _, rule := range AllRules() {
		for _, base := range sampleBases {
			for n := 2; n <= 8; n++ {
				for i, c := range Generate(base, rule, n) {
					assert.GreaterOrEqual(t, c.H, 0.0, "%s n=%d i=%d", rule, n, i)
					assert.Less(t, c.H, 360.0, "%s n=%d i=%d", rule, n, i)
					assert.GreaterOrEqual(t, c.S, 0.0)
					assert.LessOrEqual(t, c.S, 1.0)
					assert.GreaterOrEqual(t, c.L, 0.1)
					assert.LessOrEqual(t, c.L, 0.9)
				}
			}
		}
	}
}

func hues(colors []HSL) []float64 {
	out := make([]float64, len(colors))
	for i, c := range colors {
		out[i] = c.H
	}
	return out
}

func TestGenerate_AngularContracts(t *testing.T) {
	red := HSL{H: 0, S: 1, L: 0.5}

	t.Run("complementary", func(t *testing.T) {
		out := Generate(red, Complementary, 2)
		require.Len(t, out, 2)
		assert.InDelta(t, 180, out[1].H, 1e-9)
	})

	t.Run("triadic", func(t *testing.T) {
		assert.InDeltaSlice(t, []float64{0, 120, 240}, hues(Generate(red, Triadic, 3)), 1e-9)
	})

	t.Run("tetradic", func(t *testing.T) {
		assert.InDeltaSlice(t, []float64{0, 90, 180, 270}, hues(Generate(red, Tetradic, 4)), 1e-9)
	})

	t.Run("rainbow", func(t *testing.T) {
		base := HSL{H: 10, S: 0.8, L: 0.5}
		out := Generate(base, Rainbow, 6)
		assert.InDeltaSlice(t, []float64{10, 70, 130, 190, 250, 310}, hues(out), 1e-9)
		for _, c := range out {
			assert.Equal(t, 0.8, c.S)
			assert.Equal(t, 0.5, c.L)
		}
	})

	t.Run("analogous", func(t *testing.T) {
		base := HSL{H: 100, S: 0.9, L: 0.5}
		out := Generate(base, Analogous, 7)
		assert.InDeltaSlice(t, []float64{100, 130, 70, 160, 40, 190, 10}, hues(out), 1e-9)
		assert.InDelta(t, 0.9*(1-0.2*30/180), out[1].S, 1e-9)
		assert.InDelta(t, 0.9*(1-0.2*60/180), out[4].S, 1e-9)
		assert.InDelta(t, 0.9*(1-0.2*90/180), out[6].S, 1e-9)
	})

	t.Run("complementary alternation", func(t *testing.T) {
		base := HSL{H: 30, S: 0.5, L: 0.5}
		out := Generate(base, Complementary, 6)
		assert.InDeltaSlice(t, []float64{30, 210, 30, 210, 30, 210}, hues(out), 1e-9)
		assert.Greater(t, out[2].L, base.L, "first repeat is lighter")
		assert.Less(t, out[4].L, base.L, "second repeat is darker")
	})

	t.Run("split complementary", func(t *testing.T) {
		assert.InDeltaSlice(t, []float64{0, 210, 150}, hues(Generate(red, SplitComplementary, 3)), 1e-9)
	})

	t.Run("wraps below zero", func(t *testing.T) {
		out := Generate(HSL{H: 10, S: 0.5, L: 0.5}, Analogous, 3)
		assert.InDelta(t, 340, out[2].H, 1e-9)
	})
}

func TestGenerate_CycleShading(t *testing.T) {
	base := HSL{H: 0, S: 0.6, L: 0.5}
	out := Generate(base, Triadic, 7)

	// First cycle is untouched, second lighter, third darker.
	assert.Equal(t, base.S, out[1].S)
	assert.Equal(t, base.L, out[2].L)
	assert.InDelta(t, 0.6*0.7, out[3].S, 1e-9)
	assert.InDelta(t, 0.5*1.1, out[3].L, 1e-9)
	assert.InDelta(t, 0.6*1.2, out[6].S, 1e-9)
	assert.InDelta(t, 0.5*0.8, out[6].L, 1e-9)
}

func TestGenerate_RedToCyan(t *testing.T) {
	out := Generate(HSL{H: 0, S: 1, L: 0.5}, Complementary, 2)
	assert.Equal(t, []HSL{{H: 0, S: 1, L: 0.5}, {H: 180, S: 1, L: 0.5}}, out)
}

func TestMarkerHues_ConsistentWithGenerate(t *testing.T) {
	for _, rule := range []Rule{Triadic, Tetradic, SplitComplementary, Complementary, Rainbow} {
		for _, base := range sampleBases {
			markers := MarkerHues(base, rule)
			for n := rule.naturalCount(); n <= 8; n++ {
				if rule == Rainbow && n != 6 {
					continue
				}
				generated := hues(Generate(base, rule, n))
				for _, m := range markers {
					assert.True(t, containsHue(generated, m), "%s n=%d: marker %v not in %v", rule, n, m, generated)
				}
			}
		}
	}
}

func TestWheelHues(t *testing.T) {
	g := NewGenerator(DefaultConfig())
	for _, base := range sampleBases {
		for _, rule := range AllRules() {
			if rule == Rainbow {
				continue
			}
			assert.Equal(t, g.MarkerHues(base, rule), g.WheelHues(base, rule, 5), "%s", rule)
		}

		// Rainbow marks every swatch hue, whatever the count.
		for n := 2; n <= 8; n++ {
			wheel := g.WheelHues(base, Rainbow, n)
			generated := hues(g.Generate(base, Rainbow, n))
			require.Len(t, wheel, n)
			for _, h := range generated {
				assert.True(t, containsHue(wheel, h), "n=%d: swatch hue %v not in %v", n, h, wheel)
			}
		}
	}

	red := HSL{H: 0, S: 1, L: 0.5}
	assert.InDeltaSlice(t, []float64{0, 72, 144, 216, 288}, g.WheelHues(red, Rainbow, 5), 1e-9)
	assert.Len(t, g.WheelHues(red, Rainbow, 99), 8)
	assert.Len(t, g.WheelHues(red, Rainbow, 0), 2)
}

func containsHue(hs []float64, h float64) bool {
	for _, x := range hs {
		if angularDistance(x, h) < 1e-6 {
			return true
		}
	}
	return false
}

func TestMarkerHues(t *testing.T) {
	base := HSL{H: 350, S: 1, L: 0.5}
	tests := []struct {
		rule Rule
		want []float64
	}{
		{Monochromatic, []float64{350}},
		{Analogous, []float64{350, 20, 320}},
		{Complementary, []float64{350, 170}},
		{Triadic, []float64{350, 110, 230}},
		{Tetradic, []float64{350, 80, 170, 260}},
		{SplitComplementary, []float64{350, 200, 140}},
		{Rainbow, []float64{350, 50, 110, 170, 230, 290}},
	}
	for _, tt := range tests {
		t.Run(tt.rule.String(), func(t *testing.T) {
			assert.InDeltaSlice(t, tt.want, MarkerHues(base, tt.rule), 1e-9)
		})
	}
}

func TestGenerate_MonochromaticDistinct(t *testing.T) {
	const epsilon = 0.01
	for l := 0.0; l <= 1.0; l += 0.025 {
		for n := 2; n <= 8; n++ {
			out := Generate(HSL{H: 200, S: 0.7, L: l}, Monochromatic, n)
			require.Len(t, out, n)
			for i := range out {
				assert.Equal(t, 200.0, out[i].H)
				for j := i + 1; j < len(out); j++ {
					assert.Greater(t, math.Abs(out[i].L-out[j].L), epsilon,
						"l=%.3f n=%d: %d and %d collide (%v)", l, n, i, j, out)
				}
			}
		}
	}
}

func TestGenerate_MonochromaticSpectrum(t *testing.T) {
	out := Generate(HSL{H: 10, S: 0.5, L: 0.5}, Monochromatic, 5)
	ls := make([]float64, len(out))
	for i, c := range out {
		ls[i] = c.L
	}
	assert.InDeltaSlice(t, []float64{0.5, 0.15, 0.35, 0.7, 0.85}, ls, 1e-9)

	// Saturation peaks mid-spectrum.
	assert.Less(t, out[1].S, out[2].S)
	assert.Greater(t, out[3].S, out[4].S)
}

func TestGenerate_NaNInput(t *testing.T) {
	out := Generate(HSL{H: math.NaN(), S: math.NaN(), L: math.NaN()}, Triadic, 3)
	require.Len(t, out, 3)
	assert.Equal(t, HSL{H: 0, S: 0.5, L: 0.5}, out[0])
	assert.InDelta(t, 120, out[1].H, 1e-9)

	out = Generate(HSL{H: math.Inf(1), S: 0.4, L: 0.4}, Rainbow, 4)
	assert.Equal(t, 0.0, out[0].H)
}

func TestGenerate_UnknownRule(t *testing.T) {
	base := HSL{H: 12, S: 0.3, L: 0.95}
	assert.Equal(t, []HSL{base}, Generate(base, Rule(42), 5))
}

func TestGenerate_Concurrent(t *testing.T) {
	want := Generate(sampleBases[1], Analogous, 8)

	var wg sync.WaitGroup
	results := make([][]HSL, 32)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = Generate(sampleBases[1], Analogous, 8)
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, want, got)
	}
}

func TestNewGenerator_RepairsConfig(t *testing.T) {
	g := NewGenerator(Config{MinCount: 0, MaxCount: -1, LightnessFloor: 0.95, LightnessCeiling: 0.05, MonoEpsilon: math.NaN()})
	cfg := g.Config()
	assert.Equal(t, 1, cfg.MinCount)
	assert.Equal(t, 1, cfg.MaxCount)
	assert.Equal(t, 0.05, cfg.LightnessFloor)
	assert.Equal(t, 0.95, cfg.LightnessCeiling)
	assert.Equal(t, 0.0, cfg.MonoEpsilon)

	assert.Len(t, g.Generate(sampleBases[0], Triadic, 6), 1)
}

func TestGenerator_CustomRange(t *testing.T) {
	g := NewGenerator(Config{MinCount: 3, MaxCount: 12, LightnessFloor: 0.2, LightnessCeiling: 0.8, MonoEpsilon: 0.1})
	assert.Len(t, g.Generate(sampleBases[0], Triadic, 2), 3)
	assert.Len(t, g.Generate(sampleBases[0], Triadic, 12), 12)
	for _, c := range g.Generate(HSL{H: 0, S: 1, L: 0.95}, Complementary, 12) {
		assert.GreaterOrEqual(t, c.L, 0.2)
		assert.LessOrEqual(t, c.L, 0.8)
	}
}

func TestNormalizeHue(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{360, 0},
		{720.5, 0.5},
		{-90, 270},
		{-360, 0},
		{-1e-15, 0},
		{math.NaN(), 0},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, NormalizeHue(tt.in), 1e-9, "NormalizeHue(%v)", tt.in)
	}
}

func TestParseRule(t *testing.T) {
	for _, r := range AllRules() {
		got, err := ParseRule(r.String())
		require.NoError(t, err)
		assert.Equal(t, r, got)
	}

	got, err := ParseRule("Split_Complementary")
	require.NoError(t, err)
	assert.Equal(t, SplitComplementary, got)

	_, err = ParseRule("pastel")
	assert.Error(t, err)
}

func TestRules_CanonicalSet(t *testing.T) {
	rules := Rules()
	assert.Len(t, rules, 6)
	assert.Contains(t, rules, Rainbow)
	assert.NotContains(t, rules, SplitComplementary)
}
