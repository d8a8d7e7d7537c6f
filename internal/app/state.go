package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/irfansharif/palettepro/internal/colorspace"
	"github.com/irfansharif/palettepro/internal/harmony"
	"github.com/irfansharif/palettepro/internal/palette"
)

const (
	minWheelLightness  = 20
	maxWheelLightness  = 90
	wheelLightnessStep = 5

	copiedHighlight = 1500 * time.Millisecond // how long a copied swatch stays outlined
	maxInputLength  = 32
)

// State is everything the user controls. All methods are pure state
// transitions; nothing here touches the window or GPU.
type State struct {
	Generator      *harmony.Generator
	Base           harmony.HSL
	Rule           harmony.Rule
	Count          int
	WheelLightness int // percent
	Dark           bool

	Input  string // typed color, applied on Enter
	Status string // last action, shown in the title

	copied   int
	copiedAt time.Time
}

// NewState creates a state; the count is clamped to the generator's range.
func NewState(gen *harmony.Generator, base harmony.HSL, rule harmony.Rule, count, wheelLightness int, dark bool) *State {
	s := &State{
		Generator: gen,
		Base:      base,
		Rule:      rule,
		Count:     gen.ClampCount(count),
		Dark:      dark,
		copied:    -1,
	}
	s.WheelLightness = clampLightness(wheelLightness)
	return s
}

// SetBase replaces the base color. It is stored as given; the generator
// clamps its copy in the palette.
func (s *State) SetBase(c harmony.HSL) {
	s.Base = c
}

// SetFromWheel picks a hue and saturation off the wheel, at the wheel's
// lightness.
func (s *State) SetFromWheel(hue, sat float64) {
	s.SetBase(harmony.HSL{H: hue, S: sat, L: float64(s.WheelLightness) / 100})
}

// NextRule and PrevRule cycle through the selector's rules. A rule outside
// the selector (split-complementary) steps to the first or last one.
func (s *State) NextRule() { s.stepRule(1) }
func (s *State) PrevRule() { s.stepRule(-1) }

func (s *State) stepRule(dir int) {
	rules := harmony.Rules()
	for i, r := range rules {
		if r == s.Rule {
			s.Rule = rules[(i+dir+len(rules))%len(rules)]
			return
		}
	}
	if dir > 0 {
		s.Rule = rules[0]
	} else {
		s.Rule = rules[len(rules)-1]
	}
}

// SelectRule picks a rule directly.
func (s *State) SelectRule(r harmony.Rule) {
	s.Rule = r
}

// Grow and Shrink change the palette size within the generator's range.
func (s *State) Grow()   { s.Count = s.Generator.ClampCount(s.Count + 1) }
func (s *State) Shrink() { s.Count = s.Generator.ClampCount(s.Count - 1) }

// Lighter and Darker step the wheel lightness, carrying the base color along
// so the palette follows the wheel.
func (s *State) Lighter() { s.stepLightness(wheelLightnessStep) }
func (s *State) Darker()  { s.stepLightness(-wheelLightnessStep) }

func (s *State) stepLightness(delta int) {
	s.WheelLightness = clampLightness(s.WheelLightness + delta)
	base := s.Base
	base.L = float64(s.WheelLightness) / 100
	s.SetBase(base)
}

func clampLightness(v int) int {
	// Snap to the step grid first.
	v = (v + wheelLightnessStep/2) / wheelLightnessStep * wheelLightnessStep
	if v < minWheelLightness {
		return minWheelLightness
	}
	if v > maxWheelLightness {
		return maxWheelLightness
	}
	return v
}

func (s *State) ToggleTheme() { s.Dark = !s.Dark }

// Type appends typed characters to the color input.
func (s *State) Type(r rune) {
	if len(s.Input) >= maxInputLength {
		return
	}
	s.Input += string(r)
}

// Backspace deletes the last typed character.
func (s *State) Backspace() {
	if s.Input == "" {
		return
	}
	runes := []rune(s.Input)
	s.Input = string(runes[:len(runes)-1])
}

func (s *State) ClearInput() { s.Input = "" }

// ApplyInput parses the typed color (hex, rgb or hsl) and makes it the base.
// On failure the previous base is kept and the input is left for editing.
func (s *State) ApplyInput() error {
	input := strings.TrimSpace(s.Input)
	if input == "" {
		return nil
	}
	c, err := colorspace.Parse(input)
	if err != nil {
		s.Status = fmt.Sprintf("Invalid color %q", input)
		return err
	}
	s.SetBase(colorspace.ToHSL(c))
	s.Input = ""
	s.Status = "Base color " + colorspace.Hex(s.Base)
	return nil
}

// Palette generates the current palette.
func (s *State) Palette() palette.Palette {
	return palette.Build(s.Generator.Generate(s.Base, s.Rule, s.Count))
}

// MarkerHues returns the harmony hues drawn on the wheel.
func (s *State) MarkerHues() []float64 {
	return s.Generator.WheelHues(s.Base, s.Rule, s.Count)
}

// MarkCopied records a copied swatch, for highlighting.
func (s *State) MarkCopied(index int, now time.Time) {
	s.copied, s.copiedAt = index, now
}

// Highlighted reports whether a swatch was copied recently.
func (s *State) Highlighted(index int, now time.Time) bool {
	return index == s.copied && now.Sub(s.copiedAt) < copiedHighlight
}

// HighlightExpired reports whether a highlight just ran out and needs a redraw.
func (s *State) HighlightExpired(now time.Time) bool {
	if s.copied < 0 || now.Sub(s.copiedAt) < copiedHighlight {
		return false
	}
	s.copied = -1
	return true
}

// Title is the window title: palette summary, typed input and last status.
func (s *State) Title() string {
	d := colorspace.Display(s.Base)
	parts := []string{
		"Palette Pro",
		fmt.Sprintf("%s (%d colors)", palette.Title(s.Rule), s.Count),
		fmt.Sprintf("%s hsl(%s)", strings.ToUpper(colorspace.Hex(s.Base)), d),
		fmt.Sprintf("wheel %d%% %s", s.WheelLightness, palette.DescribeLightness(s.WheelLightness)),
	}
	if s.Input != "" {
		parts = append(parts, "> "+s.Input+"_")
	}
	if s.Status != "" {
		parts = append(parts, s.Status)
	}
	return strings.Join(parts, " | ")
}
