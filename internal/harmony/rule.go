package harmony

import (
	"fmt"
	"strings"
)

// Rule is a fixed geometric relationship between hues on the color wheel.
type Rule int

const (
	Monochromatic Rule = iota
	Analogous
	Complementary
	Triadic
	Tetradic
	Rainbow
	SplitComplementary // earlier rule set, superseded by Rainbow
)

// Rules returns the canonical rule set in selector order.
func Rules() []Rule {
	return []Rule{Monochromatic, Analogous, Complementary, Triadic, Rainbow, Tetradic}
}

// AllRules returns every supported rule, including the ones outside the
// canonical set.
func AllRules() []Rule {
	return append(Rules(), SplitComplementary)
}

func (r Rule) String() string {
	switch r {
	case Monochromatic:
		return "monochromatic"
	case Analogous:
		return "analogous"
	case Complementary:
		return "complementary"
	case Triadic:
		return "triadic"
	case Tetradic:
		return "tetradic"
	case Rainbow:
		return "rainbow"
	case SplitComplementary:
		return "split-complementary"
	default:
		return fmt.Sprintf("rule(%d)", int(r))
	}
}

// ParseRule parses a rule name as produced by String. Matching ignores case
// and accepts underscores or spaces in place of dashes.
func ParseRule(s string) (Rule, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	name = strings.NewReplacer("_", "-", " ", "-").Replace(name)
	for _, r := range AllRules() {
		if r.String() == name {
			return r, nil
		}
	}
	return 0, fmt.Errorf("unknown harmony rule %q", s)
}

// Label is the human-readable name of the rule.
func (r Rule) Label() string {
	switch r {
	case Monochromatic:
		return "Monochromatic"
	case Analogous:
		return "Analogous"
	case Complementary:
		return "Complementary"
	case Triadic:
		return "Triadic"
	case Tetradic:
		return "Tetradic"
	case Rainbow:
		return "Rainbow"
	case SplitComplementary:
		return "Split Complementary"
	default:
		return r.String()
	}
}

// Description is a one-line summary of the rule, shown under its label.
func (r Rule) Description() string {
	switch r {
	case Monochromatic:
		return "Same hue, different lightness"
	case Analogous:
		return "Adjacent hues on color wheel"
	case Complementary:
		return "Opposite hues"
	case Triadic:
		return "Three evenly spaced hues"
	case Tetradic:
		return "Four evenly spaced hues"
	case Rainbow:
		return "Vibrant colors across entire spectrum"
	case SplitComplementary:
		return "Base plus the two neighbours of its complement"
	default:
		return ""
	}
}

// naturalCount is the palette size that shows each of the rule's defining
// hues exactly once.
func (r Rule) naturalCount() int {
	switch r {
	case Complementary:
		return 2
	case Triadic, SplitComplementary:
		return 3
	case Tetradic:
		return 4
	case Rainbow:
		return rainbowMarkers
	default:
		return 5
	}
}

func (r Rule) valid() bool {
	return r >= Monochromatic && r <= SplitComplementary
}
