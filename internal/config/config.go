// Package config resolves the palette window's settings. Command-line flags
// win over environment variables, which win over a .env file, which wins over
// built-in defaults.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/irfansharif/palettepro/internal/colorspace"
	"github.com/irfansharif/palettepro/internal/harmony"
)

// Config holds every tunable of the application.
type Config struct {
	BaseColor        string  `flag:"color" validate:"required,color"`
	Rule             string  `flag:"rule" validate:"required,rule"`
	Count            int     `flag:"count" validate:"gte=1"`
	MinCount         int     `flag:"min-count" validate:"gte=1"`
	MaxCount         int     `flag:"max-count" validate:"gtefield=MinCount"`
	LightnessFloor   float64 `flag:"lightness-floor" validate:"gte=0,lte=1"`
	LightnessCeiling float64 `flag:"lightness-ceiling" validate:"lte=1,gtefield=LightnessFloor"`
	WheelLightness   int     `flag:"wheel-lightness" validate:"gte=20,lte=90,multipleof=5"`
	Theme            string  `flag:"theme" validate:"oneof=light dark"`
	ExportDir        string  `flag:"export-dir" validate:"required"`
	Width            int     `flag:"width" validate:"gt=0"`
	Height           int     `flag:"height" validate:"gt=0"`
	Seed             int64   `flag:"seed"`
}

// Default returns the built-in settings. The seed is taken from the clock.
func Default() Config {
	return Config{
		BaseColor:        "#ff6b6b",
		Rule:             harmony.Triadic.String(),
		Count:            5,
		MinCount:         2,
		MaxCount:         8,
		LightnessFloor:   0.1,
		LightnessCeiling: 0.9,
		WheelLightness:   50,
		Theme:            "light",
		ExportDir:        ".",
		Width:            1280,
		Height:           960,
		Seed:             time.Now().Unix(),
	}
}

// Lookup finds a variable by name, like os.LookupEnv.
type Lookup func(key string) (string, bool)

// Load resolves the configuration from command-line args (without the program
// name), the process environment and the .env file named by -env.
func Load(args []string) (Config, error) {
	return load(args, os.LookupEnv)
}

func load(args []string, environ Lookup) (Config, error) {
	cfg := Default()

	flags := flag.NewFlagSet("palette", flag.ContinueOnError)
	envFile := flags.String("env", ".env", "path to an optional .env file")
	flags.StringVar(&cfg.BaseColor, "color", cfg.BaseColor, "base color as hex, rgb(...) or hsl(...)")
	flags.StringVar(&cfg.Rule, "rule", cfg.Rule, "harmony rule")
	flags.IntVar(&cfg.Count, "count", cfg.Count, "number of colors in the palette")
	flags.IntVar(&cfg.MinCount, "min-count", cfg.MinCount, "smallest palette size")
	flags.IntVar(&cfg.MaxCount, "max-count", cfg.MaxCount, "largest palette size")
	flags.Float64Var(&cfg.LightnessFloor, "lightness-floor", cfg.LightnessFloor, "darkest lightness a generated color may have")
	flags.Float64Var(&cfg.LightnessCeiling, "lightness-ceiling", cfg.LightnessCeiling, "lightest lightness a generated color may have")
	flags.IntVar(&cfg.WheelLightness, "wheel-lightness", cfg.WheelLightness, "color wheel lightness percent (20-90, step 5)")
	flags.StringVar(&cfg.Theme, "theme", cfg.Theme, "light or dark")
	flags.StringVar(&cfg.ExportDir, "export-dir", cfg.ExportDir, "directory exported palettes are written to")
	flags.IntVar(&cfg.Width, "width", cfg.Width, "initial window width")
	flags.IntVar(&cfg.Height, "height", cfg.Height, "initial window height")
	flags.Int64Var(&cfg.Seed, "seed", cfg.Seed, "random base color seed")
	if err := flags.Parse(args); err != nil {
		return Config{}, err
	}

	set := make(map[string]bool)
	flags.Visit(func(f *flag.Flag) { set[f.Name] = true })

	dotenv, err := readDotenv(*envFile, set["env"])
	if err != nil {
		return Config{}, err
	}
	lookup := func(key string) (string, bool) {
		if v, ok := environ(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	}

	// Flags that were not given explicitly fall back to env, then .env.
	for _, b := range cfg.bindings() {
		if set[b.flag] {
			continue
		}
		v, ok := lookup(b.key)
		if !ok || v == "" {
			continue
		}
		if err := b.parse(v); err != nil {
			return Config{}, fmt.Errorf("invalid %s value %q: %w", b.key, v, err)
		}
	}

	if err := New().Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// readDotenv reads the .env file. A missing file is only an error when it
// was asked for explicitly.
func readDotenv(path string, explicit bool) (map[string]string, error) {
	vars, err := godotenv.Read(path)
	if err == nil {
		return vars, nil
	}
	if errors.Is(err, fs.ErrNotExist) && !explicit {
		return nil, nil
	}
	return nil, fmt.Errorf("reading %s: %w", path, err)
}

type binding struct {
	flag  string
	key   string
	parse func(string) error
}

func (c *Config) bindings() []binding {
	str := func(dst *string) func(string) error {
		return func(v string) error { *dst = v; return nil }
	}
	integer := func(dst *int) func(string) error {
		return func(v string) error {
			n, err := strconv.Atoi(v)
			if err == nil {
				*dst = n
			}
			return err
		}
	}
	float := func(dst *float64) func(string) error {
		return func(v string) error {
			f, err := strconv.ParseFloat(v, 64)
			if err == nil {
				*dst = f
			}
			return err
		}
	}
	return []binding{
		{"color", "PALETTE_BASE_COLOR", str(&c.BaseColor)},
		{"rule", "PALETTE_RULE", str(&c.Rule)},
		{"count", "PALETTE_COUNT", integer(&c.Count)},
		{"min-count", "PALETTE_MIN_COUNT", integer(&c.MinCount)},
		{"max-count", "PALETTE_MAX_COUNT", integer(&c.MaxCount)},
		{"lightness-floor", "PALETTE_LIGHTNESS_FLOOR", float(&c.LightnessFloor)},
		{"lightness-ceiling", "PALETTE_LIGHTNESS_CEILING", float(&c.LightnessCeiling)},
		{"wheel-lightness", "PALETTE_WHEEL_LIGHTNESS", integer(&c.WheelLightness)},
		{"theme", "PALETTE_THEME", str(&c.Theme)},
		{"export-dir", "PALETTE_EXPORT_DIR", str(&c.ExportDir)},
		{"width", "PALETTE_WIDTH", integer(&c.Width)},
		{"height", "PALETTE_HEIGHT", integer(&c.Height)},
		{"seed", "PALETTE_SEED", func(v string) error {
			n, err := strconv.ParseInt(v, 10, 64)
			if err == nil {
				c.Seed = n
			}
			return err
		}},
	}
}

// HarmonyConfig is the generator configuration.
func (c Config) HarmonyConfig() harmony.Config {
	cfg := harmony.DefaultConfig()
	cfg.MinCount, cfg.MaxCount = c.MinCount, c.MaxCount
	cfg.LightnessFloor, cfg.LightnessCeiling = c.LightnessFloor, c.LightnessCeiling
	return cfg
}

// HarmonyRule is the parsed rule. Load has already validated it.
func (c Config) HarmonyRule() harmony.Rule {
	rule, err := harmony.ParseRule(c.Rule)
	if err != nil {
		return harmony.Triadic
	}
	return rule
}

// Base is the parsed base color. Load has already validated it.
func (c Config) Base() harmony.HSL {
	col, err := colorspace.Parse(c.BaseColor)
	if err != nil {
		col, _ = colorspace.ParseHex(Default().BaseColor)
	}
	return colorspace.ToHSL(col)
}

// Dark reports whether the dark theme is selected.
func (c Config) Dark() bool { return c.Theme == "dark" }
