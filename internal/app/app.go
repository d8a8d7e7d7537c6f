package app

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/irfansharif/palettepro/internal/clipboard"
	"github.com/irfansharif/palettepro/internal/colorspace"
	"github.com/irfansharif/palettepro/internal/config"
	"github.com/irfansharif/palettepro/internal/export"
	"github.com/irfansharif/palettepro/internal/eyedropper"
	"github.com/irfansharif/palettepro/internal/geom"
	"github.com/irfansharif/palettepro/internal/harmony"
	"github.com/irfansharif/palettepro/internal/memory"
	"github.com/irfansharif/palettepro/internal/palette"
	"github.com/irfansharif/palettepro/internal/render"
)

// App encapsulates the main application state and logic.
type App struct {
	Window           *glfw.Window
	Renderer         *render.Renderer
	MemoryController *memory.Controller
	State            *State
	Layout           Layout
	Palette          palette.Palette

	Clipboard clipboard.Writer
	Sampler   eyedropper.Sampler
	ExportDir string

	rand    *rand.Rand
	dirty   bool
	sampleQ []geom.Point // eyedropper requests, served after the next draw
}

// NewApp creates a new application instance. The window's GL context must be
// current.
func NewApp(window *glfw.Window, cfg config.Config) *App {
	memController := memory.NewController()
	gen := harmony.NewGenerator(cfg.HarmonyConfig())
	app := &App{
		Window:           window,
		Renderer:         render.NewRenderer(memController),
		MemoryController: memController,
		State:            NewState(gen, cfg.Base(), cfg.HarmonyRule(), cfg.Count, cfg.WheelLightness, cfg.Dark()),
		Clipboard:        window,
		Sampler:          eyedropper.FramebufferSampler{Size: window.GetFramebufferSize},
		ExportDir:        cfg.ExportDir,
		rand:             rand.New(rand.NewSource(cfg.Seed)),
		dirty:            true,
	}
	return app
}

// Invalidate marks the scene for rebuilding on the next Prepare.
func (app *App) Invalidate() { app.dirty = true }

// Prepare regenerates the palette, layout and geometry if anything changed.
func (app *App) Prepare(now time.Time) {
	if app.State.HighlightExpired(now) {
		app.dirty = true
	}
	if !app.dirty {
		return
	}

	w, h := app.Window.GetFramebufferSize()
	app.Palette = app.State.Palette()
	app.Layout = NewLayout(w, h, len(app.Palette))
	scene := BuildScene(app.State, app.Layout, app.Palette, now)
	if err := app.Renderer.Prepare(scene, w, h); err != nil {
		log.Printf("failed to prepare renderer: %v", err)
		return
	}
	app.Window.SetTitle(app.State.Title())
	app.dirty = false
}

// Background is the clear color for the current theme.
func (app *App) Background() (r, g, b float32) {
	c := render.LightTheme.Background
	if app.State.Dark {
		c = render.DarkTheme.Background
	}
	return float32(c.R), float32(c.G), float32(c.B)
}

// PickWheel sets the base color from the wheel position under p, reporting
// whether p was on the wheel.
func (app *App) PickWheel(p geom.Point) bool {
	hue, sat, ok := app.Layout.WheelAt(p)
	if !ok {
		return false
	}
	app.State.SetFromWheel(hue, sat)
	app.State.Status = ""
	app.dirty = true
	return true
}

// CopySwatch copies the hex of the swatch under p, reporting whether p was
// on a swatch.
func (app *App) CopySwatch(p geom.Point, now time.Time) bool {
	i, ok := app.Layout.SwatchAt(p)
	if !ok || i >= len(app.Palette) {
		return false
	}
	hex := app.Palette[i].Hex
	if clipboard.Copy(app.Clipboard, hex) {
		app.State.MarkCopied(i, now)
		app.State.Status = fmt.Sprintf("Copied %s to clipboard", hex)
		log.Printf("copied color: %s", hex)
	} else {
		app.State.Status = "Failed to copy color"
	}
	app.dirty = true
	return true
}

// CopyAll copies every hex in the palette, comma separated.
func (app *App) CopyAll() {
	text := app.State.Palette().CopyAllText()
	if clipboard.Copy(app.Clipboard, text) {
		app.State.Status = fmt.Sprintf("Copied %d colors to clipboard", app.State.Count)
		log.Printf("copied all colors: %s", text)
	} else {
		app.State.Status = "Failed to copy colors"
	}
	app.dirty = true
}

// RandomBase picks a random base color.
func (app *App) RandomBase() {
	app.State.SetBase(palette.RandomBase(app.rand))
	app.State.Status = ""
	app.dirty = true
}

// Export writes the palette as PNG and CSS into the export directory.
func (app *App) Export(now time.Time) {
	paths, err := export.WriteFiles(app.ExportDir, app.State.Palette(), app.State.Rule, now)
	if err != nil {
		log.Printf("export failed: %v", err)
		app.State.Status = "Export failed"
	} else {
		log.Printf("exported palette to %v", paths)
		app.State.Status = fmt.Sprintf("Exported %d files to %s", len(paths), app.ExportDir)
	}
	app.dirty = true
}

// ApplyInput applies the typed color.
func (app *App) ApplyInput() {
	if err := app.State.ApplyInput(); err != nil {
		log.Printf("ignoring typed color: %v", err)
	}
	app.dirty = true
}

// RequestSample queues an eyedropper read at framebuffer position p. Pixels
// can only be read between drawing and swapping, so it is served by
// ResolveSamples.
func (app *App) RequestSample(p geom.Point) {
	app.sampleQ = append(app.sampleQ, p)
}

// ResolveSamples serves queued eyedropper requests. The last successful
// sample becomes the base color.
func (app *App) ResolveSamples() {
	if len(app.sampleQ) == 0 {
		return
	}
	for _, p := range app.sampleQ {
		hex, err := app.Sampler.Sample(int(p.X), int(p.Y))
		if err != nil {
			log.Printf("eyedropper: %v", err)
			app.State.Status = "Eyedropper could not sample there"
			continue
		}
		c, err := colorspace.ParseHex(hex)
		if err != nil {
			log.Printf("eyedropper: %v", err)
			continue
		}
		app.State.SetBase(colorspace.ToHSL(c))
		app.State.Status = "Picked color: " + hex
		log.Printf("eyedropper picked color: %s", hex)
	}
	app.sampleQ = app.sampleQ[:0]
	app.dirty = true
}

// Cleanup frees GPU resources.
func (app *App) Cleanup() {
	app.MemoryController.Cleanup()
	app.Renderer.Cleanup()
}
