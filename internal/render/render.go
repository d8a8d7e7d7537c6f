// Package render handles the visual presentation of the palette window.
//
// It takes a Scene (the wheel, its harmony markers, the swatch column and
// their text labels, already laid out in framebuffer pixels) and:
// 1. Builds per-layer vertex data in screen space, triangulating with earcut.
// 2. Uploads changed layers through the memory controller.
// 3. Draws everything with a single screen-to-NDC transform.
package render

import (
	"fmt"
	"log"
	"time"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/irfansharif/palettepro/internal/geom"
	"github.com/irfansharif/palettepro/internal/memory"
	"github.com/irfansharif/palettepro/internal/wheel"
)

// Layers, in draw order.
const (
	LayerPanels memory.LayerID = iota
	LayerWheel
	LayerMarkers
	LayerSwatches
	LayerText
)

const wheelSegments = 360

// SwatchQuad is one rendered palette swatch.
type SwatchQuad struct {
	Box      geom.Box
	Color    colorful.Color
	Selected bool // outlined, e.g. after being copied
}

// Scene is everything drawn in a frame, in framebuffer pixels.
type Scene struct {
	Wheel          wheel.Wheel
	WheelLightness float64 // [0,1]
	Picker         geom.Point
	PickerColor    colorful.Color
	PickerSat      float64
	Markers        []wheel.Marker
	Swatches       []SwatchQuad
	Panels         []geom.Box
	Labels         []Label // drawn last, over the swatches
	Theme          Theme
}

// Theme holds the background and chrome colors.
type Theme struct {
	Background colorful.Color
	Panel      colorful.Color
	Outline    colorful.Color
}

var (
	LightTheme = Theme{
		Background: colorful.Color{R: 0.973, G: 0.980, B: 0.988},
		Panel:      colorful.Color{R: 1, G: 1, B: 1},
		Outline:    colorful.Color{R: 0.059, G: 0.090, B: 0.165},
	}
	DarkTheme = Theme{
		Background: colorful.Color{R: 0.059, G: 0.090, B: 0.165},
		Panel:      colorful.Color{R: 0.118, G: 0.161, B: 0.231},
		Outline:    colorful.Color{R: 0.973, G: 0.980, B: 0.988},
	}
)

type Renderer struct {
	w, h int

	memController *memory.Controller
	shaderManager *ShaderManager
	stats         Stats

	// last uploaded wheel parameters, to skip rebuilding the wheel when
	// only the markers or swatches change.
	lastWheel     wheel.Wheel
	lastLightness float64
	wheelUploaded bool
}

// Stats tracks rendering performance metrics.
type Stats struct {
	LastPrepareTimeMs float64 // time spent in last Prepare() call in milliseconds
	LastDrawTimeUs    float64 // time spent in last Draw() call in microseconds
}

func NewRenderer(memController *memory.Controller) *Renderer {
	return &Renderer{
		shaderManager: NewShaderManager(),
		memController: memController,
	}
}

// Prepare rebuilds and uploads the scene's geometry for a w×h framebuffer.
func (r *Renderer) Prepare(scene Scene, w, h int) error {
	startTime := time.Now()

	if w <= 0 || h <= 0 {
		return fmt.Errorf("cannot prepare renderer: invalid viewport dimensions %dx%d", w, h)
	}
	r.w, r.h = w, h

	layers, err := BuildLayers(scene)
	if err != nil {
		return err
	}

	for _, id := range []memory.LayerID{LayerPanels, LayerMarkers, LayerSwatches, LayerText} {
		if err := r.memController.Upload(id, layers[id]); err != nil {
			return fmt.Errorf("uploading layer %d: %w", id, err)
		}
	}

	if !r.wheelUploaded || scene.Wheel != r.lastWheel || scene.WheelLightness != r.lastLightness {
		if err := r.memController.Upload(LayerWheel, layers[LayerWheel]); err != nil {
			return fmt.Errorf("uploading wheel: %w", err)
		}
		r.lastWheel, r.lastLightness, r.wheelUploaded = scene.Wheel, scene.WheelLightness, true
	}

	r.stats.LastPrepareTimeMs = float64(time.Since(startTime).Microseconds()) / 1000.0
	return nil
}

// BuildLayers generates vertex data for every layer of the scene.
func BuildLayers(scene Scene) (map[memory.LayerID][]float32, error) {
	layers := make(map[memory.LayerID][]float32, 5)

	var panels []float32
	for _, p := range scene.Panels {
		var err error
		if panels, err = appendPolygon(panels, scene.Theme.Panel, 1, p.Corners()); err != nil {
			return nil, fmt.Errorf("panel: %w", err)
		}
	}
	layers[LayerPanels] = panels

	layers[LayerWheel] = wheelVertices(scene.Wheel, scene.WheelLightness, wheelSegments)

	markers, err := markerVertices(scene.Markers, scene.PickerSat, scene.WheelLightness, scene.Picker, scene.PickerColor)
	if err != nil {
		return nil, fmt.Errorf("markers: %w", err)
	}
	layers[LayerMarkers] = markers

	var swatches []float32
	for i, s := range scene.Swatches {
		if swatches, err = appendPolygon(swatches, s.Color, 1, s.Box.Corners()); err != nil {
			return nil, fmt.Errorf("swatch %d: %w", i, err)
		}
		if !s.Selected {
			continue
		}
		if swatches, err = appendOutline(swatches, s.Box, 3, scene.Theme.Outline, 0.9); err != nil {
			return nil, fmt.Errorf("swatch %d outline: %w", i, err)
		}
	}
	layers[LayerSwatches] = swatches

	var text []float32
	for _, l := range scene.Labels {
		text = appendText(text, l)
	}
	layers[LayerText] = text

	return layers, nil
}

func (r *Renderer) Draw() {
	startTime := time.Now()

	r.shaderManager.SetTransform(r.computeTransformMatrix())

	// Memory controller handles all draws.
	if err := r.memController.Draw(); err != nil {
		log.Fatalf("Memory controller draw failed: %v", err)
	}

	r.stats.LastDrawTimeUs = float64(time.Since(startTime).Microseconds())
}

// Cleanup releases the shader program.
func (r *Renderer) Cleanup() {
	r.shaderManager.Cleanup()
}

// Stats returns the current performance statistics
func (r *Renderer) Stats() Stats {
	return r.stats
}

// computeTransformMatrix computes the transformation matrix from framebuffer
// pixels to OpenGL NDC.
func (r *Renderer) computeTransformMatrix() [16]float32 {
	return affineToMatrix4(geom.ScreenToNDC(r.w, r.h))
}

// affineToMatrix4 converts an affine transform to OpenGL 4x4 matrix format.
func affineToMatrix4(transform geom.Affine) [16]float32 {
	return [16]float32{
		float32(transform.A), float32(transform.D), 0, 0,
		float32(transform.B), float32(transform.E), 0, 0,
		0, 0, 1, 0,
		float32(transform.C), float32(transform.F), 0, 1,
	}
}
