package app

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/irfansharif/palettepro/internal/colorspace"
	"github.com/irfansharif/palettepro/internal/eyedropper"
	"github.com/irfansharif/palettepro/internal/geom"
	"github.com/irfansharif/palettepro/internal/harmony"
)

type fakeClipboard struct {
	text string
	fail bool
}

func (c *fakeClipboard) SetClipboardString(text string) {
	if c.fail {
		panic("no clipboard owner")
	}
	c.text = text
}

type fakeSampler map[geom.Point]string

func (s fakeSampler) Sample(x, y int) (string, error) {
	hex, ok := s[geom.MakePoint(float64(x), float64(y))]
	if !ok {
		return "", fmt.Errorf("%w: (%d, %d)", eyedropper.ErrUnsupported, x, y)
	}
	if hex == "" {
		return "", errors.New("read failed")
	}
	return hex, nil
}

// newTestApp builds an App without a window: only the input handlers that
// need no GL context are exercised.
func newTestApp(clip *fakeClipboard, sampler fakeSampler) *App {
	s := newTestState()
	p := s.Palette()
	return &App{
		State:     s,
		Palette:   p,
		Layout:    NewLayout(1280, 960, len(p)),
		Clipboard: clip,
		Sampler:   sampler,
	}
}

func TestCopySwatch(t *testing.T) {
	clip := &fakeClipboard{}
	app := newTestApp(clip, nil)
	now := time.Unix(100, 0)

	require.True(t, app.CopySwatch(app.Layout.Swatches[2].Center(), now))
	assert.Equal(t, app.Palette[2].Hex, clip.text)
	assert.Equal(t, "Copied "+app.Palette[2].Hex+" to clipboard", app.State.Status)
	assert.True(t, app.State.Highlighted(2, now))
	assert.True(t, app.dirty)

	// Off the swatches nothing is copied.
	clip.text = ""
	assert.False(t, app.CopySwatch(app.Layout.Wheel.Center, now))
	assert.Empty(t, clip.text)
}

func TestCopySwatchFailure(t *testing.T) {
	app := newTestApp(&fakeClipboard{fail: true}, nil)
	now := time.Unix(100, 0)

	require.True(t, app.CopySwatch(app.Layout.Swatches[0].Center(), now))
	assert.Equal(t, "Failed to copy color", app.State.Status)
	assert.False(t, app.State.Highlighted(0, now))

	app.Clipboard = nil
	require.True(t, app.CopySwatch(app.Layout.Swatches[1].Center(), now))
	assert.Equal(t, "Failed to copy color", app.State.Status)
}

func TestCopyAll(t *testing.T) {
	clip := &fakeClipboard{}
	app := newTestApp(clip, nil)

	app.CopyAll()
	assert.Equal(t, app.State.Palette().CopyAllText(), clip.text)
	assert.Equal(t, "Copied 5 colors to clipboard", app.State.Status)

	clip.fail = true
	app.CopyAll()
	assert.Equal(t, "Failed to copy colors", app.State.Status)
}

func TestResolveSamples(t *testing.T) {
	blue := geom.MakePoint(10, 20)
	broken := geom.MakePoint(30, 40)
	app := newTestApp(&fakeClipboard{}, fakeSampler{blue: "#0000ff", broken: ""})

	// Nothing queued, nothing changes.
	app.ResolveSamples()
	assert.False(t, app.dirty)

	app.RequestSample(blue)
	app.ResolveSamples()
	assert.Equal(t, "#0000ff", colorHex(app))
	assert.Equal(t, "Picked color: #0000ff", app.State.Status)
	assert.Empty(t, app.sampleQ)

	// A failed sample keeps the previous base.
	app.RequestSample(broken)
	app.RequestSample(geom.MakePoint(-1, -1))
	app.ResolveSamples()
	assert.Equal(t, "#0000ff", colorHex(app))
	assert.Equal(t, "Eyedropper could not sample there", app.State.Status)
	assert.Empty(t, app.sampleQ)

	// The last good sample of a batch wins.
	app.State.SetBase(harmony.HSL{H: 0, S: 1, L: 0.5})
	app.RequestSample(blue)
	app.RequestSample(broken)
	app.ResolveSamples()
	assert.Equal(t, "#0000ff", colorHex(app))
}

func colorHex(app *App) string {
	return colorspace.Hex(app.State.Base)
}
