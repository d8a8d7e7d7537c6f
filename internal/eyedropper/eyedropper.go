// Package eyedropper samples colors from the rendered window.
package eyedropper

import (
	"errors"
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/lucasb-eyer/go-colorful"
)

// ErrUnsupported is returned when a point cannot be sampled.
var ErrUnsupported = errors.New("eyedropper: point cannot be sampled")

// Sampler returns the hex color at a framebuffer position (origin top-left).
type Sampler interface {
	Sample(x, y int) (string, error)
}

// FramebufferSampler reads pixels back from the current OpenGL framebuffer.
// It must be called on the GL thread, after drawing and before swapping.
type FramebufferSampler struct {
	// Size reports the framebuffer dimensions, e.g. (*glfw.Window).GetFramebufferSize.
	Size func() (w, h int)
}

var _ Sampler = FramebufferSampler{}

func (s FramebufferSampler) Sample(x, y int) (string, error) {
	w, h := s.Size()
	if !inBounds(x, y, w, h) {
		return "", fmt.Errorf("%w: (%d, %d) outside %dx%d framebuffer", ErrUnsupported, x, y, w, h)
	}

	var pixel [4]byte
	// OpenGL's origin is bottom-left.
	gl.ReadPixels(int32(x), int32(h-1-y), 1, 1, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(&pixel[0]))
	if code := gl.GetError(); code != gl.NO_ERROR {
		return "", fmt.Errorf("%w: glReadPixels error 0x%x", ErrUnsupported, code)
	}
	return HexFromPixel(pixel), nil
}

// HexFromPixel formats an RGBA pixel as #rrggbb, ignoring alpha.
func HexFromPixel(pixel [4]byte) string {
	return colorful.Color{
		R: float64(pixel[0]) / 255,
		G: float64(pixel[1]) / 255,
		B: float64(pixel[2]) / 255,
	}.Hex()
}

func inBounds(x, y, w, h int) bool {
	return x >= 0 && y >= 0 && x < w && y < h
}
