package eyedropper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHexFromPixel(t *testing.T) {
	for _, tc := range []struct {
		pixel [4]byte
		want  string
	}{
		{[4]byte{255, 0, 0, 255}, "#ff0000"},
		{[4]byte{0, 255, 255, 0}, "#00ffff"},
		{[4]byte{59, 130, 246, 255}, "#3b82f6"},
		{[4]byte{0, 0, 0, 255}, "#000000"},
	} {
		assert.Equal(t, tc.want, HexFromPixel(tc.pixel))
	}
}

func TestOutOfBounds(t *testing.T) {
	s := FramebufferSampler{Size: func() (int, int) { return 100, 50 }}
	for _, p := range [][2]int{{-1, 0}, {0, -1}, {100, 0}, {0, 50}} {
		_, err := s.Sample(p[0], p[1])
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUnsupported)
	}
}
