package clipboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct{ text string }

func (r *recorder) SetClipboardString(text string) { r.text = text }

type broken struct{}

func (broken) SetClipboardString(string) { panic("X11: selection owner lost") }

func TestCopy(t *testing.T) {
	r := &recorder{}
	require.True(t, Copy(r, "#ff0000, #00ffff"))
	assert.Equal(t, "#ff0000, #00ffff", r.text)
}

func TestCopyFailure(t *testing.T) {
	assert.False(t, Copy(broken{}, "#ff0000"))
	assert.False(t, Copy(nil, "#ff0000"))

	err := Write(broken{}, "#ff0000")
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Contains(t, err.Error(), "selection owner lost")
}
