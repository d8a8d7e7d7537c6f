package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPolarAngle(t *testing.T) {
	c := MakePoint(100, 100)
	for _, deg := range []float64{0, 45, 90, 179, -90} {
		p := Polar(c, 50, deg)
		assert.InDelta(t, 50, Dist(c, p), 1e-9)
		assert.InDelta(t, deg, Angle(c, p), 1e-9)
	}

	// y grows downwards, so 90° is straight below the center.
	p := Polar(c, 10, 90)
	assert.InDelta(t, 100, p.X, 1e-9)
	assert.InDelta(t, 110, p.Y, 1e-9)
}

func TestBox(t *testing.T) {
	b := MakeBox(10, 20, 30, 40)
	assert.True(t, b.Contains(MakePoint(10, 20)))
	assert.True(t, b.Contains(MakePoint(40, 60)))
	assert.False(t, b.Contains(MakePoint(41, 30)))
	assert.Equal(t, MakePoint(25, 40), b.Center())
	assert.Equal(t, MakeBox(15, 25, 20, 30), b.Inset(5))
	assert.Equal(t, 0.0, b.Inset(100).W)
	assert.Len(t, b.Corners(), 4)
}

func TestCircle(t *testing.T) {
	c := MakePoint(0, 0)
	pts := Circle(c, 3, 12)
	require.Len(t, pts, 12)
	for _, p := range pts {
		assert.InDelta(t, 3, Dist(c, p), 1e-9)
	}
	assert.Len(t, Circle(c, 1, 1), 3)
}

func TestAffineInverse(t *testing.T) {
	tr := ScreenToNDC(800, 600)
	inv, err := tr.Inv()
	require.NoError(t, err)

	p := MakePoint(123, 456)
	back := inv.MulPoint(tr.MulPoint(p))
	assert.InDelta(t, p.X, back.X, 1e-9)
	assert.InDelta(t, p.Y, back.Y, 1e-9)

	ndc := tr.MulPoint(MakePoint(0, 0))
	assert.Equal(t, MakePoint(-1, 1), ndc)

	composed := tr.Mul(Identity)
	assert.Equal(t, tr, composed)

	_, err = MakeAffine(0, 0, 1, 0, 0, 1).Inv()
	assert.Error(t, err)
}
