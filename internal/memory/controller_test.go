package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDevice struct {
	next      uint32
	allocated map[uint32]int
	uploads   int
	draws     []uint32
}

func newFakeDevice() *fakeDevice {
	return &fakeDevice{allocated: make(map[uint32]int)}
}

func (d *fakeDevice) alloc(bytes int) handle {
	d.next++
	d.allocated[d.next] = bytes
	return handle{vbo: d.next, vao: d.next}
}

func (d *fakeDevice) upload(h handle, vertices []float32) {
	if len(vertices)*4 > d.allocated[h.vbo] {
		panic("upload overflows buffer")
	}
	d.uploads++
}

func (d *fakeDevice) draw(h handle, _ int) { d.draws = append(d.draws, h.vbo) }

func (d *fakeDevice) free(h handle) { delete(d.allocated, h.vbo) }

func vertices(n int) []float32 {
	return make([]float32, n*FloatsPerVertex)
}

func TestNextCapacity(t *testing.T) {
	for _, tc := range []struct {
		current, need, want int
	}{
		{0, 0, MinVertexCapacity},
		{0, 10, MinVertexCapacity},
		{0, MinVertexCapacity + 1, 2 * MinVertexCapacity},
		{2048, 5000, 8192},
		{4096, 10, 4096},
	} {
		got, err := nextCapacity(tc.current, tc.need)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "current=%d need=%d", tc.current, tc.need)
	}

	_, err := nextCapacity(0, MaxBufferBytes)
	assert.Error(t, err)
}

func TestUploadValidates(t *testing.T) {
	c := newController(newFakeDevice())
	assert.Error(t, c.Upload(0, make([]float32, 7)))
	assert.NoError(t, c.Upload(0, nil))
}

func TestUploadGrowsByDoubling(t *testing.T) {
	dev := newFakeDevice()
	c := newController(dev)

	require.NoError(t, c.Upload(1, vertices(300)))
	require.NoError(t, c.Upload(1, vertices(900)))
	stats := c.Stats()
	assert.Equal(t, 0, stats.GrowthEvents)
	assert.Equal(t, MinVertexCapacity, stats.Layers[1].VertexCapacity)

	require.NoError(t, c.Upload(1, vertices(3000)))
	stats = c.Stats()
	assert.Equal(t, 1, stats.GrowthEvents)
	assert.Equal(t, 4096, stats.Layers[1].VertexCapacity)
	assert.Equal(t, 3000, stats.Layers[1].Vertices)
	assert.Len(t, dev.allocated, 1)

	// Shrinking keeps the buffer.
	require.NoError(t, c.Upload(1, vertices(3)))
	assert.Equal(t, 4096, c.Stats().Layers[1].VertexCapacity)
	assert.Equal(t, int64(3), c.Stats().TotalVertices)
}

func TestDrawOrder(t *testing.T) {
	dev := newFakeDevice()
	c := newController(dev)

	require.NoError(t, c.Upload(3, vertices(3)))
	require.NoError(t, c.Upload(1, vertices(6)))
	require.NoError(t, c.Upload(2, nil))

	require.NoError(t, c.Draw())
	// Handles were allocated in upload order (3 → 1, 1 → 2, 2 → 3); layer 2
	// is empty and skipped.
	assert.Equal(t, []uint32{2, 1}, dev.draws)
	assert.Equal(t, 2, c.Stats().DrawCallsPerFrame)
}

func TestRemoveAndCleanup(t *testing.T) {
	dev := newFakeDevice()
	c := newController(dev)

	require.NoError(t, c.Upload(0, vertices(3)))
	require.NoError(t, c.Upload(1, vertices(3)))
	require.NoError(t, c.Remove(0))
	assert.Error(t, c.Remove(0))
	assert.Equal(t, 1, c.Stats().TotalLayers)

	c.Cleanup()
	assert.Empty(t, dev.allocated)
	assert.Equal(t, 0, c.Stats().TotalLayers)
}

func TestFormatting(t *testing.T) {
	assert.Equal(t, "999", formatNumber(999))
	assert.Equal(t, "1.5K", formatNumber(1500))
	assert.Equal(t, "2.0M", formatNumber(2000000))
	assert.Equal(t, "██░░", makeUtilizationBar(0.5, 4))
	assert.Equal(t, "░░░░", makeUtilizationBar(-1, 4))
}
