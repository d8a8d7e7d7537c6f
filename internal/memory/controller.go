// Package memory provides GPU memory management for the palette window.
//
// Each drawable layer (wheel, markers, swatches, ...) owns one VBO+VAO pair.
// Buffers grow by doubling when a layer's geometry outgrows them and are
// otherwise updated in place, so steady-state frames never reallocate.
package memory

import (
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"strings"
	"time"
)

var memoryLogger *log.Logger = log.New(io.Discard, "", 0)

func init() {
	if os.Getenv("PALETTE_DEBUG_MEMORY") == "1" {
		memoryLogger = log.New(os.Stdout, "[memory] ", log.Ltime|log.Lmsgprefix)
	}
}

const (
	// FloatsPerVertex is the vertex layout: x, y, r, g, b, a.
	FloatsPerVertex = 6
	bytesPerVertex  = FloatsPerVertex * 4

	// Growth configuration. Buffers start at MinVertexCapacity and double
	// until they fit, refusing to go past MaxBufferBytes.
	MinVertexCapacity = 1024
	MaxBufferBytes    = 64 * 1024 * 1024 // 64 MiB
)

// LayerID identifies a drawable layer. Layers are drawn in ascending order.
type LayerID int

// Controller manages GPU memory for all layers.
type Controller struct {
	dev    device
	layers map[LayerID]*buffer
	stats  Stats
}

// Stats tracks memory metrics for the controller.
type Stats struct {
	TotalLayers       int
	TotalVertices     int64
	TotalGPUBytes     int64
	DrawCallsPerFrame int
	Uploads           int
	GrowthEvents      int
	LastGrowthTimeUs  float64
	Layers            map[LayerID]LayerStats
}

// LayerStats tracks metrics for a single layer.
type LayerStats struct {
	Vertices       int
	VertexCapacity int
	GrowthCycles   int
}

// buffer is a VBO+VAO pair sized for vertexCapacity vertices.
type buffer struct {
	handle         handle
	vertexCapacity int
	vertexCount    int
	growthCycles   int
	initial        int
}

// NewController creates a memory controller backed by the current OpenGL
// context.
func NewController() *Controller {
	return newController(glDevice{})
}

func newController(dev device) *Controller {
	return &Controller{
		dev:    dev,
		layers: make(map[LayerID]*buffer),
		stats:  Stats{Layers: make(map[LayerID]LayerStats)},
	}
}

// Upload replaces a layer's vertex data, growing its buffer if needed. An empty
// slice keeps the layer's buffer but draws nothing.
func (c *Controller) Upload(id LayerID, vertices []float32) error {
	if len(vertices)%FloatsPerVertex != 0 {
		return fmt.Errorf("vertex data must be multiple of %d floats (x,y,r,g,b,a), got %d", FloatsPerVertex, len(vertices))
	}
	vertexCount := len(vertices) / FloatsPerVertex

	buf, ok := c.layers[id]
	if !ok || vertexCount > buf.vertexCapacity {
		current := 0
		if ok {
			current = buf.vertexCapacity
		}
		capacity, err := nextCapacity(current, vertexCount)
		if err != nil {
			return fmt.Errorf("layer %d: %w", id, err)
		}

		startTime := time.Now()
		if ok {
			c.dev.free(buf.handle)
			buf.growthCycles++
			c.stats.GrowthEvents++
		} else {
			buf = &buffer{initial: capacity}
			c.layers[id] = buf
		}
		buf.handle = c.dev.alloc(capacity * bytesPerVertex)
		buf.vertexCapacity = capacity
		if ok {
			c.stats.LastGrowthTimeUs = float64(time.Since(startTime).Microseconds())
			memoryLogger.Printf("layer %d grew to %s vertices", id, formatNumber(int64(capacity)))
		}
	}

	buf.vertexCount = vertexCount
	if vertexCount > 0 {
		c.dev.upload(buf.handle, vertices)
	}
	c.stats.Uploads++
	return nil
}

// Remove frees a layer's buffer.
func (c *Controller) Remove(id LayerID) error {
	buf, ok := c.layers[id]
	if !ok {
		return fmt.Errorf("layer %d not found", id)
	}
	c.dev.free(buf.handle)
	delete(c.layers, id)
	return nil
}

// Draw issues one draw call per non-empty layer, in layer order.
func (c *Controller) Draw() error {
	drawCalls := 0
	for _, id := range c.order() {
		buf := c.layers[id]
		if buf.vertexCount == 0 {
			continue
		}
		if buf.vertexCount > buf.vertexCapacity {
			return fmt.Errorf("layer %d holds %d vertices but has capacity for %d", id, buf.vertexCount, buf.vertexCapacity)
		}
		c.dev.draw(buf.handle, buf.vertexCount)
		drawCalls++
	}
	c.stats.DrawCallsPerFrame = drawCalls
	return nil
}

// Cleanup frees all GPU resources.
func (c *Controller) Cleanup() {
	for id, buf := range c.layers {
		c.dev.free(buf.handle)
		delete(c.layers, id)
	}
}

// Stats returns a snapshot of the current memory statistics.
func (c *Controller) Stats() Stats {
	c.updateStats()
	stats := c.stats
	stats.Layers = make(map[LayerID]LayerStats, len(c.stats.Layers))
	for id, ls := range c.stats.Layers {
		stats.Layers[id] = ls
	}
	return stats
}

func (c *Controller) updateStats() {
	c.stats.TotalLayers = len(c.layers)
	c.stats.TotalVertices = 0
	c.stats.TotalGPUBytes = 0
	c.stats.Layers = make(map[LayerID]LayerStats, len(c.layers))
	for id, buf := range c.layers {
		c.stats.TotalVertices += int64(buf.vertexCount)
		c.stats.TotalGPUBytes += int64(buf.vertexCapacity * bytesPerVertex)
		c.stats.Layers[id] = LayerStats{
			Vertices:       buf.vertexCount,
			VertexCapacity: buf.vertexCapacity,
			GrowthCycles:   buf.growthCycles,
		}
	}
}

// PrintStats outputs memory statistics with visual bars.
func (c *Controller) PrintStats() {
	stats := c.Stats()

	memoryLogger.Println("===== Memory Controller Stats =====")
	memoryLogger.Printf("%d layers, %d uploads, %d growth events (%.2fμs last), %s GPU (%s triangles, %s vertices)",
		stats.TotalLayers,
		stats.Uploads,
		stats.GrowthEvents,
		stats.LastGrowthTimeUs,
		formatNumber(stats.TotalGPUBytes),
		formatNumber(stats.TotalVertices/3),
		formatNumber(stats.TotalVertices),
	)
	for _, id := range c.order() {
		ls := stats.Layers[id]
		util := 0.0
		if ls.VertexCapacity > 0 {
			util = float64(ls.Vertices) / float64(ls.VertexCapacity)
		}
		memoryLogger.Printf("  layer#%02d  %s %.0f%% used (%s/%s vertices), %d× growth (%s -> %s)",
			id,
			makeUtilizationBar(util, 12),
			util*100,
			formatNumber(int64(ls.Vertices)),
			formatNumber(int64(ls.VertexCapacity)),
			ls.GrowthCycles+1,
			formatNumber(int64(c.layers[id].initial)),
			formatNumber(int64(ls.VertexCapacity)),
		)
	}
	memoryLogger.Println("===================================")
}

func (c *Controller) order() []LayerID {
	ids := make([]LayerID, 0, len(c.layers))
	for id := range c.layers {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// nextCapacity returns the vertex capacity a buffer currently holding current
// vertices should grow to in order to fit need vertices.
func nextCapacity(current, need int) (int, error) {
	capacity := current
	if capacity < MinVertexCapacity {
		capacity = MinVertexCapacity
	}
	for capacity < need {
		capacity *= 2
	}
	if capacity*bytesPerVertex > MaxBufferBytes {
		return 0, fmt.Errorf("buffer for %d vertices exceeds %s limit", need, formatNumber(MaxBufferBytes))
	}
	return capacity, nil
}

// makeUtilizationBar creates a visual bar for utilization percentage.
func makeUtilizationBar(utilization float64, width int) string {
	if utilization < 0 {
		utilization = 0
	}
	if utilization > 1 {
		utilization = 1
	}

	filled := int(utilization * float64(width))
	empty := width - filled

	bar := strings.Repeat("█", filled) + strings.Repeat("░", empty)
	return bar
}

// formatNumber formats large numbers with K/M suffixes for readability.
func formatNumber(n int64) string {
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	if n < 1000000 {
		return fmt.Sprintf("%.1fK", float64(n)/1000.0)
	}
	return fmt.Sprintf("%.1fM", float64(n)/1000000.0)
}
