package memory

import (
	"github.com/go-gl/gl/v4.1-core/gl"
)

// handle names a VBO+VAO pair.
type handle struct {
	vbo uint32
	vao uint32
}

// device is the slice of OpenGL the controller depends on.
type device interface {
	alloc(bytes int) handle
	upload(h handle, vertices []float32)
	draw(h handle, vertexCount int)
	free(h handle)
}

type glDevice struct{}

var _ device = glDevice{}

func (glDevice) alloc(bytes int) handle {
	var h handle
	gl.GenVertexArrays(1, &h.vao)
	gl.GenBuffers(1, &h.vbo)

	gl.BindVertexArray(h.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, h.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, bytes, nil, gl.DYNAMIC_DRAW)

	// - Attribute 0: position (vec2)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, bytesPerVertex, gl.PtrOffset(0))
	// - Attribute 1: color (vec4)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 4, gl.FLOAT, false, bytesPerVertex, gl.PtrOffset(8))

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
	return h
}

func (glDevice) upload(h handle, vertices []float32) {
	gl.BindBuffer(gl.ARRAY_BUFFER, h.vbo)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(vertices)*4, gl.Ptr(vertices))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

func (glDevice) draw(h handle, vertexCount int) {
	gl.BindVertexArray(h.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, int32(vertexCount))
	gl.BindVertexArray(0)
}

func (glDevice) free(h handle) {
	if h.vao != 0 {
		gl.DeleteVertexArrays(1, &h.vao)
	}
	if h.vbo != 0 {
		gl.DeleteBuffers(1, &h.vbo)
	}
}
