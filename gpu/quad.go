// SPDX-License-Identifier: Unlicense OR MIT

package gpu

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/elsampsa/opengl-texture-streaming/internal/glutil"
)

// Full-screen quad: clip-space corners with texture coordinates, five
// floats per vertex (position vec3, texcoord vec2).
var quadVertices = []float32{
	1.0, 1.0, 0.0, 1.0, 1.0, // top right
	1.0, -1.0, 0.0, 1.0, 0.0, // bottom right
	-1.0, -1.0, 0.0, 0.0, 0.0, // bottom left
	-1.0, 1.0, 0.0, 0.0, 1.0, // top left
}

// Two CCW triangles sharing the 1-3 diagonal.
var quadIndices = []uint32{
	0, 1, 3,
	1, 2, 3,
}

const quadVertexStride = 5 * 4 // five float32 per vertex

// Quad is the static textured quad every render pass draws. Immutable after
// creation; the attribute layout is bound to the locations the shader
// resolved rather than hardcoded slots.
type Quad struct {
	vao uint32
	vbo uint32
	ebo uint32
}

// NewQuad allocates the vertex and index buffers and records the attribute
// layout into a vertex array using the given shader locations.
func NewQuad(position, texcoord uint32) (*Quad, error) {
	q := &Quad{}
	gl.GenVertexArrays(1, &q.vao)
	gl.GenBuffers(1, &q.vbo)
	gl.GenBuffers(1, &q.ebo)

	gl.BindVertexArray(q.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, q.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(quadVertices)*4, gl.Ptr(quadVertices), gl.STATIC_DRAW)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, q.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(quadIndices)*4, gl.Ptr(quadIndices), gl.STATIC_DRAW)

	gl.VertexAttribPointer(position, 3, gl.FLOAT, false, quadVertexStride, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(position)
	gl.VertexAttribPointer(texcoord, 2, gl.FLOAT, false, quadVertexStride, gl.PtrOffset(3*4))
	gl.EnableVertexAttribArray(texcoord)

	gl.BindVertexArray(0)
	if err := glutil.Err(); err != nil {
		q.Release()
		return nil, fmt.Errorf("gpu: creating quad: %w", err)
	}
	return q, nil
}

// Draw issues the indexed draw of the two triangles.
func (q *Quad) Draw() {
	gl.BindVertexArray(q.vao)
	gl.DrawElements(gl.TRIANGLES, int32(len(quadIndices)), gl.UNSIGNED_INT, gl.PtrOffset(0))
	gl.BindVertexArray(0)
}

func (q *Quad) Release() {
	if q.vao != 0 {
		gl.DeleteVertexArrays(1, &q.vao)
		q.vao = 0
	}
	if q.vbo != 0 {
		gl.DeleteBuffers(1, &q.vbo)
		q.vbo = 0
	}
	if q.ebo != 0 {
		gl.DeleteBuffers(1, &q.ebo)
		q.ebo = 0
	}
}
