package main

import (
	"image/color"
	"math"

	"cablemesh/internal/cable"
	"cablemesh/internal/meshing"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// cableMesh owns one cable's GL objects and its demo anchor animation. It
// implements engine.Surface: the engine pulls the swinging pose from it and
// pushes the evaluated tube vertices back each frame.
type cableMesh struct {
	vao        uint32
	vbo        uint32
	uvbo       uint32
	ebo        uint32
	indexCount int32
	color      mgl32.Vec3

	anchorA mgl32.Vec3
	anchorB mgl32.Vec3
	swing   float32
	phase   float32
	clock   *float64

	// flat is the upload staging buffer, sized once at creation.
	flat []float32
}

// newCableMesh allocates the GL objects for one cable: a dynamic position
// VBO sized for the cable's vertex region, a static UV buffer and a static
// index buffer from the tube topology.
func newCableMesh(vertexCount int, topo meshing.Topology, tint color.RGBA) *cableMesh {
	m := &cableMesh{
		indexCount: int32(len(topo.Indices)),
		color: mgl32.Vec3{
			float32(tint.R) / 255,
			float32(tint.G) / 255,
			float32(tint.B) / 255,
		},
		flat: make([]float32, vertexCount*3),
	}

	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, vertexCount*3*4, nil, gl.DYNAMIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 0, gl.PtrOffset(0))

	uvs := make([]float32, 0, len(topo.UVs)*2)
	for _, uv := range topo.UVs {
		uvs = append(uvs, uv.X(), uv.Y())
	}
	gl.GenBuffers(1, &m.uvbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.uvbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(uvs)*4, gl.Ptr(uvs), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 2, gl.FLOAT, false, 0, gl.PtrOffset(0))

	gl.GenBuffers(1, &m.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(topo.Indices)*4, gl.Ptr(topo.Indices), gl.STATIC_DRAW)

	gl.BindVertexArray(0)
	return m
}

// Pose returns the cable's endpoints for the current clock: anchor A is
// fixed, anchor B swings on a pendulum arc, both forwards point down so the
// slack droops.
func (m *cableMesh) Pose() cable.Pose {
	t := *m.clock
	b := m.anchorB
	if m.swing != 0 {
		b = b.Add(mgl32.Vec3{
			m.swing * float32(math.Sin(t+float64(m.phase))),
			0,
			m.swing * 0.4 * float32(math.Cos(t*0.7+float64(m.phase))),
		})
	}
	down := mgl32.Vec3{0, -1, 0}
	return cable.Pose{
		PositionA: m.anchorA,
		PositionB: b,
		ForwardA:  down,
		ForwardB:  down,
	}
}

// UpdatePositions uploads this frame's evaluated vertices into the dynamic VBO.
func (m *cableMesh) UpdatePositions(positions []mgl32.Vec3) {
	for i, p := range positions {
		m.flat[i*3+0] = p.X()
		m.flat[i*3+1] = p.Y()
		m.flat[i*3+2] = p.Z()
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(positions)*3*4, gl.Ptr(m.flat))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

// draw issues the cable's indexed draw call. The program and MVP uniform
// must already be bound.
func (m *cableMesh) draw(colorUniform int32) {
	gl.Uniform3f(colorUniform, m.color.X(), m.color.Y(), m.color.Z())
	gl.BindVertexArray(m.vao)
	gl.DrawElements(gl.TRIANGLES, m.indexCount, gl.UNSIGNED_INT, gl.PtrOffset(0))
	gl.BindVertexArray(0)
}

// destroy releases the GL objects.
func (m *cableMesh) destroy() {
	gl.DeleteBuffers(1, &m.vbo)
	gl.DeleteBuffers(1, &m.uvbo)
	gl.DeleteBuffers(1, &m.ebo)
	gl.DeleteVertexArrays(1, &m.vao)
}
