package meshing

import (
	"fmt"

	"cablemesh/internal/cable"

	"github.com/go-gl/mathgl/mgl32"
)

// BufferSet owns the shared vertex buffer and the per-cable extraction
// scratch. Both are allocated once per topology; the steady-state frame loop
// never grows them.
type BufferSet struct {
	vertices []mgl32.Vec3
	scratch  []mgl32.Vec3
}

// NewBufferSet allocates a vertex buffer of totalVertexCount and a scratch
// buffer sized for the largest single-cable region.
func NewBufferSet(totalVertexCount, maxVertexCount int) *BufferSet {
	return &BufferSet{
		vertices: make([]mgl32.Vec3, totalVertexCount),
		scratch:  make([]mgl32.Vec3, maxVertexCount),
	}
}

// Vertices returns the shared buffer for the dispatcher to write into.
func (b *BufferSet) Vertices() []mgl32.Vec3 {
	return b.vertices
}

// Extract copies the descriptor's region out of the shared buffer into the
// scratch buffer and returns that view. Handing out a copy keeps consumers
// from aliasing memory the next frame's dispatch will overwrite; the view is
// only valid until the next Extract call.
func (b *BufferSet) Extract(d cable.Descriptor) ([]mgl32.Vec3, error) {
	n := d.VertexCount()
	if d.VertexOffset < 0 || d.VertexOffset+n > len(b.vertices) {
		return nil, fmt.Errorf("extract: region [%d,%d) outside buffer of %d",
			d.VertexOffset, d.VertexOffset+n, len(b.vertices))
	}
	out := b.scratch[:n]
	copy(out, b.vertices[d.VertexOffset:d.VertexOffset+n])
	return out, nil
}

// Release drops both buffers. The set must not be used afterwards.
func (b *BufferSet) Release() {
	b.vertices = nil
	b.scratch = nil
}
