package meshing

import "github.com/go-gl/mathgl/mgl32"

// Topology is the fixed triangle/UV layout of one cable's tube. It depends
// only on resolution, never on pose, so it is built once at seal time.
type Topology struct {
	// Indices is a triangle list into the cable's local vertex region.
	Indices []uint32
	// UVs has one entry per region vertex: u wraps around the
	// cross-section, v runs along the cable.
	UVs []mgl32.Vec2
}

// BuildTubeTopology generates the index and UV layout for a tube with the
// given resolution, consistent with the kernel's (row, column) vertex order.
// Consecutive longitudinal rows are stitched into quads, each split into two
// triangles with uniform winding. The seam column shares positions with
// column zero but carries its own UVs.
func BuildTubeTopology(segments, radialSegments int) Topology {
	rows := segments + 2
	cols := radialSegments + 1

	indices := make([]uint32, 0, (rows-1)*(cols-1)*6)
	for i := 0; i < rows-1; i++ {
		for j := 0; j < cols-1; j++ {
			a := uint32(i*cols + j)
			b := uint32(i*cols + j + 1)
			c := uint32((i+1)*cols + j)
			d := uint32((i+1)*cols + j + 1)
			indices = append(indices, a, c, b)
			indices = append(indices, b, c, d)
		}
	}

	uvs := make([]mgl32.Vec2, 0, rows*cols)
	for i := 0; i < rows; i++ {
		v := float32(i) / float32(segments+1)
		for j := 0; j < cols; j++ {
			u := float32(j) / float32(radialSegments)
			uvs = append(uvs, mgl32.Vec2{u, v})
		}
	}

	return Topology{Indices: indices, UVs: uvs}
}
