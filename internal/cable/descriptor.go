package cable

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Params holds the static configuration of a single cable.
type Params struct {
	// Segments is the longitudinal resolution of the tube (number of
	// interior subdivisions between the two endpoints).
	Segments int
	// RadialSegments is the side count of the circular cross-section polygon.
	RadialSegments int
	// Radius of the tube.
	Radius float32
	// Slack scales the endpoint forward directions into Bézier control
	// points; zero slack yields a straight cable.
	Slack float32
}

// Validate reports whether the params describe a buildable cable.
func (p Params) Validate() error {
	if p.Segments < 1 {
		return fmt.Errorf("cable: segments must be >= 1, got %d", p.Segments)
	}
	if p.RadialSegments < 3 {
		return fmt.Errorf("cable: radial segments must be >= 3, got %d", p.RadialSegments)
	}
	if !(p.Radius > 0) {
		return fmt.Errorf("cable: radius must be > 0, got %v", p.Radius)
	}
	if p.Slack < 0 {
		return fmt.Errorf("cable: slack must be >= 0, got %v", p.Slack)
	}
	return nil
}

// VertexCount returns the size of the vertex region a cable with these
// params occupies in the shared buffer. Two extra longitudinal rows are the
// collapsed end caps; the extra radial column is the texture seam duplicate.
func (p Params) VertexCount() int {
	return (p.Segments + 2) * (p.RadialSegments + 1)
}

// Descriptor is the per-cable record read by the vertex kernel. The static
// fields are fixed at registration; the pose-derived fields are rewritten
// every frame by Registry.Refresh.
type Descriptor struct {
	Segments       int
	RadialSegments int
	Radius         float32
	Slack          float32

	PointA       mgl32.Vec3
	PointB       mgl32.Vec3
	StartControl mgl32.Vec3
	EndControl   mgl32.Vec3
	LookRotation mgl32.Quat

	// VertexOffset is the start of this cable's region in the shared
	// vertex buffer. Assigned at seal time.
	VertexOffset int
}

// VertexCount returns the size of this descriptor's vertex region.
func (d *Descriptor) VertexCount() int {
	return (d.Segments + 2) * (d.RadialSegments + 1)
}

// Pose is one frame's endpoint sample for a single cable, already expressed
// in the kernel's coordinate space.
type Pose struct {
	PositionA mgl32.Vec3
	PositionB mgl32.Vec3
	ForwardA  mgl32.Vec3
	ForwardB  mgl32.Vec3
}
