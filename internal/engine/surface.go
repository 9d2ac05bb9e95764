package engine

import (
	"cablemesh/internal/cable"

	"github.com/go-gl/mathgl/mgl32"
)

// Surface is the capability a rendering collaborator supplies per cable.
// The engine only ever talks to this interface; it never depends on a
// concrete mesh or renderer type.
type Surface interface {
	// Pose returns the cable's current endpoint sample, expressed in the
	// kernel's coordinate space.
	Pose() cable.Pose
	// UpdatePositions receives the cable's evaluated vertex positions for
	// this frame. The slice is only valid for the duration of the call;
	// implementations must copy what they keep.
	UpdatePositions(positions []mgl32.Vec3)
}
