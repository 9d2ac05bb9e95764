package cable

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// degenerateEpsilon is the endpoint distance below which a cable is treated
// as collapsed and gets an identity orientation instead of a look rotation.
const degenerateEpsilon = 1e-3

var worldUp = mgl32.Vec3{0, 1, 0}

// Refresh rewrites the pose-derived descriptor fields from one frame's
// endpoint samples. poses is index-aligned with registration order. Each
// cable is independent, so this is O(cableCount) with no cross-cable reads.
func (r *Registry) Refresh(poses []Pose) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.sealed {
		return fmt.Errorf("refresh: %w", ErrNotSealed)
	}
	if len(poses) != len(r.descriptors) {
		return fmt.Errorf("refresh: got %d poses for %d cables", len(poses), len(r.descriptors))
	}

	for i := range r.descriptors {
		d := &r.descriptors[i]
		p := &poses[i]

		d.PointA = p.PositionA
		d.PointB = p.PositionB
		d.StartControl = p.PositionA.Add(p.ForwardA.Mul(d.Slack))
		d.EndControl = p.PositionB.Add(p.ForwardB.Mul(d.Slack))

		dir := p.PositionB.Sub(p.PositionA)
		if dir.Len() < degenerateEpsilon {
			d.LookRotation = mgl32.QuatIdent()
		} else {
			d.LookRotation = lookRotationSafe(dir, worldUp)
		}
	}
	return nil
}

// lookRotationSafe builds the rotation taking local +Z to dir, keeping local
// +Y as close to up as the direction allows. When dir is (anti)parallel to
// up the reference axis falls back to +X, so the result is always finite.
func lookRotationSafe(dir, up mgl32.Vec3) mgl32.Quat {
	forward := dir.Normalize()
	if float32(math.Abs(float64(forward.Dot(up)))) > 0.999 {
		up = mgl32.Vec3{1, 0, 0}
	}
	right := up.Cross(forward).Normalize()
	newUp := forward.Cross(right)
	m := mgl32.Mat3FromCols(right, newUp, forward)
	return mgl32.Mat4ToQuat(m.Mat4())
}
