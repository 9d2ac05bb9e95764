package meshing

import (
	"fmt"
	"math"

	"cablemesh/internal/cable"

	"github.com/go-gl/mathgl/mgl32"
)

// Evaluate maps one global vertex index to its position. It is a pure
// function of the index and the descriptor table, which makes it safe to
// evaluate concurrently over disjoint index ranges with no locking.
func Evaluate(globalIndex int, table []cable.Descriptor) mgl32.Vec3 {
	d := &table[resolveOwner(globalIndex, table)]

	local := globalIndex - d.VertexOffset
	cols := d.RadialSegments + 1
	i := local / cols
	j := local % cols

	// Cap rows collapse to the exact endpoints so the tube attaches to its
	// anchors with no gap, regardless of float error in the generic path.
	if i == 0 {
		return d.PointA
	}
	if i == d.Segments+1 {
		return d.PointB
	}

	t := float32(i) / float32(d.Segments+1)
	center := bezierPoint(d.PointA, d.StartControl, d.EndControl, d.PointB, t)

	theta := float64(j) / float64(d.RadialSegments) * 2 * math.Pi
	offset := mgl32.Vec3{
		d.Radius * float32(math.Cos(theta)),
		d.Radius * float32(math.Sin(theta)),
		0,
	}
	return center.Add(d.LookRotation.Rotate(offset))
}

// resolveOwner finds the descriptor whose region contains globalIndex.
// Regions are contiguous and ordered by offset, so a binary search over the
// offset boundaries suffices; the last descriptor is the catch-all upper
// bound. An unowned index means the layout invariant is broken, which is an
// internal defect rather than a runtime condition.
func resolveOwner(globalIndex int, table []cable.Descriptor) int {
	lo, hi := 0, len(table)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if table[mid].VertexOffset <= globalIndex {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	d := &table[lo]
	if globalIndex < d.VertexOffset || globalIndex >= d.VertexOffset+d.VertexCount() {
		panic(fmt.Sprintf("meshing: vertex index %d has no owning descriptor", globalIndex))
	}
	return lo
}

// bezierPoint evaluates the cubic Bézier with control polygon (p0,c0,c1,p1)
// at parameter t, in Bernstein form.
func bezierPoint(p0, c0, c1, p1 mgl32.Vec3, t float32) mgl32.Vec3 {
	u := 1 - t
	b0 := u * u * u
	b1 := 3 * u * u * t
	b2 := 3 * u * t * t
	b3 := t * t * t
	return p0.Mul(b0).Add(c0.Mul(b1)).Add(c1.Mul(b2)).Add(p1.Mul(b3))
}
