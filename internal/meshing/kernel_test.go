package meshing

import (
	"fmt"
	"math"
	"testing"

	"cablemesh/internal/cable"

	"github.com/go-gl/mathgl/mgl32"
)

func vecNear(a, b mgl32.Vec3, eps float32) bool {
	return a.Sub(b).Len() <= eps
}

func sealedRegistry(t *testing.T, params []cable.Params, poses []cable.Pose) *cable.Registry {
	t.Helper()
	r := cable.NewRegistry()
	for i, p := range params {
		if _, err := r.Register(fmt.Sprintf("c%d", i), p); err != nil {
			t.Fatalf("register %d: %v", i, err)
		}
	}
	if err := r.Seal(); err != nil {
		t.Fatalf("seal: %v", err)
	}
	if err := r.Refresh(poses); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	return r
}

// The worked example: one straight cable of segments=1, radialSegments=4,
// radius=1 from the origin to (0,0,10) with zero slack.
func TestEvaluateStraightCable(t *testing.T) {
	r := sealedRegistry(t,
		[]cable.Params{{Segments: 1, RadialSegments: 4, Radius: 1}},
		[]cable.Pose{{PositionB: mgl32.Vec3{0, 0, 10}}},
	)
	table := r.Table()

	if got := table[0].VertexCount(); got != 15 {
		t.Fatalf("region size: got %d, want 15", got)
	}

	pointA := mgl32.Vec3{0, 0, 0}
	pointB := mgl32.Vec3{0, 0, 10}

	// Cap rows must be bit-exact endpoint copies, all five columns each.
	for j := 0; j < 5; j++ {
		if got := Evaluate(j, table); got != pointA {
			t.Errorf("row 0 col %d: got %v, want exactly %v", j, got, pointA)
		}
		if got := Evaluate(10+j, table); got != pointB {
			t.Errorf("row 2 col %d: got %v, want exactly %v", j, got, pointB)
		}
	}

	// Midpoint row: ring of radius 1 around (0,0,5) at 0/90/180/270 degrees,
	// plus the seam duplicate of column 0.
	want := []mgl32.Vec3{
		{1, 0, 5},
		{0, 1, 5},
		{-1, 0, 5},
		{0, -1, 5},
		{1, 0, 5},
	}
	for j, w := range want {
		got := Evaluate(5+j, table)
		if !vecNear(got, w, 1e-5) {
			t.Errorf("row 1 col %d: got %v, want %v", j, got, w)
		}
	}
}

func TestEvaluateCapRowsExactAcrossCables(t *testing.T) {
	params := []cable.Params{
		{Segments: 3, RadialSegments: 5, Radius: 0.25, Slack: 1.5},
		{Segments: 9, RadialSegments: 8, Radius: 2},
	}
	poses := []cable.Pose{
		{
			PositionA: mgl32.Vec3{0.1, 0.2, 0.3},
			PositionB: mgl32.Vec3{-7, 3, 2.5},
			ForwardA:  mgl32.Vec3{0, -1, 0},
			ForwardB:  mgl32.Vec3{0, -1, 0},
		},
		{
			PositionA: mgl32.Vec3{100, -50, 3},
			PositionB: mgl32.Vec3{101, -49, 4},
		},
	}
	r := sealedRegistry(t, params, poses)
	table := r.Table()

	for ci := range table {
		d := &table[ci]
		cols := d.RadialSegments + 1
		for j := 0; j < cols; j++ {
			first := Evaluate(d.VertexOffset+j, table)
			if first != d.PointA {
				t.Errorf("cable %d col %d: start cap %v != pointA %v", ci, j, first, d.PointA)
			}
			lastRow := d.VertexOffset + (d.Segments+1)*cols + j
			last := Evaluate(lastRow, table)
			if last != d.PointB {
				t.Errorf("cable %d col %d: end cap %v != pointB %v", ci, j, last, d.PointB)
			}
		}
	}
}

// Interior rings must be regular polygons of circumradius Radius centered on
// the Bézier point, in the plane oriented by the look rotation.
func TestEvaluateRingGeometry(t *testing.T) {
	p := cable.Params{Segments: 6, RadialSegments: 7, Radius: 0.75, Slack: 3}
	pose := cable.Pose{
		PositionA: mgl32.Vec3{1, 4, -2},
		PositionB: mgl32.Vec3{5, 0, 3},
		ForwardA:  mgl32.Vec3{0, -1, 0},
		ForwardB:  mgl32.Vec3{0.5, 0.5, 0},
	}
	r := sealedRegistry(t, []cable.Params{p}, []cable.Pose{pose})
	table := r.Table()
	d := &table[0]
	cols := d.RadialSegments + 1

	for i := 1; i <= d.Segments; i++ {
		// Ring center = average over the distinct radial samples.
		var center mgl32.Vec3
		for j := 0; j < d.RadialSegments; j++ {
			center = center.Add(Evaluate(d.VertexOffset+i*cols+j, table))
		}
		center = center.Mul(1 / float32(d.RadialSegments))

		axis := d.LookRotation.Rotate(mgl32.Vec3{0, 0, 1})
		for j := 0; j < d.RadialSegments; j++ {
			v := Evaluate(d.VertexOffset+i*cols+j, table)
			radial := v.Sub(center)
			if got := radial.Len(); math.Abs(float64(got-d.Radius)) > 1e-4 {
				t.Errorf("row %d col %d: circumradius %v, want %v", i, j, got, d.Radius)
			}
			if got := radial.Dot(axis); math.Abs(float64(got)) > 1e-4 {
				t.Errorf("row %d col %d: radial offset not perpendicular to axis (dot=%v)", i, j, got)
			}
		}

		// Seam column repeats column zero's position.
		first := Evaluate(d.VertexOffset+i*cols, table)
		seam := Evaluate(d.VertexOffset+i*cols+d.RadialSegments, table)
		if !vecNear(first, seam, 1e-4) {
			t.Errorf("row %d: seam %v != column 0 %v", i, seam, first)
		}
	}
}

// Every global index must resolve to exactly one descriptor, and the
// (row, column) decomposition must round-trip back to the global index.
func TestIndexResolutionRoundTrip(t *testing.T) {
	params := []cable.Params{
		{Segments: 1, RadialSegments: 3, Radius: 1},
		{Segments: 5, RadialSegments: 9, Radius: 1},
		{Segments: 2, RadialSegments: 4, Radius: 1},
	}
	r := sealedRegistry(t, params, make([]cable.Pose, len(params)))
	table := r.Table()

	for k := 0; k < r.TotalVertexCount(); k++ {
		owners := 0
		for ci := range table {
			d := &table[ci]
			if k >= d.VertexOffset && k < d.VertexOffset+d.VertexCount() {
				owners++
				cols := d.RadialSegments + 1
				local := k - d.VertexOffset
				i, j := local/cols, local%cols
				if back := d.VertexOffset + i*cols + j; back != k {
					t.Errorf("index %d: round trip gave %d", k, back)
				}
			}
		}
		if owners != 1 {
			t.Errorf("index %d: %d owners, want exactly 1", k, owners)
		}
	}
}

func TestEvaluateDegenerateCableNoNaN(t *testing.T) {
	p := mgl32.Vec3{3, 3, 3}
	r := sealedRegistry(t,
		[]cable.Params{
			{Segments: 4, RadialSegments: 6, Radius: 0.5},
			{Segments: 4, RadialSegments: 6, Radius: 0.5},
		},
		[]cable.Pose{
			{PositionA: p, PositionB: p},
			{PositionA: mgl32.Vec3{-1, 0, 0}, PositionB: mgl32.Vec3{-1, 0, 0}},
		},
	)
	table := r.Table()

	for k := 0; k < r.TotalVertexCount(); k++ {
		v := Evaluate(k, table)
		for c := 0; c < 3; c++ {
			if math.IsNaN(float64(v[c])) {
				t.Fatalf("index %d: NaN component in %v", k, v)
			}
		}
	}
}

func TestResolveOwnerPanicsOnBrokenLayout(t *testing.T) {
	table := []cable.Descriptor{
		{Segments: 1, RadialSegments: 3, VertexOffset: 0},
	}
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for index outside all regions")
		}
	}()
	// Region size is 8; index 8 is unowned.
	resolveOwner(8, table)
}
