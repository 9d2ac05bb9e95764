package meshing

import "testing"

func TestBuildTubeTopologyCounts(t *testing.T) {
	cases := []struct{ segments, radial int }{
		{1, 3},
		{1, 4},
		{24, 10},
		{7, 16},
	}
	for _, tc := range cases {
		topo := BuildTubeTopology(tc.segments, tc.radial)

		vertexCount := (tc.segments + 2) * (tc.radial + 1)
		wantIndices := (tc.segments + 1) * tc.radial * 6
		if len(topo.Indices) != wantIndices {
			t.Errorf("(%d,%d): got %d indices, want %d", tc.segments, tc.radial, len(topo.Indices), wantIndices)
		}
		if len(topo.UVs) != vertexCount {
			t.Errorf("(%d,%d): got %d uvs, want %d", tc.segments, tc.radial, len(topo.UVs), vertexCount)
		}
		for _, idx := range topo.Indices {
			if int(idx) >= vertexCount {
				t.Fatalf("(%d,%d): index %d out of range %d", tc.segments, tc.radial, idx, vertexCount)
			}
		}
	}
}

// With consistent winding, no directed edge is used by two triangles; shared
// edges appear once in each direction.
func TestBuildTubeTopologyWinding(t *testing.T) {
	topo := BuildTubeTopology(5, 6)

	type edge struct{ a, b uint32 }
	seen := make(map[edge]int)
	for i := 0; i < len(topo.Indices); i += 3 {
		tri := topo.Indices[i : i+3]
		if tri[0] == tri[1] || tri[1] == tri[2] || tri[2] == tri[0] {
			t.Fatalf("degenerate triangle at %d: %v", i, tri)
		}
		for e := 0; e < 3; e++ {
			seen[edge{tri[e], tri[(e+1)%3]}]++
		}
	}
	for e, n := range seen {
		if n != 1 {
			t.Errorf("directed edge %v used %d times; winding is inconsistent", e, n)
		}
	}
}

func TestBuildTubeTopologyUVs(t *testing.T) {
	segments, radial := 3, 4
	topo := BuildTubeTopology(segments, radial)
	cols := radial + 1

	// u wraps 0..1 around the ring, v runs 0..1 along the cable.
	if got := topo.UVs[0]; got.X() != 0 || got.Y() != 0 {
		t.Errorf("first uv: got %v, want (0,0)", got)
	}
	last := topo.UVs[len(topo.UVs)-1]
	if last.X() != 1 || last.Y() != 1 {
		t.Errorf("last uv: got %v, want (1,1)", last)
	}
	for i := 0; i < segments+2; i++ {
		rowStart := topo.UVs[i*cols]
		rowEnd := topo.UVs[i*cols+radial]
		if rowStart.X() != 0 || rowEnd.X() != 1 {
			t.Errorf("row %d: u range [%v,%v], want [0,1]", i, rowStart.X(), rowEnd.X())
		}
		if rowStart.Y() != rowEnd.Y() {
			t.Errorf("row %d: v differs along ring: %v vs %v", i, rowStart.Y(), rowEnd.Y())
		}
	}
}
