package mesh

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func cubeMesh(t *testing.T) *Mesh {
	t.Helper()
	positions := []Coord3D{
		XYZ(0, 0, 0), XYZ(1, 0, 0), XYZ(1, 1, 0), XYZ(0, 1, 0),
		XYZ(0, 0, 1), XYZ(1, 0, 1), XYZ(1, 1, 1), XYZ(0, 1, 1),
	}
	quads := [][4]int{
		{0, 1, 2, 3}, // bottom
		{4, 7, 6, 5}, // top
		{0, 4, 5, 1}, // front
		{1, 5, 6, 2}, // right
		{2, 6, 7, 3}, // back
		{3, 7, 4, 0}, // left
	}
	var indices [][3]int
	for _, q := range quads {
		indices = append(indices, [3]int{q[0], q[1], q[2]})
		indices = append(indices, [3]int{q[0], q[2], q[3]})
	}
	m, err := New(positions, indices)
	require.NoError(t, err)
	return m
}

func TestCubeIsManifoldClosed(t *testing.T) {
	m := cubeMesh(t)
	require.True(t, m.IsManifold())
	require.NoError(t, m.Build())
	require.Empty(t, m.BoundaryLoops())
	require.Empty(t, m.BowtieVertices())
}

func TestCubeFaceArea(t *testing.T) {
	m := cubeMesh(t)
	require.NoError(t, m.Build())
	for f := range m.Faces {
		area := m.FaceArea(FaceID(f))
		require.InDelta(t, 0.5, area, 1e-9)
	}
}

func triangleStrip(t *testing.T, n int) *Mesh {
	t.Helper()
	var positions []Coord3D
	for i := 0; i <= n; i++ {
		positions = append(positions, XYZ(float64(i), 0, 0))
		positions = append(positions, XYZ(float64(i), 1, 0))
	}
	var indices [][3]int
	for i := 0; i < n; i++ {
		a, b := 2*i, 2*i+1
		c, d := 2*(i+1), 2*(i+1)+1
		indices = append(indices, [3]int{a, b, c})
		indices = append(indices, [3]int{b, d, c})
	}
	m, err := New(positions, indices)
	require.NoError(t, err)
	return m
}

func TestOpenStripHasOneBoundaryLoop(t *testing.T) {
	m := triangleStrip(t, 3)
	require.NoError(t, m.Build())
	loops := m.BoundaryLoops()
	require.Len(t, loops, 1)

	total := 0
	for _, f := range m.Faces {
		for _, a := range f.Adjacent {
			if a == InvalidID {
				total++
			}
		}
	}
	require.Equal(t, total, len(loops[0]))
}

func TestFromTriangleSoupDedups(t *testing.T) {
	a, b, c := XYZ(0, 0, 0), XYZ(1, 0, 0), XYZ(0, 1, 0)
	d := XYZ(1, 1, 0)
	soup := []Coord3D{a, b, c, b, d, c}
	m, err := FromTriangleSoup(soup)
	require.NoError(t, err)
	require.Equal(t, 4, m.NumVertices())
	require.NoError(t, m.Build())
	require.Len(t, m.BoundaryLoops(), 1)
}

func TestBowtieVertexIsDetectedAndSplit(t *testing.T) {
	// Two triangle fans sharing only their apex vertex: a classic
	// bowtie. Fan A: (0,1,2) and (0,2,3). Fan B: (0,4,5) and (0,5,6),
	// disjoint positions from fan A except the shared apex.
	positions := []Coord3D{
		XYZ(0, 0, 0),  // 0: apex
		XYZ(1, 0, 0),  // 1
		XYZ(1, 1, 0),  // 2
		XYZ(0, 1, 0),  // 3
		XYZ(-1, 0, 0), // 4
		XYZ(-1, -1, 0),
		XYZ(0, -1, 0),
	}
	indices := [][3]int{
		{0, 1, 2},
		{0, 2, 3},
		{0, 4, 5},
		{0, 5, 6},
	}
	m, err := New(positions, indices)
	require.NoError(t, err)
	require.NoError(t, m.Build())

	bowties := m.BowtieVertices()
	require.Len(t, bowties, 1)
	require.Equal(t, VertexID(0), bowties[0])

	n := m.SplitBowties()
	require.Equal(t, 1, n)
	require.Empty(t, m.BowtieVertices())
	require.Equal(t, 8, m.NumVertices())
}

func TestDegenerateFaceRejected(t *testing.T) {
	positions := []Coord3D{XYZ(0, 0, 0), XYZ(1, 0, 0), XYZ(1, 1, 0)}
	_, err := New(positions, [][3]int{{0, 0, 1}})
	require.ErrorIs(t, err, ErrDegenerateFace)
}

func TestExtractChartRoundTrips(t *testing.T) {
	m := cubeMesh(t)
	require.NoError(t, m.Build())
	faces := []FaceID{0, 1} // bottom face's two triangles
	chart, err := ExtractChart(m, faces)
	require.NoError(t, err)
	require.Equal(t, 4, chart.Mesh().NumVertices())
	require.Equal(t, 2, chart.Mesh().NumFaces())
	require.Len(t, chart.Mesh().BoundaryLoops(), 1)
}

func TestConnectedComponents(t *testing.T) {
	m := cubeMesh(t)
	require.NoError(t, m.Build())
	comps := m.ConnectedComponents()
	require.Len(t, comps, 1)
	require.Len(t, comps[0], 12)
}

func TestReduceToSingleBoundaryIsNoOpOnSingleLoop(t *testing.T) {
	// A single open strip already has exactly one boundary loop.
	m := triangleStrip(t, 1)
	require.NoError(t, m.Build())
	loops := m.BoundaryLoops()
	require.Len(t, loops, 1) // a single strip only has one loop already

	// With at most one loop there is nothing to join, so
	// ReduceToSingleBoundary makes no cuts.
	cuts, err := m.ReduceToSingleBoundary()
	require.NoError(t, err)
	require.Equal(t, 0, cuts)
}

func TestRepairRemovesDegenerateFacesAndSplitsBowties(t *testing.T) {
	positions := []Coord3D{
		XYZ(0, 0, 0),
		XYZ(1, 0, 0),
		XYZ(1, 1, 0),
		XYZ(2, 2, 0), // used to form a sliver
	}
	indices := [][3]int{
		{0, 1, 2},
		{0, 1, 3}, // near-zero area sliver only if collinear; here it's valid
	}
	m, err := New(positions, indices)
	require.NoError(t, err)
	removed, split, err := m.Repair(1e-12)
	require.NoError(t, err)
	require.Equal(t, 0, removed)
	require.Equal(t, 0, split)
}
