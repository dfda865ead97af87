package isochart

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/uvatlas-go/uvatlas/mesh"
)

// flatGridMesh builds an n x n grid of unit quads (two triangles each)
// in the z=0 plane, a simple open disc with one boundary loop.
func flatGridMesh(t *testing.T, n int) *mesh.Mesh {
	t.Helper()
	var positions []mesh.Coord3D
	idx := func(i, j int) int { return i*(n+1) + j }
	for i := 0; i <= n; i++ {
		for j := 0; j <= n; j++ {
			positions = append(positions, mesh.XYZ(float64(i), float64(j), 0))
		}
	}
	var indices [][3]int
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			a, b, c, d := idx(i, j), idx(i+1, j), idx(i+1, j+1), idx(i, j+1)
			indices = append(indices, [3]int{a, b, c})
			indices = append(indices, [3]int{a, c, d})
		}
	}
	m, err := mesh.New(positions, indices)
	require.NoError(t, err)
	require.NoError(t, m.Build())
	return m
}

// cubeMesh builds a closed, watertight unit cube (12 triangles, zero
// boundary loops), used to exercise the virtual-boundary parameterizer
// path and shape classification on a non-disc topology.
func cubeMesh(t *testing.T) *mesh.Mesh {
	t.Helper()
	positions := []mesh.Coord3D{
		mesh.XYZ(0, 0, 0), mesh.XYZ(1, 0, 0), mesh.XYZ(1, 1, 0), mesh.XYZ(0, 1, 0),
		mesh.XYZ(0, 0, 1), mesh.XYZ(1, 0, 1), mesh.XYZ(1, 1, 1), mesh.XYZ(0, 1, 1),
	}
	quads := [][4]int{
		{0, 1, 2, 3},
		{4, 7, 6, 5},
		{0, 4, 5, 1},
		{1, 5, 6, 2},
		{2, 6, 7, 3},
		{3, 7, 4, 0},
	}
	var indices [][3]int
	for _, q := range quads {
		indices = append(indices, [3]int{q[0], q[1], q[2]})
		indices = append(indices, [3]int{q[0], q[2], q[3]})
	}
	m, err := mesh.New(positions, indices)
	require.NoError(t, err)
	require.NoError(t, m.Build())
	return m
}
