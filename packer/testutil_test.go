package packer

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/uvatlas-go/uvatlas/isochart"
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

// parameterizedChart extracts the whole of m as a single chart and runs
// the shape-preserving parameterizer over it, giving a chart with a
// real (u,v) layout ready to hand to Pack.
func parameterizedChart(t *testing.T, m *mesh.Mesh) *mesh.Chart {
	t.Helper()
	faces := make([]mesh.FaceID, m.NumFaces())
	for i := range faces {
		faces[i] = mesh.FaceID(i)
	}
	chart, err := mesh.ExtractChart(m, faces)
	require.NoError(t, err)
	require.NoError(t, isochart.ParameterizeChart(chart, isochart.DefaultOptions()))
	return chart
}
