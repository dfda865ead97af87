package isochart

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/uvatlas-go/uvatlas/mesh"
)

func TestOptimizeStretchKeepsBoundaryFixed(t *testing.T) {
	m := flatGridMesh(t, 6)
	faces := make([]mesh.FaceID, m.NumFaces())
	for i := range faces {
		faces[i] = mesh.FaceID(i)
	}
	chart, err := mesh.ExtractChart(m, faces)
	require.NoError(t, err)
	require.NoError(t, ParameterizeBarycentric(chart))

	boundary := fixedBoundary(chart.Mesh())
	before := append([]mesh.Coord2(nil), chart.UV...)

	OptimizeStretch(chart, BoundaryRelaxationSeed)

	for v := range boundary {
		require.Equal(t, before[v], chart.UV[v], "boundary vertices must not move during relaxation")
	}
}

func TestOptimizeStretchDoesNotIncreaseOverallStretch(t *testing.T) {
	m := flatGridMesh(t, 6)
	faces := make([]mesh.FaceID, m.NumFaces())
	for i := range faces {
		faces[i] = mesh.FaceID(i)
	}
	chart, err := mesh.ExtractChart(m, faces)
	require.NoError(t, err)
	require.NoError(t, ParameterizeBarycentric(chart))

	before := ChartStretch(chart)
	OptimizeStretch(chart, BoundaryRelaxationSeed)
	after := ChartStretch(chart)

	require.LessOrEqual(t, after, before+1e-6)
}
