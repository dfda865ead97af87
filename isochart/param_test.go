package isochart

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/uvatlas-go/uvatlas/mesh"
)

func TestParameterizeBarycentricProducesNonOverlappingDisc(t *testing.T) {
	m := flatGridMesh(t, 5)
	faces := make([]mesh.FaceID, m.NumFaces())
	for i := range faces {
		faces[i] = mesh.FaceID(i)
	}
	chart, err := mesh.ExtractChart(m, faces)
	require.NoError(t, err)

	require.NoError(t, ParameterizeBarycentric(chart))
	require.Len(t, chart.UV, chart.Mesh().NumVertices())
	require.False(t, HasOverlap(chart))
}

func TestParameterizeConformalProducesNonOverlappingDisc(t *testing.T) {
	m := flatGridMesh(t, 5)
	faces := make([]mesh.FaceID, m.NumFaces())
	for i := range faces {
		faces[i] = mesh.FaceID(i)
	}
	chart, err := mesh.ExtractChart(m, faces)
	require.NoError(t, err)

	require.NoError(t, ParameterizeConformal(chart))
	require.False(t, HasOverlap(chart))
}

func TestParameterizeIsomapHandlesClosedChart(t *testing.T) {
	m := cubeMesh(t)
	faces := make([]mesh.FaceID, m.NumFaces())
	for i := range faces {
		faces[i] = mesh.FaceID(i)
	}
	chart, err := mesh.ExtractChart(m, faces)
	require.NoError(t, err)

	opts := DefaultOptions()
	require.NoError(t, ParameterizeIsomap(chart, opts))
	require.Len(t, chart.UV, chart.Mesh().NumVertices())
}

func TestParameterizeChartFallsThroughToAValidLayout(t *testing.T) {
	m := flatGridMesh(t, 4)
	faces := make([]mesh.FaceID, m.NumFaces())
	for i := range faces {
		faces[i] = mesh.FaceID(i)
	}
	chart, err := mesh.ExtractChart(m, faces)
	require.NoError(t, err)

	opts := DefaultOptions()
	require.NoError(t, ParameterizeChart(chart, opts))
	require.False(t, HasOverlap(chart))
}

func TestHasOverlapDetectsInconsistentWinding(t *testing.T) {
	m := flatGridMesh(t, 3)
	faces := make([]mesh.FaceID, m.NumFaces())
	for i := range faces {
		faces[i] = mesh.FaceID(i)
	}
	chart, err := mesh.ExtractChart(m, faces)
	require.NoError(t, err)
	require.NoError(t, ParameterizeBarycentric(chart))
	require.False(t, HasOverlap(chart))

	// Drag an interior vertex far outside the boundary loop to fold its
	// incident triangles over their neighbors, flipping their winding.
	interior := -1
	boundary := fixedBoundary(chart.Mesh())
	for v := 0; v < chart.Mesh().NumVertices(); v++ {
		if _, onBoundary := boundary[mesh.VertexID(v)]; !onBoundary {
			interior = v
			break
		}
	}
	require.GreaterOrEqual(t, interior, 0, "a grid this size must have an interior vertex")
	chart.UV[interior] = mesh.Coord2{U: 1000, V: -1000}
	require.True(t, HasOverlap(chart))
}

func TestHasOverlapOnEmptyUVIsTrue(t *testing.T) {
	require.True(t, HasOverlap(&mesh.Chart{}))
}
