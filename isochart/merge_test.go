package isochart

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/uvatlas-go/uvatlas/mesh"
)

func leafOverFaces(t *testing.T, m *mesh.Mesh, opts Options, faces []mesh.FaceID) *ChartNode {
	t.Helper()
	c, err := mesh.ExtractChart(m, faces)
	require.NoError(t, err)
	require.NoError(t, ParameterizeChart(c, opts))
	return newChartNode(c, ShapePlane, ChartStretch(c))
}

func TestMergeSmallChartsFoldsBelowMinFaceCount(t *testing.T) {
	m := flatGridMesh(t, 4)
	opts := DefaultOptions()
	opts.MinChartFaceCount = 4
	opts.LimitMergeStretch = false

	// Two adjacent single-triangle leaves (faces 0 and 1 share an edge
	// in flatGridMesh's a,b,c / a,c,d quad split) are both far below
	// MinChartFaceCount and should be merged into one.
	leaves := []*ChartNode{
		leafOverFaces(t, m, opts, []mesh.FaceID{0}),
		leafOverFaces(t, m, opts, []mesh.FaceID{1}),
	}
	rest := make([]mesh.FaceID, 0, m.NumFaces()-2)
	for fi := 2; fi < m.NumFaces(); fi++ {
		rest = append(rest, mesh.FaceID(fi))
	}
	leaves = append(leaves, leafOverFaces(t, m, opts, rest))

	merged, err := MergeSmallCharts(m, leaves, opts)
	require.NoError(t, err)
	require.Len(t, merged, 1, "the two slivers merge into the big remainder chart")
}

func TestMergeSmallChartsIsNoOpWhenAllLeavesAreBigEnough(t *testing.T) {
	m := flatGridMesh(t, 4)
	opts := DefaultOptions()
	opts.MinChartFaceCount = 1

	faces := make([]mesh.FaceID, m.NumFaces())
	for i := range faces {
		faces[i] = mesh.FaceID(i)
	}
	leaves := []*ChartNode{leafOverFaces(t, m, opts, faces)}

	merged, err := MergeSmallCharts(m, leaves, opts)
	require.NoError(t, err)
	require.Len(t, merged, 1)
}

func TestAdjacentLeafFindsFaceSharingNeighbor(t *testing.T) {
	m := flatGridMesh(t, 4)
	faceOwner := map[mesh.FaceID]int{0: 0, 1: 1}
	leaf := leafOverFaces(t, m, DefaultOptions(), []mesh.FaceID{0})

	j := adjacentLeaf(m, leaf, 0, faceOwner)
	require.Equal(t, 1, j)
}
