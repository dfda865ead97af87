package isochart

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/uvatlas-go/uvatlas/mesh"
)

func singleFaceChart(t *testing.T, m *mesh.Mesh, f mesh.FaceID) *mesh.Chart {
	t.Helper()
	c, err := mesh.ExtractChart(m, []mesh.FaceID{f})
	require.NoError(t, err)
	return c
}

func TestChartNodeIsLeafWithoutChildren(t *testing.T) {
	m := flatGridMesh(t, 2)
	node := newChartNode(singleFaceChart(t, m, 0), ShapePlane, 1.0)
	require.True(t, node.IsLeaf())
	require.Equal(t, 1, node.Count())
	require.Len(t, node.FlattenLeaves(), 1)
}

func TestChartNodeFlattenLeavesDepthFirst(t *testing.T) {
	m := flatGridMesh(t, 2)
	root := newChartNode(singleFaceChart(t, m, 0), ShapeGeneral, 2.0)
	left := newChartNode(singleFaceChart(t, m, 1), ShapePlane, 0.5)
	right := newChartNode(singleFaceChart(t, m, 2), ShapePlane, 0.6)
	root.Children[0] = left
	root.Children[1] = right

	require.False(t, root.IsLeaf())
	leaves := root.FlattenLeaves()
	require.Equal(t, []*ChartNode{left, right}, leaves)
	require.Equal(t, 3, root.Count())
}
