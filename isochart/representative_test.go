package isochart

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/uvatlas-go/uvatlas/geodesic"
	"github.com/uvatlas-go/uvatlas/mesh"
)

func TestAssignVertexLabelsSplitsByPole(t *testing.T) {
	m := flatGridMesh(t, 6)
	engine := &geodesic.ApproximateEngine{}
	landmarks := []mesh.VertexID{0, mesh.VertexID(m.NumVertices() - 1)}
	e := BuildEmbedding(m, landmarks, engine, nil)

	labels := AssignVertexLabels(m, e)
	require.Equal(t, 0, labels[0], "the first pole itself must be on side 0")
	require.Equal(t, 1, labels[m.NumVertices()-1], "the second pole itself must be on side 1")
}

func TestFaceLabelsFromVerticesMajorityVote(t *testing.T) {
	m := flatGridMesh(t, 2)
	vertexLabels := make([]int, m.NumVertices())
	for i := range vertexLabels {
		vertexLabels[i] = 1
	}
	faceLabels := FaceLabelsFromVertices(m, vertexLabels)
	for _, l := range faceLabels {
		require.Equal(t, 1, l)
	}

	vertexLabels[0] = 0
	faceLabels = FaceLabelsFromVertices(m, vertexLabels)
	require.Equal(t, 1, faceLabels[0], "2-of-3 vertices still label 1 outvotes a single 0")
}

func TestSmoothFaceLabelsRemovesIsland(t *testing.T) {
	m := flatGridMesh(t, 4)
	faceLabels := make([]int, m.NumFaces())
	faceLabels[0] = 1 // an isolated single-face island surrounded by 0s

	smoothed := SmoothFaceLabels(m, faceLabels, 4)
	require.Equal(t, 0, smoothed[0])
}

func TestLabelFaceSetsPartitionsAllFaces(t *testing.T) {
	faceLabels := []int{0, 1, 0, 1, 1}
	a, b := LabelFaceSets(faceLabels)
	require.ElementsMatch(t, []mesh.FaceID{0, 2}, a)
	require.ElementsMatch(t, []mesh.FaceID{1, 3, 4}, b)
}
