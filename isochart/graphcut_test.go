package isochart

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/uvatlas-go/uvatlas/mesh"
)

func TestRefineFaceLabelsAgreesWhenSeedIsUnanimous(t *testing.T) {
	m := flatGridMesh(t, 3)
	seed := make([]int, m.NumFaces())
	refined, err := RefineFaceLabels(m, seed)
	require.NoError(t, err)
	for _, l := range refined {
		require.Equal(t, 0, l, "with every face seeded to label 0 the cut should leave them all on the source side")
	}
}

func TestRefineFaceLabelsSeparatesTwoHalves(t *testing.T) {
	m := flatGridMesh(t, 6)
	seed := make([]int, m.NumFaces())
	for fi := range m.Faces {
		tri := m.FaceVertices(mesh.FaceID(fi))
		cx := (tri[0].X + tri[1].X + tri[2].X) / 3
		if cx >= 3 {
			seed[fi] = 1
		}
	}

	refined, err := RefineFaceLabels(m, seed)
	require.NoError(t, err)

	// The refined cut should still broadly agree with the seed split,
	// even though it may move a handful of faces near the boundary to
	// follow a cheaper dihedral-weighted edge.
	agree := 0
	for fi := range refined {
		if refined[fi] == seed[fi] {
			agree++
		}
	}
	require.Greater(t, agree, len(refined)/2)
}

func TestRefineFaceLabelsConstrainedCollapsesWhenTheOnlySeparatingEdgeIsBlocked(t *testing.T) {
	// A single quad (two triangles sharing one edge) has exactly one
	// possible separating edge between them. Blocking it should make
	// the cheaper choice "give up on separating" rather than pay the
	// blocked edge's capacity, so both faces end up on the same side.
	m := flatGridMesh(t, 1)
	require.Equal(t, 2, m.NumFaces())
	seed := []int{0, 1}

	var shared mesh.Edge
	found := false
	for side, adj := range m.Faces[0].Adjacent {
		if adj == mesh.FaceID(1) {
			a, b := m.Faces[0].Vertices[side], m.Faces[0].Vertices[(side+1)%3]
			shared = mesh.NewEdge(a, b)
			found = true
		}
	}
	require.True(t, found, "the two triangles of a single quad must share an edge")

	refined, err := RefineFaceLabelsConstrained(m, seed, map[mesh.Edge]bool{shared: true})
	require.NoError(t, err)
	require.Equal(t, refined[0], refined[1],
		"with the only separating edge blocked, collapsing to one label is cheaper than crossing it")
	require.False(t, cutCrossesNonSplittable(m, refined))
}
