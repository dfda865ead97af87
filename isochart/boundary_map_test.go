package isochart

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/uvatlas-go/uvatlas/mesh"
)

func TestFixedBoundaryLiesOnUnitCircle(t *testing.T) {
	m := flatGridMesh(t, 5)
	boundary := fixedBoundary(m)
	require.NotEmpty(t, boundary)
	for _, p := range boundary {
		require.InDelta(t, 1.0, math.Hypot(p.X, p.Y), 1e-9)
	}
}

func TestFixedBoundaryOnClosedMeshUsesOneFaceAsStandIn(t *testing.T) {
	m := cubeMesh(t)
	require.Empty(t, m.BoundaryLoops())

	boundary := fixedBoundary(m)
	require.Len(t, boundary, 3, "a closed mesh pins exactly one face's three vertices")
}

func TestShapePreservingWeightsSumToOnePerVertex(t *testing.T) {
	m := flatGridMesh(t, 5)
	boundary := fixedBoundary(m)
	weights, rings := shapePreservingWeights(m, boundary)

	for center, neighbors := range rings {
		var sum float64
		for _, n := range neighbors {
			sum += weights[[2]mesh.VertexID{center, n}]
		}
		require.InDelta(t, 1.0, sum, 1e-6, "Floater's shape-preserving weights form a convex combination")
	}
}

func TestOrderedNeighborRingCoversVertexFaces(t *testing.T) {
	const n = 4
	m := flatGridMesh(t, n)
	center := mesh.VertexID(2*(n+1) + 2) // an interior grid vertex
	ring := orderedNeighborRing(m, center)
	require.NotEmpty(t, ring)

	faces := m.VertexFaces(center)
	// A closed fan visits every incident face plus one repeated vertex
	// where the walk closes back on itself; an open fan visits exactly
	// one more vertex than it has faces.
	require.True(t, len(ring) == len(faces) || len(ring) == len(faces)+1)

	seen := map[mesh.VertexID]bool{}
	for _, v := range ring {
		seen[v] = true
	}
	require.GreaterOrEqual(t, len(seen), len(faces)-1)
}
