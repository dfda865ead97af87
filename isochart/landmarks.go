package isochart

import (
	"math"

	"github.com/unixpickle/essentials"

	"github.com/uvatlas-go/uvatlas/geodesic"
	"github.com/uvatlas-go/uvatlas/mesh"
)

// SelectLandmarks picks the top L vertices by importanceOrder (higher
// is more important), with L at least MinLandmarkNumber. Vertices
// flagged in mustReserve are always included, regardless of rank. The
// two lowest-index landmarks are then swapped for the pair that is
// geodesically farthest apart among the selected set, so the
// embedding has well-separated poles to seed MDS.
//
// importanceOrder and mustReserve are indexed by local vertex id in m;
// if importanceOrder is nil, every vertex is treated as equally
// important and the first minCount vertex ids (minCount raised to at
// least MinLandmarkNumber) are used.
func SelectLandmarks(m *mesh.Mesh, importanceOrder []float64, mustReserve []bool, minCount int, engine geodesic.Engine) []mesh.VertexID {
	minCount = essentials.MaxInt(minCount, MinLandmarkNumber)
	n := m.NumVertices()
	minCount = essentials.MinInt(minCount, n)

	priorities := make([]float64, n)
	ids := make([]mesh.VertexID, n)
	for i := 0; i < n; i++ {
		if importanceOrder != nil {
			priorities[i] = importanceOrder[i]
		}
		ids[i] = mesh.VertexID(i)
	}
	essentials.VoodooSort(priorities, func(i, j int) bool {
		if priorities[i] != priorities[j] {
			return priorities[i] > priorities[j]
		}
		return ids[i] < ids[j]
	}, ids)

	selected := map[mesh.VertexID]bool{}
	var landmarks []mesh.VertexID
	if mustReserve != nil {
		for v, reserve := range mustReserve {
			if reserve {
				landmarks = append(landmarks, mesh.VertexID(v))
				selected[mesh.VertexID(v)] = true
			}
		}
	}
	for _, v := range ids {
		if len(landmarks) >= minCount {
			break
		}
		if selected[v] {
			continue
		}
		landmarks = append(landmarks, v)
		selected[v] = true
	}

	if len(landmarks) < 2 || engine == nil {
		return landmarks
	}
	reorderFarthestPair(m, landmarks, engine)
	return landmarks
}

// reorderFarthestPair swaps landmarks so that landmarks[0] and
// landmarks[1] are the geodesically farthest pair in the set,
// following the partitioner's need for two well-separated poles.
func reorderFarthestPair(m *mesh.Mesh, landmarks []mesh.VertexID, engine geodesic.Engine) {
	best := struct {
		i, j int
		dist float64
	}{-1, -1, -1}

	distCache := make(map[mesh.VertexID][]float64, len(landmarks))
	for _, v := range landmarks {
		distCache[v] = engine.Distances(m, v)
	}

	for i := 0; i < len(landmarks); i++ {
		di := distCache[landmarks[i]]
		for j := i + 1; j < len(landmarks); j++ {
			d := di[landmarks[j]]
			if math.IsInf(d, 1) {
				continue
			}
			if d > best.dist {
				best.i, best.j, best.dist = i, j, d
			}
		}
	}
	if best.i < 0 {
		return
	}
	landmarks[0], landmarks[best.i] = landmarks[best.i], landmarks[0]
	if best.j == 0 {
		best.j = best.i
	}
	landmarks[1], landmarks[best.j] = landmarks[best.j], landmarks[1]
}
