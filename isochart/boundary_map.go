package isochart

import (
	"math"
	"sort"

	"github.com/uvatlas-go/uvatlas/geom2"
	"github.com/uvatlas-go/uvatlas/mesh"
)

// fixedBoundary maps a chart's single boundary loop to the unit circle
// by arc length, following CircleBoundary. When the chart has no
// boundary loop at all (a closed sub-chart, topologically a sphere),
// the three vertices of an arbitrary face stand in for the loop
// instead: removing one face from a genus-0 closed surface always
// leaves a disc, so pinning that face's vertices as a tiny boundary
// triangle and solving the rest of the system as usual reproduces the
// same flattening without any mesh surgery to actually open a seam.
func fixedBoundary(sub *mesh.Mesh) map[mesh.VertexID]geom2.Coord {
	loops := sub.BoundaryLoops()
	var loop []mesh.VertexID
	if len(loops) > 0 {
		loop = loops[0]
	} else if sub.NumFaces() > 0 {
		loop = sub.Faces[0].Vertices[:]
	} else {
		return map[mesh.VertexID]geom2.Coord{}
	}

	positions := make([]mesh.Coord3D, len(loop))
	for i, v := range loop {
		positions[i] = sub.Vertices[v].Position
	}
	total := 0.0
	for i := range positions {
		total += positions[i].Dist(positions[(i+1)%len(positions)])
	}
	if total == 0 {
		total = 1
	}

	out := make(map[mesh.VertexID]geom2.Coord, len(loop))
	cur := 0.0
	out[loop[0]] = geom2.XY(1, 0)
	for i := range positions {
		cur += positions[i].Dist(positions[(i+1)%len(positions)])
		theta := 2 * math.Pi * cur / total
		out[loop[(i+1)%len(loop)]] = geom2.XY(math.Cos(theta), math.Sin(theta))
	}
	return out
}

// shapePreservingWeights computes Floater's shape-preserving weights
// (Floater, 1997, section on "shape-preserving parametrization") for
// every non-boundary vertex of sub, following the
// localParameterizationWeights/orderedNeighbors pair's structure from
// unixpickle/model3d's parameterization code.
func shapePreservingWeights(sub *mesh.Mesh, boundary map[mesh.VertexID]geom2.Coord) (weights map[[2]mesh.VertexID]float64, rings map[mesh.VertexID][]mesh.VertexID) {
	weights = map[[2]mesh.VertexID]float64{}
	rings = map[mesh.VertexID][]mesh.VertexID{}
	for v := 0; v < sub.NumVertices(); v++ {
		center := mesh.VertexID(v)
		if _, ok := boundary[center]; ok {
			continue
		}
		neighbors, w := localParameterizationWeights(sub, center)
		rings[center] = neighbors
		for i, n := range neighbors {
			weights[[2]mesh.VertexID{center, n}] = w[i]
		}
	}
	return weights, rings
}

// localParameterizationWeights follows "Free-Form Shape Design Using
// Triangulated Surfaces" (Floater): it builds a local planar fan
// around center by its neighbors' accumulated angles, then expresses
// the origin (center's own projection) as barycentric coordinates of
// the triangle opposite each neighbor, averaging the contributions
// into per-neighbor weights.
func localParameterizationWeights(sub *mesh.Mesh, center mesh.VertexID) ([]mesh.VertexID, []float64) {
	ring := orderedNeighborRing(sub, center)
	if len(ring) > 1 && ring[len(ring)-1] == ring[0] {
		// A closed fan's walk ends on the neighbor it started from; keep
		// each neighbor once so its weight is not counted twice.
		ring = ring[:len(ring)-1]
	}
	n := len(ring)
	centerPos := sub.Vertices[center].Position

	angles := make([]float64, n)
	total := 0.0
	for i := 0; i < n; i++ {
		p1 := sub.Vertices[ring[i]].Position.Sub(centerPos).Normalize()
		p2 := sub.Vertices[ring[(i+1)%n]].Position.Sub(centerPos).Normalize()
		angles[i] = total
		cos := p1.Dot(p2)
		if cos > 1 {
			cos = 1
		} else if cos < -1 {
			cos = -1
		}
		total += math.Acos(cos)
	}
	if total == 0 {
		total = 1
	}
	for i := range angles {
		angles[i] *= 2 * math.Pi / total
	}

	planar := make([]geom2.Coord, n)
	for i, theta := range angles {
		dist := sub.Vertices[ring[i]].Position.Dist(centerPos)
		planar[i] = geom2.XY(math.Cos(theta), math.Sin(theta)).Scale(dist)
	}

	bary := make([]float64, n)
	for i, theta := range angles {
		opposite := theta + math.Pi
		if opposite > 2*math.Pi {
			opposite -= 2 * math.Pi
		}
		idx := sort.SearchFloat64s(angles, opposite)
		i1 := (idx + n - 1) % n
		i2 := idx % n
		if i1 == i || i2 == i {
			continue
		}

		p1, p2, p3 := planar[i], planar[i1], planar[i2]
		m := geom2.NewMatrix2Columns(p2.Sub(p1), p3.Sub(p1))
		det := m.Det()
		if math.Abs(det) < 1e-14 {
			continue
		}
		b23 := m.MulColumnInv(geom2.Coord{}.Sub(p1), det)
		b2 := math.Max(0, math.Min(1, b23.X))
		b3 := math.Max(0, math.Min(1, b23.Y))
		b1 := math.Max(0, 1-(b2+b3))

		bary[i] += b1 / float64(n)
		bary[i1] += b2 / float64(n)
		bary[i2] += b3 / float64(n)
	}
	return ring, bary
}

// orderedNeighborRing walks the one-ring of center in rotational
// order by following shared-edge face adjacency, mirroring mesh's
// internal fan walk but kept local to this package since it only
// needs the exported Face fields.
func orderedNeighborRing(sub *mesh.Mesh, center mesh.VertexID) []mesh.VertexID {
	faces := sub.VertexFaces(center)
	if len(faces) == 0 {
		return nil
	}
	localIndex := func(f mesh.Face, v mesh.VertexID) int {
		for i, vv := range f.Vertices {
			if vv == v {
				return i
			}
		}
		return -1
	}

	start := faces[0]
	cur := start
	var ring []mesh.VertexID
	first := true
	for {
		f := sub.Faces[cur]
		i := localIndex(f, center)
		entry := f.Vertices[(i+2)%3]
		exit := f.Vertices[(i+1)%3]
		if first {
			ring = append(ring, entry)
			first = false
		}
		ring = append(ring, exit)
		next := f.Adjacent[i]
		if next == mesh.InvalidID || next == start {
			break
		}
		cur = next
		if len(ring) > len(faces)+1 {
			break
		}
	}
	return ring
}
