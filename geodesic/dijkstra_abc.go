package geodesic

import (
	"container/heap"
	"math"

	"github.com/uvatlas-go/uvatlas/mesh"
)

// ApproximateEngine computes geodesic distance with Dijkstra over mesh
// edges, augmented by a Kimmel-Sethian style "ABC" triangle-fan update:
// whenever two corners of a face have already been finalized, the
// third corner is also relaxed by unfolding the face flat, which gives
// a noticeably straighter (and shorter) estimate than edge-hopping
// alone for anything but a very fine mesh.
//
// The unfolding step here assumes the front arrives linearly in time
// along the known edge (distance interpolates linearly from A to B)
// rather than solving the full nonlinear eikonal update; this is a
// standard simplification (see triangleUpdate) that is exact when the
// two known corners were reached by comparable paths and degrades
// gracefully to a direct two-point update otherwise.
type ApproximateEngine struct{}

type distHeapItem struct {
	vertex mesh.VertexID
	dist   float64
}

type distHeap []distHeapItem

func (h distHeap) Len() int            { return len(h) }
func (h distHeap) Less(i, j int) bool   { return h[i].dist < h[j].dist }
func (h distHeap) Swap(i, j int)        { h[i], h[j] = h[j], h[i] }
func (h *distHeap) Push(x interface{})  { *h = append(*h, x.(distHeapItem)) }
func (h *distHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// Distances implements Engine.
func (e *ApproximateEngine) Distances(m *mesh.Mesh, source mesh.VertexID) []float64 {
	n := m.NumVertices()
	dist := make([]float64, n)
	finalized := make([]bool, n)
	for i := range dist {
		dist[i] = math.Inf(1)
	}
	dist[source] = 0

	h := &distHeap{{vertex: source, dist: 0}}
	heap.Init(h)

	for h.Len() > 0 {
		item := heap.Pop(h).(distHeapItem)
		b := item.vertex
		if finalized[b] {
			continue
		}
		if item.dist > dist[b] {
			continue
		}
		finalized[b] = true

		for _, f := range m.VertexFaces(b) {
			face := m.Faces[f]
			var others []mesh.VertexID
			for _, v := range face.Vertices {
				if v != b {
					others = append(others, v)
				}
			}
			if len(others) != 2 {
				continue
			}
			x, y := others[0], others[1]

			e.relaxEdge(m, dist, finalized, b, x, h)
			e.relaxEdge(m, dist, finalized, b, y, h)

			if finalized[x] && !finalized[y] {
				e.relaxTriangle(m, dist, finalized, x, b, y, h)
			}
			if finalized[y] && !finalized[x] {
				e.relaxTriangle(m, dist, finalized, y, b, x, h)
			}
		}
	}
	return dist
}

func (e *ApproximateEngine) relaxEdge(m *mesh.Mesh, dist []float64, finalized []bool, b, c mesh.VertexID, h *distHeap) {
	if finalized[c] {
		return
	}
	d := dist[b] + m.Vertices[b].Position.Dist(m.Vertices[c].Position)
	if d < dist[c] {
		dist[c] = d
		heap.Push(h, distHeapItem{vertex: c, dist: d})
	}
}

// relaxTriangle attempts an ABC update of vertex c using the already
// finalized a and b corners of the same face.
func (e *ApproximateEngine) relaxTriangle(m *mesh.Mesh, dist []float64, finalized []bool, a, b, c mesh.VertexID, h *distHeap) {
	if finalized[c] {
		return
	}
	pa := m.Vertices[a].Position
	pb := m.Vertices[b].Position
	pc := m.Vertices[c].Position
	edgeAB := pa.Dist(pb)
	edgeAC := pa.Dist(pc)
	edgeBC := pb.Dist(pc)

	tc, ok := triangleUpdate(edgeAB, edgeAC, edgeBC, dist[a], dist[b])
	if !ok || tc >= dist[c] {
		return
	}
	dist[c] = tc
	heap.Push(h, distHeapItem{vertex: c, dist: tc})
}

// triangleUpdate estimates the arrival distance at C given known
// distances tA, tB at A and B and the triangle's edge lengths (ab =
// |AB|, ac = |AC|, bc = |BC|), assuming the front's arrival time
// interpolates linearly along AB. Returns ok=false when the linear
// interpolation point would fall outside segment AB (no causal
// unfolding solution), in which case the caller should rely on the
// direct two-point update instead.
func triangleUpdate(ab, ac, bc, tA, tB float64) (float64, bool) {
	if ab <= 1e-12 {
		return 0, false
	}
	cosA := (ac*ac + ab*ab - bc*bc) / (2 * ac * ab)
	cosA = math.Max(-1, math.Min(1, cosA))
	sinA := math.Sqrt(1 - cosA*cosA)

	xc := ac * cosA
	yc := ac * sinA

	u := tB - tA
	denom := ab*ab - u*u
	if denom <= 1e-12 {
		return 0, false
	}
	w := u * yc / math.Sqrt(denom)
	s := (xc - w) / ab
	if s < 0 || s > 1 {
		return 0, false
	}
	g := math.Sqrt(w*w + yc*yc)
	return (1-s)*tA + s*tB + g, true
}
