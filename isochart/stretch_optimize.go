package isochart

import (
	"math/rand"

	"github.com/unixpickle/splaytree"

	"github.com/uvatlas-go/uvatlas/geom2"
	"github.com/uvatlas-go/uvatlas/mesh"
)

// MaxRelaxationPasses bounds how many vertices OptimizeStretch will
// relax before giving up, as a multiple of the chart's non-boundary
// (relaxable) vertex count -
// a safety backstop against oscillation rather than a tuning knob
// expected to bind in practice.
const MaxRelaxationPasses = 20

// RelaxationJitter is the magnitude of the random nudge OptimizeStretch
// adds to a relaxed vertex's position, small enough not to undo the
// neighbor-average relaxation but enough to break exact ties that
// would otherwise make the same vertex keep re-queueing at identical
// priority.
const RelaxationJitter = 1e-5

// OptimizeStretch repeatedly relaxes the highest-signal-stretch
// non-boundary vertex of a chart's current UV toward the
// weighted average of its neighbors' UVs, following unixpickle/model3d's
// nextMeshDiscs priority-queue pattern (a splaytree ordered by a
// per-node score with a UID tiebreaker) but scoring relaxation
// candidates by local stretch instead of face co-planarity.
func OptimizeStretch(c *mesh.Chart, seed int) {
	sub := c.Mesh()
	n := sub.NumVertices()
	if n == 0 || len(c.UV) != n {
		return
	}
	boundary := fixedBoundary(sub)
	rings := make(map[mesh.VertexID][]mesh.VertexID, n)
	ringWeights := make(map[mesh.VertexID][]float64, n)
	for v := 0; v < n; v++ {
		vid := mesh.VertexID(v)
		if _, ok := boundary[vid]; ok {
			continue
		}
		neighbors, w := localParameterizationWeights(sub, vid)
		rings[vid] = neighbors
		ringWeights[vid] = w
	}

	uv := fromChartUV(c.UV)
	stretch := perVertexStretch(sub, uv)
	rng := rand.New(rand.NewSource(int64(seed)))

	tree := &splaytree.Tree[*stretchQueueNode]{}
	nodes := map[mesh.VertexID]*stretchQueueNode{}
	var uid int
	for vid := range rings {
		uid++
		node := &stretchQueueNode{Vertex: vid, Stretch: stretch[vid], UID: uid}
		tree.Insert(node)
		nodes[vid] = node
	}

	limit := MaxRelaxationPasses * len(rings)
	for pass := 0; pass < limit; pass++ {
		top := tree.Max()
		if top == nil || top.Stretch <= 1.0 {
			break
		}
		tree.Delete(top)
		delete(nodes, top.Vertex)

		var avg geom2.Coord
		for i, nb := range rings[top.Vertex] {
			avg = avg.Add(uv[nb].Scale(ringWeights[top.Vertex][i]))
		}
		avg = avg.Add(geom2.Coord{X: (rng.Float64() - 0.5) * RelaxationJitter, Y: (rng.Float64() - 0.5) * RelaxationJitter})
		uv[top.Vertex] = avg

		stretch = perVertexStretch(sub, uv)
		affected := append([]mesh.VertexID{top.Vertex}, rings[top.Vertex]...)
		for _, vid := range affected {
			old, ok := nodes[vid]
			if !ok {
				continue
			}
			tree.Delete(old)
			uid++
			fresh := &stretchQueueNode{Vertex: vid, Stretch: stretch[vid], UID: uid}
			tree.Insert(fresh)
			nodes[vid] = fresh
		}
	}
	c.UV = toChartUV(uv)
}

type stretchQueueNode struct {
	Stretch float64
	UID     int
	Vertex  mesh.VertexID
}

func (n *stretchQueueNode) Compare(other *stretchQueueNode) int {
	if n.Stretch < other.Stretch {
		return -1
	} else if n.Stretch > other.Stretch {
		return 1
	}
	if n.UID < other.UID {
		return -1
	} else if n.UID > other.UID {
		return 1
	}
	return 0
}

// perVertexStretch area-weights each vertex's incident-face signal
// stretch, the same accumulation unixpickle/model3d's vertexStretches
// uses to decide which vertices deserve tighter weights on the next
// solve - here it drives relaxation order instead of edge-weight
// reshaping.
func perVertexStretch(sub *mesh.Mesh, uv []geom2.Coord) []float64 {
	n := sub.NumVertices()
	numerator := make([]float64, n)
	denominator := make([]float64, n)
	for fi := 0; fi < sub.NumFaces(); fi++ {
		f := sub.Faces[fi]
		tri := sub.FaceVertices(mesh.FaceID(fi))
		faceUV := [3]geom2.Coord{uv[f.Vertices[0]], uv[f.Vertices[1]], uv[f.Vertices[2]]}
		area := sub.FaceArea(mesh.FaceID(fi))
		s := TriangleStretch(tri, faceUV)
		for _, v := range f.Vertices {
			numerator[v] += area * s * s
			denominator[v] += area
		}
	}
	out := make([]float64, n)
	for i := range out {
		if denominator[i] > 0 {
			out[i] = numerator[i] / denominator[i]
		}
	}
	return out
}
