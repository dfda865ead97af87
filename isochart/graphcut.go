package isochart

import (
	"fmt"

	"github.com/katalvlaran/lvlath/core"
	"github.com/katalvlaran/lvlath/flow"

	"github.com/uvatlas-go/uvatlas/mesh"
)

// CutSeparationCapacity sets the capacity scale of RefineFaceLabels'
// flow graph: face-adjacency edges weigh from 1 up to
// CutSeparationCapacity+1 by dihedral angle, every face's terminal link
// gets four times it, and an edge marked non-splittable gets a million
// times it.
const CutSeparationCapacity = 1000.0

// RefineFaceLabels turns AssignVertexLabels/FaceLabelsFromVertices'
// nearest-landmark split into a graph-cut problem and solves it with
// lvlath's Dinic max-flow: every face is a graph vertex, every pair of
// face-adjacent faces gets an edge weighted by the dihedral angle
// between them (so the cut prefers to run along sharp creases), and
// two synthetic terminals - source wired to every face seeded as label
// 0, sink wired to every face seeded as label 1 - pin the two sides.
// The min cut separating source from sink is the boundary that best
// balances "agree with the seed labels" against "run along a cheap
// edge", which is the same trade-off SmoothFaceLabels approximates
// with majority voting but without its locality bias.
func RefineFaceLabels(m *mesh.Mesh, seedLabels []int) ([]int, error) {
	return RefineFaceLabelsConstrained(m, seedLabels, nil)
}

// RefineFaceLabelsConstrained is RefineFaceLabels with an extra
// host-supplied constraint: face-adjacency edges whose shared mesh edge
// is in nonSplittable get a capacity far above any achievable cut cost,
// so the min cut only runs through one when every other separation
// would cost even more - which, for a two-label seed, only happens when
// the non-splittable edge is the sole path between the two sides.
// splitChart checks the result against nonSplittable itself and treats
// a crossing as an unsplittable chart rather than trusting the flow
// solver to always avoid it outright.
func RefineFaceLabelsConstrained(m *mesh.Mesh, seedLabels []int, nonSplittable map[mesh.Edge]bool) ([]int, error) {
	g := core.NewGraph(core.WithWeighted(), core.WithDirected(true))

	const source, sink = "__source", "__sink"
	if err := g.AddVertex(source); err != nil {
		return nil, err
	}
	if err := g.AddVertex(sink); err != nil {
		return nil, err
	}
	for fi := range m.Faces {
		if err := g.AddVertex(faceVID(fi)); err != nil {
			return nil, err
		}
	}

	for fi, f := range m.Faces {
		v := faceVID(fi)
		if seedLabels[fi] == 0 {
			if _, err := g.AddEdge(source, v, int64(CutSeparationCapacity)*4); err != nil {
				return nil, err
			}
		} else {
			if _, err := g.AddEdge(v, sink, int64(CutSeparationCapacity)*4); err != nil {
				return nil, err
			}
		}
		for side, adj := range f.Adjacent {
			if adj == mesh.InvalidID || int(adj) <= fi {
				continue
			}
			weight := dihedralCutWeight(m, mesh.FaceID(fi), adj, side)
			if nonSplittable != nil {
				a, b := f.Vertices[side], f.Vertices[(side+1)%3]
				if nonSplittable[mesh.NewEdge(a, b)] {
					weight = int64(CutSeparationCapacity) * 1_000_000
				}
			}
			if _, err := g.AddEdge(v, faceVID(int(adj)), weight); err != nil {
				return nil, err
			}
			if _, err := g.AddEdge(faceVID(int(adj)), v, weight); err != nil {
				return nil, err
			}
		}
	}

	_, residual, err := flow.Dinic(g, source, sink, flow.FlowOptions{Epsilon: 1e-9})
	if err != nil {
		return nil, err
	}

	reachable := map[string]bool{source: true}
	queue := []string{source}
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		edges, err := residual.Neighbors(u)
		if err != nil {
			return nil, err
		}
		for _, e := range edges {
			if e.Weight <= 0 || reachable[e.To] {
				continue
			}
			reachable[e.To] = true
			queue = append(queue, e.To)
		}
	}

	out := make([]int, len(m.Faces))
	for fi := range m.Faces {
		if reachable[faceVID(fi)] {
			out[fi] = 0
		} else {
			out[fi] = 1
		}
	}
	return out, nil
}

func faceVID(fi int) string {
	return fmt.Sprintf("f%d", fi)
}

// dihedralCutWeight turns the dihedral angle between two adjacent
// faces into an edge capacity: nearly coplanar faces (angle close to
// 0) get a high capacity, discouraging the cut from running there,
// while a sharp fold gets a low capacity so the min cut prefers it.
func dihedralCutWeight(m *mesh.Mesh, a mesh.FaceID, b mesh.FaceID, side int) int64 {
	na := m.FaceNormal(a)
	nb := m.FaceNormal(b)
	cosAngle := na.Dot(nb)
	if cosAngle < -1 {
		cosAngle = -1
	}
	if cosAngle > 1 {
		cosAngle = 1
	}
	flatness := (cosAngle + 1) / 2
	weight := int64(CutSeparationCapacity*flatness*flatness) + 1
	return weight
}
