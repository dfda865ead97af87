package mesh

import (
	"fmt"

	"github.com/katalvlaran/lvlath/core"
	"github.com/katalvlaran/lvlath/dijkstra"
)

// edgeWeightScale converts a Euclidean edge length into the integer
// weight lvlath's graphs require. 1e6 gives six decimal digits of
// sub-unit precision, which is comfortably below the tolerances the
// stretch optimizer cares about.
const edgeWeightScale = 1e6

// BoundaryLoops returns every boundary loop of the mesh, each as a
// cyclic sequence of vertex ids walked counter-clockwise (as seen from
// outside the surface, consistent with face winding). Requires Build.
func (m *Mesh) BoundaryLoops() [][]VertexID {
	if !m.built {
		panic("mesh: Build must run before BoundaryLoops")
	}
	next := map[VertexID]VertexID{}
	for _, f := range m.Faces {
		for i := 0; i < 3; i++ {
			if f.Adjacent[i] == InvalidID {
				next[f.Vertices[i]] = f.Vertices[(i+1)%3]
			}
		}
	}
	visited := map[VertexID]bool{}
	var loops [][]VertexID
	for start := range next {
		if visited[start] {
			continue
		}
		var loop []VertexID
		cur := start
		for {
			if visited[cur] {
				break
			}
			visited[cur] = true
			loop = append(loop, cur)
			n, ok := next[cur]
			if !ok {
				break
			}
			cur = n
			if cur == start {
				break
			}
		}
		if len(loop) > 0 {
			loops = append(loops, loop)
		}
	}
	return loops
}

// surfaceGraph builds a weighted lvlath graph over the mesh's edges,
// weighted by Euclidean edge length, for use by shortest-path cuts.
// When excludeNonSplittable is set, edges the host marked non-cuttable
// are left out of the graph entirely, so a shortest path through it can
// never use one.
func (m *Mesh) surfaceGraph(excludeNonSplittable bool) *core.Graph {
	g := core.NewGraph(core.WithWeighted())
	seen := map[Edge]bool{}
	for _, f := range m.Faces {
		for i := 0; i < 3; i++ {
			a, b := f.Vertices[i], f.Vertices[(i+1)%3]
			e := NewEdge(a, b)
			if seen[e] {
				continue
			}
			seen[e] = true
			if excludeNonSplittable && m.NonSplittable[e] {
				continue
			}
			w := int64(m.Vertices[a].Position.Dist(m.Vertices[b].Position) * edgeWeightScale)
			if w <= 0 {
				w = 1
			}
			g.AddVertex(vid(a))
			g.AddVertex(vid(b))
			g.AddEdge(vid(a), vid(b), w)
		}
	}
	return g
}

func vid(v VertexID) string {
	return fmt.Sprintf("v%d", v)
}

// pathCrossesNonSplittable reports whether any consecutive pair in path
// is an edge the host marked non-cuttable.
func (m *Mesh) pathCrossesNonSplittable(path []VertexID) bool {
	if len(m.NonSplittable) == 0 {
		return false
	}
	for i := 0; i+1 < len(path); i++ {
		if m.NonSplittable[NewEdge(path[i], path[i+1])] {
			return true
		}
	}
	return false
}

// ReduceToSingleBoundary repeatedly cuts the mesh along a shortest
// surface path between two distinct boundary loops until at most one
// loop remains. It reports the number of cuts performed.
//
// This stands in for the literal boundary-merging heuristics of the
// original chart-cutting algorithm: rather than growing a minimal
// spanning structure over all loops, each iteration greedily joins the
// globally closest pair of loops, which is sufficient to collapse any
// number of boundary components down to one and keeps the added seam
// length small.
func (m *Mesh) ReduceToSingleBoundary() (int, error) {
	cuts := 0
	for {
		loops := m.BoundaryLoops()
		if len(loops) <= 1 {
			return cuts, nil
		}
		path, err := m.shortestPathBetweenLoops(loops[0], loops[1], true)
		if err != nil {
			// No path avoiding non-splittable edges exists; fall back to
			// the unrestricted shortest path and fail loudly if it
			// actually needs one, per the "prefer paths that don't cross
			// non-splittable edges; fail if forced to" tie-break rule.
			path, err = m.shortestPathBetweenLoops(loops[0], loops[1], false)
			if err != nil {
				return cuts, err
			}
			if m.pathCrossesNonSplittable(path) {
				return cuts, ErrNonSplittableBlocked
			}
		}
		if err := m.cutAlongPath(path); err != nil {
			return cuts, err
		}
		if err := m.Build(); err != nil {
			return cuts, err
		}
		cuts++
	}
}

// shortestPathBetweenLoops finds the shortest surface path connecting
// any vertex of loopA to any vertex of loopB, using a synthetic
// zero-weight super-source wired to every vertex of loopA so a single
// Dijkstra run suffices.
func (m *Mesh) shortestPathBetweenLoops(loopA, loopB []VertexID, excludeNonSplittable bool) ([]VertexID, error) {
	g := m.surfaceGraph(excludeNonSplittable)
	const source = "__source__"
	g.AddVertex(source)
	for _, v := range loopA {
		g.AddEdge(source, vid(v), 0)
	}
	inB := map[VertexID]bool{}
	for _, v := range loopB {
		inB[v] = true
	}

	dist, prev, err := dijkstra.Dijkstra(g, dijkstra.Source(source), dijkstra.WithReturnPath())
	if err != nil {
		return nil, fmt.Errorf("mesh: boundary cut: %w", err)
	}

	var best VertexID = -1
	var bestDist int64 = -1
	for _, v := range loopB {
		d, ok := dist[vid(v)]
		if !ok {
			continue
		}
		if bestDist == -1 || d < bestDist {
			bestDist = d
			best = v
		}
	}
	if best == -1 {
		return nil, fmt.Errorf("mesh: boundary cut: loops are not connected by any surface path")
	}

	var rev []VertexID
	cur := vid(best)
	for cur != source {
		var id VertexID
		fmt.Sscanf(cur, "v%d", &id)
		rev = append(rev, id)
		p, ok := prev[cur]
		if !ok {
			return nil, fmt.Errorf("mesh: boundary cut: broken predecessor chain")
		}
		cur = p
	}
	path := make([]VertexID, len(rev))
	for i, v := range rev {
		path[len(rev)-1-i] = v
	}
	return path, nil
}

// orderedFan walks the faces incident to v in one rotational direction,
// returning them together with the sequence of "other corner" vertices
// between consecutive faces (ring[k] is shared by fan[k-1] and fan[k]).
// ring always has one more entry than fan; when the fan is closed its
// last entry repeats the first.
func (m *Mesh) orderedFan(v VertexID) (fan []FaceID, ring []VertexID, closed bool) {
	faces := m.vertexFaces[v]
	if len(faces) == 0 {
		return nil, nil, false
	}
	start := faces[0]
	cur := start
	for {
		face := m.Faces[cur]
		i := localIndexOf(face, v)
		entry := face.Vertices[(i+2)%3]
		exit := face.Vertices[(i+1)%3]
		if len(fan) == 0 {
			ring = append(ring, entry)
		}
		fan = append(fan, cur)
		ring = append(ring, exit)
		next := face.Adjacent[i]
		if next == InvalidID {
			return fan, ring, false
		}
		if next == start {
			return fan, ring, true
		}
		cur = next
		if len(fan) > len(faces) {
			panic("mesh: fan walk exceeded incident face count")
		}
	}
}

func localIndexOf(f Face, v VertexID) int {
	for i, vv := range f.Vertices {
		if vv == v {
			return i
		}
	}
	panic("mesh: vertex not in face")
}

// cutAlongPath slits the mesh open along a sequence of connected
// vertices by duplicating each interior vertex and reassigning one
// side of its face fan to the duplicate. The result has the path's
// two endpoints joined into a single, larger boundary loop wherever
// they each sat on distinct loops.
func (m *Mesh) cutAlongPath(path []VertexID) error {
	for k := 1; k < len(path)-1; k++ {
		v := path[k]
		prevV, nextV := path[k-1], path[k+1]
		fan, ring, closed := m.orderedFan(v)
		if !closed {
			// Already a boundary vertex; nothing to slit here.
			continue
		}
		p1 := indexOf(ring, prevV)
		p2 := indexOf(ring, nextV)
		if p1 == -1 || p2 == -1 {
			return fmt.Errorf("mesh: boundary cut: path is not an edge sequence at vertex %d", v)
		}
		// Faces fan[p1:p2] (cyclically) lie on one side of the cut;
		// reassign them to a new duplicate vertex.
		var side []FaceID
		for i := p1; i != p2; i = (i + 1) % len(fan) {
			side = append(side, fan[i])
		}
		if len(side) == 0 || len(side) == len(fan) {
			continue
		}
		dup := VertexID(len(m.Vertices))
		m.Vertices = append(m.Vertices, m.Vertices[v])
		for _, fi := range side {
			face := &m.Faces[fi]
			for i, vv := range face.Vertices {
				if vv == v {
					face.Vertices[i] = dup
				}
			}
		}
	}
	return nil
}

func indexOf(vs []VertexID, v VertexID) int {
	for i, vv := range vs {
		if vv == v {
			return i
		}
	}
	return -1
}
