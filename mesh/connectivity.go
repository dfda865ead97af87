package mesh

import "sort"

// edgeFaces tracks, per undirected edge, which faces (and local edge
// slot within each face) touch it. Most edges have exactly two
// entries once the mesh is manifold; Build reports an error otherwise.
type edgeFaces struct {
	faces [2]FaceID
	slots [2]int
	count int
}

// Build computes face adjacency and vertex-to-face incidence. It must
// be called once before VertexFaces, BoundaryLoops or chart extraction
// are used, and again after any mutation that changes Vertices/Faces.
//
// Build returns ErrNonManifoldEdge if any edge is shared by more than
// two faces; callers that expect non-manifold input should run Repair
// first.
func (m *Mesh) Build() error {
	edges := make(map[Edge]*edgeFaces, len(m.Faces)*3/2+1)
	for fi, f := range m.Faces {
		for i := 0; i < 3; i++ {
			a, b := f.Vertices[i], f.Vertices[(i+1)%3]
			e := NewEdge(a, b)
			ef, ok := edges[e]
			if !ok {
				ef = &edgeFaces{}
				edges[e] = ef
			}
			if ef.count >= 2 {
				return ErrNonManifoldEdge
			}
			ef.faces[ef.count] = FaceID(fi)
			ef.slots[ef.count] = i
			ef.count++
		}
	}

	for fi, f := range m.Faces {
		for i := 0; i < 3; i++ {
			a, b := f.Vertices[i], f.Vertices[(i+1)%3]
			ef := edges[NewEdge(a, b)]
			m.Faces[fi].Adjacent[i] = oppositeFace(ef, FaceID(fi))
		}
	}

	vf := make([][]FaceID, len(m.Vertices))
	for fi, f := range m.Faces {
		for _, v := range f.Vertices {
			vf[v] = append(vf[v], FaceID(fi))
		}
	}
	m.vertexFaces = vf
	m.built = true
	return nil
}

func oppositeFace(ef *edgeFaces, self FaceID) FaceID {
	if ef.count < 2 {
		return InvalidID
	}
	if ef.faces[0] == self {
		return ef.faces[1]
	}
	return ef.faces[0]
}

// IsManifold reports whether every edge of the mesh is shared by at
// most two faces. It recomputes edge counts rather than relying on a
// prior Build, so it is safe to call on a mesh that failed to Build.
func (m *Mesh) IsManifold() bool {
	counts := make(map[Edge]int, len(m.Faces)*3/2+1)
	for _, f := range m.Faces {
		for i := 0; i < 3; i++ {
			e := NewEdge(f.Vertices[i], f.Vertices[(i+1)%3])
			counts[e]++
			if counts[e] > 2 {
				return false
			}
		}
	}
	return true
}

// BowtieVertices returns the vertices whose incident faces form more
// than one fan — i.e. the faces around the vertex don't form a single
// connected ring when walked edge-to-edge. A bowtie vertex must be
// split (see SplitBowties) before chart partitioning, since a chart
// boundary can't pass "through" a vertex that also belongs to a
// disjoint fan.
func (m *Mesh) BowtieVertices() []VertexID {
	if !m.built {
		panic("mesh: Build must run before BowtieVertices")
	}
	var out []VertexID
	for v := range m.Vertices {
		if m.fanCount(VertexID(v)) > 1 {
			out = append(out, VertexID(v))
		}
	}
	return out
}

// fanCount returns the number of disjoint triangle fans around a
// vertex, found by grouping its incident faces via shared edges at
// that vertex.
func (m *Mesh) fanCount(v VertexID) int {
	faces := m.vertexFaces[v]
	if len(faces) == 0 {
		return 0
	}
	adjacency := make(map[FaceID][]FaceID, len(faces))
	inSet := make(map[FaceID]bool, len(faces))
	for _, f := range faces {
		inSet[f] = true
	}
	for _, f := range faces {
		face := m.Faces[f]
		for i := 0; i < 3; i++ {
			if face.Vertices[i] != v && face.Vertices[(i+1)%3] != v {
				continue
			}
			n := face.Adjacent[i]
			if n != InvalidID && inSet[n] {
				adjacency[f] = append(adjacency[f], n)
			}
		}
	}
	seen := make(map[FaceID]bool, len(faces))
	components := 0
	for _, f := range faces {
		if seen[f] {
			continue
		}
		components++
		stack := []FaceID{f}
		seen[f] = true
		for len(stack) > 0 {
			cur := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			for _, n := range adjacency[cur] {
				if !seen[n] {
					seen[n] = true
					stack = append(stack, n)
				}
			}
		}
	}
	return components
}

// SplitBowties duplicates every bowtie vertex once per extra fan, so
// that each duplicate belongs to a single connected fan of faces. It
// rebuilds adjacency before returning. Reports the number of bowtie
// vertices that were split.
func (m *Mesh) SplitBowties() int {
	if !m.built {
		if err := m.Build(); err != nil {
			panic(err)
		}
	}
	bowties := m.BowtieVertices()
	if len(bowties) == 0 {
		return 0
	}
	sort.Slice(bowties, func(i, j int) bool { return bowties[i] < bowties[j] })

	for _, v := range bowties {
		faces := append([]FaceID(nil), m.vertexFaces[v]...)
		inSet := make(map[FaceID]bool, len(faces))
		for _, f := range faces {
			inSet[f] = true
		}
		adjacency := make(map[FaceID][]FaceID, len(faces))
		for _, f := range faces {
			face := m.Faces[f]
			for i := 0; i < 3; i++ {
				if face.Vertices[i] != v && face.Vertices[(i+1)%3] != v {
					continue
				}
				n := face.Adjacent[i]
				if n != InvalidID && inSet[n] {
					adjacency[f] = append(adjacency[f], n)
				}
			}
		}
		seen := make(map[FaceID]bool, len(faces))
		first := true
		for _, f := range faces {
			if seen[f] {
				continue
			}
			stack := []FaceID{f}
			seen[f] = true
			var comp []FaceID
			for len(stack) > 0 {
				cur := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				comp = append(comp, cur)
				for _, n := range adjacency[cur] {
					if !seen[n] {
						seen[n] = true
						stack = append(stack, n)
					}
				}
			}
			if first {
				first = false
				continue
			}
			newID := VertexID(len(m.Vertices))
			m.Vertices = append(m.Vertices, m.Vertices[v])
			for _, fi := range comp {
				face := &m.Faces[fi]
				for i, vv := range face.Vertices {
					if vv == v {
						face.Vertices[i] = newID
					}
				}
			}
		}
	}
	if err := m.Build(); err != nil {
		panic(err)
	}
	return len(bowties)
}
