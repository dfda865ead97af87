package mesh

// Chart is a connected subset of a Mesh's faces, addressed with its own
// local vertex/face ids, together with the mapping back to the parent
// mesh. The partitioner (isochart package) operates on Charts rather
// than mutating the parent Mesh in place, so charts can be split,
// merged or discarded independently.
type Chart struct {
	Parent *Mesh

	// Faces holds the parent FaceIDs that belong to this chart, in the
	// order they were extracted.
	Faces []FaceID

	// sub is a self-contained Mesh over the chart's own faces, built
	// with local vertex ids; ParentVertex maps local ids back to
	// Parent vertex ids.
	sub          *Mesh
	ParentVertex []VertexID

	// UV holds the chart's current parameter-space position for each
	// local vertex, populated once a parameterizer has run.
	UV []Coord2

	// Valid is true for every chart ExtractChart builds, and the
	// partitioner does not split a chart whose Valid is false. Merging
	// does not clear it: MergeSmallCharts drops merged-away charts from
	// the list it returns instead.
	Valid bool
}

// Coord2 is a parameter-space (u, v) position. Defined here rather than
// imported from geom2 so the mesh package has no dependency on chart
// geometry packages; isochart and packer convert to geom2.Coord at
// their boundary.
type Coord2 struct {
	U, V float64
}

// Mesh returns the chart's self-contained sub-mesh, with local vertex
// and face ids independent of the parent.
func (c *Chart) Mesh() *Mesh {
	return c.sub
}

// ExtractChart builds a Chart from a set of parent FaceIDs. The parent
// mesh must have Build already called.
func ExtractChart(parent *Mesh, faces []FaceID) (*Chart, error) {
	localID := map[VertexID]VertexID{}
	var positions []Coord3D
	var parentVertex []VertexID
	var indices [][3]int

	for _, f := range faces {
		face := parent.Faces[f]
		var tri [3]int
		for i, pv := range face.Vertices {
			lv, ok := localID[pv]
			if !ok {
				lv = VertexID(len(positions))
				localID[pv] = lv
				positions = append(positions, parent.Vertices[pv].Position)
				parentVertex = append(parentVertex, pv)
			}
			tri[i] = int(lv)
		}
		indices = append(indices, tri)
	}

	sub, err := New(positions, indices)
	if err != nil {
		return nil, err
	}
	if parent.NonSplittable != nil {
		sub.NonSplittable = map[Edge]bool{}
		for e := range parent.NonSplittable {
			la, okA := localID[e.A]
			lb, okB := localID[e.B]
			if okA && okB {
				sub.NonSplittable[NewEdge(la, lb)] = true
			}
		}
	}
	if err := sub.Build(); err != nil {
		return nil, err
	}

	return &Chart{
		Parent:       parent,
		Faces:        append([]FaceID(nil), faces...),
		sub:          sub,
		ParentVertex: parentVertex,
		UV:           make([]Coord2, len(positions)),
		Valid:        true,
	}, nil
}

// ConnectedComponents splits a mesh into its connected face components
// (by shared edges). CreateAtlas uses it to split the repaired mesh,
// which a bowtie split may have left disconnected, into components that
// are partitioned one at a time.
func (m *Mesh) ConnectedComponents() [][]FaceID {
	if !m.built {
		panic("mesh: Build must run before ConnectedComponents")
	}
	seen := make([]bool, len(m.Faces))
	var out [][]FaceID
	for i := range m.Faces {
		if seen[i] {
			continue
		}
		var comp []FaceID
		stack := []FaceID{FaceID(i)}
		seen[i] = true
		for len(stack) > 0 {
			cur := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			comp = append(comp, cur)
			for _, n := range m.Faces[cur].Adjacent {
				if n != InvalidID && !seen[n] {
					seen[n] = true
					stack = append(stack, n)
				}
			}
		}
		out = append(out, comp)
	}
	return out
}
