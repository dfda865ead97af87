package mesh

import (
	"errors"
	"fmt"
)

// ErrEmptyMesh is returned by New when given zero faces.
var ErrEmptyMesh = errors.New("mesh: no faces given")

// ErrDegenerateFace is returned when a face references the same vertex
// more than once.
var ErrDegenerateFace = errors.New("mesh: degenerate face (repeated vertex)")

// ErrNonManifoldEdge is returned by Build when an edge is shared by
// more than two faces; the caller has to resolve that before the rest
// of the pipeline can run (see Repair).
var ErrNonManifoldEdge = errors.New("mesh: edge shared by more than two faces")

// ErrNonSplittableBlocked is returned by ReduceToSingleBoundary when the
// cut joining two boundary loops can only be carried out across an edge
// the host marked non-splittable. A chart split that would cross such an
// edge does not return it; the partitioner leaves that chart unsplit.
var ErrNonSplittableBlocked = errors.New("mesh: required cut crosses a non-splittable edge")

// Mesh is an indexed triangle mesh: Vertices and Faces are addressed by
// VertexID/FaceID, and Faces additionally carry adjacency computed by
// Build.
type Mesh struct {
	Vertices []Vertex
	Faces    []Face

	// NonSplittable marks edges the host forbids cutting (the §3.3
	// per-edge "splittable" flag, supplied as host split-hint input).
	// A nil map means every edge may be cut. ExtractChart carries the
	// relevant subset onto any chart built from this mesh.
	NonSplittable map[Edge]bool

	// built is true once Build has computed Faces[i].Adjacent and the
	// vertex-to-face incidence table.
	built bool

	// vertexFaces[v] lists, in no particular order, every face
	// referencing vertex v. Populated by Build.
	vertexFaces [][]FaceID
}

// New constructs a Mesh from a flat position list and zero-based
// triangle indices. It does not compute adjacency; call Build for that.
func New(positions []Coord3D, indices [][3]int) (*Mesh, error) {
	if len(indices) == 0 {
		return nil, ErrEmptyMesh
	}
	m := &Mesh{
		Vertices: make([]Vertex, len(positions)),
		Faces:    make([]Face, len(indices)),
	}
	for i, p := range positions {
		m.Vertices[i] = Vertex{Position: p, ChartID: InvalidID}
	}
	for i, tri := range indices {
		if tri[0] == tri[1] || tri[1] == tri[2] || tri[0] == tri[2] {
			return nil, fmt.Errorf("%w: face %d", ErrDegenerateFace, i)
		}
		m.Faces[i] = Face{
			Vertices: [3]VertexID{VertexID(tri[0]), VertexID(tri[1]), VertexID(tri[2])},
			Adjacent: [3]FaceID{InvalidID, InvalidID, InvalidID},
			ChartID:  InvalidID,
		}
	}
	return m, nil
}

// NumVertices returns len(m.Vertices).
func (m *Mesh) NumVertices() int { return len(m.Vertices) }

// NumFaces returns len(m.Faces).
func (m *Mesh) NumFaces() int { return len(m.Faces) }

// FaceVertices returns the three positions of a face's corners.
func (m *Mesh) FaceVertices(f FaceID) [3]Coord3D {
	face := m.Faces[f]
	return [3]Coord3D{
		m.Vertices[face.Vertices[0]].Position,
		m.Vertices[face.Vertices[1]].Position,
		m.Vertices[face.Vertices[2]].Position,
	}
}

// FaceNormal returns the (unnormalized) cross-product normal of a face,
// whose length is twice the face's area.
func (m *Mesh) FaceNormal(f FaceID) Coord3D {
	v := m.FaceVertices(f)
	return v[1].Sub(v[0]).Cross(v[2].Sub(v[0]))
}

// FaceArea returns the area of a face.
func (m *Mesh) FaceArea(f FaceID) float64 {
	return m.FaceNormal(f).Norm() / 2
}

// VertexFaces returns the faces incident to v. Requires Build.
func (m *Mesh) VertexFaces(v VertexID) []FaceID {
	return m.vertexFaces[v]
}

// localEdgeIndex returns which of a face's three local edges runs from
// corner i to corner (i+1)%3, given an endpoint pair; it panics if the
// pair isn't one of the face's edges, which would indicate caller
// error rather than bad mesh data.
func localEdgeIndex(f Face, a, b VertexID) int {
	for i := 0; i < 3; i++ {
		x, y := f.Vertices[i], f.Vertices[(i+1)%3]
		if (x == a && y == b) || (x == b && y == a) {
			return i
		}
	}
	panic("mesh: vertex pair is not an edge of the face")
}

// Clone makes a deep copy of the mesh, including adjacency if it has
// been built.
func (m *Mesh) Clone() *Mesh {
	out := &Mesh{
		Vertices: append([]Vertex(nil), m.Vertices...),
		Faces:    append([]Face(nil), m.Faces...),
		built:    m.built,
	}
	if m.NonSplittable != nil {
		out.NonSplittable = make(map[Edge]bool, len(m.NonSplittable))
		for e, v := range m.NonSplittable {
			out.NonSplittable[e] = v
		}
	}
	if m.built {
		out.vertexFaces = make([][]FaceID, len(m.vertexFaces))
		for i, fs := range m.vertexFaces {
			out.vertexFaces[i] = append([]FaceID(nil), fs...)
		}
	}
	return out
}
