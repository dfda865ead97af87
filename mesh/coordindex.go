package mesh

// CoordIndex deduplicates Coord3D positions, assigning each distinct
// position a stable VertexID the first time it is seen. It is the
// equivalent of unixpickle/model3d's CoordMap, used here specifically to
// fold triangle-soup input (raw per-triangle corner positions, as read
// from an OBJ file with no vertex sharing) into an indexed Mesh.
//
// Coord3D's exact float equality is enough here: positions that should
// be merged are expected to come from the same upstream float64
// values (e.g. a repeated OBJ vertex line), not from independently
// computed near-duplicates.
type CoordIndex struct {
	ids   map[Coord3D]VertexID
	coord []Coord3D
}

// NewCoordIndex creates an empty index.
func NewCoordIndex() *CoordIndex {
	return &CoordIndex{ids: map[Coord3D]VertexID{}}
}

// Index returns the VertexID for c, assigning it the next sequential
// id the first time c is seen.
func (idx *CoordIndex) Index(c Coord3D) VertexID {
	if id, ok := idx.ids[c]; ok {
		return id
	}
	id := VertexID(len(idx.coord))
	idx.ids[c] = id
	idx.coord = append(idx.coord, c)
	return id
}

// Positions returns the deduplicated positions in id order.
func (idx *CoordIndex) Positions() []Coord3D {
	return idx.coord
}

// Len returns the number of distinct positions seen so far.
func (idx *CoordIndex) Len() int {
	return len(idx.coord)
}

// FromTriangleSoup builds a Mesh from a flat list of per-triangle
// corner positions (len(tris) a multiple of 3, no sharing assumed),
// deduplicating positions with a CoordIndex.
func FromTriangleSoup(tris []Coord3D) (*Mesh, error) {
	if len(tris)%3 != 0 {
		return nil, ErrDegenerateFace
	}
	idx := NewCoordIndex()
	indices := make([][3]int, 0, len(tris)/3)
	for i := 0; i < len(tris); i += 3 {
		a := idx.Index(tris[i])
		b := idx.Index(tris[i+1])
		c := idx.Index(tris[i+2])
		indices = append(indices, [3]int{int(a), int(b), int(c)})
	}
	return New(idx.Positions(), indices)
}
