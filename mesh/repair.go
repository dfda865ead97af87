package mesh

// RemoveDegenerateFaces drops faces with zero or near-zero area, which
// otherwise produce NaN stretch values and undefined normals downstream.
// Reports how many faces were removed.
func (m *Mesh) RemoveDegenerateFaces(areaEpsilon float64) int {
	kept := m.Faces[:0:0]
	removed := 0
	for _, f := range m.Faces {
		v := [3]Coord3D{
			m.Vertices[f.Vertices[0]].Position,
			m.Vertices[f.Vertices[1]].Position,
			m.Vertices[f.Vertices[2]].Position,
		}
		area := v[1].Sub(v[0]).Cross(v[2].Sub(v[0])).Norm() / 2
		if area <= areaEpsilon {
			removed++
			continue
		}
		kept = append(kept, f)
	}
	m.Faces = kept
	m.built = false
	return removed
}

// Repair runs the baseline cleanup every mesh needs before chart
// partitioning: dropping degenerate faces and splitting bowtie
// vertices so every vertex belongs to a single fan. It leaves the mesh
// built (adjacency computed) on success.
func (m *Mesh) Repair(areaEpsilon float64) (removedFaces int, splitVertices int, err error) {
	removedFaces = m.RemoveDegenerateFaces(areaEpsilon)
	if err = m.Build(); err != nil {
		return removedFaces, 0, err
	}
	splitVertices = m.SplitBowties()
	return removedFaces, splitVertices, nil
}
