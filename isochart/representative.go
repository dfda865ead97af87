package isochart

import "github.com/uvatlas-go/uvatlas/mesh"

// AssignVertexLabels splits a chart's vertices into two groups by
// proximity to the two pole landmarks embedding.Landmarks[0] and
// embedding.Landmarks[1] (selected by SelectLandmarks/reorderFarthestPair
// to be geodesically farthest apart), using the raw geodesic distance
// rows already computed for the embedding rather than recomputing
// distances. The result is indexed by local vertex id.
func AssignVertexLabels(m *mesh.Mesh, e *Embedding) []int {
	n := m.NumVertices()
	labels := make([]int, n)
	if len(e.Distances) < 2 {
		return labels
	}
	toA, toB := e.Distances[0], e.Distances[1]
	for v := 0; v < n; v++ {
		if toB[v] < toA[v] {
			labels[v] = 1
		}
	}
	return labels
}

// FaceLabelsFromVertices assigns each face the majority label among its
// three vertices, breaking ties toward label 0.
func FaceLabelsFromVertices(m *mesh.Mesh, vertexLabels []int) []int {
	faceLabels := make([]int, m.NumFaces())
	for fi, f := range m.Faces {
		sum := vertexLabels[f.Vertices[0]] + vertexLabels[f.Vertices[1]] + vertexLabels[f.Vertices[2]]
		if sum >= 2 {
			faceLabels[fi] = 1
		}
	}
	return faceLabels
}

// SmoothFaceLabels repeatedly relabels each face to match the majority
// label among itself and its face-adjacent neighbors (a tie keeps its
// current label), for the given number of
// passes. This removes the single-face "islands" a nearest-landmark
// split tends to leave along the dividing boundary, the same way a
// min-cut refinement would, but cheaply and without the flow solve.
func SmoothFaceLabels(m *mesh.Mesh, faceLabels []int, passes int) []int {
	cur := append([]int(nil), faceLabels...)
	next := make([]int, len(cur))
	for p := 0; p < passes; p++ {
		changed := false
		for fi, f := range m.Faces {
			counts := [2]int{}
			counts[cur[fi]]++
			for _, adj := range f.Adjacent {
				if adj == mesh.InvalidID {
					continue
				}
				counts[cur[adj]]++
			}
			label := cur[fi]
			if counts[1-label] > counts[label] {
				label = 1 - label
				changed = true
			}
			next[fi] = label
		}
		cur, next = next, cur
		if !changed {
			break
		}
	}
	return cur
}

// LabelFaceSets partitions face indices by their 0/1 label, returning
// the two groups as FaceID slices ready for mesh.ExtractChart.
func LabelFaceSets(faceLabels []int) (a, b []mesh.FaceID) {
	for fi, label := range faceLabels {
		if label == 0 {
			a = append(a, mesh.FaceID(fi))
		} else {
			b = append(b, mesh.FaceID(fi))
		}
	}
	return a, b
}
