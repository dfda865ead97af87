package isochart

import (
	"math"

	"github.com/uvatlas-go/uvatlas/geodesic"
	"github.com/uvatlas-go/uvatlas/geom2"
	"github.com/uvatlas-go/uvatlas/mesh"
)

// Embedding is the result of landmark MDS: a 2D position per landmark
// plus the full landmark-to-vertex geodesic distance matrix needed for
// the Nyström out-of-sample extension.
type Embedding struct {
	Landmarks []mesh.VertexID

	// LandmarkUV holds the embedded landmark positions, indexed the
	// same as Landmarks.
	LandmarkUV []geom2.Coord

	// Distances[k] is the geodesic distance from Landmarks[k] to every
	// vertex of the mesh (by VertexID).
	Distances [][]float64

	// EigenRatio is the ratio of the second to the first eigenvalue
	// used for the embedding, a cheap signal Classify uses to tell a
	// flat/cylindrical region from one needing more than two
	// dimensions to embed well.
	EigenRatio float64

	// eigenValues/eigenVectors hold the two raw (unit-norm) eigenpairs
	// of the double-centered Gram matrix, retained so NystromExtend can
	// project out-of-sample vertices with the same basis rather than
	// re-deriving it from LandmarkUV.
	eigenValues  [2]float64
	eigenVectors [2][]float64

	rowMeanSq   []float64
	grandMeanSq float64
}

// BuildEmbedding runs classical multidimensional scaling over the
// pairwise geodesic distances between landmarks, producing a 2D
// embedding of the landmark set. When a signal (IMT) is present,
// distances are first combined with geodesic.CombineWithSignal.
func BuildEmbedding(m *mesh.Mesh, landmarks []mesh.VertexID, engine geodesic.Engine, signalDistances [][]float64) *Embedding {
	k := len(landmarks)
	distances := make([][]float64, k)
	for i, v := range landmarks {
		d := engine.Distances(m, v)
		if signalDistances != nil {
			d = geodesic.CombineWithSignal(d, signalDistances[i])
		}
		distances[i] = d
	}

	landmarkDist := make([][]float64, k)
	for i := range landmarkDist {
		landmarkDist[i] = make([]float64, k)
		for j, v := range landmarks {
			landmarkDist[i][j] = distances[i][v]
		}
	}

	gram := doubleCenter(landmarkDist)
	pairs := topTwoEigenpairsFallback(gram)

	uv := make([]geom2.Coord, k)
	for i := 0; i < k; i++ {
		uv[i] = geom2.Coord{
			X: pairs[0].scaledComponent(i),
			Y: pairs[1].scaledComponent(i),
		}
	}

	ratio := 0.0
	if pairs[0].value > 1e-12 {
		ratio = pairs[1].value / pairs[0].value
	}

	rowMeanSq := make([]float64, k)
	var grandMeanSq float64
	for i := 0; i < k; i++ {
		var sum float64
		for j := 0; j < k; j++ {
			sum += landmarkDist[i][j] * landmarkDist[i][j]
		}
		rowMeanSq[i] = sum / float64(k)
		grandMeanSq += sum
	}
	if k > 0 {
		grandMeanSq /= float64(k * k)
	}

	return &Embedding{
		Landmarks:    landmarks,
		LandmarkUV:   uv,
		Distances:    distances,
		EigenRatio:   ratio,
		eigenValues:  [2]float64{pairs[0].value, pairs[1].value},
		eigenVectors: [2][]float64{pairs[0].vector, pairs[1].vector},
		rowMeanSq:    rowMeanSq,
		grandMeanSq:  grandMeanSq,
	}
}

type scaledEigenpair struct {
	value  float64
	vector []float64
}

func (p scaledEigenpair) scaledComponent(i int) float64 {
	if p.value <= 0 {
		return 0
	}
	return p.vector[i] * math.Sqrt(p.value)
}

// topTwoEigenpairsFallback wraps numerical's eigensolver; isochart
// imports it indirectly through a tiny adapter here rather than
// directly, so the MDS math stays in one place independent of which
// linear algebra package backs it.
func topTwoEigenpairsFallback(gram [][]float64) [2]scaledEigenpair {
	top := topEigenpairs(gram, 2)
	var out [2]scaledEigenpair
	for i := 0; i < 2; i++ {
		if i < len(top) {
			out[i] = scaledEigenpair{value: math.Max(0, top[i].Value), vector: top[i].Vector}
		} else {
			out[i] = scaledEigenpair{value: 0, vector: make([]float64, len(gram))}
		}
	}
	return out
}

// doubleCenter applies classical MDS's double-centering transform,
// B = -1/2 * J * D2 * J, to a matrix of pairwise distances D (squaring
// first), where J = I - (1/n) * ones.
func doubleCenter(dist [][]float64) [][]float64 {
	n := len(dist)
	d2 := make([][]float64, n)
	for i := range d2 {
		d2[i] = make([]float64, n)
		for j := range d2[i] {
			d2[i][j] = dist[i][j] * dist[i][j]
		}
	}
	rowMean := make([]float64, n)
	var grandMean float64
	for i := 0; i < n; i++ {
		var sum float64
		for j := 0; j < n; j++ {
			sum += d2[i][j]
		}
		rowMean[i] = sum / float64(n)
		grandMean += sum
	}
	grandMean /= float64(n * n)

	b := make([][]float64, n)
	for i := 0; i < n; i++ {
		b[i] = make([]float64, n)
		for j := 0; j < n; j++ {
			b[i][j] = -0.5 * (d2[i][j] - rowMean[i] - rowMean[j] + grandMean)
		}
	}
	return b
}

// NystromExtend places every vertex of the mesh in the embedding's 2D
// space using the Nyström out-of-sample extension: a vertex's
// coordinate along eigenvector k is (1/sqrt(λ_k)) times its centered
// squared-distance-to-landmarks vector projected onto that eigenvector
// — the standard out-of-sample formula, reusing the landmark
// embedding's basis rather than re-solving MDS for the full vertex
// set.
func (e *Embedding) NystromExtend(m *mesh.Mesh) []geom2.Coord {
	n := m.NumVertices()
	out := make([]geom2.Coord, n)
	k := len(e.Landmarks)

	invSqrt := [2]float64{0, 0}
	for axis := 0; axis < 2; axis++ {
		if e.eigenValues[axis] > 1e-12 {
			invSqrt[axis] = 1 / math.Sqrt(e.eigenValues[axis])
		}
	}

	for v := 0; v < n; v++ {
		var colMeanSq float64
		for i := 0; i < k; i++ {
			d := e.Distances[i][v]
			colMeanSq += d * d
		}
		colMeanSq /= float64(k)

		var ux, uy float64
		for i := 0; i < k; i++ {
			d := e.Distances[i][v]
			centered := -0.5 * (d*d - e.rowMeanSq[i] - colMeanSq + e.grandMeanSq)
			ux += centered * e.eigenVectors[0][i]
			uy += centered * e.eigenVectors[1][i]
		}
		out[v] = geom2.Coord{X: ux * invSqrt[0], Y: uy * invSqrt[1]}
	}
	return out
}
