package numerical

import (
	"sort"

	"gonum.org/v1/gonum/mat"
)

// EigenPair is one eigenvalue together with its eigenvector.
type EigenPair struct {
	Value  float64
	Vector []float64
}

// SymmetricEigendecomposition computes the full eigendecomposition of a
// dense symmetric matrix (given as a row-major slice of rows), sorted
// by eigenvalue descending. The landmark MDS embedding (isochart
// package) uses the top two eigenpairs of the double-centered distance
// matrix to place landmarks in the plane; classical MDS's quality
// depends on getting a real, numerically stable eigensolver rather
// than a hand-rolled power-iteration routine, which is why this
// package reaches for gonum rather than reimplementing one.
func SymmetricEigendecomposition(rows [][]float64) []EigenPair {
	n := len(rows)
	flat := make([]float64, n*n)
	for i, row := range rows {
		copy(flat[i*n:(i+1)*n], row)
	}
	dense := mat.NewSymDense(n, flat)

	var eig mat.EigenSym
	ok := eig.Factorize(dense, true)
	if !ok {
		panic("numerical: symmetric eigendecomposition failed to converge")
	}

	values := eig.Values(nil)
	var vectors mat.Dense
	eig.VectorsTo(&vectors)

	pairs := make([]EigenPair, n)
	for i := 0; i < n; i++ {
		vec := make([]float64, n)
		for j := 0; j < n; j++ {
			vec[j] = vectors.At(j, i)
		}
		pairs[i] = EigenPair{Value: values[i], Vector: vec}
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].Value > pairs[j].Value })
	return pairs
}

// TopEigenpairs returns the k eigenpairs with the largest eigenvalues.
func TopEigenpairs(rows [][]float64, k int) []EigenPair {
	pairs := SymmetricEigendecomposition(rows)
	if k > len(pairs) {
		k = len(pairs)
	}
	return pairs[:k]
}
