package isochart

import "github.com/uvatlas-go/uvatlas/numerical"

// topEigenpairs is a thin wrapper over numerical.TopEigenpairs so the
// rest of this package refers to eigen decomposition through one name,
// regardless of which linear-algebra package backs it.
func topEigenpairs(gram [][]float64, k int) []numerical.EigenPair {
	return numerical.TopEigenpairs(gram, k)
}
