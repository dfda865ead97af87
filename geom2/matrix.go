package geom2

import "math"

// Matrix2 is a 2x2 matrix stored column-major, following
// the column-vector convention used by MulColumn.
type Matrix2 struct {
	// Columns are the two columns of the matrix.
	Col1, Col2 Coord
}

// NewMatrix2Columns creates a Matrix2 from two columns.
func NewMatrix2Columns(col1, col2 Coord) *Matrix2 {
	return &Matrix2{Col1: col1, Col2: col2}
}

// MulColumn multiplies the matrix by a column vector.
func (m *Matrix2) MulColumn(c Coord) Coord {
	return Coord{
		X: m.Col1.X*c.X + m.Col2.X*c.Y,
		Y: m.Col1.Y*c.X + m.Col2.Y*c.Y,
	}
}

// Det computes the determinant of the matrix.
func (m *Matrix2) Det() float64 {
	return m.Col1.X*m.Col2.Y - m.Col2.X*m.Col1.Y
}

// Inverse computes the inverse matrix.
//
// Panics if the matrix is singular.
func (m *Matrix2) Inverse() *Matrix2 {
	det := m.Det()
	if det == 0 {
		panic("matrix is singular")
	}
	invDet := 1 / det
	return &Matrix2{
		Col1: Coord{X: m.Col2.Y * invDet, Y: -m.Col1.Y * invDet},
		Col2: Coord{X: -m.Col2.X * invDet, Y: m.Col1.X * invDet},
	}
}

// MulColumnInv computes Inverse()*c, given a precomputed
// determinant, without forming the inverse matrix.
//
// This is useful in hot loops (e.g. barycentric-coordinate
// computation) where only the determinant is already known.
func (m *Matrix2) MulColumnInv(c Coord, det float64) Coord {
	return Coord{
		X: (m.Col2.Y*c.X - m.Col2.X*c.Y) / det,
		Y: (m.Col1.X*c.Y - m.Col1.Y*c.X) / det,
	}
}

// Transpose returns the transpose of the matrix.
func (m *Matrix2) Transpose() *Matrix2 {
	return &Matrix2{
		Col1: Coord{X: m.Col1.X, Y: m.Col2.X},
		Col2: Coord{X: m.Col1.Y, Y: m.Col2.Y},
	}
}

// SymmetricEigenvalues computes the two real eigenvalues
// of a symmetric 2x2 matrix, returned as the larger and
// the smaller one.
//
// This assumes the matrix is symmetric, i.e. Col1.Y ==
// Col2.X, as is the case for the first-fundamental-form
// matrices used throughout the stretch model.
func (m *Matrix2) SymmetricEigenvalues() (larger, smaller float64) {
	a, b, d := m.Col1.X, m.Col1.Y, m.Col2.Y
	tr := a + d
	det := a*d - b*b
	disc := tr*tr/4 - det
	if disc < 0 {
		disc = 0
	}
	sq := math.Sqrt(disc)
	return tr/2 + sq, tr/2 - sq
}
