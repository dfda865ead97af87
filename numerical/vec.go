// Package numerical provides the sparse linear algebra the parameterizers
// and the classical-MDS landmark embedding build on: a sparse matrix
// type, iterative solvers for it, and a small symmetric eigensolver.
package numerical

// Vec2 is a 2-component vector, used to solve the u and v parameter
// coordinates of a linear system in one pass.
type Vec2 [2]float64

// Array returns the vector as a plain array, for interop with code
// that wants a fixed-size type rather than Vec2's named indices.
func (v Vec2) Array() [2]float64 {
	return [2]float64(v)
}

// Add returns the component-wise sum.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v[0] + o[0], v[1] + o[1]}
}

// Scale multiplies both components by s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{v[0] * s, v[1] * s}
}
