// Package geom2 provides the 2D vector and matrix primitives used by the
// parameterizers and the atlas packer. It mirrors the small, value-typed
// vector API of the mesh package's 3D counterpart, scoped down to what the
// chart-space (u, v) math actually needs.
package geom2

import "math"

// Coord is a point or vector in 2D chart space.
type Coord struct {
	X float64
	Y float64
}

// Origin is the zero coordinate.
var Origin = Coord{}

// XY creates a Coord from the given components.
func XY(x, y float64) Coord {
	return Coord{X: x, Y: y}
}

// X creates a Coord with the given X component and Y=0.
func X(x float64) Coord {
	return Coord{X: x}
}

// Array returns the coordinate as a [2]float64.
func (c Coord) Array() [2]float64 {
	return [2]float64{c.X, c.Y}
}

// NewCoordArray creates a Coord from a [2]float64.
func NewCoordArray(a [2]float64) Coord {
	return Coord{X: a[0], Y: a[1]}
}

func (c Coord) Add(c1 Coord) Coord {
	return Coord{X: c.X + c1.X, Y: c.Y + c1.Y}
}

func (c Coord) Sub(c1 Coord) Coord {
	return Coord{X: c.X - c1.X, Y: c.Y - c1.Y}
}

func (c Coord) Scale(s float64) Coord {
	return Coord{X: c.X * s, Y: c.Y * s}
}

func (c Coord) AddScalar(s float64) Coord {
	return Coord{X: c.X + s, Y: c.Y + s}
}

// Mul multiplies component-wise.
func (c Coord) Mul(c1 Coord) Coord {
	return Coord{X: c.X * c1.X, Y: c.Y * c1.Y}
}

// Div divides component-wise.
func (c Coord) Div(c1 Coord) Coord {
	return Coord{X: c.X / c1.X, Y: c.Y / c1.Y}
}

func (c Coord) Dot(c1 Coord) float64 {
	return c.X*c1.X + c.Y*c1.Y
}

// Cross returns the Z-component of the 3D cross product,
// i.e. the signed area of the parallelogram spanned by
// c and c1.
func (c Coord) Cross(c1 Coord) float64 {
	return c.X*c1.Y - c.Y*c1.X
}

func (c Coord) Norm() float64 {
	return math.Sqrt(c.Dot(c))
}

func (c Coord) Dist(c1 Coord) float64 {
	return c.Sub(c1).Norm()
}

func (c Coord) Normalize() Coord {
	n := c.Norm()
	if n == 0 {
		return Coord{}
	}
	return c.Scale(1 / n)
}

// Abs returns the component-wise absolute value.
func (c Coord) Abs() Coord {
	return Coord{X: math.Abs(c.X), Y: math.Abs(c.Y)}
}

func (c Coord) Min(c1 Coord) Coord {
	return Coord{X: math.Min(c.X, c1.X), Y: math.Min(c.Y, c1.Y)}
}

func (c Coord) Max(c1 Coord) Coord {
	return Coord{X: math.Max(c.X, c1.X), Y: math.Max(c.Y, c1.Y)}
}

// MaxCoord returns the larger of the two components.
func (c Coord) MaxCoord() float64 {
	return math.Max(c.X, c.Y)
}

// Sum returns X+Y, used for quick NaN/Inf detection.
func (c Coord) Sum() float64 {
	return c.X + c.Y
}

// Mid returns the midpoint between c and c1.
func (c Coord) Mid(c1 Coord) Coord {
	return c.Add(c1).Scale(0.5)
}

// ProjectOut removes the component of c that is parallel
// to dir, returning the perpendicular remainder.
func (c Coord) ProjectOut(dir Coord) Coord {
	unit := dir.Normalize()
	return c.Sub(unit.Scale(c.Dot(unit)))
}

// Rotate rotates c counter-clockwise by theta radians
// around the origin.
func (c Coord) Rotate(theta float64) Coord {
	sin, cos := math.Sincos(theta)
	return Coord{
		X: c.X*cos - c.Y*sin,
		Y: c.X*sin + c.Y*cos,
	}
}
