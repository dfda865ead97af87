package mesh

import "math"

// Coord3D is a point or vector in 3D model space. It mirrors the small,
// value-typed vector API unixpickle/model3d exposes for its own Coord3D,
// since the chart partitioner and parameterizers are ported directly
// from that style of code.
type Coord3D struct {
	X float64
	Y float64
	Z float64
}

// XYZ creates a Coord3D from components.
func XYZ(x, y, z float64) Coord3D {
	return Coord3D{X: x, Y: y, Z: z}
}

func (c Coord3D) Array() [3]float64 {
	return [3]float64{c.X, c.Y, c.Z}
}

func NewCoord3DArray(a [3]float64) Coord3D {
	return Coord3D{X: a[0], Y: a[1], Z: a[2]}
}

func (c Coord3D) Add(c1 Coord3D) Coord3D {
	return Coord3D{X: c.X + c1.X, Y: c.Y + c1.Y, Z: c.Z + c1.Z}
}

func (c Coord3D) Sub(c1 Coord3D) Coord3D {
	return Coord3D{X: c.X - c1.X, Y: c.Y - c1.Y, Z: c.Z - c1.Z}
}

func (c Coord3D) Scale(s float64) Coord3D {
	return Coord3D{X: c.X * s, Y: c.Y * s, Z: c.Z * s}
}

func (c Coord3D) Dot(c1 Coord3D) float64 {
	return c.X*c1.X + c.Y*c1.Y + c.Z*c1.Z
}

func (c Coord3D) Cross(c1 Coord3D) Coord3D {
	return Coord3D{
		X: c.Y*c1.Z - c.Z*c1.Y,
		Y: c.Z*c1.X - c.X*c1.Z,
		Z: c.X*c1.Y - c.Y*c1.X,
	}
}

func (c Coord3D) Norm() float64 {
	return math.Sqrt(c.Dot(c))
}

func (c Coord3D) Dist(c1 Coord3D) float64 {
	return c.Sub(c1).Norm()
}

func (c Coord3D) Normalize() Coord3D {
	n := c.Norm()
	if n == 0 {
		return Coord3D{}
	}
	return c.Scale(1 / n)
}

func (c Coord3D) Min(c1 Coord3D) Coord3D {
	return Coord3D{X: math.Min(c.X, c1.X), Y: math.Min(c.Y, c1.Y), Z: math.Min(c.Z, c1.Z)}
}

func (c Coord3D) Max(c1 Coord3D) Coord3D {
	return Coord3D{X: math.Max(c.X, c1.X), Y: math.Max(c.Y, c1.Y), Z: math.Max(c.Z, c1.Z)}
}

// Mid returns the midpoint between c and c1.
func (c Coord3D) Mid(c1 Coord3D) Coord3D {
	return c.Add(c1).Scale(0.5)
}
