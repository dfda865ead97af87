// Adapted from unixpickle/model3d's model2d/transform.template output, kept
// to the subset of transforms the atlas packer needs to align a chart to
// its principal axis and place it within the atlas (packer/pack.go).

package geom2

import "math"

// Transform is an invertible coordinate transformation.
type Transform interface {
	// Apply applies the transformation to c.
	Apply(c Coord) Coord

	// ApplyBounds gets a new bounding rectangle that is
	// guaranteed to bound the old bounding rectangle when
	// it is transformed.
	ApplyBounds(min, max Coord) (Coord, Coord)

	// Inverse gets an inverse transformation.
	Inverse() Transform
}

// Translate is a Transform that adds an offset to
// coordinates.
type Translate struct {
	Offset Coord
}

func (t *Translate) Apply(c Coord) Coord {
	return c.Add(t.Offset)
}

func (t *Translate) ApplyBounds(min, max Coord) (Coord, Coord) {
	return min.Add(t.Offset), max.Add(t.Offset)
}

func (t *Translate) Inverse() Transform {
	return &Translate{Offset: t.Offset.Scale(-1)}
}

// Scale is a transform that scales an object uniformly.
type Scale struct {
	Scale float64
}

func (s *Scale) Apply(c Coord) Coord {
	return c.Scale(s.Scale)
}

func (s *Scale) ApplyBounds(min, max Coord) (Coord, Coord) {
	return min.Scale(s.Scale), max.Scale(s.Scale)
}

func (s *Scale) Inverse() Transform {
	return &Scale{Scale: 1 / s.Scale}
}

// Rotation rotates coordinates by a fixed angle (radians)
// counter-clockwise around the origin.
type Rotation struct {
	Theta float64
}

func (r *Rotation) Apply(c Coord) Coord {
	return c.Rotate(r.Theta)
}

func (r *Rotation) ApplyBounds(min, max Coord) (Coord, Coord) {
	var newMin, newMax Coord
	for i, x := range []float64{min.X, max.X} {
		for j, y := range []float64{min.Y, max.Y} {
			c := XY(x, y).Rotate(r.Theta)
			if i == 0 && j == 0 {
				newMin, newMax = c, c
			} else {
				newMin = newMin.Min(c)
				newMax = newMax.Max(c)
			}
		}
	}
	return newMin, newMax
}

func (r *Rotation) Inverse() Transform {
	return &Rotation{Theta: -r.Theta}
}

// Matrix2Transform is a Transform that applies a matrix
// to coordinates.
type Matrix2Transform struct {
	Matrix *Matrix2
}

func (m *Matrix2Transform) Apply(c Coord) Coord {
	return m.Matrix.MulColumn(c)
}

func (m *Matrix2Transform) ApplyBounds(min, max Coord) (Coord, Coord) {
	var newMin, newMax Coord
	for i, x := range []float64{min.X, max.X} {
		for j, y := range []float64{min.Y, max.Y} {
			c := m.Matrix.MulColumn(XY(x, y))
			if i == 0 && j == 0 {
				newMin, newMax = c, c
			} else {
				newMin = newMin.Min(c)
				newMax = newMax.Max(c)
			}
		}
	}
	return newMin, newMax
}

func (m *Matrix2Transform) Inverse() Transform {
	return &Matrix2Transform{Matrix: m.Matrix.Inverse()}
}

// A JoinedTransform composes transformations from left to
// right.
type JoinedTransform []Transform

func (j JoinedTransform) Apply(c Coord) Coord {
	for _, t := range j {
		c = t.Apply(c)
	}
	return c
}

func (j JoinedTransform) ApplyBounds(min, max Coord) (Coord, Coord) {
	for _, t := range j {
		min, max = t.ApplyBounds(min, max)
	}
	return min, max
}

func (j JoinedTransform) Inverse() Transform {
	res := JoinedTransform{}
	for i := len(j) - 1; i >= 0; i-- {
		res = append(res, j[i].Inverse())
	}
	return res
}

// RotationDegrees returns the rotation by deg degrees, e.g. one of the
// four axis-aligned angles of the packer's rotation trials
// (CHART_ROTATION_NUMBER = 4): 0, 90, 180 or 270. The packer builds
// its trial Rotation values directly and does not call it.
func RotationDegrees(deg int) *Rotation {
	return &Rotation{Theta: float64(deg) * math.Pi / 180}
}
