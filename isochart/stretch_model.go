package isochart

import (
	"math"

	"github.com/uvatlas-go/uvatlas/geom2"
	"github.com/uvatlas-go/uvatlas/mesh"
)

// TriangleStretch computes the L2 (RMS) signal stretch of a single
// triangle mapped from its 3D shape tri to its parameter-space image
// uv, following the standard Sander/Sorkine "signal-stretch" metric:
// the singular values of the map's Jacobian, combined as
// sqrt((σ1² + σ2²)/2). A conformal, area-preserving map scores 1; any
// stretching or compression raises the score above 1.
func TriangleStretch(tri [3]mesh.Coord3D, uv [3]geom2.Coord) float64 {
	sigma1, sigma2 := jacobianSingularValues(tri, uv)
	return math.Sqrt((sigma1*sigma1 + sigma2*sigma2) / 2)
}

// jacobianSingularValues computes the singular values of the linear
// map from the triangle's local 2D (s,t) parameterization (its own
// plane) to uv space, following Sander et al.'s "Texture Mapping
// Progressive Meshes".
func jacobianSingularValues(tri [3]mesh.Coord3D, uv [3]geom2.Coord) (float64, float64) {
	q1, q2 := tri[1].Sub(tri[0]), tri[2].Sub(tri[0])
	normal := q1.Cross(q2)
	area2 := normal.Norm()
	if area2 < 1e-14 {
		return 0, 0
	}

	// Build an orthonormal in-plane basis (e1, e2) for the triangle.
	e1 := q1.Normalize()
	e2 := normal.Cross(e1).Normalize()

	s := [3]float64{0, q1.Dot(e1), q2.Dot(e1)}
	t := [3]float64{0, q1.Dot(e2), q2.Dot(e2)}

	area := area2 / 2
	ssD := s[1]*t[2] - s[2]*t[1]
	if math.Abs(ssD) < 1e-14 {
		return 0, 0
	}

	p1, p2, p3 := uv[0], uv[1], uv[2]
	su := (t[2]*(p1.X) + (t[0]-t[2])*(p2.X) + (t[1]-t[0])*(p3.X)) / ssD
	sv := (t[2]*(p1.Y) + (t[0]-t[2])*(p2.Y) + (t[1]-t[0])*(p3.Y)) / ssD
	tu := (s[1]*(p3.X) - s[2]*(p2.X) + (s[2]-s[1])*(p1.X)) / ssD
	tv := (s[1]*(p3.Y) - s[2]*(p2.Y) + (s[2]-s[1])*(p1.Y)) / ssD
	_ = area

	a, b, c, d := su, tu, sv, tv
	e := (a*a + c*c)
	f := a*b + c*d
	g := b*b + d*d
	trace := e + g
	det := e*g - f*f
	disc := math.Max(0, trace*trace-4*det)
	sq := math.Sqrt(disc)
	sigma1Sq := (trace + sq) / 2
	sigma2Sq := math.Max(0, (trace-sq)/2)
	return math.Sqrt(math.Max(0, sigma1Sq)), math.Sqrt(sigma2Sq)
}

// ChartStretch computes the L2 squared average stretch across an
// entire chart's current UVs (chart.UV, indexed by local vertex id),
// area-weighted by each face's 3D area so large faces dominate the
// score the same way the partitioner's stopping rule expects.
func ChartStretch(c *mesh.Chart) float64 {
	sub := c.Mesh()
	var totalArea, weighted float64
	for fi := 0; fi < sub.NumFaces(); fi++ {
		f := sub.Faces[fi]
		tri3D := sub.FaceVertices(mesh.FaceID(fi))
		uv := [3]geom2.Coord{
			{X: c.UV[f.Vertices[0]].U, Y: c.UV[f.Vertices[0]].V},
			{X: c.UV[f.Vertices[1]].U, Y: c.UV[f.Vertices[1]].V},
			{X: c.UV[f.Vertices[2]].U, Y: c.UV[f.Vertices[2]].V},
		}
		area := sub.FaceArea(mesh.FaceID(fi))
		stretch := TriangleStretch(tri3D, uv)
		totalArea += area
		weighted += area * stretch * stretch
	}
	if totalArea == 0 {
		return 0
	}
	return weighted / totalArea
}

// MaxFaceStretch returns the largest single-face stretch in the
// chart's current UVs, used by the LimitFaceStretch option.
func MaxFaceStretch(c *mesh.Chart) float64 {
	sub := c.Mesh()
	max := 0.0
	for fi := 0; fi < sub.NumFaces(); fi++ {
		f := sub.Faces[fi]
		tri3D := sub.FaceVertices(mesh.FaceID(fi))
		uv := [3]geom2.Coord{
			{X: c.UV[f.Vertices[0]].U, Y: c.UV[f.Vertices[0]].V},
			{X: c.UV[f.Vertices[1]].U, Y: c.UV[f.Vertices[1]].V},
			{X: c.UV[f.Vertices[2]].U, Y: c.UV[f.Vertices[2]].V},
		}
		s := TriangleStretch(tri3D, uv)
		if s > max {
			max = s
		}
	}
	return max
}
