package geom2

import "math"

// Segment is a 2D line segment between two endpoints.
type Segment [2]Coord

// Length returns the Euclidean length of the segment.
func (s Segment) Length() float64 {
	return s[0].Dist(s[1])
}

// Dist computes the distance from p to the closest point
// on the segment.
func (s Segment) Dist(p Coord) float64 {
	dir := s[1].Sub(s[0])
	length2 := dir.Dot(dir)
	if length2 == 0 {
		return p.Dist(s[0])
	}
	t := p.Sub(s[0]).Dot(dir) / length2
	t = math.Max(0, math.Min(1, t))
	closest := s[0].Add(dir.Scale(t))
	return p.Dist(closest)
}

// Intersects reports whether two open segments cross each
// other, not counting shared endpoints.
func (s Segment) Intersects(other Segment) bool {
	d1 := orient(other[0], other[1], s[0])
	d2 := orient(other[0], other[1], s[1])
	d3 := orient(s[0], s[1], other[0])
	d4 := orient(s[0], s[1], other[1])
	return ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0))
}

func orient(a, b, c Coord) float64 {
	return b.Sub(a).Cross(c.Sub(a))
}
