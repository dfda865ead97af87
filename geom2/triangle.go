package geom2

// Triangle is three coordinates in counter-clockwise order.
type Triangle [3]Coord

// Area returns the signed area of the triangle. It is
// positive when the vertices wind counter-clockwise, which
// the stretch model (isochart.TriangleStretch) and the
// overlap check (isochart parameterizers) both rely on to
// detect folded triangles.
func (t Triangle) Area() float64 {
	return t[1].Sub(t[0]).Cross(t[2].Sub(t[0])) / 2
}

// Barycentric computes the barycentric coordinates of c
// with respect to the triangle.
func (t Triangle) Barycentric(c Coord) [3]float64 {
	total := t.Area()
	if total == 0 {
		return [3]float64{1.0 / 3, 1.0 / 3, 1.0 / 3}
	}
	a := Triangle{c, t[1], t[2]}.Area() / total
	b := Triangle{t[0], c, t[2]}.Area() / total
	return [3]float64{a, b, 1 - a - b}
}

// AtBarycentric evaluates a point at the given barycentric
// coordinates.
func (t Triangle) AtBarycentric(bary [3]float64) Coord {
	return t[0].Scale(bary[0]).Add(t[1].Scale(bary[1])).Add(t[2].Scale(bary[2]))
}

// Bounds returns the axis-aligned bounding box.
func (t Triangle) Bounds() *Rect {
	min, max := t[0], t[0]
	for _, c := range t[1:] {
		min = min.Min(c)
		max = max.Max(c)
	}
	return NewRect(min, max)
}
