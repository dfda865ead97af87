package packer

import (
	"math"
	"sort"

	"github.com/uvatlas-go/uvatlas/geom2"
	"github.com/uvatlas-go/uvatlas/mesh"
)

// chartUV converts a chart's local mesh.Coord2 layout into geom2.Coord,
// the type every packer computation works in. mesh.Chart.UV is kept as
// mesh.Coord2 so the mesh package stays independent of geom2, the same
// boundary isochart.toChartUV/fromChartUV cross at the parameterizer
// layer.
func chartUV(c *mesh.Chart) []geom2.Coord {
	src := c.UV
	out := make([]geom2.Coord, len(src))
	for i, p := range src {
		out[i] = geom2.Coord{X: p.U, Y: p.V}
	}
	return out
}

func writeChartUV(c *mesh.Chart, uv []geom2.Coord) {
	for i, p := range uv {
		c.UV[i] = mesh.Coord2{U: p.X, V: p.Y}
	}
}

// chartBoundaryPolygon returns the chart's outer (u,v) boundary as a
// simple polygon. A chart with a real boundary loop (the common case)
// uses it directly; a closed chart parameterized through
// isochart's virtual-boundary trick has no boundary loop at all, so its
// convex hull stands in, which is always a valid (if looser) outer
// envelope for packing purposes.
func chartBoundaryPolygon(c *mesh.Chart, uv []geom2.Coord) []geom2.Coord {
	sub := c.Mesh()
	loops := sub.BoundaryLoops()
	if len(loops) > 0 {
		longest := loops[0]
		for _, loop := range loops[1:] {
			if len(loop) > len(longest) {
				longest = loop
			}
		}
		poly := make([]geom2.Coord, len(longest))
		for i, v := range longest {
			poly[i] = uv[v]
		}
		return poly
	}
	return convexHull(uv)
}

// convexHull computes the convex hull of a point set using the
// Andrew monotone chain algorithm, returned counter-clockwise with no
// repeated closing point.
func convexHull(points []geom2.Coord) []geom2.Coord {
	pts := append([]geom2.Coord(nil), points...)
	sort.Slice(pts, func(i, j int) bool {
		if pts[i].X != pts[j].X {
			return pts[i].X < pts[j].X
		}
		return pts[i].Y < pts[j].Y
	})
	cross := func(o, a, b geom2.Coord) float64 {
		return a.Sub(o).Cross(b.Sub(o))
	}
	n := len(pts)
	if n < 3 {
		return pts
	}
	hull := make([]geom2.Coord, 0, 2*n)
	for _, p := range pts {
		for len(hull) >= 2 && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	lower := len(hull) + 1
	for i := n - 2; i >= 0; i-- {
		p := pts[i]
		for len(hull) >= lower && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	return hull[:len(hull)-1]
}

// principalAxisAngle returns the angle (radians, from the X axis) of
// the direction of greatest variance in points, via the closed-form
// rotation that diagonalizes a 2x2 covariance matrix - the standard
// "half-angle of atan2(2*Sxy, Sxx-Syy)" PCA identity, which avoids
// needing an eigenvector solver for what is always a 2x2 problem.
func principalAxisAngle(points []geom2.Coord) float64 {
	var mean geom2.Coord
	for _, p := range points {
		mean = mean.Add(p)
	}
	mean = mean.Scale(1 / float64(len(points)))

	var sxx, syy, sxy float64
	for _, p := range points {
		d := p.Sub(mean)
		sxx += d.X * d.X
		syy += d.Y * d.Y
		sxy += d.X * d.Y
	}
	if sxx == 0 && syy == 0 && sxy == 0 {
		return 0
	}
	return 0.5 * math.Atan2(2*sxy, sxx-syy)
}

// alignPrincipalAxisToY returns the rotation that takes a chart's
// longest principal axis to the Y axis, the packer's pre-pass step 1.
func alignPrincipalAxisToY(points []geom2.Coord) *geom2.Rotation {
	theta := principalAxisAngle(points)
	return &geom2.Rotation{Theta: math.Pi/2 - theta}
}

// areaPreservingScale computes the uniform scale factor that makes a
// chart's flattened (u,v) area match its original 3D surface area, the
// packer's pre-pass step 2.
func areaPreservingScale(c *mesh.Chart, uv []geom2.Coord) float64 {
	sub := c.Mesh()
	var area3D, areaUV float64
	for fi := 0; fi < sub.NumFaces(); fi++ {
		f := sub.Faces[fi]
		area3D += sub.FaceArea(mesh.FaceID(fi))
		tri := geom2.Triangle{uv[f.Vertices[0]], uv[f.Vertices[1]], uv[f.Vertices[2]]}
		areaUV += math.Abs(tri.Area())
	}
	if areaUV < 1e-14 {
		return 1
	}
	return math.Sqrt(area3D / areaUV)
}

// columnProfile is a per-pixel-column sampling of a polygon's vertical
// extent, the packer's stand-in for the literal top/bottom monotone
// border polylines: Top[i]/Bottom[i] are the polygon's max/min Y within
// pixel column i, relative to the polygon's own minimum X.
type columnProfile struct {
	Cols         int
	PixelLen     float64
	Top, Bottom  []float64
	MinX         float64
	TotalExtentY float64
}

// buildColumnProfile rasterizes polygon's vertical extent into columns
// of width pixelLen. Every polygon edge contributes to every column its
// X range overlaps, via linear interpolation of Y along the edge.
func buildColumnProfile(polygon []geom2.Coord, pixelLen float64) *columnProfile {
	minX, maxX := polygon[0].X, polygon[0].X
	for _, p := range polygon[1:] {
		minX = math.Min(minX, p.X)
		maxX = math.Max(maxX, p.X)
	}
	cols := int(math.Ceil((maxX-minX)/pixelLen)) + 1
	if cols < 1 {
		cols = 1
	}
	top := make([]float64, cols)
	bottom := make([]float64, cols)
	for i := range top {
		top[i] = math.Inf(-1)
		bottom[i] = math.Inf(1)
	}

	n := len(polygon)
	for i := 0; i < n; i++ {
		a, b := polygon[i], polygon[(i+1)%n]
		ax, bx := a.X-minX, b.X-minX
		lo, hi := ax, bx
		ay, by := a.Y, b.Y
		if lo > hi {
			lo, hi = hi, lo
			ay, by = by, ay
		}
		startCol := int(math.Floor(lo / pixelLen))
		endCol := int(math.Floor(hi / pixelLen))
		if startCol < 0 {
			startCol = 0
		}
		if endCol >= cols {
			endCol = cols - 1
		}
		span := hi - lo
		for c := startCol; c <= endCol; c++ {
			cx := (float64(c) + 0.5) * pixelLen
			var y float64
			if span < 1e-12 {
				y = ay
			} else {
				t := (cx - lo) / span
				t = math.Max(0, math.Min(1, t))
				y = ay + (by-ay)*t
			}
			if y > top[c] {
				top[c] = y
			}
			if y < bottom[c] {
				bottom[c] = y
			}
		}
	}

	maxExtent := math.Inf(-1)
	for c := 0; c < cols; c++ {
		if math.IsInf(top[c], -1) {
			top[c], bottom[c] = 0, 0
			continue
		}
		if top[c]-bottom[c] > maxExtent {
			maxExtent = top[c] - bottom[c]
		}
	}
	if math.IsInf(maxExtent, -1) {
		maxExtent = 0
	}

	return &columnProfile{
		Cols: cols, PixelLen: pixelLen,
		Top: top, Bottom: bottom,
		MinX: minX, TotalExtentY: maxExtent,
	}
}

// mirrorPolygonX returns a copy of polygon reflected across the vertical
// line through the middle of its bounding box. Pack's trials do not
// call it.
func mirrorPolygonX(polygon []geom2.Coord) []geom2.Coord {
	minX, maxX := polygon[0].X, polygon[0].X
	for _, p := range polygon[1:] {
		minX = math.Min(minX, p.X)
		maxX = math.Max(maxX, p.X)
	}
	out := make([]geom2.Coord, len(polygon))
	for i, p := range polygon {
		out[i] = geom2.Coord{X: minX + maxX - p.X, Y: p.Y}
	}
	return out
}

// swapXY transposes a polygon's axes, giving each rotation trial a
// second, transposed candidate for the same grow-upward skyline scan.
func swapXY(polygon []geom2.Coord) []geom2.Coord {
	out := make([]geom2.Coord, len(polygon))
	for i, p := range polygon {
		out[i] = geom2.Coord{X: p.Y, Y: p.X}
	}
	return out
}
