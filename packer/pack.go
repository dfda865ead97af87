package packer

import (
	"fmt"
	"math"

	"github.com/unixpickle/essentials"

	"github.com/uvatlas-go/uvatlas/geom2"
	"github.com/uvatlas-go/uvatlas/mesh"
)

// chartLayout is the per-chart working state the placement search reads
// and writes: the chart's already rotated/scaled local (u,v) points
// plus the border polygon derived from them.
type chartLayout struct {
	chart   *mesh.Chart
	points  []geom2.Coord // pre-pass aligned + scaled, chart-local origin
	polygon []geom2.Coord // same space, outer border only

	minX, maxX, minY, maxY float64
}

func newChartLayout(c *mesh.Chart) *chartLayout {
	uv := chartUV(c)
	rot := alignPrincipalAxisToY(uv)
	for i := range uv {
		uv[i] = rot.Apply(uv[i])
	}
	scale := areaPreservingScale(c, uv)
	for i := range uv {
		uv[i] = uv[i].Scale(scale)
	}

	poly := chartBoundaryPolygon(c, uv)
	l := &chartLayout{chart: c, points: uv, polygon: poly}
	l.minX, l.maxX = poly[0].X, poly[0].X
	l.minY, l.maxY = poly[0].Y, poly[0].Y
	for _, p := range poly[1:] {
		l.minX = math.Min(l.minX, p.X)
		l.maxX = math.Max(l.maxX, p.X)
		l.minY = math.Min(l.minY, p.Y)
		l.maxY = math.Max(l.maxY, p.Y)
	}
	return l
}

func (l *chartLayout) width() float64  { return l.maxX - l.minX }
func (l *chartLayout) height() float64 { return l.maxY - l.minY }

// rotatedPolygon returns the chart's border polygon rotated by one of
// the ChartRotationNumber trial angles, re-based so its own bounding
// box starts at the origin.
func rotatedPolygon(poly []geom2.Coord, rotationIndex int) []geom2.Coord {
	theta := float64(rotationIndex) * math.Pi / 2
	rot := geom2.Rotation{Theta: theta}
	out := make([]geom2.Coord, len(poly))
	for i, p := range poly {
		out[i] = rot.Apply(p)
	}
	minX, minY := out[0].X, out[0].Y
	for _, p := range out[1:] {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
	}
	for i := range out {
		out[i] = out[i].Sub(geom2.XY(minX, minY))
	}
	return out
}

// skyline is the atlas's current occupied-height profile, one entry per
// pixel column, growing upward from the bottom border - the same
// column-profile representation buildColumnProfile produces for a
// single chart, reused here for the whole atlas so placing a new chart
// is just "does its border profile fit above the atlas skyline without
// overlap."
type skyline struct {
	cols     int
	pixelLen float64
	height   []float64
}

func newSkyline(widthPixels float64, pixelLen float64) *skyline {
	cols := int(math.Ceil(widthPixels/pixelLen)) + 1
	if cols < 1 {
		cols = 1
	}
	return &skyline{cols: cols, pixelLen: pixelLen, height: make([]float64, cols)}
}

// bestFit finds the lowest column offset at which profile can sit on
// top of the skyline without its bottom edge dipping below the
// existing terrain, searched across SearchStepCount candidate column
// offsets (sampled every maxOffset/SearchStepCount columns, rounded
// down, so up to about twice that many). It returns the chosen offset, the resulting top height, and
// whether a legal placement exists within the skyline's width.
func (s *skyline) bestFit(profile *columnProfile, gutterCols float64) (offset int, top float64, ok bool) {
	if profile.Cols > s.cols {
		return 0, 0, false
	}
	maxOffset := s.cols - profile.Cols
	step := 1
	if maxOffset > SearchStepCount {
		step = maxOffset / SearchStepCount
	}

	best := math.Inf(1)
	bestOffset := -1
	for o := 0; o <= maxOffset; o += step {
		needed := 0.0
		for c := 0; c < profile.Cols; c++ {
			rest := s.height[o+c] - profile.Bottom[c] + gutterCols
			if rest > needed {
				needed = rest
			}
		}
		candidateTop := needed + profile.TotalExtentY
		if candidateTop < best {
			best = candidateTop
			bestOffset = o
		}
	}
	if bestOffset < 0 {
		return 0, 0, false
	}
	return bestOffset, best, true
}

// place raises the skyline under profile placed at offset so its
// bottom edge rests at restHeight.
func (s *skyline) place(profile *columnProfile, offset int, restHeight float64) {
	for c := 0; c < profile.Cols; c++ {
		top := restHeight + profile.Top[c]
		if top > s.height[offset+c] {
			s.height[offset+c] = top
		}
	}
}

func (s *skyline) maxHeight() float64 {
	h := 0.0
	for _, v := range s.height {
		if v > h {
			h = v
		}
	}
	return h
}

// placementTrial is one (rotation, transpose) candidate for a chart.
type placementTrial struct {
	rotationIndex int
	axis          int // 0 = polygon as rotated, 1 = rotated polygon with X and Y swapped
	profile       *columnProfile
	polygon       []geom2.Coord
}

func candidateTrials(poly []geom2.Coord, pixelLen float64) []placementTrial {
	trials := make([]placementTrial, 0, ChartRotationNumber*2)
	for r := 0; r < ChartRotationNumber; r++ {
		rp := rotatedPolygon(poly, r)
		trials = append(trials, placementTrial{
			rotationIndex: r, axis: 0,
			profile: buildColumnProfile(rp, pixelLen), polygon: rp,
		})
		swapped := swapXY(rp)
		trials = append(trials, placementTrial{
			rotationIndex: r, axis: 1,
			profile: buildColumnProfile(swapped, pixelLen), polygon: swapped,
		})
	}
	return trials
}

// Pack places every chart's (u,v) layout into a shared pixel-space
// atlas and rewrites chart.UV in place with the final, normalized
// [0,1]^2 coordinates.
//
// The placement search itself is this module's own design: the
// C++ original's literal algorithm walks each chart's monotone
// top/bottom border polylines and slides them against the atlas's four
// facing edges looking for an interlocking fit. No repo in the
// example pack implements 2D bin packing, so this reduces that search
// to a rasterized column-profile "skyline" - the same kind of
// grid used by skyline and shelf bin-packing algorithms - tried at
// ChartRotationNumber rotations per chart, each also transposed, which
// gets most of the interlocking benefit of the literal polyline slide
// without its computational-geometry machinery. There is one skyline,
// growing upward from the bottom border; no chart is slid against the
// other three borders.
func Pack(charts []*mesh.Chart, opts Options) (*Atlas, error) {
	if len(charts) == 0 {
		return nil, fmt.Errorf("packer: no charts to pack")
	}

	layouts := make([]*chartLayout, len(charts))
	totalArea := 0.0
	for i, c := range charts {
		if len(c.UV) == 0 {
			return nil, fmt.Errorf("packer: chart %d has no parameterization", i)
		}
		l := newChartLayout(c)
		layouts[i] = l
		totalArea += polygonArea(l.polygon)
	}

	// Sort charts by bounding-box height descending: the tallest charts
	// anchor the skyline first, leaving smaller ones to fill notches.
	// Mirrors newParamQuadTree's essentials.VoodooSort(sortedAreas, ...,
	// sortedParams) call in unixpickle/model3d's parameterization.go: a
	// key slice (heights) sorted alongside the slice it orders (order).
	order := make([]int, len(layouts))
	heights := make([]float64, len(layouts))
	for i := range order {
		order[i] = i
		heights[i] = layouts[i].height()
	}
	essentials.VoodooSort(heights, func(i, j int) bool {
		return heights[i] > heights[j]
	}, order)

	width := float64(opts.Width)
	if width <= 0 {
		width = 1024
	}
	pixelLen := math.Sqrt(totalArea / (width * width * StandardSpaceRate))
	if pixelLen <= 0 {
		pixelLen = 1.0 / width
	}

	sky := newSkyline(width, pixelLen)
	gutterCols := opts.Gutter / pixelLen

	placed := make([]*PlacedChart, len(layouts))
	maxExtentY := 0.0

	for _, idx := range order {
		l := layouts[idx]
		trials := candidateTrials(l.polygon, pixelLen)

		bestTop := math.Inf(1)
		var bestOffset int
		var bestTrial placementTrial
		found := false
		for _, tr := range trials {
			offset, top, ok := sky.bestFit(tr.profile, gutterCols)
			if !ok {
				continue
			}
			if top < bestTop {
				bestTop, bestOffset, bestTrial, found = top, offset, tr, true
			}
		}
		if !found {
			return nil, fmt.Errorf("packer: chart %d does not fit in a %d-pixel-wide atlas", idx, opts.Width)
		}

		restHeight := bestTop - bestTrial.profile.TotalExtentY
		sky.place(bestTrial.profile, bestOffset, restHeight)

		pixelOffsetX := float64(bestOffset)*pixelLen - bestTrial.profile.MinX
		// The trial's points stay in the trial's own (possibly
		// transposed) space, so the offset is applied in that space too.
		pixelOffset := geom2.XY(pixelOffsetX, restHeight)

		writePlacedChart(l, bestTrial, pixelOffset, placed, idx)

		if bestTop > maxExtentY {
			maxExtentY = bestTop
		}
	}

	return &Atlas{
		Charts:      placed,
		PixelWidth:  width,
		PixelHeight: maxExtentY,
	}, nil
}

func writePlacedChart(l *chartLayout, tr placementTrial, pixelOffset geom2.Coord, placed []*PlacedChart, idx int) {
	rot := geom2.Rotation{Theta: float64(tr.rotationIndex) * math.Pi / 2}
	minX, minY := math.Inf(1), math.Inf(1)
	// recompute the rotated-then-possibly-swapped point cloud so every
	// chart vertex (not just its border) gets the same transform.
	pts := make([]geom2.Coord, len(l.points))
	for i, p := range l.points {
		rp := rot.Apply(p)
		if tr.axis == 1 {
			rp = geom2.XY(rp.Y, rp.X)
		}
		pts[i] = rp
	}
	// tr.polygon is already re-based to the origin; take the minimum of
	// the border in the same un-based space as pts instead.
	for _, p := range l.polygon {
		rp := rot.Apply(p)
		if tr.axis == 1 {
			rp = geom2.XY(rp.Y, rp.X)
		}
		minX = math.Min(minX, rp.X)
		minY = math.Min(minY, rp.Y)
	}
	for i := range pts {
		pts[i] = pts[i].Sub(geom2.XY(minX, minY)).Add(pixelOffset)
	}
	writeChartUV(l.chart, pts)

	extentX := tr.profile.Cols
	placed[idx] = &PlacedChart{
		Chart:        l.chart,
		RotationDeg:  tr.rotationIndex * 90,
		PixelOffset:  pixelOffset,
		PixelExtentX: float64(extentX) * tr.profile.PixelLen,
		PixelExtentY: tr.profile.TotalExtentY,
	}
}

func polygonArea(poly []geom2.Coord) float64 {
	area := 0.0
	n := len(poly)
	for i := 0; i < n; i++ {
		a, b := poly[i], poly[(i+1)%n]
		area += a.Cross(b)
	}
	return math.Abs(area) / 2
}

func minOf(v []float64) float64 {
	m := v[0]
	for _, x := range v[1:] {
		if x < m {
			m = x
		}
	}
	return m
}
