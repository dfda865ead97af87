// Package packer places a set of parameterized charts into a single
// atlas in [0,1]^2, following unixpickle/model3d's model2d geometry
// primitives (geom2) for the per-chart rotation/translation bookkeeping.
// The placement search itself has no equivalent anywhere in the
// retrieval pack (no repo there ships a 2D bin packer); it is new work
// grounded in the same value-typed,
// allocate-once-per-call style the rest of this module uses.
package packer

import (
	"github.com/uvatlas-go/uvatlas/geom2"
	"github.com/uvatlas-go/uvatlas/mesh"
)

// StandardSpaceRate is the empirical atlas fill target used to guess a
// starting pixel length before placement begins: at this fill ratio,
// roughly 75% of the atlas's pixel area is expected to end up covered
// by chart interiors once gutters are accounted for.
const StandardSpaceRate = 0.75

// ChartRotationNumber mirrors isochart.ChartRotationNumber: every chart
// is tried at 0, 90, 180 and 270 degrees before a placement is chosen.
const ChartRotationNumber = 4

// SearchStepCount sets the stride of the column-offset search per
// rotation/axis trial: offsets are sampled every maxOffset/SearchStepCount
// columns, rounded down (every column when that is below 1), so up to
// about twice SearchStepCount offsets are tried. A higher count finds a
// tighter placement at the cost of more work per chart.
const SearchStepCount = 64

// Options configures a packing run.
type Options struct {
	// Width and Height are the atlas's target pixel dimensions.
	Width, Height int

	// Gutter is the minimum pixel distance enforced between any two
	// placed chart interiors.
	Gutter float64

	// AspectRatio is the W/H ratio the final normalized atlas should
	// match; 0 defaults to Width/Height.
	AspectRatio float64
}

func (o Options) aspectRatio() float64 {
	if o.AspectRatio > 0 {
		return o.AspectRatio
	}
	if o.Height == 0 {
		return 1
	}
	return float64(o.Width) / float64(o.Height)
}

// PlacedChart records how one chart ended up positioned in the atlas:
// which rotation won its trial and the pixel-space transform applied to
// its original (u,v) layout to get there. The chart's own UV slice has
// already been overwritten with the final, normalized [0,1]^2
// coordinates by the time Pack returns; PlacedChart is bookkeeping for
// callers that want to report on the packing decision.
type PlacedChart struct {
	Chart        *mesh.Chart
	RotationDeg  int
	PixelOffset  geom2.Coord
	PixelExtentX float64
	PixelExtentY float64
}

// Atlas is the result of a packing run.
type Atlas struct {
	Charts []*PlacedChart

	// PixelWidth/PixelHeight are, after Pack, the skyline width
	// (Options.Width, or 1024 when unset) and the highest top the
	// placement search reported. Normalize replaces both with the
	// layout's normalized extents, each at most 1.
	PixelWidth, PixelHeight float64
}
