package uvatlas

import (
	"log"

	"github.com/uvatlas-go/uvatlas/geodesic"
	"github.com/uvatlas-go/uvatlas/mesh"
)

// Flags bundles the boolean knobs CreateAtlas exposes, mirroring the
// option-flag style of unixpickle/model3d's own
// BuildAutomaticUVMap(mesh, resolution, verbose bool) signature but
// grouped into one struct since there are more of them here.
type Flags struct {
	// GeodesicFast forces the approximate (Dijkstra + ABC correction)
	// geodesic engine regardless of mesh size. Mutually exclusive with
	// GeodesicQuality; if both are set GeodesicQuality wins.
	GeodesicFast bool

	// GeodesicQuality forces the exact (iterated relaxation) geodesic
	// engine regardless of mesh size.
	GeodesicQuality bool

	// LimitMergeStretch rejects a small-chart merge that would push
	// combined stretch above MaxStretch, keeping the extra chart
	// instead. See isochart.Options.LimitMergeStretch.
	LimitMergeStretch bool

	// LimitFaceStretch rejects a parameterization where any single
	// face's stretch exceeds PerFaceStretchFloor. See
	// isochart.Options.LimitFaceStretch.
	LimitFaceStretch bool

	// Verbose logs per-stage progress through Logger, the way the
	// teacher's verbose bool gates its own log.Printf calls.
	Verbose bool

	// SignalMode makes the partitioner bias its embedding distances by
	// each vertex's IMT (see isochart.Options.SignalMode); the stretch
	// measures do not use the IMT. It is set automatically when CreateAtlasOptions.FaceIMT is non-nil, but
	// exposed here too for callers that want to force it off.
	SignalMode bool
}

// geodesicSelector resolves Flags' two mutually-exclusive engine-forcing
// bits into the single geodesic.Selector isochart.Options expects.
func (f Flags) geodesicSelector() geodesic.Selector {
	switch {
	case f.GeodesicQuality:
		return geodesic.SelectorQuality
	case f.GeodesicFast:
		return geodesic.SelectorFast
	default:
		return geodesic.SelectorDefault
	}
}

// Callback reports CreateAtlas's progress as a fraction in [0,1]. A
// non-OK return aborts the run with a Canceled error; any non-OK value
// other than Canceled is treated the same way, since Canceled is the
// only abort reason a caller can signal through this channel.
type Callback func(percentComplete float64) Status

// CreateAtlasOptions is the full input to CreateAtlas: the mesh plus
// every optional hint the pipeline can use, and the tuning/behavior
// knobs that used to be scattered across isochart.Options and
// packer.Options before this package unified them behind one surface.
type CreateAtlasOptions struct {
	// Positions is the flat vertex buffer; Indices is zero-based
	// triangle indices into it. Both are required.
	Positions []mesh.Coord3D
	Indices   [][3]int

	// NonSplittableEdges optionally marks mesh edges (by vertex index
	// pair) the caller forbids cutting - the "false-edge adjacency" /
	// per-edge splittable flag. Nil means every edge may be cut.
	NonSplittableEdges [][2]int

	// FaceIMT optionally supplies a per-face integrated metric tensor
	// (e.g. derived from a normal map). It is averaged onto vertices and
	// biases the partitioner's embedding distances; stretch is measured
	// as plain Euclidean stretch whether or not it is set. When set,
	// Flags.SignalMode is forced on regardless of the caller's setting.
	FaceIMT []mesh.IMT

	// MaxChartNumber caps the number of charts the partitioner may
	// produce; 0 means unlimited.
	MaxChartNumber int

	// MaxStretch is the per-chart average-stretch target the
	// partitioner stops splitting at.
	MaxStretch float64

	// PerFaceStretchFloor is the per-face stretch ceiling
	// Flags.LimitFaceStretch checks against; 0 uses isochart's default.
	PerFaceStretchFloor float64

	// Width, Height are the output atlas's target pixel dimensions.
	Width, Height int

	// Gutter is the minimum pixel distance enforced between placed
	// chart interiors.
	Gutter float64

	// Flags carries the boolean behavior knobs described above.
	Flags Flags

	// Callback, if non-nil, is polled every CallbackFrequency connected
	// components, and once after packing, with the run's fractional
	// progress.
	Callback Callback

	// CallbackFrequency bounds how often Callback is invoked, in units
	// of "one mesh component processed", with packing counted as one
	// more step; 0 defaults to 1 (call on every step).
	CallbackFrequency int

	// Logger receives verbose progress lines when Flags.Verbose is set.
	// unixpickle/model3d logs its own partitioning progress straight
	// through the standard library's package-level log.Printf, gated by
	// a verbose bool parameter; CreateAtlas keeps the same verbose-bool
	// gate but takes an injectable *log.Logger instead of writing to
	// the global logger, so concurrent callers don't interleave. A nil
	// Logger with Verbose set is a no-op, not a panic.
	Logger *log.Logger
}

func (o CreateAtlasOptions) callbackFrequency() int {
	if o.CallbackFrequency <= 0 {
		return 1
	}
	return o.CallbackFrequency
}
