// Package isochart implements the iso-metric, stretch-driven chart
// partitioner: landmark selection and MDS embedding over geodesic
// distance, recursive representative-landmark partitioning with
// graph-cut boundary optimization, three parameterizers with an
// overlap-check fallthrough, a stretch-minimizing local relaxation
// pass, and a small-chart merger.
package isochart

import "github.com/uvatlas-go/uvatlas/geodesic"

// MinLandmarkNumber is the configurable floor on how many landmarks a
// chart must have, regardless of its size.
const MinLandmarkNumber = 10

// ChartRotationNumber is the number of fixed-angle rotation trials the
// packer tries per chart (0, 90, 180, 270 degrees);
// packer.ChartRotationNumber carries the same value.
const ChartRotationNumber = 4

// BoundaryRelaxationSeed is the fixed random seed used for randomized
// trial positions during boundary/stretch relaxation, chosen so a
// partition run is reproducible given the same input.
const BoundaryRelaxationSeed = 2

// DihedralWeight (α in the face-split cost) is the weight of embedding
// stretch distortion against dihedral angle. No code in this package
// reads it: RefineFaceLabels' edge capacities come from the dihedral
// angle alone (see dihedralCutWeight).
const DihedralWeight = 0.35

// SignalCombineWeight mirrors geodesic.SignalCombineWeight; kept as a
// separate named constant here since it also governs how signal mode
// blends per-face stretch, not just geodesic distance.
const SignalCombineWeight = geodesic.SignalCombineWeight

// Options configures a partition/parameterize/merge run.
type Options struct {
	// MaxStretch is the L2 squared average stretch target a chart must
	// reach before partitioning stops.
	MaxStretch float64

	// MaxChartNumber caps how many leaf charts a partition run may
	// produce; 0 means unlimited.
	MaxChartNumber int

	// MaxSubchartCount is a bound on non-manifold fix-up iterations per
	// partition attempt. No partition step reads it: splitChart runs no
	// non-manifold fix-up pass, and a rejected split marks the chart
	// non-splittable directly.
	MaxSubchartCount int

	// MinChartFaceCount stops recursion once a candidate chart would
	// fall below this many faces, to prevent degenerate slivers.
	MinChartFaceCount int

	// LimitMergeStretch, when true, rejects a chart merge that would
	// push combined stretch above MaxStretch.
	LimitMergeStretch bool

	// LimitFaceStretch, when true, rejects a parameterization where any
	// single face's stretch exceeds PerFaceStretchFloor.
	LimitFaceStretch bool

	// PerFaceStretchFloor is the per-face ceiling LimitFaceStretch
	// checks against.
	PerFaceStretchFloor float64

	// GeodesicSelector picks which geodesic engine partitioning uses.
	GeodesicSelector geodesic.Selector

	// SignalMode blends each vertex's IMT magnitude into the landmark
	// embedding's geodesic distances (see chartSignalDistances).
	// ChartStretch and the other stretch measures do not read the IMT.
	SignalMode bool

	// Verbose carries the caller's verbose flag. No code in this package
	// reads it; logging happens in the uvatlas package.
	Verbose bool
}

// DefaultOptions returns the baseline tuning used when a caller
// supplies no overrides.
func DefaultOptions() Options {
	return Options{
		MaxStretch:          0.5,
		MaxChartNumber:      0,
		MaxSubchartCount:    32,
		MinChartFaceCount:   4,
		LimitMergeStretch:   true,
		LimitFaceStretch:    false,
		PerFaceStretchFloor: 4.0,
		GeodesicSelector:    geodesic.SelectorDefault,
	}
}
