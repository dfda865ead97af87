// Package geodesic implements the pluggable one-to-all geodesic-distance
// provider the chart partitioner drives once per landmark per partition
// pass: given a connectivity snapshot and a source vertex, produce a
// non-negative distance to every vertex, with unreachable vertices
// reported as +Inf.
package geodesic

import (
	"math"

	"github.com/uvatlas-go/uvatlas/mesh"
)

// Engine computes geodesic distances over a fixed mesh. Implementations
// must be pure: the same (mesh, source) input always produces the same
// output, with no shared mutable state between calls, so one Engine
// value can serve every landmark of a partition pass.
type Engine interface {
	// Distances returns, for every vertex id in order, the geodesic
	// distance from source. Unreachable vertices get math.Inf(1).
	Distances(m *mesh.Mesh, source mesh.VertexID) []float64
}

// Selector picks which Engine to run for a partition pass, mirroring
// the three geodesic-engine options exposed to callers (Default,
// GeodesicFast, GeodesicQuality).
type Selector int

const (
	// SelectorDefault auto-selects by face count: meshes under
	// LimitFaceNumUseNewGeoDist use the exact engine, larger ones the
	// approximate engine.
	SelectorDefault Selector = iota
	// SelectorFast always uses the approximate Dijkstra+ABC engine.
	SelectorFast
	// SelectorQuality always uses ExactEngine (iterated relaxation
	// sweeps; see exact.go).
	SelectorQuality
)

// LimitFaceNumUseNewGeoDist is the face-count threshold the Default
// selector uses to decide between the exact and approximate engines.
const LimitFaceNumUseNewGeoDist = 5000

// Select returns the Engine a partition pass should use for a mesh of
// the given face count, honoring sel.
func Select(sel Selector, faceCount int) Engine {
	switch sel {
	case SelectorQuality:
		return &ExactEngine{}
	case SelectorFast:
		return &ApproximateEngine{}
	default:
		if faceCount < LimitFaceNumUseNewGeoDist {
			return &ExactEngine{}
		}
		return &ApproximateEngine{}
	}
}

// SignalCombineWeight is the blend weight applied when an integrated
// metric tensor is supplied alongside plain geodesic distance.
const SignalCombineWeight = 0.30

// ZeroSignalEpsilon is the floor below which a signal's mean magnitude
// is treated as absent, falling back to plain geodesic distance.
const ZeroSignalEpsilon = 1e-12

// CombineWithSignal blends geodesic distances geo with IMT-weighted
// signal distances sig, following combined = (1-w)*geo +
// w*(geoAvg/sigAvg)*sig. If the signal's mean is at or below
// ZeroSignalEpsilon, the signal is ignored and geo is returned
// unchanged.
func CombineWithSignal(geo, sig []float64) []float64 {
	geoAvg := meanFinite(geo)
	sigAvg := meanFinite(sig)
	if sigAvg <= ZeroSignalEpsilon {
		return append([]float64(nil), geo...)
	}
	ratio := geoAvg / sigAvg
	out := make([]float64, len(geo))
	for i := range geo {
		if math.IsInf(geo[i], 1) {
			out[i] = math.Inf(1)
			continue
		}
		out[i] = (1-SignalCombineWeight)*geo[i] + SignalCombineWeight*ratio*sig[i]
	}
	return out
}

func meanFinite(xs []float64) float64 {
	var sum float64
	var n int
	for _, x := range xs {
		if math.IsInf(x, 0) || math.IsNaN(x) {
			continue
		}
		sum += x
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}
