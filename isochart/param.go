package isochart

import (
	"fmt"

	"github.com/uvatlas-go/uvatlas/geom2"
	"github.com/uvatlas-go/uvatlas/mesh"
)

// toChartUV converts a slice of geom2.Coord (what the parameterizers'
// linear algebra naturally produces) into mesh.Coord2, the type
// mesh.Chart.UV is declared with so the mesh package stays independent
// of geom2.
func toChartUV(uv []geom2.Coord) []mesh.Coord2 {
	out := make([]mesh.Coord2, len(uv))
	for i, p := range uv {
		out[i] = mesh.Coord2{U: p.X, V: p.Y}
	}
	return out
}

// fromChartUV is toChartUV's inverse, used wherever a parameterizer
// wants to keep working in geom2.Coord (which has the vector algebra
// methods mesh.Coord2 deliberately omits).
func fromChartUV(uv []mesh.Coord2) []geom2.Coord {
	out := make([]geom2.Coord, len(uv))
	for i, p := range uv {
		out[i] = geom2.Coord{X: p.U, Y: p.V}
	}
	return out
}

// ParameterizeChart picks a flattening for a chart by trying, in
// order, the isomap (MDS projection, the default), conformal
// (cotangent harmonic) and barycentric (Floater shape-preserving)
// parameterizers, keeping the first one that doesn't fold any triangle
// over another - isomap needs no fixed boundary and tolerates any
// topology a chart's recursive split can produce, so it succeeds for
// nearly every chart; conformal and then barycentric only get a turn
// on the charts isomap's embedding folds. This mirrors
// StretchMinimizingParameterization's pattern (in unixpickle/model3d)
// of always starting from a valid embedding and only refining from
// there - here the "refinement" is trying progressively more
// constrained parameterizers instead of iterating one in place.
func ParameterizeChart(c *mesh.Chart, opts Options) error {
	if err := ParameterizeIsomap(c, opts); err == nil && !HasOverlap(c) {
		return postProcess(c, opts)
	}
	if err := ParameterizeConformal(c); err == nil && !HasOverlap(c) {
		return postProcess(c, opts)
	}
	if err := ParameterizeBarycentric(c); err != nil {
		return err
	}
	return postProcess(c, opts)
}

// postProcess runs the stretch-minimizing relaxation pass every
// successful parameterization gets, then enforces LimitFaceStretch if
// the caller asked for it. SignalMode doesn't gate whether relaxation
// runs at all - it only changes what chartSignalDistances feeds the
// embedding upstream - so a plain conformal or barycentric layout gets
// the same local cleanup a signal-weighted one does.
func postProcess(c *mesh.Chart, opts Options) error {
	OptimizeStretch(c, BoundaryRelaxationSeed)
	if opts.LimitFaceStretch && MaxFaceStretch(c) > opts.PerFaceStretchFloor {
		return fmt.Errorf("isochart: chart face stretch exceeds floor %.3f after relaxation", opts.PerFaceStretchFloor)
	}
	return nil
}

// HasOverlap reports whether any two faces of the chart's current UV
// layout fold over each other, approximated cheaply by checking that
// every face's signed UV area has the same sign: a conformal or
// shape-preserving map that hasn't inverted any triangle keeps every
// face consistently wound.
func HasOverlap(c *mesh.Chart) bool {
	sub := c.Mesh()
	if len(c.UV) == 0 {
		return true
	}
	sign := 0
	for fi := 0; fi < sub.NumFaces(); fi++ {
		f := sub.Faces[fi]
		a, b, d := c.UV[f.Vertices[0]], c.UV[f.Vertices[1]], c.UV[f.Vertices[2]]
		area := (b.U-a.U)*(d.V-a.V) - (d.U-a.U)*(b.V-a.V)
		if area == 0 {
			continue
		}
		s := 1
		if area < 0 {
			s = -1
		}
		if sign == 0 {
			sign = s
		} else if s != sign {
			return true
		}
	}
	return false
}
