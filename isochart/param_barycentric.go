package isochart

import (
	"fmt"

	"github.com/uvatlas-go/uvatlas/geom2"
	"github.com/uvatlas-go/uvatlas/mesh"
	"github.com/uvatlas-go/uvatlas/numerical"
)

// Floater97DefaultMaxIters and Floater97DefaultMSETol mirror
// unixpickle/model3d's constants of the same name, the stopping
// criteria for the default sparse solver.
const (
	Floater97DefaultMaxIters = 5000
	Floater97DefaultMSETol   = 1e-16
)

// BarycentricSolver returns the default solver for the Floater97 linear
// system: BiCGSTAB, since the shape-preserving weight matrix is
// generally asymmetric.
func BarycentricSolver() numerical.LargeLinearSolver {
	return &numerical.BiCGSTABSolver{
		MaxIters:     Floater97DefaultMaxIters,
		MSETolerance: Floater97DefaultMSETol,
	}
}

// ParameterizeBarycentric solves Floater's shape-preserving barycentric
// parameterization for a chart, fixing its boundary loop (or, for a
// closed chart, a stand-in single-face boundary - see fixedBoundary)
// to the unit circle and solving for every other vertex as a convex
// combination of its neighbors. Writes the result into chart.UV.
// ParameterizeChart falls back to this as the last resort after isomap
// and conformal, since a fixed convex boundary makes the resulting
// linear system's solution essentially guaranteed to be non-folding.
func ParameterizeBarycentric(c *mesh.Chart) error {
	sub := c.Mesh()
	n := sub.NumVertices()
	boundary := fixedBoundary(sub)
	if len(boundary) == 0 {
		return fmt.Errorf("isochart: chart has no vertices to fix a boundary on")
	}
	weights, rings := shapePreservingWeights(sub, boundary)

	nonBoundaryIndex := map[mesh.VertexID]int{}
	var nonBoundary []mesh.VertexID
	for v := 0; v < n; v++ {
		vid := mesh.VertexID(v)
		if _, ok := boundary[vid]; ok {
			continue
		}
		nonBoundaryIndex[vid] = len(nonBoundary)
		nonBoundary = append(nonBoundary, vid)
	}

	matrix := numerical.NewSparseMatrix(len(nonBoundary))
	bias := make([]numerical.Vec2, len(nonBoundary))
	for i, center := range nonBoundary {
		matrix.Set(i, i, -1)
		for _, neighbor := range rings[center] {
			w := weights[[2]mesh.VertexID{center, neighbor}]
			if j, ok := nonBoundaryIndex[neighbor]; ok {
				matrix.Add(i, j, w)
			} else if uv, ok := boundary[neighbor]; ok {
				bias[i] = bias[i].Add(numerical.Vec2(uv.Scale(-w).Array()))
			}
		}
	}

	solver := BarycentricSolver()
	solution := make([]numerical.Vec2, len(bias))
	for axis := 0; axis < 2; axis++ {
		b := make([]float64, len(bias))
		for j, v := range bias {
			b[j] = v[axis]
		}
		for j, x := range solver.SolveLinearSystem(matrix.Apply, b, nil) {
			solution[j][axis] = x
		}
	}

	uv := make([]geom2.Coord, n)
	for v, p := range boundary {
		uv[v] = p
	}
	for i, v := range nonBoundary {
		uv[v] = geom2.NewCoordArray(solution[i])
	}
	c.UV = toChartUV(uv)
	return nil
}
