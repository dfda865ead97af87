package isochart

import (
	"math"

	"github.com/uvatlas-go/uvatlas/geom2"
	"github.com/uvatlas-go/uvatlas/mesh"
	"github.com/uvatlas-go/uvatlas/numerical"
)

// CotangentWeightFloor clamps a cotangent weight away from zero or
// negative values (which an obtuse triangle produces), keeping the
// discrete Laplacian positive-definite enough for ConjGradSolver to
// converge. This is the standard fix used wherever cotangent weights
// are solved rather than merely evaluated.
const CotangentWeightFloor = 1e-6

// ParameterizeConformal builds a discrete conformal (harmonic,
// cotangent-weighted) parameterization of a chart, pinning the two
// farthest-apart vertices instead of fixing the whole boundary loop.
// This is a simplification of full least-squares conformal mapping
// (Lévy et al.): a harmonic map under a two-point Dirichlet condition
// is the same equation LSCM reduces to once its boundary is free,
// without needing the complex-valued gradient assembly LSCM's
// derivation otherwise requires. Unlike ParameterizeBarycentric, it
// does not require (or respect) a fixed convex boundary shape, so it
// tends to recover a visually better layout for charts whose natural
// boundary isn't close to convex.
func ParameterizeConformal(c *mesh.Chart) error {
	sub := c.Mesh()
	n := sub.NumVertices()
	if n < 3 {
		return identityProjection(c)
	}

	weights := cotangentWeights(sub)
	p0, p1 := farthestVertexPair(sub)

	pinned := map[mesh.VertexID]geom2.Coord{
		p0: {X: 0, Y: 0},
		p1: {X: sub.Vertices[p0].Position.Dist(sub.Vertices[p1].Position), Y: 0},
	}

	freeIndex := map[mesh.VertexID]int{}
	var free []mesh.VertexID
	for v := 0; v < n; v++ {
		vid := mesh.VertexID(v)
		if _, ok := pinned[vid]; ok {
			continue
		}
		freeIndex[vid] = len(free)
		free = append(free, vid)
	}

	matrix := numerical.NewSparseMatrix(len(free))
	biasX := make([]float64, len(free))
	biasY := make([]float64, len(free))
	for i, v := range free {
		var diag float64
		for neighbor, w := range weights[v] {
			diag += w
			if j, ok := freeIndex[neighbor]; ok {
				matrix.Add(i, j, -w)
			} else if p, ok := pinned[neighbor]; ok {
				biasX[i] += w * p.X
				biasY[i] += w * p.Y
			}
		}
		matrix.Set(i, i, diag)
	}

	solver := &numerical.ConjGradSolver{MaxIters: Floater97DefaultMaxIters, MSETolerance: Floater97DefaultMSETol}
	ux := solver.SolveLinearSystem(matrix.Apply, biasX, nil)
	uy := solver.SolveLinearSystem(matrix.Apply, biasY, nil)

	uv := make([]geom2.Coord, n)
	for v, p := range pinned {
		uv[v] = p
	}
	for i, v := range free {
		uv[v] = geom2.Coord{X: ux[i], Y: uy[i]}
	}
	c.UV = toChartUV(uv)
	return nil
}

// cotangentWeights accumulates the discrete cotangent Laplacian
// weight of every edge, 0.5*(cot(alpha)+cot(beta)) for an interior
// edge shared by two triangles with opposite angles alpha and beta, or
// just 0.5*cot(alpha) along a boundary edge with a single incident
// triangle.
func cotangentWeights(sub *mesh.Mesh) map[mesh.VertexID]map[mesh.VertexID]float64 {
	weights := make(map[mesh.VertexID]map[mesh.VertexID]float64)
	add := func(a, b mesh.VertexID, w float64) {
		if weights[a] == nil {
			weights[a] = map[mesh.VertexID]float64{}
		}
		weights[a][b] += w
		if weights[b] == nil {
			weights[b] = map[mesh.VertexID]float64{}
		}
		weights[b][a] += w
	}
	for _, f := range sub.Faces {
		v := f.Vertices
		for i := 0; i < 3; i++ {
			opp := v[i]
			a, b := v[(i+1)%3], v[(i+2)%3]
			cot := cotangentAt(sub, opp, a, b)
			add(a, b, 0.5*cot)
		}
	}
	return weights
}

func cotangentAt(sub *mesh.Mesh, opp, a, b mesh.VertexID) float64 {
	p := sub.Vertices[opp].Position
	u := sub.Vertices[a].Position.Sub(p)
	w := sub.Vertices[b].Position.Sub(p)
	cross := u.Cross(w).Norm()
	if cross < 1e-14 {
		return CotangentWeightFloor
	}
	cot := u.Dot(w) / cross
	if cot < CotangentWeightFloor {
		return CotangentWeightFloor
	}
	return cot
}

// farthestVertexPair picks two vertices far apart in 3D using a cheap
// bounding-box heuristic (the vertex closest to the box's min corner
// and the one closest to its max corner) rather than a full geodesic
// search, since these only need to be "far enough" to fix the
// conformal map's rotation and translation, not truly extremal.
func farthestVertexPair(sub *mesh.Mesh) (mesh.VertexID, mesh.VertexID) {
	n := sub.NumVertices()
	min, max := sub.Vertices[0].Position, sub.Vertices[0].Position
	for i := 1; i < n; i++ {
		min = min.Min(sub.Vertices[i].Position)
		max = max.Max(sub.Vertices[i].Position)
	}
	var bestMin, bestMax mesh.VertexID
	bestMinDist, bestMaxDist := math.Inf(1), math.Inf(1)
	for i := 0; i < n; i++ {
		p := sub.Vertices[i].Position
		if d := p.Dist(min); d < bestMinDist {
			bestMinDist, bestMin = d, mesh.VertexID(i)
		}
		if d := p.Dist(max); d < bestMaxDist {
			bestMaxDist, bestMax = d, mesh.VertexID(i)
		}
	}
	if bestMin == bestMax && n > 1 {
		bestMax = mesh.VertexID((int(bestMin) + 1) % n)
	}
	return bestMin, bestMax
}
