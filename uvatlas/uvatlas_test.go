package uvatlas

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/uvatlas-go/uvatlas/mesh"
)

func baseOptions(positions []mesh.Coord3D, indices [][3]int) CreateAtlasOptions {
	return CreateAtlasOptions{
		Positions:      positions,
		Indices:        indices,
		MaxChartNumber: 0,
		MaxStretch:     0.6,
		Width:          256,
		Height:         256,
		Gutter:         2,
	}
}

func requireUVInUnitSquare(t *testing.T, r *AtlasResult) {
	t.Helper()
	for i, uv := range r.UVs {
		require.GreaterOrEqual(t, uv.U, -1e-6, "vertex %d U below 0", i)
		require.LessOrEqual(t, uv.U, 1+1e-6, "vertex %d U above 1", i)
		require.GreaterOrEqual(t, uv.V, -1e-6, "vertex %d V below 0", i)
		require.LessOrEqual(t, uv.V, 1+1e-6, "vertex %d V above 1", i)
	}
}

func requireRemapIsLeftInverse(t *testing.T, r *AtlasResult, originalPositions []mesh.Coord3D) {
	t.Helper()
	require.Len(t, r.VertexRemap, len(r.Positions))
	for i, orig := range r.VertexRemap {
		require.GreaterOrEqual(t, orig, 0)
		require.Less(t, orig, len(originalPositions))
		require.Equal(t, originalPositions[orig], r.Positions[i],
			"remapped position must match the original vertex it points back to")
	}
}

func cubePositionsIndices() ([]mesh.Coord3D, [][3]int) {
	positions := []mesh.Coord3D{
		mesh.XYZ(0, 0, 0), mesh.XYZ(1, 0, 0), mesh.XYZ(1, 1, 0), mesh.XYZ(0, 1, 0),
		mesh.XYZ(0, 0, 1), mesh.XYZ(1, 0, 1), mesh.XYZ(1, 1, 1), mesh.XYZ(0, 1, 1),
	}
	quads := [][4]int{
		{0, 1, 2, 3}, {4, 7, 6, 5}, {0, 4, 5, 1},
		{1, 5, 6, 2}, {2, 6, 7, 3}, {3, 7, 4, 0},
	}
	var indices [][3]int
	for _, q := range quads {
		indices = append(indices, [3]int{q[0], q[1], q[2]})
		indices = append(indices, [3]int{q[0], q[2], q[3]})
	}
	return positions, indices
}

func tetrahedronPositionsIndices() ([]mesh.Coord3D, [][3]int) {
	positions := []mesh.Coord3D{
		mesh.XYZ(1, 1, 1), mesh.XYZ(1, -1, -1), mesh.XYZ(-1, 1, -1), mesh.XYZ(-1, -1, 1),
	}
	indices := [][3]int{
		{0, 1, 2}, {0, 3, 1}, {0, 2, 3}, {1, 3, 2},
	}
	return positions, indices
}

// cylinderPositionsIndices builds an open tube (side faces only, no
// caps) of nRings rings around the circumference, giving two boundary
// loops - the shape the partitioner's embedding classifier recognizes
// as ShapeCylinder.
func cylinderPositionsIndices(segments, rings int) ([]mesh.Coord3D, [][3]int) {
	var positions []mesh.Coord3D
	idx := func(ring, seg int) int { return ring*segments + seg%segments }
	for r := 0; r <= rings; r++ {
		z := float64(r)
		for s := 0; s < segments; s++ {
			theta := 2 * math.Pi * float64(s) / float64(segments)
			positions = append(positions, mesh.XYZ(math.Cos(theta), math.Sin(theta), z))
		}
	}
	var indices [][3]int
	for r := 0; r < rings; r++ {
		for s := 0; s < segments; s++ {
			a := idx(r, s)
			b := idx(r, s+1)
			c := idx(r+1, s+1)
			d := idx(r+1, s)
			indices = append(indices, [3]int{a, b, c})
			indices = append(indices, [3]int{a, c, d})
		}
	}
	return positions, indices
}

// icosahedronPositionsIndices builds a closed, genus-0, 20-triangle
// polyhedron - a coarse stand-in for a subdivided icosphere, enough to
// exercise the multi-chart closed-surface path without the extra
// vertices a true subdivision would add.
func icosahedronPositionsIndices() ([]mesh.Coord3D, [][3]int) {
	phi := (1 + math.Sqrt(5)) / 2
	raw := [][3]float64{
		{-1, phi, 0}, {1, phi, 0}, {-1, -phi, 0}, {1, -phi, 0},
		{0, -1, phi}, {0, 1, phi}, {0, -1, -phi}, {0, 1, -phi},
		{phi, 0, -1}, {phi, 0, 1}, {-phi, 0, -1}, {-phi, 0, 1},
	}
	positions := make([]mesh.Coord3D, len(raw))
	for i, p := range raw {
		positions[i] = mesh.XYZ(p[0], p[1], p[2])
	}
	indices := [][3]int{
		{0, 11, 5}, {0, 5, 1}, {0, 1, 7}, {0, 7, 10}, {0, 10, 11},
		{1, 5, 9}, {5, 11, 4}, {11, 10, 2}, {10, 7, 6}, {7, 1, 8},
		{3, 9, 4}, {3, 4, 2}, {3, 2, 6}, {3, 6, 8}, {3, 8, 9},
		{4, 9, 5}, {2, 4, 11}, {6, 2, 10}, {8, 6, 7}, {9, 8, 1},
	}
	return positions, indices
}

func TestCreateAtlasOnCubeProducesAHandfulOfCharts(t *testing.T) {
	positions, indices := cubePositionsIndices()
	r, err := CreateAtlas(baseOptions(positions, indices))
	require.NoError(t, err)
	require.Equal(t, OK, r.Status)
	require.GreaterOrEqual(t, r.ChartCount, 1)
	require.LessOrEqual(t, r.ChartCount, 6)
	require.Len(t, r.Indices, len(indices))
	requireUVInUnitSquare(t, r)
	requireRemapIsLeftInverse(t, r, positions)
}

func TestCreateAtlasOnTetrahedronProducesFewCharts(t *testing.T) {
	positions, indices := tetrahedronPositionsIndices()
	opts := baseOptions(positions, indices)
	opts.MaxStretch = 1.5 // a tetrahedron's faces are already near-isometric
	r, err := CreateAtlas(opts)
	require.NoError(t, err)
	require.GreaterOrEqual(t, r.ChartCount, 1)
	require.LessOrEqual(t, r.ChartCount, 2)
	requireUVInUnitSquare(t, r)
}

func TestCreateAtlasOnCylinderShellSucceeds(t *testing.T) {
	positions, indices := cylinderPositionsIndices(12, 6)
	opts := baseOptions(positions, indices)
	r, err := CreateAtlas(opts)
	require.NoError(t, err)
	require.GreaterOrEqual(t, r.ChartCount, 1)
	requireUVInUnitSquare(t, r)
	requireRemapIsLeftInverse(t, r, positions)
}

func TestCreateAtlasOnIcosahedronKeepsStretchBounded(t *testing.T) {
	positions, indices := icosahedronPositionsIndices()
	opts := baseOptions(positions, indices)
	opts.MaxChartNumber = 12
	r, err := CreateAtlas(opts)
	require.NoError(t, err)
	require.GreaterOrEqual(t, r.ChartCount, 1)
	// A closed, curved surface can never flatten perfectly; a
	// area-weighted average signal stretch more than an order of
	// magnitude above isometric (1.0) would indicate the packer or
	// parameterizer regressed badly rather than just paying the
	// unavoidable cost of cutting a sphere into charts.
	require.Less(t, r.Stretch, 10.0)
	requireUVInUnitSquare(t, r)
}

func TestCreateAtlasReportsNonSplittableBlockedWhenRingCannotBeCut(t *testing.T) {
	positions, indices := cylinderPositionsIndices(8, 4)
	opts := baseOptions(positions, indices)
	opts.MaxStretch = 1e-4 // force the partitioner to want more splits than it can get
	opts.MaxChartNumber = 2 // room for one split, which every edge being blocked must refuse
	opts.NonSplittableEdges = allMeshEdges(positions, indices)

	r, err := CreateAtlas(opts)
	require.NoError(t, err)
	require.Equal(t, 1, r.ChartCount)
	require.Equal(t, NonSplittableBlocked, r.Status)
}

func TestCreateAtlasPropagatesCancellation(t *testing.T) {
	positions, indices := cylinderPositionsIndices(10, 10)
	opts := baseOptions(positions, indices)
	calls := 0
	opts.Callback = func(fraction float64) Status {
		calls++
		if calls >= 1 {
			return Canceled
		}
		return OK
	}
	opts.CallbackFrequency = 1

	_, err := CreateAtlas(opts)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrCanceled))
}

func TestCreateAtlasRejectsOutOfRangeFaceIndex(t *testing.T) {
	positions, indices := tetrahedronPositionsIndices()
	indices[0][0] = len(positions) + 5
	_, err := CreateAtlas(baseOptions(positions, indices))
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrInvalidArgument))
}

func TestApplyRemapIsLeftInverseOfVertexDuplication(t *testing.T) {
	positions, indices := cubePositionsIndices()
	r, err := CreateAtlas(baseOptions(positions, indices))
	require.NoError(t, err)

	colors := make([]float64, len(positions))
	for i := range colors {
		colors[i] = float64(i)
	}
	remapped, err := ApplyRemap(r.VertexRemap, colors)
	require.NoError(t, err)
	require.Len(t, remapped, len(r.Positions))
	for i, orig := range r.VertexRemap {
		require.Equal(t, colors[orig], remapped[i])
	}
}

func TestApplyRemapRejectsOutOfRangeIndex(t *testing.T) {
	_, err := ApplyRemap([]int{0, 5}, []float64{1, 2})
	require.Error(t, err)
}

// allMeshEdges returns every triangle edge in the mesh, used to build
// a NonSplittableEdges input that blocks every possible cut.
func allMeshEdges(positions []mesh.Coord3D, indices [][3]int) [][2]int {
	seen := map[[2]int]bool{}
	var out [][2]int
	for _, tri := range indices {
		for i := 0; i < 3; i++ {
			a, b := tri[i], tri[(i+1)%3]
			if a > b {
				a, b = b, a
			}
			key := [2]int{a, b}
			if !seen[key] {
				seen[key] = true
				out = append(out, key)
			}
		}
	}
	return out
}
