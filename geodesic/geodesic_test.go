package geodesic

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/uvatlas-go/uvatlas/mesh"
)

func flatGridMesh(t *testing.T, n int) *mesh.Mesh {
	t.Helper()
	var positions []mesh.Coord3D
	idx := func(i, j int) int { return i*(n+1) + j }
	for i := 0; i <= n; i++ {
		for j := 0; j <= n; j++ {
			positions = append(positions, mesh.XYZ(float64(i), float64(j), 0))
		}
	}
	var indices [][3]int
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			a, b, c, d := idx(i, j), idx(i+1, j), idx(i+1, j+1), idx(i, j+1)
			indices = append(indices, [3]int{a, b, c})
			indices = append(indices, [3]int{a, c, d})
		}
	}
	m, err := mesh.New(positions, indices)
	require.NoError(t, err)
	require.NoError(t, m.Build())
	return m
}

func TestApproximateEngineMatchesFlatDistance(t *testing.T) {
	m := flatGridMesh(t, 5)
	eng := &ApproximateEngine{}
	dist := eng.Distances(m, 0)

	// Vertex 0 is the grid's corner (0,0); vertex at (5,5) is the
	// opposite corner, straight-line distance 5*sqrt(2).
	far := 5*(5+1) + 5
	require.InDelta(t, 5*math.Sqrt2, dist[far], 0.25)
}

func TestApproximateEngineSourceIsZero(t *testing.T) {
	m := flatGridMesh(t, 3)
	eng := &ApproximateEngine{}
	dist := eng.Distances(m, 0)
	require.Equal(t, 0.0, dist[0])
	for _, d := range dist {
		require.False(t, math.IsNaN(d))
	}
}

func TestExactEngineConvergesNoWorseThanApproximate(t *testing.T) {
	m := flatGridMesh(t, 4)
	approx := (&ApproximateEngine{}).Distances(m, 0)
	exact := (&ExactEngine{}).Distances(m, 0)
	for i := range approx {
		require.LessOrEqual(t, exact[i], approx[i]+1e-6)
	}
}

func TestSelectByFaceCount(t *testing.T) {
	small := Select(SelectorDefault, 10)
	require.IsType(t, &ExactEngine{}, small)

	large := Select(SelectorDefault, LimitFaceNumUseNewGeoDist+1)
	require.IsType(t, &ApproximateEngine{}, large)

	require.IsType(t, &ApproximateEngine{}, Select(SelectorFast, 1))
	require.IsType(t, &ExactEngine{}, Select(SelectorQuality, 1_000_000))
}

func TestCombineWithSignalFallsBackWhenSignalIsZero(t *testing.T) {
	geo := []float64{1, 2, 3}
	sig := []float64{0, 0, 0}
	combined := CombineWithSignal(geo, sig)
	require.Equal(t, geo, combined)
}

func TestCombineWithSignalBlends(t *testing.T) {
	geo := []float64{2, 4}
	sig := []float64{1, 1}
	combined := CombineWithSignal(geo, sig)
	// geoAvg=3, sigAvg=1, ratio=3; combined_i = 0.7*geo_i + 0.3*3*sig_i
	require.InDelta(t, 0.7*2+0.9*1, combined[0], 1e-9)
	require.InDelta(t, 0.7*4+0.9*1, combined[1], 1e-9)
}

func TestDisconnectedVertexIsUnreachable(t *testing.T) {
	positions := []mesh.Coord3D{
		mesh.XYZ(0, 0, 0), mesh.XYZ(1, 0, 0), mesh.XYZ(0, 1, 0),
		mesh.XYZ(10, 10, 0), mesh.XYZ(11, 10, 0), mesh.XYZ(10, 11, 0),
	}
	indices := [][3]int{{0, 1, 2}, {3, 4, 5}}
	m, err := mesh.New(positions, indices)
	require.NoError(t, err)
	require.NoError(t, m.Build())

	dist := (&ApproximateEngine{}).Distances(m, 0)
	require.True(t, math.IsInf(dist[3], 1))
}
