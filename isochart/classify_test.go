package isochart

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/uvatlas-go/uvatlas/geom2"
)

func TestClassifyNilEmbeddingIsGeneral(t *testing.T) {
	require.Equal(t, ShapeGeneral, Classify(nil, 0))
}

func TestClassifyTwoBoundaryLoopsIsCylinder(t *testing.T) {
	e := &Embedding{LandmarkUV: []geom2.Coord{{X: 0, Y: 0}, {X: 1, Y: 0}}}
	require.Equal(t, ShapeCylinder, Classify(e, 2))
}

func TestClassifyHighEigenRatioIsCylinder(t *testing.T) {
	e := &Embedding{
		LandmarkUV: []geom2.Coord{{X: 0, Y: 0}, {X: 1, Y: 1}},
		EigenRatio: CylinderEigenRatioFloor + 0.1,
	}
	require.Equal(t, ShapeCylinder, Classify(e, 0))
}

func TestClassifyElongatedEmbeddingIsLonghorn(t *testing.T) {
	e := &Embedding{
		LandmarkUV: []geom2.Coord{{X: 0, Y: 0}, {X: 10, Y: 0.1}},
		EigenRatio: 0.1,
	}
	require.Equal(t, ShapeLonghorn, Classify(e, 0))
}

func TestClassifyCompactLowRatioIsPlane(t *testing.T) {
	e := &Embedding{
		LandmarkUV: []geom2.Coord{{X: 0, Y: 0}, {X: 1, Y: 1}},
		EigenRatio: 0.1,
	}
	require.Equal(t, ShapePlane, Classify(e, 1))
}

func TestShapeStringNamesEveryValue(t *testing.T) {
	require.Equal(t, "plane", ShapePlane.String())
	require.Equal(t, "cylinder", ShapeCylinder.String())
	require.Equal(t, "longhorn", ShapeLonghorn.String())
	require.Equal(t, "general", ShapeGeneral.String())
}
