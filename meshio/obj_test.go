package meshio

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/uvatlas-go/uvatlas/mesh"
)

func squarePositionsUVsIndices() ([]mesh.Coord3D, []mesh.Coord2, [][3]int) {
	positions := []mesh.Coord3D{
		mesh.XYZ(0, 0, 0), mesh.XYZ(1, 0, 0), mesh.XYZ(1, 1, 0), mesh.XYZ(0, 1, 0),
	}
	uvs := []mesh.Coord2{
		{U: 0, V: 0}, {U: 1, V: 0}, {U: 1, V: 1}, {U: 0, V: 1},
	}
	indices := [][3]int{{0, 1, 2}, {0, 2, 3}}
	return positions, uvs, indices
}

func TestWriteObjThenReadObjRoundTripsPositionsAndUVs(t *testing.T) {
	positions, uvs, indices := squarePositionsUVsIndices()

	var buf bytes.Buffer
	require.NoError(t, WriteOBJ(&buf, positions, uvs, indices))

	gotPositions, gotUVs, gotIndices, err := ReadOBJ(&buf)
	require.NoError(t, err)
	require.Equal(t, positions, gotPositions)
	require.Equal(t, uvs, gotUVs)
	require.Equal(t, indices, gotIndices)
}

func TestWriteObjWithoutUVsOmitsVtLines(t *testing.T) {
	positions, _, indices := squarePositionsUVsIndices()

	var buf bytes.Buffer
	require.NoError(t, WriteOBJ(&buf, positions, nil, indices))
	require.NotContains(t, buf.String(), "vt ")

	gotPositions, gotUVs, gotIndices, err := ReadOBJ(&buf)
	require.NoError(t, err)
	require.Equal(t, positions, gotPositions)
	require.Nil(t, gotUVs)
	require.Equal(t, indices, gotIndices)
}

func TestWriteObjRejectsMismatchedUVLength(t *testing.T) {
	positions, uvs, indices := squarePositionsUVsIndices()
	var buf bytes.Buffer
	err := WriteOBJ(&buf, positions, uvs[:2], indices)
	require.Error(t, err)
}

func TestReadObjTriangulatesQuadFaces(t *testing.T) {
	src := "v 0 0 0\nv 1 0 0\nv 1 1 0\nv 0 1 0\nf 1 2 3 4\n"
	positions, uvs, indices, err := ReadOBJ(bytes.NewBufferString(src))
	require.NoError(t, err)
	require.Len(t, positions, 4)
	require.Nil(t, uvs)
	require.Equal(t, [][3]int{{0, 1, 2}, {0, 2, 3}}, indices)
}

func TestReadObjIgnoresCommentsAndNormals(t *testing.T) {
	src := "# a comment\nv 0 0 0\nvn 0 0 1\nv 1 0 0\nv 1 1 0\nf 1//1 2//1 3//1\n"
	positions, _, indices, err := ReadOBJ(bytes.NewBufferString(src))
	require.NoError(t, err)
	require.Len(t, positions, 3)
	require.Equal(t, [][3]int{{0, 1, 2}}, indices)
}

func TestWriteSTLThenReadSTLRoundTripsTriangleSoup(t *testing.T) {
	positions, _, indices := squarePositionsUVsIndices()

	var buf bytes.Buffer
	require.NoError(t, WriteSTL(&buf, positions, indices))

	gotPositions, gotIndices, err := ReadSTL(&buf)
	require.NoError(t, err)
	require.Len(t, gotPositions, 3*len(indices))
	require.Len(t, gotIndices, len(indices))
	for fi, tri := range indices {
		for i, v := range tri {
			require.InDelta(t, positions[v].X, gotPositions[gotIndices[fi][i]].X, 1e-5)
			require.InDelta(t, positions[v].Y, gotPositions[gotIndices[fi][i]].Y, 1e-5)
			require.InDelta(t, positions[v].Z, gotPositions[gotIndices[fi][i]].Z, 1e-5)
		}
	}
}
