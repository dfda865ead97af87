package meshio

import (
	"bufio"
	"encoding/binary"
	"io"
	"math"

	"github.com/uvatlas-go/uvatlas/mesh"
)

// stlHeaderSize, stlTriangleSize match the binary STL format: an
// 80-byte free-form header, a uint32 triangle count, then one 50-byte
// record per triangle (a float32 normal, three float32 vertices, and a
// uint16 attribute byte count left at zero).
const (
	stlHeaderSize   = 80
	stlTriangleSize = 50
)

// WriteSTL writes positions/indices as a binary STL, keeping the name
// and shape of unixpickle/model3d's own WriteSTL but computing the
// facet normal and encoding each record directly with encoding/binary
// instead of going through a dedicated STL-writer type.
func WriteSTL(w io.Writer, positions []mesh.Coord3D, indices [][3]int) error {
	bw := bufio.NewWriter(w)

	var header [stlHeaderSize]byte
	copy(header[:], "binary STL written by uvatlas")
	if _, err := bw.Write(header[:]); err != nil {
		return err
	}
	if err := binary.Write(bw, binary.LittleEndian, uint32(len(indices))); err != nil {
		return err
	}

	for _, tri := range indices {
		a, b, c := positions[tri[0]], positions[tri[1]], positions[tri[2]]
		n := triangleNormal(a, b, c)
		for _, f := range []float32{
			float32(n.X), float32(n.Y), float32(n.Z),
			float32(a.X), float32(a.Y), float32(a.Z),
			float32(b.X), float32(b.Y), float32(b.Z),
			float32(c.X), float32(c.Y), float32(c.Z),
		} {
			if err := binary.Write(bw, binary.LittleEndian, f); err != nil {
				return err
			}
		}
		if err := binary.Write(bw, binary.LittleEndian, uint16(0)); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func triangleNormal(a, b, c mesh.Coord3D) mesh.Coord3D {
	ab := mesh.XYZ(b.X-a.X, b.Y-a.Y, b.Z-a.Z)
	ac := mesh.XYZ(c.X-a.X, c.Y-a.Y, c.Z-a.Z)
	n := mesh.XYZ(
		ab.Y*ac.Z-ab.Z*ac.Y,
		ab.Z*ac.X-ab.X*ac.Z,
		ab.X*ac.Y-ab.Y*ac.X,
	)
	length := n.X*n.X + n.Y*n.Y + n.Z*n.Z
	if length == 0 {
		return n
	}
	inv := 1 / math.Sqrt(length)
	return mesh.XYZ(n.X*inv, n.Y*inv, n.Z*inv)
}

// ReadSTL parses a binary STL back into positions and indices. Each
// triangle record contributes three fresh vertices - binary STL has no
// shared-vertex indexing. mesh.FromTriangleSoup merges equal positions;
// mesh.Repair and CreateAtlas do not.
func ReadSTL(r io.Reader) ([]mesh.Coord3D, [][3]int, error) {
	br := bufio.NewReader(r)
	var header [stlHeaderSize]byte
	if _, err := io.ReadFull(br, header[:]); err != nil {
		return nil, nil, err
	}
	var count uint32
	if err := binary.Read(br, binary.LittleEndian, &count); err != nil {
		return nil, nil, err
	}

	positions := make([]mesh.Coord3D, 0, count*3)
	indices := make([][3]int, 0, count)
	for i := uint32(0); i < count; i++ {
		var record [12]float32
		if err := binary.Read(br, binary.LittleEndian, &record); err != nil {
			return nil, nil, err
		}
		var attr uint16
		if err := binary.Read(br, binary.LittleEndian, &attr); err != nil {
			return nil, nil, err
		}
		base := len(positions)
		positions = append(positions,
			mesh.XYZ(float64(record[3]), float64(record[4]), float64(record[5])),
			mesh.XYZ(float64(record[6]), float64(record[7]), float64(record[8])),
			mesh.XYZ(float64(record[9]), float64(record[10]), float64(record[11])),
		)
		indices = append(indices, [3]int{base, base + 1, base + 2})
	}
	return positions, indices, nil
}
