// Package meshio reads and writes the on-disk mesh formats the atlas
// pipeline's input and output cross: textual OBJ (positions, UVs and
// faces) and binary STL (positions only, for tooling that only cares
// about geometry). Adapted from unixpickle/model3d's export.go, whose
// EncodeSTL/WriteSTL this package's STL writer keeps the name and
// shape of; that file's fileformats sub-package (the actual STL/PLY/
// OBJ byte-level writers it called into) isn't part of this module, so
// the encodings here are written directly against the standard
// library instead.
package meshio

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/unixpickle/essentials"

	"github.com/uvatlas-go/uvatlas/mesh"
)

// WriteOBJ writes positions, UVs and faces as a textual Wavefront OBJ:
// one "v" line per position, one "vt" line per UV (only written if uvs
// is non-empty), and one "f" line per face referencing both by their
// 1-based OBJ index. This is the format ApplyRemap's callers round-trip
// an atlas through - the one place a real UV, not just a solid's
// surface, needs to survive a save/load cycle.
func WriteOBJ(w io.Writer, positions []mesh.Coord3D, uvs []mesh.Coord2, indices [][3]int) error {
	if len(uvs) != 0 && len(uvs) != len(positions) {
		return fmt.Errorf("meshio: uvs length %d must be zero or match positions length %d", len(uvs), len(positions))
	}

	vLines := make([]string, len(positions))
	essentials.ConcurrentMap(0, len(positions), func(i int) {
		p := positions[i]
		vLines[i] = "v " + formatFloat(p.X) + " " + formatFloat(p.Y) + " " + formatFloat(p.Z)
	})

	var vtLines []string
	if len(uvs) != 0 {
		vtLines = make([]string, len(uvs))
		essentials.ConcurrentMap(0, len(uvs), func(i int) {
			vtLines[i] = "vt " + formatFloat(uvs[i].U) + " " + formatFloat(uvs[i].V)
		})
	}

	bw := bufio.NewWriter(w)
	for _, line := range vLines {
		if _, err := bw.WriteString(line + "\n"); err != nil {
			return err
		}
	}
	for _, line := range vtLines {
		if _, err := bw.WriteString(line + "\n"); err != nil {
			return err
		}
	}
	for _, tri := range indices {
		if err := writeFaceLine(bw, tri, len(uvs) != 0); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func writeFaceLine(bw *bufio.Writer, tri [3]int, withUV bool) error {
	var b strings.Builder
	b.WriteString("f")
	for _, v := range tri {
		idx := strconv.Itoa(v + 1)
		if withUV {
			b.WriteString(" " + idx + "/" + idx)
		} else {
			b.WriteString(" " + idx)
		}
	}
	b.WriteString("\n")
	_, err := bw.WriteString(b.String())
	return err
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// ReadOBJ parses a textual OBJ's "v", "vt" and "f" lines back into
// positions, UVs (nil if the file has no "vt" lines) and zero-based
// triangle indices. Faces with more than three vertices are fan-
// triangulated around their first vertex, matching how most OBJ
// exporters (including WriteOBJ) only ever emit triangles in the first
// place but tolerating a quad-faced input. Normals ("vn") and any
// other line type are ignored.
func ReadOBJ(r io.Reader) ([]mesh.Coord3D, []mesh.Coord2, [][3]int, error) {
	var positions []mesh.Coord3D
	var uvs []mesh.Coord2
	var indices [][3]int

	scanner := newLineScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case "v":
			p, err := parseFloat3(fields[1:])
			if err != nil {
				return nil, nil, nil, fmt.Errorf("meshio: parsing vertex: %w", err)
			}
			positions = append(positions, mesh.XYZ(p[0], p[1], p[2]))
		case "vt":
			if len(fields) < 3 {
				return nil, nil, nil, fmt.Errorf("meshio: vt line needs at least 2 components")
			}
			u, err := strconv.ParseFloat(fields[1], 64)
			if err != nil {
				return nil, nil, nil, fmt.Errorf("meshio: parsing uv: %w", err)
			}
			v, err := strconv.ParseFloat(fields[2], 64)
			if err != nil {
				return nil, nil, nil, fmt.Errorf("meshio: parsing uv: %w", err)
			}
			uvs = append(uvs, mesh.Coord2{U: u, V: v})
		case "f":
			faceIdx, err := parseFaceIndices(fields[1:])
			if err != nil {
				return nil, nil, nil, err
			}
			for i := 1; i+1 < len(faceIdx); i++ {
				indices = append(indices, [3]int{faceIdx[0], faceIdx[i], faceIdx[i+1]})
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, nil, err
	}
	return positions, uvs, indices, nil
}

func parseFloat3(fields []string) ([3]float64, error) {
	var out [3]float64
	if len(fields) < 3 {
		return out, fmt.Errorf("expected 3 components, got %d", len(fields))
	}
	for i := 0; i < 3; i++ {
		f, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return out, err
		}
		out[i] = f
	}
	return out, nil
}

// parseFaceIndices extracts the position index from each "f" field,
// which may be a bare index ("3"), "v/vt" or "v/vt/vn", and converts
// from OBJ's 1-based indexing to zero-based.
func parseFaceIndices(fields []string) ([]int, error) {
	out := make([]int, len(fields))
	for i, f := range fields {
		first := f
		if slash := strings.IndexByte(f, '/'); slash >= 0 {
			first = f[:slash]
		}
		v, err := strconv.Atoi(first)
		if err != nil {
			return nil, fmt.Errorf("meshio: parsing face index %q: %w", f, err)
		}
		out[i] = v - 1
	}
	return out, nil
}
