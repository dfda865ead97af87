package meshio

import (
	"bufio"
	"io"
)

// newLineScanner wraps bufio.NewScanner with a larger buffer than the
// default 64KiB token limit, since a single "f" line on a
// high-valence polygon (or a "v"/"vt" line with many decimal digits)
// can exceed it on dense meshes.
func newLineScanner(r io.Reader) *bufio.Scanner {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return scanner
}
