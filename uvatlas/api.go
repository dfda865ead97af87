package uvatlas

// ApplyRemap pushes a per-vertex attribute buffer indexed by the
// caller's original mesh through the same seam duplication CreateAtlas
// applied when it built AtlasResult.VertexRemap: out[i] =
// original[remap[i]] for every i. Use it to carry normals, vertex
// colors or skin weights onto the retextured mesh without
// re-deriving them.
func ApplyRemap[T any](remap []int, original []T) ([]T, error) {
	if len(remap) == 0 {
		return nil, newError(InvalidArgument, nil, "remap must be non-empty")
	}
	out := make([]T, len(remap))
	for i, orig := range remap {
		if orig < 0 || orig >= len(original) {
			return nil, newError(InvalidArgument, nil, "remap[%d]=%d is out of range for %d original entries", i, orig, len(original))
		}
		out[i] = original[orig]
	}
	return out, nil
}
