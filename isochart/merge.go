package isochart

import "github.com/uvatlas-go/uvatlas/mesh"

// MergeSmallCharts folds leaf charts smaller than Options.MinChartFaceCount
// into a face-adjacent neighbor, re-parameterizing the merged result and
// keeping it only if Options.LimitMergeStretch allows the combined
// stretch. It returns the (possibly shorter) list of leaves after all
// profitable merges are applied.
func MergeSmallCharts(parent *mesh.Mesh, leaves []*ChartNode, opts Options) ([]*ChartNode, error) {
	current := append([]*ChartNode(nil), leaves...)
	for {
		merged, did, err := mergeOnePass(parent, current, opts)
		if err != nil {
			return nil, err
		}
		current = merged
		if !did {
			return current, nil
		}
	}
}

func mergeOnePass(parent *mesh.Mesh, leaves []*ChartNode, opts Options) ([]*ChartNode, bool, error) {
	faceOwner := make(map[mesh.FaceID]int, parent.NumFaces())
	for i, leaf := range leaves {
		for _, f := range leaf.Chart.Faces {
			faceOwner[f] = i
		}
	}

	for i, leaf := range leaves {
		if leaf.Chart.Mesh().NumFaces() >= opts.MinChartFaceCount {
			continue
		}
		j := adjacentLeaf(parent, leaf, i, faceOwner)
		if j < 0 {
			continue
		}

		combinedFaces := append(append([]mesh.FaceID(nil), leaves[i].Chart.Faces...), leaves[j].Chart.Faces...)
		merged, err := mesh.ExtractChart(parent, combinedFaces)
		if err != nil {
			return nil, false, err
		}
		if err := ParameterizeChart(merged, opts); err != nil {
			return nil, false, err
		}
		mergedStretch := ChartStretch(merged)
		if opts.LimitMergeStretch && mergedStretch > opts.MaxStretch {
			continue
		}

		out := make([]*ChartNode, 0, len(leaves)-1)
		for k, l := range leaves {
			if k == i || k == j {
				continue
			}
			out = append(out, l)
		}
		out = append(out, newChartNode(merged, Classify(nil, 0), mergedStretch))
		return out, true, nil
	}
	return leaves, false, nil
}

// adjacentLeaf finds another leaf sharing a face-adjacency edge with
// leaves[i], by walking leaf i's faces in the parent mesh and checking
// each face's parent-level neighbors against faceOwner.
func adjacentLeaf(parent *mesh.Mesh, leaf *ChartNode, i int, faceOwner map[mesh.FaceID]int) int {
	for _, f := range leaf.Chart.Faces {
		face := parent.Faces[f]
		for _, adj := range face.Adjacent {
			if adj == mesh.InvalidID {
				continue
			}
			if owner, ok := faceOwner[adj]; ok && owner != i {
				return owner
			}
		}
	}
	return -1
}
