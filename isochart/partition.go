package isochart

import (
	"github.com/uvatlas-go/uvatlas/geodesic"
	"github.com/uvatlas-go/uvatlas/mesh"
)

// Partition runs the recursive iso-chart partitioner over the whole
// mesh and returns the root of the resulting partition tree; call
// root.FlattenLeaves() to get the final chart decomposition.
func Partition(m *mesh.Mesh, opts Options) (*ChartNode, error) {
	faces := make([]mesh.FaceID, m.NumFaces())
	for i := range faces {
		faces[i] = mesh.FaceID(i)
	}
	root, err := mesh.ExtractChart(m, faces)
	if err != nil {
		return nil, err
	}
	leafCount := 1
	return partitionChart(root, opts, &leafCount)
}

// BuildCharts runs the full pipeline a caller actually wants: partition
// the mesh, flatten the tree into leaf charts, then merge away any
// leaves too small to stand alone. The returned charts are fully
// parameterized and ready for the packer.
func BuildCharts(m *mesh.Mesh, opts Options) ([]*mesh.Chart, error) {
	root, err := Partition(m, opts)
	if err != nil {
		return nil, err
	}
	leaves := root.FlattenLeaves()
	merged, err := MergeSmallCharts(m, leaves, opts)
	if err != nil {
		return nil, err
	}
	charts := make([]*mesh.Chart, len(merged))
	for i, node := range merged {
		charts[i] = node.Chart
	}
	return charts, nil
}

// partitionChart evaluates one chart's stretch, classifies its shape,
// and either accepts it as a leaf or splits it in two and recurses.
// leafCount tracks the running number of leaves produced so far across
// the whole recursion, enforcing Options.MaxChartNumber globally.
func partitionChart(c *mesh.Chart, opts Options, leafCount *int) (*ChartNode, error) {
	stretch, shape, err := evaluateChart(c, opts)
	if err != nil {
		return nil, err
	}
	node := newChartNode(c, shape, stretch)

	if !shouldSplit(c, stretch, opts, *leafCount) {
		return node, nil
	}

	left, right, ok, err := splitChart(c, opts)
	if err != nil {
		return nil, err
	}
	if !ok {
		node.Splittable = false
		return node, nil
	}

	*leafCount++ // one leaf becomes two: net +1
	leftNode, err := partitionChart(left, opts, leafCount)
	if err != nil {
		return nil, err
	}
	rightNode, err := partitionChart(right, opts, leafCount)
	if err != nil {
		return nil, err
	}
	node.Children[0] = leftNode
	node.Children[1] = rightNode
	return node, nil
}

func shouldSplit(c *mesh.Chart, stretch float64, opts Options, leafCount int) bool {
	if !c.Valid {
		return false
	}
	if stretch <= opts.MaxStretch {
		return false
	}
	if c.Mesh().NumFaces() <= 2*opts.MinChartFaceCount {
		return false
	}
	if opts.MaxChartNumber > 0 && leafCount >= opts.MaxChartNumber {
		return false
	}
	return true
}

// evaluateChart computes a chart's parameterization (writing c.UV) and
// returns its stretch and shape classification.
func evaluateChart(c *mesh.Chart, opts Options) (float64, Shape, error) {
	if err := ParameterizeChart(c, opts); err != nil {
		return 0, ShapeGeneral, err
	}
	stretch := ChartStretch(c)

	sub := c.Mesh()
	engine := geodesic.Select(opts.GeodesicSelector, sub.NumFaces())
	landmarks := SelectLandmarks(sub, nil, nil, MinLandmarkNumber, engine)
	if len(landmarks) < 3 {
		return stretch, ShapePlane, nil
	}
	embedding := BuildEmbedding(sub, landmarks, engine, chartSignalDistances(sub, landmarks, opts))
	loops := sub.BoundaryLoops()
	shape := Classify(embedding, len(loops))
	return stretch, shape, nil
}

// splitChart computes a two-way representative-landmark split refined
// by a graph cut, then extracts the two halves as independent charts.
// ok is false when the split would leave one side empty or below
// MinChartFaceCount, in which case the caller should treat c as a
// leaf.
func splitChart(c *mesh.Chart, opts Options) (left, right *mesh.Chart, ok bool, err error) {
	sub := c.Mesh()
	engine := geodesic.Select(opts.GeodesicSelector, sub.NumFaces())
	landmarks := SelectLandmarks(sub, nil, nil, MinLandmarkNumber, engine)
	if len(landmarks) < 2 {
		return nil, nil, false, nil
	}
	embedding := BuildEmbedding(sub, landmarks, engine, chartSignalDistances(sub, landmarks, opts))

	vertexLabels := AssignVertexLabels(sub, embedding)
	faceLabels := FaceLabelsFromVertices(sub, vertexLabels)
	faceLabels = SmoothFaceLabels(sub, faceLabels, 4)
	if refined, rerr := RefineFaceLabelsConstrained(sub, faceLabels, sub.NonSplittable); rerr == nil {
		faceLabels = refined
	}

	aFaces, bFaces := LabelFaceSets(faceLabels)
	if len(aFaces) < opts.MinChartFaceCount || len(bFaces) < opts.MinChartFaceCount {
		return nil, nil, false, nil
	}
	if cutCrossesNonSplittable(sub, faceLabels) {
		// The only separation the graph cut found runs across an edge
		// the host forbade cutting; treat this chart the same as any
		// other unsplittable leaf rather than surfacing an error here -
		// CreateAtlas decides whether that ultimately blocks the user's
		// requested chart count.
		return nil, nil, false, nil
	}

	leftChart, err := mesh.ExtractChart(sub, aFaces)
	if err != nil {
		return nil, nil, false, err
	}
	rightChart, err := mesh.ExtractChart(sub, bFaces)
	if err != nil {
		return nil, nil, false, err
	}
	for _, ch := range []*mesh.Chart{leftChart, rightChart} {
		// Re-express the child's ids against c's own parent, so every
		// chart in the tree indexes the same mesh as the root.
		for k, f := range ch.Faces {
			ch.Faces[k] = c.Faces[f]
		}
		for k, v := range ch.ParentVertex {
			ch.ParentVertex[k] = c.ParentVertex[v]
		}
		ch.Parent = c.Parent
	}
	return leftChart, rightChart, true, nil
}

// cutCrossesNonSplittable reports whether any pair of face-adjacent
// faces with different labels shares a mesh edge the host marked
// non-splittable.
func cutCrossesNonSplittable(m *mesh.Mesh, faceLabels []int) bool {
	if len(m.NonSplittable) == 0 {
		return false
	}
	for fi, f := range m.Faces {
		for side, adj := range f.Adjacent {
			if adj == mesh.InvalidID || int(adj) <= fi {
				continue
			}
			if faceLabels[fi] == faceLabels[adj] {
				continue
			}
			a, b := f.Vertices[side], f.Vertices[(side+1)%3]
			if m.NonSplittable[mesh.NewEdge(a, b)] {
				return true
			}
		}
	}
	return false
}

// chartSignalDistances derives a per-landmark, per-vertex importance
// signal from each vertex's IMT when SignalMode is set, for
// geodesic.CombineWithSignal to blend into the embedding distances.
// This is a simplification of a true signal-weighted geodesic (which
// would integrate the IMT quadratic form along the shortest path
// itself): here the signal at a vertex is just its own IMT magnitude,
// independent of path, which is cheap to compute and still biases the
// embedding toward separating high-importance regions.
func chartSignalDistances(m *mesh.Mesh, landmarks []mesh.VertexID, opts Options) [][]float64 {
	if !opts.SignalMode {
		return nil
	}
	n := m.NumVertices()
	magnitude := make([]float64, n)
	hasSignal := false
	for i, v := range m.Vertices {
		if v.IMT.IsZero() {
			continue
		}
		mag := v.IMT.M11 + v.IMT.M22
		if mag < 0 {
			mag = -mag
		}
		magnitude[i] = mag
		hasSignal = true
	}
	if !hasSignal {
		return nil
	}
	out := make([][]float64, len(landmarks))
	for i := range landmarks {
		out[i] = magnitude
	}
	return out
}
