package uvatlas

import (
	"github.com/google/uuid"

	"github.com/uvatlas-go/uvatlas/isochart"
	"github.com/uvatlas-go/uvatlas/mesh"
	"github.com/uvatlas-go/uvatlas/packer"
)

// degenerateFaceAreaEpsilon is the area floor Repair uses to drop
// zero-area triangles before partitioning; chosen well below any
// triangle a real asset would intentionally author, matching the
// epsilon isochart's own tests use for the same purpose.
const degenerateFaceAreaEpsilon = 1e-12

// AtlasResult is CreateAtlas's successful output: a new vertex buffer
// (possibly larger than the input, since charts duplicate vertices at
// seams) with a parallel UV array, a new index buffer into it, and the
// bookkeeping needed to map back to the caller's original mesh.
type AtlasResult struct {
	// Positions and UVs are parallel, one entry per atlas vertex.
	Positions []mesh.Coord3D
	UVs       []mesh.Coord2

	// Indices is the new triangle list, into Positions/UVs.
	Indices [][3]int

	// FacePartition maps each new triangle (by index into Indices) to
	// the chart id that owns it.
	FacePartition []int

	// VertexRemap maps each atlas vertex (by index into Positions) back
	// to its index in the caller's original Positions slice. Pass this
	// to ApplyRemap to carry any other per-vertex attribute buffer
	// (normals, vertex colors, skin weights) through the same seam
	// duplication.
	VertexRemap []int

	// Stretch is the area-weighted average signal stretch across every
	// chart in the final atlas.
	Stretch float64

	// ChartCount is the number of charts the atlas was split into.
	ChartCount int

	// Status is OK on a full success, or NonSplittableBlocked when
	// MaxChartNumber is set, the atlas has fewer charts than that, and
	// at least one chart above MaxStretch was left unsplit because its
	// split was rejected (for example because the cut crossed a
	// caller-protected edge). The atlas is still complete and usable in
	// that case - this only reports that the chart count target wasn't
	// met.
	Status Status

	// RunID tags every log line this call emitted, so concurrent
	// CreateAtlas calls sharing one Logger can be told apart.
	RunID string
}

// CreateAtlas repairs the input mesh, partitions it into charts bounded
// by MaxStretch/MaxChartNumber, parameterizes and packs them into a
// single [0,1]^2 atlas, and returns the retextured mesh. It recovers
// any internal panic (the invariant-violation kind mesh/isochart raise
// on programmer-error-shaped conditions) at this boundary and reports
// it as a NumericFailure or InvalidTopology *Error instead of letting
// it escape to the caller.
func CreateAtlas(opts CreateAtlasOptions) (result *AtlasResult, err error) {
	defer recoverToError(&err)

	runID := uuid.NewString()
	logf := func(format string, args ...any) {
		if opts.Flags.Verbose && opts.Logger != nil {
			opts.Logger.Printf("[%s] "+format, append([]any{runID}, args...)...)
		}
	}

	if err := validateCreateAtlasOptions(opts); err != nil {
		return nil, err
	}

	m, err := buildRepairedMesh(opts)
	if err != nil {
		return nil, err
	}

	components := m.ConnectedComponents()
	logf("repaired mesh: %d faces, %d connected components", m.NumFaces(), len(components))

	isoOpts := isochart.DefaultOptions()
	isoOpts.MaxStretch = opts.MaxStretch
	isoOpts.MaxChartNumber = opts.MaxChartNumber
	isoOpts.LimitMergeStretch = opts.Flags.LimitMergeStretch
	isoOpts.LimitFaceStretch = opts.Flags.LimitFaceStretch
	if opts.PerFaceStretchFloor > 0 {
		isoOpts.PerFaceStretchFloor = opts.PerFaceStretchFloor
	}
	isoOpts.GeodesicSelector = opts.Flags.geodesicSelector()
	isoOpts.SignalMode = opts.Flags.SignalMode || len(opts.FaceIMT) > 0
	isoOpts.Verbose = opts.Flags.Verbose

	reporter := newProgressReporter(opts, len(components)+1)

	var allCharts []*mesh.Chart
	var componentParents []*mesh.Chart
	blockedBySplit := false

	for i, comp := range components {
		compChart, err := mesh.ExtractChart(m, comp)
		if err != nil {
			return nil, newError(InvalidTopology, err, "extracting connected component %d", i)
		}
		compMesh := compChart.Mesh()

		root, err := isochart.Partition(compMesh, isoOpts)
		if err != nil {
			return nil, newError(InvalidTopology, err, "partitioning connected component %d", i)
		}
		leaves := root.FlattenLeaves()
		for _, leaf := range leaves {
			if !leaf.Splittable && leaf.Stretch > isoOpts.MaxStretch {
				blockedBySplit = true
			}
		}
		merged, err := isochart.MergeSmallCharts(compMesh, leaves, isoOpts)
		if err != nil {
			return nil, newError(NumericFailure, err, "merging small charts in component %d", i)
		}
		for _, node := range merged {
			allCharts = append(allCharts, node.Chart)
			componentParents = append(componentParents, compChart)
		}

		logf("component %d/%d: %d charts", i+1, len(components), len(merged))
		if !reporter.poll(i + 1) {
			return nil, ErrCanceled
		}
	}

	packerOpts := packer.Options{Width: opts.Width, Height: opts.Height, Gutter: opts.Gutter}
	atlas, err := packer.Pack(allCharts, packerOpts)
	if err != nil {
		return nil, newError(InvalidArgument, err, "packing %d charts", len(allCharts))
	}
	packer.Normalize(atlas, packerOpts)

	if !reporter.poll(len(components) + 1) {
		return nil, ErrCanceled
	}

	out := assembleResult(allCharts, componentParents)
	out.RunID = runID
	if blockedBySplit && opts.MaxChartNumber > 0 && len(allCharts) < opts.MaxChartNumber {
		out.Status = NonSplittableBlocked
		logf("chart count %d below requested %d due to non-splittable edges", len(allCharts), opts.MaxChartNumber)
	}
	logf("assembled atlas: %d vertices, %d faces, %d charts, stretch=%.4f", len(out.Positions), len(out.Indices), out.ChartCount, out.Stretch)
	return out, nil
}

func validateCreateAtlasOptions(opts CreateAtlasOptions) error {
	if len(opts.Positions) == 0 || len(opts.Indices) == 0 {
		return newError(InvalidArgument, nil, "Positions and Indices must be non-empty")
	}
	for i, tri := range opts.Indices {
		for _, v := range tri {
			if v < 0 || v >= len(opts.Positions) {
				return newError(InvalidArgument, nil, "face %d references out-of-range vertex %d", i, v)
			}
		}
	}
	if opts.FaceIMT != nil && len(opts.FaceIMT) != len(opts.Indices) {
		return newError(InvalidArgument, nil, "FaceIMT length %d must match Indices length %d", len(opts.FaceIMT), len(opts.Indices))
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		return newError(InvalidArgument, nil, "Width and Height must be positive")
	}
	if opts.MaxStretch < 0 {
		return newError(InvalidArgument, nil, "MaxStretch must be non-negative")
	}
	return nil
}

// buildRepairedMesh constructs the working mesh, attaches the caller's
// non-splittable-edge and IMT hints, and repairs it (degenerate-face
// removal plus bowtie splitting) before any partitioning runs.
func buildRepairedMesh(opts CreateAtlasOptions) (*mesh.Mesh, error) {
	m, err := mesh.New(opts.Positions, opts.Indices)
	if err != nil {
		return nil, newError(InvalidTopology, err, "building mesh")
	}

	if len(opts.NonSplittableEdges) > 0 {
		m.NonSplittable = make(map[mesh.Edge]bool, len(opts.NonSplittableEdges))
		for _, e := range opts.NonSplittableEdges {
			m.NonSplittable[mesh.NewEdge(mesh.VertexID(e[0]), mesh.VertexID(e[1]))] = true
		}
	}

	if len(opts.FaceIMT) > 0 {
		applyFaceIMT(m, opts.Indices, opts.FaceIMT)
	}

	if _, _, err := m.Repair(degenerateFaceAreaEpsilon); err != nil {
		return nil, newError(InvalidTopology, err, "repairing mesh")
	}
	return m, nil
}

// applyFaceIMT averages each face's IMT onto its three corner
// vertices, area-weighted, the same accumulation perVertexStretch uses
// to turn a per-face quantity into a per-vertex one.
func applyFaceIMT(m *mesh.Mesh, indices [][3]int, faceIMT []mesh.IMT) {
	weight := make([]float64, len(m.Vertices))
	accum := make([]mesh.IMT, len(m.Vertices))
	for fi, tri := range indices {
		area := m.FaceArea(mesh.FaceID(fi))
		for _, v := range tri {
			accum[v] = accum[v].Add(faceIMT[fi].Scale(area))
			weight[v] += area
		}
	}
	for v := range m.Vertices {
		if weight[v] > 0 {
			m.Vertices[v].IMT = accum[v].Scale(1 / weight[v])
		}
	}
}

// assembleResult flattens every chart's local (position, uv) pairs
// into one new vertex buffer, remapping each chart's local vertex id
// back through its connected-component parent to the caller's original
// vertex index.
func assembleResult(charts []*mesh.Chart, componentParents []*mesh.Chart) *AtlasResult {
	out := &AtlasResult{ChartCount: len(charts)}

	var totalArea, weightedStretch float64
	for ci, chart := range charts {
		parent := componentParents[ci]
		sub := chart.Mesh()
		base := len(out.Positions)
		for v := 0; v < sub.NumVertices(); v++ {
			componentLocalID := chart.ParentVertex[v]
			originalID := parent.ParentVertex[componentLocalID]
			out.Positions = append(out.Positions, sub.Vertices[v].Position)
			out.UVs = append(out.UVs, mesh.Coord2{U: chart.UV[v].U, V: chart.UV[v].V})
			out.VertexRemap = append(out.VertexRemap, int(originalID))
		}
		for fi := 0; fi < sub.NumFaces(); fi++ {
			face := sub.Faces[fi]
			out.Indices = append(out.Indices, [3]int{
				base + int(face.Vertices[0]),
				base + int(face.Vertices[1]),
				base + int(face.Vertices[2]),
			})
			out.FacePartition = append(out.FacePartition, ci)
		}

		area := chartArea(sub)
		stretch := isochart.ChartStretch(chart)
		totalArea += area
		weightedStretch += area * stretch
	}
	if totalArea > 0 {
		out.Stretch = weightedStretch / totalArea
	}
	return out
}

func chartArea(sub *mesh.Mesh) float64 {
	var area float64
	for fi := 0; fi < sub.NumFaces(); fi++ {
		area += sub.FaceArea(mesh.FaceID(fi))
	}
	return area
}
