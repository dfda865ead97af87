package isochart

// Shape categorizes the rough topology of a chart candidate's
// landmark embedding, used to decide how aggressively a chart should
// be split and which parameterizer is likely to succeed first.
type Shape int

const (
	// ShapePlane is a near-flat, disc-like region: its embedding is
	// dominated by a single pair of eigenvalues with little residual,
	// and the boundary is a simple, close-to-convex loop.
	ShapePlane Shape = iota

	// ShapeCylinder is a tube-like region: comparable first and second
	// eigenvalues (the embedding needs both axes about equally) and two
	// boundary loops.
	ShapeCylinder

	// ShapeLonghorn is an elongated, branching region (a thin handle or
	// protrusion) recognized by a high aspect ratio between the
	// embedding's extent along its two axes.
	ShapeLonghorn

	// ShapeGeneral is what Classify returns when no embedding is
	// available (a nil Embedding); every non-nil embedding is classified
	// as one of the three shapes above.
	ShapeGeneral
)

func (s Shape) String() string {
	switch s {
	case ShapePlane:
		return "plane"
	case ShapeCylinder:
		return "cylinder"
	case ShapeLonghorn:
		return "longhorn"
	default:
		return "general"
	}
}

// CylinderEigenRatioFloor is the minimum second/first eigenvalue ratio
// that indicates the embedding genuinely needs two comparable axes,
// characteristic of a wrapped (cylindrical) region rather than a flat
// one.
const CylinderEigenRatioFloor = 0.6

// LonghornAspectFloor is the minimum aspect ratio (embedding extent
// along its dominant axis over the secondary axis) that marks a region
// as elongated.
const LonghornAspectFloor = 4.0

// Classify inspects an embedding's eigen ratio, boundary loop count and
// aspect ratio to assign a coarse Shape. This is a heuristic
// simplification of the literal shape-recognition rules: real UVAtlas
// distinguishes these cases with a battery of geometric tests on the
// 3D surface itself (curvature sign, developability), where this
// implementation uses only the cheaper signals already computed for
// the MDS embedding.
func Classify(e *Embedding, boundaryLoopCount int) Shape {
	if e == nil {
		return ShapeGeneral
	}
	if boundaryLoopCount >= 2 {
		return ShapeCylinder
	}
	aspect := embeddingAspectRatio(e)
	if aspect >= LonghornAspectFloor {
		return ShapeLonghorn
	}
	if e.EigenRatio >= CylinderEigenRatioFloor {
		return ShapeCylinder
	}
	return ShapePlane
}

func embeddingAspectRatio(e *Embedding) float64 {
	if len(e.LandmarkUV) == 0 {
		return 1
	}
	minX, maxX := e.LandmarkUV[0].X, e.LandmarkUV[0].X
	minY, maxY := e.LandmarkUV[0].Y, e.LandmarkUV[0].Y
	for _, p := range e.LandmarkUV {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	spanX, spanY := maxX-minX, maxY-minY
	if spanX < spanY {
		spanX, spanY = spanY, spanX
	}
	if spanY < 1e-9 {
		if spanX < 1e-9 {
			return 1
		}
		return LonghornAspectFloor
	}
	return spanX / spanY
}
