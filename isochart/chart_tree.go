package isochart

import "github.com/uvatlas-go/uvatlas/mesh"

// ChartNode is one node of the recursive partition tree: the chart it
// represents, and the two children it was split into if a cut was
// accepted. Adapted from model3d's MeshHierarchy parent/children tree,
// generalized from "contained solid" parent/child geometry to "split
// into two subcharts" partition/child geometry.
type ChartNode struct {
	Chart    *mesh.Chart
	Shape    Shape
	Stretch  float64
	Children [2]*ChartNode

	// Splittable is false once splitChart has rejected a split of this
	// node (too few landmarks, a side below MinChartFaceCount, or a cut
	// across a non-splittable edge). A node left unsplit because it met
	// the stretch bound, was too small or hit MaxChartNumber keeps
	// Splittable true.
	Splittable bool
}

func newChartNode(c *mesh.Chart, shape Shape, stretch float64) *ChartNode {
	return &ChartNode{Chart: c, Shape: shape, Stretch: stretch, Splittable: true}
}

// IsLeaf reports whether this node was never split.
func (n *ChartNode) IsLeaf() bool {
	return n.Children[0] == nil && n.Children[1] == nil
}

// FlattenLeaves walks the tree and returns every leaf chart in
// depth-first order, the final chart decomposition of the mesh.
func (n *ChartNode) FlattenLeaves() []*ChartNode {
	if n.IsLeaf() {
		return []*ChartNode{n}
	}
	var out []*ChartNode
	for _, child := range n.Children {
		if child != nil {
			out = append(out, child.FlattenLeaves()...)
		}
	}
	return out
}

// Count returns the total number of nodes in the tree, leaves and
// internal nodes alike.
func (n *ChartNode) Count() int {
	total := 1
	for _, child := range n.Children {
		if child != nil {
			total += child.Count()
		}
	}
	return total
}
