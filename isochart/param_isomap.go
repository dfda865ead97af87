package isochart

import (
	"github.com/uvatlas-go/uvatlas/geodesic"
	"github.com/uvatlas-go/uvatlas/geom2"
	"github.com/uvatlas-go/uvatlas/mesh"
)

// ParameterizeIsomap lays out a chart by projecting every vertex into
// the 2D landmark MDS embedding via the Nyström extension. Unlike
// ParameterizeBarycentric it needs no fixed boundary and tolerates any
// topology a chart's recursive split can produce, which is why
// ParameterizeChart tries it first: it succeeds for nearly every chart,
// leaving the conformal and barycentric parameterizers as fallbacks for
// the charts whose embedding folds.
func ParameterizeIsomap(c *mesh.Chart, opts Options) error {
	sub := c.Mesh()
	engine := geodesic.Select(opts.GeodesicSelector, sub.NumFaces())
	landmarks := SelectLandmarks(sub, nil, nil, MinLandmarkNumber, engine)
	if len(landmarks) < 3 {
		return identityProjection(c)
	}
	embedding := BuildEmbedding(sub, landmarks, engine, chartSignalDistances(sub, landmarks, opts))
	c.UV = toChartUV(embedding.NystromExtend(sub))
	return nil
}

// identityProjection handles degenerate tiny charts (fewer than 3
// usable landmarks) by projecting onto the plane of the chart's first
// face, with vertex 0 as the origin and the direction to vertex 1 as
// the U axis, used only as a last-resort fallback
// for charts too small for a meaningful embedding.
func identityProjection(c *mesh.Chart) error {
	sub := c.Mesh()
	n := sub.NumVertices()
	if n == 0 {
		c.UV = nil
		return nil
	}
	origin := sub.Vertices[0].Position
	var e1, e2 mesh.Coord3D
	if n > 1 {
		e1 = sub.Vertices[1].Position.Sub(origin).Normalize()
	} else {
		e1 = mesh.Coord3D{X: 1}
	}
	normal := sub.FaceNormal(0)
	e2 = normal.Cross(e1).Normalize()

	uv := make([]geom2.Coord, n)
	for i := 0; i < n; i++ {
		rel := sub.Vertices[i].Position.Sub(origin)
		uv[i] = geom2.Coord{X: rel.Dot(e1), Y: rel.Dot(e2)}
	}
	c.UV = toChartUV(uv)
	return nil
}
