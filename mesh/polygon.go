package mesh

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/notargets/vismesh/geometry2D"
)

// ElementPolygon is the decoded shape of one element. Vertices keep every
// coordinate dimension of the node table; planar measures use x and y only.
type ElementPolygon struct {
	Element  int         // position of the record in the stream
	Tag      ElementTag  // record tag the element was decoded from
	Nodes    []int       // live node indices, in stream order
	Vertices [][]float64 // coordinates of Nodes [nverts][dim]
}

func (p ElementPolygon) NumVertices() int { return len(p.Vertices) }

// XY returns the planar projection of the vertices
func (p ElementPolygon) XY() []r2.Vec { return geometry2D.Points(p.Vertices) }

// Area is the signed planar area
func (p ElementPolygon) Area() float64 { return geometry2D.Area(p.XY()) }

func (p ElementPolygon) Centroid() r2.Vec { return geometry2D.Centroid(p.XY()) }

func (p ElementPolygon) Bounds() r2.Box { return geometry2D.Bounds(p.XY()) }

// MeshBounds is the planar bounding box of all polygons
func MeshBounds(polygons []ElementPolygon) (box r2.Box) {
	box = geometry2D.EmptyBox()
	for _, p := range polygons {
		box = geometry2D.Union(box, p.Bounds())
	}
	return
}

// CountByTag tallies polygons per source tag
func CountByTag(polygons []ElementPolygon) (counts map[ElementTag]int) {
	counts = make(map[ElementTag]int)
	for _, p := range polygons {
		counts[p.Tag]++
	}
	return
}
