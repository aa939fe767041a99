package geometry2D

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Points projects coordinate tuples onto the plane using the first two
// components. Tuples with fewer than two components map to zero in the
// missing dimensions.
func Points(coords [][]float64) (pts []r2.Vec) {
	pts = make([]r2.Vec, len(coords))
	for i, c := range coords {
		if len(c) > 0 {
			pts[i].X = c[0]
		}
		if len(c) > 1 {
			pts[i].Y = c[1]
		}
	}
	return
}

// Area returns the signed area of the polygon through pts, positive for
// counterclockwise order. The ring is closed implicitly.
func Area(pts []r2.Vec) (area float64) {
	/*
		Algorithm: Green's theorem in the plane
	*/
	n := len(pts)
	if n < 3 {
		return 0
	}
	for i := 0; i < n; i++ {
		area += r2.Cross(pts[i], pts[(i+1)%n])
	}
	return 0.5 * area
}

// Centroid returns the area centroid of the polygon. Degenerate polygons
// (zero area) return the vertex mean.
func Centroid(pts []r2.Vec) (ct r2.Vec) {
	/*
		From: https://en.wikipedia.org/wiki/Centroid#Centroid_of_a_polygon
	*/
	n := len(pts)
	if n == 0 {
		return
	}
	area := Area(pts)
	if area == 0 {
		for _, p := range pts {
			ct = r2.Add(ct, p)
		}
		return r2.Scale(1/float64(n), ct)
	}
	for i := 0; i < n; i++ {
		p0, p1 := pts[i], pts[(i+1)%n]
		ct = r2.Add(ct, r2.Scale(r2.Cross(p0, p1), r2.Add(p0, p1)))
	}
	return r2.Scale(1/(6*area), ct)
}

// Bounds returns the axis-aligned bounding box of pts. An empty input
// returns an inverted box that Union treats as empty.
func Bounds(pts []r2.Vec) (box r2.Box) {
	box = EmptyBox()
	for _, p := range pts {
		box.Min.X = math.Min(box.Min.X, p.X)
		box.Min.Y = math.Min(box.Min.Y, p.Y)
		box.Max.X = math.Max(box.Max.X, p.X)
		box.Max.Y = math.Max(box.Max.Y, p.Y)
	}
	return
}

// EmptyBox is the identity for Union
func EmptyBox() r2.Box {
	return r2.Box{
		Min: r2.Vec{X: math.Inf(1), Y: math.Inf(1)},
		Max: r2.Vec{X: math.Inf(-1), Y: math.Inf(-1)},
	}
}

// IsEmpty reports whether box contains no points
func IsEmpty(box r2.Box) bool {
	return box.Min.X > box.Max.X || box.Min.Y > box.Max.Y
}

// Union returns the smallest box containing a and b
func Union(a, b r2.Box) r2.Box {
	return r2.Box{
		Min: r2.Vec{X: math.Min(a.Min.X, b.Min.X), Y: math.Min(a.Min.Y, b.Min.Y)},
		Max: r2.Vec{X: math.Max(a.Max.X, b.Max.X), Y: math.Max(a.Max.Y, b.Max.Y)},
	}
}

// Scale grows or shrinks box about its center
func Scale(box r2.Box, scale float64) r2.Box {
	center := r2.Scale(0.5, r2.Add(box.Min, box.Max))
	half := r2.Scale(0.5*scale, r2.Sub(box.Max, box.Min))
	return r2.Box{Min: r2.Sub(center, half), Max: r2.Add(center, half)}
}
