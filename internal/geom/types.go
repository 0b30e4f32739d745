package geom

import "github.com/paulmach/orb"

// Triangulation is a flat point coordinate array (x0, y0, x1, y1, ...) and a
// flat array of index triples into it, one triple per triangle.
type Triangulation struct {
	Coords    []float64
	Triangles []int
}

// Len returns the number of points in the coordinate array.
func (t Triangulation) Len() int { return len(t.Coords) / 2 }

// Count returns the number of triangles.
func (t Triangulation) Count() int { return len(t.Triangles) / 3 }

// Empty reports whether the triangulation has no triangles.
func (t Triangulation) Empty() bool { return len(t.Triangles) == 0 }

// Point returns the i-th point of the coordinate array.
func (t Triangulation) Point(i int) orb.Point {
	return orb.Point{t.Coords[2*i], t.Coords[2*i+1]}
}

// Centroid returns the arithmetic mean of the corners of triangle n.
func (t Triangulation) Centroid(n int) orb.Point {
	a, b, c := t.Triangles[3*n], t.Triangles[3*n+1], t.Triangles[3*n+2]
	return orb.Point{
		(t.Coords[2*a] + t.Coords[2*b] + t.Coords[2*c]) / 3,
		(t.Coords[2*a+1] + t.Coords[2*b+1] + t.Coords[2*c+1]) / 3,
	}
}

// Flatten interleaves points into a coordinate array, keeping their order.
func Flatten(points []orb.Point) []float64 {
	flat := make([]float64, 0, 2*len(points))
	for _, p := range points {
		flat = append(flat, p[0], p[1])
	}
	return flat
}
