package geom

import (
	"github.com/fogleman/delaunay"
	"github.com/paulmach/orb"
)

// A Triangulator computes a planar Delaunay triangulation. Implementations
// must keep the caller's points in order and must not drop or merge any of
// them from the coordinate array; degenerate input gives zero triangles.
type Triangulator interface {
	Triangulate(points []orb.Point) Triangulation
}

// Triangulator names accepted by NewTriangulator.
const (
	DelaunatorName   = "delaunator"
	BowyerWatsonName = "bowyer-watson"
)

// NewTriangulator returns the triangulator registered under name.
func NewTriangulator(name string) (Triangulator, bool) {
	switch name {
	case DelaunatorName, "":
		return Delaunator{}, true
	case BowyerWatsonName:
		return BowyerWatson{}, true
	}
	return nil, false
}

// Delaunator triangulates with the sweep-hull algorithm of
// github.com/fogleman/delaunay.
type Delaunator struct{}

func (Delaunator) Triangulate(points []orb.Point) (t Triangulation) {
	t.Coords = Flatten(points)
	if len(points) < 3 || !finite(t.Coords...) {
		return t
	}

	// The sweep can panic on pathological input. A ring it cannot handle is
	// treated like a degenerate one.
	defer func() {
		if r := recover(); r != nil {
			t.Triangles = nil
		}
	}()

	pts := make([]delaunay.Point, len(points))
	for i, p := range points {
		pts[i] = delaunay.Point{X: p[0], Y: p[1]}
	}
	d, err := delaunay.Triangulate(pts)
	if err != nil {
		// collinear or coincident points
		return t
	}
	if len(d.Triangles) > 0 {
		t.Triangles = append([]int(nil), d.Triangles...)
	}
	return t
}
