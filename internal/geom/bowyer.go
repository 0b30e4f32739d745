package geom

import (
	"math"

	"github.com/paulmach/orb"
)

// BowyerWatson is an incremental Delaunay triangulator: points are inserted
// one at a time into a super triangle enclosing the input, and every
// triangle whose circumcircle contains the new point is replaced by a fan
// around it. It needs no external code and is quadratic in the number of
// points.
type BowyerWatson struct{}

type bwTriangle struct {
	a, b, c    int
	cx, cy, r2 float64
}

type bwEdge struct{ a, b int }

// bwSuperScale sizes the super triangle in units of the input extent. Its
// circumcircles must be close to half-planes near the input, or triangles on
// the hull of elongated inputs keep a super vertex and are lost.
const bwSuperScale = 1e6

// newBWTriangle computes the circumcircle of a, b, c. Triangles with
// |d| <= eps are degenerate.
func newBWTriangle(pts []orb.Point, a, b, c int, eps float64) bwTriangle {
	t := bwTriangle{a: a, b: b, c: c}
	ax, ay := pts[a][0], pts[a][1]
	bx, by := pts[b][0], pts[b][1]
	cx, cy := pts[c][0], pts[c][1]

	d := 2 * (ax*(by-cy) + bx*(cy-ay) + cx*(ay-by))
	if math.Abs(d) <= eps {
		t.r2 = math.Inf(1)
		return t
	}
	ux := (ax*ax+ay*ay)*(by-cy) + (bx*bx+by*by)*(cy-ay) + (cx*cx+cy*cy)*(ay-by)
	uy := (ax*ax+ay*ay)*(cx-bx) + (bx*bx+by*by)*(ax-cx) + (cx*cx+cy*cy)*(bx-ax)
	t.cx, t.cy = ux/d, uy/d
	t.r2 = (t.cx-ax)*(t.cx-ax) + (t.cy-ay)*(t.cy-ay)
	return t
}

// inCircumcircle reports whether p is strictly inside the circumcircle.
// Degenerate triangles have no circumcircle.
func (t bwTriangle) inCircumcircle(p orb.Point) bool {
	if math.IsInf(t.r2, 1) {
		return false
	}
	dx, dy := p[0]-t.cx, p[1]-t.cy
	return dx*dx+dy*dy < t.r2
}

func (BowyerWatson) Triangulate(points []orb.Point) Triangulation {
	t := Triangulation{Coords: Flatten(points)}
	n := len(points)
	if n < 3 {
		return t
	}

	box := orb.MultiPoint(points).Bound()
	if !finite(box.Min[0], box.Min[1], box.Max[0], box.Max[1]) {
		return t
	}
	delta := math.Max(box.Max[0]-box.Min[0], box.Max[1]-box.Min[1])
	if delta == 0 {
		return t
	}
	mid := box.Center()
	s := bwSuperScale * delta
	eps := 1e-12 * delta * delta

	// super triangle corners are stored after the input points
	pts := make([]orb.Point, 0, n+3)
	pts = append(pts, points...)
	pts = append(pts,
		orb.Point{mid[0] - s, mid[1] - s},
		orb.Point{mid[0], mid[1] + s},
		orb.Point{mid[0] + s, mid[1] - s},
	)
	tris := []bwTriangle{newBWTriangle(pts, n, n+1, n+2, eps)}

	seen := make(map[orb.Point]struct{}, n)
	for i := 0; i < n; i++ {
		p := pts[i]
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}

		var bad []int
		for k, tr := range tris {
			if tr.inCircumcircle(p) {
				bad = append(bad, k)
			}
		}
		if len(bad) == 0 {
			continue
		}

		// cavity boundary: edges that belong to exactly one bad triangle
		shared := make(map[bwEdge]int, 3*len(bad))
		for _, k := range bad {
			for _, e := range tris[k].edges() {
				shared[e.key()]++
			}
		}
		var boundary []bwEdge
		for _, k := range bad {
			for _, e := range tris[k].edges() {
				if shared[e.key()] == 1 {
					boundary = append(boundary, e)
				}
			}
		}

		kept := make([]bwTriangle, 0, len(tris)-len(bad)+len(boundary))
		b := 0
		for k, tr := range tris {
			if b < len(bad) && bad[b] == k {
				b++
				continue
			}
			kept = append(kept, tr)
		}
		for _, e := range boundary {
			kept = append(kept, newBWTriangle(pts, e.a, e.b, i, eps))
		}
		tris = kept
	}

	for _, tr := range tris {
		if tr.a >= n || tr.b >= n || tr.c >= n {
			continue
		}
		if math.Abs(signedArea(pts[tr.a], pts[tr.b], pts[tr.c])) <= eps {
			continue
		}
		t.Triangles = append(t.Triangles, tr.a, tr.b, tr.c)
	}
	return t
}

func (t bwTriangle) edges() [3]bwEdge {
	return [3]bwEdge{{t.a, t.b}, {t.b, t.c}, {t.c, t.a}}
}

func (e bwEdge) key() bwEdge {
	if e.a > e.b {
		return bwEdge{e.b, e.a}
	}
	return e
}

func signedArea(a, b, c orb.Point) float64 {
	return ((b[0]-a[0])*(c[1]-a[1]) - (c[0]-a[0])*(b[1]-a[1])) / 2
}
