package geom

import "github.com/paulmach/orb"

// FilterExterior returns the triangles of t whose centroid lies inside ring,
// in their original order. Testing against the original ring rather than the
// densified point set is what constrains the triangulation to the ring's
// shape; slivers along concave edges may still be kept or dropped wrongly.
func FilterExterior(t Triangulation, ring orb.Ring) []int {
	kept := make([]int, 0, len(t.Triangles))
	for n := 0; n < t.Count(); n++ {
		if IsInside(t.Centroid(n), ring) {
			kept = append(kept, t.Triangles[3*n:3*n+3]...)
		}
	}
	return kept
}
