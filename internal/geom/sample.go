package geom

import (
	"math"

	"github.com/paulmach/orb"
)

// DefaultDensity is the interior grid step in input units (degrees).
// Smaller values give denser meshes.
const DefaultDensity = 5.0

// SampleInterior returns the ring's points followed by the points of a
// regular grid over the ring's bounding box that fall inside the ring. The
// grid starts half a step in from the box minimum; x is the outer loop and y
// the inner one. Grid coordinates come from the index, not repeated
// addition, so steps not exact in binary do not drift. A non-positive step
// adds no samples.
func SampleInterior(ring orb.Ring, step float64) []orb.Point {
	res := make([]orb.Point, 0, len(ring))
	res = append(res, ring...)
	if !(step > 0) || len(ring) < 3 {
		return res
	}

	box := ring.Bound()
	if !finite(box.Min[0], box.Min[1], box.Max[0], box.Max[1]) {
		return res
	}
	for i := 0; ; i++ {
		x := box.Min[0] + step/2 + float64(i)*step
		if x >= box.Max[0] {
			break
		}
		for j := 0; ; j++ {
			y := box.Min[1] + step/2 + float64(j)*step
			if y >= box.Max[1] {
				break
			}
			p := orb.Point{x, y}
			if IsInside(p, ring) {
				res = append(res, p)
			}
		}
	}
	return res
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
