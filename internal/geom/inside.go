package geom

import "github.com/paulmach/orb"

// IsInside reports whether p lies inside ring using the even-odd rule: a ray
// cast from p towards +x crosses the ring an odd number of times. The ring is
// implicitly closed. Points exactly on an edge may go either way.
func IsInside(p orb.Point, ring orb.Ring) bool {
	x, y := p[0], p[1]
	inside := false
	for i, j := 0, len(ring)-1; i < len(ring); j, i = i, i+1 {
		xi, yi := ring[i][0], ring[i][1]
		xj, yj := ring[j][0], ring[j][1]
		// yi != yj whenever the first clause holds
		if (yi > y) != (yj > y) && x < (xj-xi)*(y-yi)/(yj-yi)+xi {
			inside = !inside
		}
	}
	return inside
}
