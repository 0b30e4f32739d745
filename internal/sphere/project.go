// Package sphere maps geographic coordinates in degrees onto a sphere
// centred at the origin. The y axis points to the north pole, longitude 0
// lies on +x and longitude 90 on -z.
package sphere

import (
	"math"

	"github.com/golang/geo/r3"
)

// DefaultRadius is the sphere radius used when none is configured.
const DefaultRadius = 2.0

const rad = math.Pi / 180

// Project returns the point at longitude lon and latitude lat, both in
// degrees, on a sphere of the given radius.
func Project(lon, lat, radius float64) r3.Vector {
	phi, theta := lat*rad, lon*rad
	return r3.Vector{
		X: math.Cos(phi) * math.Cos(theta) * radius,
		Y: math.Sin(phi) * radius,
		Z: -math.Cos(phi) * math.Sin(theta) * radius,
	}
}

// Unproject is the inverse of Project for points off the origin. Longitude
// is in [-180, 180] and latitude in [-90, 90].
func Unproject(v r3.Vector) (lon, lat float64) {
	n := v.Norm()
	if n == 0 {
		return 0, 0
	}
	lat = math.Asin(math.Max(-1, math.Min(1, v.Y/n))) / rad
	lon = math.Atan2(-v.Z, v.X) / rad
	return lon, lat
}

// ProjectCoords projects a flat (lon0, lat0, lon1, lat1, ...) coordinate
// array and returns the three coordinate arrays, one value per point.
func ProjectCoords(coords []float64, radius float64) (xs, ys, zs []float64) {
	n := len(coords) / 2
	xs = make([]float64, n)
	ys = make([]float64, n)
	zs = make([]float64, n)
	for i := 0; i < n; i++ {
		v := Project(coords[2*i], coords[2*i+1], radius)
		xs[i], ys[i], zs[i] = v.X, v.Y, v.Z
	}
	return xs, ys, zs
}
