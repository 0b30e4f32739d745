package sphere

import (
	"math"

	"github.com/golang/geo/r3"
)

// View is an orthographic camera looking at the sphere centre from above
// the point (Lon, Lat). Apply rotates a sphere point into camera space: x to
// the right, y up and z towards the viewer.
type View struct {
	Lon, Lat float64
}

// Apply rotates v into camera space.
func (vw View) Apply(v r3.Vector) r3.Vector {
	// yaw brings the centre longitude onto +z, pitch tilts it to the centre
	a := -math.Pi/2 - vw.Lon*rad
	sa, ca := math.Sincos(a)
	x := v.X*ca + v.Z*sa
	z := -v.X*sa + v.Z*ca

	b := vw.Lat * rad
	sb, cb := math.Sincos(b)
	y := v.Y*cb - z*sb
	z = v.Y*sb + z*cb
	return r3.Vector{X: x, Y: y, Z: z}
}

// Unapply rotates a camera-space point back into sphere space.
func (vw View) Unapply(c r3.Vector) r3.Vector {
	b := vw.Lat * rad
	sb, cb := math.Sincos(b)
	y := c.Y*cb + c.Z*sb
	z := -c.Y*sb + c.Z*cb

	a := -math.Pi/2 - vw.Lon*rad
	sa, ca := math.Sincos(a)
	return r3.Vector{X: c.X*ca - z*sa, Y: y, Z: c.X*sa + z*ca}
}

// Visible reports whether the camera-space point faces the viewer.
func Visible(c r3.Vector) bool { return c.Z > 0 }

// Rotate returns the view moved by dlon and dlat degrees. Latitude is clamped
// to the poles and longitude wrapped into [-180, 180).
func (vw View) Rotate(dlon, dlat float64) View {
	lon := math.Mod(vw.Lon+dlon+180, 360)
	if lon < 0 {
		lon += 360
	}
	return View{
		Lon: lon - 180,
		Lat: math.Max(-90, math.Min(90, vw.Lat+dlat)),
	}
}
