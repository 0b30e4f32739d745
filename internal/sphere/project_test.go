package sphere

import (
	"testing"

	"github.com/golang/geo/r3"
	"github.com/stretchr/testify/assert"
)

const eps = 1e-12

func assertVector(t *testing.T, want, got r3.Vector) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, eps, "x")
	assert.InDelta(t, want.Y, got.Y, eps, "y")
	assert.InDelta(t, want.Z, got.Z, eps, "z")
}

func TestProjectAxes(t *testing.T) {
	cases := []struct {
		lon, lat float64
		want     r3.Vector
	}{
		{0, 0, r3.Vector{X: 2}},
		{90, 0, r3.Vector{Z: -2}},
		{-90, 0, r3.Vector{Z: 2}},
		{180, 0, r3.Vector{X: -2}},
		{0, 90, r3.Vector{Y: 2}},
		{123, -90, r3.Vector{Y: -2}},
	}
	for _, c := range cases {
		assertVector(t, c.want, Project(c.lon, c.lat, DefaultRadius))
	}
}

func TestProjectRadius(t *testing.T) {
	for _, r := range []float64{0.5, 1, 2, 6371} {
		for _, ll := range [][2]float64{{0, 0}, {45, 45}, {-120, 10}, {170, -80}} {
			v := Project(ll[0], ll[1], r)
			assert.InDelta(t, r, v.Norm(), r*eps)
		}
	}
}

func TestUnproject(t *testing.T) {
	for _, ll := range [][2]float64{{0, 0}, {45, 45}, {-120, 10}, {170, -80}, {-179.5, 3}} {
		lon, lat := Unproject(Project(ll[0], ll[1], 3))
		assert.InDelta(t, ll[0], lon, 1e-9)
		assert.InDelta(t, ll[1], lat, 1e-9)
	}
	lon, lat := Unproject(r3.Vector{})
	assert.Zero(t, lon)
	assert.Zero(t, lat)
}

func TestProjectCoords(t *testing.T) {
	xs, ys, zs := ProjectCoords([]float64{0, 0, 90, 0, 0, 90}, 1)
	assert.Len(t, xs, 3)
	assert.Len(t, ys, 3)
	assert.Len(t, zs, 3)
	assertVector(t, r3.Vector{X: 1}, r3.Vector{X: xs[0], Y: ys[0], Z: zs[0]})
	assertVector(t, r3.Vector{Z: -1}, r3.Vector{X: xs[1], Y: ys[1], Z: zs[1]})
	assertVector(t, r3.Vector{Y: 1}, r3.Vector{X: xs[2], Y: ys[2], Z: zs[2]})

	xs, ys, zs = ProjectCoords(nil, 1)
	assert.Empty(t, xs)
	assert.Empty(t, ys)
	assert.Empty(t, zs)
}

func TestViewCentre(t *testing.T) {
	for _, ll := range [][2]float64{{0, 0}, {30, 40}, {-100, -20}, {179, 89}} {
		vw := View{Lon: ll[0], Lat: ll[1]}
		c := vw.Apply(Project(ll[0], ll[1], 1))
		assertVector(t, r3.Vector{Z: 1}, c)
		assert.True(t, Visible(c))

		back := vw.Apply(Project(ll[0]+180, -ll[1], 1))
		assert.False(t, Visible(back))
	}
}

func TestViewOrientation(t *testing.T) {
	vw := View{Lon: 20, Lat: 10}
	east := vw.Apply(Project(21, 10, 1))
	north := vw.Apply(Project(20, 11, 1))
	assert.Greater(t, east.X, 0.0)
	assert.Greater(t, north.Y, 0.0)
}

func TestViewUnapply(t *testing.T) {
	vw := View{Lon: -73, Lat: 41}
	for _, ll := range [][2]float64{{0, 0}, {-73, 41}, {100, -30}, {12, 88}} {
		v := Project(ll[0], ll[1], 2)
		assertVector(t, v, vw.Unapply(vw.Apply(v)))
	}
	lon, lat := Unproject(vw.Unapply(r3.Vector{Z: 1}))
	assert.InDelta(t, -73, lon, 1e-9)
	assert.InDelta(t, 41, lat, 1e-9)
}

func TestViewRotate(t *testing.T) {
	vw := View{}.Rotate(190, 100)
	assert.InDelta(t, -170, vw.Lon, eps)
	assert.Equal(t, 90.0, vw.Lat)

	vw = View{Lon: -175}.Rotate(-10, -200)
	assert.InDelta(t, 175, vw.Lon, eps)
	assert.Equal(t, -90.0, vw.Lat)
}
