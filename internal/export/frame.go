// Package export writes feature meshes to files other tools can open: an
// SVG wireframe and a PNG preview of the planar triangulation, and a
// Wavefront OBJ of the sphere surface.
package export

import (
	"github.com/paulmach/orb"

	"globemesh/internal/mesh"
)

// DefaultWidth is the image width used when none is given.
const DefaultWidth = 1024

const padding = 8

var world = orb.Bound{Min: orb.Point{-180, -90}, Max: orb.Point{180, 90}}

// frame maps longitude/latitude onto image pixels with an equirectangular
// projection fitted to the meshes, north up.
type frame struct {
	bound         orb.Bound
	scale         float64
	width, height int
}

func newFrame(meshes []*mesh.FeatureMesh, width int) frame {
	if width <= 2*padding {
		width = DefaultWidth
	}
	var bound orb.Bound
	first := true
	for _, m := range meshes {
		if m.Len() == 0 {
			continue
		}
		if first {
			bound, first = m.Bound(), false
			continue
		}
		bound = bound.Union(m.Bound())
	}
	if first || bound.Right() <= bound.Left() || bound.Top() <= bound.Bottom() {
		bound = world
	}

	f := frame{bound: bound, width: width}
	f.scale = float64(width-2*padding) / (bound.Right() - bound.Left())
	f.height = int(f.scale*(bound.Top()-bound.Bottom())+0.5) + 2*padding
	return f
}

// pixel returns the image position of p.
func (f frame) pixel(p orb.Point) (x, y float64) {
	x = padding + (p[0]-f.bound.Left())*f.scale
	y = padding + (f.bound.Top()-p[1])*f.scale
	return x, y
}

// corners returns the planar corners of triangle n of m.
func corners(m *mesh.FeatureMesh, n int) [3]orb.Point {
	return [3]orb.Point{
		m.LonLat(m.Triangles[3*n]),
		m.LonLat(m.Triangles[3*n+1]),
		m.LonLat(m.Triangles[3*n+2]),
	}
}
