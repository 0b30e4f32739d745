package geom

import "github.com/paulmach/orb"

// Pipeline turns one ring into a triangulation constrained to its shape:
// densify with interior samples, triangulate, drop exterior triangles.
type Pipeline struct {
	// Density is the interior grid step, DefaultDensity when zero.
	Density float64
	// Triangulator defaults to Delaunator.
	Triangulator Triangulator
}

// Ring runs the pipeline on ring. Rings with fewer than three points, zero
// area or an empty bounding box give an empty triangulation. The returned
// buffers are freshly allocated, so rings may be processed concurrently.
func (p Pipeline) Ring(ring orb.Ring) Triangulation {
	if len(ring) < 3 {
		return Triangulation{}
	}
	step := p.Density
	if step == 0 {
		step = DefaultDensity
	}
	tr := p.Triangulator
	if tr == nil {
		tr = Delaunator{}
	}

	t := tr.Triangulate(SampleInterior(ring, step))
	t.Triangles = FilterExterior(t, ring)
	return t
}
