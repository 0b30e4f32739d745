package mesh

import (
	"github.com/golang/geo/r3"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

// Properties is the feature metadata carried into the mesh.
type Properties struct {
	Name  string
	ISOA3 string
}

// FeatureMesh is the triangulated surface of one feature on the sphere.
// X, Y and Z hold one value per vertex. Triangles holds index triples into
// them. Planar keeps the (lon, lat) pair each vertex was projected from.
type FeatureMesh struct {
	Index        int
	Properties   Properties
	GeometryType string
	Color        colorful.Color

	X, Y, Z   []float64
	Planar    []float64
	Triangles []int

	// Rings is the number of rings in the geometry, Empty how many of them
	// produced no triangles.
	Rings, Empty int
}

// Len returns the number of vertices.
func (m *FeatureMesh) Len() int { return len(m.X) }

// Count returns the number of triangles.
func (m *FeatureMesh) Count() int { return len(m.Triangles) / 3 }

// Vertex returns vertex i on the sphere.
func (m *FeatureMesh) Vertex(i int) r3.Vector {
	return r3.Vector{X: m.X[i], Y: m.Y[i], Z: m.Z[i]}
}

// LonLat returns the planar point vertex i was projected from.
func (m *FeatureMesh) LonLat(i int) orb.Point {
	return orb.Point{m.Planar[2*i], m.Planar[2*i+1]}
}

// Bound returns the planar bounding box of the vertices.
func (m *FeatureMesh) Bound() orb.Bound {
	if len(m.Planar) < 2 {
		return orb.Bound{}
	}
	mp := make(orb.MultiPoint, len(m.Planar)/2)
	for i := range mp {
		mp[i] = m.LonLat(i)
	}
	return mp.Bound()
}

// Validate checks the buffer invariants: parallel coordinate arrays and
// whole triangles indexing existing vertices.
func (m *FeatureMesh) Validate() error {
	n := len(m.X)
	if len(m.Y) != n || len(m.Z) != n {
		return errors.Errorf("feature %d: coordinate arrays differ in length (%d, %d, %d)", m.Index, n, len(m.Y), len(m.Z))
	}
	if m.Planar != nil && len(m.Planar) != 2*n {
		return errors.Errorf("feature %d: %d planar values for %d vertices", m.Index, len(m.Planar), n)
	}
	if len(m.Triangles)%3 != 0 {
		return errors.Errorf("feature %d: %d triangle indices is not a multiple of 3", m.Index, len(m.Triangles))
	}
	for k, i := range m.Triangles {
		if i < 0 || i >= n {
			return errors.Errorf("feature %d: triangle %d references vertex %d of %d", m.Index, k/3, i, n)
		}
	}
	return nil
}
