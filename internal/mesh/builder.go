// Package mesh turns GeoJSON documents into per-feature triangle meshes on a
// sphere.
package mesh

import (
	"context"
	"io"
	"log"
	"runtime"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"golang.org/x/sync/errgroup"

	"globemesh/internal/geom"
	"globemesh/internal/sphere"
)

// Property keys tried, in order, for a feature's name and ISO code.
var (
	DefaultNameKeys = []string{"NAME", "name", "ADMIN"}
	DefaultISOKeys  = []string{"ISO_A3", "iso_a3"}
)

// Options configure a Builder. Zero values select defaults.
type Options struct {
	Radius   float64
	Pipeline geom.Pipeline
	Colors   ColorPicker
	// Workers bounds the rings triangulated at once. 0 means GOMAXPROCS.
	Workers int

	NameKeys, ISOKeys []string
	Logger            *log.Logger
}

// Builder assembles feature meshes.
type Builder struct {
	opts Options
}

func NewBuilder(opts Options) *Builder {
	if !(opts.Radius > 0) {
		opts.Radius = sphere.DefaultRadius
	}
	if opts.Colors == nil {
		opts.Colors = NewRandomPicker(DefaultPalette, 1)
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}
	if len(opts.NameKeys) == 0 {
		opts.NameKeys = DefaultNameKeys
	}
	if len(opts.ISOKeys) == 0 {
		opts.ISOKeys = DefaultISOKeys
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard, "", 0)
	}
	return &Builder{opts: opts}
}

// BuildMeshes builds doc with default options and the given radius.
func BuildMeshes(doc *Document, radius float64) ([]*FeatureMesh, error) {
	return NewBuilder(Options{Radius: radius}).Build(context.Background(), doc)
}

type ringJob struct {
	feature int
	ring    orb.Ring
}

type ringResult struct {
	planar     []float64
	triangles  []int
	xs, ys, zs []float64
}

// Build returns one mesh per feature of doc, in document order. Every
// geometry is checked before any work starts, so an *InvalidGeometryError
// comes with no meshes. Rings are triangulated concurrently and merged back
// in order, each ring's triangle indices offset past the vertices before it.
func (b *Builder) Build(ctx context.Context, doc *Document) ([]*FeatureMesh, error) {
	start := time.Now()

	meshes := make([]*FeatureMesh, len(doc.Features))
	var jobs []ringJob
	for i, f := range doc.Features {
		rings, typ, err := featureRings(i, f)
		if err != nil {
			return nil, err
		}
		meshes[i] = &FeatureMesh{
			Index:        i,
			Properties:   b.properties(f.Properties),
			GeometryType: typ,
			Rings:        len(rings),
		}
		for _, r := range rings {
			jobs = append(jobs, ringJob{feature: i, ring: r})
		}
	}
	for i, m := range meshes {
		m.Color = b.opts.Colors.Pick(i)
	}

	results := make([]ringResult, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.opts.Workers)
	for k := range jobs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			t := b.opts.Pipeline.Ring(jobs[k].ring)
			if t.Empty() {
				return nil
			}
			xs, ys, zs := sphere.ProjectCoords(t.Coords, b.opts.Radius)
			results[k] = ringResult{planar: t.Coords, triangles: t.Triangles, xs: xs, ys: ys, zs: zs}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var triangles int
	for k, job := range jobs {
		m, r := meshes[job.feature], results[k]
		if len(r.triangles) == 0 {
			m.Empty++
			b.opts.Logger.Printf("feature %d: ring of %d points has no triangles", job.feature, len(job.ring))
			continue
		}
		offset := len(m.X)
		m.X = append(m.X, r.xs...)
		m.Y = append(m.Y, r.ys...)
		m.Z = append(m.Z, r.zs...)
		m.Planar = append(m.Planar, r.planar...)
		for _, i := range r.triangles {
			m.Triangles = append(m.Triangles, i+offset)
		}
		triangles += len(r.triangles) / 3
	}

	b.opts.Logger.Printf("built %d features, %d rings, %d triangles in %s",
		len(meshes), len(jobs), triangles, time.Since(start).Round(time.Millisecond))
	return meshes, nil
}

// featureRings flattens a feature's polygonal geometry into its rings.
func featureRings(i int, f *geojson.Feature) ([]orb.Ring, string, error) {
	if f == nil || f.Geometry == nil {
		return nil, "", &InvalidGeometryError{Feature: i}
	}
	switch g := f.Geometry.(type) {
	case orb.Polygon:
		return g, g.GeoJSONType(), nil
	case orb.MultiPolygon:
		var rings []orb.Ring
		for _, p := range g {
			rings = append(rings, p...)
		}
		return rings, g.GeoJSONType(), nil
	}
	return nil, "", &InvalidGeometryError{Type: f.Geometry.GeoJSONType(), Feature: i}
}

func (b *Builder) properties(p geojson.Properties) Properties {
	return Properties{
		Name:  lookup(p, b.opts.NameKeys),
		ISOA3: lookup(p, b.opts.ISOKeys),
	}
}

// lookup returns the first string value among keys.
func lookup(p geojson.Properties, keys []string) string {
	for _, k := range keys {
		if s, ok := p[k].(string); ok && s != "" {
			return s
		}
	}
	return ""
}
