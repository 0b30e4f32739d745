package mesh

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkt"
	"github.com/paulmach/orb/geojson"
	"github.com/pkg/errors"
)

// Kind is the top-level container of a document.
type Kind int

const (
	KindFeature Kind = iota
	KindFeatureCollection
	KindGeometryCollection
)

func (k Kind) String() string {
	switch k {
	case KindFeature:
		return "Feature"
	case KindFeatureCollection:
		return "FeatureCollection"
	case KindGeometryCollection:
		return "GeometryCollection"
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Document is a decoded input normalised to a flat feature list. Bare
// geometries (the members of a GeometryCollection, or WKT input) become
// synthetic features with no properties.
type Document struct {
	Kind     Kind
	Features []*geojson.Feature
}

// Geometries returns the geometry of every feature, nil for features that
// have none.
func (d *Document) Geometries() []orb.Geometry {
	gs := make([]orb.Geometry, len(d.Features))
	for i, f := range d.Features {
		if f != nil {
			gs[i] = f.Geometry
		}
	}
	return gs
}

var sniffer = jsoniter.ConfigCompatibleWithStandardLibrary

// typed is the part of a GeoJSON object needed to dispatch on it.
type typed struct {
	Type       string   `json:"type"`
	Geometry   *typed   `json:"geometry"`
	Features   []*typed `json:"features"`
	Geometries []*typed `json:"geometries"`
}

// Decode parses a GeoJSON Feature, FeatureCollection or GeometryCollection.
// Any other top-level type, and any geometry type unknown to GeoJSON, fails
// with an *InvalidGeometryError. Geometry types that are valid GeoJSON but
// not polygonal are accepted here and rejected by the Builder.
func Decode(data []byte) (*Document, error) {
	var env typed
	if err := sniffer.Unmarshal(data, &env); err != nil {
		return nil, errors.Wrap(err, "decode geojson")
	}

	doc := &Document{}
	var err error
	switch env.Type {
	case "Feature":
		doc.Kind = KindFeature
		var f *geojson.Feature
		if f, err = geojson.UnmarshalFeature(data); err == nil {
			doc.Features = []*geojson.Feature{f}
		}
	case "FeatureCollection":
		doc.Kind = KindFeatureCollection
		var fc *geojson.FeatureCollection
		if fc, err = geojson.UnmarshalFeatureCollection(data); err == nil {
			doc.Features = fc.Features
		}
	case "GeometryCollection":
		doc.Kind = KindGeometryCollection
		var g *geojson.Geometry
		if g, err = geojson.UnmarshalGeometry(data); err == nil {
			doc.Features = make([]*geojson.Feature, len(g.Geometries))
			for i, member := range g.Geometries {
				var geometry orb.Geometry
				if member != nil {
					geometry = member.Geometry()
				}
				doc.Features[i] = geojson.NewFeature(geometry)
			}
		}
	default:
		return nil, &InvalidGeometryError{Type: env.Type, Feature: -1}
	}

	if errors.Is(err, geojson.ErrInvalidGeometry) {
		if typ, i, ok := env.unknown(); ok {
			return nil, &InvalidGeometryError{Type: typ, Feature: i}
		}
	}
	if err != nil {
		return nil, errors.Wrap(err, "decode geojson")
	}
	return doc, nil
}

// DecodeFile reads a document from disk. Files ending in .wkt are read as
// well-known text, everything else as GeoJSON.
func DecodeFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read input")
	}
	if strings.EqualFold(filepath.Ext(path), ".wkt") {
		return FromWKT(string(data))
	}
	doc, err := Decode(data)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}
	return doc, nil
}

// FromWKT builds a document from a well-known text geometry. A
// GEOMETRYCOLLECTION gives one feature per member, anything else a single
// feature.
func FromWKT(s string) (*Document, error) {
	g, err := wkt.Unmarshal(strings.TrimSpace(s))
	if err != nil {
		return nil, errors.Wrap(err, "decode wkt")
	}
	if c, ok := g.(orb.Collection); ok {
		doc := &Document{Kind: KindGeometryCollection, Features: make([]*geojson.Feature, len(c))}
		for i, member := range c {
			doc.Features[i] = geojson.NewFeature(member)
		}
		return doc, nil
	}
	return &Document{Kind: KindFeature, Features: []*geojson.Feature{geojson.NewFeature(g)}}, nil
}

var geojsonTypes = map[string]bool{
	"Point":              true,
	"MultiPoint":         true,
	"LineString":         true,
	"MultiLineString":    true,
	"Polygon":            true,
	"MultiPolygon":       true,
	"GeometryCollection": true,
}

// unknown finds the first entry whose geometry, or a member of it, has a
// type GeoJSON does not define.
func (t *typed) unknown() (string, int, bool) {
	var entries []*typed
	switch t.Type {
	case "Feature":
		entries = []*typed{t.Geometry}
	case "FeatureCollection":
		entries = make([]*typed, len(t.Features))
		for i, f := range t.Features {
			if f != nil {
				entries[i] = f.Geometry
			}
		}
	case "GeometryCollection":
		entries = t.Geometries
	}
	for i, g := range entries {
		if typ, ok := g.unknownType(); ok {
			return typ, i, true
		}
	}
	return "", -1, false
}

func (t *typed) unknownType() (string, bool) {
	if t == nil {
		return "", false
	}
	if !geojsonTypes[t.Type] {
		return t.Type, true
	}
	for _, member := range t.Geometries {
		if typ, ok := member.unknownType(); ok {
			return typ, true
		}
	}
	return "", false
}
