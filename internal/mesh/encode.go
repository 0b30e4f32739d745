package mesh

import (
	"io"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

type jsonProperties struct {
	Name  string `json:"name"`
	ISOA3 string `json:"iso_a3"`
}

type jsonMesh struct {
	Properties jsonProperties `json:"properties"`
	Color      string         `json:"color"`
	X          []float64      `json:"xValues"`
	Y          []float64      `json:"yValues"`
	Z          []float64      `json:"zValues"`
	Triangles  []int          `json:"triangles"`
}

type jsonCollection struct {
	Type     string     `json:"type"`
	Features []jsonMesh `json:"features"`
}

// WriteJSON writes meshes as a FeatureCollection-shaped document with one
// entry per mesh holding its properties, colour and the four buffers.
func WriteJSON(w io.Writer, meshes []*FeatureMesh) error {
	out := jsonCollection{Type: "FeatureCollection", Features: make([]jsonMesh, len(meshes))}
	for i, m := range meshes {
		out.Features[i] = jsonMesh{
			Properties: jsonProperties{Name: m.Properties.Name, ISOA3: m.Properties.ISOA3},
			Color:      m.Color.Hex(),
			X:          nonNil(m.X),
			Y:          nonNil(m.Y),
			Z:          nonNil(m.Z),
			Triangles:  nonNil(m.Triangles),
		}
	}
	enc := jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder(w)
	if err := enc.Encode(out); err != nil {
		return errors.Wrap(err, "encode meshes")
	}
	return nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
