package mesh

import (
	"bytes"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSON(t *testing.T) {
	meshes := build(t, load(t, "countries.geojson"), Options{Colors: CyclePicker(DefaultPalette)})

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, meshes))
	data := buf.Bytes()

	assert.Equal(t, "FeatureCollection", jsoniter.Get(data, "type").ToString())
	assert.Equal(t, 3, jsoniter.Get(data, "features").Size())

	first := jsoniter.Get(data, "features", 0)
	assert.Equal(t, "Squareland", first.Get("properties", "name").ToString())
	assert.Equal(t, "SQL", first.Get("properties", "iso_a3").ToString())
	assert.Equal(t, "#909090", first.Get("color").ToString())
	assert.Equal(t, meshes[0].Len(), first.Get("xValues").Size())
	assert.Equal(t, meshes[0].Len(), first.Get("yValues").Size())
	assert.Equal(t, meshes[0].Len(), first.Get("zValues").Size())
	assert.Equal(t, len(meshes[0].Triangles), first.Get("triangles").Size())
	assert.InDelta(t, meshes[0].X[1], first.Get("xValues", 1).ToFloat64(), 1e-12)

	// empty meshes still carry their arrays
	flat := jsoniter.Get(data, "features", 2)
	assert.Equal(t, jsoniter.ArrayValue, flat.Get("xValues").ValueType())
	assert.Equal(t, jsoniter.ArrayValue, flat.Get("triangles").ValueType())
	assert.Equal(t, 0, flat.Get("triangles").Size())
	assert.Equal(t, "", flat.Get("properties", "iso_a3").ToString())
}

func TestWriteJSONEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, nil))
	assert.JSONEq(t, `{"type":"FeatureCollection","features":[]}`, buf.String())
}
