package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"globemesh/internal/geom"
	"globemesh/internal/mesh"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 2.0, cfg.Radius)
	assert.Equal(t, 5.0, cfg.Density)
	assert.Equal(t, "delaunator", cfg.Triangulator)
	assert.Equal(t, []string{"NAME", "name", "ADMIN"}, cfg.Properties.Name)
	assert.Len(t, cfg.Palette, 6)
}

func TestDecodeOverlay(t *testing.T) {
	cfg, err := Decode(strings.NewReader(`
radius: 6371
triangulator: bowyer-watson
colors: cycle
palette: ["#ff0000"]
properties:
  name: [ADMIN]
`))
	require.NoError(t, err)
	assert.Equal(t, 6371.0, cfg.Radius)
	assert.Equal(t, 5.0, cfg.Density)
	assert.Equal(t, "bowyer-watson", cfg.Triangulator)
	assert.Equal(t, []string{"#ff0000"}, cfg.Palette)
	assert.Equal(t, []string{"ADMIN"}, cfg.Properties.Name)
	assert.Equal(t, []string{"ISO_A3", "iso_a3"}, cfg.Properties.ISO)
}

func TestDecodeEmpty(t *testing.T) {
	cfg, err := Decode(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestDecodeRejects(t *testing.T) {
	cases := map[string]string{
		"unknown key":    "radius: 2\nzoom: 3\n",
		"radius":         "radius: 0\n",
		"density":        "density: -1\n",
		"triangulator":   "triangulator: earcut\n",
		"workers":        "workers: -2\n",
		"palette":        "palette: [grey]\n",
		"empty palette":  "palette: []\n",
		"colors":         "colors: rainbow\n",
		"properties.iso": "properties:\n  iso: []\n",
		"not yaml":       "radius: [\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(doc))
			require.Error(t, err)
			if name != "unknown key" && name != "not yaml" && name != "empty palette" {
				assert.Contains(t, err.Error(), name)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "globemesh.yaml")
	require.NoError(t, os.WriteFile(path, []byte("density: 2.5\nworkers: 1\n"), 0o644))
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2.5, cfg.Density)
	assert.Equal(t, 1, cfg.Workers)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestOptions(t *testing.T) {
	cfg := Default()
	cfg.Triangulator = geom.BowyerWatsonName
	cfg.Colors = mesh.ColorsCycle
	cfg.Density = 1
	opts, err := cfg.Options(nil)
	require.NoError(t, err)
	assert.Equal(t, 2.0, opts.Radius)
	assert.Equal(t, 1.0, opts.Pipeline.Density)
	assert.IsType(t, geom.BowyerWatson{}, opts.Pipeline.Triangulator)
	assert.Equal(t, mesh.DefaultPalette[1], opts.Colors.Pick(1))

	cfg.Radius = -1
	_, err = cfg.Options(nil)
	assert.Error(t, err)
}
