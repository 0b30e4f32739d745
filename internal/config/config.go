// Package config loads the YAML file that tunes mesh generation.
package config

import (
	"io"
	"log"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"globemesh/internal/geom"
	"globemesh/internal/mesh"
	"globemesh/internal/sphere"
)

// Config mirrors the configuration file.
type Config struct {
	Radius       float64      `yaml:"radius"`
	Density      float64      `yaml:"density"`
	Triangulator string       `yaml:"triangulator"`
	Workers      int          `yaml:"workers"`
	Seed         int64        `yaml:"seed"`
	Palette      []string     `yaml:"palette"`
	Colors       string       `yaml:"colors"`
	Properties   PropertyKeys `yaml:"properties"`
}

// PropertyKeys are the feature properties tried, in order, for metadata.
type PropertyKeys struct {
	Name []string `yaml:"name"`
	ISO  []string `yaml:"iso"`
}

func Default() Config {
	return Config{
		Radius:       sphere.DefaultRadius,
		Density:      geom.DefaultDensity,
		Triangulator: geom.DelaunatorName,
		Seed:         1,
		Palette:      mesh.DefaultPalette.Hexes(),
		Colors:       mesh.ColorsRandom,
		Properties: PropertyKeys{
			Name: append([]string(nil), mesh.DefaultNameKeys...),
			ISO:  append([]string(nil), mesh.DefaultISOKeys...),
		},
	}
}

// Load reads path over the defaults. Unknown keys are an error.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, errors.Wrap(err, "open config")
	}
	defer f.Close()

	cfg, err := Decode(f)
	if err != nil {
		return Config{}, errors.Wrapf(err, "config %s", path)
	}
	return cfg, nil
}

// Decode reads a YAML document over the defaults and validates the result.
func Decode(r io.Reader) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return Config{}, errors.Wrap(err, "decode yaml")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if !(c.Radius > 0) {
		return errors.Errorf("radius: must be positive, got %v", c.Radius)
	}
	if !(c.Density > 0) {
		return errors.Errorf("density: must be positive, got %v", c.Density)
	}
	if _, ok := geom.NewTriangulator(c.Triangulator); !ok {
		return errors.Errorf("triangulator: unknown %q", c.Triangulator)
	}
	if c.Workers < 0 {
		return errors.Errorf("workers: must not be negative, got %d", c.Workers)
	}
	if _, err := mesh.ParsePalette(c.Palette); err != nil {
		return errors.Wrap(err, "palette")
	}
	if c.Colors != mesh.ColorsRandom && c.Colors != mesh.ColorsCycle {
		return errors.Errorf("colors: unknown %q", c.Colors)
	}
	if len(c.Properties.Name) == 0 {
		return errors.New("properties.name: no keys")
	}
	if len(c.Properties.ISO) == 0 {
		return errors.New("properties.iso: no keys")
	}
	return nil
}

// Options converts c into builder options.
func (c Config) Options(logger *log.Logger) (mesh.Options, error) {
	if err := c.Validate(); err != nil {
		return mesh.Options{}, err
	}
	tr, _ := geom.NewTriangulator(c.Triangulator)
	palette, _ := mesh.ParsePalette(c.Palette)
	colors, err := mesh.NewPicker(c.Colors, palette, c.Seed)
	if err != nil {
		return mesh.Options{}, err
	}
	return mesh.Options{
		Radius:   c.Radius,
		Pipeline: geom.Pipeline{Density: c.Density, Triangulator: tr},
		Colors:   colors,
		Workers:  c.Workers,
		NameKeys: c.Properties.Name,
		ISOKeys:  c.Properties.ISO,
		Logger:   logger,
	}, nil
}
