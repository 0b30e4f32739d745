package mesh

import (
	"math/rand"
	"sync"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"
)

// Palette is the set of colours features are painted with.
type Palette []colorful.Color

// DefaultPalette is a handful of close greys, so neighbouring countries
// differ without any one standing out.
var DefaultPalette = mustPalette("#909090", "#808080", "#a0a0a0", "#929292", "#858585", "#a9a9a9")

// ParsePalette parses "#rrggbb" colours.
func ParsePalette(hexes []string) (Palette, error) {
	if len(hexes) == 0 {
		return nil, errors.New("empty palette")
	}
	p := make(Palette, len(hexes))
	for i, h := range hexes {
		c, err := colorful.Hex(h)
		if err != nil {
			return nil, errors.Wrapf(err, "palette colour %d", i)
		}
		p[i] = c
	}
	return p, nil
}

func mustPalette(hexes ...string) Palette {
	p, err := ParsePalette(hexes)
	if err != nil {
		panic(err)
	}
	return p
}

// Hexes returns the palette as "#rrggbb" strings.
func (p Palette) Hexes() []string {
	hs := make([]string, len(p))
	for i, c := range p {
		hs[i] = c.Hex()
	}
	return hs
}

// A ColorPicker chooses the display colour of the feature at an index.
// Picks happen in feature order, once per feature.
type ColorPicker interface {
	Pick(feature int) colorful.Color
}

// Colour strategies accepted by NewPicker.
const (
	ColorsRandom = "random"
	ColorsCycle  = "cycle"
)

// NewPicker returns the picker for a strategy name. An empty palette means
// DefaultPalette.
func NewPicker(strategy string, p Palette, seed int64) (ColorPicker, error) {
	if len(p) == 0 {
		p = DefaultPalette
	}
	switch strategy {
	case ColorsRandom, "":
		return NewRandomPicker(p, seed), nil
	case ColorsCycle:
		return CyclePicker(p), nil
	}
	return nil, errors.Errorf("unknown colour strategy %q", strategy)
}

// RandomPicker draws uniformly from a palette with replacement. The same
// seed gives the same sequence of colours.
type RandomPicker struct {
	palette Palette

	mu  sync.Mutex
	rnd *rand.Rand
}

func NewRandomPicker(p Palette, seed int64) *RandomPicker {
	if len(p) == 0 {
		p = DefaultPalette
	}
	return &RandomPicker{palette: p, rnd: rand.New(rand.NewSource(seed))}
}

func (r *RandomPicker) Pick(int) colorful.Color {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.palette[r.rnd.Intn(len(r.palette))]
}

// CyclePicker walks the palette by feature index.
type CyclePicker Palette

func (c CyclePicker) Pick(feature int) colorful.Color {
	if len(c) == 0 {
		c = CyclePicker(DefaultPalette)
	}
	if feature < 0 {
		feature = -feature
	}
	return c[feature%len(c)]
}
