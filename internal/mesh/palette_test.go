package mesh

import (
	"testing"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePalette(t *testing.T) {
	p, err := ParsePalette([]string{"#ff0000", "#00ff00"})
	require.NoError(t, err)
	assert.Equal(t, []string{"#ff0000", "#00ff00"}, p.Hexes())

	_, err = ParsePalette([]string{"#ff0000", "red"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "palette colour 1")

	_, err = ParsePalette(nil)
	assert.Error(t, err)
}

func TestDefaultPalette(t *testing.T) {
	assert.Equal(t, []string{"#909090", "#808080", "#a0a0a0", "#929292", "#858585", "#a9a9a9"}, DefaultPalette.Hexes())
}

func TestRandomPickerSeeded(t *testing.T) {
	a := NewRandomPicker(DefaultPalette, 42)
	b := NewRandomPicker(DefaultPalette, 42)
	seen := map[colorful.Color]bool{}
	for i := 0; i < 200; i++ {
		c := a.Pick(i)
		assert.Equal(t, c, b.Pick(i))
		assert.Contains(t, DefaultPalette, c)
		seen[c] = true
	}
	// with replacement, every colour turns up eventually
	assert.Len(t, seen, len(DefaultPalette))
}

func TestCyclePicker(t *testing.T) {
	p := CyclePicker(DefaultPalette[:2])
	assert.Equal(t, DefaultPalette[0], p.Pick(0))
	assert.Equal(t, DefaultPalette[1], p.Pick(1))
	assert.Equal(t, DefaultPalette[0], p.Pick(2))
	assert.Equal(t, DefaultPalette[1], p.Pick(-1))
	assert.Equal(t, DefaultPalette[3], CyclePicker(nil).Pick(3))
}

func TestNewPicker(t *testing.T) {
	p, err := NewPicker("", nil, 1)
	require.NoError(t, err)
	assert.IsType(t, &RandomPicker{}, p)

	p, err = NewPicker(ColorsCycle, DefaultPalette[:1], 1)
	require.NoError(t, err)
	assert.Equal(t, DefaultPalette[0], p.Pick(5))

	_, err = NewPicker("rainbow", nil, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rainbow")
}
