package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"globemesh/internal/mesh"
)

const squareWKT = "POLYGON((0 0,10 0,10 10,0 10,0 0))"

func opts() mesh.Options {
	return mesh.Options{Colors: mesh.CyclePicker(mesh.DefaultPalette), Workers: 1}
}

func loaded(t *testing.T) Model {
	t.Helper()
	m := New(opts())
	require.True(t, m.loadWKT(squareWKT), m.status)
	m = send(m, tea.WindowSizeMsg{Width: 80, Height: 24})
	return m
}

func send(m Model, msg tea.Msg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

func key(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNew(t *testing.T) {
	m := New(opts())
	assert.Equal(t, -1, m.selected)
	assert.Equal(t, 1.0, m.zoom)
	assert.True(t, m.showWire)
	assert.False(t, m.showFill)
	assert.Empty(t, m.meshes)
	assert.Equal(t, "", m.View())
}

func TestLoadWKT(t *testing.T) {
	m := loaded(t)
	require.Len(t, m.meshes, 1)
	assert.Greater(t, m.meshes[0].Count(), 0)
	assert.InDelta(t, 5, m.view.Lon, 1e-9)
	assert.InDelta(t, 5, m.view.Lat, 1e-9)
	assert.Contains(t, m.status, "loaded: WKT")
	assert.Contains(t, m.status, "features=1")

	m = New(opts())
	assert.False(t, m.loadWKT("POLYGON((0 0"))
	assert.Contains(t, m.status, "wkt error")
	assert.False(t, m.loadWKT("LINESTRING(0 0,1 1)"))
	assert.Contains(t, m.status, "mesh error")
	assert.Empty(t, m.meshes)
}

func TestPaste(t *testing.T) {
	m := send(New(opts()), key("p"))
	require.True(t, m.pasteMode)
	m.ta.SetValue(squareWKT)
	m = send(m, key("enter"))
	assert.False(t, m.pasteMode)
	assert.Len(t, m.meshes, 1)

	m = send(m, key("p"))
	m = send(m, key("enter"))
	assert.True(t, m.pasteMode)
	assert.Equal(t, "paste: empty", m.status)
	m = send(m, key("esc"))
	assert.False(t, m.pasteMode)
}

func TestRotateAndZoom(t *testing.T) {
	m := loaded(t)
	m = send(m, key("right"))
	assert.InDelta(t, 15, m.view.Lon, 1e-9)
	m = send(m, key("up"))
	assert.InDelta(t, 15, m.view.Lat, 1e-9)

	m = send(m, key("+"))
	assert.InDelta(t, 1.2, m.zoom, 1e-9)
	m = send(m, key("right"))
	assert.InDelta(t, 15+10/1.2, m.view.Lon, 1e-9)

	m = send(m, key("-"))
	assert.InDelta(t, 1, m.zoom, 1e-9)

	m = send(m, key("r"))
	assert.Equal(t, 1.0, m.zoom)
	assert.InDelta(t, 5, m.view.Lon, 1e-9)
	assert.InDelta(t, 5, m.view.Lat, 1e-9)
}

func TestToggles(t *testing.T) {
	m := loaded(t)
	m = send(m, key("w"))
	assert.False(t, m.showWire)
	m = send(m, key("f"))
	assert.True(t, m.showFill)
	m = send(m, key("h"))
	assert.False(t, m.helpVisible)

	m = send(m, key("a"))
	assert.True(t, m.showAttrs)
	assert.Len(t, m.tbl.Rows(), 1)

	_, cmd := m.Update(key("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestFeatureSidebar(t *testing.T) {
	m := loaded(t)
	m.view.Lon = 100
	m = send(m, key("tab"))
	require.True(t, m.showSidebar)
	assert.Len(t, m.l.Items(), 1)

	m = send(m, key("enter"))
	assert.Equal(t, 0, m.selected)
	assert.InDelta(t, 5, m.view.Lon, 1e-9)
	assert.Contains(t, m.status, "selected: feature 0")

	m = send(m, key("i"))
	assert.Contains(t, m.inspectPopup, "name: feature 0")
	assert.Contains(t, m.inspectPopup, "type: Polygon")

	m = send(m, key("esc"))
	assert.Equal(t, -1, m.selected)
	assert.Empty(t, m.inspectPopup)

	m = send(m, key("tab"))
	assert.False(t, m.showSidebar)
}

func TestFileSidebar(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "square.wkt"), []byte(squareWKT), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	m := New(opts())
	m.cwd = dir
	m = send(m, tea.WindowSizeMsg{Width: 80, Height: 24})
	m = send(m, key("o"))
	require.True(t, m.showSidebar)
	require.Len(t, m.l.Items(), 1)
	assert.Equal(t, "square.wkt", m.l.Items()[0].(fileItem).Title())

	m = send(m, key("enter"))
	assert.Len(t, m.meshes, 1)
	assert.Equal(t, sidebarFeatures, m.sidebar)
	assert.Contains(t, m.status, "loaded: square.wkt")
}

func TestRenderGlobe(t *testing.T) {
	m := loaded(t)
	out := m.renderGlobe(40, 20)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 20)
	for _, l := range lines {
		assert.Equal(t, 40, utf8.RuneCountInString(l))
	}
	// the wireframe faces the viewer
	centre := ""
	for _, l := range lines[9:12] {
		centre += string([]rune(l)[18:23])
	}
	assert.NotEqual(t, strings.Repeat(" ", 15), centre)

	m.view.Lon += 180
	back := strings.Split(m.renderGlobe(40, 20), "\n")
	assert.NotEqual(t, lines[10], back[10])

	assert.NotEmpty(t, loaded(t).View())
}

func TestCellToLonLat(t *testing.T) {
	m := loaded(t)
	lon, lat, ok := m.cellToLonLat(20, 10, 40, 20)
	require.True(t, ok)
	assert.InDelta(t, 5, lon, 5)
	assert.InDelta(t, 5, lat, 5)

	_, _, ok = m.cellToLonLat(0, 0, 40, 20)
	assert.False(t, ok)
	_, _, ok = m.cellToLonLat(0, 0, 1, 1)
	assert.False(t, ok)
}

func TestHover(t *testing.T) {
	m := loaded(t)
	_, originY, w, h := m.layout()
	m = send(m, tea.MouseMsg{X: w / 2, Y: originY + h/2, Action: tea.MouseActionMotion})
	assert.True(t, m.hovering)
	assert.True(t, m.hoverHasGeo)
	assert.Equal(t, 0, m.hoverFeature)

	m = send(m, tea.MouseMsg{X: w / 2, Y: originY + h/2, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	assert.Equal(t, 0, m.selected)

	m = send(m, tea.MouseMsg{X: w / 2, Y: 0})
	assert.False(t, m.hovering)
}

func TestStats(t *testing.T) {
	m := loaded(t)
	rows := Stats(m.meshes)
	require.Len(t, rows, 1)
	require.Len(t, rows[0], len(StatsHeaders))
	assert.Equal(t, "feature 0", rows[0][0])
	assert.Equal(t, "Polygon", rows[0][2])
	assert.Equal(t, "1", rows[0][3])
	assert.Equal(t, "0", rows[0][4])
	assert.Equal(t, mesh.DefaultPalette[0].Hex(), rows[0][7])
}

func TestDataCenter(t *testing.T) {
	_, ok := dataCenter(nil)
	assert.False(t, ok)

	c, ok := dataCenter([]*mesh.FeatureMesh{{}, loaded(t).meshes[0]})
	require.True(t, ok)
	assert.InDelta(t, 5, c[0], 1e-9)
	assert.InDelta(t, 5, c[1], 1e-9)
}

func TestFillTriangleMicro(t *testing.T) {
	b := newBrailleBuf(4, 2)
	b.fillTriangleMicro([2]int{0, 0}, [2]int{7, 0}, [2]int{0, 7})
	assert.Equal(t, uint8(0xff), b.m[0][0])
	assert.Zero(t, b.m[1][3])

	b = newBrailleBuf(4, 2)
	b.fillTriangleMicro([2]int{0, 0}, [2]int{3, 3}, [2]int{6, 6})
	assert.Equal(t, "    ", b.toLines()[0])
}
