package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/golang/geo/r3"
	"github.com/paulmach/orb"

	"globemesh/internal/mesh"
	"globemesh/internal/sphere"
)

// globe is the disc the sphere occupies on the braille microgrid.
type globe struct {
	cx, cy, r float64
}

func (m Model) globe(w, h int) globe {
	wMic, hMic := float64(w*2), float64(h*4)
	return globe{cx: wMic / 2, cy: hMic / 2, r: m.zoom * 0.45 * math.Min(wMic, hMic)}
}

// toMicro maps a point on the sphere to micro coords, false when it faces away.
func (m Model) toMicro(g globe, v r3.Vector) ([2]int, bool) {
	if v.Norm() == 0 {
		return [2]int{}, false
	}
	c := m.view.Apply(v.Normalize())
	if !sphere.Visible(c) {
		return [2]int{}, false
	}
	return [2]int{int(math.Round(g.cx + c.X*g.r)), int(math.Round(g.cy - c.Y*g.r))}, true
}

// cellToLonLat converts a map cell back to lon/lat, false off the globe.
func (m Model) cellToLonLat(cx, cy, w, h int) (float64, float64, bool) {
	if w <= 1 || h <= 1 {
		return 0, 0, false
	}
	g := m.globe(w, h)
	x := (float64(cx*2+1) - g.cx) / g.r
	y := (g.cy - float64(cy*4+2)) / g.r
	d := x*x + y*y
	if d > 1 {
		return 0, 0, false
	}
	lon, lat := sphere.Unproject(m.view.Unapply(r3.Vector{X: x, Y: y, Z: math.Sqrt(1 - d)}))
	return lon, lat, true
}

// projectMesh returns the micro coords of every vertex of fm and whether it is visible.
func (m Model) projectMesh(g globe, fm *mesh.FeatureMesh) ([][2]int, []bool) {
	pts := make([][2]int, fm.Len())
	vis := make([]bool, fm.Len())
	for i := range pts {
		pts[i], vis[i] = m.toMicro(g, fm.Vertex(i))
	}
	return pts, vis
}

func (m Model) renderGlobe(w, h int) string {
	g := m.globe(w, h)
	br := newBrailleBuf(w, h)
	// selected feature is filled into its own buffer so it can be coloured
	sel := newBrailleBuf(w, h)
	br.drawCircleMicro(g.cx, g.cy, g.r)

	for i, fm := range m.meshes {
		pts, vis := m.projectMesh(g, fm)
		selected := i == m.selected
		for t := 0; t+2 < len(fm.Triangles); t += 3 {
			a, b, c := fm.Triangles[t], fm.Triangles[t+1], fm.Triangles[t+2]
			if !vis[a] || !vis[b] || !vis[c] {
				continue
			}
			switch {
			case selected:
				sel.fillTriangleMicro(pts[a], pts[b], pts[c])
			case m.showFill:
				br.fillTriangleMicro(pts[a], pts[b], pts[c])
			}
			if m.showWire {
				br.drawLineMicro(pts[a][0], pts[a][1], pts[b][0], pts[b][1])
				br.drawLineMicro(pts[b][0], pts[b][1], pts[c][0], pts[c][1])
				br.drawLineMicro(pts[c][0], pts[c][1], pts[a][0], pts[a][1])
			}
		}
	}

	selStyle := lipgloss.NewStyle()
	if m.selected >= 0 && m.selected < len(m.meshes) {
		selStyle = selStyle.Foreground(lipgloss.Color(m.meshes[m.selected].Color.Hex()))
	}
	cells := make([][]string, h)
	for y := 0; y < h; y++ {
		cells[y] = make([]string, w)
		for x := 0; x < w; x++ {
			base, hi := br.m[y][x], sel.m[y][x]
			switch {
			case hi != 0:
				cells[y][x] = selStyle.Render(string(rune(0x2800 + int(base|hi))))
			case base != 0:
				cells[y][x] = string(rune(0x2800 + int(base)))
			default:
				cells[y][x] = " "
			}
		}
	}

	// Hover highlight: draw an orange circle at the hovered vertex cell
	if m.hovering && m.hoverFeature >= 0 {
		cx, cy := m.hoverMicX/2, m.hoverMicY/4
		if cy >= 0 && cy < h && cx >= 0 && cx < w {
			cells[cy][cx] = hoverStyle.Render("◯")
		}
	}
	lines := make([]string, h)
	for y := range cells {
		lines[y] = strings.Join(cells[y], "")
	}
	return strings.Join(lines, "\n")
}

// nearestVertex finds the visible vertex closest to the micro point (hx, hy).
func (m Model) nearestVertex(hx, hy, w, h int) (mic [2]int, feature int, ok bool) {
	g := m.globe(w, h)
	best := math.MaxInt
	feature = -1
	for i, fm := range m.meshes {
		pts, vis := m.projectMesh(g, fm)
		for k, p := range pts {
			if !vis[k] {
				continue
			}
			dx, dy := p[0]-hx, p[1]-hy
			if d := dx*dx + dy*dy; d < best {
				best, mic, feature = d, p, i
			}
		}
	}
	return mic, feature, feature >= 0
}

// inspectFeature describes feature i for the inspect popup.
func (m Model) inspectFeature(i int) string {
	fm := m.meshes[i]
	b := fm.Bound()
	meta := []string{
		fmt.Sprintf("name: %s", featureTitle(fm)),
		fmt.Sprintf("iso: %s", fm.Properties.ISOA3),
		fmt.Sprintf("type: %s", fm.GeometryType),
		fmt.Sprintf("rings: %d (%d empty)", fm.Rings, fm.Empty),
		fmt.Sprintf("counts: vertices=%d triangles=%d", fm.Len(), fm.Count()),
		fmt.Sprintf("color: %s", fm.Color.Hex()),
		fmt.Sprintf("bbox: [%.5f, %.5f, %.5f, %.5f]", b.Min[0], b.Min[1], b.Max[0], b.Max[1]),
	}
	return strings.Join(meta, "\n")
}

// dataCenter returns the centre of the planar bounds of all non-empty meshes.
func dataCenter(meshes []*mesh.FeatureMesh) (orb.Point, bool) {
	var b orb.Bound
	ok := false
	for _, fm := range meshes {
		if fm.Len() == 0 {
			continue
		}
		if !ok {
			b, ok = fm.Bound(), true
			continue
		}
		b = b.Union(fm.Bound())
	}
	if !ok {
		return orb.Point{}, false
	}
	return b.Center(), true
}
