package tui

import (
	"fmt"
	"strings"

	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"globemesh/internal/sphere"
)

// rotateStep is the rotation per key press at zoom 1, in degrees.
const rotateStep = 10.0

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.showSidebar {
			_, _, _, h := m.layout()
			m.l.SetSize(sidebarWidth-2, h-2)
		}
	case tea.KeyMsg:
		// If list is visible and filtering, send keys to list and ignore global commands
		if m.showSidebar && m.l.FilterState() == list.Filtering {
			var cmd tea.Cmd
			m.l, cmd = m.l.Update(msg)
			return m, cmd
		}
		if m.pasteMode {
			switch msg.String() {
			case "esc":
				m.pasteMode = false
				m.ta.Blur()
				return m, nil
			case "enter":
				w := strings.TrimSpace(m.ta.Value())
				if w == "" {
					m.status = "paste: empty"
					return m, nil
				}
				if m.loadWKT(w) {
					m.pasteMode = false
					m.ta.Blur()
				}
				return m, nil
			}
			var cmd tea.Cmd
			m.ta, cmd = m.ta.Update(msg)
			return m, cmd
		}
		if m.showAttrs {
			switch msg.String() {
			case "up", "down", "pgup", "pgdown", "home", "end":
				var cmd tea.Cmd
				m.tbl, cmd = m.tbl.Update(msg)
				return m, cmd
			}
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "w":
			m.showWire = !m.showWire
			m.status = fmt.Sprintf("wireframe: %v", m.showWire)
		case "f":
			m.showFill = !m.showFill
			m.status = fmt.Sprintf("fill: %v", m.showFill)
		case "+", "=":
			if m.zoom < 64 {
				m.zoom *= 1.2
				m.status = fmt.Sprintf("zoom: %.2fx", m.zoom)
			}
		case "-", "_":
			if m.zoom > 0.2 {
				m.zoom /= 1.2
				m.status = fmt.Sprintf("zoom: %.2fx", m.zoom)
			}
		case "r":
			m.zoom = 1.0
			m.view = sphere.View{}
			if c, ok := dataCenter(m.meshes); ok {
				m.view = sphere.View{Lon: c[0], Lat: c[1]}
			}
			m.status = "view reset"
		case "tab":
			m.toggleSidebar(sidebarFeatures)
		case "o":
			m.toggleSidebar(sidebarFiles)
		case "p":
			m.pasteMode = !m.pasteMode
			if m.pasteMode {
				m.ta.SetValue("")
				m.status = "paste mode"
				m.ta.Focus()
			} else {
				m.status = "view mode"
				m.ta.Blur()
			}
		case "h":
			m.helpVisible = !m.helpVisible
		case "a":
			m.showAttrs = !m.showAttrs
			if m.showAttrs {
				m.refreshAttrsFromCurrent()
			}
		case "i":
			i := m.selected
			if i < 0 {
				_, _, w, h := m.layout()
				_, i, _ = m.nearestVertex(w, h*2, w, h)
			}
			if i >= 0 {
				m.inspectPopup = m.inspectFeature(i)
				m.status = "inspect popup"
			} else {
				m.inspectPopup = "no feature nearby"
				m.status = m.inspectPopup
			}
		case "esc":
			m.inspectPopup = ""
			m.selected = -1
		case "enter":
			if m.showSidebar {
				switch it := m.l.SelectedItem().(type) {
				case fileItem:
					m.loadPath(it.path)
					if m.selPath == it.path {
						m.sidebar = sidebarFeatures
						m.refreshFeatures()
					}
				case featureItem:
					m.selectFeature(it.index)
				}
			}
		case "up":
			m.view = m.view.Rotate(0, rotateStep/m.zoom)
		case "down":
			m.view = m.view.Rotate(0, -rotateStep/m.zoom)
		case "left":
			m.view = m.view.Rotate(-rotateStep/m.zoom, 0)
		case "right":
			m.view = m.view.Rotate(rotateStep/m.zoom, 0)
		}
	case tea.MouseMsg:
		originX, originY, mapWidth, mapHeight := m.layout()
		cx, cy := msg.X, msg.Y
		if cx >= originX && cx < originX+mapWidth && cy >= originY && cy < originY+mapHeight {
			cellX, cellY := cx-originX, cy-originY
			m.hovering = true
			if lon, lat, ok := m.cellToLonLat(cellX, cellY, mapWidth, mapHeight); ok {
				m.hoverHasGeo = true
				m.hoverLon = lon
				m.hoverLat = lat
			} else {
				m.hoverHasGeo = false
			}
			mic, feature, ok := m.nearestVertex(cellX*2, cellY*4, mapWidth, mapHeight)
			m.hoverFeature = -1
			if ok {
				m.hoverMicX, m.hoverMicY, m.hoverFeature = mic[0], mic[1], feature
			}
			if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft && m.hoverFeature >= 0 {
				m.selected = m.hoverFeature
				m.status = "selected: " + featureTitle(m.meshes[m.selected])
			}
		} else {
			m.hovering = false
			m.hoverHasGeo = false
		}
	}
	// Pass messages to list when visible
	if m.showSidebar {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	return m, nil
}

// toggleSidebar shows the sidebar in mode, or hides it when already showing mode.
func (m *Model) toggleSidebar(mode sidebarMode) {
	if m.showSidebar && m.sidebar == mode {
		m.showSidebar = false
		return
	}
	m.showSidebar = true
	m.sidebar = mode
	if mode == sidebarFiles {
		m.refreshDir()
	} else {
		m.refreshFeatures()
	}
	_, _, _, h := m.layout()
	m.l.SetSize(sidebarWidth-2, h-2)
}

// selectFeature highlights feature i and turns the globe to face it.
func (m *Model) selectFeature(i int) {
	if i < 0 || i >= len(m.meshes) {
		return
	}
	m.selected = i
	fm := m.meshes[i]
	if fm.Len() > 0 {
		c := fm.Bound().Center()
		m.view = sphere.View{Lon: c[0], Lat: c[1]}
	}
	m.status = "selected: " + featureTitle(fm)
}
