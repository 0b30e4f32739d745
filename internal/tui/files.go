package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	list "github.com/charmbracelet/bubbles/list"

	"globemesh/internal/mesh"
	"globemesh/internal/sphere"
)

type fileItem struct {
	title, desc string
	path        string
}

func (f fileItem) Title() string       { return f.title }
func (f fileItem) Description() string { return f.desc }
func (f fileItem) FilterValue() string { return f.title }

type featureItem struct {
	index       int
	title, desc string
}

func (f featureItem) Title() string       { return f.title }
func (f featureItem) Description() string { return f.desc }
func (f featureItem) FilterValue() string { return f.title + " " + f.desc }

func (m *Model) refreshDir() {
	entries, err := os.ReadDir(m.cwd)
	if err != nil {
		m.status = "read dir error: " + err.Error()
		return
	}
	var items []list.Item
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(name))
		if ext == ".geojson" || ext == ".json" || ext == ".wkt" {
			items = append(items, fileItem{title: name, desc: ext, path: filepath.Join(m.cwd, name)})
		}
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].(fileItem).Title() < items[j].(fileItem).Title() })
	m.items = items
	m.l.Title = "Files"
	m.l.SetItems(items)
	if len(items) == 0 {
		m.status = "no datasets in current directory"
	}
}

func (m *Model) refreshFeatures() {
	items := make([]list.Item, 0, len(m.meshes))
	for i, fm := range m.meshes {
		items = append(items, featureItem{index: i, title: featureTitle(fm), desc: fm.Properties.ISOA3})
	}
	m.items = items
	m.l.Title = "Features"
	m.l.SetItems(items)
}

func featureTitle(fm *mesh.FeatureMesh) string {
	if fm.Properties.Name != "" {
		return fm.Properties.Name
	}
	return fmt.Sprintf("feature %d", fm.Index)
}

// loadPath meshes a GeoJSON or WKT file into the model.
func (m *Model) loadPath(p string) {
	doc, err := mesh.DecodeFile(p)
	if err != nil {
		m.status = "load error: " + err.Error()
		return
	}
	meshes, err := m.builder.Build(context.Background(), doc)
	if err != nil {
		m.status = "mesh error: " + err.Error()
		return
	}
	m.selPath = p
	m.setData(doc, meshes, filepath.Base(p))
}

// loadWKT meshes pasted text. It reports whether the text was usable.
func (m *Model) loadWKT(s string) bool {
	doc, err := mesh.FromWKT(s)
	if err != nil {
		m.status = "wkt error: " + err.Error()
		return false
	}
	meshes, err := m.builder.Build(context.Background(), doc)
	if err != nil {
		m.status = "mesh error: " + err.Error()
		return false
	}
	m.selPath = ""
	m.setData(doc, meshes, "WKT")
	return true
}

func (m *Model) setData(doc *mesh.Document, meshes []*mesh.FeatureMesh, source string) {
	m.doc, m.meshes = doc, meshes
	m.selected, m.hoverFeature = -1, -1
	m.inspectPopup = ""
	// face the middle of the data
	m.zoom = 1.0
	m.view = sphere.View{}
	if c, ok := dataCenter(meshes); ok {
		m.view = sphere.View{Lon: c[0], Lat: c[1]}
	}
	if m.sidebar == sidebarFeatures {
		m.refreshFeatures()
	}

	var triangles int
	for _, fm := range meshes {
		triangles += fm.Count()
	}
	if source == "" {
		source = "meshes"
	}
	m.status = "loaded: " + source + fmt.Sprintf("  features=%d triangles=%d", len(meshes), triangles)

	// If attributes are currently shown, verify availability for the new dataset
	if m.showAttrs {
		m.refreshAttrsFromCurrent()
	}
}
