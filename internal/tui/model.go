package tui

import (
	"os"

	list "github.com/charmbracelet/bubbles/list"
	table "github.com/charmbracelet/bubbles/table"
	textarea "github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"globemesh/internal/mesh"
	"globemesh/internal/sphere"
)

type sidebarMode int

const (
	sidebarFeatures sidebarMode = iota
	sidebarFiles
)

type Model struct {
	width  int
	height int

	showSidebar bool
	sidebar     sidebarMode
	helpVisible bool

	zoom float64
	view sphere.View

	status string

	// sidebar list: features of the dataset or files in cwd
	cwd     string
	l       list.Model
	items   []list.Item
	selPath string

	// Data
	builder  *mesh.Builder
	doc      *mesh.Document
	meshes   []*mesh.FeatureMesh
	selected int

	// last rendered globe size (for inspect)
	mapW int
	mapH int

	// paste mode
	pasteMode bool
	ta        textarea.Model

	// layer visibility
	showWire bool
	showFill bool

	// inspect popup
	inspectPopup string

	// hover state
	hovering     bool
	hoverMicX    int
	hoverMicY    int
	hoverFeature int
	hoverHasGeo  bool
	hoverLon     float64
	hoverLat     float64

	// attributes table
	showAttrs bool
	tbl       table.Model
}

// New returns an empty viewer that meshes whatever it loads with opts.
func New(opts mesh.Options) Model {
	m := Model{
		helpVisible:  true,
		zoom:         1.0,
		status:       "globemesh ready",
		builder:      mesh.NewBuilder(opts),
		selected:     -1,
		hoverFeature: -1,
		showWire:     true,
	}
	m.cwd, _ = os.Getwd()
	// list setup
	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	m.l = list.New(nil, d, 0, 0)
	m.l.Title = "Features"
	m.l.SetShowHelp(false)
	m.l.SetShowStatusBar(false)
	m.l.SetFilteringEnabled(true)
	// textarea setup
	m.ta = textarea.New()
	m.ta.Placeholder = "Paste WKT here (POLYGON, MULTIPOLYGON, GEOMETRYCOLLECTION). Press Enter to mesh; Esc to cancel."
	m.ta.CharLimit = 0
	m.ta.SetWidth(50)
	m.ta.SetHeight(6)
	// feature table setup (columns depend on the dataset's properties)
	m.tbl = table.New(table.WithFocused(true))
	m.tbl.SetHeight(12)
	return m
}

// NewWithPath preloads a dataset at launch.
func NewWithPath(path string, opts mesh.Options) Model {
	m := New(opts)
	m.loadPath(path)
	return m
}

// NewWithMeshes shows meshes that were built elsewhere.
func NewWithMeshes(doc *mesh.Document, meshes []*mesh.FeatureMesh, opts mesh.Options) Model {
	m := New(opts)
	m.setData(doc, meshes, "")
	return m
}

func (m Model) Init() tea.Cmd { return nil }
