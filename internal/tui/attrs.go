package tui

import (
	"fmt"
	"sort"
	"strconv"

	table "github.com/charmbracelet/bubbles/table"
	jsoniter "github.com/json-iterator/go"
	"github.com/paulmach/orb/geojson"

	"globemesh/internal/mesh"
)

// StatsHeaders are the per-feature mesh statistics columns.
var StatsHeaders = []string{"name", "iso", "type", "rings", "empty", "vertices", "triangles", "color"}

// Stats returns one row of StatsHeaders per mesh.
func Stats(meshes []*mesh.FeatureMesh) [][]string {
	rows := make([][]string, 0, len(meshes))
	for _, fm := range meshes {
		rows = append(rows, []string{
			featureTitle(fm),
			fm.Properties.ISOA3,
			fm.GeometryType,
			strconv.Itoa(fm.Rings),
			strconv.Itoa(fm.Empty),
			strconv.Itoa(fm.Len()),
			strconv.Itoa(fm.Count()),
			fm.Color.Hex(),
		})
	}
	return rows
}

// refreshAttrsFromCurrent rebuilds the table columns/rows from the loaded meshes
func (m *Model) refreshAttrsFromCurrent() {
	cols, rows := m.buildAttributes()
	// If there are no rows, disable attributes view to avoid rendering panics
	if len(cols) == 0 || len(rows) == 0 {
		m.showAttrs = false
		m.status = "no features in current dataset"
		return
	}
	tcols := make([]table.Column, 0, len(cols)+1)
	tcols = append(tcols, table.Column{Title: "#", Width: 4})
	maxColW := 24
	for _, c := range cols {
		w := len(c) + 2
		if w < 6 {
			w = 6
		}
		if w > maxColW {
			w = maxColW
		}
		tcols = append(tcols, table.Column{Title: c, Width: w})
	}
	trows := make([]table.Row, 0, len(rows))
	for i, r := range rows {
		row := make([]string, 0, len(tcols))
		row = append(row, strconv.Itoa(i+1))
		row = append(row, r...)
		// Normalize each row to match the number of table columns
		for len(row) < len(tcols) {
			row = append(row, "")
		}
		trows = append(trows, table.Row(row[:len(tcols)]))
	}
	// Avoid transient mismatch: clear rows, set columns, then set rows
	m.tbl.SetRows(nil)
	m.tbl.SetColumns(tcols)
	m.tbl.SetRows(trows)
	if m.selected >= 0 && m.selected < len(trows) {
		m.tbl.SetCursor(m.selected)
	}
}

// buildAttributes returns the mesh statistics followed by the union of the
// features' property keys.
func (m *Model) buildAttributes() ([]string, [][]string) {
	if len(m.meshes) == 0 {
		return nil, nil
	}
	var features []*geojson.Feature
	if m.doc != nil && len(m.doc.Features) == len(m.meshes) {
		features = m.doc.Features
	}
	order := propertyKeys(features)

	cols := append(append([]string(nil), StatsHeaders...), order...)
	rows := Stats(m.meshes)
	for i := range rows {
		var props geojson.Properties
		if features != nil && features[i] != nil {
			props = features[i].Properties
		}
		for _, k := range order {
			rows[i] = append(rows[i], formatValue(props[k]))
		}
	}
	return cols, rows
}

// propertyKeys unions the property keys of features, sorted.
func propertyKeys(features []*geojson.Feature) []string {
	seen := map[string]bool{}
	var order []string
	for _, f := range features {
		if f == nil {
			continue
		}
		for k := range f.Properties {
			if !seen[k] {
				seen[k] = true
				order = append(order, k)
			}
		}
	}
	sort.Strings(order)
	return order
}

func formatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return fmt.Sprintf("%g", t)
	case bool:
		return strconv.FormatBool(t)
	default:
		bs, _ := jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(t)
		return string(bs)
	}
}
