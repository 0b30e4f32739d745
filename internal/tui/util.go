package tui

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

const sidebarWidth = 28

// layout returns the origin and size of the map area in cells.
func (m Model) layout() (originX, originY, w, h int) {
	sw := 0
	if m.showSidebar {
		sw = sidebarWidth
	}
	headerHeight := 1
	footerHeight := 2
	h = max(4, m.height-headerHeight-footerHeight)
	w = max(10, max(10, m.width)-sw-1)
	if m.showSidebar {
		originX = sw + 1
	}
	return originX, headerHeight, w, h
}
