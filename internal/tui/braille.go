package tui

import "math"

type brailleBuf struct {
	w, h int       // in cells
	m    [][]uint8 // per-cell 8-bit mask
}

func newBrailleBuf(w, h int) *brailleBuf {
	m := make([][]uint8, h)
	for i := range m {
		m[i] = make([]uint8, w)
	}
	return &brailleBuf{w: w, h: h, m: m}
}

// dot bits of a braille cell, indexed by [column][row] of the 2x4 micro grid
var brailleBits = [2][4]uint8{
	{0x01, 0x02, 0x04, 0x40},
	{0x08, 0x10, 0x20, 0x80},
}

// setPixel sets a micro-pixel at micro coords (2x4 per cell)
func (b *brailleBuf) setPixel(mx, my int) {
	if mx < 0 || my < 0 {
		return
	}
	cx, rx := mx/2, mx%2
	cy, ry := my/4, my%4
	if cy >= b.h || cx >= b.w {
		return
	}
	b.m[cy][cx] |= brailleBits[rx][ry]
}

// drawLineMicro draws a line on the microgrid using Bresenham
func (b *brailleBuf) drawLineMicro(x0, y0, x1, y1 int) {
	dx := abs(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -abs(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		b.setPixel(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// fillTriangleMicro sets every micro-pixel whose centre lies in the
// triangle, either winding.
func (b *brailleBuf) fillTriangleMicro(p0, p1, p2 [2]int) {
	minX := max(0, min(p0[0], p1[0], p2[0]))
	maxX := min(b.w*2-1, max(p0[0], p1[0], p2[0]))
	minY := max(0, min(p0[1], p1[1], p2[1]))
	maxY := min(b.h*4-1, max(p0[1], p1[1], p2[1]))
	if edge(p0, p1, p2) == 0 {
		return
	}
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			p := [2]int{x, y}
			w0, w1, w2 := edge(p1, p2, p), edge(p2, p0, p), edge(p0, p1, p)
			if (w0 >= 0 && w1 >= 0 && w2 >= 0) || (w0 <= 0 && w1 <= 0 && w2 <= 0) {
				b.setPixel(x, y)
			}
		}
	}
}

// drawCircleMicro outlines a circle of radius r around (cx, cy).
func (b *brailleBuf) drawCircleMicro(cx, cy, r float64) {
	steps := max(16, int(2*math.Pi*r))
	px, py := int(math.Round(cx+r)), int(math.Round(cy))
	for i := 1; i <= steps; i++ {
		a := 2 * math.Pi * float64(i) / float64(steps)
		x, y := int(math.Round(cx+r*math.Cos(a))), int(math.Round(cy-r*math.Sin(a)))
		b.drawLineMicro(px, py, x, y)
		px, py = x, y
	}
}

func (b *brailleBuf) toLines() []string {
	out := make([]string, b.h)
	for y := 0; y < b.h; y++ {
		row := make([]rune, b.w)
		for x := 0; x < b.w; x++ {
			mask := b.m[y][x]
			if mask == 0 {
				row[x] = ' '
			} else {
				row[x] = rune(0x2800 + int(mask))
			}
		}
		out[y] = string(row)
	}
	return out
}

// edge is twice the signed area of abc.
func edge(a, b, c [2]int) int {
	return (b[0]-a[0])*(c[1]-a[1]) - (b[1]-a[1])*(c[0]-a[0])
}
