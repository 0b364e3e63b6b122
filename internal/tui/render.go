package tui

import (
	"math"
	"strings"
)

// plot draws the visible points into a braille canvas and returns the
// number of points drawn.
func (m Model) plot() (*brailleBuf, int) {
	cw, ch := m.canvasSize()
	buf := newBrailleBuf(cw, ch)
	if m.set.Len() == 0 {
		return buf, 0
	}
	if m.cluster {
		return buf, m.plotGrid(buf)
	}
	return buf, m.plotLOD(buf)
}

// plotGrid draws one dot per occupied cell of the cached grid, weighted by
// the cell's collision count.
func (m Model) plotGrid(buf *brailleBuf) int {
	res := m.grid
	if res == nil {
		return 0
	}
	dw, dh := m.dotSize()
	n := 0
	for i, c := range res.Cells {
		nx, ny, ok := res.Point(i)
		if !ok {
			continue
		}
		buf.set(dot(nx, dw), dot(1-ny, dh), int(c.Count))
		n++
	}
	return n
}

// plotLOD draws the level range selected for the current dot size.
func (m Model) plotLOD(buf *brailleBuf) int {
	dw, dh := m.dotSize()
	rng := m.levels.Query(m.pixelSize())
	v := m.view
	n := 0
	for _, idx := range m.levels.Select(rng) {
		x, y := m.set.Positions[idx*2], m.set.Positions[idx*2+1]
		if !v.Contains(x, y) {
			continue
		}
		nx, ny := v.Normalize(x, y)
		buf.set(dot(nx, dw), dot(1-ny, dh), 1)
		n++
	}
	return n
}

// dot maps a unit coordinate to a dot index in [0, n).
func dot(u float64, n int) int {
	return min(max(int(u*float64(n)), 0), n-1)
}

// lines renders the canvas with per-cell density shading.
func (buf *brailleBuf) lines() []string {
	maxLog := math.Log1p(float64(buf.maxHits()))
	out := make([]string, buf.h)
	var sb strings.Builder
	for y := 0; y < buf.h; y++ {
		sb.Reset()
		for x := 0; x < buf.w; x++ {
			r := buf.rune(x, y)
			if r == ' ' {
				sb.WriteRune(r)
				continue
			}
			level := 0
			if maxLog > 0 {
				level = int(math.Log1p(float64(buf.hits[y][x])) / maxLog * float64(len(densityStyles)-1))
			}
			sb.WriteString(densityStyles[level].Render(string(r)))
		}
		out[y] = sb.String()
	}
	return out
}
