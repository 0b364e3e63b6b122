package tui

// brailleBuf is a terminal canvas with 2x4 dots per cell.
type brailleBuf struct {
	w, h int       // in cells
	m    [][]uint8 // per-cell dot mask
	hits [][]int   // points landing in each cell, for shading
}

func newBrailleBuf(w, h int) *brailleBuf {
	m := make([][]uint8, h)
	hits := make([][]int, h)
	for i := range m {
		m[i] = make([]uint8, w)
		hits[i] = make([]int, w)
	}
	return &brailleBuf{w: w, h: h, m: m, hits: hits}
}

// dotBits maps a dot's (column, row) inside a cell to its braille bit.
var dotBits = [2][4]uint8{
	{0x01, 0x02, 0x04, 0x40},
	{0x08, 0x10, 0x20, 0x80},
}

// set lights the dot at dot coordinates (mx, my) and adds weight to its cell.
func (b *brailleBuf) set(mx, my, weight int) {
	if mx < 0 || my < 0 {
		return
	}
	cx, cy := mx/2, my/4
	if cx >= b.w || cy >= b.h {
		return
	}
	b.m[cy][cx] |= dotBits[mx%2][my%4]
	b.hits[cy][cx] += weight
}

// maxHits returns the heaviest cell weight.
func (b *brailleBuf) maxHits() int {
	n := 0
	for _, row := range b.hits {
		for _, v := range row {
			n = max(n, v)
		}
	}
	return n
}

func (b *brailleBuf) rune(cx, cy int) rune {
	mask := b.m[cy][cx]
	if mask == 0 {
		return ' '
	}
	return rune(0x2800 + int(mask))
}
