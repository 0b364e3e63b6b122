// Package tui is a terminal preview of a point set. Points are decimated
// with the same packing and level-of-detail code the GL viewer uses and
// drawn as braille dots shaded by density.
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Faultbox/scatter-gl/internal/dataset"
	"github.com/Faultbox/scatter-gl/pkg/bounds"
	"github.com/Faultbox/scatter-gl/pkg/gridpack"
	"github.com/Faultbox/scatter-gl/pkg/lod"
)

// Options configure the preview.
type Options struct {
	// Cluster starts in packed-grid mode instead of LOD mode.
	Cluster bool
	// MaxGridSize caps the packed grid side.
	MaxGridSize int
	LOD         lod.Options
}

// Model is the bubbletea model for the preview.
type Model struct {
	width  int
	height int

	set    *dataset.Set
	levels *lod.Levels
	view   bounds.View
	home   bounds.View
	opts   Options

	cluster    bool
	showLevels bool
	// grid is the packed grid for the current view and canvas, rebuilt
	// only when one of them changes. Nil outside cluster mode.
	grid *gridpack.Result
	tbl        table.Model

	// drag state in terminal cells
	dragging     bool
	dragX, dragY int

	status string
}

// New builds the LOD hierarchy for set and returns a model showing all of it.
func New(set *dataset.Set, opts Options) Model {
	if opts.MaxGridSize <= 0 {
		opts.MaxGridSize = 1024
	}
	levels := lod.Build(set.Positions, opts.LOD)
	home := bounds.ViewOf(levels.Box)

	m := Model{
		set:     set,
		levels:  levels,
		view:    home,
		home:    home,
		opts:    opts,
		cluster: opts.Cluster,
		status:  fmt.Sprintf("%s: %d points", set.Name, set.Len()),
	}
	m.tbl = levelTable(levels)
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// canvasSize returns the plot area in terminal cells.
func (m Model) canvasSize() (w, h int) {
	w = m.width - 2
	if m.showLevels {
		w -= tableWidth + 1
	}
	// header, footer, help line and the box border
	h = m.height - 5
	return max(w, 4), max(h, 2)
}

// dotSize returns the plot area in braille dots.
func (m Model) dotSize() (w, h int) {
	cw, ch := m.canvasSize()
	return cw * 2, ch * 4
}

// pixelSize is one braille dot in units normalized to the data box.
func (m Model) pixelSize() float64 {
	w, h := m.dotSize()
	return lod.PixelSize(m.view, m.levels.Box, max(w, h))
}

// repack rebuilds the cached grid. It leaves the grid nil outside cluster
// mode and before the first WindowSizeMsg.
func (m *Model) repack() {
	m.grid = nil
	if !m.cluster || m.width == 0 || m.set.Len() == 0 {
		return
	}
	res, err := gridpack.Pack(m.set.Positions, m.view.Box, m.gridSize(), nil)
	if err != nil {
		m.status = err.Error()
		return
	}
	m.grid = res
}

// gridSize is the packed grid side for the current canvas.
func (m Model) gridSize() int {
	w, h := m.dotSize()
	return gridpack.SizeFor(w, h, 1, m.opts.MaxGridSize)
}
