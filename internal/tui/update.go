package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Keyboard steps.
const (
	panStepCells = 4
	zoomStep     = 0.25
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		_, h := m.canvasSize()
		m.tbl.SetHeight(max(h-1, 2))
		m.repack()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case "left", "h":
			m.pan(-panStepCells, 0)
		case "right", "l":
			m.pan(panStepCells, 0)
		case "up", "k":
			m.pan(0, -panStepCells)
		case "down", "j":
			m.pan(0, panStepCells)
		case "+", "=":
			m.zoom(0.5, 0.5, -zoomStep)
		case "-", "_":
			m.zoom(0.5, 0.5, zoomStep)
		case "0":
			m.view = m.home
			m.status = "view reset"
			m.repack()
		case "c":
			m.cluster = !m.cluster
			m.repack()
			if m.cluster {
				m.status = fmt.Sprintf("cluster mode, grid %d", m.gridSize())
			} else {
				m.status = "lod mode"
			}
		case "t":
			m.showLevels = !m.showLevels
			m.repack()
		}

	case tea.MouseMsg:
		m.mouse(msg)
	}
	return m, nil
}

// pan moves the view by a drag of (dx, dy) terminal cells. A drag to the
// right moves the data right, so the view moves left; keys pass negated
// deltas to move the view the way the arrow points.
func (m *Model) pan(dx, dy int) {
	cw, ch := m.canvasSize()
	m.view = m.view.Pan(-float64(dx), -float64(dy), cw, ch)
	m.status = fmt.Sprintf("view %v", m.view)
	m.repack()
}

func (m *Model) zoom(rx, ry, dz float64) {
	m.view = m.view.Zoom(rx, ry, dz)
	m.status = fmt.Sprintf("view %v", m.view)
	m.repack()
}

func (m *Model) mouse(msg tea.MouseMsg) {
	cw, ch := m.canvasSize()
	// canvas starts after the header line and the box border
	x, y := msg.X-1, msg.Y-2
	rx := float64(x) / float64(cw)
	ry := float64(y) / float64(ch)

	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		m.zoom(rx, ry, -zoomStep/2)
	case msg.Button == tea.MouseButtonWheelDown:
		m.zoom(rx, ry, zoomStep/2)
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		m.dragging = true
		m.dragX, m.dragY = msg.X, msg.Y
		px, py := m.view.ScreenToData(float64(x)+0.5, float64(y)+0.5, cw, ch)
		m.status = fmt.Sprintf("cursor (%.4g, %.4g)", px, py)
	case msg.Action == tea.MouseActionRelease:
		m.dragging = false
	case msg.Action == tea.MouseActionMotion && m.dragging:
		dx, dy := msg.X-m.dragX, msg.Y-m.dragY
		m.dragX, m.dragY = msg.X, msg.Y
		m.view = m.view.Pan(float64(dx), float64(dy), cw, ch)
		m.repack()
	}
}
