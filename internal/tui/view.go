package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/Faultbox/scatter-gl/pkg/lod"
)

const tableWidth = 34

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	mode := "lod"
	if m.cluster {
		mode = fmt.Sprintf("cluster %dx%d", m.gridSize(), m.gridSize())
	}
	header := titleStyle.Render(" scatter preview ") + dimStyle.Render(" "+mode)

	buf, drawn := m.plot()
	canvas := boxStyle.Render(strings.Join(buf.lines(), "\n"))
	body := canvas
	if m.showLevels {
		body = lipgloss.JoinHorizontal(lipgloss.Top, canvas, " ", m.tbl.View())
	}

	footer := textStyle.Render(fmt.Sprintf("%s  drawn %d/%d", m.status, drawn, m.set.Len()))
	help := dimStyle.Render("arrows/drag pan  +/-/wheel zoom  0 reset  c cluster  t levels  q quit")
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer, help)
}

func levelTable(levels *lod.Levels) table.Model {
	cols := []table.Column{
		{Title: "#", Width: 3},
		{Title: "grid", Width: 6},
		{Title: "pixel", Width: 10},
		{Title: "points", Width: 9},
	}
	rows := make([]table.Row, 0, levels.Len())
	for i, lv := range levels.Levels {
		grid := "full"
		if lv.GridSize > 0 {
			grid = fmt.Sprint(lv.GridSize)
		}
		rows = append(rows, table.Row{
			fmt.Sprint(i),
			grid,
			fmt.Sprintf("%.2e", lv.PixelSize),
			fmt.Sprint(lv.Range.Len()),
		})
	}
	return table.New(
		table.WithColumns(cols),
		table.WithRows(rows),
		table.WithHeight(max(len(rows)+1, 2)),
	)
}
