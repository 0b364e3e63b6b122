package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Faultbox/scatter-gl/internal/dataset"
)

// Run shows the preview full screen until the user quits.
func Run(set *dataset.Set, opts Options) error {
	p := tea.NewProgram(New(set, opts), tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}
