package tui

import "github.com/charmbracelet/lipgloss"

var (
	baseFg    = lipgloss.Color("#E6E6E6")
	baseDimFg = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#6B7280"}
	accentFg  = lipgloss.Color("#0064C8")
	borderCol = lipgloss.Color("#243141")

	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(borderCol)
	titleStyle = lipgloss.NewStyle().Foreground(accentFg).Bold(true)
	dimStyle   = lipgloss.NewStyle().Foreground(baseDimFg)
	textStyle  = lipgloss.NewStyle().Foreground(baseFg)
)

// densityStyles shade braille cells from sparse to dense.
var densityStyles = []lipgloss.Style{
	lipgloss.NewStyle().Foreground(lipgloss.Color("#1E3A5F")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("#2563A8")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("#3B8FE0")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("#8CC4F5")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F8FF")),
}
