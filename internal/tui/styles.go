package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/fibgrid/internal/ui"
)

// Style variables for the grid view.
// Initialized from the ui theme system via initTUIStyles().
var (
	headerStyle      lipgloss.Style
	titleStyle       lipgloss.Style
	versionStyle     lipgloss.Style
	elapsedStyle     lipgloss.Style
	cellStyle        lipgloss.Style
	emptyCellStyle   lipgloss.Style
	touchStyle       lipgloss.Style
	matchStyle       lipgloss.Style
	cursorStyle      lipgloss.Style
	statusLabelStyle lipgloss.Style
	statusValueStyle lipgloss.Style
	statusErrorStyle lipgloss.Style
	sparklineStyle   lipgloss.Style
	promptStyle      lipgloss.Style
)

func init() {
	initTUIStyles()
}

// initTUIStyles rebuilds all TUI styles from the current ui theme.
// Called at package init and again from Run() after InitTheme has been invoked.
func initTUIStyles() {
	t := ui.GetCurrentTUITheme()

	headerStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Accent).
		Background(t.Bg).
		Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Accent)

	versionStyle = lipgloss.NewStyle().
		Foreground(t.Dim)

	elapsedStyle = lipgloss.NewStyle().
		Foreground(t.Accent)

	cellStyle = lipgloss.NewStyle().
		Foreground(t.Text).
		Width(cellWidth).
		Align(lipgloss.Right)

	emptyCellStyle = cellStyle.
		Foreground(t.Dim)

	touchStyle = cellStyle.
		Foreground(t.Bg).
		Background(t.Touch)

	matchStyle = cellStyle.
		Foreground(t.Bg).
		Background(t.Match)

	cursorStyle = cellStyle.
		Bold(true).
		Underline(true).
		Background(t.Cursor)

	statusLabelStyle = lipgloss.NewStyle().
		Foreground(t.Dim)

	statusValueStyle = lipgloss.NewStyle().
		Foreground(t.Accent).
		Bold(true)

	statusErrorStyle = lipgloss.NewStyle().
		Foreground(t.Error).
		Bold(true)

	sparklineStyle = lipgloss.NewStyle().
		Foreground(t.Success)

	promptStyle = lipgloss.NewStyle().
		Foreground(t.Info).
		Bold(true)
}
