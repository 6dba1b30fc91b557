package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/fibgrid/internal/format"
	"github.com/agbru/fibgrid/internal/sysmon"
)

// HeaderModel is the top bar. Its left side names the session (version,
// grid size, elapsed time); its right side shows resource usage.
type HeaderModel struct {
	startTime time.Time
	version   string
	size      int
	sys       sysmon.Stats
	width     int
}

// NewHeaderModel creates a new header.
func NewHeaderModel(version string) HeaderModel {
	return HeaderModel{
		startTime: time.Now(),
		version:   version,
	}
}

// SetSize records the current grid size.
func (h *HeaderModel) SetSize(n int) { h.size = n }

// SetSysStats records the latest host sample.
func (h *HeaderModel) SetSysStats(s sysmon.Stats) { h.sys = s }

// SetWidth updates the available width.
func (h *HeaderModel) SetWidth(w int) { h.width = w }

// View renders the header.
func (h HeaderModel) View() string {
	titleText := "fibgrid"
	if h.version != "" && h.version != "dev" {
		titleText += " " + h.version
	}
	pipe := versionStyle.Render(" | ")

	left := titleStyle.Render(titleText) + pipe +
		elapsedStyle.Render(fmt.Sprintf("%d×%d", h.size, h.size)) + pipe +
		elapsedStyle.Render(format.FormatExecutionDuration(time.Since(h.startTime)))
	right := versionStyle.Render(fmt.Sprintf("CPU %4.1f%%  MEM %4.1f%%  RSS %s  G %d",
		h.sys.CPUPercent, h.sys.MemPercent, format.FormatBytes(h.sys.RSSBytes), h.sys.Goroutines))

	innerWidth := max(h.width-2, 0)
	gap := max(innerWidth-lipgloss.Width(left)-lipgloss.Width(right), 1)

	return headerStyle.Width(h.width).Render(left + spaces(gap) + right)
}

func spaces(n int) string {
	return strings.Repeat(" ", max(n, 0))
}
