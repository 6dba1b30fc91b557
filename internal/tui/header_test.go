package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agbru/fibgrid/internal/sysmon"
)

func TestHeaderModel_View(t *testing.T) {
	h := NewHeaderModel("v1.2.0")
	h.SetWidth(120)
	h.SetSize(7)
	h.SetSysStats(sysmon.Stats{CPUPercent: 12.5, MemPercent: 40, RSSBytes: 1024, Goroutines: 3})

	view := h.View()
	assert.Contains(t, view, "fibgrid v1.2.0")
	assert.Contains(t, view, "7×7")
	assert.Contains(t, view, "CPU 12.5%")
	assert.Contains(t, view, "RSS 1.0 KiB")
	assert.Contains(t, view, "G 3")
}

func TestHeaderModel_DevVersionHidden(t *testing.T) {
	h := NewHeaderModel("dev")
	h.SetWidth(80)
	assert.NotContains(t, h.View(), "dev")
}

func TestSpaces(t *testing.T) {
	assert.Equal(t, "", spaces(-2))
	assert.Equal(t, "   ", spaces(3))
}
