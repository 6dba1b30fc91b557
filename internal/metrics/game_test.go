package metrics

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/agbru/fibgrid/internal/grid"
)

func TestGame_Counters(t *testing.T) {
	t.Parallel()
	reg := prometheus.NewRegistry()
	g := NewGame(reg)

	g.Clicked()
	g.Clicked()
	g.RunMatched(grid.AxisRow, grid.Coord{})
	g.RunMatched(grid.AxisColumn, grid.Coord{})
	g.RunMatched(grid.AxisColumn, grid.Coord{Row: 1})
	g.SweepCompleted(13, time.Millisecond)
	g.Resized(true)
	g.Resized(false)
	g.Resized(false)
	g.SequenceLength(15)

	tests := []struct {
		name string
		c    prometheus.Collector
		want float64
	}{
		{"clicks", g.clicks, 2},
		{"sweeps", g.sweeps, 1},
		{"cleared", g.cellsCleared, 13},
		{"row runs", g.runsMatched.WithLabelValues("row"), 1},
		{"column runs", g.runsMatched.WithLabelValues("column"), 2},
		{"accepted resizes", g.resizes.WithLabelValues("accepted"), 1},
		{"rejected resizes", g.resizes.WithLabelValues("rejected"), 2},
		{"terms", g.sequenceTerms, 15},
	}
	for _, tt := range tests {
		if got := testutil.ToFloat64(tt.c); got != tt.want {
			t.Errorf("%s = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestNewGame_ReusesRegisteredCollectors(t *testing.T) {
	t.Parallel()
	reg := prometheus.NewRegistry()
	first := NewGame(reg)
	second := NewGame(reg)

	first.Clicked()
	second.Clicked()
	if got := testutil.ToFloat64(first.clicks); got != 2 {
		t.Errorf("shared clicks = %v, want 2", got)
	}
}

func TestGame_Exposition(t *testing.T) {
	t.Parallel()
	reg := prometheus.NewRegistry()
	g := NewGame(reg)
	g.Clicked()

	expected := `
# HELP fibgrid_clicks_total Number of accepted cell clicks.
# TYPE fibgrid_clicks_total counter
fibgrid_clicks_total 1
`
	if err := testutil.GatherAndCompare(reg, strings.NewReader(expected), "fibgrid_clicks_total"); err != nil {
		t.Error(err)
	}
}
