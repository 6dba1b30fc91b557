// Package sweep scans the whole grid for Fibonacci runs and clears them.
package sweep

import (
	"time"

	"github.com/agbru/fibgrid/internal/grid"
	"github.com/agbru/fibgrid/internal/match"
	"github.com/agbru/fibgrid/internal/sequence"
)

// Observer receives sweep events. Implementations must be cheap; they run
// while the caller holds the game lock.
type Observer interface {
	RunMatched(axis grid.Axis, origin grid.Coord)
	SweepCompleted(cleared int, elapsed time.Duration)
}

type nopObserver struct{}

func (nopObserver) RunMatched(grid.Axis, grid.Coord)  {}
func (nopObserver) SweepCompleted(int, time.Duration) {}

// Controller runs full-grid sweeps against one grid and one sequence.
type Controller struct {
	grid     *grid.Grid
	seq      *sequence.Sequence
	observer Observer
}

// NewController binds a controller to g and seq. A nil observer is allowed.
func NewController(g *grid.Grid, seq *sequence.Sequence, observer Observer) *Controller {
	if observer == nil {
		observer = nopObserver{}
	}
	return &Controller{grid: g, seq: seq, observer: observer}
}

// Sweep visits every cell in row-major order. For each non-empty cell whose
// value starts a run, it tries a row match when five cells fit to the right
// and a column match when five cells fit below. Matches are collected first
// and cleared together once the scan is complete, so a cell shared by two
// runs can satisfy both. The union is returned in first-seen order.
func (c *Controller) Sweep() []grid.Coord {
	start := time.Now()
	n := c.grid.Size()
	var matched []grid.Coord
	seen := make(map[grid.Coord]struct{})

	collect := func(axis grid.Axis, origin grid.Coord, coords []grid.Coord) {
		if coords == nil {
			return
		}
		c.observer.RunMatched(axis, origin)
		for _, p := range coords {
			if _, dup := seen[p]; dup {
				continue
			}
			seen[p] = struct{}{}
			matched = append(matched, p)
		}
	}

	for r := 0; r < n; r++ {
		for col := 0; col < n; col++ {
			v, ok := c.grid.ValueAt(r, col)
			if !ok {
				continue
			}
			expected := c.seq.From(v)
			if expected == nil {
				continue
			}
			origin := grid.Coord{Row: r, Col: col}
			if col+sequence.RunLength <= n {
				collect(grid.AxisRow, origin, match.MatchAxis(c.grid, origin, grid.AxisRow, expected))
			}
			if r+sequence.RunLength <= n {
				collect(grid.AxisColumn, origin, match.MatchAxis(c.grid, origin, grid.AxisColumn, expected))
			}
		}
	}

	c.grid.ClearCells(matched)
	c.observer.SweepCompleted(len(matched), time.Since(start))
	return matched
}
