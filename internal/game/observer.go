package game

import (
	"time"

	"github.com/agbru/fibgrid/internal/grid"
	"github.com/agbru/fibgrid/internal/sweep"
)

// Observer receives game-level events on top of the sweep events.
type Observer interface {
	sweep.Observer
	Clicked()
	Resized(accepted bool)
	SequenceLength(terms int)
}

type nopObserver struct{}

func (nopObserver) RunMatched(grid.Axis, grid.Coord)  {}
func (nopObserver) SweepCompleted(int, time.Duration) {}
func (nopObserver) Clicked()                          {}
func (nopObserver) Resized(bool)                      {}
func (nopObserver) SequenceLength(int)                {}
