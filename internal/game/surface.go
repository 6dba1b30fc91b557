//go:generate mockgen -source=surface.go -destination=mocks/mock_surface.go -package=mocks

package game

import (
	"time"

	"github.com/agbru/fibgrid/internal/grid"
)

// HighlightKind distinguishes the two transient highlight sets.
type HighlightKind int

const (
	// TouchHighlight marks cells incremented by the last click.
	TouchHighlight HighlightKind = iota
	// MatchHighlight marks cells cleared by the last sweep.
	MatchHighlight
)

// String returns "touch" or "match".
func (k HighlightKind) String() string {
	if k == MatchHighlight {
		return "match"
	}
	return "touch"
}

// CellUpdate is the new rendered value of one cell.
type CellUpdate struct {
	Coord grid.Coord
	Cell  grid.Cell
}

// Surface renders the grid. Calls are made while the game lock is held, so
// implementations must not call back into the Game synchronously.
type Surface interface {
	// Reset replaces the whole rendered grid, e.g. after a resize.
	Reset(snapshot Snapshot)
	// SetCells updates the rendered values of the cells changed by one
	// operation, in a single call.
	SetCells(updates []CellUpdate)
	// Highlight adds coords to the highlight set of the given kind.
	Highlight(kind HighlightKind, coords []grid.Coord, generation uint64)
	// Unhighlight removes coords from the highlight set of the given kind.
	Unhighlight(kind HighlightKind, coords []grid.Coord, generation uint64)
}

// Scheduler runs f once after d has elapsed, on any goroutine.
type Scheduler interface {
	AfterFunc(d time.Duration, f func())
}

// timeScheduler backs Scheduler with time.AfterFunc.
type timeScheduler struct{}

func (timeScheduler) AfterFunc(d time.Duration, f func()) { time.AfterFunc(d, f) }

// nopSurface discards every render call.
type nopSurface struct{}

func (nopSurface) Reset(Snapshot)                                  {}
func (nopSurface) SetCells([]CellUpdate)                           {}
func (nopSurface) Highlight(HighlightKind, []grid.Coord, uint64)   {}
func (nopSurface) Unhighlight(HighlightKind, []grid.Coord, uint64) {}
