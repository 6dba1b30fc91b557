// Package match compares a line of five grid cells against a Fibonacci run.
package match

import (
	"math/big"

	"github.com/agbru/fibgrid/internal/grid"
	"github.com/agbru/fibgrid/internal/sequence"
)

// CellReader is the read-only view of a grid the matcher needs.
// ValueAt reports false for empty cells.
type CellReader interface {
	ValueAt(row, col int) (uint64, bool)
}

var leadingOnes = [sequence.RunLength]uint64{1, 1, 2, 3, 5}

// LeadingOnesRun returns the literal run [1,1,2,3,5]. The canonical sequence
// stores a single leading 1, so this run is checked separately.
func LeadingOnesRun() []*big.Int {
	run := make([]*big.Int, len(leadingOnes))
	for i, v := range leadingOnes {
		run[i] = new(big.Int).SetUint64(v)
	}
	return run
}

// MatchAxis reads RunLength cells starting at origin along axis and returns
// their coordinates when each equals the corresponding expected term.
// When the canonical attempt fails and expected starts with 1, the literal
// [1,1,2,3,5] run is tried instead. It returns nil on no match.
//
// The caller guarantees that the whole span lies inside the grid.
func MatchAxis(cells CellReader, origin grid.Coord, axis grid.Axis, expected []*big.Int) []grid.Coord {
	if len(expected) < sequence.RunLength {
		return nil
	}
	if coords := matchTerms(cells, origin, axis, expected); coords != nil {
		return coords
	}
	if expected[0].IsUint64() && expected[0].Uint64() == 1 {
		return matchValues(cells, origin, axis, leadingOnes[:])
	}
	return nil
}

func matchTerms(cells CellReader, origin grid.Coord, axis grid.Axis, expected []*big.Int) []grid.Coord {
	dr, dc := axis.Step()
	coords := make([]grid.Coord, 0, sequence.RunLength)
	for i := 0; i < sequence.RunLength; i++ {
		p := grid.Coord{Row: origin.Row + i*dr, Col: origin.Col + i*dc}
		v, ok := cells.ValueAt(p.Row, p.Col)
		if !ok || !expected[i].IsUint64() || expected[i].Uint64() != v {
			return nil
		}
		coords = append(coords, p)
	}
	return coords
}

func matchValues(cells CellReader, origin grid.Coord, axis grid.Axis, expected []uint64) []grid.Coord {
	dr, dc := axis.Step()
	coords := make([]grid.Coord, 0, sequence.RunLength)
	for i := 0; i < sequence.RunLength; i++ {
		p := grid.Coord{Row: origin.Row + i*dr, Col: origin.Col + i*dc}
		v, ok := cells.ValueAt(p.Row, p.Col)
		if !ok || v != expected[i] {
			return nil
		}
		coords = append(coords, p)
	}
	return coords
}
