package grid

import (
	"math"
	"strconv"

	apperrors "github.com/agbru/fibgrid/internal/errors"
)

// Coord addresses a single cell.
type Coord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Axis is the orientation a run is read along.
type Axis int

const (
	// AxisRow reads left to right within one row.
	AxisRow Axis = iota
	// AxisColumn reads top to bottom within one column.
	AxisColumn
)

// String returns "row" or "column".
func (a Axis) String() string {
	if a == AxisColumn {
		return "column"
	}
	return "row"
}

// Step returns the coordinate offset between two consecutive cells on the axis.
func (a Axis) Step() (dRow, dCol int) {
	if a == AxisColumn {
		return 1, 0
	}
	return 0, 1
}

// Cell is the stored state of one grid position. The zero Cell holds the value 0;
// a cleared cell has Empty set and its Value is meaningless.
type Cell struct {
	Value uint64
	Empty bool
}

// String renders the cell the way a display surface shows it: digits, or nothing.
func (c Cell) String() string {
	if c.Empty {
		return ""
	}
	return strconv.FormatUint(c.Value, 10)
}

// Grid is an N×N arena of cells stored in row-major order.
//
// Every resize bumps Generation so that work scheduled against an older
// grid (highlight expiry, for instance) can recognise itself as stale.
type Grid struct {
	size       int
	cells      []Cell
	generation uint64
}

// New allocates a size×size grid with every cell set to 0.
func New(size int) (*Grid, error) {
	g := &Grid{}
	if err := g.Resize(size); err != nil {
		return nil, err
	}
	return g, nil
}

// Size returns N.
func (g *Grid) Size() int { return g.size }

// Generation identifies the current grid instance.
func (g *Grid) Generation() uint64 { return g.generation }

// InBounds reports whether (row, col) addresses a cell.
func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && row < g.size && col >= 0 && col < g.size
}

func (g *Grid) index(row, col int) int { return row*g.size + col }

func (g *Grid) check(row, col int) error {
	if !g.InBounds(row, col) {
		return apperrors.CoordinateError{Row: row, Col: col, Size: g.size}
	}
	return nil
}

// At returns the cell at (row, col). The caller guarantees the coordinate is in bounds.
func (g *Grid) At(row, col int) Cell {
	return g.cells[g.index(row, col)]
}

// ValueAt returns the value at (row, col) and false when the cell is empty or
// the coordinate is outside the grid.
func (g *Grid) ValueAt(row, col int) (uint64, bool) {
	if !g.InBounds(row, col) {
		return 0, false
	}
	c := g.cells[g.index(row, col)]
	if c.Empty {
		return 0, false
	}
	return c.Value, true
}

// Set stores v at (row, col), replacing an empty marker if present.
func (g *Grid) Set(row, col int, v uint64) error {
	if err := g.check(row, col); err != nil {
		return err
	}
	g.cells[g.index(row, col)] = Cell{Value: v}
	return nil
}

// IncrementAxisAligned adds one to every cell in row and every cell in col.
// The clicked cell is incremented once: the row pass covers it and the column
// pass skips that exact coordinate. It returns the 2N-1 touched coordinates,
// row cells first.
func (g *Grid) IncrementAxisAligned(row, col int) ([]Coord, error) {
	if err := g.check(row, col); err != nil {
		return nil, err
	}
	touched := make([]Coord, 0, 2*g.size-1)
	for c := 0; c < g.size; c++ {
		g.increment(row, c)
		touched = append(touched, Coord{Row: row, Col: c})
	}
	for r := 0; r < g.size; r++ {
		if r == row {
			continue
		}
		g.increment(r, col)
		touched = append(touched, Coord{Row: r, Col: col})
	}
	return touched, nil
}

// increment treats an empty cell as 0, so it becomes 1.
func (g *Grid) increment(row, col int) {
	c := &g.cells[g.index(row, col)]
	if c.Empty {
		*c = Cell{Value: 1}
		return
	}
	if c.Value < math.MaxUint64 {
		c.Value++
	}
}

// ClearCells marks every listed coordinate empty. Out-of-range coordinates
// are ignored and clearing an empty cell leaves it empty.
func (g *Grid) ClearCells(coords []Coord) {
	for _, p := range coords {
		if !g.InBounds(p.Row, p.Col) {
			continue
		}
		g.cells[g.index(p.Row, p.Col)] = Cell{Empty: true}
	}
}

// Resize discards every value and rebuilds an n×n grid of zeros.
// A non-positive n is rejected and the grid is left unchanged.
func (g *Grid) Resize(n int) error {
	if n <= 0 {
		return apperrors.ValidationError{Field: "size", Message: "must be positive"}
	}
	g.size = n
	g.cells = make([]Cell, n*n)
	g.generation++
	return nil
}

// Rows returns a copy of the grid as a slice of rows.
func (g *Grid) Rows() [][]Cell {
	rows := make([][]Cell, g.size)
	for r := range rows {
		row := make([]Cell, g.size)
		copy(row, g.cells[r*g.size:(r+1)*g.size])
		rows[r] = row
	}
	return rows
}
