package grid

import (
	"errors"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	apperrors "github.com/agbru/fibgrid/internal/errors"
)

func mustNew(t *testing.T, n int) *Grid {
	t.Helper()
	g, err := New(n)
	if err != nil {
		t.Fatalf("New(%d): %v", n, err)
	}
	return g
}

func TestNew_AllZero(t *testing.T) {
	t.Parallel()
	g := mustNew(t, 6)
	if g.Size() != 6 {
		t.Fatalf("Size() = %d, want 6", g.Size())
	}
	for r := 0; r < 6; r++ {
		for c := 0; c < 6; c++ {
			v, ok := g.ValueAt(r, c)
			if !ok || v != 0 {
				t.Fatalf("ValueAt(%d,%d) = %d,%v want 0,true", r, c, v, ok)
			}
		}
	}
}

func TestNew_RejectsNonPositive(t *testing.T) {
	t.Parallel()
	for _, n := range []int{0, -3} {
		if _, err := New(n); err == nil {
			t.Errorf("New(%d) should fail", n)
		}
	}
}

func TestIncrementAxisAligned(t *testing.T) {
	t.Parallel()
	g := mustNew(t, 5)
	touched, err := g.IncrementAxisAligned(2, 3)
	if err != nil {
		t.Fatalf("IncrementAxisAligned: %v", err)
	}
	if len(touched) != 9 {
		t.Fatalf("touched %d cells, want 9", len(touched))
	}
	for r := 0; r < 5; r++ {
		for c := 0; c < 5; c++ {
			want := uint64(0)
			if r == 2 || c == 3 {
				want = 1
			}
			if v, _ := g.ValueAt(r, c); v != want {
				t.Errorf("cell (%d,%d) = %d, want %d", r, c, v, want)
			}
		}
	}
}

func TestIncrementAxisAligned_OutOfRange(t *testing.T) {
	t.Parallel()
	g := mustNew(t, 5)
	tests := []struct{ row, col int }{{-1, 0}, {0, 5}, {5, 5}}
	for _, tt := range tests {
		_, err := g.IncrementAxisAligned(tt.row, tt.col)
		var coordErr apperrors.CoordinateError
		if !errors.As(err, &coordErr) {
			t.Errorf("IncrementAxisAligned(%d,%d) error = %v, want CoordinateError", tt.row, tt.col, err)
		}
	}
	if v, _ := g.ValueAt(0, 0); v != 0 {
		t.Error("rejected click must not mutate the grid")
	}
}

func TestIncrement_EmptyBecomesOne(t *testing.T) {
	t.Parallel()
	g := mustNew(t, 5)
	g.ClearCells([]Coord{{0, 0}})
	if _, err := g.IncrementAxisAligned(0, 4); err != nil {
		t.Fatal(err)
	}
	cell := g.At(0, 0)
	if cell.Empty || cell.Value != 1 {
		t.Errorf("cleared cell after increment = %+v, want value 1", cell)
	}
}

func TestClearCells_Idempotent(t *testing.T) {
	t.Parallel()
	g := mustNew(t, 5)
	_ = g.Set(1, 1, 8)
	g.ClearCells([]Coord{{1, 1}})
	g.ClearCells([]Coord{{1, 1}, {9, 9}})
	if !g.At(1, 1).Empty {
		t.Error("cell should stay empty")
	}
	if _, ok := g.ValueAt(1, 1); ok {
		t.Error("ValueAt should report empty cell as absent")
	}
	if g.At(1, 1).String() != "" {
		t.Errorf("empty cell renders %q, want empty string", g.At(1, 1).String())
	}
}

func TestResize(t *testing.T) {
	t.Parallel()
	g := mustNew(t, 5)
	_ = g.Set(0, 0, 13)
	gen := g.Generation()

	if err := g.Resize(7); err != nil {
		t.Fatal(err)
	}
	if g.Size() != 7 || g.Generation() == gen {
		t.Fatalf("size=%d generation=%d after resize", g.Size(), g.Generation())
	}
	for _, row := range g.Rows() {
		for _, c := range row {
			if c.Empty || c.Value != 0 {
				t.Fatalf("cell %+v after resize, want 0", c)
			}
		}
	}
}

func TestResize_RejectedLeavesGrid(t *testing.T) {
	t.Parallel()
	g := mustNew(t, 5)
	_ = g.Set(4, 4, 21)
	gen := g.Generation()
	if err := g.Resize(0); err == nil {
		t.Fatal("Resize(0) should fail")
	}
	if g.Size() != 5 || g.Generation() != gen {
		t.Error("rejected resize changed the grid")
	}
	if v, _ := g.ValueAt(4, 4); v != 21 {
		t.Errorf("value lost after rejected resize: %d", v)
	}
}

func TestAxis(t *testing.T) {
	t.Parallel()
	if AxisRow.String() != "row" || AxisColumn.String() != "column" {
		t.Error("unexpected axis names")
	}
	if dr, dc := AxisRow.Step(); dr != 0 || dc != 1 {
		t.Error("row step should advance the column")
	}
	if dr, dc := AxisColumn.Step(); dr != 1 || dc != 0 {
		t.Error("column step should advance the row")
	}
}

// TestIncrementTouchCount_PropertyBased checks that a click touches the row
// and column union exactly once per cell: 2N-1 distinct coordinates.
func TestIncrementTouchCount_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("click touches 2N-1 distinct cells, each once", prop.ForAll(
		func(n, row, col int) bool {
			row, col = row%n, col%n
			g, err := New(n)
			if err != nil {
				return false
			}
			touched, err := g.IncrementAxisAligned(row, col)
			if err != nil || len(touched) != 2*n-1 {
				return false
			}
			seen := make(map[Coord]bool, len(touched))
			for _, p := range touched {
				if seen[p] {
					return false
				}
				seen[p] = true
				if v, _ := g.ValueAt(p.Row, p.Col); v != 1 {
					return false
				}
			}
			return true
		},
		gen.IntRange(5, 40),
		gen.IntRange(0, 1000),
		gen.IntRange(0, 1000),
	))

	properties.TestingRun(t)
}
