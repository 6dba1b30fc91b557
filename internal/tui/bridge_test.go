package tui

import (
	"context"
	"sync"
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/agbru/fibgrid/internal/game"
	"github.com/agbru/fibgrid/internal/grid"
)

func TestProgramRef_Send_NilProgram(t *testing.T) {
	ref := &programRef{} // program is nil
	// Should not panic
	ref.Send(redrawMsg{})
}

func TestProgramRef_Send_Concurrent(t *testing.T) {
	ref := &programRef{} // nil program - Send is a no-op

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ref.Send(redrawMsg{})
		}()
	}
	wg.Wait()
}

func TestBridge_CoalescesRedraws(t *testing.T) {
	b := NewBridge()
	b.Reset(game.Snapshot{})
	b.SetCells([]game.CellUpdate{{Coord: grid.Coord{Row: 1, Col: 1}, Cell: grid.Cell{Value: 2}}})
	b.Highlight(game.TouchHighlight, nil, 1)
	b.Unhighlight(game.MatchHighlight, nil, 1)

	if got := len(b.pending); got != 1 {
		t.Fatalf("pending redraws = %d, want 1", got)
	}
}

func TestBridge_NeverBlocksUnderGameLock(t *testing.T) {
	b := NewBridge()
	g, err := game.New(5, game.WithSurface(b))
	if err != nil {
		t.Fatal(err)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 20; i++ {
			if _, err := g.Click(context.Background(), i%5, i%3); err != nil {
				t.Error(err)
				return
			}
		}
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("clicks blocked on a bridge with nobody forwarding")
	}
}

func TestBridge_ForwardStopsOnCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	b := NewBridge()
	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		b.forward(ctx)
		close(stopped)
	}()

	b.SetCells([]game.CellUpdate{{Cell: grid.Cell{Value: 1}}})
	cancel()

	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("forward did not return after cancel")
	}
}
