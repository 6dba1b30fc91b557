package tui

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/fibgrid/internal/game"
	"github.com/agbru/fibgrid/internal/grid"
)

// programRef is a shared reference to the tea.Program.
// Because bubbletea copies the model on every Update, we need a pointer
// that survives copies so the bridge goroutine can send messages.
type programRef struct {
	mu      sync.RWMutex
	program *tea.Program
}

// SetProgram sets the tea.Program reference (thread-safe).
func (r *programRef) SetProgram(p *tea.Program) {
	r.mu.Lock()
	r.program = p
	r.mu.Unlock()
}

// Send sends a message to the bubbletea program (thread-safe).
func (r *programRef) Send(msg tea.Msg) {
	r.mu.RLock()
	p := r.program
	r.mu.RUnlock()
	if p != nil {
		p.Send(msg)
	}
}

// redrawMsg tells the model to re-read the game snapshot.
type redrawMsg struct{}

// Bridge is the game.Surface of the terminal UI. Build the game with it,
// then hand both to Run.
//
// The game calls it with its lock held, sometimes from inside Update itself,
// so it must never block on the program. Calls only mark a redraw as pending;
// Run forwards pending redraws to the program from its own goroutine.
// Several render calls in a row collapse into one redraw.
type Bridge struct {
	ref     *programRef
	pending chan struct{}
}

// NewBridge returns a bridge with no program attached yet.
func NewBridge() *Bridge {
	return &Bridge{ref: &programRef{}, pending: make(chan struct{}, 1)}
}

var _ game.Surface = (*Bridge)(nil)

func (b *Bridge) Reset(game.Snapshot)                                  { b.notify() }
func (b *Bridge) SetCells([]game.CellUpdate)                           { b.notify() }
func (b *Bridge) Highlight(game.HighlightKind, []grid.Coord, uint64)   { b.notify() }
func (b *Bridge) Unhighlight(game.HighlightKind, []grid.Coord, uint64) { b.notify() }

func (b *Bridge) notify() {
	select {
	case b.pending <- struct{}{}:
	default:
	}
}

// forward sends pending redraws to the program until ctx is done.
func (b *Bridge) forward(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-b.pending:
			b.ref.Send(redrawMsg{})
		}
	}
}
