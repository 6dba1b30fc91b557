package tui

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/agbru/fibgrid/internal/errors"
	"github.com/agbru/fibgrid/internal/game"
)

func newTestModel(t *testing.T, size int) (Model, *game.Game) {
	t.Helper()
	g, err := game.New(size, game.WithSurface(NewBridge()), game.WithMaxSize(64))
	require.NoError(t, err)
	m := NewModel(context.Background(), g, "test")
	return update(t, m, tea.WindowSizeMsg{Width: 30, Height: 10}), g
}

func update(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok)
	}
	return m
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModel_ClickAtCursor(t *testing.T) {
	m, g := newTestModel(t, 5)

	m = update(t, m,
		tea.KeyMsg{Type: tea.KeyRight},
		tea.KeyMsg{Type: tea.KeyRight},
		tea.KeyMsg{Type: tea.KeyDown},
		tea.KeyMsg{Type: tea.KeyEnter},
	)

	snap := g.Snapshot()
	assert.Equal(t, uint64(1), snap.Cells[1][0].Value)
	assert.Equal(t, uint64(1), snap.Cells[4][2].Value)
	assert.Equal(t, uint64(0), snap.Cells[0][0].Value)
	assert.Equal(t, uint64(1), g.Stats().Clicks)
	assert.Len(t, m.touched, 9)
	assert.Contains(t, m.View(), "clicked 1,2")
}

func TestModel_SpaceClicks(t *testing.T) {
	m, g := newTestModel(t, 5)
	update(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")})
	assert.Equal(t, uint64(1), g.Stats().Clicks)
}

func TestModel_CursorStaysInGrid(t *testing.T) {
	m, _ := newTestModel(t, 3)
	for i := 0; i < 5; i++ {
		m = update(t, m, tea.KeyMsg{Type: tea.KeyLeft}, tea.KeyMsg{Type: tea.KeyUp})
	}
	assert.Equal(t, 0, m.cursor.Row)
	assert.Equal(t, 0, m.cursor.Col)

	for i := 0; i < 5; i++ {
		m = update(t, m, keyRunes("l"), keyRunes("j"))
	}
	assert.Equal(t, 2, m.cursor.Row)
	assert.Equal(t, 2, m.cursor.Col)
}

func TestModel_ScrollsWithCursor(t *testing.T) {
	m, _ := newTestModel(t, 50)
	rows := m.gridRows()
	require.Greater(t, rows, 1)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyPgDown})
	assert.Equal(t, rows, m.cursor.Row)
	assert.Equal(t, 1, m.top)

	for i := 0; i < m.gridCols(); i++ {
		m = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	}
	assert.Equal(t, 1, m.left)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyPgUp}, tea.KeyMsg{Type: tea.KeyPgUp})
	assert.Equal(t, 0, m.cursor.Row)
	assert.Equal(t, 0, m.top)
}

func TestModel_SizePrompt(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantSize int
		wantErr  bool
	}{
		{"valid", "7", 7, false},
		{"letters", "abc", 5, true},
		{"zero", "0", 5, true},
		{"negative", "-3", 5, true},
		{"above maximum", "65", 5, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, g := newTestModel(t, 5)
			require.NoError(t, g.Set(2, 2, 8))

			m = update(t, m, keyRunes("s"))
			require.True(t, m.sizing)
			assert.Contains(t, m.View(), "size:")

			m = update(t, m, tea.KeyMsg{Type: tea.KeyBackspace}, keyRunes(tt.input), tea.KeyMsg{Type: tea.KeyEnter})
			assert.False(t, m.sizing)
			assert.Equal(t, tt.wantSize, g.Size())
			assert.Equal(t, tt.wantErr, m.failed, m.message)
			if tt.wantErr {
				assert.Equal(t, uint64(8), g.Snapshot().Cells[2][2].Value, "rejected size keeps the grid")
				assert.Contains(t, m.View(), "invalid grid size")
			} else {
				assert.Equal(t, 7, m.snap.Size)
			}
		})
	}
}

func TestModel_SizePromptCancel(t *testing.T) {
	m, g := newTestModel(t, 5)
	m = update(t, m, keyRunes("s"), keyRunes("q"), tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.sizing)
	assert.Equal(t, 5, g.Size())
}

func TestModel_Reset(t *testing.T) {
	m, g := newTestModel(t, 4)
	require.NoError(t, g.Set(3, 3, 21))
	m = update(t, m, keyRunes("r"))

	assert.Equal(t, uint64(0), g.Snapshot().Cells[3][3].Value)
	assert.Equal(t, "grid reset", m.message)
}

func TestModel_HelpToggle(t *testing.T) {
	m, _ := newTestModel(t, 5)
	short := m.gridRows()
	m = update(t, m, keyRunes("?"))
	assert.True(t, m.help.ShowAll)
	assert.Less(t, m.gridRows(), short+1)
}

func TestModel_Quit(t *testing.T) {
	m, _ := newTestModel(t, 5)
	_, cmd := m.Update(keyRunes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModel_ContextCancelled(t *testing.T) {
	m, _ := newTestModel(t, 5)
	next, cmd := m.Update(ContextCancelledMsg{Err: context.Canceled})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Equal(t, apperrors.ExitErrorCanceled, next.(Model).exitCode)
}

func TestExitCode(t *testing.T) {
	m, _ := newTestModel(t, 5)
	cancelled, _ := m.Update(ContextCancelledMsg{Err: context.Canceled})

	tests := []struct {
		name    string
		final   tea.Model
		err     error
		want    int
		wantErr string
	}{
		{"program error", nil, errors.New("could not open a new TTY"), apperrors.ExitErrorGeneric, "Error: could not open a new TTY\n"},
		{"quit", m, nil, apperrors.ExitSuccess, ""},
		{"cancelled", cancelled, nil, apperrors.ExitErrorCanceled, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var errBuf bytes.Buffer
			assert.Equal(t, tt.want, exitCode(tt.final, tt.err, &errBuf))
			assert.Equal(t, tt.wantErr, errBuf.String())
		})
	}
}

func TestModel_RedrawPicksUpExternalChanges(t *testing.T) {
	m, g := newTestModel(t, 5)
	require.NoError(t, g.ResizeTo(6))
	m = update(t, m, redrawMsg{})
	assert.Equal(t, 6, m.snap.Size)
	assert.Contains(t, m.View(), "6×6")
}

func TestModel_ViewBeforeWindowSize(t *testing.T) {
	g, err := game.New(3)
	require.NoError(t, err)
	m := NewModel(context.Background(), g, "test")
	assert.Equal(t, "Initializing...", m.View())
}

func TestModel_ViewShowsValues(t *testing.T) {
	m, g := newTestModel(t, 3)
	require.NoError(t, g.Set(1, 1, 1234567))
	require.NoError(t, g.Clear(2, 2))
	m = update(t, m, redrawMsg{})

	view := m.View()
	assert.Contains(t, view, "1.2e6")
	lines := strings.Split(view, "\n")
	assert.GreaterOrEqual(t, len(lines), 5)
}
