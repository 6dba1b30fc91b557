package tui

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	apperrors "github.com/agbru/fibgrid/internal/errors"
	"github.com/agbru/fibgrid/internal/format"
	"github.com/agbru/fibgrid/internal/game"
	"github.com/agbru/fibgrid/internal/grid"
	"github.com/agbru/fibgrid/internal/sysmon"
)

// Layout constants for the grid view.
const (
	cellWidth     = 6 // one padding column plus five characters of value
	headerHeight  = 1
	statusHeight  = 1
	historyLength = 24
	tickInterval  = time.Second
)

// Messages handled by Update besides the bubbletea built-ins.
type (
	// TickMsg drives the periodic host sampling.
	TickMsg time.Time
	// SysStatsMsg carries one host sample.
	SysStatsMsg sysmon.Stats
	// ContextCancelledMsg reports that the parent context is done.
	ContextCancelledMsg struct{ Err error }
)

// LayoutManager holds terminal dimensions.
type LayoutManager struct {
	width  int
	height int
}

// gridCols returns how many cells fit on one line.
func (l LayoutManager) gridCols() int {
	return max(l.width/cellWidth, 1)
}

// Model is the root bubbletea model of the grid view.
type Model struct {
	header HeaderModel
	keymap KeyMap
	help   help.Model
	input  textinput.Model

	game    *game.Game
	snap    game.Snapshot
	touched map[grid.Coord]bool
	matched map[grid.Coord]bool
	cleared *History

	cursor grid.Coord
	top    int
	left   int

	sizing  bool
	message string
	failed  bool

	LayoutManager

	ctx      context.Context
	exitCode int
}

// NewModel creates a model showing g.
func NewModel(ctx context.Context, g *game.Game, version string) Model {
	input := textinput.New()
	input.Prompt = ""
	input.Placeholder = "grid size"
	input.CharLimit = 9

	m := Model{
		header:   NewHeaderModel(version),
		keymap:   DefaultKeyMap(),
		help:     help.New(),
		input:    input,
		game:     g,
		cleared:  NewHistory(historyLength),
		ctx:      ctx,
		exitCode: apperrors.ExitSuccess,
	}
	m.refresh()
	return m
}

// Init returns the initial commands.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(), sampleSysStatsCmd(), watchContextCmd(m.ctx))
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.sizing {
			return m.handleSizeInput(msg)
		}
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.header.SetWidth(msg.Width)
		m.help.Width = msg.Width
		m.scroll()
		return m, nil

	case redrawMsg:
		m.refresh()
		return m, nil

	case TickMsg:
		return m, tea.Batch(sampleSysStatsCmd(), tickCmd())

	case SysStatsMsg:
		m.header.SetSysStats(sysmon.Stats(msg))
		return m, nil

	case ContextCancelledMsg:
		m.exitCode = apperrors.ExitErrorCanceled
		return m, tea.Quit
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Up):
		m.move(-1, 0)
	case key.Matches(msg, m.keymap.Down):
		m.move(1, 0)
	case key.Matches(msg, m.keymap.Left):
		m.move(0, -1)
	case key.Matches(msg, m.keymap.Right):
		m.move(0, 1)
	case key.Matches(msg, m.keymap.PageUp):
		m.move(-m.gridRows(), 0)
	case key.Matches(msg, m.keymap.PageDown):
		m.move(m.gridRows(), 0)

	case key.Matches(msg, m.keymap.Click):
		m.click()

	case key.Matches(msg, m.keymap.Size):
		m.sizing = true
		m.input.SetValue(strconv.Itoa(m.snap.Size))
		m.input.CursorEnd()
		return m, m.input.Focus()

	case key.Matches(msg, m.keymap.Reset):
		if err := m.game.ResizeTo(m.snap.Size); err != nil {
			m.fail(err)
			break
		}
		m.note("grid reset")
		m.refresh()

	case key.Matches(msg, m.keymap.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.scroll()
	}
	return m, nil
}

// handleSizeInput routes keys to the size prompt while it is open. Only
// ctrl+c quits here so that "q" can be typed.
func (m Model) handleSizeInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Cancel):
		m.closeSizeInput()
		return m, nil

	case key.Matches(msg, m.keymap.Confirm):
		input := m.input.Value()
		m.closeSizeInput()
		if err := m.game.Resize(input); err != nil {
			m.fail(err)
			return m, nil
		}
		m.refresh()
		m.note(fmt.Sprintf("resized to %d×%d", m.snap.Size, m.snap.Size))
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) closeSizeInput() {
	m.sizing = false
	m.input.Blur()
	m.input.Reset()
}

func (m *Model) click() {
	out, err := m.game.Click(m.ctx, m.cursor.Row, m.cursor.Col)
	if err != nil {
		m.fail(err)
		return
	}
	m.cleared.Push(len(out.Matched))
	if len(out.Matched) > 0 {
		m.note(fmt.Sprintf("cleared %d cells", len(out.Matched)))
	} else {
		m.note(fmt.Sprintf("clicked %d,%d", m.cursor.Row, m.cursor.Col))
	}
	m.refresh()
}

func (m *Model) note(s string) {
	m.message = s
	m.failed = false
}

func (m *Model) fail(err error) {
	m.message = err.Error()
	m.failed = true
}

// refresh re-reads the game. A new grid generation resets the history and
// pulls the cursor back inside the grid.
func (m *Model) refresh() {
	snap := m.game.Snapshot()
	if snap.Generation != m.snap.Generation {
		m.cleared.Reset()
	}
	m.snap = snap
	m.touched = coordSet(snap.Touched)
	m.matched = coordSet(snap.Matched)
	m.header.SetSize(snap.Size)
	m.move(0, 0)
}

// move shifts the cursor, clamped to the grid, and scrolls it into view.
func (m *Model) move(dRow, dCol int) {
	last := max(m.snap.Size-1, 0)
	m.cursor.Row = clamp(m.cursor.Row+dRow, 0, last)
	m.cursor.Col = clamp(m.cursor.Col+dCol, 0, last)
	m.scroll()
}

// scroll keeps the cursor inside the visible window.
func (m *Model) scroll() {
	rows, cols := m.gridRows(), m.gridCols()
	m.top = scrollOffset(m.top, m.cursor.Row, rows, m.snap.Size)
	m.left = scrollOffset(m.left, m.cursor.Col, cols, m.snap.Size)
}

func scrollOffset(offset, pos, window, size int) int {
	if pos < offset {
		offset = pos
	}
	if pos >= offset+window {
		offset = pos - window + 1
	}
	return clamp(offset, 0, max(size-window, 0))
}

// gridRows returns how many grid lines fit between the header and the footer.
func (m Model) gridRows() int {
	return max(m.height-headerHeight-statusHeight-lipgloss.Height(m.help.View(m.keymap)), 1)
}

// View renders the header, the visible part of the grid, the status line and help.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.header.View(),
		m.gridView(),
		m.statusView(),
		m.help.View(m.keymap),
	)
}

func (m Model) gridView() string {
	rowEnd := min(m.top+m.gridRows(), m.snap.Size)
	colEnd := min(m.left+m.gridCols(), m.snap.Size)

	lines := make([]string, 0, rowEnd-m.top)
	var b strings.Builder
	for r := m.top; r < rowEnd; r++ {
		b.Reset()
		for c := m.left; c < colEnd; c++ {
			b.WriteString(m.renderCell(grid.Coord{Row: r, Col: c}))
		}
		lines = append(lines, b.String())
	}
	return strings.Join(lines, "\n")
}

// renderCell picks the style of one cell: cursor, then match, then touch.
func (m Model) renderCell(at grid.Coord) string {
	cell := m.snap.Cells[at.Row][at.Col]
	text := ""
	if !cell.Empty {
		text = format.FormatCompact(cell.Value, cellWidth-1)
	}
	switch {
	case at == m.cursor:
		return cursorStyle.Render(text)
	case m.matched[at]:
		return matchStyle.Render(text)
	case m.touched[at]:
		return touchStyle.Render(text)
	case cell.Empty:
		return emptyCellStyle.Render(text)
	default:
		return cellStyle.Render(text)
	}
}

func (m Model) statusView() string {
	if m.sizing {
		return promptStyle.Render("size: ") + m.input.View()
	}
	if m.failed {
		return statusErrorStyle.Render(m.message)
	}

	st := m.game.Stats()
	field := func(label, value string) string {
		return statusLabelStyle.Render(label+" ") + statusValueStyle.Render(value) + "  "
	}
	line := field("cell", fmt.Sprintf("%d,%d", m.cursor.Row, m.cursor.Col)) +
		field("clicks", strconv.FormatUint(st.Clicks, 10)) +
		field("cleared", strconv.FormatUint(st.Cleared, 10)) +
		field("terms", strconv.Itoa(st.Terms))
	if m.cleared.Len() > 0 {
		line += sparklineStyle.Render(RenderSparkline(m.cleared.Values())) + "  "
	}
	return line + statusLabelStyle.Render(m.message)
}

func coordSet(coords []grid.Coord) map[grid.Coord]bool {
	set := make(map[grid.Coord]bool, len(coords))
	for _, c := range coords {
		set[c] = true
	}
	return set
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}

// Run is the public entry point for the TUI mode. g must have been built
// with bridge as its surface. Program errors are reported to errWriter. It
// returns the exit code.
func Run(ctx context.Context, g *game.Game, bridge *Bridge, version string, errWriter io.Writer) int {
	// Rebuild styles from the current ui theme (set by app.Run via InitTheme).
	initTUIStyles()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	model := NewModel(ctx, g, version)
	p := tea.NewProgram(model, tea.WithAltScreen())
	// Inject the program reference before running so the bridge can Send.
	bridge.ref.SetProgram(p)
	go bridge.forward(ctx)

	finalModel, err := p.Run()
	return exitCode(finalModel, err, errWriter)
}

// exitCode maps the result of the bubbletea program to a process exit code.
func exitCode(final tea.Model, err error, errWriter io.Writer) int {
	if err != nil {
		fmt.Fprintf(errWriter, "Error: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	if m, ok := final.(Model); ok {
		return m.exitCode
	}
	return apperrors.ExitSuccess
}

// tickCmd returns a command that sends a TickMsg after tickInterval.
func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// sampleSysStatsCmd reads system-wide CPU and memory stats.
func sampleSysStatsCmd() tea.Cmd {
	return func() tea.Msg {
		return SysStatsMsg(sysmon.Sample())
	}
}

// watchContextCmd waits for context cancellation and sends a message.
// Quitting cancels the context too, but by then the program has stopped
// reading messages.
func watchContextCmd(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		<-ctx.Done()
		return ContextCancelledMsg{Err: ctx.Err()}
	}
}
