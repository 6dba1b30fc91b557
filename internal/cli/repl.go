// Package cli provides the line-oriented front end: an interactive command
// loop over a grid, the serve-mode status line and shell completion scripts.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/agbru/fibgrid/internal/format"
	"github.com/agbru/fibgrid/internal/game"
	"github.com/agbru/fibgrid/internal/grid"
	"github.com/agbru/fibgrid/internal/ui"
)

// DefaultMaxShow is the widest grid that show prints in full.
const DefaultMaxShow = 20

// REPLConfig holds configuration for the REPL session.
type REPLConfig struct {
	// ShowAfterClick prints the grid after every click.
	ShowAfterClick bool
	// MaxShow limits show to the top-left MaxShow×MaxShow window.
	MaxShow int
	// Timeout bounds each click. Zero means no limit.
	Timeout time.Duration
}

// REPL is an interactive session over one game.
type REPL struct {
	config REPLConfig
	game   *game.Game
	in     io.Reader
	out    io.Writer
}

// NewREPL creates a REPL driving g.
func NewREPL(g *game.Game, config REPLConfig) *REPL {
	if config.MaxShow <= 0 {
		config.MaxShow = DefaultMaxShow
	}
	return &REPL{
		config: config,
		game:   g,
		in:     os.Stdin,
		out:    os.Stdout,
	}
}

// SetInput sets a custom input reader (useful for testing).
func (r *REPL) SetInput(in io.Reader) {
	r.in = in
}

// SetOutput sets a custom output writer (useful for testing).
func (r *REPL) SetOutput(out io.Writer) {
	r.out = out
}

// Start reads and runs commands until exit, EOF, or ctx is done.
func (r *REPL) Start(ctx context.Context) {
	r.printBanner()
	r.printHelp()
	fmt.Fprintln(r.out)

	reader := bufio.NewReader(r.in)

	for ctx.Err() == nil {
		fmt.Fprint(r.out, ui.ColorGreen()+"grid> "+ui.ColorReset())

		input, err := reader.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && input != "") {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(r.out, "\nGoodbye!")
				return
			}
			fmt.Fprintf(r.out, "%sRead error: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
			return
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		if !r.processCommand(ctx, input) {
			return // Exit command received
		}
	}
}

// printBanner displays the REPL welcome banner.
func (r *REPL) printBanner() {
	fmt.Fprintf(r.out, "\n%s╔══════════════════════════════════════════════╗%s\n", ui.ColorCyan(), ui.ColorReset())
	fmt.Fprintf(r.out, "%s║%s   %sFibonacci Grid - Interactive Mode%s          %s║%s\n",
		ui.ColorCyan(), ui.ColorReset(), ui.ColorBold(), ui.ColorReset(), ui.ColorCyan(), ui.ColorReset())
	fmt.Fprintf(r.out, "%s╚══════════════════════════════════════════════╝%s\n\n", ui.ColorCyan(), ui.ColorReset())
}

// printHelp displays available commands.
func (r *REPL) printHelp() {
	fmt.Fprintf(r.out, "%sAvailable commands:%s\n", ui.ColorBold(), ui.ColorReset())
	for _, c := range [][2]string{
		{"click <r> <c>", "Increment row r and column c, then clear Fibonacci runs"},
		{"set <r> <c> <v>", "Store v in a cell"},
		{"clear <r> <c>", "Empty a cell"},
		{"sweep", "Clear every Fibonacci run on the grid"},
		{"size <n>", "Replace the grid with an empty n×n grid"},
		{"show", "Print the grid"},
		{"seq [v]", "Print the five terms starting at v"},
		{"status", "Display grid and session counters"},
		{"help", "Display this help"},
		{"exit", "Exit interactive mode"},
	} {
		fmt.Fprintf(r.out, "  %s%-16s%s - %s\n", ui.ColorYellow(), c[0], ui.ColorReset(), c[1])
	}
}

// processCommand parses and executes a user command.
// Returns false if the REPL should exit.
func (r *REPL) processCommand(ctx context.Context, input string) bool {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return true
	}

	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "click", "c":
		r.cmdClick(ctx, args)
	case "set":
		r.cmdSet(args)
	case "clear":
		r.cmdClear(args)
	case "sweep":
		r.cmdSweep(ctx)
	case "size", "resize":
		r.cmdSize(args)
	case "show", "ls":
		r.printGrid()
	case "seq":
		r.cmdSeq(args)
	case "status", "st":
		r.cmdStatus()
	case "help", "h", "?":
		r.printHelp()
	case "exit", "quit", "q":
		fmt.Fprintf(r.out, "%sGoodbye!%s\n", ui.ColorGreen(), ui.ColorReset())
		return false
	default:
		// "r c" is shorthand for a click.
		if len(parts) == 2 {
			if _, err := strconv.Atoi(parts[0]); err == nil {
				r.cmdClick(ctx, parts)
				return true
			}
		}
		fmt.Fprintf(r.out, "%sUnknown command: %s%s\n", ui.ColorRed(), cmd, ui.ColorReset())
		fmt.Fprintf(r.out, "Type %shelp%s to see available commands.\n", ui.ColorYellow(), ui.ColorReset())
	}

	return true
}

func (r *REPL) usage(s string) {
	fmt.Fprintf(r.out, "%sUsage: %s%s\n", ui.ColorRed(), s, ui.ColorReset())
}

func (r *REPL) fail(err error) {
	fmt.Fprintf(r.out, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
}

// parseInts converts every arg, reporting the first one that is not an integer.
func (r *REPL) parseInts(args []string) ([]int, bool) {
	out := make([]int, len(args))
	for i, a := range args {
		n, err := strconv.Atoi(a)
		if err != nil {
			fmt.Fprintf(r.out, "%sInvalid value: %s%s\n", ui.ColorRed(), a, ui.ColorReset())
			return nil, false
		}
		out[i] = n
	}
	return out, true
}

func (r *REPL) cmdClick(ctx context.Context, args []string) {
	if len(args) != 2 {
		r.usage("click <r> <c>")
		return
	}
	rc, ok := r.parseInts(args)
	if !ok {
		return
	}

	if r.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.config.Timeout)
		defer cancel()
	}
	start := time.Now()
	out, err := r.game.Click(ctx, rc[0], rc[1])
	if err != nil {
		r.fail(err)
		return
	}

	fmt.Fprintf(r.out, "Touched %s%d%s cells in %s\n",
		ui.ColorYellow(), len(out.Touched), ui.ColorReset(), format.FormatExecutionDuration(time.Since(start)))
	r.printCleared(out.Matched)
	if r.config.ShowAfterClick {
		r.printGrid()
	}
}

func (r *REPL) printCleared(coords []grid.Coord) {
	if len(coords) == 0 {
		return
	}
	fmt.Fprintf(r.out, "Cleared %s%d%s cells:", ui.ColorGreen(), len(coords), ui.ColorReset())
	for _, c := range coords {
		fmt.Fprintf(r.out, " (%d,%d)", c.Row, c.Col)
	}
	fmt.Fprintln(r.out)
}

func (r *REPL) cmdSet(args []string) {
	if len(args) != 3 {
		r.usage("set <r> <c> <v>")
		return
	}
	rc, ok := r.parseInts(args[:2])
	if !ok {
		return
	}
	v, err := strconv.ParseUint(args[2], 10, 64)
	if err != nil {
		fmt.Fprintf(r.out, "%sInvalid value: %s%s\n", ui.ColorRed(), args[2], ui.ColorReset())
		return
	}
	if err := r.game.Set(rc[0], rc[1], v); err != nil {
		r.fail(err)
		return
	}
	fmt.Fprintf(r.out, "(%d,%d) = %s%d%s\n", rc[0], rc[1], ui.ColorCyan(), v, ui.ColorReset())
}

func (r *REPL) cmdClear(args []string) {
	if len(args) != 2 {
		r.usage("clear <r> <c>")
		return
	}
	rc, ok := r.parseInts(args)
	if !ok {
		return
	}
	if err := r.game.Clear(rc[0], rc[1]); err != nil {
		r.fail(err)
		return
	}
	fmt.Fprintf(r.out, "(%d,%d) cleared\n", rc[0], rc[1])
}

func (r *REPL) cmdSweep(ctx context.Context) {
	cleared := r.game.Sweep(ctx)
	if len(cleared) == 0 {
		fmt.Fprintln(r.out, "No Fibonacci runs found.")
		return
	}
	r.printCleared(cleared)
}

func (r *REPL) cmdSize(args []string) {
	if len(args) != 1 {
		r.usage("size <n>")
		return
	}
	if err := r.game.Resize(args[0]); err != nil {
		r.fail(err)
		return
	}
	n := r.game.Size()
	fmt.Fprintf(r.out, "Grid is now %s%d×%d%s\n", ui.ColorCyan(), n, n, ui.ColorReset())
}

func (r *REPL) cmdSeq(args []string) {
	from := uint64(1)
	if len(args) > 0 {
		v, err := strconv.ParseUint(args[0], 10, 64)
		if err != nil {
			fmt.Fprintf(r.out, "%sInvalid value: %s%s\n", ui.ColorRed(), args[0], ui.ColorReset())
			return
		}
		from = v
	}
	run := r.game.SequenceFrom(from)
	if run == nil {
		fmt.Fprintf(r.out, "%s%d is not a Fibonacci number%s\n", ui.ColorRed(), from, ui.ColorReset())
		return
	}
	terms := make([]string, len(run))
	for i, t := range run {
		terms[i] = format.FormatTerm(t)
	}
	fmt.Fprintf(r.out, "%s%s%s\n", ui.ColorMagenta(), strings.Join(terms, ", "), ui.ColorReset())
}

// cmdStatus displays the grid and session counters.
func (r *REPL) cmdStatus() {
	snap := r.game.Snapshot()
	st := r.game.Stats()
	fmt.Fprintf(r.out, "\n%sCurrent grid:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  Size:            %s%d×%d%s (max %d)\n", ui.ColorCyan(), snap.Size, snap.Size, ui.ColorReset(), r.game.MaxSize())
	fmt.Fprintf(r.out, "  Generation:      %s%d%s\n", ui.ColorCyan(), snap.Generation, ui.ColorReset())
	fmt.Fprintf(r.out, "  Clicks:          %s%d%s\n", ui.ColorCyan(), st.Clicks, ui.ColorReset())
	fmt.Fprintf(r.out, "  Sweeps:          %s%d%s\n", ui.ColorCyan(), st.Sweeps, ui.ColorReset())
	fmt.Fprintf(r.out, "  Cells cleared:   %s%d%s\n", ui.ColorCyan(), st.Cleared, ui.ColorReset())
	fmt.Fprintf(r.out, "  Sequence terms:  %s%d%s\n", ui.ColorCyan(), st.Terms, ui.ColorReset())
	fmt.Fprintf(r.out, "  Highlight:       %s%s%s\n", ui.ColorCyan(), r.game.HighlightPeriod(), ui.ColorReset())
	fmt.Fprintln(r.out)
}

// printGrid prints the top-left window of the grid. Cells from the last
// click are yellow, cells from the last sweep green; empty cells show a dot.
func (r *REPL) printGrid() {
	snap := r.game.Snapshot()
	n := min(snap.Size, r.config.MaxShow)

	touched := make(map[grid.Coord]bool, len(snap.Touched))
	for _, c := range snap.Touched {
		touched[c] = true
	}
	matched := make(map[grid.Coord]bool, len(snap.Matched))
	for _, c := range snap.Matched {
		matched[c] = true
	}

	width := 1
	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			width = max(width, len(snap.Cells[row][col].String()))
		}
	}

	var b strings.Builder
	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			cell := snap.Cells[row][col]
			text := cell.String()
			if cell.Empty {
				text = "."
			}
			at := grid.Coord{Row: row, Col: col}
			color := ""
			switch {
			case matched[at]:
				color = ui.ColorGreen()
			case touched[at]:
				color = ui.ColorYellow()
			}
			if color != "" {
				fmt.Fprintf(&b, " %s%*s%s", color, width, text, ui.ColorReset())
			} else {
				fmt.Fprintf(&b, " %*s", width, text)
			}
		}
		b.WriteByte('\n')
	}
	fmt.Fprint(r.out, b.String())
	if n < snap.Size {
		fmt.Fprintf(r.out, "(showing %d×%d of %d×%d)\n", n, n, snap.Size, snap.Size)
	}
}
