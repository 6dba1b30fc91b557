package game

import (
	"context"
	"math/big"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	apperrors "github.com/agbru/fibgrid/internal/errors"
	"github.com/agbru/fibgrid/internal/grid"
	"github.com/agbru/fibgrid/internal/logging"
	"github.com/agbru/fibgrid/internal/sequence"
	"github.com/agbru/fibgrid/internal/sweep"
)

const (
	// DefaultSize is the grid dimension used when none is configured.
	DefaultSize = 50
	// DefaultHighlightPeriod is how long touch and match highlights stay visible.
	DefaultHighlightPeriod = 750 * time.Millisecond
	// DefaultMaxSize bounds the grid dimension accepted by Resize.
	DefaultMaxSize = 500
)

const tracerName = "github.com/agbru/fibgrid/internal/game"

// Outcome describes the effect of one click.
type Outcome struct {
	Touched    []grid.Coord `json:"touched"`
	Matched    []grid.Coord `json:"matched"`
	Generation uint64       `json:"generation"`
	Click      uint64       `json:"click"`
}

// Snapshot is a consistent copy of the game state.
type Snapshot struct {
	Size       int
	Generation uint64
	Cells      [][]grid.Cell
	Touched    []grid.Coord
	Matched    []grid.Coord
}

// Stats aggregates counters since the game was created.
type Stats struct {
	Clicks  uint64
	Sweeps  uint64
	Cleared uint64
	Terms   int
}

// Game glues the grid, the sequence and the sweep together and drives the
// render surface. All methods are safe for concurrent use.
type Game struct {
	mu sync.Mutex

	grid  *grid.Grid
	seq   *sequence.Sequence
	sweep *sweep.Controller

	// stamps map each highlighted cell to the click that highlighted it.
	stamps [2]map[grid.Coord]uint64
	click  uint64
	stats  Stats

	surface   Surface
	scheduler Scheduler
	observer  Observer
	logger    logging.Logger
	tracer    trace.Tracer
	period    time.Duration
	maxSize   int
}

// Option configures a Game during construction.
type Option func(*Game)

// WithSurface sets the render surface. A nil surface discards render calls.
func WithSurface(s Surface) Option {
	return func(g *Game) {
		if s != nil {
			g.surface = s
		}
	}
}

// WithScheduler replaces the time.AfterFunc based scheduler.
func WithScheduler(s Scheduler) Option {
	return func(g *Game) {
		if s != nil {
			g.scheduler = s
		}
	}
}

// WithHighlightPeriod sets how long highlights last.
func WithHighlightPeriod(d time.Duration) Option {
	return func(g *Game) {
		if d > 0 {
			g.period = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l logging.Logger) Option {
	return func(g *Game) {
		if l != nil {
			g.logger = l
		}
	}
}

// WithObserver sets the metrics observer.
func WithObserver(o Observer) Option {
	return func(g *Game) {
		if o != nil {
			g.observer = o
		}
	}
}

// WithMaxSize sets the largest accepted grid dimension.
func WithMaxSize(n int) Option {
	return func(g *Game) {
		if n > 0 {
			g.maxSize = n
		}
	}
}

// New builds a game with a size×size grid of zeros.
func New(size int, opts ...Option) (*Game, error) {
	g := &Game{
		seq:       sequence.New(),
		surface:   nopSurface{},
		scheduler: timeScheduler{},
		observer:  nopObserver{},
		logger:    logging.Nop(),
		tracer:    otel.Tracer(tracerName),
		period:    DefaultHighlightPeriod,
		maxSize:   DefaultMaxSize,
	}
	for _, opt := range opts {
		opt(g)
	}
	if err := g.validateSize(strconv.Itoa(size), size); err != nil {
		return nil, err
	}
	gr, err := grid.New(size)
	if err != nil {
		return nil, err
	}
	g.grid = gr
	g.sweep = sweep.NewController(gr, g.seq, g.observer)
	g.resetStamps()
	g.observer.SequenceLength(g.seq.Len())
	return g, nil
}

func (g *Game) resetStamps() {
	for i := range g.stamps {
		g.stamps[i] = make(map[grid.Coord]uint64)
	}
}

// Click increments the row and column of (row, col), sweeps the grid,
// pushes every changed cell to the surface, and schedules the expiry of
// both highlight sets.
func (g *Game) Click(ctx context.Context, row, col int) (Outcome, error) {
	_, span := g.tracer.Start(ctx, "game.Click", trace.WithAttributes(
		attribute.Int("grid.row", row),
		attribute.Int("grid.col", col),
	))
	defer span.End()

	if err := ctx.Err(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "canceled")
		return Outcome{}, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	touched, err := g.grid.IncrementAxisAligned(row, col)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid coordinate")
		g.logger.Debug("click rejected", logging.Int("row", row), logging.Int("col", col), logging.Err(err))
		return Outcome{}, err
	}
	g.click++
	g.stats.Clicks++
	g.observer.Clicked()

	matched := g.runSweep()

	gen := g.grid.Generation()
	g.pushCells(touched, matched)
	g.highlight(TouchHighlight, touched, gen)
	g.highlight(MatchHighlight, matched, gen)

	span.SetAttributes(
		attribute.Int("grid.touched", len(touched)),
		attribute.Int("grid.matched", len(matched)),
	)
	g.logger.Debug("click",
		logging.Int("row", row),
		logging.Int("col", col),
		logging.Int("matched", len(matched)),
		logging.Uint64("generation", gen),
	)
	return Outcome{Touched: touched, Matched: matched, Generation: gen, Click: g.click}, nil
}

// Sweep runs a sweep without a preceding increment. It is used after values
// are injected directly with Set.
func (g *Game) Sweep(ctx context.Context) []grid.Coord {
	_, span := g.tracer.Start(ctx, "game.Sweep")
	defer span.End()

	g.mu.Lock()
	defer g.mu.Unlock()

	g.click++
	matched := g.runSweep()
	gen := g.grid.Generation()
	g.pushCells(nil, matched)
	g.highlight(MatchHighlight, matched, gen)
	span.SetAttributes(attribute.Int("grid.matched", len(matched)))
	return matched
}

// runSweep must be called with mu held.
func (g *Game) runSweep() []grid.Coord {
	matched := g.sweep.Sweep()
	g.stats.Sweeps++
	g.stats.Cleared += uint64(len(matched))
	g.stats.Terms = g.seq.Len()
	g.observer.SequenceLength(g.stats.Terms)
	return matched
}

// pushCells sends the current value of every touched or matched cell once,
// as a single batch.
func (g *Game) pushCells(touched, matched []grid.Coord) {
	sent := make(map[grid.Coord]struct{}, len(touched)+len(matched))
	updates := make([]CellUpdate, 0, len(touched)+len(matched))
	for _, list := range [][]grid.Coord{touched, matched} {
		for _, p := range list {
			if _, ok := sent[p]; ok {
				continue
			}
			sent[p] = struct{}{}
			updates = append(updates, CellUpdate{Coord: p, Cell: g.grid.At(p.Row, p.Col)})
		}
	}
	if len(updates) > 0 {
		g.surface.SetCells(updates)
	}
}

// highlight stamps coords with the current click and schedules their expiry.
func (g *Game) highlight(kind HighlightKind, coords []grid.Coord, gen uint64) {
	if len(coords) == 0 {
		return
	}
	stamp := g.click
	for _, p := range coords {
		g.stamps[kind][p] = stamp
	}
	g.surface.Highlight(kind, coords, gen)
	g.scheduler.AfterFunc(g.period, func() { g.expire(kind, coords, gen, stamp) })
}

// expire removes a highlight scheduled by an earlier click. It is a no-op
// when the grid was resized since, and it skips cells re-highlighted by a
// later click.
func (g *Game) expire(kind HighlightKind, coords []grid.Coord, gen, stamp uint64) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if gen != g.grid.Generation() {
		return
	}
	stale := make([]grid.Coord, 0, len(coords))
	for _, p := range coords {
		if s, ok := g.stamps[kind][p]; ok && s == stamp {
			delete(g.stamps[kind], p)
			stale = append(stale, p)
		}
	}
	if len(stale) > 0 {
		g.surface.Unhighlight(kind, stale, gen)
	}
}

// Set stores v at (row, col) without sweeping.
func (g *Game) Set(row, col int, v uint64) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.grid.Set(row, col, v); err != nil {
		return err
	}
	g.surface.SetCells([]CellUpdate{{Coord: grid.Coord{Row: row, Col: col}, Cell: g.grid.At(row, col)}})
	return nil
}

// Clear empties (row, col) without sweeping.
func (g *Game) Clear(row, col int) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.grid.InBounds(row, col) {
		return apperrors.CoordinateError{Row: row, Col: col, Size: g.grid.Size()}
	}
	p := grid.Coord{Row: row, Col: col}
	g.grid.ClearCells([]grid.Coord{p})
	g.surface.SetCells([]CellUpdate{{Coord: p, Cell: g.grid.At(row, col)}})
	return nil
}

// Resize parses the raw value of a size control and rebuilds the grid.
// Values that are not integers, not positive, or above the maximum size are
// rejected with an apperrors.ResizeError and the grid is left unchanged.
func (g *Game) Resize(input string) error {
	trimmed := strings.TrimSpace(input)
	n, err := strconv.Atoi(trimmed)
	if err != nil {
		rerr := apperrors.ResizeError{Input: input, Reason: "not an integer"}
		g.rejectResize(rerr)
		return rerr
	}
	return g.resize(input, n)
}

// ResizeTo rebuilds the grid as n×n.
func (g *Game) ResizeTo(n int) error {
	return g.resize(strconv.Itoa(n), n)
}

func (g *Game) resize(input string, n int) error {
	if err := g.validateSize(input, n); err != nil {
		g.rejectResize(err)
		return err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.grid.Resize(n); err != nil {
		return apperrors.ResizeError{Input: input, Reason: err.Error()}
	}
	g.resetStamps()
	g.observer.Resized(true)
	g.logger.Info("grid resized", logging.Int("size", n), logging.Uint64("generation", g.grid.Generation()))
	g.surface.Reset(g.snapshotLocked())
	return nil
}

func (g *Game) validateSize(input string, n int) error {
	switch {
	case n <= 0:
		return apperrors.ResizeError{Input: input, Reason: "must be positive"}
	case n > g.maxSize:
		return apperrors.ResizeError{Input: input, Reason: "exceeds maximum " + strconv.Itoa(g.maxSize)}
	}
	return nil
}

func (g *Game) rejectResize(err error) {
	g.observer.Resized(false)
	g.logger.Debug("resize rejected", logging.Err(err))
}

// Snapshot returns a copy of the current state.
func (g *Game) Snapshot() Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.snapshotLocked()
}

func (g *Game) snapshotLocked() Snapshot {
	return Snapshot{
		Size:       g.grid.Size(),
		Generation: g.grid.Generation(),
		Cells:      g.grid.Rows(),
		Touched:    stampedCoords(g.stamps[TouchHighlight]),
		Matched:    stampedCoords(g.stamps[MatchHighlight]),
	}
}

func stampedCoords(m map[grid.Coord]uint64) []grid.Coord {
	out := make([]grid.Coord, 0, len(m))
	for p := range m {
		out = append(out, p)
	}
	return out
}

// Sync calls f with a snapshot while holding the game lock, so whatever f
// enqueues is ordered before any later Surface call. f must not block or
// call back into the Game.
func (g *Game) Sync(f func(Snapshot)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	f(g.snapshotLocked())
}

// Size returns the current grid dimension.
func (g *Game) Size() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.grid.Size()
}

// MaxSize returns the largest accepted grid dimension.
func (g *Game) MaxSize() int { return g.maxSize }

// HighlightPeriod returns how long highlights last.
func (g *Game) HighlightPeriod() time.Duration { return g.period }

// Stats returns the counters accumulated so far.
func (g *Game) Stats() Stats {
	g.mu.Lock()
	defer g.mu.Unlock()
	s := g.stats
	s.Terms = g.seq.Len()
	return s
}

// SequenceFrom returns a copy of the run that starts at v, or nil.
func (g *Game) SequenceFrom(v uint64) []*big.Int {
	g.mu.Lock()
	defer g.mu.Unlock()

	run := g.seq.From(v)
	if run == nil {
		return nil
	}
	out := make([]*big.Int, len(run))
	for i, t := range run {
		out[i] = new(big.Int).Set(t)
	}
	g.observer.SequenceLength(g.seq.Len())
	return out
}
