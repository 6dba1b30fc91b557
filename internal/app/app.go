package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/agbru/fibgrid/internal/cli"
	"github.com/agbru/fibgrid/internal/config"
	apperrors "github.com/agbru/fibgrid/internal/errors"
	"github.com/agbru/fibgrid/internal/game"
	"github.com/agbru/fibgrid/internal/logging"
	"github.com/agbru/fibgrid/internal/metrics"
	"github.com/agbru/fibgrid/internal/server"
	"github.com/agbru/fibgrid/internal/tui"
	"github.com/agbru/fibgrid/internal/ui"
)

// Application represents the fibgrid application instance.
type Application struct {
	Config    config.AppConfig
	ErrWriter io.Writer
	// In feeds the REPL. Defaults to os.Stdin.
	In io.Reader
	// Registerer receives the game metrics. Defaults to prometheus.DefaultRegisterer.
	Registerer prometheus.Registerer

	// serveStatus draws the serve-mode status line until ctx is done. When
	// nil, cli.DisplayServeStatus is used on terminals only.
	serveStatus func(ctx context.Context, out io.Writer, addr string, src cli.StatsSource)
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithInput sets the reader used by the REPL.
func WithInput(r io.Reader) AppOption {
	return func(a *Application) { a.In = r }
}

// WithRegisterer sets the Prometheus registerer for game metrics.
func WithRegisterer(reg prometheus.Registerer) AppOption {
	return func(a *Application) { a.Registerer = reg }
}

// New creates a new Application instance by parsing command-line arguments.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{
		ErrWriter:  errWriter,
		In:         os.Stdin,
		Registerer: prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(app)
	}

	programName := "fibgrid"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter)
	if err != nil {
		return nil, err
	}
	app.Config = cfg
	return app, nil
}

// Run executes the application based on the configured mode.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.Completion != "" {
		return a.runCompletion(out)
	}
	if a.Config.ShowVersion {
		PrintVersion(out)
		return apperrors.ExitSuccess
	}

	zerolog.SetGlobalLevel(logging.ParseLevel(a.Config.LogLevel))
	ui.InitTheme(a.Config.Theme, a.Config.NoColor)

	logger, closeLog, err := a.openLogger()
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Error opening log file: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	defer closeLog()
	logger.Debug("configuration loaded", logging.String("config", a.Config.String()))

	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	switch a.Config.Mode {
	case config.ModeREPL:
		return a.runREPL(ctx, out, logger)
	case config.ModeServe:
		return a.runServe(ctx, out, logger)
	default:
		return a.runTUI(ctx, logger)
	}
}

// openLogger returns the logger for the session. The TUI owns the terminal,
// so without --log-file it logs nowhere.
func (a *Application) openLogger() (logging.Logger, func(), error) {
	if a.Config.LogFile != "" {
		f, err := os.OpenFile(a.Config.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, err
		}
		return logging.NewLogger(f, "fibgrid"), func() { _ = f.Close() }, nil
	}
	if a.Config.Mode == config.ModeTUI {
		return logging.NewLogger(io.Discard, "fibgrid"), func() {}, nil
	}
	return logging.NewLogger(a.ErrWriter, "fibgrid"), func() {}, nil
}

// newGame builds the game shared by every mode.
func (a *Application) newGame(surface game.Surface, logger logging.Logger) (*game.Game, error) {
	return game.New(a.Config.Size,
		game.WithSurface(surface),
		game.WithLogger(logger),
		game.WithObserver(metrics.NewGame(a.Registerer)),
		game.WithHighlightPeriod(a.Config.Highlight),
		game.WithMaxSize(a.Config.MaxSize),
	)
}

// runCompletion generates shell completion scripts.
func (a *Application) runCompletion(out io.Writer) int {
	if err := cli.GenerateCompletion(out, a.Config.Completion, config.Modes); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

// runTUI launches the interactive terminal grid.
func (a *Application) runTUI(ctx context.Context, logger logging.Logger) int {
	bridge := tui.NewBridge()
	g, err := a.newGame(bridge, logger)
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		return apperrors.ExitCodeFor(err)
	}
	return tui.Run(ctx, g, bridge, Version, a.ErrWriter)
}

// runREPL starts the line-oriented session on a.In.
func (a *Application) runREPL(ctx context.Context, out io.Writer, logger logging.Logger) int {
	g, err := a.newGame(nil, logger)
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		return apperrors.ExitCodeFor(err)
	}
	repl := cli.NewREPL(g, cli.REPLConfig{ShowAfterClick: true})
	repl.SetInput(a.In)
	repl.SetOutput(out)
	repl.Start(ctx)
	return apperrors.ExitSuccess
}

// runServe serves the grid over HTTP until a signal arrives. When out is a
// terminal a live status line is shown.
func (a *Application) runServe(ctx context.Context, out io.Writer, logger logging.Logger) int {
	hub := server.NewHub(logger)
	g, err := a.newGame(hub, logger)
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		return apperrors.ExitCodeFor(err)
	}

	security := server.DefaultSecurityConfig()
	if len(a.Config.AllowedOrigins) > 0 {
		security.AllowedOrigins = a.Config.AllowedOrigins
	}
	srv := server.New(a.Config.Addr, g, hub,
		server.WithLogger(logger),
		server.WithSecurityConfig(security),
	)

	logger.Info("starting serve mode",
		logging.Int("size", a.Config.Size),
		logging.Int("max_size", a.Config.MaxSize),
		logging.Duration("highlight", a.Config.Highlight))

	status := a.serveStatus
	if status == nil && isTerminal(out) {
		status = cli.DisplayServeStatus
	}

	eg, egCtx := errgroup.WithContext(ctx)
	statusCtx, stopStatus := context.WithCancel(egCtx)
	defer stopStatus()
	eg.Go(func() error {
		defer stopStatus()
		return srv.Run(egCtx)
	})
	if status != nil {
		// Waited on so the spinner line is cleared before Run returns.
		eg.Go(func() error {
			status(statusCtx, out, a.Config.Addr, g)
			return nil
		})
	}

	if err := eg.Wait(); err != nil && !apperrors.IsContextError(err) {
		err = apperrors.WrapError(err, "serve on %s", a.Config.Addr)
		logger.Error("server stopped", err)
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
