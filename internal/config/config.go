// Package config parses the command line, environment and optional config
// file into an AppConfig. Priority is: CLI flags > FIBGRID_* environment
// variables > config file > defaults.
package config

import (
	"flag"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	apperrors "github.com/agbru/fibgrid/internal/errors"
)

// EnvPrefix prefixes every environment variable read by ParseConfig.
const EnvPrefix = "FIBGRID_"

// Front ends selectable with --mode.
const (
	ModeTUI   = "tui"
	ModeREPL  = "repl"
	ModeServe = "serve"
)

// Modes lists the accepted --mode values.
var Modes = []string{ModeTUI, ModeREPL, ModeServe}

// Default values.
const (
	DefaultSize      = 50
	DefaultMaxSize   = 500
	DefaultMode      = ModeTUI
	DefaultAddr      = ":8080"
	DefaultHighlight = 750 * time.Millisecond
	DefaultLogLevel  = "info"
	DefaultTheme     = "dark"
)

// AppConfig holds the resolved application settings.
type AppConfig struct {
	// Size is the initial grid side length.
	Size int
	// MaxSize bounds every resize.
	MaxSize int
	// Mode selects the front end: tui, repl or serve.
	Mode string
	// Addr is the listen address in serve mode.
	Addr string
	// Highlight is how long touched and matched cells stay highlighted.
	Highlight time.Duration
	// AllowedOrigins restricts CORS and websocket origins in serve mode.
	AllowedOrigins []string
	LogLevel       string
	LogFile        string
	ConfigFile     string
	Theme          string
	NoColor        bool
	// Completion, when set, prints a completion script for that shell and exits.
	Completion  string
	ShowVersion bool
}

// Validate checks the semantic consistency of the configuration.
func (c AppConfig) Validate() error {
	if !slices.Contains(Modes, c.Mode) {
		return apperrors.NewConfigError("unknown mode %q (accepted values: %s)", c.Mode, strings.Join(Modes, ", "))
	}
	if c.MaxSize < 1 {
		return apperrors.NewConfigError("max-size must be positive, got %d", c.MaxSize)
	}
	if c.Size < 1 {
		return apperrors.NewConfigError("size must be positive, got %d", c.Size)
	}
	if c.Size > c.MaxSize {
		return apperrors.NewConfigError("size %d exceeds max-size %d", c.Size, c.MaxSize)
	}
	if c.Highlight <= 0 {
		return apperrors.NewConfigError("highlight must be positive, got %s", c.Highlight)
	}
	if c.Mode == ModeServe && c.Addr == "" {
		return apperrors.NewConfigError("serve mode needs a listen address")
	}
	return nil
}

// ParseConfig parses args (without the program name) into an AppConfig.
// Usage and parse errors are written to errorWriter; --help returns
// flag.ErrHelp.
func ParseConfig(programName string, args []string, errorWriter io.Writer) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorWriter)

	config := AppConfig{}
	var origins string
	fs.IntVar(&config.Size, "size", DefaultSize, "Initial grid size (N for an N×N grid).")
	fs.IntVar(&config.MaxSize, "max-size", DefaultMaxSize, "Largest grid size accepted by a resize.")
	fs.StringVar(&config.Mode, "mode", DefaultMode, "Front end: "+strings.Join(Modes, ", ")+".")
	fs.StringVar(&config.Addr, "addr", DefaultAddr, "Listen address in serve mode.")
	fs.DurationVar(&config.Highlight, "highlight", DefaultHighlight, "How long touched and cleared cells stay highlighted.")
	fs.StringVar(&origins, "allowed-origins", "*", "Comma-separated browser origins allowed in serve mode.")
	fs.StringVar(&config.LogLevel, "log-level", DefaultLogLevel, "Log level: debug, info, warn, error.")
	fs.StringVar(&config.LogFile, "log-file", "", "Write logs to this file instead of stderr.")
	fs.StringVar(&config.ConfigFile, "config", "", "Read settings from a .toml, .yaml or .yml file.")
	fs.StringVar(&config.Theme, "theme", DefaultTheme, "Color theme: dark, light, none.")
	fs.BoolVar(&config.NoColor, "no-color", false, "Disable colored output (NO_COLOR is honored too).")
	fs.StringVar(&config.Completion, "completion", "", "Print a completion script for bash, zsh or fish.")
	fs.BoolVar(&config.ShowVersion, "version", false, "Show version information.")

	fs.Usage = func() {
		fmt.Fprintf(errorWriter, "Usage: %s [options]\n\n", programName)
		fmt.Fprintln(errorWriter, "Click a cell to increment its row and column; runs of five")
		fmt.Fprintln(errorWriter, "consecutive Fibonacci numbers are cleared.")
		fmt.Fprintln(errorWriter, "\nOptions:")
		fs.PrintDefaults()
		fmt.Fprintf(errorWriter, "\nEvery option can also be set with %s<NAME> (e.g. %sSIZE=20).\n", EnvPrefix, EnvPrefix)
	}

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}
	if fs.NArg() > 0 {
		fs.Usage()
		return AppConfig{}, apperrors.NewConfigError("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}
	config.AllowedOrigins = splitList(origins)

	if !isFlagSet(fs, "config") {
		config.ConfigFile = getEnvString("CONFIG", "")
	}
	if config.ConfigFile != "" {
		if err := applyFileOverrides(&config, fs, config.ConfigFile); err != nil {
			return AppConfig{}, err
		}
	}
	applyEnvOverrides(&config, fs)

	if config.Completion != "" || config.ShowVersion {
		return config, nil
	}
	if err := config.Validate(); err != nil {
		fmt.Fprintln(errorWriter, "Error:", err)
		return AppConfig{}, err
	}
	return config, nil
}

// splitList splits a comma-separated list, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
