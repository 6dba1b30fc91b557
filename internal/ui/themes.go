package ui

import (
	"os"
	"sort"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Theme holds the ANSI escape codes used by line-oriented output.
type Theme struct {
	// Name is the identifier of the theme.
	Name      string
	Primary   string
	Secondary string
	Success   string
	Warning   string
	Error     string
	Info      string
	Bold      string
	Underline string
	Reset     string
}

// TUITheme defines lipgloss-compatible colors for the grid view.
type TUITheme struct {
	Bg      lipgloss.TerminalColor
	Text    lipgloss.TerminalColor
	Border  lipgloss.TerminalColor
	Accent  lipgloss.TerminalColor
	Success lipgloss.TerminalColor
	Warning lipgloss.TerminalColor
	Error   lipgloss.TerminalColor
	Dim     lipgloss.TerminalColor
	Info    lipgloss.TerminalColor
	// Touch is the background of cells incremented by the last click.
	Touch lipgloss.TerminalColor
	// Match is the background of cells cleared by the last sweep.
	Match lipgloss.TerminalColor
	// Cursor is the background of the selected cell.
	Cursor lipgloss.TerminalColor
}

var (
	// DarkTheme uses bright colors for dark terminal backgrounds.
	DarkTheme = Theme{
		Name:      "dark",
		Primary:   "\033[38;5;39m",  // Bright blue
		Secondary: "\033[38;5;245m", // Grey
		Success:   "\033[38;5;82m",  // Bright green
		Warning:   "\033[38;5;220m", // Yellow
		Error:     "\033[38;5;196m", // Red
		Info:      "\033[38;5;141m", // Purple
		Bold:      "\033[1m",
		Underline: "\033[4m",
		Reset:     "\033[0m",
	}

	// LightTheme uses darker colors for light terminal backgrounds.
	LightTheme = Theme{
		Name:      "light",
		Primary:   "\033[38;5;27m",  // Dark blue
		Secondary: "\033[38;5;240m", // Dark grey
		Success:   "\033[38;5;28m",  // Dark green
		Warning:   "\033[38;5;136m", // Dark yellow
		Error:     "\033[38;5;124m", // Dark red
		Info:      "\033[38;5;54m",  // Dark purple
		Bold:      "\033[1m",
		Underline: "\033[4m",
		Reset:     "\033[0m",
	}

	// NoColorTheme disables all color output.
	// Used when NO_COLOR is set or --no-color flag is provided.
	NoColorTheme = Theme{Name: "none"}

	// DarkTUITheme is the orange-accented palette with yellow and green
	// cell highlights.
	DarkTUITheme = TUITheme{
		Bg:      lipgloss.Color("#000000"),
		Text:    lipgloss.Color("#E0E0E0"),
		Border:  lipgloss.Color("#FF6600"),
		Accent:  lipgloss.Color("#FF8C00"),
		Success: lipgloss.Color("#9ece6a"),
		Warning: lipgloss.Color("#FFB347"),
		Error:   lipgloss.Color("#FF4444"),
		Dim:     lipgloss.Color("#666666"),
		Info:    lipgloss.Color("#4488FF"),
		Touch:   lipgloss.Color("#FFD700"),
		Match:   lipgloss.Color("#2E8B57"),
		Cursor:  lipgloss.Color("#4488FF"),
	}

	// LightTUITheme keeps the highlight hues but darkens text for light
	// backgrounds.
	LightTUITheme = TUITheme{
		Bg:      lipgloss.Color("#FFFFFF"),
		Text:    lipgloss.Color("#202020"),
		Border:  lipgloss.Color("#B35900"),
		Accent:  lipgloss.Color("#B35900"),
		Success: lipgloss.Color("#2E7D32"),
		Warning: lipgloss.Color("#9A6700"),
		Error:   lipgloss.Color("#C62828"),
		Dim:     lipgloss.Color("#8A8A8A"),
		Info:    lipgloss.Color("#1F5FBF"),
		Touch:   lipgloss.Color("#FFE066"),
		Match:   lipgloss.Color("#66BB6A"),
		Cursor:  lipgloss.Color("#90CAF9"),
	}

	// NoColorTUITheme renders with the terminal's default colors.
	NoColorTUITheme = TUITheme{
		Bg:      lipgloss.NoColor{},
		Text:    lipgloss.NoColor{},
		Border:  lipgloss.NoColor{},
		Accent:  lipgloss.NoColor{},
		Success: lipgloss.NoColor{},
		Warning: lipgloss.NoColor{},
		Error:   lipgloss.NoColor{},
		Dim:     lipgloss.NoColor{},
		Info:    lipgloss.NoColor{},
		Touch:   lipgloss.NoColor{},
		Match:   lipgloss.NoColor{},
		Cursor:  lipgloss.NoColor{},
	}

	palettes = map[string]struct {
		line Theme
		tui  TUITheme
	}{
		"dark":  {DarkTheme, DarkTUITheme},
		"light": {LightTheme, LightTUITheme},
		"none":  {NoColorTheme, NoColorTUITheme},
	}

	// currentTheme is the active theme used throughout the application.
	currentTheme = DarkTheme
	themeMutex   sync.RWMutex
)

// ThemeNames lists the names SetTheme accepts.
func ThemeNames() []string {
	names := make([]string, 0, len(palettes))
	for name := range palettes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetCurrentTUITheme returns the TUI palette paired with the active theme.
func GetCurrentTUITheme() TUITheme {
	themeMutex.RLock()
	defer themeMutex.RUnlock()
	return palettes[currentTheme.Name].tui
}

// GetCurrentTheme returns the currently active theme in a thread-safe manner.
func GetCurrentTheme() Theme {
	themeMutex.RLock()
	defer themeMutex.RUnlock()
	return currentTheme
}

// SetCurrentTheme sets the currently active theme in a thread-safe manner.
// This is primarily used for testing purposes to restore state.
func SetCurrentTheme(t Theme) {
	themeMutex.Lock()
	defer themeMutex.Unlock()
	currentTheme = t
}

// SetTheme changes the active theme by name. Unknown names select dark.
func SetTheme(name string) {
	themeMutex.Lock()
	defer themeMutex.Unlock()
	currentTheme = themeByName(name)
}

func themeByName(name string) Theme {
	if p, ok := palettes[name]; ok {
		return p.line
	}
	return DarkTheme
}

// InitTheme selects the named theme unless color is disabled, either by
// noColor or by a NO_COLOR environment variable (https://no-color.org/).
func InitTheme(name string, noColor bool) {
	themeMutex.Lock()
	defer themeMutex.Unlock()

	if _, set := os.LookupEnv("NO_COLOR"); noColor || set {
		currentTheme = NoColorTheme
		return
	}
	currentTheme = themeByName(name)
}
