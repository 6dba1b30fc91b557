// Package ui holds the color themes shared by the REPL and the terminal UI.
// Line output uses the ANSI codes of Theme; the grid view builds its
// lipgloss styles from the matching TUITheme.
package ui
