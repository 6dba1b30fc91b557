package cli

import (
	"fmt"
	"io"
	"strings"
)

// FlagCompletion describes a CLI flag for shell completion generation.
// Every generator reads flagRegistry, so a new flag only needs an entry there.
type FlagCompletion struct {
	Long      string   // long flag name without "--" (e.g., "size")
	Help      string   // description text
	Values    []string // suggested completion values (nil = no suggestions)
	ValueName string   // label for the value in zsh; empty for boolean flags
	IsFile    bool     // true if the flag takes a file path
	IsMode    bool     // true if values come from the mode list
}

// flagRegistry is the central list of all CLI flags for completion generation.
var flagRegistry = []FlagCompletion{
	{Long: "help", Help: "Show help message"},
	{Long: "version", Help: "Show version information"},
	{Long: "size", Help: "Initial grid size", Values: []string{"10", "25", "50", "100"}, ValueName: "cells"},
	{Long: "max-size", Help: "Largest accepted grid size", Values: []string{"100", "250", "500"}, ValueName: "cells"},
	{Long: "mode", Help: "Front end to run", IsMode: true, ValueName: "mode"},
	{Long: "addr", Help: "Listen address in serve mode", Values: []string{":8080", "127.0.0.1:8080"}, ValueName: "address"},
	{Long: "highlight", Help: "Highlight period", Values: []string{"250ms", "750ms", "1s"}, ValueName: "duration"},
	{Long: "allowed-origins", Help: "Comma-separated browser origins", ValueName: "origins"},
	{Long: "log-level", Help: "Log level", Values: []string{"debug", "info", "warn", "error"}, ValueName: "level"},
	{Long: "log-file", Help: "Write logs to this file", IsFile: true, ValueName: "file"},
	{Long: "config", Help: "TOML or YAML configuration file", IsFile: true, ValueName: "file"},
	{Long: "theme", Help: "Color theme", Values: []string{"dark", "light", "none"}, ValueName: "theme"},
	{Long: "no-color", Help: "Disable colored output"},
	{Long: "completion", Help: "Generate completion script", Values: []string{"bash", "zsh", "fish"}, ValueName: "shell"},
}

// GenerateCompletion writes a completion script for shell ("bash", "zsh" or
// "fish") to out. modes lists the values accepted by --mode.
func GenerateCompletion(out io.Writer, shell string, modes []string) error {
	var script string
	switch shell {
	case "bash":
		script = bashCompletion(modes)
	case "zsh":
		script = zshCompletion(modes)
	case "fish":
		script = fishCompletion(modes)
	default:
		return fmt.Errorf("unsupported shell: %s (accepted values: bash, zsh, fish)", shell)
	}
	if _, err := fmt.Fprint(out, script); err != nil {
		return fmt.Errorf("completion %s generation failed: %w", shell, err)
	}
	return nil
}

// completionValues returns the words suggested after f.
func completionValues(f FlagCompletion, modes []string) []string {
	if f.IsMode {
		return modes
	}
	return f.Values
}

func bashCompletion(modes []string) string {
	opts := make([]string, 0, len(flagRegistry))
	var files []string
	var cases strings.Builder
	for _, f := range flagRegistry {
		opts = append(opts, "--"+f.Long)
		switch values := completionValues(f, modes); {
		case f.IsFile:
			files = append(files, "--"+f.Long)
		case len(values) > 0:
			fmt.Fprintf(&cases, "        --%s)\n            COMPREPLY=( $(compgen -W \"%s\" -- \"${cur}\") )\n            return 0\n            ;;\n",
				f.Long, strings.Join(values, " "))
		}
	}
	if len(files) > 0 {
		fmt.Fprintf(&cases, "        %s)\n            COMPREPLY=( $(compgen -f -- \"${cur}\") )\n            return 0\n            ;;\n",
			strings.Join(files, "|"))
	}

	return fmt.Sprintf(`# Bash completion script for fibgrid
# Add this to your ~/.bashrc or ~/.bash_completion

_fibgrid_completions() {
    local cur prev opts
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"
    opts="%s"

    case "${prev}" in
%s    esac

    if [[ "${cur}" == -* ]]; then
        COMPREPLY=( $(compgen -W "${opts}" -- "${cur}") )
        return 0
    fi
}

complete -F _fibgrid_completions fibgrid
`, strings.Join(opts, " "), cases.String())
}

func zshCompletion(modes []string) string {
	args := make([]string, 0, len(flagRegistry))
	for _, f := range flagRegistry {
		args = append(args, zshArgEntry(f, modes))
	}
	return fmt.Sprintf(`#compdef fibgrid

# Zsh completion script for fibgrid
# Add this to your ~/.zshrc or place in $fpath

_fibgrid() {
    _arguments -s \
%s
}

_fibgrid "$@"
`, strings.Join(args, " \\\n"))
}

// zshArgEntry formats a single FlagCompletion as a zsh _arguments entry.
func zshArgEntry(f FlagCompletion, modes []string) string {
	suffix := ""
	values := completionValues(f, modes)
	switch {
	case f.IsFile:
		suffix = fmt.Sprintf(":%s:_files", f.ValueName)
	case len(values) > 0:
		suffix = fmt.Sprintf(":%s:(%s)", f.ValueName, strings.Join(values, " "))
	case f.ValueName != "":
		suffix = fmt.Sprintf(":%s:", f.ValueName)
	}
	return fmt.Sprintf("        '--%s[%s]%s'", f.Long, f.Help, suffix)
}

func fishCompletion(modes []string) string {
	lines := []string{
		"# Fish completion script for fibgrid",
		"# Add this to ~/.config/fish/completions/fibgrid.fish",
		"",
		"# Disable file completion by default",
		"complete -c fibgrid -f",
	}
	for _, f := range flagRegistry {
		lines = append(lines, fishCompleteLine(f, modes))
	}
	return strings.Join(lines, "\n") + "\n"
}

// fishCompleteLine formats a single FlagCompletion as a fish complete command.
func fishCompleteLine(f FlagCompletion, modes []string) string {
	line := fmt.Sprintf("complete -c fibgrid -l %s -d '%s'", f.Long, f.Help)
	values := completionValues(f, modes)
	switch {
	case f.IsFile:
		line += " -rF"
	case len(values) > 0:
		line += fmt.Sprintf(" -xa '%s'", strings.Join(values, " "))
	case f.ValueName != "":
		line += " -x"
	}
	return line
}
