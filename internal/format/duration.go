// Package format holds display helpers shared by the REPL and the terminal UI.
package format

import (
	"fmt"
	"time"
)

// FormatExecutionDuration formats d for display: microseconds below a
// millisecond, milliseconds below a second, time.Duration.String otherwise.
func FormatExecutionDuration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return fmt.Sprintf("%dµs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	default:
		return d.Round(time.Second).String()
	}
}
