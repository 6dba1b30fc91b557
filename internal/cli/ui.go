//go:generate mockgen -source=ui.go -destination=mocks/mock_ui.go -package=mocks

package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/fibgrid/internal/game"
)

// StatusRefreshRate is how often the serve-mode status line is redrawn.
const StatusRefreshRate = 200 * time.Millisecond

// Spinner is an interface that abstracts the behavior of a terminal spinner,
// so the status display can be tested without a terminal.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation.
	Stop()
	// UpdateSuffix sets the text that is displayed after the spinner.
	UpdateSuffix(suffix string)
}

// realSpinner adapts *spinner.Spinner to Spinner.
type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start() { rs.s.Start() }
func (rs *realSpinner) Stop()  { rs.s.Stop() }

// UpdateSuffix takes the spinner lock; the animation goroutine reads Suffix.
func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Lock()
	rs.s.Suffix = suffix
	rs.s.Unlock()
}

var newSpinner = func(options ...spinner.Option) Spinner {
	s := spinner.New(spinner.CharSets[11], StatusRefreshRate, options...)
	return &realSpinner{s}
}

// StatsSource reports the counters shown on the status line.
type StatsSource interface {
	Stats() game.Stats
	Size() int
}

// DisplayServeStatus keeps a one-line spinner with live game counters on
// out until ctx is done.
func DisplayServeStatus(ctx context.Context, out io.Writer, addr string, src StatsSource) {
	s := newSpinner(spinner.WithWriter(out))
	s.UpdateSuffix(serveStatus(addr, src))
	s.Start()
	defer s.Stop()

	ticker := time.NewTicker(StatusRefreshRate)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.UpdateSuffix(serveStatus(addr, src))
		}
	}
}

func serveStatus(addr string, src StatsSource) string {
	st := src.Stats()
	n := src.Size()
	return fmt.Sprintf(" serving %d×%d grid on %s | clicks %d | cleared %d | terms %d",
		n, n, addr, st.Clicks, st.Cleared, st.Terms)
}
