package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/fetchview/internal/ui"
)

// SpinnerRefreshRate is the animation interval of the headless spinner.
const SpinnerRefreshRate = 100 * time.Millisecond

// Spinner is an interface that abstracts the behavior of a terminal spinner.
// It defines the essential controls for a spinner: starting, stopping, and
// updating its status message.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation.
	Stop()
	// UpdateSuffix sets the text that is displayed after the spinner.
	UpdateSuffix(suffix string)
}

// realSpinner adapts spinner.Spinner to the Spinner interface.
type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start() {
	rs.s.Start()
}

func (rs *realSpinner) Stop() {
	rs.s.Stop()
}

func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Lock()
	rs.s.Suffix = suffix
	rs.s.Unlock()
}

var newSpinner = func(options ...spinner.Option) Spinner {
	s := spinner.New(spinner.CharSets[11], SpinnerRefreshRate, options...)
	return &realSpinner{s}
}

// noopSpinner is used when no spinner should be drawn.
type noopSpinner struct{}

func (noopSpinner) Start()              {}
func (noopSpinner) Stop()               {}
func (noopSpinner) UpdateSuffix(string) {}

// DisplayWarning writes a failure reason to w in the theme's warning color.
func DisplayWarning(w io.Writer, message string) {
	t := ui.GetCurrentTheme()
	fmt.Fprintf(w, "%s %s\n", ui.Colorize(t.Warning+t.Bold, "Warning:"), message)
}
