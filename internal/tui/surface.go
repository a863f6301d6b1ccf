package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/x/ansi"

	"github.com/agbru/fetchview/internal/controller"
)

// screen is the mutable widget state shared by all copies of Model.
// It is only touched from Update.
type screen struct {
	input   textinput.Model
	output  viewport.Model
	text    string
	warning string
}

var _ controller.Surface = (*screen)(nil)

func newScreen(initialURL string) *screen {
	in := textinput.New()
	in.Prompt = ""
	in.Placeholder = "https://example.com"
	in.CharLimit = 2048
	in.SetValue(initialURL)
	in.Focus()

	return &screen{
		input:  in,
		output: viewport.New(0, 0),
	}
}

func (s *screen) URLText() string { return s.input.Value() }

func (s *screen) ClearOutput() { s.SetOutput("") }

// SetOutput keeps text as given and shows it hard-wrapped to the panel
// width, so no part of a long line is ever cut off.
func (s *screen) SetOutput(text string) {
	s.text = text
	s.output.SetContent(wrapOutput(text, s.output.Width))
	s.output.GotoTop()
}

// resizeOutput re-wraps the stored text for a new panel size and keeps the
// scroll position where possible.
func (s *screen) resizeOutput(width, height int) {
	s.output.Width = width
	s.output.Height = height
	s.output.SetContent(wrapOutput(s.text, width))
}

// wrapOutput breaks lines longer than width without dropping or adding any
// character other than the inserted newlines.
func wrapOutput(text string, width int) string {
	if width <= 0 || text == "" {
		return text
	}
	return ansi.Hardwrap(text, width, true)
}

func (s *screen) ShowWarning(message string) {
	if message == "" {
		message = "request failed"
	}
	s.warning = message
}

func (s *screen) dismissWarning() { s.warning = "" }

func (s *screen) warningActive() bool { return s.warning != "" }
