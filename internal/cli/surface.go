package cli

import (
	"io"

	"github.com/agbru/fetchview/internal/controller"
)

// streamSurface is the headless rendition of the URL field and output
// region: the URL is fixed, the body goes to out and warnings go to errOut.
type streamSurface struct {
	url    string
	out    io.Writer
	errOut io.Writer
	// err is the first failure writing the body to out.
	err error
}

var _ controller.Surface = (*streamSurface)(nil)

func (s *streamSurface) URLText() string { return s.url }

// ClearOutput is a no-op: nothing has been written yet.
func (s *streamSurface) ClearOutput() {}

// SetOutput writes the body exactly as received.
func (s *streamSurface) SetOutput(text string) {
	if _, err := io.WriteString(s.out, text); err != nil && s.err == nil {
		s.err = err
	}
}

func (s *streamSurface) ShowWarning(message string) {
	DisplayWarning(s.errOut, message)
}
