package controller

import (
	"github.com/agbru/fetchview/internal/fetch"
	"github.com/agbru/fetchview/internal/logging"
)

// Surface is the part of the UI the controller drives.
type Surface interface {
	// URLText returns the current content of the URL field.
	URLText() string
	// ClearOutput empties the output region.
	ClearOutput()
	// SetOutput replaces the output region's content.
	SetOutput(text string)
	// ShowWarning presents a blocking warning to the user.
	ShowWarning(message string)
}

// Controller owns the interaction state between a Surface and a Worker.
type Controller struct {
	worker  *fetch.Worker
	surface Surface
	logger  logging.Logger

	decode bool

	last    fetch.Outcome
	hasLast bool
}

// Option configures a Controller.
type Option func(*Controller)

// WithCharsetDecoding makes OnSuccess convert bodies to UTF-8 using the
// response charset before display. Without it bodies are shown byte for byte.
func WithCharsetDecoding() Option {
	return func(c *Controller) { c.decode = true }
}

// New creates a Controller. The worker is owned by the caller and must
// deliver its outcomes back to this controller's goroutine.
func New(worker *fetch.Worker, surface Surface, logger logging.Logger, opts ...Option) *Controller {
	if logger == nil {
		logger = logging.NopLogger{}
	}
	c := &Controller{worker: worker, surface: surface, logger: logger}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Busy reports whether a fetch is outstanding. Surfaces use it to render
// the trigger as disabled.
func (c *Controller) Busy() bool {
	return c.worker.Busy()
}

// OnTriggerFetch starts a fetch of the URL currently in the surface.
// It does nothing when the field is blank or a fetch is already running,
// and reports whether a request was started.
func (c *Controller) OnTriggerFetch() bool {
	url := NormalizeURL(c.surface.URLText())
	if url == "" {
		return false
	}
	if c.worker.Busy() {
		c.logger.Debug("trigger ignored, fetch in progress", logging.String("url", url))
		return false
	}

	req, err := fetch.NewRequest(url)
	if err != nil {
		c.logger.Error("building request", err, logging.String("url", url))
		return false
	}

	c.surface.ClearOutput()
	return c.worker.Submit(req)
}

// Deliver renders a terminal outcome.
func (c *Controller) Deliver(o fetch.Outcome) {
	c.last, c.hasLast = o, true
	if o.Kind == fetch.Failure {
		c.OnFailure(o)
		return
	}
	c.OnSuccess(o)
}

// OnSuccess shows the response body.
func (c *Controller) OnSuccess(o fetch.Outcome) {
	if c.decode {
		c.surface.SetOutput(o.DisplayBody())
		return
	}
	c.surface.SetOutput(o.Body())
}

// OnFailure surfaces the failure reason. The output stays cleared.
func (c *Controller) OnFailure(o fetch.Outcome) {
	c.surface.ShowWarning(o.Reason())
}

// Last returns the most recently delivered outcome.
func (c *Controller) Last() (fetch.Outcome, bool) {
	return c.last, c.hasLast
}
