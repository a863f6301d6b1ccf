// Package cli implements the headless, single-fetch mode.
package cli

import (
	"context"
	"io"
	"os"

	"github.com/briandowns/spinner"

	"github.com/agbru/fetchview/internal/controller"
	apperrors "github.com/agbru/fetchview/internal/errors"
	"github.com/agbru/fetchview/internal/fetch"
	"github.com/agbru/fetchview/internal/logging"
)

// Options configures RunOnce.
type Options struct {
	URL     string
	Version string
	// Out receives the response body. Defaults to os.Stdout.
	Out io.Writer
	// ErrOut receives warnings and the spinner. Defaults to os.Stderr.
	ErrOut io.Writer
	// Spinner enables the progress spinner on ErrOut.
	Spinner  bool
	Logger   logging.Logger
	Observer fetch.Observer
	Getter   fetch.Getter
}

// RunOnce fetches opts.URL once through the same controller and worker as
// the TUI and returns the process exit code. Cancelling ctx abandons the
// wait; the request itself is not cancelled.
func RunOnce(ctx context.Context, opts Options) int {
	out, errOut := opts.Out, opts.ErrOut
	if out == nil {
		out = os.Stdout
	}
	if errOut == nil {
		errOut = os.Stderr
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NopLogger{}
	}
	getter := opts.Getter
	if getter == nil {
		getter = fetch.NewClient(nil, fetch.WithUserAgent("fetchview/"+opts.Version))
	}

	outcomes := make(chan fetch.Outcome, 1)
	worker := fetch.NewWorker(getter, func(o fetch.Outcome) { outcomes <- o },
		fetch.WithObserver(opts.Observer),
		fetch.WithLogger(logger))

	surface := &streamSurface{url: opts.URL, out: out, errOut: errOut}
	ctrl := controller.New(worker, surface, logger)

	if !ctrl.OnTriggerFetch() {
		DisplayWarning(errOut, "no URL to fetch")
		return apperrors.ExitErrorConfig
	}

	var s Spinner = noopSpinner{}
	if opts.Spinner {
		s = newSpinner(spinner.WithWriter(errOut), spinner.WithHiddenCursor(true))
	}
	if req, ok := worker.Current(); ok {
		s.UpdateSuffix(" fetching " + req.URL)
	}
	s.Start()

	select {
	case o := <-outcomes:
		s.Stop()
		ctrl.Deliver(o)
	case <-ctx.Done():
		s.Stop()
		logger.Info("interrupted while waiting for response")
		return apperrors.ExitErrorCanceled
	}

	if last, _ := ctrl.Last(); last.Kind == fetch.Failure {
		return apperrors.ExitErrorFetch
	}
	if surface.err != nil {
		logger.Error("writing response body", surface.err)
		DisplayWarning(errOut, "writing output: "+surface.err.Error())
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}
