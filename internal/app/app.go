// Package app wires configuration, logging, telemetry and the metrics
// server around the interactive and headless front ends.
package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/agbru/fetchview/internal/cli"
	"github.com/agbru/fetchview/internal/config"
	apperrors "github.com/agbru/fetchview/internal/errors"
	"github.com/agbru/fetchview/internal/fetch"
	"github.com/agbru/fetchview/internal/logging"
	"github.com/agbru/fetchview/internal/server"
	"github.com/agbru/fetchview/internal/telemetry"
	"github.com/agbru/fetchview/internal/tui"
	"github.com/agbru/fetchview/internal/ui"
)

const telemetryShutdownTimeout = 5 * time.Second

// Application represents the fetchview application instance.
type Application struct {
	Config    config.AppConfig
	ErrWriter io.Writer

	getter fetch.Getter
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithGetter replaces the HTTP client used by both front ends.
func WithGetter(g fetch.Getter) AppOption {
	return func(a *Application) { a.getter = g }
}

// New creates a new Application instance by parsing command-line arguments.
// args[0] is the program name. A .env file in the working directory is
// loaded first so that its variables act as environment defaults.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter}
	for _, opt := range opts {
		opt(app)
	}

	programName := "fetchview"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	if err := config.LoadDotEnv(config.DotEnvFile); err != nil {
		fmt.Fprintln(errWriter, "Configuration error:", err)
		return nil, err
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter)
	if err != nil {
		return nil, err
	}
	app.Config = cfg
	return app, nil
}

// Run executes the application based on the configured mode and returns
// the process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	zerolog.SetGlobalLevel(a.Config.Level())
	ui.InitTheme(a.Config.Theme, a.Config.NoColor)

	logger, closeLog, err := a.newLogger()
	if err != nil {
		fmt.Fprintln(a.ErrWriter, "Configuration error:", err)
		return apperrors.ExitErrorConfig
	}
	defer closeLog()

	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	shutdownTracing, err := telemetry.Setup(ctx, a.Config.OTLPEndpoint, Version)
	if err != nil {
		fmt.Fprintln(a.ErrWriter, "Configuration error:", err)
		return apperrors.ExitErrorConfig
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), telemetryShutdownTimeout)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			logger.Error("flushing traces", err)
		}
	}()

	g, gctx := errgroup.WithContext(ctx)
	runCtx, stopRun := context.WithCancel(gctx)
	defer stopRun()

	var observer fetch.Observer
	if a.Config.MetricsAddr != "" {
		metrics := server.NewMetrics()
		observer = metrics
		srv := server.NewServer(a.Config.MetricsAddr, metrics, logger)
		g.Go(func() error { return srv.Start(runCtx) })
	}

	code := apperrors.ExitSuccess
	g.Go(func() error {
		defer stopRun()
		code = a.runMode(runCtx, out, logger, observer)
		return nil
	})

	if err := g.Wait(); err != nil && !apperrors.IsContextError(err) {
		logger.Error("metrics server failed", err)
		fmt.Fprintln(a.ErrWriter, "Error:", err)
		if code == apperrors.ExitSuccess || code == apperrors.ExitErrorCanceled {
			code = apperrors.ExitErrorGeneric
		}
	}
	return code
}

func (a *Application) runMode(ctx context.Context, out io.Writer, logger logging.Logger, observer fetch.Observer) int {
	if a.Config.Once {
		return cli.RunOnce(ctx, cli.Options{
			URL:      a.Config.URL,
			Version:  Version,
			Out:      out,
			ErrOut:   a.ErrWriter,
			Spinner:  !a.Config.Quiet && isTerminal(a.ErrWriter),
			Logger:   logger,
			Observer: observer,
			Getter:   a.getter,
		})
	}
	return tui.Run(ctx, tui.Options{
		InitialURL: a.Config.URL,
		Version:    Version,
		Logger:     logger,
		Observer:   observer,
		Getter:     a.getter,
	})
}

// newLogger picks the log destination. The TUI owns the terminal, so
// without a log file its logs are dropped; headless mode logs to stderr
// when verbose.
func (a *Application) newLogger() (logging.Logger, func(), error) {
	if a.Config.LogFile != "" {
		f, err := os.OpenFile(a.Config.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, func() {}, apperrors.WrapError(err, "opening log file")
		}
		return logging.NewLogger(f, "fetchview"), func() { f.Close() }, nil
	}
	if a.Config.Once && a.Config.Verbose {
		w := zerolog.ConsoleWriter{Out: a.ErrWriter, NoColor: a.Config.NoColor, TimeFormat: time.Kitchen}
		return logging.NewLogger(w, "fetchview"), func() {}, nil
	}
	return logging.NopLogger{}, func() {}, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
