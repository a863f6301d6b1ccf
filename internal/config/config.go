// Package config parses command-line flags and environment overrides into
// an AppConfig.
package config

import (
	"flag"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/rs/zerolog"

	apperrors "github.com/agbru/fetchview/internal/errors"
	"github.com/agbru/fetchview/internal/ui"
)

// EnvPrefix is prepended to every environment variable read by the
// configuration layer.
const EnvPrefix = "FETCHVIEW_"

// AppConfig aggregates the application's configuration parameters.
type AppConfig struct {
	// URL pre-fills the URL field, or is the target in Once mode.
	URL string
	// Once runs a single headless fetch instead of the TUI.
	Once bool
	// NoColor disables colored output.
	NoColor bool
	// Theme names the color theme (dark, light, none).
	Theme string
	// MetricsAddr enables the Prometheus endpoint when non-empty.
	MetricsAddr string
	// OTLPEndpoint enables trace export when non-empty.
	OTLPEndpoint string
	// LogFile receives logs when set. The TUI otherwise discards them.
	LogFile string
	// LogLevel is a zerolog level name.
	LogLevel string
	Verbose  bool
	Quiet    bool
}

// Level returns the effective zerolog level. Verbose forces debug.
//
// Returns:
//   - zerolog.Level: The parsed LogLevel, or debug when Verbose is set.
func (c AppConfig) Level() zerolog.Level {
	if c.Verbose {
		return zerolog.DebugLevel
	}
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil || c.LogLevel == "" {
		return zerolog.InfoLevel
	}
	return lvl
}

// Validate checks option combinations that flag parsing cannot express.
//
// Returns:
//   - error: A ConfigError describing the first invalid option, or nil.
func (c AppConfig) Validate() error {
	if c.Once && strings.TrimSpace(c.URL) == "" {
		return apperrors.NewConfigError("-once requires a URL (use -url or pass it as an argument)")
	}
	if c.Theme != "" && !slices.Contains(ui.ThemeNames, c.Theme) {
		return apperrors.NewConfigError("unknown theme %q (want one of %s)", c.Theme, strings.Join(ui.ThemeNames, ", "))
	}
	if c.LogLevel != "" {
		if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
			return apperrors.NewConfigError("invalid log level %q", c.LogLevel)
		}
	}
	return nil
}

// ParseConfig parses args (without the program name) into an AppConfig.
// Priority: CLI flags > environment variables > defaults. A single
// positional argument is taken as the URL when -url is not given.
//
// Parameters:
//   - programName: The name shown in usage output.
//   - args: The command-line arguments, excluding the program name.
//   - errorWriter: The writer that receives usage and parse errors.
//
// Returns:
//   - AppConfig: The resolved configuration.
//   - error: flag.ErrHelp, a parse error, or a ConfigError from Validate.
func ParseConfig(programName string, args []string, errorWriter io.Writer) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorWriter)
	fs.Usage = func() {
		fmt.Fprintf(errorWriter, "Usage: %s [flags] [url]\n\n", programName)
		fmt.Fprintln(errorWriter, "Fetches a URL and shows the raw response body.")
		fmt.Fprintln(errorWriter, "Without -once an interactive terminal UI is started.")
		fmt.Fprintln(errorWriter)
		fs.PrintDefaults()
		fmt.Fprintf(errorWriter, "\nEvery flag can also be set through %s<NAME> (e.g. %sMETRICS_ADDR).\n", EnvPrefix, EnvPrefix)
	}

	config := AppConfig{}
	fs.StringVar(&config.URL, "url", "", "URL to fetch (pre-filled in the TUI).")
	fs.BoolVar(&config.Once, "once", false, "Fetch the URL once, print the body and exit.")
	fs.BoolVar(&config.NoColor, "no-color", false, "Disable colored output.")
	fs.StringVar(&config.Theme, "theme", "dark", "Color theme: "+strings.Join(ui.ThemeNames, ", ")+".")
	fs.StringVar(&config.MetricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address (e.g. :9464).")
	fs.StringVar(&config.OTLPEndpoint, "otlp-endpoint", "", "Export traces over OTLP/HTTP to this host:port.")
	fs.StringVar(&config.LogFile, "log-file", "", "Append logs to this file.")
	fs.StringVar(&config.LogLevel, "log-level", "info", "Log level (debug, info, warn, error).")
	fs.BoolVar(&config.Verbose, "v", false, "Enable debug logging (shorthand).")
	fs.BoolVar(&config.Verbose, "verbose", false, "Enable debug logging.")
	fs.BoolVar(&config.Quiet, "q", false, "Suppress the progress spinner (shorthand).")
	fs.BoolVar(&config.Quiet, "quiet", false, "Suppress the progress spinner.")

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}

	rest := fs.Args()
	if len(rest) > 1 {
		return AppConfig{}, apperrors.NewConfigError("expected at most one URL argument, got %d", len(rest))
	}
	applyEnvOverrides(&config, fs)
	if len(rest) == 1 && !isFlagSet(fs, "url") {
		config.URL = rest[0]
	}

	if err := config.Validate(); err != nil {
		fmt.Fprintln(errorWriter, "Configuration error:", err)
		return AppConfig{}, err
	}
	return config, nil
}
