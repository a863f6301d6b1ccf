// This file contains environment variable utilities for configuration override.

package config

import (
	"errors"
	"flag"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"

	apperrors "github.com/agbru/fetchview/internal/errors"
)

// DotEnvFile is loaded from the working directory when present.
const DotEnvFile = ".env"

// LoadDotEnv loads variables from path into the process environment without
// overriding variables that are already set. A missing file is not an error.
//
// Parameters:
//   - path: The dotenv file to read.
//
// Returns:
//   - error: An error if the file exists but cannot be parsed.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return apperrors.WrapError(err, "loading %s", path)
	}
	return nil
}

// isFlagSet checks if a flag was explicitly set on the command line.
func isFlagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// isFlagSetAny checks if any of the specified flags were explicitly set.
// This is useful for aliased flags where either the short or long form may be used.
func isFlagSetAny(fs *flag.FlagSet, names ...string) bool {
	for _, name := range names {
		if isFlagSet(fs, name) {
			return true
		}
	}
	return false
}

// envOverride maps an env key (without the FETCHVIEW_ prefix) to the CLI
// flag name(s) it corresponds to and a function that applies the value.
type envOverride struct {
	envKey string
	flags  []string
	apply  func(*AppConfig, string)
}

var envOverrides = []envOverride{
	// String overrides
	{"URL", []string{"url"}, func(c *AppConfig, v string) { c.URL = v }},
	{"METRICS_ADDR", []string{"metrics-addr"}, func(c *AppConfig, v string) { c.MetricsAddr = v }},
	{"OTLP_ENDPOINT", []string{"otlp-endpoint"}, func(c *AppConfig, v string) { c.OTLPEndpoint = v }},
	{"LOG_FILE", []string{"log-file"}, func(c *AppConfig, v string) { c.LogFile = v }},
	{"LOG_LEVEL", []string{"log-level"}, func(c *AppConfig, v string) { c.LogLevel = v }},
	{"THEME", []string{"theme"}, func(c *AppConfig, v string) { c.Theme = v }},

	// Boolean overrides
	{"ONCE", []string{"once"}, func(c *AppConfig, v string) {
		c.Once = parseBoolEnv(v, c.Once)
	}},
	{"NO_COLOR", []string{"no-color"}, func(c *AppConfig, v string) {
		c.NoColor = parseBoolEnv(v, c.NoColor)
	}},
	{"VERBOSE", []string{"v", "verbose"}, func(c *AppConfig, v string) {
		c.Verbose = parseBoolEnv(v, c.Verbose)
	}},
	{"QUIET", []string{"q", "quiet"}, func(c *AppConfig, v string) {
		c.Quiet = parseBoolEnv(v, c.Quiet)
	}},
}

// parseBoolEnv parses a boolean environment variable value.
// Accepts "true", "1", "yes" as true; "false", "0", "no" as false (case-insensitive).
// Returns defaultVal if the value is not recognized.
func parseBoolEnv(val string, defaultVal bool) bool {
	switch strings.ToLower(val) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	}
	return defaultVal
}

// applyEnvOverrides applies environment variable values to the configuration
// for any flags that were not explicitly set on the command line.
func applyEnvOverrides(config *AppConfig, fs *flag.FlagSet) {
	for _, o := range envOverrides {
		if isFlagSetAny(fs, o.flags...) {
			continue
		}
		if val := os.Getenv(EnvPrefix + o.envKey); val != "" {
			o.apply(config, val)
		}
	}
}
