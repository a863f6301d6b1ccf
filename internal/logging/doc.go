// Package logging is the structured logging seam of fetchview.
//
// Components take a Logger and attach typed Fields; ZerologAdapter writes
// them as JSON lines (or through a zerolog.ConsoleWriter), and NopLogger is
// used when logs have nowhere to go, such as the TUI without a log file.
package logging
