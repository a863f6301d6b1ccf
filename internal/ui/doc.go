// Package ui provides theme and color support for the application's user interface.
// It defines color schemes shared by the headless output and the TUI, so the
// presentation layers agree on colors and honor NO_COLOR.
package ui
