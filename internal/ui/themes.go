package ui

import (
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Theme pairs the ANSI codes used by headless output with the lipgloss
// palette used by the TUI.
type Theme struct {
	Name string
	// Warning, Bold and Reset are raw ANSI escape codes; empty disables them.
	Warning string
	Bold    string
	Reset   string
	TUI     TUITheme
}

// TUITheme defines lipgloss-compatible colors for the TUI.
type TUITheme struct {
	Text    lipgloss.TerminalColor
	Border  lipgloss.TerminalColor
	Accent  lipgloss.TerminalColor
	Success lipgloss.TerminalColor
	Warning lipgloss.TerminalColor
	Error   lipgloss.TerminalColor
	Dim     lipgloss.TerminalColor
}

var (
	// DarkTheme is the default, tuned for dark terminal backgrounds.
	DarkTheme = Theme{
		Name:    "dark",
		Warning: "\033[38;5;220m",
		Bold:    "\033[1m",
		Reset:   "\033[0m",
		TUI: TUITheme{
			Text:    lipgloss.Color("#E0E0E0"),
			Border:  lipgloss.Color("#3C6E91"),
			Accent:  lipgloss.Color("#4EA1D3"),
			Success: lipgloss.Color("#9ECE6A"),
			Warning: lipgloss.Color("#FFB347"),
			Error:   lipgloss.Color("#FF4444"),
			Dim:     lipgloss.Color("#666666"),
		},
	}

	// LightTheme is tuned for light terminal backgrounds.
	LightTheme = Theme{
		Name:    "light",
		Warning: "\033[38;5;130m",
		Bold:    "\033[1m",
		Reset:   "\033[0m",
		TUI: TUITheme{
			Text:    lipgloss.Color("#1F2328"),
			Border:  lipgloss.Color("#8C959F"),
			Accent:  lipgloss.Color("#0550AE"),
			Success: lipgloss.Color("#1A7F37"),
			Warning: lipgloss.Color("#9A6700"),
			Error:   lipgloss.Color("#CF222E"),
			Dim:     lipgloss.Color("#6E7781"),
		},
	}

	// NoColorTheme leaves every color to the terminal.
	NoColorTheme = Theme{
		Name: "none",
		TUI: TUITheme{
			Text:    lipgloss.NoColor{},
			Border:  lipgloss.NoColor{},
			Accent:  lipgloss.NoColor{},
			Success: lipgloss.NoColor{},
			Warning: lipgloss.NoColor{},
			Error:   lipgloss.NoColor{},
			Dim:     lipgloss.NoColor{},
		},
	}

	currentTheme = DarkTheme
	themeMutex   sync.RWMutex
)

// ThemeNames lists the names accepted by SetTheme.
var ThemeNames = []string{"dark", "light", "none"}

// GetCurrentTheme returns the active theme.
//
// Returns:
//   - Theme: A copy of the theme selected by SetTheme or InitTheme.
func GetCurrentTheme() Theme {
	themeMutex.RLock()
	defer themeMutex.RUnlock()
	return currentTheme
}

// GetCurrentTUITheme returns the TUI palette of the active theme.
func GetCurrentTUITheme() TUITheme {
	return GetCurrentTheme().TUI
}

// SetCurrentTheme replaces the active theme. Tests use it to restore state.
func SetCurrentTheme(t Theme) {
	themeMutex.Lock()
	defer themeMutex.Unlock()
	currentTheme = t
}

// SetTheme selects a theme by name. Unknown names select dark.
//
// Parameters:
//   - name: One of ThemeNames.
func SetTheme(name string) {
	switch name {
	case "light":
		SetCurrentTheme(LightTheme)
	case "none":
		SetCurrentTheme(NoColorTheme)
	default:
		SetCurrentTheme(DarkTheme)
	}
}

// InitTheme selects the named theme unless color is disabled by noColor or
// by the NO_COLOR environment variable (https://no-color.org/).
//
// Parameters:
//   - name: The theme requested by configuration.
//   - noColor: Whether the user disabled color explicitly.
func InitTheme(name string, noColor bool) {
	if _, set := os.LookupEnv("NO_COLOR"); set || noColor {
		SetCurrentTheme(NoColorTheme)
		return
	}
	SetTheme(name)
}

// Colorize wraps text in the given escape code and a reset, or returns text
// unchanged when code is empty.
//
// Parameters:
//   - code: An ANSI escape sequence from a Theme.
//   - text: The text to color.
//
// Returns:
//   - string: The colored text.
func Colorize(code, text string) string {
	if code == "" {
		return text
	}
	return code + text + GetCurrentTheme().Reset
}
