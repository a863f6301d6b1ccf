package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/fetchview/internal/ui"
)

// Style variables for the TUI.
// Initialized from the ui theme system via initTUIStyles().
var (
	panelStyle         lipgloss.Style
	headerStyle        lipgloss.Style
	titleStyle         lipgloss.Style
	versionStyle       lipgloss.Style
	labelStyle         lipgloss.Style
	buttonStyle        lipgloss.Style
	buttonBusyStyle    lipgloss.Style
	statusOKStyle      lipgloss.Style
	statusHTTPErrStyle lipgloss.Style
	statusFailStyle    lipgloss.Style
	statusBusyStyle    lipgloss.Style
	warningBoxStyle    lipgloss.Style
	warningTitleStyle  lipgloss.Style
	dimStyle           lipgloss.Style
)

func init() {
	initTUIStyles()
}

// initTUIStyles rebuilds all TUI styles from the current ui theme.
// Called at package init and again from Run() after InitTheme has been invoked.
func initTUIStyles() {
	t := ui.GetCurrentTUITheme()

	panelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Foreground(t.Text)

	headerStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Accent).
		Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Accent)

	versionStyle = lipgloss.NewStyle().Foreground(t.Dim)
	labelStyle = lipgloss.NewStyle().Bold(true).Foreground(t.Accent)

	buttonStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Accent).
		Padding(0, 1)

	buttonBusyStyle = lipgloss.NewStyle().
		Foreground(t.Dim).
		Padding(0, 1)

	statusOKStyle = lipgloss.NewStyle().Foreground(t.Success)
	statusHTTPErrStyle = lipgloss.NewStyle().Foreground(t.Warning)
	statusFailStyle = lipgloss.NewStyle().Foreground(t.Error)
	statusBusyStyle = lipgloss.NewStyle().Foreground(t.Accent)

	warningBoxStyle = lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(t.Warning).
		Padding(1, 2)

	warningTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(t.Warning)
	dimStyle = lipgloss.NewStyle().Foreground(t.Dim)
}
