package tui

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/fetchview/internal/controller"
	apperrors "github.com/agbru/fetchview/internal/errors"
	"github.com/agbru/fetchview/internal/fetch"
	"github.com/agbru/fetchview/internal/logging"
)

// Layout constants for the TUI.
const (
	headerHeight    = 1
	inputRowHeight  = 1
	footerHeight    = 1
	panelBorder     = 2
	minOutputHeight = 3
	urlLabel        = "URL "
	fetchLabel      = "[ Fetch ]"
)

// Options configures the TUI.
type Options struct {
	// InitialURL pre-fills the URL field.
	InitialURL string
	Version    string
	Logger     logging.Logger
	// Observer receives worker lifecycle events (metrics).
	Observer fetch.Observer
	// Getter overrides the default HTTP client.
	Getter fetch.Getter
}

// Model is the root bubbletea model.
type Model struct {
	header HeaderModel
	screen *screen
	spin   spinner.Model
	help   help.Model
	keymap KeyMap

	worker *fetch.Worker
	ctrl   *controller.Controller
	logger logging.Logger

	spinning bool
	width    int
	height   int
}

// NewModel creates the root model around an existing worker. The worker's
// sink must feed OutcomeMsg values back into the program running this model.
func NewModel(worker *fetch.Worker, opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NopLogger{}
	}
	scr := newScreen(opts.InitialURL)

	return Model{
		header: NewHeaderModel(opts.Version),
		screen: scr,
		spin:   spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(statusBusyStyle)),
		help:   help.New(),
		keymap: DefaultKeyMap(),
		worker: worker,
		ctrl:   controller.New(worker, scr, logger, controller.WithCharsetDecoding()),
		logger: logger,
	}
}

// Init returns the initial commands.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tea.SetWindowTitle("fetchview"), textinput.Blink)
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil

	case OutcomeMsg:
		m.ctrl.Deliver(msg.Outcome)
		m.header.SetOutcome(msg.Outcome)
		return m, nil

	case spinner.TickMsg:
		if !m.ctrl.Busy() {
			m.spinning = false
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.screen.input, cmd = m.screen.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keymap.Quit) {
		return m, tea.Quit
	}

	// The warning overlay is modal: nothing but dismissal reaches the widgets.
	if m.screen.warningActive() {
		if key.Matches(msg, m.keymap.Dismiss) {
			m.screen.dismissWarning()
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keymap.Fetch):
		return m.triggerFetch()

	case key.Matches(msg, m.keymap.ScrollUp):
		m.screen.output.ScrollUp(1)
		return m, nil
	case key.Matches(msg, m.keymap.ScrollDown):
		m.screen.output.ScrollDown(1)
		return m, nil
	case key.Matches(msg, m.keymap.PageUp):
		m.screen.output.PageUp()
		return m, nil
	case key.Matches(msg, m.keymap.PageDown):
		m.screen.output.PageDown()
		return m, nil
	}

	var cmd tea.Cmd
	m.screen.input, cmd = m.screen.input.Update(msg)
	return m, cmd
}

func (m Model) triggerFetch() (tea.Model, tea.Cmd) {
	if !m.ctrl.OnTriggerFetch() {
		return m, nil
	}
	if req, ok := m.worker.Current(); ok {
		m.header.SetFetching(req.URL)
	}
	if m.spinning {
		return m, nil
	}
	m.spinning = true
	return m, m.spin.Tick
}

// View renders the whole screen.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}
	if m.screen.warningActive() {
		return m.renderWarningOverlay()
	}

	body := panelStyle.
		Width(m.width - panelBorder).
		Render(m.screen.output.View())

	return lipgloss.JoinVertical(lipgloss.Left,
		m.header.View(),
		m.renderInputRow(),
		body,
		m.renderFooter(),
	)
}

func (m Model) renderInputRow() string {
	button := buttonStyle.Render(fetchLabel)
	if m.ctrl.Busy() {
		button = buttonBusyStyle.Render(fetchLabel) + " " + m.spin.View()
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		labelStyle.Render(urlLabel),
		m.screen.input.View(),
		" ",
		button,
	)
}

func (m Model) renderFooter() string {
	return m.help.ShortHelpView(m.keymap.ShortHelp())
}

// renderWarningOverlay renders the failure reason centered on screen.
func (m Model) renderWarningOverlay() string {
	width := min(70, m.width-4)
	if width < 20 {
		width = m.width
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		warningTitleStyle.Render("Error"),
		"",
		lipgloss.NewStyle().Width(width-6).Render(m.screen.warning),
		"",
		m.help.ShortHelpView(m.keymap.modalHelp()),
	)

	box := warningBoxStyle.Width(width).Render(content)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func (m *Model) layout() {
	m.header.SetWidth(m.width)
	m.help.Width = m.width

	inputWidth := m.width - lipgloss.Width(urlLabel) - lipgloss.Width(fetchLabel) - 8
	if inputWidth < 10 {
		inputWidth = 10
	}
	m.screen.input.Width = inputWidth

	h := m.height - headerHeight - inputRowHeight - footerHeight - panelBorder
	if h < minOutputHeight {
		h = minOutputHeight
	}
	m.screen.resizeOutput(m.width-panelBorder, h)
}

// Run is the public entry point for the TUI mode.
// It creates the worker and the bubbletea program, runs it, and returns the
// exit code. Cancelling ctx closes the program; an in-flight fetch still runs
// to completion in the background.
func Run(ctx context.Context, opts Options) int {
	// Rebuild styles from the current ui theme (set by app.Run via InitTheme).
	initTUIStyles()

	logger := opts.Logger
	if logger == nil {
		logger = logging.NopLogger{}
	}
	getter := opts.Getter
	if getter == nil {
		getter = fetch.NewClient(nil, fetch.WithUserAgent("fetchview/"+opts.Version))
	}

	ref := &programRef{}
	worker := fetch.NewWorker(getter, ref.Sink(),
		fetch.WithObserver(opts.Observer),
		fetch.WithLogger(logger))

	model := NewModel(worker, opts)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	// Inject the program reference before running so the worker can Send.
	ref.SetProgram(p)

	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return apperrors.ExitErrorCanceled
		}
		logger.Error("tui exited with error", err)
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}
