package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/fetchview/internal/fetch"
	"github.com/agbru/fetchview/internal/format"
)

// HeaderModel renders the top bar: title, version, and the status of the
// current or last fetch.
type HeaderModel struct {
	version string
	status  string
	style   lipgloss.Style
	width   int
}

// NewHeaderModel creates a new header.
func NewHeaderModel(version string) HeaderModel {
	return HeaderModel{version: version, style: versionStyle}
}

// SetWidth updates the available width.
func (h *HeaderModel) SetWidth(w int) {
	h.width = w
}

// SetFetching shows the URL being fetched.
func (h *HeaderModel) SetFetching(url string) {
	h.status = "fetching " + url
	h.style = statusBusyStyle
}

// SetOutcome summarizes a terminal outcome.
func (h *HeaderModel) SetOutcome(o fetch.Outcome) {
	h.status = describeOutcome(o)
	switch {
	case o.Kind == fetch.Failure:
		h.style = statusFailStyle
	case o.Response.StatusCode >= 400:
		h.style = statusHTTPErrStyle
	default:
		h.style = statusOKStyle
	}
}

// describeOutcome renders "200 OK · 1.5 KB · 85ms", prefixed by the page
// title for HTML responses.
func describeOutcome(o fetch.Outcome) string {
	elapsed := format.FormatExecutionDuration(o.Duration)
	if o.Kind == fetch.Failure {
		return "failed · " + elapsed
	}
	line := fmt.Sprintf("%s · %s · %s", o.Response.Status, format.FormatBytes(len(o.Response.Body)), elapsed)
	if title := o.Response.Title(); title != "" {
		line = title + " · " + line
	}
	return line
}

// View renders the header.
func (h HeaderModel) View() string {
	titleText := "fetchview"
	if h.version != "" && h.version != "dev" {
		titleText += " " + h.version
	}
	left := titleStyle.Render(titleText)

	right := ""
	if h.status != "" {
		right = h.style.Render(h.status)
	}

	innerWidth := h.width - 2
	gap := innerWidth - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}

	return headerStyle.Width(h.width).Render(left + strings.Repeat(" ", gap) + right)
}
