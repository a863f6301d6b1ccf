package tui

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/fetchview/internal/fetch"
)

// stubGetter answers every Get with a fixed body or error, optionally
// blocking until release is closed.
type stubGetter struct {
	mu      sync.Mutex
	urls    []string
	body    string
	status  int
	err     error
	release chan struct{}
}

func (g *stubGetter) Get(_ context.Context, url string) (*fetch.Response, error) {
	g.mu.Lock()
	g.urls = append(g.urls, url)
	g.mu.Unlock()
	if g.release != nil {
		<-g.release
	}
	if g.err != nil {
		return nil, g.err
	}
	status := g.status
	if status == 0 {
		status = 200
	}
	return &fetch.Response{URL: url, Status: "200 OK", StatusCode: status, Body: []byte(g.body)}, nil
}

func (g *stubGetter) requested() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.urls...)
}

func newTestModel(t *testing.T, getter fetch.Getter, initialURL string) (Model, <-chan fetch.Outcome) {
	t.Helper()
	outcomes := make(chan fetch.Outcome, 4)
	w := fetch.NewWorker(getter, func(o fetch.Outcome) { outcomes <- o })
	m := NewModel(w, Options{InitialURL: initialURL, Version: "v1.2.3"})
	m = step(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	return m, outcomes
}

func step(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return nm
}

func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()
	return step(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

func enter(t *testing.T, m Model) Model {
	t.Helper()
	return step(t, m, tea.KeyMsg{Type: tea.KeyEnter})
}

func deliverNext(t *testing.T, m Model, ch <-chan fetch.Outcome) Model {
	t.Helper()
	select {
	case o := <-ch:
		return step(t, m, OutcomeMsg{Outcome: o})
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for outcome")
		return m
	}
}

func TestModel_ViewBeforeSize(t *testing.T) {
	w := fetch.NewWorker(&stubGetter{}, nil)
	m := NewModel(w, Options{})
	if m.View() != "Initializing..." {
		t.Errorf("View() = %q before WindowSizeMsg", m.View())
	}
}

func TestModel_FetchRendersBodyVerbatim(t *testing.T) {
	getter := &stubGetter{body: "<p>hello</p>\nsecond line"}
	m, outcomes := newTestModel(t, getter, "")

	m = typeText(t, m, "example.com")
	m = enter(t, m)
	m = deliverNext(t, m, outcomes)

	if got := getter.requested(); len(got) != 1 || got[0] != "https://example.com" {
		t.Fatalf("requested %v, want [https://example.com]", got)
	}
	if m.screen.text != getter.body {
		t.Errorf("output = %q, want %q", m.screen.text, getter.body)
	}
	view := m.View()
	if !strings.Contains(view, "<p>hello</p>") || !strings.Contains(view, "second line") {
		t.Errorf("view should show the raw body, got:\n%s", view)
	}
	if !strings.Contains(view, "200 OK") {
		t.Errorf("header should show the status, got:\n%s", view)
	}
}

func TestModel_LongLinesWrapToPanel(t *testing.T) {
	w := fetch.NewWorker(&stubGetter{}, nil)
	m := NewModel(w, Options{})
	m = step(t, m, tea.WindowSizeMsg{Width: 40, Height: 20})

	body := "<html><body>" + strings.Repeat("a", 100) + "TAILMARKER</body></html>"
	m.screen.SetOutput(body)

	if m.screen.text != body {
		t.Fatalf("stored text was altered: %q", m.screen.text)
	}
	var shown strings.Builder
	for _, line := range strings.Split(m.screen.output.View(), "\n") {
		if lipgloss.Width(line) > m.screen.output.Width {
			t.Errorf("line %q is wider than the panel (%d)", line, m.screen.output.Width)
		}
		shown.WriteString(strings.TrimRight(line, " "))
	}
	if shown.String() != body {
		t.Errorf("visible text = %q, want every character of %q", shown.String(), body)
	}

	// A wider window re-wraps the stored text.
	m = step(t, m, tea.WindowSizeMsg{Width: 200, Height: 20})
	if !strings.Contains(m.View(), "aTAILMARKER</body></html>") {
		t.Errorf("tail should fit on one line after resize, got:\n%s", m.View())
	}
}

func TestModel_DecodesDeclaredCharset(t *testing.T) {
	m, _ := newTestModel(t, &stubGetter{}, "")
	resp := &fetch.Response{
		Status:     "200 OK",
		StatusCode: 200,
		Header:     http.Header{"Content-Type": []string{"text/html; charset=iso-8859-1"}},
		Body:       []byte("<p>caf\xe9</p>"),
	}
	m = step(t, m, OutcomeMsg{Outcome: fetch.Outcome{Kind: fetch.Success, Response: resp}})

	if m.screen.text != "<p>café</p>" {
		t.Errorf("output = %q, want the latin-1 body decoded", m.screen.text)
	}
	if !strings.Contains(m.View(), "café") {
		t.Errorf("view should show decoded text, got:\n%s", m.View())
	}
}

func TestWrapOutput(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		text  string
		width int
		want  string
	}{
		{"short lines untouched", "ab\ncd", 5, "ab\ncd"},
		{"long line broken", "abcdefgh", 3, "abc\ndef\ngh"},
		{"spaces kept", "ab cd ef", 4, "ab c\nd ef"},
		{"no width yet", "abcdefgh", 0, "abcdefgh"},
		{"empty", "", 10, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := wrapOutput(tt.text, tt.width); got != tt.want {
				t.Errorf("wrapOutput(%q, %d) = %q, want %q", tt.text, tt.width, got, tt.want)
			}
		})
	}
}

func TestModel_InitialURLIsPrefilled(t *testing.T) {
	getter := &stubGetter{body: "ok"}
	m, outcomes := newTestModel(t, getter, "http://prefilled.example")

	m = enter(t, m)
	deliverNext(t, m, outcomes)

	if got := getter.requested(); len(got) != 1 || got[0] != "http://prefilled.example" {
		t.Errorf("requested %v, want the prefilled URL unchanged", got)
	}
}

func TestModel_EmptyURLDoesNothing(t *testing.T) {
	getter := &stubGetter{body: "never"}
	m, _ := newTestModel(t, getter, "")

	m = enter(t, m)
	m.worker.Wait()

	if len(getter.requested()) != 0 {
		t.Error("empty URL should not issue a request")
	}
	if m.ctrl.Busy() {
		t.Error("model should stay idle")
	}
}

func TestModel_TriggerIgnoredWhileBusy(t *testing.T) {
	getter := &stubGetter{body: "slow", release: make(chan struct{})}
	m, outcomes := newTestModel(t, getter, "example.com")

	m = enter(t, m)
	if !m.ctrl.Busy() {
		t.Fatal("model should be busy after Enter")
	}
	if !strings.Contains(m.View(), "fetching https://example.com") {
		t.Errorf("header should show the in-flight URL, got:\n%s", m.View())
	}
	m = enter(t, m)
	m = enter(t, m)

	close(getter.release)
	m = deliverNext(t, m, outcomes)
	m.worker.Wait()

	if n := len(getter.requested()); n != 1 {
		t.Errorf("getter called %d times, want 1", n)
	}
	if m.screen.text != "slow" {
		t.Errorf("output = %q, want slow", m.screen.text)
	}
}

func TestModel_FailureShowsBlockingWarning(t *testing.T) {
	getter := &stubGetter{err: errors.New("dial tcp 127.0.0.1:1: connect: connection refused")}
	m, outcomes := newTestModel(t, getter, "http://127.0.0.1:1")

	m = enter(t, m)
	m = deliverNext(t, m, outcomes)

	if !m.screen.warningActive() {
		t.Fatal("warning should be shown after a failure")
	}
	if m.screen.text != "" {
		t.Errorf("output = %q, want it cleared", m.screen.text)
	}
	view := m.View()
	if !strings.Contains(view, "Error") || !strings.Contains(view, "connection refused") {
		t.Errorf("overlay should show the reason, got:\n%s", view)
	}

	// Typing is swallowed while the overlay is up.
	m = typeText(t, m, "zzz")
	if strings.Contains(m.screen.input.Value(), "zzz") {
		t.Error("input should not change while the warning is shown")
	}

	m = step(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.screen.warningActive() {
		t.Error("Esc should dismiss the warning")
	}
	if len(getter.requested()) != 1 {
		t.Error("dismissing must not trigger another fetch")
	}
}

func TestModel_RefetchReplacesOutput(t *testing.T) {
	getter := &stubGetter{body: "first"}
	m, outcomes := newTestModel(t, getter, "example.com")

	m = enter(t, m)
	m = deliverNext(t, m, outcomes)
	m.worker.Wait()

	getter.mu.Lock()
	getter.body = "second"
	getter.mu.Unlock()

	m = enter(t, m)
	if m.screen.text != "" {
		t.Errorf("output should be cleared on trigger, got %q", m.screen.text)
	}
	m = deliverNext(t, m, outcomes)
	if m.screen.text != "second" {
		t.Errorf("output = %q, want second", m.screen.text)
	}
	if n := len(getter.requested()); n != 2 {
		t.Errorf("getter called %d times, want 2", n)
	}
}

func TestModel_QuitKey(t *testing.T) {
	m, _ := newTestModel(t, &stubGetter{}, "")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("ctrl+c should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("ctrl+c should quit")
	}
}

func TestDescribeOutcome(t *testing.T) {
	ok := fetch.Outcome{
		Kind:     fetch.Success,
		Response: &fetch.Response{Status: "404 Not Found", StatusCode: 404, Body: make([]byte, 2048)},
		Duration: 85 * time.Millisecond,
	}
	if got := describeOutcome(ok); got != "404 Not Found · 2.0 KB · 85ms" {
		t.Errorf("describeOutcome = %q", got)
	}
	titled := ok
	titled.Response = &fetch.Response{
		Status: "200 OK", StatusCode: 200,
		Header: http.Header{"Content-Type": []string{"text/html"}},
		Body:   []byte("<title>Hi</title>"),
	}
	if got := describeOutcome(titled); got != "Hi · 200 OK · 17 B · 85ms" {
		t.Errorf("describeOutcome = %q", got)
	}
	bad := fetch.Outcome{Kind: fetch.Failure, Duration: 3 * time.Millisecond}
	if got := describeOutcome(bad); got != "failed · 3ms" {
		t.Errorf("describeOutcome = %q", got)
	}
}
