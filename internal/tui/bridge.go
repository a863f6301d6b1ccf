package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/fetchview/internal/fetch"
)

// OutcomeMsg carries a worker outcome into the bubbletea event loop.
type OutcomeMsg struct {
	Outcome fetch.Outcome
}

// programRef is a shared reference to the tea.Program.
// Because bubbletea copies the model on every Update, we need a pointer
// that survives copies so the worker goroutine can send messages.
type programRef struct {
	mu      sync.RWMutex
	program *tea.Program
}

// SetProgram sets the tea.Program reference (thread-safe).
func (r *programRef) SetProgram(p *tea.Program) {
	r.mu.Lock()
	r.program = p
	r.mu.Unlock()
}

// Send sends a message to the bubbletea program (thread-safe).
// It reports false when no program is attached.
func (r *programRef) Send(msg tea.Msg) bool {
	r.mu.RLock()
	p := r.program
	r.mu.RUnlock()
	if p == nil {
		return false
	}
	p.Send(msg)
	return true
}

// Sink adapts the program into a fetch.Sink. Outcomes are queued on the
// program's message channel and handled by Update, never by the worker.
func (r *programRef) Sink() fetch.Sink {
	return func(o fetch.Outcome) {
		r.Send(OutcomeMsg{Outcome: o})
	}
}
