package tui

import (
	"io"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/seatcalc/internal/orchestration"
)

// sender is the part of tea.Program the bridge needs.
type sender interface {
	Send(msg tea.Msg)
}

// programRef is a shared reference to the tea.Program.
// Because bubbletea copies the model on every Update, we need a pointer
// that survives copies so the bridge goroutines can send messages.
type programRef struct {
	mu      sync.RWMutex
	program sender
}

// SetProgram sets the program reference (thread-safe).
func (r *programRef) SetProgram(p sender) {
	r.mu.Lock()
	r.program = p
	r.mu.Unlock()
}

// Send sends a message to the bubbletea program (thread-safe). Messages
// sent before SetProgram are dropped.
func (r *programRef) Send(msg tea.Msg) {
	r.mu.RLock()
	p := r.program
	r.mu.RUnlock()
	if p != nil {
		p.Send(msg)
	}
}

// TUIStageReporter implements orchestration.StageReporter.
// It drains the event channel and forwards events as bubbletea messages.
type TUIStageReporter struct {
	ref        sender
	generation uint64
}

// Verify interface compliance.
var _ orchestration.StageReporter = (*TUIStageReporter)(nil)

// DisplayStages forwards every event as a StageMsg.
func (t *TUIStageReporter) DisplayStages(wg *sync.WaitGroup, events <-chan orchestration.StageEvent, _ int, _ io.Writer) {
	defer wg.Done()
	for ev := range events {
		t.ref.Send(StageMsg{Event: ev, Generation: t.generation})
	}
}
