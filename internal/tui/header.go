package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/seatcalc/internal/format"
)

// HeaderModel renders the top bar: title, version, elapsed time.
type HeaderModel struct {
	startTime time.Time
	endTime   time.Time
	version   string
	source    string
	width     int
}

// NewHeaderModel creates a new header.
func NewHeaderModel(version, source string) HeaderModel {
	return HeaderModel{
		startTime: time.Now(),
		version:   version,
		source:    source,
	}
}

// SetDone freezes the elapsed timer at the current time.
func (h *HeaderModel) SetDone() {
	h.endTime = time.Now()
}

// Reset restarts the elapsed timer.
func (h *HeaderModel) Reset() {
	h.startTime = time.Now()
	h.endTime = time.Time{}
}

// SetWidth updates the available width.
func (h *HeaderModel) SetWidth(w int) {
	h.width = w
}

// View renders the header.
func (h HeaderModel) View() string {
	titleText := "seatcalc"
	if h.version != "" && h.version != "dev" {
		titleText += " " + h.version
	}
	duration := time.Since(h.startTime)
	if !h.endTime.IsZero() {
		duration = h.endTime.Sub(h.startTime)
	}

	left := titleStyle.Render(titleText) + dimStyle.Render(" | "+h.source+" | ") +
		accentStyle.Render(fmt.Sprintf("Elapsed: %s", format.FormatExecutionDuration(duration)))
	return headerStyle.Width(max(h.width, lipgloss.Width(left)+2)).Render(left)
}
