//go:generate mockgen -source=ui.go -destination=mocks/mock_ui.go -package=mocks

package cli

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/seatcalc/internal/format"
	"github.com/agbru/seatcalc/internal/orchestration"
	"github.com/agbru/seatcalc/internal/ui"
)

const (
	// ProgressRefreshRate defines the refresh frequency of the spinner.
	ProgressRefreshRate = 100 * time.Millisecond
	// ProgressBarWidth defines the width in characters of the progress bar.
	ProgressBarWidth = 28
)

// Spinner is an interface that abstracts the behavior of a terminal spinner.
// It decouples DisplayStages from a specific spinner implementation.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation.
	Stop()
	// UpdateSuffix sets the text that is displayed after the spinner.
	UpdateSuffix(suffix string)
}

// realSpinner adapts spinner.Spinner to the Spinner interface.
type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start() { rs.s.Start() }

func (rs *realSpinner) Stop() { rs.s.Stop() }

// UpdateSuffix sets the text that is displayed after the spinner.
func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Lock()
	rs.s.Suffix = suffix
	rs.s.Unlock()
}

var newSpinner = func(out io.Writer) Spinner {
	s := spinner.New(spinner.CharSets[11], ProgressRefreshRate, spinner.WithWriter(out))
	return &realSpinner{s}
}

// DisplayStages shows a spinner with a progress bar while the pipeline runs
// and prints one line when the event channel is closed. It calls wg.Done
// on return.
func DisplayStages(wg *sync.WaitGroup, events <-chan orchestration.StageEvent, numStages int, out io.Writer) {
	defer wg.Done()
	tracker := orchestration.NewStageTracker(numStages)
	if tracker == nil {
		orchestration.DrainEvents(events)
		return
	}

	s := newSpinner(out)
	s.UpdateSuffix(stageSuffix(tracker, numStages))
	s.Start()
	for ev := range events {
		tracker.Update(ev)
		s.UpdateSuffix(stageSuffix(tracker, numStages))
	}
	s.Stop()

	st := ui.CurrentStyles()
	if failed := tracker.Failed(); failed != "" {
		fmt.Fprintln(out, st.Error.Render(fmt.Sprintf("✗ stage %s failed after %d/%d stages", failed, tracker.Completed(), numStages)))
		return
	}
	fmt.Fprintln(out, st.Success.Render(fmt.Sprintf("✓ %d/%d stages in %s",
		tracker.Completed(), numStages, format.FormatExecutionDuration(tracker.Elapsed()))))
}

func stageSuffix(t *orchestration.StageTracker, numStages int) string {
	f := t.Fraction()
	current := string(t.Current())
	if current == "" {
		current = "starting"
	}
	return fmt.Sprintf(" %s %3.0f%% (%d/%d) %s", progressBar(f, ProgressBarWidth), f*100, t.Completed(), numStages, current)
}

// progressBar generates a string representing a textual progress bar.
func progressBar(progress float64, length int) string {
	if progress > 1.0 {
		progress = 1.0
	}
	if progress < 0.0 {
		progress = 0.0
	}
	count := int(progress * float64(length))
	var builder strings.Builder
	builder.Grow(length * 3)
	for i := 0; i < length; i++ {
		if i < count {
			builder.WriteRune('█')
		} else {
			builder.WriteRune('░')
		}
	}
	return builder.String()
}
