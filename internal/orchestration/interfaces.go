//go:generate mockgen -source=interfaces.go -destination=mocks/mock_interfaces.go -package=mocks

package orchestration

import (
	"io"
	"sync"
	"time"
)

// StageEvent is emitted when a stage starts and again when it finishes.
type StageEvent struct {
	// Stage is the stage the event belongs to.
	Stage Stage
	// Index is the stage's position in the pipeline, starting at 0.
	Index int
	// Done is false for the start event and true for the finish event.
	Done bool
	// Duration is set on finish events.
	Duration time.Duration
	// Err is the stage's error, if it failed.
	Err error
}

// StageReporter defines the interface for displaying pipeline progress.
// It keeps the orchestration layer free of UI concerns.
type StageReporter interface {
	// DisplayStages consumes events until the channel is closed and then
	// calls wg.Done. It is run on its own goroutine.
	DisplayStages(wg *sync.WaitGroup, events <-chan StageEvent, numStages int, out io.Writer)
}

// StageReporterFunc adapts a function to StageReporter.
type StageReporterFunc func(wg *sync.WaitGroup, events <-chan StageEvent, numStages int, out io.Writer)

// DisplayStages calls the underlying function.
func (f StageReporterFunc) DisplayStages(wg *sync.WaitGroup, events <-chan StageEvent, numStages int, out io.Writer) {
	f(wg, events, numStages, out)
}

// NullStageReporter drains the event channel without output.
// Useful for quiet mode or testing.
type NullStageReporter struct{}

// DisplayStages drains the channel.
func (NullStageReporter) DisplayStages(wg *sync.WaitGroup, events <-chan StageEvent, _ int, _ io.Writer) {
	defer wg.Done()
	DrainEvents(events)
}

// ResultPresenter renders a completed run.
type ResultPresenter interface {
	// PresentResult writes the final seat table (and, if configured, the
	// intermediate stages) to out.
	PresentResult(result *Result, out io.Writer) error
}

// ErrorHandler handles run errors and returns exit codes.
type ErrorHandler interface {
	HandleError(err error, duration time.Duration, out io.Writer) int
}
