package orchestration

import "time"

// StageTracker folds StageEvents into a running view of the pipeline.
// Both the spinner reporter and the stage summary use it.
type StageTracker struct {
	numStages int
	completed int
	current   Stage
	started   time.Time
	durations map[Stage]time.Duration
	failed    Stage
}

// NewStageTracker creates a tracker for numStages stages. Returns nil if
// numStages <= 0.
func NewStageTracker(numStages int) *StageTracker {
	if numStages <= 0 {
		return nil
	}
	return &StageTracker{
		numStages: numStages,
		started:   time.Now(),
		durations: make(map[Stage]time.Duration, numStages),
	}
}

// Update applies one event.
func (t *StageTracker) Update(ev StageEvent) {
	if !ev.Done {
		t.current = ev.Stage
		return
	}
	t.durations[ev.Stage] = ev.Duration
	if ev.Err != nil {
		t.failed = ev.Stage
		return
	}
	t.completed++
}

// Current returns the stage most recently started.
func (t *StageTracker) Current() Stage { return t.current }

// Completed returns the number of stages that finished without error.
func (t *StageTracker) Completed() int { return t.completed }

// Fraction returns the completed share of the pipeline, 0.0 to 1.0.
func (t *StageTracker) Fraction() float64 {
	return float64(t.completed) / float64(t.numStages)
}

// Failed returns the stage that failed, or "" if none did.
func (t *StageTracker) Failed() Stage { return t.failed }

// Duration returns the recorded duration of a finished stage.
func (t *StageTracker) Duration(s Stage) (time.Duration, bool) {
	d, ok := t.durations[s]
	return d, ok
}

// Elapsed returns the time since the tracker was created.
func (t *StageTracker) Elapsed() time.Duration { return time.Since(t.started) }

// DrainEvents reads all events from the channel without processing.
func DrainEvents(events <-chan StageEvent) {
	for range events {
	}
}
