package orchestration

import (
	"errors"
	"sync"
	"testing"
	"time"
)

func TestNewStageTracker(t *testing.T) {
	t.Parallel()
	if NewStageTracker(0) != nil {
		t.Error("NewStageTracker(0) should return nil")
	}
	tr := NewStageTracker(4)
	if tr == nil || tr.Fraction() != 0 || tr.Current() != "" {
		t.Fatalf("unexpected initial tracker %+v", tr)
	}
}

func TestStageTracker_Update(t *testing.T) {
	t.Parallel()
	tr := NewStageTracker(4)

	tr.Update(StageEvent{Stage: StageDirectMandates, Index: 0})
	if tr.Current() != StageDirectMandates {
		t.Errorf("Current() = %s", tr.Current())
	}
	tr.Update(StageEvent{Stage: StageDirectMandates, Index: 0, Done: true, Duration: time.Millisecond})
	if tr.Completed() != 1 || tr.Fraction() != 0.25 {
		t.Errorf("completed %d fraction %v", tr.Completed(), tr.Fraction())
	}
	if d, ok := tr.Duration(StageDirectMandates); !ok || d != time.Millisecond {
		t.Errorf("Duration() = %v, %v", d, ok)
	}

	tr.Update(StageEvent{Stage: StageBaseline, Index: 1})
	tr.Update(StageEvent{Stage: StageBaseline, Index: 1, Done: true, Err: errors.New("boom")})
	if tr.Failed() != StageBaseline || tr.Completed() != 1 {
		t.Errorf("failed %q completed %d", tr.Failed(), tr.Completed())
	}
	if tr.Elapsed() < 0 {
		t.Error("Elapsed() should not be negative")
	}
}

func TestNullStageReporter(t *testing.T) {
	t.Parallel()
	events := make(chan StageEvent, 2)
	events <- StageEvent{Stage: StageFinal}
	events <- StageEvent{Stage: StageFinal, Done: true}
	close(events)

	var wg sync.WaitGroup
	wg.Add(1)
	NullStageReporter{}.DisplayStages(&wg, events, 1, nil)
	wg.Wait()
	if len(events) != 0 {
		t.Errorf("%d events left undrained", len(events))
	}
}

func TestStages(t *testing.T) {
	t.Parallel()
	seen := make(map[Stage]bool)
	for _, s := range Stages() {
		if seen[s] {
			t.Errorf("duplicate stage %s", s)
		}
		seen[s] = true
	}
	if len(seen) != 7 {
		t.Errorf("expected 7 stages, got %d", len(seen))
	}
}
