package tui

import (
	"time"

	"github.com/agbru/seatcalc/internal/orchestration"
	"github.com/agbru/seatcalc/internal/sysmon"
)

// StageMsg carries one pipeline event.
type StageMsg struct {
	Event      orchestration.StageEvent
	Generation uint64
}

// RunCompleteMsg is sent when a run returns.
type RunCompleteMsg struct {
	Result     *orchestration.Result
	Err        error
	Generation uint64
}

// TickMsg drives periodic sampling.
type TickMsg time.Time

// SysStatsMsg carries a resource sample.
type SysStatsMsg struct {
	Stats sysmon.Stats
}

// ContextCancelledMsg is sent when the parent context ends.
type ContextCancelledMsg struct {
	Err        error
	Generation uint64
}
