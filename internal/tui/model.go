package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/seatcalc/internal/election"
	apperrors "github.com/agbru/seatcalc/internal/errors"
	"github.com/agbru/seatcalc/internal/orchestration"
	"github.com/agbru/seatcalc/internal/sysmon"
)

// historySize is the number of resource samples kept for the sparklines.
const historySize = 60

// stageState is the dashboard's view of one stage.
type stageState struct {
	stage    orchestration.Stage
	running  bool
	done     bool
	failed   bool
	duration time.Duration
}

// ExecutionState holds the run-related fields of a session.
type ExecutionState struct {
	ctx        context.Context
	cancel     context.CancelFunc
	generation uint64
	done       bool
	exitCode   int
	result     *orchestration.Result
	err        error
}

// Model is the root bubbletea model of the dashboard.
type Model struct {
	header HeaderModel
	keymap KeyMap

	ExecutionState

	stages    []stageState
	byRegion  bool
	cpu       *History
	mem       *History
	lastStats sysmon.Stats

	width  int
	height int

	parentCtx context.Context
	session   Session
	ref       *programRef
}

// Session describes what the dashboard runs.
type Session struct {
	Election election.Election
	// Options configures every run. Reporter and Out are replaced.
	Options orchestration.Options
	// Timeout bounds each run; 0 means no limit.
	Timeout time.Duration
	Version string
	Source  string
}

// NewModel creates a dashboard for the session.
func NewModel(parentCtx context.Context, s Session) Model {
	ctx, cancel := context.WithCancel(parentCtx)
	return Model{
		header: NewHeaderModel(s.Version, s.Source),
		keymap: DefaultKeyMap(),
		ExecutionState: ExecutionState{
			ctx:      ctx,
			cancel:   cancel,
			exitCode: apperrors.ExitSuccess,
		},
		stages:    newStageStates(),
		cpu:       NewHistory(historySize),
		mem:       NewHistory(historySize),
		parentCtx: parentCtx,
		session:   s,
		ref:       &programRef{},
	}
}

func newStageStates() []stageState {
	stages := orchestration.Stages()
	out := make([]stageState, len(stages))
	for i, s := range stages {
		out[i] = stageState{stage: s}
	}
	return out
}

// Init returns the initial commands.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		startRunCmd(m.ref, m.ctx, m.session, m.generation),
		watchContextCmd(m.ctx, m.generation),
	)
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.header.SetWidth(msg.Width)
		return m, nil

	case StageMsg:
		if msg.Generation != m.generation {
			return m, nil
		}
		m.applyStage(msg.Event)
		return m, nil

	case RunCompleteMsg:
		if msg.Generation != m.generation {
			return m, nil // stale message from a previous run
		}
		m.done = true
		m.result = msg.Result
		m.err = msg.Err
		m.exitCode = apperrors.ExitCodeFor(msg.Err)
		m.header.SetDone()
		return m, nil

	case TickMsg:
		return m, tea.Batch(sampleSysStatsCmd(), tickCmd())

	case SysStatsMsg:
		m.lastStats = msg.Stats
		m.cpu.Push(msg.Stats.CPUPercent)
		m.mem.Push(msg.Stats.MemPercent)
		return m, nil

	case ContextCancelledMsg:
		if msg.Generation != m.generation {
			return m, nil
		}
		if !m.done {
			m.done = true
			m.err = msg.Err
			m.exitCode = apperrors.ExitCodeFor(msg.Err)
			m.header.SetDone()
		}
		return m, tea.Quit
	}

	return m, nil
}

func (m *Model) applyStage(ev orchestration.StageEvent) {
	if ev.Index < 0 || ev.Index >= len(m.stages) {
		return
	}
	s := &m.stages[ev.Index]
	if !ev.Done {
		s.running = true
		return
	}
	s.running = false
	s.duration = ev.Duration
	if ev.Err != nil {
		s.failed = true
		return
	}
	s.done = true
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		if !m.done {
			m.exitCode = apperrors.ExitErrorCanceled
		}
		if m.cancel != nil {
			m.cancel()
		}
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Toggle):
		m.byRegion = !m.byRegion
		return m, nil

	case key.Matches(msg, m.keymap.Rerun):
		if !m.done {
			return m, nil
		}
		if m.cancel != nil {
			m.cancel()
		}
		m.generation++
		m.ctx, m.cancel = context.WithCancel(m.parentCtx)
		m.stages = newStageStates()
		m.done = false
		m.result = nil
		m.err = nil
		m.exitCode = apperrors.ExitSuccess
		m.header.Reset()
		return m, tea.Batch(
			startRunCmd(m.ref, m.ctx, m.session, m.generation),
			watchContextCmd(m.ctx, m.generation),
		)
	}
	return m, nil
}

// ExitCode returns the exit code of the last completed run.
func (m Model) ExitCode() int { return m.exitCode }

// Run is the public entry point for the dashboard mode.
// It creates the bubbletea program, runs it, and returns the exit code.
func Run(ctx context.Context, s Session) int {
	// Rebuild styles from the current ui theme (set by app.Run via InitTheme).
	initTUIStyles()

	model := NewModel(ctx, s)
	defer model.cancel()

	p := tea.NewProgram(model, tea.WithAltScreen())
	// Inject the program reference before running so bridge goroutines can Send.
	model.ref.SetProgram(p)

	finalModel, err := p.Run()
	if err != nil {
		return apperrors.ExitErrorGeneric
	}
	if m, ok := finalModel.(Model); ok {
		m.cancel()
		return m.exitCode
	}
	return apperrors.ExitSuccess
}

// startRunCmd returns a tea.Cmd that runs the pipeline.
func startRunCmd(ref *programRef, ctx context.Context, s Session, gen uint64) tea.Cmd {
	return func() tea.Msg {
		if s.Timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, s.Timeout)
			defer cancel()
		}
		opts := s.Options
		opts.Reporter = &TUIStageReporter{ref: ref, generation: gen}
		opts.Out = nil
		if gen > 0 {
			opts.RunID = ""
		}
		res, err := orchestration.Run(ctx, s.Election, opts)
		return RunCompleteMsg{Result: res, Err: err, Generation: gen}
	}
}

// tickCmd returns a command that sends a TickMsg after 500ms.
func tickCmd() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// sampleSysStatsCmd reads resource usage and returns a SysStatsMsg.
func sampleSysStatsCmd() tea.Cmd {
	return func() tea.Msg {
		return SysStatsMsg{Stats: sysmon.Sample()}
	}
}

// watchContextCmd waits for context cancellation and sends a message.
func watchContextCmd(ctx context.Context, gen uint64) tea.Cmd {
	return func() tea.Msg {
		<-ctx.Done()
		return ContextCancelledMsg{Err: ctx.Err(), Generation: gen}
	}
}
