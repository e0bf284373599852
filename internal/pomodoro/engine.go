// Package pomodoro runs the focus/break timer cycle. Phase lengths come from
// the student's preferences; every completed focus phase is reported through a
// callback so it lands in the study log.
package pomodoro

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

type Phase string

const (
	PhaseIdle  Phase = "idle"
	PhaseFocus Phase = "focus"
	PhaseBreak Phase = "break"
)

// Snapshot is the externally visible timer state.
type Snapshot struct {
	Phase            Phase  `json:"phase"`
	Subject          string `json:"subject"`
	RemainingSeconds int    `json:"remaining_seconds"`
	Paused           bool   `json:"paused"`
	CompletedFocus   int    `json:"completed_focus"`
}

// Engine drives the timer. One engine per process; concurrent HTTP handlers
// share it.
type Engine struct {
	mu sync.Mutex

	phase          Phase
	subject        string
	remaining      time.Duration
	paused         bool
	completedFocus int

	focusDuration time.Duration
	breakDuration time.Duration

	onFocusComplete func(subject string, minutes int)

	stopChan chan struct{}
	running  bool
	logger   *zap.Logger
}

func New(focusDuration, breakDuration time.Duration, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		phase:         PhaseIdle,
		focusDuration: focusDuration,
		breakDuration: breakDuration,
		logger:        logger,
	}
}

// OnFocusComplete registers the callback fired after each finished focus
// phase. It runs outside the engine lock.
func (e *Engine) OnFocusComplete(fn func(subject string, minutes int)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onFocusComplete = fn
}

// Configure replaces the phase lengths. It applies from the next phase; a
// phase already in flight keeps its remaining time.
func (e *Engine) Configure(focusDuration, breakDuration time.Duration) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if focusDuration > 0 {
		e.focusDuration = focusDuration
	}
	if breakDuration > 0 {
		e.breakDuration = breakDuration
	}
}

// StartTimer begins a focus phase for the subject. Restarting while a phase
// runs abandons it without logging a session.
func (e *Engine) StartTimer(subject string) Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.phase = PhaseFocus
	e.subject = subject
	e.remaining = e.focusDuration
	e.paused = false

	e.logger.Info("focus phase started",
		zap.String("subject", subject),
		zap.Duration("length", e.focusDuration))
	return e.snapshotLocked()
}

func (e *Engine) Pause() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.phase != PhaseIdle {
		e.paused = true
	}
	return e.snapshotLocked()
}

func (e *Engine) Resume() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.paused = false
	return e.snapshotLocked()
}

// StopTimer abandons the current phase. Unfinished focus time is not logged.
func (e *Engine) StopTimer() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.phase = PhaseIdle
	e.subject = ""
	e.remaining = 0
	e.paused = false
	return e.snapshotLocked()
}

func (e *Engine) Status() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

func (e *Engine) snapshotLocked() Snapshot {
	return Snapshot{
		Phase:            e.phase,
		Subject:          e.subject,
		RemainingSeconds: int(e.remaining.Seconds()),
		Paused:           e.paused,
		CompletedFocus:   e.completedFocus,
	}
}

// Start launches the one-second tick loop. The engine can be restarted after
// Stop; each run gets its own stop channel.
func (e *Engine) Start() {
	e.mu.Lock()
	if e.running {
		e.mu.Unlock()
		return
	}
	e.running = true
	e.stopChan = make(chan struct{})
	stop := e.stopChan
	e.mu.Unlock()

	go e.loop(stop)
}

// Stop terminates the tick loop.
func (e *Engine) Stop() {
	e.mu.Lock()
	if !e.running {
		e.mu.Unlock()
		return
	}
	e.running = false
	stop := e.stopChan
	e.mu.Unlock()

	close(stop)
}

func (e *Engine) loop(stop <-chan struct{}) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			e.Tick(time.Second)
		case <-stop:
			return
		}
	}
}

// Tick advances the timer by the elapsed duration and handles phase
// transitions. The loop calls it every second.
func (e *Engine) Tick(elapsed time.Duration) {
	e.mu.Lock()
	if e.phase == PhaseIdle || e.paused {
		e.mu.Unlock()
		return
	}

	e.remaining -= elapsed
	if e.remaining > 0 {
		e.mu.Unlock()
		return
	}

	var notify func(subject string, minutes int)
	var subject string
	var minutes int

	switch e.phase {
	case PhaseFocus:
		e.completedFocus++
		notify = e.onFocusComplete
		subject = e.subject
		minutes = int(e.focusDuration.Minutes())

		e.phase = PhaseBreak
		e.remaining = e.breakDuration
		e.logger.Info("focus phase finished",
			zap.String("subject", subject),
			zap.Int("minutes", minutes))
	case PhaseBreak:
		e.phase = PhaseFocus
		e.remaining = e.focusDuration
		e.logger.Info("break finished, next focus phase started")
	}
	e.mu.Unlock()

	if notify != nil {
		notify(subject, minutes)
	}
}
