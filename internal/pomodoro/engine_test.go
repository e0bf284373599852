package pomodoro

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFocusPhaseCompletesIntoBreak(t *testing.T) {
	engine := New(25*time.Minute, 5*time.Minute, nil)

	var gotSubject string
	var gotMinutes int
	engine.OnFocusComplete(func(subject string, minutes int) {
		gotSubject = subject
		gotMinutes = minutes
	})

	snap := engine.StartTimer("Math")
	assert.Equal(t, PhaseFocus, snap.Phase)
	assert.Equal(t, 25*60, snap.RemainingSeconds)

	engine.Tick(25 * time.Minute)

	snap = engine.Status()
	assert.Equal(t, PhaseBreak, snap.Phase)
	assert.Equal(t, 5*60, snap.RemainingSeconds)
	assert.Equal(t, 1, snap.CompletedFocus)
	assert.Equal(t, "Math", gotSubject)
	assert.Equal(t, 25, gotMinutes)
}

func TestBreakRollsBackIntoFocus(t *testing.T) {
	engine := New(25*time.Minute, 5*time.Minute, nil)
	engine.StartTimer("Math")
	engine.Tick(25 * time.Minute)
	engine.Tick(5 * time.Minute)

	snap := engine.Status()
	assert.Equal(t, PhaseFocus, snap.Phase)
	assert.Equal(t, 25*60, snap.RemainingSeconds)
}

func TestPauseFreezesTheClock(t *testing.T) {
	engine := New(25*time.Minute, 5*time.Minute, nil)
	engine.StartTimer("Math")
	engine.Tick(10 * time.Minute)

	engine.Pause()
	engine.Tick(10 * time.Minute)
	assert.Equal(t, 15*60, engine.Status().RemainingSeconds)

	engine.Resume()
	engine.Tick(10 * time.Minute)
	assert.Equal(t, 5*60, engine.Status().RemainingSeconds)
}

func TestStopAbandonsWithoutCallback(t *testing.T) {
	engine := New(25*time.Minute, 5*time.Minute, nil)

	called := false
	engine.OnFocusComplete(func(string, int) { called = true })

	engine.StartTimer("Math")
	engine.Tick(10 * time.Minute)
	snap := engine.StopTimer()

	assert.Equal(t, PhaseIdle, snap.Phase)
	assert.Zero(t, snap.RemainingSeconds)
	assert.False(t, called)

	// Ticks while idle are no-ops.
	engine.Tick(time.Hour)
	assert.Equal(t, PhaseIdle, engine.Status().Phase)
}

func TestLoopSurvivesRestart(t *testing.T) {
	engine := New(25*time.Minute, 5*time.Minute, nil)

	engine.Start()
	engine.Stop()
	engine.Start()
	engine.Stop()

	// Stop on an already-stopped engine is a no-op.
	engine.Stop()

	engine.StartTimer("Math")
	engine.Tick(time.Minute)
	assert.Equal(t, 24*60, engine.Status().RemainingSeconds)
}

func TestConfigureAppliesFromNextPhase(t *testing.T) {
	engine := New(25*time.Minute, 5*time.Minute, nil)
	engine.StartTimer("Math")

	engine.Configure(50*time.Minute, 10*time.Minute)
	assert.Equal(t, 25*60, engine.Status().RemainingSeconds, "in-flight phase keeps its clock")

	engine.Tick(25 * time.Minute)
	assert.Equal(t, 10*60, engine.Status().RemainingSeconds, "break uses the new length")
}
