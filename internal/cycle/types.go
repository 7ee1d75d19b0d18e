package cycle

import (
	"time"

	"github.com/coreman2200/funtimes-dotstrip/internal/strip"
)

// State is the runner lifecycle.
type State int

const (
	Idle State = iota
	Running
	Draining
	Stopped
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Draining:
		return "draining"
	case Stopped:
		return "stopped"
	}
	return "unknown"
}

// UpdateFunc paints one step of a pattern into the shared buffer and
// reports whether the strip needs a repaint. currentStep runs
// 0..stepsPerCycle-1 and wraps; currentCycle counts completed wraps.
// Updaters run on the render goroutine and must not block.
type UpdateFunc func(buf *strip.Buffer, numLED, stepsPerCycle, currentStep, currentCycle int) bool

// Hooks are the optional one-time callbacks around a run.
type Hooks struct {
	// Init runs once before the initial repaint.
	Init func(buf *strip.Buffer, numLED int)
	// Shutdown runs once while draining, before the strip is blanked.
	Shutdown func(buf *strip.Buffer, numLED int)
}

// Forever disables the cycle limit.
const Forever = -1

// Options configure one run.
type Options struct {
	// StepsPerCycle is the number of ticks per cycle; 0 means the
	// default of 100.
	StepsPerCycle int
	// Cycles stops the run after this many full cycles; zero or
	// negative (Forever) runs until the deadline or cancellation.
	Cycles int
	// Tick is the pause between steps. Boundaries are scheduled from
	// the start time, so a slow updater doesn't accumulate drift.
	Tick time.Duration
	// Duration, when positive, is a wall-clock cutoff checked both
	// mid-cycle and at cycle boundaries.
	Duration time.Duration
}

const defaultStepsPerCycle = 100
