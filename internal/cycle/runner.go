// Package cycle paces time-based patterns onto an LED strip. A Runner
// drives a single-goroutine render loop: every tick it calls the
// registered updaters, repaints the strip if any of them asked for
// it, and sleeps to the next tick boundary. The run ends on a cycle
// limit, a wall-clock deadline or context cancellation, and in every
// case drains: shutdown hook, blank frame, transport close.
package cycle

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/coreman2200/funtimes-dotstrip/internal/strip"
	"github.com/coreman2200/funtimes-dotstrip/internal/transport"
)

// Runner owns the buffer and the transport for the duration of one
// Run. It is not safe for concurrent use; all pattern work happens on
// the goroutine that called Run.
type Runner struct {
	buf      *strip.Buffer
	tr       transport.Transport
	opts     Options
	hooks    Hooks
	updaters []UpdateFunc

	state State
	step  int
	cycle int
	log   zerolog.Logger
}

// New validates the options and returns an idle runner.
func New(buf *strip.Buffer, tr transport.Transport, opts Options, hooks Hooks) (*Runner, error) {
	if buf == nil {
		return nil, fmt.Errorf("%w: nil buffer", strip.ErrConfiguration)
	}
	if tr == nil {
		return nil, fmt.Errorf("%w: nil transport", strip.ErrConfiguration)
	}
	if opts.StepsPerCycle < 0 {
		return nil, fmt.Errorf("%w: steps per cycle must be positive, got %d", strip.ErrConfiguration, opts.StepsPerCycle)
	}
	if opts.StepsPerCycle == 0 {
		opts.StepsPerCycle = defaultStepsPerCycle
	}
	if opts.Tick < 0 {
		return nil, fmt.Errorf("%w: tick interval must not be negative", strip.ErrConfiguration)
	}
	return &Runner{
		buf:   buf,
		tr:    tr,
		opts:  opts,
		hooks: hooks,
		state: Idle,
		log:   zerolog.Nop(),
	}, nil
}

// SetLogger routes runner lifecycle events to l.
func (r *Runner) SetLogger(l zerolog.Logger) { r.log = l }

// AddUpdater registers an update callback. Callbacks run every tick
// in registration order; a repaint happens when any of them returns
// true, but all of them always run.
func (r *Runner) AddUpdater(fn UpdateFunc) {
	r.updaters = append(r.updaters, fn)
}

// State reports the lifecycle state.
func (r *Runner) State() State { return r.state }

// Step reports the current step within the cycle.
func (r *Runner) Step() int { return r.step }

// Cycle reports the number of completed cycles.
func (r *Runner) Cycle() int { return r.cycle }

// Run executes the render loop until the cycle limit, the deadline or
// ctx ends it. Whatever the exit path, including a cancelled context
// or a failing transport, the strip is blanked and the transport
// closed before Run returns.
func (r *Runner) Run(ctx context.Context) error {
	if r.state != Idle {
		return fmt.Errorf("runner already %s", r.state)
	}
	if len(r.updaters) == 0 {
		return errors.New("no updaters registered")
	}
	r.state = Running
	defer r.drain()

	if r.hooks.Init != nil {
		r.hooks.Init(r.buf, r.buf.NumLED())
	}
	if err := r.writeFrame(); err != nil {
		return err
	}

	start := time.Now()
	next := start
	var deadline time.Time
	if r.opts.Duration > 0 {
		deadline = start.Add(r.opts.Duration)
	}
	steps := r.opts.StepsPerCycle
	n := r.buf.NumLED()

	r.log.Info().
		Int("leds", n).
		Int("steps", steps).
		Int("cycles", r.opts.Cycles).
		Dur("tick", r.opts.Tick).
		Msg("cycle run starting")

	for cycle := 0; ; cycle++ {
		r.cycle = cycle
		for step := 0; step < steps; step++ {
			r.step = step
			repaint := false
			for _, update := range r.updaters {
				if update(r.buf, n, steps, step, cycle) {
					repaint = true
				}
			}
			if err := sleepUntil(ctx, next); err != nil {
				return err
			}
			next = next.Add(r.opts.Tick)
			if repaint {
				if err := r.writeFrame(); err != nil {
					return err
				}
			}
			if !deadline.IsZero() && time.Now().After(deadline) {
				r.log.Debug().Int("cycle", cycle).Int("step", step).Msg("duration cutoff reached mid-cycle")
				return nil
			}
		}
		if !deadline.IsZero() && time.Now().After(deadline) {
			r.log.Debug().Int("cycle", cycle).Msg("duration cutoff reached")
			return nil
		}
		// Hold the last frame of the cycle for one full tick before
		// the next cycle (or the drain) repaints.
		if err := sleepUntil(ctx, next); err != nil {
			return err
		}
		if r.opts.Cycles > 0 && cycle+1 >= r.opts.Cycles {
			r.log.Debug().Int("cycles", cycle+1).Msg("cycle limit reached")
			return nil
		}
	}
}

// drain is the Running -> Draining -> Stopped path: shutdown hook,
// blank the strip so nothing stays lit, release the bus. Errors here
// are logged, not returned, so they never mask the run's own error.
func (r *Runner) drain() {
	r.state = Draining
	if r.hooks.Shutdown != nil {
		r.hooks.Shutdown(r.buf, r.buf.NumLED())
	}
	r.buf.Blank()
	if err := r.writeFrame(); err != nil {
		r.log.Warn().Err(err).Msg("final blank write failed")
	}
	if err := r.tr.Close(); err != nil {
		r.log.Warn().Err(err).Msg("transport close failed")
	}
	r.state = Stopped
	r.log.Info().Msg("cycle run stopped")
}

// writeFrame renders the buffer and hands every chunk to the
// transport, in order.
func (r *Runner) writeFrame() error {
	for _, chunk := range r.buf.Render() {
		if err := r.tr.Write(chunk); err != nil {
			return fmt.Errorf("frame write: %w", err)
		}
	}
	return nil
}

// sleepUntil blocks until t or until ctx is done, whichever comes
// first. A boundary already in the past returns immediately, but the
// context is still checked so cancellation is never outrun by a
// zero-tick loop.
func sleepUntil(ctx context.Context, t time.Time) error {
	d := time.Until(t)
	if d <= 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			return nil
		}
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
