// Package clock drives a terminal of a simulation with a periodic square
// wave.
//
// A Sim is not safe for concurrent use, so the driver does not touch it
// directly: every tick is submitted as a command to an Executor, usually a
// gatesim.Queue shared with the other users of the Sim.
//
package clock

import (
	"context"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/db47h/gatesim"
	"github.com/pkg/errors"
)

// An Executor runs commands against a Sim. *gatesim.Queue implements
// Executor.
//
type Executor interface {
	Do(ctx context.Context, fn gatesim.Command) error
}

// State is the state of a Driver.
//
type State int

// Driver states.
//
const (
	Stopped State = iota
	Running
	Paused
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Paused:
		return "paused"
	}
	return "stopped"
}

// Errors returned by Driver methods.
//
var (
	ErrRunning       = errors.New("clock already started")
	ErrInvalidPeriod = errors.New("invalid clock period")
)

// Driver toggles a terminal once per period.
//
type Driver struct {
	exec Executor
	t    gatesim.Terminal
	log  *slog.Logger

	mu     sync.Mutex
	period time.Duration
	state  State
	ticks  uint64
	cancel context.CancelFunc
	done   chan struct{}
	wake   chan struct{}
}

// An Option configures a Driver.
//
type Option func(d *Driver)

// WithLogger sets the logger used to report tick errors. The default is
// slog.Default().
//
func WithLogger(l *slog.Logger) Option {
	return func(d *Driver) { d.log = l }
}

// New returns a stopped clock driver for terminal t. Each tick is executed
// by exec.
//
func New(exec Executor, t gatesim.Terminal, period time.Duration, opts ...Option) *Driver {
	d := &Driver{
		exec:   exec,
		t:      t,
		period: period,
		log:    slog.Default(),
		wake:   make(chan struct{}, 1),
	}
	for _, o := range opts {
		o(d)
	}
	return d
}

// Start starts toggling the terminal in a new goroutine. The driver stops
// when ctx is canceled or Stop is called.
//
func (d *Driver) Start(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state != Stopped {
		return ErrRunning
	}
	if d.period <= 0 {
		return errors.Wrapf(ErrInvalidPeriod, "%v", d.period)
	}
	ctx, d.cancel = context.WithCancel(ctx)
	d.done = make(chan struct{})
	d.state = Running
	go d.run(ctx, d.period, d.done)
	return nil
}

func (d *Driver) run(ctx context.Context, period time.Duration, done chan struct{}) {
	defer func() {
		d.mu.Lock()
		if d.done == done {
			d.state = Stopped
		}
		d.mu.Unlock()
		close(done)
	}()
	tk := time.NewTicker(period)
	defer tk.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-d.wake:
			tk.Reset(d.Period())
		case <-tk.C:
			if d.State() != Running {
				continue
			}
			// a tick, once submitted, always completes.
			err := d.exec.Do(context.WithoutCancel(ctx), d.tick)
			if err != nil {
				d.log.Error("clock tick", "err", err)
				if errors.Is(err, gatesim.ErrQueueClosed) {
					return
				}
			}
		}
	}
}

func (d *Driver) tick(s *gatesim.Sim) error {
	err := s.Toggle(d.t)
	d.mu.Lock()
	d.ticks++
	d.mu.Unlock()
	return err
}

// Pause suspends ticking until Resume is called. It has no effect on a
// stopped driver.
//
func (d *Driver) Pause() {
	d.mu.Lock()
	if d.state == Running {
		d.state = Paused
	}
	d.mu.Unlock()
}

// Resume resumes a paused driver.
//
func (d *Driver) Resume() {
	d.mu.Lock()
	if d.state == Paused {
		d.state = Running
	}
	d.mu.Unlock()
}

// Stop stops the driver and waits for an in-flight tick to complete. A
// stopped driver can be started again.
//
func (d *Driver) Stop() {
	d.mu.Lock()
	if d.state == Stopped {
		d.mu.Unlock()
		return
	}
	cancel, done := d.cancel, d.done
	d.state = Stopped
	d.mu.Unlock()
	cancel()
	<-done
}

// SetPeriod sets the clock period in seconds. It takes effect immediately
// when the driver is running.
//
func (d *Driver) SetPeriod(seconds float64) error {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds <= 0 {
		return errors.Wrapf(ErrInvalidPeriod, "%g seconds", seconds)
	}
	p := time.Duration(seconds * float64(time.Second))
	if p <= 0 {
		return errors.Wrapf(ErrInvalidPeriod, "%g seconds", seconds)
	}
	d.mu.Lock()
	d.period = p
	d.mu.Unlock()
	select {
	case d.wake <- struct{}{}:
	default:
	}
	return nil
}

// Period returns the clock period.
//
func (d *Driver) Period() time.Duration {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.period
}

// Ticks returns the number of ticks executed so far.
//
func (d *Driver) Ticks() uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.ticks
}

// State returns the driver's state.
//
func (d *Driver) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}
