// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package gatesim

// DefaultStepBudget is the default maximum number of terminal value changes
// a single stimulus may cause before the circuit is declared non-stabilizing.
//
const DefaultStepBudget = 10000

// maxDepth bounds the nesting of value changes within a stimulus, whatever
// the step budget.
const maxDepth = 100000

// Sim is a simulation context. It owns all circuits and terminals created
// through it, including the set of top-level circuits.
//
// Circuits and terminals are identified by their index in the Sim's arenas.
// Indices are never reused: operations on a removed component panic.
//
// A Sim is not safe for concurrent use. Use a Queue to share it between
// goroutines (e.g. with a clock driver).
//
type Sim struct {
	terms []*terminal
	circs []*circuit
	top   []Circuit
	obs   []Observer

	budget   int
	floating Value

	nTerms int // live terminal count
	nCircs int // live circuit count
	seq    map[string]int

	// current stimulus
	busy  bool
	steps int
	depth int
	stim  uint64
	err   error
}

// An Option configures a Sim.
//
type Option func(s *Sim)

// WithStepBudget sets the maximum number of value changes a single stimulus
// may cause. Values <= 0 select DefaultStepBudget.
//
// Independently of the budget, propagation stops with ErrNonStabilizing when
// changes nest more than 100000 levels deep.
//
func WithStepBudget(n int) Option {
	return func(s *Sim) {
		if n <= 0 {
			n = DefaultStepBudget
		}
		s.budget = n
	}
}

// WithFloating sets the value that a terminal takes when disconnected from
// its source. The default is Unknown.
//
func WithFloating(v Value) Option {
	return func(s *Sim) { s.floating = v }
}

// WithObserver registers observers.
//
func WithObserver(o ...Observer) Option {
	return func(s *Sim) { s.obs = append(s.obs, o...) }
}

// New returns a new, empty, simulation context.
//
func New(opts ...Option) *Sim {
	s := &Sim{
		budget:   DefaultStepBudget,
		floating: Unknown,
		seq:      make(map[string]int),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Subscribe registers an observer.
//
func (s *Sim) Subscribe(o Observer) {
	s.obs = append(s.obs, o)
}

// StepBudget returns the per-stimulus step budget.
//
func (s *Sim) StepBudget() int { return s.budget }

// Floating returns the value taken by disconnected terminals.
//
func (s *Sim) Floating() Value { return s.floating }

// Terminals returns the number of live terminals.
//
func (s *Sim) Terminals() int { return s.nTerms }

// Circuits returns the number of live circuits.
//
func (s *Sim) Circuits() int { return s.nCircs }

// TopLevel returns the top-level circuits in creation order.
//
func (s *Sim) TopLevel() []Circuit {
	return append([]Circuit(nil), s.top...)
}

// Stimulus returns the sequence number of the current stimulus, or of the
// last one if none is in progress. Every top level Set, Connect, Disconnect,
// Instantiate or removal starts a new stimulus. Edge triggered components use
// it to tell input values that changed during the current stimulus from
// those they had before.
//
func (s *Sim) Stimulus() uint64 { return s.stim }

// stimulate runs f as a single stimulus: it resets the step budget unless
// already within a stimulus and returns the propagation error, if any.
//
func (s *Sim) stimulate(f func()) error {
	if s.busy {
		f()
		return s.err
	}
	s.busy, s.steps, s.depth, s.err = true, 0, 0, nil
	s.stim++
	defer func() {
		s.busy, s.err = false, nil
	}()
	f()
	return s.err
}
