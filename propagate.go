// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package gatesim

import (
	"github.com/pkg/errors"
)

// Set sets the value of terminal t and synchronously propagates the change
// through the circuit graph. It returns once a fixed point has been reached,
// or with ErrNonStabilizing once the step budget is exhausted, in which case
// the graph is left in the state reached at that point.
//
// Setting a terminal to the value it already holds is a no-op, except for
// the very first assignment of a terminal.
//
func (s *Sim) Set(t Terminal, v Value) error {
	s.term(t)
	return s.stimulate(func() { s.drive(t, v) })
}

// Send sets the value of terminal t from within a Component. Errors are
// reported to the caller of the stimulus that triggered the evaluation.
//
// Send panics if called outside of a Component. Use Set instead.
//
func (s *Sim) Send(t Terminal, v Value) {
	if !s.busy {
		panic("gatesim: Send called outside of a component")
	}
	s.drive(t, v)
}

// Toggle sets terminal t to the negation of its current value. Unknown
// toggles to High.
//
func (s *Sim) Toggle(t Terminal) error {
	v := s.Get(t)
	if v == High {
		return s.Set(t, Low)
	}
	return s.Set(t, High)
}

func (s *Sim) drive(id Terminal, v Value) {
	if s.err != nil {
		return
	}
	t := s.terms[id]
	if t.assigned && t.val == v {
		return
	}
	switch {
	case s.steps >= s.budget:
		s.fail(id, errors.Wrapf(ErrNonStabilizing, "%s: no fixed point after %d steps", s.Path(id), s.steps))
		return
	case s.depth >= maxDepth:
		s.fail(id, errors.Wrapf(ErrNonStabilizing, "%s: changes nested deeper than %d levels", s.Path(id), maxDepth))
		return
	}
	s.steps++
	s.depth++
	defer func() { s.depth-- }()

	old := t.val
	t.val, t.assigned = v, true
	t.evals++
	if len(s.obs) > 0 {
		s.emit(Event{Kind: ValueChanged, Level: levelDebug, Msg: "value", Circuit: t.owner, Terminal: id, Peer: NoTerminal, Old: old, New: v})
	}

	if t.dir == Input {
		if comp := s.circs[t.owner].comp; comp != nil {
			comp(s)
		}
	}
	for i := 0; i < len(t.sinks) && s.err == nil; i++ {
		// a nested change has already fanned out the newer value.
		if t.val != v {
			return
		}
		s.drive(t.sinks[i], v)
	}
}

func (s *Sim) fail(id Terminal, err error) {
	s.err = err
	s.emit(Event{Kind: Diagnostic, Level: levelError, Msg: err.Error(), Circuit: s.terms[id].owner, Terminal: id, Peer: NoTerminal})
}
