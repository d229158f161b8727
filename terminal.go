package gatesim

import (
	"strconv"

	"github.com/pkg/errors"
)

// Terminal identifies a terminal (pin) in a Sim.
//
type Terminal int32

// NoTerminal is returned when no terminal applies, e.g. the source of an
// undriven input.
//
const NoTerminal Terminal = -1

// Direction of a terminal.
//
type Direction uint8

// Terminal directions.
const (
	Input Direction = iota
	Output
)

func (d Direction) String() string {
	if d == Input {
		return "input"
	}
	return "output"
}

type terminal struct {
	name     string
	dir      Direction
	val      Value
	assigned bool   // has accepted at least one value
	evals    uint64 // number of accepted values
	owner    Circuit
	src      Terminal
	sinks    []Terminal
	dead     bool
}

func (s *Sim) term(t Terminal) *terminal {
	if t < 0 || int(t) >= len(s.terms) {
		panic("gatesim: invalid terminal " + strconv.Itoa(int(t)))
	}
	tt := s.terms[t]
	if tt.dead {
		panic("gatesim: use of removed terminal " + tt.name)
	}
	return tt
}

// Alive returns true if t designates a terminal that has not been removed.
//
func (s *Sim) Alive(t Terminal) bool {
	return t >= 0 && int(t) < len(s.terms) && !s.terms[t].dead
}

// Name returns the name of terminal t.
//
func (s *Sim) Name(t Terminal) string { return s.term(t).name }

// Direction returns the direction of terminal t.
//
func (s *Sim) Direction(t Terminal) Direction { return s.term(t).dir }

// Owner returns the circuit that declares terminal t.
//
func (s *Sim) Owner(t Terminal) Circuit { return s.term(t).owner }

// Get returns the current value of terminal t.
//
func (s *Sim) Get(t Terminal) Value { return s.term(t).val }

// Source returns the terminal driving t, or NoTerminal.
//
func (s *Sim) Source(t Terminal) Terminal { return s.term(t).src }

// Sinks returns the terminals driven by t, in connection order.
//
func (s *Sim) Sinks(t Terminal) []Terminal {
	return append([]Terminal(nil), s.term(t).sinks...)
}

// Evals returns the number of value changes accepted by terminal t.
//
func (s *Sim) Evals(t Terminal) uint64 { return s.term(t).evals }

// Path returns the full name of terminal t, e.g. "adder.ha0.s".
//
func (s *Sim) Path(t Terminal) string {
	tt := s.term(t)
	return s.CircuitPath(tt.owner) + "." + tt.name
}

// AddInput declares a new input terminal on composite circuit c.
//
func (s *Sim) AddInput(c Circuit, name string) (Terminal, error) {
	return s.addBoundary(c, name, Input)
}

// AddOutput declares a new output terminal on composite circuit c.
//
func (s *Sim) AddOutput(c Circuit, name string) (Terminal, error) {
	return s.addBoundary(c, name, Output)
}

func (s *Sim) addBoundary(c Circuit, name string, dir Direction) (Terminal, error) {
	if s.circ(c).comp != nil {
		return NoTerminal, errors.Wrapf(ErrInvalidComponent, "%s: cannot add terminals to a primitive circuit", s.CircuitPath(c))
	}
	return s.addTerminal(c, name, dir)
}

func (s *Sim) addTerminal(c Circuit, name string, dir Direction) (Terminal, error) {
	cc := s.circ(c)
	if _, ok := s.Lookup(c, name); ok {
		return NoTerminal, errors.Wrapf(ErrDuplicateName, "terminal %s.%s", s.CircuitPath(c), name)
	}
	id := Terminal(len(s.terms))
	s.terms = append(s.terms, &terminal{name: name, dir: dir, owner: c, src: NoTerminal})
	s.nTerms++
	if dir == Input {
		cc.ins = append(cc.ins, id)
	} else {
		cc.outs = append(cc.outs, id)
	}
	s.emit(Event{Kind: Named, Level: levelInfo, Msg: "new " + dir.String(), Circuit: c, Terminal: id, Peer: NoTerminal})
	return id, nil
}

// RenameTerminal changes the name of terminal t.
//
func (s *Sim) RenameTerminal(t Terminal, name string) error {
	tt := s.term(t)
	if tt.name == name {
		return nil
	}
	if _, ok := s.Lookup(tt.owner, name); ok {
		return errors.Wrapf(ErrDuplicateName, "terminal %s.%s", s.CircuitPath(tt.owner), name)
	}
	old := tt.name
	tt.name = name
	s.emit(Event{Kind: Named, Level: levelInfo, Msg: "renamed from " + old, Circuit: tt.owner, Terminal: t, Peer: NoTerminal})
	return nil
}

// RemoveTerminal disconnects and destroys terminal t of composite circuit c.
// Terminals it was driving are reset to the floating value.
//
func (s *Sim) RemoveTerminal(c Circuit, t Terminal) error {
	tt := s.term(t)
	if tt.owner != c {
		return errors.Wrapf(ErrInvalidComponent, "%s is not a terminal of %s", s.Path(t), s.CircuitPath(c))
	}
	if s.circs[c].comp != nil {
		return errors.Wrapf(ErrInvalidComponent, "%s: cannot remove terminals of a primitive circuit", s.Path(t))
	}
	return s.stimulate(func() { s.destroyTerminal(t) })
}

func (s *Sim) destroyTerminal(id Terminal) {
	t := s.terms[id]
	if t.src != NoTerminal {
		s.unlink(t.src, id, false)
	}
	for len(t.sinks) > 0 {
		s.unlink(id, t.sinks[len(t.sinks)-1], true)
	}
	s.emit(Event{Kind: Removed, Level: levelInfo, Msg: "removed " + t.dir.String(), Circuit: t.owner, Terminal: id, Peer: NoTerminal})
	c := s.circs[t.owner]
	if t.dir == Input {
		c.ins = removeTerminal(c.ins, id)
	} else {
		c.outs = removeTerminal(c.outs, id)
	}
	t.dead = true
	t.sinks = nil
	s.nTerms--
}

func removeTerminal(ts []Terminal, t Terminal) []Terminal {
	for i, x := range ts {
		if x == t {
			return append(ts[:i], ts[i+1:]...)
		}
	}
	return ts
}
