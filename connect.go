package gatesim

import (
	"github.com/pkg/errors"
)

// Connect makes src the driver of dst and immediately propagates the
// current value of src to dst.
//
// The only legal edges are:
//
//	output of X -> input of Y, X and Y siblings (X == Y is a feedback loop)
//	input of P  -> input of a child of P
//	output of a child of P -> output of P
//	input of P  -> output of P, P composite
//
// Any other combination fails with ErrScopeViolation. Connect fails with
// ErrSelfConnection if src == dst and with ErrAlreadyDriven if dst already
// has a source. The edge is kept if the initial propagation fails with
// ErrNonStabilizing.
//
func (s *Sim) Connect(src, dst Terminal) error {
	st, dt := s.term(src), s.term(dst)
	if src == dst {
		return errors.Wrapf(ErrSelfConnection, "%s", s.Path(src))
	}
	if !s.canDrive(st, dt) {
		return errors.Wrapf(ErrScopeViolation, "%s (%v) -> %s (%v)", s.Path(src), st.dir, s.Path(dst), dt.dir)
	}
	if dt.src != NoTerminal {
		return errors.Wrapf(ErrAlreadyDriven, "%s is driven by %s", s.Path(dst), s.Path(dt.src))
	}
	dt.src = src
	st.sinks = append(st.sinks, dst)
	s.emit(Event{Kind: Connected, Level: levelInfo, Msg: "connected", Circuit: dt.owner, Terminal: dst, Peer: src})
	return s.stimulate(func() { s.drive(dst, st.val) })
}

func (s *Sim) canDrive(src, dst *terminal) bool {
	sp, dp := s.circs[src.owner].owner, s.circs[dst.owner].owner
	switch {
	case src.dir == Output && dst.dir == Input:
		return sp == dp
	case src.dir == Input && dst.dir == Input:
		return dp == src.owner
	case src.dir == Output && dst.dir == Output:
		return sp == dst.owner
	default:
		return src.owner == dst.owner && s.circs[src.owner].comp == nil
	}
}

// Disconnect removes the edge between a and b, in either direction, and
// resets the formerly driven terminal to the floating value (Unknown by
// default).
//
func (s *Sim) Disconnect(a, b Terminal) error {
	at, bt := s.term(a), s.term(b)
	switch {
	case bt.src == a:
	case at.src == b:
		a, b = b, a
	default:
		return errors.Wrapf(ErrNotConnected, "%s, %s", s.Path(a), s.Path(b))
	}
	return s.stimulate(func() { s.unlink(a, b, true) })
}

func (s *Sim) unlink(src, dst Terminal, reset bool) {
	st, dt := s.terms[src], s.terms[dst]
	st.sinks = removeTerminal(st.sinks, dst)
	dt.src = NoTerminal
	s.emit(Event{Kind: Disconnected, Level: levelInfo, Msg: "disconnected", Circuit: dt.owner, Terminal: dst, Peer: src})
	if reset {
		s.drive(dst, s.floating)
	}
}
