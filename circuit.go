package gatesim

import (
	"strconv"

	"github.com/pkg/errors"
)

// Circuit identifies a circuit in a Sim.
//
type Circuit int32

const (
	// Top is the owner of top-level circuits.
	Top Circuit = -1
	// NoCircuit is returned along with an error by Instantiate.
	NoCircuit Circuit = -2
)

type circuit struct {
	name     string
	spec     *PartSpec
	owner    Circuit
	ins      []Terminal
	outs     []Terminal
	children []Circuit
	comp     Component // evaluation rule, primitives only
	dead     bool
}

func (s *Sim) circ(c Circuit) *circuit {
	if c < 0 || int(c) >= len(s.circs) {
		panic("gatesim: invalid circuit " + strconv.Itoa(int(c)))
	}
	cc := s.circs[c]
	if cc.dead {
		panic("gatesim: use of removed circuit " + cc.name)
	}
	return cc
}

// Instantiate creates a new circuit from blueprint p and registers it under
// owner (Top for a top-level circuit). If name is empty, a name is generated
// from the blueprint name.
//
// The circuit's terminals are created, then primitive circuits are mounted and
// evaluated once (so that stateful parts publish their power-on state) while
// composite circuits are populated by the blueprint's Build function.
//
// On error, including ErrNonStabilizing from the power-on evaluation, the
// partially built circuit is destroyed and NoCircuit is returned.
//
func (s *Sim) Instantiate(p *PartSpec, name string, owner Circuit) (Circuit, error) {
	var oc *circuit
	if owner != Top {
		oc = s.circ(owner)
		if oc.comp != nil {
			return NoCircuit, errors.Wrapf(ErrInvalidComponent, "%s: primitive circuits cannot have children", s.CircuitPath(owner))
		}
	}
	if name == "" {
		name = s.genName(p.Name, owner)
	}
	if _, ok := s.Child(owner, name); ok {
		return NoCircuit, errors.Wrapf(ErrDuplicateName, "circuit %s", s.join(owner, name))
	}

	id := Circuit(len(s.circs))
	c := &circuit{name: name, spec: p, owner: owner}
	s.circs = append(s.circs, c)
	s.nCircs++
	if oc == nil {
		s.top = append(s.top, id)
	} else {
		oc.children = append(oc.children, id)
	}
	s.emit(Event{Kind: Named, Level: levelInfo, Msg: "new " + p.Name, Circuit: id, Terminal: NoTerminal, Peer: NoTerminal})

	for _, n := range p.Inputs {
		if _, err := s.addTerminal(id, n, Input); err != nil {
			s.destroyCircuit(id)
			return NoCircuit, err
		}
	}
	for _, n := range p.Outputs {
		if _, err := s.addTerminal(id, n, Output); err != nil {
			s.destroyCircuit(id)
			return NoCircuit, err
		}
	}

	if p.Mount != nil {
		comp := p.Mount(newSocket(s, id))
		if comp == nil {
			comp = func(*Sim) {}
		}
		c.comp = comp
		if err := s.stimulate(func() { comp(s) }); err != nil {
			_ = s.stimulate(func() { s.destroyCircuit(id) })
			return NoCircuit, errors.Wrapf(err, "power on %s", name)
		}
	}
	if p.Build != nil {
		if err := p.Build(s, id); err != nil {
			_ = s.stimulate(func() { s.destroyCircuit(id) })
			return NoCircuit, errors.Wrapf(err, "build %s", name)
		}
	}
	return id, nil
}

func (s *Sim) genName(kind string, owner Circuit) string {
	for {
		s.seq[kind]++
		name := kind + strconv.Itoa(s.seq[kind])
		if _, ok := s.Child(owner, name); !ok {
			return name
		}
	}
}

func (s *Sim) join(owner Circuit, name string) string {
	if owner == Top {
		return name
	}
	return s.CircuitPath(owner) + "." + name
}

// CircuitName returns the name of circuit c.
//
func (s *Sim) CircuitName(c Circuit) string { return s.circ(c).name }

// CircuitPath returns the full name of circuit c, e.g. "adder.ha0".
//
func (s *Sim) CircuitPath(c Circuit) string {
	cc := s.circ(c)
	return s.join(cc.owner, cc.name)
}

// Kind returns the name of the blueprint circuit c was instantiated from.
//
func (s *Sim) Kind(c Circuit) string { return s.circ(c).spec.Name }

// Category returns the category label of the blueprint of c.
//
func (s *Sim) Category(c Circuit) string { return s.circ(c).spec.Category }

// Spec returns the blueprint of circuit c.
//
func (s *Sim) Spec(c Circuit) *PartSpec { return s.circ(c).spec }

// IsPrimitive returns true if c has an evaluation rule.
//
func (s *Sim) IsPrimitive(c Circuit) bool { return s.circ(c).comp != nil }

// Parent returns the owner of circuit c, Top for top-level circuits.
//
func (s *Sim) Parent(c Circuit) Circuit { return s.circ(c).owner }

// Inputs returns the input terminals of circuit c.
//
func (s *Sim) Inputs(c Circuit) []Terminal {
	return append([]Terminal(nil), s.circ(c).ins...)
}

// Outputs returns the output terminals of circuit c.
//
func (s *Sim) Outputs(c Circuit) []Terminal {
	return append([]Terminal(nil), s.circ(c).outs...)
}

// Children returns the sub-circuits of circuit c. Children(Top) is
// TopLevel().
//
func (s *Sim) Children(c Circuit) []Circuit {
	if c == Top {
		return s.TopLevel()
	}
	return append([]Circuit(nil), s.circ(c).children...)
}

// Lookup returns the terminal of circuit c with the given name.
//
func (s *Sim) Lookup(c Circuit, name string) (Terminal, bool) {
	cc := s.circ(c)
	for _, t := range cc.ins {
		if s.terms[t].name == name {
			return t, true
		}
	}
	for _, t := range cc.outs {
		if s.terms[t].name == name {
			return t, true
		}
	}
	return NoTerminal, false
}

// Pin is like Lookup but panics if c has no terminal with the given name.
//
func (s *Sim) Pin(c Circuit, name string) Terminal {
	t, ok := s.Lookup(c, name)
	if !ok {
		panic("gatesim: pin " + s.join(c, name) + " does not exist")
	}
	return t
}

// Child returns the sub-circuit of owner with the given name.
//
func (s *Sim) Child(owner Circuit, name string) (Circuit, bool) {
	var cs []Circuit
	if owner == Top {
		cs = s.top
	} else {
		cs = s.circ(owner).children
	}
	for _, c := range cs {
		if s.circs[c].name == name {
			return c, true
		}
	}
	return NoCircuit, false
}

// Rename changes the name of circuit c.
//
func (s *Sim) Rename(c Circuit, name string) error {
	cc := s.circ(c)
	if cc.name == name {
		return nil
	}
	if _, ok := s.Child(cc.owner, name); ok {
		return errors.Wrapf(ErrDuplicateName, "circuit %s", s.join(cc.owner, name))
	}
	old := cc.name
	cc.name = name
	s.emit(Event{Kind: Named, Level: levelInfo, Msg: "renamed from " + old, Circuit: c, Terminal: NoTerminal, Peer: NoTerminal})
	return nil
}

// RemoveChild disconnects and destroys circuit c, a child of owner (Top for
// top-level circuits), along with all its terminals and sub-circuits.
//
func (s *Sim) RemoveChild(owner, c Circuit) error {
	cc := s.circ(c)
	if cc.owner != owner {
		return errors.Wrapf(ErrInvalidComponent, "%s is not a child of %s", s.CircuitPath(c), s.ownerName(owner))
	}
	return s.stimulate(func() { s.destroyCircuit(c) })
}

func (s *Sim) ownerName(c Circuit) string {
	if c == Top {
		return "top level"
	}
	return s.CircuitPath(c)
}

func (s *Sim) destroyCircuit(id Circuit) {
	c := s.circs[id]
	for len(c.children) > 0 {
		s.destroyCircuit(c.children[len(c.children)-1])
	}
	// inputs first so that primitive rules are not triggered while outputs
	// are being disconnected.
	for _, t := range append([]Terminal(nil), c.ins...) {
		s.destroyTerminal(t)
	}
	for _, t := range append([]Terminal(nil), c.outs...) {
		s.destroyTerminal(t)
	}
	s.emit(Event{Kind: Removed, Level: levelInfo, Msg: "removed " + c.spec.Name, Circuit: id, Terminal: NoTerminal, Peer: NoTerminal})
	if c.owner == Top {
		s.top = removeCircuit(s.top, id)
	} else {
		p := s.circs[c.owner]
		p.children = removeCircuit(p.children, id)
	}
	c.dead = true
	c.comp = nil
	s.nCircs--
}

func removeCircuit(cs []Circuit, c Circuit) []Circuit {
	for i, x := range cs {
		if x == c {
			return append(cs[:i], cs[i+1:]...)
		}
	}
	return cs
}
