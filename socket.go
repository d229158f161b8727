// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package gatesim

// A Socket maps a primitive part's pin names to terminals in a Sim.
//
type Socket struct {
	s *Sim
	c Circuit
	m map[string]Terminal
}

func newSocket(s *Sim, c Circuit) *Socket {
	cc := s.circs[c]
	m := make(map[string]Terminal, len(cc.ins)+len(cc.outs))
	for _, t := range cc.ins {
		m[s.terms[t].name] = t
	}
	for _, t := range cc.outs {
		m[s.terms[t].name] = t
	}
	return &Socket{s, c, m}
}

// Sim returns the simulation the part is mounted in.
//
func (s *Socket) Sim() *Sim { return s.s }

// Circuit returns the circuit being mounted.
//
func (s *Socket) Circuit() Circuit { return s.c }

// Pin returns the terminal allocated to the given pin name.
// This function panics if the pin does not exist.
//
func (s *Socket) Pin(name string) Terminal {
	t, ok := s.m[name]
	if !ok {
		panic("pin " + name + " does not exist")
	}
	return t
}

// Bus returns the terminals allocated to the given bus name.
// This function panics if the bus does not exist.
//
func (s *Socket) Bus(name string) []Terminal {
	out := make([]Terminal, 0)
	i := 0
	for {
		t, ok := s.m[BusPinName(name, i)]
		if !ok {
			break
		}
		out = append(out, t)
		i++
	}
	if len(out) == 0 {
		panic("bus " + name + " does not exist")
	}
	return out
}
