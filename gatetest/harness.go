// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package gatetest provides utility functions for testing circuits.
//
package gatetest

import (
	"github.com/db47h/gatesim"
	"github.com/db47h/gatesim/gatelib"
	"github.com/pkg/errors"
)

// Harness wraps a single top-level instance of a part whose inputs are
// driven directly with Set.
//
type Harness struct {
	s    *gatesim.Sim
	c    gatesim.Circuit
	ins  []gatesim.Terminal
	outs []gatesim.Terminal
}

// NewHarness creates a new Sim with the given options and instantiates p in
// it.
//
func NewHarness(p *gatesim.PartSpec, opts ...gatesim.Option) (*Harness, error) {
	s := gatesim.New(opts...)
	c, err := s.Instantiate(p, "dut", gatesim.Top)
	if err != nil {
		return nil, err
	}
	return &Harness{s, c, s.Inputs(c), s.Outputs(c)}, nil
}

// Sim returns the harness' simulation context.
//
func (h *Harness) Sim() *gatesim.Sim { return h.s }

// Circuit returns the instance under test.
//
func (h *Harness) Circuit() gatesim.Circuit { return h.c }

// Inputs returns the input terminals of the instance under test.
//
func (h *Harness) Inputs() []gatesim.Terminal { return h.ins }

// Outputs returns the output terminals of the instance under test.
//
func (h *Harness) Outputs() []gatesim.Terminal { return h.outs }

func (h *Harness) lookup(name string, dir gatesim.Direction) (gatesim.Terminal, error) {
	t, ok := h.s.Lookup(h.c, name)
	if !ok || h.s.Direction(t) != dir {
		return gatesim.NoTerminal, errors.Errorf("%s: no %s pin named %q", h.s.CircuitName(h.c), dir, name)
	}
	return t, nil
}

// Set sets the named input.
//
func (h *Harness) Set(name string, v gatesim.Value) error {
	t, err := h.lookup(name, gatesim.Input)
	if err != nil {
		return err
	}
	return h.s.Set(t, v)
}

// Get returns the value of the named pin.
//
func (h *Harness) Get(name string) gatesim.Value {
	return h.s.Get(h.s.Pin(h.c, name))
}

// SetInputs sets all inputs at once from the bits of v. The first input takes
// the most significant bit, so that iterating v from 0 to 1<<len(inputs)-1
// walks the rows of a truth table in their usual order.
//
func (h *Harness) SetInputs(v uint64) error {
	n := len(h.ins)
	for i, t := range h.ins {
		if err := h.s.Set(t, gatesim.Bool(v&(1<<uint(n-i-1)) != 0)); err != nil {
			return err
		}
	}
	return nil
}

// Values returns the current value of the given terminals.
//
func (h *Harness) Values(ts []gatesim.Terminal) []gatesim.Value {
	vs := make([]gatesim.Value, len(ts))
	for i, t := range ts {
		vs[i] = h.s.Get(t)
	}
	return vs
}

func (h *Harness) bus(name string, dir gatesim.Direction) ([]gatesim.Terminal, error) {
	var ts []gatesim.Terminal
	for i := 0; ; i++ {
		t, ok := h.s.Lookup(h.c, gatesim.BusPinName(name, i))
		if !ok {
			break
		}
		if h.s.Direction(t) != dir {
			return nil, errors.Errorf("%s: %s is not an %s bus", h.s.CircuitName(h.c), name, dir)
		}
		ts = append(ts, t)
	}
	if len(ts) == 0 {
		return nil, errors.Errorf("%s: no bus named %q", h.s.CircuitName(h.c), name)
	}
	return ts, nil
}

// SetUint sets the named input bus to v, bit 0 being the lsb.
//
func (h *Harness) SetUint(name string, v uint64) error {
	ts, err := h.bus(name, gatesim.Input)
	if err != nil {
		return err
	}
	return gatelib.SetUint64(h.s, ts, v)
}

// Uint returns the value of the named output bus. ok is false if any bit is
// Unknown.
//
func (h *Harness) Uint(name string) (v uint64, ok bool) {
	ts, err := h.bus(name, gatesim.Output)
	if err != nil {
		return 0, false
	}
	return gatelib.Uint64(h.s, ts)
}

// Pulse sends a full clock cycle to the named input: 0, 1, then back to 0.
// Edge triggered parts therefore latch on the 0 -> 1 transition.
//
func (h *Harness) Pulse(clk string) error {
	for _, v := range []gatesim.Value{gatesim.Low, gatesim.High, gatesim.Low} {
		if err := h.Set(clk, v); err != nil {
			return err
		}
	}
	return nil
}

// Enumerate instantiates p and calls fn with the input and output values for
// every combination of inputs. The number of inputs must not exceed 16.
//
func Enumerate(p *gatesim.PartSpec, fn func(in, out []gatesim.Value)) error {
	if len(p.Inputs) > 16 {
		return errors.Errorf("%s: too many inputs (%d)", p.Name, len(p.Inputs))
	}
	h, err := NewHarness(p)
	if err != nil {
		return err
	}
	for i := uint64(0); i < 1<<uint(len(h.ins)); i++ {
		if err := h.SetInputs(i); err != nil {
			return err
		}
		fn(h.Values(h.ins), h.Values(h.outs))
	}
	return nil
}
