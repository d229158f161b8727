// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package gatelib provides a library of reusable parts for gatesim.
//
// Copyright 2018 Denis Bernard <db047h@gmail.com>
//
// This package is licensed under the MIT license. See license text in the LICENSE file.
//
package gatelib

import (
	"strconv"

	"github.com/db47h/gatesim"
)

// common pin names
const (
	pIn  = "in"
	pOut = "out"
	pD   = "d"
	pClk = "clk"
	pQ   = "q"
	pQn  = "qn"
)

// Part categories.
//
const (
	CategoryGate        = "gate"
	CategoryIO          = "io"
	CategorySequential  = "sequential"
	CategoryArithmetic  = "arithmetic"
	CategoryMultiplexer = "multiplexer"
	CategoryMemory      = "memory"
)

// make a bus declaration
func bus(name string, bits int) string {
	return name + "[" + strconv.Itoa(bits) + "]"
}

var not = &gatesim.PartSpec{
	Name:     "NOT",
	Category: CategoryGate,
	Inputs:   gatesim.IO(pIn),
	Outputs:  gatesim.IO(pOut),
	Mount: func(s *gatesim.Socket) gatesim.Component {
		in, out := s.Pin(pIn), s.Pin(pOut)
		return func(c *gatesim.Sim) { c.Send(out, c.Get(in).Not()) }
	},
}

// Not returns a NOT gate.
//
//	Inputs: in
//	Outputs: out
//	Function: out = !in
//
func Not() *gatesim.PartSpec { return not }

// other gates
type gate struct {
	eval func(c *gatesim.Sim, in []gatesim.Terminal) gatesim.Value
	neg  bool
}

func (g gate) mount(s *gatesim.Socket) gatesim.Component {
	in, out := s.Bus(pIn), s.Pin(pOut)
	return func(c *gatesim.Sim) {
		v := g.eval(c, in)
		if g.neg {
			v = v.Not()
		}
		c.Send(out, v)
	}
}

func newGate(name string, ways int, g gate) *gatesim.PartSpec {
	if ways < 2 {
		panic("gatelib: " + name + " gate with less than 2 inputs")
	}
	return &gatesim.PartSpec{
		Name:     name,
		Category: CategoryGate,
		Inputs:   gatesim.IO(bus(pIn, ways)),
		Outputs:  gatesim.IO(pOut),
		Mount:    g.mount,
	}
}

// all returns Low as soon as one input is Low, High if all inputs are High,
// Unknown otherwise.
func all(c *gatesim.Sim, in []gatesim.Terminal) gatesim.Value {
	r := gatesim.High
	for _, t := range in {
		switch c.Get(t) {
		case gatesim.Low:
			return gatesim.Low
		case gatesim.Unknown:
			r = gatesim.Unknown
		}
	}
	return r
}

// some returns High as soon as one input is High, Low if all inputs are Low,
// Unknown otherwise.
func some(c *gatesim.Sim, in []gatesim.Terminal) gatesim.Value {
	r := gatesim.Low
	for _, t := range in {
		switch c.Get(t) {
		case gatesim.High:
			return gatesim.High
		case gatesim.Unknown:
			r = gatesim.Unknown
		}
	}
	return r
}

// parity returns High if an odd number of inputs are High. Any Unknown input
// makes the result Unknown.
func parity(c *gatesim.Sim, in []gatesim.Terminal) gatesim.Value {
	odd := false
	for _, t := range in {
		switch c.Get(t) {
		case gatesim.High:
			odd = !odd
		case gatesim.Unknown:
			return gatesim.Unknown
		}
	}
	return gatesim.Bool(odd)
}

// And returns a N-way AND gate.
//
//	Inputs: in[ways]
//	Outputs: out
//	Function: out = in[0] && in[1] && ... && in[ways-1]
//
func And(ways int) *gatesim.PartSpec { return newGate("AND", ways, gate{all, false}) }

// Nand returns a N-way NAND gate.
//
//	Inputs: in[ways]
//	Outputs: out
//	Function: out = !(in[0] && in[1] && ... && in[ways-1])
//
func Nand(ways int) *gatesim.PartSpec { return newGate("NAND", ways, gate{all, true}) }

// Or returns a N-way OR gate.
//
//	Inputs: in[ways]
//	Outputs: out
//	Function: out = in[0] || in[1] || ... || in[ways-1]
//
func Or(ways int) *gatesim.PartSpec { return newGate("OR", ways, gate{some, false}) }

// Nor returns a N-way NOR gate.
//
//	Inputs: in[ways]
//	Outputs: out
//	Function: out = !(in[0] || in[1] || ... || in[ways-1])
//
func Nor(ways int) *gatesim.PartSpec { return newGate("NOR", ways, gate{some, true}) }

// Xor returns a N-way XOR (parity) gate.
//
//	Inputs: in[ways]
//	Outputs: out
//	Function: out = in[0] ^ in[1] ^ ... ^ in[ways-1]
//
func Xor(ways int) *gatesim.PartSpec { return newGate("XOR", ways, gate{parity, false}) }

// Xnor returns a N-way XNOR gate.
//
//	Inputs: in[ways]
//	Outputs: out
//	Function: out = !(in[0] ^ in[1] ^ ... ^ in[ways-1])
//
func Xnor(ways int) *gatesim.PartSpec { return newGate("XNOR", ways, gate{parity, true}) }

// two input gates used by composite parts
var (
	and2  = And(2)
	and3  = And(3)
	nand2 = Nand(2)
	or2   = Or(2)
	or4   = Or(4)
	nor2  = Nor(2)
	xor2  = Xor(2)
)
