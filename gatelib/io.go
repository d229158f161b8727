// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package gatelib

import (
	"github.com/db47h/gatesim"
)

var source = &gatesim.PartSpec{
	Name:     "SOURCE",
	Category: CategoryIO,
	Outputs:  gatesim.IO(pOut),
	Mount:    func(*gatesim.Socket) gatesim.Component { return nil },
}

// Source returns a signal source. Its output only changes when set
// explicitly with Sim.Set, e.g. by a clock driver.
//
//	Outputs: out
//
func Source() *gatesim.PartSpec { return source }

func constant(name string, v gatesim.Value) *gatesim.PartSpec {
	return &gatesim.PartSpec{
		Name:     name,
		Category: CategoryIO,
		Outputs:  gatesim.IO(pOut),
		Mount: func(s *gatesim.Socket) gatesim.Component {
			out := s.Pin(pOut)
			return func(c *gatesim.Sim) { c.Send(out, v) }
		},
	}
}

var (
	high = constant("HIGH", gatesim.High)
	low  = constant("LOW", gatesim.Low)
)

// High returns a constant High source.
//
//	Outputs: out
//	Function: out = 1
//
func High() *gatesim.PartSpec { return high }

// Low returns a constant Low source.
//
//	Outputs: out
//	Function: out = 0
//
func Low() *gatesim.PartSpec { return low }

// Probe creates a probe. The fn function is called with the value of the
// input pin every time it changes.
//
//	Inputs: in
//	Function: f(in)
//
func Probe(f func(v gatesim.Value)) *gatesim.PartSpec {
	return &gatesim.PartSpec{
		Name:     "PROBE",
		Category: CategoryIO,
		Inputs:   gatesim.IO(pIn),
		Mount: func(s *gatesim.Socket) gatesim.Component {
			in := s.Pin(pIn)
			return func(c *gatesim.Sim) { f(c.Get(in)) }
		},
	}
}

// Uint64 returns the value of the given terminals as an uint64. Terminal 0 is
// the lsb. ok is false if any of the terminals is Unknown.
//
func Uint64(c *gatesim.Sim, ts []gatesim.Terminal) (v uint64, ok bool) {
	for bit, t := range ts {
		switch c.Get(t) {
		case gatesim.High:
			v |= 1 << uint(bit)
		case gatesim.Unknown:
			return v, false
		}
	}
	return v, true
}

// SetUint64 sets the terminals to the given value, terminal 0 being the lsb.
//
func SetUint64(c *gatesim.Sim, ts []gatesim.Terminal, v uint64) error {
	for bit, t := range ts {
		if err := c.Set(t, gatesim.Bool(v&(1<<uint(bit)) != 0)); err != nil {
			return err
		}
	}
	return nil
}
