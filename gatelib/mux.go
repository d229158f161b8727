// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package gatelib

import (
	"github.com/db47h/gatesim"
)

var mux = chip(CategoryMultiplexer, "MUX", "a, b, sel", "out",
	gatesim.Parts{
		not.NewPart("nsel"),
		and2.NewPart("ga"),
		and2.NewPart("gb"),
		or2.NewPart("o"),
	},
	`sel -> nsel.in,
	 a -> ga.in[0], nsel.out -> ga.in[1],
	 b -> gb.in[0], sel -> gb.in[1],
	 ga.out -> o.in[0], gb.out -> o.in[1],
	 o.out -> out`)

// Mux returns a 2 to 1 multiplexer.
//
//	Inputs: a, b, sel
//	Outputs: out
//	Function: If sel=0 then out=a else out=b.
//
func Mux() *gatesim.PartSpec { return mux }

var mux4 = chip(CategoryMultiplexer, "MUX4", "in[4], sel[2]", "out",
	gatesim.Parts{
		not.NewPart("n0"),
		not.NewPart("n1"),
		and3.NewPart("g0"),
		and3.NewPart("g1"),
		and3.NewPart("g2"),
		and3.NewPart("g3"),
		or4.NewPart("o"),
	},
	`sel[0] -> n0.in, sel[1] -> n1.in,
	 in[0] -> g0.in[0], n0.out -> g0.in[1], n1.out -> g0.in[2],
	 in[1] -> g1.in[0], sel[0] -> g1.in[1], n1.out -> g1.in[2],
	 in[2] -> g2.in[0], n0.out -> g2.in[1], sel[1] -> g2.in[2],
	 in[3] -> g3.in[0], sel[0] -> g3.in[1], sel[1] -> g3.in[2],
	 g0.out -> o.in[0], g1.out -> o.in[1], g2.out -> o.in[2], g3.out -> o.in[3],
	 o.out -> out`)

// Mux4 returns a 4 to 1 multiplexer. sel[0] is the least significant bit of
// the selector.
//
//	Inputs: in[4], sel[2]
//	Outputs: out
//	Function: out = in[sel]
//
func Mux4() *gatesim.PartSpec { return mux4 }
