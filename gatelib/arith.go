// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package gatelib

import (
	"github.com/db47h/gatesim"
)

var halfAdder = chip(CategoryArithmetic, "HALFADDER", "a, b", "s, c",
	gatesim.Parts{xor2.NewPart("sum"), and2.NewPart("carry")},
	`a -> sum.in[0], b -> sum.in[1],
	 a -> carry.in[0], b -> carry.in[1],
	 sum.out -> s, carry.out -> c`)

// HalfAdder returns a half adder.
//
//	Inputs: a, b
//	Outputs: s, c
//	Function: s = lsb(a + b), c = msb(a + b)
//
func HalfAdder() *gatesim.PartSpec { return halfAdder }

var fullAdder = chip(CategoryArithmetic, "FULLADDER", "a, b, cin", "s, cout",
	gatesim.Parts{
		halfAdder.NewPart("h0"),
		halfAdder.NewPart("h1"),
		or2.NewPart("carry"),
	},
	`a -> h0.a, b -> h0.b,
	 h0.s -> h1.a, cin -> h1.b,
	 h0.c -> carry.in[0], h1.c -> carry.in[1],
	 h1.s -> s, carry.out -> cout`)

// FullAdder returns a full adder made of two half adders.
//
//	Inputs: a, b, cin
//	Outputs: s, cout
//	Function: s = lsb(a + b + cin), cout = msb(a + b + cin)
//
func FullAdder() *gatesim.PartSpec { return fullAdder }
