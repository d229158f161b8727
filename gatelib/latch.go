package gatelib

import (
	"github.com/db47h/gatesim"
)

// chip wraps gatesim.MustChip and sets the part category.
func chip(cat, name, inputs, outputs string, parts gatesim.Parts, conns string) *gatesim.PartSpec {
	p := gatesim.MustChip(name, inputs, outputs, parts, conns)
	p.Category = cat
	return p
}

var rsLatch = chip(CategorySequential, "RSLATCH", "s, r", "q, qn",
	gatesim.Parts{nor2.NewPart("nq"), nor2.NewPart("nqn")},
	`r -> nq.in[0], nqn.out -> nq.in[1],
	 s -> nqn.in[0], nq.out -> nqn.in[1],
	 nq.out -> q, nqn.out -> qn`)

// RSLatch returns an RS latch made of two cross-coupled NOR gates.
//
//	Inputs: s, r
//	Outputs: q, qn
//	Function:
//		s r | q  qn
//		0 0 | q  qn (hold)
//		1 0 | 1  0
//		0 1 | 0  1
//		1 1 | 0  0  (forbidden)
//
func RSLatch() *gatesim.PartSpec { return rsLatch }

var rsLatchNand = chip(CategorySequential, "RSLATCHNAND", "sn, rn", "q, qn",
	gatesim.Parts{nand2.NewPart("nq"), nand2.NewPart("nqn")},
	`sn -> nq.in[0], nqn.out -> nq.in[1],
	 rn -> nqn.in[0], nq.out -> nqn.in[1],
	 nq.out -> q, nqn.out -> qn`)

// RSLatchNand returns an RS latch made of two cross-coupled NAND gates. Its
// inputs are active low.
//
//	Inputs: sn, rn
//	Outputs: q, qn
//	Function:
//		sn rn | q  qn
//		1  1  | q  qn (hold)
//		0  1  | 1  0
//		1  0  | 0  1
//		0  0  | 1  1  (forbidden)
//
func RSLatchNand() *gatesim.PartSpec { return rsLatchNand }

var dLatch = chip(CategorySequential, "DLATCH", "d, en", "q, qn",
	gatesim.Parts{
		not.NewPart("nd"),
		and2.NewPart("as"),
		and2.NewPart("ar"),
		rsLatch.NewPart("l"),
	},
	`d -> nd.in, d -> as.in[0], en -> as.in[1],
	 nd.out -> ar.in[0], en -> ar.in[1],
	 as.out -> l.s, ar.out -> l.r,
	 l.q -> q, l.qn -> qn`)

// DLatch returns a gated D latch. The latch is transparent while en is 1 and
// holds its value while en is 0.
//
//	Inputs: d, en
//	Outputs: q, qn
//
func DLatch() *gatesim.PartSpec { return dLatch }

// The slave latch must see the clock before the master so that it closes
// first on a falling edge.
var msDFF = chip(CategorySequential, "MSDFF", "d, clk", "q, qn",
	gatesim.Parts{
		dLatch.NewPart("master"),
		dLatch.NewPart("slave"),
		not.NewPart("nclk"),
	},
	`clk -> slave.en, clk -> nclk.in,
	 d -> master.d, nclk.out -> master.en,
	 master.q -> slave.d,
	 slave.q -> q, slave.qn -> qn`)

// MasterSlaveDFF returns a rising edge triggered D flip-flop built from two D
// latches. Unlike DFF, its state is Unknown until the first clock edge.
//
//	Inputs: d, clk
//	Outputs: q, qn
//
func MasterSlaveDFF() *gatesim.PartSpec { return msDFF }
