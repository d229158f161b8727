package gatelib

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/db47h/gatesim"
)

// Register returns a n-bit register. Each bit is a DFF whose input is fed
// back from its own output through a Mux controlled by load.
//
//	Inputs: d[bits], load, clk
//	Outputs: q[bits]
//	Function: on a 0 -> 1 transition of clk, if load = 1 then q = d
//
func Register(bits int) *gatesim.PartSpec {
	if bits < 1 {
		panic("gatelib: register width must be at least 1")
	}
	var (
		parts gatesim.Parts
		conns strings.Builder
	)
	for i := 0; i < bits; i++ {
		m, f := "m"+strconv.Itoa(i), "f"+strconv.Itoa(i)
		parts = append(parts, mux.NewPart(m), dff.NewPart(f))
		if i > 0 {
			conns.WriteString(", ")
		}
		fmt.Fprintf(&conns, "%[2]s.q -> %[1]s.a, d[%[3]d] -> %[1]s.b, load -> %[1]s.sel, "+
			"%[1]s.out -> %[2]s.d, clk -> %[2]s.clk, %[2]s.q -> q[%[3]d]", m, f, i)
	}
	return chip(CategoryMemory, "REGISTER",
		bus(pD, bits)+", load, clk", bus(pQ, bits), parts, conns.String())
}

var memoryCell = chip(CategoryMemory, "MEMCELL", "d, sel, we", "q",
	gatesim.Parts{
		and2.NewPart("w"),
		dLatch.NewPart("l"),
		and2.NewPart("r"),
	},
	`sel -> w.in[0], we -> w.in[1], w.out -> l.en,
	 d -> l.d,
	 sel -> r.in[0], l.q -> r.in[1],
	 r.out -> q`)

// MemoryCell returns a one bit memory cell. The cell stores d while both sel
// and we are 1. Its output is the stored bit when sel is 1, and 0 otherwise.
//
//	Inputs: d, sel, we
//	Outputs: q
//
func MemoryCell() *gatesim.PartSpec { return memoryCell }

// Counter returns a n-bit ripple counter made of JK flip-flops. Every stage
// toggles on the falling edge of the previous stage's output.
//
//	Inputs: clk, en
//	Outputs: q[bits]
//	Function: on a 0 -> 1 transition of clk, if en = 1 then q = q + 1
//
func Counter(bits int) *gatesim.PartSpec {
	if bits < 1 {
		panic("gatelib: counter width must be at least 1")
	}
	var (
		parts gatesim.Parts
		conns strings.Builder
	)
	for i := 0; i < bits; i++ {
		f := "f" + strconv.Itoa(i)
		parts = append(parts, jkFF.NewPart(f))
		if i > 0 {
			fmt.Fprintf(&conns, ", f%d.qn -> %s.clk, ", i-1, f)
		} else {
			conns.WriteString("clk -> f0.clk, ")
		}
		fmt.Fprintf(&conns, "en -> %[1]s.j, en -> %[1]s.k, %[1]s.q -> q[%[2]d]", f, i)
	}
	return chip(CategoryMemory, "COUNTER", "clk, en", bus(pQ, bits), parts, conns.String())
}
