// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package gatetest

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/db47h/gatesim"
)

// maximum number of inputs tested exhaustively by ComparePart.
const maxExhaustive = 12

func inputString(names []string, vs []gatesim.Value) string {
	var b strings.Builder
	for i, n := range names {
		if b.Len() > 0 {
			b.WriteString(", ")
		}
		b.WriteString(n)
		b.WriteRune('=')
		b.WriteString(vs[i].String())
	}
	return b.String()
}

// TruthTable checks the outputs of p against the reference function ref for
// every combination of inputs. ref receives the inputs in declaration order
// and must return the expected outputs in declaration order.
//
func TruthTable(t *testing.T, p *gatesim.PartSpec, ref func(in []bool) []bool) {
	t.Helper()
	err := Enumerate(p, func(in, out []gatesim.Value) {
		bs := make([]bool, len(in))
		for i, v := range in {
			bs[i] = v == gatesim.High
		}
		want := ref(bs)
		for i, v := range out {
			if v != gatesim.Bool(want[i]) {
				t.Errorf("%s %s: expected %s=%v, got %s", p.Name, inputString(p.Inputs, in), p.Outputs[i], gatesim.Bool(want[i]), v)
			}
		}
	})
	if err != nil {
		t.Fatal(err)
	}
}

func sameInterface(t *testing.T, p1, p2 *gatesim.PartSpec) {
	t.Helper()
	if len(p1.Inputs) != len(p2.Inputs) {
		t.Fatalf("%s has %d inputs, %s has %d", p1.Name, len(p1.Inputs), p2.Name, len(p2.Inputs))
	}
	if len(p1.Outputs) != len(p2.Outputs) {
		t.Fatalf("%s has %d outputs, %s has %d", p1.Name, len(p1.Outputs), p2.Name, len(p2.Outputs))
	}
	for i := range p1.Inputs {
		if p1.Inputs[i] != p2.Inputs[i] {
			t.Fatalf("p1.Inputs[%d] = %q != p2.Inputs[%d] = %q", i, p1.Inputs[i], i, p2.Inputs[i])
		}
	}
	for i := range p1.Outputs {
		if p1.Outputs[i] != p2.Outputs[i] {
			t.Fatalf("p1.Outputs[%d] = %q != p2.Outputs[%d] = %q", i, p1.Outputs[i], i, p2.Outputs[i])
		}
	}
}

func newPair(t *testing.T, p1, p2 *gatesim.PartSpec) (*Harness, *Harness) {
	t.Helper()
	sameInterface(t, p1, p2)
	h1, err := NewHarness(p1)
	if err != nil {
		t.Fatal(err)
	}
	h2, err := NewHarness(p2)
	if err != nil {
		t.Fatal(err)
	}
	return h1, h2
}

func compareOutputs(t *testing.T, p *gatesim.PartSpec, h1, h2 *Harness) {
	t.Helper()
	o1, o2 := h1.Values(h1.outs), h2.Values(h2.outs)
	for i := range o1 {
		if o1[i] != o2[i] {
			t.Fatalf("%s: expected %s=%s, got %s", inputString(p.Inputs, h1.Values(h1.ins)), p.Outputs[i], o1[i], o2[i])
		}
	}
}

// ComparePart takes two parts and compares their outputs given the same
// inputs. Both parts must have the same Input/Output interface. Parts with up
// to 12 inputs are tested exhaustively, larger ones with 4096 random input
// combinations.
//
func ComparePart(t *testing.T, p1, p2 *gatesim.PartSpec) {
	t.Helper()
	h1, h2 := newPair(t, p1, p2)

	n := len(h1.ins)
	if n <= maxExhaustive {
		for i := uint64(0); i < 1<<uint(n); i++ {
			if err := h1.SetInputs(i); err != nil {
				t.Fatal(err)
			}
			if err := h2.SetInputs(i); err != nil {
				t.Fatal(err)
			}
			compareOutputs(t, p1, h1, h2)
		}
		return
	}

	rnd := rand.New(rand.NewSource(int64(n)))
	for i := 0; i < 1<<maxExhaustive; i++ {
		for k := range h1.ins {
			v := gatesim.Bool(rnd.Int63()&1 != 0)
			if err := h1.s.Set(h1.ins[k], v); err != nil {
				t.Fatal(err)
			}
			if err := h2.s.Set(h2.ins[k], v); err != nil {
				t.Fatal(err)
			}
		}
		compareOutputs(t, p1, h1, h2)
	}
}

// CompareSequential compares two clocked parts over the given number of
// clock cycles. Before each cycle, every input other than clk is set to a
// random value. Outputs are compared after each cycle only, so parts that
// differ in their power-on state or in intermediate values while the clock is
// high can still be compared.
//
func CompareSequential(t *testing.T, p1, p2 *gatesim.PartSpec, clk string, cycles int) {
	t.Helper()
	h1, h2 := newPair(t, p1, p2)
	rnd := rand.New(rand.NewSource(int64(cycles)))
	for c := 0; c < cycles; c++ {
		for k, name := range p1.Inputs {
			if name == clk {
				continue
			}
			v := gatesim.Bool(rnd.Int63()&1 != 0)
			if err := h1.s.Set(h1.ins[k], v); err != nil {
				t.Fatal(err)
			}
			if err := h2.s.Set(h2.ins[k], v); err != nil {
				t.Fatal(err)
			}
		}
		if err := h1.Pulse(clk); err != nil {
			t.Fatal(err)
		}
		if err := h2.Pulse(clk); err != nil {
			t.Fatal(err)
		}
		compareOutputs(t, p1, h1, h2)
	}
}
