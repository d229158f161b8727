package gatetest_test

import (
	"testing"

	"github.com/db47h/gatesim"
	"github.com/db47h/gatesim/gatelib"
	"github.com/db47h/gatesim/gatetest"
)

func TestComparePart(t *testing.T) {
	nand := gatelib.Nand(2)
	or, err := gatesim.Chip("custom_or", "in[2]", "out",
		gatesim.Parts{
			nand.NewPart("na"),
			nand.NewPart("nb"),
			nand.NewPart("o"),
		},
		`in[0] -> na.in[0], in[0] -> na.in[1],
		 in[1] -> nb.in[0], in[1] -> nb.in[1],
		 na.out -> o.in[0], nb.out -> o.in[1],
		 o.out -> out`)
	if err != nil {
		t.Fatal(err)
	}
	gatetest.ComparePart(t, gatelib.Or(2), or)
}

func TestComparePart_random(t *testing.T) {
	gatetest.ComparePart(t, gatelib.Xor(14), gatelib.Xor(14))
}

func TestCompareSequential(t *testing.T) {
	gatetest.CompareSequential(t, gatelib.DFF(), gatelib.MasterSlaveDFF(), "clk", 64)
}

func TestTruthTable(t *testing.T) {
	gatetest.TruthTable(t, gatelib.HalfAdder(), func(in []bool) []bool {
		return []bool{in[0] != in[1], in[0] && in[1]}
	})
}

func TestHarness(t *testing.T) {
	h, err := gatetest.NewHarness(gatelib.Register(4))
	if err != nil {
		t.Fatal(err)
	}
	if v, ok := h.Uint("q"); !ok || v != 0 {
		t.Fatalf("expected power-on value 0, got %d (ok=%v)", v, ok)
	}
	if err = h.SetUint("d", 0xa); err != nil {
		t.Fatal(err)
	}
	if err = h.Set("load", gatesim.High); err != nil {
		t.Fatal(err)
	}
	if err = h.Pulse("clk"); err != nil {
		t.Fatal(err)
	}
	if v, ok := h.Uint("q"); !ok || v != 0xa {
		t.Fatalf("expected 10, got %d (ok=%v)", v, ok)
	}
	if err = h.Set("q[0]", gatesim.High); err == nil {
		t.Fatal("expected error setting an output")
	}
	if err = h.SetUint("nope", 1); err == nil {
		t.Fatal("expected error setting an unknown bus")
	}
}

func TestEnumerate(t *testing.T) {
	var rows int
	err := gatetest.Enumerate(gatelib.FullAdder(), func(in, out []gatesim.Value) {
		if len(in) != 3 || len(out) != 2 {
			t.Fatalf("bad row size %d, %d", len(in), len(out))
		}
		rows++
	})
	if err != nil {
		t.Fatal(err)
	}
	if rows != 8 {
		t.Fatalf("expected 8 rows, got %d", rows)
	}
}
