package gatelib_test

import (
	"testing"
	"testing/quick"

	"github.com/db47h/gatesim"
	gl "github.com/db47h/gatesim/gatelib"
	"github.com/db47h/gatesim/gatetest"
)

const (
	X = gatesim.Unknown
	L = gatesim.Low
	H = gatesim.High
)

func reduce(in []bool, f func(a, b bool) bool) bool {
	r := in[0]
	for _, b := range in[1:] {
		r = f(r, b)
	}
	return r
}

func Test_gate_truth_tables(t *testing.T) {
	and := func(a, b bool) bool { return a && b }
	or := func(a, b bool) bool { return a || b }
	xor := func(a, b bool) bool { return a != b }
	td := []struct {
		name string
		part func(ways int) *gatesim.PartSpec
		f    func(a, b bool) bool
		neg  bool
	}{
		{"AND", gl.And, and, false},
		{"NAND", gl.Nand, and, true},
		{"OR", gl.Or, or, false},
		{"NOR", gl.Nor, or, true},
		{"XOR", gl.Xor, xor, false},
		{"XNOR", gl.Xnor, xor, true},
	}
	for _, d := range td {
		d := d
		for ways := 2; ways <= 6; ways++ {
			gatetest.TruthTable(t, d.part(ways), func(in []bool) []bool {
				return []bool{reduce(in, d.f) != d.neg}
			})
		}
	}
	gatetest.TruthTable(t, gl.Not(), func(in []bool) []bool { return []bool{!in[0]} })
}

func Test_gate_arity(t *testing.T) {
	for _, f := range []func(int) *gatesim.PartSpec{gl.And, gl.Or, gl.Nand, gl.Nor, gl.Xor, gl.Xnor} {
		func() {
			defer func() {
				if recover() == nil {
					t.Error("expected panic for a 1 input gate")
				}
			}()
			f(1)
		}()
	}
	if n := len(gl.And(5).Inputs); n != 5 {
		t.Fatalf("expected 5 inputs, got %d", n)
	}
}

// reference tri-state functions
func refAnd(in []gatesim.Value) gatesim.Value {
	var unknown bool
	for _, v := range in {
		if v == L {
			return L
		}
		unknown = unknown || v == X
	}
	if unknown {
		return X
	}
	return H
}

func refOr(in []gatesim.Value) gatesim.Value {
	neg := make([]gatesim.Value, len(in))
	for i, v := range in {
		neg[i] = v.Not()
	}
	return refAnd(neg).Not()
}

func refXor(in []gatesim.Value) gatesim.Value {
	var n int
	for _, v := range in {
		switch v {
		case X:
			return X
		case H:
			n++
		}
	}
	return gatesim.Bool(n&1 != 0)
}

func Test_gate_unknown(t *testing.T) {
	td := []struct {
		part func(ways int) *gatesim.PartSpec
		ref  func([]gatesim.Value) gatesim.Value
		neg  bool
	}{
		{gl.And, refAnd, false},
		{gl.Nand, refAnd, true},
		{gl.Or, refOr, false},
		{gl.Nor, refOr, true},
		{gl.Xor, refXor, false},
		{gl.Xnor, refXor, true},
	}
	for _, d := range td {
		d := d
		f := func(raw []uint8) bool {
			if len(raw) < 2 {
				raw = append(raw, 0, 1)
			}
			if len(raw) > 8 {
				raw = raw[:8]
			}
			in := make([]gatesim.Value, len(raw))
			for i, r := range raw {
				in[i] = gatesim.Value(r % 3)
			}
			h, err := gatetest.NewHarness(d.part(len(in)))
			if err != nil {
				t.Fatal(err)
			}
			for i, v := range in {
				if err = h.Sim().Set(h.Inputs()[i], v); err != nil {
					t.Fatal(err)
				}
			}
			want := d.ref(in)
			if d.neg {
				want = want.Not()
			}
			return h.Get("out") == want
		}
		if err := quick.Check(f, nil); err != nil {
			t.Error(err)
		}
	}
}

func Test_nand_forced(t *testing.T) {
	h, err := gatetest.NewHarness(gl.Nand(3))
	if err != nil {
		t.Fatal(err)
	}
	if err = h.Set("in[1]", L); err != nil {
		t.Fatal(err)
	}
	if v := h.Get("out"); v != H {
		t.Fatalf("a single low NAND input should force a high output, got %v", v)
	}
}

func TestProbe(t *testing.T) {
	var got []gatesim.Value
	s := gatesim.New()
	src, err := s.Instantiate(gl.Source(), "", gatesim.Top)
	if err != nil {
		t.Fatal(err)
	}
	p, err := s.Instantiate(gl.Probe(func(v gatesim.Value) { got = append(got, v) }), "", gatesim.Top)
	if err != nil {
		t.Fatal(err)
	}
	out := s.Pin(src, "out")
	if err = s.Set(out, H); err != nil {
		t.Fatal(err)
	}
	if err = s.Connect(out, s.Pin(p, "in")); err != nil {
		t.Fatal(err)
	}
	for _, v := range []gatesim.Value{H, L, H} {
		if err = s.Set(out, v); err != nil {
			t.Fatal(err)
		}
	}
	// power-on evaluation, then one call per change.
	want := []gatesim.Value{X, H, L, H}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestConstants(t *testing.T) {
	for _, d := range []struct {
		p *gatesim.PartSpec
		v gatesim.Value
	}{{gl.High(), H}, {gl.Low(), L}} {
		h, err := gatetest.NewHarness(d.p)
		if err != nil {
			t.Fatal(err)
		}
		if v := h.Get("out"); v != d.v {
			t.Errorf("%s: expected %v, got %v", d.p.Name, d.v, v)
		}
	}
}
