package gatelib_test

import (
	"testing"

	gl "github.com/db47h/gatesim/gatelib"
	"github.com/db47h/gatesim/gatetest"
)

func TestMux(t *testing.T) {
	gatetest.TruthTable(t, gl.Mux(), func(in []bool) []bool {
		if in[2] {
			return []bool{in[1]}
		}
		return []bool{in[0]}
	})
}

func TestMux4(t *testing.T) {
	// inputs: in[0..3], sel[0], sel[1]
	gatetest.TruthTable(t, gl.Mux4(), func(in []bool) []bool {
		return []bool{in[b2i(in[4])+2*b2i(in[5])]}
	})
}

func TestMux_unknown_select(t *testing.T) {
	h, err := gatetest.NewHarness(gl.Mux())
	if err != nil {
		t.Fatal(err)
	}
	if err = h.Set("a", L); err != nil {
		t.Fatal(err)
	}
	if err = h.Set("b", L); err != nil {
		t.Fatal(err)
	}
	if v := h.Get("out"); v != L {
		t.Fatalf("expected 0 with both inputs low, got %v", v)
	}
	if err = h.Set("b", H); err != nil {
		t.Fatal(err)
	}
	if v := h.Get("out"); v != X {
		t.Fatalf("expected X, got %v", v)
	}
}
