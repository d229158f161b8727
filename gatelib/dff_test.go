package gatelib_test

import (
	"testing"

	"github.com/db47h/gatesim"
	gl "github.com/db47h/gatesim/gatelib"
	"github.com/db47h/gatesim/gatetest"
)

// step is one row of a sequential test: set the inputs in order, then check
// the outputs.
type step struct {
	set []pinValue
	q   gatesim.Value
	qn  gatesim.Value
}

type pinValue struct {
	pin string
	v   gatesim.Value
}

func pv(pin string, v gatesim.Value) pinValue { return pinValue{pin, v} }

func runSteps(t *testing.T, p *gatesim.PartSpec, steps []step) {
	t.Helper()
	h, err := gatetest.NewHarness(p)
	if err != nil {
		t.Fatal(err)
	}
	for i, s := range steps {
		for _, x := range s.set {
			if err := h.Set(x.pin, x.v); err != nil {
				t.Fatalf("%s step %d: %v", p.Name, i, err)
			}
		}
		if q, qn := h.Get("q"), h.Get("qn"); q != s.q || qn != s.qn {
			t.Errorf("%s step %d: expected q=%v qn=%v, got q=%v qn=%v", p.Name, i, s.q, s.qn, q, qn)
		}
	}
}

func TestRSLatch(t *testing.T) {
	runSteps(t, gl.RSLatch(), []step{
		{[]pinValue{pv("s", H), pv("r", L)}, H, L},
		{[]pinValue{pv("s", L)}, H, L}, // hold
		{[]pinValue{pv("r", H)}, L, H},
		{[]pinValue{pv("r", L)}, L, H}, // hold
		{[]pinValue{pv("s", H)}, H, L},
		{[]pinValue{pv("r", H)}, L, L}, // forbidden
	})
}

func TestRSLatchNand(t *testing.T) {
	runSteps(t, gl.RSLatchNand(), []step{
		{[]pinValue{pv("sn", L), pv("rn", H)}, H, L},
		{[]pinValue{pv("sn", H)}, H, L}, // hold
		{[]pinValue{pv("rn", L)}, L, H},
		{[]pinValue{pv("rn", H)}, L, H}, // hold
		{[]pinValue{pv("sn", L), pv("rn", L)}, H, H}, // forbidden
	})
}

func TestSRLatch(t *testing.T) {
	runSteps(t, gl.SRLatch(), []step{
		{nil, X, X},
		{[]pinValue{pv("s", H), pv("r", L)}, H, L},
		{[]pinValue{pv("s", L)}, H, L},
		{[]pinValue{pv("s", X)}, H, L}, // s cannot change a set latch
		{[]pinValue{pv("r", X)}, X, X}, // but r can
		{[]pinValue{pv("s", L), pv("r", H)}, L, H},
		{[]pinValue{pv("s", H)}, X, X}, // forbidden
		{[]pinValue{pv("r", L)}, H, L},
	})
}

func TestDLatch(t *testing.T) {
	runSteps(t, gl.DLatch(), []step{
		{[]pinValue{pv("en", H), pv("d", H)}, H, L},
		{[]pinValue{pv("d", L)}, L, H}, // transparent
		{[]pinValue{pv("d", H)}, H, L},
		{[]pinValue{pv("en", L), pv("d", L)}, H, L}, // hold
		{[]pinValue{pv("d", X)}, H, L},
		{[]pinValue{pv("d", L), pv("en", H)}, L, H},
	})
}

func TestDFF(t *testing.T) {
	runSteps(t, gl.DFF(), []step{
		{nil, L, H}, // power-on reset
		{[]pinValue{pv("d", H)}, L, H},
		{[]pinValue{pv("clk", L)}, L, H},
		{[]pinValue{pv("clk", H)}, H, L}, // rising edge
		{[]pinValue{pv("d", L)}, H, L},
		{[]pinValue{pv("clk", L)}, H, L}, // falling edge
		{[]pinValue{pv("clk", H)}, L, H},
		{[]pinValue{pv("d", H), pv("clk", X)}, L, H},
		{[]pinValue{pv("clk", H)}, L, H}, // X -> 1 is not an edge
		{[]pinValue{pv("d", X), pv("clk", L), pv("clk", H)}, X, X},
		{[]pinValue{pv("d", L), pv("clk", L), pv("clk", H)}, L, H},
	})
}

func TestJKFF(t *testing.T) {
	pulse := []pinValue{pv("clk", L), pv("clk", H)}
	with := func(j, k gatesim.Value) []pinValue {
		return append([]pinValue{pv("j", j), pv("k", k)}, pulse...)
	}
	runSteps(t, gl.JKFF(), []step{
		{nil, L, H},
		{with(H, L), H, L}, // set
		{with(L, L), H, L}, // hold
		{with(L, H), L, H}, // reset
		{with(H, H), H, L}, // toggle
		{with(H, H), L, H}, // toggle back
		{[]pinValue{pv("j", L), pv("k", L), pv("clk", L)}, L, H},
		{[]pinValue{pv("j", X), pv("clk", H)}, X, X},
	})
}

func TestJKFF_double_toggle(t *testing.T) {
	h, err := gatetest.NewHarness(gl.JKFF())
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range []string{"j", "k"} {
		if err = h.Set(p, H); err != nil {
			t.Fatal(err)
		}
	}
	for i := 0; i < 10; i++ {
		q := h.Get("q")
		if err = h.Pulse("clk"); err != nil {
			t.Fatal(err)
		}
		if err = h.Pulse("clk"); err != nil {
			t.Fatal(err)
		}
		if v := h.Get("q"); v != q {
			t.Fatalf("expected q=%v after two toggles, got %v", q, v)
		}
	}
}

func TestMasterSlaveDFF(t *testing.T) {
	runSteps(t, gl.MasterSlaveDFF(), []step{
		{[]pinValue{pv("d", H), pv("clk", L)}, X, X},
		{[]pinValue{pv("clk", H)}, H, L},
		{[]pinValue{pv("d", L)}, H, L}, // master closed
		{[]pinValue{pv("clk", L)}, H, L},
		{[]pinValue{pv("clk", H)}, L, H},
	})
	gatetest.CompareSequential(t, gl.DFF(), gl.MasterSlaveDFF(), "clk", 100)
}

// Two DFFs sharing a clock form a shift register: data moves by one stage per
// rising edge whichever flip-flop receives the clock first.
func TestDFF_shift(t *testing.T) {
	td := []struct {
		name  string
		conns string
	}{
		{"f0 first", `d -> f0.d, clk -> f0.clk, clk -> f1.clk, f0.q -> f1.d, f0.q -> q0, f1.q -> q1`},
		{"f1 first", `d -> f0.d, clk -> f1.clk, clk -> f0.clk, f0.q -> f1.d, f0.q -> q0, f1.q -> q1`},
	}
	for _, d := range td {
		t.Run(d.name, func(t *testing.T) {
			ff := gl.DFF()
			sh, err := gatesim.Chip("SHIFT2", "d, clk", "q0, q1",
				gatesim.Parts{ff.NewPart("f0"), ff.NewPart("f1")}, d.conns)
			if err != nil {
				t.Fatal(err)
			}
			h, err := gatetest.NewHarness(sh)
			if err != nil {
				t.Fatal(err)
			}
			if err = h.Set("d", H); err != nil {
				t.Fatal(err)
			}
			for i, want := range [][2]gatesim.Value{{H, L}, {H, H}} {
				if err = h.Pulse("clk"); err != nil {
					t.Fatal(err)
				}
				if q0, q1 := h.Get("q0"), h.Get("q1"); q0 != want[0] || q1 != want[1] {
					t.Fatalf("edge %d: expected q0=%v q1=%v, got q0=%v q1=%v", i, want[0], want[1], q0, q1)
				}
			}
		})
	}
}
