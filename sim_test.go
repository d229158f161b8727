package gatesim_test

import (
	"testing"

	"github.com/db47h/gatesim"
	gl "github.com/db47h/gatesim/gatelib"
	"github.com/db47h/gatesim/gatetest"
	"github.com/pkg/errors"
)

func trace(t *testing.T, err error) {
	t.Helper()
	if err, ok := err.(interface {
		StackTrace() errors.StackTrace
	}); ok {
		for _, f := range err.StackTrace() {
			t.Logf("%+v ", f)
		}
	}
}

// events records events of the given kinds.
type events struct {
	kinds map[gatesim.EventKind]bool
	evs   []gatesim.Event
}

func record(kinds ...gatesim.EventKind) *events {
	e := &events{kinds: make(map[gatesim.EventKind]bool)}
	for _, k := range kinds {
		e.kinds[k] = true
	}
	return e
}

func (e *events) Observe(ev *gatesim.Event) {
	if len(e.kinds) == 0 || e.kinds[ev.Kind] {
		e.evs = append(e.evs, *ev)
	}
}

func Test_gate_custom(t *testing.T) {
	nand := gl.Nand(2)
	and, err := gatesim.Chip("AND", "a, b", "out",
		gatesim.Parts{nand.NewPart("n0"), nand.NewPart("n1")},
		`a -> n0.in[0], b -> n0.in[1],
		 n0.out -> n1.in[0..1],
		 n1.out -> out`)
	if err != nil {
		trace(t, err)
		t.Fatal(err)
	}
	or, err := gatesim.Chip("OR", "a, b", "out",
		gatesim.Parts{nand.NewPart("notA"), nand.NewPart("notB"), nand.NewPart("o")},
		`a -> notA.in[0..1], b -> notB.in[0..1],
		 notA.out -> o.in[0], notB.out -> o.in[1],
		 o.out -> out`)
	if err != nil {
		trace(t, err)
		t.Fatal(err)
	}
	xor, err := gatesim.Chip("XOR", "a, b", "out",
		gatesim.Parts{nand.NewPart("nab"), nand.NewPart("w0"), nand.NewPart("w1"), nand.NewPart("o")},
		`a -> nab.in[0], b -> nab.in[1],
		 a -> w0.in[0], nab.out -> w0.in[1],
		 b -> w1.in[0], nab.out -> w1.in[1],
		 w0.out -> o.in[0], w1.out -> o.in[1],
		 o.out -> out`)
	if err != nil {
		trace(t, err)
		t.Fatal(err)
	}
	nor, err := gatesim.Chip("NOR", "a, b", "out",
		gatesim.Parts{or.NewPart("or"), nand.NewPart("n")},
		`a -> or.a, b -> or.b, or.out -> n.in[0..1], n.out -> out`)
	if err != nil {
		trace(t, err)
		t.Fatal(err)
	}
	dmux, err := gatesim.Chip("DMUX", "in, sel", "a, b",
		gatesim.Parts{gl.Not().NewPart("nsel"), gl.And(2).NewPart("ga"), gl.And(2).NewPart("gb")},
		`sel -> nsel.in,
		 in -> ga.in[0], nsel.out -> ga.in[1],
		 in -> gb.in[0], sel -> gb.in[1],
		 ga.out -> a, gb.out -> b`)
	if err != nil {
		trace(t, err)
		t.Fatal(err)
	}
	td := []struct {
		name string
		gate *gatesim.PartSpec
		ref  func(in []bool) []bool
	}{
		{"AND", and, func(in []bool) []bool { return []bool{in[0] && in[1]} }},
		{"OR", or, func(in []bool) []bool { return []bool{in[0] || in[1]} }},
		{"XOR", xor, func(in []bool) []bool { return []bool{in[0] != in[1]} }},
		{"NOR", nor, func(in []bool) []bool { return []bool{!(in[0] || in[1])} }},
		{"DMUX", dmux, func(in []bool) []bool { return []bool{in[0] && !in[1], in[0] && in[1]} }},
	}
	for _, d := range td {
		t.Run(d.name, func(t *testing.T) {
			gatetest.TruthTable(t, d.gate, d.ref)
		})
	}
}

func TestSet_idempotent(t *testing.T) {
	ev := record(gatesim.ValueChanged)
	s := gatesim.New(gatesim.WithObserver(ev))
	src, err := s.Instantiate(gl.Source(), "src", gatesim.Top)
	if err != nil {
		t.Fatal(err)
	}
	out := s.Pin(src, "out")

	// the first assignment counts even if the value does not change.
	if err = s.Set(out, gatesim.Unknown); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		if err = s.Set(out, gatesim.High); err != nil {
			t.Fatal(err)
		}
	}
	if len(ev.evs) != 2 {
		t.Fatalf("expected 2 events, got %d", len(ev.evs))
	}
	e := ev.evs[1]
	if e.Terminal != out || e.Old != gatesim.Unknown || e.New != gatesim.High || e.Path != "src.out" {
		t.Fatalf("unexpected event %+v", e)
	}
	if s.Evals(out) != 2 {
		t.Fatalf("expected 2 evaluations, got %d", s.Evals(out))
	}
}

func TestToggle(t *testing.T) {
	s := gatesim.New()
	src, err := s.Instantiate(gl.Source(), "", gatesim.Top)
	if err != nil {
		t.Fatal(err)
	}
	out := s.Pin(src, "out")
	for _, want := range []gatesim.Value{gatesim.High, gatesim.Low, gatesim.High} {
		if err = s.Toggle(out); err != nil {
			t.Fatal(err)
		}
		if v := s.Get(out); v != want {
			t.Fatalf("expected %v, got %v", want, v)
		}
	}
}

func TestNonStabilizing(t *testing.T) {
	ev := record(gatesim.Diagnostic)
	s := gatesim.New(gatesim.WithStepBudget(100), gatesim.WithObserver(ev))
	inv, err := s.Instantiate(gl.Not(), "inv", gatesim.Top)
	if err != nil {
		t.Fatal(err)
	}
	in, out := s.Pin(inv, "in"), s.Pin(inv, "out")
	// Unknown is a fixed point of a self-fed inverter
	if err = s.Connect(out, in); err != nil {
		trace(t, err)
		t.Fatal(err)
	}
	err = s.Set(in, gatesim.High)
	if !errors.Is(err, gatesim.ErrNonStabilizing) {
		t.Fatalf("expected ErrNonStabilizing, got %v", err)
	}
	if len(ev.evs) != 1 || ev.evs[0].Level.String() != "ERROR" {
		t.Fatalf("expected one error diagnostic, got %+v", ev.evs)
	}
	if s.Evals(in)+s.Evals(out) > 102 {
		t.Fatalf("step budget exceeded: %d evaluations", s.Evals(in)+s.Evals(out))
	}

	// the graph is still usable
	if err = s.Disconnect(out, in); err != nil {
		t.Fatal(err)
	}
	if err = s.Set(in, gatesim.High); err != nil {
		t.Fatal(err)
	}
	if v := s.Get(out); v != gatesim.Low {
		t.Fatalf("expected 0, got %v", v)
	}
}

// A huge step budget must not let an oscillator exhaust the stack.
func TestNonStabilizing_largeBudget(t *testing.T) {
	ev := record(gatesim.Diagnostic)
	s := gatesim.New(gatesim.WithStepBudget(100000000), gatesim.WithObserver(ev))
	inv, err := s.Instantiate(gl.Not(), "inv", gatesim.Top)
	if err != nil {
		t.Fatal(err)
	}
	in, out := s.Pin(inv, "in"), s.Pin(inv, "out")
	if err = s.Connect(out, in); err != nil {
		t.Fatal(err)
	}
	if err = s.Set(in, gatesim.High); !errors.Is(err, gatesim.ErrNonStabilizing) {
		t.Fatalf("expected ErrNonStabilizing, got %v", err)
	}
	if len(ev.evs) != 1 {
		t.Fatalf("expected one diagnostic, got %d", len(ev.evs))
	}
	if err = s.Disconnect(out, in); err != nil {
		t.Fatal(err)
	}
	if err = s.Set(in, gatesim.Low); err != nil {
		t.Fatal(err)
	}
	if v := s.Get(out); v != gatesim.High {
		t.Fatalf("expected 1, got %v", v)
	}
}

func TestSend_outsideComponent(t *testing.T) {
	s := gatesim.New()
	c, err := s.Instantiate(gl.Not(), "", gatesim.Top)
	if err != nil {
		t.Fatal(err)
	}
	defer func() {
		if recover() == nil {
			t.Fatal("Send did not panic")
		}
	}()
	s.Send(s.Pin(c, "in"), gatesim.High)
}

func TestSim_Stimulus(t *testing.T) {
	s := gatesim.New()
	n := s.Stimulus()
	c, err := s.Instantiate(gl.Not(), "", gatesim.Top)
	if err != nil {
		t.Fatal(err)
	}
	if s.Stimulus() != n+1 {
		t.Fatalf("expected stimulus %d after power-on, got %d", n+1, s.Stimulus())
	}
	if err = s.Set(s.Pin(c, "in"), gatesim.High); err != nil {
		t.Fatal(err)
	}
	if s.Stimulus() != n+2 {
		t.Fatalf("expected stimulus %d after Set, got %d", n+2, s.Stimulus())
	}
}

// Test a basic clock with a Nor gate. Its output is fed back into one of
// its inputs, the other one disables it.
func Test_clock(t *testing.T) {
	clk, err := gatesim.Chip("CLK", "disable", "tick",
		gatesim.Parts{gl.Nor(2).NewPart("n")},
		`disable -> n.in[0], n.out -> n.in[1], n.out -> tick`)
	if err != nil {
		t.Fatal(err)
	}
	h, err := gatetest.NewHarness(clk, gatesim.WithStepBudget(1000))
	if err != nil {
		t.Fatal(err)
	}
	if err = h.Set("disable", gatesim.High); err != nil {
		t.Fatal(err)
	}
	if v := h.Get("tick"); v != gatesim.Low {
		t.Fatalf("expected 0, got %v", v)
	}
	if err = h.Set("disable", gatesim.Low); !errors.Is(err, gatesim.ErrNonStabilizing) {
		t.Fatalf("expected ErrNonStabilizing, got %v", err)
	}
	// disabling it again brings it back to a stable state.
	if err = h.Set("disable", gatesim.High); err != nil {
		t.Fatal(err)
	}
	if v := h.Get("tick"); v != gatesim.Low {
		t.Fatalf("expected 0, got %v", v)
	}
}

func TestSim_counts(t *testing.T) {
	s := gatesim.New()
	if s.StepBudget() != gatesim.DefaultStepBudget || s.Floating() != gatesim.Unknown {
		t.Fatal("bad defaults")
	}
	if _, err := s.Instantiate(gl.FullAdder(), "fa", gatesim.Top); err != nil {
		t.Fatal(err)
	}
	// full adder: 2 half adders (xor + and) + or
	if n := s.Circuits(); n != 8 {
		t.Errorf("expected 8 circuits, got %d", n)
	}
	// fa: 5, ha: 4 each, xor/and/or: 3 each
	if n := s.Terminals(); n != 5+2*4+5*3 {
		t.Errorf("expected %d terminals, got %d", 5+2*4+5*3, n)
	}
	if len(s.TopLevel()) != 1 {
		t.Errorf("expected 1 top level circuit, got %d", len(s.TopLevel()))
	}
}
