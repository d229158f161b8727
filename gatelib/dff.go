// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package gatelib

import (
	"github.com/db47h/gatesim"
)

const (
	pS = "s"
	pR = "r"
)

// edge detects rising clock edges. It keeps its own copy of the previous
// clock value since a component is only told that some input changed.
type edge struct {
	prev gatesim.Value
}

func (e *edge) rising(clk gatesim.Value) bool {
	r := e.prev == gatesim.Low && clk == gatesim.High
	e.prev = clk
	return r
}

// sample keeps the value an input had before the current stimulus. Edge
// triggered parts latch that value so that an upstream flip-flop clocked by
// the same edge cannot race its new output through.
type sample struct {
	stim      uint64
	cur, prev gatesim.Value
}

func (p *sample) get(c *gatesim.Sim, v gatesim.Value) gatesim.Value {
	if n := c.Stimulus(); n != p.stim {
		p.stim, p.prev = n, p.cur
	}
	p.cur = v
	return p.prev
}

type latchState int

const (
	latchReset latchState = iota
	latchSet
	latchForbidden
	latchUnknown
)

func (st latchState) q() gatesim.Value {
	switch st {
	case latchReset:
		return gatesim.Low
	case latchSet:
		return gatesim.High
	}
	return gatesim.Unknown
}

// next returns the state of an SR latch after its inputs settle to s and r.
func (st latchState) next(s, r gatesim.Value) latchState {
	switch {
	case s == gatesim.High && r == gatesim.High:
		return latchForbidden
	case s == gatesim.High && r == gatesim.Low:
		return latchSet
	case s == gatesim.Low && r == gatesim.High:
		return latchReset
	case s == gatesim.Low && r == gatesim.Low:
		if st == latchForbidden {
			// leaving the forbidden state is a race
			return latchUnknown
		}
		return st
	case st == latchSet && r == gatesim.Low, st == latchReset && s == gatesim.Low:
		// unknown input that cannot change the outcome
		return st
	}
	return latchUnknown
}

var srLatch = &gatesim.PartSpec{
	Name:     "SRLATCH",
	Category: CategorySequential,
	Inputs:   gatesim.IO("s, r"),
	Outputs:  gatesim.IO("q, qn"),
	Mount: func(s *gatesim.Socket) gatesim.Component {
		ps, pr, q, qn := s.Pin(pS), s.Pin(pR), s.Pin(pQ), s.Pin(pQn)
		st := latchReset
		return func(c *gatesim.Sim) {
			st = st.next(c.Get(ps), c.Get(pr))
			c.Send(q, st.q())
			c.Send(qn, st.q().Not())
		}
	},
}

// SRLatch returns a behavioral SR latch. Asserting both inputs is forbidden
// and drives both outputs to Unknown. Releasing both inputs from the forbidden
// state leaves the latch Unknown.
//
//	Inputs: s, r
//	Outputs: q, qn
//
func SRLatch() *gatesim.PartSpec { return srLatch }

var dff = &gatesim.PartSpec{
	Name:     "DFF",
	Category: CategorySequential,
	Inputs:   gatesim.IO("d, clk"),
	Outputs:  gatesim.IO("q, qn"),
	Mount: func(s *gatesim.Socket) gatesim.Component {
		d, clk, q, qn := s.Pin(pD), s.Pin(pClk), s.Pin(pQ), s.Pin(pQn)
		var (
			e   edge
			dv  sample
			out = gatesim.Low
		)
		return func(c *gatesim.Sim) {
			v := dv.get(c, c.Get(d))
			if e.rising(c.Get(clk)) {
				out = v
			}
			c.Send(q, out)
			c.Send(qn, out.Not())
		}
	},
}

// DFF returns a rising edge triggered D flip-flop. It powers on in the reset
// state (q = 0, qn = 1).
//
//	Inputs: d, clk
//	Outputs: q, qn
//	Function: on a 0 -> 1 transition of clk, q = d, qn = !d
//
// d is sampled as it was before the stimulus that raised clk, so flip-flops
// sharing a clock shift data by one stage per edge regardless of the order
// in which the clock was wired.
//
func DFF() *gatesim.PartSpec { return dff }

// jkff is mounted with gatesim.MakePart.
type jkff struct {
	J, K, Clk gatesim.Terminal `gate:"in"`
	Q, Qn     gatesim.Terminal `gate:"out"`

	e    edge
	j, k sample
	out  gatesim.Value
}

func (f *jkff) Update(c *gatesim.Sim) {
	j, k := f.j.get(c, c.Get(f.J)), f.k.get(c, c.Get(f.K))
	if f.e.rising(c.Get(f.Clk)) {
		switch {
		case j == gatesim.Low && k == gatesim.Low:
		case j == gatesim.High && k == gatesim.Low:
			f.out = gatesim.High
		case j == gatesim.Low && k == gatesim.High:
			f.out = gatesim.Low
		case j == gatesim.High && k == gatesim.High:
			f.out = f.out.Not()
		default:
			f.out = gatesim.Unknown
		}
	}
	c.Send(f.Q, f.out)
	c.Send(f.Qn, f.out.Not())
}

var jkFF = func() *gatesim.PartSpec {
	p := gatesim.MakePart(&jkff{out: gatesim.Low})
	p.Category = CategorySequential
	return p
}()

// JKFF returns a rising edge triggered JK flip-flop. It powers on in the
// reset state. Like DFF, it samples j and k as they were before the clock
// edge.
//
//	Inputs: j, k, clk
//	Outputs: q, qn
//	Function: on a 0 -> 1 transition of clk:
//		j k | q
//		0 0 | q (hold)
//		1 0 | 1
//		0 1 | 0
//		1 1 | !q (toggle)
//
func JKFF() *gatesim.PartSpec { return jkFF }
