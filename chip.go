// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package gatesim

import (
	"github.com/pkg/errors"
)

// Chip composes existing parts into a new composite part. The pin names
// specified as inputs and outputs will be the boundary terminals of the chip.
// conns is a comma separated list of connections "src -> dst" where pins of
// the chip itself are referenced by name and pins of parts by
// "instance.pin". Bus pins accept an index or a range and a bare bus name
// designates the whole bus:
//
//	a -> xor.in[0], b -> xor.in[1], xor.out -> s
//	d[0..3] -> reg.d[0..3]
//	d -> reg.d
//
// A single source may be connected to several destinations at once:
//
//	clk -> dff.clk[0..7]
//
// An Xor gate could be created like this:
//
//	xor, err := Chip("XOR", "a, b", "out",
//		Parts{
//			nand.NewPart("n0"),
//			nand.NewPart("n1"),
//			nand.NewPart("n2"),
//			nand.NewPart("n3"),
//		},
//		`a -> n0.in[0], b -> n0.in[1],
//		 a -> n1.in[0], n0.out -> n1.in[1],
//		 b -> n2.in[0], n0.out -> n2.in[1],
//		 n1.out -> n3.in[0], n2.out -> n3.in[1],
//		 n3.out -> out`)
//
// Chip checks the syntax of its arguments, pin names and the legality of the
// connections. The returned PartSpec can be instantiated with
// Sim.Instantiate or used as a part in other chips.
//
func Chip(name string, inputs, outputs string, parts Parts, conns string) (*PartSpec, error) {
	ins, err := ParseIO(inputs)
	if err != nil {
		return nil, errors.Wrap(err, name+": inputs")
	}
	outs, err := ParseIO(outputs)
	if err != nil {
		return nil, errors.Wrap(err, name+": outputs")
	}
	dirs := make(map[pin]Direction)
	for _, n := range ins {
		if err := addPin(dirs, pin{"", n}, Input); err != nil {
			return nil, errors.Wrap(err, name)
		}
	}
	for _, n := range outs {
		if err := addPin(dirs, pin{"", n}, Output); err != nil {
			return nil, errors.Wrap(err, name)
		}
	}

	pinNames := map[string][]string{"": append(append([]string(nil), ins...), outs...)}
	for _, p := range parts {
		if p.PartSpec == nil || p.Instance == "" {
			return nil, errors.New(name + ": parts must have a PartSpec and an instance name")
		}
		if _, ok := pinNames[p.Instance]; ok {
			return nil, errors.Wrapf(ErrDuplicateName, "%s: part %s", name, p.Instance)
		}
		pinNames[p.Instance] = append(append([]string(nil), p.Inputs...), p.Outputs...)
		for _, n := range p.Inputs {
			dirs[pin{p.Instance, n}] = Input
		}
		for _, n := range p.Outputs {
			dirs[pin{p.Instance, n}] = Output
		}
	}

	ws, err := parseConns(conns, func(part string) ([]string, bool) {
		ns, ok := pinNames[part]
		return ns, ok
	})
	if err != nil {
		return nil, errors.Wrap(err, name)
	}

	driven := make(map[pin]pin, len(ws))
	for _, w := range ws {
		if w.from == w.to {
			return nil, errors.Wrapf(ErrSelfConnection, "%s: %v", name, w.from)
		}
		if !legalWire(w, dirs) {
			return nil, errors.Wrapf(ErrScopeViolation, "%s: %v -> %v", name, w.from, w.to)
		}
		if src, ok := driven[w.to]; ok {
			return nil, errors.Wrapf(ErrAlreadyDriven, "%s: %v is driven by %v", name, w.to, src)
		}
		driven[w.to] = w.from
	}

	spec := &PartSpec{
		Name:    name,
		Inputs:  ins,
		Outputs: outs,
	}
	spec.Build = func(s *Sim, c Circuit) error {
		ids := make(map[string]Circuit, len(parts))
		for _, p := range parts {
			id, err := s.Instantiate(p.PartSpec, p.Instance, c)
			if err != nil {
				return err
			}
			ids[p.Instance] = id
		}
		term := func(p pin) Terminal {
			if p.p == "" {
				return s.Pin(c, p.name)
			}
			return s.Pin(ids[p.p], p.name)
		}
		for _, w := range ws {
			if err := s.Connect(term(w.from), term(w.to)); err != nil {
				return err
			}
		}
		return nil
	}
	return spec, nil
}

// MustChip is like Chip but panics if the chip cannot be declared.
//
func MustChip(name string, inputs, outputs string, parts Parts, conns string) *PartSpec {
	spec, err := Chip(name, inputs, outputs, parts, conns)
	if err != nil {
		panic(err)
	}
	return spec
}

func addPin(dirs map[pin]Direction, p pin, d Direction) error {
	if _, ok := dirs[p]; ok {
		return errors.Wrapf(ErrDuplicateName, "pin %s", p.name)
	}
	dirs[p] = d
	return nil
}

// legalWire mirrors Sim.canDrive for pins of a chip and its parts.
//
func legalWire(w wire, dirs map[pin]Direction) bool {
	fd, td := dirs[w.from], dirs[w.to]
	fromChip, toChip := w.from.p == "", w.to.p == ""
	switch {
	case fromChip && fd == Input:
		// chip input to part input or straight to chip output
		return !toChip && td == Input || toChip && td == Output
	case !fromChip && fd == Output:
		// part output to part input or chip output
		return !toChip && td == Input || toChip && td == Output
	}
	return false
}
