// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package gatesim

// A Component is the evaluation rule of a primitive circuit. It is called
// every time one of the circuit's inputs changes and should read inputs with
// Sim.Get and drive outputs with Sim.Send.
//
// Components with several outputs should send values held in their own state
// rather than local variables: sending a value may feed back into the same
// component before the call returns.
//
type Component func(s *Sim)

// A MountFn mounts a primitive part into socket s. MountFn's should query
// the socket for terminals and return closures around them.
//
// For example, a Not gate can be defined like this:
//
//	not := &PartSpec{
//		Name: "NOT",
//		Inputs: IO("in"),
//		Outputs: IO("out"),
//		Mount: func (s *Socket) Component {
//			in, out := s.Pin("in"), s.Pin("out")
//			return func (c *Sim) { c.Send(out, c.Get(in).Not()) }
//		}}
//
type MountFn func(s *Socket) Component

// A BuildFn populates composite circuit c with sub-circuits and wiring.
// See Chip.
//
type BuildFn func(s *Sim, c Circuit) error

// A PartSpec wraps a part specification (its blueprint).
//
// A PartSpec with a Mount function describes a primitive circuit. Otherwise
// it is a composite circuit, populated by Build if set, or left empty for
// callers to fill with AddInput, AddOutput, Instantiate and Connect.
//
type PartSpec struct {
	// Part name, e.g. "NAND".
	Name string
	// Category is a free-form label used to group user defined building
	// blocks.
	Category string
	// Input pin names. Must be distinct pin names.
	// Use the IO() function to expand an input description like
	// "a, b, bus[2]" to []string{"a", "b", "bus[0]", "bus[1]"}
	Inputs []string
	// Output pin names. Must be distinct from each other and from inputs.
	Outputs []string

	// Mount function (see MountFn).
	Mount MountFn
	// Build function (see BuildFn).
	Build BuildFn
}

// IsPrimitive returns true if p describes a primitive circuit.
//
func (p *PartSpec) IsPrimitive() bool { return p.Mount != nil }

// NewPart returns a named instance of p, for use in Chip.
//
func (p *PartSpec) NewPart(name string) Part {
	return Part{p, name}
}

// A Part is a named instance of a PartSpec within a Chip.
//
type Part struct {
	*PartSpec
	Instance string
}

// Parts is a list of parts.
//
type Parts []Part
