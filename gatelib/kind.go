package gatelib

import (
	"sort"
	"strings"

	"github.com/db47h/gatesim"
	"github.com/pkg/errors"
)

// Kind identifies a part of the library by name. Kinds are what an editor
// stores for each component it places.
//
type Kind int

// Available kinds.
//
const (
	KindNot Kind = iota
	KindAnd
	KindOr
	KindNand
	KindNor
	KindXor
	KindXnor
	KindSource
	KindHigh
	KindLow
	KindSRLatch
	KindRSLatch
	KindRSLatchNand
	KindDLatch
	KindDFF
	KindJKFF
	KindMasterSlaveDFF
	KindHalfAdder
	KindFullAdder
	KindMux
	KindMux4
	KindRegister
	KindMemoryCell
	KindCounter
)

type kindInfo struct {
	name string
	// size is the default size of sized kinds, 0 for fixed ones.
	size int
	min  int
	spec func(n int) *gatesim.PartSpec
}

func fixed(name string, p *gatesim.PartSpec) kindInfo {
	return kindInfo{name: name, spec: func(int) *gatesim.PartSpec { return p }}
}

func sized(name string, size, min int, f func(n int) *gatesim.PartSpec) kindInfo {
	return kindInfo{name, size, min, f}
}

var kinds = map[Kind]kindInfo{
	KindNot:            fixed("NOT", not),
	KindAnd:            sized("AND", 2, 2, And),
	KindOr:             sized("OR", 2, 2, Or),
	KindNand:           sized("NAND", 2, 2, Nand),
	KindNor:            sized("NOR", 2, 2, Nor),
	KindXor:            sized("XOR", 2, 2, Xor),
	KindXnor:           sized("XNOR", 2, 2, Xnor),
	KindSource:         fixed("SOURCE", source),
	KindHigh:           fixed("HIGH", high),
	KindLow:            fixed("LOW", low),
	KindSRLatch:        fixed("SRLATCH", srLatch),
	KindRSLatch:        fixed("RSLATCH", rsLatch),
	KindRSLatchNand:    fixed("RSLATCHNAND", rsLatchNand),
	KindDLatch:         fixed("DLATCH", dLatch),
	KindDFF:            fixed("DFF", dff),
	KindJKFF:           fixed("JKFF", jkFF),
	KindMasterSlaveDFF: fixed("MSDFF", msDFF),
	KindHalfAdder:      fixed("HALFADDER", halfAdder),
	KindFullAdder:      fixed("FULLADDER", fullAdder),
	KindMux:            fixed("MUX", mux),
	KindMux4:           fixed("MUX4", mux4),
	KindRegister:       sized("REGISTER", 8, 1, Register),
	KindMemoryCell:     fixed("MEMCELL", memoryCell),
	KindCounter:        sized("COUNTER", 4, 1, Counter),
}

var byName = func() map[string]Kind {
	m := make(map[string]Kind, len(kinds))
	for k, i := range kinds {
		m[i.name] = k
	}
	return m
}()

func (k Kind) info() kindInfo {
	i, ok := kinds[k]
	if !ok {
		panic("gatelib: invalid kind")
	}
	return i
}

func (k Kind) String() string {
	if i, ok := kinds[k]; ok {
		return i.name
	}
	return "Kind(invalid)"
}

// Sized returns true if parts of kind k have a configurable size (number of
// inputs or bits).
//
func (k Kind) Sized() bool { return k.info().size > 0 }

// DefaultSize returns the size used by Spec for sized kinds when n <= 0. It
// returns 0 for fixed kinds.
//
func (k Kind) DefaultSize() int { return k.info().size }

// MinSize returns the minimum size of a sized kind.
//
func (k Kind) MinSize() int { return k.info().min }

// Spec returns the blueprint for kind k. n is the number of inputs of gates
// or the width of registers and counters; n <= 0 selects the default. n is
// ignored for fixed kinds.
//
func (k Kind) Spec(n int) (*gatesim.PartSpec, error) {
	i := k.info()
	if i.size == 0 {
		return i.spec(0), nil
	}
	if n <= 0 {
		n = i.size
	}
	if n < i.min {
		return nil, errors.Wrapf(gatesim.ErrInvalidComponent, "%s: size %d is less than %d", i.name, n, i.min)
	}
	return i.spec(n), nil
}

// ParseKind returns the Kind with the given name. Names are case
// insensitive.
//
func ParseKind(name string) (Kind, error) {
	k, ok := byName[strings.ToUpper(strings.TrimSpace(name))]
	if !ok {
		return 0, errors.Errorf("unknown part kind %q", name)
	}
	return k, nil
}

// Kinds returns all available kinds in declaration order.
//
func Kinds() []Kind {
	ks := make([]Kind, 0, len(kinds))
	for k := range kinds {
		ks = append(ks, k)
	}
	sort.Slice(ks, func(i, j int) bool { return ks[i] < ks[j] })
	return ks
}

// New instantiates a part of kind k named name in owner. See Kind.Spec for
// the meaning of n.
//
func New(s *gatesim.Sim, k Kind, n int, name string, owner gatesim.Circuit) (gatesim.Circuit, error) {
	p, err := k.Spec(n)
	if err != nil {
		return gatesim.NoCircuit, err
	}
	return s.Instantiate(p, name, owner)
}
