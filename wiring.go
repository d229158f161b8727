package gatesim

import (
	"github.com/db47h/gatesim/internal/hdl"
	"github.com/pkg/errors"
)

// a pin is identified by the part it belongs to ("" for the host chip) and
// its name in that part's interface.
type pin struct {
	p    string
	name string
}

func (p pin) String() string {
	if p.p == "" {
		return p.name
	}
	return p.p + "." + p.name
}

type wire struct {
	from, to pin
}

// pinSet returns the pin names of the named part, or of the host chip if part
// is empty.
type pinSet func(part string) ([]string, bool)

// parseConns parses a connection string and expands bus indices, ranges and
// whole buses to individual wires.
//
func parseConns(conns string, pins pinSet) ([]wire, error) {
	var ws []wire
	p := &hdl.Parser{Input: conns}
	for {
		v, err := p.Next(true)
		if err != nil {
			return nil, err
		}
		if v == nil {
			return ws, nil
		}
		c := v.(hdl.Connection)
		from, err := expandPin(c.From, pins)
		if err != nil {
			return nil, err
		}
		to, err := expandPin(c.To, pins)
		if err != nil {
			return nil, err
		}
		switch {
		case len(from) == len(to):
			// many to many
			for i := range from {
				ws = append(ws, wire{from[i], to[i]})
			}
		case len(from) == 1:
			// one to many
			for _, t := range to {
				ws = append(ws, wire{from[0], t})
			}
		default:
			return nil, errors.Errorf("pin count mismatch in connection %s[%d] -> %s[%d]",
				from[0].String(), len(from), to[0].String(), len(to))
		}
	}
}

func expandPin(v interface{}, pins pinSet) ([]pin, error) {
	var (
		hp         hdl.Pin
		start, end int
	)
	switch v := v.(type) {
	case hdl.Pin:
		hp, start, end = v, -1, -1
	case hdl.PinIndex:
		hp, start, end = v.Pin, v.Index, v.Index
	case hdl.PinRange:
		hp, start, end = v.Pin, v.Start, v.End
		if end < start {
			return nil, errors.Errorf("invalid bus range %s[%d..%d]", hp.Name, start, end)
		}
	}
	names, ok := pins(hp.Part)
	if !ok {
		return nil, errors.New("unknown part " + hp.Part)
	}
	has := func(n string) bool {
		for _, x := range names {
			if x == n {
				return true
			}
		}
		return false
	}
	if start < 0 {
		if has(hp.Name) {
			return []pin{{hp.Part, hp.Name}}, nil
		}
		// whole bus
		var r []pin
		for i := 0; has(BusPinName(hp.Name, i)); i++ {
			r = append(r, pin{hp.Part, BusPinName(hp.Name, i)})
		}
		if len(r) == 0 {
			return nil, invalidPin(hp)
		}
		return r, nil
	}
	r := make([]pin, 0, end-start+1)
	for i := start; i <= end; i++ {
		n := BusPinName(hp.Name, i)
		if !has(n) {
			return nil, invalidPin(hdl.Pin{Part: hp.Part, Name: n})
		}
		r = append(r, pin{hp.Part, n})
	}
	return r, nil
}

func invalidPin(p hdl.Pin) error {
	if p.Part == "" {
		return errors.New("invalid pin name " + p.Name)
	}
	return errors.New("invalid pin name " + p.Name + " for part " + p.Part)
}
