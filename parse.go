package gatesim

import (
	"strconv"

	"github.com/db47h/gatesim/internal/hdl"
	"github.com/pkg/errors"
)

// BusPinName returns the name of the i-th pin of a bus, e.g. "in[3]".
//
func BusPinName(bus string, i int) string {
	return bus + "[" + strconv.Itoa(i) + "]"
}

// ParseIO parses the pin specification string and returns individual pin
// names in a slice, also expanding bus declarations to individual pin names.
// For example:
//
//	ParseIO("in[2], sel") // returns []string{"in[0]", "in[1]", "sel"}
//
func ParseIO(names string) ([]string, error) {
	var out []string
	p := &hdl.Parser{Input: names}
	for {
		v, err := p.Next(false)
		if err != nil {
			return nil, err
		}
		switch v := v.(type) {
		case nil:
			return out, nil
		case hdl.Pin:
			out = append(out, v.Name)
		case hdl.PinIndex:
			if v.Index <= 0 {
				return nil, errors.Errorf("in %q at pos %d: invalid bus size %d", names, v.Pos+1, v.Index)
			}
			for i := 0; i < v.Index; i++ {
				out = append(out, BusPinName(v.Name, i))
			}
		default:
			return nil, errors.Errorf("in %q: pin ranges are not allowed in pin declarations", names)
		}
	}
}

// IO is like ParseIO but panics on error. It is intended for package level
// blueprint declarations.
//
func IO(names string) []string {
	out, err := ParseIO(names)
	if err != nil {
		panic(err)
	}
	return out
}
