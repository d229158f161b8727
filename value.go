package gatesim

import (
	"strings"

	"github.com/pkg/errors"
)

// Value is the tri-state value of a terminal.
//
// The zero value is Unknown: terminals that have never been driven, or whose
// driver has been disconnected, read as Unknown.
//
type Value uint8

// Terminal values.
const (
	Unknown Value = iota
	Low
	High
)

// Bool converts b to Low or High.
//
func Bool(b bool) Value {
	if b {
		return High
	}
	return Low
}

// Not returns the logical negation of v. The negation of Unknown is Unknown.
//
func (v Value) Not() Value {
	switch v {
	case Low:
		return High
	case High:
		return Low
	}
	return Unknown
}

// Known returns true if v is either Low or High.
//
func (v Value) Known() bool { return v == Low || v == High }

func (v Value) String() string {
	switch v {
	case Low:
		return "0"
	case High:
		return "1"
	}
	return "X"
}

// ParseValue parses a value name: 0, 1, x, low, high, unknown, false or true
// (case insensitive).
//
func ParseValue(s string) (Value, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "0", "low", "false":
		return Low, nil
	case "1", "high", "true":
		return High, nil
	case "x", "unknown", "":
		return Unknown, nil
	}
	return Unknown, errors.Errorf("invalid value %q", s)
}
