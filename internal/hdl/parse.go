// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package hdl parses the small languages used to declare circuit pins and
// connections:
//
//	a, b, in[4]                         // pin declarations
//	a -> xor.in[0], xor.out -> s        // connections
//	d[0..3] -> reg.d[0..3]              // bus ranges
//
package hdl

import (
	"github.com/pkg/errors"
)

// Pin is a simple pin name, optionally qualified by the name of the part
// it belongs to.
//
type Pin struct {
	Part string
	Name string
	Pos  Pos
}

// PinIndex is an indexed pin p[index]. In pin declarations, the index is
// the size of the bus.
//
type PinIndex struct {
	Pin
	Index int
}

// PinRange is a pin range p[start..end]
//
type PinRange struct {
	Pin
	Start int
	End   int
}

// Connection is a source to destination pin connection. src->dst
//
type Connection struct {
	From interface{}
	To   interface{}
}

// Parser is a simplistic parser
//
type Parser struct {
	Input string
	l     *Lexer
	i     Item
	state int
}

const (
	stateDone = -1
	stateInit = iota
	stateStarted
)

// Next returns the next item in the input stream.
// With conns == false it only recognizes pin names followed by an optional
// index or range and separated by commas. With conns == true, it expects
// qualified pins as connections: src -> dst.
//
// Next returns nil, nil once the input is exhausted.
//
func (p *Parser) Next(conns bool) (interface{}, error) {
	if p.state == stateDone {
		return nil, nil
	}
	if p.l == nil {
		p.l = NewLexer(p.Input)
	}

	p.i = p.l.Lex()
	if p.state == stateInit && p.i.Type == EOF {
		p.state = stateDone
		return nil, nil
	}
	p.state = stateStarted

	pin, err := p.getPin(conns)
	if err != nil {
		p.state = stateDone
		return nil, err
	}
	if !conns {
		return p.end(pin)
	}

	if p.i.Type != Arrow {
		p.state = stateDone
		return nil, parseError(p.Input, p.i.Pos, "expected '->', got "+p.i.String())
	}
	p.i = p.l.Lex()
	pin2, err := p.getPin(true)
	if err != nil {
		p.state = stateDone
		return nil, err
	}
	return p.end(Connection{pin, pin2})
}

func (p *Parser) end(v interface{}) (interface{}, error) {
	switch p.i.Type {
	case EOF:
		p.state = stateDone
		fallthrough
	case Comma:
		return v, nil
	}
	p.state = stateDone
	return nil, parseError(p.Input, p.i.Pos, "unexpected "+p.i.String())
}

func (p *Parser) getPin(qualified bool) (interface{}, error) {
	if p.i.Type != Ident {
		return nil, parseError(p.Input, p.i.Pos, "expected pin name")
	}
	pin := Pin{Name: p.i.Value.(string), Pos: p.i.Pos}
	p.i = p.l.Lex()
	if p.i.Type == Dot {
		if !qualified {
			return nil, parseError(p.Input, p.i.Pos, "unexpected '.' in pin name")
		}
		p.i = p.l.Lex()
		if p.i.Type != Ident {
			return nil, parseError(p.Input, p.i.Pos, "expected pin name after '.'")
		}
		pin.Part, pin.Name = pin.Name, p.i.Value.(string)
		p.i = p.l.Lex()
	}
	if p.i.Type != BracketOpen {
		return pin, nil
	}
	p.i = p.l.Lex()
	if p.i.Type != Int {
		return nil, parseError(p.Input, p.i.Pos, "integer value expected after '['")
	}
	start := p.i.Value.(int)
	end := -1
	p.i = p.l.Lex()
	if p.i.Type == Range {
		p.i = p.l.Lex()
		if p.i.Type != Int {
			return nil, parseError(p.Input, p.i.Pos, "integer value expected after '..'")
		}
		end = p.i.Value.(int)
		p.i = p.l.Lex()
	}
	if p.i.Type != BracketClose {
		return nil, parseError(p.Input, p.i.Pos, "closing ']' expected after index or range")
	}
	p.i = p.l.Lex()
	if end >= 0 {
		return PinRange{pin, start, end}, nil
	}
	return PinIndex{pin, start}, nil
}

func parseError(in string, pos Pos, msg string) error {
	return errors.Errorf("in %q at pos %d: %s", in, pos+1, msg)
}
