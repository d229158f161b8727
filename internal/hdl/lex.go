// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hdl

import (
	"strconv"
	"unicode"
	"unicode/utf8"
)

// Type is the type of a lexical item.
//
type Type int

// Tokens
const (
	EOF Type = iota
	Raw
	Ident
	BracketOpen
	BracketClose
	Comma
	Int
	Range
	Dot
	Arrow
)

var typeNames = [...]string{
	EOF:          "end of input",
	Raw:          "character",
	Ident:        "identifier",
	BracketOpen:  "'['",
	BracketClose: "']'",
	Comma:        "','",
	Int:          "integer",
	Range:        "'..'",
	Dot:          "'.'",
	Arrow:        "'->'",
}

func (t Type) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return "token(" + strconv.Itoa(int(t)) + ")"
	}
	return typeNames[t]
}

// Pos is a byte offset in the input.
//
type Pos int

// Item is a lexical item.
//
type Item struct {
	Type  Type
	Pos   Pos
	Value interface{} // string for Ident and Raw, int for Int
}

func (i Item) String() string {
	switch i.Type {
	case Ident:
		return "identifier " + strconv.Quote(i.Value.(string))
	case Int:
		return "integer " + strconv.Itoa(i.Value.(int))
	case Raw:
		return "character " + strconv.QuoteRune(i.Value.(rune))
	}
	return i.Type.String()
}

// Lexer splits pin specifications and connection strings into items.
//
type Lexer struct {
	input string
	pos   int
}

// NewLexer returns a new lexer for i/o specs and connection descriptions.
//
func NewLexer(input string) *Lexer {
	return &Lexer{input: input}
}

func (l *Lexer) next() (rune, int) {
	if l.pos >= len(l.input) {
		return -1, 0
	}
	r, w := utf8.DecodeRuneInString(l.input[l.pos:])
	return r, w
}

// Lex returns the next item. Once the end of input has been reached, Lex
// only returns EOF items.
//
func (l *Lexer) Lex() Item {
	r, w := l.next()
	for unicode.IsSpace(r) {
		l.pos += w
		r, w = l.next()
	}
	start := l.pos
	switch {
	case r < 0:
		return Item{EOF, Pos(start), nil}
	case unicode.IsLetter(r) || r == '_':
		return l.lexIdent()
	case '0' <= r && r <= '9':
		return l.lexNumber()
	}
	l.pos += w
	switch r {
	case '[':
		return Item{BracketOpen, Pos(start), nil}
	case ']':
		return Item{BracketClose, Pos(start), nil}
	case ',':
		return Item{Comma, Pos(start), nil}
	case '.':
		if n, _ := l.next(); n == '.' {
			l.pos++
			return Item{Range, Pos(start), nil}
		}
		return Item{Dot, Pos(start), nil}
	case '-':
		if n, _ := l.next(); n == '>' {
			l.pos++
			return Item{Arrow, Pos(start), nil}
		}
	}
	// stop there
	l.pos = len(l.input)
	return Item{Raw, Pos(start), r}
}

func (l *Lexer) lexNumber() Item {
	start := l.pos
	i := 0
	for l.pos < len(l.input) && '0' <= l.input[l.pos] && l.input[l.pos] <= '9' {
		i = i*10 + int(l.input[l.pos]-'0')
		l.pos++
	}
	return Item{Int, Pos(start), i}
}

func (l *Lexer) lexIdent() Item {
	start := l.pos
	for {
		r, w := l.next()
		if !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_') {
			break
		}
		l.pos += w
	}
	return Item{Ident, Pos(start), l.input[start:l.pos]}
}
