// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package gatesim

import (
	"reflect"
	"strings"

	"github.com/pkg/errors"
)

// Updater is the interface that primitive parts built using reflection must
// implement. See MakePart.
//
type Updater interface {
	Update(s *Sim)
}

var terminalType = reflect.TypeOf(NoTerminal)

type pinField struct {
	index int
	name  string
	input bool
	size  int // -1 for a single pin
}

// MakePart wraps an Updater into a primitive part. The part's name is the
// struct type name in upper case and its pins are identified by field tags.
//
// The field tag must be `gate:"in"` or `gate:"out"` to identify input and
// output pins. By default, the pin name is the field name in lowercase. A
// specific pin name can be forced by adding it in the tag:
// `gate:"in,pin_name"`. Pin fields must be exported and of type Terminal.
// Buses must be arrays of Terminal.
//
// Each instance of the part gets its own copy of u, with pin fields set to
// the instance's terminals, and u's Update method as its Component. Update
// should therefore have a pointer receiver. Untagged fields keep the value
// they have in u, which makes u the power-on state of the part. A nil
// pointer of the right type is fine for stateless parts:
//
//	p := MakePart((*myPart)(nil))
//
func MakePart(u Updater) *PartSpec {
	v := reflect.ValueOf(u)
	typ := v.Type()
	if typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
		if v.IsNil() {
			v = reflect.Zero(typ)
		} else {
			v = v.Elem()
		}
	}
	if k := typ.Kind(); k != reflect.Struct {
		panic(errors.Errorf("unsupported type %q for %q", k, typ.Name()))
	}

	sp := &PartSpec{
		Name: strings.ToUpper(typ.Name()),
	}
	pins := pinFields(typ)
	for _, f := range pins {
		names := []string{f.name}
		if f.size >= 0 {
			names = names[:0]
			for i := 0; i < f.size; i++ {
				names = append(names, BusPinName(f.name, i))
			}
		}
		if f.input {
			sp.Inputs = append(sp.Inputs, names...)
		} else {
			sp.Outputs = append(sp.Outputs, names...)
		}
	}

	proto := reflect.New(typ).Elem()
	proto.Set(v)
	sp.Mount = func(s *Socket) Component {
		p := reflect.New(typ)
		e := p.Elem()
		e.Set(proto)
		for _, f := range pins {
			fv := e.Field(f.index)
			if f.size < 0 {
				fv.Set(reflect.ValueOf(s.Pin(f.name)))
				continue
			}
			for i := 0; i < f.size; i++ {
				fv.Index(i).Set(reflect.ValueOf(s.Pin(BusPinName(f.name, i))))
			}
		}
		return p.Interface().(Updater).Update
	}
	return sp
}

func pinFields(typ reflect.Type) []pinField {
	var pins []pinField
	n := typ.NumField()
	for i := 0; i < n; i++ {
		f := typ.Field(i)
		tag, ok := f.Tag.Lookup("gate")
		if !ok {
			continue
		}
		pf := pinField{index: i, name: strings.ToLower(f.Name), size: -1}
		tv := strings.Split(tag, ",")
		if len(tv) > 2 {
			panic(errors.Errorf("unsupported tag %q for field %q in %q", tag, f.Name, typ.Name()))
		}
		if len(tv) == 2 && tv[1] != "" {
			pf.name = tv[1]
		}
		switch tv[0] {
		case "in":
			pf.input = true
		case "out":
		default:
			panic(errors.Errorf("unsupported tag %q for field %q in %q", tag, f.Name, typ.Name()))
		}
		if f.PkgPath != "" {
			panic(errors.Errorf("unexported pin field %q in %q", f.Name, typ.Name()))
		}

		ft := f.Type
		switch {
		case ft == terminalType:
		case ft.Kind() == reflect.Array && ft.Elem() == terminalType:
			pf.size = ft.Len()
		default:
			panic(errors.Errorf("unsupported type %q for field %q in %q", ft, f.Name, typ.Name()))
		}
		pins = append(pins, pf)
	}
	return pins
}
