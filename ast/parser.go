// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package ast

import (
	"errors"
	"fmt"

	"github.com/creachadair/jcursor"
	"go4.org/mem"
)

// Parse parses and returns the top-level JSON values of data, which may
// contain any number of them separated by whitespace. Every value is
// completely checked. In case of error, any complete values already parsed
// are returned along with the error.
func Parse(data []byte, opts *jcursor.Options) ([]Value, error) {
	d, err := jcursor.Parse(data, opts)
	if jcursor.CodeOf(err) == jcursor.EmptyInput {
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	h := new(parseHandler)
	var vs []Value
	for !d.AtEOF() {
		c := d.Root()
		if err := jcursor.Walk(&c, h); err != nil {
			return vs, err
		}
		if len(h.stk) != 1 {
			return vs, errors.New("incomplete value")
		}
		vs = append(vs, deref(h.stk[0]))
		h.stk = h.stk[:0]
	}
	return vs, nil
}

// ParseSingle parses and returns a single JSON value from data. It is an
// error if data does not contain exactly one value.
func ParseSingle(data []byte, opts *jcursor.Options) (Value, error) {
	vs, err := Parse(data, opts)
	if err != nil {
		return nil, err
	} else if len(vs) != 1 {
		return nil, fmt.Errorf("got %d values, want 1", len(vs))
	}
	return vs[0], nil
}

// A parseHandler implements the jcursor.Handler interface to construct
// syntax trees for JSON values. Containers under construction are held on
// the stack as pointers, along with the member whose value is pending.
type parseHandler struct {
	stk []any // *Object, *Array, *Member, or a complete Value
}

func (h *parseHandler) reduce() error {
	if len(h.stk) > 1 {
		return h.reduceValue(h.pop())
	}
	return nil
}

// reduceValue attaches v to the container atop the stack, or pushes it if the
// stack is empty.
func (h *parseHandler) reduceValue(v any) error {
	if len(h.stk) == 0 {
		h.push(v)
		return nil
	}
	switch prev := h.top().(type) {
	case *Member:
		prev.Value = deref(v)
	case *Object:
		// v is a member, already in the object
	case *Array:
		*prev = append(*prev, deref(v))
	default:
		return fmt.Errorf("unexpected %T on the stack", prev)
	}
	return nil
}

// deref returns the value of a container held by pointer on the stack.
func deref(v any) Value {
	switch t := v.(type) {
	case *Object:
		return *t
	case *Array:
		return *t
	}
	return v.(Value)
}

func (h *parseHandler) top() any { return h.stk[len(h.stk)-1] }

func (h *parseHandler) pop() any {
	last := h.top()
	h.stk = h.stk[:len(h.stk)-1]
	return last
}

func (h *parseHandler) push(v any) { h.stk = append(h.stk, v) }

func (h *parseHandler) BeginObject(loc jcursor.Anchor) error {
	h.push(&Object{})
	return nil
}

func (h *parseHandler) EndObject(loc jcursor.Anchor) error { return h.reduce() }

func (h *parseHandler) BeginArray(loc jcursor.Anchor) error {
	h.push(&Array{})
	return nil
}

func (h *parseHandler) EndArray(loc jcursor.Anchor) error { return h.reduce() }

func (h *parseHandler) BeginMember(loc jcursor.Anchor) error {
	// The object this member belongs to is atop the stack. Add the new member
	// to it eagerly, so that only the member needs updating once its value is
	// known.
	key, err := jcursor.Unquote(loc.Text())
	if err != nil {
		return err
	}
	m := &Member{Key: string(key)}
	obj := h.top().(*Object)
	*obj = append(*obj, m)
	h.push(m)
	return nil
}

func (h *parseHandler) EndMember(loc jcursor.Anchor) error { return h.reduce() }

func (h *parseHandler) Value(loc jcursor.Anchor) error {
	switch loc.Token() {
	case jcursor.String:
		s, err := jcursor.Unquote(loc.Text())
		if err != nil {
			return err
		}
		return h.reduceValue(String(s))
	case jcursor.Number:
		v, err := parseNumber(mem.B(loc.Text()))
		if err != nil {
			return err
		}
		return h.reduceValue(v)
	case jcursor.True, jcursor.False:
		return h.reduceValue(Bool(loc.Token() == jcursor.True))
	case jcursor.Null:
		return h.reduceValue(Null)
	default:
		return fmt.Errorf("unknown value %v", loc.Token())
	}
}

// parseNumber converts the text of a well-formed number literal.
func parseNumber(text mem.RO) (Value, error) {
	if z, err := mem.ParseInt(text, 10, 64); err == nil {
		return Int(z), nil
	}
	if u, err := mem.ParseUint(text, 10, 64); err == nil {
		return Uint(u), nil
	}
	f, err := mem.ParseFloat(text, 64)
	if err != nil {
		return nil, &jcursor.Error{Code: jcursor.NumberOutOfRange, Offset: -1, Message: err.Error()}
	}
	return Float(f), nil
}
