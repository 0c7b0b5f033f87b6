// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package ast defines a materialized representation of JSON values, and
// functions that construct one from a jcursor document.
package ast

import (
	"fmt"
	"maps"
	"math"
	"slices"
	"strconv"

	"github.com/creachadair/jcursor"
)

// A Value is an arbitrary JSON value.
type Value interface {
	// JSON returns the compact JSON encoding of the value.
	JSON() string

	// Interface returns the value as a plain Go value: map[string]any for an
	// object, []any for an array, and string, int64, uint64, float64, bool,
	// or nil for the scalars.
	Interface() any

	appendJSON([]byte) []byte
}

// An Object is a collection of key-value members, in input order.
type Object []*Member

// Len reports the number of members in o.
func (o Object) Len() int { return len(o) }

// Find returns the first member of o with the given key, or nil.
func (o Object) Find(key string) *Member {
	for _, m := range o {
		if m.Key == key {
			return m
		}
	}
	return nil
}

func (o Object) JSON() string { return string(o.appendJSON(nil)) }

// Interface returns a map of the members of o. If o has duplicate keys, the
// last one wins.
func (o Object) Interface() any {
	m := make(map[string]any, len(o))
	for _, mem := range o {
		m[mem.Key] = mem.Value.Interface()
	}
	return m
}

func (o Object) appendJSON(buf []byte) []byte {
	buf = append(buf, '{')
	for i, m := range o {
		if i > 0 {
			buf = append(buf, ',')
		}
		buf = m.appendJSON(buf)
	}
	return append(buf, '}')
}

// A Member is a single key-value pair belonging to an Object.
type Member struct {
	Key   string
	Value Value
}

// Field constructs an object member with the given key and value.
func Field(key string, val Value) *Member { return &Member{Key: key, Value: val} }

// JSON returns the encoding of m as it appears in an object.
func (m *Member) JSON() string { return string(m.appendJSON(nil)) }

func (m *Member) appendJSON(buf []byte) []byte {
	buf = append(buf, jcursor.Quote(m.Key)...)
	buf = append(buf, ':')
	return m.Value.appendJSON(buf)
}

// An Array is a sequence of values.
type Array []Value

// Len reports the number of elements in a.
func (a Array) Len() int { return len(a) }

func (a Array) JSON() string { return string(a.appendJSON(nil)) }

func (a Array) Interface() any {
	out := make([]any, len(a))
	for i, v := range a {
		out[i] = v.Interface()
	}
	return out
}

func (a Array) appendJSON(buf []byte) []byte {
	buf = append(buf, '[')
	for i, v := range a {
		if i > 0 {
			buf = append(buf, ',')
		}
		buf = v.appendJSON(buf)
	}
	return append(buf, ']')
}

// A String is a string value, unescaped.
type String string

// Len reports the length of s in bytes.
func (s String) Len() int { return len(s) }

func (s String) JSON() string                 { return jcursor.Quote(string(s)) }
func (s String) Interface() any               { return string(s) }
func (s String) appendJSON(buf []byte) []byte { return append(buf, s.JSON()...) }

// An Int is an integer value that fits in an int64.
type Int int64

func (z Int) JSON() string                 { return strconv.FormatInt(int64(z), 10) }
func (z Int) Interface() any               { return int64(z) }
func (z Int) appendJSON(buf []byte) []byte { return strconv.AppendInt(buf, int64(z), 10) }

// A Uint is a non-negative integer value too large for an Int.
type Uint uint64

func (u Uint) JSON() string                 { return strconv.FormatUint(uint64(u), 10) }
func (u Uint) Interface() any               { return uint64(u) }
func (u Uint) appendJSON(buf []byte) []byte { return strconv.AppendUint(buf, uint64(u), 10) }

// A Float is a floating-point value.
type Float float64

func (f Float) JSON() string   { return string(f.appendJSON(nil)) }
func (f Float) Interface() any { return float64(f) }

func (f Float) appendJSON(buf []byte) []byte {
	return strconv.AppendFloat(buf, float64(f), 'g', -1, 64)
}

// A Bool is a Boolean constant, true or false.
type Bool bool

func (b Bool) JSON() string                 { return strconv.FormatBool(bool(b)) }
func (b Bool) Interface() any               { return bool(b) }
func (b Bool) appendJSON(buf []byte) []byte { return strconv.AppendBool(buf, bool(b)) }

// Null is the null constant.
var Null nullValue

type nullValue struct{}

func (nullValue) JSON() string                 { return "null" }
func (nullValue) Interface() any               { return nil }
func (nullValue) appendJSON(buf []byte) []byte { return append(buf, "null"...) }

// ToValue converts a Go value into a Value. It accepts nil, bool, string,
// the built-in integer and floating-point types, []any, map[string]any, and
// Value itself. Slices and maps are converted recursively, and map keys are
// sorted. ToValue panics if v has any other type.
func ToValue(v any) Value {
	switch t := v.(type) {
	case Value:
		return t
	case nil:
		return Null
	case bool:
		return Bool(t)
	case string:
		return String(t)
	case int:
		return Int(t)
	case int8:
		return Int(t)
	case int16:
		return Int(t)
	case int32:
		return Int(t)
	case int64:
		return Int(t)
	case uint:
		return toUint(uint64(t))
	case uint8:
		return Int(t)
	case uint16:
		return Int(t)
	case uint32:
		return Int(t)
	case uint64:
		return toUint(t)
	case float32:
		return Float(t)
	case float64:
		return Float(t)
	case []any:
		out := make(Array, len(t))
		for i, elt := range t {
			out[i] = ToValue(elt)
		}
		return out
	case map[string]any:
		out := make(Object, 0, len(t))
		for _, key := range slices.Sorted(maps.Keys(t)) {
			out = append(out, Field(key, ToValue(t[key])))
		}
		return out
	default:
		panic(fmt.Sprintf("unsupported value type %T", v))
	}
}

func toUint(u uint64) Value {
	if u <= math.MaxInt64 {
		return Int(u)
	}
	return Uint(u)
}
