// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package ast

import (
	"github.com/creachadair/jcursor"
)

// Decode consumes the value of c and returns its materialized form. It uses
// only the cursor protocol, reading each value as the type reported by Kind.
//
// A number is read as an Int if it is an integer in the range of int64, as a
// Uint if it is a larger non-negative integer, and otherwise as a Float.
// Object keys are unescaped.
func Decode(c *jcursor.Cursor) (Value, error) {
	kind, err := c.Kind()
	if err != nil {
		return nil, err
	}
	root := c.Depth() == 1
	switch kind {
	case jcursor.KindObject:
		return decodeObject(c)

	case jcursor.KindArray:
		return decodeArray(c)

	case jcursor.KindString:
		s, err := c.RequireString()
		if err != nil {
			return nil, err
		}
		return String(s), nil

	case jcursor.KindNumber:
		return decodeNumber(c, root)

	case jcursor.KindBool:
		get := c.RequireBool
		if root {
			get = c.RequireRootBool
		}
		b, err := get()
		if err != nil {
			return nil, err
		}
		return Bool(b), nil

	default: // jcursor.KindNull
		pos := c.Iter().PeekSpan().Pos
		if (root && c.IsRootNull()) || (!root && c.IsNull()) {
			return Null, nil
		}
		return nil, &jcursor.Error{Code: jcursor.IncorrectType, Offset: pos, Message: "invalid constant"}
	}
}

func decodeObject(c *jcursor.Cursor) (Value, error) {
	if _, err := c.StartObject(); err != nil {
		return nil, err
	}
	obj := Object{}
	for {
		more, err := c.HasNextField()
		if err != nil {
			return nil, err
		} else if !more {
			return obj, nil
		}
		raw, err := c.FieldKey()
		if err != nil {
			return nil, err
		}
		key, err := raw.Unescape()
		if err != nil {
			return nil, err
		}
		if err := c.FieldValue(); err != nil {
			return nil, err
		}
		child := c.ChildValue()
		v, err := Decode(&child)
		if err != nil {
			return nil, err
		}
		obj = append(obj, Field(key, v))
	}
}

func decodeArray(c *jcursor.Cursor) (Value, error) {
	if _, err := c.StartArray(); err != nil {
		return nil, err
	}
	arr := Array{}
	for {
		more, err := c.HasNextElement()
		if err != nil {
			return nil, err
		} else if !more {
			return arr, nil
		}
		child := c.ChildValue()
		v, err := Decode(&child)
		if err != nil {
			return nil, err
		}
		arr = append(arr, v)
	}
}

// decodeNumber reads a number by trying successively wider types. A failed
// read does not move the cursor, so each attempt sees the same literal.
func decodeNumber(c *jcursor.Cursor, root bool) (Value, error) {
	getInt, getUint, getFloat := c.TryGetInt64, c.TryGetUint64, c.TryGetFloat64
	if root {
		getInt, getUint, getFloat = c.TryGetRootInt64, c.TryGetRootUint64, c.TryGetRootFloat64
	}
	z, err := getInt()
	switch jcursor.CodeOf(err) {
	case jcursor.Success:
		return Int(z), nil
	case jcursor.NumberOutOfRange:
		if u, err := getUint(); err == nil {
			return Uint(u), nil
		}
	case jcursor.IncorrectType:
		// not an integer
	default:
		return nil, err
	}
	f, err := getFloat()
	if err != nil {
		return nil, err
	}
	return Float(f), nil
}

// DecodeDocument decodes the top-level value of d, and reports an error if
// any input remains after it.
func DecodeDocument(d *jcursor.Document) (Value, error) {
	root := d.Root()
	v, err := Decode(&root)
	if err != nil {
		return nil, err
	}
	if err := d.CheckEOF(); err != nil {
		return nil, err
	}
	return v, nil
}
