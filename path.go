// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package jcursor

import (
	"fmt"
	"strconv"
	"strings"
)

// A Kind is the JSON type of a value.
type Kind byte

// Constants defining the valid Kind values.
const (
	KindInvalid Kind = iota
	KindObject
	KindArray
	KindString
	KindNumber
	KindBool
	KindNull
)

var kindStr = [...]string{
	KindInvalid: "invalid",
	KindObject:  "object",
	KindArray:   "array",
	KindString:  "string",
	KindNumber:  "number",
	KindBool:    "bool",
	KindNull:    "null",
}

func (k Kind) String() string {
	if int(k) < len(kindStr) {
		return kindStr[k]
	}
	return kindStr[KindInvalid]
}

// Kind reports the type of the value of c, judged by its first token,
// without consuming anything. The value is not otherwise checked: a Number
// may still fail to parse, for example.
//
// If the value does not begin with a token that can start a value, Kind
// reports TapeError, which is terminal.
func (c *Cursor) Kind() (Kind, error) {
	if err := c.checkValue(); err != nil {
		return KindInvalid, err
	}
	switch tok := c.it.Peek(); tok {
	case LBrace:
		return KindObject, nil
	case LSquare:
		return KindArray, nil
	case String:
		return KindString, nil
	case Number:
		return KindNumber, nil
	case True, False:
		return KindBool, nil
	case Null:
		return KindNull, nil
	default:
		return KindInvalid, c.fail(errorf(TapeError, c.it.PeekSpan().Pos, "expected value, got %v", tok))
	}
}

// RawJSON consumes the value of c, as Skip, and returns the text of the input
// that it spans. The result is a view of the input. As with Skip, the
// contents of the value are not checked.
func (c *Cursor) RawJSON() ([]byte, error) {
	if err := c.checkValue(); err != nil {
		return nil, err
	}
	start := c.it.PeekSpan().Pos
	if err := c.Skip(); err != nil {
		return nil, err
	}
	return c.it.idx.data[start:c.it.last], nil
}

// Path descends from the value of c along a sequence of path elements, and
// returns a cursor for the value it reaches. Each element must be either a
// string, which selects the member of an object with that raw key, or a
// non-negative int, which selects the element of an array at that offset.
// With no elements, Path returns c itself.
//
// Traversal is forward-only. A string element is resolved with FindFieldRaw,
// and an int element counts from the next element not yet visited. The
// cursors of the intermediate containers are discarded, so the enclosing
// values cannot be traversed further once Path returns.
//
// If an element is not found, Path reports an error with code NotFound. The
// first element is applied to c itself, so c is modified.
func (c *Cursor) Path(path ...any) (Cursor, error) {
	cur := c
	for _, elt := range path {
		var next Cursor
		var err error
		switch t := elt.(type) {
		case string:
			next, err = cur.member(t)
		case int:
			next, err = cur.element(t)
		default:
			return Cursor{}, fmt.Errorf("invalid path element %T", elt)
		}
		if err != nil {
			return Cursor{}, err
		}
		cur = &next
	}
	return *cur, nil
}

func (c *Cursor) member(key string) (Cursor, error) {
	ok, err := c.FindFieldRaw(key)
	if err != nil {
		return Cursor{}, err
	} else if !ok {
		return Cursor{}, errorf(NotFound, c.it.last, "key %q not found", key)
	}
	return c.ChildValue(), nil
}

func (c *Cursor) element(n int) (Cursor, error) {
	if n < 0 {
		return Cursor{}, errorf(NotFound, -1, "negative array offset %d", n)
	}
	if c.state == stateValue {
		if _, err := c.StartArray(); err != nil {
			return Cursor{}, err
		}
	}
	for i := 0; ; i++ {
		more, err := c.HasNextElement()
		if err != nil {
			return Cursor{}, err
		} else if !more {
			return Cursor{}, errorf(NotFound, c.it.last, "array offset %d out of bounds (n=%d)", n, i)
		}
		elt := c.ChildValue()
		if i == n {
			return elt, nil
		}
		if err := elt.Skip(); err != nil {
			return Cursor{}, err
		}
	}
}

var unescapePointer = strings.NewReplacer("~1", "/", "~0", "~")

// AtPointer descends from the value of c along the RFC 6901 JSON Pointer ptr,
// and returns a cursor for the value it reaches. The empty pointer refers to
// the value of c itself.
//
// Reference tokens are matched against object keys byte for byte, after
// replacing "~1" with "/" and "~0" with "~". A reference token applied to an
// array must be a decimal offset without leading zeroes. The "-" token, which
// names the position after the last element, never refers to a value and is
// reported as NotFound. As with Path, descent is forward-only and modifies c.
func (c *Cursor) AtPointer(ptr string) (Cursor, error) {
	if ptr == "" {
		return *c, nil
	} else if !strings.HasPrefix(ptr, "/") {
		return Cursor{}, fmt.Errorf("invalid JSON pointer %q", ptr)
	}
	cur := c
	for _, ref := range strings.Split(ptr[1:], "/") {
		kind, err := cur.Kind()
		if err != nil {
			return Cursor{}, err
		}
		var next Cursor
		switch kind {
		case KindObject:
			next, err = cur.member(unescapePointer.Replace(ref))
		case KindArray:
			n, ok := parseOffset(ref)
			if !ok {
				return Cursor{}, errorf(NotFound, c.it.PeekSpan().Pos, "invalid array offset %q", ref)
			}
			next, err = cur.element(n)
		default:
			return Cursor{}, errorf(NotFound, c.it.PeekSpan().Pos, "cannot select %q from %v", ref, kind)
		}
		if err != nil {
			return Cursor{}, err
		}
		cur = &next
	}
	return *cur, nil
}

// parseOffset parses a pointer reference token as an array offset.
func parseOffset(ref string) (int, bool) {
	if ref == "" || (len(ref) > 1 && ref[0] == '0') {
		return 0, false
	}
	for i := 0; i < len(ref); i++ {
		if !isDigit(ref[i]) {
			return 0, false
		}
	}
	n, err := strconv.Atoi(ref)
	return n, err == nil
}
