// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package jcursor

import (
	"github.com/creachadair/jcursor/internal/escape"

	"go4.org/mem"
)

// Scalar reads come in pairs. The TryGet methods check that the value has the
// requested type, and report IncorrectType without moving the cursor if it
// does not, so the caller may try again with another type. The Require
// methods assume the caller already knows the type, and skip the check of
// the token kind; the literal is still decoded from its text, and invalid
// text is reported as an error.
//
// No scalar read moves the cursor unless it succeeds. A successful read
// consumes the value, and the cursor is no longer open.
//
// The Root variants are for a scalar at the top level of a document. The
// end of a nested literal is fixed by the delimiter that follows it; at the
// top level there is none, so the Root variants also require that the
// literal be followed by whitespace or the end of the input.

// TryGetString reads a string value and returns its decoded contents.
func (c *Cursor) TryGetString() (string, error) { return c.getString(true) }

// RequireString reads a string value the caller knows to be a string.
func (c *Cursor) RequireString() (string, error) { return c.getString(false) }

// TryGetRawString reads a string value and returns its raw contents, with
// escapes not decoded. The result is a view of the input.
func (c *Cursor) TryGetRawString() (RawString, error) { return c.getRawString(true) }

// RequireRawString reads the raw contents of a value the caller knows to be
// a string.
func (c *Cursor) RequireRawString() (RawString, error) { return c.getRawString(false) }

// TryGetUint64 reads a number that is a non-negative integer representable
// as a uint64. A negative or non-integer number reports IncorrectType, and an
// integer too large for uint64 reports NumberOutOfRange.
func (c *Cursor) TryGetUint64() (uint64, error) { return c.getUint64(true, false) }

// RequireUint64 is as TryGetUint64, for a value known to be a number.
func (c *Cursor) RequireUint64() (uint64, error) { return c.getUint64(false, false) }

// TryGetRootUint64 is as TryGetUint64, for a value at the top level.
func (c *Cursor) TryGetRootUint64() (uint64, error) { return c.getUint64(true, true) }

// RequireRootUint64 is as RequireUint64, for a value at the top level.
func (c *Cursor) RequireRootUint64() (uint64, error) { return c.getUint64(false, true) }

// TryGetInt64 reads a number that is an integer representable as an int64.
// A non-integer number reports IncorrectType, and an integer out of range
// reports NumberOutOfRange.
func (c *Cursor) TryGetInt64() (int64, error) { return c.getInt64(true, false) }

// RequireInt64 is as TryGetInt64, for a value known to be a number.
func (c *Cursor) RequireInt64() (int64, error) { return c.getInt64(false, false) }

// TryGetRootInt64 is as TryGetInt64, for a value at the top level.
func (c *Cursor) TryGetRootInt64() (int64, error) { return c.getInt64(true, true) }

// RequireRootInt64 is as RequireInt64, for a value at the top level.
func (c *Cursor) RequireRootInt64() (int64, error) { return c.getInt64(false, true) }

// TryGetFloat64 reads any number as a float64. A number whose magnitude is
// too large for float64 reports NumberOutOfRange.
func (c *Cursor) TryGetFloat64() (float64, error) { return c.getFloat64(true, false) }

// RequireFloat64 is as TryGetFloat64, for a value known to be a number.
func (c *Cursor) RequireFloat64() (float64, error) { return c.getFloat64(false, false) }

// TryGetRootFloat64 is as TryGetFloat64, for a value at the top level.
func (c *Cursor) TryGetRootFloat64() (float64, error) { return c.getFloat64(true, true) }

// RequireRootFloat64 is as RequireFloat64, for a value at the top level.
func (c *Cursor) RequireRootFloat64() (float64, error) { return c.getFloat64(false, true) }

// TryGetBool reads a true or false value.
func (c *Cursor) TryGetBool() (bool, error) { return c.getBool(true, false) }

// RequireBool is as TryGetBool, for a value known to be a Boolean.
func (c *Cursor) RequireBool() (bool, error) { return c.getBool(false, false) }

// TryGetRootBool is as TryGetBool, for a value at the top level.
func (c *Cursor) TryGetRootBool() (bool, error) { return c.getBool(true, true) }

// RequireRootBool is as RequireBool, for a value at the top level.
func (c *Cursor) RequireRootBool() (bool, error) { return c.getBool(false, true) }

// IsNull reports whether the value is null, and if so consumes it.
// It reports false if the value is not null, or if c is not at the start of
// its value.
func (c *Cursor) IsNull() bool { return c.getNull(true, false) }

// RequireNull is as IsNull, for a value known to be null.
func (c *Cursor) RequireNull() bool { return c.getNull(false, false) }

// IsRootNull is as IsNull, for a value at the top level.
func (c *Cursor) IsRootNull() bool { return c.getNull(true, true) }

// RequireRootNull is as RequireNull, for a value at the top level.
func (c *Cursor) RequireRootNull() bool { return c.getNull(false, true) }

// scalar checks that c is at the start of its value, and returns the current
// token, its span, and the remainder of the input from its first byte.
func (c *Cursor) scalar() (Token, Span, []byte, error) {
	if err := c.checkValue(); err != nil {
		return Invalid, Span{}, nil, err
	}
	sp := c.it.PeekSpan()
	return c.it.Peek(), sp, c.it.idx.data[sp.Pos:], nil
}

// consume advances past the scalar token of c and closes it.
func (c *Cursor) consume() {
	c.it.Advance()
	c.state = stateClosed
}

// boundary reports whether rest, the input following a literal, begins at a
// legal end for that literal.
func (c *Cursor) boundary(rest []byte, root bool) bool {
	if len(rest) == 0 {
		return true
	}
	switch ch := rest[0]; {
	case isSpace(ch):
		return true
	case ch == '/':
		return c.it.idx.comments
	default:
		return !root && isDelim(ch)
	}
}

func (c *Cursor) stringSpan(check bool) (Span, error) {
	tok, sp, _, err := c.scalar()
	if err != nil {
		return sp, err
	}
	if check && tok != String {
		return sp, c.typeError(tok, "string")
	}
	text := c.it.Text(sp)
	if len(text) < 2 || text[0] != '"' || text[len(text)-1] != '"' {
		return sp, errorf(StringError, sp.Pos, "invalid string %q", text)
	}
	return Span{Pos: sp.Pos + 1, End: sp.End - 1}, nil
}

func (c *Cursor) getString(check bool) (string, error) {
	sp, err := c.stringSpan(check)
	if err != nil {
		return "", err
	}
	dec, err := escape.Unquote(mem.B(c.it.Text(sp)))
	if err != nil {
		return "", stringError(err, sp.Pos)
	}
	c.consume()
	return string(dec), nil
}

func (c *Cursor) getRawString(check bool) (RawString, error) {
	sp, err := c.stringSpan(check)
	if err != nil {
		return nil, err
	}
	c.consume()
	return RawString(c.it.Text(sp)), nil
}

// A numLit is the result of checking the grammar of a number literal.
type numLit struct {
	text    []byte // the literal
	pos     int    // offset of the literal in the input
	integer bool   // no fraction or exponent
	neg     bool   // leading minus sign
}

// number checks the grammar of the number at the start of c's value.
func (c *Cursor) number(check, root bool) (numLit, error) {
	tok, sp, rest, err := c.scalar()
	if err != nil {
		return numLit{}, err
	}
	if check && tok != Number {
		return numLit{}, c.typeError(tok, "number")
	}
	lit, ok := scanNumber(rest)
	if !ok || !c.boundary(rest[len(lit.text):], root) {
		return numLit{}, errorf(NumberError, sp.Pos, "invalid number %q", c.it.Text(sp))
	}
	lit.pos = sp.Pos
	return lit, nil
}

// scanNumber matches the longest prefix of data that is a number literal,
// and reports whether there is one.
func scanNumber(data []byte) (numLit, bool) {
	lit := numLit{integer: true}
	i := 0
	digits := func() int {
		start := i
		for i < len(data) && isDigit(data[i]) {
			i++
		}
		return i - start
	}
	if i < len(data) && data[i] == '-' {
		lit.neg = true
		i++
	}
	if i < len(data) && data[i] == '0' {
		i++ // a leading zero stands alone
	} else if digits() == 0 {
		return lit, false
	}
	if i < len(data) && data[i] == '.' {
		i++
		lit.integer = false
		if digits() == 0 {
			return lit, false
		}
	}
	if i < len(data) && (data[i] == 'e' || data[i] == 'E') {
		i++
		lit.integer = false
		if i < len(data) && (data[i] == '+' || data[i] == '-') {
			i++
		}
		if digits() == 0 {
			return lit, false
		}
	}
	lit.text = data[:i]
	return lit, true
}

func (c *Cursor) getUint64(check, root bool) (uint64, error) {
	lit, err := c.number(check, root)
	if err != nil {
		return 0, err
	}
	if lit.neg || !lit.integer {
		return 0, errorf(IncorrectType, lit.pos, "number %s is not an unsigned integer", lit.text)
	}
	v, err := mem.ParseUint(mem.B(lit.text), 10, 64)
	if err != nil {
		return 0, errorf(NumberOutOfRange, lit.pos, "number %s does not fit in uint64", lit.text)
	}
	c.consume()
	return v, nil
}

func (c *Cursor) getInt64(check, root bool) (int64, error) {
	lit, err := c.number(check, root)
	if err != nil {
		return 0, err
	}
	if !lit.integer {
		return 0, errorf(IncorrectType, lit.pos, "number %s is not an integer", lit.text)
	}
	v, err := mem.ParseInt(mem.B(lit.text), 10, 64)
	if err != nil {
		return 0, errorf(NumberOutOfRange, lit.pos, "number %s does not fit in int64", lit.text)
	}
	c.consume()
	return v, nil
}

func (c *Cursor) getFloat64(check, root bool) (float64, error) {
	lit, err := c.number(check, root)
	if err != nil {
		return 0, err
	}
	v, err := mem.ParseFloat(mem.B(lit.text), 64)
	if err != nil {
		return 0, errorf(NumberOutOfRange, lit.pos, "number %s does not fit in float64", lit.text)
	}
	c.consume()
	return v, nil
}

// literal reports whether the value of c is the constant word, followed by
// a legal boundary.
func (c *Cursor) literal(word string, rest []byte, root bool) bool {
	return mem.HasPrefix(mem.B(rest), mem.S(word)) && c.boundary(rest[len(word):], root)
}

func (c *Cursor) getBool(check, root bool) (bool, error) {
	tok, sp, rest, err := c.scalar()
	if err != nil {
		return false, err
	}
	if check && tok != True && tok != False {
		return false, c.typeError(tok, "true or false")
	}
	switch {
	case c.literal("true", rest, root):
		c.consume()
		return true, nil
	case c.literal("false", rest, root):
		c.consume()
		return false, nil
	}
	return false, errorf(IncorrectType, sp.Pos, "invalid constant %q", c.it.Text(sp))
}

func (c *Cursor) getNull(check, root bool) bool {
	tok, _, rest, err := c.scalar()
	if err != nil || (check && tok != Null) {
		return false
	}
	if !c.literal("null", rest, root) {
		return false
	}
	c.consume()
	return true
}
