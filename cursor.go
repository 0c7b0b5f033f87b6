// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package jcursor

import "go4.org/mem"

// state is the position of a Cursor in the traversal of its value.
type state byte

const (
	stateInvalid state = iota // zero Cursor, not usable
	stateValue                // at the start of the value, type unknown
	stateObject               // object started, at the first key or "}"
	stateArray                // array started, at the first element or "]"
	stateKey                  // at an object key
	stateColon                // key consumed, at ":"
	stateChild                // at a member value or array element
	stateClosed               // value completely consumed
	stateFailed               // an error made the cursor unusable
)

// A Cursor traverses a single JSON value at a fixed depth of a token stream.
// A Cursor does not know the type of its value: it provides methods for
// objects, arrays, and scalars, and the caller chooses which to call. Only
// as much of the value is checked as the methods called require.
//
// A Cursor is a small value that may be copied freely, but all the cursors
// derived from one Iter share its position, so only one of them may be
// active at a time:
//
//   - Once a child cursor has been produced by ChildValue, its parent must
//     not be used again until the child value is completely consumed.
//   - Traversal is forward-only. Once a field or element has been passed,
//     cursors for its value are no longer valid.
//
// A cursor checks at every call that the stream is where it expects, and
// reports an error with code OutOfOrder if it is not. After an error with
// a terminal code (see Code.Terminal), every cursor on the same stream
// reports that error.
type Cursor struct {
	it    *Iter
	depth int
	start int    // token index of the start of the value
	pos   int    // token index expected in the current state
	gen   uint64 // generation mark of the last container transition
	cont  Token  // LBrace or LSquare once an object or array is started
	state state
	err   error // for stateFailed
}

// NewCursor returns a cursor for the document value at the current position
// of it. This is equivalent to calling StartDocument on a zero Cursor
// bound to it.
func NewCursor(it *Iter) Cursor {
	c := Cursor{it: it}
	c.StartDocument()
	return c
}

// StartDocument resets c to traverse the top-level value beginning at the
// current position of its stream, at depth 1.
func (c *Cursor) StartDocument() {
	c.depth = 1
	c.start = c.it.Pos()
	c.pos = c.start
	c.gen = 0
	c.cont = Invalid
	c.state = stateValue
	c.err = nil
}

// Depth reports the depth of the value traversed by c. The top-level value
// of a document is at depth 1.
func (c *Cursor) Depth() int { return c.depth }

// Iter returns the token stream traversed by c.
func (c *Cursor) Iter() *Iter { return c.it }

// AtEOF reports whether the whole input has been consumed. This is true only
// at the end of the document, not at the end of a nested value.
func (c *Cursor) AtEOF() bool { return c.it != nil && c.it.AtEOF() }

// IsOpen reports whether the value of c has not yet been completely consumed
// by a scalar read, Skip, or reaching the end of its object or array.
// A cursor that has failed is not open.
func (c *Cursor) IsOpen() bool {
	switch c.state {
	case stateInvalid, stateClosed, stateFailed:
		return false
	}
	return true
}

// StartObject checks for an open brace at the start of the value, and begins
// iterating the members of the object. It reports whether the object has
// any members; if not, the object is consumed and c is closed.
//
// If the value is not an object, StartObject reports an error with code
// IncorrectType and does not move the cursor.
func (c *Cursor) StartObject() (bool, error) { return c.startContainer(LBrace) }

// TryStartObject is as StartObject. It is safe to call speculatively: if the
// value is not an object, nothing is consumed, and the caller may try to read
// the value as another type.
func (c *Cursor) TryStartObject() (bool, error) { return c.startContainer(LBrace) }

// StartedObject begins iterating the members of an object whose open brace
// the caller has already consumed from the stream. It reports whether the
// object has any members. It does not move the stream: for an empty object
// the close brace is consumed by the next call to HasNextField.
//
// If the stream is not just past the open brace of this value, StartedObject
// returns false and c reports OutOfOrder from then on.
func (c *Cursor) StartedObject() bool { return c.startedContainer(LBrace) }

// StartArray checks for an open bracket at the start of the value, and begins
// iterating the elements of the array. It reports whether the array has any
// elements; if not, the array is consumed and c is closed.
//
// If the value is not an array, StartArray reports an error with code
// IncorrectType and does not move the cursor.
func (c *Cursor) StartArray() (bool, error) { return c.startContainer(LSquare) }

// TryStartArray is as StartArray. It is safe to call speculatively: if the
// value is not an array, nothing is consumed.
func (c *Cursor) TryStartArray() (bool, error) { return c.startContainer(LSquare) }

// StartedArray begins iterating the elements of an array whose open bracket
// the caller has already consumed from the stream. It reports whether the
// array has any elements. It does not move the stream.
func (c *Cursor) StartedArray() bool { return c.startedContainer(LSquare) }

func (c *Cursor) startContainer(open Token) (bool, error) {
	if err := c.checkValue(); err != nil {
		return false, err
	}
	if tok := c.it.Peek(); tok != open {
		return false, c.typeError(tok, open.String())
	}
	c.it.Advance()
	return c.begin(open == LBrace, true), nil
}

func (c *Cursor) startedContainer(open Token) bool {
	ok := c.state == stateValue &&
		c.it.err == nil &&
		c.it.Pos() == c.start+1 &&
		c.it.Depth() == c.depth+1 &&
		c.it.openAt(c.depth) == c.start &&
		c.it.idx.Token(c.start) == open
	if !ok {
		if c.state != stateInvalid && c.state != stateFailed {
			err := c.it.err
			if err == nil {
				err = c.outOfOrder("%v was not just consumed", open)
			}
			c.state, c.err = stateFailed, err
		}
		return false
	}
	return c.begin(open == LBrace, false)
}

// begin sets up iteration of a container whose opening delimiter has been
// consumed, and reports whether the container is non-empty. If consume is
// true, the closing delimiter of an empty container is consumed.
func (c *Cursor) begin(obj, consume bool) bool {
	c.cont = containerOf(obj)
	closer := RSquare
	if obj {
		closer = RBrace
	}
	if c.it.Peek() == closer && consume {
		c.it.Advance()
		c.state = stateClosed
		return false
	}
	if obj {
		c.transition(stateObject)
	} else {
		c.transition(stateArray)
	}
	return c.it.Peek() != closer
}

// HasNextField advances to the next member of an object, and reports whether
// there is one. Immediately after the object is started, it reports the first
// member without consuming anything. After a member value, it consumes a
// comma and reports true, or consumes the close brace and reports false.
// Once the object is closed, HasNextField reports false.
//
// If the member value has not been consumed, HasNextField reports
// OutOfOrder. If neither a comma nor a close brace follows the member value,
// it reports MissingComma, which is terminal.
func (c *Cursor) HasNextField() (bool, error) { return c.hasNext(true) }

// HasNextElement advances to the next element of an array, and reports
// whether there is one. It behaves as HasNextField, with brackets.
func (c *Cursor) HasNextElement() (bool, error) { return c.hasNext(false) }

func (c *Cursor) hasNext(obj bool) (bool, error) {
	if c.state == stateClosed && c.cont == containerOf(obj) {
		return false, nil
	}
	if err := c.checkContainer(obj); err != nil {
		return false, err
	}
	closer := RSquare
	if obj {
		closer = RBrace
	}
	switch c.state {
	case stateObject, stateArray:
		if c.it.Peek() == closer {
			c.it.Advance()
			c.state = stateClosed
			return false, nil
		}
		if obj {
			c.transition(stateKey)
		} else {
			c.transition(stateChild)
		}
		return true, nil

	case stateChild:
		if c.it.Pos() == c.pos {
			return false, c.outOfOrder("value was not consumed")
		}
		switch tok := c.it.Peek(); tok {
		case Comma:
			c.it.Advance()
			if obj {
				c.transition(stateKey)
			} else {
				c.transition(stateChild)
			}
			return true, nil
		case closer:
			c.it.Advance()
			c.state = stateClosed
			return false, nil
		default:
			return false, c.fail(errorf(MissingComma, c.it.PeekSpan().Pos, "expected %v or %v, got %v", Comma, closer, tok))
		}
	case stateColon:
		return false, c.outOfOrder("member value was not read")
	}
	return false, c.outOfOrder("member key was not read")
}

// FieldKey consumes the key of the current object member and returns its raw
// text, without quotation marks and with escapes not decoded. It is valid
// when HasNextField has reported true, or directly after StartObject has
// reported a non-empty object.
//
// If the current token is not a string, FieldKey reports TapeError, which is
// terminal.
func (c *Cursor) FieldKey() (RawString, error) {
	if err := c.checkContainer(true); err != nil {
		return nil, err
	}
	switch c.state {
	case stateObject:
		if c.it.Peek() == RBrace {
			return nil, c.outOfOrder("object has no members")
		}
	case stateKey:
	default:
		return nil, c.outOfOrder("not at a member key")
	}
	if tok := c.it.Peek(); tok != String {
		return nil, c.fail(errorf(TapeError, c.it.PeekSpan().Pos, "expected object key, got %v", tok))
	}
	_, sp := c.it.Advance()
	c.transition(stateColon)
	return RawString(c.it.Text(Span{Pos: sp.Pos + 1, End: sp.End - 1})), nil
}

// FieldValue consumes the colon following a member key, leaving the stream
// at the member value. Use ChildValue to obtain a cursor for the value.
// If the colon is missing, FieldValue reports MissingColon, which is terminal.
func (c *Cursor) FieldValue() error {
	if err := c.checkContainer(true); err != nil {
		return err
	}
	if c.state != stateColon {
		return c.outOfOrder("member key was not read")
	}
	if tok := c.it.Peek(); tok != Colon {
		return c.fail(errorf(MissingColon, c.it.PeekSpan().Pos, "expected %v after key, got %v", Colon, tok))
	}
	c.it.Advance()
	c.transition(stateChild)
	return nil
}

// FindFieldRaw searches forward through the remaining members of an object
// for one whose raw key is exactly key, and reports whether it was found.
// If so, the stream is left at the member value, ready for ChildValue. If
// not, the object is consumed and c is closed.
//
// Keys are compared byte for byte with their raw text, escapes and all, so a
// key written with escapes does not match its unescaped spelling. Members
// before the current position are not considered: searching twice for the
// same key finds a later duplicate or nothing.
//
// If c is at the start of its value, FindFieldRaw first starts the object.
// If c is at a member value that has not been read, that value is skipped.
func (c *Cursor) FindFieldRaw(key string) (bool, error) {
	if c.state == stateValue {
		if _, err := c.StartObject(); err != nil {
			return false, err
		}
	}
	if c.state == stateClosed && c.cont == LBrace {
		return false, nil
	}
	if err := c.checkContainer(true); err != nil {
		return false, err
	}
	switch c.state {
	case stateColon:
		if err := c.FieldValue(); err != nil {
			return false, err
		}
		if err := c.skipChild(); err != nil {
			return false, err
		}
	case stateChild:
		if c.it.Pos() == c.pos {
			if err := c.skipChild(); err != nil {
				return false, err
			}
		}
	}

	want := mem.S(key)
	for {
		if c.state != stateKey {
			more, err := c.HasNextField()
			if err != nil || !more {
				return false, err
			}
		}
		got, err := c.FieldKey()
		if err != nil {
			return false, err
		}
		if err := c.FieldValue(); err != nil {
			return false, err
		}
		if mem.B(got).Equal(want) {
			return true, nil
		}
		if err := c.skipChild(); err != nil {
			return false, err
		}
	}
}

func (c *Cursor) skipChild() error {
	child := c.ChildValue()
	return child.Skip()
}

// ChildValue returns a cursor for the value at the current position of an
// object or array, at one greater depth than c. It is valid after FieldValue,
// after HasNextElement reports true, or directly after StartArray reports a
// non-empty array. The returned cursor may be used for a nested container or
// for a scalar.
//
// If c is not positioned at a value, the returned cursor reports OutOfOrder
// from every method.
func (c *Cursor) ChildValue() Cursor {
	err := c.checkContainer(c.cont == LBrace)
	if err == nil && c.state == stateArray && c.it.Peek() != RSquare {
		c.transition(stateChild)
	}
	if err == nil && (c.state != stateChild || c.it.Pos() != c.pos) {
		err = c.outOfOrder("not at a member value or element")
	}
	if err != nil {
		return Cursor{it: c.it, depth: c.depth + 1, state: stateFailed, err: err}
	}
	pos := c.it.Pos()
	return Cursor{it: c.it, depth: c.depth + 1, start: pos, pos: pos, state: stateValue}
}

// Skip consumes the rest of the value of c, whatever its type. A scalar is
// consumed as a single token, without checking its contents. For an object
// or array, tokens are consumed until the matching close delimiter, without
// checking the structure of the contents. Skip may also be used to consume
// the remainder of an object or array whose iteration has begun.
//
// If the input ends before the container is closed, or if the value begins
// with a token that cannot start a value, Skip reports TapeError, which is
// terminal. Skipping a value that is already consumed does nothing.
func (c *Cursor) Skip() error {
	switch c.state {
	case stateClosed:
		return nil
	case stateValue:
		if err := c.checkValue(); err != nil {
			return err
		}
		switch tok := c.it.Peek(); {
		case tok.isScalar():
			c.it.Advance()
			c.state = stateClosed
			return nil
		case tok == LBrace || tok == LSquare:
			c.it.Advance()
		default:
			return c.fail(errorf(TapeError, c.it.PeekSpan().Pos, "expected value, got %v", tok))
		}
	default:
		if err := c.checkContainer(c.cont == LBrace); err != nil {
			return err
		}
	}

	for c.it.Depth() > c.depth {
		if tok, sp := c.it.Advance(); tok == End {
			return c.fail(errorf(TapeError, sp.Pos, "unclosed %v", c.it.idx.Token(c.start)))
		}
	}
	c.state = stateClosed
	return nil
}

// transition moves c to state st at the current stream position, and marks
// the stream at c's depth so that stale copies of c can be detected.
func (c *Cursor) transition(st state) {
	c.state = st
	c.pos = c.it.Pos()
	c.gen = c.it.mark(c.depth)
}

// checkValue reports an error if c is not at the start of its value.
func (c *Cursor) checkValue() error {
	switch c.state {
	case stateInvalid:
		return errorf(OutOfOrder, -1, "cursor is not initialized")
	case stateFailed:
		return c.err
	}
	if err := c.it.err; err != nil {
		return err
	}
	switch c.state {
	case stateValue:
	case stateClosed:
		return c.outOfOrder("value was already consumed")
	default:
		return c.outOfOrder("value is an object or array in progress")
	}
	if c.it.Pos() != c.start || c.it.Depth() != c.depth {
		return c.outOfOrder("stale cursor")
	}
	return nil
}

// checkContainer reports an error if c is not iterating an object (obj ==
// true) or array (obj == false) whose contents are at the current position
// of the stream.
func (c *Cursor) checkContainer(obj bool) error {
	switch c.state {
	case stateInvalid:
		return errorf(OutOfOrder, -1, "cursor is not initialized")
	case stateFailed:
		return c.err
	}
	if err := c.it.err; err != nil {
		return err
	}
	switch c.state {
	case stateValue:
		return c.outOfOrder("object or array not started")
	case stateClosed:
		return c.outOfOrder("object or array already closed")
	}
	if c.cont != containerOf(obj) {
		if c.cont == LBrace {
			return c.outOfOrder("value is an object, not an array")
		}
		return c.outOfOrder("value is an array, not an object")
	}
	if c.it.openAt(c.depth) != c.start || c.it.markAt(c.depth) != c.gen {
		return c.outOfOrder("stale cursor")
	}
	if c.it.Depth() != c.depth+1 {
		return c.outOfOrder("nested value was not consumed")
	}
	if c.state != stateChild && c.it.Pos() != c.pos {
		return c.outOfOrder("stale cursor")
	}
	return nil
}

// fail records a terminal error for c and its stream, and returns err.
func (c *Cursor) fail(err *Error) error {
	c.state, c.err = stateFailed, err
	if err.Code.Terminal() {
		c.it.err = err
	}
	return err
}

func containerOf(obj bool) Token {
	if obj {
		return LBrace
	}
	return LSquare
}

func (c *Cursor) outOfOrder(msg string, args ...any) error {
	return errorf(OutOfOrder, c.it.PeekSpan().Pos, msg, args...)
}

func (c *Cursor) typeError(got Token, want string) error {
	return errorf(IncorrectType, c.it.PeekSpan().Pos, "got %v, want %s", got, want)
}
