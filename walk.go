// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jcursor

import (
	"bytes"

	"github.com/creachadair/jcursor/internal/escape"

	"go4.org/mem"
)

// An Anchor represents a location in source text. The methods of an Anchor
// will report the location, token type, and contents of the anchor.
type Anchor interface {
	Token() Token       // Returns the token type of the anchor
	Text() []byte       // Returns a view of the raw (undecoded) text of the anchor
	Copy() []byte       // Returns a copy of the raw text of the anchor
	Location() Location // Returns the full location of the anchor
}

// A Handler handles events from Walk. If a method reports an error, the walk
// stops and that error is returned to the caller.
//
// The Anchor argument to a Handler method is only valid for the duration of
// that method call. If the method needs to retain information about the
// location after it returns, it must copy the relevant data.
type Handler interface {
	// Begin a new object, whose open brace is at loc.
	BeginObject(loc Anchor) error

	// End the most-recently-opened object, whose close brace is at loc.
	EndObject(loc Anchor) error

	// Begin a new array, whose open bracket is at loc.
	BeginArray(loc Anchor) error

	// End the most-recently-opened array, whose close bracket is at loc.
	EndArray(loc Anchor) error

	// Begin a new object member, whose key is at loc. The text of the key is
	// still quoted.
	BeginMember(loc Anchor) error

	// End the current object member giving the location and type of the token
	// that follows the member (either Comma or RBrace).
	EndMember(loc Anchor) error

	// Report a scalar value at the given location. The type of the value can
	// be recovered from the token. String tokens are quoted.
	Value(loc Anchor) error
}

// Walk consumes the value of c completely, checking all of its syntax, and
// delivers events to h describing its structure. Unlike Skip, which only
// balances delimiters, Walk checks every literal and separator it passes.
//
// In case of a syntax error, Walk returns the *Error reported by the cursor.
// If a Handler method reports an error, Walk stops and returns that error.
func Walk(c *Cursor, h Handler) (err error) {
	w := walker{h: h, idx: c.it.idx}
	defer w.recoverError(&err)
	w.walkValue(c)
	return nil
}

type walker struct {
	h   Handler
	idx *Index
}

func (w *walker) recoverError(errp *error) {
	if werr := recover(); werr != nil {
		switch err := werr.(type) {
		case syntaxError:
			*errp = err.error
		case handlerError:
			*errp = err.error
		default:
			panic(werr)
		}
	}
}

// walkValue consumes a single value of any type.
func (w *walker) walkValue(c *Cursor) {
	kind, err := c.Kind()
	w.checkSyntax(err)
	here := w.peek(c)
	root := c.depth == 1
	switch kind {
	case KindObject:
		_, err := c.StartObject()
		w.checkSyntax(err)
		w.checkError(w.h.BeginObject(here))
		w.walkMembers(c)
		w.checkError(w.h.EndObject(w.last(c)))

	case KindArray:
		_, err := c.StartArray()
		w.checkSyntax(err)
		w.checkError(w.h.BeginArray(here))
		w.walkElements(c)
		w.checkError(w.h.EndArray(w.last(c)))

	case KindString:
		s, err := c.TryGetRawString()
		w.checkSyntax(err)
		w.checkString(s, here)
		w.checkError(w.h.Value(here))

	case KindNumber:
		_, err := c.number(true, root)
		w.checkSyntax(err)
		c.consume()
		w.checkError(w.h.Value(here))

	case KindBool:
		_, err := c.getBool(true, root)
		w.checkSyntax(err)
		w.checkError(w.h.Value(here))

	case KindNull:
		if !c.getNull(true, root) {
			w.checkSyntax(errorf(IncorrectType, here.span.Pos, "invalid constant %q", here.Text()))
		}
		w.checkError(w.h.Value(here))
	}
}

// walkMembers consumes the members of an object that c has started.
func (w *walker) walkMembers(c *Cursor) {
	for {
		more, err := c.HasNextField()
		w.checkSyntax(err)
		if !more {
			return // end of object
		}
		key := w.peek(c)
		s, err := c.FieldKey()
		w.checkSyntax(err)
		w.checkString(s, key)
		w.checkError(w.h.BeginMember(key))
		w.checkSyntax(c.FieldValue())

		child := c.ChildValue()
		w.walkValue(&child)
		w.checkError(w.h.EndMember(w.peek(c)))
	}
}

// walkElements consumes the elements of an array that c has started.
func (w *walker) walkElements(c *Cursor) {
	for {
		more, err := c.HasNextElement()
		w.checkSyntax(err)
		if !more {
			return // end of array
		}
		child := c.ChildValue()
		w.walkValue(&child)
	}
}

// checkString checks the escapes of the string at loc, whose raw contents
// are s.
func (w *walker) checkString(s RawString, loc anchor) {
	var buf [64]byte
	if _, err := escape.AppendUnquote(buf[:0], mem.B(s)); err != nil {
		w.checkSyntax(stringError(err, loc.span.Pos+1))
	}
}

// peek returns an anchor for the current token of c's stream.
func (w *walker) peek(c *Cursor) anchor {
	return anchor{idx: w.idx, tok: c.it.Peek(), span: c.it.PeekSpan()}
}

// last returns an anchor for the closing delimiter just consumed by c.
func (w *walker) last(c *Cursor) anchor {
	sp := Span{Pos: c.it.last - 1, End: c.it.last}
	return anchor{idx: w.idx, tok: c.it.idx.Token(c.it.Pos() - 1), span: sp}
}

func (w *walker) checkSyntax(err error) {
	if err != nil {
		panic(syntaxError{err})
	}
}

func (w *walker) checkError(err error) {
	if err != nil {
		panic(handlerError{err})
	}
}

type syntaxError struct{ error }

type handlerError struct{ error }

func (h handlerError) Unwrap() error { return h.error }

type anchor struct {
	idx  *Index
	tok  Token
	span Span
}

func (a anchor) Token() Token { return a.tok }

func (a anchor) Text() []byte { return a.idx.Text(a.span) }

func (a anchor) Copy() []byte { return bytes.Clone(a.Text()) }

func (a anchor) Location() Location {
	return Location{
		Span:  a.span,
		First: a.idx.LineCol(a.span.Pos),
		Last:  a.idx.LineCol(a.span.End),
	}
}
