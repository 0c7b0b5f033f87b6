// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package jcursor

import (
	"errors"
	"fmt"

	"go4.org/mem"
)

// A Code classifies the errors reported by an Index or a Cursor.
type Code byte

// Constants defining the valid Code values.
const (
	Success          Code = iota // no error
	IncorrectType                // the value is not of the requested type
	NumberError                  // malformed number literal
	NumberOutOfRange             // the number does not fit the requested type
	StringError                  // malformed string escape
	MissingComma                 // missing "," between fields or elements
	MissingColon                 // missing ":" after an object key
	TapeError                    // other malformed structure
	OutOfOrder                   // cursor used out of protocol order, or stale
	NotFound                     // path lookup did not find its target
	DepthError                   // nesting exceeds the maximum depth
	UnclosedString               // string with no closing quote
	EmptyInput                   // input has no tokens
	ScanError                    // other lexical error
)

var codeStr = [...]string{
	Success:          "success",
	IncorrectType:    "incorrect type",
	NumberError:      "invalid number",
	NumberOutOfRange: "number out of range",
	StringError:      "invalid string",
	MissingComma:     "missing comma",
	MissingColon:     "missing colon",
	TapeError:        "malformed structure",
	OutOfOrder:       "out of order",
	NotFound:         "not found",
	DepthError:       "depth exceeded",
	UnclosedString:   "unclosed string",
	EmptyInput:       "empty input",
	ScanError:        "scan error",
}

func (c Code) String() string {
	if int(c) < len(codeStr) {
		return codeStr[c]
	}
	return fmt.Sprintf("code %d", byte(c))
}

// Terminal reports whether an error with code c ends the traversal of the
// document. After a terminal error the document cannot be read further.
//
// Type mismatches, malformed literals, lookup misses, and protocol misuse
// are not terminal: the cursor stays where it was, and the caller may try
// something else.
func (c Code) Terminal() bool {
	switch c {
	case MissingComma, MissingColon, TapeError,
		DepthError, UnclosedString, EmptyInput, ScanError:
		return true
	}
	return false
}

// Error is the concrete type of errors reported by this package.
type Error struct {
	Code    Code
	Offset  int    // byte offset in the input, or -1 if unknown
	Message string // human-readable detail, may be empty
}

// Error satisfies the error interface.
func (e *Error) Error() string {
	msg := e.Code.String()
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Offset < 0 {
		return msg
	}
	return fmt.Sprintf("%s (offset %d)", msg, e.Offset)
}

// Position reports the line and column of e in data, which must be the input
// for which e was reported. It reports false if e has no offset.
func (e *Error) Position(data []byte) (LineCol, bool) {
	if e.Offset < 0 || e.Offset > len(data) {
		return LineCol{}, false
	}
	return lineCol(mem.B(data), e.Offset), true
}

// Is reports whether target is an *Error with the same code as e.
// This allows comparison with the Err* sentinels via errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// Sentinel errors for use with errors.Is. Each matches any *Error with the
// same code.
var (
	ErrIncorrectType    = &Error{Code: IncorrectType, Offset: -1}
	ErrNumber           = &Error{Code: NumberError, Offset: -1}
	ErrNumberOutOfRange = &Error{Code: NumberOutOfRange, Offset: -1}
	ErrString           = &Error{Code: StringError, Offset: -1}
	ErrMissingComma     = &Error{Code: MissingComma, Offset: -1}
	ErrMissingColon     = &Error{Code: MissingColon, Offset: -1}
	ErrTape             = &Error{Code: TapeError, Offset: -1}
	ErrOutOfOrder       = &Error{Code: OutOfOrder, Offset: -1}
	ErrNotFound         = &Error{Code: NotFound, Offset: -1}
	ErrDepth            = &Error{Code: DepthError, Offset: -1}
	ErrUnclosedString   = &Error{Code: UnclosedString, Offset: -1}
	ErrEmptyInput       = &Error{Code: EmptyInput, Offset: -1}
)

func errorf(code Code, offset int, msg string, args ...any) *Error {
	return &Error{Code: code, Offset: offset, Message: fmt.Sprintf(msg, args...)}
}

// CodeOf reports the Code of the first *Error in the chain of err. It returns
// Success for a nil error and ScanError for errors of other types.
func CodeOf(err error) Code {
	if err == nil {
		return Success
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ScanError
}
