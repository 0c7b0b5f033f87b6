// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jcursor

import (
	"github.com/creachadair/jcursor/internal/escape"

	"go4.org/mem"
)

// Quote encodes src as a JSON string value. The contents are escaped and
// double quotation marks are added.
func Quote(src string) string { return string(escape.AppendQuote(nil, mem.S(src))) }

// Unquote decodes a JSON string value. Double quotation marks are removed,
// and escape sequences are replaced with their unescaped equivalents.
//
// Invalid escapes are replaced by the Unicode replacement rune. Unquote
// reports an error with code StringError for an incomplete escape sequence
// or an unescaped control character.
func Unquote(src []byte) ([]byte, error) {
	n := len(src)
	if n < 2 || src[0] != '"' || src[n-1] != '"' {
		return nil, errorf(StringError, -1, "missing quotation marks")
	}
	dec, err := escape.Unquote(mem.B(src[1 : n-1]))
	if err != nil {
		return nil, stringError(err, 1)
	}
	return dec, nil
}

// A RawString is the contents of a JSON string as written in the input,
// without the enclosing quotation marks and with escapes not decoded. It is
// a view of the input, and is valid only as long as the input is unchanged.
type RawString []byte

// Equal reports whether r is exactly equal to s, byte for byte. No escapes
// are decoded, so a string written with escapes does not equal its decoded
// spelling.
func (r RawString) Equal(s string) bool { return mem.B(r).Equal(mem.S(s)) }

// Unescape decodes the escape sequences of r.
func (r RawString) Unescape() (string, error) {
	dec, err := escape.Unquote(mem.B(r))
	if err != nil {
		return "", stringError(err, 0)
	}
	return string(dec), nil
}

func (r RawString) String() string { return string(r) }

// stringError converts an unquoting error to an *Error. If the error has an
// offset, base is added to it.
func stringError(err error, base int) *Error {
	if e, ok := err.(*escape.Error); ok {
		return errorf(StringError, base+e.Offset, "%s", e.Msg)
	}
	return errorf(StringError, -1, "%v", err)
}
