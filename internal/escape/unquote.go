// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package escape handles quoting and unquoting of JSON strings.
package escape

import (
	"fmt"
	"unicode/utf16"
	"unicode/utf8"

	"go4.org/mem"
)

// An Error reports a malformed string encoding.
type Error struct {
	Offset int    // byte offset of the problem, relative to the start of the input
	Msg    string // description of the problem
}

func (e *Error) Error() string { return fmt.Sprintf("offset %d: %s", e.Offset, e.Msg) }

// Unquote decodes the contents of a JSON string. The input must have the
// enclosing double quotation marks already removed.
//
// Escape sequences are replaced with their unescaped equivalents, and a
// surrogate pair written as two \u escapes is combined into one rune. An
// unpaired surrogate is replaced by the Unicode replacement rune. Unquote
// reports an *Error for an invalid or incomplete escape sequence, or for an
// unescaped control character.
func Unquote(src mem.RO) ([]byte, error) {
	return AppendUnquote(make([]byte, 0, src.Len()), src)
}

// AppendUnquote is as Unquote, but appends the decoded string to dst and
// returns the extended slice. In case of error, dst is returned unmodified
// along with the error.
func AppendUnquote(dst []byte, src mem.RO) ([]byte, error) {
	out := dst
	pos := 0 // offset of src in the original input
	for {
		i := nextSpecial(src)
		if i < 0 {
			return mem.Append(out, src), nil
		}
		out = mem.Append(out, src.SliceTo(i))
		if ch := src.At(i); ch != '\\' {
			return dst, &Error{Offset: pos + i, Msg: fmt.Sprintf("unescaped control character %q", ch)}
		}
		esc := pos + i
		src, pos = src.SliceFrom(i+1), esc+1
		if src.Len() == 0 {
			return dst, &Error{Offset: esc, Msg: "incomplete escape sequence"}
		}

		r, n := mem.DecodeRune(src)
		src, pos = src.SliceFrom(n), pos+n
		switch r {
		case '"', '\\', '/':
			out = append(out, byte(r))
		case 'b':
			out = append(out, '\b')
		case 'f':
			out = append(out, '\f')
		case 'n':
			out = append(out, '\n')
		case 'r':
			out = append(out, '\r')
		case 't':
			out = append(out, '\t')
		case 'u':
			if src.Len() < 4 {
				return dst, &Error{Offset: esc, Msg: "incomplete Unicode escape"}
			}
			u := parseHex(src.SliceTo(4))
			if u < 0 {
				return dst, &Error{Offset: esc, Msg: "invalid Unicode escape"}
			}
			src, pos = src.SliceFrom(4), pos+4
			if utf16.IsSurrogate(u) && src.Len() >= 6 && src.At(0) == '\\' && src.At(1) == 'u' {
				if lo := parseHex(src.Slice(2, 6)); lo >= 0 {
					if pair := utf16.DecodeRune(u, lo); pair != utf8.RuneError {
						u = pair
						src, pos = src.SliceFrom(6), pos+6
					}
				}
			}
			out = utf8.AppendRune(out, u) // lone surrogates encode as U+FFFD
		default:
			return dst, &Error{Offset: esc, Msg: "invalid escape sequence"}
		}
	}
}

// nextSpecial returns the offset of the first backslash or control character
// in src, or -1.
func nextSpecial(src mem.RO) int {
	for i := 0; i < src.Len(); i++ {
		if ch := src.At(i); ch == '\\' || ch < ' ' {
			return i
		}
	}
	return -1
}

// parseHex decodes four hexadecimal digits, or returns -1 if any is invalid.
func parseHex(data mem.RO) rune {
	var v rune
	for i := 0; i < data.Len(); i++ {
		b := data.At(i)
		v <<= 4
		switch {
		case '0' <= b && b <= '9':
			v += rune(b - '0')
		case 'a' <= b && b <= 'f':
			v += rune(b - 'a' + 10)
		case 'A' <= b && b <= 'F':
			v += rune(b - 'A' + 10)
		default:
			return -1
		}
	}
	return v
}
