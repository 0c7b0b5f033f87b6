// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jcursor

import (
	"errors"
	"fmt"
	"strings"

	"go4.org/mem"
)

// Token is the type of a lexical token in the JSON grammar.
type Token byte

// Constants defining the valid Token values.
const (
	Invalid Token = iota // invalid token
	LBrace               // left brace "{"
	RBrace               // right brace "}"
	LSquare              // left square bracket "["
	RSquare              // right square bracket "]"
	Comma                // comma ","
	Colon                // colon ":"
	Number               // number, starting with "-" or a digit
	String               // quoted string
	True                 // constant: true
	False                // constant: false
	Null                 // constant: null

	BlockComment // comment: /* ... */
	LineComment  // comment: // ... <LF>

	End // end of input
)

var tokenStr = [...]string{
	Invalid: "invalid token",
	LBrace:  `"{"`,
	RBrace:  `"}"`,
	LSquare: `"["`,
	RSquare: `"]"`,
	Comma:   `","`,
	Colon:   `":"`,
	Number:  "number",
	String:  "string",
	True:    "true",
	False:   "false",
	Null:    "null",

	BlockComment: "block comment",
	LineComment:  "line comment",

	End: "end of input",
}

func (t Token) String() string {
	v := int(t)
	if v >= len(tokenStr) {
		return tokenStr[Invalid]
	}
	return tokenStr[v]
}

// isScalar reports whether t begins a scalar value. Invalid is included,
// because an unrecognized run of text occupies a value position; it is
// rejected only when a caller asks for its value.
func (t Token) isScalar() bool {
	switch t {
	case Number, String, True, False, Null, Invalid:
		return true
	}
	return false
}

// A Scanner locates lexical tokens in a byte slice. Each call to Next
// advances the scanner to the next token, or reports false at the end of the
// input or in case of error.
//
// The scanner only finds the boundaries of tokens: the contents of strings
// and of unquoted runs (numbers and constants) are not validated. A run of
// unquoted text is classified by its first byte, so "trux" is reported as a
// True token spanning four bytes. Checking the literal is deferred to the
// consumer of the token.
type Scanner struct {
	buf      []byte
	data     mem.RO // view of buf
	comments bool   // allow comments
	tok      Token
	err      error

	pos, end int // start and end offsets of current token
}

// NewScanner constructs a new lexical scanner that consumes input from data.
// The scanner does not copy or modify data.
func NewScanner(data []byte) *Scanner { return &Scanner{buf: data, data: mem.B(data)} }

// AllowComments configures the scanner to report (true) or reject (false)
// comment tokens. Comments are a non-standard exension of the JSON spec.  If
// enabled, C++ style block comments (/* ... */) and line comments (// ...)
// are recognized and emitted as tokens.
func (s *Scanner) AllowComments(ok bool) { s.comments = ok }

// Next advances s to the next token of the input, and reports whether a
// token is available. When Next returns false, Err reports the error, if any.
// At the end of the input, Token reports End.
func (s *Scanner) Next() bool {
	if s.err != nil || s.tok == End {
		return false
	}
	i := s.end
	for i < s.data.Len() && isSpace(s.data.At(i)) {
		i++
	}
	s.pos, s.end = i, i
	if i == s.data.Len() {
		s.tok = End
		return false
	}

	ch := s.data.At(i)
	if t, ok := selfDelim(ch); ok {
		s.tok, s.end = t, i+1
		return true
	}
	switch {
	case ch == '"':
		return s.scanString(i)
	case ch == '/' && s.comments:
		return s.scanComment(i)
	}

	// Everything else is an unquoted run, ending at whitespace, a delimiter,
	// or a quotation mark.
	switch {
	case ch == '-' || isDigit(ch):
		s.tok = Number
	case ch == 't':
		s.tok = True
	case ch == 'f':
		s.tok = False
	case ch == 'n':
		s.tok = Null
	default:
		s.tok = Invalid
	}
	s.end = s.runEnd(i + 1)
	return true
}

// Token returns the type of the current token.
func (s *Scanner) Token() Token { return s.tok }

// Err returns the last error reported by Next, or nil.
func (s *Scanner) Err() error { return s.err }

// Text returns the undecoded text of the current token.  The return value is
// a view of the input; it is valid as long as the input is not modified.
func (s *Scanner) Text() []byte { return s.buf[s.pos:s.end] }

// Span returns the location span of the current token.
func (s *Scanner) Span() Span { return Span{Pos: s.pos, End: s.end} }

// Location returns the complete location of the current token.
func (s *Scanner) Location() Location {
	return Location{
		Span:  s.Span(),
		First: lineCol(s.data, s.pos),
		Last:  lineCol(s.data, s.end),
	}
}

func (s *Scanner) scanString(start int) bool {
	var esc bool
	for i := start + 1; i < s.data.Len(); i++ {
		ch := s.data.At(i)
		if esc {
			esc = false
		} else if ch == '\\' {
			esc = true
		} else if ch == '"' {
			s.tok, s.end = String, i+1
			return true
		}
	}
	s.end = s.data.Len()
	return s.failf(start, errUnclosedString, "unterminated string")
}

func (s *Scanner) scanComment(start int) bool {
	if start+1 >= s.data.Len() {
		return s.failf(start, nil, "incomplete comment")
	}
	switch s.data.At(start + 1) {
	case '/': // line comment to LF
		rest := s.data.SliceFrom(start + 2)
		if i := mem.IndexByte(rest, '\n'); i >= 0 {
			s.end = start + 2 + i + 1
		} else {
			s.end = s.data.Len()
		}
		s.tok = LineComment
		return true

	case '*': // block comment
		rest := s.data.SliceFrom(start + 2)
		if i := mem.Index(rest, mem.S("*/")); i >= 0 {
			s.tok, s.end = BlockComment, start+2+i+2
			return true
		}
		s.end = s.data.Len()
		return s.failf(start, nil, "unterminated block comment")

	default:
		return s.failf(start+1, nil, "invalid %q in comment", s.data.At(start+1))
	}
}

// runEnd returns the offset of the first byte at or after i that ends an
// unquoted run.
func (s *Scanner) runEnd(i int) int {
	for i < s.data.Len() {
		ch := s.data.At(i)
		if isSpace(ch) || isDelim(ch) || ch == '"' || (ch == '/' && s.comments) {
			break
		}
		i++
	}
	return i
}

var errUnclosedString = errors.New("unclosed string")

type posError struct {
	pos int
	err error
}

func (p posError) Error() string {
	return fmt.Sprintf("%s (offset %d)", p.err.Error(), p.pos)
}

func (p posError) Unwrap() error { return p.err }

// failf records a scan error at offset pos and returns false. If kind is not
// nil, the recorded error wraps it as well as the formatted message.
func (s *Scanner) failf(pos int, kind error, msg string, args ...any) bool {
	err := fmt.Errorf(msg, args...)
	if kind != nil {
		err = errors.Join(kind, err)
	}
	s.tok = Invalid
	s.err = posError{pos, err}
	return false
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\r' || ch == '\n' || ch == '\t'
}

func isDigit(ch byte) bool { return '0' <= ch && ch <= '9' }

func isDelim(ch byte) bool { return strings.IndexByte("{}[],:", ch) >= 0 }

var self = [...]Token{LBrace, RBrace, LSquare, RSquare, Comma, Colon}

func selfDelim(ch byte) (Token, bool) {
	i := strings.IndexByte("{}[],:", ch)
	if i >= 0 {
		return self[i], true
	}
	return Invalid, false
}

// lineCol computes the line and column of offset pos in data.
func lineCol(data mem.RO, pos int) LineCol {
	head := data.SliceTo(min(pos, data.Len()))
	var lc LineCol
	for {
		i := mem.IndexByte(head, '\n')
		if i < 0 {
			break
		}
		lc.Line++
		head = head.SliceFrom(i + 1)
	}
	lc.Line++
	lc.Column = head.Len()
	return lc
}
