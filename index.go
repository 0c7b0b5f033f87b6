// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package jcursor

import (
	"bytes"
	"errors"

	"github.com/tailscale/hujson"
	"go4.org/mem"
)

// DefaultMaxDepth is the maximum nesting depth permitted by an Index when the
// options do not specify one.
const DefaultMaxDepth = 1024

// Options control the construction of an Index. A nil *Options is ready for
// use and provides default values.
type Options struct {
	// The maximum permitted nesting depth of objects and arrays.
	// If zero, DefaultMaxDepth is used.
	MaxDepth int

	// If true, comments are permitted between tokens and discarded.
	AllowComments bool

	// If true, the input is treated as JSON With Commas and Comments (JWCC),
	// and is converted to standard JSON before indexing. Each top-level value
	// is converted separately, so the input may contain several. Conversion
	// preserves byte offsets, but operates on a copy of the input.
	//
	// Unlike ordinary indexing, conversion checks the complete syntax of the
	// input, so a malformed JWCC input is rejected up front.
	JWCC bool
}

func (o *Options) maxDepth() int {
	if o == nil || o.MaxDepth <= 0 {
		return DefaultMaxDepth
	}
	return o.MaxDepth
}

func (o *Options) allowComments() bool { return o != nil && o.AllowComments }

func (o *Options) jwcc() bool { return o != nil && o.JWCC }

type record struct {
	tok      Token
	pos, end int
}

// An Index records the positions of all the tokens of a JSON input, in
// document order. The index does not copy the input (except for JWCC inputs,
// see Options); the caller must not modify the input while the index is in
// use.
//
// Only token boundaries are checked during indexing. The grammar of the
// input, and the contents of literals, are checked as the tokens are read
// through a Cursor.
type Index struct {
	data     []byte
	toks     []record
	comments bool
}

// NewIndex constructs an index of the tokens of data.
// If opts == nil, default options are used.
func NewIndex(data []byte, opts *Options) (*Index, error) {
	if opts.jwcc() {
		std, err := standardizeJWCC(data)
		if err != nil {
			return nil, err
		}
		data = std
	}
	s := NewScanner(data)
	s.AllowComments(opts.allowComments())

	idx := &Index{data: data, comments: opts.allowComments()}
	maxDepth := opts.maxDepth()
	var depth int
	for s.Next() {
		tok := s.Token()
		switch tok {
		case LineComment, BlockComment:
			continue
		case LBrace, LSquare:
			depth++
			if depth > maxDepth {
				return nil, errorf(DepthError, s.Span().Pos, "nesting depth exceeds %d", maxDepth)
			}
		case RBrace, RSquare:
			// Balance is not checked here; an extra closer is reported by the
			// cursor that reaches it.
			depth = max(depth-1, 0)
		}
		sp := s.Span()
		idx.toks = append(idx.toks, record{tok: tok, pos: sp.Pos, end: sp.End})
	}
	if err := s.Err(); err != nil {
		return nil, scanError(err)
	}
	if len(idx.toks) == 0 {
		return nil, errorf(EmptyInput, len(data), "no JSON value")
	}
	idx.toks = append(idx.toks, record{tok: End, pos: len(data), end: len(data)})
	return idx, nil
}

// standardizeJWCC returns a copy of data with the comments and trailing
// commas of each top-level value replaced by spaces.
func standardizeJWCC(data []byte) ([]byte, error) {
	s := NewScanner(data)
	s.AllowComments(true)

	// Find the end of each top-level value. Whatever follows the last one is
	// converted along with it.
	var ends []int
	var depth int
	for s.Next() {
		switch s.Token() {
		case LineComment, BlockComment:
			continue
		case LBrace, LSquare:
			depth++
		case RBrace, RSquare:
			depth--
		}
		if depth <= 0 {
			depth = 0
			ends = append(ends, s.Span().End)
		}
	}
	if err := s.Err(); err != nil {
		return nil, scanError(err)
	}
	if len(ends) == 0 {
		return bytes.Repeat([]byte{' '}, len(data)), nil
	}
	ends[len(ends)-1] = len(data)

	out := make([]byte, 0, len(data))
	var start int
	for _, end := range ends {
		std, err := hujson.Standardize(data[start:end])
		if err != nil {
			return nil, errorf(ScanError, -1, "invalid JWCC value at offset %d: %v", start, err)
		}
		out = append(out, std...)
		start = end
	}
	return out, nil
}

func scanError(err error) error {
	code := ScanError
	if errors.Is(err, errUnclosedString) {
		code = UnclosedString
	}
	var pe posError
	if errors.As(err, &pe) {
		return &Error{Code: code, Offset: pe.pos, Message: pe.err.Error()}
	}
	return &Error{Code: code, Offset: -1, Message: err.Error()}
}

// Len reports the number of tokens in x, including the final End token.
func (x *Index) Len() int { return len(x.toks) }

// Token reports the type of the token at index i.
func (x *Index) Token(i int) Token { return x.toks[i].tok }

// Span reports the location of the token at index i.
func (x *Index) Span(i int) Span { return Span{Pos: x.toks[i].pos, End: x.toks[i].end} }

// Data returns the indexed input.
func (x *Index) Data() []byte { return x.data }

// Text returns a view of the input covered by s.
func (x *Index) Text(s Span) []byte { return x.data[s.Pos:s.End] }

// LineCol reports the line and column of the given byte offset in the input.
func (x *Index) LineCol(offset int) LineCol { return lineCol(mem.B(x.data), offset) }

// Iter returns a new token stream positioned at the first token of x.
func (x *Index) Iter() *Iter { return &Iter{idx: x} }

// An Iter is a forward-only stream over the tokens of an Index. It tracks
// the nesting depth of its current position as containers are opened and
// closed.
//
// Every Cursor derived from an Iter shares it, and must not outlive it.
type Iter struct {
	idx  *Index
	pos  int   // index of the current token
	open []int // token indexes of the open containers, outermost first
	last int   // end offset of the most recently consumed token
	err  error // the first terminal error reported by a cursor

	// Generation marks by depth, recording the most recent container
	// transition of a cursor at each depth.
	seq   uint64
	marks []uint64
}

// Index returns the index traversed by it.
func (it *Iter) Index() *Index { return it.idx }

// Peek reports the type of the current token without consuming it.
// At the end of the input, Peek reports End.
func (it *Iter) Peek() Token { return it.idx.toks[it.pos].tok }

// PeekSpan reports the location of the current token.
func (it *Iter) PeekSpan() Span { return it.idx.Span(it.pos) }

// Pos reports the index of the current token.
func (it *Iter) Pos() int { return it.pos }

// Depth reports the nesting depth of the current position. The top level of
// the document is depth 1, and each open container adds 1.
func (it *Iter) Depth() int { return len(it.open) + 1 }

// AtEOF reports whether all the tokens of the input have been consumed.
func (it *Iter) AtEOF() bool { return it.Peek() == End }

// Advance consumes the current token and returns its type and location.
// Consuming an open brace or bracket increases the depth, and consuming a
// close brace or bracket decreases it. At the end of input, Advance does
// nothing and reports End.
func (it *Iter) Advance() (Token, Span) {
	r := it.idx.toks[it.pos]
	switch r.tok {
	case End:
		return End, it.idx.Span(it.pos)
	case LBrace, LSquare:
		it.open = append(it.open, it.pos)
	case RBrace, RSquare:
		if n := len(it.open); n > 0 {
			it.open = it.open[:n-1]
		}
	}
	it.pos++
	it.last = r.end
	return r.tok, Span{Pos: r.pos, End: r.end}
}

// Text returns a view of the input covered by s.
func (it *Iter) Text(s Span) []byte { return it.idx.Text(s) }

// Err reports the terminal error that ended traversal of the stream, if any.
func (it *Iter) Err() error { return it.err }

// Rewind resets it to the beginning of the input, and clears any error.
// Cursors obtained before Rewind must not be used afterward.
func (it *Iter) Rewind() {
	it.pos, it.last, it.err = 0, 0, nil
	it.open = it.open[:0]
	it.marks = it.marks[:0]
}

// mark records a new generation for the cursor at depth, and returns it.
func (it *Iter) mark(depth int) uint64 {
	for len(it.marks) <= depth {
		it.marks = append(it.marks, 0)
	}
	it.seq++
	it.marks[depth] = it.seq
	return it.seq
}

// markAt returns the current generation for depth.
func (it *Iter) markAt(depth int) uint64 {
	if depth < len(it.marks) {
		return it.marks[depth]
	}
	return 0
}

// openAt reports the token index of the open container whose value is at
// the given depth, or -1 if no container is open at that depth.
func (it *Iter) openAt(depth int) int {
	if depth < 1 || depth > len(it.open) {
		return -1
	}
	return it.open[depth-1]
}
