// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package jcursor

// A Document is an indexed JSON input, ready for traversal.
type Document struct {
	idx *Index
	it  *Iter
}

// Parse indexes data and returns a Document for traversing it. The input is
// not copied, and must not be modified while the document is in use. If opts
// == nil, default options are used.
//
// Parse checks only the token structure of the input (see Index); the rest
// of the grammar is checked as values are read.
func Parse(data []byte, opts *Options) (*Document, error) {
	idx, err := NewIndex(data, opts)
	if err != nil {
		return nil, err
	}
	return &Document{idx: idx, it: idx.Iter()}, nil
}

// Root returns a cursor for the top-level value of d at the current position
// of its stream. For a fresh or rewound document, this is the first value of
// the input.
func (d *Document) Root() Cursor { return NewCursor(d.it) }

// AtEOF reports whether the whole input of d has been consumed.
func (d *Document) AtEOF() bool { return d.it.AtEOF() }

// Err reports the terminal error, if any, that ended traversal of d.
func (d *Document) Err() error { return d.it.Err() }

// Rewind resets d to the beginning of its input, so that it may be traversed
// again. Rewind clears any terminal error. Cursors obtained before Rewind must
// not be used afterward.
func (d *Document) Rewind() { d.it.Rewind() }

// Index returns the token index of d.
func (d *Document) Index() *Index { return d.idx }

// Iter returns the token stream of d.
func (d *Document) Iter() *Iter { return d.it }

// CheckEOF reports an error with code TapeError if any input remains after
// the top-level value of d has been consumed.
func (d *Document) CheckEOF() error {
	if err := d.it.Err(); err != nil {
		return err
	}
	if !d.it.AtEOF() {
		return errorf(TapeError, d.it.PeekSpan().Pos, "unexpected %v after value", d.it.Peek())
	}
	return nil
}
