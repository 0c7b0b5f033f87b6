// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package jpath

import "github.com/creachadair/jcursor"

// Elements converts e into a sequence of path elements for Cursor.Path.
// Member names are strings and indices are ints.
func (e Expr) Elements() []any {
	out := make([]any, len(e))
	for i, s := range e {
		if s.Op == Index {
			out[i] = s.Index
		} else {
			out[i] = s.Name
		}
	}
	return out
}

// Eval evaluates e starting from the value of c, and returns a cursor for
// the value it selects. Names are compared with the raw text of object keys.
//
// Eval consumes the enclosing values of c as it descends. If the selected
// value does not exist, the error has code jcursor.NotFound.
func (e Expr) Eval(c *jcursor.Cursor) (jcursor.Cursor, error) {
	return c.Path(e.Elements()...)
}
