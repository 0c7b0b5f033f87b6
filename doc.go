// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package jcursor implements a lazy, forward-only cursor over JSON values.
//
// # Indexing
//
// An Index records the kind and location of every token of an input, without
// copying or decoding anything. Only the boundaries of tokens are checked
// while indexing; the grammar of the input, and the contents of numbers,
// strings, and constants, are checked later, as values are read.
//
//	doc, err := jcursor.Parse(input, nil)
//	if err != nil {
//	   log.Fatalf("Parse: %v", err)
//	}
//
// # Cursors
//
// A Cursor traverses a single value of a document. The cursor does not know
// the type of its value until the caller asks for one: to read an object,
// call StartObject and then HasNextField, FieldKey, and FieldValue for each
// member, using ChildValue to obtain a cursor for each member value:
//
//	root := doc.Root()
//	if _, err := root.StartObject(); err != nil {
//	   log.Fatal(err)
//	}
//	for {
//	   more, err := root.HasNextField()
//	   if err != nil {
//	      log.Fatal(err)
//	   } else if !more {
//	      break
//	   }
//	   key, _ := root.FieldKey()
//	   root.FieldValue()
//	   v := root.ChildValue()
//	   n, err := v.TryGetUint64()
//	   // ...
//	}
//
// Traversal is forward-only, and all the cursors of a document share a
// single position in its token stream. Once a child cursor has been obtained,
// its parent must not be used until the child value is consumed. Cursors
// check the stream position at every call, and report a misused or stale
// cursor as an error with code OutOfOrder.
//
// # Errors
//
// Errors reported by this package have concrete type *Error, and carry a
// Code classifying the failure. A type mismatch, such as asking for a number
// when the value is a string, does not move the cursor, so the caller may try
// again with another type. A malformed structure, such as a missing comma, is
// terminal: every cursor of the document reports the same error from then on.
// Failure to find an object member is not an error, and is reported by a
// false result.
package jcursor
