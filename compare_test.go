// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package jcursor_test

import (
	"strconv"
	"strings"
	"testing"

	"github.com/creachadair/jcursor"
	"github.com/tidwall/gjson"
	"github.com/valyala/fastjson"
)

var compareJSON = []byte(`{
  "name": "John Smith",
  "age": 35,
  "address": {
    "street": "123 Main St",
    "city": "San Francisco",
    "note": "café \"au lait\"\n"
  },
  "phones": [
    {"type": "home", "number": "555-1234"},
    {"type": "work", "number": "555-5678"}
  ],
  "active": true,
  "spouse": null,
  "scores": [95, 87.5, -92, 7.8e1, 0]
}`)

// toPath converts a dotted path into jcursor path elements, treating
// all-digit components as array offsets.
func toPath(s string) []any {
	var out []any
	for _, elt := range strings.Split(s, ".") {
		if n, err := strconv.Atoi(elt); err == nil {
			out = append(out, n)
		} else {
			out = append(out, elt)
		}
	}
	return out
}

func TestCompare_gjson(t *testing.T) {
	paths := []string{
		"name", "age", "address", "address.city", "address.note",
		"phones", "phones.0", "phones.1.number", "active", "spouse",
		"scores", "scores.3", "scores.4",
	}
	for _, path := range paths {
		want := gjson.GetBytes(compareJSON, path)
		if !want.Exists() {
			t.Fatalf("gjson: path %q not found", path)
		}
		root := mustParse(t, string(compareJSON), nil).Root()
		c, err := root.Path(toPath(path)...)
		if err != nil {
			t.Errorf("Path %q: unexpected error: %v", path, err)
			continue
		}
		raw, err := c.RawJSON()
		if err != nil {
			t.Errorf("Path %q: RawJSON: %v", path, err)
		} else if string(raw) != want.Raw {
			t.Errorf("Path %q: got %#q, gjson has %#q", path, raw, want.Raw)
		}
	}

	for _, path := range []string{"nonesuch", "address.zip", "phones.2", "scores.10"} {
		if gjson.GetBytes(compareJSON, path).Exists() {
			t.Fatalf("gjson: path %q unexpectedly found", path)
		}
		root := mustParse(t, string(compareJSON), nil).Root()
		_, err := root.Path(toPath(path)...)
		mustErr(t, "Path "+path, err, jcursor.NotFound)
	}
}

func TestCompare_fastjson(t *testing.T) {
	var p fastjson.Parser
	fv, err := p.ParseBytes(compareJSON)
	if err != nil {
		t.Fatalf("fastjson: %v", err)
	}

	t.Run("Strings", func(t *testing.T) {
		for _, path := range []string{"name", "address.street", "address.note", "phones.1.type"} {
			want, err := fv.Get(strings.Split(path, ".")...).StringBytes()
			if err != nil {
				t.Fatalf("fastjson %q: %v", path, err)
			}
			root := mustParse(t, string(compareJSON), nil).Root()
			c, err := root.Path(toPath(path)...)
			if err != nil {
				t.Fatalf("Path %q: %v", path, err)
			}
			got, err := c.RequireString()
			if err != nil {
				t.Errorf("RequireString %q: %v", path, err)
			} else if got != string(want) {
				t.Errorf("Path %q: got %q, fastjson has %q", path, got, want)
			}
		}
	})

	t.Run("Numbers", func(t *testing.T) {
		for _, path := range []string{"age", "scores.0", "scores.1", "scores.2", "scores.3", "scores.4"} {
			want, err := fv.Get(strings.Split(path, ".")...).Float64()
			if err != nil {
				t.Fatalf("fastjson %q: %v", path, err)
			}
			root := mustParse(t, string(compareJSON), nil).Root()
			c, err := root.Path(toPath(path)...)
			if err != nil {
				t.Fatalf("Path %q: %v", path, err)
			}
			got, err := c.RequireFloat64()
			if err != nil {
				t.Errorf("RequireFloat64 %q: %v", path, err)
			} else if got != want {
				t.Errorf("Path %q: got %v, fastjson has %v", path, got, want)
			}
		}
	})

	t.Run("Validity", func(t *testing.T) {
		inputs := []string{
			`{"a":[1,2,{"b":null}],"c":"xéy"}`,
			`[]`, `  true `, `-0.5e+10`, `"😀"`, `{"":{"":[]}}`,

			`[1,]`, `{"a" 1}`, `{"a":1,}`, `tru`, `[1 2]`, `1.`, `{"a":}`,
			`[`, `[1]x`, `{"a":1}}`, `[01]`, `{1:2}`, `[-]`, `"abc`, ``,
		}
		for _, in := range inputs {
			want := fastjson.Validate(in) == nil
			got := validJSON(in)
			if got != want {
				t.Errorf("Valid %#q: got %v, fastjson says %v", in, got, want)
			}
		}
	})
}

// validJSON reports whether input is a single well-formed JSON value.
func validJSON(input string) bool {
	d, err := jcursor.Parse([]byte(input), nil)
	if err != nil {
		return false
	}
	c := d.Root()
	if err := jcursor.Walk(&c, nopHandler{}); err != nil {
		return false
	}
	return d.CheckEOF() == nil
}

type nopHandler struct{}

func (nopHandler) BeginObject(jcursor.Anchor) error { return nil }
func (nopHandler) EndObject(jcursor.Anchor) error   { return nil }
func (nopHandler) BeginArray(jcursor.Anchor) error  { return nil }
func (nopHandler) EndArray(jcursor.Anchor) error    { return nil }
func (nopHandler) BeginMember(jcursor.Anchor) error { return nil }
func (nopHandler) EndMember(jcursor.Anchor) error   { return nil }
func (nopHandler) Value(jcursor.Anchor) error       { return nil }
