package jpath_test

import (
	"errors"
	"testing"

	"github.com/creachadair/jcursor"
	"github.com/creachadair/jcursor/ast"
	"github.com/creachadair/jcursor/jpath"
	"github.com/creachadair/mds/mtest"
	"github.com/google/go-cmp/cmp"
	"github.com/theory/jsonpath"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		want  string // normal form, if different from input
		elts  []any
	}{
		{"$", "", []any{}},
		{"$.store.book[0].author", "", []any{"store", "book", 0, "author"}},
		{"$['apple sauce'].pearPlum.'cherry apple'", "$['apple sauce'].pearPlum['cherry apple']",
			[]any{"apple sauce", "pearPlum", "cherry apple"}},
		{"$[a][10]['b']", "$.a[10].b", []any{"a", 10, "b"}},
		{`$["it's"]`, "", []any{"it's"}},
		{`$['']`, "", []any{""}},
	}
	for _, test := range tests {
		e, err := jpath.Parse(test.input)
		if err != nil {
			t.Errorf("Parse %q: %v", test.input, err)
			continue
		}

		want := test.want
		if want == "" {
			want = test.input
		}
		if got := e.String(); got != want {
			t.Errorf("Parse %q:\n got %q\nwant %q", test.input, got, want)
		}
		if diff := cmp.Diff(test.elts, e.Elements()); diff != "" {
			t.Errorf("Parse %q elements: (-want, +got)\n%s", test.input, diff)
		}
	}
}

func TestParse_errors(t *testing.T) {
	for _, bad := range []string{
		"", "store", "$.", "$[1", "$[x", "$.'open", "$ .x", "$[1]x",
		"$[99999999999999999999]",
	} {
		if e, err := jpath.Parse(bad); err == nil {
			t.Errorf("Parse %q: got %v, want error", bad, e)
		} else if errors.Is(err, jpath.ErrNotSupported) {
			t.Errorf("Parse %q: got %v, want a syntax error", bad, err)
		}
	}
	mtest.MustPanic(t, func() { jpath.MustParse("nope") })
}

func TestParse_unsupported(t *testing.T) {
	tests := []string{
		"$.store.*",
		"$.store.book[*]",
		"$..author",
		"$.store..price",
		"$.store.book[-1]",
		"$.store.book[0,1]",
		"$['a','b']",
		"$.store.book[1:2]",
		"$.store.book[:2]",
		"$.store.book[?(@.isbn)]",
		"$.store.book[(@.length-1)]",
	}
	for _, path := range tests {
		if e, err := jpath.Parse(path); !errors.Is(err, jpath.ErrNotSupported) {
			t.Errorf("Parse %q: got %v, %v; want %v", path, e, err, jpath.ErrNotSupported)
		}
	}
}

const testJSON = `{
  "store": {
    "book": [
      {"category": "reference", "author": "Nigel Rees", "price": 8.95},
      {"category": "fiction", "author": "Evelyn Waugh", "price": 12.99},
      {"category": "fiction", "author": "Herman Melville", "isbn": "0-553-21311-3"}
    ],
    "bicycle": {"color": "red", "price": 19.95},
    "open shelf": [[1, 2], [3, [4, 5]]]
  },
  "count": 3,
  "tags": ["a", "b", null, true]
}`

// oracle evaluates path on the whole input using a general JSONPath engine.
func oracle(t *testing.T, path string) (any, bool) {
	t.Helper()
	v, err := ast.ParseSingle([]byte(testJSON), nil)
	if err != nil {
		t.Fatalf("ParseSingle: %v", err)
	}
	p, err := jsonpath.Parse(path)
	if err != nil {
		t.Fatalf("jsonpath.Parse %q: %v", path, err)
	}
	nodes := p.Select(v.Interface())
	if len(nodes) == 0 {
		return nil, false
	}
	return nodes[0], true
}

func TestEval(t *testing.T) {
	tests := []string{
		"$",
		"$.count",
		"$.store",
		"$.store.book",
		"$.store.book[0]",
		"$.store.book[2].isbn",
		"$.store.book[1].author",
		"$.store.bicycle.color",
		"$['store']['open shelf'][1][1][0]",
		"$.store['open shelf'][0]",
		"$.tags[2]",
		"$.tags[3]",

		// Missing values.
		"$.nonesuch",
		"$.store.book[3]",
		"$.store.book[0].isbn",
		"$.tags[10]",
		"$.count.x",
	}
	for _, path := range tests {
		t.Run(path, func(t *testing.T) {
			want, found := oracle(t, path)

			d, err := jcursor.Parse([]byte(testJSON), nil)
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			root := d.Root()
			c, err := jpath.MustParse(path).Eval(&root)
			if !found {
				if err == nil {
					t.Fatalf("Eval %q: got a value, want none", path)
				}
				if code := jcursor.CodeOf(err); code != jcursor.NotFound && code != jcursor.IncorrectType {
					t.Errorf("Eval %q: got error %v, want NotFound or IncorrectType", path, err)
				}
				return
			} else if err != nil {
				t.Fatalf("Eval %q: unexpected error: %v", path, err)
			}
			got, err := ast.Decode(&c)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if diff := cmp.Diff(want, got.Interface()); diff != "" {
				t.Errorf("Eval %q: (-want, +got)\n%s", path, diff)
			}
		})
	}
}
