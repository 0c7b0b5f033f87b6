// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jcursor_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/creachadair/jcursor"
	"github.com/google/go-cmp/cmp"
)

func TestScanner(t *testing.T) {
	tests := []struct {
		input string
		want  []jcursor.Token
	}{
		// Empty inputs
		{"", nil},
		{"  ", nil},
		{"\n\n  \n", nil},
		{"\t  \r\n \t  \r\n", nil},

		// Constants
		{"true false null", []jcursor.Token{jcursor.True, jcursor.False, jcursor.Null}},

		// Punctuation
		{"{ [ ] } , :", []jcursor.Token{
			jcursor.LBrace, jcursor.LSquare, jcursor.RSquare, jcursor.RBrace, jcursor.Comma, jcursor.Colon,
		}},

		// Strings
		{`"" "a b c" "a\nb\tc"`, []jcursor.Token{jcursor.String, jcursor.String, jcursor.String}},
		{`"\"\\\/\b\f\n\r\t"`, []jcursor.Token{jcursor.String}},
		{`"\u0000\u01fc\uAA9c"`, []jcursor.Token{jcursor.String}},

		// Numbers
		{`0 -1 5139 2.3 5e+9 3.6E+4 -0.001E-100`, []jcursor.Token{
			jcursor.Number, jcursor.Number, jcursor.Number,
			jcursor.Number, jcursor.Number, jcursor.Number, jcursor.Number,
		}},

		// Mixed types
		{`{true,"false":-15 null[]}`, []jcursor.Token{
			jcursor.LBrace, jcursor.True, jcursor.Comma, jcursor.String, jcursor.Colon,
			jcursor.Number, jcursor.Null, jcursor.LSquare, jcursor.RSquare, jcursor.RBrace,
		}},
		{`{"a": true, "b":[null, 1, 0.5]}`, []jcursor.Token{
			jcursor.LBrace,
			jcursor.String, jcursor.Colon, jcursor.True, jcursor.Comma,
			jcursor.String, jcursor.Colon,
			jcursor.LSquare,
			jcursor.Null, jcursor.Comma, jcursor.Number, jcursor.Comma, jcursor.Number,
			jcursor.RSquare,
			jcursor.RBrace,
		}},
		{`"a",1,true
       false["b"]
       `, []jcursor.Token{
			jcursor.String, jcursor.Comma, jcursor.Number, jcursor.Comma, jcursor.True,
			jcursor.False, jcursor.LSquare, jcursor.String, jcursor.RSquare,
		}},
	}

	for _, test := range tests {
		var got []jcursor.Token
		s := jcursor.NewScanner([]byte(test.input))
		for s.Next() {
			got = append(got, s.Token())
		}
		if s.Err() != nil {
			t.Errorf("Next failed: %v", s.Err())
		}
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("Input: %#q\nTokens: (-want, +got)\n%s", test.input, diff)
		}
	}
}

func TestScanner_withComments(t *testing.T) {
	tests := []struct {
		input string
		want  []jcursor.Token
		coms  []string
	}{
		{"/* block comment */\n\n\n", []jcursor.Token{jcursor.BlockComment},
			[]string{"/* block comment */"}},
		{"// line 1\n\n// line 2\n", []jcursor.Token{jcursor.LineComment, jcursor.LineComment},
			[]string{"// line 1\n", "// line 2\n"}}, // N.B. includes terminating newline, if present
		{"// line at EOF", []jcursor.Token{jcursor.LineComment},
			[]string{"// line at EOF"}},
		{`{
 "x": 1, // howdy do
 "y" /* hide me */ : 2.0 }`, []jcursor.Token{
			jcursor.LBrace, jcursor.String, jcursor.Colon, jcursor.Number, jcursor.Comma, jcursor.LineComment,
			jcursor.String, jcursor.BlockComment, jcursor.Colon, jcursor.Number, jcursor.RBrace,
		}, []string{
			"// howdy do\n", "/* hide me */",
		}},

		{`"a" // line
false /*
  this is a comment
*/ 1 null [ {} ]`, []jcursor.Token{
			jcursor.String, jcursor.LineComment, jcursor.False, jcursor.BlockComment,
			jcursor.Number, jcursor.Null, jcursor.LSquare, jcursor.LBrace, jcursor.RBrace, jcursor.RSquare,
		}, []string{
			"// line\n", "/*\n  this is a comment\n*/",
		}},

		{"/* x */\n{\n}//foo", []jcursor.Token{
			jcursor.BlockComment, jcursor.LBrace, jcursor.RBrace, jcursor.LineComment,
		}, []string{
			"/* x */", "//foo",
		}},

		{"/**\n*/", []jcursor.Token{jcursor.BlockComment}, []string{"/**\n*/"}},

		{`/**/"foo"/***/"bar"/****/"baz"/*****/false/*x*/null`, []jcursor.Token{
			jcursor.BlockComment, jcursor.String,
			jcursor.BlockComment, jcursor.String,
			jcursor.BlockComment, jcursor.String,
			jcursor.BlockComment, jcursor.False,
			jcursor.BlockComment, jcursor.Null,
		}, []string{
			"/**/", "/***/", "/****/", "/*****/", "/*x*/",
		}},
	}

	for _, test := range tests {
		var got []jcursor.Token
		var coms []string
		s := jcursor.NewScanner([]byte(test.input))
		s.AllowComments(true)
		for s.Next() {
			got = append(got, s.Token())
			if tok := s.Token(); tok == jcursor.LineComment || tok == jcursor.BlockComment {
				coms = append(coms, string(s.Text()))
			}
		}
		if s.Err() != nil {
			t.Errorf("Next failed: %v", s.Err())
		}
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("Input: %#q\nTokens: (-want, +got)\n%s", test.input, diff)
		}
		if diff := cmp.Diff(test.coms, coms); diff != "" {
			t.Errorf("Input: %#q\nComments: (-want, +got)\n%s", test.input, diff)
		}
	}
}

func TestQuote(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", `""`},
		{" ", `" "`},
		{"a\t\nb", `"a\t\nb"`},
		{"\x00\x01\x02", `"\u0000\u0001\u0002"`},
		{`a "b c\" d"`, `"a \"b c\\\" d\""`},
		{`\ufffd`, `"\\ufffd"`},
		{"\u2028 \u2029 \ufffd", `"\u2028 \u2029 \ufffd"`},
		{"This is the end\v", `"This is the end\u000b"`},
		{"<\x1e>", `"<\u001e>"`},
	}
	for _, test := range tests {
		got := string(jcursor.Quote(test.input))
		if got != test.want {
			t.Errorf("Input: %#q\nGot:  %#q\nWant: %#q", test.input, got, test.want)
		}
	}
}

func TestScannerLoc(t *testing.T) {
	type tokPos struct {
		Tok jcursor.Token
		Pos string
	}
	tests := []struct {
		input string
		want  []tokPos
	}{
		{"", nil},
		{"{ }", []tokPos{{jcursor.LBrace, "1:0-1"}, {jcursor.RBrace, "1:2-3"}}},
		{`"foo" // bar`, []tokPos{{jcursor.String, "1:0-5"}, {jcursor.LineComment, "1:6-12"}}},
		{"/* ok */\ntrue\n false\n", []tokPos{{jcursor.BlockComment, "1:0-8"}, {jcursor.True, "2:0-4"}, {jcursor.False, "3:1-6"}}},
		{"/* abc */", []tokPos{{jcursor.BlockComment, "1:0-9"}}},
		{"/* ok\n*/\n null", []tokPos{{jcursor.BlockComment, "1:0-2:2"}, {jcursor.Null, "3:1-5"}}},
		{"// first\n[1, /*x*/, 2\n]", []tokPos{
			{jcursor.LineComment, "1:0-2:0"}, {jcursor.LSquare, "2:0-1"}, {jcursor.Number, "2:1-2"},
			{jcursor.Comma, "2:2-3"}, {jcursor.BlockComment, "2:4-9"}, {jcursor.Comma, "2:9-10"},
			{jcursor.Number, "2:11-12"}, {jcursor.RSquare, "3:0-1"},
		}},
	}
	for _, tc := range tests {
		var got []tokPos
		s := jcursor.NewScanner([]byte(tc.input))
		s.AllowComments(true)
		for s.Next() {
			got = append(got, tokPos{s.Token(), s.Location().String()})
		}
		if s.Err() != nil {
			t.Errorf("Next failed: %v", s.Err())
		}
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Errorf("Input: %#q\nTokens: (-want, +got)\n%s", tc.input, diff)
		}
	}
}

func TestUnquote(t *testing.T) {
	tests := []struct {
		input string
		want  string
		fail  bool
	}{
		{``, ``, true},                          // missing quotes
		{`"missing quote`, ``, true},            // missing quotes
		{`missing quote"`, ``, true},            // missing quotes
		{`""`, ``, false},                       // ok
		{`"ok go"`, "ok go", false},             // ok
		{`"abc\ndef"`, "abc\ndef", false},       // C escapes
		{`"\tabc\n"`, "\tabc\n", false},         // C escapes
		{`"\b\f\n\r\t"`, "\b\f\n\r\t", false},   // C escapes
		{`"a \u0026 b"`, "a & b", false},        // short Unicode escape
		{`"\u"`, ``, true},                      // incomplete Unicode escape
		{`"\u00"`, ``, true},                    // incomplete Unicode escape
		{`"\u00x9"`, ``, true},                  // invalid Unicode escape
		{`"\u019 "`, ``, true},                  // invalid Unicode escape
		{`"a\"b"`, `a"b`, false},                // ok
		{`"a\\b\\cd"`, `a\b\cd`, false},         // ok
		{`"\ud83d\ude00"`, "\U0001f600", false}, // surrogate pair
		{`"\ud83d"`, "\ufffd", false},           // unpaired surrogate
		{`"\ud83dx"`, "\ufffdx", false},         // unpaired surrogate
		{`"\q"`, ``, true},                      // invalid escape
		{"\"a\nb\"", ``, true},                  // unescaped control
		{`"abc\`, ``, true},                     // missing quotes
		{`"abc\"`, ``, true},                    // incomplete escape
	}

	for _, test := range tests {
		got, err := jcursor.Unquote([]byte(test.input))
		if err != nil {
			if !test.fail {
				t.Errorf("Unquote(%#q): got %v, want no error", test.input, err)
			} else {
				t.Logf("Unquote(%#q): got expected error: %v", test.input, err)
			}
		} else if err == nil && test.fail {
			t.Errorf("Unquote(%#q): got nil, want error", test.input)
		}
		if cmp := string(got); cmp != test.want {
			t.Errorf("Unquote(%#q): got %#q, want %#q", test.input, cmp, test.want)
		}
	}
}

func TestScanner_runs(t *testing.T) {
	// Unquoted runs are classified by their first byte, and their contents are
	// not checked by the scanner.
	tests := []struct {
		input string
		want  []string
	}{
		{"trux", []string{"true:trux"}},
		{"123abc", []string{"number:123abc"}},
		{"nil", []string{"null:nil"}},
		{"fals", []string{"false:fals"}},
		{"abc", []string{"invalid token:abc"}},
		{"-", []string{"number:-"}},
		{`[1.2.3,xyz]`, []string{`"[":[`, "number:1.2.3", `",":,`, "invalid token:xyz", `"]":]`}},
		{`12"x"`, []string{"number:12", `string:"x"`}},
		{"/x", []string{"invalid token:/x"}}, // comments disabled
	}
	for _, tc := range tests {
		var got []string
		s := jcursor.NewScanner([]byte(tc.input))
		for s.Next() {
			got = append(got, s.Token().String()+":"+string(s.Text()))
		}
		if s.Err() != nil {
			t.Errorf("Next failed: %v", s.Err())
		}
		if s.Token() != jcursor.End {
			t.Errorf("Final token: got %v, want %v", s.Token(), jcursor.End)
		}
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Errorf("Input: %#q\nTokens: (-want, +got)\n%s", tc.input, diff)
		}
	}
}

func TestScanner_errors(t *testing.T) {
	tests := []struct {
		input    string
		comments bool
		want     string
	}{
		{`"abc`, false, "unterminated string"},
		{`["a", "b\"]`, false, "unterminated string"},
		{`/* open`, true, "unterminated block comment"},
		{`1 /`, true, "incomplete comment"},
		{`1 /x`, true, "invalid"},
	}
	for _, tc := range tests {
		s := jcursor.NewScanner([]byte(tc.input))
		s.AllowComments(tc.comments)
		for s.Next() {
		}
		err := s.Err()
		if err == nil {
			t.Errorf("Input %#q: got no error, want %q", tc.input, tc.want)
			continue
		}
		if !strings.Contains(err.Error(), tc.want) {
			t.Errorf("Input %#q: got error %v, want %q", tc.input, err, tc.want)
		}
	}
}

func TestUnquote_errorCode(t *testing.T) {
	_, err := jcursor.Unquote([]byte(`"abc\u12"`))
	if !errors.Is(err, jcursor.ErrString) {
		t.Errorf("Unquote: got %v, want %v", err, jcursor.ErrString)
	}
	var e *jcursor.Error
	if !errors.As(err, &e) {
		t.Fatalf("Unquote: got error %T, want *Error", err)
	}
	if e.Offset != 4 {
		t.Errorf("Error offset: got %d, want 4", e.Offset)
	}
}
