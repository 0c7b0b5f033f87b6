// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package jpath implements the subset of JSONPath that a forward-only cursor
// can follow: a root marker followed by member names and array indices.
package jpath

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

/*
Grammar:

  expr = "$" steps
 steps = step [steps]
  step = "." name
  step = "[" name "]"
  step = "[" INDEX "]"
  name = WORD
  name = "'" QTEXT "'"
  name = '"' DQTEXT '"'

  WORD = RE `\w+`
 QTEXT = RE `[^']*`
DQTEXT = RE `[^"]*`
 INDEX = RE `\d+`

Recursive descent (..), wildcards (*), unions (,), slices (:), filters
?(...) and scripts (...) are recognized, and rejected with ErrNotSupported.

Source:
  https://www.ietf.org/archive/id/draft-goessner-dispatch-jsonpath-00.html
*/

// ErrNotSupported is reported by Parse for JSONPath operators that cannot be
// evaluated in a single forward pass.
var ErrNotSupported = errors.New("operator not supported")

// An Expr is a parsed JSONPath expression.
type Expr []Step

// Parse parses s as a JSONPath expression.
func Parse(s string) (Expr, error) {
	rest, ok := strings.CutPrefix(s, "$")
	if !ok {
		return nil, errors.New("missing root marker")
	}
	var expr Expr
	for rest != "" {
		step, next, err := parseStep(rest)
		if err != nil {
			return nil, fmt.Errorf("at %q: %w", rest, err)
		}
		expr = append(expr, step)
		rest = next
	}
	return expr, nil
}

// MustParse is as Parse, but panics if s is not a valid expression.
func MustParse(s string) Expr {
	e, err := Parse(s)
	if err != nil {
		panic(fmt.Sprintf("jpath: %v", err))
	}
	return e
}

// String returns the expression in normal form: names that are words use dot
// notation, and other names are quoted in brackets.
func (e Expr) String() string {
	var sb strings.Builder
	sb.WriteString("$")
	for _, s := range e {
		sb.WriteString(s.String())
	}
	return sb.String()
}

func parseStep(s string) (Step, string, error) {
	switch {
	case strings.HasPrefix(s, ".."):
		return Step{}, s, fmt.Errorf("recursive descent: %w", ErrNotSupported)

	case strings.HasPrefix(s, "."):
		name, rest, err := parseName(s[1:])
		if err != nil {
			return Step{}, s, fmt.Errorf("invalid .name: %w", err)
		}
		return Step{Op: Member, Name: name}, rest, nil

	case strings.HasPrefix(s, "["):
		step, rest, err := parseSubscript(s[1:])
		if err != nil {
			return Step{}, s, err
		}
		rest, ok := strings.CutPrefix(rest, "]")
		if !ok {
			return Step{}, s, errors.New("missing close bracket")
		}
		return step, rest, nil
	}
	return Step{}, s, errors.New("invalid path step")
}

func parseName(s string) (name, rest string, _ error) {
	if strings.HasPrefix(s, "*") {
		return "", s, fmt.Errorf("wildcard: %w", ErrNotSupported)
	} else if m := wordRE.FindStringSubmatch(s); m != nil {
		return m[1], s[len(m[0]):], nil
	} else if m := quoteRE.FindStringSubmatch(s); m != nil {
		if s[0] == '"' {
			return m[2], s[len(m[0]):], nil
		}
		return m[1], s[len(m[0]):], nil
	}
	return "", s, errors.New("invalid name")
}

func parseSubscript(s string) (Step, string, error) {
	switch {
	case strings.HasPrefix(s, "?("):
		return Step{}, s, fmt.Errorf("filter: %w", ErrNotSupported)
	case strings.HasPrefix(s, "("):
		return Step{}, s, fmt.Errorf("script: %w", ErrNotSupported)
	case strings.HasPrefix(s, ":"):
		return Step{}, s, fmt.Errorf("slice: %w", ErrNotSupported)
	}
	if m := indexRE.FindStringSubmatch(s); m != nil {
		rest := s[len(m[0]):]
		switch {
		case strings.HasPrefix(rest, ":"):
			return Step{}, s, fmt.Errorf("slice: %w", ErrNotSupported)
		case strings.HasPrefix(rest, ","):
			return Step{}, s, fmt.Errorf("union: %w", ErrNotSupported)
		case strings.HasPrefix(m[1], "-"):
			return Step{}, s, fmt.Errorf("negative index: %w", ErrNotSupported)
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return Step{}, s, fmt.Errorf("invalid index: %w", err)
		}
		return Step{Op: Index, Index: n}, rest, nil
	}
	name, rest, err := parseName(s)
	if err != nil {
		return Step{}, s, fmt.Errorf("invalid subscript: %w", err)
	}
	if strings.HasPrefix(rest, ",") {
		return Step{}, s, fmt.Errorf("union: %w", ErrNotSupported)
	}
	return Step{Op: Member, Name: name}, rest, nil
}

var (
	wordRE  = regexp.MustCompile(`^(\w+)`)
	indexRE = regexp.MustCompile(`^(-?\d+)`)
	quoteRE = regexp.MustCompile(`^(?:'([^']*)'|"([^"]*)")`)
	nameRE  = regexp.MustCompile(`^\w+$`)
)

// An Op is a path operator.
type Op byte

const (
	Invalid Op = iota // invalid operator
	Member            // object member lookup
	Index             // array index lookup
)

var opText = [...]string{
	Invalid: "invalid",
	Member:  "member",
	Index:   "index",
}

func (o Op) String() string {
	if int(o) < len(opText) {
		return opText[o]
	}
	return opText[Invalid]
}

// A Step is a single step of a JSONPath expression.
type Step struct {
	Op    Op
	Name  string // for Member
	Index int    // for Index
}

func (s Step) String() string {
	switch s.Op {
	case Member:
		if nameRE.MatchString(s.Name) {
			return "." + s.Name
		} else if strings.Contains(s.Name, "'") {
			return `["` + s.Name + `"]`
		}
		return "['" + s.Name + "']"
	case Index:
		return "[" + strconv.Itoa(s.Index) + "]"
	default:
		return "[invalid]"
	}
}
