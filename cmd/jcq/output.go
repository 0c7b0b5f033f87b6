// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"fmt"
	"io"

	"github.com/creachadair/jcursor/ast"
	"github.com/fxamacker/cbor/v2"
	"github.com/tailscale/hujson"
	"gopkg.in/yaml.v3"
)

// cborMode encodes with Core Deterministic Encoding, so that object keys are
// emitted in a stable order.
var cborMode cbor.EncMode

func init() {
	var err error
	cborMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("jcq: CBOR encoder initialization failed: " + err.Error())
	}
}

// writeValue writes v to w in the specified format. If indent > 0, JSON
// output is formatted across multiple lines, and YAML output is indented by
// that many spaces.
func writeValue(w io.Writer, v ast.Value, format string, indent int) error {
	switch format {
	case "json":
		out := []byte(v.JSON())
		if indent > 0 {
			var err error
			out, err = hujson.Format(out)
			if err != nil {
				return fmt.Errorf("format JSON: %w", err)
			}
		} else {
			out = append(out, '\n')
		}
		_, err := w.Write(out)
		return err

	case "yaml":
		enc := yaml.NewEncoder(w)
		if indent > 0 {
			enc.SetIndent(indent)
		}
		if err := enc.Encode(yamlNode(v)); err != nil {
			return fmt.Errorf("encode YAML: %w", err)
		}
		return enc.Close()

	case "cbor":
		out, err := cborMode.Marshal(v.Interface())
		if err != nil {
			return fmt.Errorf("encode CBOR: %w", err)
		}
		_, err = w.Write(out)
		return err

	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// yamlNode converts v to a YAML node, preserving the order of object members.
func yamlNode(v ast.Value) *yaml.Node {
	switch t := v.(type) {
	case ast.Object:
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, m := range t {
			key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: m.Key}
			n.Content = append(n.Content, key, yamlNode(m.Value))
		}
		return n
	case ast.Array:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, elt := range t {
			n.Content = append(n.Content, yamlNode(elt))
		}
		return n
	case ast.String:
		return scalarNode("!!str", string(t))
	case ast.Int, ast.Uint:
		return scalarNode("!!int", t.JSON())
	case ast.Float:
		return scalarNode("!!float", t.JSON())
	case ast.Bool:
		return scalarNode("!!bool", t.JSON())
	default:
		return scalarNode("!!null", "null")
	}
}

func scalarNode(tag, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}
