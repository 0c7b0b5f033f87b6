// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"errors"
	"fmt"

	"github.com/creachadair/jcursor"
	"github.com/creachadair/jcursor/ast"
	"github.com/creachadair/jcursor/jpath"
	"github.com/spf13/cobra"
)

func newGetCmd(g *globals) *cobra.Command {
	var pointer, path, output string
	var raw bool

	cmd := &cobra.Command{
		Use:   "get [flags] file",
		Short: "Print a value selected from the input",
		Long: `Print a value selected from the input.

With --pointer, the value is selected by an RFC 6901 JSON Pointer. With
--path, it is selected by a JSONPath expression using only member names and
non-negative indices. Otherwise, the whole document is printed.

With --raw, the text of the value is printed exactly as it appears in the
input. Otherwise the value is decoded and printed in the --output format.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if pointer != "" && path != "" {
				return errors.New("at most one of --pointer and --path may be set")
			}
			format := g.cfg.Output
			if cmd.Flags().Changed("output") {
				format = output
			}
			var expr jpath.Expr
			if path != "" {
				var err error
				expr, err = jpath.Parse(path)
				if err != nil {
					return fmt.Errorf("invalid path: %w", err)
				}
			}

			d, err := g.open(cmd, args[0])
			if err != nil {
				return err
			}
			root := d.Root()
			var c jcursor.Cursor
			switch {
			case pointer != "":
				c, err = root.AtPointer(pointer)
			case path != "":
				c, err = expr.Eval(&root)
			default:
				c = root
			}
			if err != nil {
				return describe(args[0], d.Index().Data(), err)
			}

			w := cmd.OutOrStdout()
			if raw {
				text, err := c.RawJSON()
				if err != nil {
					return describe(args[0], d.Index().Data(), err)
				}
				_, err = fmt.Fprintf(w, "%s\n", text)
				return err
			}
			v, err := ast.Decode(&c)
			if err == nil && pointer == "" && path == "" {
				err = d.CheckEOF()
			}
			if err != nil {
				return describe(args[0], d.Index().Data(), err)
			}
			return writeValue(w, v, format, g.cfg.Indent)
		},
	}

	fs := cmd.Flags()
	fs.StringVarP(&pointer, "pointer", "p", "", "select the value at this JSON Pointer")
	fs.StringVar(&path, "path", "", "select the value at this JSONPath expression")
	fs.BoolVar(&raw, "raw", false, "print the raw text of the value")
	fs.StringVarP(&output, "output", "o", "json", "output format (json, yaml, cbor)")
	return cmd
}
