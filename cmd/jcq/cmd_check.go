// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"errors"
	"fmt"

	"github.com/creachadair/jcursor"
	"github.com/spf13/cobra"
)

func newCheckCmd(g *globals) *cobra.Command {
	var multi bool

	cmd := &cobra.Command{
		Use:   "check [flags] file",
		Short: "Check the syntax of the input",
		Long: `Check the complete syntax of the input.

The input must contain exactly one value, unless --multi is set, in which case
it may contain any number of values separated by whitespace. Errors are
reported with the line and column where they occur.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := g.open(cmd, args[0])
			if err != nil {
				return err
			}
			fail := func(err error) error { return describe(args[0], d.Index().Data(), err) }

			var h counter
			for {
				root := d.Root()
				if err := jcursor.Walk(&root, &h); err != nil {
					return fail(err)
				}
				h.values++
				if !multi || d.AtEOF() {
					break
				}
			}
			if err := d.CheckEOF(); err != nil {
				return fail(err)
			}
			log.Infof("%s: %d values, %d objects, %d arrays, %d scalars",
				args[0], h.values, h.objects, h.arrays, h.scalars)
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", args[0])
			return nil
		},
	}
	cmd.Flags().BoolVar(&multi, "multi", false, "accept a sequence of values")
	return cmd
}

// counter is a jcursor.Handler that counts the values it sees.
type counter struct {
	values, objects, arrays, scalars int
}

func (c *counter) BeginObject(jcursor.Anchor) error { c.objects++; return nil }
func (c *counter) EndObject(jcursor.Anchor) error   { return nil }
func (c *counter) BeginArray(jcursor.Anchor) error  { c.arrays++; return nil }
func (c *counter) EndArray(jcursor.Anchor) error    { return nil }
func (c *counter) BeginMember(jcursor.Anchor) error { return nil }
func (c *counter) EndMember(jcursor.Anchor) error   { return nil }
func (c *counter) Value(jcursor.Anchor) error       { c.scalars++; return nil }

// describe annotates err with the name of the input and, if err carries an
// input offset, the line and column where it occurred.
func describe(name string, data []byte, err error) error {
	var jerr *jcursor.Error
	if errors.As(err, &jerr) {
		if lc, ok := jerr.Position(data); ok {
			return fmt.Errorf("%s:%v: %w", name, lc, err)
		}
	}
	return fmt.Errorf("%s: %w", name, err)
}
