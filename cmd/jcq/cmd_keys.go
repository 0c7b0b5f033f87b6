// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newKeysCmd(g *globals) *cobra.Command {
	var unescape bool

	cmd := &cobra.Command{
		Use:   "keys [flags] file",
		Short: "Print the keys of the top-level object",
		Long: `Print the keys of the top-level object, one per line, in input order.

Keys are printed as written in the input, with escapes intact, unless
--unescape is set. Member values are skipped without being checked.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := g.open(cmd, args[0])
			if err != nil {
				return err
			}
			fail := func(err error) error { return describe(args[0], d.Index().Data(), err) }

			root := d.Root()
			if _, err := root.StartObject(); err != nil {
				return fail(err)
			}
			w := cmd.OutOrStdout()
			n := 0
			for {
				more, err := root.HasNextField()
				if err != nil {
					return fail(err)
				} else if !more {
					break
				}
				key, err := root.FieldKey()
				if err != nil {
					return fail(err)
				}
				text := key.String()
				if unescape {
					if text, err = key.Unescape(); err != nil {
						return fail(err)
					}
				}
				fmt.Fprintln(w, text)
				n++

				if err := root.FieldValue(); err != nil {
					return fail(err)
				}
				val := root.ChildValue()
				if err := val.Skip(); err != nil {
					return fail(err)
				}
			}
			log.Infof("%d keys", n)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&unescape, "unescape", "u", false, "decode escape sequences in keys")
	return cmd
}
