package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kaptinlin/ujson-tools/serialize"
)

func newPrintCmd() *cobra.Command {
	var opts relaxedOpts
	var compact, sorted, tabs, escapeSlash, color bool

	cmd := &cobra.Command{
		Use:   "print <file>",
		Short: "Pretty-print (or compact) a JSON document",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			doc, err := loadDocument(args[0], opts.parseOptions())
			if err != nil {
				return fail("parse: %w", err)
			}

			flags := serialize.Flags(0)
			if !compact {
				flags |= serialize.Pretty
			}
			if sorted {
				flags |= serialize.Sorted
			}
			if tabs {
				flags |= serialize.Tabs
			}
			if escapeSlash {
				flags |= serialize.EscapeSlash
			}
			if color {
				flags |= serialize.Color
			}

			fmt.Println(serialize.Serialize(doc, flags))
			return nil
		},
	}

	opts.register(cmd.Flags())
	cmd.Flags().BoolVar(&compact, "compact", false, "emit single-line output instead of pretty-printing")
	cmd.Flags().BoolVar(&sorted, "sorted", false, "iterate object members in key-sorted order")
	cmd.Flags().BoolVar(&tabs, "tabs", false, "indent with tabs instead of four spaces")
	cmd.Flags().BoolVar(&escapeSlash, "escape-slash", false, `emit '/' as '\/' in strings`)
	cmd.Flags().BoolVar(&color, "color", false, "colorize output (not valid JSON; for terminals only)")
	return cmd
}
