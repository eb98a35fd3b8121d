package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kaptinlin/ujson-tools/patch"
	"github.com/kaptinlin/ujson-tools/serialize"
)

func newPatchCmd() *cobra.Command {
	var opts relaxedOpts
	var verbose bool

	cmd := &cobra.Command{
		Use:   "patch <doc> <patch>",
		Short: "Apply an RFC 6902 patch document to a JSON document",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			parseOpts := opts.parseOptions()
			doc, err := loadDocument(args[0], parseOpts)
			if err != nil {
				return fail("parse %s: %w", args[0], err)
			}
			ops, err := loadDocument(args[1], parseOpts)
			if err != nil {
				return fail("parse %s: %w", args[1], err)
			}

			res := patch.Apply(doc, ops)
			if !res.OK {
				if verbose {
					fmt.Fprintf(os.Stderr, "operation %d (%s %s): %s\n", res.AbortIndex, res.Results[res.AbortIndex].Op.Kind, res.Results[res.AbortIndex].Op.Path, res.Results[res.AbortIndex].Outcome)
				}
				os.Exit(1)
				return nil
			}

			fmt.Println(serialize.Serialize(res.Root, serialize.Pretty))
			return nil
		},
	}

	opts.register(cmd.Flags())
	cmd.Flags().BoolVar(&verbose, "verbose", false, "report which operation aborted the sequence")
	return cmd
}
