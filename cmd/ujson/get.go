package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kaptinlin/ujson-tools/pointer"
	"github.com/kaptinlin/ujson-tools/serialize"
	"github.com/kaptinlin/ujson-tools/value"
)

// newGetCmd ports the original tool suite's ujson-get: extract the value
// at a JSON Pointer, optionally constraining its type and unescaping a
// resulting JSON string to its raw text.
func newGetCmd() *cobra.Command {
	var opts relaxedOpts
	var typeConstraint string
	var unescape bool

	cmd := &cobra.Command{
		Use:   "get <file> <pointer>",
		Short: "Extract the value at a JSON Pointer",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			doc, err := loadDocument(args[0], opts.parseOptions())
			if err != nil {
				return fail("parse: %w", err)
			}
			found, err := pointer.FindText(doc, args[1])
			if err != nil {
				return fail("pointer: %w", err)
			}
			if !found.IsValid() {
				fmt.Fprintf(os.Stderr, "pointer %q does not resolve\n", args[1])
				os.Exit(1)
				return nil
			}
			if typeConstraint != "" && found.Kind().String() != strings.ToLower(typeConstraint) {
				fmt.Fprintf(os.Stderr, "pointer %q resolved to %s, want %s\n", args[1], found.Kind(), typeConstraint)
				os.Exit(1)
				return nil
			}

			if unescape && found.Kind() == value.String {
				fmt.Println(found.Str())
				return nil
			}
			fmt.Println(serialize.Serialize(found, 0))
			return nil
		},
	}

	opts.register(cmd.Flags())
	cmd.Flags().StringVar(&typeConstraint, "type", "", "require the resolved value to have this JSON type (null, boolean, number, string, array, object)")
	cmd.Flags().BoolVar(&unescape, "unescape", false, "print a string result's raw text instead of its quoted JSON form")
	return cmd
}
