package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/kaptinlin/ujson-tools/value"
)

// newCmpCmd ports the original tool suite's ujson-cmp: exit 0 if two
// documents are semantically equal (object member order ignored, per §8's
// semantic-equality property), else 1, with --verbose listing the
// pointer of every leaf where they diverge.
func newCmpCmd() *cobra.Command {
	var opts relaxedOpts
	var verbose bool

	cmd := &cobra.Command{
		Use:   "cmp <a> <b>",
		Short: "Compare two JSON documents for semantic equality",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			parseOpts := opts.parseOptions()
			a, err := loadDocument(args[0], parseOpts)
			if err != nil {
				return fail("parse %s: %w", args[0], err)
			}
			b, err := loadDocument(args[1], parseOpts)
			if err != nil {
				return fail("parse %s: %w", args[1], err)
			}

			if value.Equal(a, b) {
				if verbose {
					color.Green("documents are equal")
				}
				return nil
			}

			if verbose {
				for _, p := range diverging(a, b, "") {
					color.Yellow("mismatch at %s", p)
				}
			}
			os.Exit(1)
			return nil
		},
	}

	opts.register(cmd.Flags())
	cmd.Flags().BoolVar(&verbose, "verbose", false, "list mismatched pointers")
	return cmd
}

// diverging walks a and b together, collecting the pointer text of every
// leaf where they disagree. It recurses into objects (by key, last-wins)
// and arrays (by index), reporting a length mismatch itself as one
// divergence rather than walking past the shorter side.
func diverging(a, b value.Value, path string) []string {
	if value.Equal(a, b) {
		return nil
	}
	if a.Kind() != b.Kind() {
		return []string{path}
	}
	switch a.Kind() {
	case value.Object:
		var out []string
		ao, bo := a.ObjVal(), b.ObjVal()
		seen := map[string]bool{}
		for _, key := range ao.Keys() {
			seen[key] = true
			av, _ := ao.Get(key)
			bv, ok := bo.Get(key)
			if !ok {
				out = append(out, path+"/"+key)
				continue
			}
			out = append(out, diverging(av, bv, path+"/"+key)...)
		}
		for _, key := range bo.Keys() {
			if !seen[key] {
				out = append(out, path+"/"+key)
			}
		}
		return out
	case value.Array:
		aa, ba := a.Arr(), b.Arr()
		n := len(aa)
		if len(ba) < n {
			n = len(ba)
		}
		var out []string
		for i := 0; i < n; i++ {
			out = append(out, diverging(aa[i], ba[i], fmt.Sprintf("%s/%d", path, i))...)
		}
		if len(aa) != len(ba) {
			out = append(out, path)
		}
		return out
	default:
		return []string{path}
	}
}
