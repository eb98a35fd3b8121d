package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kaptinlin/ujson-tools/serialize"
	"github.com/kaptinlin/ujson-tools/value"
)

// newMergeCmd ports the original tool suite's ujson-merge: deep-merge a
// master document with one or more slaves. Objects merge member-by-member
// (recursively); any other type in the master is replaced outright by the
// slave's value at that key, unless --match-types is set and the slave's
// JSON type disagrees with the master's existing value, in which case the
// slave's value at that key is skipped.
func newMergeCmd() *cobra.Command {
	var opts relaxedOpts
	var matchTypes bool

	cmd := &cobra.Command{
		Use:   "merge <master> <slave> [slave...]",
		Short: "Shallow/deep merge a master document with one or more slaves",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			parseOpts := opts.parseOptions()
			master, err := loadDocument(args[0], parseOpts)
			if err != nil {
				return fail("parse %s: %w", args[0], err)
			}
			for _, path := range args[1:] {
				slave, err := loadDocument(path, parseOpts)
				if err != nil {
					return fail("parse %s: %w", path, err)
				}
				master = mergeValues(master, slave, matchTypes)
			}
			fmt.Println(serialize.Serialize(master, serialize.Pretty))
			return nil
		},
	}

	opts.register(cmd.Flags())
	cmd.Flags().BoolVar(&matchTypes, "match-types", false, "skip a slave member whose JSON type disagrees with the master's existing value")
	return cmd
}

func mergeValues(master, slave value.Value, matchTypes bool) value.Value {
	if master.Kind() != value.Object || slave.Kind() != value.Object {
		return slave
	}
	out := master.ObjVal().Clone()
	slave.ObjVal().Range(func(key string, sv value.Value) bool {
		mv, exists := out.Get(key)
		if exists && matchTypes && mv.Kind() != sv.Kind() {
			return true
		}
		if exists && mv.Kind() == value.Object && sv.Kind() == value.Object {
			out.Set(key, mergeValues(mv, sv, matchTypes))
		} else {
			out.Set(key, sv)
		}
		return true
	})
	return value.NewObjectFrom(out)
}
