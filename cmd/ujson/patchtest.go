package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kaptinlin/ujson-tools/parse"
	"github.com/kaptinlin/ujson-tools/patch"
	"github.com/kaptinlin/ujson-tools/value"
)

// patchTestManifest is the RFC 6902 test-suite shape the original tool
// suite's test/ujson-patch-test.cpp harness consumed: a "tests" array of
// cases, each supplying a document and a patch to apply against it, and
// either the document "expected" on success or "error": true if applying
// the patch should fail.
type patchTestManifest struct {
	Tests []struct {
		Comment  string          `json:"comment"`
		Doc      goccyRawMessage `json:"doc"`
		Patch    goccyRawMessage `json:"patch"`
		Expected goccyRawMessage `json:"expected"`
		Error    bool            `json:"error"`
		Disabled bool            `json:"disabled"`
	} `json:"tests"`
}

// goccyRawMessage defers decoding of one manifest field until it is
// re-parsed by this module's own JSON parser, so test fixtures flow
// through the same parse.Parse path production documents do.
type goccyRawMessage []byte

func (m *goccyRawMessage) UnmarshalJSON(data []byte) error {
	*m = append((*m)[:0], data...)
	return nil
}

func newPatchTestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "patch-test <manifest>",
		Short: "Run an RFC 6902 patch-test manifest and report pass/fail per case",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fail("read manifest: %w", err)
			}
			var manifest patchTestManifest
			if err := decodeJSONFixture(data, &manifest); err != nil {
				return fail("decode manifest: %w", err)
			}

			failures := 0
			for i, tc := range manifest.Tests {
				if tc.Disabled {
					continue
				}
				name := tc.Comment
				if name == "" {
					name = fmt.Sprintf("case %d", i)
				}

				doc, err := parse.Parse(tc.Doc, parse.DefaultOptions())
				if err != nil {
					fmt.Printf("FAIL %s: invalid doc fixture: %v\n", name, err)
					failures++
					continue
				}
				ops, err := parse.Parse(tc.Patch, parse.DefaultOptions())
				if err != nil {
					fmt.Printf("FAIL %s: invalid patch fixture: %v\n", name, err)
					failures++
					continue
				}

				res := patch.Apply(doc, ops)
				if tc.Error {
					if res.OK {
						fmt.Printf("FAIL %s: expected the patch to fail, but it applied\n", name)
						failures++
					} else {
						fmt.Printf("PASS %s\n", name)
					}
					continue
				}

				if !res.OK {
					fmt.Printf("FAIL %s: patch did not apply: %s\n", name, res.Results[res.AbortIndex].Outcome)
					failures++
					continue
				}

				if len(tc.Expected) > 0 {
					want, err := parse.Parse(tc.Expected, parse.DefaultOptions())
					if err != nil {
						fmt.Printf("FAIL %s: invalid expected fixture: %v\n", name, err)
						failures++
						continue
					}
					if !value.Equal(res.Root, want) {
						fmt.Printf("FAIL %s: result does not match expected document\n", name)
						failures++
						continue
					}
				}
				fmt.Printf("PASS %s\n", name)
			}

			if failures > 0 {
				os.Exit(1)
			}
			return nil
		},
	}
	return cmd
}
