package main

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kaptinlin/ujson-tools/parse"
	"github.com/kaptinlin/ujson-tools/schema"
	"github.com/kaptinlin/ujson-tools/serialize"
)

func newSchemaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "JSON Schema 2020-12 commands",
	}
	cmd.AddCommand(newSchemaVerifyCmd())
	return cmd
}

// newSchemaVerifyCmd ports the original tool suite's ujson-verify:
// validate an instance against a schema, resolving any
// http://localhost:1234/... style $ref the official test suite uses by
// reading the referenced document from files under --schema-dir instead
// of the network.
func newSchemaVerifyCmd() *cobra.Command {
	var opts relaxedOpts
	var schemaDir string
	var verbose bool
	var fastFail bool

	cmd := &cobra.Command{
		Use:   "verify <schema> <instance>",
		Short: "Validate an instance document against a schema",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			parseOpts := opts.parseOptions()
			schemaDoc, err := loadDocument(args[0], parseOpts)
			if err != nil {
				return fail("parse schema %s: %w", args[0], err)
			}
			instance, err := loadDocument(args[1], parseOpts)
			if err != nil {
				return fail("parse instance %s: %w", args[1], err)
			}

			s, err := schema.New(schemaDoc)
			if err != nil {
				return fail("compile schema: %w", err)
			}

			if schemaDir != "" {
				s.SetInvalidRefCallback(localMirrorCallback(schemaDir, parseOpts))
			}

			result := s.Result(instance, fastFail)
			if result.Valid {
				fmt.Println("valid")
				return nil
			}

			if verbose {
				fmt.Println(serialize.Serialize(result.ToValue(), serialize.Pretty))
			} else {
				fmt.Println("invalid")
			}
			os.Exit(1)
			return nil
		},
	}

	opts.register(cmd.Flags())
	cmd.Flags().StringVar(&schemaDir, "schema-dir", "", "directory mirroring http://localhost:1234/... referenced schemas")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "print the full output unit on failure")
	cmd.Flags().BoolVar(&fastFail, "fast-fail", false, "stop at the first failing keyword instead of collecting every error")
	return cmd
}

// localMirrorCallback resolves an unresolved $ref/$dynamicRef whose base
// URI is the official test suite's http://localhost:1234 convention by
// reading <dir>/<path-after-host> and registering it against the schema's
// reference graph under the ref's own base URI, so the retried resolution
// (driven by schema.evaluateStaticRef/evaluateDynamicRef) succeeds.
func localMirrorCallback(dir string, parseOpts parse.Options) schema.InvalidRefCallback {
	return func(s *schema.Schema, baseURI, ref string) bool {
		target := ref
		if u, err := url.Parse(ref); err == nil && u.Host != "" {
			target = u.Path
		} else if b, err := url.Parse(baseURI); err == nil && strings.HasPrefix(baseURI, "http://localhost:1234") {
			if r, err := url.Parse(ref); err == nil {
				target = b.ResolveReference(r).Path
			}
		}
		target = strings.TrimPrefix(target, "/")

		data, err := os.ReadFile(filepath.Join(dir, target))
		if err != nil {
			return false
		}
		doc, err := parse.Parse(data, parseOpts)
		if err != nil {
			return false
		}
		alias := "http://localhost:1234/" + target
		return s.AddReferenced(doc, alias) == nil
	}
}
