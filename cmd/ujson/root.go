// Command ujson is a front-end over the value/parse/serialize/pointer/
// patch/schema packages: pretty/compact printing, semantic comparison,
// pointer extraction, shallow merging, RFC 6902 patch application and
// testing, and JSON Schema 2020-12 verification (§6.2).
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	goccyjson "github.com/goccy/go-json"
	goccyyaml "github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/kaptinlin/ujson-tools/parse"
	"github.com/kaptinlin/ujson-tools/value"
)

// relaxedOpts holds the shared input-parsing flags every subcommand that
// reads JSON text registers (the original tool suite's shared option
// parser, per SPEC_FULL.md's supplemented-features list).
type relaxedOpts struct {
	relaxed       bool
	noDuplicates  bool
	maxDepth      int
	maxArraySize  int
	maxObjectSize int
}

func (r *relaxedOpts) register(flags *pflag.FlagSet) {
	flags.BoolVar(&r.relaxed, "relaxed", false, "accept comments, trailing commas, string concatenation and unquoted identifier keys")
	flags.BoolVar(&r.noDuplicates, "no-duplicates", false, "reject duplicate object members instead of keeping every one")
	flags.IntVar(&r.maxDepth, "max-depth", 0, "maximum array/object nesting depth (0 = unbounded)")
	flags.IntVar(&r.maxArraySize, "max-array", 0, "maximum array element count (0 = unbounded)")
	flags.IntVar(&r.maxObjectSize, "max-object", 0, "maximum object member count (0 = unbounded)")
}

func (r *relaxedOpts) parseOptions() parse.Options {
	opts := parse.Options{
		Strict:          !r.relaxed,
		Relaxed:         r.relaxed,
		AllowDuplicates: !r.noDuplicates,
		MaxDepth:        r.maxDepth,
		MaxArraySize:    r.maxArraySize,
		MaxObjectSize:   r.maxObjectSize,
	}
	return opts
}

// loadDocument reads path (or stdin for "-"), parsing it as JSON via this
// module's own parser, or as YAML via goccy/go-yaml when the file extension
// says so -- a YAML document decodes through goccy/go-yaml into a generic
// any tree and then through value.FromAny, which is how the CLI exercises
// the auxiliary (de)serialization libraries named in the domain stack
// alongside the hand-written JSON path.
func loadDocument(path string, opts parse.Options) (value.Value, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return value.NewInvalid(), err
	}

	if isYAMLPath(path) {
		var generic any
		if err := goccyyaml.Unmarshal(data, &generic); err != nil {
			return value.NewInvalid(), fmt.Errorf("yaml: %w", err)
		}
		return value.FromAny(generic), nil
	}

	return parse.Parse(data, opts)
}

func isYAMLPath(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// decodeJSONFixture is used by the patch-test runner, where the manifest
// shape (an arbitrary nested object)
// is easier to walk via goccy/go-json into a typed Go struct than via the
// value tree directly.
func decodeJSONFixture(data []byte, out any) error {
	return goccyjson.Unmarshal(data, out)
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "ujson",
		Short:         "Inspect, transform and validate JSON documents",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.AddCommand(
		newPrintCmd(),
		newCmpCmd(),
		newGetCmd(),
		newMergeCmd(),
		newPatchCmd(),
		newPatchTestCmd(),
		newSchemaCmd(),
	)
	return root
}

func fail(format string, args ...any) error {
	return fmt.Errorf(format, args...)
}
