// Package patch implements RFC 6902 JSON Patch operations over a
// value.Value tree (§4.5's patch half).
package patch

import (
	"github.com/kaptinlin/ujson-tools/pointer"
	"github.com/kaptinlin/ujson-tools/value"
)

// Outcome is the result of one patch operation.
type Outcome int

const (
	// OK means the operation applied successfully.
	OK Outcome = iota
	// Fail means a test operation compared unequal.
	Fail
	// NoEnt means the path did not resolve.
	NoEnt
	// InvalidOp means the patch object itself was malformed.
	InvalidOp
)

func (o Outcome) String() string {
	switch o {
	case OK:
		return "ok"
	case Fail:
		return "fail"
	case NoEnt:
		return "noent"
	case InvalidOp:
		return "invalid"
	default:
		return "unknown"
	}
}

// Op is one decoded RFC 6902 patch operation.
type Op struct {
	Kind    string // add, remove, replace, move, copy, test
	Path    string
	From    string
	HasFrom bool
	Value   value.Value
}

// decodeOp reads one patch operation object.
func decodeOp(v value.Value) (Op, bool) {
	if v.Kind() != value.Object {
		return Op{}, false
	}
	obj := v.ObjVal()
	opV, ok := obj.Get("op")
	if !ok {
		return Op{}, false
	}
	opName, ok := opV.StrOK()
	if !ok {
		return Op{}, false
	}
	pathV, ok := obj.Get("path")
	if !ok {
		return Op{}, false
	}
	path, ok := pathV.StrOK()
	if !ok {
		return Op{}, false
	}
	op := Op{Kind: opName, Path: path}
	if fromV, ok := obj.Get("from"); ok {
		from, ok := fromV.StrOK()
		if !ok {
			return Op{}, false
		}
		op.From = from
		op.HasFrom = true
	}
	if valV, ok := obj.Get("value"); ok {
		op.Value = valV
	}
	return op, true
}

// Result pairs one applied operation with its outcome.
type Result struct {
	Op      Op
	Outcome Outcome
}

// Applied is the outcome of Apply, which runs a sequence of patch
// operations (patchArray must be a JSON array of patch objects) against
// root in order. The first non-OK
// result aborts the sequence; Results holds the per-op outcome for
// every operation attempted so far, and AbortIndex is its index (-1 if
// every operation succeeded).
type Applied struct {
	Root       value.Value
	OK         bool
	Results    []Result
	AbortIndex int
}

// Apply runs every operation in patchArray against root in order.
func Apply(root value.Value, patchArray value.Value) Applied {
	arr, ok := patchArray.ArrOK()
	if !ok {
		return Applied{Root: root, OK: false, AbortIndex: 0, Results: []Result{{Outcome: InvalidOp}}}
	}

	cur := root
	results := make([]Result, 0, len(arr))
	for i, opv := range arr {
		op, ok := decodeOp(opv)
		if !ok {
			results = append(results, Result{Outcome: InvalidOp})
			return Applied{Root: cur, OK: false, Results: results, AbortIndex: i}
		}
		newRoot, outcome := applyOne(cur, op)
		results = append(results, Result{Op: op, Outcome: outcome})
		if outcome != OK {
			return Applied{Root: cur, OK: false, Results: results, AbortIndex: i}
		}
		cur = newRoot
	}
	return Applied{Root: cur, OK: true, Results: results, AbortIndex: -1}
}

// ApplyOne applies a single decoded operation, for callers (like a
// patch-test runner) that want one-shot semantics without a full
// sequence.
func ApplyOne(root value.Value, op Op) (value.Value, Outcome) {
	return applyOne(root, op)
}

func applyOne(root value.Value, op Op) (value.Value, Outcome) {
	switch op.Kind {
	case "add":
		return doAdd(root, op.Path, op.Value)
	case "remove":
		return doRemove(root, op.Path)
	case "replace":
		return doReplace(root, op.Path, op.Value)
	case "move":
		if !op.HasFrom {
			return root, InvalidOp
		}
		return doMove(root, op.From, op.Path)
	case "copy":
		if !op.HasFrom {
			return root, InvalidOp
		}
		return doCopy(root, op.From, op.Path)
	case "test":
		return doTest(root, op.Path, op.Value)
	default:
		return root, InvalidOp
	}
}

func parsePath(path string) (pointer.Pointer, bool) {
	p, err := pointer.Parse(path)
	if err != nil {
		return nil, false
	}
	return p, true
}

func doTest(root value.Value, path string, want value.Value) (value.Value, Outcome) {
	if !want.IsValid() {
		return root, InvalidOp
	}
	p, ok := parsePath(path)
	if !ok {
		return root, InvalidOp
	}
	got := pointer.Find(root, p)
	if !got.IsValid() {
		return root, NoEnt
	}
	if !value.Equal(got, want) {
		return root, Fail
	}
	return root, OK
}
